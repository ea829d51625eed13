package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"

	"recruitment-buddy/internal/domain"
)

// MajorRepository expone el catalogo de majors.
type MajorRepository interface {
	List(ctx context.Context) ([]domain.MajorProfile, error)
	GetByID(ctx context.Context, id string) (domain.MajorProfile, error)
	Upsert(ctx context.Context, major domain.MajorProfile, position int) error
	Similar(ctx context.Context, id string, limit int) ([]domain.MajorProfile, error)
}

type PgMajorRepository struct {
	pool *pgxpool.Pool
}

func NewPgMajorRepository(pool *pgxpool.Pool) *PgMajorRepository {
	return &PgMajorRepository{pool: pool}
}

const majorColumns = `id, name, description, careers, skills, analytical_weight, creative_weight, social_weight, technical_weight`

// List devuelve el catalogo en orden de catalogo (position, luego nombre).
func (r *PgMajorRepository) List(ctx context.Context) ([]domain.MajorProfile, error) {
	query := `SELECT ` + majorColumns + ` FROM majors ORDER BY position, name`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return scanMajors(rows)
}

func (r *PgMajorRepository) GetByID(ctx context.Context, id string) (domain.MajorProfile, error) {
	query := `SELECT ` + majorColumns + ` FROM majors WHERE id = $1`
	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		return domain.MajorProfile{}, err
	}
	majors, err := scanMajors(rows)
	if err != nil {
		return domain.MajorProfile{}, err
	}
	if len(majors) == 0 {
		return domain.MajorProfile{}, pgx.ErrNoRows
	}
	return majors[0], nil
}

// Upsert escribe los pesos escalares y su vector pgvector equivalente.
func (r *PgMajorRepository) Upsert(ctx context.Context, major domain.MajorProfile, position int) error {
	const query = `
		INSERT INTO majors (id, name, description, careers, skills, analytical_weight, creative_weight, social_weight, technical_weight, profile, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id)
		DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			careers = EXCLUDED.careers,
			skills = EXCLUDED.skills,
			analytical_weight = EXCLUDED.analytical_weight,
			creative_weight = EXCLUDED.creative_weight,
			social_weight = EXCLUDED.social_weight,
			technical_weight = EXCLUDED.technical_weight,
			profile = EXCLUDED.profile,
			position = EXCLUDED.position
	`
	_, err := r.pool.Exec(ctx, query,
		major.ID,
		major.Name,
		major.Description,
		nonNil(major.Careers),
		nonNil(major.Skills),
		major.AnalyticalWeight,
		major.CreativeWeight,
		major.SocialWeight,
		major.TechnicalWeight,
		pgvector.NewVector(major.WeightVector()),
		position,
	)
	return err
}

// Similar devuelve los majors con perfil mas cercano (distancia L2) al indicado.
func (r *PgMajorRepository) Similar(ctx context.Context, id string, limit int) ([]domain.MajorProfile, error) {
	if limit <= 0 {
		limit = 3
	}
	const query = `
		SELECT m.id, m.name, m.description, m.careers, m.skills,
		       m.analytical_weight, m.creative_weight, m.social_weight, m.technical_weight
		FROM majors m, majors target
		WHERE target.id = $1 AND m.id <> target.id
		ORDER BY m.profile <-> target.profile, m.position
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, id, limit)
	if err != nil {
		return nil, err
	}
	return scanMajors(rows)
}

func scanMajors(rows pgx.Rows) ([]domain.MajorProfile, error) {
	defer rows.Close()

	majors := []domain.MajorProfile{}
	for rows.Next() {
		var m domain.MajorProfile
		if err := rows.Scan(
			&m.ID,
			&m.Name,
			&m.Description,
			&m.Careers,
			&m.Skills,
			&m.AnalyticalWeight,
			&m.CreativeWeight,
			&m.SocialWeight,
			&m.TechnicalWeight,
		); err != nil {
			return nil, err
		}
		majors = append(majors, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return majors, nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

// AffinityRepository guarda la tabla dispersa (major, tipo) -> fuerza.
type AffinityRepository interface {
	Get(ctx context.Context, majorID, personalityTypeID string) (float64, bool, error)
	Upsert(ctx context.Context, affinity domain.MajorAffinity) error
}

type PgAffinityRepository struct {
	pool *pgxpool.Pool
}

func NewPgAffinityRepository(pool *pgxpool.Pool) *PgAffinityRepository {
	return &PgAffinityRepository{pool: pool}
}

func (r *PgAffinityRepository) Get(ctx context.Context, majorID, personalityTypeID string) (float64, bool, error) {
	const query = `
		SELECT match_strength
		FROM major_personality_matches
		WHERE major_id = $1 AND personality_type_id = $2
	`
	var strength float64
	err := r.pool.QueryRow(ctx, query, majorID, personalityTypeID).Scan(&strength)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return strength, true, nil
}

func (r *PgAffinityRepository) Upsert(ctx context.Context, affinity domain.MajorAffinity) error {
	const query = `
		INSERT INTO major_personality_matches (major_id, personality_type_id, match_strength)
		VALUES ($1, $2, $3)
		ON CONFLICT (major_id, personality_type_id)
		DO UPDATE SET match_strength = EXCLUDED.match_strength
	`
	_, err := r.pool.Exec(ctx, query, affinity.MajorID, affinity.PersonalityTypeID, affinity.Strength)
	return err
}
