package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"recruitment-buddy/internal/domain"
)

type PersonalityTypeRepository interface {
	UpsertByCode(ctx context.Context, record domain.PersonalityTypeRecord) (string, error)
	List(ctx context.Context) ([]domain.PersonalityTypeRecord, error)
}

type PgPersonalityTypeRepository struct {
	pool *pgxpool.Pool
}

func NewPgPersonalityTypeRepository(pool *pgxpool.Pool) *PgPersonalityTypeRepository {
	return &PgPersonalityTypeRepository{pool: pool}
}

// UpsertByCode inserta el codigo o, si ya existe, devuelve el id guardado.
// El no-op DO UPDATE es necesario para que RETURNING entregue la fila existente.
func (r *PgPersonalityTypeRepository) UpsertByCode(ctx context.Context, record domain.PersonalityTypeRecord) (string, error) {
	const query = `
		INSERT INTO personality_types (id, code, name, description, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (code)
		DO UPDATE SET code = EXCLUDED.code
		RETURNING id
	`
	var id string
	err := r.pool.QueryRow(ctx, query,
		record.ID,
		record.Code,
		record.Name,
		record.Description,
		record.CreatedAt,
	).Scan(&id)
	return id, err
}

func (r *PgPersonalityTypeRepository) List(ctx context.Context) ([]domain.PersonalityTypeRecord, error) {
	const query = `
		SELECT id, code, name, description, created_at
		FROM personality_types
		ORDER BY code
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []domain.PersonalityTypeRecord{}
	for rows.Next() {
		var rec domain.PersonalityTypeRecord
		if err := rows.Scan(&rec.ID, &rec.Code, &rec.Name, &rec.Description, &rec.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
