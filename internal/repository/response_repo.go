package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"recruitment-buddy/internal/domain"
)

type ResponseRepository interface {
	CreateWithMatches(ctx context.Context, response domain.QuestionnaireResponse, matches []domain.MatchResult) error
	GetByID(ctx context.Context, id string) (domain.QuestionnaireResponse, error)
	ListMatches(ctx context.Context, responseID string) ([]domain.MatchResult, error)
}

type PgResponseRepository struct {
	pool *pgxpool.Pool
}

func NewPgResponseRepository(pool *pgxpool.Pool) *PgResponseRepository {
	return &PgResponseRepository{pool: pool}
}

// CreateWithMatches guarda la entrega y todas sus recomendaciones en una sola
// transaccion: si alguna fila falla no queda nada escrito.
func (r *PgResponseRepository) CreateWithMatches(ctx context.Context, response domain.QuestionnaireResponse, matches []domain.MatchResult) error {
	rawResponses, err := json.Marshal(response.RawResponses)
	if err != nil {
		return fmt.Errorf("encode raw responses: %w", err)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const insertResponse = `
		INSERT INTO questionnaire_responses
			(id, user_id, analytical_score, creative_score, social_score, technical_score,
			 personality_type_id, raw_responses, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	if _, err := tx.Exec(ctx, insertResponse,
		response.ID,
		response.UserID,
		response.Scores.Analytical,
		response.Scores.Creative,
		response.Scores.Social,
		response.Scores.Technical,
		response.PersonalityTypeID,
		rawResponses,
		response.CreatedAt,
	); err != nil {
		return fmt.Errorf("insert response: %w", err)
	}

	const insertMatch = `
		INSERT INTO major_recommendations
			(response_id, major_id, rank, match_score, analytical_match, creative_match,
			 social_match, technical_match, personality_match)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	batch := &pgx.Batch{}
	for i, m := range matches {
		batch.Queue(insertMatch,
			response.ID,
			m.MajorID,
			i+1,
			m.MatchScore,
			m.AnalyticalMatch,
			m.CreativeMatch,
			m.SocialMatch,
			m.TechnicalMatch,
			m.PersonalityMatch,
		)
	}
	if batch.Len() > 0 {
		br := tx.SendBatch(ctx, batch)
		for i := 0; i < batch.Len(); i++ {
			if _, err := br.Exec(); err != nil {
				_ = br.Close()
				return fmt.Errorf("insert match %d: %w", i, err)
			}
		}
		if err := br.Close(); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *PgResponseRepository) GetByID(ctx context.Context, id string) (domain.QuestionnaireResponse, error) {
	const query = `
		SELECT id, user_id, analytical_score, creative_score, social_score, technical_score,
		       personality_type_id, raw_responses, created_at
		FROM questionnaire_responses
		WHERE id = $1
	`
	var (
		resp domain.QuestionnaireResponse
		raw  []byte
	)
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&resp.ID,
		&resp.UserID,
		&resp.Scores.Analytical,
		&resp.Scores.Creative,
		&resp.Scores.Social,
		&resp.Scores.Technical,
		&resp.PersonalityTypeID,
		&raw,
		&resp.CreatedAt,
	)
	if err != nil {
		return domain.QuestionnaireResponse{}, err
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &resp.RawResponses); err != nil {
			return domain.QuestionnaireResponse{}, fmt.Errorf("decode raw responses: %w", err)
		}
	}
	return resp, nil
}

// ListMatches devuelve las recomendaciones guardadas por ranking.
func (r *PgResponseRepository) ListMatches(ctx context.Context, responseID string) ([]domain.MatchResult, error) {
	const query = `
		SELECT m.id, m.name, m.description, m.careers, m.skills,
		       r.match_score, r.analytical_match, r.creative_match, r.social_match,
		       r.technical_match, r.personality_match
		FROM major_recommendations r
		JOIN majors m ON m.id = r.major_id
		WHERE r.response_id = $1
		ORDER BY r.rank
	`
	rows, err := r.pool.Query(ctx, query, responseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []domain.MatchResult{}
	for rows.Next() {
		var m domain.MatchResult
		if err := rows.Scan(
			&m.MajorID,
			&m.Name,
			&m.Description,
			&m.Careers,
			&m.Skills,
			&m.MatchScore,
			&m.AnalyticalMatch,
			&m.CreativeMatch,
			&m.SocialMatch,
			&m.TechnicalMatch,
			&m.PersonalityMatch,
		); err != nil {
			return nil, err
		}
		results = append(results, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
