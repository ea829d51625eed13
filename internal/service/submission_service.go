package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"recruitment-buddy/internal/domain"
	"recruitment-buddy/internal/metrics"
)

var ErrResponseNotFound = errors.New("questionnaire response not found")

// ResponseStore persiste entregas. CreateWithMatches debe escribir la entrega y
// todas sus filas de match en una sola transaccion.
type ResponseStore interface {
	CreateWithMatches(ctx context.Context, response domain.QuestionnaireResponse, matches []domain.MatchResult) error
	GetByID(ctx context.Context, id string) (domain.QuestionnaireResponse, error)
	ListMatches(ctx context.Context, responseID string) ([]domain.MatchResult, error)
}

type SubmissionResult struct {
	ResponseID      string                 `json:"response_id"`
	PersonalityType domain.PersonalityType `json:"personality_type"`
	Matches         []domain.MatchResult   `json:"matches"`
}

// SubmissionService orquesta validacion, clasificacion, registro de tipo,
// puntuacion y persistencia de un cuestionario.
type SubmissionService struct {
	logger    *zap.Logger
	registry  *TypeRegistry
	engine    *MatchEngine
	responses ResponseStore
}

func NewSubmissionService(logger *zap.Logger, registry *TypeRegistry, engine *MatchEngine, responses ResponseStore) *SubmissionService {
	return &SubmissionService{
		logger:    logger,
		registry:  registry,
		engine:    engine,
		responses: responses,
	}
}

func (s *SubmissionService) Submit(ctx context.Context, userID string, input SubmissionInput) (SubmissionResult, error) {
	if err := ValidateSubmission(input); err != nil {
		metrics.QuestionnaireSubmissions.WithLabelValues("invalid").Inc()
		return SubmissionResult{}, err
	}
	if s.registry == nil || s.engine == nil || s.responses == nil {
		return SubmissionResult{}, errors.New("submission service not configured")
	}

	raw := input.Scores.RawScores()
	ptype := ClassifyPersonality(raw)

	typeID, err := s.registry.Resolve(ctx, ptype.Code)
	if err != nil {
		metrics.QuestionnaireSubmissions.WithLabelValues("error").Inc()
		return SubmissionResult{}, err
	}

	matches, err := s.engine.Score(ctx, NormalizeScores(raw), typeID)
	if err != nil {
		metrics.QuestionnaireSubmissions.WithLabelValues("error").Inc()
		return SubmissionResult{}, fmt.Errorf("calculate major matches: %w", err)
	}

	rawResponses := input.Responses
	if rawResponses == nil {
		rawResponses = map[string]any{}
	}
	response := domain.QuestionnaireResponse{
		ID:                uuid.NewString(),
		UserID:            userID,
		Scores:            raw,
		PersonalityTypeID: typeID,
		RawResponses:      rawResponses,
		CreatedAt:         time.Now().UTC(),
	}
	if err := s.responses.CreateWithMatches(ctx, response, matches); err != nil {
		metrics.QuestionnaireSubmissions.WithLabelValues("error").Inc()
		return SubmissionResult{}, fmt.Errorf("store questionnaire response: %w", err)
	}

	metrics.QuestionnaireSubmissions.WithLabelValues("success").Inc()
	metrics.PersonalityTypesAssigned.WithLabelValues(ptype.Code).Inc()
	if s.logger != nil {
		s.logger.Info("questionnaire submitted",
			zap.String("user_id", userID),
			zap.String("response_id", response.ID),
			zap.String("personality_type", ptype.Code),
			zap.Int("matches", len(matches)),
		)
	}

	return SubmissionResult{
		ResponseID:      response.ID,
		PersonalityType: ptype,
		Matches:         matches,
	}, nil
}

// ResponseMatches devuelve el historial de matches de una entrega del usuario.
func (s *SubmissionService) ResponseMatches(ctx context.Context, userID, responseID string) ([]domain.MatchResult, error) {
	if s.responses == nil {
		return nil, errors.New("submission service not configured")
	}
	resp, err := s.responses.GetByID(ctx, responseID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrResponseNotFound
		}
		return nil, err
	}
	if resp.UserID != userID {
		return nil, ErrResponseNotFound
	}
	return s.responses.ListMatches(ctx, responseID)
}
