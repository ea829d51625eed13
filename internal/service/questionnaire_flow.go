package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"recruitment-buddy/internal/domain"
)

var (
	ErrInvalidStep    = errors.New("invalid questionnaire step")
	ErrStepOutOfOrder = errors.New("questionnaire step out of order")
	ErrInvalidAnswer  = errors.New("answer must be a number between 0 and 10")
)

// QuestionnaireFlow avanza la maquina de pasos sobre el acumulador del usuario.
type QuestionnaireFlow struct {
	majors MajorCatalog
	top    int
}

func NewQuestionnaireFlow(majors MajorCatalog, top int) *QuestionnaireFlow {
	if top <= 0 {
		top = 3
	}
	return &QuestionnaireFlow{majors: majors, top: top}
}

// Advance guarda la respuesta del paso y devuelve el siguiente estado.
// El paso 1 siempre reinicia la acumulacion; cualquier otro paso debe ser el
// esperado. Al completar el paso 4 se calculan las recomendaciones de sesion.
func (f *QuestionnaireFlow) Advance(ctx context.Context, state *domain.QuestionnaireState, step domain.FlowStep, value float64) (domain.FlowStep, error) {
	if state == nil {
		return 0, errors.New("questionnaire state is nil")
	}
	question, ok := domain.QuestionForStep(step)
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrInvalidStep, step)
	}
	if value < domain.ScoreMin || value > domain.ScoreMax {
		return 0, ErrInvalidAnswer
	}

	if step == domain.StepAnalytical {
		state.Restart()
	} else if state.NextStep != step {
		return state.NextStep, ErrStepOutOfOrder
	}
	if state.Responses == nil {
		state.Responses = make(map[domain.Dimension]float64, domain.TotalSteps)
	}

	state.Responses[question.Field] = value
	state.NextStep = step + 1
	state.UpdatedAt = time.Now().UTC()

	if state.NextStep == domain.StepComplete {
		recs, err := f.Recommend(ctx, *state)
		if err != nil {
			return 0, err
		}
		state.Recommendations = recs
	}
	return state.NextStep, nil
}

// Recommend devuelve el top-N de la formula de sesion (0-100) para un
// acumulador completo.
func (f *QuestionnaireFlow) Recommend(ctx context.Context, state domain.QuestionnaireState) ([]domain.DisplayMatch, error) {
	if f == nil || f.majors == nil {
		return nil, errors.New("questionnaire flow not configured")
	}
	majors, err := f.majors.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list majors: %w", err)
	}
	return TopDisplayMatches(SessionMatches(state.RawAnswers(), majors), f.top), nil
}
