package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"recruitment-buddy/internal/domain"
)

// ValidationError es un error de entrada atribuible al cliente (4xx).
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// SubmissionInput es el esquema explicito de POST /submit_questionnaire.
type SubmissionInput struct {
	Scores    *ScoreInput    `json:"scores" validate:"required"`
	Responses map[string]any `json:"responses"`
}

// Los punteros distinguen "ausente" de 0.
type ScoreInput struct {
	AnalyticalScore *float64 `json:"analytical_score" validate:"required,gte=0,lte=10"`
	CreativeScore   *float64 `json:"creative_score" validate:"required,gte=0,lte=10"`
	SocialScore     *float64 `json:"social_score" validate:"required,gte=0,lte=10"`
	TechnicalScore  *float64 `json:"technical_score" validate:"required,gte=0,lte=10"`
}

func (s ScoreInput) RawScores() domain.RawScores {
	return domain.RawScores{
		Analytical: deref(s.AnalyticalScore),
		Creative:   deref(s.CreativeScore),
		Social:     deref(s.SocialScore),
		Technical:  deref(s.TechnicalScore),
	}
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

var (
	submissionValidator     *validator.Validate
	submissionValidatorOnce sync.Once
)

func getSubmissionValidator() *validator.Validate {
	submissionValidatorOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		submissionValidator = v
	})
	return submissionValidator
}

// ValidateSubmission comprueba presencia y rango de las cuatro subescalas
// antes de cualquier calculo.
func ValidateSubmission(input SubmissionInput) error {
	err := getSubmissionValidator().Struct(input)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ValidationError{Message: "Invalid questionnaire data"}
	}

	// Primero los faltantes: un envio incompleto se reporta como tal.
	for _, fe := range verrs {
		if fe.Tag() != "required" {
			continue
		}
		if fe.Field() == "scores" {
			return &ValidationError{Field: "scores", Message: "Missing 'scores' field in questionnaire data"}
		}
		return &ValidationError{Field: fe.Field(), Message: "Missing required fields in scores data"}
	}
	fe := verrs[0]
	return &ValidationError{
		Field:   fe.Field(),
		Message: fmt.Sprintf("Invalid score for %s. Must be number between 0 and 10", fe.Field()),
	}
}
