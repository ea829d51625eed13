package domain

import "time"

// FlowStep es el estado de la maquina del cuestionario.
type FlowStep int

const (
	StepAnalytical FlowStep = iota + 1
	StepCreative
	StepSocial
	StepTechnical
	StepComplete
)

// TotalSteps es la cantidad de preguntas del cuestionario.
const TotalSteps = int(StepTechnical)

type Question struct {
	Step     FlowStep  `json:"step"`
	Text     string    `json:"text"`
	Field    Dimension `json:"field"`
	Progress int       `json:"progress"`
}

var questions = []Question{
	{Step: StepAnalytical, Text: "How much do you enjoy analytical thinking and problem-solving?", Field: DimensionAnalytical, Progress: 25},
	{Step: StepCreative, Text: "How much do you enjoy creative and artistic activities?", Field: DimensionCreative, Progress: 50},
	{Step: StepSocial, Text: "How much do you enjoy working with and helping others?", Field: DimensionSocial, Progress: 75},
	{Step: StepTechnical, Text: "How comfortable are you with technical and hands-on work?", Field: DimensionTechnical, Progress: 100},
}

// QuestionForStep devuelve la pregunta del paso o false si el paso no existe.
func QuestionForStep(step FlowStep) (Question, bool) {
	if step < StepAnalytical || step > StepTechnical {
		return Question{}, false
	}
	return questions[step-1], true
}

// QuestionnaireState es el acumulador transitorio por usuario.
// No se persiste en la base relacional.
type QuestionnaireState struct {
	UserID          string                `json:"user_id"`
	NextStep        FlowStep              `json:"next_step"`
	Responses       map[Dimension]float64 `json:"questionnaire_responses"`
	Scores          *RawScores            `json:"scores,omitempty"`
	Recommendations []DisplayMatch        `json:"recommendations,omitempty"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

func NewQuestionnaireState(userID string) QuestionnaireState {
	return QuestionnaireState{
		UserID:    userID,
		NextStep:  StepAnalytical,
		Responses: make(map[Dimension]float64, TotalSteps),
	}
}

// Restart descarta las respuestas de la corrida anterior. Scores se conserva:
// pertenece al ultimo envio persistido, no a la acumulacion.
func (s *QuestionnaireState) Restart() {
	s.NextStep = StepAnalytical
	s.Responses = make(map[Dimension]float64, TotalSteps)
	s.Recommendations = nil
}

func (s QuestionnaireState) Complete() bool {
	return s.NextStep == StepComplete && len(s.Responses) == TotalSteps
}

// RawAnswers arma un RawScores con las respuestas acumuladas.
func (s QuestionnaireState) RawAnswers() RawScores {
	return RawScores{
		Analytical: s.Responses[DimensionAnalytical],
		Creative:   s.Responses[DimensionCreative],
		Social:     s.Responses[DimensionSocial],
		Technical:  s.Responses[DimensionTechnical],
	}
}

// QuestionnaireResponse es el registro historico de una entrega.
type QuestionnaireResponse struct {
	ID                string         `json:"id"`
	UserID            string         `json:"user_id"`
	Scores            RawScores      `json:"scores"`
	PersonalityTypeID string         `json:"personality_type_id"`
	RawResponses      map[string]any `json:"raw_responses"`
	CreatedAt         time.Time      `json:"created_at"`
}
