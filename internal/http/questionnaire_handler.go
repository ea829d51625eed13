package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"recruitment-buddy/internal/domain"
	"recruitment-buddy/internal/metrics"
	"recruitment-buddy/internal/service"
)

// QuestionnaireHandler expone el flujo por pasos, el envio y las recomendaciones.
type QuestionnaireHandler struct {
	logger      *zap.Logger
	flow        *service.QuestionnaireFlow
	states      service.QuestionnaireStateStore
	submissions *service.SubmissionService
}

func NewQuestionnaireHandler(
	logger *zap.Logger,
	flow *service.QuestionnaireFlow,
	states service.QuestionnaireStateStore,
	submissions *service.SubmissionService,
) *QuestionnaireHandler {
	return &QuestionnaireHandler{
		logger:      logger,
		flow:        flow,
		states:      states,
		submissions: submissions,
	}
}

// stepURL apunta al paso pendiente; con el flujo completo, a las recomendaciones.
func stepURL(step domain.FlowStep) string {
	if step == domain.StepComplete {
		return "/recommendations"
	}
	return fmt.Sprintf("/questionnaire?step=%d", step)
}

// ShowStep maneja GET /questionnaire?step=N. Un paso desconocido vuelve al inicio.
func (h *QuestionnaireHandler) ShowStep(c *gin.Context) {
	step := domain.StepAnalytical
	if raw := c.Query("step"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.Redirect(http.StatusFound, "/questionnaire")
			return
		}
		step = domain.FlowStep(n)
	}
	question, ok := domain.QuestionForStep(step)
	if !ok {
		c.Redirect(http.StatusFound, "/questionnaire")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"step":        step,
		"total_steps": domain.TotalSteps,
		"question":    question,
		"flash":       popFlash(c),
	})
}

// Next maneja POST /questionnaire/next con body {step, <campo>: valor}.
func (h *QuestionnaireHandler) Next(c *gin.Context) {
	claims, _ := GetAuthClaims(c)
	ctx := c.Request.Context()

	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid request body"})
		return
	}

	stepValue, ok := numberFrom(body["step"])
	if !ok || stepValue != float64(int(stepValue)) {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid step"})
		return
	}
	step := domain.FlowStep(int(stepValue))
	question, ok := domain.QuestionForStep(step)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid step"})
		return
	}
	answer, ok := numberFrom(body[string(question.Field)])
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": service.ErrInvalidAnswer.Error()})
		return
	}

	state, err := h.states.Load(ctx, claims.UserID)
	if err != nil {
		h.logger.Error("load questionnaire state failed", zap.Error(err), zap.String("user_id", claims.UserID))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Internal server error"})
		return
	}

	next, err := h.flow.Advance(ctx, &state, step, answer)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStepOutOfOrder):
			c.JSON(http.StatusConflict, gin.H{"redirect": stepURL(next)})
		case errors.Is(err, service.ErrInvalidAnswer), errors.Is(err, service.ErrInvalidStep):
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		default:
			h.logger.Error("advance questionnaire failed", zap.Error(err), zap.String("user_id", claims.UserID), zap.Int("step", int(step)))
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Internal server error"})
		}
		return
	}

	if err := h.states.Save(ctx, state); err != nil {
		h.logger.Error("save questionnaire state failed", zap.Error(err), zap.String("user_id", claims.UserID))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Internal server error"})
		return
	}
	metrics.QuestionnaireSteps.WithLabelValues(strconv.Itoa(int(step))).Inc()

	c.JSON(http.StatusOK, gin.H{"redirect": stepURL(next)})
}

// numberFrom acepta numeros JSON o strings numericos (valores de formulario).
func numberFrom(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// Submit maneja POST /submit_questionnaire.
func (h *QuestionnaireHandler) Submit(c *gin.Context) {
	claims, _ := GetAuthClaims(c)
	ctx := c.Request.Context()

	var input service.SubmissionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid questionnaire data"})
		return
	}

	result, err := h.submissions.Submit(ctx, claims.UserID, input)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": verr.Message})
			return
		}
		h.logger.Error("submit questionnaire failed", zap.Error(err), zap.String("user_id", claims.UserID))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Internal server error"})
		return
	}

	if h.states != nil {
		state, err := h.states.Load(ctx, claims.UserID)
		if err == nil {
			scores := input.Scores.RawScores()
			state.Scores = &scores
			err = h.states.Save(ctx, state)
		}
		if err != nil {
			h.logger.Warn("store submitted scores in session failed", zap.Error(err), zap.String("response_id", result.ResponseID))
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":           "success",
		"response_id":      result.ResponseID,
		"personality_type": result.PersonalityType.Code,
	})
}

// Recommendations maneja GET /recommendations con el top-N de la sesion.
func (h *QuestionnaireHandler) Recommendations(c *gin.Context) {
	claims, _ := GetAuthClaims(c)
	ctx := c.Request.Context()

	state, err := h.states.Load(ctx, claims.UserID)
	if err != nil {
		h.logger.Error("load questionnaire state failed", zap.Error(err), zap.String("user_id", claims.UserID))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Internal server error"})
		return
	}
	if !state.Complete() {
		c.Redirect(http.StatusFound, "/questionnaire")
		return
	}

	recs := state.Recommendations
	if len(recs) == 0 {
		recs, err = h.flow.Recommend(ctx, state)
		if err != nil {
			h.logger.Error("compute recommendations failed", zap.Error(err), zap.String("user_id", claims.UserID))
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Internal server error"})
			return
		}
	}

	answers := state.RawAnswers()
	c.JSON(http.StatusOK, gin.H{
		"recommendations": recs,
		"user_scores": gin.H{
			string(domain.DimensionAnalytical): answers.Analytical,
			string(domain.DimensionCreative):   answers.Creative,
			string(domain.DimensionSocial):     answers.Social,
			string(domain.DimensionTechnical):  answers.Technical,
		},
		"flash": popFlash(c),
	})
}
