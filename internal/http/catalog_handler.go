package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"recruitment-buddy/internal/domain"
	"recruitment-buddy/internal/service"
)

// MajorDirectory es la vista de lectura del catalogo usada por la API.
type MajorDirectory interface {
	List(ctx context.Context) ([]domain.MajorProfile, error)
	GetByID(ctx context.Context, id string) (domain.MajorProfile, error)
	Similar(ctx context.Context, id string, limit int) ([]domain.MajorProfile, error)
}

type CatalogHandler struct {
	logger      *zap.Logger
	majors      MajorDirectory
	registry    *service.TypeRegistry
	submissions *service.SubmissionService
}

func NewCatalogHandler(logger *zap.Logger, majors MajorDirectory, registry *service.TypeRegistry, submissions *service.SubmissionService) *CatalogHandler {
	return &CatalogHandler{
		logger:      logger,
		majors:      majors,
		registry:    registry,
		submissions: submissions,
	}
}

// Majors maneja GET /api/majors.
func (h *CatalogHandler) Majors(c *gin.Context) {
	majors, err := h.majors.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list majors failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, majors)
}

// SimilarMajors maneja GET /api/majors/:id/similar?limit=N.
func (h *CatalogHandler) SimilarMajors(c *gin.Context) {
	id := c.Param("id")
	limit := 3
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 20 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 20"})
			return
		}
		limit = n
	}

	ctx := c.Request.Context()
	if _, err := h.majors.GetByID(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "major not found"})
			return
		}
		h.logger.Error("get major failed", zap.Error(err), zap.String("major_id", id))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	similar, err := h.majors.Similar(ctx, id, limit)
	if err != nil {
		h.logger.Error("similar majors failed", zap.Error(err), zap.String("major_id", id))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, similar)
}

// PersonalityTypes maneja GET /api/personality-types.
func (h *CatalogHandler) PersonalityTypes(c *gin.Context) {
	types, err := h.registry.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list personality types failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, types)
}

// ResponseMatches maneja GET /api/responses/:id/matches.
func (h *CatalogHandler) ResponseMatches(c *gin.Context) {
	claims, _ := GetAuthClaims(c)
	responseID := c.Param("id")

	matches, err := h.submissions.ResponseMatches(c.Request.Context(), claims.UserID, responseID)
	if err != nil {
		if errors.Is(err, service.ErrResponseNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "response not found"})
			return
		}
		h.logger.Error("list response matches failed", zap.Error(err), zap.String("response_id", responseID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"response_id": responseID, "matches": matches})
}
