package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"recruitment-buddy/internal/domain"
)

var ErrInvalidTypeCode = errors.New("invalid personality type code")

// PersonalityTypeStore persiste el registro de tipos. UpsertByCode debe ser
// atomico: inserta la fila o devuelve el id existente si el codigo ya esta.
type PersonalityTypeStore interface {
	UpsertByCode(ctx context.Context, record domain.PersonalityTypeRecord) (string, error)
	List(ctx context.Context) ([]domain.PersonalityTypeRecord, error)
}

// TypeRegistry resuelve codigos de personalidad a ids persistidos.
type TypeRegistry struct {
	store  PersonalityTypeStore
	logger *zap.Logger
}

func NewTypeRegistry(store PersonalityTypeStore, logger *zap.Logger) *TypeRegistry {
	return &TypeRegistry{store: store, logger: logger}
}

// Resolve devuelve el id del codigo, creandolo con nombre y descripcion
// provisorios la primera vez que aparece.
func (r *TypeRegistry) Resolve(ctx context.Context, code string) (string, error) {
	if r == nil || r.store == nil {
		return "", errors.New("type registry not configured")
	}
	if !domain.IsValidTypeCode(code) {
		return "", fmt.Errorf("%w: %q", ErrInvalidTypeCode, code)
	}

	record := domain.PersonalityTypeRecord{
		ID:          uuid.NewString(),
		Code:        code,
		Name:        "Type " + code,
		Description: "Personality type description",
		CreatedAt:   time.Now().UTC(),
	}
	id, err := r.store.UpsertByCode(ctx, record)
	if err != nil {
		return "", fmt.Errorf("resolve personality type %s: %w", code, err)
	}
	if id == record.ID && r.logger != nil {
		r.logger.Info("personality type registered", zap.String("code", code), zap.String("id", id))
	}
	return id, nil
}

func (r *TypeRegistry) List(ctx context.Context) ([]domain.PersonalityTypeRecord, error) {
	if r == nil || r.store == nil {
		return nil, errors.New("type registry not configured")
	}
	return r.store.List(ctx)
}
