package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"recruitment-buddy/internal/domain"
)

type MajorWriter interface {
	Upsert(ctx context.Context, major domain.MajorProfile, position int) error
}

type AffinityWriter interface {
	Upsert(ctx context.Context, affinity domain.MajorAffinity) error
}

// CatalogSeeder carga el catalogo base de majors y su tabla de afinidades.
// Es idempotente: cada fila se escribe con upsert.
type CatalogSeeder struct {
	logger     *zap.Logger
	majors     MajorWriter
	affinities AffinityWriter
	registry   *TypeRegistry
}

func NewCatalogSeeder(logger *zap.Logger, majors MajorWriter, affinities AffinityWriter, registry *TypeRegistry) *CatalogSeeder {
	return &CatalogSeeder{
		logger:     logger,
		majors:     majors,
		affinities: affinities,
		registry:   registry,
	}
}

func (s *CatalogSeeder) Seed(ctx context.Context) error {
	if s.majors == nil || s.affinities == nil || s.registry == nil {
		return errors.New("catalog seeder not configured")
	}

	for i, m := range seedMajors {
		if err := s.majors.Upsert(ctx, m, i); err != nil {
			return fmt.Errorf("seed major %s: %w", m.ID, err)
		}
	}

	typeIDs := make(map[string]string)
	count := 0
	for majorID, byCode := range seedAffinities {
		for code, strength := range byCode {
			typeID, ok := typeIDs[code]
			if !ok {
				var err error
				typeID, err = s.registry.Resolve(ctx, code)
				if err != nil {
					return err
				}
				typeIDs[code] = typeID
			}
			if err := s.affinities.Upsert(ctx, domain.MajorAffinity{
				MajorID:           majorID,
				PersonalityTypeID: typeID,
				Strength:          strength,
			}); err != nil {
				return fmt.Errorf("seed affinity %s/%s: %w", majorID, code, err)
			}
			count++
		}
	}

	if s.logger != nil {
		s.logger.Info("catalog seeded", zap.Int("majors", len(seedMajors)), zap.Int("affinities", count))
	}
	return nil
}
