package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"recruitment-buddy/internal/domain"
)

// Ponderacion del puntaje global de una entrega persistida.
const (
	skillMatchWeight       = 0.7
	personalityMatchWeight = 0.3
)

var ErrMatchEngineNotConfigured = errors.New("match engine not configured")

// MajorCatalog lista el catalogo de majors.
type MajorCatalog interface {
	List(ctx context.Context) ([]domain.MajorProfile, error)
}

// AffinityLookup resuelve la fuerza (major, tipo). ok=false si no hay fila.
type AffinityLookup interface {
	Get(ctx context.Context, majorID, personalityTypeID string) (float64, bool, error)
}

// MatchEngine puntua el catalogo completo contra un vector normalizado.
type MatchEngine struct {
	majors     MajorCatalog
	affinities AffinityLookup
}

func NewMatchEngine(majors MajorCatalog, affinities AffinityLookup) *MatchEngine {
	return &MatchEngine{majors: majors, affinities: affinities}
}

// Score devuelve un MatchResult por major, ordenado de mayor a menor match_score.
// personalityTypeID vacio implica afinidad neutral para todo el catalogo.
func (e *MatchEngine) Score(ctx context.Context, normalized domain.NormalizedScores, personalityTypeID string) ([]domain.MatchResult, error) {
	if e == nil || e.majors == nil {
		return nil, ErrMatchEngineNotConfigured
	}
	majors, err := e.majors.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list majors: %w", err)
	}

	affinity := make(map[string]float64, len(majors))
	if personalityTypeID != "" && e.affinities != nil {
		for _, m := range majors {
			strength, ok, err := e.affinities.Get(ctx, m.ID, personalityTypeID)
			if err != nil {
				return nil, fmt.Errorf("affinity for major %s: %w", m.ID, err)
			}
			if ok {
				affinity[m.ID] = strength
			}
		}
	}

	return ScoreMajors(normalized, majors, affinity), nil
}

// ScoreMajors es el calculo puro del MatchEngine. affinity sin entrada para un
// major se interpreta como NeutralAffinity.
func ScoreMajors(normalized domain.NormalizedScores, majors []domain.MajorProfile, affinity map[string]float64) []domain.MatchResult {
	results := make([]domain.MatchResult, 0, len(majors))
	for _, m := range majors {
		personality := domain.NeutralAffinity
		if strength, ok := affinity[m.ID]; ok {
			personality = strength
		}

		r := domain.MatchResult{
			MajorID:          m.ID,
			Name:             m.Name,
			Description:      m.Description,
			Careers:          m.Careers,
			Skills:           m.Skills,
			AnalyticalMatch:  dimensionMatch(normalized.Analytical, m.AnalyticalWeight),
			CreativeMatch:    dimensionMatch(normalized.Creative, m.CreativeWeight),
			SocialMatch:      dimensionMatch(normalized.Social, m.SocialWeight),
			TechnicalMatch:   dimensionMatch(normalized.Technical, m.TechnicalWeight),
			PersonalityMatch: personality,
		}
		skills := (r.AnalyticalMatch + r.CreativeMatch + r.SocialMatch + r.TechnicalMatch) / 4
		r.MatchScore = skills*skillMatchWeight + personality*personalityMatchWeight
		results = append(results, r)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchScore > results[j].MatchScore
	})
	return results
}

func dimensionMatch(user, weight float64) float64 {
	return 1 - math.Abs(user-weight)
}

// SessionMatches calcula las recomendaciones que se muestran desde las
// respuestas crudas en sesion. Escala 0-100, sin termino de personalidad y
// sin normalizar: es un calculo distinto de ScoreMajors y no deben unificarse.
func SessionMatches(raw domain.RawScores, majors []domain.MajorProfile) []domain.DisplayMatch {
	out := make([]domain.DisplayMatch, 0, len(majors))
	for _, m := range majors {
		analytical := percentageMatch(raw.Analytical, m.AnalyticalWeight)
		creative := percentageMatch(raw.Creative, m.CreativeWeight)
		social := percentageMatch(raw.Social, m.SocialWeight)
		technical := percentageMatch(raw.Technical, m.TechnicalWeight)

		out = append(out, domain.DisplayMatch{
			MajorID:         m.ID,
			Name:            m.Name,
			Description:     m.Description,
			Careers:         m.Careers,
			Skills:          m.Skills,
			MatchPercentage: int(math.Round((analytical + creative + social + technical) / 4)),
			Weights: domain.DimensionWeights{
				Analytical: m.AnalyticalWeight,
				Creative:   m.CreativeWeight,
				Social:     m.SocialWeight,
				Technical:  m.TechnicalWeight,
			},
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MatchPercentage > out[j].MatchPercentage
	})
	return out
}

func percentageMatch(raw, weight float64) float64 {
	return 100 - math.Abs(raw-weight*10)
}

// TopDisplayMatches recorta la lista ya ordenada a n elementos.
func TopDisplayMatches(matches []domain.DisplayMatch, n int) []domain.DisplayMatch {
	if n <= 0 || n >= len(matches) {
		return matches
	}
	return matches[:n]
}
