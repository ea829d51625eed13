package domain

// Limites de cada subescala del cuestionario.
const (
	ScoreMin = 0.0
	ScoreMax = 10.0
)

// Dimension identifica una de las cuatro subescalas evaluadas.
type Dimension string

const (
	DimensionAnalytical Dimension = "analytical"
	DimensionCreative   Dimension = "creative"
	DimensionSocial     Dimension = "social"
	DimensionTechnical  Dimension = "technical"
)

// Dimensions mantiene el orden canonico de las subescalas.
var Dimensions = []Dimension{
	DimensionAnalytical,
	DimensionCreative,
	DimensionSocial,
	DimensionTechnical,
}

// RawScores son las respuestas 0-10 enviadas por el usuario.
type RawScores struct {
	Analytical float64 `json:"analytical_score"`
	Creative   float64 `json:"creative_score"`
	Social     float64 `json:"social_score"`
	Technical  float64 `json:"technical_score"`
}

func (s RawScores) Values() [4]float64 {
	return [4]float64{s.Analytical, s.Creative, s.Social, s.Technical}
}

// InRange reporta si las cuatro subescalas estan dentro de [0,10].
func (s RawScores) InRange() bool {
	for _, v := range s.Values() {
		if v < ScoreMin || v > ScoreMax {
			return false
		}
	}
	return true
}

// NormalizedScores es el vector 0-1 derivado de un RawScores.
type NormalizedScores struct {
	Analytical float64 `json:"analytical"`
	Creative   float64 `json:"creative"`
	Social     float64 `json:"social"`
	Technical  float64 `json:"technical"`
}

func (s NormalizedScores) Values() [4]float64 {
	return [4]float64{s.Analytical, s.Creative, s.Social, s.Technical}
}
