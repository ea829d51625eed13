package domain

// MatchResult es la puntuacion 0-1 de un major para una entrega persistida.
type MatchResult struct {
	MajorID          string   `json:"major_id"`
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	Careers          []string `json:"careers"`
	Skills           []string `json:"skills"`
	MatchScore       float64  `json:"match_score"`
	AnalyticalMatch  float64  `json:"analytical_match"`
	CreativeMatch    float64  `json:"creative_match"`
	SocialMatch      float64  `json:"social_match"`
	TechnicalMatch   float64  `json:"technical_match"`
	PersonalityMatch float64  `json:"personality_match"`
}

// DimensionWeights son los pesos del major tal como se muestran en recomendaciones.
type DimensionWeights struct {
	Analytical float64 `json:"analytical"`
	Creative   float64 `json:"creative"`
	Social     float64 `json:"social"`
	Technical  float64 `json:"technical"`
}

// DisplayMatch es la recomendacion 0-100 calculada desde las respuestas en sesion.
type DisplayMatch struct {
	MajorID         string           `json:"major_id"`
	Name            string           `json:"name"`
	Description     string           `json:"description"`
	Careers         []string         `json:"careers"`
	Skills          []string         `json:"skills"`
	MatchPercentage int              `json:"match_percentage"`
	Weights         DimensionWeights `json:"weights"`
}
