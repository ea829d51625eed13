package domain

// MajorProfile es una entrada del catalogo con su vector ideal de pesos 0-1.
type MajorProfile struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	Careers          []string `json:"careers"`
	Skills           []string `json:"skills"`
	AnalyticalWeight float64  `json:"analytical_weight"`
	CreativeWeight   float64  `json:"creative_weight"`
	SocialWeight     float64  `json:"social_weight"`
	TechnicalWeight  float64  `json:"technical_weight"`
}

func (m MajorProfile) Weights() [4]float64 {
	return [4]float64{m.AnalyticalWeight, m.CreativeWeight, m.SocialWeight, m.TechnicalWeight}
}

// WeightVector expone los pesos como vector para la columna pgvector.
func (m MajorProfile) WeightVector() []float32 {
	w := m.Weights()
	return []float32{float32(w[0]), float32(w[1]), float32(w[2]), float32(w[3])}
}

// NeutralAffinity se usa cuando no hay fila (major, tipo) en la tabla de afinidad.
const NeutralAffinity = 0.5

// MajorAffinity es la fuerza 0-1 entre un major y un tipo de personalidad.
type MajorAffinity struct {
	MajorID           string  `json:"major_id"`
	PersonalityTypeID string  `json:"personality_type_id"`
	Strength          float64 `json:"match_strength"`
}
