package service

import "recruitment-buddy/internal/domain"

// Umbral a partir del cual un eje toma la letra "alta" (E, N, T, P).
const axisThreshold = 0.5

// NormalizeScores aplica min-max sobre las cuatro subescalas de una sola entrega:
// el minimo pasa a 0 y el maximo a 1. Si los cuatro valores son iguales
// devuelve el vector constante 0.5.
func NormalizeScores(raw domain.RawScores) domain.NormalizedScores {
	vals := raw.Values()
	lo, hi := vals[0], vals[0]
	for _, v := range vals[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	var out [4]float64
	span := hi - lo
	for i, v := range vals {
		if span == 0 {
			out[i] = 0.5
			continue
		}
		out[i] = (v - lo) / span
	}
	return domain.NormalizedScores{
		Analytical: out[0],
		Creative:   out[1],
		Social:     out[2],
		Technical:  out[3],
	}
}

// ClassifyPersonality deriva el codigo de 4 letras y los ejes continuos.
func ClassifyPersonality(raw domain.RawScores) domain.PersonalityType {
	axes := domain.PersonalityAxes{
		EI: raw.Social / 10.0,
		SN: raw.Creative / 10.0,
		TF: (raw.Analytical + raw.Technical) / 20.0,
		JP: (raw.Technical + raw.Creative) / 20.0,
	}

	code := []byte{
		axisLetter(axes.EI, 'E', 'I'),
		axisLetter(axes.SN, 'N', 'S'),
		axisLetter(axes.TF, 'T', 'F'),
		axisLetter(axes.JP, 'P', 'J'),
	}
	return domain.PersonalityType{Code: string(code), Scores: axes}
}

func axisLetter(value float64, high, low byte) byte {
	if value >= axisThreshold {
		return high
	}
	return low
}
