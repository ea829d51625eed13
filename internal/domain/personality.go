package domain

import "time"

// PersonalityAxes guarda el valor continuo 0-1 de cada eje.
type PersonalityAxes struct {
	EI float64 `json:"ei"`
	SN float64 `json:"sn"`
	TF float64 `json:"tf"`
	JP float64 `json:"jp"`
}

// PersonalityType es el resultado del clasificador: codigo de 4 letras y ejes.
type PersonalityType struct {
	Code   string          `json:"code"`
	Scores PersonalityAxes `json:"scores"`
}

// PersonalityTypeRecord es la fila persistida del registro de tipos.
type PersonalityTypeRecord struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// Pares de letras por eje, en el orden en que se arma el codigo.
var personalityAxisLetters = [4][2]byte{
	{'E', 'I'},
	{'N', 'S'},
	{'T', 'F'},
	{'P', 'J'},
}

// IsValidTypeCode reporta si code es una de las 16 combinaciones posibles.
func IsValidTypeCode(code string) bool {
	if len(code) != len(personalityAxisLetters) {
		return false
	}
	for i, pair := range personalityAxisLetters {
		if code[i] != pair[0] && code[i] != pair[1] {
			return false
		}
	}
	return true
}

// AllTypeCodes devuelve los 16 codigos en orden estable.
func AllTypeCodes() []string {
	codes := make([]string, 0, 16)
	for mask := 0; mask < 16; mask++ {
		code := make([]byte, len(personalityAxisLetters))
		for i, pair := range personalityAxisLetters {
			code[i] = pair[(mask>>(3-i))&1]
		}
		codes = append(codes, string(code))
	}
	return codes
}
