package domain

import "time"

// CollectorState describe el ciclo de vida de un formulario por rasgo.
type CollectorState string

const (
	CollectorOpen      CollectorState = "open"
	CollectorAnswering CollectorState = "answering"
	CollectorSubmitted CollectorState = "submitted"
	CollectorAbandoned CollectorState = "abandoned"
)

// Closed reports whether no further answers are accepted.
func (s CollectorState) Closed() bool {
	return s == CollectorSubmitted || s == CollectorAbandoned
}

// TraitScore is one aggregate entry.
type TraitScore struct {
	Code  TraitCode `json:"code"`
	Score int       `json:"score"`
}

// Progress resume el avance de una sesion de evaluacion.
type Progress struct {
	SessionID  string                       `json:"session_id"`
	Mode       string                       `json:"mode"`
	Collectors map[TraitCode]CollectorState `json:"collectors"`
	Submitted  []TraitCode                  `json:"submitted"`
	Missing    []TraitCode                  `json:"missing"`
	Ready      bool                         `json:"ready"`
	CreatedAt  time.Time                    `json:"created_at"`
}

// Report is the dominant trait summary shown to the user.
type Report struct {
	Dominant    TraitCode   `json:"dominant"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Careers     []string    `json:"careers"`
	Score       int         `json:"score"`
	Text        string      `json:"text"`
	Partial     bool        `json:"partial"`
	Missing     []TraitCode `json:"missing,omitempty"`
}

type Slice struct {
	Code       TraitCode `json:"code"`
	Name       string    `json:"name"`
	Score      int       `json:"score"`
	Percentage float64   `json:"percentage"`
}

// Distribution is the share of the total held by every scored trait.
type Distribution struct {
	Slices  []Slice     `json:"slices"`
	Total   int         `json:"total"`
	Partial bool        `json:"partial"`
	Missing []TraitCode `json:"missing,omitempty"`
}

// SubmitResult informa el puntaje escrito y cuantas respuestas quedaron en el valor por defecto.
type SubmitResult struct {
	Code      TraitCode `json:"code"`
	Score     int       `json:"score"`
	Defaulted int       `json:"defaulted"`
}
