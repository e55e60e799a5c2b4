package schedule

import "time"

// ===============================
// Intervalos e conflitos
// ===============================

type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Overlaps testa sobreposição meio-aberta [start, end):
// há conflito sse a.Start < b.End && b.Start < a.End
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

func (iv Interval) IsValid() bool {
	return iv.Start.Before(iv.End)
}

type ConflictKind string

const (
	ConflictAppointment ConflictKind = "appointment"
	ConflictWorkingTime ConflictKind = "working_time"
	ConflictTimeOff     ConflictKind = "time_off"
)

type Conflict struct {
	Kind        ConflictKind `json:"kind"`
	Start       time.Time    `json:"start"`
	End         time.Time    `json:"end"`
	Description string       `json:"description"`
}

// Resultado por ocorrência: só entra na resposta quando há conflito
type ConflictOccurrence struct {
	OccurrenceIndex int        `json:"occurrence_index"`
	Start           time.Time  `json:"start"`
	End             time.Time  `json:"end"`
	Conflicts       []Conflict `json:"conflicts"`
}
