package schedule

import "time"

// ===============================
// Recorrência
// ===============================

type DurationUnit string

const (
	UnitDays   DurationUnit = "days"
	UnitWeeks  DurationUnit = "weeks"
	UnitMonths DurationUnit = "months"
)

// Quanto tempo a série dura no total
type RecurringDuration struct {
	Value int          `json:"value"`
	Unit  DurationUnit `json:"unit"`
}

// Aproximação fixa: 1 mês = 30 dias
func (d RecurringDuration) Days() int {
	switch d.Unit {
	case UnitWeeks:
		return d.Value * 7
	case UnitMonths:
		return d.Value * 30
	default:
		return d.Value
	}
}

// Intervalo entre ocorrências (dias ou semanas)
type RecurringFrequency struct {
	Value int          `json:"value"`
	Unit  DurationUnit `json:"unit"`
}

func (f RecurringFrequency) Days() int {
	if f.Unit == UnitWeeks {
		return f.Value * 7
	}
	return f.Value
}

// Um serviço do pedido, possivelmente repetido (quantity > 1)
type ServiceItem struct {
	ServiceID   uint `json:"service_id"`
	DurationMin int  `json:"duration_min"`
	Quantity    int  `json:"quantity"`
}

type RecurrenceSpec struct {
	AnchorStart time.Time          `json:"anchor_start"`
	Items       []ServiceItem      `json:"items"`
	Recurring   bool               `json:"recurring"`
	Duration    RecurringDuration  `json:"duration"`
	Frequency   RecurringFrequency `json:"frequency"`
}

// OccurrenceCount = floor(span/frequência) + 1, mínimo 1
func (s RecurrenceSpec) OccurrenceCount() int {
	if !s.Recurring {
		return 1
	}

	freq := s.Frequency.Days()
	if freq <= 0 {
		return 1
	}

	count := s.Duration.Days()/freq + 1
	if count < 1 {
		return 1
	}
	return count
}

// Uma unidade concreta de reserva dentro de uma ocorrência
type BookingUnit struct {
	OccurrenceIndex int       `json:"occurrence_index"`
	SequenceIndex   int       `json:"sequence_index"`
	ServiceID       uint      `json:"service_id"`
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
}

type Occurrence struct {
	Index int       `json:"index"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`

	Units []BookingUnit `json:"units"`
}

func (o Occurrence) Interval() Interval {
	return Interval{Start: o.Start, End: o.End}
}

// GenerateOccurrences expande a especificação em ocorrências ordenadas.
// A ocorrência i começa na data da âncora + i×frequência em dias,
// preservando a hora de parede da âncora (AddDate avança a data de
// calendário sem fixar offset, então o horário de verão é respeitado).
// Dentro de uma ocorrência as unidades são encadeadas sem folga:
// cada unidade começa exatamente quando a anterior termina.
// Função pura, sem I/O.
func GenerateOccurrences(spec RecurrenceSpec) []Occurrence {
	count := spec.OccurrenceCount()
	freqDays := spec.Frequency.Days()

	occurrences := make([]Occurrence, 0, count)

	for i := 0; i < count; i++ {
		start := spec.AnchorStart
		if i > 0 {
			start = spec.AnchorStart.AddDate(0, 0, i*freqDays)
		}

		occ := Occurrence{Index: i, Start: start, End: start}

		seq := 0
		cursor := start
		for _, item := range spec.Items {
			qty := item.Quantity
			if qty < 1 {
				qty = 1
			}

			for q := 0; q < qty; q++ {
				end := cursor.Add(time.Duration(item.DurationMin) * time.Minute)
				occ.Units = append(occ.Units, BookingUnit{
					OccurrenceIndex: i,
					SequenceIndex:   seq,
					ServiceID:       item.ServiceID,
					Start:           cursor,
					End:             end,
				})
				cursor = end
				seq++
			}
		}

		occ.End = cursor
		occurrences = append(occurrences, occ)
	}

	return occurrences
}
