package schedule

import (
	"time"

	"github.com/salonworks/salon-scheduler/internal/timezone"
)

// ===============================
// Folgas do funcionário
// ===============================

// TimeOffRule é uma variante por período: cada caso carrega apenas os
// campos de que precisa e decide sozinho se vale para a data alvo.
type TimeOffRule interface {
	// AppliesOn responde se a regra vale para a data de calendário alvo
	AppliesOn(date time.Time, loc *time.Location) bool

	// Window devolve a janela de parede bloqueada (from, to) no dia
	Window() (from, to string)

	Reason() string
}

// Dia ISO: 1=Segunda ... 7=Domingo
func isoWeekday(date time.Time) int {
	wd := int(date.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

type ExactTimeOff struct {
	Date time.Time
	From string
	To   string
	Note string
}

func (r ExactTimeOff) AppliesOn(date time.Time, loc *time.Location) bool {
	return timezone.SameDate(r.Date, date, loc)
}

func (r ExactTimeOff) Window() (string, string) { return r.From, r.To }
func (r ExactTimeOff) Reason() string           { return r.Note }

type DailyTimeOff struct {
	From string
	To   string
	Note string
}

func (r DailyTimeOff) AppliesOn(time.Time, *time.Location) bool { return true }
func (r DailyTimeOff) Window() (string, string)                 { return r.From, r.To }
func (r DailyTimeOff) Reason() string                           { return r.Note }

type WeeklyTimeOff struct {
	// Dias ISO (1=Seg ... 7=Dom)
	Days []int
	From string
	To   string
	Note string
}

func (r WeeklyTimeOff) AppliesOn(date time.Time, loc *time.Location) bool {
	day := isoWeekday(date.In(loc))
	for _, d := range r.Days {
		if d == day {
			return true
		}
	}
	return false
}

func (r WeeklyTimeOff) Window() (string, string) { return r.From, r.To }
func (r WeeklyTimeOff) Reason() string           { return r.Note }

type MonthlyTimeOff struct {
	Days []int
	From string
	To   string
	Note string
}

func (r MonthlyTimeOff) AppliesOn(date time.Time, loc *time.Location) bool {
	day := date.In(loc).Day()
	for _, d := range r.Days {
		if d == day {
			return true
		}
	}
	return false
}

func (r MonthlyTimeOff) Window() (string, string) { return r.From, r.To }
func (r MonthlyTimeOff) Reason() string           { return r.Note }

// CheckTimeOff avalia todas as regras do funcionário contra o intervalo
// pedido. Para cada regra que vale no dia, a janela de parede é convertida
// para instantes via o fuso do salão e testada com sobreposição meio-aberta.
// Regras com horário malformado são puladas (fail-open); a validação de
// entrada acontece na escrita, não aqui.
func CheckTimeOff(rules []TimeOffRule, req Interval, hours BusinessHours) []Conflict {
	loc := hours.loc()
	date := req.Start.In(loc)

	var conflicts []Conflict
	for _, rule := range rules {
		if !rule.AppliesOn(date, loc) {
			continue
		}

		from, to := rule.Window()
		blockedStart, errFrom := timezone.WallClockToInstant(date, from, loc)
		blockedEnd, errTo := timezone.WallClockToInstant(date, to, loc)
		if errFrom != nil || errTo != nil {
			continue
		}

		blocked := Interval{Start: blockedStart, End: blockedEnd}
		if !blocked.IsValid() || !blocked.Overlaps(req) {
			continue
		}

		desc := rule.Reason()
		if desc == "" {
			desc = "time off"
		}

		conflicts = append(conflicts, Conflict{
			Kind:        ConflictTimeOff,
			Start:       blockedStart,
			End:         blockedEnd,
			Description: desc,
		})
	}

	return conflicts
}

// ===============================
// Bloqueios em nível de salão
// ===============================

// SalonTimeOff é um bloqueio avulso (feriado, evento) com instante de
// início próprio. A recorrência, quando presente, usa as mesmas fórmulas
// de span/frequência dos agendamentos recorrentes, ancorada na criação do
// registro e casada apenas por data (a hora vem do StartTime do registro).
type SalonTimeOff struct {
	EmployeeID  uint
	Start       time.Time
	DurationMin int

	// ToClose bloqueia até o horário padrão de fechamento do salão
	ToClose bool

	Note string

	Recurring bool
	Duration  RecurringDuration
	Frequency RecurringFrequency
	CreatedAt time.Time
}

func (b SalonTimeOff) appliesOn(date time.Time, loc *time.Location) bool {
	if !b.Recurring {
		return timezone.SameDate(b.Start, date, loc)
	}

	freq := b.Frequency.Days()
	if freq <= 0 {
		return timezone.SameDate(b.Start, date, loc)
	}

	count := b.Duration.Days()/freq + 1
	anchor := timezone.DayStart(b.CreatedAt, loc)
	for i := 0; i < count; i++ {
		if timezone.SameDate(anchor.AddDate(0, 0, i*freq), date, loc) {
			return true
		}
	}
	return false
}

// CheckSalonTimeOff cruza os bloqueios de salão com o intervalo pedido
func CheckSalonTimeOff(blocks []SalonTimeOff, req Interval, hours BusinessHours) []Conflict {
	loc := hours.loc()
	date := req.Start.In(loc)

	var conflicts []Conflict
	for _, b := range blocks {
		if !b.appliesOn(date, loc) {
			continue
		}

		hour, min := b.Start.In(loc).Hour(), b.Start.In(loc).Minute()
		y, m, d := date.Date()
		blockedStart := time.Date(y, m, d, hour, min, 0, 0, loc)

		var blockedEnd time.Time
		if b.ToClose {
			end, err := timezone.WallClockToInstant(date, hours.Close, loc)
			if err != nil {
				continue
			}
			blockedEnd = end
		} else {
			blockedEnd = blockedStart.Add(time.Duration(b.DurationMin) * time.Minute)
		}

		blocked := Interval{Start: blockedStart, End: blockedEnd}
		if !blocked.IsValid() || !blocked.Overlaps(req) {
			continue
		}

		desc := b.Note
		if desc == "" {
			desc = "salon closed"
		}

		conflicts = append(conflicts, Conflict{
			Kind:        ConflictTimeOff,
			Start:       blockedStart,
			End:         blockedEnd,
			Description: desc,
		})
	}

	return conflicts
}
