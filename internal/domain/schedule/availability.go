package schedule

import (
	"fmt"
	"time"

	"github.com/salonworks/salon-scheduler/internal/timezone"
)

// ===============================
// Disponibilidade (working time)
// ===============================

// Janela declarada do funcionário para um dia da semana
type WorkingTime struct {
	Weekday time.Weekday
	From    string
	To      string
}

// Janela padrão de funcionamento do salão
type BusinessHours struct {
	Location *time.Location
	Open     string
	Close    string
}

func (b BusinessHours) loc() *time.Location {
	if b.Location != nil {
		return b.Location
	}
	return time.UTC
}

// CheckWorkingTime avalia o intervalo pedido contra a janela do
// funcionário no dia da data pedida.
//
//   - Sem entrada para o weekday → o dia inteiro é bloqueado: um único
//     conflito cobrindo a janela padrão do salão.
//   - Com entrada → o intervalo precisa caber por completo em [from, to];
//     qualquer parte fora gera um conflito cobrindo o intervalo pedido
//     (não apenas o excedente).
//
// Entradas com horário malformado são tratadas como inexistentes
// (fail-open: a regra não se aplica, o dia vira não-trabalhado).
func CheckWorkingTime(workingTimes []WorkingTime, req Interval, hours BusinessHours) *Conflict {
	loc := hours.loc()
	weekday := req.Start.In(loc).Weekday()

	for _, wt := range workingTimes {
		if wt.Weekday != weekday {
			continue
		}

		from, errFrom := timezone.WallClockToInstant(req.Start, wt.From, loc)
		to, errTo := timezone.WallClockToInstant(req.Start, wt.To, loc)
		if errFrom != nil || errTo != nil || !to.After(from) {
			break
		}

		if !req.Start.Before(from) && !req.End.After(to) {
			return nil
		}

		return &Conflict{
			Kind:        ConflictWorkingTime,
			Start:       req.Start,
			End:         req.End,
			Description: fmt.Sprintf("outside working hours (%s - %s)", wt.From, wt.To),
		}
	}

	return notWorkingConflict(req, hours)
}

func notWorkingConflict(req Interval, hours BusinessHours) *Conflict {
	loc := hours.loc()

	start, errOpen := timezone.WallClockToInstant(req.Start, hours.Open, loc)
	end, errClose := timezone.WallClockToInstant(req.Start, hours.Close, loc)
	if errOpen != nil || errClose != nil || !end.After(start) {
		// janela padrão inválida: reporta sobre o próprio intervalo pedido
		start, end = req.Start, req.End
	}

	return &Conflict{
		Kind:        ConflictWorkingTime,
		Start:       start,
		End:         end,
		Description: "employee does not work on this day",
	}
}
