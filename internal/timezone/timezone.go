package timezone

import (
	"errors"
	"strings"
	"time"
)

const DefaultTimezone = "America/Sao_Paulo"

// Retornado quando uma string de horário não bate com nenhum formato aceito
var ErrInvalidTimeFormat = errors.New("timezone: invalid time format")

// Formatos de hora aceitos: 24h e 12h com AM/PM
var clockLayouts = []string{"15:04", "3:04 PM", "3:04PM"}

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, _ := time.LoadLocation(DefaultTimezone)
	return loc
}

func Now() time.Time {
	return time.Now().In(Location(DefaultTimezone))
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// ParseClock interpreta uma hora do dia ("09:30", "2:15 PM").
// Nunca usa offset numérico fixo: o resultado só carrega hora e minuto.
func ParseClock(s string) (hour, minute int, err error) {
	raw := strings.ToUpper(strings.TrimSpace(s))
	for _, layout := range clockLayouts {
		if t, perr := time.Parse(layout, raw); perr == nil {
			return t.Hour(), t.Minute(), nil
		}
	}
	return 0, 0, ErrInvalidTimeFormat
}

// WallClockToInstant combina uma data de calendário com uma hora do dia
// no fuso informado, resolvendo pelas regras reais da zona IANA
// (inclusive transições de horário de verão).
func WallClockToInstant(date time.Time, clock string, loc *time.Location) (time.Time, error) {
	hour, minute, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}

	y, m, d := date.In(loc).Date()
	return time.Date(y, m, d, hour, minute, 0, 0, loc), nil
}

// InstantToWallClock é a inversa: projeta um instante absoluto de volta
// para data e hora de parede no fuso informado.
func InstantToWallClock(instant time.Time, loc *time.Location) (date string, clock string) {
	local := instant.In(loc)
	return local.Format("2006-01-02"), local.Format("15:04")
}

// DayStart retorna a meia-noite local da data do instante
func DayStart(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// SameDate compara apenas a data de calendário de dois instantes no fuso
func SameDate(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}
