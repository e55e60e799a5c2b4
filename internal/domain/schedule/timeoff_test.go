package schedule

import (
	"testing"
	"time"
)

func TestCheckTimeOffWeekly(t *testing.T) {
	loc := saoPaulo(t)
	hours := BusinessHours{Location: loc, Open: "08:00", Close: "20:00"}

	// almoço toda quarta (ISO 3)
	rules := []TimeOffRule{
		WeeklyTimeOff{Days: []int{3}, From: "12:00", To: "13:00", Note: "lunch"},
	}

	// quarta 2026-01-07, 12:30–12:45 → dentro do bloqueio
	req := Interval{
		Start: time.Date(2026, 1, 7, 12, 30, 0, 0, loc),
		End:   time.Date(2026, 1, 7, 12, 45, 0, 0, loc),
	}

	conflicts := CheckTimeOff(rules, req, hours)
	if len(conflicts) != 1 {
		t.Fatalf("len(conflicts) = %d, want 1", len(conflicts))
	}

	c := conflicts[0]
	if c.Kind != ConflictTimeOff {
		t.Errorf("Kind = %s, want %s", c.Kind, ConflictTimeOff)
	}
	if c.Description != "lunch" {
		t.Errorf("Description = %q, want lunch", c.Description)
	}

	// o conflito reporta a janela bloqueada inteira
	wantStart := time.Date(2026, 1, 7, 12, 0, 0, 0, loc)
	wantEnd := time.Date(2026, 1, 7, 13, 0, 0, 0, loc)
	if !c.Start.Equal(wantStart) || !c.End.Equal(wantEnd) {
		t.Errorf("window = %v..%v, want %v..%v", c.Start, c.End, wantStart, wantEnd)
	}

	// quinta no mesmo horário: regra não vale
	reqThu := Interval{
		Start: time.Date(2026, 1, 8, 12, 30, 0, 0, loc),
		End:   time.Date(2026, 1, 8, 12, 45, 0, 0, loc),
	}
	if got := CheckTimeOff(rules, reqThu, hours); len(got) != 0 {
		t.Errorf("expected no conflict on thursday, got %d", len(got))
	}
}

func TestCheckTimeOffSundayIsIsoSeven(t *testing.T) {
	loc := saoPaulo(t)
	hours := BusinessHours{Location: loc, Open: "08:00", Close: "20:00"}

	rules := []TimeOffRule{
		WeeklyTimeOff{Days: []int{7}, From: "08:00", To: "20:00"},
	}

	// domingo 2026-01-04
	req := Interval{
		Start: time.Date(2026, 1, 4, 10, 0, 0, 0, loc),
		End:   time.Date(2026, 1, 4, 10, 30, 0, 0, loc),
	}

	if got := CheckTimeOff(rules, req, hours); len(got) != 1 {
		t.Errorf("expected sunday to match ISO day 7, got %d conflicts", len(got))
	}
}

func TestCheckTimeOffVariants(t *testing.T) {
	loc := saoPaulo(t)
	hours := BusinessHours{Location: loc, Open: "08:00", Close: "20:00"}

	exactDate := time.Date(2026, 2, 10, 0, 0, 0, 0, loc)

	tests := []struct {
		name string
		rule TimeOffRule
		req  Interval
		want int
	}{
		{
			name: "exact date matches",
			rule: ExactTimeOff{Date: exactDate, From: "09:00", To: "11:00"},
			req: Interval{
				Start: time.Date(2026, 2, 10, 9, 30, 0, 0, loc),
				End:   time.Date(2026, 2, 10, 10, 0, 0, 0, loc),
			},
			want: 1,
		},
		{
			name: "exact date other day",
			rule: ExactTimeOff{Date: exactDate, From: "09:00", To: "11:00"},
			req: Interval{
				Start: time.Date(2026, 2, 11, 9, 30, 0, 0, loc),
				End:   time.Date(2026, 2, 11, 10, 0, 0, 0, loc),
			},
			want: 0,
		},
		{
			name: "daily applies every day",
			rule: DailyTimeOff{From: "12:00", To: "13:00"},
			req: Interval{
				Start: time.Date(2026, 2, 11, 12, 15, 0, 0, loc),
				End:   time.Date(2026, 2, 11, 12, 45, 0, 0, loc),
			},
			want: 1,
		},
		{
			name: "daily outside window",
			rule: DailyTimeOff{From: "12:00", To: "13:00"},
			req: Interval{
				Start: time.Date(2026, 2, 11, 13, 0, 0, 0, loc),
				End:   time.Date(2026, 2, 11, 13, 30, 0, 0, loc),
			},
			want: 0,
		},
		{
			name: "monthly by day of month",
			rule: MonthlyTimeOff{Days: []int{11}, From: "08:00", To: "20:00"},
			req: Interval{
				Start: time.Date(2026, 2, 11, 9, 0, 0, 0, loc),
				End:   time.Date(2026, 2, 11, 9, 30, 0, 0, loc),
			},
			want: 1,
		},
		{
			name: "malformed rule is skipped",
			rule: DailyTimeOff{From: "xx", To: "13:00"},
			req: Interval{
				Start: time.Date(2026, 2, 11, 12, 15, 0, 0, loc),
				End:   time.Date(2026, 2, 11, 12, 45, 0, 0, loc),
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckTimeOff([]TimeOffRule{tt.rule}, tt.req, hours)
			if len(got) != tt.want {
				t.Errorf("len(conflicts) = %d, want %d", len(got), tt.want)
			}
		})
	}
}

func TestCheckTimeOffDefaultDescription(t *testing.T) {
	loc := saoPaulo(t)
	hours := BusinessHours{Location: loc, Open: "08:00", Close: "20:00"}

	rules := []TimeOffRule{DailyTimeOff{From: "12:00", To: "13:00"}}
	req := Interval{
		Start: time.Date(2026, 2, 11, 12, 15, 0, 0, loc),
		End:   time.Date(2026, 2, 11, 12, 45, 0, 0, loc),
	}

	got := CheckTimeOff(rules, req, hours)
	if len(got) != 1 || got[0].Description != "time off" {
		t.Errorf("expected default description %q, got %+v", "time off", got)
	}
}

func TestCheckSalonTimeOffOneShot(t *testing.T) {
	loc := saoPaulo(t)
	hours := BusinessHours{Location: loc, Open: "08:00", Close: "20:00"}

	blocks := []SalonTimeOff{
		{
			Start:       time.Date(2026, 3, 2, 14, 0, 0, 0, loc),
			DurationMin: 120,
			Note:        "maintenance",
		},
	}

	req := Interval{
		Start: time.Date(2026, 3, 2, 15, 0, 0, 0, loc),
		End:   time.Date(2026, 3, 2, 15, 30, 0, 0, loc),
	}

	got := CheckSalonTimeOff(blocks, req, hours)
	if len(got) != 1 {
		t.Fatalf("len(conflicts) = %d, want 1", len(got))
	}
	if got[0].Description != "maintenance" {
		t.Errorf("Description = %q", got[0].Description)
	}

	// outro dia: bloqueio não recorrente não se aplica
	reqOther := Interval{
		Start: time.Date(2026, 3, 3, 15, 0, 0, 0, loc),
		End:   time.Date(2026, 3, 3, 15, 30, 0, 0, loc),
	}
	if got := CheckSalonTimeOff(blocks, reqOther, hours); len(got) != 0 {
		t.Errorf("expected no conflict on another day, got %d", len(got))
	}
}

func TestCheckSalonTimeOffToClose(t *testing.T) {
	loc := saoPaulo(t)
	hours := BusinessHours{Location: loc, Open: "08:00", Close: "20:00"}

	blocks := []SalonTimeOff{
		{
			Start:   time.Date(2026, 3, 2, 16, 0, 0, 0, loc),
			ToClose: true,
		},
	}

	req := Interval{
		Start: time.Date(2026, 3, 2, 19, 0, 0, 0, loc),
		End:   time.Date(2026, 3, 2, 19, 30, 0, 0, loc),
	}

	got := CheckSalonTimeOff(blocks, req, hours)
	if len(got) != 1 {
		t.Fatalf("len(conflicts) = %d, want 1", len(got))
	}

	wantEnd := time.Date(2026, 3, 2, 20, 0, 0, 0, loc)
	if !got[0].End.Equal(wantEnd) {
		t.Errorf("End = %v, want close time %v", got[0].End, wantEnd)
	}
	if got[0].Description != "salon closed" {
		t.Errorf("Description = %q, want default", got[0].Description)
	}
}

func TestCheckSalonTimeOffRecurring(t *testing.T) {
	loc := saoPaulo(t)
	hours := BusinessHours{Location: loc, Open: "08:00", Close: "20:00"}

	created := time.Date(2026, 3, 2, 11, 30, 0, 0, loc) // segunda

	blocks := []SalonTimeOff{
		{
			Start:       time.Date(2026, 3, 2, 14, 0, 0, 0, loc),
			DurationMin: 60,
			Recurring:   true,
			Duration:    RecurringDuration{Value: 1, Unit: UnitMonths},
			Frequency:   RecurringFrequency{Value: 1, Unit: UnitWeeks},
			CreatedAt:   created,
		},
	}

	// duas semanas depois da criação, mesmo horário de parede
	req := Interval{
		Start: time.Date(2026, 3, 16, 14, 30, 0, 0, loc),
		End:   time.Date(2026, 3, 16, 15, 0, 0, 0, loc),
	}

	got := CheckSalonTimeOff(blocks, req, hours)
	if len(got) != 1 {
		t.Fatalf("expected recurring block to apply two weeks later, got %d", len(got))
	}

	// a janela usa a hora de parede do Start na data alvo
	wantStart := time.Date(2026, 3, 16, 14, 0, 0, 0, loc)
	if !got[0].Start.Equal(wantStart) {
		t.Errorf("Start = %v, want %v", got[0].Start, wantStart)
	}

	// dia fora da série (quinta)
	reqOff := Interval{
		Start: time.Date(2026, 3, 12, 14, 30, 0, 0, loc),
		End:   time.Date(2026, 3, 12, 15, 0, 0, 0, loc),
	}
	if got := CheckSalonTimeOff(blocks, reqOff, hours); len(got) != 0 {
		t.Errorf("expected no conflict outside the series, got %d", len(got))
	}

	// depois do fim do span (30 dias / 7 = 4, +1 → últimas datas 30/03)
	reqPast := Interval{
		Start: time.Date(2026, 4, 6, 14, 30, 0, 0, loc),
		End:   time.Date(2026, 4, 6, 15, 0, 0, 0, loc),
	}
	if got := CheckSalonTimeOff(blocks, reqPast, hours); len(got) != 0 {
		t.Errorf("expected series to end after its span, got %d", len(got))
	}
}
