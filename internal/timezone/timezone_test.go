package timezone

import (
	"errors"
	"testing"
	"time"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		hour    int
		minute  int
		wantErr bool
	}{
		{"09:30", 9, 30, false},
		{"15:04", 15, 4, false},
		{"00:00", 0, 0, false},
		{"2:15 PM", 14, 15, false},
		{"2:15PM", 14, 15, false},
		{"12:00 AM", 0, 0, false},
		{"12:00 PM", 12, 0, false},
		{"  08:00  ", 8, 0, false},
		{"2:15 pm", 14, 15, false},
		{"", 0, 0, true},
		{"25:00", 0, 0, true},
		{"abc", 0, 0, true},
	}

	for _, tt := range tests {
		h, m, err := ParseClock(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidTimeFormat) {
				t.Errorf("ParseClock(%q) err = %v, want ErrInvalidTimeFormat", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClock(%q) unexpected error: %v", tt.in, err)
			continue
		}
		if h != tt.hour || m != tt.minute {
			t.Errorf("ParseClock(%q) = %d:%d, want %d:%d", tt.in, h, m, tt.hour, tt.minute)
		}
	}
}

func TestWallClockToInstant(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		t.Fatal(err)
	}

	date := time.Date(2026, 3, 10, 0, 0, 0, 0, loc)

	got, err := WallClockToInstant(date, "14:30", loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Hour() != 14 || got.Minute() != 30 {
		t.Errorf("wall clock = %02d:%02d, want 14:30", got.Hour(), got.Minute())
	}
	if got.Location() != loc {
		t.Errorf("location = %v, want %v", got.Location(), loc)
	}

	if _, err := WallClockToInstant(date, "99:99", loc); err == nil {
		t.Error("expected error for malformed clock")
	}
}

func TestInstantToWallClock(t *testing.T) {
	loc, _ := time.LoadLocation("America/New_York")

	// 18:00 UTC = 14:00 em Nova York (EDT)
	instant := time.Date(2026, 6, 15, 18, 0, 0, 0, time.UTC)

	date, clock := InstantToWallClock(instant, loc)
	if date != "2026-06-15" {
		t.Errorf("date = %q, want 2026-06-15", date)
	}
	if clock != "14:00" {
		t.Errorf("clock = %q, want 14:00", clock)
	}
}

func TestSameDate(t *testing.T) {
	loc, _ := time.LoadLocation("America/Sao_Paulo")

	// 01:00 UTC do dia 16 ainda é dia 15 em São Paulo (UTC-3)
	a := time.Date(2026, 6, 16, 1, 0, 0, 0, time.UTC)
	b := time.Date(2026, 6, 15, 12, 0, 0, 0, loc)

	if !SameDate(a, b, loc) {
		t.Error("expected same calendar date in salon timezone")
	}
	if SameDate(a, b, time.UTC) {
		t.Error("expected different calendar dates in UTC")
	}
}

func TestDayStart(t *testing.T) {
	loc, _ := time.LoadLocation("America/Sao_Paulo")

	instant := time.Date(2026, 6, 15, 23, 45, 0, 0, loc)
	start := DayStart(instant, loc)

	if start.Hour() != 0 || start.Minute() != 0 {
		t.Errorf("DayStart = %v, want midnight", start)
	}
	if !SameDate(start, instant, loc) {
		t.Error("DayStart changed the calendar date")
	}
}

func TestLocationFallback(t *testing.T) {
	if loc := Location("Not/AZone"); loc.String() != DefaultTimezone {
		t.Errorf("Location fallback = %v, want %s", loc, DefaultTimezone)
	}
	if loc := Location("America/New_York"); loc.String() != "America/New_York" {
		t.Errorf("Location = %v, want America/New_York", loc)
	}
}
