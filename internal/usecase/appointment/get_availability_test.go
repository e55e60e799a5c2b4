package appointment

import (
	"context"
	"testing"
	"time"

	domain "github.com/salonworks/salon-scheduler/internal/domain/appointment"
	"github.com/salonworks/salon-scheduler/internal/domain/schedule"
	"github.com/salonworks/salon-scheduler/internal/models"
)

func TestGetAvailability(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		t.Fatal(err)
	}

	repo := newFakeRepo()
	store := &fakeScheduleStore{
		employee: &schedule.Employee{
			ID: 2,
			WorkingTimes: []schedule.WorkingTime{
				{Weekday: time.Monday, From: "09:00", To: "12:00"},
			},
		},
	}

	// agendamento existente das 10:00 às 10:30
	repo.dayAppointments = []models.Appointment{
		{
			ID:         1,
			EmployeeID: 2,
			StartTime:  time.Date(2030, 1, 7, 10, 0, 0, 0, loc),
			EndTime:    time.Date(2030, 1, 7, 10, 30, 0, 0, loc),
			Status:     "scheduled",
		},
	}

	uc := NewGetAvailability(repo, store)

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		SalonID:    1,
		EmployeeID: 2,
		ServiceID:  10, // 30 minutos
		Date:       time.Date(2030, 1, 7, 0, 0, 0, 0, loc),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"09:00", "09:30", "10:30", "11:00", "11:30"}
	if len(slots) != len(want) {
		t.Fatalf("len(slots) = %d, want %d: %+v", len(slots), len(want), slots)
	}
	for i, s := range slots {
		if s.Start != want[i] {
			t.Errorf("slot %d: Start = %s, want %s", i, s.Start, want[i])
		}
	}
}

func TestGetAvailabilityBackToBackAppointments(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		t.Fatal(err)
	}

	repo := newFakeRepo()
	store := &fakeScheduleStore{
		employee: &schedule.Employee{
			ID: 2,
			WorkingTimes: []schedule.WorkingTime{
				{Weekday: time.Monday, From: "09:00", To: "12:00"},
			},
		},
	}

	// dois agendamentos emendados: 09:00–10:00 e 10:00–10:30.
	// O slot das 10:00 pertence ao segundo, não pode ser oferecido.
	repo.dayAppointments = []models.Appointment{
		{
			ID:         1,
			EmployeeID: 2,
			StartTime:  time.Date(2030, 1, 7, 9, 0, 0, 0, loc),
			EndTime:    time.Date(2030, 1, 7, 10, 0, 0, 0, loc),
			Status:     "scheduled",
		},
		{
			ID:         2,
			EmployeeID: 2,
			StartTime:  time.Date(2030, 1, 7, 10, 0, 0, 0, loc),
			EndTime:    time.Date(2030, 1, 7, 10, 30, 0, 0, loc),
			Status:     "scheduled",
		},
	}

	uc := NewGetAvailability(repo, store)

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		SalonID:    1,
		EmployeeID: 2,
		ServiceID:  10,
		Date:       time.Date(2030, 1, 7, 0, 0, 0, 0, loc),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"10:30", "11:00", "11:30"}
	if len(slots) != len(want) {
		t.Fatalf("len(slots) = %d, want %d: %+v", len(slots), len(want), slots)
	}
	for i, s := range slots {
		if s.Start != want[i] {
			t.Errorf("slot %d: Start = %s, want %s", i, s.Start, want[i])
		}
	}
}

func TestGetAvailabilityIgnoresOtherSalonBlocks(t *testing.T) {
	loc, _ := time.LoadLocation("America/Sao_Paulo")

	repo := newFakeRepo()
	store := &fakeScheduleStore{
		employee: &schedule.Employee{
			ID: 2,
			WorkingTimes: []schedule.WorkingTime{
				{Weekday: time.Monday, From: "09:00", To: "10:00"},
			},
		},
		// bloqueio geral de outro salão cobrindo a janela inteira
		salonTimeOff: map[uint][]schedule.SalonTimeOff{
			2: {
				{
					Start:       time.Date(2030, 1, 7, 8, 0, 0, 0, loc),
					DurationMin: 600,
					Note:        "holiday",
				},
			},
		},
	}

	uc := NewGetAvailability(repo, store)

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		SalonID:    1,
		EmployeeID: 2,
		ServiceID:  10,
		Date:       time.Date(2030, 1, 7, 0, 0, 0, 0, loc),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"09:00", "09:30"}
	if len(slots) != len(want) {
		t.Fatalf("len(slots) = %d, want %d: %+v", len(slots), len(want), slots)
	}
}

func TestGetAvailabilityDayOff(t *testing.T) {
	loc, _ := time.LoadLocation("America/Sao_Paulo")

	repo := newFakeRepo()
	store := &fakeScheduleStore{
		employee: &schedule.Employee{
			ID: 2,
			WorkingTimes: []schedule.WorkingTime{
				{Weekday: time.Monday, From: "09:00", To: "12:00"},
			},
		},
	}

	uc := NewGetAvailability(repo, store)

	// terça: nenhuma janela declarada
	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		SalonID:    1,
		EmployeeID: 2,
		ServiceID:  10,
		Date:       time.Date(2030, 1, 8, 0, 0, 0, 0, loc),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 0 {
		t.Errorf("expected no slots on a day off, got %+v", slots)
	}
}

func TestGetAvailabilitySkipsTimeOff(t *testing.T) {
	loc, _ := time.LoadLocation("America/Sao_Paulo")

	repo := newFakeRepo()
	store := &fakeScheduleStore{
		employee: &schedule.Employee{
			ID: 2,
			WorkingTimes: []schedule.WorkingTime{
				{Weekday: time.Monday, From: "09:00", To: "12:00"},
			},
			TimeOff: []schedule.TimeOffRule{
				schedule.DailyTimeOff{From: "09:30", To: "10:30", Note: "break"},
			},
		},
	}

	uc := NewGetAvailability(repo, store)

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		SalonID:    1,
		EmployeeID: 2,
		ServiceID:  10,
		Date:       time.Date(2030, 1, 7, 0, 0, 0, 0, loc),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"09:00", "10:30", "11:00", "11:30"}
	if len(slots) != len(want) {
		t.Fatalf("len(slots) = %d, want %d: %+v", len(slots), len(want), slots)
	}
	for i, s := range slots {
		if s.Start != want[i] {
			t.Errorf("slot %d: Start = %s, want %s", i, s.Start, want[i])
		}
	}
}

func TestPreviewConflictsReturnsOccurrences(t *testing.T) {
	repo := newFakeRepo()
	store := &fakeScheduleStore{employee: allWeekEmployee(2)}

	uc := NewPreviewConflicts(repo, store)

	req := futureBookingRequest()
	req.Recurring = true
	req.Duration = schedule.RecurringDuration{Value: 2, Unit: schedule.UnitWeeks}
	req.Frequency = schedule.RecurringFrequency{Value: 1, Unit: schedule.UnitWeeks}

	result, err := uc.Execute(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 14/7 = 2, +1
	if len(result.Occurrences) != 3 {
		t.Errorf("len(occurrences) = %d, want 3", len(result.Occurrences))
	}
	if len(result.Conflicts) != 0 {
		t.Errorf("expected clean preview, got %+v", result.Conflicts)
	}
}
