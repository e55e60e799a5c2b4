package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/salonworks/salon-scheduler/internal/domain/schedule"
	"github.com/salonworks/salon-scheduler/internal/httperr"
	"github.com/salonworks/salon-scheduler/internal/lock"
)

func newCreateBooking(repo *fakeRepo, store *fakeScheduleStore) *CreateBooking {
	return NewCreateBooking(repo, store, lock.NewSlotLocker(nil, 0), nil)
}

func futureBookingRequest() BookingRequest {
	// bem no futuro para nunca esbarrar na antecedência mínima
	return BookingRequest{
		SalonID:    1,
		EmployeeID: 2,
		Date:       "2030-01-07", // segunda
		Time:       "10:00",
		Items:      []ServiceRequest{{ServiceID: 10, Quantity: 1}},
	}
}

func TestCreateBookingSimple(t *testing.T) {
	repo := newFakeRepo()
	store := &fakeScheduleStore{employee: allWeekEmployee(2)}
	uc := newCreateBooking(repo, store)

	result, err := uc.Execute(context.Background(), CreateBookingInput{
		BookingRequest: futureBookingRequest(),
		CustomerName:   "Ana",
		CustomerPhone:  "11999990000",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Expected != 1 || result.Created != 1 {
		t.Errorf("expected/created = %d/%d, want 1/1", result.Expected, result.Created)
	}
	if len(repo.created) != 1 {
		t.Fatalf("len(created) = %d, want 1", len(repo.created))
	}

	ap := repo.created[0]
	if ap.Status != "scheduled" {
		t.Errorf("Status = %q, want scheduled", ap.Status)
	}
	if ap.RecurringGroupID != nil {
		t.Error("simple booking must not carry a recurring group id")
	}
	if !ap.EndTime.Equal(ap.StartTime.Add(30 * time.Minute)) {
		t.Errorf("EndTime = %v, want start+30m", ap.EndTime)
	}
}

func TestCreateBookingRecurringSharesGroupID(t *testing.T) {
	repo := newFakeRepo()
	store := &fakeScheduleStore{employee: allWeekEmployee(2)}
	uc := newCreateBooking(repo, store)

	req := futureBookingRequest()
	req.Recurring = true
	req.Duration = schedule.RecurringDuration{Value: 1, Unit: schedule.UnitMonths}
	req.Frequency = schedule.RecurringFrequency{Value: 1, Unit: schedule.UnitWeeks}

	result, err := uc.Execute(context.Background(), CreateBookingInput{
		BookingRequest: req,
		CustomerName:   "Ana",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 30/7 = 4, +1 ocorrências, uma unidade cada
	if result.Created != 5 {
		t.Fatalf("Created = %d, want 5", result.Created)
	}

	groupID := repo.created[0].RecurringGroupID
	if groupID == nil || *groupID == "" {
		t.Fatal("recurring booking must carry a group id")
	}
	for i, ap := range repo.created {
		if ap.RecurringGroupID == nil || *ap.RecurringGroupID != *groupID {
			t.Errorf("appointment %d: group id differs", i)
		}
	}
}

func TestCreateBookingConflictWithoutForce(t *testing.T) {
	repo := newFakeRepo()
	// funcionário sem janela nenhuma: toda ocorrência conflita
	store := &fakeScheduleStore{employee: allWeekEmployee(2)}
	store.employee.WorkingTimes = nil

	uc := newCreateBooking(repo, store)

	result, err := uc.Execute(context.Background(), CreateBookingInput{
		BookingRequest: futureBookingRequest(),
		CustomerName:   "Ana",
	})

	if !httperr.IsBusiness(err, "schedule_conflict") {
		t.Fatalf("err = %v, want schedule_conflict", err)
	}
	if result == nil || len(result.Conflicts) == 0 {
		t.Fatal("expected the conflicts to come back with the error")
	}
	if len(repo.created) != 0 {
		t.Errorf("nothing should be created on conflict, got %d", len(repo.created))
	}
}

func TestCreateBookingForceOverridesConflicts(t *testing.T) {
	repo := newFakeRepo()
	store := &fakeScheduleStore{employee: allWeekEmployee(2)}
	store.employee.WorkingTimes = nil

	uc := newCreateBooking(repo, store)

	result, err := uc.Execute(context.Background(), CreateBookingInput{
		BookingRequest: futureBookingRequest(),
		CustomerName:   "Ana",
		Force:          true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Created != 1 {
		t.Errorf("Created = %d, want 1", result.Created)
	}
	// os conflitos continuam reportados mesmo quando forçado
	if len(result.Conflicts) == 0 {
		t.Error("forced booking should still report the conflicts")
	}
}

func TestCreateBookingTooSoon(t *testing.T) {
	repo := newFakeRepo()
	store := &fakeScheduleStore{employee: allWeekEmployee(2)}
	uc := newCreateBooking(repo, store)

	loc, _ := time.LoadLocation("America/Sao_Paulo")
	soon := time.Now().In(loc).Add(10 * time.Minute)

	req := futureBookingRequest()
	req.Date = soon.Format("2006-01-02")
	req.Time = soon.Format("15:04")

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		BookingRequest: req,
		CustomerName:   "Ana",
	})

	if !httperr.IsBusiness(err, "too_soon") {
		t.Errorf("err = %v, want too_soon", err)
	}
}

func TestCreateBookingValidation(t *testing.T) {
	repo := newFakeRepo()
	store := &fakeScheduleStore{employee: allWeekEmployee(2)}
	uc := newCreateBooking(repo, store)

	tests := []struct {
		name     string
		mutate   func(*BookingRequest)
		wantCode string
	}{
		{
			name:     "bad date",
			mutate:   func(r *BookingRequest) { r.Date = "07/01/2030" },
			wantCode: "invalid_date_or_time",
		},
		{
			name:     "bad time",
			mutate:   func(r *BookingRequest) { r.Time = "25:99" },
			wantCode: "invalid_date_or_time",
		},
		{
			name:     "no services",
			mutate:   func(r *BookingRequest) { r.Items = nil },
			wantCode: "missing_services",
		},
		{
			name:     "unknown service",
			mutate:   func(r *BookingRequest) { r.Items = []ServiceRequest{{ServiceID: 99}} },
			wantCode: "service_not_found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := futureBookingRequest()
			tt.mutate(&req)

			_, err := uc.Execute(context.Background(), CreateBookingInput{
				BookingRequest: req,
				CustomerName:   "Ana",
			})
			if !httperr.IsBusiness(err, tt.wantCode) {
				t.Errorf("err = %v, want %s", err, tt.wantCode)
			}
		})
	}
}

func TestCreateBookingInactiveService(t *testing.T) {
	repo := newFakeRepo()
	repo.services[10].Active = false
	store := &fakeScheduleStore{employee: allWeekEmployee(2)}
	uc := newCreateBooking(repo, store)

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		BookingRequest: futureBookingRequest(),
		CustomerName:   "Ana",
	})
	if !httperr.IsBusiness(err, "service_not_found") {
		t.Errorf("err = %v, want service_not_found", err)
	}
}
