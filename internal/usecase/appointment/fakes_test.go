package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/salonworks/salon-scheduler/internal/domain/schedule"
	"github.com/salonworks/salon-scheduler/internal/models"
)

// ======================================================
// FAKE REPOSITORY
// ======================================================

type fakeRepo struct {
	salon    *models.Salon
	services map[uint]*models.Service
	customer *models.Customer

	created []models.Appointment
	nextID  uint

	// agendamentos existentes para GetAppointmentForEmployee / grupos
	appointments map[uint]*models.Appointment
	group        []models.Appointment

	// IDs cujo UpdateAppointment deve falhar
	failUpdate map[uint]bool
	updated    []uint

	// agendamentos do dia, já ordenados por início
	dayAppointments []models.Appointment
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		salon: &models.Salon{
			ID:        1,
			Timezone:  "America/Sao_Paulo",
			OpenTime:  "08:00",
			CloseTime: "20:00",
		},
		services: map[uint]*models.Service{
			10: {ID: 10, SalonID: 1, Name: "Haircut", DurationMin: 30, Active: true},
		},
		customer:     &models.Customer{ID: 5, SalonID: 1, Name: "Ana"},
		appointments: map[uint]*models.Appointment{},
		failUpdate:   map[uint]bool{},
	}
}

func (f *fakeRepo) GetSalonByID(ctx context.Context, id uint) (*models.Salon, error) {
	if f.salon == nil || f.salon.ID != id {
		return nil, errors.New("salon not found")
	}
	return f.salon, nil
}

func (f *fakeRepo) GetSalonEmployee(ctx context.Context, salonID, employeeID uint) (*models.User, error) {
	return &models.User{ID: employeeID, SalonID: salonID}, nil
}

func (f *fakeRepo) GetService(ctx context.Context, salonID, serviceID uint) (*models.Service, error) {
	svc, ok := f.services[serviceID]
	if !ok {
		return nil, errors.New("service not found")
	}
	return svc, nil
}

func (f *fakeRepo) GetOrCreateCustomer(ctx context.Context, salonID uint, name, phone, email string) (*models.Customer, error) {
	return f.customer, nil
}

func (f *fakeRepo) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	f.nextID++
	ap.ID = f.nextID
	f.created = append(f.created, *ap)
	return nil
}

func (f *fakeRepo) GetAppointmentForEmployee(ctx context.Context, appointmentID, employeeID uint) (*models.Appointment, error) {
	ap, ok := f.appointments[appointmentID]
	if !ok || ap.EmployeeID != employeeID {
		return nil, errors.New("not found")
	}
	return ap, nil
}

func (f *fakeRepo) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	if f.failUpdate[ap.ID] {
		return errors.New("update failed")
	}
	f.updated = append(f.updated, ap.ID)
	return nil
}

func (f *fakeRepo) ListGroupAppointments(ctx context.Context, salonID uint, groupID string) ([]models.Appointment, error) {
	return f.group, nil
}

func (f *fakeRepo) ListAppointmentsForDay(ctx context.Context, employeeID uint, start, end time.Time) ([]models.Appointment, error) {
	return f.dayAppointments, nil
}

func (f *fakeRepo) ListAppointmentsForPeriod(ctx context.Context, employeeID uint, start, end time.Time) ([]models.Appointment, error) {
	return nil, nil
}

// ======================================================
// FAKE SCHEDULE STORE
// ======================================================

type fakeScheduleStore struct {
	employee    *schedule.Employee
	employeeErr error
	booked      []schedule.BookedSlot

	// bloqueios por salão, espelhando a tabela persistida
	salonTimeOff map[uint][]schedule.SalonTimeOff
}

func (f *fakeScheduleStore) GetEmployee(ctx context.Context, employeeID uint) (*schedule.Employee, error) {
	if f.employeeErr != nil {
		return nil, f.employeeErr
	}
	return f.employee, nil
}

func (f *fakeScheduleStore) OverlappingAppointments(
	ctx context.Context,
	employeeID uint,
	start, end time.Time,
) ([]schedule.BookedSlot, error) {
	req := schedule.Interval{Start: start, End: end}
	var out []schedule.BookedSlot
	for _, slot := range f.booked {
		if (schedule.Interval{Start: slot.Start, End: slot.End}).Overlaps(req) {
			out = append(out, slot)
		}
	}
	return out, nil
}

func (f *fakeScheduleStore) ListSalonTimeOff(
	ctx context.Context,
	salonID uint,
	employeeID uint,
) ([]schedule.SalonTimeOff, error) {
	return f.salonTimeOff[salonID], nil
}

func allWeekEmployee(id uint) *schedule.Employee {
	days := []time.Weekday{
		time.Sunday, time.Monday, time.Tuesday, time.Wednesday,
		time.Thursday, time.Friday, time.Saturday,
	}
	wts := make([]schedule.WorkingTime, 0, len(days))
	for _, d := range days {
		wts = append(wts, schedule.WorkingTime{Weekday: d, From: "08:00", To: "20:00"})
	}
	return &schedule.Employee{ID: id, WorkingTimes: wts}
}
