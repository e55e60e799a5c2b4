package repository

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	domain "github.com/salonworks/salon-scheduler/internal/domain/appointment"
	"github.com/salonworks/salon-scheduler/internal/domain/schedule"
	"github.com/salonworks/salon-scheduler/internal/models"
)

type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

// --------------------------------------------------
// Salon
// --------------------------------------------------

func (r *ScheduleGormRepository) GetSalonByID(
	ctx context.Context,
	id uint,
) (*models.Salon, error) {

	var salon models.Salon
	if err := r.db.WithContext(ctx).First(&salon, id).Error; err != nil {
		return nil, err
	}
	return &salon, nil
}

// --------------------------------------------------
// Employee
// --------------------------------------------------

func (r *ScheduleGormRepository) GetSalonEmployee(
	ctx context.Context,
	salonID uint,
	employeeID uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).
		Where("id = ? AND salon_id = ?", employeeID, salonID).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetEmployee carrega o funcionário já resolvido para o motor de
// agenda: janelas semanais ativas + regras de folga convertidas para
// as variantes de domínio.
func (r *ScheduleGormRepository) GetEmployee(
	ctx context.Context,
	employeeID uint,
) (*schedule.Employee, error) {

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, employeeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, schedule.ErrEmployeeNotFound
		}
		return nil, err
	}

	var hours []models.WorkingHours
	if err := r.db.WithContext(ctx).
		Where("employee_id = ? AND active = ?", employeeID, true).
		Order("weekday ASC").
		Find(&hours).Error; err != nil {
		return nil, err
	}

	var rules []models.TimeOffRule
	if err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("position ASC, id ASC").
		Find(&rules).Error; err != nil {
		return nil, err
	}

	emp := &schedule.Employee{
		ID:   user.ID,
		Name: user.Name,
	}

	for _, wh := range hours {
		emp.WorkingTimes = append(emp.WorkingTimes, schedule.WorkingTime{
			Weekday: time.Weekday(wh.Weekday),
			From:    wh.StartTime,
			To:      wh.EndTime,
		})
	}

	for _, row := range rules {
		if rule := timeOffRuleFromRow(row); rule != nil {
			emp.TimeOff = append(emp.TimeOff, rule)
		}
	}

	return emp, nil
}

// Converte a linha persistida para a variante de domínio do período.
// Linhas com discriminador desconhecido são ignoradas.
func timeOffRuleFromRow(row models.TimeOffRule) schedule.TimeOffRule {
	switch row.Period {
	case models.TimeOffPeriodExact:
		if row.Date == nil {
			return nil
		}
		return schedule.ExactTimeOff{
			Date: *row.Date,
			From: row.FromTime,
			To:   row.ToTime,
			Note: row.Reason,
		}
	case models.TimeOffPeriodDaily:
		return schedule.DailyTimeOff{
			From: row.FromTime,
			To:   row.ToTime,
			Note: row.Reason,
		}
	case models.TimeOffPeriodWeekly:
		return schedule.WeeklyTimeOff{
			Days: parseDayList(row.DaysOfWeek),
			From: row.FromTime,
			To:   row.ToTime,
			Note: row.Reason,
		}
	case models.TimeOffPeriodMonthly:
		return schedule.MonthlyTimeOff{
			Days: parseDayList(row.DaysOfMonth),
			From: row.FromTime,
			To:   row.ToTime,
			Note: row.Reason,
		}
	default:
		return nil
	}
}

func parseDayList(csv string) []int {
	var days []int
	for _, part := range strings.Split(csv, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if day, err := strconv.Atoi(part); err == nil {
			days = append(days, day)
		}
	}
	return days
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *ScheduleGormRepository) GetService(
	ctx context.Context,
	salonID uint,
	serviceID uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND salon_id = ?", serviceID, salonID).
		First(&svc).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

// --------------------------------------------------
// Customer
// --------------------------------------------------

func (r *ScheduleGormRepository) GetOrCreateCustomer(
	ctx context.Context,
	salonID uint,
	name string,
	phone string,
	email string,
) (*models.Customer, error) {

	var customer models.Customer
	err := r.db.WithContext(ctx).
		Where("salon_id = ? AND phone = ?", salonID, phone).
		First(&customer).Error

	if err == nil {
		return &customer, nil
	}

	customer = models.Customer{
		SalonID: salonID,
		Name:    name,
		Phone:   phone,
		Email:   email,
	}

	if err := r.db.WithContext(ctx).Create(&customer).Error; err != nil {
		return nil, err
	}

	return &customer, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *ScheduleGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *ScheduleGormRepository) GetAppointmentForEmployee(
	ctx context.Context,
	appointmentID uint,
	employeeID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND employee_id = ?", appointmentID, employeeID).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *ScheduleGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

func (r *ScheduleGormRepository) ListGroupAppointments(
	ctx context.Context,
	salonID uint,
	groupID string,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where("salon_id = ? AND recurring_group_id = ?", salonID, groupID).
		Order("start_time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}

	return aps, nil
}

// OverlappingAppointments devolve os agendamentos não cancelados que se
// sobrepõem ao intervalo (meio-aberto: start_time < fim AND end_time > início)
func (r *ScheduleGormRepository) OverlappingAppointments(
	ctx context.Context,
	employeeID uint,
	start time.Time,
	end time.Time,
) ([]schedule.BookedSlot, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Where(
			"employee_id = ? AND status <> 'cancelled' AND start_time < ? AND end_time > ?",
			employeeID, end, start,
		).
		Order("start_time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}

	slots := make([]schedule.BookedSlot, 0, len(aps))
	for _, ap := range aps {
		slots = append(slots, schedule.BookedSlot{
			ID:          ap.ID,
			Start:       ap.StartTime,
			End:         ap.EndTime,
			ServiceName: ap.Service.Name,
		})
	}

	return slots, nil
}

// --------------------------------------------------
// Salon time off
// --------------------------------------------------

// ListSalonTimeOff devolve os bloqueios do salão que valem para o
// funcionário: os gerais (employee_id = 0) e os direcionados a ele.
// O filtro por salon_id impede que bloqueios gerais de outro salão
// vazem para a detecção de conflitos deste.
func (r *ScheduleGormRepository) ListSalonTimeOff(
	ctx context.Context,
	salonID uint,
	employeeID uint,
) ([]schedule.SalonTimeOff, error) {

	var rows []models.AppointmentTimeOff
	if err := r.db.WithContext(ctx).
		Where(
			"salon_id = ? AND (employee_id = ? OR employee_id = 0)",
			salonID, employeeID,
		).
		Order("start_time ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	blocks := make([]schedule.SalonTimeOff, 0, len(rows))
	for _, row := range rows {
		blocks = append(blocks, schedule.SalonTimeOff{
			EmployeeID:  row.EmployeeID,
			Start:       row.StartTime,
			DurationMin: row.DurationMin,
			ToClose:     row.ToClose,
			Note:        row.Reason,
			Recurring:   row.Recurring,
			Duration: schedule.RecurringDuration{
				Value: row.DurationValue,
				Unit:  schedule.DurationUnit(row.DurationUnit),
			},
			Frequency: schedule.RecurringFrequency{
				Value: row.FrequencyValue,
				Unit:  schedule.DurationUnit(row.FrequencyUnit),
			},
			CreatedAt: row.CreatedAt,
		})
	}

	return blocks, nil
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *ScheduleGormRepository) ListAppointmentsForDay(
	ctx context.Context,
	employeeID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("start_time", "end_time").
		Where(
			"employee_id = ? AND status = 'scheduled' AND start_time >= ? AND start_time < ?",
			employeeID, start, end,
		).
		Order("start_time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}

	return aps, nil
}

func (r *ScheduleGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	employeeID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var aps []models.Appointment

	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Service").
		Where(
			"employee_id = ? AND start_time >= ? AND start_time < ?",
			employeeID, start, end,
		).
		Order("start_time ASC").
		Find(&aps).Error

	if err != nil {
		return nil, err
	}

	return aps, nil
}

// Compile-time checks
var (
	_ domain.Repository = (*ScheduleGormRepository)(nil)
	_ schedule.Store    = (*ScheduleGormRepository)(nil)
)
