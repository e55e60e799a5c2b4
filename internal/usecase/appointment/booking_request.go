package appointment

import (
	"context"
	"time"

	domain "github.com/salonworks/salon-scheduler/internal/domain/appointment"
	"github.com/salonworks/salon-scheduler/internal/domain/schedule"
	"github.com/salonworks/salon-scheduler/internal/httperr"
	"github.com/salonworks/salon-scheduler/internal/models"
	"github.com/salonworks/salon-scheduler/internal/timezone"
)

// ======================================================
// PEDIDO DE RESERVA (compartilhado entre preview e create)
// ======================================================

type ServiceRequest struct {
	ServiceID uint `json:"service_id"`
	Quantity  int  `json:"quantity"`
}

type BookingRequest struct {
	SalonID    uint
	EmployeeID uint

	Date string
	Time string

	Items []ServiceRequest

	Recurring bool
	Duration  schedule.RecurringDuration
	Frequency schedule.RecurringFrequency
}

// resolveBooking transforma o pedido cru em ocorrências concretas:
// resolve o fuso do salão, combina data + hora de parede, carrega a
// duração de cada serviço e expande a recorrência.
func resolveBooking(
	ctx context.Context,
	repo domain.Repository,
	req BookingRequest,
) (*models.Salon, schedule.BusinessHours, []schedule.Occurrence, error) {

	salon, err := repo.GetSalonByID(ctx, req.SalonID)
	if err != nil {
		return nil, schedule.BusinessHours{}, nil, err
	}

	// o funcionário precisa pertencer ao salão do pedido
	if _, err := repo.GetSalonEmployee(ctx, req.SalonID, req.EmployeeID); err != nil {
		return nil, schedule.BusinessHours{}, nil, httperr.ErrBusiness("employee_not_found")
	}

	loc := timezone.Location(salon.Timezone)

	date, err := time.ParseInLocation("2006-01-02", req.Date, loc)
	if err != nil {
		return nil, schedule.BusinessHours{}, nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	anchor, err := timezone.WallClockToInstant(date, req.Time, loc)
	if err != nil {
		return nil, schedule.BusinessHours{}, nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	if len(req.Items) == 0 {
		return nil, schedule.BusinessHours{}, nil, httperr.ErrBusiness("missing_services")
	}

	items := make([]schedule.ServiceItem, 0, len(req.Items))
	for _, it := range req.Items {
		svc, err := repo.GetService(ctx, req.SalonID, it.ServiceID)
		if err != nil || !svc.Active {
			return nil, schedule.BusinessHours{}, nil, httperr.ErrBusiness("service_not_found")
		}

		items = append(items, schedule.ServiceItem{
			ServiceID:   svc.ID,
			DurationMin: svc.DurationMin,
			Quantity:    it.Quantity,
		})
	}

	spec := schedule.RecurrenceSpec{
		AnchorStart: anchor,
		Items:       items,
		Recurring:   req.Recurring,
		Duration:    req.Duration,
		Frequency:   req.Frequency,
	}

	hours := schedule.BusinessHours{
		Location: loc,
		Open:     salon.OpenTime,
		Close:    salon.CloseTime,
	}

	return salon, hours, schedule.GenerateOccurrences(spec), nil
}
