package appointment

import (
	"context"
	"time"

	domain "github.com/salonworks/salon-scheduler/internal/domain/appointment"
	"github.com/salonworks/salon-scheduler/internal/domain/schedule"
	"github.com/salonworks/salon-scheduler/internal/httperr"
	"github.com/salonworks/salon-scheduler/internal/timezone"
)

type GetAvailability struct {
	repo  domain.Repository
	store schedule.Store
}

func NewGetAvailability(
	repo domain.Repository,
	store schedule.Store,
) *GetAvailability {
	return &GetAvailability{repo: repo, store: store}
}

// Execute lista os horários livres de um funcionário para um serviço e
// uma data: varre a janela de trabalho em passos do tamanho do serviço
// e descarta os slots que batem em agendamento existente ou folga.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.TimeSlot, error) {

	salon, err := uc.repo.GetSalonByID(ctx, in.SalonID)
	if err != nil {
		return nil, err
	}

	service, err := uc.repo.GetService(ctx, in.SalonID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	employee, err := uc.store.GetEmployee(ctx, in.EmployeeID)
	if err != nil {
		return nil, httperr.ErrBusiness("employee_not_found")
	}

	loc := timezone.Location(salon.Timezone)
	weekday := in.Date.In(loc).Weekday()

	var window *schedule.WorkingTime
	for i := range employee.WorkingTimes {
		if employee.WorkingTimes[i].Weekday == weekday {
			window = &employee.WorkingTimes[i]
			break
		}
	}

	// dia sem janela declarada: nenhum slot
	if window == nil {
		return []domain.TimeSlot{}, nil
	}

	dayStart, err := timezone.WallClockToInstant(in.Date, window.From, loc)
	if err != nil {
		return []domain.TimeSlot{}, nil
	}
	dayEnd, err := timezone.WallClockToInstant(in.Date, window.To, loc)
	if err != nil {
		return []domain.TimeSlot{}, nil
	}

	appointments, err := uc.repo.ListAppointmentsForDay(
		ctx,
		in.EmployeeID,
		dayStart,
		dayEnd,
	)
	if err != nil {
		return nil, err
	}

	salonTimeOff, err := uc.store.ListSalonTimeOff(ctx, in.SalonID, in.EmployeeID)
	if err != nil {
		return nil, err
	}

	hours := schedule.BusinessHours{
		Location: loc,
		Open:     salon.OpenTime,
		Close:    salon.CloseTime,
	}

	slotDuration := time.Duration(service.DurationMin) * time.Minute
	var slots []domain.TimeSlot

	apIdx := 0

	for cur := dayStart; !cur.Add(slotDuration).After(dayEnd); cur = cur.Add(slotDuration) {

		slot := schedule.Interval{Start: cur, End: cur.Add(slotDuration)}

		// folgas do funcionário e bloqueios do salão
		if len(schedule.CheckTimeOff(employee.TimeOff, slot, hours)) > 0 {
			continue
		}
		if len(schedule.CheckSalonTimeOff(salonTimeOff, slot, hours)) > 0 {
			continue
		}

		// avança agendamentos já encerrados (fim <= início do slot;
		// intervalos meio-abertos, então fim exatamente no início não ocupa)
		for apIdx < len(appointments) && !appointments[apIdx].EndTime.After(slot.Start) {
			apIdx++
		}

		// restaram só agendamentos que terminam depois do início do slot,
		// ordenados por início: o primeiro deles começar antes do fim do
		// slot é o critério de ocupação
		conflict := apIdx < len(appointments) &&
			appointments[apIdx].StartTime.Before(slot.End)

		if !conflict {
			slots = append(slots, domain.TimeSlot{
				Start: slot.Start.In(loc).Format("15:04"),
				End:   slot.End.In(loc).Format("15:04"),
			})
		}
	}

	return slots, nil
}
