package appointment

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/salonworks/salon-scheduler/internal/audit"
	domain "github.com/salonworks/salon-scheduler/internal/domain/appointment"
	"github.com/salonworks/salon-scheduler/internal/domain/schedule"
	"github.com/salonworks/salon-scheduler/internal/httperr"
	"github.com/salonworks/salon-scheduler/internal/lock"
	"github.com/salonworks/salon-scheduler/internal/models"
	"github.com/salonworks/salon-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	BookingRequest

	CustomerName  string
	CustomerPhone string
	CustomerEmail string

	Notes string

	// Force cria mesmo com conflitos detectados (confirmação do usuário)
	Force bool
}

type CreateBookingResult struct {
	Appointments []models.Appointment          `json:"appointments"`
	Conflicts    []schedule.ConflictOccurrence `json:"conflicts"`

	// Quantas unidades deveriam ter sido criadas (fan-out best-effort:
	// Created < Expected significa grupo parcialmente criado)
	Expected int `json:"expected"`
	Created  int `json:"created"`
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo   domain.Repository
	store  schedule.Store
	locker *lock.SlotLocker
	audit  *audit.Dispatcher
}

func NewCreateBooking(
	repo domain.Repository,
	store schedule.Store,
	locker *lock.SlotLocker,
	auditd *audit.Dispatcher,
) *CreateBooking {
	return &CreateBooking{
		repo:   repo,
		store:  store,
		locker: locker,
		audit:  auditd,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*CreateBookingResult, error) {

	// --------------------------------------------------
	// 1. Salão + expansão do pedido em ocorrências
	// --------------------------------------------------
	salon, hours, occurrences, err := resolveBooking(ctx, uc.repo, in.BookingRequest)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Antecedência mínima
	// --------------------------------------------------
	minAdvance := salon.MinAdvanceMinutes
	if minAdvance <= 0 {
		minAdvance = 120
	}

	now := timezone.NowIn(salon.Timezone)
	if occurrences[0].Start.Before(now.Add(time.Duration(minAdvance) * time.Minute)) {
		return nil, httperr.ErrBusiness("too_soon")
	}

	// --------------------------------------------------
	// 3. Detecção de conflitos
	// --------------------------------------------------
	detector := schedule.NewDetector(uc.store, salon.ID, hours)

	conflicts, err := detector.DetectConflicts(ctx, in.EmployeeID, occurrences)
	if err != nil {
		if errors.Is(err, schedule.ErrEmployeeNotFound) {
			return nil, httperr.ErrBusiness("employee_not_found")
		}
		return nil, err
	}

	result := &CreateBookingResult{Conflicts: conflicts}

	if len(conflicts) > 0 && !in.Force {
		return result, httperr.ErrBusiness("schedule_conflict")
	}

	// --------------------------------------------------
	// 4. Cliente (get or create)
	// --------------------------------------------------
	customer, err := uc.repo.GetOrCreateCustomer(
		ctx,
		in.SalonID,
		in.CustomerName,
		in.CustomerPhone,
		in.CustomerEmail,
	)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 5. Trava consultiva por funcionário
	// --------------------------------------------------
	acquired, lockValue, lockErr := uc.locker.TryLock(ctx, in.EmployeeID)
	if lockErr != nil {
		// trava é best-effort: sem redis seguimos sem ela
		log.Println("booking lock unavailable:", lockErr)
	} else if !acquired {
		return nil, httperr.ErrBusiness("booking_in_progress")
	} else {
		defer func() {
			if err := uc.locker.Unlock(ctx, in.EmployeeID, lockValue); err != nil {
				log.Println("booking unlock failed:", err)
			}
		}()
	}

	// --------------------------------------------------
	// 6. Fan-out: um Appointment por unidade, todos com o
	//    mesmo recurring_group_id quando a série é recorrente.
	//    Sem rollback: falha no meio deixa o grupo parcial.
	// --------------------------------------------------
	var groupID *string
	if in.Recurring {
		id := uuid.NewString()
		groupID = &id
	}

	for _, occ := range occurrences {
		result.Expected += len(occ.Units)
	}

	for _, occ := range occurrences {
		for _, unit := range occ.Units {
			ap := models.Appointment{
				SalonID:          in.SalonID,
				EmployeeID:       in.EmployeeID,
				CustomerID:       customer.ID,
				ServiceID:        unit.ServiceID,
				StartTime:        unit.Start,
				EndTime:          unit.End,
				Status:           string(domain.InitialStatus()),
				RecurringGroupID: groupID,
				Notes:            in.Notes,
			}

			if err := uc.repo.CreateAppointment(ctx, &ap); err != nil {
				return result, err
			}

			result.Appointments = append(result.Appointments, ap)
			result.Created++
		}
	}

	// --------------------------------------------------
	// 7. Auditoria
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		SalonID:  in.SalonID,
		UserID:   &in.EmployeeID,
		Action:   "booking_created",
		Entity:   "appointment",
		EntityID: firstAppointmentID(result.Appointments),
		Metadata: map[string]any{
			"occurrences": len(occurrences),
			"units":       result.Created,
			"recurring":   in.Recurring,
			"forced":      in.Force,
		},
	})

	return result, nil
}

func firstAppointmentID(aps []models.Appointment) *uint {
	if len(aps) == 0 {
		return nil
	}
	return &aps[0].ID
}
