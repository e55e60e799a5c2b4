package appointment

import (
	"context"

	"github.com/salonworks/salon-scheduler/internal/audit"
	"github.com/salonworks/salon-scheduler/internal/domain/appointment"
	domain "github.com/salonworks/salon-scheduler/internal/domain/appointment"
	"github.com/salonworks/salon-scheduler/internal/httperr"
	"github.com/salonworks/salon-scheduler/internal/timezone"
)

// ======================================================
// CANCELAMENTO DE GRUPO RECORRENTE
// ======================================================

type CancelGroup struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancelGroup(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelGroup {
	return &CancelGroup{
		repo:  repo,
		audit: audit,
	}
}

type CancelGroupResult struct {
	CancelledIDs []uint `json:"cancelled_ids"`
	FailedIDs    []uint `json:"failed_ids"`

	// Irmãos já concluídos/cancelados ficam como estão
	SkippedIDs []uint `json:"skipped_ids"`
}

func (r CancelGroupResult) Partial() bool {
	return len(r.FailedIDs) > 0
}

// Execute cancela os irmãos ainda agendados de um grupo recorrente.
// Cada update é independente: não há atomicidade entre irmãos, então a
// operação pode terminar parcial — o resultado diz exatamente o que
// mudou, sem desfazer os que já foram cancelados.
func (uc *CancelGroup) Execute(
	ctx context.Context,
	salonID uint,
	employeeID uint,
	groupID string,
) (*CancelGroupResult, error) {

	salon, err := uc.repo.GetSalonByID(ctx, salonID)
	if err != nil {
		return nil, err
	}

	siblings, err := uc.repo.ListGroupAppointments(ctx, salonID, groupID)
	if err != nil {
		return nil, err
	}

	if len(siblings) == 0 {
		return nil, httperr.ErrBusiness("group_not_found")
	}

	now := timezone.NowIn(salon.Timezone)
	result := &CancelGroupResult{}

	for i := range siblings {
		ap := &siblings[i]

		if err := appointment.Cancel(ap, now); err != nil {
			// não estava mais em scheduled
			result.SkippedIDs = append(result.SkippedIDs, ap.ID)
			continue
		}

		if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
			result.FailedIDs = append(result.FailedIDs, ap.ID)
			continue
		}

		result.CancelledIDs = append(result.CancelledIDs, ap.ID)
	}

	uc.audit.Dispatch(audit.Event{
		SalonID: salonID,
		UserID:  &employeeID,
		Action:  "booking_group_cancelled",
		Entity:  "appointment_group",
		Metadata: map[string]any{
			"group_id":  groupID,
			"cancelled": len(result.CancelledIDs),
			"failed":    len(result.FailedIDs),
			"skipped":   len(result.SkippedIDs),
		},
	})

	return result, nil
}
