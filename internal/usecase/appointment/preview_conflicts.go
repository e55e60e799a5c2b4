package appointment

import (
	"context"
	"errors"

	domain "github.com/salonworks/salon-scheduler/internal/domain/appointment"
	"github.com/salonworks/salon-scheduler/internal/domain/schedule"
	"github.com/salonworks/salon-scheduler/internal/httperr"
)

// ======================================================
// PREVIEW DE CONFLITOS
// ======================================================

// Roda a expansão + detecção sem criar nada, para o dashboard mostrar
// os conflitos antes do usuário confirmar (ou forçar) a reserva.
type PreviewConflicts struct {
	repo  domain.Repository
	store schedule.Store
}

func NewPreviewConflicts(
	repo domain.Repository,
	store schedule.Store,
) *PreviewConflicts {
	return &PreviewConflicts{
		repo:  repo,
		store: store,
	}
}

type PreviewConflictsResult struct {
	Occurrences []schedule.Occurrence         `json:"occurrences"`
	Conflicts   []schedule.ConflictOccurrence `json:"conflicts"`
}

func (uc *PreviewConflicts) Execute(
	ctx context.Context,
	req BookingRequest,
) (*PreviewConflictsResult, error) {

	_, hours, occurrences, err := resolveBooking(ctx, uc.repo, req)
	if err != nil {
		return nil, err
	}

	detector := schedule.NewDetector(uc.store, req.SalonID, hours)

	conflicts, err := detector.DetectConflicts(ctx, req.EmployeeID, occurrences)
	if err != nil {
		if errors.Is(err, schedule.ErrEmployeeNotFound) {
			return nil, httperr.ErrBusiness("employee_not_found")
		}
		return nil, err
	}

	return &PreviewConflictsResult{
		Occurrences: occurrences,
		Conflicts:   conflicts,
	}, nil
}
