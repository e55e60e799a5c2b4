package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ===============================
// Detecção de conflitos
// ===============================

// Funcionário já resolvido: janelas semanais + regras de folga
type Employee struct {
	ID           uint
	Name         string
	WorkingTimes []WorkingTime
	TimeOff      []TimeOffRule
}

// Agendamento existente devolvido pela consulta de sobreposição
type BookedSlot struct {
	ID          uint
	Start       time.Time
	End         time.Time
	ServiceName string
}

// Store é a camada de consulta externa que o motor lê e nunca escreve.
// OverlappingAppointments deve excluir agendamentos cancelados.
// ListSalonTimeOff devolve só os bloqueios do salão informado.
type Store interface {
	GetEmployee(ctx context.Context, employeeID uint) (*Employee, error)

	OverlappingAppointments(
		ctx context.Context,
		employeeID uint,
		start time.Time,
		end time.Time,
	) ([]BookedSlot, error)

	ListSalonTimeOff(
		ctx context.Context,
		salonID uint,
		employeeID uint,
	) ([]SalonTimeOff, error)
}

type Detector struct {
	store   Store
	salonID uint
	hours   BusinessHours
}

func NewDetector(store Store, salonID uint, hours BusinessHours) *Detector {
	return &Detector{store: store, salonID: salonID, hours: hours}
}

// DetectConflicts cruza cada ocorrência com as três fontes independentes
// de disponibilidade: agendamentos existentes, janela de trabalho e
// folgas (do funcionário e do salão). Ocorrências sem conflito ficam de
// fora do resultado; a ordem de saída segue o índice da ocorrência.
//
// O detector só lê — quem decide criar, abortar ou forçar é o chamador.
// Ele também não dá nenhuma garantia de exclusão mútua: dois pedidos
// simultâneos podem ambos enxergar "sem conflito".
func (d *Detector) DetectConflicts(
	ctx context.Context,
	employeeID uint,
	occurrences []Occurrence,
) ([]ConflictOccurrence, error) {

	employee, err := d.store.GetEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, ErrEmployeeNotFound) {
			return nil, err
		}
		return nil, storageErr("get employee", err)
	}

	salonTimeOff, err := d.store.ListSalonTimeOff(ctx, d.salonID, employeeID)
	if err != nil {
		return nil, storageErr("list salon time off", err)
	}

	result := make([]ConflictOccurrence, 0)

	for _, occ := range occurrences {
		req := occ.Interval()

		var conflicts []Conflict

		// 1) agendamentos existentes
		booked, err := d.store.OverlappingAppointments(ctx, employeeID, req.Start, req.End)
		if err != nil {
			return nil, storageErr("query overlapping appointments", err)
		}
		for _, slot := range booked {
			desc := "existing appointment"
			if slot.ServiceName != "" {
				desc = fmt.Sprintf("existing appointment (%s)", slot.ServiceName)
			}
			conflicts = append(conflicts, Conflict{
				Kind:        ConflictAppointment,
				Start:       slot.Start,
				End:         slot.End,
				Description: desc,
			})
		}

		// 2) janela de trabalho
		if wt := CheckWorkingTime(employee.WorkingTimes, req, d.hours); wt != nil {
			conflicts = append(conflicts, *wt)
		}

		// 3) folgas do funcionário + bloqueios do salão
		conflicts = append(conflicts, CheckTimeOff(employee.TimeOff, req, d.hours)...)
		conflicts = append(conflicts, CheckSalonTimeOff(salonTimeOff, req, d.hours)...)

		if len(conflicts) > 0 {
			result = append(result, ConflictOccurrence{
				OccurrenceIndex: occ.Index,
				Start:           req.Start,
				End:             req.End,
				Conflicts:       conflicts,
			})
		}
	}

	return result, nil
}
