package booking

import "github.com/salaoflow/salon-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// ContributesBusy reports whether an appointment with this status still
// occupies its time window. Only cancellation frees the slot.
func ContributesBusy(s Status) bool {
	return s != StatusCancelled
}

// ===============================
// Validations
// ===============================

// CanCancel define se um agendamento pode ser cancelado
func CanCancel(current Status) error {
	if current == StatusCancelled || current == StatusCompleted {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanComplete define se um agendamento pode ser concluído
func CanComplete(current Status) error {
	if current != StatusConfirmed && current != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// InitialStatus valida status inicial de um agendamento público
func InitialStatus() Status {
	return StatusConfirmed
}
