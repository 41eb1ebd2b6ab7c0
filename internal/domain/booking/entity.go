package booking

import (
	"time"

	"github.com/salaoflow/salon-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Cancel flips the status only; the row is never deleted here. Hard delete is
// a separate destructive admin action.
func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	return nil
}

func Complete(ap *models.Appointment, now time.Time) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return nil
}

// Reschedule moves an appointment to a new window and resets it to confirmed.
// Conflict checking happens in the use case before this is applied.
func Reschedule(ap *models.Appointment, start, end time.Time) error {
	if !end.After(start) {
		return ErrInvalidRange
	}
	if Status(ap.Status) == StatusCompleted {
		return ErrInvalidState
	}

	ap.StartTime = start
	ap.EndTime = end
	ap.Status = string(StatusConfirmed)
	ap.CancelledAt = nil
	return nil
}
