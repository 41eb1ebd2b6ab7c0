package booking

import (
	"context"
	"time"

	"github.com/salaoflow/salon-scheduler/internal/audit"
	"github.com/salaoflow/salon-scheduler/internal/clock"
	domain "github.com/salaoflow/salon-scheduler/internal/domain/booking"
	"github.com/salaoflow/salon-scheduler/internal/httperr"
	"github.com/salaoflow/salon-scheduler/internal/models"
)

type UpdateAppointmentStatus struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewUpdateAppointmentStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateAppointmentStatus {
	return &UpdateAppointmentStatus{
		repo:  repo,
		audit: audit,
		now:   clock.Now,
	}
}

// Execute applies an admin status change. Cancellation and completion go
// through the domain guards; moving a cancelled appointment back to a busy
// status re-runs the conflict check, since the window becomes occupied again.
func (uc *UpdateAppointmentStatus) Execute(
	ctx context.Context,
	salonID uint,
	userID *uint,
	appointmentID uint,
	status domain.Status,
) (*models.Appointment, error) {

	if !domain.ValidStatus(status) {
		return nil, httperr.ErrBusiness("invalid_status")
	}

	ap, err := uc.repo.GetAppointmentForSalon(ctx, appointmentID, salonID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	now := uc.now()
	current := domain.Status(ap.Status)

	switch status {
	case domain.StatusCancelled:
		if err := domain.Cancel(ap, now); err != nil {
			return nil, err
		}

	case domain.StatusCompleted:
		if err := domain.Complete(ap, now); err != nil {
			return nil, err
		}

	default:
		if !domain.ContributesBusy(current) && domain.ContributesBusy(status) {
			if err := assertWindowFree(ctx, uc.repo, salonID, ap.StartTime, ap.EndTime, ap.ID); err != nil {
				return nil, err
			}
			ap.CancelledAt = nil
		}
		ap.Status = string(status)
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   userID,
		Action:   "appointment_status_updated",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]string{"from": string(current), "to": string(status)},
	})

	return ap, nil
}
