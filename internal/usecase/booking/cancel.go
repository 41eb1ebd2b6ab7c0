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

type CancelAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewCancelAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		audit: audit,
		now:   clock.Now,
	}
}

// Execute is a status change only. The row survives, and from here on it no
// longer contributes a busy interval.
func (uc *CancelAppointment) Execute(
	ctx context.Context,
	salonID uint,
	userID *uint,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentForSalon(ctx, appointmentID, salonID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if err := domain.Cancel(ap, uc.now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   userID,
		Action:   "appointment_cancelled",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
