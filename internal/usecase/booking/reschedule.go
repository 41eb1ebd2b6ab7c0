package booking

import (
	"context"
	"time"

	"github.com/salaoflow/salon-scheduler/internal/audit"
	"github.com/salaoflow/salon-scheduler/internal/clock"
	domain "github.com/salaoflow/salon-scheduler/internal/domain/booking"
	"github.com/salaoflow/salon-scheduler/internal/httperr"
	"github.com/salaoflow/salon-scheduler/internal/models"
	"github.com/salaoflow/salon-scheduler/internal/schedule"
)

type RescheduleAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewRescheduleAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *RescheduleAppointment {
	return &RescheduleAppointment{
		repo:  repo,
		audit: audit,
		now:   clock.Now,
	}
}

// Execute moves an appointment to a new window after the same conflict
// re-check the create path runs, ignoring the appointment's own interval.
// The status resets to confirmed.
func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	salonID uint,
	userID *uint,
	appointmentID uint,
	date string,
	timeStr string,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentForSalon(ctx, appointmentID, salonID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	start, err := clock.ParseDateTime(date, timeStr)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	service, err := uc.repo.GetService(ctx, salonID, ap.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	end := schedule.AddMinutes(start, service.DurationMin)

	if err := assertWindowFree(ctx, uc.repo, salonID, start, end, ap.ID); err != nil {
		return nil, err
	}

	if err := domain.Reschedule(ap, start, end); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   userID,
		Action:   "appointment_rescheduled",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
