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

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	SalonID uint

	ClientName  string
	ClientPhone string
	ClientEmail string

	ServiceID uint

	Date  string // YYYY-MM-DD
	Time  string // HH:mm
	Notes string

	// Status is empty for self-service bookings (confirmed). Admin creation
	// may set any valid status.
	Status domain.Status

	// UserID is set for admin-side creation, nil on the public path.
	UserID *uint
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
		now:   clock.Now,
	}
}

// Execute re-validates the proposed window against a fresh busy read before
// persisting. The read-path slot list the client saw may be stale; this
// narrows (does not eliminate) the race against concurrent bookings.
func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	salon, err := uc.repo.GetSalonByID(ctx, in.SalonID)
	if err != nil {
		return nil, err
	}

	start, err := clock.ParseDateTime(in.Date, in.Time)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	service, err := uc.repo.GetService(ctx, in.SalonID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	end := schedule.AddMinutes(start, service.DurationMin)
	if !end.After(start) {
		return nil, domain.ErrInvalidRange
	}

	status := in.Status
	if status == "" {
		status = domain.InitialStatus()
	}
	if !domain.ValidStatus(status) {
		return nil, httperr.ErrBusiness("invalid_status")
	}

	// Fresh conflict re-check; never reuse the read-path snapshot.
	if domain.ContributesBusy(status) {
		if err := assertWindowFree(ctx, uc.repo, in.SalonID, start, end, 0); err != nil {
			return nil, err
		}
	}

	client, err := uc.repo.GetOrCreateClient(
		ctx,
		in.SalonID,
		in.ClientName,
		in.ClientPhone,
		in.ClientEmail,
	)
	if err != nil {
		return nil, err
	}

	ap := &models.Appointment{
		SalonID:   salon.ID,
		ServiceID: service.ID,
		ClientID:  client.ID,
		StartTime: start,
		EndTime:   end,
		Status:    string(status),
		Notes:     in.Notes,
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  in.SalonID,
		UserID:   in.UserID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}

// assertWindowFree rebuilds the busy set for the day of the window and
// rejects on any overlap. excludeID skips the appointment's own row on
// reschedule.
func assertWindowFree(
	ctx context.Context,
	repo domain.Repository,
	salonID uint,
	start, end time.Time,
	excludeID uint,
) error {

	from := clock.Midnight(start)

	appointments, err := repo.ListBusyAppointments(ctx, salonID, from)
	if err != nil {
		return err
	}
	if excludeID != 0 {
		kept := appointments[:0]
		for _, ap := range appointments {
			if ap.ID != excludeID {
				kept = append(kept, ap)
			}
		}
		appointments = kept
	}

	blocked, err := repo.ListBlockedTimes(ctx, salonID, from)
	if err != nil {
		return err
	}

	busy := domain.BusyIntervals(appointments, blocked, from)
	if schedule.OverlapsAny(schedule.Interval{Start: start, End: end}, busy) {
		return domain.ErrSlotUnavailable
	}

	return nil
}
