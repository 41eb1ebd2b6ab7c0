package booking

import (
	"context"
	"time"

	"github.com/salaoflow/salon-scheduler/internal/clock"
	domain "github.com/salaoflow/salon-scheduler/internal/domain/booking"
	"github.com/salaoflow/salon-scheduler/internal/dto"
)

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

// ByDate lists one local calendar day.
func (uc *ListAppointments) ByDate(
	ctx context.Context,
	salonID uint,
	date time.Time,
) ([]dto.AppointmentListDTO, error) {

	start := clock.Midnight(date)
	end := start.Add(24 * time.Hour)

	return uc.list(ctx, salonID, start, end)
}

// ByMonth lists a whole calendar month for the agenda view.
func (uc *ListAppointments) ByMonth(
	ctx context.Context,
	salonID uint,
	year int,
	month int,
) ([]dto.AppointmentListDTO, error) {

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, clock.Location())
	end := start.AddDate(0, 1, 0)

	return uc.list(ctx, salonID, start, end)
}

func (uc *ListAppointments) list(
	ctx context.Context,
	salonID uint,
	start, end time.Time,
) ([]dto.AppointmentListDTO, error) {

	appointments, err := uc.repo.ListAppointmentsForPeriod(ctx, salonID, start, end)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, dto.AppointmentListDTO{
			ID:          ap.ID,
			StartTime:   ap.StartTime,
			EndTime:     ap.EndTime,
			Status:      ap.Status,
			ClientName:  ap.Client.Name,
			ServiceName: ap.Service.Name,
		})
	}

	return out, nil
}
