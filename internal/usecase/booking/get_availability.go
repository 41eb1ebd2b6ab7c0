package booking

import (
	"context"
	"sort"
	"time"

	"github.com/salaoflow/salon-scheduler/internal/clock"
	domain "github.com/salaoflow/salon-scheduler/internal/domain/booking"
	"github.com/salaoflow/salon-scheduler/internal/httperr"
	"github.com/salaoflow/salon-scheduler/internal/schedule"
)

// SlotStepMinutes is the fixed scan grid. It is deliberately independent of
// service duration: every service offers starts on the same 30-minute grid,
// trading packing efficiency for predictability.
const SlotStepMinutes = 30

type GetAvailability struct {
	repo domain.Repository
	now  func() time.Time
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo, now: clock.Now}
}

// Execute computes the bookable slot starts for one service on one calendar
// day. A candidate is accepted when it fits entirely inside a single open
// sub-range (never spilling into a break or past closing), overlaps no busy
// interval, and does not start in the past.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.TimeSlot, error) {

	service, err := uc.repo.GetService(ctx, in.SalonID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	salon, err := uc.repo.GetSalonByID(ctx, in.SalonID)
	if err != nil {
		return nil, err
	}

	date := clock.Midnight(in.Date)

	day := salon.OpeningHours.DayFor(date.Weekday())
	if !day.IsOpen {
		return []domain.TimeSlot{}, nil
	}

	appointments, err := uc.repo.ListBusyAppointments(ctx, in.SalonID, date)
	if err != nil {
		return nil, err
	}

	blocked, err := uc.repo.ListBlockedTimes(ctx, in.SalonID, date)
	if err != nil {
		return nil, err
	}

	busy := domain.BusyIntervals(appointments, blocked, date)
	now := uc.now()

	var starts []time.Time

	// Sub-ranges are walked independently: a service must fit inside one
	// continuous open block.
	for _, sub := range day.Slots {
		cursor, ok := schedule.At(date, sub.Start)
		if !ok {
			continue
		}
		rangeEnd, ok := schedule.At(date, sub.End)
		if !ok {
			continue
		}

		// End <= Start never enters the loop: the range yields nothing.
		for cursor.Before(rangeEnd) {
			candidate := schedule.Interval{
				Start: cursor,
				End:   schedule.AddMinutes(cursor, service.DurationMin),
			}

			fits := !candidate.End.After(rangeEnd)
			if fits &&
				!schedule.OverlapsAny(candidate, busy) &&
				!cursor.Before(now) {
				starts = append(starts, cursor)
			}

			cursor = schedule.AddMinutes(cursor, SlotStepMinutes)
		}
	}

	sort.Slice(starts, func(i, j int) bool { return starts[i].Before(starts[j]) })

	slots := make([]domain.TimeSlot, 0, len(starts))
	for i, s := range starts {
		// Overlapping sub-ranges in a malformed schedule could repeat a
		// start; report each start at most once.
		if i > 0 && s.Equal(starts[i-1]) {
			continue
		}
		slots = append(slots, domain.TimeSlot{
			Start: s.Format("15:04"),
			End:   schedule.AddMinutes(s, service.DurationMin).Format("15:04"),
		})
	}

	return slots, nil
}
