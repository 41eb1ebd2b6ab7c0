package booking

import (
	"time"

	"github.com/salaoflow/salon-scheduler/internal/models"
	"github.com/salaoflow/salon-scheduler/internal/schedule"
)

// BusyIntervals merges the two sources of occupied windows into one opaque
// list: non-cancelled appointments and every blocked period. Intervals
// starting before from are dropped (irrelevant to a forward slot search).
// Callers must treat the result as an unordered set.
func BusyIntervals(
	appointments []models.Appointment,
	blocked []models.BlockedTime,
	from time.Time,
) []schedule.Interval {

	busy := make([]schedule.Interval, 0, len(appointments)+len(blocked))

	for _, ap := range appointments {
		if !ContributesBusy(Status(ap.Status)) {
			continue
		}
		if ap.StartTime.Before(from) {
			continue
		}
		busy = append(busy, schedule.Interval{Start: ap.StartTime, End: ap.EndTime})
	}

	for _, b := range blocked {
		if b.StartTime.Before(from) {
			continue
		}
		busy = append(busy, schedule.Interval{Start: b.StartTime, End: b.EndTime})
	}

	return busy
}
