package booking

import "time"

type AvailabilityInput struct {
	SalonID   uint
	ServiceID uint
	Date      time.Time
}

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}
