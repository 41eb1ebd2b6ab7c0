package schedule

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// TimeRange is one open sub-range of a day, local wall-clock "HH:MM".
// A range with End <= Start is unusable and yields no candidates.
type TimeRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// DaySchedule is the opening configuration for one weekday.
// A closed day keeps its slots but contributes nothing.
type DaySchedule struct {
	DayOfWeek int         `json:"day_of_week"` // 0=Sunday .. 6=Saturday
	IsOpen    bool        `json:"is_open"`
	Slots     []TimeRange `json:"slots"`
}

// OpeningHours holds the 7 weekday entries of a salon. It is embedded in the
// salon row as JSONB.
type OpeningHours []DaySchedule

// DayFor returns the schedule for the given weekday. Weekday must be 0..6;
// a missing entry reads as a closed day.
func (h OpeningHours) DayFor(weekday time.Weekday) DaySchedule {
	for _, d := range h {
		if d.DayOfWeek == int(weekday) {
			return d
		}
	}
	return DaySchedule{DayOfWeek: int(weekday), IsOpen: false}
}

// At anchors an "HH:MM" wall-clock string onto a calendar date.
func At(date time.Time, hm string) (time.Time, bool) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0,
		date.Location(),
	), true
}

// ParseRange validates an "HH:MM" pair. ok is false when either side is
// malformed; usable is false when end <= start.
func (tr TimeRange) ParseRange() (ok bool, usable bool) {
	start, errS := time.Parse("15:04", tr.Start)
	end, errE := time.Parse("15:04", tr.End)
	if errS != nil || errE != nil {
		return false, false
	}
	return true, end.After(start)
}

// DefaultOpeningHours seeds a new salon: Mon-Sat 09:00-18:00, closed Sunday.
func DefaultOpeningHours() OpeningHours {
	hours := make(OpeningHours, 0, 7)
	for wd := 0; wd < 7; wd++ {
		day := DaySchedule{DayOfWeek: wd, IsOpen: wd != 0}
		if day.IsOpen {
			day.Slots = []TimeRange{{Start: "09:00", End: "18:00"}}
		}
		hours = append(hours, day)
	}
	return hours
}

// --------------------------------------------------
// JSONB (GORM serialization)
// --------------------------------------------------

func (h OpeningHours) Value() (driver.Value, error) {
	return json.Marshal(h)
}

func (h *OpeningHours) Scan(value any) error {
	if value == nil {
		*h = nil
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("opening_hours: unsupported column type")
	}

	return json.Unmarshal(raw, h)
}
