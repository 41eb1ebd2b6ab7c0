package clock

import "time"

// The whole deployment runs in one timezone; there is no per-tenant zone.
const DefaultTimezone = "America/Sao_Paulo"

var location = mustLoad(DefaultTimezone)

func mustLoad(tz string) *time.Location {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.Local
	}
	return loc
}

// Configure switches the deployment zone at startup. Invalid names keep the
// current location.
func Configure(tz string) {
	if tz == "" {
		return
	}
	if loc, err := time.LoadLocation(tz); err == nil {
		location = loc
	}
}

func Location() *time.Location {
	return location
}

func Now() time.Time {
	return time.Now().In(location)
}

// ParseDate reads "YYYY-MM-DD" as local midnight.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, location)
}

// ParseDateTime reads "YYYY-MM-DD" + "HH:MM" as a local timestamp.
func ParseDateTime(date, hm string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", date+" "+hm, location)
}

// Midnight truncates a timestamp to the start of its local day.
func Midnight(t time.Time) time.Time {
	t = t.In(location)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, location)
}
