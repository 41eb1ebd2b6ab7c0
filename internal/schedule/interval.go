package schedule

import "time"

// Interval is a half-open [Start, End) time window.
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Overlaps reports whether two half-open intervals intersect.
// Touching endpoints (a.End == b.Start) do not count as overlap.
func Overlaps(a, b Interval) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// OverlapsAny reports whether the interval intersects any of the busy windows.
func OverlapsAny(iv Interval, busy []Interval) bool {
	for _, b := range busy {
		if Overlaps(iv, b) {
			return true
		}
	}
	return false
}

// AddMinutes shifts an absolute timestamp by m minutes.
func AddMinutes(t time.Time, m int) time.Time {
	return t.Add(time.Duration(m) * time.Minute)
}
