package spending

import "time"

const day = 24 * time.Hour

// Window is a closed time range [Start, End].
type Window struct {
	Start time.Time
	End   time.Time
}

// StartOfDay returns midnight UTC of t's calendar day.
func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// StartOfMonth returns the first instant of t's calendar month in UTC.
func StartOfMonth(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// EndOfMonth returns the last representable instant of t's calendar month.
func EndOfMonth(t time.Time) time.Time {
	return StartOfMonth(t).AddDate(0, 1, 0).Add(-time.Nanosecond)
}

// wholeDays counts complete 24h spans from start to end.
func wholeDays(start, end time.Time) int {
	return int(end.Sub(start) / day)
}

func sameMonth(a, b time.Time) bool {
	a, b = a.UTC(), b.UTC()
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// monthWindows splits [start, end] at calendar month boundaries. The first
// window begins at start, the last ends at end, interior windows cover whole
// months.
func monthWindows(start, end time.Time) []Window {
	last := StartOfMonth(end)
	var out []Window
	for m := StartOfMonth(start); !m.After(last); m = m.AddDate(0, 1, 0) {
		w := Window{Start: m, End: EndOfMonth(m)}
		if w.Start.Before(start) {
			w.Start = start
		}
		if w.End.After(end) {
			w.End = end
		}
		out = append(out, w)
	}
	return out
}
