package schedule

import "time"

// ===============================
// Calendar Math
// ===============================

// TimeOfDay is a local wall-clock value in "HH:MM" 24h format, the same
// representation working-hours rows store.
type TimeOfDay string

func (t TimeOfDay) Valid() bool {
	_, err := time.Parse("15:04", string(t))
	return err == nil
}

// At projects the wall-clock value onto the given date, in that date's
// location.
func (t TimeOfDay) At(date time.Time) time.Time {
	parsed, _ := time.Parse("15:04", string(t))
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0,
		date.Location(),
	)
}

// Overlaps is the half-open interval test: [aStart,aEnd) and [bStart,bEnd)
// overlap iff aStart < bEnd && bStart < aEnd. Intervals that merely touch
// do not overlap, so back-to-back bookings are allowed. Zero-length
// intervals never overlap anything.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	if !aStart.Before(aEnd) || !bStart.Before(bEnd) {
		return false
	}
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// WeekdayOf maps an already-localized time to its weekday.
func WeekdayOf(t time.Time) time.Weekday {
	return t.Weekday()
}

// Window is an employee's on-duty range for one weekday.
type Window struct {
	Start TimeOfDay `json:"start"`
	End   TimeOfDay `json:"end"`
}

func (w Window) Valid() bool {
	return w.Start.Valid() && w.End.Valid() && w.Start.At(time.Time{}).Before(w.End.At(time.Time{}))
}

// Contains reports whether [start,end) lies entirely within the window on
// start's calendar date.
func (w Window) Contains(start, end time.Time) bool {
	if !w.Valid() {
		return false
	}
	winStart := w.Start.At(start)
	winEnd := w.End.At(start)
	return !start.Before(winStart) && !end.After(winEnd)
}
