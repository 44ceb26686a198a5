package domain

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// WorkingWindow is one open/working period on a given weekday.
// A day may carry zero, one, or several windows (split hours).
type WorkingWindow struct {
	Weekday time.Weekday
	Open    types.TimeString
	Close   types.TimeString
}

// Interval projects the window onto a calendar date.
// Returns false when the window is malformed (open >= close).
func (w WorkingWindow) Interval(date time.Time) (TimeInterval, bool) {
	if !w.Open.IsBefore(w.Close) {
		return TimeInterval{}, false
	}
	start, err := w.Open.OnDate(date)
	if err != nil {
		return TimeInterval{}, false
	}
	end, err := w.Close.OnDate(date)
	if err != nil {
		return TimeInterval{}, false
	}
	return TimeInterval{Start: start, End: end}, true
}

// WindowsForWeekday filters a schedule down to one weekday.
func WindowsForWeekday(windows []WorkingWindow, weekday time.Weekday) []WorkingWindow {
	result := make([]WorkingWindow, 0)
	for _, w := range windows {
		if w.Weekday == weekday {
			result = append(result, w)
		}
	}
	return result
}

// WindowIntervals projects all windows matching the date's weekday onto the
// date, dropping malformed ones.
func WindowIntervals(windows []WorkingWindow, date time.Time) []TimeInterval {
	result := make([]TimeInterval, 0)
	for _, w := range WindowsForWeekday(windows, date.Weekday()) {
		if iv, ok := w.Interval(date); ok {
			result = append(result, iv)
		}
	}
	return result
}

// DateKey is a calendar date used as a map key (no time-of-day, no location
// ambiguity). Keeps roster maps away from stringly-typed date arithmetic.
type DateKey struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDateKey truncates a timestamp to its calendar date.
func NewDateKey(t time.Time) DateKey {
	return DateKey{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// Time returns midnight of the date in the given location.
func (d DateKey) Time(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// Weekday returns the date's day of week.
func (d DateKey) Weekday() time.Weekday {
	return d.Time(time.UTC).Weekday()
}

// Before defines the ordering of date keys.
func (d DateKey) Before(other DateKey) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// String formats the date as YYYY-MM-DD.
func (d DateKey) String() string {
	return d.Time(time.UTC).Format(DateFormat)
}

// DateHour identifies one hour of one calendar date.
type DateHour struct {
	Date DateKey
	Hour int
}

// Before defines a stable ordering over (date, hour).
func (h DateHour) Before(other DateHour) bool {
	if h.Date != other.Date {
		return h.Date.Before(other.Date)
	}
	return h.Hour < other.Hour
}
