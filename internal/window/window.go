// Package window implements the check-in time window policy as pure
// functions of the clock, so every branch is testable without waiting for
// the event.
package window

import (
	"fmt"
	"time"
)

// DayWindow is the closed interval during which check-in is accepted for one
// event day. Start and End are inclusive.
type DayWindow struct {
	Label string
	Human string
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window, boundaries included.
func (d DayWindow) Contains(t time.Time) bool {
	return !t.Before(d.Start) && !t.After(d.End)
}

// Status classifies an instant relative to the event days.
type Status int

const (
	// StatusOpen: inside one of the day windows.
	StatusOpen Status = iota
	// StatusBefore: before the next window opens.
	StatusBefore
	// StatusAfter: past the end of the last window.
	StatusAfter
	// StatusUnknown guards against a coverage gap; the windows are
	// exhaustive over the modeled timeline, so it should never surface.
	StatusUnknown
)

// Result carries the classification plus the relevant window: Day when open,
// Next when before.
type Result struct {
	Status Status
	Day    DayWindow
	Next   DayWindow
}

// Classify evaluates now against the ordered day windows.
func Classify(now time.Time, days []DayWindow) Result {
	if len(days) == 0 {
		return Result{Status: StatusUnknown}
	}

	for _, d := range days {
		if d.Contains(now) {
			return Result{Status: StatusOpen, Day: d}
		}
	}
	for _, d := range days {
		if now.Before(d.Start) {
			return Result{Status: StatusBefore, Next: d}
		}
	}
	if now.After(days[len(days)-1].End) {
		return Result{Status: StatusAfter}
	}
	return Result{Status: StatusUnknown}
}

// Countdown returns the time until start, truncated to whole minutes and
// split into hours and minutes. Negative inputs clamp to zero.
func Countdown(now, start time.Time) (hours, minutes int) {
	remaining := start.Sub(now)
	if remaining < 0 {
		remaining = 0
	}
	total := int(remaining.Minutes())
	return total / 60, total % 60
}

var weekdays = map[time.Weekday]string{
	time.Sunday:    "domingo",
	time.Monday:    "segunda-feira",
	time.Tuesday:   "terça-feira",
	time.Wednesday: "quarta-feira",
	time.Thursday:  "quinta-feira",
	time.Friday:    "sexta-feira",
	time.Saturday:  "sábado",
}

// HumanLabel formats a window start as the friendly day label shown to
// attendees, e.g. "sexta-feira, 21/11".
func HumanLabel(t time.Time) string {
	return fmt.Sprintf("%s, %02d/%02d", weekdays[t.Weekday()], t.Day(), int(t.Month()))
}
