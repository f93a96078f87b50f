// Package session classifies FN/AN session windows against a reference instant.
package session

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Phase is the lifecycle phase of a session window.
type Phase string

const (
	PhaseUpcoming Phase = "upcoming"
	PhaseActive   Phase = "active"
	PhaseEnded    Phase = "ended"
)

// Status is the evaluated state of a session at a reference instant.
type Status struct {
	Phase   Phase  `json:"phase"`
	CanMark bool   `json:"canMark"`
	Message string `json:"message"`
}

// Zone is the fixed timezone all wall-clock comparisons happen in. Callers in
// different local zones must classify identical inputs identically.
var Zone = loadZone()

func loadZone() *time.Location {
	if loc, err := time.LoadLocation("Asia/Kolkata"); err == nil {
		return loc
	}
	return time.FixedZone("IST", 5*3600+1800)
}

// parseClock parses an "HH:MM" wall-clock string into minutes since midnight.
func parseClock(v string) (int, error) {
	parts := strings.SplitN(v, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock %q", v)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid clock %q", v)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid clock %q", v)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("clock %q out of range", v)
	}
	return h*60 + m, nil
}

// ValidateWindow rejects unparseable windows and overnight windows (end before
// start), which are unsupported.
func ValidateWindow(start, end string) error {
	s, err := parseClock(start)
	if err != nil {
		return err
	}
	e, err := parseClock(end)
	if err != nil {
		return err
	}
	if e < s {
		return errors.New("session end time before start time")
	}
	return nil
}

// Evaluate classifies a same-day window against now. Both bounds are
// inclusive: now == start and now == end are active. CanMark requires the
// administrator toggle in addition to an active phase. A window that fails to
// parse is treated as ended.
func Evaluate(start, end string, isActive bool, now time.Time) Status {
	startMin, serr := parseClock(start)
	endMin, eerr := parseClock(end)
	if serr != nil || eerr != nil {
		return Status{Phase: PhaseEnded, Message: "Session has ended"}
	}

	local := now.In(Zone)
	nowMin := local.Hour()*60 + local.Minute()

	var st Status
	switch {
	case nowMin < startMin:
		st = Status{Phase: PhaseUpcoming, Message: "Session hasn't started yet"}
	case nowMin > endMin:
		st = Status{Phase: PhaseEnded, Message: "Session has ended"}
	default:
		st = Status{Phase: PhaseActive, Message: "Session is active"}
	}
	st.CanMark = isActive && st.Phase == PhaseActive
	return st
}

// EvaluateDay classifies a window that belongs to a specific event day. The
// day relation wins over the wall clock: a past day is always ended and a
// future day always upcoming; only today consults the window.
func EvaluateDay(day time.Time, start, end string, isActive bool, now time.Time) Status {
	dayDate := DayStart(day)
	nowDate := DayStart(now)

	switch {
	case dayDate.Before(nowDate):
		return Status{Phase: PhaseEnded, Message: "Session has ended"}
	case dayDate.After(nowDate):
		return Status{Phase: PhaseUpcoming, Message: "Session hasn't started yet"}
	}
	return Evaluate(start, end, isActive, now)
}

// WithinWindow reports whether now falls inside the window, bounds inclusive.
func WithinWindow(start, end string, now time.Time) bool {
	return Evaluate(start, end, true, now).Phase == PhaseActive
}

// SameDay reports whether two instants fall on the same calendar day in Zone.
func SameDay(a, b time.Time) bool {
	return DayStart(a).Equal(DayStart(b))
}

// DayStart truncates an instant to midnight of its calendar day in Zone.
func DayStart(t time.Time) time.Time {
	local := t.In(Zone)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, Zone)
}

// FormatTimeRange renders a window for display, e.g. "9:00 AM - 12:00 PM".
func FormatTimeRange(start, end string) string {
	return formatClock(start) + " - " + formatClock(end)
}

func formatClock(v string) string {
	min, err := parseClock(v)
	if err != nil {
		return v
	}
	h, m := min/60, min%60
	ampm := "AM"
	if h >= 12 {
		ampm = "PM"
	}
	display := h % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:%02d %s", display, m, ampm)
}
