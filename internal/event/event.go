// Package event models multi-day events and their FN/AN session windows.
package event

import (
	"errors"
	"fmt"
	"time"

	"brigadeattend/internal/session"
)

// Default session windows applied to every new event day.
const (
	DefaultFNStart = "09:00"
	DefaultFNEnd   = "12:00"
	DefaultANStart = "13:00"
	DefaultANEnd   = "16:00"
)

// Session is one markable window within an event day. IsActive is the
// administrator kill-switch, independent of the time window.
type Session struct {
	IsActive        bool   `bson:"isActive" json:"isActive"`
	StartTime       string `bson:"startTime" json:"startTime"`
	EndTime         string `bson:"endTime" json:"endTime"`
	AttendanceCount int    `bson:"attendanceCount" json:"attendanceCount"`
}

// Day is one calendar day of an event with its two sessions.
type Day struct {
	Date      time.Time `bson:"date" json:"date"`
	FNSession Session   `bson:"fnSession" json:"fnSession"`
	ANSession Session   `bson:"anSession" json:"anSession"`
}

// Event is a named multi-day event. Day dates are unique within the event.
type Event struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Name      string    `bson:"name" json:"name"`
	StartDate time.Time `bson:"startDate" json:"startDate"`
	EndDate   time.Time `bson:"endDate" json:"endDate"`
	Days      []Day     `bson:"days" json:"days"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

func defaultSession(start, end string) Session {
	return Session{IsActive: true, StartTime: start, EndTime: end}
}

// ExpandDays builds one Day per calendar day in [start, end], each with the
// default windows.
func ExpandDays(start, end time.Time) []Day {
	first := session.DayStart(start)
	last := session.DayStart(end)

	var days []Day
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		days = append(days, Day{
			Date:      d,
			FNSession: defaultSession(DefaultFNStart, DefaultFNEnd),
			ANSession: defaultSession(DefaultANStart, DefaultANEnd),
		})
	}
	return days
}

// New validates the inputs and builds an event with its day sequence.
func New(name string, start, end time.Time) (Event, error) {
	if name == "" {
		return Event{}, errors.New("event name required")
	}
	if start.IsZero() || end.IsZero() {
		return Event{}, errors.New("start and end dates required")
	}
	if session.DayStart(end).Before(session.DayStart(start)) {
		return Event{}, errors.New("end date before start date")
	}
	return Event{
		Name:      name,
		StartDate: session.DayStart(start),
		EndDate:   session.DayStart(end),
		Days:      ExpandDays(start, end),
	}, nil
}

// FindDay returns the event day matching the given calendar day, or nil.
func (e *Event) FindDay(date time.Time) *Day {
	for i := range e.Days {
		if session.SameDay(e.Days[i].Date, date) {
			return &e.Days[i]
		}
	}
	return nil
}

// SessionFor returns the named session of a day.
func (d *Day) SessionFor(sessionType string) (*Session, error) {
	switch sessionType {
	case "FN":
		return &d.FNSession, nil
	case "AN":
		return &d.ANSession, nil
	}
	return nil, fmt.Errorf("unknown session type %q", sessionType)
}

// ValidateSession checks a window update before it is written.
func ValidateSession(s Session) error {
	return session.ValidateWindow(s.StartTime, s.EndTime)
}
