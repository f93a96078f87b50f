package event

import (
	"testing"
	"time"

	"brigadeattend/internal/session"
)

func ist(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, session.Zone)
}

func TestExpandDays(t *testing.T) {
	days := ExpandDays(ist(2025, 7, 2, 10, 0), ist(2025, 7, 5, 23, 0))
	if len(days) != 4 {
		t.Fatalf("days = %d, want 4", len(days))
	}

	seen := make(map[string]bool)
	for i, d := range days {
		key := d.Date.Format("2006-01-02")
		if seen[key] {
			t.Errorf("duplicate day %s", key)
		}
		seen[key] = true

		want := ist(2025, 7, 2+i, 0, 0)
		if !d.Date.Equal(want) {
			t.Errorf("day %d = %s, want %s", i, d.Date, want)
		}
		if d.FNSession.StartTime != DefaultFNStart || d.FNSession.EndTime != DefaultFNEnd {
			t.Errorf("day %d FN window = %s-%s", i, d.FNSession.StartTime, d.FNSession.EndTime)
		}
		if d.ANSession.StartTime != DefaultANStart || d.ANSession.EndTime != DefaultANEnd {
			t.Errorf("day %d AN window = %s-%s", i, d.ANSession.StartTime, d.ANSession.EndTime)
		}
		if !d.FNSession.IsActive || !d.ANSession.IsActive {
			t.Errorf("day %d sessions not active by default", i)
		}
		if d.FNSession.AttendanceCount != 0 || d.ANSession.AttendanceCount != 0 {
			t.Errorf("day %d counts not zero", i)
		}
	}
}

func TestExpandDaysSingleDay(t *testing.T) {
	days := ExpandDays(ist(2025, 7, 2, 9, 0), ist(2025, 7, 2, 18, 0))
	if len(days) != 1 {
		t.Fatalf("days = %d, want 1", len(days))
	}
}

func TestNewValidation(t *testing.T) {
	if _, err := New("", ist(2025, 7, 2, 0, 0), ist(2025, 7, 3, 0, 0)); err == nil {
		t.Error("empty name accepted")
	}
	if _, err := New("Tech Fest", ist(2025, 7, 3, 0, 0), ist(2025, 7, 2, 0, 0)); err == nil {
		t.Error("end before start accepted")
	}
	if _, err := New("Tech Fest", time.Time{}, ist(2025, 7, 2, 0, 0)); err == nil {
		t.Error("zero start accepted")
	}

	ev, err := New("Tech Fest", ist(2025, 7, 2, 0, 0), ist(2025, 7, 4, 0, 0))
	if err != nil {
		t.Fatal(err)
	}
	if len(ev.Days) != 3 {
		t.Errorf("days = %d, want 3", len(ev.Days))
	}
}

func TestFindDay(t *testing.T) {
	ev, err := New("Tech Fest", ist(2025, 7, 2, 0, 0), ist(2025, 7, 4, 0, 0))
	if err != nil {
		t.Fatal(err)
	}

	// Any instant on the day should resolve to the event day.
	d := ev.FindDay(ist(2025, 7, 3, 17, 45))
	if d == nil {
		t.Fatal("day in range not found")
	}
	if !session.SameDay(d.Date, ist(2025, 7, 3, 0, 0)) {
		t.Errorf("wrong day %s", d.Date)
	}
	if ev.FindDay(ist(2025, 7, 5, 0, 0)) != nil {
		t.Error("day out of range found")
	}
}

func TestSessionFor(t *testing.T) {
	d := Day{FNSession: defaultSession("09:00", "12:00"), ANSession: defaultSession("13:00", "16:00")}
	fn, err := d.SessionFor("FN")
	if err != nil || fn.StartTime != "09:00" {
		t.Errorf("FN lookup failed: %v %+v", err, fn)
	}
	an, err := d.SessionFor("AN")
	if err != nil || an.StartTime != "13:00" {
		t.Errorf("AN lookup failed: %v %+v", err, an)
	}
	if _, err := d.SessionFor("EV"); err == nil {
		t.Error("unknown session type accepted")
	}
}

func TestValidateSession(t *testing.T) {
	if err := ValidateSession(Session{StartTime: "09:00", EndTime: "12:00"}); err != nil {
		t.Errorf("valid session rejected: %v", err)
	}
	if err := ValidateSession(Session{StartTime: "22:00", EndTime: "01:00"}); err == nil {
		t.Error("overnight session accepted")
	}
}
