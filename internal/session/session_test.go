package session

import (
	"testing"
	"time"
)

// at builds an instant at the given IST wall clock on the given day.
func at(year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, Zone)
}

func TestEvaluatePhases(t *testing.T) {
	day := []int{2025, 7, 2}
	cases := []struct {
		name  string
		now   time.Time
		phase Phase
	}{
		{"before start", at(day[0], time.Month(day[1]), day[2], 8, 0), PhaseUpcoming},
		{"at start", at(day[0], time.Month(day[1]), day[2], 9, 0), PhaseActive},
		{"mid window", at(day[0], time.Month(day[1]), day[2], 10, 30), PhaseActive},
		{"at end", at(day[0], time.Month(day[1]), day[2], 12, 0), PhaseActive},
		{"after end", at(day[0], time.Month(day[1]), day[2], 13, 0), PhaseEnded},
		{"one minute before", at(day[0], time.Month(day[1]), day[2], 8, 59), PhaseUpcoming},
		{"one minute after", at(day[0], time.Month(day[1]), day[2], 12, 1), PhaseEnded},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st := Evaluate("09:00", "12:00", true, tc.now)
			if st.Phase != tc.phase {
				t.Errorf("Evaluate at %s: phase = %s, want %s", tc.now.Format("15:04"), st.Phase, tc.phase)
			}
			wantMark := tc.phase == PhaseActive
			if st.CanMark != wantMark {
				t.Errorf("Evaluate at %s: canMark = %v, want %v", tc.now.Format("15:04"), st.CanMark, wantMark)
			}
		})
	}
}

func TestEvaluateSuspended(t *testing.T) {
	now := at(2025, 7, 2, 10, 30)
	st := Evaluate("09:00", "12:00", false, now)
	if st.Phase != PhaseActive {
		t.Errorf("phase = %s, want active", st.Phase)
	}
	if st.CanMark {
		t.Error("suspended session must not allow marking even while active")
	}
}

func TestEvaluateFixedZone(t *testing.T) {
	// 10:30 IST expressed as 05:00 UTC must classify the same as local IST.
	utc := time.Date(2025, 7, 2, 5, 0, 0, 0, time.UTC)
	st := Evaluate("09:00", "12:00", true, utc)
	if st.Phase != PhaseActive || !st.CanMark {
		t.Errorf("UTC caller got %+v, want active + canMark", st)
	}
}

func TestEvaluateDayRelation(t *testing.T) {
	now := at(2025, 7, 2, 10, 30)

	past := EvaluateDay(at(2025, 7, 1, 0, 0), "09:00", "12:00", true, now)
	if past.Phase != PhaseEnded || past.CanMark {
		t.Errorf("past day: got %+v, want ended", past)
	}

	future := EvaluateDay(at(2025, 7, 3, 0, 0), "09:00", "12:00", true, now)
	if future.Phase != PhaseUpcoming || future.CanMark {
		t.Errorf("future day: got %+v, want upcoming", future)
	}

	today := EvaluateDay(at(2025, 7, 2, 0, 0), "09:00", "12:00", true, now)
	if today.Phase != PhaseActive || !today.CanMark {
		t.Errorf("today: got %+v, want active + canMark", today)
	}

	// A past day is ended even if the wall clock is inside the window.
	pastInWindow := EvaluateDay(at(2025, 7, 1, 0, 0), "00:00", "23:59", true, now)
	if pastInWindow.Phase != PhaseEnded {
		t.Errorf("past day with open window: got %s, want ended", pastInWindow.Phase)
	}
}

func TestValidateWindow(t *testing.T) {
	if err := ValidateWindow("09:00", "12:00"); err != nil {
		t.Errorf("valid window rejected: %v", err)
	}
	if err := ValidateWindow("22:00", "02:00"); err == nil {
		t.Error("overnight window accepted")
	}
	if err := ValidateWindow("9am", "12:00"); err == nil {
		t.Error("malformed start accepted")
	}
	if err := ValidateWindow("09:00", "24:00"); err == nil {
		t.Error("out of range end accepted")
	}
}

func TestEvaluateMalformedWindow(t *testing.T) {
	st := Evaluate("garbage", "12:00", true, at(2025, 7, 2, 10, 0))
	if st.Phase != PhaseEnded || st.CanMark {
		t.Errorf("malformed window: got %+v, want ended without marking", st)
	}
}

func TestSameDay(t *testing.T) {
	a := at(2025, 7, 2, 0, 5)
	b := at(2025, 7, 2, 23, 55)
	if !SameDay(a, b) {
		t.Error("same calendar day not recognised")
	}
	// 2025-07-02 01:00 IST is 2025-07-01 19:30 UTC; still the same IST day.
	utc := time.Date(2025, 7, 1, 19, 30, 0, 0, time.UTC)
	if !SameDay(a, utc) {
		t.Error("UTC instant on the same IST day not recognised")
	}
	if SameDay(a, at(2025, 7, 3, 0, 0)) {
		t.Error("different days reported equal")
	}
}

func TestFormatTimeRange(t *testing.T) {
	cases := []struct {
		start, end, want string
	}{
		{"09:00", "12:00", "9:00 AM - 12:00 PM"},
		{"13:00", "16:00", "1:00 PM - 4:00 PM"},
		{"00:15", "12:05", "12:15 AM - 12:05 PM"},
	}
	for _, tc := range cases {
		if got := FormatTimeRange(tc.start, tc.end); got != tc.want {
			t.Errorf("FormatTimeRange(%s, %s) = %q, want %q", tc.start, tc.end, got, tc.want)
		}
	}
}
