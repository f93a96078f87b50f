package report

import (
	"sort"
	"testing"
	"time"

	"brigadeattend/internal/attendance"
	"brigadeattend/internal/event"
	"brigadeattend/internal/roster"
	"brigadeattend/internal/session"
)

func TestDepartmentCode(t *testing.T) {
	cases := []struct {
		roll, want string
	}{
		{"25BBA001", "BBA"},
		{"25BCA002", "BCA"},
		{"25BCW003", "CW"},
		{"25TCW004", "CW"},
		{"AB", UnknownDepartment},
		{"25XBA001", UnknownDepartment},
		{"", UnknownDepartment},
		{"25BB", UnknownDepartment},
	}
	for _, tc := range cases {
		if got := DepartmentCode(tc.roll); got != tc.want {
			t.Errorf("DepartmentCode(%q) = %q, want %q", tc.roll, got, tc.want)
		}
	}
}

func TestGroupByDepartmentRoundTrip(t *testing.T) {
	rows := []Row{
		{RollNumber: "25BBA002", FullName: "B"},
		{RollNumber: "25BBA001", FullName: "A"},
		{RollNumber: "25BCW003", FullName: "C"},
		{RollNumber: "25TCW004", FullName: "D"},
		{RollNumber: "XY", FullName: "E"},
		{RollNumber: "25BCA005", FullName: "F"},
	}

	groups := GroupByDepartment(rows)

	var total int
	seen := make(map[string]int)
	for code, bucket := range groups {
		total += len(bucket)
		for _, r := range bucket {
			seen[r.RollNumber]++
		}
		if !sort.SliceIsSorted(bucket, func(i, j int) bool { return bucket[i].RollNumber < bucket[j].RollNumber }) {
			t.Errorf("bucket %s not sorted by roll number", code)
		}
	}
	if total != len(rows) {
		t.Errorf("grouped %d rows, want %d", total, len(rows))
	}
	for _, r := range rows {
		if seen[r.RollNumber] != 1 {
			t.Errorf("row %s appeared %d times", r.RollNumber, seen[r.RollNumber])
		}
	}

	if len(groups["CW"]) != 2 {
		t.Errorf("CW bucket = %d rows, want 2 (BCW + TCW)", len(groups["CW"]))
	}
	if len(groups[UnknownDepartment]) != 1 {
		t.Errorf("UNKNOWN bucket = %d rows, want 1", len(groups[UnknownDepartment]))
	}
}

func istDay(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, session.Zone)
}

func fixtures() ([]attendance.Record, []roster.User, []event.Event) {
	users := []roster.User{
		{ID: "u1", FullName: "John Doe", RollNumber: "25BBA001", BrigadeName: "Tech"},
		{ID: "u2", FullName: "Jane Smith", RollNumber: "25BCA002", BrigadeName: "Media"},
	}
	events := []event.Event{{ID: "ev1", Name: "Tech Fest"}}
	records := []attendance.Record{
		{ID: "r1", EventID: "ev1", EventDate: istDay(2025, 7, 2), UserID: "u1", SessionType: attendance.SessionFN, IsPresent: true, MarkedAt: istDay(2025, 7, 2).Add(9 * time.Hour), MarkedBy: "admin"},
		{ID: "r2", EventID: "ev1", EventDate: istDay(2025, 7, 2), UserID: "u2", SessionType: attendance.SessionAN, IsPresent: false, MarkedAt: istDay(2025, 7, 2).Add(14 * time.Hour), MarkedBy: "admin"},
		{ID: "r3", EventID: "ev1", EventDate: istDay(2025, 7, 2), UserID: "ghost", SessionType: attendance.SessionFN, IsPresent: true},
		{ID: "r4", EventID: "gone", EventDate: istDay(2025, 7, 2), UserID: "u1", SessionType: attendance.SessionAN, IsPresent: true},
	}
	return records, users, events
}

func TestBuildRowsDropsOrphans(t *testing.T) {
	records, users, events := fixtures()
	rows := BuildRows(records, users, events)
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2 (orphans dropped)", len(rows))
	}
	if rows[0].Status != StatusPresent || rows[1].Status != StatusAbsent {
		t.Errorf("statuses = %s/%s", rows[0].Status, rows[1].Status)
	}
	if rows[0].Date != "Jul 2, 2025" {
		t.Errorf("date = %q", rows[0].Date)
	}
	if rows[0].MarkedAt != "Jul 2, 09:00" {
		t.Errorf("markedAt = %q", rows[0].MarkedAt)
	}
	if rows[0].EventName != "Tech Fest" {
		t.Errorf("eventName = %q", rows[0].EventName)
	}
}

func TestBuildStats(t *testing.T) {
	rows := []Row{
		{Brigade: "Tech", Status: StatusPresent},
		{Brigade: "Tech", Status: StatusAbsent},
		{Brigade: "Tech", Status: StatusPresent},
		{Brigade: "Media", Status: StatusNotMarked},
	}
	stats := BuildStats(rows)
	if len(stats) != 2 {
		t.Fatalf("stats = %d brigades, want 2", len(stats))
	}
	// Sorted by name: Media first.
	if stats[0].Brigade != "Media" || stats[0].NotMarked != 1 || stats[0].Total != 1 {
		t.Errorf("media stats = %+v", stats[0])
	}
	if stats[1].Brigade != "Tech" || stats[1].Present != 2 || stats[1].Absent != 1 || stats[1].Total != 3 {
		t.Errorf("tech stats = %+v", stats[1])
	}
}

func TestApplyFilter(t *testing.T) {
	records, users, _ := fixtures()

	byEvent := ApplyFilter(records, users, Filter{EventID: "ev1"})
	if len(byEvent) != 3 {
		t.Errorf("event filter = %d, want 3", len(byEvent))
	}

	present := ApplyFilter(records, users, Filter{Status: "present"})
	if len(present) != 3 {
		t.Errorf("present filter = %d, want 3", len(present))
	}

	brigade := ApplyFilter(records, users, Filter{Brigade: "Tech"})
	if len(brigade) != 2 {
		t.Errorf("brigade filter = %d, want 2", len(brigade))
	}

	fn := ApplyFilter(records, users, Filter{Session: attendance.SessionFN})
	if len(fn) != 2 {
		t.Errorf("session filter = %d, want 2", len(fn))
	}

	ranged := ApplyFilter(records, users, Filter{From: istDay(2025, 7, 3), To: istDay(2025, 7, 4)})
	if len(ranged) != 0 {
		t.Errorf("range filter = %d, want 0", len(ranged))
	}
	sameDay := ApplyFilter(records, users, Filter{From: istDay(2025, 7, 2), To: istDay(2025, 7, 2)})
	if len(sameDay) != 4 {
		t.Errorf("same-day range = %d, want 4", len(sameDay))
	}
}

func TestFilename(t *testing.T) {
	got := Filename("Tech Fest", "All Brigades", "Present", "FN", "2025-07-02", "2025-07-04")
	want := "Tech Fest+All Brigades+Present+FN+2025-07-02+2025-07-04"
	if got != want {
		t.Errorf("Filename = %q, want %q", got, want)
	}
}
