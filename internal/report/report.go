// Package report shapes attendance data for spreadsheet export and parses
// roster uploads.
package report

import (
	"sort"
	"strings"
	"time"

	"brigadeattend/internal/attendance"
	"brigadeattend/internal/event"
	"brigadeattend/internal/roster"
	"brigadeattend/internal/session"
)

// Row statuses as rendered in export output.
const (
	StatusPresent   = "Present"
	StatusAbsent    = "Absent"
	StatusNotMarked = "Not Marked"
)

// UnknownDepartment buckets roll numbers that don't follow the convention.
// It renders as the "Others" sheet.
const UnknownDepartment = "UNKNOWN"

// Row is one export line, already formatted for the sheet.
type Row struct {
	EventName  string
	Date       string
	Session    string
	FullName   string
	RollNumber string
	Brigade    string
	Status     string
	MarkedAt   string
	MarkedBy   string
}

// DepartmentCode extracts the department bucket from a roll number. The
// convention is two digits, a 'B', then the department, e.g. "25BBA001" ->
// "BBA". BCW and TCW both collapse into the single "CW" bucket. Everything
// that doesn't fit classifies as UNKNOWN.
func DepartmentCode(roll string) string {
	if len(roll) < 5 {
		return UnknownDepartment
	}
	code := roll[2:5]
	if code == "BCW" || code == "TCW" {
		return "CW"
	}
	if roll[2] != 'B' {
		return UnknownDepartment
	}
	return code
}

// GroupByDepartment buckets rows by department code, each bucket sorted
// ascending by roll number.
func GroupByDepartment(rows []Row) map[string][]Row {
	groups := make(map[string][]Row)
	for _, r := range rows {
		code := DepartmentCode(r.RollNumber)
		groups[code] = append(groups[code], r)
	}
	for _, bucket := range groups {
		sortRows(bucket)
	}
	return groups
}

func sortRows(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].RollNumber < rows[j].RollNumber })
}

// sortedCodes returns the bucket keys in stable ascending order.
func sortedCodes(groups map[string][]Row) []string {
	codes := make([]string, 0, len(groups))
	for code := range groups {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// BuildRows joins attendance records against the current user and event
// collections. Records whose user or event no longer exists are orphans and
// are dropped.
func BuildRows(records []attendance.Record, users []roster.User, events []event.Event) []Row {
	userByID := make(map[string]roster.User, len(users))
	for _, u := range users {
		userByID[u.ID] = u
	}
	eventByID := make(map[string]event.Event, len(events))
	for _, e := range events {
		eventByID[e.ID] = e
	}

	var rows []Row
	for _, rec := range records {
		u, okUser := userByID[rec.UserID]
		ev, okEvent := eventByID[rec.EventID]
		if !okUser || !okEvent {
			continue
		}
		status := StatusAbsent
		if rec.IsPresent {
			status = StatusPresent
		}
		rows = append(rows, Row{
			EventName:  ev.Name,
			Date:       formatDate(rec.EventDate),
			Session:    string(rec.SessionType),
			FullName:   u.FullName,
			RollNumber: u.RollNumber,
			Brigade:    u.BrigadeName,
			Status:     status,
			MarkedAt:   formatDateTime(rec.MarkedAt),
			MarkedBy:   rec.MarkedBy,
		})
	}
	return rows
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.In(session.Zone).Format("Jan 2, 2006")
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.In(session.Zone).Format("Jan 2, 15:04")
}

// BrigadeStats is one Stats sheet line. No percentage column.
type BrigadeStats struct {
	Brigade   string
	Total     int
	Present   int
	Absent    int
	NotMarked int
}

// BuildStats aggregates per-brigade counts, ordered by brigade name.
func BuildStats(rows []Row) []BrigadeStats {
	byName := make(map[string]*BrigadeStats)
	for _, r := range rows {
		st, ok := byName[r.Brigade]
		if !ok {
			st = &BrigadeStats{Brigade: r.Brigade}
			byName[r.Brigade] = st
		}
		st.Total++
		switch r.Status {
		case StatusPresent:
			st.Present++
		case StatusAbsent:
			st.Absent++
		case StatusNotMarked:
			st.NotMarked++
		}
	}

	out := make([]BrigadeStats, 0, len(byName))
	for _, st := range byName {
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Brigade < out[j].Brigade })
	return out
}

// Filter narrows the record set before export. Zero values mean "all".
type Filter struct {
	EventID string
	Brigade string
	Status  string // "present" or "absent"
	Session attendance.SessionType
	From    time.Time
	To      time.Time
}

// ApplyFilter returns the records matching every set filter field. Records
// whose user is unknown are kept here; BuildRows drops orphans.
func ApplyFilter(records []attendance.Record, users []roster.User, f Filter) []attendance.Record {
	userByID := make(map[string]roster.User, len(users))
	for _, u := range users {
		userByID[u.ID] = u
	}

	var out []attendance.Record
	for _, rec := range records {
		if f.EventID != "" && rec.EventID != f.EventID {
			continue
		}
		if f.Brigade != "" {
			if u, ok := userByID[rec.UserID]; !ok || u.BrigadeName != f.Brigade {
				continue
			}
		}
		switch strings.ToLower(f.Status) {
		case "present":
			if !rec.IsPresent {
				continue
			}
		case "absent":
			if rec.IsPresent {
				continue
			}
		}
		if f.Session != "" && rec.SessionType != f.Session {
			continue
		}
		if !f.From.IsZero() && rec.EventDate.Before(session.DayStart(f.From)) {
			continue
		}
		if !f.To.IsZero() && rec.EventDate.After(session.DayStart(f.To).AddDate(0, 0, 1).Add(-time.Nanosecond)) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// Filename joins the active filter labels with the export separator.
func Filename(parts ...string) string {
	return strings.Join(parts, "+")
}
