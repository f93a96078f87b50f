package report

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"brigadeattend/internal/roster"
	"brigadeattend/internal/session"
)

var attendanceHeader = []interface{}{
	"Event Name", "Date", "Session", "Full Name", "Roll Number", "Brigade", "Status", "Marked At", "Marked By",
}

var userHeader = []interface{}{
	"Full Name", "Roll Number", "Email", "Brigade Name", "Created At",
}

// ExportAttendance builds the grouped attendance workbook: an Overall Data
// sheet with every row sorted by roll number, a Stats sheet with per-brigade
// counts, then one sheet per department code in ascending order, with the
// UNKNOWN bucket rendered as "Others".
func ExportAttendance(rows []Row) (*excelize.File, error) {
	f := excelize.NewFile()

	overall := make([]Row, len(rows))
	copy(overall, rows)
	sortRows(overall)
	if err := f.SetSheetName(f.GetSheetName(0), "Overall Data"); err != nil {
		return nil, err
	}
	if err := writeAttendanceSheet(f, "Overall Data", overall); err != nil {
		return nil, err
	}

	if err := writeStatsSheet(f, BuildStats(rows)); err != nil {
		return nil, err
	}

	groups := GroupByDepartment(rows)
	for _, code := range sortedCodes(groups) {
		name := code
		if code == UnknownDepartment {
			name = "Others"
		}
		if _, err := f.NewSheet(name); err != nil {
			return nil, err
		}
		if err := writeAttendanceSheet(f, name, groups[code]); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func writeAttendanceSheet(f *excelize.File, sheet string, rows []Row) error {
	if err := f.SetSheetRow(sheet, "A1", &attendanceHeader); err != nil {
		return err
	}
	for i, r := range rows {
		cells := []interface{}{r.EventName, r.Date, r.Session, r.FullName, r.RollNumber, r.Brigade, r.Status, r.MarkedAt, r.MarkedBy}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+2), &cells); err != nil {
			return err
		}
	}
	return nil
}

func writeStatsSheet(f *excelize.File, stats []BrigadeStats) error {
	if _, err := f.NewSheet("Stats"); err != nil {
		return err
	}
	header := []interface{}{"Brigade", "Total Count", "Present", "Absent", "Not Marked"}
	if err := f.SetSheetRow("Stats", "A1", &header); err != nil {
		return err
	}
	for i, st := range stats {
		cells := []interface{}{st.Brigade, st.Total, st.Present, st.Absent, st.NotMarked}
		if err := f.SetSheetRow("Stats", fmt.Sprintf("A%d", i+2), &cells); err != nil {
			return err
		}
	}
	return nil
}

// ExportUsers builds the user-list workbook with one sheet per department.
// When no roll number classifies into a real department, the whole roster
// goes onto a single "All Users" sheet instead.
func ExportUsers(users []roster.User) (*excelize.File, error) {
	f := excelize.NewFile()

	groups := make(map[string][]roster.User)
	for _, u := range users {
		code := DepartmentCode(u.RollNumber)
		groups[code] = append(groups[code], u)
	}

	_, onlyUnknown := groups[UnknownDepartment]
	if len(groups) == 0 || (len(groups) == 1 && onlyUnknown) {
		sorted := make([]roster.User, len(users))
		copy(sorted, users)
		sortUsers(sorted)
		if err := f.SetSheetName(f.GetSheetName(0), "All Users"); err != nil {
			return nil, err
		}
		return f, writeUserSheet(f, "All Users", sorted)
	}

	codes := make([]string, 0, len(groups))
	for code := range groups {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	for i, code := range codes {
		bucket := groups[code]
		sortUsers(bucket)

		name := code
		if code == UnknownDepartment {
			name = "Others"
		}
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
				return nil, err
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return nil, err
		}
		if err := writeUserSheet(f, name, bucket); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func sortUsers(users []roster.User) {
	sort.SliceStable(users, func(i, j int) bool { return users[i].RollNumber < users[j].RollNumber })
}

func writeUserSheet(f *excelize.File, sheet string, users []roster.User) error {
	if err := f.SetSheetRow(sheet, "A1", &userHeader); err != nil {
		return err
	}
	for i, u := range users {
		created := "N/A"
		if !u.CreatedAt.IsZero() {
			created = u.CreatedAt.In(session.Zone).Format("2006-01-02")
		}
		cells := []interface{}{u.FullName, u.RollNumber, u.Email, u.BrigadeName, created}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+2), &cells); err != nil {
			return err
		}
	}
	return nil
}

// RosterTemplate builds the bulk-upload template workbook.
func RosterTemplate() (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), "Brigade Leads Template"); err != nil {
		return nil, err
	}
	rows := [][]interface{}{
		{"Full Name", "Roll Number", "Email", "Brigade Name"},
		{"John Doe", "25BBA001", "john.doe@example.com", "Tech Brigade"},
		{"Jane Smith", "25BCA002", "jane.smith@example.com", "Media Brigade"},
		{"Mike Johnson", "25BCW003", "mike.johnson@example.com", "Design Brigade"},
		{"Sarah Wilson", "25TCW004", "sarah.wilson@example.com", "Management Brigade"},
	}
	for i, cells := range rows {
		row := cells
		if err := f.SetSheetRow("Brigade Leads Template", fmt.Sprintf("A%d", i+1), &row); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// ParseRoster reads a roster spreadsheet. The first row is a header and is
// ignored; each remaining row needs at least 4 non-empty leading cells read
// positionally as (full name, roll number, email, brigade name). Short or
// incomplete rows are skipped and counted.
func ParseRoster(reader io.Reader, filename string) ([]roster.User, int, error) {
	rows, err := readRows(reader, filename)
	if err != nil {
		return nil, 0, err
	}

	var users []roster.User
	skipped := 0
	for i, row := range rows {
		if i == 0 {
			continue
		}
		if cellValue(row, 0) == "" || cellValue(row, 1) == "" || cellValue(row, 2) == "" || cellValue(row, 3) == "" {
			skipped++
			continue
		}
		users = append(users, roster.User{
			FullName:    cellValue(row, 0),
			RollNumber:  cellValue(row, 1),
			Email:       cellValue(row, 2),
			BrigadeName: cellValue(row, 3),
		})
	}
	return users, skipped, nil
}

func readRows(reader io.Reader, filename string) ([][]string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".xlsx", ".xls":
	default:
		return nil, fmt.Errorf("unsupported file type %q: upload an .xlsx or .xls file", ext)
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}

	if ext == ".xls" {
		workbook, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
		if err != nil {
			return nil, fmt.Errorf("failed to parse spreadsheet: %w", err)
		}
		if workbook.NumSheets() == 0 {
			return nil, fmt.Errorf("no worksheet found")
		}
		rows := workbook.ReadAllCells(100000)
		if len(rows) == 0 {
			return nil, fmt.Errorf("worksheet is empty")
		}
		return rows, nil
	}

	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse spreadsheet: %w", err)
	}
	defer func() { _ = file.Close() }()

	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no worksheet found")
	}
	rows, err := file.GetRows(sheetName)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("worksheet is empty")
	}
	return rows, nil
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
