package timecard

import (
	"log/slog"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/felipelastra26/lumin-payroll-calculator/internal/model"
)

// nameScanRows is how many leading rows are searched for an employee name.
const nameScanRows = 5

var headerLike = regexp.MustCompile(`(?i)^(date|day|time|hours|total)`)

type column int

const (
	colNone column = iota
	colDate
	colIn
	colOut
	colHours
)

// Parse converts every sheet of wb into a TimecardSheet. Sheets without a
// data table are skipped with a warning.
func Parse(wb *Workbook, log *slog.Logger) model.Timecard {
	if log == nil {
		log = slog.Default()
	}
	tc := model.Timecard{FileName: wb.FileName, ParsedAt: time.Now()}
	for _, s := range wb.Sheets {
		sheet, ok := parseSheet(s, log)
		if !ok {
			continue
		}
		tc.Employees = append(tc.Employees, sheet)
	}
	return tc
}

func parseSheet(s Sheet, log *slog.Logger) (model.TimecardSheet, bool) {
	if len(s.Rows) < 2 {
		log.Warn("timecard sheet too short, skipping", "sheet", s.Name)
		return model.TimecardSheet{}, false
	}

	out := model.TimecardSheet{SheetName: s.Name, Name: sheetEmployeeName(s)}

	headerIdx := -1
	for i, row := range s.Rows {
		first := strings.ToLower(cell(row, 0))
		if strings.Contains(first, "date") || strings.Contains(first, "day") {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		log.Warn("no data table in timecard sheet, skipping", "sheet", s.Name)
		return model.TimecardSheet{}, false
	}
	cols := mapHeader(s.Rows[headerIdx])

	total := decimal.Zero
	for _, row := range s.Rows[headerIdx+1:] {
		first := cell(row, 0)
		if first == "" || strings.Contains(strings.ToLower(first), "total") {
			break
		}
		entry := parseEntry(row, cols)
		if !entry.Hours.IsPositive() {
			continue
		}
		out.TimeEntries = append(out.TimeEntries, entry)
		total = total.Add(entry.Hours)
	}
	out.TotalHours = total.Round(2)
	return out, true
}

// sheetEmployeeName returns the first text cell in column one of the leading
// rows that is neither a number, a date, nor header-like. It falls back to
// the sheet name.
func sheetEmployeeName(s Sheet) string {
	for i := 0; i < nameScanRows && i < len(s.Rows); i++ {
		text := cell(s.Rows[i], 0)
		if text == "" || headerLike.MatchString(text) {
			continue
		}
		if _, err := strconv.ParseFloat(text, 64); err == nil {
			continue
		}
		if _, ok := parseDateText(text); ok {
			continue
		}
		return text
	}
	return s.Name
}

func mapHeader(header []string) []column {
	cols := make([]column, len(header))
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		words := strings.FieldsFunc(h, func(r rune) bool { return !unicode.IsLetter(r) })
		switch {
		case strings.Contains(h, "date") || strings.Contains(h, "day"):
			cols[i] = colDate
		case hasWord(words, "in") || strings.Contains(h, "start"):
			cols[i] = colIn
		case hasWord(words, "out") || strings.Contains(h, "end"):
			cols[i] = colOut
		case strings.Contains(h, "hour") || strings.Contains(h, "total"):
			cols[i] = colHours
		}
	}
	return cols
}

func hasWord(words []string, w string) bool {
	for _, x := range words {
		if x == w {
			return true
		}
	}
	return false
}

func parseEntry(row []string, cols []column) model.TimeEntry {
	var (
		entry    model.TimeEntry
		hours    decimal.Decimal
		hasHours bool
	)
	for i, kind := range cols {
		v := cell(row, i)
		if v == "" {
			continue
		}
		switch kind {
		case colDate:
			if entry.Date.IsZero() {
				if d, ok := parseDateCell(v); ok {
					entry.Date = d
				}
			}
		case colIn:
			entry.TimeIn = parseTimeCell(v)
		case colOut:
			entry.TimeOut = parseTimeCell(v)
		case colHours:
			if h, ok := parseHours(v); ok {
				hours, hasHours = h, true
			}
		}
	}
	if (!hasHours || hours.IsZero()) && entry.TimeIn != "" && entry.TimeOut != "" {
		hours = shiftHours(entry.TimeIn, entry.TimeOut)
	}
	entry.Hours = hours
	return entry
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

var timecardDateLayouts = []string{
	"2006-01-02",
	"1/2/2006",
	"01/02/2006",
	"1/2/06",
	"01-02-2006",
	"1-2-06",
	"2006.01.02",
	"Jan 2, 2006",
	"January 2, 2006",
	"Mon 1/2/2006",
	"Monday, January 2, 2006",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// parseDateCell accepts a spreadsheet serial or a date string.
func parseDateCell(v string) (time.Time, bool) {
	if serial, err := strconv.ParseFloat(v, 64); err == nil {
		if serial < 1 {
			return time.Time{}, false
		}
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, false
		}
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
	}
	return parseDateText(v)
}

func parseDateText(v string) (time.Time, bool) {
	for _, layout := range timecardDateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

var clockLayouts = []string{"15:04", "15:04:05", "3:04PM", "3:04 PM", "3:04:05 PM", "3PM", "3 PM"}

// parseTimeCell returns "HH:MM" for a day-fraction serial or a clock string.
// Unrecognized text is returned trimmed.
func parseTimeCell(v string) string {
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		frac := f - math.Floor(f)
		mins := int(math.Round(frac*24*60)) % (24 * 60)
		return formatClock(mins)
	}
	upper := strings.ToUpper(v)
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, upper); err == nil {
			return formatClock(t.Hour()*60 + t.Minute())
		}
	}
	return v
}

func formatClock(mins int) string {
	return time.Date(0, 1, 1, mins/60, mins%60, 0, 0, time.UTC).Format("15:04")
}

// parseHours accepts a decimal number or "H:MM".
func parseHours(v string) (decimal.Decimal, bool) {
	if h, m, ok := strings.Cut(v, ":"); ok {
		hh, err1 := strconv.Atoi(strings.TrimSpace(h))
		mm, err2 := strconv.Atoi(strings.TrimSpace(m))
		if err1 != nil || err2 != nil {
			return decimal.Zero, false
		}
		return decimal.NewFromInt(int64(hh)).Add(decimal.NewFromInt(int64(mm)).Div(decimal.NewFromInt(60))).Round(2), true
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// shiftHours is out - in in hours; a shift ending before it starts wraps past
// midnight.
func shiftHours(in, out string) decimal.Decimal {
	start, ok1 := clockMinutes(in)
	end, ok2 := clockMinutes(out)
	if !ok1 || !ok2 {
		return decimal.Zero
	}
	diff := end - start
	if diff < 0 {
		diff += 24 * 60
	}
	return decimal.NewFromInt(int64(diff)).Div(decimal.NewFromInt(60)).Round(2)
}

func clockMinutes(hhmm string) (int, bool) {
	h, m, ok := strings.Cut(hhmm, ":")
	if !ok {
		return 0, false
	}
	hh, err1 := strconv.Atoi(h)
	mm, err2 := strconv.Atoi(m)
	if err1 != nil || err2 != nil {
		return 0, false
	}
	return hh*60 + mm, true
}
