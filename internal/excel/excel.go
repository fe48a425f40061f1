package excel

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/derekprior/roundrobin/internal/league"
	"github.com/derekprior/roundrobin/internal/notation"
	"github.com/derekprior/roundrobin/internal/schedule"
)

// ScheduleSheet is the name of the sheet holding one row per week.
const ScheduleSheet = "Schedule"

const matchSep = " vs "

// TeamSheet returns the name of the sheet listing a team's matches.
func TeamSheet(team int) string {
	return fmt.Sprintf("Team %d", team)
}

// Generate creates a workbook with the week by week schedule and a sheet
// per team. days and skipped are optional; without them the Date column is
// left empty.
func Generate(s *schedule.Schedule, days []schedule.Matchday, skipped []schedule.SkippedDate) (*excelize.File, error) {
	if !s.Generated() {
		return nil, errors.New("schedule has not been generated")
	}

	f := excelize.NewFile()

	// Set default font for the workbook
	f.SetDefaultFont("Arial")

	dates := schedule.Dates(days)

	if err := writeScheduleSheet(f, s, dates, skipped); err != nil {
		return nil, fmt.Errorf("writing schedule sheet: %w", err)
	}

	if err := writeTeamSheets(f, s, dates); err != nil {
		return nil, fmt.Errorf("writing team sheets: %w", err)
	}

	f.DeleteSheet("Sheet1")
	return f, nil
}

func headerStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 16, Family: "Arial"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#4472C4"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
}

func writeHeaders(f *excelize.File, sheet string, headers []string) error {
	for i, h := range headers {
		if err := f.SetCellValue(sheet, cellRef(i+1, 1), h); err != nil {
			return err
		}
	}
	style, err := headerStyle(f)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, cellRef(1, 1), cellRef(len(headers), 1), style)
}

func formatDate(dates []time.Time, week int) string {
	if week >= len(dates) {
		return ""
	}
	return dates[week].Format("01/02/2006")
}

func writeScheduleSheet(f *excelize.File, s *schedule.Schedule, dates []time.Time, skipped []schedule.SkippedDate) error {
	sheet := ScheduleSheet
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	perWeek := s.MatchesPerWeek()
	headers := []string{"Week", "Date", "Fixed"}
	for i := 1; i <= perWeek; i++ {
		headers = append(headers, fmt.Sprintf("Match %d", i))
	}
	if err := writeHeaders(f, sheet, headers); err != nil {
		return err
	}

	cellStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 16, Family: "Arial"},
	})
	matchCellStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 16, Family: "Arial"},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})

	// Weeks and skipped dates interleaved by date. Skipped dates only exist
	// when the weeks are on the calendar.
	type row struct {
		date   time.Time
		week   int // 0-based, -1 for a skipped date
		reason string
	}
	var rows []row
	for i := 0; i < s.TotalWeeks(); i++ {
		r := row{week: i}
		if i < len(dates) {
			r.date = dates[i]
		}
		rows = append(rows, r)
	}
	if len(dates) > 0 {
		for _, sk := range skipped {
			rows = append(rows, row{date: sk.Date, week: -1, reason: sk.Reason})
		}
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].date.Before(rows[j].date)
		})
	}

	for i, r := range rows {
		rowNum := i + 2
		if r.week < 0 {
			f.SetCellValue(sheet, cellRef(2, rowNum), r.date.Format("01/02/2006"))
			f.SetCellValue(sheet, cellRef(4, rowNum), r.reason)
		} else {
			f.SetCellValue(sheet, cellRef(1, rowNum), r.week+1)
			f.SetCellValue(sheet, cellRef(2, rowNum), formatDate(dates, r.week))
			if r.week < s.FixedWeeks() {
				f.SetCellValue(sheet, cellRef(3, rowNum), "yes")
			}
			for slot, m := range s.Week(r.week).Matches() {
				f.SetCellValue(sheet, cellRef(slot+4, rowNum), fmt.Sprintf("%d%s%d", m.Home, matchSep, m.Away))
			}
		}

		if cellStyle != 0 {
			f.SetCellStyle(sheet, cellRef(1, rowNum), cellRef(3, rowNum), cellStyle)
			f.SetCellStyle(sheet, cellRef(4, rowNum), cellRef(len(headers), rowNum), matchCellStyle)
		}
	}

	// Set column widths (sized for Arial 16)
	f.SetColWidth(sheet, "A", "A", 10)
	f.SetColWidth(sheet, "B", "B", 18)
	f.SetColWidth(sheet, "C", "C", 10)
	f.SetColWidth(sheet, colLetter(4), colLetter(len(headers)), 16)

	// Conditional formatting: non-match cells in match columns get light red
	lastRow := len(rows) + 1
	redFill, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#FFC7CE"}},
		Font: &excelize.Font{Size: 16, Family: "Arial"},
	})
	for col := 4; col <= len(headers); col++ {
		letter := colLetter(col)
		cellRange := fmt.Sprintf("%s2:%s%d", letter, letter, lastRow)
		topCell := fmt.Sprintf("%s2", letter)
		formula := fmt.Sprintf(`AND(%s<>"",ISERROR(FIND("%s",%s)))`, topCell, matchSep, topCell)
		f.SetConditionalFormat(sheet, cellRange, []excelize.ConditionalFormatOptions{
			{
				Type:     "formula",
				Criteria: formula,
				Format:   &redFill,
			},
		})
	}

	return nil
}

func writeTeamSheets(f *excelize.File, s *schedule.Schedule, dates []time.Time) error {
	weeks := s.Weeks()
	headers := []string{"Week", "Date", "Opponent", "Home/Away"}

	cellStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 16, Family: "Arial"},
	})

	for team := 1; team <= s.Teams(); team++ {
		sheet := TeamSheet(team)
		if _, err := f.NewSheet(sheet); err != nil {
			return err
		}
		if err := writeHeaders(f, sheet, headers); err != nil {
			return err
		}

		row := 2
		for wi, w := range weeks {
			for _, m := range w.Matches() {
				if !m.Has(team) {
					continue
				}
				homeAway := "Away"
				if m.Home == team {
					homeAway = "Home"
				}
				f.SetCellValue(sheet, cellRef(1, row), wi+1)
				f.SetCellValue(sheet, cellRef(2, row), formatDate(dates, wi))
				f.SetCellValue(sheet, cellRef(3, row), m.Opponent(team))
				f.SetCellValue(sheet, cellRef(4, row), homeAway)
				if cellStyle != 0 {
					f.SetCellStyle(sheet, cellRef(1, row), cellRef(len(headers), row), cellStyle)
				}
				row++
			}
		}

		widths := map[string]float64{"A": 10, "B": 18, "C": 14, "D": 14}
		for col, w := range widths {
			f.SetColWidth(sheet, col, col, w)
		}
	}

	return nil
}

// ReadWeeks reads the Schedule sheet of a workbook written by Generate back
// into weeks. Rows without a week number are skipped dates and are ignored.
func ReadWeeks(f *excelize.File, teams int) ([]league.Week, error) {
	rows, err := f.GetRows(ScheduleSheet)
	if err != nil {
		return nil, fmt.Errorf("reading %s sheet: %w", ScheduleSheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s sheet is empty", ScheduleSheet)
	}

	perWeek := teams / 2
	var weeks []league.Week
	for i, row := range rows[1:] { // skip header
		rowNum := i + 2
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(row[0]))
		if err != nil || n != len(weeks)+1 {
			return nil, fmt.Errorf("row %d: week %q, want %d", rowNum, row[0], len(weeks)+1)
		}

		var matches []league.Match
		for col := 3; col < len(row); col++ {
			cell := strings.TrimSpace(row[col])
			if cell == "" {
				continue
			}
			m, err := parseCell(cell, teams)
			if err != nil {
				return nil, fmt.Errorf("row %d, %s: %w", rowNum, cellRef(col+1, rowNum), err)
			}
			matches = append(matches, m)
		}

		w, err := league.WeekOf(perWeek, matches...)
		if err != nil {
			return nil, fmt.Errorf("week %d: %w", n, err)
		}
		weeks = append(weeks, w)
	}
	return weeks, nil
}

func parseCell(cell string, teams int) (league.Match, error) {
	home, away, ok := strings.Cut(cell, strings.TrimSpace(matchSep))
	if !ok {
		return league.Match{}, fmt.Errorf("%w: %q is not \"a vs b\"", league.ErrMalformedExpression, cell)
	}
	return notation.ParseMatch(home+":"+away, teams)
}

func cellRef(col, row int) string {
	return fmt.Sprintf("%s%d", colLetter(col), row)
}

func colLetter(col int) string {
	result := ""
	for col > 0 {
		col--
		result = string(rune('A'+col%26)) + result
		col /= 26
	}
	return result
}
