package validator

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/derekprior/roundrobin/internal/config"
	"github.com/derekprior/roundrobin/internal/excel"
	"github.com/derekprior/roundrobin/internal/league"
	"github.com/derekprior/roundrobin/internal/notation"
	"github.com/derekprior/roundrobin/internal/render"
	"github.com/derekprior/roundrobin/internal/schedule"
)

// Violation represents a broken rule found during validation.
type Violation struct {
	Week    int    // 1-based, 0 when the violation is not tied to a week
	Type    string // "error" or "warning"
	Message string
}

// Validate reads a schedule from an Excel workbook (.xlsx), a YAML document
// (.yaml, .yml) or a text file of week expressions and checks it against
// the config.
func Validate(cfg *config.Config, path string) ([]Violation, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".xlsx" {
		return validateWorkbook(cfg, path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	var weeks []league.Week
	switch ext {
	case ".yaml", ".yml":
		weeks, err = render.ReadYAML(file, cfg.Teams)
	default:
		weeks, err = notation.Parse(file, cfg.Teams)
	}
	if err != nil {
		return nil, fmt.Errorf("reading weeks: %w", err)
	}
	return ValidateWeeks(cfg, weeks)
}

func validateWorkbook(cfg *config.Config, path string) ([]Violation, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	weeks, err := excel.ReadWeeks(f, cfg.Teams)
	if err != nil {
		return nil, fmt.Errorf("reading weeks: %w", err)
	}

	violations, err := ValidateWeeks(cfg, weeks)
	if err != nil {
		return nil, err
	}

	dates, err := readDates(f)
	if err != nil {
		return nil, fmt.Errorf("reading dates: %w", err)
	}
	violations = append(violations, checkMatchdays(cfg, dates)...)
	return violations, nil
}

// ValidateWeeks checks weeks already in memory against the config.
func ValidateWeeks(cfg *config.Config, weeks []league.Week) ([]Violation, error) {
	fixed, err := notation.ParseWeeks(cfg.FixedWeeks, cfg.Teams)
	if err != nil {
		return nil, fmt.Errorf("parsing fixed weeks: %w", err)
	}

	var violations []Violation

	// Check hard constraints
	violations = append(violations, CheckWeeks(cfg.Teams, weeks)...)
	violations = append(violations, CheckFixedPrefix(fixed, weeks)...)

	// Check soft constraints
	violations = append(violations, checkHomeBalance(cfg.Teams, weeks)...)

	return violations, nil
}

// CheckWeeks reports every broken round-robin rule as an error.
func CheckWeeks(teams int, weeks []league.Week) []Violation {
	return asErrors(schedule.Check(teams, weeks))
}

// CheckFixedPrefix reports fixed weeks that the schedule does not keep.
func CheckFixedPrefix(fixed, weeks []league.Week) []Violation {
	return asErrors(schedule.CheckFixedPrefix(fixed, weeks))
}

func asErrors(in []schedule.Violation) []Violation {
	var violations []Violation
	for _, v := range in {
		violations = append(violations, Violation{
			Week:    v.Week,
			Type:    "error",
			Message: v.Message,
		})
	}
	return violations
}

// checkHomeBalance warns about teams whose home and away counts differ by
// more than half a season.
func checkHomeBalance(teams int, weeks []league.Week) []Violation {
	home := make([]int, teams+1)
	away := make([]int, teams+1)
	for _, w := range weeks {
		for _, m := range w.Matches() {
			if m.IsZero() || m.Home < 1 || m.Home > teams || m.Away < 1 || m.Away > teams {
				continue
			}
			home[m.Home]++
			away[m.Away]++
		}
	}

	var violations []Violation
	for team := 1; team <= teams; team++ {
		diff := home[team] - away[team]
		if diff < 0 {
			diff = -diff
		}
		if diff > teams/2 {
			violations = append(violations, Violation{
				Type:    "warning",
				Message: fmt.Sprintf("team %d plays %d home and %d away", team, home[team], away[team]),
			})
		}
	}
	return violations
}

// readDates returns the Date column of the Schedule sheet for each week row,
// zero where the cell is empty.
func readDates(f *excelize.File) ([]time.Time, error) {
	rows, err := f.GetRows(excel.ScheduleSheet)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", excel.ScheduleSheet, err)
	}

	var dates []time.Time
	for i, row := range rows {
		if i == 0 {
			continue
		}
		if len(row) == 0 || row[0] == "" {
			continue
		}
		if _, err := strconv.Atoi(row[0]); err != nil {
			continue
		}
		var d time.Time
		if len(row) > 1 && row[1] != "" {
			d, err = time.Parse("01/02/2006", row[1])
			if err != nil {
				return nil, fmt.Errorf("row %d: invalid date %q", i+1, row[1])
			}
		}
		dates = append(dates, d)
	}
	return dates, nil
}

// checkMatchdays warns when the workbook's dates do not follow the season
// calendar in the config.
func checkMatchdays(cfg *config.Config, dates []time.Time) []Violation {
	expected := schedule.Dates(schedule.GenerateMatchdays(cfg, len(dates)))
	if expected == nil {
		return nil
	}

	var violations []Violation
	for i, d := range dates {
		if d.IsZero() {
			violations = append(violations, Violation{
				Week:    i + 1,
				Type:    "warning",
				Message: fmt.Sprintf("no date, expected %s", expected[i].Format("01/02/2006")),
			})
			continue
		}
		if !d.Equal(expected[i]) {
			violations = append(violations, Violation{
				Week:    i + 1,
				Type:    "warning",
				Message: fmt.Sprintf("played %s, expected %s", d.Format("01/02/2006"), expected[i].Format("01/02/2006")),
			})
		}
	}
	return violations
}
