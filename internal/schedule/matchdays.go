package schedule

import (
	"sort"
	"time"

	"github.com/derekprior/roundrobin/internal/config"
)

// Matchday places a week on the calendar.
type Matchday struct {
	Week int // 1-based
	Date time.Time
}

// SkippedDate is a weekly date that fell on a blackout and was not used.
type SkippedDate struct {
	Date   time.Time
	Reason string
}

// GenerateMatchdays assigns each of the given number of weeks to a date,
// starting at the season start date and stepping one week at a time.
// Blacked-out dates are skipped. Returns nil when the season has no start
// date.
func GenerateMatchdays(cfg *config.Config, weeks int) []Matchday {
	if cfg.Season.StartDate == nil {
		return nil
	}

	blackoutDates := make(map[time.Time]bool)
	for _, b := range cfg.Season.BlackoutDates {
		blackoutDates[b.Date.Time] = true
	}

	days := make([]Matchday, 0, weeks)
	d := cfg.Season.StartDate.Time
	for len(days) < weeks {
		if blackoutDates[d] {
			d = d.AddDate(0, 0, 7)
			continue
		}
		days = append(days, Matchday{Week: len(days) + 1, Date: d})
		d = d.AddDate(0, 0, 7)
	}
	return days
}

// GenerateSkippedDates returns the blackout dates that land on the weekly
// cadence between the season start and the last matchday, in date order.
func GenerateSkippedDates(cfg *config.Config, days []Matchday) []SkippedDate {
	if cfg.Season.StartDate == nil || len(days) == 0 {
		return nil
	}

	start := cfg.Season.StartDate.Time
	end := days[len(days)-1].Date

	var skipped []SkippedDate
	for _, b := range cfg.Season.BlackoutDates {
		d := b.Date.Time
		if d.Before(start) || d.After(end) {
			continue
		}
		if int(d.Sub(start).Hours()/24)%7 != 0 {
			continue
		}
		skipped = append(skipped, SkippedDate{Date: d, Reason: b.Reason})
	}

	sort.Slice(skipped, func(i, j int) bool {
		return skipped[i].Date.Before(skipped[j].Date)
	})
	return skipped
}

// Dates returns the matchday dates indexed by 0-based week, or nil.
func Dates(days []Matchday) []time.Time {
	if len(days) == 0 {
		return nil
	}
	out := make([]time.Time, len(days))
	for i, d := range days {
		out[i] = d.Date
	}
	return out
}
