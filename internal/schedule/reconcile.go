package schedule

import (
	"fmt"
	"log/slog"

	"github.com/derekprior/roundrobin/internal/league"
	"github.com/derekprior/roundrobin/internal/strategy"
)

// Mode selects how the unfixed weeks are derived from the generated
// tournament.
type Mode string

const (
	// ModeAuto repacks greedily and falls back to matching when the greedy
	// weeks break the one-match-per-team rule.
	ModeAuto Mode = "auto"
	// ModeGreedy repacks the surviving generator matches in order, n/2 per
	// week, and fails if the result is not a valid schedule.
	ModeGreedy Mode = "greedy"
	// ModeMatching always splits the surviving matches into perfect
	// matchings with a backtracking search.
	ModeMatching Mode = "matching"
)

// ParseMode returns the Mode with the given name.
func ParseMode(name string) (Mode, error) {
	switch Mode(name) {
	case ModeAuto, ModeGreedy, ModeMatching:
		return Mode(name), nil
	case "":
		return ModeAuto, nil
	default:
		return "", fmt.Errorf("unknown reconcile mode: %q", name)
	}
}

type reconciler struct {
	teams  int
	weeks  int // weeks to fill
	fixed  []league.Week
	mode   Mode
	budget int
	logger *slog.Logger
}

// reconcile returns the matches for the unfixed weeks and the method that
// produced them.
func (r *reconciler) reconcile(rounds [][]league.Match) ([][]league.Match, Mode, error) {
	leftover := r.leftover(strategy.Flatten(rounds))
	r.logger.Debug("filtered generated tournament",
		"generated", len(rounds)*r.teams/2, "leftover", len(leftover), "weeks", r.weeks)

	if r.mode == ModeMatching {
		weeks, err := r.complete(leftover)
		return weeks, ModeMatching, err
	}

	weeks, err := r.repack(leftover)
	if err == nil {
		return weeks, ModeGreedy, nil
	}
	if r.mode == ModeGreedy {
		return nil, ModeGreedy, err
	}

	r.logger.Info("greedy repack rejected, completing with matching search", "reason", err)
	weeks, err = r.complete(leftover)
	return weeks, ModeMatching, err
}

// leftover drops every generated match already claimed by a fixed week.
// The fixed set holds each match and its mirror so either orientation in
// the fixed weeks claims the fixture.
func (r *reconciler) leftover(generated []league.Match) []league.Match {
	fixed := make(map[league.Match]bool)
	for _, w := range r.fixed {
		for _, m := range w.Matches() {
			fixed[m] = true
			fixed[m.Mirror()] = true
		}
	}

	var out []league.Match
	for _, m := range generated {
		if !fixed[m] {
			out = append(out, m)
		}
	}
	return out
}

// repack fills the unfixed weeks with consecutive leftover matches, n/2
// per week, and verifies that no team plays twice in a week.
func (r *reconciler) repack(leftover []league.Match) ([][]league.Match, error) {
	perWeek := r.teams / 2
	if len(leftover) != r.weeks*perWeek {
		return nil, fmt.Errorf("%w: %d matches left for %d weeks of %d",
			league.ErrInconsistentPreschedule, len(leftover), r.weeks, perWeek)
	}

	weeks := make([][]league.Match, 0, r.weeks)
	for i := 0; i < len(leftover); i += perWeek {
		week := leftover[i : i+perWeek]
		seen := make(map[int]bool, r.teams)
		for _, m := range week {
			for _, team := range []int{m.Home, m.Away} {
				if seen[team] {
					return nil, fmt.Errorf("%w: greedy repack puts team %d twice in week %d",
						league.ErrInconsistentPreschedule, team, len(r.fixed)+len(weeks)+1)
				}
				seen[team] = true
			}
		}
		weeks = append(weeks, week)
	}
	return weeks, nil
}

func (r *reconciler) complete(leftover []league.Match) ([][]league.Match, error) {
	c, err := newCompletion(r.teams, r.weeks, leftover, r.budget)
	if err != nil {
		return nil, err
	}
	weeks, err := c.run()
	r.logger.Debug("matching search finished", "steps", c.steps, "weeks", len(weeks), "error", err)
	return weeks, err
}
