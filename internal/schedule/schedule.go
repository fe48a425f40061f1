// Package schedule builds a complete single round-robin schedule around a
// prefix of externally fixed weeks.
package schedule

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/derekprior/roundrobin/internal/league"
	"github.com/derekprior/roundrobin/internal/strategy"
)

// Schedule is a league of an even number of teams playing teams-1 weeks.
// The first weeks are copied from the fixed weeks it was created with; the
// rest are filled by Generate.
type Schedule struct {
	teams    int
	weeks    []league.Week
	fixed    int
	strategy strategy.Strategy
	mode     Mode
	budget   int
	logger   *slog.Logger

	generated bool
	method    Mode
}

// Option configures a Schedule.
type Option func(*Schedule)

// WithStrategy sets the tournament generator. The default is the circle
// method.
func WithStrategy(s strategy.Strategy) Option {
	return func(sc *Schedule) { sc.strategy = s }
}

// WithMode sets how unfixed weeks are derived. The default is ModeAuto.
func WithMode(m Mode) Option {
	return func(sc *Schedule) { sc.mode = m }
}

// WithLogger sets the logger used to report reconciliation decisions.
func WithLogger(l *slog.Logger) Option {
	return func(sc *Schedule) { sc.logger = l }
}

// WithSearchBudget bounds the matching search.
func WithSearchBudget(steps int) Option {
	return func(sc *Schedule) { sc.budget = steps }
}

// New returns a schedule for teams over totalWeeks weeks whose first weeks
// are fixed. teams must be even and totalWeeks must equal teams-1. Every
// fixed week must hold teams/2 matches between teams in [1, teams].
func New(teams, totalWeeks int, fixed []league.Week, opts ...Option) (*Schedule, error) {
	if teams < 2 || teams%2 != 0 {
		return nil, fmt.Errorf("%w: need an even number of at least 2 teams, got %d", league.ErrInvalidTeamCount, teams)
	}
	if totalWeeks != teams-1 {
		return nil, fmt.Errorf("%w: %d teams play %d weeks, got %d", league.ErrInvalidWeekCount, teams, teams-1, totalWeeks)
	}
	if len(fixed) > totalWeeks {
		return nil, fmt.Errorf("%w: %d fixed weeks exceed %d weeks", league.ErrInvalidWeekCount, len(fixed), totalWeeks)
	}

	perWeek := teams / 2
	for i, w := range fixed {
		if w.Capacity() != perWeek || !w.Complete() {
			return nil, fmt.Errorf("fixed week %d: %w: has %d matches, want %d", i+1, league.ErrInvalidMatch, w.Len(), perWeek)
		}
		for _, m := range w.Matches() {
			if m.Home == m.Away {
				return nil, fmt.Errorf("fixed week %d: %w: team %d cannot play itself", i+1, league.ErrInvalidMatch, m.Home)
			}
			if !inRange(teams, m.Home) || !inRange(teams, m.Away) {
				return nil, fmt.Errorf("fixed week %d: %w: %s not within 1-%d", i+1, league.ErrTeamOutOfRange, m, teams)
			}
		}
	}

	s := &Schedule{
		teams:    teams,
		weeks:    make([]league.Week, totalWeeks),
		fixed:    len(fixed),
		strategy: &strategy.Circle{},
		mode:     ModeAuto,
		budget:   DefaultSearchBudget,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}

	for i, w := range fixed {
		s.weeks[i] = w.Clone()
	}
	for i := len(fixed); i < totalWeeks; i++ {
		s.weeks[i] = league.NewWeek(perWeek)
	}
	return s, nil
}

// Generate fills the unfixed weeks and verifies the whole schedule. It
// returns ErrInconsistentPreschedule when the fixed weeks cannot be
// completed into a valid round robin.
func (s *Schedule) Generate() error {
	rounds := s.strategy.Rounds(s.teams)
	if len(rounds) != s.teams-1 {
		return fmt.Errorf("strategy produced %d rounds for %d teams, want %d", len(rounds), s.teams, s.teams-1)
	}

	r := &reconciler{
		teams:  s.teams,
		weeks:  len(s.weeks) - s.fixed,
		fixed:  s.weeks[:s.fixed],
		mode:   s.mode,
		budget: s.budget,
		logger: s.logger,
	}
	filled, method, err := r.reconcile(rounds)
	if err != nil {
		return fmt.Errorf("generating %d weeks after %d fixed: %w", r.weeks, s.fixed, err)
	}

	perWeek := s.teams / 2
	for i, matches := range filled {
		w := league.NewWeek(perWeek)
		for slot, m := range matches {
			w.Set(slot, m)
		}
		s.weeks[s.fixed+i] = w
	}

	if violations := Check(s.teams, s.weeks); len(violations) > 0 {
		s.generated = false
		return fmt.Errorf("%w: %s (%d violations)", league.ErrInconsistentPreschedule, violations[0], len(violations))
	}

	s.generated = true
	s.method = method
	s.logger.Info("schedule generated",
		"teams", s.teams, "weeks", len(s.weeks), "fixed", s.fixed, "method", string(method))
	return nil
}

// Teams returns the number of teams.
func (s *Schedule) Teams() int { return s.teams }

// TotalWeeks returns the number of weeks, fixed and generated.
func (s *Schedule) TotalWeeks() int { return len(s.weeks) }

// FixedWeeks returns the number of weeks copied from the fixed input.
func (s *Schedule) FixedWeeks() int { return s.fixed }

// MatchesPerWeek returns teams/2.
func (s *Schedule) MatchesPerWeek() int { return s.teams / 2 }

// Generated reports whether Generate completed successfully.
func (s *Schedule) Generated() bool { return s.generated }

// Method reports how the unfixed weeks were derived: ModeGreedy or
// ModeMatching. Empty until Generate succeeds.
func (s *Schedule) Method() Mode { return s.method }

// Week returns a copy of week i (0-based).
func (s *Schedule) Week(i int) league.Week {
	return s.weeks[i].Clone()
}

// Weeks returns copies of all weeks in order.
func (s *Schedule) Weeks() []league.Week {
	out := make([]league.Week, len(s.weeks))
	for i, w := range s.weeks {
		out[i] = w.Clone()
	}
	return out
}
