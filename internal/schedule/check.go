package schedule

import (
	"fmt"

	"github.com/derekprior/roundrobin/internal/league"
)

// Violation is a broken round-robin invariant. Week is 1-based; 0 means
// the violation concerns the schedule as a whole.
type Violation struct {
	Week    int
	Message string
}

func (v Violation) String() string {
	if v.Week == 0 {
		return v.Message
	}
	return fmt.Sprintf("week %d: %s", v.Week, v.Message)
}

// Check verifies that weeks form a complete single round robin for the
// given number of teams: teams-1 weeks, teams/2 matches per week, every team
// once per week and every pair exactly once overall.
func Check(teams int, weeks []league.Week) []Violation {
	var violations []Violation

	if len(weeks) != teams-1 {
		violations = append(violations, Violation{
			Message: fmt.Sprintf("schedule has %d weeks, want %d", len(weeks), teams-1),
		})
	}

	played := make(map[league.Pair]int) // pair -> 1-based week first played
	for wi, w := range weeks {
		violations = append(violations, checkWeek(teams, wi+1, w)...)

		for _, m := range w.Matches() {
			if m.IsZero() || m.Home == m.Away || !inRange(teams, m.Home) || !inRange(teams, m.Away) {
				continue
			}
			k := m.Key()
			if first, ok := played[k]; ok {
				violations = append(violations, Violation{
					Week:    wi + 1,
					Message: fmt.Sprintf("%d vs %d already played in week %d", k.A, k.B, first),
				})
				continue
			}
			played[k] = wi + 1
		}
	}

	for a := 1; a <= teams; a++ {
		for b := a + 1; b <= teams; b++ {
			if _, ok := played[league.Pair{A: a, B: b}]; !ok {
				violations = append(violations, Violation{
					Message: fmt.Sprintf("%d vs %d is never played", a, b),
				})
			}
		}
	}

	return violations
}

func checkWeek(teams, week int, w league.Week) []Violation {
	var violations []Violation

	if w.Capacity() != teams/2 {
		violations = append(violations, Violation{
			Week:    week,
			Message: fmt.Sprintf("has %d match slots, want %d", w.Capacity(), teams/2),
		})
	}
	if !w.Complete() {
		violations = append(violations, Violation{
			Week:    week,
			Message: fmt.Sprintf("only %d of %d slots filled", w.Len(), w.Capacity()),
		})
	}

	seen := make(map[int]bool)
	for _, m := range w.Matches() {
		if m.IsZero() {
			continue
		}
		if m.Home == m.Away {
			violations = append(violations, Violation{
				Week:    week,
				Message: fmt.Sprintf("team %d plays itself", m.Home),
			})
		}
		for _, team := range []int{m.Home, m.Away} {
			if !inRange(teams, team) {
				violations = append(violations, Violation{
					Week:    week,
					Message: fmt.Sprintf("team %d is out of range 1-%d", team, teams),
				})
				continue
			}
			if seen[team] {
				violations = append(violations, Violation{
					Week:    week,
					Message: fmt.Sprintf("team %d plays more than once", team),
				})
			}
			seen[team] = true
		}
	}

	for team := 1; team <= teams; team++ {
		if !seen[team] {
			violations = append(violations, Violation{
				Week:    week,
				Message: fmt.Sprintf("team %d does not play", team),
			})
		}
	}

	return violations
}

// CheckFixedPrefix verifies that the first len(fixed) weeks equal the fixed
// weeks pairing for pairing.
func CheckFixedPrefix(fixed, weeks []league.Week) []Violation {
	var violations []Violation
	for i, f := range fixed {
		if i >= len(weeks) {
			violations = append(violations, Violation{
				Week:    i + 1,
				Message: "fixed week is missing",
			})
			continue
		}
		if !f.Equal(weeks[i]) {
			violations = append(violations, Violation{
				Week:    i + 1,
				Message: "differs from the fixed week",
			})
		}
	}
	return violations
}

func inRange(teams, team int) bool {
	return team >= 1 && team <= teams
}
