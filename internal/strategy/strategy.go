package strategy

import (
	"fmt"

	"github.com/derekprior/roundrobin/internal/league"
)

// Strategy generates a complete single round robin: teams-1 rounds of
// teams/2 matches in which every pair of teams meets exactly once.
type Strategy interface {
	Rounds(teams int) [][]league.Match
}

// Default is the strategy used when none is configured.
const Default = "circle"

// Get returns a Strategy by name.
func Get(name string) (Strategy, error) {
	switch name {
	case Default, "":
		return &Circle{}, nil
	default:
		return nil, fmt.Errorf("unknown strategy: %q", name)
	}
}

// Circle builds rounds with the circle (polygon rotation) method. Team 1 is
// the anchor; the other teams sit on a circle ordered n/2+1..n ascending
// followed by n/2..2 descending, and rotate one position per round.
type Circle struct{}

func (s *Circle) Rounds(teams int) [][]league.Match {
	if teams < 2 || teams%2 != 0 {
		return nil
	}

	circle := circleOrder(teams)
	size := len(circle)
	perRound := teams / 2

	rounds := make([][]league.Match, 0, teams-1)
	for r := 0; r < teams-1; r++ {
		round := make([]league.Match, 0, perRound)
		round = append(round, league.Match{Home: 1, Away: circle[r%size]})

		for idx := 1; idx < perRound; idx++ {
			first := circle[(r+idx)%size]
			second := circle[(r+size-idx)%size]
			round = append(round, league.Match{Home: first, Away: second})
		}
		rounds = append(rounds, round)
	}
	return rounds
}

func circleOrder(teams int) []int {
	half := teams / 2
	order := make([]int, 0, teams-1)
	for t := half + 1; t <= teams; t++ {
		order = append(order, t)
	}
	for t := half; t >= 2; t-- {
		order = append(order, t)
	}
	return order
}

// Flatten concatenates rounds in order.
func Flatten(rounds [][]league.Match) []league.Match {
	var n int
	for _, r := range rounds {
		n += len(r)
	}
	out := make([]league.Match, 0, n)
	for _, r := range rounds {
		out = append(out, r...)
	}
	return out
}
