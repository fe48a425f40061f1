package schedule

import (
	"errors"
	"fmt"
	"slices"

	"github.com/dominikbraun/graph"

	"github.com/derekprior/roundrobin/internal/league"
)

// DefaultSearchBudget bounds the number of search steps spent completing a
// schedule before giving up.
const DefaultSearchBudget = 1 << 20

var errBudgetExhausted = errors.New("search budget exhausted")

// pairingGraph holds the matches that still need a week: one vertex per
// team, one undirected edge per unplayed pairing.
type pairingGraph struct {
	graph.Graph[int, int]
	teams int
}

func newPairingGraph(teams int, matches []league.Match) (*pairingGraph, error) {
	g := graph.New(graph.IntHash)
	for team := 1; team <= teams; team++ {
		if err := g.AddVertex(team); err != nil {
			return nil, fmt.Errorf("adding team %d: %w", team, err)
		}
	}
	for _, m := range matches {
		if err := g.AddEdge(m.Home, m.Away); err != nil {
			return nil, fmt.Errorf("adding %s: %w", m, err)
		}
	}
	return &pairingGraph{Graph: g, teams: teams}, nil
}

// degrees returns the number of unplayed opponents per team, indexed by team.
func (g *pairingGraph) degrees() ([]int, error) {
	adj, err := g.AdjacencyMap()
	if err != nil {
		return nil, err
	}
	deg := make([]int, g.teams+1)
	for team, edges := range adj {
		deg[team] = len(edges)
	}
	return deg, nil
}

// openMatrix returns open[a][b] == true for every unplayed pairing.
func (g *pairingGraph) openMatrix() ([][]bool, error) {
	adj, err := g.AdjacencyMap()
	if err != nil {
		return nil, err
	}
	open := make([][]bool, g.teams+1)
	for i := range open {
		open[i] = make([]bool, g.teams+1)
	}
	for a, edges := range adj {
		for b := range edges {
			open[a][b] = true
		}
	}
	return open, nil
}

// hasOddComponent reports whether some connected group of teams has an odd
// size. Such a graph has no perfect matching, so it cannot be split into
// weeks.
func (g *pairingGraph) hasOddComponent() bool {
	visited := make([]bool, g.teams+1)
	for team := 1; team <= g.teams; team++ {
		if visited[team] {
			continue
		}
		size := 0
		_ = graph.BFS(g.Graph, team, func(v int) bool {
			visited[v] = true
			size++
			return false
		})
		if size%2 != 0 {
			return true
		}
	}
	return false
}

func (g *pairingGraph) removeWeek(week []league.Match) {
	for _, m := range week {
		_ = g.RemoveEdge(m.Home, m.Away)
	}
}

func (g *pairingGraph) restoreWeek(week []league.Match) {
	for _, m := range week {
		_ = g.AddEdge(m.Home, m.Away)
	}
}

// completion splits the unplayed matches into weeks where every team plays
// exactly once. It fills one week at a time, always extending the week with
// the free team that has the fewest free opponents, and tries opponents in
// generator order. Completed weeks are removed from the graph; a week that
// leaves an odd component behind is abandoned immediately.
type completion struct {
	teams  int
	weeks  int
	graph  *pairingGraph
	open   [][]bool
	rank   map[league.Pair]int
	orient map[league.Pair]league.Match
	budget int
	steps  int
	result [][]league.Match
}

func newCompletion(teams, weeks int, leftover []league.Match, budget int) (*completion, error) {
	g, err := newPairingGraph(teams, leftover)
	if err != nil {
		return nil, err
	}

	deg, err := g.degrees()
	if err != nil {
		return nil, err
	}
	if len(leftover) != weeks*teams/2 {
		return nil, fmt.Errorf("%w: %d matches left for %d weeks of %d",
			league.ErrInconsistentPreschedule, len(leftover), weeks, teams/2)
	}
	for team := 1; team <= teams; team++ {
		if deg[team] != weeks {
			return nil, fmt.Errorf("%w: team %d has %d matches left for %d weeks",
				league.ErrInconsistentPreschedule, team, deg[team], weeks)
		}
	}

	open, err := g.openMatrix()
	if err != nil {
		return nil, err
	}

	rank := make(map[league.Pair]int, len(leftover))
	orient := make(map[league.Pair]league.Match, len(leftover))
	for i, m := range leftover {
		rank[m.Key()] = i
		orient[m.Key()] = m
	}

	if budget <= 0 {
		budget = DefaultSearchBudget
	}

	return &completion{
		teams:  teams,
		weeks:  weeks,
		graph:  g,
		open:   open,
		rank:   rank,
		orient: orient,
		budget: budget,
	}, nil
}

func (c *completion) run() ([][]league.Match, error) {
	if c.weeks == 0 {
		return nil, nil
	}
	used := make([]bool, c.teams+1)
	week := make([]league.Match, 0, c.teams/2)
	if c.fill(week, used, 0) {
		return c.result, nil
	}
	if c.steps > c.budget {
		return nil, fmt.Errorf("%w: %w after %d steps", league.ErrInconsistentPreschedule, errBudgetExhausted, c.budget)
	}
	return nil, fmt.Errorf("%w: remaining matches cannot be split into %d weeks", league.ErrInconsistentPreschedule, c.weeks)
}

func (c *completion) fill(week []league.Match, used []bool, placed int) bool {
	c.steps++
	if c.steps > c.budget {
		return false
	}

	if placed == c.teams {
		return c.closeWeek(week)
	}

	team, opponents := c.mostConstrained(used)
	if team == 0 {
		return false
	}

	for _, opp := range opponents {
		c.open[team][opp], c.open[opp][team] = false, false
		used[team], used[opp] = true, true

		m := c.orient[league.Match{Home: team, Away: opp}.Key()]
		if c.fill(append(week, m), used, placed+2) {
			return true
		}

		used[team], used[opp] = false, false
		c.open[team][opp], c.open[opp][team] = true, true
		if c.steps > c.budget {
			return false
		}
	}
	return false
}

func (c *completion) closeWeek(week []league.Match) bool {
	done := slices.Clone(week)
	c.result = append(c.result, done)
	if len(c.result) == c.weeks {
		return true
	}

	c.graph.removeWeek(done)
	if !c.graph.hasOddComponent() {
		used := make([]bool, c.teams+1)
		if c.fill(make([]league.Match, 0, c.teams/2), used, 0) {
			return true
		}
	}
	c.graph.restoreWeek(done)

	c.result = c.result[:len(c.result)-1]
	return false
}

// mostConstrained returns the free team with the fewest free opponents,
// lowest id first on ties, with those opponents in generator order. It
// returns team 0 when a free team has no opponent left.
func (c *completion) mostConstrained(used []bool) (int, []int) {
	best := 0
	var bestOpps []int
	for team := 1; team <= c.teams; team++ {
		if used[team] {
			continue
		}
		var opps []int
		for opp := 1; opp <= c.teams; opp++ {
			if opp != team && !used[opp] && c.open[team][opp] {
				opps = append(opps, opp)
			}
		}
		if len(opps) == 0 {
			return 0, nil
		}
		if best == 0 || len(opps) < len(bestOpps) {
			best, bestOpps = team, opps
		}
	}

	slices.SortFunc(bestOpps, func(a, b int) int {
		return c.rank[league.Match{Home: best, Away: a}.Key()] - c.rank[league.Match{Home: best, Away: b}.Key()]
	})
	return best, bestOpps
}
