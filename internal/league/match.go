// Package league holds the value types of a round-robin league: matches
// between two teams and the weeks they are played in.
package league

import "fmt"

// Match is a pairing of two distinct teams. The order of Home and Away is
// kept for display only; two matches naming the same teams are equal
// regardless of order.
type Match struct {
	Home int
	Away int
}

// Pair is the normalized form of a Match (A < B), suitable as a map key.
type Pair struct {
	A, B int
}

// NewMatch returns the match between teams a and b.
func NewMatch(a, b int) (Match, error) {
	if a == b {
		return Match{}, fmt.Errorf("%w: team %d cannot play itself", ErrInvalidMatch, a)
	}
	return Match{Home: a, Away: b}, nil
}

// MustMatch is like NewMatch but panics on error. Intended for internally
// computed pairings and tests.
func MustMatch(a, b int) Match {
	m, err := NewMatch(a, b)
	if err != nil {
		panic(err)
	}
	return m
}

// Mirror returns the same fixture with home and away swapped.
func (m Match) Mirror() Match {
	return Match{Home: m.Away, Away: m.Home}
}

// Key returns the order-independent identity of the match.
func (m Match) Key() Pair {
	if m.Home > m.Away {
		return Pair{m.Away, m.Home}
	}
	return Pair{m.Home, m.Away}
}

// Equal reports whether both matches name the same two teams.
func (m Match) Equal(other Match) bool {
	return m.Key() == other.Key()
}

// IsZero reports whether the match is the unset value.
func (m Match) IsZero() bool {
	return m.Home == 0 && m.Away == 0
}

// Has reports whether team plays in the match.
func (m Match) Has(team int) bool {
	return m.Home == team || m.Away == team
}

// Opponent returns the team facing the given team, or 0 if the team does not
// play in this match.
func (m Match) Opponent(team int) int {
	switch team {
	case m.Home:
		return m.Away
	case m.Away:
		return m.Home
	}
	return 0
}

func (m Match) String() string {
	return fmt.Sprintf("%d:%d", m.Home, m.Away)
}
