package league

import "fmt"

// Week is a fixed number of match slots played in the same time slot.
// Slots hold the zero Match until they are set.
type Week struct {
	matches []Match
}

// NewWeek returns an empty week with the given number of slots.
func NewWeek(capacity int) Week {
	return Week{matches: make([]Match, capacity)}
}

// WeekOf returns a week filled with the given matches. The number of
// matches must equal capacity and every match must name two distinct teams.
func WeekOf(capacity int, matches ...Match) (Week, error) {
	if len(matches) != capacity {
		return Week{}, fmt.Errorf("%w: week has %d matches, want %d", ErrInvalidMatch, len(matches), capacity)
	}
	w := NewWeek(capacity)
	for i, m := range matches {
		if m.IsZero() {
			return Week{}, fmt.Errorf("%w: slot %d is empty", ErrInvalidMatch, i+1)
		}
		if m.Home == m.Away {
			return Week{}, fmt.Errorf("%w: team %d cannot play itself", ErrInvalidMatch, m.Home)
		}
		w.matches[i] = m
	}
	return w, nil
}

// Set stores m in the given slot. Panics if slot is out of range.
func (w Week) Set(slot int, m Match) {
	w.matches[slot] = m
}

// Match returns the match in the given slot.
func (w Week) Match(slot int) Match {
	return w.matches[slot]
}

// Matches returns a copy of the week's slots.
func (w Week) Matches() []Match {
	out := make([]Match, len(w.matches))
	copy(out, w.matches)
	return out
}

// Capacity returns the number of slots.
func (w Week) Capacity() int {
	return len(w.matches)
}

// Len returns the number of slots that hold a match.
func (w Week) Len() int {
	n := 0
	for _, m := range w.matches {
		if !m.IsZero() {
			n++
		}
	}
	return n
}

// Complete reports whether every slot holds a match.
func (w Week) Complete() bool {
	return len(w.matches) > 0 && w.Len() == len(w.matches)
}

// Clone returns a week that does not share storage with w.
func (w Week) Clone() Week {
	return Week{matches: w.Matches()}
}

// Equal reports whether both weeks hold equal matches slot for slot.
func (w Week) Equal(other Week) bool {
	if len(w.matches) != len(other.matches) {
		return false
	}
	for i, m := range w.matches {
		if !m.Equal(other.matches[i]) {
			return false
		}
	}
	return true
}

// Teams returns the teams playing this week in slot order.
func (w Week) Teams() []int {
	teams := make([]int, 0, 2*len(w.matches))
	for _, m := range w.matches {
		if m.IsZero() {
			continue
		}
		teams = append(teams, m.Home, m.Away)
	}
	return teams
}
