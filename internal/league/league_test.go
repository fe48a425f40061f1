package league

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMatch(t *testing.T) {
	t.Run("same team is rejected", func(t *testing.T) {
		for team := 1; team <= 16; team++ {
			_, err := NewMatch(team, team)
			require.ErrorIs(t, err, ErrInvalidMatch)
		}
	})

	t.Run("equality is symmetric", func(t *testing.T) {
		for a := 1; a <= 8; a++ {
			for b := 1; b <= 8; b++ {
				if a == b {
					continue
				}
				m, err := NewMatch(a, b)
				require.NoError(t, err)
				assert.True(t, m.Equal(m.Mirror()), "%s should equal its mirror", m)
				assert.Equal(t, m.Key(), m.Mirror().Key())
				assert.Equal(t, MustMatch(b, a).Key(), m.Key())
			}
		}
	})

	t.Run("key is usable as a set", func(t *testing.T) {
		set := map[Pair]bool{MustMatch(3, 9).Key(): true}
		assert.True(t, set[MustMatch(9, 3).Key()])
		assert.False(t, set[MustMatch(3, 8).Key()])
	})

	t.Run("mirror keeps both teams", func(t *testing.T) {
		m := MustMatch(2, 15)
		assert.Equal(t, Match{Home: 15, Away: 2}, m.Mirror())
		assert.Equal(t, "2:15", m.String())
		assert.Equal(t, "15:2", m.Mirror().String())
	})

	t.Run("opponent", func(t *testing.T) {
		m := MustMatch(4, 13)
		assert.Equal(t, 13, m.Opponent(4))
		assert.Equal(t, 4, m.Opponent(13))
		assert.Equal(t, 0, m.Opponent(5))
		assert.True(t, m.Has(13))
		assert.False(t, m.Has(1))
	})
}

func TestMustMatchPanics(t *testing.T) {
	assert.Panics(t, func() { MustMatch(7, 7) })
}

func TestWeek(t *testing.T) {
	t.Run("empty week", func(t *testing.T) {
		w := NewWeek(4)
		assert.Equal(t, 4, w.Capacity())
		assert.Equal(t, 0, w.Len())
		assert.False(t, w.Complete())
		assert.Empty(t, w.Teams())
	})

	t.Run("set fills slots", func(t *testing.T) {
		w := NewWeek(2)
		w.Set(0, MustMatch(1, 2))
		assert.False(t, w.Complete())
		w.Set(1, MustMatch(3, 4))
		assert.True(t, w.Complete())
		assert.Equal(t, []int{1, 2, 3, 4}, w.Teams())
	})

	t.Run("set out of range panics", func(t *testing.T) {
		w := NewWeek(2)
		assert.Panics(t, func() { w.Set(2, MustMatch(1, 2)) })
	})

	t.Run("week of wrong size", func(t *testing.T) {
		_, err := WeekOf(2, MustMatch(1, 2))
		require.ErrorIs(t, err, ErrInvalidMatch)
		_, err = WeekOf(1, MustMatch(1, 2), MustMatch(3, 4))
		require.ErrorIs(t, err, ErrInvalidMatch)
	})

	t.Run("week with malformed match", func(t *testing.T) {
		_, err := WeekOf(2, MustMatch(1, 2), Match{Home: 3, Away: 3})
		require.ErrorIs(t, err, ErrInvalidMatch)
		_, err = WeekOf(2, MustMatch(1, 2), Match{})
		require.ErrorIs(t, err, ErrInvalidMatch)
	})

	t.Run("matches returns a copy", func(t *testing.T) {
		w, err := WeekOf(2, MustMatch(1, 2), MustMatch(3, 4))
		require.NoError(t, err)
		ms := w.Matches()
		ms[0] = MustMatch(1, 3)
		assert.Equal(t, MustMatch(1, 2), w.Match(0))
	})

	t.Run("clone does not share storage", func(t *testing.T) {
		w, err := WeekOf(2, MustMatch(1, 2), MustMatch(3, 4))
		require.NoError(t, err)
		c := w.Clone()
		c.Set(0, MustMatch(1, 3))
		assert.Equal(t, MustMatch(1, 2), w.Match(0))
	})

	t.Run("equal ignores orientation but not slot order", func(t *testing.T) {
		a, _ := WeekOf(2, MustMatch(1, 2), MustMatch(3, 4))
		b, _ := WeekOf(2, MustMatch(2, 1), MustMatch(4, 3))
		c, _ := WeekOf(2, MustMatch(3, 4), MustMatch(1, 2))
		assert.True(t, a.Equal(b))
		assert.False(t, a.Equal(c))
		assert.False(t, a.Equal(NewWeek(3)))
	})
}

func TestErrorsAreDistinct(t *testing.T) {
	all := []error{
		ErrInvalidTeamCount, ErrInvalidWeekCount, ErrInvalidMatch,
		ErrMalformedExpression, ErrTeamOutOfRange, ErrInconsistentPreschedule,
	}
	for i, a := range all {
		for j, b := range all {
			if i != j && errors.Is(a, b) {
				t.Errorf("%v should not match %v", a, b)
			}
		}
	}
}
