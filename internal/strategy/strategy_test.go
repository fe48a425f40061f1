package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/derekprior/roundrobin/internal/league"
)

func TestGet(t *testing.T) {
	s, err := Get("circle")
	require.NoError(t, err)
	assert.IsType(t, &Circle{}, s)

	s, err = Get("")
	require.NoError(t, err)
	assert.IsType(t, &Circle{}, s)

	_, err = Get("swiss")
	assert.Error(t, err)
}

func TestCircleRounds(t *testing.T) {
	s := &Circle{}

	for teams := 2; teams <= 24; teams += 2 {
		rounds := s.Rounds(teams)

		t.Run("round count", func(t *testing.T) {
			require.Len(t, rounds, teams-1, "teams=%d", teams)
		})

		t.Run("every team once per round", func(t *testing.T) {
			for r, round := range rounds {
				require.Len(t, round, teams/2, "teams=%d round=%d", teams, r)
				seen := make(map[int]bool)
				for _, m := range round {
					assert.False(t, seen[m.Home], "teams=%d round=%d: team %d twice", teams, r, m.Home)
					assert.False(t, seen[m.Away], "teams=%d round=%d: team %d twice", teams, r, m.Away)
					seen[m.Home] = true
					seen[m.Away] = true
				}
				assert.Len(t, seen, teams)
			}
		})

		t.Run("every pair exactly once", func(t *testing.T) {
			pairs := make(map[league.Pair]int)
			for _, m := range Flatten(rounds) {
				require.NotEqual(t, m.Home, m.Away)
				require.True(t, m.Home >= 1 && m.Home <= teams)
				require.True(t, m.Away >= 1 && m.Away <= teams)
				pairs[m.Key()]++
			}
			assert.Len(t, pairs, teams*(teams-1)/2)
			for p, count := range pairs {
				assert.Equal(t, 1, count, "teams=%d pair %v", teams, p)
			}
		})
	}
}

func TestCircleOrder(t *testing.T) {
	assert.Equal(t, []int{9, 10, 11, 12, 13, 14, 15, 16, 8, 7, 6, 5, 4, 3, 2}, circleOrder(16))
	assert.Equal(t, []int{3, 4, 2}, circleOrder(4))
	assert.Equal(t, []int{2}, circleOrder(2))
}

func TestCircleReferenceRounds(t *testing.T) {
	s := &Circle{}

	t.Run("four teams", func(t *testing.T) {
		assert.Equal(t, [][]league.Match{
			{{Home: 1, Away: 3}, {Home: 4, Away: 2}},
			{{Home: 1, Away: 4}, {Home: 2, Away: 3}},
			{{Home: 1, Away: 2}, {Home: 3, Away: 4}},
		}, s.Rounds(4))
	})

	t.Run("sixteen teams first round", func(t *testing.T) {
		rounds := s.Rounds(16)
		assert.Equal(t, []league.Match{
			{Home: 1, Away: 9}, {Home: 10, Away: 2}, {Home: 11, Away: 3}, {Home: 12, Away: 4},
			{Home: 13, Away: 5}, {Home: 14, Away: 6}, {Home: 15, Away: 7}, {Home: 16, Away: 8},
		}, rounds[0])
	})

	t.Run("anchor faces the circle in order", func(t *testing.T) {
		rounds := s.Rounds(16)
		var opponents []int
		for _, r := range rounds {
			require.Equal(t, 1, r[0].Home)
			opponents = append(opponents, r[0].Away)
		}
		assert.Equal(t, circleOrder(16), opponents)
	})
}

func TestCircleRejectsOddTeams(t *testing.T) {
	s := &Circle{}
	assert.Nil(t, s.Rounds(3))
	assert.Nil(t, s.Rounds(0))
}

func TestFlatten(t *testing.T) {
	rounds := (&Circle{}).Rounds(6)
	flat := Flatten(rounds)
	require.Len(t, flat, 15)
	assert.Equal(t, rounds[0][0], flat[0])
	assert.Equal(t, rounds[1][0], flat[3])
	assert.Equal(t, rounds[4][2], flat[14])
}
