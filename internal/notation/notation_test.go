package notation

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/derekprior/roundrobin/internal/league"
)

func TestParseMatch(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		m, err := ParseMatch("3:14", 16)
		require.NoError(t, err)
		assert.Equal(t, league.Match{Home: 3, Away: 14}, m)
	})

	t.Run("surrounding whitespace", func(t *testing.T) {
		m, err := ParseMatch(" 7 : 10 ", 16)
		require.NoError(t, err)
		assert.Equal(t, league.Match{Home: 7, Away: 10}, m)
	})

	tests := []struct {
		name  string
		token string
		also  error
	}{
		{"missing separator", "12", nil},
		{"missing home", ":4", nil},
		{"missing away", "4:", nil},
		{"empty", "", nil},
		{"non numeric", "a:4", nil},
		{"extra separator", "1:2:3", nil},
		{"zero team", "0:4", league.ErrTeamOutOfRange},
		{"team above range", "1:17", league.ErrTeamOutOfRange},
		{"negative team", "-1:4", league.ErrTeamOutOfRange},
		{"same team", "1:1", league.ErrInvalidMatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMatch(tt.token, 16)
			require.ErrorIs(t, err, league.ErrMalformedExpression)
			if tt.also != nil {
				assert.ErrorIs(t, err, tt.also)
			}
		})
	}
}

func TestParseWeek(t *testing.T) {
	t.Run("reference week", func(t *testing.T) {
		w, err := ParseWeek("1:16,2:15,3:14,4:13,5:12,6:11,7:10,8:9", 16)
		require.NoError(t, err)
		require.Equal(t, 8, w.Capacity())
		assert.True(t, w.Complete())
		assert.Equal(t, league.Match{Home: 8, Away: 9}, w.Match(7))
	})

	t.Run("wrong number of matches", func(t *testing.T) {
		_, err := ParseWeek("1:2", 6)
		require.ErrorIs(t, err, league.ErrMalformedExpression)
		assert.ErrorIs(t, err, league.ErrInvalidMatch)
	})

	t.Run("trailing comma", func(t *testing.T) {
		_, err := ParseWeek("1:2,3:4,", 4)
		require.ErrorIs(t, err, league.ErrMalformedExpression)
	})

	t.Run("self match", func(t *testing.T) {
		_, err := ParseWeek("1:1", 2)
		require.ErrorIs(t, err, league.ErrMalformedExpression)
		assert.ErrorIs(t, err, league.ErrInvalidMatch)
	})
}

func TestParseWeeksNamesTheWeek(t *testing.T) {
	_, err := ParseWeeks([]string{"1:2,3:4", "1:3,2:x"}, 4)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "week 2")
}

func TestParse(t *testing.T) {
	input := `
# fixed weeks
1:2,3:4

1:3,2:4
`
	weeks, err := Parse(strings.NewReader(input), 4)
	require.NoError(t, err)
	require.Len(t, weeks, 2)
	assert.Equal(t, "1:3,2:4", FormatWeek(weeks[1]))
}

func TestFormat(t *testing.T) {
	a, _ := league.WeekOf(2, league.MustMatch(1, 3), league.MustMatch(4, 2))
	b, _ := league.WeekOf(2, league.MustMatch(1, 4), league.MustMatch(2, 3))

	assert.Equal(t, "1:3,4:2", FormatWeek(a))
	assert.Equal(t, "1:3,4:2\n1:4,2:3", Format([]league.Week{a, b}))

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, []league.Week{a, b}))
	assert.Equal(t, "1:3,4:2\n1:4,2:3\n", buf.String())
}

func TestRoundTrip(t *testing.T) {
	exprs := []string{
		"1:16,2:15,3:14,4:13,5:12,6:11,7:10,8:9",
		"2:9,5:7,12:15,3:6,8:10,4:14,1:11,13:16",
		"1:3,7:12,14:15,4:10,8:16,9:13,2:6,5:11",
	}
	weeks, err := ParseWeeks(exprs, 16)
	require.NoError(t, err)

	text := Format(weeks)
	assert.Equal(t, strings.Join(exprs, "\n"), text)

	again, err := Parse(strings.NewReader(text), 16)
	require.NoError(t, err)
	require.Len(t, again, len(weeks))
	for i := range weeks {
		assert.True(t, weeks[i].Equal(again[i]), "week %d", i+1)
		assert.Equal(t, weeks[i].Matches(), again[i].Matches(), "orientation of week %d", i+1)
	}
}
