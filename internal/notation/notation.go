// Package notation reads and writes the textual match expression used for
// fixed weeks: comma separated "home:away" tokens, one week per line, e.g.
//
//	1:16,2:15,3:14,4:13,5:12,6:11,7:10,8:9
package notation

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/derekprior/roundrobin/internal/league"
)

// ParseMatch parses a single "home:away" token for a league of the given
// number of teams.
func ParseMatch(token string, teams int) (league.Match, error) {
	home, away, ok := strings.Cut(token, ":")
	home, away = strings.TrimSpace(home), strings.TrimSpace(away)
	if !ok || home == "" || away == "" {
		return league.Match{}, fmt.Errorf("%w: %q needs a team on both sides of ':'", league.ErrMalformedExpression, token)
	}

	t1, err := parseTeam(home, token, teams)
	if err != nil {
		return league.Match{}, err
	}
	t2, err := parseTeam(away, token, teams)
	if err != nil {
		return league.Match{}, err
	}

	m, err := league.NewMatch(t1, t2)
	if err != nil {
		return league.Match{}, fmt.Errorf("%w: %q: %w", league.ErrMalformedExpression, token, err)
	}
	return m, nil
}

func parseTeam(s, token string, teams int) (int, error) {
	team, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %q is not a team number", league.ErrMalformedExpression, token, s)
	}
	if team < 1 || team > teams {
		return 0, fmt.Errorf("%w: %q: %w: teams are numbered 1 to %d", league.ErrMalformedExpression, token, league.ErrTeamOutOfRange, teams)
	}
	return team, nil
}

// ParseWeek parses one week expression. It must hold exactly teams/2
// matches.
func ParseWeek(expr string, teams int) (league.Week, error) {
	tokens := strings.Split(expr, ",")
	matches := make([]league.Match, 0, len(tokens))
	for _, tok := range tokens {
		m, err := ParseMatch(tok, teams)
		if err != nil {
			return league.Week{}, err
		}
		matches = append(matches, m)
	}

	w, err := league.WeekOf(teams/2, matches...)
	if err != nil {
		return league.Week{}, fmt.Errorf("%w: %w", league.ErrMalformedExpression, err)
	}
	return w, nil
}

// ParseWeeks parses a list of week expressions in order.
func ParseWeeks(exprs []string, teams int) ([]league.Week, error) {
	weeks := make([]league.Week, 0, len(exprs))
	for i, expr := range exprs {
		w, err := ParseWeek(expr, teams)
		if err != nil {
			return nil, fmt.Errorf("week %d: %w", i+1, err)
		}
		weeks = append(weeks, w)
	}
	return weeks, nil
}

// Parse reads one week expression per line. Blank lines and lines starting
// with '#' are ignored.
func Parse(r io.Reader, teams int) ([]league.Week, error) {
	var exprs []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		exprs = append(exprs, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading expressions: %w", err)
	}
	return ParseWeeks(exprs, teams)
}

// FormatWeek writes a week as comma separated "home:away" tokens.
func FormatWeek(w league.Week) string {
	var sb strings.Builder
	for i, m := range w.Matches() {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(m.Home))
		sb.WriteByte(':')
		sb.WriteString(strconv.Itoa(m.Away))
	}
	return sb.String()
}

// Format writes one week expression per line.
func Format(weeks []league.Week) string {
	lines := make([]string, len(weeks))
	for i, w := range weeks {
		lines[i] = FormatWeek(w)
	}
	return strings.Join(lines, "\n")
}

// Write writes Format(weeks) followed by a newline.
func Write(w io.Writer, weeks []league.Week) error {
	_, err := io.WriteString(w, Format(weeks)+"\n")
	return err
}
