// Package render writes a generated schedule for people to read: a plain
// text listing or a YAML document.
package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/derekprior/roundrobin/internal/league"
	"github.com/derekprior/roundrobin/internal/notation"
	"github.com/derekprior/roundrobin/internal/schedule"
)

const dateLayout = "2006-01-02"

// Text writes one block per week: a dashed header naming the week (and its
// date when dates has one) followed by one tab separated line per match.
func Text(w io.Writer, weeks []league.Week, dates []time.Time) error {
	for i, week := range weeks {
		label := fmt.Sprintf("Week %d", i+1)
		if i < len(dates) && !dates[i].IsZero() {
			label += " (" + dates[i].Format(dateLayout) + ")"
		}
		if _, err := fmt.Fprintf(w, "\n%s %s %s\n", strings.Repeat("-", 14), label, strings.Repeat("-", 15)); err != nil {
			return err
		}
		for _, m := range week.Matches() {
			if _, err := fmt.Fprintf(w, "\t%d\tvs\t%d\n", m.Home, m.Away); err != nil {
				return err
			}
		}
	}
	return nil
}

// Document is the YAML form of a schedule.
type Document struct {
	Teams  int       `yaml:"teams"`
	Method string    `yaml:"method,omitempty"`
	Weeks  []WeekDoc `yaml:"weeks"`
}

type WeekDoc struct {
	Week    int      `yaml:"week"`
	Date    string   `yaml:"date,omitempty"`
	Fixed   bool     `yaml:"fixed,omitempty"`
	Matches []string `yaml:"matches,flow"`
}

// NewDocument builds the YAML document for a generated schedule. days may
// be nil.
func NewDocument(s *schedule.Schedule, days []schedule.Matchday) Document {
	dates := schedule.Dates(days)
	doc := Document{Teams: s.Teams(), Method: string(s.Method())}
	for i, w := range s.Weeks() {
		wd := WeekDoc{Week: i + 1, Fixed: i < s.FixedWeeks()}
		if i < len(dates) {
			wd.Date = dates[i].Format(dateLayout)
		}
		for _, m := range w.Matches() {
			wd.Matches = append(wd.Matches, m.String())
		}
		doc.Weeks = append(doc.Weeks, wd)
	}
	return doc
}

// YAML encodes doc to w.
func YAML(w io.Writer, doc Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding schedule: %w", err)
	}
	return enc.Close()
}

// ReadYAML decodes a document written by YAML back into weeks.
func ReadYAML(r io.Reader, teams int) ([]league.Week, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding schedule: %w", err)
	}
	if doc.Teams != 0 && doc.Teams != teams {
		return nil, fmt.Errorf("document is for %d teams, want %d", doc.Teams, teams)
	}
	exprs := make([]string, len(doc.Weeks))
	for i, wd := range doc.Weeks {
		exprs[i] = strings.Join(wd.Matches, ",")
	}
	return notation.ParseWeeks(exprs, teams)
}
