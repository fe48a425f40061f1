package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Date is a wrapper around time.Time for YAML date parsing.
type Date struct {
	Time time.Time
}

func (d *Date) UnmarshalYAML(value *yaml.Node) error {
	t, err := time.Parse("2006-01-02", value.Value)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", value.Value, err)
	}
	d.Time = t
	return nil
}

func (d Date) MarshalYAML() (any, error) {
	return d.Time.Format("2006-01-02"), nil
}

type BlackoutDate struct {
	Date   Date   `yaml:"date"`
	Reason string `yaml:"reason"`
}

// Season places weeks on the calendar. It is optional; without a start
// date weeks are only numbered.
type Season struct {
	StartDate     *Date          `yaml:"start_date"`
	BlackoutDates []BlackoutDate `yaml:"blackout_dates"`
}

type Output struct {
	Format string `yaml:"format"`
	Path   string `yaml:"path"`
}

// Output formats.
const (
	FormatText = "text"
	FormatExpr = "expr"
	FormatYAML = "yaml"
	FormatXLSX = "xlsx"
)

// Reconciliation modes.
const (
	ReconcileAuto     = "auto"
	ReconcileGreedy   = "greedy"
	ReconcileMatching = "matching"
)

type Config struct {
	Teams      int      `yaml:"teams"`
	Weeks      int      `yaml:"weeks"`
	Strategy   string   `yaml:"strategy"`
	Reconcile  string   `yaml:"reconcile"`
	FixedWeeks []string `yaml:"fixed_weeks"`
	Season     Season   `yaml:"season"`
	Output     Output   `yaml:"output"`
}

// MatchesPerWeek returns the number of matches played each week.
func (c *Config) MatchesPerWeek() int {
	return c.Teams / 2
}

// LoadFromBytes parses YAML bytes into a Config, applies defaults and
// validates it.
func LoadFromBytes(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromFile reads and parses a YAML config file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromBytes(data)
}

func (c *Config) applyDefaults() {
	if c.Weeks == 0 {
		c.Weeks = c.Teams - 1
	}
	if c.Strategy == "" {
		c.Strategy = "circle"
	}
	if c.Reconcile == "" {
		c.Reconcile = ReconcileAuto
	}
	if c.Output.Format == "" {
		c.Output.Format = FormatText
	}
}

func (c *Config) validate() error {
	if c.Teams < 2 || c.Teams%2 != 0 {
		return fmt.Errorf("teams must be an even number of at least 2, got %d", c.Teams)
	}

	if c.Weeks != c.Teams-1 {
		return fmt.Errorf("weeks must be %d for %d teams, got %d", c.Teams-1, c.Teams, c.Weeks)
	}

	if len(c.FixedWeeks) > c.Weeks {
		return fmt.Errorf("%d fixed weeks do not fit in %d weeks", len(c.FixedWeeks), c.Weeks)
	}

	switch c.Reconcile {
	case ReconcileAuto, ReconcileGreedy, ReconcileMatching:
	default:
		return fmt.Errorf("unknown reconcile mode %q (want auto, greedy or matching)", c.Reconcile)
	}

	switch c.Output.Format {
	case FormatText, FormatExpr, FormatYAML:
	case FormatXLSX:
		if c.Output.Path == "" {
			return fmt.Errorf("output format xlsx requires output.path")
		}
	default:
		return fmt.Errorf("unknown output format %q", c.Output.Format)
	}

	seen := make(map[time.Time]bool)
	for _, b := range c.Season.BlackoutDates {
		if seen[b.Date.Time] {
			return fmt.Errorf("blackout date %s listed twice", b.Date.Time.Format("2006-01-02"))
		}
		seen[b.Date.Time] = true
	}
	if len(c.Season.BlackoutDates) > 0 && c.Season.StartDate == nil {
		return fmt.Errorf("season blackout_dates require season.start_date")
	}

	return nil
}
