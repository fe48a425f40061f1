package config

import (
	"testing"
	"time"
)

func mustDate(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

const testConfigYAML = `
teams: 16
weeks: 15
strategy: circle
reconcile: matching

fixed_weeks:
  - "1:16,2:15,3:14,4:13,5:12,6:11,7:10,8:9"
  - "2:9,5:7,12:15,3:6,8:10,4:14,1:11,13:16"

season:
  start_date: "2026-09-06"
  blackout_dates:
    - date: "2026-10-04"
      reason: "Major qualifier"

output:
  format: yaml
  path: schedule.yaml
`

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadFromBytes([]byte(testConfigYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("league size", func(t *testing.T) {
		if cfg.Teams != 16 {
			t.Errorf("teams = %d, want 16", cfg.Teams)
		}
		if cfg.Weeks != 15 {
			t.Errorf("weeks = %d, want 15", cfg.Weeks)
		}
		if cfg.MatchesPerWeek() != 8 {
			t.Errorf("matches per week = %d, want 8", cfg.MatchesPerWeek())
		}
	})

	t.Run("fixed weeks", func(t *testing.T) {
		if len(cfg.FixedWeeks) != 2 {
			t.Fatalf("fixed weeks = %d, want 2", len(cfg.FixedWeeks))
		}
		if cfg.FixedWeeks[1] != "2:9,5:7,12:15,3:6,8:10,4:14,1:11,13:16" {
			t.Errorf("fixed week 2 = %q", cfg.FixedWeeks[1])
		}
	})

	t.Run("season", func(t *testing.T) {
		if cfg.Season.StartDate == nil {
			t.Fatal("start date not parsed")
		}
		if cfg.Season.StartDate.Time != mustDate("2026-09-06") {
			t.Errorf("start date = %v, want 2026-09-06", cfg.Season.StartDate.Time)
		}
		if len(cfg.Season.BlackoutDates) != 1 {
			t.Fatalf("blackout dates = %d, want 1", len(cfg.Season.BlackoutDates))
		}
		if cfg.Season.BlackoutDates[0].Reason != "Major qualifier" {
			t.Errorf("reason = %q, want %q", cfg.Season.BlackoutDates[0].Reason, "Major qualifier")
		}
	})

	t.Run("strategy and reconcile", func(t *testing.T) {
		if cfg.Strategy != "circle" {
			t.Errorf("strategy = %q, want circle", cfg.Strategy)
		}
		if cfg.Reconcile != ReconcileMatching {
			t.Errorf("reconcile = %q, want %q", cfg.Reconcile, ReconcileMatching)
		}
	})

	t.Run("output", func(t *testing.T) {
		if cfg.Output.Format != FormatYAML {
			t.Errorf("format = %q, want yaml", cfg.Output.Format)
		}
		if cfg.Output.Path != "schedule.yaml" {
			t.Errorf("path = %q, want schedule.yaml", cfg.Output.Path)
		}
	})
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadFromBytes([]byte("teams: 4\nfixed_weeks: [\"1:2,3:4\"]\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Weeks != 3 {
		t.Errorf("weeks = %d, want 3", cfg.Weeks)
	}
	if cfg.Strategy != "circle" {
		t.Errorf("strategy = %q, want circle", cfg.Strategy)
	}
	if cfg.Reconcile != ReconcileAuto {
		t.Errorf("reconcile = %q, want auto", cfg.Reconcile)
	}
	if cfg.Output.Format != FormatText {
		t.Errorf("format = %q, want text", cfg.Output.Format)
	}
	if cfg.Season.StartDate != nil {
		t.Error("start date should be unset")
	}
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"odd teams", "teams: 3\n"},
		{"no teams", "weeks: 3\n"},
		{"wrong week count", "teams: 4\nweeks: 4\n"},
		{"too many fixed weeks", "teams: 2\nfixed_weeks: [\"1:2\", \"1:2\"]\n"},
		{"unknown reconcile mode", "teams: 4\nreconcile: shuffle\n"},
		{"unknown format", "teams: 4\noutput:\n  format: pdf\n"},
		{"xlsx without path", "teams: 4\noutput:\n  format: xlsx\n"},
		{"bad date", "teams: 4\nseason:\n  start_date: \"09/06/2026\"\n"},
		{"blackouts without start", "teams: 4\nseason:\n  blackout_dates:\n    - date: \"2026-10-04\"\n"},
		{"duplicate blackout", `
teams: 4
season:
  start_date: "2026-09-06"
  blackout_dates:
    - date: "2026-10-04"
    - date: "2026-10-04"
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadFromBytes([]byte(tt.yaml)); err == nil {
				t.Errorf("expected error for %s", tt.name)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadFromFile(t.TempDir() + "/missing.yaml"); err == nil {
			t.Error("expected error for missing file")
		}
	})
}
