package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/derekprior/roundrobin/internal/config"
	"github.com/derekprior/roundrobin/internal/excel"
	"github.com/derekprior/roundrobin/internal/league"
	"github.com/derekprior/roundrobin/internal/notation"
	"github.com/derekprior/roundrobin/internal/render"
	"github.com/derekprior/roundrobin/internal/schedule"
	"github.com/derekprior/roundrobin/internal/strategy"
	"github.com/derekprior/roundrobin/internal/validator"
)

const defaultConfigFile = "config.yaml"

func resolveConfigPath(configFlag string) (string, error) {
	if configFlag != "" {
		return configFlag, nil
	}
	if env := os.Getenv("ROUNDROBIN_CONFIG"); env != "" {
		return env, nil
	}
	if _, err := os.Stat(defaultConfigFile); err == nil {
		return defaultConfigFile, nil
	}
	return "", fmt.Errorf("no config file found. Either create %s in the current directory, set ROUNDROBIN_CONFIG or pass --config", defaultConfigFile)
}

func newLogger(level string) (*slog.Logger, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})), nil
}

func main() {
	_ = godotenv.Load(".env")

	rootCmd := &cobra.Command{
		Use:   "roundrobin",
		Short: "Round-robin league schedule generator",
	}

	logLevel := os.Getenv("ROUNDROBIN_LOG_LEVEL")
	if logLevel == "" {
		logLevel = "warn"
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", logLevel, "Log level: debug, info, warn or error (env ROUNDROBIN_LOG_LEVEL)")

	var initOutputPath string
	initCmd := &cobra.Command{
		Use:          "init",
		Short:        "Create a starter config.yaml in the current directory",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd.OutOrStdout(), initOutputPath)
		},
	}
	initCmd.Flags().StringVarP(&initOutputPath, "output", "o", defaultConfigFile, "Output path for the config file")

	scheduleCmd := &cobra.Command{
		Use:   "schedule",
		Short: "Generate and validate schedules",
	}

	var configFile string
	scheduleCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to config file (default: $ROUNDROBIN_CONFIG or config.yaml in current directory)")

	var outputFile, format string
	generateCmd := &cobra.Command{
		Use:          "generate",
		Short:        "Generate a schedule from a config file",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := resolveConfigPath(configFile)
			if err != nil {
				return err
			}
			logger, err := newLogger(logLevel)
			if err != nil {
				return err
			}
			return runGenerate(cmd.OutOrStdout(), logger, configPath, outputFile, format)
		},
	}
	generateCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file path (default: output.path from config, or stdout)")
	generateCmd.Flags().StringVar(&format, "format", "", "Output format: text, expr, yaml or xlsx (default: output.format from config)")

	validateCmd := &cobra.Command{
		Use:          "validate <schedule.xlsx|schedule.yaml|schedule.txt>",
		Short:        "Validate a schedule against the config",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := resolveConfigPath(configFile)
			if err != nil {
				return err
			}
			return runValidate(cmd.OutOrStdout(), configPath, args[0])
		},
	}

	roundsCmd := &cobra.Command{
		Use:          "rounds <teams>",
		Short:        "Print the circle-method tournament for a number of teams",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			teams, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid team count %q", args[0])
			}
			return runRounds(cmd.OutOrStdout(), teams)
		},
	}

	scheduleCmd.AddCommand(generateCmd, validateCmd)
	rootCmd.AddCommand(initCmd, scheduleCmd, roundsCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runInit(out io.Writer, outputPath string) error {
	if _, err := os.Stat(outputPath); err == nil {
		return fmt.Errorf("%s already exists; remove it first or use -o to write elsewhere", outputPath)
	}

	if err := os.WriteFile(outputPath, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Fprintf(out, "✓ Created %s\n", outputPath)
	return nil
}

const configTemplate = `# Round-robin league configuration
# ================================
# Every team plays every other team exactly once over teams-1 weeks.

# Number of teams. Must be even; teams are numbered 1 to teams.
teams: 16

# Weeks in the season. Optional; a single round robin needs exactly teams-1.
weeks: 15

# Strategy generates the base tournament. "circle" keeps team 1 fixed and
# rotates the others one position per week.
strategy: circle

# How the weeks after the fixed ones are filled:
#   auto     - repack the remaining generated matches in order, and fall back
#              to a matching search if a team would play twice in a week
#   greedy   - repack only; fail if the result is not a valid schedule
#   matching - always use the matching search
reconcile: auto

# Fixed weeks are played first, in this order, exactly as written.
# Each entry is one week of comma separated "team:team" matches.
fixed_weeks:
  - "1:16,2:15,3:14,4:13,5:12,6:11,7:10,8:9"
  - "2:9,5:7,12:15,3:6,8:10,4:14,1:11,13:16"
  - "1:3,7:12,14:15,4:10,8:16,9:13,2:6,5:11"
  - "7:13,5:8,11:14,3:9,4:15,6:12,2:16,1:10"
  - "7:16,3:15,13:14,5:10,9:11,8:12,4:6,1:2"

# Season places weeks on the calendar. Optional; without a start date weeks
# are only numbered. A week that lands on a blackout date moves to the next
# week and every later week moves with it.
season:
  start_date: "2026-09-06"
  blackout_dates:
    - date: "2026-11-29"
      reason: "Thanksgiving weekend"

# Output format: text, expr (one week expression per line), yaml or xlsx.
# path may be empty to write to stdout, except for xlsx.
output:
  format: text
  path: ""
`

func runGenerate(out io.Writer, logger *slog.Logger, configPath, outputPath, format string) error {
	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if outputPath == "" {
		outputPath = cfg.Output.Path
	}
	if format == "" {
		format = cfg.Output.Format
	}
	if format == config.FormatXLSX && outputPath == "" {
		return fmt.Errorf("xlsx output requires an output path")
	}

	strat, err := strategy.Get(cfg.Strategy)
	if err != nil {
		return err
	}
	mode, err := schedule.ParseMode(cfg.Reconcile)
	if err != nil {
		return err
	}

	fixed, err := notation.ParseWeeks(cfg.FixedWeeks, cfg.Teams)
	if err != nil {
		return fmt.Errorf("parsing fixed weeks: %w", err)
	}

	s, err := schedule.New(cfg.Teams, cfg.Weeks, fixed,
		schedule.WithStrategy(strat),
		schedule.WithMode(mode),
		schedule.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	// Status lines go to stderr when the schedule itself goes to stdout.
	status := out
	if outputPath == "" {
		status = os.Stderr
	}

	fmt.Fprintf(status, "Scheduling %d teams over %d weeks (%d fixed)...\n", s.Teams(), s.TotalWeeks(), s.FixedWeeks())
	if err := s.Generate(); err != nil {
		return err
	}
	fmt.Fprintf(status, "✓ All %d matches scheduled (%s)\n", s.TotalWeeks()*s.MatchesPerWeek(), s.Method())

	days := schedule.GenerateMatchdays(cfg, s.TotalWeeks())
	skipped := schedule.GenerateSkippedDates(cfg, days)
	if len(days) > 0 {
		fmt.Fprintf(status, "✓ Season runs %s to %s", days[0].Date.Format("01/02/2006"), days[len(days)-1].Date.Format("01/02/2006"))
		if len(skipped) > 0 {
			fmt.Fprintf(status, " (%d dates skipped)", len(skipped))
		}
		fmt.Fprintln(status)
	}

	if format == config.FormatXLSX {
		f, err := excel.Generate(s, days, skipped)
		if err != nil {
			return fmt.Errorf("generating Excel: %w", err)
		}
		if err := f.SaveAs(outputPath); err != nil {
			return fmt.Errorf("saving file: %w", err)
		}
		fmt.Fprintf(status, "\n✓ Schedule saved to %s\n", outputPath)
		return nil
	}

	w := out
	if outputPath != "" {
		file, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("creating output: %w", err)
		}
		defer file.Close()
		w = file
	}

	switch format {
	case config.FormatExpr:
		err = notation.Write(w, s.Weeks())
	case config.FormatYAML:
		err = render.YAML(w, render.NewDocument(s, days))
	case config.FormatText:
		err = render.Text(w, s.Weeks(), schedule.Dates(days))
	default:
		err = fmt.Errorf("unknown output format %q", format)
	}
	if err != nil {
		return fmt.Errorf("writing schedule: %w", err)
	}

	if outputPath != "" {
		fmt.Fprintf(status, "\n✓ Schedule saved to %s\n", outputPath)
	}
	return nil
}

func runValidate(out io.Writer, configPath, schedulePath string) error {
	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	violations, err := validator.Validate(cfg, schedulePath)
	if err != nil {
		return fmt.Errorf("validating: %w", err)
	}

	errors := 0
	warnings := 0
	for _, v := range violations {
		msg := v.Message
		if v.Week > 0 {
			msg = fmt.Sprintf("week %d: %s", v.Week, msg)
		}
		switch v.Type {
		case "error":
			errors++
			fmt.Fprintf(out, "✗ Rule violation: %s\n", msg)
		case "warning":
			warnings++
			fmt.Fprintf(out, "⚠ Warning: %s\n", msg)
		}
	}

	fmt.Fprintf(out, "\nValidation complete: %d rule violations, %d warnings\n", errors, warnings)

	if errors > 0 {
		return fmt.Errorf("%d rule violations found", errors)
	}
	return nil
}

func runRounds(out io.Writer, teams int) error {
	if teams < 2 || teams%2 != 0 {
		return fmt.Errorf("%w: need an even number of at least 2 teams, got %d", league.ErrInvalidTeamCount, teams)
	}

	rounds := (&strategy.Circle{}).Rounds(teams)
	weeks := make([]league.Week, len(rounds))
	for i, r := range rounds {
		w, err := league.WeekOf(teams/2, r...)
		if err != nil {
			return err
		}
		weeks[i] = w
	}

	if err := render.Text(out, weeks, nil); err != nil {
		return err
	}
	fmt.Fprintf(out, "\n%s\n", strings.Repeat("-", 37))
	return notation.Write(out, weeks)
}
