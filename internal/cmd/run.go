package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/harrison/playcheck/internal/config"
	"github.com/harrison/playcheck/internal/game"
	"github.com/harrison/playcheck/internal/history"
	"github.com/harrison/playcheck/internal/invoker"
	"github.com/harrison/playcheck/internal/logger"
	"github.com/harrison/playcheck/internal/models"
	"github.com/harrison/playcheck/internal/plan"
	"github.com/harrison/playcheck/internal/suite"
	"github.com/spf13/cobra"
)

// NewRunCommand creates the run command
func NewRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the playtest suite against the level",
		Long: `Run the playtest scenarios against a freshly built level.

By default the suite runs once and exits. With --watch, playcheck keeps
reading keys from stdin after the run and starts the suite again each
time the trigger key is pressed.

Configuration is loaded from playcheck.yaml if present; PLAYCHECK_*
environment variables and CLI flags override it.

Examples:
  playcheck run                        # Run the full suite once
  playcheck run --plan smoke.md        # Run only the scenarios checked in the plan
  playcheck run --watch                # Keep running on the trigger key
  playcheck run --auto=false --watch   # Watch mode without the startup run
  playcheck run --detail               # Include per-scenario detail in the summary
  playcheck run --log-dir ./logs       # Also write a per-run log file`,
		Args: cobra.NoArgs,
		RunE: runCommand,
	}

	// Add flags
	cmd.Flags().String("config", "", "Path to config file (default: playcheck.yaml)")
	cmd.Flags().String("plan", "", "Markdown plan selecting scenarios via task-list items")
	cmd.Flags().Bool("watch", false, "After any startup run, re-run on the trigger key")
	cmd.Flags().Bool("auto", true, "Run the suite once at startup")
	cmd.Flags().Bool("detail", false, "Show per-scenario detail lines in the summary")
	cmd.Flags().String("log-level", "", "Log level (debug, info, warn, error)")
	cmd.Flags().String("log-dir", "", "Directory for run log files")

	return cmd
}

// runCommand implements the run command logic
func runCommand(cmd *cobra.Command, args []string) error {
	// Load configuration from file
	configPath, _ := cmd.Flags().GetString("config")
	var cfg *config.Config
	var err error

	if configPath != "" {
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
	} else {
		cfg, err = config.LoadConfigFromDir(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	}

	// CLI flags override config, but only when set explicitly
	if cmd.Flags().Changed("auto") {
		cfg.AutoRun, _ = cmd.Flags().GetBool("auto")
	}
	if cmd.Flags().Changed("detail") {
		cfg.ShowDetails, _ = cmd.Flags().GetBool("detail")
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
	}
	if cmd.Flags().Changed("log-dir") {
		cfg.LogDir, _ = cmd.Flags().GetString("log-dir")
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	watch, _ := cmd.Flags().GetBool("watch")
	if !cfg.AutoRun && !watch {
		fmt.Fprintf(cmd.OutOrStdout(), "Nothing to do: auto-run is disabled and watch mode is off.\n")
		return nil
	}

	// Build the level the suite runs against
	params := game.DefaultParams()
	params.TickRate = cfg.TickRate
	params.DamageInterval = cfg.DamageInterval
	world := game.BuildLevel(params)

	// Console logger for real-time progress
	consoleLog := logger.NewConsoleLogger(cmd.OutOrStdout(), cfg.LogLevel, cfg.ShowDetails)

	var suiteLog suite.Logger = consoleLog
	if cfg.LogDir != "" {
		fileLog, err := logger.NewFileLogger(cfg.LogDir)
		if err != nil {
			return fmt.Errorf("failed to create file logger: %w", err)
		}
		defer fileLog.Close()
		suiteLog = &multiLogger{loggers: []suite.Logger{consoleLog, fileLog}}
	}

	runner := suite.NewRunner(suite.WorldLocator{World: world}, game.NewSimHost(world), suiteLog)

	// Restrict the suite to the scenarios checked in the plan, if given
	planPath, _ := cmd.Flags().GetString("plan")
	if planPath != "" {
		p, err := plan.NewParser().ParseFile(planPath)
		if err != nil {
			return fmt.Errorf("failed to load plan file: %w", err)
		}
		if err := runner.Select(p.Scenarios); err != nil {
			return fmt.Errorf("invalid plan %s: %w", planPath, err)
		}
		if len(p.Skipped) > 0 {
			consoleLog.LogInfo(fmt.Sprintf("plan skips: %v", p.Skipped))
		}
	}

	// Persist results when history is enabled
	var store *history.Store
	if cfg.History.Enabled {
		store, err = history.NewStore(cfg.History.DBPath)
		if err != nil {
			return fmt.Errorf("failed to open history store: %w", err)
		}
		defer store.Close()
	}

	recorder := &recordingRunner{
		runner:   runner,
		store:    store,
		keepRuns: cfg.History.KeepRuns,
		errOut:   cmd.ErrOrStderr(),
	}

	inv := invoker.New(recorder, invoker.Config{
		AutoRun:    cfg.AutoRun,
		TriggerKey: cfg.TriggerRune(),
	}, consoleLog)

	var input io.Reader
	if watch {
		input = cmd.InOrStdin()
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if err := inv.Start(ctx, input); err != nil {
		return err
	}

	// Exit nonzero when the last run had failures
	if last := recorder.lastResult(); last != nil && last.Failed > 0 {
		return fmt.Errorf("%d scenario(s) failed", last.Failed)
	}
	return nil
}

// recordingRunner wraps the suite runner with optional history persistence.
// History write failures are reported but never fail the run itself.
type recordingRunner struct {
	runner   *suite.Runner
	store    *history.Store
	keepRuns int
	errOut   io.Writer
	last     *models.SuiteResult
}

// Run executes the suite and records the result
func (rr *recordingRunner) Run(ctx context.Context) (*models.SuiteResult, error) {
	result, err := rr.runner.Run(ctx)
	if err != nil {
		return nil, err
	}
	rr.last = result

	if rr.store != nil {
		saveCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if saveErr := rr.store.SaveRun(saveCtx, *result, rr.keepRuns); saveErr != nil {
			fmt.Fprintf(rr.errOut, "Warning: failed to save run history: %v\n", saveErr)
		}
	}
	return result, nil
}

// lastResult returns the most recent completed suite result, if any
func (rr *recordingRunner) lastResult() *models.SuiteResult {
	return rr.last
}

// multiLogger implements suite.Logger by delegating to multiple loggers
type multiLogger struct {
	loggers []suite.Logger
}

// LogSuiteStart forwards to all loggers
func (ml *multiLogger) LogSuiteStart(total int) {
	for _, logger := range ml.loggers {
		logger.LogSuiteStart(total)
	}
}

// LogScenarioStart forwards to all loggers
func (ml *multiLogger) LogScenarioStart(name, description string) {
	for _, logger := range ml.loggers {
		logger.LogScenarioStart(name, description)
	}
}

// LogScenarioResult forwards to all loggers
func (ml *multiLogger) LogScenarioResult(result models.ScenarioResult) {
	for _, logger := range ml.loggers {
		logger.LogScenarioResult(result)
	}
}

// LogSummary forwards to all loggers
func (ml *multiLogger) LogSummary(result models.SuiteResult) {
	for _, logger := range ml.loggers {
		logger.LogSummary(result)
	}
}
