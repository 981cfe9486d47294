package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/harrison/playcheck/internal/config"
	"github.com/harrison/playcheck/internal/history"
	"github.com/spf13/cobra"
)

// NewHistoryCommand creates and returns the history subcommand
func NewHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent suite runs",
		Long: `List recent suite runs from the history database, newest first.

History is recorded by 'playcheck run' when history.enabled is set in
the configuration. Use --run to show the per-scenario results of a
single run.`,
		Args:         cobra.NoArgs,
		RunE:         historyCommand,
		SilenceUsage: true,
	}

	cmd.Flags().String("config", "", "Path to config file (default: playcheck.yaml)")
	cmd.Flags().String("db", "", "Path to history database (overrides config)")
	cmd.Flags().Int("limit", 10, "Maximum number of runs to list")
	cmd.Flags().String("run", "", "Show scenario results for a single run ID")

	return cmd
}

// historyCommand implements the history command logic
func historyCommand(cmd *cobra.Command, args []string) error {
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

	dbPath := cfg.History.DBPath
	if cmd.Flags().Changed("db") {
		dbPath, _ = cmd.Flags().GetString("db")
	}

	store, err := history.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open history store: %w", err)
	}
	defer store.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	runID, _ := cmd.Flags().GetString("run")
	if runID != "" {
		return showRun(ctx, store, runID, cmd.OutOrStdout())
	}

	limit, _ := cmd.Flags().GetInt("limit")
	return listRuns(ctx, store, limit, cmd.OutOrStdout())
}

// listRuns prints recent runs, newest first
func listRuns(ctx context.Context, store *history.Store, limit int, output io.Writer) error {
	runs, err := store.RecentRuns(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Fprintf(output, "No runs recorded yet.\n")
		return nil
	}

	fmt.Fprintf(output, "Recent runs:\n")
	for _, run := range runs {
		fmt.Fprintf(output, "  %s  %s  %d/%d passed (%.0f%%)  %s\n",
			run.RunID,
			run.StartedAt.Format("2006-01-02 15:04:05"),
			run.Passed,
			run.Total,
			run.PassRate(),
			run.Elapsed.Round(time.Millisecond))
	}
	return nil
}

// showRun prints the per-scenario results of a single run
func showRun(ctx context.Context, store *history.Store, runID string, output io.Writer) error {
	run, err := store.LoadRun(ctx, runID)
	if err != nil {
		return fmt.Errorf("failed to load run %s: %w", runID, err)
	}

	fmt.Fprintf(output, "Run %s (%s)\n", run.RunID, run.StartedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(output, "  Scenarios: %d, Passed: %d, Failed: %d, Duration: %s\n",
		run.Total, run.Passed, run.Failed, run.Elapsed.Round(time.Millisecond))
	for _, sr := range run.Scenarios {
		fmt.Fprintf(output, "  %s: %s - %s\n", sr.Scenario, sr.Status, sr.Message)
		if sr.Detail != "" {
			fmt.Fprintf(output, "    [%s]\n", sr.Detail)
		}
	}
	return nil
}
