package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for playcheck
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "playcheck",
		Short: "In-scene playtest suite for the platformer level",
		Long: `Playcheck runs a small suite of automated playtest scenarios against
a simulated platformer level: launch, movement, spike damage, and
portal completion.

Scenarios run in a fixed order against a shared level, report PASS or
FAIL individually, and end with a summary. Runs can start automatically,
on a key press in watch mode, or from an explicit trigger.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	// Add subcommands
	cmd.AddCommand(NewRunCommand())
	cmd.AddCommand(NewValidateCommand())
	cmd.AddCommand(NewHistoryCommand())

	return cmd
}
