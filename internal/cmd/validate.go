package cmd

import (
	"fmt"
	"io"

	"github.com/harrison/playcheck/internal/plan"
	"github.com/harrison/playcheck/internal/suite"
	"github.com/spf13/cobra"
)

// NewValidateCommand creates and returns the validate subcommand
func NewValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <plan-file>",
		Short: "Validate a plan file",
		Long: `Parse and validate a plan file, checking that:
  - The file parses as a Markdown task list
  - Every listed scenario name is a known scenario
  - At least one scenario is checked

Exit code: 0 if valid, 1 if errors found`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return validatePlanFile(args[0], cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}

	return cmd
}

// validatePlanFile validates a plan file, writing progress to output
func validatePlanFile(path string, output io.Writer) error {
	var errors []string

	p, err := plan.NewParser().ParseFile(path)
	if err != nil {
		fmt.Fprintf(output, "✗ Failed to parse plan from %s\n", path)
		fmt.Fprintf(output, "  Error: %v\n", err)
		return fmt.Errorf("parse error: %w", err)
	}

	fmt.Fprintf(output, "✓ Validating plan from %s\n", path)
	if p.Name != "" {
		fmt.Fprintf(output, "✓ Plan: %s\n", p.Name)
	}
	fmt.Fprintf(output, "✓ Parsed %d checked and %d skipped scenario(s)\n", len(p.Scenarios), len(p.Skipped))

	// Every name in the plan must match a known scenario
	known := make(map[string]bool)
	for _, sc := range suite.DefaultScenarios() {
		known[sc.Name()] = true
	}
	for _, name := range p.Scenarios {
		if !known[name] {
			errors = append(errors, fmt.Sprintf("Unknown scenario '%s'", name))
		}
	}
	for _, name := range p.Skipped {
		if !known[name] {
			errors = append(errors, fmt.Sprintf("Unknown scenario '%s' (skipped)", name))
		}
	}
	if len(errors) == 0 {
		fmt.Fprintf(output, "✓ All scenario names known\n")
	}

	if len(p.Scenarios) == 0 {
		errors = append(errors, "Plan checks no scenarios; nothing would run")
	}

	if len(errors) == 0 {
		fmt.Fprintf(output, "\n✓ Plan is valid!\n")
		return nil
	}

	// Report all validation errors
	fmt.Fprintf(output, "\n✗ Validation failed for plan from %s\n", path)
	for _, errMsg := range errors {
		fmt.Fprintf(output, "  ✗ %s\n", errMsg)
	}
	fmt.Fprintf(output, "\nFound %d validation error(s)!\n", len(errors))

	return fmt.Errorf("validation failed with %d error(s)", len(errors))
}
