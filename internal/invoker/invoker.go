// Package invoker provides the thin façade that starts the playtest suite:
// automatically at startup, on a configured key press, or through an
// explicit call. It contains dispatch only, no suite logic.
package invoker

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/harrison/playcheck/internal/models"
	"github.com/harrison/playcheck/internal/suite"
)

// Runner is the surface the invoker dispatches to.
type Runner interface {
	Run(ctx context.Context) (*models.SuiteResult, error)
}

// Logger is the subset of logging the invoker needs.
type Logger interface {
	LogInfo(message string)
	LogWarn(message string)
}

// Config controls when the invoker starts the suite.
type Config struct {
	// AutoRun starts the suite once as soon as Start is called.
	AutoRun bool
	// TriggerKey starts the suite when read from the input stream.
	TriggerKey rune
	// Discover lazily resolves a runner when none was wired explicitly.
	Discover func() Runner
}

// Invoker starts the suite on the configured occasions.
type Invoker struct {
	runner Runner
	cfg    Config
	logger Logger
}

// New creates an Invoker. The runner may be nil if cfg.Discover can resolve
// one later; the logger may be nil.
func New(runner Runner, cfg Config, logger Logger) *Invoker {
	return &Invoker{runner: runner, cfg: cfg, logger: logger}
}

// Trigger starts one suite run. A missing runner is reported as a warning
// and an error; an already-running suite is only a warning, since the
// requested work is in flight.
func (i *Invoker) Trigger(ctx context.Context) error {
	runner := i.resolve()
	if runner == nil {
		i.warn("no suite runner available; wire one or provide a discovery function")
		return errors.New("no suite runner available")
	}

	if _, err := runner.Run(ctx); err != nil {
		if errors.Is(err, suite.ErrSuiteRunning) {
			i.warn("suite already running, ignoring trigger")
			return nil
		}
		return err
	}
	return nil
}

// Start runs the invoker: one automatic run when configured, then a watch
// loop reading runes from input until EOF or context cancellation. A nil
// input skips the watch loop.
func (i *Invoker) Start(ctx context.Context, input io.Reader) error {
	if i.cfg.AutoRun {
		if err := i.Trigger(ctx); err != nil {
			return err
		}
	}

	if input == nil {
		return nil
	}

	i.info(fmt.Sprintf("press %q to run the suite", i.cfg.TriggerKey))
	reader := bufio.NewReader(input)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		r, _, err := reader.ReadRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("read trigger input: %w", err)
		}

		if r != i.cfg.TriggerKey {
			continue
		}
		if err := i.Trigger(ctx); err != nil {
			return err
		}
	}
}

// resolve returns the wired runner, falling back to lazy discovery. A
// discovered runner is kept for later triggers.
func (i *Invoker) resolve() Runner {
	if i.runner != nil {
		return i.runner
	}
	if i.cfg.Discover != nil {
		i.runner = i.cfg.Discover()
	}
	return i.runner
}

func (i *Invoker) info(message string) {
	if i.logger != nil {
		i.logger.LogInfo(message)
	}
}

func (i *Invoker) warn(message string) {
	if i.logger != nil {
		i.logger.LogWarn(message)
	}
}
