package suite

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/harrison/playcheck/internal/models"
)

// Logger receives suite lifecycle events for human-readable output.
type Logger interface {
	LogSuiteStart(total int)
	LogScenarioStart(name, description string)
	LogScenarioResult(result models.ScenarioResult)
	LogSummary(result models.SuiteResult)
}

// Runner executes a fixed, ordered set of scenarios against externally-owned
// game state, isolating failures per scenario so one failing scenario never
// aborts the suite. The result log is cleared at the start of every run and
// each scenario's result is recorded exactly once.
type Runner struct {
	locator   Locator
	host      Host
	logger    Logger
	scenarios []Scenario
	results   []models.ScenarioResult
	running   atomic.Bool
}

// NewRunner creates a Runner over the default scenario order. The logger is
// optional and may be nil.
func NewRunner(locator Locator, host Host, logger Logger) *Runner {
	if locator == nil {
		panic("locator cannot be nil")
	}
	if host == nil {
		panic("host cannot be nil")
	}

	return &Runner{
		locator:   locator,
		host:      host,
		logger:    logger,
		scenarios: DefaultScenarios(),
	}
}

// ScenarioNames returns the names of the scenarios the runner will execute,
// in order.
func (r *Runner) ScenarioNames() []string {
	names := make([]string, 0, len(r.scenarios))
	for _, sc := range r.scenarios {
		names = append(names, sc.Name())
	}
	return names
}

// Select narrows the suite to the named scenarios while keeping the fixed
// order. Unknown names are an error; an empty selection leaves the suite
// unchanged.
func (r *Runner) Select(names []string) error {
	if len(names) == 0 {
		return nil
	}

	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		wanted[name] = false
	}

	var selected []Scenario
	for _, sc := range r.scenarios {
		if _, ok := wanted[sc.Name()]; ok {
			wanted[sc.Name()] = true
			selected = append(selected, sc)
		}
	}

	for name, found := range wanted {
		if !found {
			return fmt.Errorf("unknown scenario %q", name)
		}
	}

	r.scenarios = selected
	return nil
}

// Run executes the suite once: clears the result log, resolves collaborator
// handles, runs every scenario in order, and emits the summary. The suite
// always completes and always reaches the summary, even with zero passes.
// A second invocation while one is in flight returns ErrSuiteRunning.
func (r *Runner) Run(ctx context.Context) (*models.SuiteResult, error) {
	if !r.running.CompareAndSwap(false, true) {
		return nil, ErrSuiteRunning
	}
	defer r.running.Store(false)

	r.results = r.results[:0]

	if r.logger != nil {
		r.logger.LogSuiteStart(len(r.scenarios))
	}

	startedAt := time.Now()
	env := r.locator.Resolve()
	env.Host = r.host

	for _, sc := range r.scenarios {
		if r.logger != nil {
			r.logger.LogScenarioStart(sc.Name(), sc.Description())
		}

		result := r.runScenario(ctx, sc, env)
		r.results = append(r.results, result)

		if r.logger != nil {
			r.logger.LogScenarioResult(result)
		}
	}

	suiteResult := r.aggregate(startedAt)
	if r.logger != nil {
		r.logger.LogSummary(*suiteResult)
	}

	return suiteResult, nil
}

// Results returns the result log of the most recent run.
func (r *Runner) Results() []models.ScenarioResult {
	return r.results
}

// runScenario drives one scenario through setup, run, and teardown, and
// converts whatever happened into a single result record. Panics are
// recovered into failed results so the suite keeps going.
func (r *Runner) runScenario(ctx context.Context, sc Scenario, env *Env) (result models.ScenarioResult) {
	start := time.Now()

	defer func() {
		if rec := recover(); rec != nil {
			result = failResult(sc, models.TierAssertion, fmt.Sprintf("scenario panicked: %v", rec), "", start)
		}
	}()

	if err := sc.Setup(ctx, env); err != nil {
		return errResult(sc, err, start)
	}

	outcome, runErr := sc.Run(ctx, env)

	// Teardown restores perturbed state on every path after a completed
	// Setup.
	teardownErr := sc.Teardown(ctx, env)

	if runErr != nil {
		return errResult(sc, runErr, start)
	}
	if teardownErr != nil {
		return errResult(sc, fmt.Errorf("teardown: %w", teardownErr), start)
	}

	return models.ScenarioResult{
		Scenario: sc.Name(),
		Status:   models.StatusPass,
		Message:  outcome.Message,
		Detail:   outcome.Detail,
		Elapsed:  time.Since(start),
	}
}

// aggregate folds the result log into a SuiteResult.
func (r *Runner) aggregate(startedAt time.Time) *models.SuiteResult {
	suiteResult := &models.SuiteResult{
		RunID:     uuid.NewString(),
		StartedAt: startedAt,
		Results:   append([]models.ScenarioResult(nil), r.results...),
		Total:     len(r.results),
		Elapsed:   time.Since(startedAt),
	}

	for _, result := range r.results {
		if result.Passed() {
			suiteResult.Passed++
		} else {
			suiteResult.Failed++
		}
	}

	return suiteResult
}

// errResult converts a scenario error into a failed result, mapping the
// failure tier from the error type.
func errResult(sc Scenario, err error, start time.Time) models.ScenarioResult {
	var precondition *PreconditionError
	if errors.As(err, &precondition) {
		return failResult(sc, models.TierPrecondition, precondition.Message, "", start)
	}

	var assertion *AssertionError
	if errors.As(err, &assertion) {
		return failResult(sc, models.TierAssertion, assertion.Message, assertion.Detail(), start)
	}

	return failResult(sc, models.TierAssertion, err.Error(), "", start)
}

func failResult(sc Scenario, tier, message, detail string, start time.Time) models.ScenarioResult {
	return models.ScenarioResult{
		Scenario: sc.Name(),
		Status:   models.StatusFail,
		Tier:     tier,
		Message:  message,
		Detail:   detail,
		Elapsed:  time.Since(start),
	}
}
