package integration

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/harrison/playcheck/internal/game"
	"github.com/harrison/playcheck/internal/history"
	"github.com/harrison/playcheck/internal/invoker"
	"github.com/harrison/playcheck/internal/logger"
	"github.com/harrison/playcheck/internal/models"
	"github.com/harrison/playcheck/internal/plan"
	"github.com/harrison/playcheck/internal/suite"
)

func newRunner(t *testing.T) *suite.Runner {
	t.Helper()
	world := game.BuildLevel(game.DefaultParams())
	return suite.NewRunner(suite.WorldLocator{World: world}, game.NewSimHost(world), logger.NewNoOpLogger())
}

func TestFullSuitePasses(t *testing.T) {
	runner := newRunner(t)

	result, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Total != 4 || result.Passed != 4 || result.Failed != 0 {
		t.Fatalf("result = %d total, %d passed, %d failed; want 4/4/0",
			result.Total, result.Passed, result.Failed)
	}

	wantOrder := []string{"launch", "movement", "spike-damage", "portal-completion"}
	for i, sr := range result.Results {
		if sr.Scenario != wantOrder[i] {
			t.Errorf("result[%d] = %s, want %s", i, sr.Scenario, wantOrder[i])
		}
	}
}

func TestPlanFixtureSelectsScenarios(t *testing.T) {
	p, err := plan.NewParser().ParseFile(filepath.Join("fixtures", "smoke-plan.md"))
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}

	if p.Name != "Smoke Plan" {
		t.Errorf("plan name = %q, want %q", p.Name, "Smoke Plan")
	}

	runner := newRunner(t)
	if err := runner.Select(p.Scenarios); err != nil {
		t.Fatalf("Select() error = %v", err)
	}

	result, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Total != 2 {
		t.Fatalf("total = %d, want 2 scenarios from the plan", result.Total)
	}
	for _, sr := range result.Results {
		if sr.Scenario != "launch" && sr.Scenario != "movement" {
			t.Errorf("unexpected scenario %q ran", sr.Scenario)
		}
		if sr.Status != models.StatusPass {
			t.Errorf("%s = %s, want PASS", sr.Scenario, sr.Status)
		}
	}
}

func TestTriggerThroughInvokerPersistsHistory(t *testing.T) {
	runner := newRunner(t)
	dbPath := filepath.Join(t.TempDir(), "history.db")

	store, err := history.NewStore(dbPath)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	defer store.Close()

	recorder := &savingRunner{runner: runner, store: store}
	inv := invoker.New(recorder, invoker.Config{TriggerKey: 't'}, nil)

	// One trigger key among noise, then EOF.
	if err := inv.Start(context.Background(), strings.NewReader("xt")); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	runs, err := store.RecentRuns(context.Background(), 10)
	if err != nil {
		t.Fatalf("RecentRuns() error = %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("recorded runs = %d, want 1", len(runs))
	}
	if runs[0].Passed != 4 {
		t.Errorf("recorded passed = %d, want 4", runs[0].Passed)
	}

	loaded, err := store.LoadRun(context.Background(), runs[0].RunID)
	if err != nil {
		t.Fatalf("LoadRun() error = %v", err)
	}
	if len(loaded.Scenarios) != 4 {
		t.Errorf("loaded scenarios = %d, want 4", len(loaded.Scenarios))
	}
}

func TestConsecutiveRunsShareLevelState(t *testing.T) {
	runner := newRunner(t)

	first, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("first Run() error = %v", err)
	}
	if first.Failed != 0 {
		t.Fatalf("first run failed = %d, want 0", first.Failed)
	}

	// Completion ends the level, so a second run's launch check sees a
	// stopped game while the other scenarios still pass.
	second, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("second Run() error = %v", err)
	}
	if second.Passed != 3 || second.Failed != 1 {
		t.Fatalf("second run = %d passed, %d failed; want 3/1", second.Passed, second.Failed)
	}
	if second.Results[0].Scenario != "launch" || second.Results[0].Status != models.StatusFail {
		t.Errorf("second run launch = %+v, want FAIL", second.Results[0])
	}
}

func TestSuiteFinishesQuickly(t *testing.T) {
	runner := newRunner(t)

	start := time.Now()
	if _, err := runner.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	// Simulated time only; wall time stays far below a second.
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("suite took %s, expected simulated-time execution", elapsed)
	}
}

// savingRunner persists each completed run, mirroring the CLI wiring.
type savingRunner struct {
	runner *suite.Runner
	store  *history.Store
}

func (s *savingRunner) Run(ctx context.Context) (*models.SuiteResult, error) {
	result, err := s.runner.Run(ctx)
	if err != nil {
		return nil, err
	}
	if saveErr := s.store.SaveRun(ctx, *result, 0); saveErr != nil {
		return nil, saveErr
	}
	return result, nil
}
