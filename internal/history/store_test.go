package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/playcheck/internal/models"
)

func newMemStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleResult(runID string, startedAt time.Time) models.SuiteResult {
	return models.SuiteResult{
		RunID:     runID,
		StartedAt: startedAt,
		Total:     4,
		Passed:    3,
		Failed:    1,
		Elapsed:   1200 * time.Millisecond,
		Results: []models.ScenarioResult{
			{Scenario: "launch", Status: models.StatusPass, Message: "game is running", Elapsed: 5 * time.Millisecond},
			{Scenario: "movement", Status: models.StatusPass, Message: "player responded", Elapsed: 20 * time.Millisecond},
			{Scenario: "spike-damage", Status: models.StatusPass, Message: "damaged", Elapsed: 510 * time.Millisecond},
			{Scenario: "portal-completion", Status: models.StatusFail, Tier: models.TierAssertion,
				Message: "level did not end", Detail: "observed running=true, expected running=false",
				Elapsed: 120 * time.Millisecond},
		},
	}
}

func TestSaveAndLoadRunRoundTrip(t *testing.T) {
	store := newMemStore(t)
	ctx := context.Background()

	want := sampleResult("run-1", time.Now().UTC().Truncate(time.Second))
	require.NoError(t, store.SaveRun(ctx, want, 0))

	rec, err := store.LoadRun(ctx, "run-1")
	require.NoError(t, err)

	assert.Equal(t, want.RunID, rec.RunID)
	assert.Equal(t, want.Total, rec.Total)
	assert.Equal(t, want.Passed, rec.Passed)
	assert.Equal(t, want.Failed, rec.Failed)
	assert.Equal(t, want.Elapsed, rec.Elapsed)
	assert.InDelta(t, 75.0, rec.PassRate(), 0.001)

	require.Len(t, rec.Scenarios, 4)
	assert.Equal(t, "launch", rec.Scenarios[0].Scenario)
	last := rec.Scenarios[3]
	assert.Equal(t, models.StatusFail, last.Status)
	assert.Equal(t, models.TierAssertion, last.Tier)
	assert.Equal(t, "level did not end", last.Message)
	assert.Contains(t, last.Detail, "running=false")
}

func TestLoadRunUnknownID(t *testing.T) {
	store := newMemStore(t)
	_, err := store.LoadRun(context.Background(), "missing")
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}

func TestRecentRunsNewestFirst(t *testing.T) {
	store := newMemStore(t)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 3; i++ {
		result := sampleResult(fmt.Sprintf("run-%d", i), base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, store.SaveRun(ctx, result, 0))
	}

	records, err := store.RecentRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "run-2", records[0].RunID)
	assert.Equal(t, "run-1", records[1].RunID)
}

func TestSaveRunPrunesOldRuns(t *testing.T) {
	store := newMemStore(t)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 5; i++ {
		result := sampleResult(fmt.Sprintf("run-%d", i), base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, store.SaveRun(ctx, result, 3))
	}

	records, err := store.RecentRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "run-4", records[0].RunID)
	assert.Equal(t, "run-2", records[2].RunID)

	// Pruned runs lose their scenario rows too.
	_, err = store.LoadRun(ctx, "run-0")
	assert.True(t, errors.Is(err, sql.ErrNoRows))

	var orphans int
	require.NoError(t, store.db.QueryRow(
		`SELECT COUNT(*) FROM scenario_results WHERE run_id IN ('run-0', 'run-1')`).Scan(&orphans))
	assert.Zero(t, orphans)
}

func TestFileBackedStoreCreatesDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "history.db")

	store, err := NewStore(dbPath)
	require.NoError(t, err)
	defer store.Close()

	result := sampleResult("run-file", time.Now().UTC())
	require.NoError(t, store.SaveRun(context.Background(), result, 0))

	records, err := store.RecentRuns(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "run-file", records[0].RunID)
}
