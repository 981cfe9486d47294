package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/playcheck/internal/models"
)

func TestFileLoggerWritesRunLog(t *testing.T) {
	dir := t.TempDir()

	fl, err := NewFileLogger(dir)
	require.NoError(t, err)

	fl.LogSuiteStart(4)
	fl.LogScenarioResult(models.ScenarioResult{
		Scenario: "launch",
		Status:   models.StatusPass,
		Message:  "game is running",
		Elapsed:  10 * time.Millisecond,
	})
	fl.LogSummary(models.SuiteResult{Total: 4, Passed: 4})
	require.NoError(t, fl.Close())

	data, err := os.ReadFile(fl.RunFile())
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "=== Playtest Suite (4 scenarios) ===")
	assert.Contains(t, content, "launch: PASS - game is running (10ms)")
	assert.Contains(t, content, "Passed: 4")
}

func TestFileLoggerLatestSymlink(t *testing.T) {
	dir := t.TempDir()

	fl, err := NewFileLogger(dir)
	require.NoError(t, err)
	defer fl.Close()

	target, err := os.Readlink(filepath.Join(dir, "latest.log"))
	if err != nil {
		t.Skipf("symlinks unsupported here: %v", err)
	}
	assert.Equal(t, filepath.Base(fl.RunFile()), target)
	assert.True(t, strings.HasPrefix(target, "run-"), "run file name %q", target)
}

func TestFileLoggerCloseIsIdempotent(t *testing.T) {
	fl, err := NewFileLogger(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, fl.Close())
	require.NoError(t, fl.Close())

	// Writes after close are discarded, not panics.
	fl.LogSuiteStart(1)
}
