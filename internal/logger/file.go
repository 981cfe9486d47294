package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/harrison/playcheck/internal/models"
)

// FileLogger logs suite events to a timestamped run log file and maintains a
// latest.log symlink pointing to the most recent run. It is thread-safe and
// implements the suite.Logger interface.
type FileLogger struct {
	logDir  string
	runLog  *os.File
	runFile string
	mu      sync.Mutex
}

// NewFileLogger creates a FileLogger writing under the given directory,
// creating it if needed. The run log is named run-YYYYMMDD-HHMMSS.log.
func NewFileLogger(logDir string) (*FileLogger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	ts := time.Now().Format("20060102-150405")
	runFile := filepath.Join(logDir, fmt.Sprintf("run-%s.log", ts))

	file, err := os.OpenFile(runFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create run log file: %w", err)
	}

	// Point latest.log at the current run. Symlink failures (e.g. on
	// filesystems without symlink support) are not fatal.
	symlinkPath := filepath.Join(logDir, "latest.log")
	if _, err := os.Lstat(symlinkPath); err == nil {
		_ = os.Remove(symlinkPath)
	}
	_ = os.Symlink(filepath.Base(runFile), symlinkPath)

	return &FileLogger{
		logDir:  logDir,
		runLog:  file,
		runFile: runFile,
	}, nil
}

// Close flushes and closes the run log file.
func (fl *FileLogger) Close() error {
	fl.mu.Lock()
	defer fl.mu.Unlock()
	if fl.runLog == nil {
		return nil
	}
	err := fl.runLog.Close()
	fl.runLog = nil
	return err
}

// RunFile returns the path of the current run log file.
func (fl *FileLogger) RunFile() string {
	return fl.runFile
}

func (fl *FileLogger) writeLine(format string, args ...any) {
	fl.mu.Lock()
	defer fl.mu.Unlock()
	if fl.runLog == nil {
		return
	}
	ts := time.Now().Format("15:04:05")
	fmt.Fprintf(fl.runLog, "[%s] %s\n", ts, fmt.Sprintf(format, args...))
}

// LogSuiteStart writes the suite banner.
func (fl *FileLogger) LogSuiteStart(total int) {
	fl.writeLine("=== Playtest Suite (%d scenarios) ===", total)
}

// LogScenarioStart writes a scenario start line.
func (fl *FileLogger) LogScenarioStart(name, description string) {
	fl.writeLine("Running %s: %s", name, description)
}

// LogScenarioResult writes a scenario outcome line, with the detail line
// when present.
func (fl *FileLogger) LogScenarioResult(result models.ScenarioResult) {
	fl.writeLine("%s: %s - %s (%s)", result.Scenario, result.Status, result.Message, formatDuration(result.Elapsed))
	if result.Detail != "" {
		fl.writeLine("  %s", result.Detail)
	}
}

// LogSummary writes the suite summary block.
func (fl *FileLogger) LogSummary(result models.SuiteResult) {
	fl.writeLine("=== Suite Summary ===")
	fl.writeLine("Scenarios: %d", result.Total)
	fl.writeLine("Passed: %d", result.Passed)
	fl.writeLine("Failed: %d", result.Failed)
	fl.writeLine("Pass rate: %.0f%%", result.PassRate())
	fl.writeLine("Duration: %s", formatDuration(result.Elapsed))
}
