// Package logger provides logging implementations for playcheck suite runs.
//
// The logger package offers human-readable logging of suite progress at the
// scenario and summary levels. Implementations are thread-safe and support
// various output destinations (console, file).
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/harrison/playcheck/internal/models"
)

// Log level constants for filtering
const (
	levelTrace int = 0
	levelDebug int = 1
	levelInfo  int = 2
	levelWarn  int = 3
	levelError int = 4
)

// ConsoleLogger logs suite progress to a writer with timestamps and thread
// safety. All output is prefixed with [HH:MM:SS] timestamps. It supports log
// level filtering and optional per-scenario detail lines in the summary.
// Color output is automatically enabled for terminal output.
type ConsoleLogger struct {
	writer      io.Writer
	logLevel    string
	showDetails bool
	mutex       sync.Mutex
	colorOutput bool
}

// NewConsoleLogger creates a ConsoleLogger that writes to the provided
// io.Writer. If writer is nil, messages are silently discarded.
// logLevel determines the minimum level for messages to be output; valid
// levels are trace, debug, info, warn, error (case-insensitive), defaulting
// to "info". showDetails controls whether the summary includes a detail line
// per scenario.
func NewConsoleLogger(writer io.Writer, logLevel string, showDetails bool) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      writer,
		logLevel:    normalizeLogLevel(logLevel),
		showDetails: showDetails,
		colorOutput: isTerminal(writer),
	}
}

// isTerminal checks if the writer is a terminal that supports colors.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	// NO_COLOR and friends are honored through the color library.
	if color.NoColor {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// normalizeLogLevel converts a log level string to lowercase and validates
// it. Returns "info" as default for empty or invalid levels.
func normalizeLogLevel(level string) string {
	normalized := strings.ToLower(strings.TrimSpace(level))

	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if validLevels[normalized] {
		return normalized
	}

	return "info" // Default level
}

// shouldLog checks if a message at the given level should be logged.
func (cl *ConsoleLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(cl.logLevel)
}

// logLevelToInt converts a log level string to its numeric value.
func logLevelToInt(level string) int {
	switch level {
	case "trace":
		return levelTrace
	case "debug":
		return levelDebug
	case "info":
		return levelInfo
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

// LogDebug logs a debug-level message.
// Format: "[HH:MM:SS] [DEBUG] <message>"
func (cl *ConsoleLogger) LogDebug(message string) {
	cl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
// Format: "[HH:MM:SS] [INFO] <message>"
func (cl *ConsoleLogger) LogInfo(message string) {
	cl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
// Format: "[HH:MM:SS] [WARN] <message>"
func (cl *ConsoleLogger) LogWarn(message string) {
	cl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
// Format: "[HH:MM:SS] [ERROR] <message>"
func (cl *ConsoleLogger) LogError(message string) {
	cl.logWithLevel("ERROR", message)
}

// logWithLevel logs a message at the specified level if filtering allows it.
func (cl *ConsoleLogger) logWithLevel(level string, message string) {
	if cl.writer == nil {
		return
	}
	if !cl.shouldLog(strings.ToLower(level)) {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()
	var formatted string
	if cl.colorOutput {
		formatted = fmt.Sprintf("[%s] [%s] %s\n", ts, cl.colorLevel(level), message)
	} else {
		formatted = fmt.Sprintf("[%s] [%s] %s\n", ts, level, message)
	}

	cl.writer.Write([]byte(formatted))
}

// colorLevel returns the level tag with its ANSI color applied.
func (cl *ConsoleLogger) colorLevel(level string) string {
	switch strings.ToUpper(level) {
	case "TRACE":
		return color.New(color.FgHiBlack).Sprint(level)
	case "DEBUG":
		return color.New(color.FgCyan).Sprint(level)
	case "INFO":
		return color.New(color.FgBlue).Sprint(level)
	case "WARN":
		return color.New(color.FgYellow).Sprint(level)
	case "ERROR":
		return color.New(color.FgRed).Sprint(level)
	default:
		return level
	}
}

// LogSuiteStart logs the suite banner at INFO level.
// Format: "[HH:MM:SS] === Playtest Suite (N scenarios) ==="
func (cl *ConsoleLogger) LogSuiteStart(total int) {
	if cl.writer == nil || !cl.shouldLog("info") {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()
	banner := fmt.Sprintf("=== Playtest Suite (%d scenarios) ===", total)
	if cl.colorOutput {
		banner = color.New(color.Bold).Sprint(banner)
	}
	fmt.Fprintf(cl.writer, "[%s] %s\n", ts, banner)
}

// LogScenarioStart logs the start of a scenario at INFO level.
// Format: "[HH:MM:SS] Running <name>: <description>"
func (cl *ConsoleLogger) LogScenarioStart(name, description string) {
	if cl.writer == nil || !cl.shouldLog("info") {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()
	if cl.colorOutput {
		name = color.New(color.Bold).Sprint(name)
	}
	fmt.Fprintf(cl.writer, "[%s] Running %s: %s\n", ts, name, description)
}

// LogScenarioResult logs a scenario outcome at INFO level.
// Format: "[HH:MM:SS] <name>: PASS|FAIL - <message> (<elapsed>)"
func (cl *ConsoleLogger) LogScenarioResult(result models.ScenarioResult) {
	if cl.writer == nil || !cl.shouldLog("info") {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()
	status := result.Status
	if cl.colorOutput {
		if result.Passed() {
			status = color.New(color.FgGreen).Sprint(status)
		} else {
			status = color.New(color.FgRed).Sprint(status)
		}
	}

	fmt.Fprintf(cl.writer, "[%s] %s: %s - %s (%s)\n",
		ts, result.Scenario, status, result.Message, formatDuration(result.Elapsed))

	if result.Detail != "" && cl.shouldLog("debug") {
		fmt.Fprintf(cl.writer, "[%s]   %s\n", ts, result.Detail)
	}
}

// LogSummary logs the suite summary with pass statistics at INFO level.
func (cl *ConsoleLogger) LogSummary(result models.SuiteResult) {
	if cl.writer == nil || !cl.shouldLog("info") {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()
	var output string

	header := "=== Suite Summary ==="
	if cl.colorOutput {
		header = color.New(color.Bold).Sprint(header)
	}
	output = fmt.Sprintf("[%s] %s\n", ts, header)
	output += fmt.Sprintf("[%s] Scenarios: %d\n", ts, result.Total)

	passedLine := fmt.Sprintf("Passed: %d", result.Passed)
	if cl.colorOutput {
		passedLine = color.New(color.FgGreen).Sprint(passedLine)
	}
	output += fmt.Sprintf("[%s] %s\n", ts, passedLine)

	failedLine := fmt.Sprintf("Failed: %d", result.Failed)
	if cl.colorOutput && result.Failed > 0 {
		failedLine = color.New(color.FgRed).Sprint(failedLine)
	}
	output += fmt.Sprintf("[%s] %s\n", ts, failedLine)

	output += fmt.Sprintf("[%s] Pass rate: %.0f%%\n", ts, result.PassRate())
	output += fmt.Sprintf("[%s] Duration: %s\n", ts, formatDuration(result.Elapsed))

	if cl.showDetails {
		for _, r := range result.Results {
			line := fmt.Sprintf("  - %s: %s - %s", r.Scenario, r.Status, r.Message)
			if r.Detail != "" {
				line += " [" + r.Detail + "]"
			}
			output += fmt.Sprintf("[%s] %s\n", ts, line)
		}
	} else if result.Failed > 0 {
		failedHeader := "Failed scenarios:"
		if cl.colorOutput {
			failedHeader = color.New(color.FgRed).Sprint(failedHeader)
		}
		output += fmt.Sprintf("[%s] %s\n", ts, failedHeader)
		for _, r := range result.FailedResults() {
			output += fmt.Sprintf("[%s]   - %s: %s\n", ts, r.Scenario, r.Message)
		}
	}

	cl.writer.Write([]byte(output))
}

// timestamp returns the current time formatted as "15:04:05" (HH:MM:SS).
func timestamp() string {
	return time.Now().Format("15:04:05")
}

// formatDuration converts a time.Duration to a human-readable string with
// millisecond precision for sub-second values.
// Examples: "250ms", "5s", "1m30s"
func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		minutes := d / time.Minute
		seconds := (d % time.Minute) / time.Second
		if seconds == 0 {
			return fmt.Sprintf("%dm", minutes)
		}
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	case d >= time.Second:
		return fmt.Sprintf("%.1fs", d.Seconds())
	default:
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
}

// NoOpLogger is a Logger implementation that discards all events. Useful for
// testing or when logging is disabled.
type NoOpLogger struct{}

// NewNoOpLogger creates a NoOpLogger instance.
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

// LogSuiteStart is a no-op implementation.
func (n *NoOpLogger) LogSuiteStart(total int) {}

// LogScenarioStart is a no-op implementation.
func (n *NoOpLogger) LogScenarioStart(name, description string) {}

// LogScenarioResult is a no-op implementation.
func (n *NoOpLogger) LogScenarioResult(result models.ScenarioResult) {}

// LogSummary is a no-op implementation.
func (n *NoOpLogger) LogSummary(result models.SuiteResult) {}
