package models

import "time"

// Scenario outcome status constants
const (
	StatusPass = "PASS" // Scenario preconditions and assertions all held
	StatusFail = "FAIL" // Scenario failed a precondition or an assertion
)

// Failure tier constants, recorded alongside a FAIL status so the summary can
// distinguish a missing collaborator from a real assertion mismatch.
const (
	TierPrecondition = "precondition" // Required collaborator absent or misconfigured
	TierAssertion    = "assertion"    // Preconditions held but the post-condition did not
)

// ScenarioResult represents the outcome of executing a single scenario.
// It is created exactly once per scenario run, after the scenario's checks
// complete, and is immutable afterwards.
type ScenarioResult struct {
	Scenario string        // Scenario name (e.g. "movement")
	Status   string        // "PASS" or "FAIL"
	Tier     string        // Failure tier for FAIL results, empty for PASS
	Message  string        // Human-readable outcome message
	Detail   string        // Optional observed-vs-expected detail line
	Elapsed  time.Duration // Wall time taken by the scenario
}

// Passed reports whether the result represents a passing scenario.
func (r ScenarioResult) Passed() bool {
	return r.Status == StatusPass
}

// SuiteResult represents the aggregate outcome of one full suite run.
type SuiteResult struct {
	RunID     string           // Unique identifier for this run
	StartedAt time.Time        // When the run began
	Results   []ScenarioResult // Ordered per-scenario results
	Total     int              // Number of scenarios executed
	Passed    int              // Number of passing scenarios
	Failed    int              // Number of failing scenarios
	Elapsed   time.Duration    // Total suite wall time
}

// PassRate returns the fraction of passing scenarios as a percentage.
// A run with zero scenarios reports 0.
func (s SuiteResult) PassRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Passed) / float64(s.Total) * 100
}

// FailedResults returns the subset of results that did not pass, in order.
func (s SuiteResult) FailedResults() []ScenarioResult {
	var failed []ScenarioResult
	for _, r := range s.Results {
		if !r.Passed() {
			failed = append(failed, r)
		}
	}
	return failed
}
