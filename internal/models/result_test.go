package models

import (
	"testing"
	"time"
)

func TestSuiteResult_PassRate(t *testing.T) {
	tests := []struct {
		name   string
		suite  SuiteResult
		expect float64
	}{
		{
			name:   "all passing",
			suite:  SuiteResult{Total: 4, Passed: 4},
			expect: 100,
		},
		{
			name:   "three of four",
			suite:  SuiteResult{Total: 4, Passed: 3},
			expect: 75,
		},
		{
			name:   "zero passes",
			suite:  SuiteResult{Total: 4, Passed: 0},
			expect: 0,
		},
		{
			name:   "empty suite",
			suite:  SuiteResult{},
			expect: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.suite.PassRate(); got != tt.expect {
				t.Errorf("PassRate() = %v, want %v", got, tt.expect)
			}
		})
	}
}

func TestSuiteResult_FailedResults(t *testing.T) {
	suite := SuiteResult{
		Results: []ScenarioResult{
			{Scenario: "launch", Status: StatusPass},
			{Scenario: "movement", Status: StatusFail, Tier: TierPrecondition, Message: "player not found"},
			{Scenario: "spike-damage", Status: StatusPass},
			{Scenario: "portal-completion", Status: StatusFail, Tier: TierAssertion, Message: "game still running"},
		},
	}

	failed := suite.FailedResults()
	if len(failed) != 2 {
		t.Fatalf("FailedResults() returned %d results, want 2", len(failed))
	}
	if failed[0].Scenario != "movement" || failed[1].Scenario != "portal-completion" {
		t.Errorf("FailedResults() order = %q, %q", failed[0].Scenario, failed[1].Scenario)
	}
	if failed[0].Tier != TierPrecondition {
		t.Errorf("failed[0].Tier = %q, want %q", failed[0].Tier, TierPrecondition)
	}
}

func TestScenarioResult_Passed(t *testing.T) {
	pass := ScenarioResult{Status: StatusPass, Elapsed: 50 * time.Millisecond}
	if !pass.Passed() {
		t.Error("PASS result should report Passed() = true")
	}

	fail := ScenarioResult{Status: StatusFail}
	if fail.Passed() {
		t.Error("FAIL result should report Passed() = false")
	}
}
