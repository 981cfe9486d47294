package suite

import "context"

// Outcome is what a passing scenario reports back to the runner.
type Outcome struct {
	Message string // Human-readable pass message
	Detail  string // Optional detail line for the summary
}

// Scenario is one end-to-end check against externally-owned game state.
//
// The runner calls Setup, Run, and Teardown in order. Setup runs
// unconditionally before every scenario and is where cross-scenario state is
// normalized; a Setup error skips Run and Teardown. Teardown runs whether or
// not Run succeeded, so perturbed state (player position) is restored on
// every path.
//
// Failures are reported by returning *PreconditionError or *AssertionError;
// no error escapes the runner's scenario loop.
type Scenario interface {
	Name() string
	Description() string
	Setup(ctx context.Context, env *Env) error
	Run(ctx context.Context, env *Env) (Outcome, error)
	Teardown(ctx context.Context, env *Env) error
}

// DefaultScenarios returns the fixed scenario order: launch, movement,
// spike-damage, portal-completion. The ordering matters: the damage scenario
// deliberately leaves the player's health mutated and the completion
// scenario compensates in its Setup.
func DefaultScenarios() []Scenario {
	return []Scenario{
		&LaunchScenario{},
		&MovementScenario{},
		&DamageScenario{},
		&CompletionScenario{},
	}
}

// requirePlayer returns the player handle or a precondition error when the
// player object is absent from the scene.
func requirePlayer(env *Env) (*PlayerHandle, error) {
	if env.Player == nil {
		return nil, NewPreconditionError("player not found")
	}
	return env.Player, nil
}
