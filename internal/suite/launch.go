package suite

import "context"

// LaunchScenario verifies the game booted: the global game-state handle
// exists and reports running. It is strictly read-only, it perturbs nothing.
type LaunchScenario struct{}

// Name returns the scenario name.
func (s *LaunchScenario) Name() string { return "launch" }

// Description returns a one-line summary of the check.
func (s *LaunchScenario) Description() string {
	return "game manager present and level running"
}

// Setup checks the player handle exists; launch has no state to prepare.
func (s *LaunchScenario) Setup(ctx context.Context, env *Env) error {
	_, err := requirePlayer(env)
	return err
}

// Run asserts the global running flag is set.
func (s *LaunchScenario) Run(ctx context.Context, env *Env) (Outcome, error) {
	if env.Game == nil {
		return Outcome{}, NewPreconditionError("game manager not found")
	}
	if !env.Game.Running() {
		return Outcome{}, NewAssertionError("game is not in progress", "running=false", "running=true")
	}
	return Outcome{Message: "game is running"}, nil
}

// Teardown has nothing to restore.
func (s *LaunchScenario) Teardown(ctx context.Context, env *Env) error {
	return nil
}
