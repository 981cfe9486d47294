package suite

import (
	"context"
	"fmt"

	"github.com/harrison/playcheck/internal/game"
)

// movementImpulse is the horizontal displacement applied to the player for
// the movement check, in units/s.
var movementImpulse = game.Vec2{X: 4}

// MovementScenario verifies the player can move: the body must be dynamic,
// and after a forced displacement plus one physics step either the position
// changed or the velocity is nonzero. The original position is restored in
// Teardown regardless of outcome.
type MovementScenario struct {
	savedPos game.Vec2
	saved    bool
}

// Name returns the scenario name.
func (s *MovementScenario) Name() string { return "movement" }

// Description returns a one-line summary of the check.
func (s *MovementScenario) Description() string {
	return "player body responds to forced displacement"
}

// Setup records the player's original position for restoration.
func (s *MovementScenario) Setup(ctx context.Context, env *Env) error {
	player, err := requirePlayer(env)
	if err != nil {
		return err
	}
	s.savedPos = player.Body.Position()
	s.saved = true
	return nil
}

// Run applies an impulse, suspends for one physics step, and checks that the
// body reacted.
func (s *MovementScenario) Run(ctx context.Context, env *Env) (Outcome, error) {
	player := env.Player
	if player.Body.Kind() != game.DynamicBody {
		return Outcome{}, NewPreconditionError("player body is %s, movement requires a dynamic body", player.Body.Kind())
	}

	before := player.Body.Position()
	player.Body.ApplyImpulse(movementImpulse)

	if err := env.Host.AfterPhysicsStep(ctx); err != nil {
		return Outcome{}, NewAssertionError("physics step did not complete", err.Error(), "one completed step")
	}

	after := player.Body.Position()
	moved := after.Add(before.Scale(-1)).Length()
	speed := player.Body.Velocity().Length()

	if moved == 0 && speed == 0 {
		return Outcome{}, NewAssertionError(
			"player did not react to displacement",
			fmt.Sprintf("moved=%.3f speed=%.3f", moved, speed),
			"moved>0 or speed>0",
		)
	}

	return Outcome{
		Message: "player responded to forced displacement",
		Detail:  fmt.Sprintf("moved %.3f units, speed %.3f units/s", moved, speed),
	}, nil
}

// Teardown restores the player's original position on every path.
func (s *MovementScenario) Teardown(ctx context.Context, env *Env) error {
	if !s.saved || env.Player == nil {
		return nil
	}
	env.Player.Body.Teleport(s.savedPos)
	env.Player.Body.Halt()
	return nil
}
