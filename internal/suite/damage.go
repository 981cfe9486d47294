package suite

import (
	"context"
	"fmt"

	"github.com/harrison/playcheck/internal/game"
)

// DamageScenario verifies hazard contact hurts: the player is placed inside
// the spike's trigger region, the suite suspends for one damage interval,
// and either the health counter must have decreased or the alive flag must
// have flipped.
//
// The player's position is restored in Teardown, but the health/alive state
// is deliberately left mutated: the completion scenario normalizes it in its
// own Setup. This is a known scenario dependency, kept from the original in
// favor of letting the last scenario demonstrate recovery-after-death.
type DamageScenario struct {
	savedPos game.Vec2
	saved    bool
}

// Name returns the scenario name.
func (s *DamageScenario) Name() string { return "spike-damage" }

// Description returns a one-line summary of the check.
func (s *DamageScenario) Description() string {
	return "spike contact reduces health or kills the player"
}

// Setup records the player's original position.
func (s *DamageScenario) Setup(ctx context.Context, env *Env) error {
	player, err := requirePlayer(env)
	if err != nil {
		return err
	}
	s.savedPos = player.Body.Position()
	s.saved = true
	return nil
}

// Run moves the player into the hazard, waits out a damage interval, and
// re-reads the health state through the test probe.
func (s *DamageScenario) Run(ctx context.Context, env *Env) (Outcome, error) {
	player := env.Player
	if player.Health == nil {
		return Outcome{}, NewPreconditionError("player has no health capability")
	}
	if env.Hazard == nil {
		return Outcome{}, NewPreconditionError("spike hazard not found")
	}

	probe := player.Health.Probe()
	startHealth := probe.Health()
	startAlive := player.Health.Alive()

	player.Body.Teleport(env.Hazard.Pos)
	player.Body.Halt()

	if err := env.Host.AfterDelay(ctx, env.DamageInterval); err != nil {
		return Outcome{}, NewAssertionError("damage interval did not elapse", err.Error(), "one elapsed interval")
	}

	endHealth := probe.Health()
	endAlive := player.Health.Alive()

	if endHealth >= startHealth && endAlive == startAlive {
		return Outcome{}, NewAssertionError(
			"hazard contact had no effect",
			fmt.Sprintf("health %d->%d alive=%v", startHealth, endHealth, endAlive),
			fmt.Sprintf("health<%d or alive=false", startHealth),
		)
	}

	return Outcome{
		Message: "hazard contact damaged the player",
		Detail:  fmt.Sprintf("health %d -> %d, alive=%v", startHealth, endHealth, endAlive),
	}, nil
}

// Teardown restores the player's position. Health is left as the hazard put
// it, see the type comment.
func (s *DamageScenario) Teardown(ctx context.Context, env *Env) error {
	if !s.saved || env.Player == nil {
		return nil
	}
	env.Player.Body.Teleport(s.savedPos)
	env.Player.Body.Halt()
	return nil
}
