package game

import (
	"context"
	"math"
	"time"
)

// SimHost drives the world through its fixed-timestep loop on behalf of a
// suspended caller. It provides the named suspension points the playtest
// suite coordinates on: resume after one physics step, or after a fixed
// delay's worth of steps.
type SimHost struct {
	world *World
}

// NewSimHost creates a host around the given world.
func NewSimHost(world *World) *SimHost {
	return &SimHost{world: world}
}

// AfterPhysicsStep advances the world by exactly one fixed step.
func (h *SimHost) AfterPhysicsStep(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	h.world.Step()
	return nil
}

// AfterDelay advances the world by at least d worth of fixed steps, checking
// the context between steps so a canceled suite stops promptly.
func (h *SimHost) AfterDelay(ctx context.Context, d time.Duration) error {
	steps := int(math.Ceil(d.Seconds() * float64(h.world.Params().TickRate)))
	for i := 0; i < steps; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		h.world.Step()
	}
	return nil
}
