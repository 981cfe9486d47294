package suite

import (
	"context"
	"time"

	"github.com/harrison/playcheck/internal/game"
)

// Host exposes the named suspension points a scenario coordinates on. The
// production host steps the deterministic world; tests substitute fakes to
// make the scheduling contract observable.
type Host interface {
	// AfterPhysicsStep resumes after exactly one physics step.
	AfterPhysicsStep(ctx context.Context) error
	// AfterDelay resumes after a fixed delay's worth of physics steps.
	AfterDelay(ctx context.Context, d time.Duration) error
}

// GameState is the global run-state collaborator. The suite may read the
// running flag but has no authority to restore it.
type GameState interface {
	Running() bool
}

// PlayerBody is the movement/physics capability the suite consumes from the
// player collaborator.
type PlayerBody interface {
	Kind() game.BodyKind
	Position() game.Vec2
	Velocity() game.Vec2
	Teleport(pos game.Vec2)
	Halt()
	ApplyImpulse(dv game.Vec2)
}

// PlayerHealth is the health/alive capability, including the test-only probe
// used for scenario setup and teardown.
type PlayerHealth interface {
	Alive() bool
	Probe() game.HealthProbe
}

// GoalGate is the goal trigger's latch, resettable through the test-only
// surface.
type GoalGate interface {
	Entered() bool
	ResetEntered()
}

// PlayerHandle bundles the player collaborator's capabilities. A nil handle
// means the player was not found in the scene.
type PlayerHandle struct {
	Body   PlayerBody
	Health PlayerHealth
}

// ZoneHandle locates a trigger-shaped collaborator region by its center.
type ZoneHandle struct {
	Pos game.Vec2
}

// GoalHandle locates the goal trigger and its latch.
type GoalHandle struct {
	Pos  game.Vec2
	Gate GoalGate
}

// Env holds the collaborator handles for one suite run. Handles are borrowed
// references resolved by scene lookup at the start of the run; the suite
// never creates or destroys the underlying objects. Any handle may be nil,
// and every scenario checks its own preconditions against that.
type Env struct {
	Game   GameState
	Player *PlayerHandle
	Hazard *ZoneHandle
	Goal   *GoalHandle
	Host   Host

	// DamageInterval is the hazard's damage cadence, used to size the
	// suspension in the damage scenario.
	DamageInterval time.Duration
}

// Locator resolves collaborator handles at the start of each run.
type Locator interface {
	Resolve() *Env
}

// WorldLocator resolves handles from a live world by tag lookup.
type WorldLocator struct {
	World *game.World
}

// Resolve looks up the player, hazard, and goal objects and wraps them in
// capability handles. Missing objects leave their handle nil rather than
// failing; scenarios report the absence themselves.
func (l WorldLocator) Resolve() *Env {
	env := &Env{
		Game:           l.World.Manager(),
		DamageInterval: l.World.Params().DamageInterval,
	}

	if obj := l.World.Find(game.TagPlayer); obj != nil {
		handle := &PlayerHandle{Body: obj.Body}
		if obj.Health != nil {
			handle.Health = obj.Health
		}
		env.Player = handle
	}

	if obj := l.World.Find(game.TagSpike); obj != nil {
		env.Hazard = &ZoneHandle{Pos: obj.Body.Position()}
	}

	if obj := l.World.Find(game.TagPortal); obj != nil {
		goal := &GoalHandle{Pos: obj.Body.Position()}
		if gate, ok := obj.Trigger.(GoalGate); ok {
			goal.Gate = gate
		}
		env.Goal = goal
	}

	return env
}
