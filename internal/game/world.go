package game

import (
	"math"
	"time"
)

// Object tags used for scene lookup.
const (
	TagPlayer = "player"
	TagSpike  = "spike"
	TagPortal = "portal"
)

// Object is one entry in the scene: a tagged body with a collider size and,
// optionally, health and a trigger handler. Trigger objects dispatch overlap
// events against dynamic bodies each step.
type Object struct {
	Tag     string
	Body    *Body
	Size    Vec2
	Health  *Health
	Trigger TriggerHandler
}

// Bounds returns the object's collider rect at its current position.
func (o *Object) Bounds() Rect {
	return RectAt(o.Body.Position(), o.Size)
}

// Params holds the tunable constants of the simulation.
type Params struct {
	TickRate       int           // Fixed steps per second
	Gravity        float64       // Downward acceleration, units/s^2
	MaxFallSpeed   float64       // Terminal fall speed, units/s
	GroundY        float64       // Y coordinate dynamic bodies rest on
	PlayerHealth   int           // Starting hit points
	SpikeDamage    int           // Hit points lost per damage tick
	DamageInterval time.Duration // Time between damage ticks while overlapping a hazard
}

// DefaultParams returns the simulation constants used by the stock test level.
func DefaultParams() Params {
	return Params{
		TickRate:       60,
		Gravity:        30,
		MaxFallSpeed:   20,
		GroundY:        0,
		PlayerHealth:   100,
		SpikeDamage:    25,
		DamageInterval: 500 * time.Millisecond,
	}
}

// World is the deterministic fixed-timestep simulation of one level. All
// mutation happens from a single logical thread of control; the world is not
// safe for concurrent use.
type World struct {
	params  Params
	manager *Manager
	objects []*Object
	inside  map[triggerPair]bool
	tick    int
}

// triggerPair identifies one (trigger, occupant) overlap being tracked
// across steps.
type triggerPair struct {
	trigger  *Object
	occupant *Object
}

// NewWorld creates an empty world with the given parameters. Zero-valued
// tick rate falls back to 60.
func NewWorld(params Params) *World {
	if params.TickRate <= 0 {
		params.TickRate = 60
	}
	return &World{
		params:  params,
		manager: NewManager(),
		inside:  map[triggerPair]bool{},
	}
}

// Params returns the simulation constants.
func (w *World) Params() Params {
	return w.params
}

// Manager returns the world's game-state manager.
func (w *World) Manager() *Manager {
	return w.manager
}

// Add registers an object in the scene.
func (w *World) Add(obj *Object) {
	w.objects = append(w.objects, obj)
}

// Find returns the first object with the given tag, or nil when the scene
// has none.
func (w *World) Find(tag string) *Object {
	for _, obj := range w.objects {
		if obj.Tag == tag {
			return obj
		}
	}
	return nil
}

// Tick returns the number of steps taken since the world was created.
func (w *World) Tick() int {
	return w.tick
}

// Dt returns the fixed timestep in seconds.
func (w *World) Dt() float64 {
	return 1.0 / float64(w.params.TickRate)
}

// Step advances the simulation by one fixed timestep: integrates dynamic
// bodies, then dispatches trigger enter/stay/exit events for overlaps.
func (w *World) Step() {
	dt := w.Dt()

	for _, obj := range w.objects {
		obj.Body.integrate(dt, w.params.Gravity, w.params.MaxFallSpeed, w.params.GroundY)
	}

	for _, trig := range w.objects {
		if trig.Trigger == nil {
			continue
		}
		region := trig.Bounds()
		for _, obj := range w.objects {
			if obj == trig || obj.Body.Kind() != DynamicBody {
				continue
			}
			pair := triggerPair{trigger: trig, occupant: obj}
			overlapping := region.Overlaps(obj.Bounds())
			switch {
			case overlapping && !w.inside[pair]:
				w.inside[pair] = true
				trig.Trigger.OnTriggerEnter(obj)
			case overlapping:
				trig.Trigger.OnTriggerStay(obj, dt)
			case w.inside[pair]:
				delete(w.inside, pair)
				trig.Trigger.OnTriggerExit(obj)
			}
		}
	}

	w.tick++
}

// StepFor advances the simulation by at least d worth of fixed steps,
// rounding the step count up so a full interval is always covered.
func (w *World) StepFor(d time.Duration) {
	steps := int(math.Ceil(d.Seconds() * float64(w.params.TickRate)))
	for i := 0; i < steps; i++ {
		w.Step()
	}
}
