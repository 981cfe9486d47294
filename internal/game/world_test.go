package game

import (
	"testing"
	"time"
)

func newTestWorld() *World {
	return NewWorld(DefaultParams())
}

func addTestPlayer(w *World) *Object {
	player := &Object{
		Tag:    TagPlayer,
		Body:   NewBody(DynamicBody, Vec2{X: 2, Y: 0}),
		Size:   Vec2{X: 0.8, Y: 1.8},
		Health: NewHealth(w.Params().PlayerHealth),
	}
	w.Add(player)
	return player
}

func TestStepMovesDynamicBodyAndAdvancesTick(t *testing.T) {
	w := newTestWorld()
	player := addTestPlayer(w)

	player.Body.ApplyImpulse(Vec2{X: 4})

	w.Step()
	if w.Tick() != 1 {
		t.Fatalf("tick after 1 step = %d, want 1", w.Tick())
	}
	x1 := player.Body.Position().X
	if x1 <= 2 {
		t.Fatalf("expected x to increase after 1 step, got %f", x1)
	}

	for i := 0; i < 4; i++ {
		w.Step()
	}
	if w.Tick() != 5 {
		t.Fatalf("tick after 5 steps = %d, want 5", w.Tick())
	}
	x2 := player.Body.Position().X
	if x2 <= x1 {
		t.Fatalf("expected x to keep increasing: x1=%f x2=%f", x1, x2)
	}
}

func TestStepIgnoresStaticBodies(t *testing.T) {
	w := newTestWorld()
	block := &Object{Tag: "block", Body: NewBody(StaticBody, Vec2{X: 5, Y: 0}), Size: Vec2{X: 1, Y: 1}}
	w.Add(block)

	block.Body.ApplyImpulse(Vec2{X: 10})
	w.Step()

	if got := block.Body.Position(); got != (Vec2{X: 5, Y: 0}) {
		t.Fatalf("static body moved to %+v", got)
	}
}

func TestGravityClampsAtGroundPlane(t *testing.T) {
	w := newTestWorld()
	player := addTestPlayer(w)
	player.Body.Teleport(Vec2{X: 2, Y: 5})

	// Fall for two seconds of simulated time.
	w.StepFor(2 * time.Second)

	pos := player.Body.Position()
	if pos.Y != w.Params().GroundY {
		t.Fatalf("body rests at y=%f, want ground y=%f", pos.Y, w.Params().GroundY)
	}
	if player.Body.Velocity().Y != 0 {
		t.Fatalf("grounded body keeps falling velocity %f", player.Body.Velocity().Y)
	}
}

func TestFindReturnsNilForMissingTag(t *testing.T) {
	w := newTestWorld()
	if obj := w.Find(TagPlayer); obj != nil {
		t.Fatalf("Find on empty scene = %+v, want nil", obj)
	}

	player := addTestPlayer(w)
	if obj := w.Find(TagPlayer); obj != player {
		t.Fatal("Find did not return the registered player")
	}
}

// recordingTrigger captures trigger dispatch for overlap tests.
type recordingTrigger struct {
	enters int
	stays  int
	exits  int
}

func (r *recordingTrigger) OnTriggerEnter(obj *Object)            { r.enters++ }
func (r *recordingTrigger) OnTriggerStay(obj *Object, dt float64) { r.stays++ }
func (r *recordingTrigger) OnTriggerExit(obj *Object)             { r.exits++ }

func TestTriggerDispatchEnterStayExit(t *testing.T) {
	w := newTestWorld()
	player := addTestPlayer(w)

	rec := &recordingTrigger{}
	w.Add(&Object{
		Tag:     "zone",
		Body:    NewBody(StaticBody, Vec2{X: 10, Y: 0}),
		Size:    Vec2{X: 2, Y: 2},
		Trigger: rec,
	})

	// Outside: no events.
	w.Step()
	if rec.enters != 0 || rec.stays != 0 || rec.exits != 0 {
		t.Fatalf("events fired without overlap: %+v", rec)
	}

	// Teleport inside: enter on the first overlapping step, stay afterwards.
	player.Body.Teleport(Vec2{X: 10, Y: 0})
	player.Body.Halt()
	w.Step()
	if rec.enters != 1 {
		t.Fatalf("enters = %d, want 1", rec.enters)
	}
	w.Step()
	w.Step()
	if rec.enters != 1 || rec.stays != 2 {
		t.Fatalf("after staying: enters=%d stays=%d, want 1 and 2", rec.enters, rec.stays)
	}

	// Leave: exactly one exit.
	player.Body.Teleport(Vec2{X: 2, Y: 0})
	w.Step()
	if rec.exits != 1 {
		t.Fatalf("exits = %d, want 1", rec.exits)
	}
	w.Step()
	if rec.exits != 1 {
		t.Fatalf("exit fired again on a non-overlapping step: exits=%d", rec.exits)
	}
}

func TestStepForRoundsUp(t *testing.T) {
	w := newTestWorld()
	// 25ms at 60Hz is 1.5 steps; a full interval must be covered.
	w.StepFor(25 * time.Millisecond)
	if w.Tick() != 2 {
		t.Fatalf("StepFor(25ms) took %d steps, want 2", w.Tick())
	}
}
