package game

// BodyKind distinguishes bodies the physics step integrates from bodies that
// never move.
type BodyKind int

const (
	// StaticBody is a body that is never integrated (platforms, triggers).
	StaticBody BodyKind = iota
	// DynamicBody is a body subject to velocity integration and gravity.
	DynamicBody
)

// String returns the string representation of BodyKind.
func (k BodyKind) String() string {
	switch k {
	case StaticBody:
		return "static"
	case DynamicBody:
		return "dynamic"
	default:
		return "unknown"
	}
}

// Body holds the kinematic state of one object. Bodies are owned by the world
// and mutated only from the single simulation thread.
type Body struct {
	kind BodyKind
	pos  Vec2
	vel  Vec2
}

// NewBody creates a body of the given kind at the given position.
func NewBody(kind BodyKind, pos Vec2) *Body {
	return &Body{kind: kind, pos: pos}
}

// Kind returns the body kind.
func (b *Body) Kind() BodyKind {
	return b.kind
}

// Position returns the body's current center position.
func (b *Body) Position() Vec2 {
	return b.pos
}

// Velocity returns the body's current velocity.
func (b *Body) Velocity() Vec2 {
	return b.vel
}

// Teleport moves the body to a new position without integrating. Velocity is
// preserved; callers that want a clean placement should also call Halt.
func (b *Body) Teleport(pos Vec2) {
	b.pos = pos
}

// Halt zeroes the body's velocity.
func (b *Body) Halt() {
	b.vel = Vec2{}
}

// ApplyImpulse adds the given velocity change to the body. Static bodies
// ignore impulses.
func (b *Body) ApplyImpulse(dv Vec2) {
	if b.kind != DynamicBody {
		return
	}
	b.vel = b.vel.Add(dv)
}

// integrate advances the body by dt seconds under gravity, clamping fall
// speed and resting the body on the ground plane.
func (b *Body) integrate(dt, gravity, maxFallSpeed, groundY float64) {
	if b.kind != DynamicBody {
		return
	}

	b.vel.Y -= gravity * dt
	if b.vel.Y < -maxFallSpeed {
		b.vel.Y = -maxFallSpeed
	}

	b.pos = b.pos.Add(b.vel.Scale(dt))

	// Ground plane: dynamic bodies rest on it rather than falling through.
	if b.pos.Y < groundY {
		b.pos.Y = groundY
		if b.vel.Y < 0 {
			b.vel.Y = 0
		}
	}
}
