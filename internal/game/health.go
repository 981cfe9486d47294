package game

// Health tracks hit points and the death flag for a damageable object.
type Health struct {
	max     int
	current int
	dead    bool
}

// NewHealth creates a health pool at full hit points.
func NewHealth(max int) *Health {
	return &Health{max: max, current: max}
}

// Alive reports whether the owner has not died.
func (h *Health) Alive() bool {
	return !h.dead
}

// Damage subtracts amount from the current hit points, clamping at zero and
// flipping the death flag when the pool empties. Damage to a dead owner is
// ignored.
func (h *Health) Damage(amount int) {
	if h.dead || amount <= 0 {
		return
	}
	h.current -= amount
	if h.current <= 0 {
		h.current = 0
		h.dead = true
	}
}

// Probe returns a test-only window into the health internals. Production
// code must not call through it; it exists so a playtest harness can set up
// and tear down health state without reflection.
func (h *Health) Probe() HealthProbe {
	return HealthProbe{h: h}
}

// HealthProbe exposes read/write access to health internals for test
// instrumentation.
type HealthProbe struct {
	h *Health
}

// Health returns the current hit points.
func (p HealthProbe) Health() int {
	return p.h.current
}

// MaxHealth returns the maximum hit points.
func (p HealthProbe) MaxHealth() int {
	return p.h.max
}

// SetHealth overwrites the current hit points, clamped to [0, max]. Setting
// a positive value does not clear the death flag; use Revive for that.
func (p HealthProbe) SetHealth(v int) {
	if v < 0 {
		v = 0
	}
	if v > p.h.max {
		v = p.h.max
	}
	p.h.current = v
}

// Revive restores full hit points and clears the death flag.
func (p HealthProbe) Revive() {
	p.h.current = p.h.max
	p.h.dead = false
}
