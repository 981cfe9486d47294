package game

import "math"

// Vec2 is a 2D vector used for positions, velocities, and sizes.
type Vec2 struct {
	X float64
	Y float64
}

// Add returns the component-wise sum of v and o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Scale returns v multiplied by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Length returns the euclidean magnitude of v.
func (v Vec2) Length() float64 {
	return math.Hypot(v.X, v.Y)
}
