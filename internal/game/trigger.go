package game

// Rect is an axis-aligned bounding box.
type Rect struct {
	Min Vec2
	Max Vec2
}

// RectAt returns a rect of the given size centered on pos.
func RectAt(pos, size Vec2) Rect {
	half := size.Scale(0.5)
	return Rect{
		Min: Vec2{X: pos.X - half.X, Y: pos.Y - half.Y},
		Max: Vec2{X: pos.X + half.X, Y: pos.Y + half.Y},
	}
}

// Contains reports whether p lies inside the rect.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Overlaps reports whether two rects intersect.
func (r Rect) Overlaps(o Rect) bool {
	return r.Min.X <= o.Max.X && r.Max.X >= o.Min.X &&
		r.Min.Y <= o.Max.Y && r.Max.Y >= o.Min.Y
}

// TriggerHandler receives overlap events for a trigger-shaped object. The
// world dispatches Enter on the step an object first overlaps the region,
// Stay on every subsequent overlapping step, and Exit on the step the
// overlap ends.
type TriggerHandler interface {
	OnTriggerEnter(obj *Object)
	OnTriggerStay(obj *Object, dt float64)
	OnTriggerExit(obj *Object)
}
