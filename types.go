package vscroll

// Vec2 represents a 2D vector for positions and sizes.
type Vec2 struct {
	X, Y float32
}

// Add returns the sum of two vectors.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{X: v.X + other.X, Y: v.Y + other.Y}
}

// Sub returns the difference of two vectors.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{X: v.X - other.X, Y: v.Y - other.Y}
}

// Rect represents a rectangle with position and size, in virtual content
// coordinates.
type Rect struct {
	X, Y float32 // Top-left position
	W, H float32 // Width and height
}

// Contains returns true if the point is inside the rectangle, with both
// edges inclusive. Point queries treat an item's far edge as part of the
// item, matching hit-testing against laid-out boxes.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// Intersects returns true if two rectangles overlap. Edges are half-open:
// two rectangles that merely touch do not intersect.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.W && r.X+r.W > other.X &&
		r.Y < other.Y+other.H && r.Y+r.H > other.Y
}

// MaxPoint returns the bottom-right corner of the rectangle.
func (r Rect) MaxPoint() Vec2 {
	return Vec2{X: r.X + r.W, Y: r.Y + r.H}
}

// clampf clamps a float32 value to a range.
func clampf(v, minVal, maxVal float32) float32 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// maxf returns the maximum of two float32 values.
func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// minf returns the minimum of two float32 values.
func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
