// Package core provides fundamental types and utilities shared by the
// simulation and its collaborators. It has no external dependencies (in
// particular no Bubble Tea) so the simulation stays pure and testable.
package core

import "math"

// Vec2 is a 2-D vector in world units. Y points up.
type Vec2 struct {
	X, Y float64
}

// V is shorthand for constructing a Vec2.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v * s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Len2 returns the squared length of v.
func (v Vec2) Len2() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Dist returns the plane distance between v and o.
// No wrap-around is applied.
func (v Vec2) Dist(o Vec2) float64 {
	return v.Sub(o).Len()
}

// FromHeading returns a vector of the given length pointing along a heading
// in degrees (0 = +X, counter-clockwise).
func FromHeading(deg, length float64) Vec2 {
	rad := deg * math.Pi / 180
	return Vec2{X: length * math.Cos(rad), Y: length * math.Sin(rad)}
}

// Wrap maps x into [0, period). A non-positive period returns x unchanged.
func Wrap(x, period float64) float64 {
	if period <= 0 {
		return x
	}
	r := math.Mod(x, period)
	if r < 0 {
		r += period
	}
	// math.Mod can return period for tiny negative inputs after the add.
	if r >= period {
		r = 0
	}
	return r
}

// WrapIndex maps an integer index into [0, n).
func WrapIndex(i, n int) int {
	if n <= 0 {
		return 0
	}
	r := i % n
	if r < 0 {
		r += n
	}
	return r
}

// WrapHeading maps an angle in degrees into [0, 360).
func WrapHeading(deg float64) float64 {
	return Wrap(deg, 360)
}

// SignedHeading maps an angle in degrees into [-180, 180).
func SignedHeading(deg float64) float64 {
	return WrapHeading(deg+180) - 180
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Rect represents an axis-aligned box in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}
