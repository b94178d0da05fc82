// Package core provides fundamental types and utilities for the breakout platform.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

// Arena is the fixed-size rectangular play area in logical units.
type Arena struct {
	Width  float64
	Height float64
}

// NewArena creates an arena with the given dimensions.
func NewArena(width, height float64) Arena {
	return Arena{Width: width, Height: height}
}

// ClampToWidth restricts a horizontal coordinate to [0, Width-margin].
// The margin lets an entity's right edge, not its origin, respect the wall.
func (a Arena) ClampToWidth(value, margin float64) float64 {
	return Clamp(value, 0, a.Width-margin)
}

// ClampToHeight restricts a vertical coordinate to [margin, Height-margin].
func (a Arena) ClampToHeight(value, margin float64) float64 {
	return Clamp(value, margin, a.Height-margin)
}

// RectF is an axis-aligned box in arena units used for hit tests.
type RectF struct {
	X, Y float64 // Top-left corner position
	W, H float64 // Width and height
}

// NewRectF creates a new rectangle with the given position and dimensions.
func NewRectF(x, y, w, h float64) RectF {
	return RectF{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r RectF) Right() float64 {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r RectF) Bottom() float64 {
	return r.Y + r.H
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Both edges are inclusive.
func (r RectF) Contains(x, y float64) bool {
	return x >= r.X && x <= r.Right() && y >= r.Y && y <= r.Bottom()
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

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampInt restricts an integer to be within [min, max].
func ClampInt(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
