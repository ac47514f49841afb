// Package math provides vector and matrix types shared by generation, camera and picking code.
package math

import "math"

// Vec2 is a 2D vector. Pointer coordinates use it in normalized device space.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns v + other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Scale returns v * scalar.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Dot returns the dot product.
func (v Vec2) Dot(other Vec2) float64 {
	return v.X*other.X + v.Y*other.Y
}

// Length returns the magnitude.
func (v Vec2) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalize returns a unit vector.
func (v Vec2) Normalize() Vec2 {
	l := v.Length()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Distance returns the distance to another point.
func (v Vec2) Distance(other Vec2) float64 {
	return v.Sub(other).Length()
}

// ScreenToNDC maps a pixel position inside a viewport to normalized device
// coordinates: x grows right in [-1, 1], y grows up in [-1, 1].
func ScreenToNDC(clientX, clientY, viewportW, viewportH float64) Vec2 {
	if viewportW <= 0 || viewportH <= 0 {
		return Vec2{}
	}
	return Vec2{
		X: (clientX/viewportW)*2 - 1,
		Y: -(clientY/viewportH)*2 + 1,
	}
}
