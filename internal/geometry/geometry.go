// Package geometry provides the planar primitives used for posture analysis.
package geometry

import "math"

// Point represents a 2D location in frame pixel space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// AngleDeg returns the angle in degrees at the vertex mid between the rays
// mid→first and mid→last. The result is always in [0, 180]. Coincident
// points produce atan2(0, 0) = 0, so the result stays finite.
func AngleDeg(first, mid, last Point) float64 {
	rad := math.Atan2(last.Y-mid.Y, last.X-mid.X) -
		math.Atan2(first.Y-mid.Y, first.X-mid.X)

	deg := math.Abs(rad * 180 / math.Pi)
	if deg > 180 {
		deg = 360 - deg
	}
	return deg
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b Point) Point {
	return Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}
