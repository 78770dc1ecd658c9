// Package model defines the data shapes the toolpath planner and code
// emitter operate on: the input Project and its nested configuration, and
// the artifacts derived from it as generation proceeds.
package model

import "math"

// Point2D is a 2D coordinate in the project's single linear unit.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Sub returns p - q.
func (p Point2D) Sub(q Point2D) Point2D {
	return Point2D{X: p.X - q.X, Y: p.Y - q.Y}
}

// Add returns p + q.
func (p Point2D) Add(q Point2D) Point2D {
	return Point2D{X: p.X + q.X, Y: p.Y + q.Y}
}

// Scale returns p scaled by k.
func (p Point2D) Scale(k float64) Point2D {
	return Point2D{X: p.X * k, Y: p.Y * k}
}

// Dist returns the Euclidean distance between p and q.
func (p Point2D) Dist(q Point2D) float64 {
	dx, dy := p.X-q.X, p.Y-q.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Near reports whether p and q are within tol of each other.
func (p Point2D) Near(q Point2D, tol float64) bool {
	return p.Dist(q) <= tol
}

// UserAngle is an angle in the project's approach-angle convention
// (0 = +Y/top, 90 = +X/right, clockwise increasing, degrees). Radians
// converts it to a standard math-convention angle in radians (0 = +X,
// counter-clockwise increasing).
//
// user_to_math(alpha) = pi/2 - alpha*pi/180
type UserAngle float64

// Radians returns the equivalent standard math-convention angle.
func (a UserAngle) Radians() float64 {
	return math.Pi/2 - float64(a)*math.Pi/180
}
