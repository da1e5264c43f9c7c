// Package geometry provides the continuous-space primitives used by the map and the ray caster.
package geometry

import "math"

// Angle is measured in radians relative to the X axis.
// Angles are never normalised; they are only consumed through periodic trig functions.
type Angle = float64

// Axis identifies one of the two axes of the grid.
type Axis int

const (
	// AxisX is the horizontal axis.
	AxisX Axis = iota
	// AxisY is the vertical axis.
	AxisY
)

// String returns a human-readable axis name.
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	default:
		return "unknown"
	}
}

// Direction describes whether a line moves towards increasing or decreasing values on an axis.
type Direction int

const (
	// Increasing means the coordinate grows along the line.
	Increasing Direction = iota
	// Decreasing means the coordinate shrinks along the line (or stays constant).
	Decreasing
)

// String returns a human-readable direction name.
func (d Direction) String() string {
	switch d {
	case Increasing:
		return "increasing"
	case Decreasing:
		return "decreasing"
	default:
		return "unknown"
	}
}

// DirectionFromAngle determines whether a line with the given angle yields increasing
// or decreasing values on the given axis.
func DirectionFromAngle(angle Angle, axis Axis) Direction {
	var v float64
	if axis == AxisX {
		v = math.Cos(angle)
	} else {
		v = math.Sin(angle)
	}
	if v > 0 {
		return Increasing
	}
	return Decreasing
}

// Point is a position in grid units.
type Point struct {
	X, Y float64
}

// Component returns the coordinate of the point on the given axis.
func (p Point) Component(axis Axis) float64 {
	if axis == AxisX {
		return p.X
	}
	return p.Y
}

// Advance returns the point reached by moving distance units in the given direction.
func (p Point) Advance(distance float64, angle Angle) Point {
	return Point{
		X: p.X + distance*math.Cos(angle),
		Y: p.Y + distance*math.Sin(angle),
	}
}

// DistanceTo returns the Euclidean distance between two points.
func (p Point) DistanceTo(other Point) float64 {
	return math.Hypot(other.X-p.X, other.Y-p.Y)
}

// ClosestGridLineAxis returns the axis whose integer grid line lies nearest to the point.
// AxisX means the point sits on (or next to) a line x = n.
func (p Point) ClosestGridLineAxis() Axis {
	if math.Abs(p.X-math.Round(p.X)) < math.Abs(p.Y-math.Round(p.Y)) {
		return AxisX
	}
	return AxisY
}
