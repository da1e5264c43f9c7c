// Package ray implements grid traversal: a ray that grows from one grid line crossing to the next.
package ray

import (
	"math"

	"github.com/samdwyer/raycaster/internal/geometry"
)

const (
	// degenerate is the magnitude below which cos or sin is treated as zero.
	// At the cardinal angles one of the two crossings never happens.
	degenerate = 1e-12

	// cornerSnap is how close the companion coordinate must be to an integer to be
	// treated as crossing both lines at once.
	cornerSnap = 1e-9
)

// Ray travels from Start in the direction of Angle and currently ends at End.
type Ray struct {
	Start  geometry.Point
	End    geometry.Point
	Angle  geometry.Angle
	Length float64 // Euclidean distance from Start to End
}

// New creates a ray of zero length at start.
func New(start geometry.Point, angle geometry.Angle) Ray {
	return Ray{Start: start, End: start, Angle: angle}
}

// withEnd returns a copy of the ray ending at end.
func (r Ray) withEnd(end geometry.Point) Ray {
	return Ray{
		Start:  r.Start,
		End:    end,
		Angle:  r.Angle,
		Length: r.Start.DistanceTo(end),
	}
}

// Grow returns the ray extended to the nearest crossing with a grid line parallel to
// either axis. The new end lies exactly on an integer along at least one axis.
func (r Ray) Grow() Ray {
	nextX, okX := r.growToNextLine(geometry.AxisX)
	nextY, okY := r.growToNextLine(geometry.AxisY)

	switch {
	case okX && (!okY || nextX.Length < nextY.Length):
		return nextX
	case okY:
		return nextY
	default:
		// Unreachable for real angles: cos and sin cannot both vanish.
		return r
	}
}

// growToNextLine extends the ray to the next grid line x = n (AxisX) or y = n (AxisY).
// It reports false when the ray runs parallel to those lines.
func (r Ray) growToNextLine(axis geometry.Axis) (Ray, bool) {
	cos, sin := math.Cos(r.Angle), math.Sin(r.Angle)
	along, across := cos, sin
	if axis == geometry.AxisY {
		along, across = sin, cos
	}
	if math.Abs(along) < degenerate {
		return r, false
	}

	position := r.End.Component(axis)
	line := nextGridLine(position, geometry.DirectionFromAngle(r.Angle, axis))
	delta := line - position
	// Slope of the companion coordinate: tan for x lines, 1/tan for y lines.
	companion := delta * across / along

	if axis == geometry.AxisX {
		return r.withEnd(geometry.Point{X: line, Y: snap(r.End.Y + companion)}), true
	}
	return r.withEnd(geometry.Point{X: snap(r.End.X + companion), Y: line}), true
}

// snap rounds a coordinate lying within cornerSnap of a grid line onto it, so a ray
// passing through a corner does not take a second, vanishing step.
func snap(v float64) float64 {
	if n := math.Round(v); math.Abs(v-n) < cornerSnap {
		return n
	}
	return v
}

// nextGridLine returns the next integer line from position in the given direction, so the
// signed distance to it is floor(p)+1-p when increasing and ceil(p)-1-p when decreasing.
// A position already on a line moves a full unit.
func nextGridLine(position float64, direction geometry.Direction) float64 {
	if direction == geometry.Increasing {
		return math.Floor(position) + 1
	}
	return math.Ceil(position) - 1
}
