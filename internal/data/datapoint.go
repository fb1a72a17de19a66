package data

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
)

// Tolerance is the per-axis distance under which two coordinates are considered the same
const Tolerance = 1e-6

// SpatialPoint contains the X,Y,Z coordinates of a point stored in the octree.
// It is a value type: points are copied around and never modified after creation.
type SpatialPoint struct {
	X float64
	Y float64
	Z float64
}

// Builds a new SpatialPoint from the given coordinates
func NewSpatialPoint(X, Y, Z float64) SpatialPoint {
	return SpatialPoint{
		X: X,
		Y: Y,
		Z: Z,
	}
}

// Builds a new SpatialPoint from a r3 vector
func NewSpatialPointFromVector(v r3.Vector) SpatialPoint {
	return SpatialPoint{X: v.X, Y: v.Y, Z: v.Z}
}

// Equals reports whether every coordinate of the two points differs by less than Tolerance
func (p SpatialPoint) Equals(other SpatialPoint) bool {
	return math.Abs(p.X-other.X) < Tolerance &&
		math.Abs(p.Y-other.Y) < Tolerance &&
		math.Abs(p.Z-other.Z) < Tolerance
}

// IsFinite is false when any coordinate is NaN or infinite
func (p SpatialPoint) IsFinite() bool {
	for _, c := range [3]float64{p.X, p.Y, p.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

func (p SpatialPoint) Vector() r3.Vector {
	return r3.Vector{X: p.X, Y: p.Y, Z: p.Z}
}

func (p SpatialPoint) String() string {
	return fmt.Sprintf("(%g, %g, %g)", p.X, p.Y, p.Z)
}

// IndexOf returns the position of the first point of the slice equal to p, or -1
func IndexOf(points []SpatialPoint, p SpatialPoint) int {
	for i := range points {
		if points[i].Equals(p) {
			return i
		}
	}
	return -1
}
