package geometry

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/ecopia-map/point_octree/internal/data"
)

// ErrInvalidBoundary is returned when a box has a min corner above its max corner on some axis
// or a non finite coordinate
var ErrInvalidBoundary = errors.New("invalid boundary")

// BoundingBox is an axis aligned cuboid. A box owns the half-open region [Min, Max) on every axis,
// so two boxes sharing a face never both contain a point lying on that face.
type BoundingBox struct {
	Min r3.Vector
	Max r3.Vector
}

// Builds a new BoundingBox from the given extents, validating them
func NewBoundingBox(xMin, xMax, yMin, yMax, zMin, zMax float64) (BoundingBox, error) {
	return NewBoundingBoxFromCorners(
		r3.Vector{X: xMin, Y: yMin, Z: zMin},
		r3.Vector{X: xMax, Y: yMax, Z: zMax},
	)
}

// Builds a new BoundingBox from its min and max corners, validating them
func NewBoundingBoxFromCorners(min, max r3.Vector) (BoundingBox, error) {
	box := BoundingBox{Min: min, Max: max}
	if err := box.Validate(); err != nil {
		return BoundingBox{}, err
	}
	return box, nil
}

// Builds the cube centered in center whose edges are size long
func NewCube(center r3.Vector, size float64) (BoundingBox, error) {
	half := r3.Vector{X: size / 2, Y: size / 2, Z: size / 2}
	return NewBoundingBoxFromCorners(center.Sub(half), center.Add(half))
}

// Returns the box for the given octant index of the parent box
func NewBoundingBoxFromParent(parent BoundingBox, octant uint8) BoundingBox {
	mid := parent.Midpoint()
	box := BoundingBox{Min: parent.Min, Max: mid}
	if octant&1 != 0 {
		box.Min.X, box.Max.X = mid.X, parent.Max.X
	}
	if octant&2 != 0 {
		box.Min.Y, box.Max.Y = mid.Y, parent.Max.Y
	}
	if octant&4 != 0 {
		box.Min.Z, box.Max.Z = mid.Z, parent.Max.Z
	}
	return box
}

// Validate checks that min <= max on every axis and that all coordinates are finite
func (b BoundingBox) Validate() error {
	axes := [3][2]float64{{b.Min.X, b.Max.X}, {b.Min.Y, b.Max.Y}, {b.Min.Z, b.Max.Z}}
	for i, axis := range axes {
		for _, c := range axis {
			if math.IsNaN(c) || math.IsInf(c, 0) {
				return errors.Wrapf(ErrInvalidBoundary, "non finite coordinate on axis %c", "xyz"[i])
			}
		}
		if axis[0] > axis[1] {
			return errors.Wrapf(ErrInvalidBoundary, "min %g above max %g on axis %c", axis[0], axis[1], "xyz"[i])
		}
	}
	return nil
}

// Contains reports whether the point lies in [Min, Max) on all three axes
func (b BoundingBox) Contains(p data.SpatialPoint) bool {
	return b.Min.X <= p.X && p.X < b.Max.X &&
		b.Min.Y <= p.Y && p.Y < b.Max.Y &&
		b.Min.Z <= p.Z && p.Z < b.Max.Z
}

// ContainsWithin is Contains on the box grown by tolerance on every face
func (b BoundingBox) ContainsWithin(p data.SpatialPoint, tolerance float64) bool {
	return b.Min.X-tolerance <= p.X && p.X < b.Max.X+tolerance &&
		b.Min.Y-tolerance <= p.Y && p.Y < b.Max.Y+tolerance &&
		b.Min.Z-tolerance <= p.Z && p.Z < b.Max.Z+tolerance
}

// Midpoint returns the average of min and max per axis
func (b BoundingBox) Midpoint() r3.Vector {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns the extent of the box along each axis
func (b BoundingBox) Size() r3.Vector {
	return b.Max.Sub(b.Min)
}

// OctantIndex returns the octant of the box holding the point. Bit 0 selects the upper x half,
// bit 1 the upper y half and bit 2 the upper z half; a coordinate equal to the midpoint is in the upper half.
// The result agrees with OctantBounds for every point accepted by Contains.
func (b BoundingBox) OctantIndex(p data.SpatialPoint) uint8 {
	mid := b.Midpoint()
	var result uint8 = 0
	if p.X >= mid.X {
		result += 1
	}
	if p.Y >= mid.Y {
		result += 2
	}
	if p.Z >= mid.Z {
		result += 4
	}
	return result
}

// OctantBounds splits the box at its midpoint into 8 boxes, ordered as in OctantIndex
func (b BoundingBox) OctantBounds() [8]BoundingBox {
	var octants [8]BoundingBox
	for i := uint8(0); i < 8; i++ {
		octants[i] = NewBoundingBoxFromParent(b, i)
	}
	return octants
}

// GetAsArray returns the box as [xmin, ymin, zmin, xmax, ymax, zmax]
func (b BoundingBox) GetAsArray() []float64 {
	return []float64{b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z}
}

func (b BoundingBox) String() string {
	return fmt.Sprintf("(%g, %g, %g) to (%g, %g, %g)", b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z)
}
