package converters

import (
	"github.com/ecopia-map/point_octree/internal/data"
)

// CoordinateConverter moves points from the reference system of the input files to the one of the tree
type CoordinateConverter interface {
	ConvertPoint(point data.SpatialPoint) (data.SpatialPoint, error)
	Cleanup()
}

type ElevationCorrector interface {
	CorrectElevation(x, y, z float64) float64
}
