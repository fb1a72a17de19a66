package algorithm_manager

import (
	"github.com/ecopia-map/point_octree/internal/converters"
	"github.com/ecopia-map/point_octree/internal/octree"
)

type AlgorithmManager interface {
	GetElevationCorrectionAlgorithm() converters.ElevationCorrector
	GetTreeAlgorithm() (octree.ITree, error)
	// Returns nil when the input points are already in the tree reference system
	GetCoordinateConverterAlgorithm() (converters.CoordinateConverter, error)
}
