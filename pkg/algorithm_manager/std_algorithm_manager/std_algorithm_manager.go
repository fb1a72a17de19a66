package std_algorithm_manager

import (
	"github.com/ecopia-map/point_octree/internal/converters"
	"github.com/ecopia-map/point_octree/internal/converters/elevation/offset_elevation_corrector"
	"github.com/ecopia-map/point_octree/internal/converters/proj4_coordinate_converter"
	"github.com/ecopia-map/point_octree/internal/indexer"
	"github.com/ecopia-map/point_octree/internal/octree"
	"github.com/ecopia-map/point_octree/internal/octree/point_tree"
	"github.com/ecopia-map/point_octree/pkg/algorithm_manager"
)

type StandardAlgorithmManager struct {
	options *indexer.IndexerOptions
}

func NewAlgorithmManager(opts *indexer.IndexerOptions) algorithm_manager.AlgorithmManager {
	return &StandardAlgorithmManager{
		options: opts,
	}
}

func (am *StandardAlgorithmManager) GetElevationCorrectionAlgorithm() converters.ElevationCorrector {
	return offset_elevation_corrector.NewOffsetElevationCorrector(am.options.ZOffset)
}

func (am *StandardAlgorithmManager) GetTreeAlgorithm() (octree.ITree, error) {
	tree, err := point_tree.NewPointTree(am.options.BoundingBox, am.options.Capacity, am.options.MaxDepth)
	if err != nil {
		return nil, err
	}
	return tree, nil
}

func (am *StandardAlgorithmManager) GetCoordinateConverterAlgorithm() (converters.CoordinateConverter, error) {
	if !am.options.ConvertsCoordinates() {
		return nil, nil
	}
	return proj4_coordinate_converter.NewProj4CoordinateConverter(am.options.SourceCrs, am.options.TargetCrs)
}
