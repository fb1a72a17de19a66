package io

import (
	"github.com/ecopia-map/point_octree/internal/data"
	"github.com/ecopia-map/point_octree/internal/indexer"
)

// Contains a single operation to apply to the tree, along with where its point came from
type WorkUnit struct {
	Operation indexer.Operation
	Point     data.SpatialPoint
	Source    string
	Line      int
}
