package octree

import (
	"io"
	"math/rand"

	"github.com/ecopia-map/point_octree/internal/data"
	"github.com/ecopia-map/point_octree/internal/geometry"
)

// Visitor receives every node of a depth first walk. points is a copy of the points resident
// in the node and is empty for divided nodes.
type Visitor func(boundingBox geometry.BoundingBox, points []data.SpatialPoint, divided bool)

type ITree interface {
	// Adds a point to the tree, returns false if it lies outside the tree boundary
	Insert(point data.SpatialPoint) bool
	// Adds a point only if no equal point is already stored
	InsertUnique(point data.SpatialPoint) bool
	// Adds n uniformly distributed points drawn inside the root boundary
	InsertRandom(rnd *rand.Rand, n int) []data.SpatialPoint
	Search(point data.SpatialPoint) bool
	Delete(point data.SpatialPoint) bool
	Traverse(visitor Visitor)
	TraverseLeaves(visitor Visitor)
	Dump(w io.Writer) error
	Stats() Stats
	GetRootNode() INode
	Size() int
	Clear()
}

type INode interface {
	GetBoundingBox() geometry.BoundingBox
	GetPoints() []data.SpatialPoint
	GetChildren() [8]INode
	Contains(point data.SpatialPoint) bool
	ChildIndex(point data.SpatialPoint) uint8
	IsLeaf() bool
	IsDivided() bool
	Capacity() int
	Depth() int
	NumberOfPoints() int
	TotalNumberOfPoints() int
}

// Stats summarizes the shape of a tree
type Stats struct {
	Nodes        int `json:"nodes"`
	Leaves       int `json:"leaves"`
	DividedNodes int `json:"divided_nodes"`
	MaxDepth     int `json:"max_depth"`
	Points       int `json:"points"`
}
