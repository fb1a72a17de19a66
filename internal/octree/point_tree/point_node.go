package point_tree

import (
	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/ecopia-map/point_octree/internal/data"
	"github.com/ecopia-map/point_octree/internal/geometry"
	"github.com/ecopia-map/point_octree/internal/octree"
)

// DefaultMaxDepth is the depth limit used when none is configured
const DefaultMaxDepth = 32

var (
	// ErrInvalidCapacity is returned when a node is built with a capacity lower than one
	ErrInvalidCapacity = errors.New("invalid capacity")

	// ErrInvariantViolation marks a structural bug in the tree, it is only ever raised through a panic
	ErrInvariantViolation = errors.New("octree invariant violation")
)

// nodeState is either a *leafState or a *dividedState. A leaf owns its points and a divided node
// owns exactly eight children, so a node can never hold both.
type nodeState interface {
	isNodeState()
}

type leafState struct {
	points []data.SpatialPoint
}

type dividedState struct {
	children [8]*PointNode
}

func (*leafState) isNodeState()    {}
func (*dividedState) isNodeState() {}

// Models a node of the octree, which can either be a leaf holding up to capacity points or a
// divided node with eight children partitioning its bounding box.
type PointNode struct {
	boundingBox geometry.BoundingBox
	capacity    int
	depth       int
	maxDepth    int
	state       nodeState
}

// Instantiates a new empty leaf to be used as the root of a tree
func NewPointNode(boundingBox geometry.BoundingBox, capacity int, maxDepth int) (*PointNode, error) {
	if err := boundingBox.Validate(); err != nil {
		return nil, err
	}
	if capacity < 1 {
		return nil, errors.Wrapf(ErrInvalidCapacity, "capacity must be at least 1, got %d", capacity)
	}
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return newLeafNode(boundingBox, capacity, 0, maxDepth), nil
}

func newLeafNode(boundingBox geometry.BoundingBox, capacity int, depth int, maxDepth int) *PointNode {
	return &PointNode{
		boundingBox: boundingBox,
		capacity:    capacity,
		depth:       depth,
		maxDepth:    maxDepth,
		state:       &leafState{points: make([]data.SpatialPoint, 0, capacity)},
	}
}

func (n *PointNode) GetBoundingBox() geometry.BoundingBox {
	return n.boundingBox
}

func (n *PointNode) Capacity() int {
	return n.capacity
}

func (n *PointNode) Depth() int {
	return n.depth
}

func (n *PointNode) IsLeaf() bool {
	_, ok := n.state.(*leafState)
	return ok
}

func (n *PointNode) IsDivided() bool {
	return !n.IsLeaf()
}

// GetPoints returns a copy of the points stored in this node, always empty for divided nodes
func (n *PointNode) GetPoints() []data.SpatialPoint {
	leaf, ok := n.state.(*leafState)
	if !ok {
		return []data.SpatialPoint{}
	}
	points := make([]data.SpatialPoint, len(leaf.points))
	copy(points, leaf.points)
	return points
}

// GetChildren returns the eight children of a divided node. All entries are nil for a leaf.
func (n *PointNode) GetChildren() [8]octree.INode {
	var children [8]octree.INode
	if divided, ok := n.state.(*dividedState); ok {
		for i, child := range divided.children {
			children[i] = child
		}
	}
	return children
}

// NumberOfPoints returns the number of points stored directly in this node
func (n *PointNode) NumberOfPoints() int {
	if leaf, ok := n.state.(*leafState); ok {
		return len(leaf.points)
	}
	return 0
}

// TotalNumberOfPoints returns the number of points stored in this node and its descendants
func (n *PointNode) TotalNumberOfPoints() int {
	switch s := n.state.(type) {
	case *leafState:
		return len(s.points)
	case *dividedState:
		total := 0
		for _, child := range s.children {
			total += child.TotalNumberOfPoints()
		}
		return total
	}
	return 0
}

// Contains delegates to the node bounding box
func (n *PointNode) Contains(point data.SpatialPoint) bool {
	return n.boundingBox.Contains(point)
}

// ChildIndex returns the index of the octant that contains the given point within this node
func (n *PointNode) ChildIndex(point data.SpatialPoint) uint8 {
	return n.boundingBox.OctantIndex(point)
}

// Insert adds the point to the subtree if it lies within the node boundary. A full leaf is
// subdivided and its points re-homed in the children before routing the new point.
// Returns false, leaving the tree unchanged, when the point is out of bounds or when it
// would need a full leaf at the maximum depth to split.
func (n *PointNode) Insert(point data.SpatialPoint) bool {
	if !n.Contains(point) {
		return false
	}

	leaf, ok := n.state.(*leafState)
	if !ok {
		divided := n.state.(*dividedState)
		return divided.children[n.ChildIndex(point)].Insert(point)
	}

	if len(leaf.points) < n.capacity {
		leaf.points = append(leaf.points, point)
		return true
	}
	if n.depth >= n.maxDepth {
		glog.Warningf("depth limit %d reached at %s, point %s not inserted", n.maxDepth, n.boundingBox, point)
		return false
	}

	n.subdivide()
	divided := n.state.(*dividedState)
	if !divided.children[n.ChildIndex(point)].Insert(point) {
		// the children only hold the re-homed points, drop them and keep the original leaf
		n.state = leaf
		glog.V(2).Infof("reverted subdivision of node %s at depth %d", n.boundingBox, n.depth)
		return false
	}
	return true
}

// subdivide turns a leaf into a divided node with eight children inheriting its capacity,
// moving every resident point into the child owning it
func (n *PointNode) subdivide() {
	leaf, ok := n.state.(*leafState)
	if !ok {
		panic(errors.Wrapf(ErrInvariantViolation, "subdivide called on divided node %s", n.boundingBox))
	}

	divided := &dividedState{}
	for i, bbox := range n.boundingBox.OctantBounds() {
		divided.children[i] = newLeafNode(bbox, n.capacity, n.depth+1, n.maxDepth)
	}
	n.state = divided

	for _, p := range leaf.points {
		if !divided.children[n.ChildIndex(p)].Insert(p) {
			panic(errors.Wrapf(ErrInvariantViolation, "point %s lost while subdividing %s", p, n.boundingBox))
		}
	}

	glog.V(2).Infof("subdivided node %s at depth %d, re-homed %d points", n.boundingBox, n.depth, len(leaf.points))
}

// reaches reports whether a point equal to the given one may be stored in this subtree. Equal
// points can lie up to Tolerance apart, so on opposite sides of a face.
func (n *PointNode) reaches(point data.SpatialPoint) bool {
	return n.boundingBox.ContainsWithin(point, data.Tolerance)
}

// Search reports whether a point equal to the given one is stored in the subtree
func (n *PointNode) Search(point data.SpatialPoint) bool {
	if !n.reaches(point) {
		return false
	}

	switch s := n.state.(type) {
	case *leafState:
		return data.IndexOf(s.points, point) >= 0
	case *dividedState:
		for _, child := range s.children {
			if child.Search(point) {
				return true
			}
		}
	}
	return false
}

// Delete removes one point equal to the given one from the subtree, the first found in octant
// order. A divided node whose children all end up as empty leaves is collapsed back into a leaf.
func (n *PointNode) Delete(point data.SpatialPoint) bool {
	if !n.reaches(point) {
		return false
	}

	switch s := n.state.(type) {
	case *leafState:
		i := data.IndexOf(s.points, point)
		if i < 0 {
			return false
		}
		s.points = append(s.points[:i], s.points[i+1:]...)
		return true
	case *dividedState:
		for _, child := range s.children {
			if child.Delete(point) {
				n.tryMerge()
				return true
			}
		}
	}
	return false
}

// tryMerge collapses a divided node into a leaf when all of its children are empty leaves.
// Returns true if the node was collapsed.
func (n *PointNode) tryMerge() bool {
	divided, ok := n.state.(*dividedState)
	if !ok {
		panic(errors.Wrapf(ErrInvariantViolation, "merge called on leaf node %s", n.boundingBox))
	}

	residual := make([]data.SpatialPoint, 0, n.capacity)
	for i, child := range divided.children {
		if child == nil {
			panic(errors.Wrapf(ErrInvariantViolation, "divided node %s misses child %d", n.boundingBox, i))
		}
		leaf, isLeaf := child.state.(*leafState)
		if !isLeaf || len(leaf.points) > 0 {
			return false
		}
		residual = append(residual, leaf.points...)
	}

	n.state = &leafState{points: residual}
	glog.V(2).Infof("merged children of node %s at depth %d", n.boundingBox, n.depth)
	return true
}

// Traverse walks the subtree depth first, visiting a node before its children in octant order
func (n *PointNode) Traverse(visitor octree.Visitor) {
	n.walk(func(node *PointNode) {
		visitor(node.boundingBox, node.GetPoints(), node.IsDivided())
	})
}

func (n *PointNode) walk(fn func(node *PointNode)) {
	fn(n)
	if divided, ok := n.state.(*dividedState); ok {
		for _, child := range divided.children {
			child.walk(fn)
		}
	}
}
