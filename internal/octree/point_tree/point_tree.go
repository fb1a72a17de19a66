package point_tree

import (
	"fmt"
	"io"
	"math/rand"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/ecopia-map/point_octree/internal/data"
	"github.com/ecopia-map/point_octree/internal/geometry"
	"github.com/ecopia-map/point_octree/internal/octree"
)

// Represents an octree of points. It owns the root node and keeps track of the number of
// stored points. PointTree does no locking: callers sharing a tree between goroutines must
// serialize every call themselves.
type PointTree struct {
	rootNode    *PointNode
	boundingBox geometry.BoundingBox
	capacity    int
	maxDepth    int
	size        int
}

// Builds an empty PointTree covering the given box. Fails if the box is malformed or the
// capacity is lower than one. Boxes are half open, so a box with zero extent on some axis is
// accepted but contains no point: such a tree stays empty.
func NewPointTree(boundingBox geometry.BoundingBox, capacity int, maxDepth int) (*PointTree, error) {
	root, err := NewPointNode(boundingBox, capacity, maxDepth)
	if err != nil {
		return nil, errors.Wrap(err, "cannot create octree")
	}

	size := boundingBox.Size()
	if size.X == 0 || size.Y == 0 || size.Z == 0 {
		glog.Warningf("octree boundary [%s] has zero extent, no point can be inserted", boundingBox)
	}

	glog.Infof("octree created. boundary:[%s] capacity:[%d] max_depth:[%d]", boundingBox, capacity, root.maxDepth)

	return &PointTree{
		rootNode:    root,
		boundingBox: boundingBox,
		capacity:    capacity,
		maxDepth:    root.maxDepth,
	}, nil
}

func (tree *PointTree) GetRootNode() octree.INode {
	return tree.rootNode
}

func (tree *PointTree) Size() int {
	return tree.size
}

// Clear drops every point and resets the tree to a single empty leaf
func (tree *PointTree) Clear() {
	tree.rootNode = newLeafNode(tree.boundingBox, tree.capacity, 0, tree.maxDepth)
	tree.size = 0
}

func (tree *PointTree) Insert(point data.SpatialPoint) bool {
	if !tree.rootNode.Insert(point) {
		return false
	}
	tree.size++
	return true
}

// InsertUnique searches the point before inserting it, so that no two equal points are ever stored
func (tree *PointTree) InsertUnique(point data.SpatialPoint) bool {
	if tree.rootNode.Search(point) {
		glog.V(1).Infof("point %s already stored, skipping", point)
		return false
	}
	return tree.Insert(point)
}

// InsertRandom draws n points uniformly inside the root boundary and inserts them, returning
// the ones actually stored
func (tree *PointTree) InsertRandom(rnd *rand.Rand, n int) []data.SpatialPoint {
	inserted := make([]data.SpatialPoint, 0, n)
	size := tree.boundingBox.Size()
	for i := 0; i < n; i++ {
		point := data.NewSpatialPoint(
			tree.boundingBox.Min.X+rnd.Float64()*size.X,
			tree.boundingBox.Min.Y+rnd.Float64()*size.Y,
			tree.boundingBox.Min.Z+rnd.Float64()*size.Z,
		)
		if tree.Insert(point) {
			inserted = append(inserted, point)
		}
	}
	return inserted
}

func (tree *PointTree) Search(point data.SpatialPoint) bool {
	return tree.rootNode.Search(point)
}

func (tree *PointTree) Delete(point data.SpatialPoint) bool {
	if !tree.rootNode.Delete(point) {
		return false
	}
	tree.size--
	return true
}

// Traverse visits every node depth first
func (tree *PointTree) Traverse(visitor octree.Visitor) {
	tree.rootNode.Traverse(visitor)
}

// TraverseLeaves visits only the undivided nodes, which is all a renderer needs to draw boxes and points
func (tree *PointTree) TraverseLeaves(visitor octree.Visitor) {
	tree.rootNode.Traverse(func(boundingBox geometry.BoundingBox, points []data.SpatialPoint, divided bool) {
		if !divided {
			visitor(boundingBox, points, divided)
		}
	})
}

// Stats walks the tree counting nodes, leaves, points and the deepest level
func (tree *PointTree) Stats() octree.Stats {
	stats := octree.Stats{}
	tree.rootNode.walk(func(node *PointNode) {
		stats.Nodes++
		if node.IsLeaf() {
			stats.Leaves++
			stats.Points += node.NumberOfPoints()
		} else {
			stats.DividedNodes++
		}
		if node.depth > stats.MaxDepth {
			stats.MaxDepth = node.depth
		}
	})
	return stats
}

// Dump writes a compact description of every node, one line per node indented by depth,
// followed by the points of non empty leaves
func (tree *PointTree) Dump(w io.Writer) error {
	var err error
	tree.rootNode.walk(func(node *PointNode) {
		if err != nil {
			return
		}
		indent := strings.Repeat(" ", node.depth*4)
		_, err = fmt.Fprintf(w, "%sLevel %d: %d points in %s\n", indent, node.depth, node.NumberOfPoints(), node.boundingBox)
		if err != nil || node.NumberOfPoints() == 0 {
			return
		}

		points := node.GetPoints()
		values := make([]string, len(points))
		for i, p := range points {
			values[i] = p.String()
		}
		_, err = fmt.Fprintf(w, "%sPoints: %s\n", indent, strings.Join(values, ", "))
	})
	return errors.Wrap(err, "cannot dump octree")
}
