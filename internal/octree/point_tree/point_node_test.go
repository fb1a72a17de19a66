package point_tree

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"

	"github.com/ecopia-map/point_octree/internal/data"
	"github.com/ecopia-map/point_octree/internal/geometry"
)

func newTestNode(t *testing.T, capacity int) *PointNode {
	t.Helper()
	box, err := geometry.NewBoundingBox(-5, 5, -5, 5, -5, 5)
	test.That(t, err, test.ShouldBeNil)
	node, err := NewPointNode(box, capacity, 0)
	test.That(t, err, test.ShouldBeNil)
	return node
}

func TestNewPointNode(t *testing.T) {
	t.Run("empty leaf", func(t *testing.T) {
		node := newTestNode(t, 2)
		test.That(t, node.IsLeaf(), test.ShouldBeTrue)
		test.That(t, node.IsDivided(), test.ShouldBeFalse)
		test.That(t, node.GetPoints(), test.ShouldBeEmpty)
		test.That(t, node.Capacity(), test.ShouldEqual, 2)
		test.That(t, node.Depth(), test.ShouldEqual, 0)
		test.That(t, node.maxDepth, test.ShouldEqual, DefaultMaxDepth)
		for _, child := range node.GetChildren() {
			test.That(t, child, test.ShouldBeNil)
		}
	})

	t.Run("invalid capacity", func(t *testing.T) {
		box, err := geometry.NewBoundingBox(0, 1, 0, 1, 0, 1)
		test.That(t, err, test.ShouldBeNil)

		_, err = NewPointNode(box, 0, 0)
		test.That(t, errors.Is(err, ErrInvalidCapacity), test.ShouldBeTrue)
		_, err = NewPointNode(box, -3, 0)
		test.That(t, errors.Is(err, ErrInvalidCapacity), test.ShouldBeTrue)
	})

	t.Run("invalid boundary", func(t *testing.T) {
		box := geometry.BoundingBox{}
		box.Min.X = 1
		_, err := NewPointNode(box, 2, 0)
		test.That(t, errors.Is(err, geometry.ErrInvalidBoundary), test.ShouldBeTrue)
	})
}

func TestChildIndex(t *testing.T) {
	node := newTestNode(t, 2)
	node.subdivide()

	children := node.GetChildren()
	points := []data.SpatialPoint{
		data.NewSpatialPoint(0, 0, 0),
		data.NewSpatialPoint(-5, -5, -5),
		data.NewSpatialPoint(-0.0001, 0, 4.9),
		data.NewSpatialPoint(3, -3, 0),
	}
	for _, p := range points {
		owners := 0
		for i, child := range children {
			if child.Contains(p) {
				owners++
				test.That(t, node.ChildIndex(p), test.ShouldEqual, uint8(i))
			}
		}
		test.That(t, owners, test.ShouldEqual, 1)
	}
}

func TestInsertWithinCapacity(t *testing.T) {
	node := newTestNode(t, 4)
	points := []data.SpatialPoint{
		data.NewSpatialPoint(1, 1, 1),
		data.NewSpatialPoint(-1, 2, -3),
		data.NewSpatialPoint(4, -4, 0),
		data.NewSpatialPoint(0, 0, 0),
	}

	for i, p := range points {
		test.That(t, node.Insert(p), test.ShouldBeTrue)
		test.That(t, node.IsLeaf(), test.ShouldBeTrue)
		test.That(t, node.NumberOfPoints(), test.ShouldEqual, i+1)
	}
	test.That(t, node.GetPoints(), test.ShouldResemble, points)
	validateNode(t, node, true)
}

func TestInsertDuplicateWithinTolerance(t *testing.T) {
	node := newTestNode(t, 2)

	test.That(t, node.Insert(data.NewSpatialPoint(1, 1, 1)), test.ShouldBeTrue)
	test.That(t, node.Search(data.NewSpatialPoint(1, 1, 1.0000001)), test.ShouldBeTrue)

	// insert itself does not deduplicate
	test.That(t, node.Insert(data.NewSpatialPoint(1, 1, 1.0000001)), test.ShouldBeTrue)
	test.That(t, node.NumberOfPoints(), test.ShouldEqual, 2)
	test.That(t, node.Search(data.NewSpatialPoint(1, 1, 1)), test.ShouldBeTrue)
}

func TestInsertSubdivides(t *testing.T) {
	node := newTestNode(t, 2)

	test.That(t, node.Insert(data.NewSpatialPoint(1, 1, 1)), test.ShouldBeTrue)
	test.That(t, node.Insert(data.NewSpatialPoint(2, 2, 2)), test.ShouldBeTrue)
	test.That(t, node.IsLeaf(), test.ShouldBeTrue)
	test.That(t, node.NumberOfPoints(), test.ShouldEqual, 2)

	test.That(t, node.Insert(data.NewSpatialPoint(3, 3, 3)), test.ShouldBeTrue)
	test.That(t, node.IsDivided(), test.ShouldBeTrue)
	test.That(t, node.NumberOfPoints(), test.ShouldEqual, 0)
	test.That(t, node.TotalNumberOfPoints(), test.ShouldEqual, 3)
	test.That(t, node.Search(data.NewSpatialPoint(2, 2, 2)), test.ShouldBeTrue)

	// all three points fall in the upper octant, which had to split again
	upper := node.GetChildren()[7].(*PointNode)
	test.That(t, upper.IsDivided(), test.ShouldBeTrue)
	test.That(t, upper.GetChildren()[0].GetPoints(), test.ShouldResemble, []data.SpatialPoint{
		data.NewSpatialPoint(1, 1, 1),
		data.NewSpatialPoint(2, 2, 2),
	})
	test.That(t, upper.GetChildren()[7].GetPoints(), test.ShouldResemble, []data.SpatialPoint{
		data.NewSpatialPoint(3, 3, 3),
	})
	validateNode(t, node, true)
}

func TestInsertRedistributesOnSubdivide(t *testing.T) {
	node := newTestNode(t, 2)
	a := data.NewSpatialPoint(1, 1, 1)
	b := data.NewSpatialPoint(-1, -1, -1)
	c := data.NewSpatialPoint(1, -1, 1)

	test.That(t, node.Insert(a), test.ShouldBeTrue)
	test.That(t, node.Insert(b), test.ShouldBeTrue)
	test.That(t, node.Insert(c), test.ShouldBeTrue)

	children := node.GetChildren()
	for i, child := range children {
		test.That(t, child.IsLeaf(), test.ShouldBeTrue)
		switch i {
		case 7:
			test.That(t, child.GetPoints(), test.ShouldResemble, []data.SpatialPoint{a})
		case 0:
			test.That(t, child.GetPoints(), test.ShouldResemble, []data.SpatialPoint{b})
		case 5:
			test.That(t, child.GetPoints(), test.ShouldResemble, []data.SpatialPoint{c})
		default:
			test.That(t, child.GetPoints(), test.ShouldBeEmpty)
		}
	}
	validateNode(t, node, true)
}

func TestInsertOutOfBounds(t *testing.T) {
	node := newTestNode(t, 2)
	test.That(t, node.Insert(data.NewSpatialPoint(1, 1, 1)), test.ShouldBeTrue)

	test.That(t, node.Insert(data.NewSpatialPoint(100, 100, 100)), test.ShouldBeFalse)
	test.That(t, node.Insert(data.NewSpatialPoint(5, 0, 0)), test.ShouldBeFalse)
	test.That(t, node.Search(data.NewSpatialPoint(100, 100, 100)), test.ShouldBeFalse)
	test.That(t, node.Delete(data.NewSpatialPoint(100, 100, 100)), test.ShouldBeFalse)

	test.That(t, node.IsLeaf(), test.ShouldBeTrue)
	test.That(t, node.GetPoints(), test.ShouldResemble, []data.SpatialPoint{data.NewSpatialPoint(1, 1, 1)})
}

func TestInsertDepthLimit(t *testing.T) {
	box, err := geometry.NewBoundingBox(0, 8, 0, 8, 0, 8)
	test.That(t, err, test.ShouldBeNil)
	node, err := NewPointNode(box, 1, 3)
	test.That(t, err, test.ShouldBeNil)

	p := data.NewSpatialPoint(1, 1, 1)
	test.That(t, node.Insert(p), test.ShouldBeTrue)
	before := collectNodes(node)

	// the subdivisions made on the way down are undone
	test.That(t, node.Insert(p), test.ShouldBeFalse)
	test.That(t, collectNodes(node), test.ShouldResemble, before)
	test.That(t, node.IsLeaf(), test.ShouldBeTrue)
	test.That(t, node.GetPoints(), test.ShouldResemble, []data.SpatialPoint{p})
	test.That(t, node.Search(p), test.ShouldBeTrue)

	test.That(t, node.Delete(p), test.ShouldBeTrue)
	test.That(t, node.IsLeaf(), test.ShouldBeTrue)
	test.That(t, node.GetPoints(), test.ShouldBeEmpty)
}

func TestInsertDepthLimitBelowDividedNode(t *testing.T) {
	box, err := geometry.NewBoundingBox(0, 8, 0, 8, 0, 8)
	test.That(t, err, test.ShouldBeNil)
	node, err := NewPointNode(box, 1, 2)
	test.That(t, err, test.ShouldBeNil)

	a := data.NewSpatialPoint(1, 1, 1)
	test.That(t, node.Insert(a), test.ShouldBeTrue)
	test.That(t, node.Insert(data.NewSpatialPoint(7, 7, 7)), test.ShouldBeTrue)
	before := collectNodes(node)
	test.That(t, len(before), test.ShouldEqual, 9)

	test.That(t, node.Insert(a), test.ShouldBeFalse)
	test.That(t, collectNodes(node), test.ShouldResemble, before)
	validateNode(t, node, true)

	// a point that does split below the full child is still accepted
	test.That(t, node.Insert(data.NewSpatialPoint(3, 3, 3)), test.ShouldBeTrue)
	test.That(t, len(collectNodes(node)), test.ShouldEqual, 17)
}

func TestEqualPointsAcrossFaces(t *testing.T) {
	node := newTestNode(t, 2)
	stored := data.NewSpatialPoint(1, 1, -1e-7)
	test.That(t, node.Insert(stored), test.ShouldBeTrue)
	test.That(t, node.Insert(data.NewSpatialPoint(2, 2, 2)), test.ShouldBeTrue)
	test.That(t, node.Insert(data.NewSpatialPoint(3, 3, 3)), test.ShouldBeTrue)

	query := data.NewSpatialPoint(1, 1, 0)
	test.That(t, query.Equals(stored), test.ShouldBeTrue)
	test.That(t, node.IsDivided(), test.ShouldBeTrue)
	test.That(t, node.ChildIndex(query), test.ShouldNotEqual, node.ChildIndex(stored))

	test.That(t, node.Search(query), test.ShouldBeTrue)
	test.That(t, node.Delete(query), test.ShouldBeTrue)
	test.That(t, node.Search(stored), test.ShouldBeFalse)
	test.That(t, node.TotalNumberOfPoints(), test.ShouldEqual, 2)
	test.That(t, node.Delete(query), test.ShouldBeFalse)
}

func TestEqualPointsAcrossRootUpperFace(t *testing.T) {
	node := newTestNode(t, 2)
	stored := data.NewSpatialPoint(4.9999995, 1, 1)
	test.That(t, node.Insert(stored), test.ShouldBeTrue)

	onFace := data.NewSpatialPoint(5, 1, 1)
	test.That(t, node.Contains(onFace), test.ShouldBeFalse)
	test.That(t, node.Insert(onFace), test.ShouldBeFalse)
	test.That(t, node.Search(onFace), test.ShouldBeTrue)
	test.That(t, node.Delete(onFace), test.ShouldBeTrue)
	test.That(t, node.GetPoints(), test.ShouldBeEmpty)
}

func TestSearch(t *testing.T) {
	node := newTestNode(t, 2)
	inserted := []data.SpatialPoint{
		data.NewSpatialPoint(1, 1, 1),
		data.NewSpatialPoint(2, 2, 2),
		data.NewSpatialPoint(3, 3, 3),
		data.NewSpatialPoint(-4, 0, 2.5),
		data.NewSpatialPoint(0, 0, 0),
	}
	for _, p := range inserted {
		test.That(t, node.Insert(p), test.ShouldBeTrue)
	}

	for _, p := range inserted {
		test.That(t, node.Search(p), test.ShouldBeTrue)
	}
	test.That(t, node.Search(data.NewSpatialPoint(3, 3, 3.0000005)), test.ShouldBeTrue)
	test.That(t, node.Search(data.NewSpatialPoint(3, 3, 3.001)), test.ShouldBeFalse)
	test.That(t, node.Search(data.NewSpatialPoint(-1, -1, -1)), test.ShouldBeFalse)
	test.That(t, node.Search(data.NewSpatialPoint(4.5, 4.5, 4.5)), test.ShouldBeFalse)
}

func TestDelete(t *testing.T) {
	t.Run("from leaf", func(t *testing.T) {
		node := newTestNode(t, 2)
		p := data.NewSpatialPoint(1, 2, 3)
		test.That(t, node.Insert(p), test.ShouldBeTrue)

		test.That(t, node.Delete(p), test.ShouldBeTrue)
		test.That(t, node.Search(p), test.ShouldBeFalse)
		test.That(t, node.Delete(p), test.ShouldBeFalse)
	})

	t.Run("missing point", func(t *testing.T) {
		node := newTestNode(t, 2)
		test.That(t, node.Insert(data.NewSpatialPoint(1, 1, 1)), test.ShouldBeTrue)
		test.That(t, node.Insert(data.NewSpatialPoint(2, 2, 2)), test.ShouldBeTrue)
		test.That(t, node.Insert(data.NewSpatialPoint(3, 3, 3)), test.ShouldBeTrue)

		before := collectNodes(node)
		test.That(t, node.Delete(data.NewSpatialPoint(-2, -2, -2)), test.ShouldBeFalse)
		test.That(t, node.Delete(data.NewSpatialPoint(1, 1, 2)), test.ShouldBeFalse)
		test.That(t, collectNodes(node), test.ShouldResemble, before)
	})

	t.Run("removes one occurrence", func(t *testing.T) {
		node := newTestNode(t, 3)
		p := data.NewSpatialPoint(1, 1, 1)
		test.That(t, node.Insert(p), test.ShouldBeTrue)
		test.That(t, node.Insert(p), test.ShouldBeTrue)

		test.That(t, node.Delete(p), test.ShouldBeTrue)
		test.That(t, node.Search(p), test.ShouldBeTrue)
		test.That(t, node.Delete(p), test.ShouldBeTrue)
		test.That(t, node.Search(p), test.ShouldBeFalse)
	})

	t.Run("collapses emptied subtrees", func(t *testing.T) {
		node := newTestNode(t, 2)
		points := []data.SpatialPoint{
			data.NewSpatialPoint(1, 1, 1),
			data.NewSpatialPoint(2, 2, 2),
			data.NewSpatialPoint(3, 3, 3),
		}
		for _, p := range points {
			test.That(t, node.Insert(p), test.ShouldBeTrue)
		}

		test.That(t, node.Delete(points[0]), test.ShouldBeTrue)
		test.That(t, node.IsDivided(), test.ShouldBeTrue)
		test.That(t, node.Delete(points[1]), test.ShouldBeTrue)
		test.That(t, node.IsDivided(), test.ShouldBeTrue)
		validateNode(t, node, true)

		test.That(t, node.Delete(points[2]), test.ShouldBeTrue)
		test.That(t, node.IsLeaf(), test.ShouldBeTrue)
		test.That(t, node.GetPoints(), test.ShouldBeEmpty)
		for _, child := range node.GetChildren() {
			test.That(t, child, test.ShouldBeNil)
		}
	})

	t.Run("keeps non empty siblings", func(t *testing.T) {
		node := newTestNode(t, 1)
		a := data.NewSpatialPoint(1, 1, 1)
		b := data.NewSpatialPoint(-1, -1, -1)
		test.That(t, node.Insert(a), test.ShouldBeTrue)
		test.That(t, node.Insert(b), test.ShouldBeTrue)

		test.That(t, node.Delete(a), test.ShouldBeTrue)
		test.That(t, node.IsDivided(), test.ShouldBeTrue)
		test.That(t, node.Search(b), test.ShouldBeTrue)
		test.That(t, node.TotalNumberOfPoints(), test.ShouldEqual, 1)
	})
}

func TestSubdivideDividedNodePanics(t *testing.T) {
	node := newTestNode(t, 2)
	node.subdivide()
	test.That(t, node.IsDivided(), test.ShouldBeTrue)

	test.That(t, func() { node.subdivide() }, test.ShouldPanic)
}

func TestTryMerge(t *testing.T) {
	t.Run("leaf panics", func(t *testing.T) {
		node := newTestNode(t, 2)
		test.That(t, func() { node.tryMerge() }, test.ShouldPanic)
	})

	t.Run("empty children", func(t *testing.T) {
		node := newTestNode(t, 2)
		node.subdivide()
		test.That(t, node.tryMerge(), test.ShouldBeTrue)
		test.That(t, node.IsLeaf(), test.ShouldBeTrue)
		test.That(t, node.GetPoints(), test.ShouldBeEmpty)
	})

	t.Run("occupied child", func(t *testing.T) {
		node := newTestNode(t, 2)
		node.subdivide()
		test.That(t, node.Insert(data.NewSpatialPoint(1, 1, 1)), test.ShouldBeTrue)
		test.That(t, node.tryMerge(), test.ShouldBeFalse)
		test.That(t, node.IsDivided(), test.ShouldBeTrue)
	})

	t.Run("divided child", func(t *testing.T) {
		node := newTestNode(t, 2)
		node.subdivide()
		node.GetChildren()[3].(*PointNode).subdivide()
		test.That(t, node.tryMerge(), test.ShouldBeFalse)
		test.That(t, node.IsDivided(), test.ShouldBeTrue)
	})

	t.Run("missing child panics", func(t *testing.T) {
		node := newTestNode(t, 2)
		node.subdivide()
		node.state.(*dividedState).children[4] = nil
		test.That(t, func() { node.tryMerge() }, test.ShouldPanic)
	})
}

func TestTraverse(t *testing.T) {
	node := newTestNode(t, 2)
	test.That(t, node.Insert(data.NewSpatialPoint(1, 1, 1)), test.ShouldBeTrue)
	test.That(t, node.Insert(data.NewSpatialPoint(-1, -1, -1)), test.ShouldBeTrue)
	test.That(t, node.Insert(data.NewSpatialPoint(1, -1, 1)), test.ShouldBeTrue)

	var boxes []geometry.BoundingBox
	var dividedCount, pointCount int
	node.Traverse(func(boundingBox geometry.BoundingBox, points []data.SpatialPoint, divided bool) {
		boxes = append(boxes, boundingBox)
		if divided {
			dividedCount++
			test.That(t, points, test.ShouldBeEmpty)
		}
		pointCount += len(points)
	})

	test.That(t, len(boxes), test.ShouldEqual, 9)
	test.That(t, boxes[0], test.ShouldResemble, node.GetBoundingBox())
	octants := node.GetBoundingBox().OctantBounds()
	for i := range octants {
		test.That(t, boxes[i+1], test.ShouldResemble, octants[i])
	}
	test.That(t, dividedCount, test.ShouldEqual, 1)
	test.That(t, pointCount, test.ShouldEqual, 3)
}

func TestTraversePassesCopies(t *testing.T) {
	node := newTestNode(t, 2)
	test.That(t, node.Insert(data.NewSpatialPoint(1, 1, 1)), test.ShouldBeTrue)

	node.Traverse(func(_ geometry.BoundingBox, points []data.SpatialPoint, _ bool) {
		points[0] = data.NewSpatialPoint(0, 0, 0)
	})
	test.That(t, node.Search(data.NewSpatialPoint(1, 1, 1)), test.ShouldBeTrue)
}

// Random interleaving of inserts and deletes checked against a plain slice of points.
func TestRandomOperations(t *testing.T) {
	for capacity := 1; capacity <= 4; capacity++ {
		t.Run(fmt.Sprintf("capacity_%d", capacity), func(t *testing.T) {
			rnd := rand.New(rand.NewSource(int64(capacity)))
			node := newTestNode(t, capacity)
			var stored []data.SpatialPoint

			for i := 0; i < 400; i++ {
				// half unit grid, so that many points sit on octant faces
				p := data.NewSpatialPoint(
					float64(rnd.Intn(24)-12)/2,
					float64(rnd.Intn(24)-12)/2,
					float64(rnd.Intn(24)-12)/2,
				)
				inBounds := node.Contains(p)
				index := data.IndexOf(stored, p)

				if rnd.Intn(3) == 0 {
					test.That(t, node.Delete(p), test.ShouldEqual, index >= 0)
					if index >= 0 {
						stored = append(stored[:index], stored[index+1:]...)
					}
				} else if index < 0 {
					test.That(t, node.Insert(p), test.ShouldEqual, inBounds)
					if inBounds {
						stored = append(stored, p)
					}
				}

				test.That(t, validateNode(t, node, true), test.ShouldEqual, len(stored))
				test.That(t, node.Search(p), test.ShouldEqual, data.IndexOf(stored, p) >= 0)
			}

			for _, p := range stored {
				test.That(t, node.Search(p), test.ShouldBeTrue)
			}
			for _, p := range stored {
				test.That(t, node.Delete(p), test.ShouldBeTrue)
			}
			test.That(t, node.IsLeaf(), test.ShouldBeTrue)
			test.That(t, node.GetPoints(), test.ShouldBeEmpty)
		})
	}
}

// Points are drawn around an integer grid, where every coordinate is a midpoint at some depth,
// and moved by less than half the tolerance. Two draws around the same grid point are equal.
func TestRandomOperationsNearFaces(t *testing.T) {
	for capacity := 1; capacity <= 3; capacity++ {
		t.Run(fmt.Sprintf("capacity_%d", capacity), func(t *testing.T) {
			rnd := rand.New(rand.NewSource(int64(100 + capacity)))
			box, err := geometry.NewBoundingBox(-8, 8, -8, 8, -8, 8)
			test.That(t, err, test.ShouldBeNil)
			node, err := NewPointNode(box, capacity, 0)
			test.That(t, err, test.ShouldBeNil)
			var stored []data.SpatialPoint

			jitter := func() float64 {
				return (rnd.Float64()*2 - 1) * data.Tolerance * 0.4
			}
			for i := 0; i < 600; i++ {
				p := data.NewSpatialPoint(
					float64(rnd.Intn(15)-7)+jitter(),
					float64(rnd.Intn(15)-7)+jitter(),
					float64(rnd.Intn(15)-7)+jitter(),
				)
				index := data.IndexOf(stored, p)
				test.That(t, node.Search(p), test.ShouldEqual, index >= 0)

				if rnd.Intn(3) == 0 {
					test.That(t, node.Delete(p), test.ShouldEqual, index >= 0)
					if index >= 0 {
						stored = append(stored[:index], stored[index+1:]...)
					}
				} else if index < 0 {
					test.That(t, node.Insert(p), test.ShouldBeTrue)
					stored = append(stored, p)
				}

				test.That(t, validateNode(t, node, true), test.ShouldEqual, len(stored))
				test.That(t, node.Search(p), test.ShouldEqual, data.IndexOf(stored, p) >= 0)
			}

			for _, p := range stored {
				test.That(t, node.Delete(p), test.ShouldBeTrue)
			}
			test.That(t, node.IsLeaf(), test.ShouldBeTrue)
			test.That(t, node.GetPoints(), test.ShouldBeEmpty)
		})
	}
}

// validateNode recursively checks the structural invariants of a subtree and returns its number of points.
func validateNode(t *testing.T, n *PointNode, unique bool) int {
	t.Helper()

	switch s := n.state.(type) {
	case *leafState:
		test.That(t, len(s.points), test.ShouldBeLessThanOrEqualTo, n.capacity)
		for i, p := range s.points {
			test.That(t, n.Contains(p), test.ShouldBeTrue)
			if unique {
				for _, other := range s.points[i+1:] {
					test.That(t, p.Equals(other), test.ShouldBeFalse)
				}
			}
		}
		return len(s.points)

	case *dividedState:
		octants := n.boundingBox.OctantBounds()
		total := 0
		for i, child := range s.children {
			test.That(t, child, test.ShouldNotBeNil)
			test.That(t, child.boundingBox, test.ShouldResemble, octants[i])
			test.That(t, child.capacity, test.ShouldEqual, n.capacity)
			test.That(t, child.depth, test.ShouldEqual, n.depth+1)
			total += validateNode(t, child, unique)
		}
		// an emptied divided node is always merged back
		test.That(t, total, test.ShouldBeGreaterThan, 0)
		return total
	}

	t.Fatalf("unexpected node state %T", n.state)
	return 0
}

type nodeSnapshot struct {
	boundingBox geometry.BoundingBox
	points      []data.SpatialPoint
	divided     bool
}

func collectNodes(n *PointNode) []nodeSnapshot {
	var nodes []nodeSnapshot
	n.Traverse(func(boundingBox geometry.BoundingBox, points []data.SpatialPoint, divided bool) {
		nodes = append(nodes, nodeSnapshot{boundingBox, points, divided})
	})
	return nodes
}
