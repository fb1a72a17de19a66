package io

import (
	"sync"

	"github.com/golang/glog"

	"github.com/ecopia-map/point_octree/internal/indexer"
	"github.com/ecopia-map/point_octree/internal/octree"
)

// Outcome of a search or delete WorkUnit
type QueryResult struct {
	WorkUnit
	Hit bool
}

// Counters collected while consuming work
type ConsumerReport struct {
	Processed  int
	Inserted   int
	Rejected   int // points outside the tree boundary, or beyond the depth limit
	Duplicates int // points skipped because an equal point was already stored
	Found      int
	Missing    int
	Deleted    int
	Results    []QueryResult
}

// Applies WorkUnits to a tree one at a time. A single StandardConsumer must own the tree while
// consuming, since the tree itself does no locking.
type StandardConsumer struct {
	tree   octree.ITree
	unique bool
	report ConsumerReport
}

func NewStandardConsumer(tree octree.ITree, unique bool) *StandardConsumer {
	return &StandardConsumer{
		tree:   tree,
		unique: unique,
	}
}

// Continually consumes WorkUnits submitted to the work channel until it is closed
func (c *StandardConsumer) Consume(workchan chan *WorkUnit, waitGroup *sync.WaitGroup) {
	for work := range workchan {
		c.doWork(work)
	}

	// signal waitgroup finished work
	waitGroup.Done()
}

func (c *StandardConsumer) Report() ConsumerReport {
	return c.report
}

func (c *StandardConsumer) doWork(workUnit *WorkUnit) {
	c.report.Processed++

	switch workUnit.Operation {
	case indexer.OperationInsert:
		if c.unique && c.tree.Search(workUnit.Point) {
			c.report.Duplicates++
			return
		}
		if c.tree.Insert(workUnit.Point) {
			c.report.Inserted++
		} else {
			c.report.Rejected++
			glog.V(1).Infof("point %s from %s:%d rejected", workUnit.Point, workUnit.Source, workUnit.Line)
		}

	case indexer.OperationSearch:
		hit := c.tree.Search(workUnit.Point)
		if hit {
			c.report.Found++
		} else {
			c.report.Missing++
		}
		c.report.Results = append(c.report.Results, QueryResult{WorkUnit: *workUnit, Hit: hit})

	case indexer.OperationDelete:
		hit := c.tree.Delete(workUnit.Point)
		if hit {
			c.report.Deleted++
		} else {
			c.report.Missing++
		}
		c.report.Results = append(c.report.Results, QueryResult{WorkUnit: *workUnit, Hit: hit})

	default:
		glog.Warningf("unknown operation [%s] for point %s", workUnit.Operation, workUnit.Point)
	}
}
