package pkg

import (
	stdio "io"
	"math/rand"

	"github.com/golang/glog"

	"github.com/ecopia-map/point_octree/internal/indexer"
	"github.com/ecopia-map/point_octree/pkg/algorithm_manager"
	"github.com/ecopia-map/point_octree/tools"
)

// Fills an octree with uniformly distributed random points, on top of the input files if any
type IndexerRandom struct {
	fileFinder       tools.FileFinder
	algorithmManager algorithm_manager.AlgorithmManager
	out              stdio.Writer
}

func NewIndexerRandom(fileFinder tools.FileFinder, algorithmManager algorithm_manager.AlgorithmManager, out stdio.Writer) indexer.IIndexer {
	return &IndexerRandom{
		fileFinder:       fileFinder,
		algorithmManager: algorithmManager,
		out:              out,
	}
}

func (indexerRandom *IndexerRandom) RunIndexer(opts *indexer.IndexerOptions) error {
	randomOpts := opts.RandomOptions
	if randomOpts == nil {
		randomOpts = &indexer.RandomOptions{}
	}

	converter, err := indexerRandom.algorithmManager.GetCoordinateConverterAlgorithm()
	if err != nil {
		return err
	}
	defer cleanup(converter)

	tree, report, err := buildTree(indexerRandom.fileFinder, indexerRandom.algorithmManager, converter, opts)
	if err != nil {
		return err
	}

	rnd := rand.New(rand.NewSource(randomOpts.Seed))
	inserted := tree.InsertRandom(rnd, randomOpts.Count)
	glog.Infof("random points requested:[%d] inserted:[%d] seed:[%d]", randomOpts.Count, len(inserted), randomOpts.Seed)
	tools.LogOutput("> inserted", len(inserted), "random points")

	report.Processed += randomOpts.Count
	report.Inserted += len(inserted)
	report.Rejected += randomOpts.Count - len(inserted)

	if err := exportTree(tree, randomOpts.Output); err != nil {
		return err
	}

	if randomOpts.Dump {
		if err := tree.Dump(indexerRandom.out); err != nil {
			return err
		}
	}
	writeStatsTable(indexerRandom.out, tree, report)

	return nil
}
