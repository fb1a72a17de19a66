package pkg

import (
	stdio "io"

	"github.com/ecopia-map/point_octree/internal/indexer"
	"github.com/ecopia-map/point_octree/pkg/algorithm_manager"
	"github.com/ecopia-map/point_octree/tools"
)

// Builds an octree from point files, then exports and describes it
type IndexerIndex struct {
	fileFinder       tools.FileFinder
	algorithmManager algorithm_manager.AlgorithmManager
	out              stdio.Writer
}

func NewIndexer(fileFinder tools.FileFinder, algorithmManager algorithm_manager.AlgorithmManager, out stdio.Writer) indexer.IIndexer {
	return &IndexerIndex{
		fileFinder:       fileFinder,
		algorithmManager: algorithmManager,
		out:              out,
	}
}

func (indexerIndex *IndexerIndex) RunIndexer(opts *indexer.IndexerOptions) error {
	converter, err := indexerIndex.algorithmManager.GetCoordinateConverterAlgorithm()
	if err != nil {
		return err
	}
	defer cleanup(converter)

	tree, report, err := buildTree(indexerIndex.fileFinder, indexerIndex.algorithmManager, converter, opts)
	if err != nil {
		return err
	}
	tools.LogOutput("> indexed", tree.Size(), "points")

	indexOpts := opts.IndexOptions
	if indexOpts == nil {
		indexOpts = &indexer.IndexOptions{}
	}

	if err := exportTree(tree, indexOpts.Output); err != nil {
		return err
	}

	if indexOpts.Dump {
		if err := tree.Dump(indexerIndex.out); err != nil {
			return err
		}
	}

	if indexOpts.Stats {
		writeStatsTable(indexerIndex.out, tree, report)
	}

	return nil
}
