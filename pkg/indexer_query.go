package pkg

import (
	stdio "io"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/ecopia-map/point_octree/internal/indexer"
	"github.com/ecopia-map/point_octree/internal/io"
	"github.com/ecopia-map/point_octree/pkg/algorithm_manager"
	"github.com/ecopia-map/point_octree/tools"
)

// Builds an octree from point files and runs a search or a delete for each query point
type IndexerQuery struct {
	fileFinder       tools.FileFinder
	algorithmManager algorithm_manager.AlgorithmManager
	out              stdio.Writer
}

func NewIndexerQuery(fileFinder tools.FileFinder, algorithmManager algorithm_manager.AlgorithmManager, out stdio.Writer) indexer.IIndexer {
	return &IndexerQuery{
		fileFinder:       fileFinder,
		algorithmManager: algorithmManager,
		out:              out,
	}
}

func (indexerQuery *IndexerQuery) RunIndexer(opts *indexer.IndexerOptions) error {
	report, err := indexerQuery.runQuery(opts)
	if err != nil {
		return err
	}

	writeQueryTable(indexerQuery.out, report.Results)
	tools.LogOutput("> found", report.Found, "deleted", report.Deleted, "missing", report.Missing)
	return nil
}

func (indexerQuery *IndexerQuery) runQuery(opts *indexer.IndexerOptions) (io.ConsumerReport, error) {
	queryOpts := opts.QueryOptions
	if queryOpts == nil {
		return io.ConsumerReport{}, errors.New("missing query options")
	}
	if queryOpts.Operation != indexer.OperationSearch && queryOpts.Operation != indexer.OperationDelete {
		return io.ConsumerReport{}, errors.Errorf("unsupported query operation [%s]", queryOpts.Operation)
	}

	converter, err := indexerQuery.algorithmManager.GetCoordinateConverterAlgorithm()
	if err != nil {
		return io.ConsumerReport{}, err
	}
	defer cleanup(converter)

	tree, _, err := buildTree(indexerQuery.fileFinder, indexerQuery.algorithmManager, converter, opts)
	if err != nil {
		return io.ConsumerReport{}, err
	}

	glog.Infof("running %s for %d points", queryOpts.Operation, len(queryOpts.Points))

	// command line points are already in tree coordinates
	consumer := io.NewStandardConsumer(tree, false)
	if err := runPipeline(io.NewPointsProducer(queryOpts.Points, queryOpts.Operation), consumer); err != nil {
		return io.ConsumerReport{}, err
	}

	if queryOpts.QueryInput != "" {
		producer := io.NewStandardProducer(
			[]string{queryOpts.QueryInput},
			queryOpts.Operation,
			converter,
			indexerQuery.algorithmManager.GetElevationCorrectionAlgorithm(),
		)
		if err := runPipeline(producer, consumer); err != nil {
			return io.ConsumerReport{}, errors.Wrap(err, "cannot read query points")
		}
	}

	report := consumer.Report()
	glog.Infof("tree size after %s: %d", queryOpts.Operation, tree.Size())
	return report, nil
}
