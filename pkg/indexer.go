package pkg

import (
	"runtime"
	"sync"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/ecopia-map/point_octree/internal/converters"
	"github.com/ecopia-map/point_octree/internal/indexer"
	"github.com/ecopia-map/point_octree/internal/io"
	"github.com/ecopia-map/point_octree/internal/octree"
	"github.com/ecopia-map/point_octree/pkg/algorithm_manager"
	"github.com/ecopia-map/point_octree/tools"
)

// Creates a new tree and loads the points of every input file in it. Input points are moved to the tree
// reference system by the given converter, which can be nil.
func buildTree(
	fileFinder tools.FileFinder,
	algorithmManager algorithm_manager.AlgorithmManager,
	converter converters.CoordinateConverter,
	opts *indexer.IndexerOptions,
) (octree.ITree, io.ConsumerReport, error) {
	tree, err := algorithmManager.GetTreeAlgorithm()
	if err != nil {
		return nil, io.ConsumerReport{}, err
	}
	if opts.Input == "" {
		return tree, io.ConsumerReport{}, nil
	}

	glog.Infoln("Preparing list of files to process...")

	pointFiles, err := fileFinder.GetPointFilesToProcess(opts)
	if err != nil {
		return nil, io.ConsumerReport{}, err
	}
	for i, filePath := range pointFiles {
		glog.Infof("point_file path %d [%s]", i+1, filePath)
	}

	tools.LogOutput("> reading points from", len(pointFiles), "file(s)...")
	producer := io.NewStandardProducer(pointFiles, indexer.OperationInsert, converter, algorithmManager.GetElevationCorrectionAlgorithm())
	consumer := io.NewStandardConsumer(tree, opts.Unique)
	if err := runPipeline(producer, consumer); err != nil {
		return nil, io.ConsumerReport{}, errors.Wrap(err, "cannot load points")
	}

	report := consumer.Report()
	glog.Infof("points read:[%d] inserted:[%d] rejected:[%d] duplicates:[%d]", report.Processed, report.Inserted, report.Rejected, report.Duplicates)
	if report.Rejected > 0 {
		glog.Warningf("%d points were outside of %s or beyond the depth limit", report.Rejected, tree.GetRootNode().GetBoundingBox())
	}

	return tree, report, nil
}

// Feeds the work of the producer to the consumer. The tree is not safe for concurrent use, so there
// is a single consumer and only parsing runs alongside it.
func runPipeline(producer io.Producer, consumer *io.StandardConsumer) error {
	// init channel where to submit work with a buffer 5 times greater than the number of cpus
	workChannel := make(chan *io.WorkUnit, runtime.NumCPU()*5)

	// the producer stops at its first error
	errorChannel := make(chan error, 1)

	var waitGroup sync.WaitGroup
	waitGroup.Add(2)
	go producer.Produce(workChannel, errorChannel, &waitGroup)
	go consumer.Consume(workChannel, &waitGroup)

	// wait for producer and consumer to finish
	waitGroup.Wait()
	close(errorChannel)

	return <-errorChannel
}

// Writes octree.json in the output folder, nothing is written if output is empty
func exportTree(tree octree.ITree, output string) error {
	if output == "" {
		return nil
	}

	tools.LogOutput("> exporting octree...")
	filePath, err := io.ExportTree(tree, output)
	if err != nil {
		return err
	}
	tools.LogOutput("> octree written to", filePath)
	return nil
}

func cleanup(converter converters.CoordinateConverter) {
	if converter != nil {
		converter.Cleanup()
	}
}
