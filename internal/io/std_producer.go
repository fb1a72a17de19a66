package io

import (
	"os"
	"sync"

	"github.com/pkg/errors"

	"github.com/ecopia-map/point_octree/internal/converters"
	"github.com/ecopia-map/point_octree/internal/data"
	"github.com/ecopia-map/point_octree/internal/indexer"
)

// Reads point files and submits one WorkUnit per point, after moving the point to the tree
// reference system and correcting its elevation
type StandardProducer struct {
	files               []string
	operation           indexer.Operation
	coordinateConverter converters.CoordinateConverter
	elevationCorrector  converters.ElevationCorrector
}

// Both coordinateConverter and elevationCorrector are optional
func NewStandardProducer(
	files []string,
	operation indexer.Operation,
	coordinateConverter converters.CoordinateConverter,
	elevationCorrector converters.ElevationCorrector,
) *StandardProducer {
	return &StandardProducer{
		files:               files,
		operation:           operation,
		coordinateConverter: coordinateConverter,
		elevationCorrector:  elevationCorrector,
	}
}

// Parses every file and submits WorkUnits to the provided work channel. Closes the channel when all
// work is submitted or as soon as an error is raised, in which case the error is sent to errchan.
func (p *StandardProducer) Produce(work chan *WorkUnit, errchan chan error, wg *sync.WaitGroup) {
	defer wg.Done()
	defer close(work)

	for _, filePath := range p.files {
		if err := p.produceFile(filePath, work); err != nil {
			errchan <- err
			return
		}
	}
}

func (p *StandardProducer) produceFile(filePath string, work chan *WorkUnit) error {
	file, err := os.Open(filePath)
	if err != nil {
		return errors.Wrap(err, "cannot open point file")
	}
	defer file.Close()

	reader := NewPointReader(file)
	for reader.Next() {
		point, err := p.transform(reader.Point())
		if err != nil {
			return errors.Wrapf(err, "%s line %d", filePath, reader.Line())
		}
		work <- &WorkUnit{
			Operation: p.operation,
			Point:     point,
			Source:    filePath,
			Line:      reader.Line(),
		}
	}

	return errors.Wrapf(reader.Err(), "cannot read %s", filePath)
}

func (p *StandardProducer) transform(point data.SpatialPoint) (data.SpatialPoint, error) {
	if p.coordinateConverter != nil {
		converted, err := p.coordinateConverter.ConvertPoint(point)
		if err != nil {
			return data.SpatialPoint{}, err
		}
		point = converted
	}
	if p.elevationCorrector != nil {
		point = data.NewSpatialPoint(point.X, point.Y, p.elevationCorrector.CorrectElevation(point.X, point.Y, point.Z))
	}
	return point, nil
}

// Submits a fixed list of points, such as the ones given on the command line
type PointsProducer struct {
	points    []data.SpatialPoint
	operation indexer.Operation
}

func NewPointsProducer(points []data.SpatialPoint, operation indexer.Operation) *PointsProducer {
	return &PointsProducer{
		points:    points,
		operation: operation,
	}
}

func (p *PointsProducer) Produce(work chan *WorkUnit, errchan chan error, wg *sync.WaitGroup) {
	defer wg.Done()
	defer close(work)

	for i, point := range p.points {
		work <- &WorkUnit{
			Operation: p.operation,
			Point:     point,
			Source:    "command line",
			Line:      i + 1,
		}
	}
}
