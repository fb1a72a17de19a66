package io

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/ecopia-map/point_octree/internal/data"
)

// Reads points from a text stream holding one "x y z" triple per line. Coordinates can be
// separated by spaces, tabs, commas or semicolons; extra columns are ignored. Blank lines and
// lines starting with '#' are skipped.
type PointReader struct {
	scanner *bufio.Scanner
	line    int
	point   data.SpatialPoint
	err     error
}

func NewPointReader(r io.Reader) *PointReader {
	return &PointReader{scanner: bufio.NewScanner(r)}
}

// Next advances to the next point, returning false at the end of the stream or on the first error
func (r *PointReader) Next() bool {
	if r.err != nil {
		return false
	}
	for r.scanner.Scan() {
		r.line++
		text := strings.TrimSpace(r.scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		point, err := ParsePoint(text)
		if err != nil {
			r.err = errors.Wrapf(err, "line %d", r.line)
			return false
		}
		r.point = point
		return true
	}
	r.err = r.scanner.Err()
	return false
}

func (r *PointReader) Point() data.SpatialPoint {
	return r.point
}

// Line returns the line number of the last point read
func (r *PointReader) Line() int {
	return r.line
}

func (r *PointReader) Err() error {
	return r.err
}

// ReadPoints reads every point of the stream
func ReadPoints(r io.Reader) ([]data.SpatialPoint, error) {
	points := make([]data.SpatialPoint, 0)
	reader := NewPointReader(r)
	for reader.Next() {
		points = append(points, reader.Point())
	}
	return points, reader.Err()
}

// ParsePoint parses the first three coordinates of a line such as "1.5, -2, 3e2"
func ParsePoint(text string) (data.SpatialPoint, error) {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t'
	})
	if len(fields) < 3 {
		return data.SpatialPoint{}, errors.Errorf("expected 3 coordinates, found %d in %q", len(fields), text)
	}

	var coords [3]float64
	for i := range coords {
		value, err := decimal.NewFromString(fields[i])
		if err != nil {
			return data.SpatialPoint{}, errors.Wrapf(err, "invalid coordinate %q", fields[i])
		}
		coords[i], _ = value.Float64()
	}
	return data.NewSpatialPoint(coords[0], coords[1], coords[2]), nil
}
