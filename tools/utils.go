package tools

import (
	"encoding/json"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/ecopia-map/point_octree/internal/data"
)

func FmtJSONString(v interface{}) string {
	content, err := json.Marshal(v)
	if err != nil {
		return "marshal data fail"
	}
	return string(content)
}

// ParseVector parses a comma separated "x,y,z" triple
func ParseVector(text string) (r3.Vector, error) {
	fields := strings.Split(text, ",")
	if len(fields) != 3 {
		return r3.Vector{}, errors.Errorf("expected x,y,z, got %q", text)
	}

	var coords [3]float64
	for i, field := range fields {
		value, err := decimal.NewFromString(strings.TrimSpace(field))
		if err != nil {
			return r3.Vector{}, errors.Wrapf(err, "invalid coordinate %q", field)
		}
		coords[i], _ = value.Float64()
	}
	return r3.Vector{X: coords[0], Y: coords[1], Z: coords[2]}, nil
}

// ParsePoints parses a list of "x,y,z" triples separated by ';'. Empty entries are skipped.
func ParsePoints(text string) ([]data.SpatialPoint, error) {
	points := make([]data.SpatialPoint, 0)
	for _, entry := range strings.Split(text, ";") {
		if strings.TrimSpace(entry) == "" {
			continue
		}
		vector, err := ParseVector(entry)
		if err != nil {
			return nil, err
		}
		points = append(points, data.NewSpatialPointFromVector(vector))
	}
	return points, nil
}
