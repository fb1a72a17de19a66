package proj4_coordinate_converter

import (
	"math"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	proj "github.com/xeonx/proj4"

	"github.com/ecopia-map/point_octree/internal/converters"
	"github.com/ecopia-map/point_octree/internal/data"
)

// Converts points between two proj4 reference systems, e.g. "+proj=longlat +datum=WGS84 +no_defs"
// to "+proj=merc +datum=WGS84 +units=m +no_defs". Lat/long systems are expressed in degrees.
type proj4CoordinateConverter struct {
	source *proj.Proj
	target *proj.Proj
}

func NewProj4CoordinateConverter(sourceDefinition string, targetDefinition string) (converters.CoordinateConverter, error) {
	source, err := proj.InitPlus(sourceDefinition)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid source reference system %q", sourceDefinition)
	}

	target, err := proj.InitPlus(targetDefinition)
	if err != nil {
		source.Close()
		return nil, errors.Wrapf(err, "invalid target reference system %q", targetDefinition)
	}

	glog.Infof("converting points from [%s] to [%s]", sourceDefinition, targetDefinition)

	return &proj4CoordinateConverter{
		source: source,
		target: target,
	}, nil
}

func (cc *proj4CoordinateConverter) ConvertPoint(point data.SpatialPoint) (data.SpatialPoint, error) {
	xs := []float64{toRadians(cc.source, point.X)}
	ys := []float64{toRadians(cc.source, point.Y)}
	zs := []float64{point.Z}

	if err := proj.TransformRaw(cc.source, cc.target, xs, ys, zs); err != nil {
		return data.SpatialPoint{}, errors.Wrapf(err, "cannot convert point %s", point)
	}

	return data.NewSpatialPoint(toDegrees(cc.target, xs[0]), toDegrees(cc.target, ys[0]), zs[0]), nil
}

// Releases the proj4 handles
func (cc *proj4CoordinateConverter) Cleanup() {
	cc.source.Close()
	cc.target.Close()
}

func toRadians(projection *proj.Proj, val float64) float64 {
	if projection.IsLatLong() {
		return val * math.Pi / 180
	}
	return val
}

func toDegrees(projection *proj.Proj, val float64) float64 {
	if projection.IsLatLong() {
		return val * 180 / math.Pi
	}
	return val
}
