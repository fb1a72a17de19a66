// Package config holds the optional TOML configuration of the indexer. Values left out of the
// file keep their zero value, callers can tell them apart through the embedded MetaData.
package config

import (
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/ecopia-map/point_octree/internal/geometry"
)

type Config struct {
	toml.MetaData

	Tree   TreeConfig   `toml:"tree"`
	Input  InputConfig  `toml:"input"`
	Output OutputConfig `toml:"output"`
}

type TreeConfig struct {
	Min      []float64 `toml:"min"`
	Max      []float64 `toml:"max"`
	Capacity int       `toml:"capacity"`
	MaxDepth int       `toml:"max_depth"`
	Unique   bool      `toml:"unique"`
}

type InputConfig struct {
	SourceCrs string  `toml:"source_crs"`
	TargetCrs string  `toml:"target_crs"`
	ZOffset   float64 `toml:"z_offset"`
}

type OutputConfig struct {
	Folder string `toml:"folder"`
}

// Load decodes the toml configuration read from r
func (c *Config) Load(r io.Reader) error {
	md, err := toml.DecodeReader(r, c)
	if err != nil {
		return errors.Wrap(err, "cannot decode configuration")
	}
	c.MetaData = md

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return errors.Errorf("unknown configuration keys %v", undecoded)
	}

	if c.HasBoundingBox() {
		if _, err := c.BoundingBox(); err != nil {
			return err
		}
	}
	if md.IsDefined("tree", "capacity") && c.Tree.Capacity < 1 {
		return errors.Errorf("tree capacity must be at least 1, got %d", c.Tree.Capacity)
	}
	return nil
}

// LoadFile opens and decodes the configuration file at filePath
func LoadFile(filePath string) (*Config, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, errors.Wrap(err, "cannot open configuration")
	}
	defer file.Close()

	c := &Config{}
	if err := c.Load(file); err != nil {
		return nil, errors.Wrapf(err, "invalid configuration %s", filePath)
	}
	return c, nil
}

func (c *Config) HasBoundingBox() bool {
	return c.IsDefined("tree", "min") || c.IsDefined("tree", "max")
}

// BoundingBox builds the root boundary from the [tree] min and max corners
func (c *Config) BoundingBox() (geometry.BoundingBox, error) {
	if len(c.Tree.Min) != 3 || len(c.Tree.Max) != 3 {
		return geometry.BoundingBox{}, errors.Wrapf(geometry.ErrInvalidBoundary,
			"tree min and max need 3 coordinates each, got %d and %d", len(c.Tree.Min), len(c.Tree.Max))
	}
	return geometry.NewBoundingBox(
		c.Tree.Min[0], c.Tree.Max[0],
		c.Tree.Min[1], c.Tree.Max[1],
		c.Tree.Min[2], c.Tree.Max[2],
	)
}
