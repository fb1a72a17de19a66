package tools

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/ecopia-map/point_octree/internal/config"
	"github.com/ecopia-map/point_octree/internal/geometry"
	"github.com/ecopia-map/point_octree/internal/indexer"
)

// LoadConfig reads the file given with -config, returning an empty configuration when there is none
func LoadConfig(treeFlags *TreeFlags) (*config.Config, error) {
	if *treeFlags.Config == "" {
		return &config.Config{}, nil
	}
	return config.LoadFile(*treeFlags.Config)
}

// BuildIndexerOptions merges the configuration file with the flags, flags given on the command line winning
func BuildIndexerOptions(command string, treeFlags *TreeFlags, cfg *config.Config) (*indexer.IndexerOptions, error) {
	boundingBox, err := resolveBoundingBox(treeFlags, cfg)
	if err != nil {
		return nil, err
	}

	opts := &indexer.IndexerOptions{
		Input:            *treeFlags.Input,
		FolderProcessing: *treeFlags.FolderProcessing,
		Recursive:        *treeFlags.RecursiveFolderProcessing,
		BoundingBox:      boundingBox,
		Capacity:         *treeFlags.Capacity,
		MaxDepth:         *treeFlags.MaxDepth,
		Unique:           *treeFlags.Unique,
		SourceCrs:        *treeFlags.SourceCrs,
		TargetCrs:        *treeFlags.TargetCrs,
		ZOffset:          *treeFlags.ZOffset,
		Command:          command,
	}

	if !treeFlags.IsSet("capacity") && cfg.IsDefined("tree", "capacity") {
		opts.Capacity = cfg.Tree.Capacity
	}
	if !treeFlags.IsSet("max-depth") && cfg.IsDefined("tree", "max_depth") {
		opts.MaxDepth = cfg.Tree.MaxDepth
	}
	if !treeFlags.IsSet("unique") && cfg.IsDefined("tree", "unique") {
		opts.Unique = cfg.Tree.Unique
	}
	if !treeFlags.IsSet("source-crs") && cfg.IsDefined("input", "source_crs") {
		opts.SourceCrs = cfg.Input.SourceCrs
	}
	if !treeFlags.IsSet("target-crs") && cfg.IsDefined("input", "target_crs") {
		opts.TargetCrs = cfg.Input.TargetCrs
	}
	if !treeFlags.IsSet("zoffset") && cfg.IsDefined("input", "z_offset") {
		opts.ZOffset = cfg.Input.ZOffset
	}

	if opts.Capacity < 1 {
		return nil, errors.Errorf("capacity must be at least 1, got %d", opts.Capacity)
	}
	if (opts.SourceCrs == "") != (opts.TargetCrs == "") {
		return nil, errors.New("source-crs and target-crs must be given together")
	}

	return opts, nil
}

// ResolveOutput returns the output folder given on the command line, falling back on the configuration file
func ResolveOutput(treeFlags *TreeFlags, output string, cfg *config.Config) string {
	if !treeFlags.IsSet("output") && cfg.IsDefined("output", "folder") {
		return cfg.Output.Folder
	}
	return output
}

func resolveBoundingBox(treeFlags *TreeFlags, cfg *config.Config) (geometry.BoundingBox, error) {
	var min, max r3.Vector
	var err error

	if *treeFlags.Min != "" {
		if min, err = ParseVector(*treeFlags.Min); err != nil {
			return geometry.BoundingBox{}, errors.Wrap(err, "invalid min corner")
		}
	} else if len(cfg.Tree.Min) == 3 {
		min = r3.Vector{X: cfg.Tree.Min[0], Y: cfg.Tree.Min[1], Z: cfg.Tree.Min[2]}
	} else {
		return geometry.BoundingBox{}, errors.New("tree min corner must be given with -min or in the configuration file")
	}

	if *treeFlags.Max != "" {
		if max, err = ParseVector(*treeFlags.Max); err != nil {
			return geometry.BoundingBox{}, errors.Wrap(err, "invalid max corner")
		}
	} else if len(cfg.Tree.Max) == 3 {
		max = r3.Vector{X: cfg.Tree.Max[0], Y: cfg.Tree.Max[1], Z: cfg.Tree.Max[2]}
	} else {
		return geometry.BoundingBox{}, errors.New("tree max corner must be given with -max or in the configuration file")
	}

	return geometry.NewBoundingBoxFromCorners(min, max)
}
