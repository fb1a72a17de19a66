package indexer

import (
	"strings"

	"github.com/ecopia-map/point_octree/internal/data"
	"github.com/ecopia-map/point_octree/internal/geometry"
)

type Operation string

const (
	OperationInsert Operation = "INSERT"
	OperationSearch Operation = "SEARCH"
	OperationDelete Operation = "DELETE"
)

func (o Operation) String() string {
	switch o {
	case OperationInsert, OperationSearch, OperationDelete:
		return string(o)
	}
	return ""
}

// ParseOperation returns the operation matching value, or an empty Operation if none does
func ParseOperation(value string) Operation {
	normalizedValue := Operation(strings.Trim(strings.ToUpper(value), " "))
	return Operation(normalizedValue.String())
}

// Contains the options needed to build and query an octree
type IndexerOptions struct {
	Input            string               // Input point file/folder
	FolderProcessing bool                 // Enables the processing of all point files in folder
	Recursive        bool                 // Recursive lookup of point files in subfolders
	BoundingBox      geometry.BoundingBox // Region covered by the root node
	Capacity         int                  // Max number of points held by a leaf before it subdivides
	MaxDepth         int                  // Depth at which full leaves stop subdividing
	Unique           bool                 // Skip points equal to one already stored
	SourceCrs        string               // proj4 definition of the input points, empty to disable conversion
	TargetCrs        string               // proj4 definition of the tree coordinates
	ZOffset          float64              // Z Offset to apply to points while loading

	Command       string
	IndexOptions  *IndexOptions
	QueryOptions  *QueryOptions
	RandomOptions *RandomOptions
}

type IndexOptions struct {
	Output string // Output folder for the exported tree
	Dump   bool   // Print the tree structure once built
	Stats  bool   // Print a summary table once built
}

type QueryOptions struct {
	Operation  Operation           // Operation applied to every query point
	Points     []data.SpatialPoint // Points given on the command line
	QueryInput string              // Optional point file with further query points
}

type RandomOptions struct {
	Output string // Output folder for the exported tree
	Count  int    // Number of random points to draw
	Seed   int64  // Seed of the random source
	Dump   bool   // Print the tree structure once built
}

// ConvertsCoordinates is true when both reference systems are configured
func (opt *IndexerOptions) ConvertsCoordinates() bool {
	return opt.SourceCrs != "" && opt.TargetCrs != ""
}

func (opt *IndexerOptions) Copy() *IndexerOptions {
	newOpt := &IndexerOptions{
		Input:            opt.Input,
		FolderProcessing: opt.FolderProcessing,
		Recursive:        opt.Recursive,
		BoundingBox:      opt.BoundingBox,
		Capacity:         opt.Capacity,
		MaxDepth:         opt.MaxDepth,
		Unique:           opt.Unique,
		SourceCrs:        opt.SourceCrs,
		TargetCrs:        opt.TargetCrs,
		ZOffset:          opt.ZOffset,
		Command:          opt.Command,
	}

	if opt.IndexOptions != nil {
		indexOpt := *opt.IndexOptions
		newOpt.IndexOptions = &indexOpt
	}

	if opt.QueryOptions != nil {
		queryOpt := *opt.QueryOptions
		queryOpt.Points = append([]data.SpatialPoint(nil), opt.QueryOptions.Points...)
		newOpt.QueryOptions = &queryOpt
	}

	if opt.RandomOptions != nil {
		randomOpt := *opt.RandomOptions
		newOpt.RandomOptions = &randomOpt
	}

	return newOpt
}

type IIndexer interface {
	RunIndexer(opts *IndexerOptions) error
}
