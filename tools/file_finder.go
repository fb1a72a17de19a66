package tools

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/ecopia-map/point_octree/internal/indexer"
)

// Extensions of the text point files picked up when processing folders
var PointFileExtensions = []string{".xyz", ".txt", ".csv"}

type FileFinder interface {
	GetPointFilesToProcess(opts *indexer.IndexerOptions) ([]string, error)
}

type StandardFileFinder struct{}

func NewStandardFileFinder() FileFinder {
	return &StandardFileFinder{}
}

func (f *StandardFileFinder) GetPointFilesToProcess(opts *indexer.IndexerOptions) ([]string, error) {
	// If folder processing is not enabled then the point file is given by -input flag, otherwise look for point
	// files in -input folder eventually excluding nested folders if Recursive flag is disabled
	if !opts.FolderProcessing {
		return []string{opts.Input}, nil
	}

	return f.getPointFilesFromInputFolder(opts)
}

func (f *StandardFileFinder) getPointFilesFromInputFolder(opts *indexer.IndexerOptions) ([]string, error) {
	var pointFiles = make([]string, 0)

	baseInfo, err := os.Stat(opts.Input)
	if err != nil {
		return nil, errors.Wrap(err, "cannot read input folder")
	}
	err = filepath.Walk(
		opts.Input,
		func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				if !opts.Recursive && !os.SameFile(info, baseInfo) {
					return filepath.SkipDir
				}
				return nil
			}
			if IsPointFile(info.Name()) {
				pointFiles = append(pointFiles, path)
			}
			return nil
		},
	)

	if err != nil {
		return nil, errors.Wrap(err, "cannot list input folder")
	}

	return pointFiles, nil
}

func IsPointFile(name string) bool {
	extension := strings.ToLower(filepath.Ext(name))
	for _, e := range PointFileExtensions {
		if extension == e {
			return true
		}
	}
	return false
}
