package io

import (
	"encoding/json"
	"os"
	"path"

	"github.com/pkg/errors"

	"github.com/ecopia-map/point_octree/internal/octree"
	"github.com/ecopia-map/point_octree/tools"
)

const TreeFileName = "octree.json"

// Document written for external renderers: one entry per node in depth first order
type ExportedTree struct {
	Capacity int            `json:"capacity"`
	Size     int            `json:"size"`
	Stats    octree.Stats   `json:"stats"`
	Nodes    []ExportedNode `json:"nodes"`
}

type ExportedNode struct {
	Depth   int          `json:"depth"`
	Bounds  []float64    `json:"bounds"` // xmin, ymin, zmin, xmax, ymax, zmax
	Divided bool         `json:"divided"`
	Points  [][3]float64 `json:"points,omitempty"`
}

// BuildExportedTree walks the tree from the root recording every node
func BuildExportedTree(tree octree.ITree) *ExportedTree {
	root := tree.GetRootNode()
	exported := &ExportedTree{
		Capacity: root.Capacity(),
		Size:     tree.Size(),
		Stats:    tree.Stats(),
		Nodes:    make([]ExportedNode, 0),
	}
	exportNode(root, exported)
	return exported
}

func exportNode(node octree.INode, exported *ExportedTree) {
	exportedNode := ExportedNode{
		Depth:   node.Depth(),
		Bounds:  node.GetBoundingBox().GetAsArray(),
		Divided: node.IsDivided(),
	}
	for _, p := range node.GetPoints() {
		exportedNode.Points = append(exportedNode.Points, [3]float64{p.X, p.Y, p.Z})
	}
	exported.Nodes = append(exported.Nodes, exportedNode)

	if node.IsDivided() {
		for _, child := range node.GetChildren() {
			exportNode(child, exported)
		}
	}
}

// ExportTree writes the tree as formatted json in the given folder, returning the file path
func ExportTree(tree octree.ITree, folder string) (string, error) {
	if err := tools.CreateDirectoryIfDoesNotExist(folder); err != nil {
		return "", errors.Wrap(err, "cannot create output folder")
	}

	content, err := json.MarshalIndent(BuildExportedTree(tree), "", "\t")
	if err != nil {
		return "", errors.Wrap(err, "cannot encode octree")
	}

	filePath := path.Join(folder, TreeFileName)
	if err := os.WriteFile(filePath, content, 0666); err != nil {
		return "", errors.Wrap(err, "cannot write octree file")
	}

	return filePath, nil
}
