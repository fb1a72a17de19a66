package pkg

import (
	"fmt"
	stdio "io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/ecopia-map/point_octree/internal/io"
	"github.com/ecopia-map/point_octree/internal/octree"
)

// Prints the shape of the tree along with the loading counters
func writeStatsTable(w stdio.Writer, tree octree.ITree, report io.ConsumerReport) {
	stats := tree.Stats()

	t := table.NewWriter()
	t.AppendHeader(table.Row{"Metric", "Value"})
	t.AppendRow(table.Row{"Boundary", tree.GetRootNode().GetBoundingBox().String()})
	t.AppendRow(table.Row{"Capacity", tree.GetRootNode().Capacity()})
	t.AppendRow(table.Row{"Points", stats.Points})
	t.AppendRow(table.Row{"Nodes", stats.Nodes})
	t.AppendRow(table.Row{"Leaves", stats.Leaves})
	t.AppendRow(table.Row{"Divided nodes", stats.DividedNodes})
	t.AppendRow(table.Row{"Max depth", stats.MaxDepth})
	t.AppendSeparator()
	t.AppendRow(table.Row{"Read", report.Processed})
	t.AppendRow(table.Row{"Inserted", report.Inserted})
	t.AppendRow(table.Row{"Rejected", report.Rejected})
	t.AppendRow(table.Row{"Duplicates", report.Duplicates})

	fmt.Fprintln(w, t.Render())
}

// Prints one row per query point
func writeQueryTable(w stdio.Writer, results []io.QueryResult) {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Operation", "Point", "Source", "Result"})
	for i, result := range results {
		outcome := color.RedString("miss")
		if result.Hit {
			outcome = color.GreenString("hit")
		}
		t.AppendRow(table.Row{
			i + 1,
			result.Operation.String(),
			result.Point.String(),
			fmt.Sprintf("%s:%d", result.Source, result.Line),
			outcome,
		})
	}

	fmt.Fprintln(w, t.Render())
}
