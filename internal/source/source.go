// Package source loads a road network from whichever input the CLI was given.
package source

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/paulmach/orb"

	"route_planner/internal/logger"
	"route_planner/internal/metrics"
	"route_planner/pkg/graph"
	"route_planner/pkg/loader"
	osmparser "route_planner/pkg/osm"
)

// Input kinds, also used as the metrics "source" label.
const (
	KindPBF    = "pbf"
	KindBinary = "binary"
	KindCSV    = "csv"
)

// Options names the input files. The first non-empty of PBF, GraphFile and
// the CSV pair wins.
type Options struct {
	PBF       string
	GraphFile string
	NodesCSV  string
	EdgesCSV  string
	BBox      *orb.Bound // PBF only
}

// Kind reports which input Load will read.
func (o Options) Kind() (string, error) {
	switch {
	case o.PBF != "":
		return KindPBF, nil
	case o.GraphFile != "":
		return KindBinary, nil
	case o.NodesCSV != "" && o.EdgesCSV != "":
		return KindCSV, nil
	}
	return "", fmt.Errorf("no input: need a PBF file, a binary graph, or nodes and edges CSV: %w", graph.ErrInvalidArgument)
}

// Load reads node and edge arrays.
func Load(ctx context.Context, o Options) ([]graph.Node, []graph.Edge, string, error) {
	kind, err := o.Kind()
	if err != nil {
		return nil, nil, "", err
	}

	var nodes []graph.Node
	var edges []graph.Edge
	switch kind {
	case KindPBF:
		f, err := os.Open(o.PBF)
		if err != nil {
			return nil, nil, kind, fmt.Errorf("open pbf: %w", err)
		}
		defer f.Close()
		res, err := osmparser.Parse(ctx, f, osmparser.ParseOptions{BBox: o.BBox})
		if err != nil {
			return nil, nil, kind, err
		}
		nodes, edges = res.Nodes, res.Edges
	case KindBinary:
		nodes, edges, err = graph.ReadBinary(o.GraphFile)
	case KindCSV:
		nodes, edges, err = loader.LoadCSV(o.NodesCSV, o.EdgesCSV)
	}
	if err != nil {
		return nil, nil, kind, err
	}
	return nodes, edges, kind, nil
}

// Build loads the input and constructs the graph, recording load metrics.
func Build(ctx context.Context, o Options) (*graph.Graph, error) {
	start := time.Now()
	nodes, edges, kind, err := Load(ctx, o)
	if err != nil {
		return nil, err
	}
	g, err := graph.New(nodes, edges)
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}

	elapsed := time.Since(start)
	metrics.ObserveLoad(kind, g.NumNodes(), g.NumEdges(), elapsed)
	logger.L().Info("graph_built",
		"source", kind,
		"nodes", g.NumNodes(),
		"edges", g.NumEdges(),
		"adjacency", len(g.Indices),
		"duration_ms", elapsed.Milliseconds(),
	)
	return g, nil
}
