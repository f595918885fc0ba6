package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"route_planner/internal/config"
	"route_planner/internal/logger"
	"route_planner/internal/metrics"
	"route_planner/internal/source"
	"route_planner/pkg/geo"
	"route_planner/pkg/graph"
	"route_planner/pkg/loader"
)

func main() {
	cfg := config.Load()
	l := logger.Setup()

	pbf := flag.String("pbf", "", "Path to .osm.pbf file")
	nodesCSV := flag.String("nodes", "", "Nodes CSV (id,latitude,longitude)")
	edgesCSV := flag.String("edges", "", "Edges CSV (from,to,name,speed_limit,highway_type,length,oneway)")
	output := flag.String("output", "graph.bin", "Output binary graph file path")
	bbox := flag.String("bbox", "", "Bounding box filter for PBF input: minLat,minLon,maxLat,maxLon")
	largest := flag.Bool("largest", false, "Keep only the largest connected component")
	csvNodesOut := flag.String("csv-nodes-out", "", "Also write nodes as CSV")
	csvEdgesOut := flag.String("csv-edges-out", "", "Also write edges as CSV")
	metricsFile := flag.String("metrics-file", cfg.MetricsFile, "Write Prometheus metrics to this textfile")
	flag.Parse()

	if *pbf == "" && (*nodesCSV == "" || *edgesCSV == "") {
		fmt.Fprintln(os.Stderr, "Usage: convert (-pbf <file.osm.pbf> [-bbox minLat,minLon,maxLat,maxLon] | -nodes nodes.csv -edges edges.csv) [-output graph.bin] [-largest]")
		os.Exit(1)
	}

	opts := source.Options{PBF: *pbf, NodesCSV: *nodesCSV, EdgesCSV: *edgesCSV}
	if *bbox != "" {
		b, err := geo.ParseBBox(*bbox)
		if err != nil {
			l.Error("bbox_invalid", "err", err)
			os.Exit(1)
		}
		opts.BBox = &b
		l.Info("bbox_filter", "min_lat", b.Min.Lat(), "min_lon", b.Min.Lon(), "max_lat", b.Max.Lat(), "max_lon", b.Max.Lon())
	}

	start := time.Now()
	if err := run(context.Background(), opts, *output, *largest, *csvNodesOut, *csvEdgesOut); err != nil {
		l.Error("convert_failed", "err", err)
		os.Exit(1)
	}

	info, err := os.Stat(*output)
	if err == nil {
		l.Info("convert_done",
			"output", *output,
			"size_mb", fmt.Sprintf("%.1f", float64(info.Size())/(1024*1024)),
			"elapsed", time.Since(start).Round(time.Millisecond).String(),
		)
	}

	if *metricsFile != "" {
		if err := metrics.WriteFile(*metricsFile); err != nil {
			l.Error("metrics_write_failed", "err", err)
		}
	}
}

// run loads, optionally filters, and writes the binary graph.
func run(ctx context.Context, opts source.Options, output string, largest bool, csvNodesOut, csvEdgesOut string) error {
	g, err := source.Build(ctx, opts)
	if err != nil {
		return err
	}
	nodes, edges := g.Nodes(), g.Edges()

	if largest {
		keep := graph.LargestComponent(g)
		nodes, edges = graph.FilterToComponent(g, keep)
		logger.L().Info("largest_component",
			"nodes", len(nodes),
			"share_pct", fmt.Sprintf("%.1f", float64(len(nodes))/float64(g.NumNodes())*100),
			"edges", len(edges),
		)
	}

	if err := graph.WriteBinary(output, nodes, edges); err != nil {
		return fmt.Errorf("write binary: %w", err)
	}

	if csvNodesOut != "" && csvEdgesOut != "" {
		if err := loader.SaveCSV(csvNodesOut, csvEdgesOut, nodes, edges); err != nil {
			return err
		}
	}
	return nil
}
