package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"strconv"

	"route_planner/internal/config"
	"route_planner/internal/logger"
	"route_planner/internal/metrics"
	"route_planner/internal/source"
	"route_planner/pkg/geo"
	"route_planner/pkg/routing"
)

const usage = `Usage:
  route [-graph graph.bin | -nodes nodes.csv -edges edges.csv | -pbf file.osm.pbf] [-mode distance|time]
        (-source ID -target ID | -from lat,lon -to lat,lon | -source ID -all | -interactive)
        [-gpx out.gpx] [-geojson out.geojson] [-metrics-file route.prom]
  route nodes.csv edges.csv source_id [target_id] [output.gpx]`

func main() {
	cfg := config.Load()
	l := logger.Setup()

	graphFile := flag.String("graph", cfg.GraphFile, "Binary graph file (from convert)")
	nodesCSV := flag.String("nodes", cfg.NodesCSV, "Nodes CSV")
	edgesCSV := flag.String("edges", cfg.EdgesCSV, "Edges CSV")
	pbf := flag.String("pbf", "", "OSM PBF file")
	modeName := flag.String("mode", cfg.Mode, "Cost model: distance (meters) or time (minutes)")
	sourceID := flag.Uint64("source", 0, "Source node id")
	targetID := flag.Uint64("target", 0, "Target node id")
	from := flag.String("from", "", "Start coordinate lat,lon")
	to := flag.String("to", "", "End coordinate lat,lon")
	all := flag.Bool("all", false, "Print costs from -source to every reachable node")
	interactive := flag.Bool("interactive", false, "Prompt for start and end coordinates")
	candidates := flag.Int("candidates", cfg.Candidates, "Nearest nodes listed per interactive prompt")
	gpxOut := flag.String("gpx", "", "Write the route as a GPX track")
	geojsonOut := flag.String("geojson", "", "Write the route as GeoJSON")
	metricsFile := flag.String("metrics-file", cfg.MetricsFile, "Write Prometheus metrics to this textfile")
	flag.Usage = func() { fmt.Fprintln(os.Stderr, usage); flag.PrintDefaults() }
	flag.Parse()

	// Positional form: nodes.csv edges.csv source [target] [output.gpx].
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	haveSource, haveTarget := set["source"], set["target"]
	if *sourceID > math.MaxUint32 || *targetID > math.MaxUint32 {
		l.Error("node_id_out_of_range", "source", *sourceID, "target", *targetID)
		os.Exit(1)
	}
	if args := flag.Args(); len(args) > 0 {
		if len(args) < 3 {
			flag.Usage()
			os.Exit(1)
		}
		*nodesCSV, *edgesCSV, *graphFile = args[0], args[1], ""
		*sourceID = mustID(args[2])
		haveSource = true
		if len(args) > 3 {
			*targetID = mustID(args[3])
			haveTarget = true
		} else {
			*all = true
		}
		if len(args) > 4 {
			*gpxOut = args[4]
		}
	}

	mode, err := routing.ParseCostModel(*modeName)
	if err != nil {
		l.Error("mode_invalid", "err", err)
		os.Exit(1)
	}

	g, err := source.Build(context.Background(), source.Options{
		PBF:       *pbf,
		GraphFile: *graphFile,
		NodesCSV:  *nodesCSV,
		EdgesCSV:  *edgesCSV,
	})
	if err != nil {
		l.Error("graph_load_failed", "err", err)
		os.Exit(1)
	}

	a := &app{
		engine:      routing.NewEngine(g),
		mode:        mode,
		out:         os.Stdout,
		gpxPath:     *gpxOut,
		geojsonPath: *geojsonOut,
	}

	switch {
	case *interactive:
		err = a.interactive(os.Stdin, *candidates)
	case *all && haveSource:
		err = a.reachable(uint32(*sourceID))
	case haveSource && haveTarget:
		err = a.routeIDs(uint32(*sourceID), uint32(*targetID))
	case *from != "" && *to != "":
		err = a.routeCoords(*from, *to)
	default:
		flag.Usage()
		os.Exit(1)
	}

	if *metricsFile != "" {
		if werr := metrics.WriteFile(*metricsFile); werr != nil {
			l.Error("metrics_write_failed", "err", werr)
		}
	}
	if err != nil {
		l.Error("route_failed", "err", err)
		os.Exit(1)
	}
}

func mustID(s string) uint64 {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid node id %q\n", s)
		os.Exit(1)
	}
	return id
}

func parseLatLng(s string) (routing.LatLng, error) {
	lat, lon, err := geo.ParseLatLng(s)
	if err != nil {
		return routing.LatLng{}, err
	}
	return routing.LatLng{Lat: lat, Lng: lon}, nil
}
