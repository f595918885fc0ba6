// Package osm builds road networks from OpenStreetMap PBF extracts.
package osm

import (
	"context"
	"io"
	"log/slog"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/pkg/errors"

	"route_planner/pkg/geo"
	"route_planner/pkg/graph"
	"route_planner/pkg/loader"
)

// ParseOptions configures the OSM parser.
type ParseOptions struct {
	// BBox, if set, keeps only segments with both endpoints inside.
	BBox *orb.Bound
}

// Stats counts what a parse kept and dropped.
type Stats struct {
	Ways            int
	Segments        int
	MissingCoords   int
	OutsideBBox     int
	IDOutOfRange    int
	ReferencedNodes int
}

// Result holds node and edge arrays ready for graph.New.
type Result struct {
	Nodes []graph.Node
	Edges []graph.Edge
	Stats Stats
}

// wayInfo holds parsed way data collected during Pass 1.
type wayInfo struct {
	NodeIDs []osm.NodeID
	Dir     direction
	Speed   uint16
	Name    string
	Highway string
}

// Parse reads an OSM PBF file and returns one edge per way segment for car
// routing. The reader is consumed twice, so it must implement io.ReadSeeker.
func Parse(ctx context.Context, rs io.ReadSeeker, opts ...ParseOptions) (*Result, error) {
	var opt ParseOptions
	if len(opts) > 0 {
		opt = opts[0]
	}

	// Pass 1: Scan ways to collect referenced node IDs and way info.
	referenced := make(map[osm.NodeID]struct{})
	var ways []wayInfo

	scanner := osmpbf.New(ctx, rs, 1)
	scanner.SkipNodes = true
	scanner.SkipRelations = true

	for scanner.Scan() {
		w, ok := scanner.Object().(*osm.Way)
		if !ok {
			continue
		}
		info, ok := parseWay(w)
		if !ok {
			continue
		}
		for _, id := range info.NodeIDs {
			referenced[id] = struct{}{}
		}
		ways = append(ways, info)
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return nil, errors.Wrap(err, "Can't scan ways")
	}
	scanner.Close()

	slog.Info("osm_pass1_done", "ways", len(ways), "referenced_nodes", len(referenced))

	// Pass 2: Scan nodes to collect coordinates for referenced nodes only.
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, errors.Wrap(err, "Can't seek for node pass")
	}

	coords := make(map[osm.NodeID]orb.Point, len(referenced))

	scanner = osmpbf.New(ctx, rs, 1)
	scanner.SkipWays = true
	scanner.SkipRelations = true

	for scanner.Scan() {
		n, ok := scanner.Object().(*osm.Node)
		if !ok {
			continue
		}
		if _, needed := referenced[n.ID]; !needed {
			continue
		}
		coords[n.ID] = n.Point()
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return nil, errors.Wrap(err, "Can't scan nodes")
	}
	scanner.Close()

	slog.Info("osm_pass2_done", "coords", len(coords))

	res := buildNetwork(ways, coords, opt)
	res.Stats.ReferencedNodes = len(referenced)

	if res.Stats.MissingCoords > 0 {
		slog.Warn("osm_missing_coords", "segments", res.Stats.MissingCoords)
	}
	if res.Stats.IDOutOfRange > 0 {
		slog.Warn("osm_id_out_of_range", "segments", res.Stats.IDOutOfRange)
	}
	if res.Stats.OutsideBBox > 0 {
		slog.Info("osm_bbox_filtered", "segments", res.Stats.OutsideBBox)
	}
	slog.Info("osm_network_built", "nodes", len(res.Nodes), "edges", len(res.Edges))

	return res, nil
}

// parseWay extracts routing attributes, reporting false for ways that carry
// no drivable segment.
func parseWay(w *osm.Way) (wayInfo, bool) {
	if !isCarAccessible(w.Tags) || len(w.Nodes) < 2 {
		return wayInfo{}, false
	}
	dir := wayDirection(w.Tags)
	if dir == dirNone {
		return wayInfo{}, false
	}

	hw := w.Tags.Find("highway")
	return wayInfo{
		NodeIDs: w.Nodes.NodeIDs(),
		Dir:     dir,
		Speed:   ParseMaxSpeed(w.Tags.Find("maxspeed"), hw),
		Name:    w.Tags.Find("name"),
		Highway: hw,
	}, true
}

// buildNetwork turns ways and node coordinates into node and edge arrays.
// Nodes appear in order of first use by a kept segment.
func buildNetwork(ways []wayInfo, coords map[osm.NodeID]orb.Point, opt ParseOptions) *Result {
	res := &Result{}
	seen := make(map[osm.NodeID]struct{})
	addNode := func(id osm.NodeID, p orb.Point) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		res.Nodes = append(res.Nodes, graph.Node{ID: uint32(id), Lat: p.Lat(), Lon: p.Lon()})
	}

	for _, w := range ways {
		res.Stats.Ways++
		for i := 0; i < len(w.NodeIDs)-1; i++ {
			res.Stats.Segments++
			fromID, toID := w.NodeIDs[i], w.NodeIDs[i+1]
			if fromID == toID {
				continue
			}

			from, fromOk := coords[fromID]
			to, toOk := coords[toID]
			if !fromOk || !toOk {
				res.Stats.MissingCoords++
				continue
			}
			if fromID < 0 || toID < 0 || fromID > math.MaxUint32 || toID > math.MaxUint32 {
				res.Stats.IDOutOfRange++
				continue
			}
			if opt.BBox != nil && (!opt.BBox.Contains(from) || !opt.BBox.Contains(to)) {
				res.Stats.OutsideBBox++
				continue
			}

			if w.Dir == dirBackward {
				fromID, toID = toID, fromID
				from, to = to, from
			}
			addNode(fromID, from)
			addNode(toID, to)

			res.Edges = append(res.Edges, graph.Edge{
				FromID:      uint32(fromID),
				ToID:        uint32(toID),
				LengthM:     loader.RoundLength(geo.Haversine(from.Lat(), from.Lon(), to.Lat(), to.Lon())),
				SpeedKmh:    w.Speed,
				OneWay:      w.Dir != dirBoth,
				Name:        w.Name,
				HighwayType: w.Highway,
			})
		}
	}
	return res
}
