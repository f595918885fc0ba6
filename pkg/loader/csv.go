// Package loader reads road networks from CSV files.
//
// nodes.csv has a header and the columns id,latitude,longitude.
// edges.csv has a header and the columns
// from,to,name,speed_limit,highway_type,length,oneway.
package loader

import (
	"encoding/csv"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"route_planner/pkg/graph"
)

const (
	// DefaultSpeedKmh applies when speed_limit is missing or not positive.
	DefaultSpeedKmh = 50
	// DefaultHighway applies when highway_type is missing.
	DefaultHighway = "unknown"

	minEdgeFields = 6
)

// Stats counts what a read accepted and skipped.
type Stats struct {
	Lines   int
	Loaded  int
	Skipped int
}

// LoadCSV reads both files.
func LoadCSV(nodesPath, edgesPath string) ([]graph.Node, []graph.Edge, error) {
	nf, err := os.Open(nodesPath)
	if err != nil {
		return nil, nil, errors.Wrap(err, "Can't open nodes file")
	}
	defer nf.Close()

	nodes, ns, err := ReadNodes(nf)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "Can't read nodes from %s", nodesPath)
	}

	ef, err := os.Open(edgesPath)
	if err != nil {
		return nil, nil, errors.Wrap(err, "Can't open edges file")
	}
	defer ef.Close()

	edges, es, err := ReadEdges(ef)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "Can't read edges from %s", edgesPath)
	}

	slog.Info("csv_loaded",
		"nodes", ns.Loaded, "nodes_skipped", ns.Skipped,
		"edges", es.Loaded, "edges_skipped", es.Skipped,
	)
	return nodes, edges, nil
}

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true
	return cr
}

// ReadNodes parses nodes.csv content. Malformed lines are skipped with a warning.
func ReadNodes(r io.Reader) ([]graph.Node, Stats, error) {
	cr := newReader(r)
	var st Stats
	if _, err := cr.Read(); err != nil {
		if err == io.EOF {
			return nil, st, nil
		}
		return nil, st, errors.Wrap(err, "Can't read header")
	}

	var nodes []graph.Node
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		st.Lines++
		if err != nil {
			if _, ok := err.(*csv.ParseError); ok {
				slog.Warn("node_line_skipped", "line", st.Lines+1, "err", err)
				st.Skipped++
				continue
			}
			return nil, st, errors.Wrap(err, "Can't read node line")
		}
		if blank(rec) {
			st.Lines--
			continue
		}

		n, reason := parseNode(rec)
		if reason != "" {
			slog.Warn("node_line_skipped", "line", st.Lines+1, "reason", reason)
			st.Skipped++
			continue
		}
		nodes = append(nodes, n)
		st.Loaded++
	}
	return nodes, st, nil
}

func parseNode(rec []string) (graph.Node, string) {
	if len(rec) < 3 {
		return graph.Node{}, "fewer than 3 fields"
	}
	id, err := parseID(field(rec, 0))
	if err != nil {
		return graph.Node{}, "bad id"
	}
	lat, err := strconv.ParseFloat(field(rec, 1), 64)
	if err != nil {
		return graph.Node{}, "bad latitude"
	}
	lon, err := strconv.ParseFloat(field(rec, 2), 64)
	if err != nil {
		return graph.Node{}, "bad longitude"
	}
	return graph.Node{ID: id, Lat: lat, Lon: lon}, ""
}

// ReadEdges parses edges.csv content. Lines with fewer than six fields, a
// missing endpoint or a non-positive length are skipped with a warning.
func ReadEdges(r io.Reader) ([]graph.Edge, Stats, error) {
	cr := newReader(r)
	var st Stats
	if _, err := cr.Read(); err != nil {
		if err == io.EOF {
			return nil, st, nil
		}
		return nil, st, errors.Wrap(err, "Can't read header")
	}

	var edges []graph.Edge
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		st.Lines++
		if err != nil {
			if _, ok := err.(*csv.ParseError); ok {
				slog.Warn("edge_line_skipped", "line", st.Lines+1, "err", err)
				st.Skipped++
				continue
			}
			return nil, st, errors.Wrap(err, "Can't read edge line")
		}
		if blank(rec) {
			st.Lines--
			continue
		}

		e, reason := parseEdge(rec)
		if reason != "" {
			slog.Warn("edge_line_skipped", "line", st.Lines+1, "reason", reason)
			st.Skipped++
			continue
		}
		edges = append(edges, e)
		st.Loaded++
	}
	return edges, st, nil
}

func parseEdge(rec []string) (graph.Edge, string) {
	if len(rec) < minEdgeFields {
		return graph.Edge{}, "fewer than 6 fields"
	}
	if field(rec, 0) == "" {
		return graph.Edge{}, "missing from"
	}
	from, err := parseID(field(rec, 0))
	if err != nil {
		return graph.Edge{}, "bad from"
	}
	if field(rec, 1) == "" {
		return graph.Edge{}, "missing to"
	}
	to, err := parseID(field(rec, 1))
	if err != nil {
		return graph.Edge{}, "bad to"
	}
	if field(rec, 5) == "" {
		return graph.Edge{}, "missing length"
	}
	length, err := strconv.ParseFloat(field(rec, 5), 64)
	if err != nil || !(length > 0) || math.IsInf(length, 1) {
		return graph.Edge{}, "invalid length"
	}

	e := graph.Edge{
		FromID:      from,
		ToID:        to,
		LengthM:     RoundLength(length),
		SpeedKmh:    ParseSpeed(field(rec, 3)),
		OneWay:      ParseOneWay(field(rec, 6)),
		Name:        field(rec, 2),
		HighwayType: field(rec, 4),
	}
	if e.HighwayType == "" {
		e.HighwayType = DefaultHighway
	}
	return e, ""
}

// RoundLength converts a length in meters to whole meters, at least 1.
func RoundLength(m float64) uint32 {
	r := math.Round(m)
	if r < 1 {
		return 1
	}
	if r > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(r)
}

// ParseSpeed returns the leading integer of s in km/h, or DefaultSpeedKmh
// when it is missing or not positive.
func ParseSpeed(s string) uint16 {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	v, err := strconv.Atoi(s[:end])
	if err != nil || v <= 0 {
		return DefaultSpeedKmh
	}
	return uint16(min(v, math.MaxUint16))
}

// ParseOneWay accepts yes, true and 1.
func ParseOneWay(s string) bool {
	return s == "yes" || s == "true" || s == "1"
}

func parseID(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	return uint32(v), err
}

func field(rec []string, i int) string {
	if i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func blank(rec []string) bool {
	return len(rec) == 1 && strings.TrimSpace(rec[0]) == ""
}
