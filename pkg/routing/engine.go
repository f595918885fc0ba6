package routing

import (
	"fmt"
	"math"

	"route_planner/pkg/graph"
	"route_planner/pkg/nearest"
)

// LatLng represents a geographic coordinate.
type LatLng struct {
	Lat float64
	Lng float64
}

// Route is the output of a route query. Cost is in Mode's unit.
type Route struct {
	Mode         CostModel
	Cost         float64
	Path         []uint32 // node indices, source first
	Geometry     []LatLng
	LengthMeters float64 // sum of edge lengths along Path
	Settled      int
}

// Router is the interface for route queries.
type Router interface {
	Route(start, end LatLng, mode CostModel) (*Route, error)
	RouteIDs(sourceID, targetID uint32, mode CostModel) (*Route, error)
}

// Engine implements Router over a graph and a nearest-node index.
type Engine struct {
	g       *graph.Graph
	nearest *nearest.Index
}

// NewEngine creates a routing engine and indexes the graph's nodes.
func NewEngine(g *graph.Graph) *Engine {
	return &Engine{
		g:       g,
		nearest: nearest.New(g.Nodes()),
	}
}

// Graph returns the routed graph.
func (e *Engine) Graph() *graph.Graph { return e.g }

// Nearest returns the node index used for coordinate snapping.
func (e *Engine) Nearest() *nearest.Index { return e.nearest }

// Route snaps both points to their nearest nodes and solves between them.
func (e *Engine) Route(start, end LatLng, mode CostModel) (*Route, error) {
	from, err := e.nearest.NearestOne(start.Lat, start.Lng)
	if err != nil {
		return nil, fmt.Errorf("snap start: %w", err)
	}
	to, err := e.nearest.NearestOne(end.Lat, end.Lng)
	if err != nil {
		return nil, fmt.Errorf("snap end: %w", err)
	}
	return e.RouteIDs(from.ID, to.ID, mode)
}

// RouteIDs computes the cheapest route between two node ids.
func (e *Engine) RouteIDs(sourceID, targetID uint32, mode CostModel) (*Route, error) {
	res, err := Solve(e.g, sourceID, targetID, mode)
	if err != nil {
		return nil, err
	}
	path, err := res.Path()
	if err != nil {
		return nil, fmt.Errorf("%d -> %d: %w", sourceID, targetID, err)
	}

	return &Route{
		Mode:         mode,
		Cost:         res.Cost(),
		Path:         path,
		Geometry:     e.buildGeometry(path),
		LengthMeters: e.pathLength(path, mode),
		Settled:      res.Settled,
	}, nil
}

// buildGeometry converts a sequence of node indices into coordinates.
func (e *Engine) buildGeometry(path []uint32) []LatLng {
	geom := make([]LatLng, len(path))
	for i, v := range path {
		n := e.g.Node(v)
		geom[i] = LatLng{Lat: n.Lat, Lng: n.Lon}
	}
	return geom
}

// pathLength sums the lengths of the edges the solver would have taken.
func (e *Engine) pathLength(path []uint32, mode CostModel) float64 {
	var total float64
	for i := 0; i+1 < len(path); i++ {
		if edge, ok := CheapestEdge(e.g, path[i], path[i+1], mode); ok {
			total += float64(e.g.Edge(edge).LengthM)
		}
	}
	return total
}

// CheapestEdge returns the cheapest edge traversable from u to v under mode.
// Parallel edges between the same pair are common in road data.
func CheapestEdge(g *graph.Graph, u, v uint32, mode CostModel) (uint32, bool) {
	best := graph.NoNode
	bestCost := math.Inf(1)
	start, end := g.EdgesFrom(u)
	for k := start; k < end; k++ {
		ei := g.AdjEdge(k)
		if w, ok := g.Neighbor(u, ei); !ok || w != v {
			continue
		}
		edge := g.Edge(ei)
		c, err := mode.EdgeCost(&edge)
		if err != nil {
			continue
		}
		if c < bestCost {
			best, bestCost = ei, c
		}
	}
	return best, best != graph.NoNode
}
