// Package nearest selects graph nodes close to a coordinate.
package nearest

import (
	"fmt"
	"math"
	"sort"

	"github.com/tidwall/rtree"

	"route_planner/pkg/geo"
	"route_planner/pkg/graph"
)

// overfetch is how many extra candidates are pulled from the tree before
// re-ranking, since the tree orders by the equirectangular approximation.
const overfetch = 4

// Candidate is a node near a query point.
type Candidate struct {
	Index     uint32 // node index in the graph
	ID        uint32
	Lat, Lon  float64
	DistanceM float64 // great-circle distance to the query point
}

// Index is an R-tree over node coordinates. Points are stored as (lon, lat).
type Index struct {
	tree  rtree.RTreeG[uint32]
	nodes []graph.Node
}

// New indexes every node. nodes must not be modified afterwards.
func New(nodes []graph.Node) *Index {
	x := &Index{nodes: nodes}
	for i, n := range nodes {
		p := [2]float64{n.Lon, n.Lat}
		x.tree.Insert(p, p, uint32(i))
	}
	return x
}

// Len returns the number of indexed nodes.
func (x *Index) Len() int { return x.tree.Len() }

// Nearest returns up to k nodes ordered by Haversine distance to (lat, lon).
func (x *Index) Nearest(lat, lon float64, k int) []Candidate {
	if k <= 0 || x.Len() == 0 {
		return nil
	}

	want := k + overfetch
	out := make([]Candidate, 0, want)
	x.tree.Nearby(
		func(min, max [2]float64, _ uint32, _ bool) float64 {
			// Closest point of the box to the query, then approximate distance.
			cLon := clamp(lon, min[0], max[0])
			cLat := clamp(lat, min[1], max[1])
			return geo.EquirectangularDist(lat, lon, cLat, cLon)
		},
		func(_, _ [2]float64, i uint32, _ float64) bool {
			n := x.nodes[i]
			out = append(out, Candidate{
				Index:     i,
				ID:        n.ID,
				Lat:       n.Lat,
				Lon:       n.Lon,
				DistanceM: geo.Haversine(lat, lon, n.Lat, n.Lon),
			})
			return len(out) < want
		},
	)

	sort.SliceStable(out, func(a, b int) bool { return out[a].DistanceM < out[b].DistanceM })
	if len(out) > k {
		out = out[:k]
	}
	return out
}

// NearestOne returns the single closest node.
func (x *Index) NearestOne(lat, lon float64) (Candidate, error) {
	if !geo.ValidCoordinate(lat, lon) {
		return Candidate{}, fmt.Errorf("coordinate (%f, %f): %w", lat, lon, graph.ErrInvalidArgument)
	}
	c := x.Nearest(lat, lon, 1)
	if len(c) == 0 {
		return Candidate{}, fmt.Errorf("empty index: %w", graph.ErrNotFound)
	}
	return c[0], nil
}

// Within returns all nodes inside radiusM meters, closest first.
func (x *Index) Within(lat, lon, radiusM float64) []Candidate {
	// Degree box that contains the radius circle.
	dLat := radiusM / 111_320
	dLon := dLat / math.Max(math.Cos(lat*math.Pi/180), 1e-6)

	var out []Candidate
	x.tree.Search(
		[2]float64{lon - dLon, lat - dLat},
		[2]float64{lon + dLon, lat + dLat},
		func(_, _ [2]float64, i uint32) bool {
			n := x.nodes[i]
			if d := geo.Haversine(lat, lon, n.Lat, n.Lon); d <= radiusM {
				out = append(out, Candidate{Index: i, ID: n.ID, Lat: n.Lat, Lon: n.Lon, DistanceM: d})
			}
			return true
		},
	)
	sort.Slice(out, func(a, b int) bool { return out[a].DistanceM < out[b].DistanceM })
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
