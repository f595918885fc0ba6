package routing

import (
	"fmt"
	"math"
	"slices"

	"route_planner/pkg/graph"
)

// Result holds the output of one solve. Each call allocates its own Result;
// nothing is shared between solves.
type Result struct {
	Distances    []float64 // +Inf for unreached nodes
	Predecessors []uint32  // graph.NoNode where unset
	Visited      []bool    // settled nodes

	Source      uint32
	Target      uint32 // graph.NoNode for SolveAll
	TargetFound bool
	Mode        CostModel
	Settled     int
}

// Solve runs Dijkstra from sourceID and stops as soon as targetID is settled.
// Costs are meters in Distance mode and minutes in Time mode.
//
// A time-mode solve that meets an edge with zero speed limit fails as a
// whole with ErrZeroSpeed. An unreachable target is not an error: the result
// has TargetFound false and Cost +Inf.
func Solve(g *graph.Graph, sourceID, targetID uint32, mode CostModel) (*Result, error) {
	if g == nil {
		return nil, graph.ErrNilInput
	}
	if sourceID == targetID {
		return nil, fmt.Errorf("node %d: %w", sourceID, ErrSameNode)
	}
	if !mode.valid() {
		return nil, fmt.Errorf("cost model %d: %w", int(mode), graph.ErrInvalidArgument)
	}
	source, err := g.Lookup(sourceID)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	target, err := g.Lookup(targetID)
	if err != nil {
		return nil, fmt.Errorf("target: %w", err)
	}
	return run(g, source, target, mode)
}

// SolveAll runs Dijkstra from sourceID to exhaustion, settling every
// reachable node.
func SolveAll(g *graph.Graph, sourceID uint32, mode CostModel) (*Result, error) {
	if g == nil {
		return nil, graph.ErrNilInput
	}
	if !mode.valid() {
		return nil, fmt.Errorf("cost model %d: %w", int(mode), graph.ErrInvalidArgument)
	}
	source, err := g.Lookup(sourceID)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	return run(g, source, graph.NoNode, mode)
}

func run(g *graph.Graph, source, target uint32, mode CostModel) (*Result, error) {
	n := g.NumNodes()
	r := &Result{
		Distances:    make([]float64, n),
		Predecessors: make([]uint32, n),
		Visited:      make([]bool, n),
		Source:       source,
		Target:       target,
		Mode:         mode,
	}
	inf := math.Inf(1)
	for i := range r.Distances {
		r.Distances[i] = inf
		r.Predecessors[i] = graph.NoNode
	}
	r.Distances[source] = 0

	pq := NewMinHeap(int(n))
	pq.Push(source, 0)

	for pq.Len() > 0 {
		u := pq.Pop().Node
		if r.Visited[u] {
			continue // stale entry
		}
		r.Visited[u] = true
		r.Settled++

		if u == target {
			r.TargetFound = true
			break
		}

		start, end := g.EdgesFrom(u)
		for k := start; k < end; k++ {
			e := g.AdjEdge(k)
			v, ok := g.Neighbor(u, e)
			if !ok || r.Visited[v] {
				continue
			}
			edge := g.Edge(e)
			c, err := mode.EdgeCost(&edge)
			if err != nil {
				return nil, fmt.Errorf("edge %d (%d -> %d): %w", e, edge.FromID, edge.ToID, err)
			}
			if d := r.Distances[u] + c; d < r.Distances[v] {
				r.Distances[v] = d
				r.Predecessors[v] = u
				pq.Push(v, d)
			}
		}
	}

	return r, nil
}

// Cost returns the cost to the target, +Inf if it was not reached.
func (r *Result) Cost() float64 {
	if r.Target == graph.NoNode {
		return math.Inf(1)
	}
	return r.Distances[r.Target]
}

// Reachable reports whether node index v was settled.
func (r *Result) Reachable(v uint32) bool {
	return int(v) < len(r.Visited) && r.Visited[v]
}

// Path returns the node indices from source to target.
func (r *Result) Path() ([]uint32, error) {
	if r.Target == graph.NoNode {
		return nil, fmt.Errorf("result has no target: %w", graph.ErrInvalidArgument)
	}
	if !r.TargetFound {
		return nil, ErrNoRoute
	}
	return r.PathTo(r.Target)
}

// PathTo returns the node indices from source to any settled node v.
func (r *Result) PathTo(v uint32) ([]uint32, error) {
	if int(v) >= len(r.Visited) {
		return nil, fmt.Errorf("node index %d out of range: %w", v, graph.ErrInvalidArgument)
	}
	if !r.Visited[v] {
		return nil, ErrNoRoute
	}

	path := []uint32{v}
	for v != r.Source {
		v = r.Predecessors[v]
		if v == graph.NoNode || len(path) > len(r.Predecessors) {
			return nil, fmt.Errorf("broken predecessor chain: %w", ErrNoRoute)
		}
		path = append(path, v)
	}
	slices.Reverse(path)
	return path, nil
}

// PathIDs resolves a path of node indices to external node ids.
func PathIDs(g *graph.Graph, path []uint32) []uint32 {
	ids := make([]uint32, len(path))
	for i, v := range path {
		ids[i] = g.Node(v).ID
	}
	return ids
}
