package graph

import (
	"fmt"
	"math"
	"slices"
)

// New builds a Graph from finalized node and edge arrays. The arrays are
// copied; the returned graph does not alias caller memory.
//
// Every edge endpoint must resolve to a node id. An unresolved endpoint
// aborts construction and no graph is returned.
func New(nodes []Node, edges []Edge) (*Graph, error) {
	if len(nodes) == 0 {
		return nil, fmt.Errorf("empty node array: %w", ErrInvalidArgument)
	}
	if uint64(len(nodes)) >= math.MaxUint32 || uint64(len(edges)) >= math.MaxUint32/2 {
		return nil, fmt.Errorf("graph too large (%d nodes, %d edges): %w", len(nodes), len(edges), ErrInvalidArgument)
	}

	g := &Graph{
		nodes: slices.Clone(nodes),
		edges: slices.Clone(edges),
		index: NewIDIndex(len(nodes)),
	}
	for i, n := range g.nodes {
		g.index.Insert(n.ID, uint32(i))
	}

	if err := g.buildCSR(); err != nil {
		return nil, err
	}
	return g, nil
}

// buildCSR resolves edge endpoints and lays out adjacency in two passes:
// count degrees, prefix-sum into Offsets, then scatter edge positions.
func (g *Graph) buildCSR() error {
	numNodes := uint32(len(g.nodes))
	numEdges := len(g.edges)

	g.fromIdx = make([]uint32, numEdges)
	g.toIdx = make([]uint32, numEdges)
	degree := make([]uint32, numNodes)

	// Pass 1: resolve and count.
	for i := range g.edges {
		e := &g.edges[i]
		if e.LengthM == 0 {
			return fmt.Errorf("edge %d (%d -> %d) has zero length: %w", i, e.FromID, e.ToID, ErrInvalidData)
		}
		from, err := g.index.Lookup(e.FromID)
		if err != nil {
			return fmt.Errorf("edge %d from endpoint: %w", i, err)
		}
		to, err := g.index.Lookup(e.ToID)
		if err != nil {
			return fmt.Errorf("edge %d to endpoint: %w", i, err)
		}
		g.fromIdx[i] = from
		g.toIdx[i] = to

		degree[from]++
		if !e.OneWay {
			degree[to]++
		}
	}

	g.Offsets = make([]uint32, numNodes+1)
	for u := uint32(0); u < numNodes; u++ {
		g.Offsets[u+1] = g.Offsets[u] + degree[u]
	}

	// Pass 2: degree becomes the per-node write cursor.
	clear(degree)
	g.Indices = make([]uint32, g.Offsets[numNodes])
	for i := range g.edges {
		from := g.fromIdx[i]
		g.Indices[g.Offsets[from]+degree[from]] = uint32(i)
		degree[from]++
		if !g.edges[i].OneWay {
			to := g.toIdx[i]
			g.Indices[g.Offsets[to]+degree[to]] = uint32(i)
			degree[to]++
		}
	}

	return nil
}

// validateCSR checks structural CSR invariants.
func validateCSR(offsets, indices []uint32, numNodes, numEdges uint32) error {
	if uint32(len(offsets)) != numNodes+1 {
		return fmt.Errorf("Offsets length %d != NumNodes+1 %d", len(offsets), numNodes+1)
	}
	if offsets[0] != 0 {
		return fmt.Errorf("Offsets[0] = %d, want 0", offsets[0])
	}
	if uint32(len(indices)) != offsets[numNodes] {
		return fmt.Errorf("Indices length %d != Offsets[NumNodes] %d", len(indices), offsets[numNodes])
	}
	for i := uint32(1); i <= numNodes; i++ {
		if offsets[i] < offsets[i-1] {
			return fmt.Errorf("Offsets not monotonic at %d: %d < %d", i, offsets[i], offsets[i-1])
		}
	}
	for i, e := range indices {
		if e >= numEdges {
			return fmt.Errorf("Indices[%d]=%d >= NumEdges=%d", i, e, numEdges)
		}
	}
	return nil
}

// Validate re-checks the CSR layout of a built graph.
func (g *Graph) Validate() error {
	return validateCSR(g.Offsets, g.Indices, g.NumNodes(), g.NumEdges())
}
