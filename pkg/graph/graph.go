package graph

// NoNode marks an absent node index.
const NoNode = ^uint32(0)

// Node is a road network vertex. ID is externally assigned.
type Node struct {
	ID  uint32
	Lat float64
	Lon float64
}

// Edge is a road segment between two node ids.
// Bidirectional edges are stored once and appear in both endpoints' adjacency.
type Edge struct {
	FromID      uint32
	ToID        uint32
	LengthM     uint32 // meters, > 0
	SpeedKmh    uint16 // 0 means unknown; only time-mode routing needs it
	OneWay      bool
	Name        string
	HighwayType string
}

// Graph is an immutable road graph in CSR (Compressed Sparse Row) format.
// It is safe for concurrent reads once returned by New.
type Graph struct {
	nodes []Node
	edges []Edge
	index *IDIndex

	// Offsets[u]..Offsets[u+1] indexes into Indices for edges traversable from u.
	Offsets []uint32 // len: NumNodes + 1
	Indices []uint32 // edge positions, grouped per node in edge-array order

	// Resolved endpoints, filled once during construction.
	fromIdx []uint32
	toIdx   []uint32
}

func (g *Graph) NumNodes() uint32 { return uint32(len(g.nodes)) }
func (g *Graph) NumEdges() uint32 { return uint32(len(g.edges)) }

// Node returns the node at index i.
func (g *Graph) Node(i uint32) Node { return g.nodes[i] }

// Edge returns the edge at position e.
func (g *Graph) Edge(e uint32) Edge { return g.edges[e] }

// Nodes exposes the node array for read-only scans (nearest search, export).
func (g *Graph) Nodes() []Node { return g.nodes }

// Edges exposes the edge array for read-only scans.
func (g *Graph) Edges() []Edge { return g.edges }

// Lookup resolves an external node id to its index.
func (g *Graph) Lookup(id uint32) (uint32, error) {
	return g.index.Lookup(id)
}

// EdgesFrom returns the range of Indices holding edges adjacent to node u.
func (g *Graph) EdgesFrom(u uint32) (start, end uint32) {
	return g.Offsets[u], g.Offsets[u+1]
}

// AdjEdge returns the edge position stored at adjacency slot k.
func (g *Graph) AdjEdge(k uint32) uint32 { return g.Indices[k] }

// Endpoints returns the resolved from/to node indices of edge e.
func (g *Graph) Endpoints(e uint32) (from, to uint32) {
	return g.fromIdx[e], g.toIdx[e]
}

// Neighbor returns the node reached by traversing edge e away from u.
// ok is false when e is one-way and u is its head.
func (g *Graph) Neighbor(u, e uint32) (v uint32, ok bool) {
	from, to := g.fromIdx[e], g.toIdx[e]
	switch {
	case from == u:
		return to, true
	case to == u && !g.edges[e].OneWay:
		return from, true
	}
	return NoNode, false
}
