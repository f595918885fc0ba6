package graph

// UnionFind implements a disjoint-set data structure with path halving
// and union by rank.
type UnionFind struct {
	parent []uint32
	rank   []byte
	size   []uint32
}

// NewUnionFind creates a UnionFind for n elements.
func NewUnionFind(n uint32) *UnionFind {
	parent := make([]uint32, n)
	size := make([]uint32, n)
	for i := uint32(0); i < n; i++ {
		parent[i] = i
		size[i] = 1
	}
	return &UnionFind{
		parent: parent,
		rank:   make([]byte, n),
		size:   size,
	}
}

// Find returns the representative of the set containing x.
func (uf *UnionFind) Find(x uint32) uint32 {
	for uf.parent[x] != x {
		uf.parent[x] = uf.parent[uf.parent[x]]
		x = uf.parent[x]
	}
	return x
}

// Union merges the sets containing x and y. Returns false if already same set.
func (uf *UnionFind) Union(x, y uint32) bool {
	rx := uf.Find(x)
	ry := uf.Find(y)
	if rx == ry {
		return false
	}
	if uf.rank[rx] < uf.rank[ry] {
		rx, ry = ry, rx
	}
	uf.parent[ry] = rx
	uf.size[rx] += uf.size[ry]
	if uf.rank[rx] == uf.rank[ry] {
		uf.rank[rx]++
	}
	return true
}

// Size returns the size of the set containing x.
func (uf *UnionFind) Size(x uint32) uint32 {
	return uf.size[uf.Find(x)]
}

// LargestComponent returns the node indices of the largest weakly connected
// component, in ascending index order. One-way edges count as links.
func LargestComponent(g *Graph) []uint32 {
	n := g.NumNodes()
	if n == 0 {
		return nil
	}

	uf := NewUnionFind(n)
	for e, ne := uint32(0), g.NumEdges(); e < ne; e++ {
		from, to := g.Endpoints(e)
		uf.Union(from, to)
	}

	bestRoot := uint32(0)
	bestSize := uint32(0)
	for i := uint32(0); i < n; i++ {
		root := uf.Find(i)
		if uf.size[root] > bestSize {
			bestRoot = root
			bestSize = uf.size[root]
		}
	}

	nodes := make([]uint32, 0, bestSize)
	for i := uint32(0); i < n; i++ {
		if uf.Find(i) == bestRoot {
			nodes = append(nodes, i)
		}
	}
	return nodes
}

// FilterToComponent returns the node and edge arrays restricted to the given
// node indices. An edge survives only if both endpoints do. The result is
// ready to pass to New or WriteBinary.
func FilterToComponent(g *Graph, keep []uint32) ([]Node, []Edge) {
	if len(keep) == 0 {
		return nil, nil
	}

	in := make([]bool, g.NumNodes())
	nodes := make([]Node, 0, len(keep))
	for _, i := range keep {
		in[i] = true
		nodes = append(nodes, g.Node(i))
	}

	var edges []Edge
	for e, ne := uint32(0), g.NumEdges(); e < ne; e++ {
		from, to := g.Endpoints(e)
		if in[from] && in[to] {
			edges = append(edges, g.Edge(e))
		}
	}
	return nodes, edges
}
