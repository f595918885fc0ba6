package routing

import (
	"math"

	"route_planner/pkg/graph"
)

// MinHeap is a concrete-typed min-heap ordered by tentative cost.
// Avoids interface boxing overhead of container/heap.
//
// There is no decrease-key: an improved cost is pushed again and the stale
// entry is discarded by the caller when it surfaces.
type MinHeap struct {
	items []Item
}

// Item is a priority queue entry.
type Item struct {
	Node uint32
	Cost float64
}

// NewMinHeap returns an empty heap with room for capacity entries.
// The heap grows past capacity as needed.
func NewMinHeap(capacity int) *MinHeap {
	return &MinHeap{items: make([]Item, 0, capacity)}
}

func (h *MinHeap) Len() int { return len(h.items) }

func (h *MinHeap) Push(node uint32, cost float64) {
	h.items = append(h.items, Item{node, cost})
	h.siftUp(len(h.items) - 1)
}

// Pop removes and returns the cheapest entry. On an empty heap it returns
// {graph.NoNode, +Inf}.
func (h *MinHeap) Pop() Item {
	n := len(h.items)
	if n == 0 {
		return Item{Node: graph.NoNode, Cost: math.Inf(1)}
	}
	item := h.items[0]
	h.items[0] = h.items[n-1]
	h.items = h.items[:n-1]
	if len(h.items) > 0 {
		h.siftDown(0)
	}
	return item
}

func (h *MinHeap) PeekCost() float64 {
	if len(h.items) == 0 {
		return math.Inf(1)
	}
	return h.items[0].Cost
}

func (h *MinHeap) Reset() {
	h.items = h.items[:0]
}

func (h *MinHeap) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if h.items[i].Cost >= h.items[parent].Cost {
			break
		}
		h.items[i], h.items[parent] = h.items[parent], h.items[i]
		i = parent
	}
}

func (h *MinHeap) siftDown(i int) {
	n := len(h.items)
	for {
		smallest := i
		left := 2*i + 1
		right := 2*i + 2
		if left < n && h.items[left].Cost < h.items[smallest].Cost {
			smallest = left
		}
		if right < n && h.items[right].Cost < h.items[smallest].Cost {
			smallest = right
		}
		if smallest == i {
			break
		}
		h.items[i], h.items[smallest] = h.items[smallest], h.items[i]
		i = smallest
	}
}
