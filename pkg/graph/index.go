package graph

import "fmt"

// minBuckets is the bucket floor for small graphs.
const minBuckets = 1024

type indexEntry struct {
	id    uint32
	index uint32
}

// IDIndex maps external node ids to node indices. It is a chained hash table
// with a fixed bucket count: no resizing and no duplicate check on insert.
type IDIndex struct {
	buckets [][]indexEntry
	count   int
}

// NewIDIndex sizes the table for n nodes at a load factor of about 0.5.
func NewIDIndex(n int) *IDIndex {
	size := max(2*n, minBuckets)
	return &IDIndex{buckets: make([][]indexEntry, size)}
}

// fmix32 is the MurmurHash3 32-bit finalizer. Road network ids come in
// geographic blocks, so plain modulo would cluster them.
func fmix32(h uint32) uint32 {
	h ^= h >> 16
	h *= 0x85ebca6b
	h ^= h >> 13
	h *= 0xc2b2ae35
	h ^= h >> 16
	return h
}

func (x *IDIndex) bucket(id uint32) int {
	return int(fmix32(id) % uint32(len(x.buckets)))
}

// Insert adds id → index. An existing entry for id is shadowed, not replaced.
func (x *IDIndex) Insert(id, index uint32) {
	b := x.bucket(id)
	x.buckets[b] = append(x.buckets[b], indexEntry{id: id, index: index})
	x.count++
}

// Lookup returns the index for id, newest entry first.
func (x *IDIndex) Lookup(id uint32) (uint32, error) {
	chain := x.buckets[x.bucket(id)]
	for i := len(chain) - 1; i >= 0; i-- {
		if chain[i].id == id {
			return chain[i].index, nil
		}
	}
	return NoNode, fmt.Errorf("node id %d: %w", id, ErrNotFound)
}

// Len returns the number of inserted entries.
func (x *IDIndex) Len() int { return x.count }

// Buckets returns the fixed bucket count.
func (x *IDIndex) Buckets() int { return len(x.buckets) }

// MaxChain returns the longest collision chain, for diagnostics.
func (x *IDIndex) MaxChain() int {
	longest := 0
	for _, c := range x.buckets {
		longest = max(longest, len(c))
	}
	return longest
}
