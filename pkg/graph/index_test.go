package graph

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFmix32(t *testing.T) {
	assert.Equal(t, uint32(0), fmix32(0))
	assert.Equal(t, uint32(0x514e28b7), fmix32(1))
	assert.Equal(t, uint32(0xe37cd1bc), fmix32(0x12345678))
}

func TestIDIndexSizing(t *testing.T) {
	assert.Equal(t, minBuckets, NewIDIndex(0).Buckets())
	assert.Equal(t, minBuckets, NewIDIndex(10).Buckets())
	assert.Equal(t, 10_000, NewIDIndex(5_000).Buckets())
}

func TestIDIndexInsertLookup(t *testing.T) {
	x := NewIDIndex(4)
	x.Insert(1001, 0)
	x.Insert(42, 1)
	x.Insert(0xFFFFFFFF, 2)

	for id, want := range map[uint32]uint32{1001: 0, 42: 1, 0xFFFFFFFF: 2} {
		got, err := x.Lookup(id)
		require.NoError(t, err)
		assert.Equal(t, want, got, "Lookup(%d)", id)
	}
	assert.Equal(t, 3, x.Len())
}

func TestIDIndexMissingDoesNotInsert(t *testing.T) {
	x := NewIDIndex(4)
	x.Insert(7, 0)

	idx, err := x.Lookup(8)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, NoNode, idx)
	assert.Equal(t, 1, x.Len())

	_, err = x.Lookup(8)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIDIndexDuplicateShadows(t *testing.T) {
	x := NewIDIndex(2)
	x.Insert(5, 0)
	x.Insert(5, 9)

	got, err := x.Lookup(5)
	require.NoError(t, err)
	assert.Equal(t, uint32(9), got)
	assert.Equal(t, 2, x.Len())
}

func TestIDIndexClusteredIDsSpread(t *testing.T) {
	// Ids assigned in geographic blocks: a stride of 16 starting at 1e6.
	const n = 10_000
	x := NewIDIndex(n)
	for i := uint32(0); i < n; i++ {
		x.Insert(1_000_000+i*16, i)
	}
	assert.LessOrEqual(t, x.MaxChain(), 8)

	for i := uint32(0); i < n; i += 97 {
		got, err := x.Lookup(1_000_000 + i*16)
		require.NoError(t, err)
		assert.Equal(t, i, got)
	}
}
