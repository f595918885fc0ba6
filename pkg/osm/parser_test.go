package osm

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"route_planner/pkg/graph"
)

func TestIsCarAccessible(t *testing.T) {
	tests := []struct {
		name string
		tags osm.Tags
		want bool
	}{
		{
			name: "residential road",
			tags: osm.Tags{{Key: "highway", Value: "residential"}},
			want: true,
		},
		{
			name: "motorway",
			tags: osm.Tags{{Key: "highway", Value: "motorway"}},
			want: true,
		},
		{
			name: "footway (not car accessible)",
			tags: osm.Tags{{Key: "highway", Value: "footway"}},
			want: false,
		},
		{
			name: "cycleway",
			tags: osm.Tags{{Key: "highway", Value: "cycleway"}},
			want: false,
		},
		{
			name: "private access",
			tags: osm.Tags{
				{Key: "highway", Value: "residential"},
				{Key: "access", Value: "private"},
			},
			want: false,
		},
		{
			name: "no access",
			tags: osm.Tags{
				{Key: "highway", Value: "residential"},
				{Key: "access", Value: "no"},
			},
			want: false,
		},
		{
			name: "motor_vehicle=no",
			tags: osm.Tags{
				{Key: "highway", Value: "residential"},
				{Key: "motor_vehicle", Value: "no"},
			},
			want: false,
		},
		{
			name: "area=yes (pedestrian plaza)",
			tags: osm.Tags{
				{Key: "highway", Value: "service"},
				{Key: "area", Value: "yes"},
			},
			want: false,
		},
		{
			name: "service road",
			tags: osm.Tags{{Key: "highway", Value: "service"}},
			want: true,
		},
		{
			name: "track (not in routable set)",
			tags: osm.Tags{{Key: "highway", Value: "track"}},
			want: false,
		},
		{
			name: "living_street",
			tags: osm.Tags{{Key: "highway", Value: "living_street"}},
			want: true,
		},
		{
			name: "no highway tag",
			tags: osm.Tags{{Key: "name", Value: "Some Street"}},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isCarAccessible(tt.tags))
		})
	}
}

func TestWayDirection(t *testing.T) {
	hw := func(v string, extra ...osm.Tag) osm.Tags {
		return append(osm.Tags{{Key: "highway", Value: v}}, extra...)
	}
	tests := []struct {
		name string
		tags osm.Tags
		want direction
	}{
		{"default bidirectional", hw("residential"), dirBoth},
		{"motorway implied oneway", hw("motorway"), dirForward},
		{"motorway_link implied oneway", hw("motorway_link"), dirForward},
		{"roundabout implied oneway", hw("residential", osm.Tag{Key: "junction", Value: "roundabout"}), dirForward},
		{"explicit oneway=yes", hw("primary", osm.Tag{Key: "oneway", Value: "yes"}), dirForward},
		{"explicit oneway=true", hw("primary", osm.Tag{Key: "oneway", Value: "true"}), dirForward},
		{"explicit oneway=1", hw("primary", osm.Tag{Key: "oneway", Value: "1"}), dirForward},
		{"explicit oneway=-1", hw("primary", osm.Tag{Key: "oneway", Value: "-1"}), dirBackward},
		{"explicit oneway=reverse", hw("primary", osm.Tag{Key: "oneway", Value: "reverse"}), dirBackward},
		{"oneway=no overrides implied", hw("motorway", osm.Tag{Key: "oneway", Value: "no"}), dirBoth},
		{"oneway=reversible dropped", hw("primary", osm.Tag{Key: "oneway", Value: "reversible"}), dirNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, wayDirection(tt.tags))
		})
	}
}

func TestParseMaxSpeed(t *testing.T) {
	tests := []struct {
		value, highway string
		want           uint16
	}{
		{"50", "residential", 50},
		{"50 km/h", "residential", 50},
		{"30 mph", "residential", 48},
		{"20mph", "residential", 32},
		{"10 knots", "service", 19},
		{"50;70", "primary", 50},
		{"none", "motorway", 110},
		{"signals", "trunk", 90},
		{"RU:urban", "secondary", 60},
		{"", "living_street", 10},
		{"-5", "tertiary", 50},
		{"", "bogus", 50},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseMaxSpeed(tt.value, tt.highway), "maxspeed=%q highway=%s", tt.value, tt.highway)
	}
}

func TestParseWay(t *testing.T) {
	w := &osm.Way{
		ID:    7,
		Nodes: osm.WayNodes{{ID: 1}, {ID: 2}, {ID: 3}},
		Tags: osm.Tags{
			{Key: "highway", Value: "secondary"},
			{Key: "name", Value: "Boulevard Voltaire"},
			{Key: "maxspeed", Value: "30"},
			{Key: "oneway", Value: "-1"},
		},
	}
	info, ok := parseWay(w)
	require.True(t, ok)
	assert.Equal(t, []osm.NodeID{1, 2, 3}, info.NodeIDs)
	assert.Equal(t, dirBackward, info.Dir)
	assert.Equal(t, uint16(30), info.Speed)
	assert.Equal(t, "Boulevard Voltaire", info.Name)
	assert.Equal(t, "secondary", info.Highway)

	w.Tags = osm.Tags{{Key: "highway", Value: "primary"}, {Key: "oneway", Value: "reversible"}}
	_, ok = parseWay(w)
	assert.False(t, ok)

	w.Tags = osm.Tags{{Key: "highway", Value: "primary"}}
	w.Nodes = w.Nodes[:1]
	_, ok = parseWay(w)
	assert.False(t, ok)
}

func testCoords() map[osm.NodeID]orb.Point {
	return map[osm.NodeID]orb.Point{
		1: {2.3500, 48.8500},
		2: {2.3510, 48.8500},
		3: {2.3520, 48.8500},
		4: {2.3520, 48.8510},
		9: {2.5000, 48.9500},
		5_000_000_000: {2.3530, 48.8500},
	}
}

func TestBuildNetwork(t *testing.T) {
	ways := []wayInfo{
		{NodeIDs: []osm.NodeID{1, 2, 3}, Dir: dirBoth, Speed: 50, Name: "A", Highway: "primary"},
		{NodeIDs: []osm.NodeID{3, 4}, Dir: dirBackward, Speed: 30, Highway: "residential"},
		{NodeIDs: []osm.NodeID{4, 8}, Dir: dirBoth, Speed: 30, Highway: "residential"},
		{NodeIDs: []osm.NodeID{3, 5_000_000_000}, Dir: dirBoth, Speed: 30, Highway: "service"},
	}

	res := buildNetwork(ways, testCoords(), ParseOptions{})

	require.Len(t, res.Edges, 3)
	assert.Equal(t, []uint32{1, 2, 3, 4}, nodeIDs(res.Nodes))
	assert.Equal(t, 1, res.Stats.MissingCoords)
	assert.Equal(t, 1, res.Stats.IDOutOfRange)
	assert.Equal(t, 5, res.Stats.Segments)

	e := res.Edges[0]
	assert.Equal(t, uint32(1), e.FromID)
	assert.Equal(t, uint32(2), e.ToID)
	assert.False(t, e.OneWay)
	assert.Equal(t, "A", e.Name)
	// 0.001 deg of longitude at 48.85 N is about 73 m.
	assert.InDelta(t, 73, float64(e.LengthM), 1)

	// oneway=-1 reverses the segment into a forward one-way edge.
	rev := res.Edges[2]
	assert.Equal(t, uint32(4), rev.FromID)
	assert.Equal(t, uint32(3), rev.ToID)
	assert.True(t, rev.OneWay)

	g, err := graph.New(res.Nodes, res.Edges)
	require.NoError(t, err)
	assert.NoError(t, g.Validate())
}

func TestBuildNetworkBBox(t *testing.T) {
	ways := []wayInfo{
		{NodeIDs: []osm.NodeID{1, 2, 9}, Dir: dirForward, Speed: 50, Highway: "primary"},
	}
	bbox := orb.Bound{Min: orb.Point{2.34, 48.84}, Max: orb.Point{2.36, 48.86}}

	res := buildNetwork(ways, testCoords(), ParseOptions{BBox: &bbox})
	require.Len(t, res.Edges, 1)
	assert.Equal(t, 1, res.Stats.OutsideBBox)
	assert.True(t, res.Edges[0].OneWay)
	assert.Equal(t, []uint32{1, 2}, nodeIDs(res.Nodes))
}

func nodeIDs(nodes []graph.Node) []uint32 {
	ids := make([]uint32, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}
