package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"route_planner/pkg/graph"
	"route_planner/pkg/routing"
)

func testApp(t *testing.T, mode routing.CostModel) (*app, *bytes.Buffer) {
	t.Helper()
	nodes := []graph.Node{
		{ID: 1, Lat: 48.8566, Lon: 2.3522},
		{ID: 2, Lat: 48.8570, Lon: 2.3535},
		{ID: 3, Lat: 48.8560, Lon: 2.3540},
		{ID: 4, Lat: 48.8555, Lon: 2.3525},
		{ID: 5, Lat: 48.9000, Lon: 2.4000},
	}
	edges := []graph.Edge{
		{FromID: 1, ToID: 2, LengthM: 100, SpeedKmh: 50, Name: "Rue A", HighwayType: "residential"},
		{FromID: 2, ToID: 3, LengthM: 50, SpeedKmh: 30, OneWay: true, HighwayType: "service"},
		{FromID: 1, ToID: 4, LengthM: 200, SpeedKmh: 50, HighwayType: "primary"},
		{FromID: 4, ToID: 3, LengthM: 10, SpeedKmh: 30, HighwayType: "service"},
	}
	g, err := graph.New(nodes, edges)
	require.NoError(t, err)

	var out bytes.Buffer
	return &app{engine: routing.NewEngine(g), mode: mode, out: &out}, &out
}

func TestRouteIDsWritesReportAndExports(t *testing.T) {
	a, out := testApp(t, routing.Distance)
	dir := t.TempDir()
	a.gpxPath = filepath.Join(dir, "r.gpx")
	a.geojsonPath = filepath.Join(dir, "r.geojson")

	require.NoError(t, a.routeIDs(3, 2))
	assert.Contains(t, out.String(), "Route 3 -> 2 (distance)")
	assert.Contains(t, out.String(), "cost:     310 m")
	assert.Contains(t, out.String(), "Path exported to GPX file")

	gpx, err := os.ReadFile(a.gpxPath)
	require.NoError(t, err)
	assert.Equal(t, 4, strings.Count(string(gpx), "<trkpt"))

	_, err = os.Stat(a.geojsonPath)
	assert.NoError(t, err)
}

func TestRouteIDsNoRoute(t *testing.T) {
	a, _ := testApp(t, routing.Distance)
	err := a.routeIDs(1, 5)
	assert.ErrorIs(t, err, routing.ErrNoRoute)
}

func TestRouteCoords(t *testing.T) {
	a, out := testApp(t, routing.Time)
	require.NoError(t, a.routeCoords("48.8566,2.3522", "48.8560,2.3540"))
	assert.Contains(t, out.String(), "Route 1 -> 3 (time)")

	assert.Error(t, a.routeCoords("nope", "48.8560,2.3540"))
}

func TestReachable(t *testing.T) {
	a, out := testApp(t, routing.Distance)
	require.NoError(t, a.reachable(3))
	assert.Contains(t, out.String(), "4 reachable, 1 unreachable")
}

func TestInteractive(t *testing.T) {
	a, out := testApp(t, routing.Distance)

	input := strings.Join([]string{
		"not a coordinate",
		"48.8566,2.3522", // start near node 1
		"",               // accept nearest
		"48.8560,2.3540", // destination near node 3
		"9",              // out of range
		"1",
		"q",
	}, "\n")

	require.NoError(t, a.interactive(strings.NewReader(input), 3))
	s := out.String()
	assert.Contains(t, s, "Invalid coordinate")
	assert.Contains(t, s, "1) node 1 (48.856600, 2.352200) 0 m away")
	assert.Contains(t, s, "Invalid choice")
	assert.Contains(t, s, "Route 1 -> 3 (distance)")
}

func TestInteractiveReportsSameNode(t *testing.T) {
	a, out := testApp(t, routing.Distance)

	input := "48.8566,2.3522\n1\n48.8566,2.3522\n1\n"
	require.NoError(t, a.interactive(strings.NewReader(input), 2))
	assert.Contains(t, out.String(), "Error: ")
}
