package export

import (
	"bytes"
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"route_planner/pkg/graph"
)

func testNodes() []graph.Node {
	return []graph.Node{
		{ID: 1, Lat: 48.8566, Lon: 2.3522},
		{ID: 2, Lat: 48.8570, Lon: 2.3535},
		{ID: 3, Lat: 48.8560, Lon: 2.3540},
		{ID: 4, Lat: 48.8555, Lon: 2.3525},
	}
}

func TestWriteGPX(t *testing.T) {
	var buf bytes.Buffer
	meta := Meta{
		Name: "Shortest Path",
		Desc: "distance route",
		Time: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, WriteGPX(&buf, testNodes(), []uint32{0, 1, 2}, meta))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, out, `<gpx version="1.1" creator="route_planner" xmlns="http://www.topografix.com/gpx/1/1">`)
	assert.Contains(t, out, `<time>2024-03-01T12:00:00Z</time>`)
	assert.Contains(t, out, `<trkpt lat="48.856600" lon="2.352200">`)
	assert.Contains(t, out, `<name>Node 3</name>`)

	var doc gpxDoc
	require.NoError(t, xml.Unmarshal(buf.Bytes(), &doc))
	require.Len(t, doc.Track.Segment.Points, 3)
	assert.Equal(t, "Node 1", doc.Track.Segment.Points[0].Name)
	assert.Equal(t, "48.856000", doc.Track.Segment.Points[2].Lat)
}

func TestWriteGPXInvalid(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, WriteGPX(&buf, testNodes(), nil, Meta{}), graph.ErrInvalidArgument)
	assert.ErrorIs(t, WriteGPX(&buf, testNodes(), []uint32{0, 9}, Meta{}), graph.ErrInvalidArgument)
}

func TestSaveGPX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "route.gpx")
	require.NoError(t, SaveGPX(path, testNodes(), []uint32{3, 0}, Meta{Name: "r"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<name>Node 4</name>")
}
