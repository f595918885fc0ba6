// Package export writes computed routes as GPX tracks and GeoJSON.
package export

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"route_planner/pkg/graph"
)

const gpxNamespace = "http://www.topografix.com/gpx/1/1"

// Meta describes a GPX document.
type Meta struct {
	Name    string
	Desc    string
	Creator string
	Time    time.Time
}

type gpxDoc struct {
	XMLName  xml.Name    `xml:"gpx"`
	Version  string      `xml:"version,attr"`
	Creator  string      `xml:"creator,attr"`
	Xmlns    string      `xml:"xmlns,attr"`
	Metadata gpxMetadata `xml:"metadata"`
	Track    gpxTrack    `xml:"trk"`
}

type gpxMetadata struct {
	Name string `xml:"name,omitempty"`
	Desc string `xml:"desc,omitempty"`
	Time string `xml:"time"`
}

type gpxTrack struct {
	Name    string     `xml:"name,omitempty"`
	Segment gpxSegment `xml:"trkseg"`
}

type gpxSegment struct {
	Points []gpxPoint `xml:"trkpt"`
}

type gpxPoint struct {
	Lat  string `xml:"lat,attr"`
	Lon  string `xml:"lon,attr"`
	Name string `xml:"name"`
}

// WriteGPX writes path, a sequence of indices into nodes, as a GPX 1.1 track
// with one point per node.
func WriteGPX(w io.Writer, nodes []graph.Node, path []uint32, meta Meta) error {
	if len(path) == 0 {
		return fmt.Errorf("empty path: %w", graph.ErrInvalidArgument)
	}
	if meta.Creator == "" {
		meta.Creator = "route_planner"
	}
	if meta.Time.IsZero() {
		meta.Time = time.Now()
	}

	doc := gpxDoc{
		Version: "1.1",
		Creator: meta.Creator,
		Xmlns:   gpxNamespace,
		Metadata: gpxMetadata{
			Name: meta.Name,
			Desc: meta.Desc,
			Time: meta.Time.UTC().Format(time.RFC3339),
		},
		Track: gpxTrack{Name: meta.Name},
	}
	doc.Track.Segment.Points = make([]gpxPoint, len(path))
	for i, v := range path {
		if int(v) >= len(nodes) {
			return fmt.Errorf("path node index %d out of range: %w", v, graph.ErrInvalidArgument)
		}
		n := nodes[v]
		doc.Track.Segment.Points[i] = gpxPoint{
			Lat:  strconv.FormatFloat(n.Lat, 'f', 6, 64),
			Lon:  strconv.FormatFloat(n.Lon, 'f', 6, 64),
			Name: fmt.Sprintf("Node %d", n.ID),
		}
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode gpx: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// SaveGPX writes the track to a file.
func SaveGPX(filename string, nodes []graph.Node, path []uint32, meta Meta) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("create gpx file: %w", err)
	}
	if err := WriteGPX(f, nodes, path, meta); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
