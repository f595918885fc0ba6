package export

import (
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/geojson"

	"route_planner/pkg/graph"
	"route_planner/pkg/routing"
)

// RouteGeoJSON builds a FeatureCollection with the route as a LineString and
// its endpoints as Points.
func RouteGeoJSON(g *graph.Graph, r *routing.Route) (*geojson.FeatureCollection, error) {
	if g == nil || r == nil {
		return nil, graph.ErrNilInput
	}
	if len(r.Path) < 2 {
		return nil, fmt.Errorf("route has %d nodes: %w", len(r.Path), graph.ErrInvalidArgument)
	}

	line := make(orb.LineString, len(r.Path))
	ids := make([]uint32, len(r.Path))
	for i, v := range r.Path {
		n := g.Node(v)
		line[i] = orb.Point{n.Lon, n.Lat}
		ids[i] = n.ID
	}

	route := geojson.NewFeature(line)
	route.Properties["kind"] = "route"
	route.Properties["mode"] = r.Mode.String()
	route.Properties["unit"] = r.Mode.Unit()
	route.Properties["cost"] = r.Cost
	route.Properties["length_m"] = r.LengthMeters
	route.Properties["geometry_m"] = lineLength(line)
	route.Properties["node_ids"] = ids

	source := geojson.NewFeature(line[0])
	source.Properties["kind"] = "source"
	source.Properties["node_id"] = ids[0]

	target := geojson.NewFeature(line[len(line)-1])
	target.Properties["kind"] = "target"
	target.Properties["node_id"] = ids[len(ids)-1]

	fc := geojson.NewFeatureCollection()
	fc.Append(route)
	fc.Append(source)
	fc.Append(target)
	return fc, nil
}

// SaveGeoJSON writes the route FeatureCollection to a file.
func SaveGeoJSON(filename string, g *graph.Graph, r *routing.Route) error {
	fc, err := RouteGeoJSON(g, r)
	if err != nil {
		return err
	}
	b, err := fc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshal geojson: %w", err)
	}
	return os.WriteFile(filename, b, 0644)
}

// lineLength is the great-circle length of ls in meters.
func lineLength(ls orb.LineString) float64 {
	var total float64
	for i := 1; i < len(ls); i++ {
		total += geo.DistanceHaversine(ls[i-1], ls[i])
	}
	return total
}
