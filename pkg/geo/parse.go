package geo

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

// ParseLatLng parses "lat,lon".
func ParseLatLng(s string) (lat, lon float64, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("coordinate %q: want lat,lon", s)
	}
	if lat, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64); err != nil {
		return 0, 0, fmt.Errorf("coordinate %q: latitude: %w", s, err)
	}
	if lon, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64); err != nil {
		return 0, 0, fmt.Errorf("coordinate %q: longitude: %w", s, err)
	}
	if !ValidCoordinate(lat, lon) {
		return 0, 0, fmt.Errorf("coordinate %q out of range", s)
	}
	return lat, lon, nil
}

// ParseBBox parses "minLat,minLon,maxLat,maxLon" into a bound.
// orb points are (lon, lat).
func ParseBBox(s string) (orb.Bound, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return orb.Bound{}, fmt.Errorf("bbox %q: want minLat,minLon,maxLat,maxLon", s)
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return orb.Bound{}, fmt.Errorf("bbox %q: %w", s, err)
		}
		v[i] = f
	}
	minLat, minLon, maxLat, maxLon := v[0], v[1], v[2], v[3]
	if !ValidCoordinate(minLat, minLon) || !ValidCoordinate(maxLat, maxLon) {
		return orb.Bound{}, fmt.Errorf("bbox %q out of range", s)
	}
	if minLat > maxLat || minLon > maxLon {
		return orb.Bound{}, fmt.Errorf("bbox %q: min exceeds max", s)
	}
	return orb.Bound{
		Min: orb.Point{minLon, minLat},
		Max: orb.Point{maxLon, maxLat},
	}, nil
}
