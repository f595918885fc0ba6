package osm

import (
	"math"
	"strconv"
	"strings"

	"github.com/paulmach/osm"
)

// defaultSpeedKmh lists the car-accessible highway classes with the speed
// used when a way carries no usable maxspeed.
var defaultSpeedKmh = map[string]uint16{
	"motorway":       110,
	"motorway_link":  60,
	"trunk":          90,
	"trunk_link":     50,
	"primary":        70,
	"primary_link":   40,
	"secondary":      60,
	"secondary_link": 40,
	"tertiary":       50,
	"tertiary_link":  30,
	"unclassified":   40,
	"residential":    30,
	"living_street":  10,
	"service":        20,
}

// isCarAccessible returns true if the way is drivable by car.
func isCarAccessible(tags osm.Tags) bool {
	if _, ok := defaultSpeedKmh[tags.Find("highway")]; !ok {
		return false
	}

	// Skip area highways (pedestrian plazas).
	if tags.Find("area") == "yes" {
		return false
	}

	access := tags.Find("access")
	if access == "no" || access == "private" {
		return false
	}
	if tags.Find("motor_vehicle") == "no" {
		return false
	}

	return true
}

// direction of travel permitted along a way's node order.
type direction int

const (
	dirBoth direction = iota
	dirForward
	dirBackward
	dirNone
)

// wayDirection derives the travel direction from highway type and oneway tags.
func wayDirection(tags osm.Tags) direction {
	d := dirBoth

	// Implied oneway for motorways and roundabouts.
	hw := tags.Find("highway")
	if hw == "motorway" || hw == "motorway_link" || tags.Find("junction") == "roundabout" {
		d = dirForward
	}

	// Explicit oneway tag overrides.
	switch tags.Find("oneway") {
	case "yes", "true", "1":
		d = dirForward
	case "-1", "reverse":
		d = dirBackward
	case "no", "false", "0":
		d = dirBoth
	case "reversible", "alternating":
		// Time-dependent; not representable.
		d = dirNone
	}
	return d
}

// ParseMaxSpeed converts an OSM maxspeed value to km/h. Values in mph and
// knots are converted; multiple values take the first. Symbolic values
// ("none", "signals", "walk", "RU:urban") and anything unparseable fall back
// to the default speed for the highway class.
func ParseMaxSpeed(value, highway string) uint16 {
	def := defaultSpeedKmh[highway]
	if def == 0 {
		def = 50
	}

	v := strings.TrimSpace(value)
	if i := strings.IndexAny(v, ";|"); i >= 0 {
		v = strings.TrimSpace(v[:i])
	}
	if v == "" {
		return def
	}

	factor := 1.0
	switch {
	case strings.HasSuffix(v, "mph"):
		factor = 1.609344
		v = strings.TrimSuffix(v, "mph")
	case strings.HasSuffix(v, "knots"):
		factor = 1.852
		v = strings.TrimSuffix(v, "knots")
	case strings.HasSuffix(v, "km/h"):
		v = strings.TrimSuffix(v, "km/h")
	case strings.HasSuffix(v, "kmh"):
		v = strings.TrimSuffix(v, "kmh")
	}

	n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || !(n > 0) {
		return def
	}
	kmh := math.Round(n * factor)
	if kmh < 1 || kmh > math.MaxUint16 {
		return def
	}
	return uint16(kmh)
}
