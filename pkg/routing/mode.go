package routing

import (
	"fmt"
	"strings"

	"route_planner/pkg/graph"
)

// CostModel selects how edge costs are computed.
type CostModel int

const (
	// Distance costs are edge lengths in meters.
	Distance CostModel = iota
	// Time costs are travel times in minutes at the posted speed limit.
	Time
)

func (m CostModel) String() string {
	switch m {
	case Distance:
		return "distance"
	case Time:
		return "time"
	default:
		return fmt.Sprintf("CostModel(%d)", int(m))
	}
}

// Unit is the unit of costs produced under m.
func (m CostModel) Unit() string {
	if m == Time {
		return "min"
	}
	return "m"
}

func (m CostModel) valid() bool { return m == Distance || m == Time }

// ParseCostModel accepts "distance" or "time" (case-insensitive), plus the
// short forms "d" and "t".
func ParseCostModel(s string) (CostModel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "distance", "dist", "d":
		return Distance, nil
	case "time", "t":
		return Time, nil
	}
	return 0, fmt.Errorf("unknown cost model %q: %w", s, graph.ErrInvalidArgument)
}

// EdgeCost returns the cost of traversing e under m.
func (m CostModel) EdgeCost(e *graph.Edge) (float64, error) {
	if m == Time {
		if e.SpeedKmh == 0 {
			return 0, ErrZeroSpeed
		}
		return float64(e.LengthM) / 1000 / float64(e.SpeedKmh) * 60, nil
	}
	return float64(e.LengthM), nil
}
