package routing

import (
	"fmt"

	"route_planner/pkg/graph"
)

var (
	// ErrSameNode is returned when source and target resolve to the same id.
	ErrSameNode = fmt.Errorf("source and target are the same node: %w", graph.ErrInvalidArgument)

	// ErrZeroSpeed is returned by a time-mode solve that meets an edge with no speed limit.
	ErrZeroSpeed = fmt.Errorf("zero speed limit in time mode: %w", graph.ErrInvalidData)

	// ErrNoRoute is returned when the target was not reached.
	ErrNoRoute = fmt.Errorf("no route found: %w", graph.ErrNotFound)
)
