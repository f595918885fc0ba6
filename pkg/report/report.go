// Package report renders routes and reachability tables for the console.
package report

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"route_planner/pkg/graph"
	"route_planner/pkg/routing"
)

// FormatDistance renders meters as "1.23 km" from 1000 m up, else "850 m".
func FormatDistance(m float64) string {
	if m >= 1000 {
		return fmt.Sprintf("%.2f km", m/1000)
	}
	return fmt.Sprintf("%.0f m", m)
}

// FormatMinutes renders a duration given in minutes.
func FormatMinutes(min float64) string {
	if min < 60 {
		return fmt.Sprintf("%.1f min", min)
	}
	h := math.Floor(min / 60)
	return fmt.Sprintf("%.0f h %02.0f min", h, math.Floor(min-h*60))
}

// FormatCost renders a cost in the unit of mode; +Inf is "unreachable".
func FormatCost(mode routing.CostModel, cost float64) string {
	if math.IsInf(cost, 1) {
		return "unreachable"
	}
	if mode == routing.Time {
		return FormatMinutes(cost)
	}
	return FormatDistance(cost)
}

// WriteRoute prints a route summary followed by one row per leg.
func WriteRoute(w io.Writer, g *graph.Graph, r *routing.Route) error {
	if g == nil || r == nil {
		return graph.ErrNilInput
	}
	if len(r.Path) == 0 {
		return fmt.Errorf("empty route: %w", graph.ErrInvalidArgument)
	}

	src, dst := g.Node(r.Path[0]), g.Node(r.Path[len(r.Path)-1])
	fmt.Fprintf(w, "Route %d -> %d (%s)\n", src.ID, dst.ID, r.Mode)
	fmt.Fprintf(w, "  cost:     %s\n", FormatCost(r.Mode, r.Cost))
	fmt.Fprintf(w, "  length:   %s\n", FormatDistance(r.LengthMeters))
	fmt.Fprintf(w, "  nodes:    %d\n", len(r.Path))
	fmt.Fprintf(w, "  settled:  %d\n\n", r.Settled)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tFROM\tTO\tROAD\tTYPE\tLENGTH\tSPEED\tCUMULATIVE")
	var cum float64
	for i := 0; i+1 < len(r.Path); i++ {
		u, v := r.Path[i], r.Path[i+1]
		e, ok := routing.CheapestEdge(g, u, v, r.Mode)
		if !ok {
			return fmt.Errorf("no edge %d -> %d: %w", g.Node(u).ID, g.Node(v).ID, graph.ErrNotFound)
		}
		edge := g.Edge(e)
		c, err := r.Mode.EdgeCost(&edge)
		if err != nil {
			return err
		}
		cum += c
		name := edge.Name
		if name == "" {
			name = "-"
		}
		fmt.Fprintf(tw, "%d\t%d\t%d\t%s\t%s\t%s\t%d km/h\t%s\n",
			i+1, g.Node(u).ID, g.Node(v).ID, name, edge.HighwayType,
			FormatDistance(float64(edge.LengthM)), edge.SpeedKmh, FormatCost(r.Mode, cum))
	}
	return tw.Flush()
}

// WriteReachable prints the cost from the result's source to every settled
// node, in node order, then a count of unreachable nodes.
func WriteReachable(w io.Writer, g *graph.Graph, res *routing.Result) error {
	if g == nil || res == nil {
		return graph.ErrNilInput
	}

	fmt.Fprintf(w, "Costs from node %d (%s)\n", g.Node(res.Source).ID, res.Mode)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NODE\tLAT\tLON\tCOST")
	unreachable := 0
	for i, ni := uint32(0), g.NumNodes(); i < ni; i++ {
		if !res.Reachable(i) {
			unreachable++
			continue
		}
		n := g.Node(i)
		fmt.Fprintf(tw, "%d\t%.6f\t%.6f\t%s\n", n.ID, n.Lat, n.Lon, FormatCost(res.Mode, res.Distances[i]))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d reachable, %d unreachable\n", int(g.NumNodes())-unreachable, unreachable)
	return err
}
