// Package metrics holds the Prometheus collectors for graph loads and solves.
// The tools are batch programs, so metrics are dumped to a node_exporter
// textfile instead of being served.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Registry is private so the dump holds only route_* series.
	Registry = prometheus.NewRegistry()

	SolvesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "route_solves_total",
		Help: "Total number of shortest-path solves by cost model and outcome",
	}, []string{"mode", "outcome"})
	SolveDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "route_solve_duration_ms",
		Help:    "Solve duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000, 5000},
	}, []string{"mode"})
	SettledNodes = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "route_settled_nodes",
		Help:    "Nodes settled per solve",
		Buckets: prometheus.ExponentialBuckets(10, 4, 10),
	})
	GraphLoadDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "route_graph_load_duration_ms",
		Help:    "Graph load and build duration in milliseconds",
		Buckets: []float64{10, 50, 100, 500, 1000, 5000, 20000, 60000},
	}, []string{"source"})
	GraphNodes = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "route_graph_nodes",
		Help: "Nodes in the loaded graph",
	})
	GraphEdges = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "route_graph_edges",
		Help: "Edges in the loaded graph",
	})
)

// Solve outcomes.
const (
	OutcomeFound   = "found"
	OutcomeNoRoute = "no_route"
	OutcomeError   = "error"
)

func init() {
	Registry.MustRegister(SolvesTotal)
	Registry.MustRegister(SolveDurationMs)
	Registry.MustRegister(SettledNodes)
	Registry.MustRegister(GraphLoadDurationMs)
	Registry.MustRegister(GraphNodes)
	Registry.MustRegister(GraphEdges)
}

// ObserveSolve records one solve.
func ObserveSolve(mode, outcome string, settled int, d time.Duration) {
	SolvesTotal.WithLabelValues(mode, outcome).Inc()
	SolveDurationMs.WithLabelValues(mode).Observe(float64(d.Microseconds()) / 1000)
	if settled > 0 {
		SettledNodes.Observe(float64(settled))
	}
}

// ObserveLoad records a graph load from source ("csv", "binary" or "pbf").
func ObserveLoad(source string, nodes, edges uint32, d time.Duration) {
	GraphLoadDurationMs.WithLabelValues(source).Observe(float64(d.Milliseconds()))
	GraphNodes.Set(float64(nodes))
	GraphEdges.Set(float64(edges))
}

// WriteFile dumps the registry in text exposition format.
func WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, Registry)
}
