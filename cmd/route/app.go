package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"route_planner/internal/logger"
	"route_planner/internal/metrics"
	"route_planner/pkg/export"
	"route_planner/pkg/report"
	"route_planner/pkg/routing"
)

// app runs queries against a loaded engine and writes reports to out.
type app struct {
	engine      *routing.Engine
	mode        routing.CostModel
	out         io.Writer
	gpxPath     string
	geojsonPath string
}

func (a *app) routeIDs(src, dst uint32) error {
	r, err := a.timed(func() (*routing.Route, error) {
		return a.engine.RouteIDs(src, dst, a.mode)
	})
	if err != nil {
		return err
	}
	return a.emit(r)
}

func (a *app) routeCoords(from, to string) error {
	start, err := parseLatLng(from)
	if err != nil {
		return err
	}
	end, err := parseLatLng(to)
	if err != nil {
		return err
	}
	r, err := a.timed(func() (*routing.Route, error) {
		return a.engine.Route(start, end, a.mode)
	})
	if err != nil {
		return err
	}
	return a.emit(r)
}

func (a *app) reachable(src uint32) error {
	g := a.engine.Graph()
	start := time.Now()
	res, err := routing.SolveAll(g, src, a.mode)
	if err != nil {
		metrics.ObserveSolve(a.mode.String(), metrics.OutcomeError, 0, time.Since(start))
		return err
	}
	metrics.ObserveSolve(a.mode.String(), metrics.OutcomeFound, res.Settled, time.Since(start))
	return report.WriteReachable(a.out, g, res)
}

// timed runs one route query and records its outcome.
func (a *app) timed(query func() (*routing.Route, error)) (*routing.Route, error) {
	start := time.Now()
	r, err := query()
	elapsed := time.Since(start)

	mode := a.mode.String()
	switch {
	case err == nil:
		metrics.ObserveSolve(mode, metrics.OutcomeFound, r.Settled, elapsed)
		logger.L().Debug("route_solved", "mode", mode, "cost", r.Cost, "nodes", len(r.Path), "settled", r.Settled, "duration_ms", elapsed.Milliseconds())
	case errors.Is(err, routing.ErrNoRoute):
		metrics.ObserveSolve(mode, metrics.OutcomeNoRoute, 0, elapsed)
	default:
		metrics.ObserveSolve(mode, metrics.OutcomeError, 0, elapsed)
	}
	return r, err
}

// emit prints the route and writes any requested export files.
func (a *app) emit(r *routing.Route) error {
	g := a.engine.Graph()
	if err := report.WriteRoute(a.out, g, r); err != nil {
		return err
	}

	if a.gpxPath != "" {
		meta := export.Meta{
			Name: "Shortest Path",
			Desc: fmt.Sprintf("%s route, cost %s", r.Mode, report.FormatCost(r.Mode, r.Cost)),
		}
		if err := export.SaveGPX(a.gpxPath, g.Nodes(), r.Path, meta); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Path exported to GPX file: %s\n", a.gpxPath)
	}
	if a.geojsonPath != "" {
		if err := export.SaveGeoJSON(a.geojsonPath, g, r); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Path exported to GeoJSON file: %s\n", a.geojsonPath)
	}
	return nil
}
