package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"route_planner/pkg/geo"
)

// interactive prompts for start and end points until the input ends or the
// user types q. Query errors are printed and the loop continues.
func (a *app) interactive(in io.Reader, k int) error {
	sc := bufio.NewScanner(in)
	for {
		src, ok := a.pick(sc, "start", k)
		if !ok {
			return sc.Err()
		}
		dst, ok := a.pick(sc, "destination", k)
		if !ok {
			return sc.Err()
		}
		if err := a.routeIDs(src, dst); err != nil {
			fmt.Fprintf(a.out, "Error: %v\n", err)
		}
		fmt.Fprintln(a.out)
	}
}

// pick asks for a coordinate, lists the k nearest nodes and returns the
// chosen node id. It reports false on quit or end of input.
func (a *app) pick(sc *bufio.Scanner, label string, k int) (uint32, bool) {
	for {
		fmt.Fprintf(a.out, "Enter %s coordinate as lat,lon (q to quit): ", label)
		line, ok := readLine(sc)
		if !ok || line == "q" {
			return 0, false
		}
		lat, lon, err := geo.ParseLatLng(line)
		if err != nil {
			fmt.Fprintf(a.out, "Invalid coordinate: %v\n", err)
			continue
		}

		cands := a.engine.Nearest().Nearest(lat, lon, k)
		if len(cands) == 0 {
			fmt.Fprintln(a.out, "No nodes in graph")
			return 0, false
		}
		fmt.Fprintf(a.out, "Nearest nodes to %.6f,%.6f:\n", lat, lon)
		for i, c := range cands {
			fmt.Fprintf(a.out, "  %d) node %d (%.6f, %.6f) %.0f m away\n", i+1, c.ID, c.Lat, c.Lon, c.DistanceM)
		}

		for {
			fmt.Fprintf(a.out, "Choose 1-%d [1]: ", len(cands))
			choice, ok := readLine(sc)
			if !ok || choice == "q" {
				return 0, false
			}
			if choice == "" {
				return cands[0].ID, true
			}
			n, err := strconv.Atoi(choice)
			if err != nil || n < 1 || n > len(cands) {
				fmt.Fprintln(a.out, "Invalid choice")
				continue
			}
			return cands[n-1].ID, true
		}
	}
}

func readLine(sc *bufio.Scanner) (string, bool) {
	if !sc.Scan() {
		return "", false
	}
	return strings.TrimSpace(sc.Text()), true
}
