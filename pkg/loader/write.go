package loader

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"

	"route_planner/pkg/graph"
)

// WriteNodes writes nodes in the nodes.csv layout.
func WriteNodes(w io.Writer, nodes []graph.Node) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "latitude", "longitude"}); err != nil {
		return errors.Wrap(err, "Can't write header")
	}
	for _, n := range nodes {
		err := cw.Write([]string{
			strconv.FormatUint(uint64(n.ID), 10),
			strconv.FormatFloat(n.Lat, 'f', -1, 64),
			strconv.FormatFloat(n.Lon, 'f', -1, 64),
		})
		if err != nil {
			return errors.Wrap(err, "Can't write node")
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "Can't flush nodes")
}

// WriteEdges writes edges in the edges.csv layout.
func WriteEdges(w io.Writer, edges []graph.Edge) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"from", "to", "name", "speed_limit", "highway_type", "length", "oneway"}); err != nil {
		return errors.Wrap(err, "Can't write header")
	}
	for _, e := range edges {
		oneway := "no"
		if e.OneWay {
			oneway = "yes"
		}
		err := cw.Write([]string{
			strconv.FormatUint(uint64(e.FromID), 10),
			strconv.FormatUint(uint64(e.ToID), 10),
			e.Name,
			strconv.FormatUint(uint64(e.SpeedKmh), 10),
			e.HighwayType,
			strconv.FormatUint(uint64(e.LengthM), 10),
			oneway,
		})
		if err != nil {
			return errors.Wrap(err, "Can't write edge")
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "Can't flush edges")
}

// SaveCSV writes both files.
func SaveCSV(nodesPath, edgesPath string, nodes []graph.Node, edges []graph.Edge) error {
	nf, err := os.Create(nodesPath)
	if err != nil {
		return errors.Wrap(err, "Can't create nodes file")
	}
	defer nf.Close()
	if err := WriteNodes(nf, nodes); err != nil {
		return err
	}

	ef, err := os.Create(edgesPath)
	if err != nil {
		return errors.Wrap(err, "Can't create edges file")
	}
	defer ef.Close()
	if err := WriteEdges(ef, edges); err != nil {
		return err
	}

	if err := nf.Close(); err != nil {
		return errors.Wrap(err, "Can't close nodes file")
	}
	return errors.Wrap(ef.Close(), "Can't close edges file")
}
