package graph_test

import "route_planner/pkg/graph"

// diamondNodes/diamondEdges form the small network used across tests:
//
//	1 --100-- 2
//	|         |
//	200       50 (one-way 2 -> 3)
//	|         |
//	4 --10--- 3
func diamondNodes() []graph.Node {
	return []graph.Node{
		{ID: 1, Lat: 48.8566, Lon: 2.3522},
		{ID: 2, Lat: 48.8570, Lon: 2.3535},
		{ID: 3, Lat: 48.8560, Lon: 2.3540},
		{ID: 4, Lat: 48.8555, Lon: 2.3525},
	}
}

func diamondEdges() []graph.Edge {
	return []graph.Edge{
		{FromID: 1, ToID: 2, LengthM: 100, SpeedKmh: 50, Name: "Rue A", HighwayType: "residential"},
		{FromID: 2, ToID: 3, LengthM: 50, SpeedKmh: 30, OneWay: true, Name: "Rue B", HighwayType: "residential"},
		{FromID: 1, ToID: 4, LengthM: 200, SpeedKmh: 50, HighwayType: "primary"},
		{FromID: 4, ToID: 3, LengthM: 10, SpeedKmh: 30, HighwayType: "service"},
	}
}
