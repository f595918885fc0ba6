// Package config resolves CLI defaults from the environment and .env files.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds defaults for the command line tools. Flags override every field.
type Config struct {
	NodesCSV    string // ROUTE_NODES
	EdgesCSV    string // ROUTE_EDGES
	GraphFile   string // ROUTE_GRAPH
	Mode        string // ROUTE_MODE
	MetricsFile string // ROUTE_METRICS_FILE
	Candidates  int    // ROUTE_CANDIDATES
}

// Load reads the given .env files, if they exist, then the environment.
// Variables already set in the environment win over .env values.
func Load(envFiles ...string) Config {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		_ = godotenv.Load(f)
	}

	return Config{
		NodesCSV:    getenv("ROUTE_NODES", "data/nodes.csv"),
		EdgesCSV:    getenv("ROUTE_EDGES", "data/edges.csv"),
		GraphFile:   getenv("ROUTE_GRAPH", ""),
		Mode:        getenv("ROUTE_MODE", "distance"),
		MetricsFile: getenv("ROUTE_METRICS_FILE", ""),
		Candidates:  getenvInt("ROUTE_CANDIDATES", 5),
	}
}

func getenv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil && n > 0 {
		return n
	}
	return def
}
