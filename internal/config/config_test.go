package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"ROUTE_NODES", "ROUTE_EDGES", "ROUTE_GRAPH", "ROUTE_MODE", "ROUTE_METRICS_FILE", "ROUTE_CANDIDATES"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Equal(t, "data/nodes.csv", cfg.NodesCSV)
	assert.Equal(t, "data/edges.csv", cfg.EdgesCSV)
	assert.Equal(t, "", cfg.GraphFile)
	assert.Equal(t, "distance", cfg.Mode)
	assert.Equal(t, 5, cfg.Candidates)
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)

	env := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(env, []byte("ROUTE_GRAPH=paris.graph.bin\nROUTE_MODE=time\nROUTE_CANDIDATES=8\n"), 0644))

	cfg := Load(env)
	assert.Equal(t, "paris.graph.bin", cfg.GraphFile)
	assert.Equal(t, "time", cfg.Mode)
	assert.Equal(t, 8, cfg.Candidates)
}

func TestLoadEnvironmentWins(t *testing.T) {
	clearEnv(t)
	t.Setenv("ROUTE_MODE", "distance")
	t.Setenv("ROUTE_CANDIDATES", "nope")

	env := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(env, []byte("ROUTE_MODE=time\n"), 0644))

	cfg := Load(env)
	assert.Equal(t, "distance", cfg.Mode)
	assert.Equal(t, 5, cfg.Candidates)
}
