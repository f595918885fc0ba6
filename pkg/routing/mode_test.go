package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"route_planner/pkg/graph"
)

func TestParseCostModel(t *testing.T) {
	for in, want := range map[string]CostModel{
		"distance": Distance, "Distance": Distance, "d": Distance,
		"time": Time, " TIME ": Time, "t": Time,
	} {
		got, err := ParseCostModel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseCostModel("speed")
	assert.ErrorIs(t, err, graph.ErrInvalidArgument)
}

func TestCostModelString(t *testing.T) {
	assert.Equal(t, "distance", Distance.String())
	assert.Equal(t, "time", Time.String())
	assert.Equal(t, "m", Distance.Unit())
	assert.Equal(t, "min", Time.Unit())
	assert.Equal(t, "CostModel(9)", CostModel(9).String())
}

func TestEdgeCost(t *testing.T) {
	e := graph.Edge{LengthM: 1500, SpeedKmh: 90}

	c, err := Distance.EdgeCost(&e)
	require.NoError(t, err)
	assert.Equal(t, 1500.0, c)

	c, err = Time.EdgeCost(&e)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, c, 1e-12) // 1.5 km at 90 km/h

	e.SpeedKmh = 0
	c, err = Distance.EdgeCost(&e)
	require.NoError(t, err)
	assert.Equal(t, 1500.0, c)

	_, err = Time.EdgeCost(&e)
	assert.ErrorIs(t, err, ErrZeroSpeed)
	assert.ErrorIs(t, err, graph.ErrInvalidData)
}
