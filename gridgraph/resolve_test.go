package gridgraph_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridroute/gridgraph"
)

func TestResolveAxis_IndexMode(t *testing.T) {
	// Ticks 0,1,2 plus sentinel 3: extended count is 4.
	g, err := gridgraph.New(gridgraph.BBox{MinX: 0, MinY: 0, MaxX: 3, MaxY: 3}, 1, nil)
	require.NoError(t, err)

	cases := []struct {
		raw  float64
		want int
	}{
		{0, 0},
		{2, 2},
		{1.7, 1},
		{3, 3},  // sentinel
		{4, 3},  // past the sentinel clamps
		{-1, 3}, // counts back from the sentinel
		{-3, 1},
		{-4, 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, g.ResolveAxis(gridgraph.AxisX, tc.raw), "raw %v", tc.raw)
	}
}

func TestResolveAxis_CoordinateMode(t *testing.T) {
	// Ticks 100,102,...,108 plus sentinel 110.
	g, err := gridgraph.New(gridgraph.BBox{MinX: 100, MinY: 100, MaxX: 110, MaxY: 110}, 2, nil)
	require.NoError(t, err)

	cases := []struct {
		raw  float64
		want int
	}{
		{103.9, 1}, // snaps down
		{104, 2},   // exactly on a tick
		{108.5, 4},
		{99, 0},   // below range clamps to min
		{110, 5},  // sentinel
		{250, 5},  // above range clamps to max
		{5, 5},    // small values are indices
		{math.NaN(), 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, g.ResolveAxis(gridgraph.AxisX, tc.raw), "raw %v", tc.raw)
	}
}

func TestResolve_GeographicCoordinates(t *testing.T) {
	g, err := gridgraph.New(gridgraph.BBox{MinX: -73.59, MinY: 45.49, MaxX: -73.55, MaxY: 45.53}, 0.002, nil)
	require.NoError(t, err)

	n := g.Resolve(-73.5849, 45.4951)
	assert.Equal(t, gridgraph.Node{X: 2, Y: 2}, n)

	// Indices still work on the same grid.
	assert.Equal(t, gridgraph.Node{X: 0, Y: 0}, g.Resolve(0, 0))
	assert.Equal(t, gridgraph.Node{X: g.Cols(), Y: g.Rows()}, g.Resolve(-1, -1))

	p := g.Point(gridgraph.Node{X: 2, Y: 2})
	assert.InDelta(t, -73.586, p.X, 1e-9)
	assert.InDelta(t, 45.494, p.Y, 1e-9)
}
