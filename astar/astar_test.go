package astar_test

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridroute/astar"
	"github.com/katalvlaran/gridroute/density"
	"github.com/katalvlaran/gridroute/gridgraph"
	"github.com/katalvlaran/gridroute/validity"
)

// buildIndex builds a unit-cell grid from counts listed bottom-to-top and
// classifies it at the median.
func buildIndex(t testing.TB, rows [][]int) *validity.Index {
	t.Helper()
	var points []gridgraph.Point
	for r, row := range rows {
		for c, k := range row {
			for i := 0; i < k; i++ {
				points = append(points, gridgraph.Point{X: float64(c) + 0.5, Y: float64(r) + 0.5})
			}
		}
	}
	bbox := gridgraph.BBox{MaxX: float64(len(rows[0])), MaxY: float64(len(rows))}
	g, err := gridgraph.New(bbox, 1, points)
	require.NoError(t, err)

	return validity.Build(g, density.Classify(g, 0.5))
}

func n(x, y int) gridgraph.Node { return gridgraph.Node{X: x, Y: y} }

func open(cols, rows int) [][]int {
	out := make([][]int, rows)
	for r := range out {
		out[r] = make([]int, cols)
	}
	return out
}

// checkPath asserts that consecutive nodes are neighbors, that every node
// is valid, and that the step costs add up to want.
func checkPath(t *testing.T, idx *validity.Index, path []gridgraph.Node, want float64) {
	t.Helper()
	total := 0.0
	for i, p := range path {
		assert.False(t, idx.Invalid(p), "invalid node %v on path", p)
		if i == 0 {
			continue
		}
		q := path[i-1]
		dx, dy := p.X-q.X, p.Y-q.Y
		require.True(t, dx >= -1 && dx <= 1 && dy >= -1 && dy <= 1 && (dx != 0 || dy != 0), "jump %v -> %v", q, p)
		total += astar.StepCost(idx.Blocked(), q, p)
	}
	assert.InDelta(t, want, total, 1e-9)
}

//----------------------------------------------------------------------------//
// Validation
//----------------------------------------------------------------------------//

func TestSearch_Errors(t *testing.T) {
	idx := buildIndex(t, open(3, 3))
	ctx := context.Background()

	_, err := astar.Search(ctx, nil, n(0, 0), n(1, 1))
	assert.ErrorIs(t, err, astar.ErrNilIndex)

	_, err = astar.Search(ctx, idx, n(0, 0), n(4, 1))
	assert.ErrorIs(t, err, astar.ErrNodeOutOfRange)

	_, err = astar.Search(ctx, idx, n(-1, 0), n(1, 1))
	assert.ErrorIs(t, err, astar.ErrNodeOutOfRange)

	_, err = astar.Search(ctx, idx, n(0, 0), n(1, 1), astar.WithTimeLimit(0))
	assert.ErrorIs(t, err, astar.ErrBadTimeLimit)
}

func TestParseHeuristic(t *testing.T) {
	h, err := astar.ParseHeuristic("")
	require.NoError(t, err)
	assert.Equal(t, astar.HeuristicCell, h)

	h, err = astar.ParseHeuristic(" RAW ")
	require.NoError(t, err)
	assert.Equal(t, astar.HeuristicRaw, h)
	assert.Equal(t, "raw", h.String())

	_, err = astar.ParseHeuristic("manhattan")
	assert.ErrorIs(t, err, astar.ErrUnknownHeuristic)
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "found", astar.OutcomeFound.String())
	assert.Equal(t, "invalid_endpoint", astar.OutcomeInvalidEndpoint.String())
	assert.Equal(t, "Outcome(42)", astar.Outcome(42).String())
}

//----------------------------------------------------------------------------//
// Costs and paths
//----------------------------------------------------------------------------//

func TestStepCost(t *testing.T) {
	idx := buildIndex(t, [][]int{
		{0, 0, 0},
		{0, 9, 0},
		{0, 0, 0},
	})
	b := idx.Blocked()
	assert.Equal(t, astar.CostDiagonal, astar.StepCost(b, n(0, 0), n(1, 1)))
	assert.Equal(t, astar.CostSkirt, astar.StepCost(b, n(1, 1), n(2, 1)))
	assert.Equal(t, astar.CostSkirt, astar.StepCost(b, n(2, 1), n(2, 2)))
	assert.Equal(t, astar.CostStraight, astar.StepCost(b, n(0, 0), n(1, 0)))
}

func TestSearch_OpenGridDiagonal(t *testing.T) {
	idx := buildIndex(t, open(3, 3))

	res, err := astar.Search(context.Background(), idx, n(0, 0), n(2, 2))
	require.NoError(t, err)
	assert.True(t, res.Found)
	assert.Equal(t, astar.OutcomeFound, res.Outcome)
	assert.Equal(t, []gridgraph.Node{n(0, 0), n(1, 1), n(2, 2)}, res.Path)
	assert.InDelta(t, 3.0, res.Cost, 1e-12)
	assert.Positive(t, res.Expanded)
}

func TestSearch_DetoursAroundBlockedCell(t *testing.T) {
	// The only diagonal from (1,1) to (2,2) cuts through blocked cell (1,1).
	idx := buildIndex(t, [][]int{
		{0, 0, 0},
		{0, 9, 0},
		{0, 0, 0},
	})
	require.False(t, idx.Invalid(n(1, 1)))
	require.False(t, idx.Invalid(n(2, 2)))

	res, err := astar.Search(context.Background(), idx, n(1, 1), n(2, 2))
	require.NoError(t, err)
	require.True(t, res.Found)
	require.Len(t, res.Path, 3)
	for i := 1; i < len(res.Path); i++ {
		p, q := res.Path[i-1], res.Path[i]
		assert.False(t, p.X != q.X && p.Y != q.Y, "diagonal %v -> %v", p, q)
	}
	// Both straight moves skirt the blocked cell.
	assert.InDelta(t, 2*astar.CostSkirt, res.Cost, 1e-12)
	checkPath(t, idx, res.Path, res.Cost)
}

func TestSearch_EdgeNodesOnlyMoveInward(t *testing.T) {
	idx := buildIndex(t, open(3, 3))

	// (3,0) is only reachable by the diagonal from (2,1).
	res, err := astar.Search(context.Background(), idx, n(0, 0), n(3, 0))
	require.NoError(t, err)
	require.True(t, res.Found)
	assert.Equal(t, []gridgraph.Node{n(0, 0), n(1, 1), n(2, 1), n(3, 0)}, res.Path)
	assert.InDelta(t, 4.0, res.Cost, 1e-12)
}

func TestSearch_StartIsGoal(t *testing.T) {
	idx := buildIndex(t, open(2, 2))
	res, err := astar.Search(context.Background(), idx, n(1, 1), n(1, 1))
	require.NoError(t, err)
	assert.True(t, res.Found)
	assert.Equal(t, []gridgraph.Node{n(1, 1)}, res.Path)
	assert.Zero(t, res.Cost)
}

func TestSearch_InvalidEndpoint(t *testing.T) {
	idx := buildIndex(t, [][]int{
		{0, 0, 0, 0},
		{0, 9, 9, 0},
		{0, 9, 9, 0},
		{0, 0, 0, 0},
	})
	require.True(t, idx.Invalid(n(2, 2)))

	for _, tc := range []struct{ start, goal gridgraph.Node }{
		{n(0, 0), n(2, 2)},
		{n(2, 2), n(0, 0)},
	} {
		res, err := astar.Search(context.Background(), idx, tc.start, tc.goal)
		require.NoError(t, err)
		assert.False(t, res.Found)
		assert.Empty(t, res.Path)
		assert.Zero(t, res.Expanded)
		assert.Equal(t, astar.OutcomeInvalidEndpoint, res.Outcome)
	}
}

func TestSearch_WallExhausts(t *testing.T) {
	// Column 2 is blocked top to bottom.
	idx := buildIndex(t, [][]int{
		{0, 0, 9, 0, 0},
		{0, 0, 9, 0, 0},
		{0, 0, 9, 0, 0},
	})

	res, err := astar.Search(context.Background(), idx, n(1, 1), n(4, 1))
	require.NoError(t, err)
	assert.False(t, res.Found)
	assert.Empty(t, res.Path)
	assert.Equal(t, astar.OutcomeExhausted, res.Outcome)
	assert.Positive(t, res.Expanded)
}

func TestSearch_Timeout(t *testing.T) {
	idx := buildIndex(t, open(4, 4))

	now := time.Unix(0, 0)
	clock := func() time.Time {
		now = now.Add(time.Minute)
		return now
	}
	res, err := astar.Search(context.Background(), idx, n(0, 0), n(3, 3),
		astar.WithTimeLimit(time.Second), astar.WithClock(clock))
	require.NoError(t, err)
	assert.False(t, res.Found)
	assert.Empty(t, res.Path)
	assert.Equal(t, astar.OutcomeTimeout, res.Outcome)
}

func TestSearch_Canceled(t *testing.T) {
	idx := buildIndex(t, open(4, 4))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := astar.Search(ctx, idx, n(0, 0), n(3, 3))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, astar.OutcomeCanceled, res.Outcome)
	assert.Empty(t, res.Path)
}

//----------------------------------------------------------------------------//
// Properties on random grids
//----------------------------------------------------------------------------//

func randomRows(rng *rand.Rand, cols, rows int) [][]int {
	out := make([][]int, rows)
	for r := range out {
		out[r] = make([]int, cols)
		for c := range out[r] {
			if rng.Intn(5) == 0 {
				out[r][c] = 9
			}
		}
	}
	return out
}

func TestSearch_DeterministicAndConsistent(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 20; trial++ {
		idx := buildIndex(t, randomRows(rng, 12, 10))
		g := idx.Grid()
		start := n(1+rng.Intn(g.Cols()-1), 1+rng.Intn(g.Rows()-1))
		goal := n(1+rng.Intn(g.Cols()-1), 1+rng.Intn(g.Rows()-1))

		a, err := astar.Search(context.Background(), idx, start, goal)
		require.NoError(t, err)
		b, err := astar.Search(context.Background(), idx, start, goal)
		require.NoError(t, err)

		assert.Equal(t, a.Path, b.Path, "trial %d", trial)
		assert.Equal(t, a.Cost, b.Cost)
		assert.Equal(t, a.Expanded, b.Expanded)
		if a.Found {
			assert.Equal(t, start, a.Path[0])
			assert.Equal(t, goal, a.Path[len(a.Path)-1])
			checkPath(t, idx, a.Path, a.Cost)
		} else {
			assert.Empty(t, a.Path)
		}
	}
}

func TestSearch_RawHeuristicFindsPath(t *testing.T) {
	idx := buildIndex(t, open(5, 5))
	res, err := astar.Search(context.Background(), idx, n(0, 0), n(4, 4), astar.WithHeuristic(astar.HeuristicRaw))
	require.NoError(t, err)
	require.True(t, res.Found)
	assert.InDelta(t, 4*astar.CostDiagonal, res.Cost, 1e-12)
}

func BenchmarkSearch(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	idx := buildIndex(b, randomRows(rng, 200, 200))
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = astar.Search(ctx, idx, n(1, 1), n(199, 199))
	}
}
