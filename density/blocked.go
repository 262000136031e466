package density

import "github.com/katalvlaran/gridroute/gridgraph"

// BlockedSet is the immutable result of classifying a grid at one threshold.
// It only keeps cell positions; counts are not needed downstream.
type BlockedSet struct {
	cols, rows int
	threshold  float64
	cutoff     float64
	blocked    []bool             // row-major, len == cols*rows
	cells      []gridgraph.CellID // blocked cells in row-major order
}

// Classify computes the cutoff for threshold over g's counts and marks every
// cell whose count is strictly greater than the cutoff.
func Classify(g *gridgraph.Grid, threshold float64) *BlockedSet {
	threshold = NormalizeThreshold(threshold)
	counts := g.Counts()
	cutoff := Quantile(counts, threshold)

	b := &BlockedSet{
		cols:      g.Cols(),
		rows:      g.Rows(),
		threshold: threshold,
		cutoff:    cutoff,
		blocked:   make([]bool, len(counts)),
	}
	for i, c := range counts {
		if float64(c) > cutoff {
			b.blocked[i] = true
			b.cells = append(b.cells, gridgraph.CellID{Col: i % b.cols, Row: i / b.cols})
		}
	}

	return b
}

// Threshold returns the normalized threshold used for classification.
func (b *BlockedSet) Threshold() float64 { return b.threshold }

// Cutoff returns the count cutoff; cells above it are blocked.
func (b *BlockedSet) Cutoff() float64 { return b.cutoff }

// Len returns the number of blocked cells.
func (b *BlockedSet) Len() int { return len(b.cells) }

// Cells returns a copy of the blocked cells in row-major order.
func (b *BlockedSet) Cells() []gridgraph.CellID {
	out := make([]gridgraph.CellID, len(b.cells))
	copy(out, b.cells)
	return out
}

// Blocked reports whether cell (col,row) is blocked. Cells outside the grid
// are never blocked.
func (b *BlockedSet) Blocked(col, row int) bool {
	if col < 0 || col >= b.cols || row < 0 || row >= b.rows {
		return false
	}
	return b.blocked[row*b.cols+col]
}

// Shared counts the blocked cells that have both a and c among their four
// corners. Cell (col,row) has corners col..col+1 × row..row+1, so the
// candidates are the columns in [max(a.X,c.X)-1, min(a.X,c.X)] and the rows
// in [max(a.Y,c.Y)-1, min(a.Y,c.Y)].
//
// Shared(n, n) is the number of blocked cells touching n.
func (b *BlockedSet) Shared(a, c gridgraph.Node) int {
	n := 0
	for col := max(a.X, c.X) - 1; col <= min(a.X, c.X); col++ {
		for row := max(a.Y, c.Y) - 1; row <= min(a.Y, c.Y); row++ {
			if b.Blocked(col, row) {
				n++
			}
		}
	}
	return n
}

// Touching returns the number of blocked cells that have n as a corner.
func (b *BlockedSet) Touching(n gridgraph.Node) int {
	return b.Shared(n, n)
}
