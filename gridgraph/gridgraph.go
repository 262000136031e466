// Package gridgraph provides the uniform counting grid and its node lattice.
//
// Cells are addressed by CellID{Col,Row}; nodes by Node{X,Y}. Node (x,y) is
// the lower-left corner of cell (x,y) and the upper-right corner of cell
// (x-1,y-1). All coordinates are derived from integer indices through Tick.
package gridgraph

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Grid is an immutable counting grid. Build it with New.
type Grid struct {
	bbox     BBox
	cellSize float64
	cols     int   // number of ticks on X == number of cell columns
	rows     int   // number of ticks on Y == number of cell rows
	counts   []int // row-major: counts[row*cols+col]
	stats    Stats
}

// New builds the grid for bbox with square cells of cellSize and counts points.
// Each point is bucketed by its floor index and then re-checked against the
// half-open boundaries of the chosen cell; points outside every cell are
// reported in Stats().Outside.
//
// Returns ErrBadCellSize, ErrDegenerateBBox or ErrGridTooLarge on bad input.
// Complexity: O(Cols×Rows + len(points)) time, O(Cols×Rows) memory.
func New(bbox BBox, cellSize float64, points []Point) (*Grid, error) {
	// 1) Validate the cell size and the bbox extent.
	if !(cellSize > 0) || math.IsInf(cellSize, 0) {
		return nil, ErrBadCellSize
	}
	if !(bbox.Width() > 0) || !(bbox.Height() > 0) ||
		math.IsInf(bbox.Width(), 0) || math.IsInf(bbox.Height(), 0) {
		return nil, ErrDegenerateBBox
	}
	if bbox.Width()/cellSize > MaxCells || bbox.Height()/cellSize > MaxCells {
		return nil, ErrGridTooLarge
	}
	// 2) Derive tick counts; the estimate is corrected against Tick.
	cols := tickCount(bbox.MinX, bbox.MaxX, cellSize)
	rows := tickCount(bbox.MinY, bbox.MaxY, cellSize)
	if cols*rows > MaxCells {
		return nil, ErrGridTooLarge
	}

	g := &Grid{
		bbox:     bbox,
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		counts:   make([]int, cols*rows),
	}

	// 3) Bucket each point by direct index; misses count as outside.
	outside := 0
	for _, p := range points {
		col, okX := g.locate(AxisX, p.X)
		row, okY := g.locate(AxisY, p.Y)
		if !okX || !okY {
			outside++
			continue
		}
		g.counts[row*cols+col]++
	}
	// 4) Reporting statistics.
	g.stats = summarize(g.counts, outside)

	return g, nil
}

// tickCount returns how many ticks min, min+step, ... fall strictly below max.
// The float estimate is corrected against the same expression Tick uses.
func tickCount(min, max, step float64) int {
	n := int(math.Ceil((max - min) / step))
	if n < 1 {
		n = 1
	}
	for n > 1 && min+float64(n-1)*step >= max {
		n--
	}
	for min+float64(n)*step < max {
		n++
	}
	return n
}

// summarize computes the reporting statistics over counts.
func summarize(counts []int, outside int) Stats {
	values := make([]float64, len(counts))
	maxCount := 0
	for i, c := range counts {
		values[i] = float64(c)
		if c > maxCount {
			maxCount = c
		}
	}
	s := Stats{
		Cells:   len(counts),
		Sum:     int(floats.Sum(values)),
		Outside: outside,
		Max:     maxCount,
	}
	if len(values) < 2 {
		if len(values) == 1 {
			s.Mean = values[0]
		}
		return s
	}
	s.Mean, s.StdDev = stat.MeanStdDev(values, nil)
	return s
}

// origin returns the bbox minimum on axis.
func (g *Grid) origin(axis Axis) float64 {
	if axis == AxisX {
		return g.bbox.MinX
	}
	return g.bbox.MinY
}

// extent returns the number of ticks (cells) on axis, excluding the sentinel.
func (g *Grid) extent(axis Axis) int {
	if axis == AxisX {
		return g.cols
	}
	return g.rows
}

// Tick returns the coordinate of tick i on axis. i == Cols() (or Rows())
// yields the sentinel lastTick+cellSize.
func (g *Grid) Tick(axis Axis, i int) float64 {
	return g.origin(axis) + float64(i)*g.cellSize
}

// Ticks returns the tick sequence on axis, without the sentinel.
func (g *Grid) Ticks(axis Axis) []float64 {
	n := g.extent(axis)
	out := make([]float64, n)
	for i := range out {
		out[i] = g.Tick(axis, i)
	}
	return out
}

// locate finds the cell index on axis whose half-open span holds v.
// ok is false when v lies outside every cell.
func (g *Grid) locate(axis Axis, v float64) (i int, ok bool) {
	if math.IsNaN(v) {
		return 0, false
	}
	n := g.extent(axis)
	f := math.Floor((v - g.origin(axis)) / g.cellSize)
	switch {
	case f < 0:
		i = 0
	case f > float64(n-1):
		i = n - 1
	default:
		i = int(f)
	}
	for i > 0 && v < g.Tick(axis, i) {
		i--
	}
	for i < n-1 && v >= g.Tick(axis, i+1) {
		i++
	}
	if g.Tick(axis, i) <= v && v < g.Tick(axis, i+1) {
		return i, true
	}
	// The outer edge of the last cell is closed when it coincides with the
	// bbox maximum, otherwise events on the boundary would be dropped.
	return i, i == n-1 && v == g.Tick(axis, n) && v == g.limit(axis)
}

// limit returns the bbox maximum on axis.
func (g *Grid) limit(axis Axis) float64 {
	if axis == AxisX {
		return g.bbox.MaxX
	}
	return g.bbox.MaxY
}

// BBox returns the bounding box the grid was built from.
func (g *Grid) BBox() BBox { return g.bbox }

// CellSize returns the edge length of every cell.
func (g *Grid) CellSize() float64 { return g.cellSize }

// Cols returns the number of cell columns (ticks on X).
func (g *Grid) Cols() int { return g.cols }

// Rows returns the number of cell rows (ticks on Y).
func (g *Grid) Rows() int { return g.rows }

// Stats returns the reporting statistics of the counts.
func (g *Grid) Stats() Stats { return g.stats }

// HasCell reports whether (col,row) addresses a cell of the grid.
func (g *Grid) HasCell(col, row int) bool {
	return col >= 0 && col < g.cols && row >= 0 && row < g.rows
}

// Count returns the event count of cell (col,row), or 0 outside the grid.
func (g *Grid) Count(col, row int) int {
	if !g.HasCell(col, row) {
		return 0
	}
	return g.counts[row*g.cols+col]
}

// Cell returns the full description of cell (col,row).
func (g *Grid) Cell(col, row int) (Cell, bool) {
	if !g.HasCell(col, row) {
		return Cell{}, false
	}
	return Cell{
		CellID: CellID{Col: col, Row: row},
		Left:   g.Tick(AxisX, col),
		Right:  g.Tick(AxisX, col+1),
		Bottom: g.Tick(AxisY, row),
		Top:    g.Tick(AxisY, row+1),
		Count:  g.counts[row*g.cols+col],
	}, true
}

// Cells returns every cell in row-major order: bottom-to-top, then
// left-to-right.
func (g *Grid) Cells() []Cell {
	out := make([]Cell, 0, len(g.counts))
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			c, _ := g.Cell(col, row)
			out = append(out, c)
		}
	}
	return out
}

// Counts returns a copy of the row-major count slice.
func (g *Grid) Counts() []int {
	out := make([]int, len(g.counts))
	copy(out, g.counts)
	return out
}

// NodeCount returns (Cols()+1)×(Rows()+1).
func (g *Grid) NodeCount() int {
	return (g.cols + 1) * (g.rows + 1)
}

// InBounds reports whether n is a node of the lattice.
func (g *Grid) InBounds(n Node) bool {
	return n.X >= 0 && n.X <= g.cols && n.Y >= 0 && n.Y <= g.rows
}

// NodeIndex maps n to a row-major index in [0, NodeCount()).
func (g *Grid) NodeIndex(n Node) int {
	return n.Y*(g.cols+1) + n.X
}

// NodeAt converts a row-major node index back to a Node.
func (g *Grid) NodeAt(idx int) Node {
	return Node{X: idx % (g.cols + 1), Y: idx / (g.cols + 1)}
}

// Point returns the real coordinates of node n.
func (g *Grid) Point(n Node) Point {
	return Point{X: g.Tick(AxisX, n.X), Y: g.Tick(AxisY, n.Y)}
}

// Position classifies n as Interior, Edge or Corner.
func (g *Grid) Position(n Node) Position {
	onX := n.X == 0 || n.X == g.cols
	onY := n.Y == 0 || n.Y == g.rows
	switch {
	case onX && onY:
		return Corner
	case onX || onY:
		return Edge
	default:
		return Interior
	}
}
