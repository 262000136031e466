// Package gridgraph partitions a bounded 2D region into a uniform grid of
// cells, counts the events that fall in each cell and exposes the lattice of
// grid-line intersections ("nodes") that the router moves across.
//
// Overview:
//
//   - Grid is built once from a bounding box, a cell size and a point list.
//   - Ticks are integer multiples of the cell size measured from the bbox
//     minimum, so every boundary is generated by the same expression on both
//     axes and exact comparisons stay reproducible.
//   - Cells are half-open rectangles [left,right) × [bottom,top). The last
//     cell on each axis ends at lastTick+cellSize and may overshoot the bbox
//     maximum, which guarantees that points on the right/top edge are counted.
//     When the bbox maximum is an exact multiple of the cell size the last
//     cell is closed on that outer edge instead.
//   - Nodes are (X,Y) tick indices in 0..Cols() × 0..Rows(); index Cols()
//     (resp. Rows()) is the sentinel tick lastTick+cellSize.
//
// When to use:
//
//   - To turn a raw event list (a shapefile, a CSV export) into per-cell
//     densities before classifying hotspots with package density.
//   - To map user input to lattice nodes: Resolve accepts either tick
//     indices (negative ones count back from the sentinel) or raw
//     coordinates, which are clamped into the bbox and snapped down to the
//     nearest tick.
//
// Positions:
//
//   - Corner:   both indices on the lattice boundary (4 nodes).
//   - Edge:     exactly one index on the boundary.
//   - Interior: everything else.
//
// Performance and complexity:
//
//   - New:     O(C + P) time with C = Cols×Rows and P = len(points).
//     Each point is located in O(1) by dividing its offset by the cell size
//     and re-checking the half-open test against the stored ticks.
//   - Memory:  O(C) for the counts; points are not retained.
//   - Resolve, Position, NodeIndex: O(1).
//   - Stats:   computed once in New with gonum (sample standard deviation).
//
// Error handling (sentinel errors):
//
//   - ErrBadCellSize:
//     cell size is zero, negative, NaN or infinite.
//   - ErrDegenerateBBox:
//     bbox has zero, negative or infinite extent on an axis.
//   - ErrGridTooLarge:
//     the cell size yields more than MaxCells cells.
//
// API reference:
//
//	func New(bbox BBox, cellSize float64, points []Point) (*Grid, error)
//	func (g *Grid) Resolve(x, y float64) Node
//	func (g *Grid) Cells() []Cell
//	func (g *Grid) Position(n Node) Position
package gridgraph
