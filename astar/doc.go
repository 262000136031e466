// Package astar finds a least-cost route between two lattice nodes of a
// density grid, steering around blocked cells.
//
// Overview:
//
//   - Nodes are grid-line intersections addressed by tick index.
//   - Moves step one cell along x, y or both (8 compass directions).
//     Interior nodes try all eight; edge nodes only the three that point
//     back into the grid; corner nodes only their single inward diagonal.
//   - A move into an invalid node (see package validity) is never taken.
//   - A diagonal move is illegal when a blocked cell has both ends as
//     corners, since it would cut through that cell.
//   - A straight move from an interior node is illegal when two blocked
//     cells share the traversed border.
//
// Costs:
//
//	diagonal                               1.5
//	straight along a blocked cell's border 1.3
//	straight otherwise                     1.0
//
// When to use:
//
//   - Routing between two points of a density grid while avoiding its
//     hotspots; build the validity.Index once per classification and reuse
//     it for any number of searches.
//   - Comparing routes under different thresholds: Search is read-only over
//     the Index, so concurrent searches over one Index are safe.
//
// Algorithm outline:
//
//  1. Validate inputs and reject invalid endpoints up front.
//  2. Push the start with g = 0.
//  3. Pop the lowest f; skip it if already closed, else close it.
//  4. Stop when the goal is popped; otherwise expand its legal neighbors,
//     pushing a neighbor only when its new f is strictly below the best f
//     already pushed for it.
//  5. Stop with an empty Result when the heap drains, the time budget
//     passes or ctx is done.
//
// The open set is a binary heap ordered by f = g + h with ties broken in
// insertion order, so identical inputs always yield identical paths. Stale
// duplicates are tolerated (lazy decrease-key): the first pop of a node is
// canonical and later pops of a closed node are skipped.
//
// Heuristic:
//
//   - HeuristicCell (default): Euclidean distance in cell units. Every move
//     costs at least the cell distance it covers, so this never
//     overestimates and returned paths are optimal.
//   - HeuristicRaw: Euclidean distance in raw coordinate units. Kept for
//     parity with routers that ignore the cell size; not admissible when
//     the cell size is above 1.
//
// Performance and complexity:
//
//   - Time:  O(N log N) for N = (Cols+1)×(Rows+1) nodes.
//   - Each node is closed at most once; Result.Expanded counts closures.
//   - Each node is pushed at most 8 times (once per neighbor), so the heap
//     holds O(N) entries under lazy decrease-key.
//   - Space: O(N) for the closed flags, best-f table and heap.
//
// Error handling (sentinel errors):
//
//   - ErrNilIndex        if the validity index is nil.
//   - ErrNodeOutOfRange  if start or goal lies outside the lattice.
//   - ErrBadTimeLimit    if Options.TimeLimit is not positive.
//   - ErrUnknownHeuristic from ParseHeuristic.
//   - ctx.Err()          when the context is done before the search ends.
//
// An invalid endpoint, an exhausted open set and an expired time budget are
// not errors: Search returns an empty Result whose Outcome says why.
//
// API reference:
//
//	func Search(ctx context.Context, idx *validity.Index, start, goal gridgraph.Node, opts ...Option) (Result, error)
//	func StepCost(b *density.BlockedSet, a, c gridgraph.Node) float64
//	func WithTimeLimit(d time.Duration) Option
//	func WithHeuristic(h Heuristic) Option
//	func WithClock(now func() time.Time) Option
package astar
