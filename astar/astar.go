package astar

import (
	"container/heap"
	"context"
	"fmt"
	"math"
	"time"

	"github.com/katalvlaran/gridroute/gridgraph"
	"github.com/katalvlaran/gridroute/validity"
)

// Search runs A* from start to goal over the lattice of idx.
//
// Preconditions and validation (in order):
//  1. idx must be non-nil (ErrNilIndex).
//  2. TimeLimit must be positive (ErrBadTimeLimit).
//  3. start and goal must be lattice nodes (ErrNodeOutOfRange).
//
// If either endpoint is invalid the search is not attempted and the Result
// carries OutcomeInvalidEndpoint. A done ctx aborts with OutcomeCanceled and
// ctx.Err().
func Search(ctx context.Context, idx *validity.Index, start, goal gridgraph.Node, opts ...Option) (Result, error) {
	// 1) Apply options over the defaults.
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	// 2) Validate inputs.
	if idx == nil {
		return Result{}, ErrNilIndex
	}
	if cfg.TimeLimit <= 0 {
		return Result{}, fmt.Errorf("%w: %v", ErrBadTimeLimit, cfg.TimeLimit)
	}
	g := idx.Grid()
	for _, n := range [2]gridgraph.Node{start, goal} {
		if !g.InBounds(n) {
			return Result{}, fmt.Errorf("%w: %v not in [0,%d]×[0,%d]", ErrNodeOutOfRange, n, g.Cols(), g.Rows())
		}
	}

	// 3) An invalid endpoint short-circuits without touching the heap.
	began := cfg.Clock()
	if idx.Invalid(start) || idx.Invalid(goal) {
		return Result{Outcome: OutcomeInvalidEndpoint}, nil
	}

	// 4) Seed the open set and run the main loop.
	r := newRunner(idx, goal, cfg, began)
	r.init(start)
	res, err := r.process(ctx)
	res.Elapsed = cfg.Clock().Sub(began)

	return res, err
}

// newRunner allocates per-node state for one search over idx.
func newRunner(idx *validity.Index, goal gridgraph.Node, cfg Options, began time.Time) *runner {
	g := idx.Grid()
	return &runner{
		idx:      idx,
		grid:     g,
		goal:     goal,
		options:  cfg,
		deadline: began.Add(cfg.TimeLimit),
		closed:   make([]bool, g.NodeCount()),
		best:     make([]float64, g.NodeCount()),
		pq:       make(nodePQ, 0, 64),
	}
}

// runner holds the mutable state of one search.
type runner struct {
	idx      *validity.Index
	grid     *gridgraph.Grid
	goal     gridgraph.Node
	options  Options
	deadline time.Time

	closed   []bool    // by node index
	best     []float64 // lowest f pushed per node; +Inf if never pushed
	pq       nodePQ
	seq      uint64
	expanded int
	moves    []step // scratch for candidates
}

// init resets per-node state and pushes the start node with g=0.
func (r *runner) init(start gridgraph.Node) {
	for i := range r.best {
		r.best[i] = math.Inf(1)
	}
	heap.Init(&r.pq)
	r.push(start, 0, nil)
}

// push enqueues n unless an entry with an equal or lower f was already
// pushed for it.
func (r *runner) push(n gridgraph.Node, g float64, parent *searchNode) {
	h := r.heuristic(n)
	f := g + h
	i := r.grid.NodeIndex(n)
	if f >= r.best[i] {
		return
	}
	r.best[i] = f
	heap.Push(&r.pq, &searchNode{node: n, g: g, h: h, f: f, parent: parent, seq: r.seq})
	r.seq++
}

// heuristic estimates the remaining cost from n to the goal.
func (r *runner) heuristic(n gridgraph.Node) float64 {
	if r.options.Heuristic == HeuristicRaw {
		p, q := r.grid.Point(n), r.grid.Point(r.goal)
		return math.Hypot(p.X-q.X, p.Y-q.Y)
	}
	return math.Hypot(float64(n.X-r.goal.X), float64(n.Y-r.goal.Y))
}

// process is the main loop. It pops the lowest-f entry, skips it if the
// node is already closed, stops at the goal and otherwise expands it.
//
// Loop termination conditions:
//
//   - The goal is popped (OutcomeFound).
//   - The heap becomes empty (OutcomeExhausted).
//   - The clock passes the deadline (OutcomeTimeout).
//   - ctx is done (OutcomeCanceled).
func (r *runner) process(ctx context.Context) (Result, error) {
	for r.pq.Len() > 0 {
		// 1) Honor cancellation and the time budget before each pop.
		if err := ctx.Err(); err != nil {
			return Result{Expanded: r.expanded, Outcome: OutcomeCanceled}, err
		}
		if r.options.Clock().After(r.deadline) {
			return Result{Expanded: r.expanded, Outcome: OutcomeTimeout}, nil
		}

		// 2) Pop the lowest f; a closed node means a stale duplicate.
		cur := heap.Pop(&r.pq).(*searchNode)
		i := r.grid.NodeIndex(cur.node)
		if r.closed[i] {
			continue
		}
		r.closed[i] = true
		r.expanded++

		// 3) Goal test on pop, then expand.
		if cur.node == r.goal {
			return Result{
				Path:     reconstruct(cur),
				Cost:     cur.g,
				Expanded: r.expanded,
				Found:    true,
				Outcome:  OutcomeFound,
			}, nil
		}
		r.expand(cur)
	}

	return Result{Expanded: r.expanded, Outcome: OutcomeExhausted}, nil
}

// expand pushes every legal, not yet closed neighbor of cur.
func (r *runner) expand(cur *searchNode) {
	// Candidate moves depend on where cur sits: 8, 3 or 1.
	pos := r.grid.Position(cur.node)
	r.moves = candidates(r.moves[:0], r.grid, cur.node)
	for _, s := range r.moves {
		next := gridgraph.Node{X: cur.node.X + s.dx, Y: cur.node.Y + s.dy}
		if !r.grid.InBounds(next) || r.closed[r.grid.NodeIndex(next)] {
			continue
		}
		if !legal(r.idx, cur.node, next, pos, s) {
			continue
		}
		// push drops it unless f improves on the best open entry.
		r.push(next, cur.g+StepCost(r.idx.Blocked(), cur.node, next), cur)
	}
}

// reconstruct follows parent links from end back to the start and returns
// the nodes in start-to-end order.
func reconstruct(end *searchNode) []gridgraph.Node {
	var path []gridgraph.Node
	for sn := end; sn != nil; sn = sn.parent {
		path = append(path, sn.node)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
