package validity

import (
	"github.com/katalvlaran/gridroute/density"
	"github.com/katalvlaran/gridroute/gridgraph"
)

// Limit returns the number of touching blocked cells at which a node in
// position p becomes invalid.
func Limit(p gridgraph.Position) int {
	switch p {
	case gridgraph.Corner:
		return 1
	case gridgraph.Edge:
		return 2
	default:
		return 4
	}
}

// Index is the immutable set of invalid nodes for one grid and BlockedSet.
type Index struct {
	grid    *gridgraph.Grid
	blocked *density.BlockedSet
	invalid []bool           // by grid.NodeIndex
	nodes   []gridgraph.Node // invalid nodes, bottom-to-top then left-to-right
}

// Build classifies every node of g against b.
func Build(g *gridgraph.Grid, b *density.BlockedSet) *Index {
	idx := &Index{
		grid:    g,
		blocked: b,
		invalid: make([]bool, g.NodeCount()),
	}
	if b.Len() == 0 {
		return idx
	}
	for i := range idx.invalid {
		n := g.NodeAt(i)
		if b.Touching(n) >= Limit(g.Position(n)) {
			idx.invalid[i] = true
			idx.nodes = append(idx.nodes, n)
		}
	}

	return idx
}

// Grid returns the grid the index was derived from.
func (x *Index) Grid() *gridgraph.Grid { return x.grid }

// Blocked returns the BlockedSet the index was derived from.
func (x *Index) Blocked() *density.BlockedSet { return x.blocked }

// Invalid reports whether n may not be used. Nodes outside the lattice are
// reported invalid.
func (x *Index) Invalid(n gridgraph.Node) bool {
	if !x.grid.InBounds(n) {
		return true
	}
	return x.invalid[x.grid.NodeIndex(n)]
}

// Len returns the number of invalid nodes.
func (x *Index) Len() int { return len(x.nodes) }

// Nodes returns a copy of the invalid nodes in lattice order.
func (x *Index) Nodes() []gridgraph.Node {
	out := make([]gridgraph.Node, len(x.nodes))
	copy(out, x.nodes)
	return out
}
