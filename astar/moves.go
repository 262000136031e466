package astar

import (
	"github.com/katalvlaran/gridroute/density"
	"github.com/katalvlaran/gridroute/gridgraph"
	"github.com/katalvlaran/gridroute/validity"
)

// step is a unit move in tick indices.
type step struct{ dx, dy int }

func (s step) diagonal() bool { return s.dx != 0 && s.dy != 0 }

// compass lists the eight moves in generation order: N, NE, E, SE, S, SW, W, NW.
var compass = [8]step{{0, 1}, {1, 1}, {1, 0}, {1, -1}, {0, -1}, {-1, -1}, {-1, 0}, {-1, 1}}

// inward returns the direction pointing into [0,last] from i, or 0 when i
// is strictly inside.
func inward(i, last int) int {
	switch i {
	case 0:
		return 1
	case last:
		return -1
	default:
		return 0
	}
}

// candidates appends to dst the moves n may attempt. On a boundary axis a
// move must head inward along that axis, which leaves three moves on an
// edge and one on a corner.
func candidates(dst []step, g *gridgraph.Grid, n gridgraph.Node) []step {
	inX, inY := inward(n.X, g.Cols()), inward(n.Y, g.Rows())
	for _, s := range compass {
		if inX != 0 && s.dx != inX {
			continue
		}
		if inY != 0 && s.dy != inY {
			continue
		}
		dst = append(dst, s)
	}
	return dst
}

// legal reports whether the move from -> to may be taken.
func legal(idx *validity.Index, from, to gridgraph.Node, pos gridgraph.Position, s step) bool {
	if idx.Invalid(to) {
		return false
	}
	shared := idx.Blocked().Shared(from, to)
	if s.diagonal() {
		return shared == 0
	}
	if pos == gridgraph.Interior {
		return shared < 2
	}
	return true
}

// StepCost returns the cost of a single move between neighboring nodes a
// and c: CostDiagonal for a diagonal, CostSkirt for a straight move along a
// blocked cell's border, CostStraight otherwise. Legality is not checked.
func StepCost(b *density.BlockedSet, a, c gridgraph.Node) float64 {
	if a.X != c.X && a.Y != c.Y {
		return CostDiagonal
	}
	if b.Shared(a, c) > 0 {
		return CostSkirt
	}
	return CostStraight
}
