package gridgraph

import "math"

// Resolve maps a raw (x,y) pair to a node, one axis at a time.
//
// On each axis let count = extent+1 be the number of ticks including the
// sentinel. A raw value in [-count, count] is read as a tick index:
// it is truncated toward zero, negative values count back from the sentinel
// (-1 is the sentinel itself) and values past the sentinel select it.
// Any other value is read as a coordinate: below the first tick it clamps
// to index 0, at or beyond the sentinel it clamps to the sentinel, otherwise
// it snaps down to the greatest tick <= value.
//
// Small axis extents make the two readings overlap; a coordinate that happens
// to fall inside [-count, count] is taken as an index.
func (g *Grid) Resolve(x, y float64) Node {
	return Node{X: g.ResolveAxis(AxisX, x), Y: g.ResolveAxis(AxisY, y)}
}

// ResolveAxis applies the Resolve rule to a single axis.
func (g *Grid) ResolveAxis(axis Axis, raw float64) int {
	n := g.extent(axis)
	count := float64(n + 1)

	if raw >= -count && raw <= count {
		i := int(raw)
		if i < 0 {
			i += n + 1
		}
		return clampIndex(i, n)
	}

	switch {
	case math.IsNaN(raw), raw <= g.Tick(axis, 0):
		return 0
	case raw >= g.Tick(axis, n):
		return n
	}
	i, _ := g.locate(axis, raw)
	return i
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}
