package density

import "github.com/katalvlaran/gridroute/gridgraph"

// conn8 lists the eight neighbor offsets: N, NE, E, SE, S, SW, W, NW.
var conn8 = [8][2]int{{0, 1}, {1, 1}, {1, 0}, {1, -1}, {0, -1}, {-1, -1}, {-1, 0}, {-1, 1}}

// Regions groups the blocked cells into hotspot regions: maximal sets of
// blocked cells connected through any of their 8 neighbors.
// Regions are returned in the row-major order of their first cell; cells
// within a region are in BFS discovery order.
//
// Time:   O(C·8) for C cells.
// Memory: O(C) for visited flags and output.
func Regions(b *BlockedSet) [][]gridgraph.CellID {
	seen := make([]bool, len(b.blocked))
	var regions [][]gridgraph.CellID

	for _, start := range b.cells {
		i0 := start.Row*b.cols + start.Col
		if seen[i0] {
			continue
		}
		// BFS to collect the region
		queue := []gridgraph.CellID{start}
		seen[i0] = true

		for qi := 0; qi < len(queue); qi++ {
			u := queue[qi]
			for _, d := range conn8 {
				col, row := u.Col+d[0], u.Row+d[1]
				if !b.Blocked(col, row) {
					continue
				}
				vi := row*b.cols + col
				if !seen[vi] {
					seen[vi] = true
					queue = append(queue, gridgraph.CellID{Col: col, Row: row})
				}
			}
		}
		regions = append(regions, queue)
	}

	return regions
}
