package astar

import "github.com/katalvlaran/gridroute/gridgraph"

// searchNode is one open-set entry. parent links form a chain back to the
// start.
type searchNode struct {
	node    gridgraph.Node
	g, h, f float64
	parent  *searchNode
	seq     uint64 // insertion order, breaks f ties
	index   int    // position in the heap
}

// nodePQ is a min-heap of *searchNode ordered by f, then seq.
type nodePQ []*searchNode

// Len returns the number of entries in the heap.
func (pq nodePQ) Len() int { return len(pq) }

// Less orders by f ascending; equal f keeps FIFO order.
func (pq nodePQ) Less(i, j int) bool {
	if pq[i].f != pq[j].f {
		return pq[i].f < pq[j].f
	}
	return pq[i].seq < pq[j].seq
}

// Swap swaps two entries and keeps their indices current.
func (pq nodePQ) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

// Push adds x, which must be a *searchNode. Called by heap.Push.
func (pq *nodePQ) Push(x interface{}) {
	sn := x.(*searchNode)
	sn.index = len(*pq)
	*pq = append(*pq, sn)
}

// Pop removes and returns the last entry. Called by heap.Pop.
func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	sn := old[n-1]
	old[n-1] = nil
	sn.index = -1
	*pq = old[:n-1]

	return sn
}
