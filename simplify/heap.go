package simplify

import (
	"container/heap"

	"github.com/grailbio/treeseq/biopb"
	"github.com/grailbio/treeseq/segment"
)

// chainHeap is the priority queue H from spec.md section 4.5.3/4.5.4: a
// min-heap of (segment.left, segment) pairs, keyed by left, holding chain
// heads ready to be merged. Tie-break among equal lefts is immaterial
// (spec.md section 5): merge_labeled_ancestors drains every equal-keyed
// head into one group before reasoning about it.
//
// Modeled on objectHeap in
// junjiewwang-perf-analysis/internal/parser/hprof/analysis_biggest_objects.go
// -- the only container/heap consumer in the example pack: a slice-backed
// heap.Interface over small value structs, Push/Pop operating on the tail.
type chainHeap struct {
	items []segment.Ref
	pool  *segment.Pool
}

func newChainHeap(pool *segment.Pool) *chainHeap {
	return &chainHeap{pool: pool}
}

func (h *chainHeap) Len() int { return len(h.items) }

func (h *chainHeap) Less(i, j int) bool {
	return h.pool.Get(h.items[i]).Left < h.pool.Get(h.items[j]).Left
}

func (h *chainHeap) Swap(i, j int) { h.items[i], h.items[j] = h.items[j], h.items[i] }

func (h *chainHeap) Push(x interface{}) {
	h.items = append(h.items, x.(segment.Ref))
}

func (h *chainHeap) Pop() interface{} {
	old := h.items
	n := len(old)
	x := old[n-1]
	h.items = old[:n-1]
	return x
}

// push inserts a chain head.
func (h *chainHeap) push(ref segment.Ref) {
	heap.Push(h, ref)
}

// pop removes and returns the chain head with the smallest Left.
func (h *chainHeap) pop() segment.Ref {
	return heap.Pop(h).(segment.Ref)
}

// peekLeft returns the smallest Left currently in the heap.
func (h *chainHeap) peekLeft() biopb.Position {
	return h.pool.Get(h.items[0]).Left
}

func (h *chainHeap) empty() bool { return len(h.items) == 0 }
