// Package segment implements the ancestry-segment arena the simplifier
// sweeps over. It is modeled on the arena allocator in
// encoding/pam/unsafearena.go (allocate from one backing buffer, track how
// much is in use, fail loudly on corruption), generalized from a byte arena
// to an arena of Segment structs addressed by index, with a free-list so
// Alloc can reuse the slots Free releases instead of growing forever.
package segment

import (
	"v.io/x/lib/vlog"

	"github.com/grailbio/treeseq/biopb"
)

// Ref is a handle to a segment living in a Pool, or RefNone if absent.
// Using an index rather than a pointer keeps the doubly-linked chains free
// of Go-level cycles, and makes "every segment was freed" a single counter
// check (spec.md section 8's leak-free property).
type Ref int32

// RefNone is the sentinel for "no segment", the Ref analogue of
// biopb.InvalidNodeID.
const RefNone Ref = -1

// Segment is the atomic ancestry unit: a half-open genomic interval
// [Left, Right) carrying output node Node, linked into a chain ordered by
// strictly increasing Left.
type Segment struct {
	Left, Right Position
	Node        biopb.NodeID
	Prev, Next  Ref
}

// Position is re-exported for convenience so callers of this package don't
// need a separate import just to name a segment boundary.
type Position = biopb.Position

// Pool owns all Segment storage for one simplification run.
//
// Pool is not safe for concurrent use: the core sweep is single-threaded
// (spec.md section 5).
type Pool struct {
	// segments holds one *Segment per allocated slot. Slots are stored as
	// pointers, not values, so that appending to the slice (growing the
	// arena) never invalidates a *Segment a caller is already holding.
	segments []*Segment
	free     []Ref
	live     int // outstanding allocation count; must be 0 when simplify returns
}

// NewPool returns an empty Pool. capacityHint sizes the initial backing
// array; it is not a hard limit, just a sizing hint.
func NewPool(capacityHint int) *Pool {
	return &Pool{
		segments: make([]*Segment, 0, capacityHint),
	}
}

// Alloc returns a fresh segment carrying the given interval, node and
// (optional) chain links, and increments the outstanding counter.
func (p *Pool) Alloc(left, right Position, node biopb.NodeID, prev, next Ref) Ref {
	if left >= right {
		vlog.Fatalf("segment.Pool.Alloc: invalid interval [%d, %d)", left, right)
	}
	p.live++
	if n := len(p.free); n > 0 {
		ref := p.free[n-1]
		p.free = p.free[:n-1]
		s := p.segments[ref]
		*s = Segment{Left: left, Right: right, Node: node, Prev: prev, Next: next}
		return ref
	}
	p.segments = append(p.segments, &Segment{Left: left, Right: right, Node: node, Prev: prev, Next: next})
	return Ref(len(p.segments) - 1)
}

// Free releases the segment at ref. It must be called exactly once per
// allocation on every code path; Pool.Outstanding is the checkable
// invariant that verifies this after a full sweep.
func (p *Pool) Free(ref Ref) {
	if ref == RefNone {
		vlog.Fatalf("segment.Pool.Free: double free or free of RefNone")
	}
	p.live--
	p.free = append(p.free, ref)
}

// Get dereferences ref.
func (p *Pool) Get(ref Ref) *Segment {
	return p.segments[ref]
}

// Outstanding returns the number of segments allocated but not yet freed.
// It must be 0 after a successful simplify() call returns.
func (p *Pool) Outstanding() int {
	return p.live
}
