// Package overlap implements the OverlapMap S: an ordered mapping from
// genomic coordinate to the number of distinct extant ancestors covering
// that coordinate, with floor/successor queries.
//
// It is backed by github.com/biogo/store/llrb, the same ordered-tree
// package encoding/bampair/shard_info.go and
// cmd/bio-bam-sort/sorter/sort.go use for coordinate-keyed lookups (there,
// an llrb.Tree of a Comparable key wrapper; here, the same pattern with an
// int64 value riding along in the Comparable).
package overlap

import (
	"github.com/biogo/store/llrb"

	"github.com/grailbio/treeseq/biopb"
)

// Position is the coordinate type the map is keyed by.
type Position = biopb.Position

// entry is the llrb.Comparable stored in the tree: a coordinate with its
// overlap count riding along, compared by coordinate only (mirroring
// bampair's "key" wrapper, which compares on (refID, start) and carries a
// *ShardInfoEntry payload that doesn't participate in ordering).
type entry struct {
	pos   Position
	value int64
}

// Compare implements llrb.Comparable.
func (e entry) Compare(c llrb.Comparable) int {
	o := c.(entry)
	switch {
	case e.pos < o.pos:
		return -1
	case e.pos > o.pos:
		return 1
	default:
		return 0
	}
}

// Map is the OverlapMap S from spec.md section 4.2.
type Map struct {
	tree llrb.Tree
}

// New returns an empty Map.
func New() *Map {
	return &Map{}
}

// Contains reports whether k has a stored entry.
func (m *Map) Contains(k Position) bool {
	return m.tree.Get(entry{pos: k}) != nil
}

// Get returns the value stored at exactly k. It panics if k is not
// present; callers are expected to check Contains (or know from the
// algorithm's invariants) first, the way the source accesses self.S[k]
// directly once floor_key has established that the key exists.
func (m *Map) Get(k Position) int64 {
	v := m.tree.Get(entry{pos: k})
	if v == nil {
		panic("overlap.Map.Get: key not present")
	}
	return v.(entry).value
}

// Set stores value at k, inserting a new entry or overwriting an existing
// one.
func (m *Map) Set(k Position, value int64) {
	m.tree.Insert(entry{pos: k, value: value})
}

// FloorKey returns the greatest stored key <= k. It requires that such a
// key exists (true for every query the simplifier makes, since S is
// initialized with S[0] before any query in [0, m] is issued).
func (m *Map) FloorKey(k Position) Position {
	v := m.tree.Floor(entry{pos: k})
	if v == nil {
		panic("overlap.Map.FloorKey: no key <= k")
	}
	return v.(entry).pos
}

// SuccKey returns the least stored key strictly greater than k. Since keys
// live in the integer Position domain, this is exactly Ceil(k+1): there is
// nothing a map key could occupy strictly between k and k+1.
func (m *Map) SuccKey(k Position) Position {
	v := m.tree.Ceil(entry{pos: k + 1})
	if v == nil {
		panic("overlap.Map.SuccKey: no key > k")
	}
	return v.(entry).pos
}
