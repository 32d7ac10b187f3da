// Package ancestry implements the AncestryMap A: a mapping from input node
// id to the head of its left-ordered ancestry segment chain. Unlike
// overlap.Map, A has no ordering requirement (spec.md section 4.4), so a
// plain Go map is the correct and idiomatic backing store; no teacher
// ordered-map dependency applies here.
package ancestry

import (
	"github.com/grailbio/treeseq/biopb"
	"github.com/grailbio/treeseq/segment"
)

// Map is the AncestryMap A.
type Map struct {
	chains map[biopb.NodeID]segment.Ref
}

// New returns an empty Map.
func New() *Map {
	return &Map{chains: make(map[biopb.NodeID]segment.Ref)}
}

// Get returns the chain head stored for id, and whether one exists.
func (m *Map) Get(id biopb.NodeID) (segment.Ref, bool) {
	ref, ok := m.chains[id]
	return ref, ok
}

// Set stores head as the chain for id.
func (m *Map) Set(id biopb.NodeID, head segment.Ref) {
	m.chains[id] = head
}

// Remove deletes the entry for id.
func (m *Map) Remove(id biopb.NodeID) {
	delete(m.chains, id)
}

// Contains reports whether id has extant ancestry.
func (m *Map) Contains(id biopb.NodeID) bool {
	_, ok := m.chains[id]
	return ok
}

// Len returns the number of lineages with extant ancestry.
func (m *Map) Len() int {
	return len(m.chains)
}

// Each calls f(id, head) for every entry, in unspecified order.
func (m *Map) Each(f func(id biopb.NodeID, head segment.Ref)) {
	for id, head := range m.chains {
		f(id, head)
	}
}
