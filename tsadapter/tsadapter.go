// Package tsadapter defines the read-only InputTreeSequence contract the
// simplifier consumes, and an in-memory implementation of it.
//
// The contract mirrors the accessors original_source/msprime/trees.py's
// TreeSequence exposes (samples(), node(id), edgesets(), sites()),
// translated into a Go interface so the simplifier can be driven either by
// a hand-built fixture (tests) or by whatever container.Read loads off
// disk.
package tsadapter

import (
	"sort"

	"github.com/grailbio/treeseq/biopb"
)

// NodeID and Position are re-exported for convenience.
type (
	NodeID   = biopb.NodeID
	Position = biopb.Position
)

// TreeSequence is the read-only view the Simplifier operates over.
type TreeSequence interface {
	// NumNodes returns the number of nodes in the input.
	NumNodes() int
	// SequenceLength returns m, the length of the chromosome.
	SequenceLength() Position
	// Samples returns the input node ids marked as samples, in table
	// order.
	Samples() []NodeID
	// Node returns the node record for id.
	Node(id NodeID) biopb.Node
	// Nodes calls f(id, node) for every node, in id order.
	Nodes(f func(id NodeID, node biopb.Node))
	// Edgesets calls f(e) for every edgeset. No ordering is guaranteed
	// beyond what a valid input tree sequence implies.
	Edgesets(f func(e biopb.Edgeset))
	// Sites calls f(site) for every site, each carrying its mutations.
	Sites(f func(site biopb.Site))
}

// Tables is an in-memory TreeSequence backed by plain slices: the type
// container.Read populates, and the type test fixtures build directly.
type Tables struct {
	NodeList    []biopb.Node
	Length      Position
	EdgesetList []biopb.Edgeset
	SiteList    []biopb.Site
}

// NewTables returns an empty Tables with the given sequence length.
func NewTables(sequenceLength Position) *Tables {
	return &Tables{Length: sequenceLength}
}

// AddNode appends a node and returns its id.
func (t *Tables) AddNode(n biopb.Node) NodeID {
	t.NodeList = append(t.NodeList, n)
	return NodeID(len(t.NodeList) - 1)
}

// AddEdgeset appends an edgeset.
func (t *Tables) AddEdgeset(e biopb.Edgeset) {
	t.EdgesetList = append(t.EdgesetList, e)
}

// AddSite appends a site.
func (t *Tables) AddSite(s biopb.Site) {
	t.SiteList = append(t.SiteList, s)
}

func (t *Tables) NumNodes() int { return len(t.NodeList) }

func (t *Tables) SequenceLength() Position { return t.Length }

func (t *Tables) Samples() []NodeID {
	var out []NodeID
	for id, n := range t.NodeList {
		if n.IsSample() {
			out = append(out, NodeID(id))
		}
	}
	return out
}

func (t *Tables) Node(id NodeID) biopb.Node { return t.NodeList[id] }

func (t *Tables) Nodes(f func(id NodeID, node biopb.Node)) {
	for id, n := range t.NodeList {
		f(NodeID(id), n)
	}
}

func (t *Tables) Edgesets(f func(e biopb.Edgeset)) {
	for _, e := range t.EdgesetList {
		f(e)
	}
}

func (t *Tables) Sites(f func(site biopb.Site)) {
	for _, s := range t.SiteList {
		f(s)
	}
}

// SortedSites returns a copy of the site list ordered by Position, the
// same order sitechain.Index keeps its sites in.
func (t *Tables) SortedSites() []biopb.Site {
	out := make([]biopb.Site, len(t.SiteList))
	copy(out, t.SiteList)
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}
