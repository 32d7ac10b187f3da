package simplify

import (
	"sort"

	"github.com/grailbio/treeseq/biopb"
)

// pendingEdgeset is the one-slot squash buffer record_edgeset uses to
// merge adjacent edgesets that carry an identical (parent, children)
// relationship, per spec.md section 4.6.
type pendingEdgeset struct {
	left, right biopb.Position
	parent      biopb.NodeID
	children    []biopb.NodeID
}

// outputTables is the Simplifier's OutputTables: an append-only node
// table, a squash-buffered edgeset table, and a site/mutation map keyed by
// position (final ordering is assigned at Finalize).
type outputTables struct {
	nodes    []biopb.Node
	edgesets []biopb.Edgeset
	pending  *pendingEdgeset

	sitesByPos map[biopb.Position]*biopb.Site

	// sampleOutputID maps an input sample node id to its output id
	// (0..n-1, assigned in sample-list order at init).
	sampleOutputID map[biopb.NodeID]biopb.NodeID
}

func newOutputTables() *outputTables {
	return &outputTables{
		sitesByPos:     make(map[biopb.Position]*biopb.Site),
		sampleOutputID: make(map[biopb.NodeID]biopb.NodeID),
	}
}

// recordSampleNode adds the output row for a sample, per spec.md section
// 4.5.1 step 1: flags are masked down to just NodeIsSample, regardless of
// what other flags the input node carried (spec.md section 9, Open
// Question 4).
func (o *outputTables) recordSampleNode(inputID biopb.NodeID, n biopb.Node) biopb.NodeID {
	outID := biopb.NodeID(len(o.nodes))
	o.nodes = append(o.nodes, biopb.Node{
		Flags:      n.Flags & biopb.NodeIsSample,
		Time:       n.Time,
		Population: n.Population,
	})
	o.sampleOutputID[inputID] = outID
	return outID
}

// checkOrRecordNode implements spec.md section 4.6's check_or_record_node:
// samples return their pre-assigned output id; everyone else gets a fresh
// row with the sample bit cleared (Open Question 1 -- the spec's chosen
// resolution is "clear the sample bit", not the source's ambiguous
// "mask to raw node.flags").
func (o *outputTables) checkOrRecordNode(inputID biopb.NodeID, n biopb.Node) biopb.NodeID {
	if outID, ok := o.sampleOutputID[inputID]; ok {
		return outID
	}
	outID := biopb.NodeID(len(o.nodes))
	o.nodes = append(o.nodes, biopb.Node{
		Flags:      n.Flags &^ biopb.NodeIsSample,
		Time:       n.Time,
		Population: n.Population,
	})
	return outID
}

// recordEdgeset implements spec.md section 4.6's record_edgeset: sort
// children, then squash into the pending buffer if it describes the same
// (parent, children) relationship over an abutting interval, else flush
// the old pending record and start a new one.
func (o *outputTables) recordEdgeset(left, right biopb.Position, parent biopb.NodeID, children []biopb.NodeID) {
	sorted := append([]biopb.NodeID(nil), children...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	if o.pending == nil {
		o.pending = &pendingEdgeset{left: left, right: right, parent: parent, children: sorted}
		return
	}
	p := o.pending
	if p.parent == parent && p.right == left && sameChildren(p.children, sorted) {
		p.right = right
		return
	}
	o.flushPending()
	o.pending = &pendingEdgeset{left: left, right: right, parent: parent, children: sorted}
}

func sameChildren(a, b []biopb.NodeID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (o *outputTables) flushPending() {
	if o.pending == nil {
		return
	}
	p := o.pending
	o.edgesets = append(o.edgesets, biopb.Edgeset{
		Left: p.left, Right: p.right, Parent: p.parent, Children: p.children,
	})
	o.pending = nil
}

// recordMutation ensures a site exists at position (copying ancestralState
// the first time it's seen) and appends a mutation on outputNode with the
// given derived state, per spec.md section 4.7's record_mutations.
func (o *outputTables) recordMutation(position biopb.Position, ancestralState string, outputNode biopb.NodeID, derivedState string) {
	site, ok := o.sitesByPos[position]
	if !ok {
		site = &biopb.Site{Position: position, AncestralState: ancestralState}
		o.sitesByPos[position] = site
	}
	site.Mutations = append(site.Mutations, biopb.Mutation{Node: outputNode, DerivedState: derivedState})
}

// siteRecorded reports whether a site already exists in the output at
// position, and returns it.
func (o *outputTables) siteRecorded(position biopb.Position) (*biopb.Site, bool) {
	s, ok := o.sitesByPos[position]
	return s, ok
}

// finalize flushes the pending edgeset and flattens the site map into
// position-ordered Site/Mutation tables, per spec.md section 4.5.5.
func (o *outputTables) finalize() ([]biopb.Node, []biopb.Edgeset, []biopb.Site) {
	o.flushPending()
	positions := make([]biopb.Position, 0, len(o.sitesByPos))
	for p := range o.sitesByPos {
		positions = append(positions, p)
	}
	sort.Slice(positions, func(i, j int) bool { return positions[i] < positions[j] })
	sites := make([]biopb.Site, len(positions))
	for i, p := range positions {
		sites[i] = *o.sitesByPos[p]
	}
	return o.nodes, o.edgesets, sites
}
