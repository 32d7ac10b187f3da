package tsadapter

import "github.com/grailbio/treeseq/biopb"

// MergeEvent describes one coalescence: at Time, Parent becomes the
// immediate ancestor of Children over [Left, Right).
type MergeEvent struct {
	Left, Right Position
	Parent      NodeID
	Children    []NodeID
	Time        float64
	Population  int32
}

// BuildCoalescentFixture builds a Tables from an explicit list of merge
// events, the way a test would otherwise hand-write a dozen Node/Edgeset
// literals. numSamples leaf nodes are created at time 0 (flagged
// NodeIsSample); MergeEvents may then reference any node id, sample or
// newly introduced, as a Parent or Child. This has no random-number
// seeding or recombination model attached to it (both are out of scope,
// see spec.md section 1) -- it is a deterministic assembly helper for
// tests, not a simulator.
func BuildCoalescentFixture(numSamples int, sequenceLength Position, events []MergeEvent) *Tables {
	t := NewTables(sequenceLength)
	for i := 0; i < numSamples; i++ {
		t.AddNode(biopb.Node{Flags: biopb.NodeIsSample, Time: 0, Population: 0})
	}
	maxID := NodeID(numSamples - 1)
	for _, e := range events {
		if e.Parent > maxID {
			for id := maxID + 1; id <= e.Parent; id++ {
				t.AddNode(biopb.Node{Time: e.Time, Population: e.Population})
			}
			maxID = e.Parent
		}
		t.AddEdgeset(biopb.Edgeset{
			Left:     e.Left,
			Right:    e.Right,
			Parent:   e.Parent,
			Children: append([]NodeID(nil), e.Children...),
		})
	}
	return t
}

// AddMutation places a mutation for node at position, creating the site
// (with the given ancestral state) if it doesn't already exist.
func (t *Tables) AddMutation(position Position, ancestralState string, node NodeID, derivedState string) {
	for i := range t.SiteList {
		if t.SiteList[i].Position == position {
			t.SiteList[i].Mutations = append(t.SiteList[i].Mutations, biopb.Mutation{
				Node:         node,
				DerivedState: derivedState,
			})
			return
		}
	}
	t.AddSite(biopb.Site{
		Position:       position,
		AncestralState: ancestralState,
		Mutations:      []biopb.Mutation{{Node: node, DerivedState: derivedState}},
	})
}
