// Package sitechain indexes a tree sequence's sites by position for O(log
// sites) lookup (the "Mutation scanning" design note in spec.md section 9,
// which calls out the source's O(sites x records) linear scan as the thing
// a real implementation should index away), and resolves the root-to-node
// mutation walk spec.md section 9 leaves as the one clearly open question
// in the source (allele_of_this_individual was never implemented there).
package sitechain

import (
	"github.com/grailbio/treeseq/biopb"
	"github.com/grailbio/treeseq/interval"
	"github.com/grailbio/treeseq/tsadapter"
)

// Index is a position-sorted view of a tree sequence's sites, searched
// with the binary search adapted from interval.SearchPositions.
type Index struct {
	positions []biopb.Position
	sites     []biopb.Site
}

// NewIndex builds an Index over ts's sites.
func NewIndex(ts tsadapter.TreeSequence) *Index {
	idx := &Index{}
	ts.Sites(func(s biopb.Site) {
		idx.sites = append(idx.sites, s)
	})
	// Insertion sort by position: ts.Sites has no ordering guarantee.
	for i := 1; i < len(idx.sites); i++ {
		for j := i; j > 0 && idx.sites[j].Position < idx.sites[j-1].Position; j-- {
			idx.sites[j], idx.sites[j-1] = idx.sites[j-1], idx.sites[j]
		}
	}
	idx.positions = make([]biopb.Position, len(idx.sites))
	for i, s := range idx.sites {
		idx.positions[i] = s.Position
	}
	return idx
}

// Range calls f for every site whose position lies in [left, right).
func (idx *Index) Range(left, right biopb.Position, f func(site *biopb.Site)) {
	lo := interval.SearchPositions(idx.positions, left)
	hi := interval.SearchPositions(idx.positions, right)
	for i := lo; i < hi; i++ {
		f(&idx.sites[i])
	}
}

// tree is the set of parent-of-child edges valid at one position, built on
// demand by AlleleAt. It's intentionally minimal: only what's needed to
// walk from a node up to its root and back down.
type tree struct {
	parent map[biopb.NodeID]biopb.NodeID
}

func buildTreeAt(ts tsadapter.TreeSequence, position biopb.Position) tree {
	t := tree{parent: make(map[biopb.NodeID]biopb.NodeID)}
	ts.Edgesets(func(e biopb.Edgeset) {
		if e.Left <= position && position < e.Right {
			for _, c := range e.Children {
				t.parent[c] = e.Parent
			}
		}
	})
	return t
}

// pathToRoot returns the chain of nodes from node up to (and including)
// its root at this tree, ordered root-first.
func (t tree) pathToRoot(node biopb.NodeID) []biopb.NodeID {
	var rev []biopb.NodeID
	cur := node
	seen := map[biopb.NodeID]bool{}
	for {
		rev = append(rev, cur)
		if seen[cur] {
			break // defensive: a malformed input could cycle.
		}
		seen[cur] = true
		p, ok := t.parent[cur]
		if !ok {
			break
		}
		cur = p
	}
	path := make([]biopb.NodeID, len(rev))
	for i, n := range rev {
		path[len(rev)-1-i] = n
	}
	return path
}

// AlleleAt returns the allele carried by node at the given site, resolving
// spec.md section 9's open allele_of_this_individual question: walk input
// mutations from the root of the tree at this position down to node,
// applying them in root-to-node order, starting from the site's
// ancestral state.
func AlleleAt(ts tsadapter.TreeSequence, site biopb.Site, node biopb.NodeID) string {
	t := buildTreeAt(ts, site.Position)
	path := t.pathToRoot(node)
	mutByNode := make(map[biopb.NodeID]string, len(site.Mutations))
	for _, m := range site.Mutations {
		mutByNode[m.Node] = m.DerivedState
	}
	state := site.AncestralState
	for _, n := range path {
		if derived, ok := mutByNode[n]; ok {
			state = derived
		}
	}
	return state
}
