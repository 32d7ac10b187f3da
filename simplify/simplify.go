// Package simplify implements the tree-sequence simplifier: the
// fragment-overlap sweep that, given an input tree sequence and a subset
// of sampled leaves, produces a new tree sequence containing exactly the
// genealogical history ancestral to that subset.
//
// The algorithm is translated directly from
// original_source/simplify_work/simplify_algorithms.py's Simplifier class
// (remove_ancestry, merge_labeled_ancestors, record_edgeset,
// record_mutations, update_ancestral_state), with Python's exception-based
// error handling replaced by explicit error returns and its chain-of-
// Segment-objects replaced by segment.Pool / segment.Ref arena handles.
package simplify

import (
	"sort"

	"github.com/grailbio/treeseq/ancestry"
	"github.com/grailbio/treeseq/biopb"
	"github.com/grailbio/treeseq/overlap"
	"github.com/grailbio/treeseq/segment"
	"github.com/grailbio/treeseq/sitechain"
	"github.com/grailbio/treeseq/tsadapter"
	"github.com/grailbio/treeseq/tserrors"

	"github.com/grailbio/base/log"
)

// Simplifier holds all state for one Simplify call. It is not reusable
// across calls and not safe for concurrent use (spec.md section 5: the
// core sweep is single-threaded).
type Simplifier struct {
	ts     tsadapter.TreeSequence
	sample []biopb.NodeID
	n      int
	m      biopb.Position

	pool    *segment.Pool
	A       *ancestry.Map
	S       *overlap.Map
	out     *outputTables
	siteIdx *sitechain.Index
}

// Simplify is the module's one entry point: simplify(input_ts, sample[])
// -> output_ts from spec.md section 6.
func Simplify(ts tsadapter.TreeSequence, sample []biopb.NodeID) (*tsadapter.Tables, error) {
	if err := validateSample(ts, sample); err != nil {
		return nil, err
	}
	edgesetsByParent, err := groupEdgesetsByParent(ts)
	if err != nil {
		return nil, err
	}

	sp := newSimplifier(ts, sample)

	parents := timeOrderedNodes(ts)
	for _, p := range parents {
		if sp.A.Len() == 0 {
			break
		}
		edgesets := edgesetsByParent[p.id]
		if len(edgesets) == 0 {
			continue
		}
		h := sp.removeAncestry(edgesets)
		sp.mergeLabeledAncestors(h, p.id)
	}

	nodes, edgesets, sites := sp.out.finalize()
	if outstanding := sp.pool.Outstanding(); outstanding != 0 {
		return nil, tserrors.Internalf("simplify: %d segments still outstanding after sweep", outstanding)
	}

	result := tsadapter.NewTables(sp.m)
	result.NodeList = nodes
	result.EdgesetList = edgesets
	result.SiteList = sites
	log.Debug.Printf("simplify: %d samples, %d output nodes, %d output edgesets, %d output sites",
		sp.n, len(nodes), len(edgesets), len(sites))
	return result, nil
}

func validateSample(ts tsadapter.TreeSequence, sample []biopb.NodeID) error {
	seen := make(map[biopb.NodeID]bool, len(sample))
	for _, id := range sample {
		if seen[id] {
			return tserrors.InvalidArgumentf("simplify: duplicate sample id %d", id)
		}
		seen[id] = true
		if id < 0 || int(id) >= ts.NumNodes() {
			return tserrors.InvalidArgumentf("simplify: sample id %d out of range [0, %d)", id, ts.NumNodes())
		}
	}
	return nil
}

func groupEdgesetsByParent(ts tsadapter.TreeSequence) (map[biopb.NodeID][]biopb.Edgeset, error) {
	byParent := make(map[biopb.NodeID][]biopb.Edgeset)
	var firstErr error
	ts.Edgesets(func(e biopb.Edgeset) {
		if firstErr != nil {
			return
		}
		if e.Left >= e.Right {
			firstErr = tserrors.InvalidInputf("simplify: edgeset [%d, %d) has left >= right", e.Left, e.Right)
			return
		}
		if len(e.Children) == 0 {
			firstErr = tserrors.InvalidInputf("simplify: edgeset at [%d, %d) parent %d has no children", e.Left, e.Right, e.Parent)
			return
		}
		seen := make(map[biopb.NodeID]bool, len(e.Children))
		for _, c := range e.Children {
			if seen[c] {
				firstErr = tserrors.InvalidInputf("simplify: edgeset at [%d, %d) parent %d has duplicate child %d", e.Left, e.Right, e.Parent, c)
				return
			}
			seen[c] = true
		}
		byParent[e.Parent] = append(byParent[e.Parent], e)
	})
	if firstErr != nil {
		return nil, firstErr
	}
	return byParent, nil
}

type timedNode struct {
	time float64
	id   biopb.NodeID
}

// timeOrderedNodes builds the list P of (time, input_id) from spec.md
// section 4.5.2, sorted ascending by time with ties broken by ascending
// input node id.
func timeOrderedNodes(ts tsadapter.TreeSequence) []timedNode {
	var parents []timedNode
	ts.Nodes(func(id biopb.NodeID, n biopb.Node) {
		parents = append(parents, timedNode{time: n.Time, id: id})
	})
	sort.Slice(parents, func(i, j int) bool {
		if parents[i].time != parents[j].time {
			return parents[i].time < parents[j].time
		}
		return parents[i].id < parents[j].id
	})
	return parents
}

// newSimplifier performs spec.md section 4.5.1's Initialization.
func newSimplifier(ts tsadapter.TreeSequence, sample []biopb.NodeID) *Simplifier {
	n := len(sample)
	m := ts.SequenceLength()
	sp := &Simplifier{
		ts:      ts,
		sample:  sample,
		n:       n,
		m:       m,
		pool:    segment.NewPool(4 * (n + 1)),
		A:       ancestry.New(),
		S:       overlap.New(),
		out:     newOutputTables(),
		siteIdx: sitechain.NewIndex(ts),
	}
	for j, inputID := range sample {
		node := ts.Node(inputID)
		sp.out.recordSampleNode(inputID, node)
		outID := biopb.NodeID(j)
		ref := sp.pool.Alloc(0, m, outID, segment.RefNone, segment.RefNone)
		sp.A.Set(inputID, ref)
		sp.recordMutations(inputID, 0, m, outID)
	}
	sp.S.Set(0, int64(n))
	sp.S.Set(m, -1)
	return sp
}

func (sp *Simplifier) recordMutations(inputID biopb.NodeID, left, right biopb.Position, outputNode biopb.NodeID) {
	sp.siteIdx.Range(left, right, func(site *biopb.Site) {
		for _, mut := range site.Mutations {
			if mut.Node == inputID {
				sp.out.recordMutation(site.Position, site.AncestralState, outputNode, mut.DerivedState)
			}
		}
	})
}

// updateAncestralState implements spec.md section 4.7: once input_id
// becomes the universal MRCA over [left, right), any already-recorded
// output site in that range has its ancestral state refreshed to the
// allele input_id actually carries there.
func (sp *Simplifier) updateAncestralState(inputID biopb.NodeID, left, right biopb.Position) {
	sp.siteIdx.Range(left, right, func(site *biopb.Site) {
		if outSite, ok := sp.out.siteRecorded(site.Position); ok {
			outSite.AncestralState = sitechain.AlleleAt(sp.ts, *site, inputID)
		}
	})
}

// removeAncestry implements spec.md section 4.5.3: detach the ancestry of
// every child of every edgeset in edgesets, returning a heap of chain
// heads ready to be merged under the common parent.
func (sp *Simplifier) removeAncestry(edgesets []biopb.Edgeset) *chainHeap {
	h := newChainHeap(sp.pool)
	for _, es := range edgesets {
		for _, child := range es.Children {
			headRef, ok := sp.A.Get(child)
			if !ok {
				continue
			}
			x := headRef
			y := segment.RefNone

			// Phase 1: segments strictly left of es.Left.
			for x != segment.RefNone && sp.pool.Get(x).Left < es.Left {
				y = x
				xs := sp.pool.Get(x)
				if xs.Right > es.Left {
					newRef := sp.pool.Alloc(es.Left, xs.Right, xs.Node, segment.RefNone, xs.Next)
					xs.Right = es.Left
					xs.Next = segment.RefNone
					x = newRef
				} else {
					x = xs.Next
				}
			}

			// Phase 2: segments inside [es.Left, es.Right).
			w := segment.RefNone
			for x != segment.RefNone && sp.pool.Get(x).Left < es.Right {
				xs := sp.pool.Get(x)
				outRight := xs.Right
				if es.Right < outRight {
					outRight = es.Right
				}
				nextW := sp.pool.Alloc(xs.Left, outRight, xs.Node, w, segment.RefNone)
				if w == segment.RefNone {
					h.push(nextW)
				} else {
					sp.pool.Get(w).Next = nextW
				}
				w = nextW
				if xs.Right <= outRight {
					nextX := xs.Next
					sp.pool.Free(x)
					x = nextX
				} else {
					xs.Left = es.Right
					break
				}
			}

			// Phase 3: stitch the surviving chain back together.
			if w != segment.RefNone {
				if y != segment.RefNone {
					sp.pool.Get(y).Next = x
				}
				if x != segment.RefNone {
					sp.pool.Get(x).Prev = y
				}
				if y == segment.RefNone {
					if x == segment.RefNone {
						sp.A.Remove(child)
					} else {
						sp.A.Set(child, x)
					}
				}
			}
		}
	}
	return h
}

// mergeLabeledAncestors implements spec.md section 4.5.4: all ancestry
// segments in h coalesce under a new (or reused sample) parent node.
func (sp *Simplifier) mergeLabeledAncestors(h *chainHeap, inputID biopb.NodeID) {
	coalescence := false
	var u biopb.NodeID = biopb.InvalidNodeID
	z := segment.RefNone

	for !h.empty() {
		alpha := segment.RefNone
		l := h.peekLeft()
		var x []segment.Ref
		rMax := sp.m + 1
		for !h.empty() && h.peekLeft() == l {
			ref := h.pop()
			x = append(x, ref)
			if right := sp.pool.Get(ref).Right; right < rMax {
				rMax = right
			}
		}
		if !h.empty() && h.peekLeft() < rMax {
			rMax = h.peekLeft()
		}

		if len(x) == 1 {
			ref := x[0]
			seg := sp.pool.Get(ref)
			if !h.empty() && h.peekLeft() < seg.Right {
				split := h.peekLeft()
				alpha = sp.pool.Alloc(seg.Left, split, seg.Node, segment.RefNone, segment.RefNone)
				seg.Left = split
				h.push(ref)
			} else {
				if seg.Next != segment.RefNone {
					h.push(seg.Next)
				}
				alpha = ref
				sp.pool.Get(alpha).Next = segment.RefNone
			}
		} else {
			if !coalescence {
				coalescence = true
				u = sp.out.checkOrRecordNode(inputID, sp.ts.Node(inputID))
			}
			if !sp.S.Contains(l) {
				sp.S.Set(l, sp.S.Get(sp.S.FloorKey(l)))
			}
			if !sp.S.Contains(rMax) {
				sp.S.Set(rMax, sp.S.Get(sp.S.FloorKey(rMax)))
			}

			var r biopb.Position
			if sp.S.Get(l) == int64(len(x)) {
				sp.S.Set(l, 0)
				r = sp.S.SuccKey(l)
				sp.updateAncestralState(inputID, l, r)
				sp.recordMutations(inputID, l, r, u)
			} else {
				r = l
				for r < rMax && sp.S.Get(r) != int64(len(x)) {
					sp.S.Set(r, sp.S.Get(r)-int64(len(x)-1))
					r = sp.S.SuccKey(r)
				}
				alpha = sp.pool.Alloc(l, r, u, segment.RefNone, segment.RefNone)
			}

			var children []biopb.NodeID
			for _, ref := range x {
				seg := sp.pool.Get(ref)
				if seg.Node != u {
					children = append(children, seg.Node)
				}
				if seg.Right == r {
					next := seg.Next
					sp.pool.Free(ref)
					if next != segment.RefNone {
						h.push(next)
					}
				} else if seg.Right > r {
					seg.Left = r
					h.push(ref)
				}
			}
			sp.out.recordEdgeset(l, r, u, children)
		}

		if alpha != segment.RefNone {
			if z == segment.RefNone {
				sp.A.Set(inputID, alpha)
			} else {
				sp.pool.Get(z).Next = alpha
			}
			sp.pool.Get(alpha).Prev = z
			z = alpha
			seg := sp.pool.Get(alpha)
			sp.recordMutations(inputID, seg.Left, seg.Right, seg.Node)
		}
	}
}
