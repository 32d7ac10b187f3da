package tsadapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grailbio/treeseq/biopb"
)

func TestTablesAddAndQuery(t *testing.T) {
	tb := NewTables(100)
	id0 := tb.AddNode(biopb.Node{Flags: biopb.NodeIsSample, Time: 0})
	id1 := tb.AddNode(biopb.Node{Flags: biopb.NodeIsSample, Time: 0})
	id2 := tb.AddNode(biopb.Node{Time: 1})
	tb.AddEdgeset(biopb.Edgeset{Left: 0, Right: 100, Parent: id2, Children: []biopb.NodeID{id0, id1}})

	assert.Equal(t, 3, tb.NumNodes())
	assert.Equal(t, Position(100), tb.SequenceLength())
	assert.ElementsMatch(t, []NodeID{id0, id1}, tb.Samples())
	assert.True(t, tb.Node(id0).IsSample())
	assert.False(t, tb.Node(id2).IsSample())

	var edgesets []biopb.Edgeset
	tb.Edgesets(func(e biopb.Edgeset) { edgesets = append(edgesets, e) })
	require.Len(t, edgesets, 1)
	assert.Equal(t, []biopb.NodeID{id0, id1}, edgesets[0].Children)
}

func TestTablesAddMutationCreatesSiteOnce(t *testing.T) {
	tb := NewTables(100)
	tb.AddMutation(10, "A", 0, "T")
	tb.AddMutation(10, "A", 1, "G")
	tb.AddMutation(20, "C", 2, "A")

	require.Len(t, tb.SiteList, 2)
	require.Len(t, tb.SiteList[0].Mutations, 2)
	assert.Equal(t, "A", tb.SiteList[0].AncestralState)
	assert.Equal(t, "T", tb.SiteList[0].Mutations[0].DerivedState)
	assert.Equal(t, "G", tb.SiteList[0].Mutations[1].DerivedState)
}

func TestSortedSites(t *testing.T) {
	tb := NewTables(100)
	tb.AddSite(biopb.Site{Position: 80})
	tb.AddSite(biopb.Site{Position: 5})
	tb.AddSite(biopb.Site{Position: 40})

	sorted := tb.SortedSites()
	require.Len(t, sorted, 3)
	assert.Equal(t, Position(5), sorted[0].Position)
	assert.Equal(t, Position(40), sorted[1].Position)
	assert.Equal(t, Position(80), sorted[2].Position)
}

func TestBuildCoalescentFixture(t *testing.T) {
	ts := BuildCoalescentFixture(2, 10, []MergeEvent{
		{Left: 0, Right: 10, Parent: 2, Children: []biopb.NodeID{0, 1}, Time: 1},
	})
	assert.Equal(t, 3, ts.NumNodes())
	assert.Equal(t, Position(10), ts.SequenceLength())
	assert.True(t, ts.Node(0).IsSample())
	assert.False(t, ts.Node(2).IsSample())
	assert.Equal(t, float64(1), ts.Node(2).Time)
}
