package ancestry

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/grailbio/treeseq/biopb"
	"github.com/grailbio/treeseq/segment"
)

func TestMapSetGetRemove(t *testing.T) {
	m := New()
	assert.Equal(t, 0, m.Len())

	_, ok := m.Get(biopb.NodeID(1))
	assert.False(t, ok)
	assert.False(t, m.Contains(biopb.NodeID(1)))

	m.Set(biopb.NodeID(1), segment.Ref(42))
	assert.True(t, m.Contains(biopb.NodeID(1)))
	assert.Equal(t, 1, m.Len())

	ref, ok := m.Get(biopb.NodeID(1))
	assert.True(t, ok)
	assert.Equal(t, segment.Ref(42), ref)

	m.Remove(biopb.NodeID(1))
	assert.False(t, m.Contains(biopb.NodeID(1)))
	assert.Equal(t, 0, m.Len())
}
