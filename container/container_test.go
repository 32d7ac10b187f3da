package container

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/grailbio/base/vcontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grailbio/treeseq/biopb"
	"github.com/grailbio/treeseq/tsadapter"
)

func TestWriteReadRoundTrip(t *testing.T) {
	dir, err := ioutil.TempDir("", "treeseq-container-test")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	ts := tsadapter.BuildCoalescentFixture(4, 10, []tsadapter.MergeEvent{
		{Left: 0, Right: 10, Parent: 4, Children: []biopb.NodeID{0, 1}, Time: 1},
		{Left: 0, Right: 10, Parent: 5, Children: []biopb.NodeID{2, 3}, Time: 1},
		{Left: 0, Right: 10, Parent: 6, Children: []biopb.NodeID{4, 5}, Time: 2},
	})
	ts.AddMutation(3, "A", 4, "T")

	ctx := vcontext.Background()
	path := filepath.Join(dir, "out.tsz")
	require.NoError(t, Write(ctx, path, ts))

	got, err := Read(ctx, path)
	require.NoError(t, err)

	assert.Equal(t, ts.Length, got.Length)
	assert.Equal(t, ts.NodeList, got.NodeList)
	assert.Equal(t, ts.EdgesetList, got.EdgesetList)
	assert.Equal(t, ts.SiteList, got.SiteList)
}

func TestReadRejectsMissingFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "treeseq-container-test")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	ctx := vcontext.Background()
	path := filepath.Join(dir, "bad.tsz")
	ts := tsadapter.NewTables(10)
	require.NoError(t, Write(ctx, path, ts))

	_, err = Read(ctx, filepath.Join(dir, "does-not-exist.tsz"))
	assert.Error(t, err)
}
