package interval

import (
	"sort"

	"github.com/grailbio/treeseq/biopb"
)

// Position is the coordinate type searched over.
type Position = biopb.Position

// SearchPositions returns the index of the first element of a that is >= x,
// or len(a) if none is. It's exactly sort.SearchInts, specialized for
// Position, the way the teacher's SearchPosTypes specialized it for
// int32-valued PosType.
func SearchPositions(a []Position, x Position) int {
	return sort.Search(len(a), func(i int) bool { return a[i] >= x })
}
