// Package interval implements a binary search over a sorted list of
// genomic positions, used to locate the sites falling within a half-open
// interval in O(log n) instead of a linear scan.
//
// It is adapted from endpoint_index.go's SearchPosTypes (originally
// written for BED interval-union membership tests over int32 BAM
// coordinates); tree-sequence coordinates are not bounded by BAM's int32
// range, so Position here is the wider type biopb.Position uses, and the
// BED-specific BEDUnion/EndpointIndex/UnionScanner machinery that
// depended on int32 PosType has been dropped along with it -- this
// package now does exactly the one thing sitechain needs: find where a
// position would sit in a sorted slice.
package interval
