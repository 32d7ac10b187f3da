// Package biopb defines the core data contracts shared by every package in
// this module: the node, edgeset, site and mutation records that make up a
// tree sequence.
package biopb

import "math"

// Position is a coordinate along a recombining chromosome. Tree-sequence
// coordinates are not limited to BAM's int32 range, so unlike this module's
// teacher (which fixes interval.PosType at int32), Position is 64 bits wide.
type Position int64

// PositionMax is the largest representable Position.
const PositionMax = Position(math.MaxInt64)

// NodeID identifies a node, either in the input tree sequence or in an
// output produced by simplification. Input and output node ids live in
// disjoint numbering spaces; a value is only meaningful together with
// which table it indexes into.
type NodeID int32

// InvalidNodeID is a sentinel for "no node", mirroring biopb.InvalidRefID's
// role in the teacher's Coord type.
const InvalidNodeID = NodeID(-1)

// NodeFlags holds bit flags describing a node.
type NodeFlags uint32

// NodeIsSample marks a node as a sample: its lineage must survive
// simplification, and it becomes a leaf of the output tree sequence.
const NodeIsSample NodeFlags = 1 << 0

// Node is a single row of the node table: a birth event with a time, a flag
// set, and (optionally) a population label.
type Node struct {
	Flags      NodeFlags
	Time       float64
	Population int32
}

// IsSample reports whether the NodeIsSample bit is set.
func (n Node) IsSample() bool {
	return n.Flags&NodeIsSample != 0
}

// Edgeset records that Parent is the immediate ancestor of every node in
// Children over the half-open interval [Left, Right).
type Edgeset struct {
	Left, Right Position
	Parent      NodeID
	Children    []NodeID
}

// Mutation records a single derived-state change on the lineage above Node.
type Mutation struct {
	Node         NodeID
	DerivedState string
}

// Site is one position of the genome at which at least one mutation was
// observed. Mutations are unordered; final output ordering is determined by
// Position once all sites have been collected.
type Site struct {
	Position       Position
	AncestralState string
	Mutations      []Mutation
}
