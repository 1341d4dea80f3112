// Package octree holds the octree's addressing scheme (NodeId,
// ChildIndex), its on-disk metadata (OctreeMeta) and its in-memory
// spatial index (NodeIndex, an R-tree over populated node cubes)
// grounded directly on the S-57 parser's ChartIndex
// (pkg/s57/index.go): populated nodes replace charts, bounding cubes
// replace geographic bounds, and SearchIntersect pre-filters candidates
// before the query engine's exact per-node classification runs.
package octree

import (
	"fmt"
	"strings"

	"github.com/googlecartographer/point-cloud-viewer/internal/geom"
	"github.com/googlecartographer/point-cloud-viewer/internal/werrors"
)

// ChildIndex is one of the 8 octants of a cube, bits 0=+X, 1=+Y, 2=+Z
// relative to the parent's center (§3).
type ChildIndex int

// NodeId is a pair (level, index_within_level) uniquely naming an
// octree cell (§3). IndexWithinLevel packs the child-index digits from
// root to this node, 3 bits per level, matching the canonical "r" +
// octal-digit string form.
type NodeId struct {
	Level           int
	IndexWithinLevel uint64
}

// Root is the NodeId of the whole octree (level 0, index 0).
func Root() NodeId {
	return NodeId{Level: 0, IndexWithinLevel: 0}
}

// Child returns the NodeId of this node's child in octant idx.
func (n NodeId) Child(idx ChildIndex) NodeId {
	return NodeId{
		Level:            n.Level + 1,
		IndexWithinLevel: n.IndexWithinLevel<<3 | uint64(idx),
	}
}

// Parent returns this node's parent; the root is its own parent.
func (n NodeId) Parent() NodeId {
	if n.Level == 0 {
		return n
	}
	return NodeId{Level: n.Level - 1, IndexWithinLevel: n.IndexWithinLevel >> 3}
}

// ChildIndexAtThisLevel returns the octant digit (0-7) this node occupies
// within its immediate parent.
func (n NodeId) ChildIndexAtThisLevel() ChildIndex {
	return ChildIndex(n.IndexWithinLevel & 7)
}

// BoundingCube computes this node's bounding cube within rootCube, by
// walking the digit string from root and halving the cube at each
// level (§3).
func (n NodeId) BoundingCube(rootCube geom.Cube) geom.Cube {
	digits := n.digits()
	cube := rootCube
	for _, d := range digits {
		cube = cube.ChildCube(int(d))
	}
	return cube
}

// digits returns the child-index digits from root (index 0) to this
// node (index Level-1).
func (n NodeId) digits() []ChildIndex {
	digits := make([]ChildIndex, n.Level)
	idx := n.IndexWithinLevel
	for i := n.Level - 1; i >= 0; i-- {
		digits[i] = ChildIndex(idx & 7)
		idx >>= 3
	}
	return digits
}

// String renders the canonical "r" + octal-digit filesystem-safe key
// (§4.5's on-disk layout), e.g. "r0142".
func (n NodeId) String() string {
	digits := n.digits()
	var b strings.Builder
	b.WriteByte('r')
	for _, d := range digits {
		b.WriteByte(byte('0' + d))
	}
	return b.String()
}

// ParseNodeId inverts String.
func ParseNodeId(s string) (NodeId, error) {
	if len(s) == 0 || s[0] != 'r' {
		return NodeId{}, werrors.New(werrors.KindMalformedData, fmt.Sprintf("node id %q missing 'r' prefix", s))
	}
	digits := s[1:]
	id := Root()
	for _, c := range digits {
		if c < '0' || c > '7' {
			return NodeId{}, werrors.New(werrors.KindMalformedData, fmt.Sprintf("node id %q has non-octal digit %q", s, c))
		}
		id = id.Child(ChildIndex(c - '0'))
	}
	return id, nil
}
