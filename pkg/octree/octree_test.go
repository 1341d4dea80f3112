package octree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/googlecartographer/point-cloud-viewer/internal/geom"
)

func TestNodeIdChildParentRoundTrip(t *testing.T) {
	root := Root()
	for i := ChildIndex(0); i < 8; i++ {
		child := root.Child(i)
		assert.Equal(t, root, child.Parent())
		assert.Equal(t, i, child.ChildIndexAtThisLevel())
	}
}

func TestNodeIdStringRoundTrip(t *testing.T) {
	id := Root().Child(3).Child(0).Child(7)
	s := id.String()
	assert.Equal(t, "r307", s)

	parsed, err := ParseNodeId(s)
	require.NoError(t, err)
	assert.Equal(t, id, parsed)
}

func TestNodeIndexIntersectingCubes(t *testing.T) {
	root := geom.Cube{Min: geom.Vec3{X: 0, Y: 0, Z: 0}, Edge: 8}
	meta := &Meta{RootCube: root, Resolution: 0.01, Nodes: map[NodeId]uint64{
		Root():           100,
		Root().Child(0):  50,
		Root().Child(7):  50,
	}}
	idx := NewNodeIndex(meta)

	hits := idx.IntersectingCubes(root.Aabb())
	assert.Len(t, hits, 3)
	assert.Equal(t, Root(), hits[0])
}
