package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCubeChildCubeTiling(t *testing.T) {
	c := Cube{Min: Vec3{0, 0, 0}, Edge: 8}
	for i := 0; i < 8; i++ {
		child := c.ChildCube(i)
		assert.Equal(t, 4.0, child.Edge)
	}
	// every child's min corner is unique.
	seen := map[Vec3]bool{}
	for i := 0; i < 8; i++ {
		seen[c.ChildCube(i).Min] = true
	}
	assert.Len(t, seen, 8)
}

func TestCubeChildIndexRoundTrip(t *testing.T) {
	c := Cube{Min: Vec3{0, 0, 0}, Edge: 8}
	p := Vec3{5, 1, 6}
	idx := c.ChildIndexContaining(p)
	child := c.ChildCube(idx)
	assert.True(t, child.Contains(p))
}

func TestAabbIntersects(t *testing.T) {
	a := Aabb{Min: Vec3{0, 0, 0}, Max: Vec3{1, 1, 1}}
	b := Aabb{Min: Vec3{0.5, 0.5, 0.5}, Max: Vec3{2, 2, 2}}
	assert.True(t, a.Intersects(b))

	c := Aabb{Min: Vec3{5, 5, 5}, Max: Vec3{6, 6, 6}}
	assert.False(t, a.Intersects(c))
}

func TestObbAabbPromotionUnderRotation(t *testing.T) {
	box := Aabb{Min: Vec3{-1, -1, -1}, Max: Vec3{1, 1, 1}}
	culler := AabbCuller(box)

	rot := Isometry3{
		Rotation: [3][3]float64{
			{0, -1, 0},
			{1, 0, 0},
			{0, 0, 1},
		},
	}
	transformed := culler.Transformed(rot)
	require.Equal(t, CullerObb, transformed.Kind)
}

func TestCullerBoundingAabb(t *testing.T) {
	root := Aabb{Min: Vec3{-10, -10, -10}, Max: Vec3{10, 10, 10}}

	box := Aabb{Min: Vec3{0, 0, 0}, Max: Vec3{1, 1, 1}}
	assert.Equal(t, box, AabbCuller(box).BoundingAabb(root))

	obb := Obb{Center: Vec3{0, 0, 0}, HalfExtent: Vec3{1, 1, 1}, Rotation: IdentityIsometry3().Rotation}
	assert.Equal(t, obb.Aabb(), ObbCuller(obb).BoundingAabb(root))

	assert.Equal(t, root, AnyCuller().BoundingAabb(root))
}

func TestOrientedBeamContains(t *testing.T) {
	beam := NewOrientedBeam(Vec3{0, 0, 0}, Vec3{0, 0, 1}, 0.5)
	assert.True(t, beam.Contains(Vec3{0.1, 0.1, 100}))
	assert.False(t, beam.Contains(Vec3{10, 10, 100}))
}

func TestFrustumIdentityOrtho(t *testing.T) {
	// A simple orthographic box [-1,1]^3 expressed as a projection
	// matrix; points inside the NDC cube should test Inside.
	m := [16]float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
	f := NewFrustum(m)
	assert.True(t, f.Contains(Vec3{0, 0, 0}))
	assert.False(t, f.Contains(Vec3{2, 0, 0}))
}

func TestIsometryInverseRoundTrip(t *testing.T) {
	t1 := Isometry3{
		Rotation: [3][3]float64{
			{0, -1, 0},
			{1, 0, 0},
			{0, 0, 1},
		},
		Translation: Vec3{1, 2, 3},
	}
	p := Vec3{4, 5, 6}
	transformed := t1.Apply(p)
	back := t1.Inverse().Apply(transformed)
	assert.InDelta(t, p.X, back.X, 1e-9)
	assert.InDelta(t, p.Y, back.Y, 1e-9)
	assert.InDelta(t, p.Z, back.Z, 1e-9)
}
