package geom

// Cube is an axis-aligned cube: the bounding volume of a single octree
// node. Every node at a given level has the same edge length; only its
// min corner differs, per the octree's level-then-index addressing.
type Cube struct {
	Min  Vec3
	Edge float64
}

// Center returns the cube's midpoint.
func (c Cube) Center() Vec3 {
	half := c.Edge / 2
	return Vec3{c.Min.X + half, c.Min.Y + half, c.Min.Z + half}
}

// Max returns the cube's opposite corner from Min.
func (c Cube) Max() Vec3 {
	return Vec3{c.Min.X + c.Edge, c.Min.Y + c.Edge, c.Min.Z + c.Edge}
}

// ChildCube returns the bounding cube of the given child octant (bits
// 0=+X, 1=+Y, 2=+Z set relative to this cube's center), per §2's
// level+index-within-level addressing.
func (c Cube) ChildCube(childIndex int) Cube {
	half := c.Edge / 2
	min := c.Min
	if childIndex&1 != 0 {
		min.X += half
	}
	if childIndex&2 != 0 {
		min.Y += half
	}
	if childIndex&4 != 0 {
		min.Z += half
	}
	return Cube{Min: min, Edge: half}
}

// ChildIndexContaining returns which of the 8 octants of c contains p;
// a point exactly on a dividing plane resolves to the +axis octant,
// consistent with ChildCube's half-open convention.
func (c Cube) ChildIndexContaining(p Vec3) int {
	center := c.Center()
	idx := 0
	if p.X >= center.X {
		idx |= 1
	}
	if p.Y >= center.Y {
		idx |= 2
	}
	if p.Z >= center.Z {
		idx |= 4
	}
	return idx
}

// Contains reports whether p lies within this cube (half-open on the max
// faces, matching ChildCube's tiling so every point belongs to exactly
// one leaf cube).
func (c Cube) Contains(p Vec3) bool {
	max := c.Max()
	return p.X >= c.Min.X && p.X < max.X &&
		p.Y >= c.Min.Y && p.Y < max.Y &&
		p.Z >= c.Min.Z && p.Z < max.Z
}

// Aabb converts the cube to a general axis-aligned box.
func (c Cube) Aabb() Aabb {
	return Aabb{Min: c.Min, Max: c.Max()}
}
