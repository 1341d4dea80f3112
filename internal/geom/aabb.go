package geom

import "math"

// Aabb is a general axis-aligned box, used both as a node bounding
// volume input and as one of the four region-query shapes.
type Aabb struct {
	Min, Max Vec3
}

// AabbFromCenterHalfExtent builds an Aabb from its center and half-extent
// per axis.
func AabbFromCenterHalfExtent(center, halfExtent Vec3) Aabb {
	return Aabb{Min: center.Sub(halfExtent), Max: center.Add(halfExtent)}
}

func (a Aabb) Center() Vec3 {
	return a.Min.Add(a.Max).Scale(0.5)
}

func (a Aabb) HalfExtent() Vec3 {
	return a.Max.Sub(a.Min).Scale(0.5)
}

// Contains reports whether p lies within the closed box.
func (a Aabb) Contains(p Vec3) bool {
	return p.X >= a.Min.X && p.X <= a.Max.X &&
		p.Y >= a.Min.Y && p.Y <= a.Max.Y &&
		p.Z >= a.Min.Z && p.Z <= a.Max.Z
}

// Intersects reports whether two boxes overlap (touching faces count as
// overlap).
func (a Aabb) Intersects(o Aabb) bool {
	return a.Min.X <= o.Max.X && a.Max.X >= o.Min.X &&
		a.Min.Y <= o.Max.Y && a.Max.Y >= o.Min.Y &&
		a.Min.Z <= o.Max.Z && a.Max.Z >= o.Min.Z
}

// ContainsAabb reports whether o lies entirely within a.
func (a Aabb) ContainsAabb(o Aabb) bool {
	return o.Min.X >= a.Min.X && o.Max.X <= a.Max.X &&
		o.Min.Y >= a.Min.Y && o.Max.Y <= a.Max.Y &&
		o.Min.Z >= a.Min.Z && o.Max.Z <= a.Max.Z
}

// Transformed applies a rigid transform to the box's 8 corners and
// returns their new axis-aligned bound -- the "Aabb promotes to Obb"
// invariant instead lives in Culler.Transformed, which keeps the
// tighter Obb representation when a rotation is involved.
func (a Aabb) Transformed(t Isometry3) Aabb {
	corners := a.corners()
	out := Aabb{Min: t.Apply(corners[0]), Max: t.Apply(corners[0])}
	for _, c := range corners[1:] {
		p := t.Apply(c)
		out.Min = Vec3{math.Min(out.Min.X, p.X), math.Min(out.Min.Y, p.Y), math.Min(out.Min.Z, p.Z)}
		out.Max = Vec3{math.Max(out.Max.X, p.X), math.Max(out.Max.Y, p.Y), math.Max(out.Max.Z, p.Z)}
	}
	return out
}

func (a Aabb) corners() [8]Vec3 {
	return [8]Vec3{
		{a.Min.X, a.Min.Y, a.Min.Z},
		{a.Max.X, a.Min.Y, a.Min.Z},
		{a.Min.X, a.Max.Y, a.Min.Z},
		{a.Max.X, a.Max.Y, a.Min.Z},
		{a.Min.X, a.Min.Y, a.Max.Z},
		{a.Max.X, a.Min.Y, a.Max.Z},
		{a.Min.X, a.Max.Y, a.Max.Z},
		{a.Max.X, a.Max.Y, a.Max.Z},
	}
}

// ToObb promotes the box to an oriented box with identity rotation, used
// when a caller needs an Obb-shaped value uniformly.
func (a Aabb) ToObb() Obb {
	return Obb{Center: a.Center(), HalfExtent: a.HalfExtent(), Rotation: IdentityIsometry3().Rotation}
}
