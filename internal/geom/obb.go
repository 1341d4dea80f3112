package geom

import "math"

// Obb is an oriented box: center, half-extent along its own local axes,
// and the rotation from local to world axes.
type Obb struct {
	Center     Vec3
	HalfExtent Vec3
	Rotation   [3][3]float64
}

func (o Obb) axis(i int) Vec3 {
	return Vec3{o.Rotation[0][i], o.Rotation[1][i], o.Rotation[2][i]}
}

// Contains reports whether p lies within the oriented box, by
// projecting the world-space offset onto each local axis.
func (o Obb) Contains(p Vec3) bool {
	d := p.Sub(o.Center)
	for i := 0; i < 3; i++ {
		proj := d.Dot(o.axis(i))
		if math.Abs(proj) > o.HalfExtent.Component(i) {
			return false
		}
	}
	return true
}

// IntersectsAabb reports whether the oriented box overlaps an
// axis-aligned box, via the separating-axis test over the box's own 3
// axes, the Aabb's 3 axes, and their 9 cross products.
func (o Obb) IntersectsAabb(a Aabb) bool {
	bCenter := a.Center()
	bHalf := a.HalfExtent()

	aAxes := [3]Vec3{o.axis(0), o.axis(1), o.axis(2)}
	bAxes := [3]Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

	axes := make([]Vec3, 0, 15)
	axes = append(axes, aAxes[:]...)
	axes = append(axes, bAxes[:]...)
	for _, ai := range aAxes {
		for _, bi := range bAxes {
			c := ai.Cross(bi)
			if c.Length() > 1e-12 {
				axes = append(axes, c.Normalized())
			}
		}
	}

	t := bCenter.Sub(o.Center)
	for _, axis := range axes {
		aRadius := math.Abs(o.HalfExtent.X*axis.Dot(aAxes[0])) +
			math.Abs(o.HalfExtent.Y*axis.Dot(aAxes[1])) +
			math.Abs(o.HalfExtent.Z*axis.Dot(aAxes[2]))
		bRadius := math.Abs(bHalf.X*axis.Dot(bAxes[0])) +
			math.Abs(bHalf.Y*axis.Dot(bAxes[1])) +
			math.Abs(bHalf.Z*axis.Dot(bAxes[2]))
		if math.Abs(t.Dot(axis)) > aRadius+bRadius {
			return false
		}
	}
	return true
}

// ContainsAabb reports whether an Aabb lies entirely within the oriented
// box (all 8 corners inside).
func (o Obb) ContainsAabb(a Aabb) bool {
	for _, c := range a.corners() {
		if !o.Contains(c) {
			return false
		}
	}
	return true
}

// Aabb returns the tight axis-aligned bound of the oriented box, used to
// pre-filter via the R-tree before the exact Obb test runs.
func (o Obb) Aabb() Aabb {
	ex := math.Abs(o.axis(0).X)*o.HalfExtent.X + math.Abs(o.axis(1).X)*o.HalfExtent.Y + math.Abs(o.axis(2).X)*o.HalfExtent.Z
	ey := math.Abs(o.axis(0).Y)*o.HalfExtent.X + math.Abs(o.axis(1).Y)*o.HalfExtent.Y + math.Abs(o.axis(2).Y)*o.HalfExtent.Z
	ez := math.Abs(o.axis(0).Z)*o.HalfExtent.X + math.Abs(o.axis(1).Z)*o.HalfExtent.Y + math.Abs(o.axis(2).Z)*o.HalfExtent.Z
	half := Vec3{ex, ey, ez}
	return Aabb{Min: o.Center.Sub(half), Max: o.Center.Add(half)}
}

// Transformed applies a rigid transform to the oriented box.
func (o Obb) Transformed(t Isometry3) Obb {
	var rot [3][3]float64
	for i := 0; i < 3; i++ {
		col := t.ApplyVector(o.axis(i))
		rot[0][i], rot[1][i], rot[2][i] = col.X, col.Y, col.Z
	}
	return Obb{Center: t.Apply(o.Center), HalfExtent: o.HalfExtent, Rotation: rot}
}
