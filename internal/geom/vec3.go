// Package geom holds the plain value-type geometry this module shares
// across node encoding, indexing and querying: vectors, cubes, the
// closed set of region-query shapes, and rigid transforms. Types carry
// behaviour as ordinary methods, the way the teacher's Bounds does in
// pkg/s57/region.go, rather than through interfaces.
package geom

import "math"

// Vec3 is a 3D point or direction in double precision.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

func (v Vec3) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

func (v Vec3) Normalized() Vec3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// Component returns the i'th axis value (0=X, 1=Y, 2=Z), used by callers
// that iterate over axes generically (e.g. Obb.Contains's per-axis
// half-extent test).
func (v Vec3) Component(i int) float64 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// Isometry3 is a rigid transform: rotation (as an orthonormal 3x3 matrix
// stored row-major) followed by translation. It models the original's
// global_from_local / local_from_global frame changes.
type Isometry3 struct {
	Rotation    [3][3]float64
	Translation Vec3
}

// IdentityIsometry3 is the no-op transform.
func IdentityIsometry3() Isometry3 {
	return Isometry3{
		Rotation: [3][3]float64{
			{1, 0, 0},
			{0, 1, 0},
			{0, 0, 1},
		},
	}
}

// Apply transforms a point: rotate then translate.
func (t Isometry3) Apply(v Vec3) Vec3 {
	r := t.Rotation
	return Vec3{
		r[0][0]*v.X + r[0][1]*v.Y + r[0][2]*v.Z,
		r[1][0]*v.X + r[1][1]*v.Y + r[1][2]*v.Z,
		r[2][0]*v.X + r[2][1]*v.Y + r[2][2]*v.Z,
	}.Add(t.Translation)
}

// ApplyVector rotates a direction without translating it.
func (t Isometry3) ApplyVector(v Vec3) Vec3 {
	r := t.Rotation
	return Vec3{
		r[0][0]*v.X + r[0][1]*v.Y + r[0][2]*v.Z,
		r[1][0]*v.X + r[1][1]*v.Y + r[1][2]*v.Z,
		r[2][0]*v.X + r[2][1]*v.Y + r[2][2]*v.Z,
	}
}

// Inverse returns the inverse rigid transform.
func (t Isometry3) Inverse() Isometry3 {
	r := t.Rotation
	rt := [3][3]float64{
		{r[0][0], r[1][0], r[2][0]},
		{r[0][1], r[1][1], r[2][1]},
		{r[0][2], r[1][2], r[2][2]},
	}
	inv := Isometry3{Rotation: rt}
	neg := t.Translation.Scale(-1)
	inv.Translation = inv.ApplyVector(neg)
	return inv
}

// IsIdentity reports whether this transform has no rotation and no
// translation, used to skip transform work on the common path.
func (t Isometry3) IsIdentity() bool {
	id := IdentityIsometry3()
	return t.Rotation == id.Rotation && t.Translation == (Vec3{})
}
