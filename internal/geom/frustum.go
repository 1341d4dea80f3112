package geom

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// plane is ax+by+cz+d=0 with (a,b,c) not necessarily normalized until
// normalize() is called.
type plane struct {
	a, b, c, d float64
}

func (p plane) normalize() plane {
	l := math.Sqrt(p.a*p.a + p.b*p.b + p.c*p.c)
	if l == 0 {
		return p
	}
	return plane{p.a / l, p.b / l, p.c / l, p.d / l}
}

// signedDistance is positive on the side the plane's normal points to.
func (p plane) signedDistance(v Vec3) float64 {
	return p.a*v.X + p.b*v.Y + p.c*v.Z + p.d
}

// Frustum is a view-projection matrix's clip volume, carried as a 4x4
// row-major matrix the way a renderer hands one over, with its 6
// bounding planes (Gribb-Hartmann extraction) cached for fast tests.
type Frustum struct {
	matrix *mat.Dense
	planes [6]plane // left, right, bottom, top, near, far
}

// NewFrustum builds a Frustum from a 16-element row-major
// view-projection matrix.
func NewFrustum(m [16]float64) Frustum {
	d := mat.NewDense(4, 4, m[:])
	f := Frustum{matrix: d}
	row := func(i int) (float64, float64, float64, float64) {
		return d.At(i, 0), d.At(i, 1), d.At(i, 2), d.At(i, 3)
	}
	a0, b0, c0, d0 := row(0)
	a1, b1, c1, d1 := row(1)
	a2, b2, c2, d2 := row(2)
	a3, b3, c3, d3 := row(3)

	f.planes[0] = plane{a3 + a0, b3 + b0, c3 + c0, d3 + d0}.normalize() // left
	f.planes[1] = plane{a3 - a0, b3 - b0, c3 - c0, d3 - d0}.normalize() // right
	f.planes[2] = plane{a3 + a1, b3 + b1, c3 + c1, d3 + d1}.normalize() // bottom
	f.planes[3] = plane{a3 - a1, b3 - b1, c3 - c1, d3 - d1}.normalize() // top
	f.planes[4] = plane{a3 + a2, b3 + b2, c3 + c2, d3 + d2}.normalize() // near
	f.planes[5] = plane{a3 - a2, b3 - b2, c3 - c2, d3 - d2}.normalize() // far
	return f
}

// Contains reports whether a point lies inside all 6 half-spaces.
func (f Frustum) Contains(v Vec3) bool {
	for _, p := range f.planes {
		if p.signedDistance(v) < 0 {
			return false
		}
	}
	return true
}

// AabbRelation classifies an Aabb against the frustum's 6 planes:
// Outside if any plane fully excludes it, Inside if every plane fully
// includes it, Crosses otherwise.
func (f Frustum) AabbRelation(box Aabb) Relation {
	allInside := true
	for _, p := range f.planes {
		out, in := 0, 0
		for _, c := range box.corners() {
			if p.signedDistance(c) < 0 {
				out++
			} else {
				in++
			}
		}
		if in == 0 {
			return Outside
		}
		if out != 0 {
			allInside = false
		}
	}
	if allInside {
		return Inside
	}
	return Crosses
}

// Transformed applies a rigid transform to the frustum by multiplying
// the inverse transform onto the right of the matrix, matching the original's
// "transform the culler once, not per point" invariant.
func (f Frustum) Transformed(t Isometry3) Frustum {
	inv := t.Inverse()
	var m [16]float64
	tm := toMat4(inv)
	var result mat.Dense
	result.Mul(f.matrix, tm)
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			m[r*4+c] = result.At(r, c)
		}
	}
	return NewFrustum(m)
}

func toMat4(t Isometry3) *mat.Dense {
	r := t.Rotation
	tr := t.Translation
	return mat.NewDense(4, 4, []float64{
		r[0][0], r[0][1], r[0][2], tr.X,
		r[1][0], r[1][1], r[1][2], tr.Y,
		r[2][0], r[2][1], r[2][2], tr.Z,
		0, 0, 0, 1,
	})
}

// Relation is the outcome of classifying a volume against a culling
// shape: the three-way result every region query dispatches on (§4.4).
type Relation int

const (
	Outside Relation = iota
	Inside
	Crosses
)
