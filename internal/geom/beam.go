package geom


// OrientedBeam is an infinite cylindrical beam: all points within
// Radius of the line through Origin along Direction (normalized on
// construction). It models a ray-like capture volume, e.g. "everything
// within 5cm of this laser line of sight".
type OrientedBeam struct {
	Origin    Vec3
	Direction Vec3
	Radius    float64
}

// NewOrientedBeam normalizes direction so Contains's projection math is
// well-defined regardless of the caller's input scale.
func NewOrientedBeam(origin, direction Vec3, radius float64) OrientedBeam {
	return OrientedBeam{Origin: origin, Direction: direction.Normalized(), Radius: radius}
}

func (b OrientedBeam) distanceToAxis(p Vec3) float64 {
	d := p.Sub(b.Origin)
	along := d.Dot(b.Direction)
	closest := b.Direction.Scale(along)
	return d.Sub(closest).Length()
}

// Contains reports whether p lies within Radius of the beam's axis.
func (b OrientedBeam) Contains(p Vec3) bool {
	return b.distanceToAxis(p) <= b.Radius
}

// AabbRelation classifies a box against the beam: Inside if every
// corner is within Radius; when every corner is beyond Radius,
// outsideOrCrosses decides between Outside and Crosses from the box
// center's distance to the axis; Crosses otherwise. This is a
// conservative (not exact) classification, appropriate for a
// node-cube pre-filter which always re-tests individual points.
func (b OrientedBeam) AabbRelation(box Aabb) Relation {
	in, out := 0, 0
	for _, c := range box.corners() {
		if b.Contains(c) {
			in++
		} else {
			out++
		}
	}
	switch {
	case in == 8:
		return Inside
	case out == 8:
		return outsideOrCrosses(b, box)
	default:
		return Crosses
	}
}

// outsideOrCrosses handles the case where all 8 corners test outside the
// cylinder but the axis itself still threads through the box (thin beam
// through a fat box) -- a pure corner test would wrongly report Outside.
func outsideOrCrosses(b OrientedBeam, box Aabb) Relation {
	center := box.Center()
	if b.distanceToAxis(center) <= b.Radius+box.HalfExtent().Length() {
		return Crosses
	}
	return Outside
}

// Transformed applies a rigid transform to the beam.
func (b OrientedBeam) Transformed(t Isometry3) OrientedBeam {
	return OrientedBeam{
		Origin:    t.Apply(b.Origin),
		Direction: t.ApplyVector(b.Direction).Normalized(),
		Radius:    b.Radius,
	}
}
