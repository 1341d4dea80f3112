package geom

// CullerKind tags which variant a Culler holds, per §9's "closed variant
// set, dispatched by tag" design note.
type CullerKind int

const (
	CullerAny CullerKind = iota
	CullerAabb
	CullerObb
	CullerFrustum
	CullerOrientedBeam
)

// Culler is the closed set of region-query shapes: exactly one of Aabb,
// Obb, Frustum or OrientedBeam is meaningful, selected by Kind, or Any
// (the all_points query, which accepts everything). It replaces the
// original's dynamically-dispatched PointCulling enum with a tagged
// struct, cheaper to pass by value and to transform.
type Culler struct {
	Kind         CullerKind
	Aabb         Aabb
	Obb          Obb
	Frustum      Frustum
	OrientedBeam OrientedBeam
}

func AnyCuller() Culler                    { return Culler{Kind: CullerAny} }
func AabbCuller(a Aabb) Culler             { return Culler{Kind: CullerAabb, Aabb: a} }
func ObbCuller(o Obb) Culler               { return Culler{Kind: CullerObb, Obb: o} }
func FrustumCuller(f Frustum) Culler       { return Culler{Kind: CullerFrustum, Frustum: f} }
func BeamCuller(b OrientedBeam) Culler     { return Culler{Kind: CullerOrientedBeam, OrientedBeam: b} }

// Contains answers the single per-point predicate every culler variant
// supports (§4 item 1).
func (c Culler) Contains(p Vec3) bool {
	switch c.Kind {
	case CullerAny:
		return true
	case CullerAabb:
		return c.Aabb.Contains(p)
	case CullerObb:
		return c.Obb.Contains(p)
	case CullerFrustum:
		return c.Frustum.Contains(p)
	case CullerOrientedBeam:
		return c.OrientedBeam.Contains(p)
	default:
		return false
	}
}

// ClassifyAabb classifies a node's bounding cube against the culler:
// Outside (skip the node's whole subtree), Inside (every point in the
// node qualifies, no per-point test needed) or Crosses (test points
// individually). This is the three-way split §4.4's region queries
// apply to each candidate node.
func (c Culler) ClassifyAabb(box Aabb) Relation {
	switch c.Kind {
	case CullerAny:
		return Inside
	case CullerAabb:
		if c.Aabb.ContainsAabb(box) {
			return Inside
		}
		if !c.Aabb.Intersects(box) {
			return Outside
		}
		return Crosses
	case CullerObb:
		if c.Obb.ContainsAabb(box) {
			return Inside
		}
		if !c.Obb.IntersectsAabb(box) {
			return Outside
		}
		return Crosses
	case CullerFrustum:
		return c.Frustum.AabbRelation(box)
	case CullerOrientedBeam:
		return c.OrientedBeam.AabbRelation(box)
	default:
		return Outside
	}
}

// BoundingAabb returns a conservative axis-aligned bound for the
// culler, used to pre-filter candidate nodes through the R-tree before
// the exact per-node classification runs. Aabb and Obb cullers have a
// cheap tight bound; Frustum's 6-plane form and OrientedBeam's infinite
// axis don't, so both fall back to root, the whole-tree bound, which
// still lets the R-tree return exactly the populated nodes rather than
// every NodeId the tree could address.
func (c Culler) BoundingAabb(root Aabb) Aabb {
	switch c.Kind {
	case CullerAabb:
		return c.Aabb
	case CullerObb:
		return c.Obb.Aabb()
	default:
		return root
	}
}

// Transformed applies a rigid transform to whichever variant is active.
// Per the original's invariant, callers must invoke this exactly once,
// at BatchIterator construction, never per point; an Aabb culler
// promotes to Obb under any non-identity transform (translation-only
// included), since a rotated axis-aligned box is no longer
// axis-aligned.
func (c Culler) Transformed(t Isometry3) Culler {
	if t.IsIdentity() {
		return c
	}
	switch c.Kind {
	case CullerAny:
		return c
	case CullerAabb:
		return ObbCuller(c.Aabb.ToObb().Transformed(t))
	case CullerObb:
		return ObbCuller(c.Obb.Transformed(t))
	case CullerFrustum:
		return FrustumCuller(c.Frustum.Transformed(t))
	case CullerOrientedBeam:
		return BeamCuller(c.OrientedBeam.Transformed(t))
	default:
		return c
	}
}
