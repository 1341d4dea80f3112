package query

import (
	"github.com/googlecartographer/point-cloud-viewer/internal/geom"
	"github.com/googlecartographer/point-cloud-viewer/pkg/octree"
	"github.com/googlecartographer/point-cloud-viewer/pkg/provider"
)

// AllPoints returns a BatchIterator over every point in the octree
// (§4.4's all_points()).
func AllPoints(tree *octree.Octree, prov provider.DataProvider, requiredAttrs []string, opts EngineOptions) *BatchIterator {
	return NewBatchIterator(tree, prov, PointLocation{Culler: geom.AnyCuller()}, requiredAttrs, opts)
}

// PointsInBox returns a BatchIterator over points inside an
// axis-aligned box (§4.4's points_in_box()).
func PointsInBox(tree *octree.Octree, prov provider.DataProvider, box geom.Aabb, globalFromLocal *geom.Isometry3, requiredAttrs []string, opts EngineOptions) *BatchIterator {
	return NewBatchIterator(tree, prov, PointLocation{Culler: geom.AabbCuller(box), GlobalFromLocal: globalFromLocal}, requiredAttrs, opts)
}

// PointsInObb returns a BatchIterator over points inside an oriented
// box (§4.4's points_in_obb()).
func PointsInObb(tree *octree.Octree, prov provider.DataProvider, obb geom.Obb, globalFromLocal *geom.Isometry3, requiredAttrs []string, opts EngineOptions) *BatchIterator {
	return NewBatchIterator(tree, prov, PointLocation{Culler: geom.ObbCuller(obb), GlobalFromLocal: globalFromLocal}, requiredAttrs, opts)
}

// PointsInFrustum returns a BatchIterator over points inside a view
// frustum (§4.4's points_in_frustum()).
func PointsInFrustum(tree *octree.Octree, prov provider.DataProvider, frustum geom.Frustum, globalFromLocal *geom.Isometry3, requiredAttrs []string, opts EngineOptions) *BatchIterator {
	return NewBatchIterator(tree, prov, PointLocation{Culler: geom.FrustumCuller(frustum), GlobalFromLocal: globalFromLocal}, requiredAttrs, opts)
}

// PointsInOrientedBeam returns a BatchIterator over points inside a
// cylindrical beam (§4.4's points_in_oriented_beam()).
func PointsInOrientedBeam(tree *octree.Octree, prov provider.DataProvider, beam geom.OrientedBeam, globalFromLocal *geom.Isometry3, requiredAttrs []string, opts EngineOptions) *BatchIterator {
	return NewBatchIterator(tree, prov, PointLocation{Culler: geom.BeamCuller(beam), GlobalFromLocal: globalFromLocal}, requiredAttrs, opts)
}
