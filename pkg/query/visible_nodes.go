package query

import (
	"sort"

	"github.com/googlecartographer/point-cloud-viewer/internal/geom"
	"github.com/googlecartographer/point-cloud-viewer/pkg/octree"
)

// VisibleNodes returns, level by level (breadth-wise) and within a
// level in ascending IndexWithinLevel order, every populated node
// whose bounding cube intersects frustum and whose projected size
// exceeds opts.MinProjectedSizePixels (§4.4). Expansion mirrors the
// original's NodeIdsIterator: a node is expanded into its children only
// if the node itself passed both tests, i.e. children of a
// too-small-or-invisible node are never visited. Nodes within a level
// are not sorted by distance from the camera.
//
// The candidate pool walked here is pre-filtered through
// pkg/octree.NodeIndex.IntersectingCubes rather than probed node by
// node: frustum has no cheap tight bound, so the R-tree query runs
// against the whole root cube, but it still returns only the populated
// nodes (never the sparse unpopulated NodeId space a naive per-level
// Has() walk would otherwise have to touch).
func VisibleNodes(tree *octree.Octree, frustum geom.Frustum, opts EngineOptions) []octree.NodeId {
	var result []octree.NodeId

	culler := geom.Culler{Kind: geom.CullerFrustum, Frustum: frustum}
	candidates := tree.Index.IntersectingCubes(culler.BoundingAabb(tree.Meta.RootCube.Aabb()))
	populated := make(map[octree.NodeId]bool, len(candidates))
	for _, id := range candidates {
		populated[id] = true
	}

	type queued struct {
		id   octree.NodeId
		cube geom.Cube
	}
	level := []queued{{id: octree.Root(), cube: tree.Meta.RootCube}}

	for len(level) > 0 {
		sort.Slice(level, func(i, j int) bool {
			return level[i].id.IndexWithinLevel < level[j].id.IndexWithinLevel
		})

		var next []queued
		for _, n := range level {
			if !populated[n.id] {
				continue
			}
			box := n.cube.Aabb()
			relation := culler.ClassifyAabb(box)
			if relation == geom.Outside {
				continue
			}
			size := frustum.ProjectedSizePixels(box, opts.ViewportHeightPixels)
			if size < opts.MinProjectedSizePixels {
				continue
			}
			result = append(result, n.id)
			for _, child := range tree.Children(n.id) {
				next = append(next, queued{id: child, cube: n.cube.ChildCube(int(child.ChildIndexAtThisLevel()))})
			}
		}
		level = next
	}
	return result
}
