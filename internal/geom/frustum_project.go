package geom

import "math"

// ProjectedSizePixels estimates a box's on-screen size in pixels: every
// corner is projected to clip space via the frustum's matrix, perspective
// divided to NDC, and the resulting NDC bounding box's larger axis is
// scaled by half the viewport height. Used by the visible-nodes
// traversal's minimum-projected-size cutoff (§4.4).
func (f Frustum) ProjectedSizePixels(box Aabb, viewportHeightPixels float64) float64 {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	anyVisible := false

	for _, c := range box.corners() {
		cx := f.matrix.At(0, 0)*c.X + f.matrix.At(0, 1)*c.Y + f.matrix.At(0, 2)*c.Z + f.matrix.At(0, 3)
		cy := f.matrix.At(1, 0)*c.X + f.matrix.At(1, 1)*c.Y + f.matrix.At(1, 2)*c.Z + f.matrix.At(1, 3)
		cw := f.matrix.At(3, 0)*c.X + f.matrix.At(3, 1)*c.Y + f.matrix.At(3, 2)*c.Z + f.matrix.At(3, 3)
		if cw <= 0 {
			continue
		}
		anyVisible = true
		ndcX, ndcY := cx/cw, cy/cw
		minX, maxX = math.Min(minX, ndcX), math.Max(maxX, ndcX)
		minY, maxY = math.Min(minY, ndcY), math.Max(maxY, ndcY)
	}
	if !anyVisible {
		return 0
	}
	ndcSize := math.Max(maxX-minX, maxY-minY)
	return ndcSize * viewportHeightPixels / 2
}
