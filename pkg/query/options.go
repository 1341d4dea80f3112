// Package query implements the octree query engine (§4.4): the
// visible-nodes frustum traversal, the four region point-iteration
// shapes, and batch iteration with transform support. Traversal order
// and the transform-once invariant are grounded on
// original_source/src/octree/octree_iterator.rs and batch_iterator.rs;
// the options/default pattern follows beetlebugorg/s57's
// ParseOptions/LoadOptions idiom.
package query

// EngineOptions configures the query engine's tunables.
type EngineOptions struct {
	// MinProjectedSizePixels is the visible-nodes traversal's cutoff:
	// nodes whose bounding cube projects smaller than this (in pixels)
	// are not descended into. Default 2.0 (DESIGN.md Open Question 3).
	MinProjectedSizePixels float64

	// ViewportHeightPixels scales the frustum's NDC projection into
	// pixels; callers typically pass the render target's height.
	ViewportHeightPixels float64

	// BatchSize is the number of points BatchIterator accumulates
	// before invoking the user callback. Default 500_000, matching the
	// original's NUM_POINTS_PER_BATCH.
	BatchSize int
}

// DefaultEngineOptions returns engine options with sensible defaults.
func DefaultEngineOptions() EngineOptions {
	return EngineOptions{
		MinProjectedSizePixels: 2.0,
		ViewportHeightPixels:   1080,
		BatchSize:              500_000,
	}
}
