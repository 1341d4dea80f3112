// Package builder implements the bottom-up octree construction pipeline
// (§4.5): scan & assign, subsample parents, meta emission, driven by a
// worker pool over disjoint subtrees. The worker/job channel shape is
// grounded on beetlebugorg/s57's pkg/v1/parallel.go
// (LoadCellsParallel's jobs/results channels + WaitGroup-closer
// goroutine), generalized here from "load N charts" to "assign points
// into subtrees, each top-level octant owned by one worker".
package builder

import "runtime"

// Options configures the builder, following beetlebugorg/s57's
// Options/Default...Options idiom.
type Options struct {
	// Resolution is the target quantization step; it both picks each
	// node's PositionEncoding and bounds the tree's maximum depth.
	Resolution float64

	// Workers caps the number of concurrent subtree workers. At most 8
	// are ever used (one per top-level octant); 0 defaults to
	// runtime.NumCPU(), clamped to 8.
	Workers int

	// MaxOpenWriters is the whole-build budget of open node-file
	// handles (§4.5's "≤64"). Phase 1 divides it evenly across
	// workers, since each worker owns a disjoint subtree and its own
	// pool; phase 2 runs serially with a single pool of this size.
	MaxOpenWriters int

	// Progress is called after each input point is assigned.
	Progress func(pointsAssigned int)
}

// DefaultOptions returns builder options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Resolution:     0.001,
		Workers:        clampWorkers(runtime.NumCPU()),
		MaxOpenWriters: 64,
		Progress:       nil,
	}
}

func clampWorkers(n int) int {
	if n <= 0 {
		n = runtime.NumCPU()
	}
	if n > 8 {
		n = 8
	}
	return n
}
