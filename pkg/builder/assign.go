package builder

import (
	"io"
	"sync"

	"github.com/hauke96/sigolo/v2"

	"github.com/googlecartographer/point-cloud-viewer/internal/geom"
	"github.com/googlecartographer/point-cloud-viewer/internal/ingest"
	"github.com/googlecartographer/point-cloud-viewer/pkg/octree"
	"github.com/googlecartographer/point-cloud-viewer/pkg/pointdata"
)

// assignResult is one worker's phase-1 output: every leaf node it
// wrote, with its final point count.
type assignResult struct {
	leafCounts map[octree.NodeId]uint64
	err        error
}

// scanAndAssign is phase 1 (§4.5): stream every point once, route it
// to the worker owning its top-level octant, and have that worker
// buffer and flush its disjoint subtree's leaves. The worker count is
// clampWorkers(opts.Workers) (at most 8, or 1 when depth is 0), and
// octant i goes to worker i % workers, so a worker may own several
// octants. Grounded on
// beetlebugorg/s57's pkg/v1/parallel.go jobs/results/WaitGroup shape
// (LoadCellsParallel), adapted from "one job per input file" to "one
// job per point, routed to the worker owning its subtree".
func scanAndAssign(outputDir string, rootCube geom.Cube, depth int, resolution float64, it ingest.PointIterator, opts Options) (map[octree.NodeId]uint64, error) {
	workers := clampWorkers(opts.Workers)
	if depth == 0 {
		// Every point's leaf is the root itself regardless of which
		// top-level octant it falls in (leafNodeID never descends), so
		// routing by octant across >1 worker would have two workers
		// truncate-and-write the same node files concurrently. With a
		// single leaf there is nothing to parallelize anyway.
		workers = 1
	}
	perWorkerMaxOpen := opts.MaxOpenWriters / workers
	if perWorkerMaxOpen < 1 {
		perWorkerMaxOpen = 1
	}
	sigolo.Debugf("scanAndAssign: %d workers, %d max open writers each", workers, perWorkerMaxOpen)

	jobs := make([]chan pointdata.Point, workers)
	for i := range jobs {
		jobs[i] = make(chan pointdata.Point, 4096)
	}

	results := make([]assignResult, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			results[w] = runSubtreeWorker(outputDir, rootCube, depth, resolution, jobs[w], perWorkerMaxOpen)
		}(w)
	}

	count := 0
	var scanErr error
scan:
	for {
		p, err := it.Next()
		switch {
		case err == io.EOF:
			break scan
		case err != nil:
			scanErr = err
			break scan
		}
		top := rootCube.ChildIndexContaining(p.Position)
		jobs[top%workers] <- p
		count++
		if opts.Progress != nil {
			opts.Progress(count)
		}
	}
	for _, j := range jobs {
		close(j)
	}
	wg.Wait()

	if scanErr != nil {
		return nil, scanErr
	}
	sigolo.Infof("scanAndAssign: assigned %d points", count)

	merged := make(map[octree.NodeId]uint64)
	for _, r := range results {
		if r.err != nil {
			return nil, r.err
		}
		for id, n := range r.leafCounts {
			merged[id] += n
		}
	}
	return merged, nil
}

// runSubtreeWorker buffers every point routed to it by leaf node,
// then flushes each leaf once the input channel closes. Buffering in
// memory for the duration of one worker's share of the scan trades
// memory for simplicity; a production builder would spill batches to
// disk as they fill instead of waiting for channel close.
func runSubtreeWorker(outputDir string, rootCube geom.Cube, depth int, resolution float64, pts <-chan pointdata.Point, maxOpen int) assignResult {
	builders := make(map[octree.NodeId]*pointdata.BatchBuilder)
	cubes := make(map[octree.NodeId]geom.Cube)

	for p := range pts {
		id, cube := leafNodeID(rootCube, depth, p.Position)
		b, ok := builders[id]
		if !ok {
			b = pointdata.NewBatchBuilder()
			builders[id] = b
			cubes[id] = cube
		}
		b.Push(p)
	}

	wp := newWriterPool(outputDir, maxOpen)
	defer wp.CloseAll()

	counts := make(map[octree.NodeId]uint64, len(builders))
	for id, b := range builders {
		n := b.Len()
		if n == 0 {
			continue
		}
		batch := b.Build()
		if err := writeNodeBatch(wp, id, cubes[id], resolution, batch); err != nil {
			return assignResult{err: err}
		}
		counts[id] = uint64(n)
	}
	return assignResult{leafCounts: counts}
}
