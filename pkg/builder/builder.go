package builder

import (
	"github.com/googlecartographer/point-cloud-viewer/internal/ingest"
	"github.com/googlecartographer/point-cloud-viewer/pkg/octree"
)

// IteratorFactory opens a fresh PointIterator over the input, called
// twice: once for phase 1's bounding-box scan, once for its point
// assignment scan. A factory (rather than a single iterator) is what
// lets both passes read the same input without the builder buffering
// every point in memory up front.
type IteratorFactory func() (ingest.PointIterator, error)

// Builder runs the full bottom-up construction pipeline (§4.5) against
// one input source, writing node files and a meta.pb directly into
// OutputDir.
type Builder struct {
	OutputDir string
	Source    IteratorFactory
	Options   Options
}

// New constructs a Builder with the given options.
func New(outputDir string, source IteratorFactory, opts Options) *Builder {
	return &Builder{OutputDir: outputDir, Source: source, Options: opts}
}

// Build runs phase 1 (scan & assign), phase 2 (subsample parents) and
// phase 3 (meta emission) in sequence, returning the finished Meta.
func (b *Builder) Build() (*octree.Meta, error) {
	bboxIt, err := b.Source()
	if err != nil {
		return nil, err
	}
	rootCube, err := computeRootCube(bboxIt)
	if err != nil {
		return nil, err
	}

	depth := maxDepthForResolution(rootCube.Edge, b.Options.Resolution)

	assignIt, err := b.Source()
	if err != nil {
		return nil, err
	}
	leafCounts, err := scanAndAssign(b.OutputDir, rootCube, depth, b.Options.Resolution, assignIt, b.Options)
	if err != nil {
		return nil, err
	}

	perWorkerMaxOpen := b.Options.MaxOpenWriters
	allCounts, err := subsampleParents(b.OutputDir, rootCube, b.Options.Resolution, leafCounts, perWorkerMaxOpen)
	if err != nil {
		return nil, err
	}

	return writeMeta(b.OutputDir, rootCube, b.Options.Resolution, knownAttributes, allCounts)
}
