package query

import (
	"context"

	"github.com/googlecartographer/point-cloud-viewer/internal/geom"
	"github.com/googlecartographer/point-cloud-viewer/internal/werrors"
	"github.com/googlecartographer/point-cloud-viewer/pkg/octree"
	"github.com/googlecartographer/point-cloud-viewer/pkg/pointdata"
	"github.com/googlecartographer/point-cloud-viewer/pkg/provider"
)

// PointLocation names a region query's shape and, optionally, the rigid
// transform between the caller's local frame (the frame the region is
// expressed in) and the global frame points are stored in (§4.4's
// "local frame region, global frame storage" case).
type PointLocation struct {
	Culler          geom.Culler
	GlobalFromLocal *geom.Isometry3
}

// BatchIterator accumulates points matching a PointLocation into
// column batches and drives a user callback, mirroring the original's
// PointStream (batch_iterator.rs). Per that file's invariant, the
// culler is transformed from local to global frame exactly once, here
// at construction -- never per point.
type BatchIterator struct {
	tree           *octree.Octree
	provider       provider.DataProvider
	requiredAttrs  []string
	batchSize      int
	globalCuller   geom.Culler
	localFromGlobal *geom.Isometry3
}

// NewBatchIterator builds an iterator over tree via provider. loc's
// culler is transformed into the global frame once here.
func NewBatchIterator(tree *octree.Octree, prov provider.DataProvider, loc PointLocation, requiredAttrs []string, opts EngineOptions) *BatchIterator {
	bi := &BatchIterator{
		tree:          tree,
		provider:      prov,
		requiredAttrs: requiredAttrs,
		batchSize:     opts.BatchSize,
	}
	if loc.GlobalFromLocal != nil {
		bi.globalCuller = loc.Culler.Transformed(*loc.GlobalFromLocal)
		inv := loc.GlobalFromLocal.Inverse()
		bi.localFromGlobal = &inv
	} else {
		bi.globalCuller = loc.Culler
	}
	if bi.batchSize <= 0 {
		bi.batchSize = DefaultEngineOptions().BatchSize
	}
	return bi
}

// TryForEachBatch drives the traversal, flushing every batchSize points
// (and the residual at the end) to callback. callback returns false to
// stop; the stop propagates as werrors.Cancelled, matching §4.4's
// callback semantics.
func (bi *BatchIterator) TryForEachBatch(ctx context.Context, callback func(*pointdata.PointsBatch) bool) error {
	builder := pointdata.NewBatchBuilder()
	stopped := false

	err := iteratePoints(ctx, bi.tree, bi.provider, bi.globalCuller, bi.requiredAttrs, func(p pointdata.Point) bool {
		if bi.localFromGlobal != nil {
			p.Position = bi.localFromGlobal.Apply(p.Position)
		}
		builder.Push(p)
		if builder.Len() < bi.batchSize {
			return true
		}
		if !callback(builder.Build()) {
			stopped = true
			return false
		}
		return true
	})

	if stopped {
		return werrors.Cancelled
	}
	if err != nil {
		return err
	}

	if builder.Len() > 0 {
		if !callback(builder.Build()) {
			return werrors.Cancelled
		}
	}
	return nil
}
