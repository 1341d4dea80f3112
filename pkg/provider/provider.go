// Package provider implements the DataProvider abstraction (§4.3): an
// interface over byte-stream sources for (node_id, attribute) tuples,
// with a local filesystem implementation and a remote gRPC one. The
// query engine depends only on the interface, following the layering
// of beetlebugorg/s57's ChartManager over a swappable ChartLoader.
package provider

import (
	"context"
	"io"

	"github.com/googlecartographer/point-cloud-viewer/pkg/octree"
)

// DataProvider opens byte streams for a node's attributes, atomically:
// either every requested stream opens, or the call fails and none are
// left dangling (§4.3's "atomic multi-stream open, read-once streams").
type DataProvider interface {
	// Data opens one reader per requested attribute name for the given
	// node. Missing streams cause the call to fail with
	// werrors.KindUnknownAttribute or werrors.KindIo.
	Data(ctx context.Context, id octree.NodeId, attributes []string) (map[string]io.ReadCloser, error)

	// Meta returns the octree's metadata, fetched once and cached by
	// the provider.
	Meta(ctx context.Context) (*octree.Meta, error)
}
