package provider

import (
	"context"
	"io"
	"sync"

	"github.com/hauke96/sigolo/v2"
	"github.com/pkg/errors"
	"google.golang.org/grpc"

	"github.com/googlecartographer/point-cloud-viewer/internal/werrors"
	"github.com/googlecartographer/point-cloud-viewer/internal/wire"
	"github.com/googlecartographer/point-cloud-viewer/pkg/octree"
)

var errUnsupportedRawMessage = errors.New("provider: raw codec only marshals/unmarshals []byte")

// RPC method names for the minimal octree service this provider talks
// to; the service definition itself lives with the server (an external
// collaborator per spec.md §1), this client only needs the method
// strings and the raw-bytes wire shape.
const (
	methodGetMeta     = "/pointcloudviewer.Octree/GetMeta"
	methodGetNodeData = "/pointcloudviewer.Octree/GetNodeData"
)

// RemoteProvider is a DataProvider backed by a gRPC connection,
// grounded on banshee-data-velocity.report's grpc_server.go client
// shape. Meta() is fetched once and cached; each Data() call issues one
// unary RPC per attribute.
//
// Dummy-path hazard (DESIGN.md decision 2, carried over from the
// original's point_viewer_grpc/src/lib.rs): the Meta this provider
// caches is reconstructed purely from the RPC reply, so its RootPath is
// set to octree.DummyRootPath rather than a real directory. Nothing in
// this module reads RootPath off a RemoteProvider's Meta; if a future
// caller starts to, it must not silently trust that path.
type RemoteProvider struct {
	conn *grpc.ClientConn

	mu   sync.Mutex
	meta *octree.Meta
}

// NewRemoteProvider wraps an already-dialed connection.
func NewRemoteProvider(conn *grpc.ClientConn) *RemoteProvider {
	return &RemoteProvider{conn: conn}
}

func (p *RemoteProvider) Meta(ctx context.Context) (*octree.Meta, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.meta != nil {
		return p.meta, nil
	}

	sigolo.Debugf("provider: fetching meta via GetMeta RPC")
	var resp []byte
	if err := p.conn.Invoke(ctx, methodGetMeta, []byte{}, &resp, grpc.CallContentSubtype(rawCodecName)); err != nil {
		return nil, werrors.Wrap(werrors.KindTransport, err, "GetMeta RPC")
	}
	meta, err := wire.DecodeMeta(resp)
	if err != nil {
		return nil, err
	}
	meta.RootPath = octree.DummyRootPath
	p.meta = meta
	return meta, nil
}

// Data issues one GetNodeData RPC per attribute, atomically: if any
// call fails, no partial map is returned.
func (p *RemoteProvider) Data(ctx context.Context, id octree.NodeId, attributes []string) (map[string]io.ReadCloser, error) {
	out := make(map[string]io.ReadCloser, len(attributes))
	for _, attr := range attributes {
		req := encodeNodeDataRequest(id, attr)
		var resp []byte
		if err := p.conn.Invoke(ctx, methodGetNodeData, req, &resp, grpc.CallContentSubtype(rawCodecName)); err != nil {
			for _, r := range out {
				_ = r.Close()
			}
			return nil, werrors.Wrap(werrors.KindTransport, err, "GetNodeData RPC for attribute "+attr)
		}
		out[attr] = io.NopCloser(newByteReader(resp))
	}
	return out, nil
}
