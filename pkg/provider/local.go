package provider

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/hauke96/sigolo/v2"

	"github.com/googlecartographer/point-cloud-viewer/internal/werrors"
	"github.com/googlecartographer/point-cloud-viewer/internal/wire"
	"github.com/googlecartographer/point-cloud-viewer/pkg/nodeio"
	"github.com/googlecartographer/point-cloud-viewer/pkg/octree"
)

// metaFileName is the well-known filename for the length-prefixed
// metadata record (§4.5's on-disk layout).
const metaFileName = "meta.pb"

// LocalProvider reads node attribute streams and metadata from a
// filesystem directory, grounded on ChartManager's local-storage
// pattern in beetlebugorg/s57's pkg/s57/manager.go.
type LocalProvider struct {
	root string

	mu   sync.Mutex
	meta *octree.Meta
}

// NewLocalProvider opens a provider rooted at dir; Meta() reads and
// caches meta.pb lazily on first call.
func NewLocalProvider(dir string) *LocalProvider {
	return &LocalProvider{root: dir}
}

func (p *LocalProvider) Meta(ctx context.Context) (*octree.Meta, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.meta != nil {
		return p.meta, nil
	}

	sigolo.Debugf("provider: reading %s", filepath.Join(p.root, metaFileName))
	f, err := os.Open(filepath.Join(p.root, metaFileName))
	if err != nil {
		return nil, werrors.Wrap(werrors.KindIo, err, "open meta.pb")
	}
	defer f.Close()

	payload, err := wire.ReadLengthPrefixed(f)
	if err != nil {
		return nil, err
	}
	meta, err := wire.DecodeMeta(payload)
	if err != nil {
		return nil, err
	}
	meta.RootPath = p.root
	p.meta = meta
	return meta, nil
}

// Data opens one *os.File per requested attribute, atomically: if any
// file fails to open, every stream opened so far for this call is
// closed before returning the error (§4.3's atomic multi-stream open).
func (p *LocalProvider) Data(ctx context.Context, id octree.NodeId, attributes []string) (map[string]io.ReadCloser, error) {
	opened := make(map[string]io.ReadCloser, len(attributes))
	for _, attr := range attributes {
		name := nodeio.AttributeFileName(id.String(), attr)
		f, err := os.Open(filepath.Join(p.root, name))
		if err != nil {
			closeAll(opened)
			if os.IsNotExist(err) {
				return nil, werrors.Wrap(werrors.KindUnknownAttribute, err, "attribute "+attr+" not found for node "+id.String())
			}
			return nil, werrors.Wrap(werrors.KindIo, err, "open attribute "+attr)
		}
		opened[attr] = f
	}
	return opened, nil
}

func closeAll(streams map[string]io.ReadCloser) {
	for _, s := range streams {
		_ = s.Close()
	}
}
