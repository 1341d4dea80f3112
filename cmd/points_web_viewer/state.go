package main

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/googlecartographer/point-cloud-viewer/pkg/octree"
	"github.com/googlecartographer/point-cloud-viewer/pkg/provider"
)

// appState is the server's handler-shared state: one octree opened
// once at startup (immutable per §5's "shared, reference-counted
// value; no mutex required"), plus a bounded cache of already-read
// node-data blobs sized by cache_items, mirroring the original's
// AppState.
type appState struct {
	tree     *octree.Octree
	provider provider.DataProvider

	nodeData *lru.Cache[string, []byte]
}

func newAppState(dir string, cacheItems int) (*appState, error) {
	if cacheItems <= 0 {
		cacheItems = 1
	}
	cache, err := lru.New[string, []byte](cacheItems)
	if err != nil {
		return nil, err
	}

	prov := provider.NewLocalProvider(dir)
	meta, err := prov.Meta(context.Background())
	if err != nil {
		return nil, err
	}

	return &appState{
		tree:     octree.NewOctree(meta),
		provider: prov,
		nodeData: cache,
	}, nil
}
