package s2split

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/golang/geo/s2"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/googlecartographer/point-cloud-viewer/internal/werrors"
	"github.com/googlecartographer/point-cloud-viewer/pkg/nodeio"
)

// maxOpenCellWriters bounds how many S2 cells have open file handles at
// once; the actual descriptor count is this times the number of
// attributes written per cell, matching the original's doc comment on
// MAX_NUM_NODE_WRITERS.
const maxOpenCellWriters = 25

// cellFiles bundles every open attribute file for one S2 cell, closed
// together when the cell is evicted -- the Go analogue of the
// original's single W: NodeWriter<PointsBatch> per cache entry.
type cellFiles struct {
	files map[string]*os.File
}

// cellWriterPool is an LRU of open per-cell file bundles, keyed by
// S2CellID, with truncate-once/append-after semantics tracked in a map
// kept deliberately separate from LRU membership: a cell evicted then
// touched again must append, not truncate, even though it's no longer
// in the cache. Ported directly from the original's S2Splitter
// (writers: LruCache<CellID, W>, already_opened_writers: HashSet).
type cellWriterPool struct {
	dir string

	mu            sync.Mutex
	alreadyOpened map[string]bool // cell-token+attribute -> ever opened
	cache         *lru.Cache[s2.CellID, *cellFiles]
}

func newCellWriterPool(dir string) *cellWriterPool {
	p := &cellWriterPool{dir: dir, alreadyOpened: make(map[string]bool)}
	cache, _ := lru.NewWithEvict[s2.CellID, *cellFiles](maxOpenCellWriters, func(_ s2.CellID, cf *cellFiles) {
		for _, f := range cf.files {
			_ = f.Close()
		}
	})
	p.cache = cache
	return p
}

// Writer returns the attribute-file handle for cell/attribute, opening
// it (truncating the very first time this (cell, attribute) pair is
// ever touched by this pool, appending thereafter, including after
// eviction) if it isn't already open.
func (p *cellWriterPool) Writer(cell s2.CellID, attribute string) (*os.File, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	cf, ok := p.cache.Get(cell)
	if !ok {
		cf = &cellFiles{files: make(map[string]*os.File)}
		p.cache.Add(cell, cf)
	}
	if f, ok := cf.files[attribute]; ok {
		return f, nil
	}

	key := cell.ToToken() + "\x00" + attribute
	flags := os.O_WRONLY | os.O_CREATE
	if p.alreadyOpened[key] {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
		p.alreadyOpened[key] = true
	}
	path := filepath.Join(p.dir, nodeio.AttributeFileName(cell.ToToken(), attribute))
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return nil, werrors.Wrap(werrors.KindIo, err, "open s2 cell writer "+path)
	}
	cf.files[attribute] = f
	return f, nil
}

// CloseAll closes every still-open handle.
func (p *cellWriterPool) CloseAll() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cache.Purge()
}
