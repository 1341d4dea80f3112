package builder

import (
	"os"
	"path/filepath"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/googlecartographer/point-cloud-viewer/internal/werrors"
	"github.com/googlecartographer/point-cloud-viewer/pkg/nodeio"
)

// writerPool bounds the number of simultaneously open node-attribute
// file handles, evicting the least recently used on overflow and
// reopening in append mode the next time that node/attribute pair is
// touched. Grounded on beetlebugorg/s57's pkg/v1/cache.go hand-rolled
// LRU, replaced here with the ecosystem's hashicorp/golang-lru/v2 per
// SPEC_FULL.md §12 -- the eviction callback is where this pool plugs
// into the LRU's native API instead of reimplementing one.
type writerPool struct {
	dir string

	mu     sync.Mutex
	opened map[string]bool // node+attribute key -> ever opened (truncate only the first time)
	cache  *lru.Cache[string, *os.File]
}

func newWriterPool(dir string, maxOpen int) *writerPool {
	if maxOpen <= 0 {
		maxOpen = 1
	}
	wp := &writerPool{dir: dir, opened: make(map[string]bool)}
	cache, _ := lru.NewWithEvict[string, *os.File](maxOpen, func(_ string, f *os.File) {
		_ = f.Close()
	})
	wp.cache = cache
	return wp
}

func writerKey(nodeID, attribute string) string {
	return nodeID + "\x00" + attribute
}

// Writer returns the *os.File for nodeID/attribute, opening it
// (truncating on the very first touch, appending thereafter) if it
// isn't already cached.
func (wp *writerPool) Writer(nodeID, attribute string) (*os.File, error) {
	wp.mu.Lock()
	defer wp.mu.Unlock()

	key := writerKey(nodeID, attribute)
	if f, ok := wp.cache.Get(key); ok {
		return f, nil
	}

	flags := os.O_WRONLY | os.O_CREATE
	if wp.opened[key] {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
		wp.opened[key] = true
	}
	path := filepath.Join(wp.dir, nodeio.AttributeFileName(nodeID, attribute))
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return nil, werrors.Wrap(werrors.KindIo, err, "open node writer "+path)
	}
	wp.cache.Add(key, f)
	return f, nil
}

// CloseAll closes every still-open handle; the eviction callback does
// the actual Close as entries are purged.
func (wp *writerPool) CloseAll() {
	wp.mu.Lock()
	defer wp.mu.Unlock()
	wp.cache.Purge()
}
