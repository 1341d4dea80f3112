package builder

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/googlecartographer/point-cloud-viewer/internal/encoding"
	"github.com/googlecartographer/point-cloud-viewer/internal/geom"
	"github.com/googlecartographer/point-cloud-viewer/internal/ingest"
	"github.com/googlecartographer/point-cloud-viewer/pkg/octree"
	"github.com/googlecartographer/point-cloud-viewer/pkg/pointdata"
	"github.com/googlecartographer/point-cloud-viewer/pkg/provider"
	"github.com/googlecartographer/point-cloud-viewer/pkg/query"
)

const testPoints = `
0.0 0.0 0.0 128 200 10 20
5.0 5.0 5.0 64 30 200 10
9.0 1.0 1.0 200 5 5 250
1.0 9.0 9.0 10 250 250 250
`

func TestBuildEndToEnd(t *testing.T) {
	dir := t.TempDir()

	opts := DefaultOptions()
	opts.Resolution = 1.0
	opts.Workers = 2
	opts.MaxOpenWriters = 8

	src := func() (ingest.PointIterator, error) {
		return ingest.NewTextPointIterator(bytes.NewReader([]byte(strings.TrimSpace(testPoints)))), nil
	}

	b := New(dir, src, opts)
	meta, err := b.Build()
	require.NoError(t, err)
	require.NotNil(t, meta)
	assert.Greater(t, meta.NumPointsTotal(), uint64(0))

	prov := provider.NewLocalProvider(dir)
	gotMeta, err := prov.Meta(context.Background())
	require.NoError(t, err)
	assert.Equal(t, meta.Resolution, gotMeta.Resolution)

	tree := octree.NewOctree(gotMeta)
	var all []pointdata.Point
	it := query.AllPoints(tree, prov, nil, query.DefaultEngineOptions())
	require.NoError(t, it.TryForEachBatch(context.Background(), func(batch *pointdata.PointsBatch) bool {
		for i := 0; i < batch.NumPoints(); i++ {
			all = append(all, batch.Point(i))
		}
		return true
	}))
	assert.NotEmpty(t, all)
}

// TestBuildTinyCloud reproduces spec.md §8's "Tiny cloud" and "Box
// query" end-to-end scenarios exactly: 4 points at the unit corners,
// resolution 0.1, expecting a single leaf (the root itself, since its
// cube already resolves to Uint8 at that resolution) holding all 4
// points, and a box query that recovers only the origin point.
func TestBuildTinyCloud(t *testing.T) {
	dir := t.TempDir()

	const tinyCloud = `
0.0 0.0 0.0
1.0 0.0 0.0
0.0 1.0 0.0
0.0 0.0 1.0
`
	// Deliberately leave Workers at its (likely >1) default: the 4
	// points fall in 4 different top-level octants, so this also
	// exercises scanAndAssign's depth==0 single-worker fallback (every
	// point's leaf is the shared root regardless of octant).
	opts := DefaultOptions()
	opts.Resolution = 0.1

	src := func() (ingest.PointIterator, error) {
		return ingest.NewTextPointIterator(bytes.NewReader([]byte(strings.TrimSpace(tinyCloud)))), nil
	}

	meta, err := New(dir, src, opts).Build()
	require.NoError(t, err)

	assert.Equal(t, 1.0, meta.RootCube.Edge)
	assert.Equal(t, geom.Vec3{X: 0, Y: 0, Z: 0}, meta.RootCube.Min)
	require.Len(t, meta.Nodes, 1)
	assert.Equal(t, uint64(4), meta.Nodes[octree.Root()])
	assert.Equal(t, encoding.Uint8, meta.PositionEncodingFor(meta.RootCube))

	prov := provider.NewLocalProvider(dir)
	tree := octree.NewOctree(meta)

	box := geom.Aabb{Min: geom.Vec3{X: -0.1, Y: -0.1, Z: -0.1}, Max: geom.Vec3{X: 0.5, Y: 0.5, Z: 0.5}}
	var boxed []pointdata.Point
	bit := query.PointsInBox(tree, prov, box, nil, nil, query.DefaultEngineOptions())
	require.NoError(t, bit.TryForEachBatch(context.Background(), func(b *pointdata.PointsBatch) bool {
		for i := 0; i < b.NumPoints(); i++ {
			boxed = append(boxed, b.Point(i))
		}
		return true
	}))
	require.Len(t, boxed, 1)
	assert.InDelta(t, 0.0, boxed[0].Position.X, 1e-6)
	assert.InDelta(t, 0.0, boxed[0].Position.Y, 1e-6)
	assert.InDelta(t, 0.0, boxed[0].Position.Z, 1e-6)
}

// TestBuildDepthOnePointsNotDuplicated guards §8's "sum over leaves ≤
// total points ingested" invariant past depth 0: one point in each of
// the root's 8 octants forces maxDepthForResolution to 1, and
// subsampleParents then copies every leaf's single point up into the
// root for LOD. An exhaustive all_points() query must still return
// exactly the 8 ingested points, not 16 -- it must not also count the
// root's subsampled copies.
func TestBuildDepthOnePointsNotDuplicated(t *testing.T) {
	dir := t.TempDir()

	const cornerCloud = `
0.1 0.1 0.1
3.9 0.1 0.1
0.1 3.9 0.1
0.1 0.1 3.9
3.9 3.9 0.1
3.9 0.1 3.9
0.1 3.9 3.9
3.9 3.9 3.9
`
	opts := DefaultOptions()
	opts.Resolution = 0.0075

	src := func() (ingest.PointIterator, error) {
		return ingest.NewTextPointIterator(bytes.NewReader([]byte(strings.TrimSpace(cornerCloud)))), nil
	}

	meta, err := New(dir, src, opts).Build()
	require.NoError(t, err)

	require.Len(t, meta.Nodes, 9, "8 leaves + 1 subsampled root")
	assert.Equal(t, uint64(8), meta.Nodes[octree.Root()])

	prov := provider.NewLocalProvider(dir)
	tree := octree.NewOctree(meta)

	var all []pointdata.Point
	it := query.AllPoints(tree, prov, nil, query.DefaultEngineOptions())
	require.NoError(t, it.TryForEachBatch(context.Background(), func(batch *pointdata.PointsBatch) bool {
		for i := 0; i < batch.NumPoints(); i++ {
			all = append(all, batch.Point(i))
		}
		return true
	}))
	assert.Len(t, all, 8)

	seen := make(map[geom.Vec3]int)
	for _, p := range all {
		seen[p.Position]++
	}
	for pos, count := range seen {
		assert.Equal(t, 1, count, "point %v emitted more than once", pos)
	}
}
