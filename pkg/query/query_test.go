package query

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/googlecartographer/point-cloud-viewer/internal/encoding"
	"github.com/googlecartographer/point-cloud-viewer/internal/geom"
	"github.com/googlecartographer/point-cloud-viewer/pkg/nodeio"
	"github.com/googlecartographer/point-cloud-viewer/pkg/octree"
	"github.com/googlecartographer/point-cloud-viewer/pkg/pointdata"
	"github.com/googlecartographer/point-cloud-viewer/pkg/provider"
)

func writeTestNode(t *testing.T, dir string, id octree.NodeId, cube geom.Cube, points []geom.Vec3) {
	t.Helper()
	enc := nodeio.Encoding{Position: encoding.Uint16, Cube: cube}
	f, err := os.Create(filepath.Join(dir, nodeio.AttributeFileName(id.String(), "position")))
	require.NoError(t, err)
	defer f.Close()

	builder := pointdata.NewBatchBuilder()
	for _, p := range points {
		builder.Push(pointdata.Point{Position: p})
	}
	w := nodeio.NewNodeWriter(enc, f, nil)
	require.NoError(t, w.Write(builder.Build()))
}

func TestAllPointsAndBoxQuery(t *testing.T) {
	dir := t.TempDir()
	root := geom.Cube{Min: geom.Vec3{}, Edge: 8}

	pts := []geom.Vec3{{X: 1, Y: 1, Z: 1}, {X: 6, Y: 6, Z: 6}}
	writeTestNode(t, dir, octree.Root(), root, pts)

	meta := &octree.Meta{
		Version:    octree.MetaVersion,
		RootCube:   root,
		Resolution: 0.01,
		Nodes:      map[octree.NodeId]uint64{octree.Root(): uint64(len(pts))},
		RootPath:   dir,
	}
	tree := octree.NewOctree(meta)
	prov := provider.NewLocalProvider(dir)

	var all []pointdata.Point
	it := AllPoints(tree, prov, nil, DefaultEngineOptions())
	require.NoError(t, it.TryForEachBatch(context.Background(), func(b *pointdata.PointsBatch) bool {
		for i := 0; i < b.NumPoints(); i++ {
			all = append(all, b.Point(i))
		}
		return true
	}))
	assert.Len(t, all, 2)

	box := geom.Aabb{Min: geom.Vec3{X: 0, Y: 0, Z: 0}, Max: geom.Vec3{X: 3, Y: 3, Z: 3}}
	var boxed []pointdata.Point
	bit := PointsInBox(tree, prov, box, nil, nil, DefaultEngineOptions())
	require.NoError(t, bit.TryForEachBatch(context.Background(), func(b *pointdata.PointsBatch) bool {
		for i := 0; i < b.NumPoints(); i++ {
			boxed = append(boxed, b.Point(i))
		}
		return true
	}))
	require.Len(t, boxed, 1)
	assert.InDelta(t, 1.0, boxed[0].Position.X, 0.1)
}

func TestBatchIteratorCancellation(t *testing.T) {
	dir := t.TempDir()
	root := geom.Cube{Min: geom.Vec3{}, Edge: 8}
	pts := []geom.Vec3{{X: 1, Y: 1, Z: 1}, {X: 2, Y: 2, Z: 2}, {X: 3, Y: 3, Z: 3}}
	writeTestNode(t, dir, octree.Root(), root, pts)

	meta := &octree.Meta{
		RootCube: root, Resolution: 0.01,
		Nodes:    map[octree.NodeId]uint64{octree.Root(): uint64(len(pts))},
		RootPath: dir,
	}
	tree := octree.NewOctree(meta)
	prov := provider.NewLocalProvider(dir)

	opts := DefaultEngineOptions()
	opts.BatchSize = 1
	calls := 0
	it := AllPoints(tree, prov, nil, opts)
	err := it.TryForEachBatch(context.Background(), func(b *pointdata.PointsBatch) bool {
		calls++
		return calls < 2
	})
	assert.Error(t, err)
	assert.Equal(t, 2, calls)
}
