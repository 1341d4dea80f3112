package provider

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/googlecartographer/point-cloud-viewer/internal/geom"
	"github.com/googlecartographer/point-cloud-viewer/internal/wire"
	"github.com/googlecartographer/point-cloud-viewer/pkg/nodeio"
	"github.com/googlecartographer/point-cloud-viewer/pkg/octree"
	"github.com/googlecartographer/point-cloud-viewer/pkg/pointdata"
)

func TestLocalProviderMetaAndData(t *testing.T) {
	dir := t.TempDir()

	meta := &octree.Meta{
		Version:    octree.MetaVersion,
		RootCube:   geom.Cube{Min: geom.Vec3{}, Edge: 10},
		Resolution: 0.01,
		Attributes: []nodeio.AttributeSpec{{Name: "color", DataType: pointdata.U8Vec3}},
		Nodes:      map[octree.NodeId]uint64{octree.Root(): 1},
	}
	f, err := os.Create(filepath.Join(dir, "meta.pb"))
	require.NoError(t, err)
	require.NoError(t, wire.WriteLengthPrefixed(f, wire.EncodeMeta(meta)))
	require.NoError(t, f.Close())

	posFile, err := os.Create(filepath.Join(dir, nodeio.AttributeFileName(octree.Root().String(), "position")))
	require.NoError(t, err)
	require.NoError(t, posFile.Close())

	p := NewLocalProvider(dir)
	gotMeta, err := p.Meta(context.Background())
	require.NoError(t, err)
	assert.Equal(t, dir, gotMeta.RootPath)

	streams, err := p.Data(context.Background(), octree.Root(), []string{"position"})
	require.NoError(t, err)
	require.Contains(t, streams, "position")
	streams["position"].Close()

	_, err = p.Data(context.Background(), octree.Root(), []string{"missing_attr"})
	assert.Error(t, err)
}
