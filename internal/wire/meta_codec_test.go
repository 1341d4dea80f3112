package wire

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/googlecartographer/point-cloud-viewer/internal/geom"
	"github.com/googlecartographer/point-cloud-viewer/pkg/nodeio"
	"github.com/googlecartographer/point-cloud-viewer/pkg/octree"
	"github.com/googlecartographer/point-cloud-viewer/pkg/pointdata"
)

func TestEncodeDecodeMetaRoundTrip(t *testing.T) {
	meta := &octree.Meta{
		Version:    octree.MetaVersion,
		RootCube:   geom.Cube{Min: geom.Vec3{X: 1, Y: 2, Z: 3}, Edge: 16},
		Resolution: 0.001,
		Attributes: []nodeio.AttributeSpec{
			{Name: "color", DataType: pointdata.U8Vec3},
			{Name: "intensity", DataType: pointdata.F32},
		},
		Nodes: map[octree.NodeId]uint64{
			octree.Root():          1000,
			octree.Root().Child(2): 200,
		},
		RootPath: "/data/octree",
	}

	encoded := EncodeMeta(meta)
	decoded, err := DecodeMeta(encoded)
	require.NoError(t, err)

	assert.Equal(t, meta.Version, decoded.Version)
	assert.Equal(t, meta.RootCube, decoded.RootCube)
	assert.InDelta(t, meta.Resolution, decoded.Resolution, 1e-12)
	assert.Equal(t, meta.RootPath, decoded.RootPath)
	assert.Equal(t, meta.Nodes, decoded.Nodes)
	require.Len(t, decoded.Attributes, 2)
}

func TestLengthPrefixedRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	payload := []byte("hello octree meta")
	require.NoError(t, WriteLengthPrefixed(&buf, payload))

	got, err := ReadLengthPrefixed(&buf)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}
