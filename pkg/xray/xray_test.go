package xray

import (
	"image"
	"image/color"
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

func TestJetBreakpoints(t *testing.T) {
	j := jet{}
	black := j.forValue(0)
	assert.Equal(t, uint8(0), black.R)
	red := j.forValue(1)
	assert.Greater(t, red.R, uint8(100))
}

func TestBuildParentWhiteWhenEmpty(t *testing.T) {
	var children [4]*image.RGBA
	parent, err := BuildParent(children)
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, parent.RGBAAt(0, 0))
}

func TestBuildParentQuadrantPlacement(t *testing.T) {
	solid := func(c color.RGBA) *image.RGBA {
		img := image.NewRGBA(image.Rect(0, 0, 2, 2))
		for x := 0; x < 2; x++ {
			for y := 0; y < 2; y++ {
				img.SetRGBA(x, y, c)
			}
		}
		return img
	}
	children := [4]*image.RGBA{
		0: solid(color.RGBA{1, 0, 0, 255}),
		1: solid(color.RGBA{2, 0, 0, 255}),
		2: solid(color.RGBA{3, 0, 0, 255}),
		3: solid(color.RGBA{4, 0, 0, 255}),
	}
	parent, err := BuildParent(children)
	require.NoError(t, err)
	assert.Equal(t, uint8(2), parent.RGBAAt(0, 0).R)  // child 1 -> top-left
	assert.Equal(t, uint8(1), parent.RGBAAt(0, 2).R)  // child 0 -> bottom-left
	assert.Equal(t, uint8(4), parent.RGBAAt(2, 0).R)  // child 3 -> top-right
	assert.Equal(t, uint8(3), parent.RGBAAt(2, 2).R)  // child 2 -> bottom-right
}

func TestRasterizeToImageXRayStrategy(t *testing.T) {
	dir := t.TempDir()
	root := geom.Cube{Min: geom.Vec3{}, Edge: 8}

	enc := nodeio.Encoding{Position: encoding.Uint16, Cube: root}
	f, err := os.Create(filepath.Join(dir, nodeio.AttributeFileName(octree.Root().String(), "position")))
	require.NoError(t, err)
	builder := pointdata.NewBatchBuilder()
	builder.Push(pointdata.Point{Position: geom.Vec3{X: 1, Y: 1, Z: 1}})
	builder.Push(pointdata.Point{Position: geom.Vec3{X: 6, Y: 6, Z: 6}})
	require.NoError(t, nodeio.NewNodeWriter(enc, f, nil).Write(builder.Build()))
	require.NoError(t, f.Close())

	meta := &octree.Meta{
		RootCube: root, Resolution: 0.01,
		Nodes:    map[octree.NodeId]uint64{octree.Root(): 2},
		RootPath: dir,
	}
	tree := octree.NewOctree(meta)
	prov := provider.NewLocalProvider(dir)

	bbox := root.Aabb()
	img, seen, err := RasterizeToImage(tree, prov, bbox, RasterizeOptions{Width: 16, Height: 16}, NewXRayStrategy())
	require.NoError(t, err)
	assert.True(t, seen)
	assert.Equal(t, 16, img.Bounds().Dx())
}
