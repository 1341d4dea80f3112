package s2split

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/googlecartographer/point-cloud-viewer/internal/geom"
	"github.com/googlecartographer/point-cloud-viewer/pkg/nodeio"
	"github.com/googlecartographer/point-cloud-viewer/pkg/pointdata"
)

// a point roughly on the WGS84 ellipsoid surface, radius comfortably
// inside the valid band.
var validECEF = geom.Vec3{X: 6_371_000, Y: 0, Z: 0}

func TestCheckECEFDomainRejectsOutOfBand(t *testing.T) {
	assert.NoError(t, checkECEFDomain(validECEF))
	assert.Error(t, checkECEFDomain(geom.Vec3{X: 1, Y: 0, Z: 0}))
	assert.Error(t, checkECEFDomain(geom.Vec3{X: 7_000_000, Y: 0, Z: 0}))
}

func TestSplitterWritesAndReadsBackCell(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)

	builder := pointdata.NewBatchBuilder()
	builder.Push(pointdata.Point{Position: validECEF, Color: pointdata.Color{R: 1, G: 2, B: 3}, HasColor: true})
	batch := builder.Build()

	require.NoError(t, s.Write(batch))
	s.Close()

	cell := cellIDFor(validECEF)

	posFile, err := os.Open(filepath.Join(dir, nodeio.AttributeFileName(cell.ToToken(), "position")))
	require.NoError(t, err)
	defer posFile.Close()

	colorFile, err := os.Open(filepath.Join(dir, nodeio.AttributeFileName(cell.ToToken(), "color")))
	require.NoError(t, err)
	defer colorFile.Close()

	specs := map[string]nodeio.AttributeSpec{"color": {Name: "color", DataType: pointdata.U8Vec3}}
	attrs := map[string]io.Reader{"color": colorFile}

	reader := nodeio.NewNodeReader(ecefEncoding, posFile, attrs, specs)
	got, err := reader.ReadAll()
	require.NoError(t, err)
	require.Equal(t, 1, got.NumPoints())
	assert.InDelta(t, validECEF.X, got.Positions[0].X, 1.0)
	c, ok := got.Color(0)
	require.True(t, ok)
	assert.Equal(t, pointdata.Color{R: 1, G: 2, B: 3}, c)
}
