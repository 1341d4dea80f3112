package nodeio

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/googlecartographer/point-cloud-viewer/internal/encoding"
	"github.com/googlecartographer/point-cloud-viewer/internal/geom"
	"github.com/googlecartographer/point-cloud-viewer/pkg/pointdata"
)

func TestWriteThenReadRoundTrip(t *testing.T) {
	cube := geom.Cube{Min: geom.Vec3{X: 0, Y: 0, Z: 0}, Edge: 10}
	enc := Encoding{Position: encoding.Uint16, Cube: cube}

	builder := pointdata.NewBatchBuilder()
	builder.Push(pointdata.Point{Position: geom.Vec3{X: 1, Y: 2, Z: 3}, Color: pointdata.Color{R: 10, G: 20, B: 30}, HasColor: true})
	builder.Push(pointdata.Point{Position: geom.Vec3{X: 4, Y: 5, Z: 6}, Color: pointdata.Color{R: 40, G: 50, B: 60}, HasColor: true})
	batch := builder.Build()

	var posBuf, colorBuf bytes.Buffer
	w := NewNodeWriter(enc, &posBuf, map[string]io.Writer{"color": &colorBuf})
	require.NoError(t, w.Write(batch))

	specs := map[string]AttributeSpec{"color": {Name: "color", DataType: pointdata.U8Vec3}}
	reader := NewNodeReader(enc, &posBuf, map[string]io.Reader{"color": &colorBuf}, specs)
	got, err := reader.ReadAll()
	require.NoError(t, err)
	require.Equal(t, 2, got.NumPoints())

	assert.InDelta(t, 1.0, got.Positions[0].X, 0.01)
	assert.InDelta(t, 5.0, got.Positions[1].Y, 0.01)

	c, ok := got.Color(0)
	require.True(t, ok)
	assert.Equal(t, uint8(10), c.R)
}
