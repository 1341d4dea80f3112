package pointdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/googlecartographer/point-cloud-viewer/internal/geom"
)

func TestBatchBuilderPreservesAlphaWhenPresent(t *testing.T) {
	b := NewBatchBuilder()
	b.Push(Point{Position: geom.Vec3{X: 1}, Color: Color{R: 1, G: 2, B: 3, A: 200}, HasColor: true, ColorHasAlpha: true})
	b.Push(Point{Position: geom.Vec3{X: 2}, Color: Color{R: 4, G: 5, B: 6}, HasColor: true})

	batch := b.Build()
	attr, ok := batch.Attributes["color"]
	require.True(t, ok)
	assert.Equal(t, U8Vec4, attr.DataType)

	c0, ok := batch.Color(0)
	require.True(t, ok)
	assert.Equal(t, Color{R: 1, G: 2, B: 3, A: 200}, c0)

	p1 := batch.Point(1)
	assert.True(t, p1.ColorHasAlpha)
}

func TestBatchBuilderDropsAlphaColumnWhenNeverPresent(t *testing.T) {
	b := NewBatchBuilder()
	b.Push(Point{Position: geom.Vec3{X: 1}, Color: Color{R: 9, G: 8, B: 7}, HasColor: true})

	batch := b.Build()
	attr, ok := batch.Attributes["color"]
	require.True(t, ok)
	assert.Equal(t, U8Vec3, attr.DataType)

	p0 := batch.Point(0)
	assert.False(t, p0.ColorHasAlpha)
}
