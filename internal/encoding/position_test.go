package encoding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChooseEncodingPicksNarrowest(t *testing.T) {
	assert.Equal(t, Uint8, ChooseEncoding(1.0, 0.01))
	assert.Equal(t, Uint16, ChooseEncoding(1.0, 0.0001))
	assert.Equal(t, Float32, ChooseEncoding(1.0, 1e-12))
}

func TestEncodeDecodeRoundTripBoundedError(t *testing.T) {
	edge := 2.0
	resolution := 0.01
	enc := ChooseEncoding(edge, resolution)

	value := 1.2345
	raw, err := EncodeComponent(enc, value, edge)
	require.NoError(t, err)
	back, err := DecodeComponent(enc, raw, edge)
	require.NoError(t, err)

	assert.InDelta(t, value, back, resolution)
}

func TestEncodeClampsOutOfRange(t *testing.T) {
	raw, err := EncodeComponent(Uint8, -5, 10)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), raw)

	raw, err = EncodeComponent(Uint8, 50, 10)
	require.NoError(t, err)
	assert.Equal(t, uint32(255), raw)
}
