// Package encoding implements the per-node position quantization scheme
// (§4.1): each node picks the narrowest of Uint8/Uint16/Float32 that can
// represent its cube at the octree's target resolution, the way the
// S-57 parser picks a scale factor (COMF/SOMF) for its coordinate
// fields, generalized here to a resolution-driven bit-width choice
// instead of a fixed scale.
package encoding

import (
	"math"

	"github.com/pkg/errors"
)

// PositionEncoding names the on-disk representation chosen for a node's
// local-space coordinates, relative to that node's bounding cube.
type PositionEncoding int

const (
	Uint8 PositionEncoding = iota
	Uint16
	Float32
)

func (e PositionEncoding) String() string {
	switch e {
	case Uint8:
		return "uint8"
	case Uint16:
		return "uint16"
	case Float32:
		return "float32"
	default:
		return "unknown"
	}
}

// BytesPerComponent returns the on-disk width of a single encoded axis
// value.
func (e PositionEncoding) BytesPerComponent() int {
	switch e {
	case Uint8:
		return 1
	case Uint16:
		return 2
	case Float32:
		return 4
	default:
		return 0
	}
}

// ChooseEncoding picks the narrowest encoding whose quantization step
// over [0, edgeLength) is at most resolution, per §4.1: bits =
// ceil(log2(edgeLength / resolution)), then the smallest bucket that
// bits fits in.
func ChooseEncoding(edgeLength, resolution float64) PositionEncoding {
	if resolution <= 0 || edgeLength <= 0 {
		return Float32
	}
	bits := math.Ceil(math.Log2(edgeLength / resolution))
	switch {
	case bits <= 8:
		return Uint8
	case bits <= 16:
		return Uint16
	default:
		return Float32
	}
}

// EncodeComponent maps a local-space coordinate in [0, edgeLength) to
// its on-disk representation, returned as a uint32 (Float32 values are
// carried via math.Float32bits so all encodings share a call shape).
func EncodeComponent(e PositionEncoding, value, edgeLength float64) (uint32, error) {
	if edgeLength <= 0 {
		return 0, errors.New("encoding: edge length must be positive")
	}
	switch e {
	case Uint8:
		v := clampedScale(value, edgeLength, math.MaxUint8)
		return uint32(v), nil
	case Uint16:
		v := clampedScale(value, edgeLength, math.MaxUint16)
		return uint32(v), nil
	case Float32:
		return math.Float32bits(float32(value)), nil
	default:
		return 0, errors.Errorf("encoding: unknown position encoding %d", e)
	}
}

// DecodeComponent inverts EncodeComponent, returning a local-space
// coordinate in [0, edgeLength).
func DecodeComponent(e PositionEncoding, raw uint32, edgeLength float64) (float64, error) {
	switch e {
	case Uint8:
		return float64(raw) / math.MaxUint8 * edgeLength, nil
	case Uint16:
		return float64(raw) / math.MaxUint16 * edgeLength, nil
	case Float32:
		return float64(math.Float32frombits(raw)), nil
	default:
		return 0, errors.Errorf("encoding: unknown position encoding %d", e)
	}
}

func clampedScale(value, edgeLength float64, max uint32) uint32 {
	if value < 0 {
		value = 0
	}
	if value > edgeLength {
		value = edgeLength
	}
	scaled := value / edgeLength * float64(max)
	return uint32(math.Round(scaled))
}
