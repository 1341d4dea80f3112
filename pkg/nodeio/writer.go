package nodeio

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/googlecartographer/point-cloud-viewer/internal/encoding"
	"github.com/googlecartographer/point-cloud-viewer/internal/geom"
	"github.com/googlecartographer/point-cloud-viewer/internal/werrors"
	"github.com/googlecartographer/point-cloud-viewer/pkg/pointdata"
)

// NodeWriter encodes a node's points to its position stream plus
// whatever named attribute streams the batch carries. Every Write call
// derives each attribute's on-disk type from the batch itself; the
// writer keeps no per-attribute state between calls.
type NodeWriter struct {
	enc        Encoding
	position   io.Writer
	attributes map[string]io.Writer
}

// NewNodeWriter constructs a writer over already-open streams.
func NewNodeWriter(enc Encoding, position io.Writer, attributes map[string]io.Writer) *NodeWriter {
	return &NodeWriter{enc: enc, position: position, attributes: attributes}
}

// Write appends every point in batch to the underlying streams.
func (w *NodeWriter) Write(batch *pointdata.PointsBatch) error {
	width := w.enc.Position.BytesPerComponent()
	buf := make([]byte, width*positionComponents)

	for i, p := range batch.Positions {
		local := p.Sub(w.enc.Cube.Min)
		if err := encodePositionInto(buf, w.enc, local); err != nil {
			return err
		}
		if _, err := w.position.Write(buf); err != nil {
			return werrors.Wrap(werrors.KindIo, err, "write position")
		}
		for name, attr := range batch.Attributes {
			stream, ok := w.attributes[name]
			if !ok {
				continue
			}
			if err := writeAttributeElement(stream, attr, i); err != nil {
				return werrors.Wrap(werrors.KindIo, err, "write attribute "+name)
			}
		}
	}
	return nil
}

func encodePositionInto(buf []byte, enc Encoding, local geom.Vec3) error {
	width := enc.Position.BytesPerComponent()
	comps := [3]float64{local.X, local.Y, local.Z}
	for i := 0; i < 3; i++ {
		raw, err := encoding.EncodeComponent(enc.Position, comps[i], enc.Cube.Edge)
		if err != nil {
			return werrors.Wrap(werrors.KindMalformedData, err, "encode position component")
		}
		encodeRaw(enc.Position, buf[i*width:(i+1)*width], raw)
	}
	return nil
}

func encodeRaw(e encoding.PositionEncoding, b []byte, raw uint32) {
	switch e.BytesPerComponent() {
	case 1:
		b[0] = byte(raw)
	case 2:
		binary.LittleEndian.PutUint16(b, uint16(raw))
	default:
		binary.LittleEndian.PutUint32(b, raw)
	}
}

func writeAttributeElement(w io.Writer, attr pointdata.AttributeData, i int) error {
	switch attr.DataType {
	case pointdata.U8:
		_, err := w.Write([]byte{attr.U8[i]})
		return err
	case pointdata.I64:
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], uint64(attr.I64[i]))
		_, err := w.Write(b[:])
		return err
	case pointdata.U64:
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], attr.U64[i])
		_, err := w.Write(b[:])
		return err
	case pointdata.F32:
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], math.Float32bits(attr.F32[i]))
		_, err := w.Write(b[:])
		return err
	case pointdata.F64:
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], math.Float64bits(attr.F64[i]))
		_, err := w.Write(b[:])
		return err
	case pointdata.U8Vec3:
		v := attr.U8Vec3[i]
		_, err := w.Write([]byte{v[0], v[1], v[2]})
		return err
	case pointdata.U8Vec4:
		v := attr.U8Vec4[i]
		_, err := w.Write([]byte{v[0], v[1], v[2], v[3]})
		return err
	case pointdata.F64Vec3:
		v := attr.F64Vec3[i]
		var b [24]byte
		for c := 0; c < 3; c++ {
			binary.LittleEndian.PutUint64(b[c*8:c*8+8], math.Float64bits(v[c]))
		}
		_, err := w.Write(b[:])
		return err
	default:
		return nil
	}
}
