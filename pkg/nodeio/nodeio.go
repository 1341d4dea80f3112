// Package nodeio implements the streaming per-node codec (§4.2): one
// file per attribute, little-endian raw columns, read or written
// through the DataProvider abstraction. The on-disk layout and the
// "one cached writer per file, reused across calls" idiom are grounded
// on the grid cell writer in hauke96-simple-osm-queries's
// src/index/grid_writer.go, generalized from OSM cell files to octree
// node-attribute files.
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

// OpenMode controls whether a NodeWriter starts a file fresh or appends
// to whatever is already there -- the distinction the S2 splitter's
// "truncate on first touch only" contract depends on.
type OpenMode int

const (
	Truncate OpenMode = iota
	Append
)

// Encoding describes how to interpret a node's position stream: the
// quantization scheme and the cube it's relative to.
type Encoding struct {
	Position encoding.PositionEncoding
	Cube     geom.Cube
}

// AttributeSpec names an attribute's on-disk shape, carried in
// OctreeMeta and required by the Reader to interpret raw bytes.
type AttributeSpec struct {
	Name     string
	DataType pointdata.AttributeDataType
}

const positionComponents = 3

// NodeReader decodes one node's points from its position stream plus
// zero or more named attribute streams (§4.2's reader contract).
type NodeReader struct {
	enc        Encoding
	position   io.Reader
	attributes map[string]io.Reader
	specs      map[string]AttributeSpec
}

// NewNodeReader constructs a reader over already-open streams; callers
// typically get these from a DataProvider's Data() call, which opens
// everything atomically.
func NewNodeReader(enc Encoding, position io.Reader, attributes map[string]io.Reader, specs map[string]AttributeSpec) *NodeReader {
	return &NodeReader{enc: enc, position: position, attributes: attributes, specs: specs}
}

// ReadBatch decodes up to maxPoints points (or until the position
// stream is exhausted) into a single column batch.
func (r *NodeReader) ReadBatch(maxPoints int) (*pointdata.PointsBatch, error) {
	positions := make([]geom.Vec3, 0, maxPoints)
	width := r.enc.Position.BytesPerComponent()
	buf := make([]byte, width*positionComponents)

	for len(positions) < maxPoints || maxPoints <= 0 {
		if _, err := io.ReadFull(r.position, buf); err != nil {
			if err == io.EOF {
				break
			}
			return nil, werrors.Wrap(werrors.KindMalformedData, err, "short read of position stream")
		}
		p, err := decodePosition(r.enc, buf)
		if err != nil {
			return nil, err
		}
		positions = append(positions, p)
		if maxPoints <= 0 {
			// single-shot "read everything" call: bounded by EOF only,
			// but guard against pathological infinite files.
			if len(positions) > 1<<31 {
				return nil, werrors.New(werrors.KindMalformedData, "position stream too large")
			}
		}
	}

	batch := &pointdata.PointsBatch{Positions: positions, Attributes: map[string]pointdata.AttributeData{}}
	for name, spec := range r.specs {
		stream, ok := r.attributes[name]
		if !ok {
			continue
		}
		data, err := readAttribute(stream, spec.DataType, len(positions))
		if err != nil {
			return nil, werrors.Wrap(werrors.KindMalformedData, err, "attribute "+name)
		}
		batch.Attributes[name] = data
	}
	return batch, nil
}

// ReadAll decodes every point in the node's streams.
func (r *NodeReader) ReadAll() (*pointdata.PointsBatch, error) {
	return r.ReadBatch(0)
}

func decodePosition(enc Encoding, buf []byte) (geom.Vec3, error) {
	width := enc.Position.BytesPerComponent()
	var comps [3]float64
	for i := 0; i < 3; i++ {
		raw := decodeRaw(enc.Position, buf[i*width:(i+1)*width])
		v, err := encoding.DecodeComponent(enc.Position, raw, enc.Cube.Edge)
		if err != nil {
			return geom.Vec3{}, werrors.Wrap(werrors.KindMalformedData, err, "decode position component")
		}
		comps[i] = v
	}
	local := geom.Vec3{X: comps[0], Y: comps[1], Z: comps[2]}
	return enc.Cube.Min.Add(local), nil
}

func decodeRaw(e encoding.PositionEncoding, b []byte) uint32 {
	switch e.BytesPerComponent() {
	case 1:
		return uint32(b[0])
	case 2:
		return uint32(binary.LittleEndian.Uint16(b))
	default:
		return binary.LittleEndian.Uint32(b)
	}
}

func readAttribute(r io.Reader, dt pointdata.AttributeDataType, n int) (pointdata.AttributeData, error) {
	data := pointdata.AttributeData{DataType: dt}
	elemSize := dt.BytesPerElement()
	buf := make([]byte, elemSize)
	readOne := func() ([]byte, error) {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, err
		}
		return buf, nil
	}
	for i := 0; i < n; i++ {
		raw, err := readOne()
		if err != nil {
			return data, err
		}
		switch dt {
		case pointdata.U8:
			data.U8 = append(data.U8, raw[0])
		case pointdata.I64:
			data.I64 = append(data.I64, int64(binary.LittleEndian.Uint64(raw)))
		case pointdata.U64:
			data.U64 = append(data.U64, binary.LittleEndian.Uint64(raw))
		case pointdata.F32:
			data.F32 = append(data.F32, math.Float32frombits(binary.LittleEndian.Uint32(raw)))
		case pointdata.F64:
			data.F64 = append(data.F64, math.Float64frombits(binary.LittleEndian.Uint64(raw)))
		case pointdata.U8Vec3:
			data.U8Vec3 = append(data.U8Vec3, [3]uint8{raw[0], raw[1], raw[2]})
		case pointdata.U8Vec4:
			data.U8Vec4 = append(data.U8Vec4, [4]uint8{raw[0], raw[1], raw[2], raw[3]})
		case pointdata.F64Vec3:
			var v [3]float64
			for c := 0; c < 3; c++ {
				v[c] = math.Float64frombits(binary.LittleEndian.Uint64(raw[c*8 : c*8+8]))
			}
			data.F64Vec3 = append(data.F64Vec3, v)
		}
	}
	return data, nil
}
