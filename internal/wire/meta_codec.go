// Package wire implements the length-prefixed wire codec for the
// octree's on-disk/on-wire metadata record (§3, §6's "meta.pb"). It
// encodes directly with google.golang.org/protobuf's low-level
// protowire primitives rather than full protoc-generated message
// types, since the RPC/transport surface is an external collaborator
// per spec.md §1 -- only this record's wire shape is this module's
// concern, grounded in the protobuf-as-wire-format idiom used by
// banshee-data-velocity.report's grpc_server.go.
package wire

import (
	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/googlecartographer/point-cloud-viewer/internal/geom"
	"github.com/googlecartographer/point-cloud-viewer/internal/werrors"
	"github.com/googlecartographer/point-cloud-viewer/pkg/nodeio"
	"github.com/googlecartographer/point-cloud-viewer/pkg/octree"
	"github.com/googlecartographer/point-cloud-viewer/pkg/pointdata"
)

// Field numbers for the top-level OctreeMeta record.
const (
	fieldVersion    = 1
	fieldRootCube   = 2
	fieldResolution = 3
	fieldAttributes = 4
	fieldNodes      = 5
	fieldRootPath   = 6
)

// Field numbers for the nested Cube submessage.
const (
	cubeFieldMinX = 1
	cubeFieldMinY = 2
	cubeFieldMinZ = 3
	cubeFieldEdge = 4
)

// Field numbers for the nested AttributeSpec submessage.
const (
	attrFieldName     = 1
	attrFieldDataType = 2
)

// Field numbers for the nested Node submessage.
const (
	nodeFieldLevel     = 1
	nodeFieldIndex     = 2
	nodeFieldNumPoints = 3
)

// EncodeMeta serializes an octree Meta into the record payload written
// to "meta.pb"; the length prefix is added by WriteLengthPrefixed.
func EncodeMeta(meta *octree.Meta) []byte {
	var b []byte
	b = protowire.AppendTag(b, fieldVersion, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(meta.Version))

	b = protowire.AppendTag(b, fieldRootCube, protowire.BytesType)
	b = protowire.AppendBytes(b, encodeCube(meta.RootCube))

	b = protowire.AppendTag(b, fieldResolution, protowire.Fixed64Type)
	b = protowire.AppendFixed64(b, doubleBits(meta.Resolution))

	for _, attr := range meta.Attributes {
		b = protowire.AppendTag(b, fieldAttributes, protowire.BytesType)
		b = protowire.AppendBytes(b, encodeAttributeSpec(attr))
	}

	for id, count := range meta.Nodes {
		b = protowire.AppendTag(b, fieldNodes, protowire.BytesType)
		b = protowire.AppendBytes(b, encodeNode(id, count))
	}

	b = protowire.AppendTag(b, fieldRootPath, protowire.BytesType)
	b = protowire.AppendString(b, meta.RootPath)

	return b
}

func encodeCube(c geom.Cube) []byte {
	var b []byte
	b = protowire.AppendTag(b, cubeFieldMinX, protowire.Fixed64Type)
	b = protowire.AppendFixed64(b, doubleBits(c.Min.X))
	b = protowire.AppendTag(b, cubeFieldMinY, protowire.Fixed64Type)
	b = protowire.AppendFixed64(b, doubleBits(c.Min.Y))
	b = protowire.AppendTag(b, cubeFieldMinZ, protowire.Fixed64Type)
	b = protowire.AppendFixed64(b, doubleBits(c.Min.Z))
	b = protowire.AppendTag(b, cubeFieldEdge, protowire.Fixed64Type)
	b = protowire.AppendFixed64(b, doubleBits(c.Edge))
	return b
}

func encodeAttributeSpec(a nodeio.AttributeSpec) []byte {
	var b []byte
	b = protowire.AppendTag(b, attrFieldName, protowire.BytesType)
	b = protowire.AppendString(b, a.Name)
	b = protowire.AppendTag(b, attrFieldDataType, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(a.DataType))
	return b
}

func encodeNode(id octree.NodeId, count uint64) []byte {
	var b []byte
	b = protowire.AppendTag(b, nodeFieldLevel, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(id.Level))
	b = protowire.AppendTag(b, nodeFieldIndex, protowire.VarintType)
	b = protowire.AppendVarint(b, id.IndexWithinLevel)
	b = protowire.AppendTag(b, nodeFieldNumPoints, protowire.VarintType)
	b = protowire.AppendVarint(b, count)
	return b
}

// DecodeMeta parses a record payload produced by EncodeMeta (without
// its length prefix; see ReadLengthPrefixed).
func DecodeMeta(data []byte) (*octree.Meta, error) {
	meta := &octree.Meta{Nodes: map[octree.NodeId]uint64{}}
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, werrors.Wrap(werrors.KindMalformedData, errors.New("bad tag"), "decode meta")
		}
		b = b[n:]
		switch num {
		case fieldVersion:
			v, n, err := consumeVarint(b, typ)
			if err != nil {
				return nil, err
			}
			if v != octree.MetaVersion {
				return nil, werrors.New(werrors.KindMalformedData, "decode meta: unsupported version")
			}
			meta.Version = int(v)
			b = b[n:]
		case fieldRootCube:
			raw, n, err := consumeBytes(b, typ)
			if err != nil {
				return nil, err
			}
			cube, err := decodeCube(raw)
			if err != nil {
				return nil, err
			}
			meta.RootCube = cube
			b = b[n:]
		case fieldResolution:
			v, n, err := consumeFixed64(b, typ)
			if err != nil {
				return nil, err
			}
			meta.Resolution = doubleFromBits(v)
			b = b[n:]
		case fieldAttributes:
			raw, n, err := consumeBytes(b, typ)
			if err != nil {
				return nil, err
			}
			attr, err := decodeAttributeSpec(raw)
			if err != nil {
				return nil, err
			}
			meta.Attributes = append(meta.Attributes, attr)
			b = b[n:]
		case fieldNodes:
			raw, n, err := consumeBytes(b, typ)
			if err != nil {
				return nil, err
			}
			id, count, err := decodeNode(raw)
			if err != nil {
				return nil, err
			}
			meta.Nodes[id] = count
			b = b[n:]
		case fieldRootPath:
			raw, n, err := consumeBytes(b, typ)
			if err != nil {
				return nil, err
			}
			meta.RootPath = string(raw)
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, werrors.New(werrors.KindMalformedData, "decode meta: unknown field value")
			}
			b = b[n:]
		}
	}
	return meta, nil
}

func consumeVarint(b []byte, typ protowire.Type) (uint64, int, error) {
	if typ != protowire.VarintType {
		return 0, 0, werrors.New(werrors.KindMalformedData, "expected varint field")
	}
	v, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return 0, 0, werrors.New(werrors.KindMalformedData, "truncated varint")
	}
	return v, n, nil
}

func consumeFixed64(b []byte, typ protowire.Type) (uint64, int, error) {
	if typ != protowire.Fixed64Type {
		return 0, 0, werrors.New(werrors.KindMalformedData, "expected fixed64 field")
	}
	v, n := protowire.ConsumeFixed64(b)
	if n < 0 {
		return 0, 0, werrors.New(werrors.KindMalformedData, "truncated fixed64")
	}
	return v, n, nil
}

func consumeBytes(b []byte, typ protowire.Type) ([]byte, int, error) {
	if typ != protowire.BytesType {
		return nil, 0, werrors.New(werrors.KindMalformedData, "expected length-delimited field")
	}
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return nil, 0, werrors.New(werrors.KindMalformedData, "truncated bytes field")
	}
	return v, n, nil
}

func decodeCube(data []byte) (geom.Cube, error) {
	var c geom.Cube
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return c, werrors.New(werrors.KindMalformedData, "decode cube: bad tag")
		}
		b = b[n:]
		v, n, err := consumeFixed64(b, typ)
		if err != nil {
			return c, err
		}
		b = b[n:]
		switch num {
		case cubeFieldMinX:
			c.Min.X = doubleFromBits(v)
		case cubeFieldMinY:
			c.Min.Y = doubleFromBits(v)
		case cubeFieldMinZ:
			c.Min.Z = doubleFromBits(v)
		case cubeFieldEdge:
			c.Edge = doubleFromBits(v)
		}
	}
	return c, nil
}

func decodeAttributeSpec(data []byte) (nodeio.AttributeSpec, error) {
	var a nodeio.AttributeSpec
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return a, werrors.New(werrors.KindMalformedData, "decode attribute: bad tag")
		}
		b = b[n:]
		switch num {
		case attrFieldName:
			raw, n, err := consumeBytes(b, typ)
			if err != nil {
				return a, err
			}
			a.Name = string(raw)
			b = b[n:]
		case attrFieldDataType:
			v, n, err := consumeVarint(b, typ)
			if err != nil {
				return a, err
			}
			a.DataType = pointdata.AttributeDataType(v)
			b = b[n:]
		}
	}
	return a, nil
}

func decodeNode(data []byte) (octree.NodeId, uint64, error) {
	var id octree.NodeId
	var count uint64
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return id, 0, werrors.New(werrors.KindMalformedData, "decode node: bad tag")
		}
		b = b[n:]
		v, n, err := consumeVarint(b, typ)
		if err != nil {
			return id, 0, err
		}
		b = b[n:]
		switch num {
		case nodeFieldLevel:
			id.Level = int(v)
		case nodeFieldIndex:
			id.IndexWithinLevel = v
		case nodeFieldNumPoints:
			count = v
		}
	}
	return id, count, nil
}
