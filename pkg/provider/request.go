package provider

import (
	"bytes"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/googlecartographer/point-cloud-viewer/pkg/octree"
)

// Field numbers for the GetNodeData request: level, index_within_level,
// attribute name.
const (
	reqFieldLevel     = 1
	reqFieldIndex     = 2
	reqFieldAttribute = 3
)

func encodeNodeDataRequest(id octree.NodeId, attribute string) []byte {
	var b []byte
	b = protowire.AppendTag(b, reqFieldLevel, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(id.Level))
	b = protowire.AppendTag(b, reqFieldIndex, protowire.VarintType)
	b = protowire.AppendVarint(b, id.IndexWithinLevel)
	b = protowire.AppendTag(b, reqFieldAttribute, protowire.BytesType)
	b = protowire.AppendString(b, attribute)
	return b
}

func newByteReader(b []byte) *bytes.Reader {
	return bytes.NewReader(b)
}
