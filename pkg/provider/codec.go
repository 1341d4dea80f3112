package provider

import (
	"google.golang.org/grpc/encoding"
)

// rawCodec name registered with grpc's codec registry so RemoteProvider
// can send/receive already-serialized []byte payloads (this module's
// own wire.EncodeMeta / node-attribute bytes) without generating full
// protoc message types for the transport layer, which is out of scope
// per spec.md §1 -- only the metadata record's wire shape matters here.
const rawCodecName = "raw"

type rawCodec struct{}

func (rawCodec) Marshal(v interface{}) ([]byte, error) {
	switch b := v.(type) {
	case []byte:
		return b, nil
	case *[]byte:
		return *b, nil
	default:
		return nil, errUnsupportedRawMessage
	}
}

func (rawCodec) Unmarshal(data []byte, v interface{}) error {
	switch b := v.(type) {
	case *[]byte:
		*b = append((*b)[:0], data...)
		return nil
	default:
		return errUnsupportedRawMessage
	}
}

func (rawCodec) Name() string { return rawCodecName }

func init() {
	encoding.RegisterCodec(rawCodec{})
}
