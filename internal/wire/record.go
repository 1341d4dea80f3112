package wire

import (
	"encoding/binary"
	"io"

	"github.com/googlecartographer/point-cloud-viewer/internal/werrors"
)

// WriteLengthPrefixed writes a 4-byte little-endian length prefix
// followed by payload, the "length-prefixed structured record" shape
// §3 and §6 specify for meta.pb.
func WriteLengthPrefixed(w io.Writer, payload []byte) error {
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(payload)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return werrors.Wrap(werrors.KindIo, err, "write record length")
	}
	if _, err := w.Write(payload); err != nil {
		return werrors.Wrap(werrors.KindIo, err, "write record payload")
	}
	return nil
}

// ReadLengthPrefixed reads one length-prefixed record back.
func ReadLengthPrefixed(r io.Reader) ([]byte, error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return nil, werrors.Wrap(werrors.KindMalformedData, err, "read record length")
	}
	n := binary.LittleEndian.Uint32(lenBuf[:])
	payload := make([]byte, n)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, werrors.Wrap(werrors.KindMalformedData, err, "read record payload")
	}
	return payload, nil
}
