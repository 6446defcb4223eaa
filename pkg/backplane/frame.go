// Package backplane implements the wire protocol between the proxy and
// the single upstream application server: a big-endian u32 length prefix
// followed by a compact tagged-variant payload. Framing and payload
// encoding are kept in separate functions so either layer can change
// independently, per the proxy's own design notes.
package backplane

import (
	"encoding/binary"
	"io"
)

// ReadFrame reads one backplane message: a 4-byte big-endian length, then
// exactly that many payload bytes.
func ReadFrame(r io.Reader) ([]byte, error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return nil, err
	}
	length := binary.BigEndian.Uint32(lenBuf[:])
	buf := make([]byte, length)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// WriteFrame writes payload as one backplane message: its 4-byte
// big-endian length, then the payload itself.
func WriteFrame(w io.Writer, payload []byte) error {
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(payload)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return err
	}
	_, err := w.Write(payload)
	return err
}
