package proto

import (
	"bufio"
	"io"
)

// ReadFrame reads one client-protocol frame from r: a leading VarInt
// length, then exactly that many payload bytes. The leading VarInt is
// read one byte at a time so the caller can interleave this read with a
// cancellable wait on other work (e.g. an outbound queue).
func ReadFrame(r *bufio.Reader) ([]byte, error) {
	length, err := ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	if length < 0 {
		return nil, ErrVarIntTooLong
	}
	buf := make([]byte, length)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}
