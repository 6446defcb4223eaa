package proto

import (
	"errors"
	"io"
	"strings"
)

// ErrStringTooLong is returned when a string's declared VarInt length
// could not be read, or the reader ran out of bytes before delivering it.
var ErrStringTooLong = errors.New("proto: string length is invalid or too long")

// byteReader is what ReadString needs: single-byte reads for the VarInt
// length prefix, and bulk reads for the payload. Both *bufio.Reader and
// *bytes.Reader satisfy this; callers in this codebase pass one or the other.
type byteReader interface {
	io.Reader
	io.ByteReader
}

// byteWriter is what WriteString needs: single-byte writes for the VarInt
// length prefix, and bulk writes for the payload. *bytes.Buffer satisfies
// this, which is what every caller in this codebase passes.
type byteWriter interface {
	io.Writer
	io.ByteWriter
}

// ReadString reads a VarInt byte-length followed by that many bytes of
// UTF-8. Invalid UTF-8 is tolerated by lossy replacement, matching the
// reference implementation's use of String::from_utf8_lossy; the codec
// itself never rejects a frame for containing invalid UTF-8.
func ReadString(r byteReader) (string, error) {
	length, err := ReadVarInt(r)
	if err != nil {
		return "", ErrStringTooLong
	}
	if length < 0 {
		return "", ErrStringTooLong
	}
	buf := make([]byte, length)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", ErrStringTooLong
	}
	return strings.ToValidUTF8(string(buf), "�"), nil
}

// WriteString writes s as a VarInt byte-length followed by its UTF-8 bytes.
func WriteString(w byteWriter, s string) error {
	b := []byte(s)
	if err := WriteVarInt(w, int32(len(b))); err != nil {
		return err
	}
	_, err := w.Write(b)
	return err
}

// StringSize returns the encoded size of s: its UTF-8 byte length plus the
// VarInt length prefix.
func StringSize(s string) int {
	n := len(s)
	return VarIntSize(int32(n)) + n
}
