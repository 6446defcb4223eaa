package proto

import "io"

// ReadBytes reads a VarInt byte-length followed by that many raw bytes.
func ReadBytes(r byteReader) ([]byte, error) {
	length, err := ReadVarInt(r)
	if err != nil {
		return nil, ErrVarIntTooLong
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

// WriteBytes writes b as a VarInt byte-length followed by its raw bytes.
func WriteBytes(w byteWriter, b []byte) error {
	if err := WriteVarInt(w, int32(len(b))); err != nil {
		return err
	}
	_, err := w.Write(b)
	return err
}

// BytesSize returns the encoded size of b: its length plus the VarInt
// length prefix.
func BytesSize(b []byte) int {
	return VarIntSize(int32(len(b))) + len(b)
}
