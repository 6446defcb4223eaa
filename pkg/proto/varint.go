// Package proto implements the client-protocol wire codec: VarInt/VarLong
// framing, length-prefixed strings, fixed-endian primitives, and the Chat
// JSON format. It has no knowledge of sockets or actors.
package proto

import (
	"errors"
	"io"
)

// ErrVarIntTooLong is returned when a VarInt has consumed 5 bytes and the
// last of them still has the continuation bit set.
var ErrVarIntTooLong = errors.New("proto: VarInt is too long")

// ErrVarLongTooLong is returned when a VarLong has consumed 10 bytes and
// the last of them still has the continuation bit set.
var ErrVarLongTooLong = errors.New("proto: VarLong is too long")

const (
	maxVarIntBytes  = 5
	maxVarLongBytes = 10
)

// ReadVarInt reads a 7-bit little-endian continuation-encoded int32 from r.
//
// The accumulator is built in uint32 space so that values whose sign bit
// ends up set (i.e. all negative int32s) still round-trip: the client
// protocol transmits negative VarInts as full 5-byte sequences, which only
// falls out correctly if the decoder never treats an intermediate
// accumulator as "negative, therefore done".
func ReadVarInt(r io.ByteReader) (int32, error) {
	var result uint32
	var shift uint
	for i := 0; i < maxVarIntBytes; i++ {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		result |= uint32(b&0x7F) << shift
		if b&0x80 == 0 {
			return int32(result), nil
		}
		shift += 7
	}
	return 0, ErrVarIntTooLong
}

// WriteVarInt writes value to w using the client protocol's VarInt
// encoding. The spec requires the "value >= 0x80" continuation test
// applied to the remaining unsigned magnitude, not the buggy
// "(value & 0x80) == 0x80" form some historical snapshots used.
func WriteVarInt(w io.ByteWriter, value int32) error {
	uv := uint32(value)
	for {
		b := byte(uv & 0x7F)
		uv >>= 7
		if uv != 0 {
			if err := w.WriteByte(b | 0x80); err != nil {
				return err
			}
			continue
		}
		return w.WriteByte(b)
	}
}

// VarIntSize returns the number of bytes WriteVarInt would emit for value.
func VarIntSize(value int32) int {
	uv := uint32(value)
	size := 1
	for uv >= 0x80 {
		uv >>= 7
		size++
	}
	return size
}

// ReadVarLong reads a 7-bit little-endian continuation-encoded int64 from r.
func ReadVarLong(r io.ByteReader) (int64, error) {
	var result uint64
	var shift uint
	for i := 0; i < maxVarLongBytes; i++ {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		result |= uint64(b&0x7F) << shift
		if b&0x80 == 0 {
			return int64(result), nil
		}
		shift += 7
	}
	return 0, ErrVarLongTooLong
}

// WriteVarLong writes value to w using the client protocol's VarLong encoding.
func WriteVarLong(w io.ByteWriter, value int64) error {
	uv := uint64(value)
	for {
		b := byte(uv & 0x7F)
		uv >>= 7
		if uv != 0 {
			if err := w.WriteByte(b | 0x80); err != nil {
				return err
			}
			continue
		}
		return w.WriteByte(b)
	}
}

// VarLongSize returns the number of bytes WriteVarLong would emit for value.
func VarLongSize(value int64) int {
	uv := uint64(value)
	size := 1
	for uv >= 0x80 {
		uv >>= 7
		size++
	}
	return size
}
