package backplane

import (
	"io"

	"github.com/google/uuid"
)

// writeUUID writes id as its 16 raw bytes (the 128-bit player id).
func writeUUID(w io.Writer, id uuid.UUID) error {
	_, err := w.Write(id[:])
	return err
}

// readUUID reads 16 raw bytes into a player id.
func readUUID(r io.Reader) (uuid.UUID, error) {
	var buf [16]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return uuid.UUID{}, err
	}
	return uuid.FromBytes(buf[:])
}
