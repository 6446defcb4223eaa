package proto_test

import (
	"bufio"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.makar.dev/proxy/pkg/proto"
)

func TestReadFrame(t *testing.T) {
	var src bytes.Buffer
	require.NoError(t, proto.WriteVarInt(&src, 3))
	src.Write([]byte{0x01, 0x02, 0x03})

	got, err := proto.ReadFrame(bufio.NewReader(&src))
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x02, 0x03}, got)
}

func TestReadFrameTruncated(t *testing.T) {
	var src bytes.Buffer
	require.NoError(t, proto.WriteVarInt(&src, 5))
	src.Write([]byte{0x01})

	_, err := proto.ReadFrame(bufio.NewReader(&src))
	assert.Error(t, err)
}
