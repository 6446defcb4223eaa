package proto_test

import (
	"bufio"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.makar.dev/proxy/pkg/proto"
)

func TestStringRoundTrip(t *testing.T) {
	values := []string{"", "alice", "héllo wörld", "日本語"}
	for _, v := range values {
		var buf bytes.Buffer
		require.NoError(t, proto.WriteString(&buf, v))
		assert.Equal(t, proto.StringSize(v), buf.Len())

		got, err := proto.ReadString(bufio.NewReader(&buf))
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestStringLossyUTF8(t *testing.T) {
	var buf bytes.Buffer
	invalid := []byte{0xff, 0xfe, 'h', 'i'}
	require.NoError(t, proto.WriteVarInt(&buf, int32(len(invalid))))
	buf.Write(invalid)

	got, err := proto.ReadString(bufio.NewReader(&buf))
	require.NoError(t, err)
	assert.Contains(t, got, "hi")
}
