package serverbound_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.makar.dev/proxy/pkg/proto"
	"go.makar.dev/proxy/pkg/proto/packet/serverbound"
	"go.makar.dev/proxy/pkg/proto/state"
)

func encodePayload(t *testing.T, id int32, fields func(buf *bytes.Buffer)) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, proto.WriteVarInt(&buf, id))
	fields(&buf)
	return buf.Bytes()
}

func TestDecodeHandshake(t *testing.T) {
	payload := encodePayload(t, 0x00, func(buf *bytes.Buffer) {
		require.NoError(t, proto.WriteVarInt(buf, 47))
		require.NoError(t, proto.WriteString(buf, "localhost"))
		require.NoError(t, proto.WriteUint16(buf, 25565))
		require.NoError(t, proto.WriteUint8(buf, 2))
	})

	pkt, err := serverbound.DecodeFrame(state.Handshake, payload)
	require.NoError(t, err)
	hs, ok := pkt.(serverbound.Handshake)
	require.True(t, ok)
	assert.Equal(t, int32(47), hs.Protocol)
	assert.Equal(t, "localhost", hs.Address)
	assert.Equal(t, uint16(25565), hs.Port)
	assert.Equal(t, uint8(2), hs.NextState)
}

func TestDecodeHandshakeUnknownNextState(t *testing.T) {
	payload := encodePayload(t, 0x00, func(buf *bytes.Buffer) {
		require.NoError(t, proto.WriteVarInt(buf, 47))
		require.NoError(t, proto.WriteString(buf, "localhost"))
		require.NoError(t, proto.WriteUint16(buf, 25565))
		require.NoError(t, proto.WriteUint8(buf, 9))
	})

	_, err := serverbound.DecodeFrame(state.Handshake, payload)
	assert.ErrorIs(t, err, serverbound.ErrUnknownNextState)
}

func TestDecodeStatusRequestAndPing(t *testing.T) {
	reqPayload := encodePayload(t, 0x00, func(buf *bytes.Buffer) {})
	pkt, err := serverbound.DecodeFrame(state.Status, reqPayload)
	require.NoError(t, err)
	assert.Equal(t, serverbound.StatusRequest{}, pkt)

	pingPayload := encodePayload(t, 0x01, func(buf *bytes.Buffer) {
		require.NoError(t, proto.WriteUint64(buf, 0x0123456789abcdef))
	})
	pkt, err = serverbound.DecodeFrame(state.Status, pingPayload)
	require.NoError(t, err)
	ping, ok := pkt.(serverbound.StatusPing)
	require.True(t, ok)
	assert.Equal(t, uint64(0x0123456789abcdef), ping.Payload)
}

func TestDecodeLoginStart(t *testing.T) {
	payload := encodePayload(t, 0x00, func(buf *bytes.Buffer) {
		require.NoError(t, proto.WriteString(buf, "alice"))
	})
	pkt, err := serverbound.DecodeFrame(state.Login, payload)
	require.NoError(t, err)
	login, ok := pkt.(serverbound.LoginStart)
	require.True(t, ok)
	assert.Equal(t, "alice", login.Name)
}

func TestDecodePlayPackets(t *testing.T) {
	chatPayload := encodePayload(t, 0x01, func(buf *bytes.Buffer) {
		require.NoError(t, proto.WriteString(buf, "hello"))
	})
	pkt, err := serverbound.DecodeFrame(state.Play, chatPayload)
	require.NoError(t, err)
	assert.Equal(t, serverbound.ChatMessage{Message: "hello"}, pkt)

	posLookPayload := encodePayload(t, 0x06, func(buf *bytes.Buffer) {
		require.NoError(t, proto.WriteFloat64(buf, 1.0))
		require.NoError(t, proto.WriteFloat64(buf, 64.0))
		require.NoError(t, proto.WriteFloat64(buf, -2.0))
		require.NoError(t, proto.WriteFloat32(buf, 90.0))
		require.NoError(t, proto.WriteFloat32(buf, 0.0))
		require.NoError(t, proto.WriteUint8(buf, 1))
	})
	pkt, err = serverbound.DecodeFrame(state.Play, posLookPayload)
	require.NoError(t, err)
	pl, ok := pkt.(serverbound.PlayerPositionAndLook)
	require.True(t, ok)
	assert.Equal(t, 1.0, pl.X)
	assert.Equal(t, float32(90.0), pl.Yaw)
	assert.Equal(t, uint8(1), pl.OnGround)
}

func TestDecodeUnknownPacket(t *testing.T) {
	payload := encodePayload(t, 0x7f, func(buf *bytes.Buffer) {})
	_, err := serverbound.DecodeFrame(state.Play, payload)
	assert.ErrorIs(t, err, serverbound.ErrUnknownPacket)

	_, err = serverbound.DecodeFrame(state.State(99), payload)
	assert.ErrorIs(t, err, serverbound.ErrUnknownPacket)
}
