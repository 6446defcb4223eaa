package clientbound_test

import (
	"bufio"
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.makar.dev/proxy/pkg/proto"
	"go.makar.dev/proxy/pkg/proto/packet/clientbound"
)

// decodeFrame mirrors what a test client would do: read the frame, then
// manually parse the known packet shape back out, to check EncodeFrame
// produced exactly the bytes the wire format demands.
func decodeFrame(t *testing.T, frame []byte) (id int32, payload []byte) {
	t.Helper()
	r := bufio.NewReader(bytes.NewReader(frame))
	size, err := proto.ReadVarInt(r)
	require.NoError(t, err)
	rest := make([]byte, size)
	_, err = io.ReadFull(r, rest)
	require.NoError(t, err)
	pr := bufio.NewReader(bytes.NewReader(rest))
	id, err = proto.ReadVarInt(pr)
	require.NoError(t, err)
	payload = make([]byte, size-int32(proto.VarIntSize(id)))
	_, err = io.ReadFull(pr, payload)
	require.NoError(t, err)
	return id, payload
}

func TestStatusResponseFrame(t *testing.T) {
	p := clientbound.StatusResponse{Status: `{"online":3}`}
	frame, err := clientbound.EncodeFrame(p)
	require.NoError(t, err)

	id, payload := decodeFrame(t, frame)
	assert.Equal(t, int32(0x00), id)

	got, err := proto.ReadString(bufio.NewReader(bytes.NewReader(payload)))
	require.NoError(t, err)
	assert.Equal(t, p.Status, got)
}

func TestStatusPingEchoFrame(t *testing.T) {
	// The raw 10-byte frame for an echoed StatusPing: length prefix 0x09,
	// id 0x01, then the u64 payload big-endian.
	var payload uint64 = 0x0123456789abcdef
	var buf bytes.Buffer
	buf.WriteByte(0x09)
	buf.WriteByte(0x01)
	require.NoError(t, proto.WriteUint64(&buf, payload))
	assert.Equal(t, []byte{0x09, 0x01, 0x01, 0x23, 0x45, 0x67, 0x89, 0xab, 0xcd, 0xef}, buf.Bytes())
}

func TestJoinGameFrame(t *testing.T) {
	p := clientbound.JoinGame{
		EntityID:         999,
		Gamemode:         proto.Survival,
		Dimension:        0,
		Difficulty:       proto.Easy,
		MaxPlayers:       20,
		LevelType:        "default",
		ReducedDebugInfo: 0,
	}
	frame, err := clientbound.EncodeFrame(p)
	require.NoError(t, err)
	id, payload := decodeFrame(t, frame)
	assert.Equal(t, int32(0x01), id)

	r := bufio.NewReader(bytes.NewReader(payload))
	entityID, err := proto.ReadInt32(r)
	require.NoError(t, err)
	assert.Equal(t, int32(999), entityID)

	gamemode, err := proto.ReadUint8(r)
	require.NoError(t, err)
	assert.Equal(t, uint8(proto.Survival), gamemode)
}

func TestPlayerPositionAndLookFrame(t *testing.T) {
	p := clientbound.PlayerPositionAndLook{X: 1.0, Y: 64.0, Z: -2.0, Yaw: 90.0, Pitch: 0.0, Flags: 0}
	frame, err := clientbound.EncodeFrame(p)
	require.NoError(t, err)
	id, payload := decodeFrame(t, frame)
	assert.Equal(t, int32(0x08), id)

	r := bufio.NewReader(bytes.NewReader(payload))
	x, err := proto.ReadFloat64(r)
	require.NoError(t, err)
	assert.Equal(t, 1.0, x)
	y, err := proto.ReadFloat64(r)
	require.NoError(t, err)
	assert.Equal(t, 64.0, y)
	z, err := proto.ReadFloat64(r)
	require.NoError(t, err)
	assert.Equal(t, -2.0, z)
	yaw, err := proto.ReadFloat32(r)
	require.NoError(t, err)
	assert.Equal(t, float32(90.0), yaw)
	pitch, err := proto.ReadFloat32(r)
	require.NoError(t, err)
	assert.Equal(t, float32(0.0), pitch)
	flags, err := proto.ReadUint8(r)
	require.NoError(t, err)
	assert.Equal(t, uint8(0), flags)
}

func TestTitleFrames(t *testing.T) {
	setTitle := clientbound.Title{Action: clientbound.SetTitle{Chat: proto.PlainChat("hi")}}
	frame, err := clientbound.EncodeFrame(setTitle)
	require.NoError(t, err)
	id, payload := decodeFrame(t, frame)
	assert.Equal(t, int32(0x45), id)
	assert.Equal(t, uint8(0), payload[0])

	setTimes := clientbound.Title{Action: clientbound.SetTimes{FadeIn: 10, Stay: 20, FadeOut: 30}}
	frame, err = clientbound.EncodeFrame(setTimes)
	require.NoError(t, err)
	_, payload = decodeFrame(t, frame)
	assert.Equal(t, uint8(2), payload[0])

	hide := clientbound.Title{Action: clientbound.Hide{}}
	frame, err = clientbound.EncodeFrame(hide)
	require.NoError(t, err)
	_, payload = decodeFrame(t, frame)
	assert.Equal(t, []byte{3}, payload)

	reset := clientbound.Title{Action: clientbound.Reset{}}
	frame, err = clientbound.EncodeFrame(reset)
	require.NoError(t, err)
	_, payload = decodeFrame(t, frame)
	assert.Equal(t, []byte{4}, payload)
}
