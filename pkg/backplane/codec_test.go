package backplane_test

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.makar.dev/proxy/pkg/backplane"
	"go.makar.dev/proxy/pkg/proto"
)

func roundTripServerBound(t *testing.T, p backplane.ServerBoundPacket) backplane.ServerBoundPacket {
	t.Helper()
	framed, err := backplane.EncodeServerBound(p)
	require.NoError(t, err)

	payload, err := backplane.ReadFrame(bytes.NewReader(framed))
	require.NoError(t, err)

	got, err := backplane.DecodeServerBound(payload)
	require.NoError(t, err)
	return got
}

func roundTripProxyBound(t *testing.T, p backplane.ProxyBoundPacket) backplane.ProxyBoundPacket {
	t.Helper()
	framed, err := backplane.EncodeProxyBound(p)
	require.NoError(t, err)

	payload, err := backplane.ReadFrame(bytes.NewReader(framed))
	require.NoError(t, err)

	got, err := backplane.DecodeProxyBound(payload)
	require.NoError(t, err)
	return got
}

func TestServerBoundRoundTrip(t *testing.T) {
	id := uuid.New()

	got := roundTripServerBound(t, backplane.JoinGameRequest{ID: id, Username: "alice"})
	assert.Equal(t, backplane.JoinGameRequest{ID: id, Username: "alice"}, got)

	got = roundTripServerBound(t, backplane.ClientSettings{Player: id, Locale: "en_US"})
	assert.Equal(t, backplane.ClientSettings{Player: id, Locale: "en_US"}, got)

	got = roundTripServerBound(t, backplane.ChatMessage{Player: id, Message: "hello"})
	assert.Equal(t, backplane.ChatMessage{Player: id, Message: "hello"}, got)
}

func TestProxyBoundJoinGameRoundTrip(t *testing.T) {
	id := uuid.New()
	p := backplane.JoinGame{
		Player:           id,
		EntityID:         42,
		Gamemode:         proto.Creative,
		Dimension:        0,
		Difficulty:       proto.Normal,
		MaxPlayers:       20,
		LevelType:        "default",
		ReducedDebugInfo: 1,
	}
	got := roundTripProxyBound(t, p)
	assert.Equal(t, p, got)
}

func TestProxyBoundChatMessageRoundTrip(t *testing.T) {
	id := uuid.New()
	p := backplane.ChatMessage{Player: id, JSON: proto.PlainChat("hi"), Position: 0}
	got := roundTripProxyBound(t, p)
	assert.Equal(t, p, got)
}

func TestProxyBoundTitleRoundTrip(t *testing.T) {
	id := uuid.New()

	title := proto.PlainChat("Welcome")
	setAction := backplane.Set{Title: &title, FadeIn: 10, Stay: 70, FadeOut: 20}
	got := roundTripProxyBound(t, backplane.Title{Player: id, Action: setAction})
	wantTitle, ok := got.(backplane.Title)
	require.True(t, ok)
	setGot, ok := wantTitle.Action.(backplane.Set)
	require.True(t, ok)
	require.NotNil(t, setGot.Title)
	assert.Equal(t, "Welcome", setGot.Title.Text)
	assert.Nil(t, setGot.Subtitle)
	assert.Equal(t, uint32(10), setGot.FadeIn)
	assert.Equal(t, uint32(70), setGot.Stay)
	assert.Equal(t, uint32(20), setGot.FadeOut)

	got = roundTripProxyBound(t, backplane.Title{Player: id, Action: backplane.Hide{}})
	hideGot, ok := got.(backplane.Title)
	require.True(t, ok)
	assert.Equal(t, backplane.Hide{}, hideGot.Action)

	got = roundTripProxyBound(t, backplane.Title{Player: id, Action: backplane.Reset{}})
	resetGot, ok := got.(backplane.Title)
	require.True(t, ok)
	assert.Equal(t, backplane.Reset{}, resetGot.Action)
}

func TestProxyBoundUnknownTag(t *testing.T) {
	_, err := backplane.DecodeProxyBound([]byte{0xff})
	assert.Error(t, err)
}

func TestServerBoundUnknownTag(t *testing.T) {
	_, err := backplane.DecodeServerBound([]byte{0xff})
	assert.Error(t, err)
}
