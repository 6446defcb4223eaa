package proto_test

import (
	"bufio"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.makar.dev/proxy/pkg/proto"
)

func TestChatOmitsAbsentFields(t *testing.T) {
	c := proto.PlainChat("hi")
	j, err := c.JSON()
	require.NoError(t, err)
	assert.Equal(t, `{"text":"hi"}`, j)
}

func TestChatRoundTrip(t *testing.T) {
	color := "blue"
	bold := true
	c := proto.Chat{Text: "hello", Color: &color, Bold: &bold}

	var buf bytes.Buffer
	require.NoError(t, proto.WriteChat(&buf, c))

	got, err := proto.ReadChat(bufio.NewReader(&buf))
	require.NoError(t, err)
	assert.Equal(t, c.Text, got.Text)
	require.NotNil(t, got.Color)
	assert.Equal(t, "blue", *got.Color)
	require.NotNil(t, got.Bold)
	assert.True(t, *got.Bold)
	assert.Nil(t, got.Italic)
}
