package backplane

import (
	"bytes"
	"fmt"

	"github.com/google/uuid"

	"go.makar.dev/proxy/pkg/proto"
)

// ServerBoundPacket is an event the proxy sends to the upstream
// application server, describing an already-authenticated player action.
type ServerBoundPacket interface {
	isServerBound()
	encode(buf *bytes.Buffer) error
}

const (
	serverBoundJoinGameRequest uint8 = 0
	serverBoundClientSettings  uint8 = 1
	serverBoundChatMessage     uint8 = 2
)

// JoinGameRequest tells upstream a player finished Login and should be
// brought into the game.
type JoinGameRequest struct {
	ID       uuid.UUID
	Username string
}

func (JoinGameRequest) isServerBound() {}
func (p JoinGameRequest) encode(buf *bytes.Buffer) error {
	buf.WriteByte(serverBoundJoinGameRequest)
	if err := writeUUID(buf, p.ID); err != nil {
		return err
	}
	return proto.WriteString(buf, p.Username)
}

// ClientSettings forwards the player's locale (and other display
// preferences) so upstream can localize its responses.
type ClientSettings struct {
	Player uuid.UUID
	Locale string
}

func (ClientSettings) isServerBound() {}
func (p ClientSettings) encode(buf *bytes.Buffer) error {
	buf.WriteByte(serverBoundClientSettings)
	if err := writeUUID(buf, p.Player); err != nil {
		return err
	}
	return proto.WriteString(buf, p.Locale)
}

// ChatMessage forwards a chat line typed by the player.
type ChatMessage struct {
	Player  uuid.UUID
	Message string
}

func (ChatMessage) isServerBound() {}
func (p ChatMessage) encode(buf *bytes.Buffer) error {
	buf.WriteByte(serverBoundChatMessage)
	if err := writeUUID(buf, p.Player); err != nil {
		return err
	}
	return proto.WriteString(buf, p.Message)
}

// EncodeServerBound serializes p as a full backplane frame (length prefix
// included).
func EncodeServerBound(p ServerBoundPacket) ([]byte, error) {
	var buf bytes.Buffer
	if err := p.encode(&buf); err != nil {
		return nil, err
	}
	var framed bytes.Buffer
	if err := WriteFrame(&framed, buf.Bytes()); err != nil {
		return nil, err
	}
	return framed.Bytes(), nil
}

// DecodeServerBound decodes a server-bound payload (length prefix already
// stripped by the framing layer). It decodes the upstream server's side
// of the protocol; within this repository only the tests call it.
func DecodeServerBound(payload []byte) (ServerBoundPacket, error) {
	r := bytes.NewReader(payload)
	tag, err := proto.ReadUint8(r)
	if err != nil {
		return nil, err
	}
	switch tag {
	case serverBoundJoinGameRequest:
		id, err := readUUID(r)
		if err != nil {
			return nil, err
		}
		username, err := proto.ReadString(r)
		if err != nil {
			return nil, err
		}
		return JoinGameRequest{ID: id, Username: username}, nil
	case serverBoundClientSettings:
		player, err := readUUID(r)
		if err != nil {
			return nil, err
		}
		locale, err := proto.ReadString(r)
		if err != nil {
			return nil, err
		}
		return ClientSettings{Player: player, Locale: locale}, nil
	case serverBoundChatMessage:
		player, err := readUUID(r)
		if err != nil {
			return nil, err
		}
		message, err := proto.ReadString(r)
		if err != nil {
			return nil, err
		}
		return ChatMessage{Player: player, Message: message}, nil
	default:
		return nil, fmt.Errorf("backplane: unknown server-bound tag %d", tag)
	}
}
