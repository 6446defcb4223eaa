package backplane

import (
	"bytes"
	"fmt"

	"github.com/google/uuid"

	"go.makar.dev/proxy/pkg/proto"
)

// ProxyBoundPacket is an event the upstream application server sends back
// to the proxy, naming the player it concerns by id so the proxy can look
// up their connection in the Players registry.
type ProxyBoundPacket interface {
	isProxyBound()
	encode(buf *bytes.Buffer) error
}

const (
	proxyBoundJoinGame    uint8 = 0
	proxyBoundChatMessage uint8 = 1
	proxyBoundTitle       uint8 = 2
)

// JoinGame carries everything the proxy needs to lower into a client
// protocol clientbound.JoinGame frame.
type JoinGame struct {
	Player           uuid.UUID
	EntityID         int32
	Gamemode         proto.Gamemode
	Dimension        int8
	Difficulty       proto.Difficulty
	MaxPlayers       uint8
	LevelType        string
	ReducedDebugInfo uint8
}

func (JoinGame) isProxyBound() {}

func (p JoinGame) encode(buf *bytes.Buffer) error {
	buf.WriteByte(proxyBoundJoinGame)
	if err := writeUUID(buf, p.Player); err != nil {
		return err
	}
	if err := proto.WriteInt32(buf, p.EntityID); err != nil {
		return err
	}
	if err := proto.WriteUint8(buf, uint8(p.Gamemode)); err != nil {
		return err
	}
	if err := proto.WriteInt8(buf, p.Dimension); err != nil {
		return err
	}
	if err := proto.WriteUint8(buf, uint8(p.Difficulty)); err != nil {
		return err
	}
	if err := proto.WriteUint8(buf, p.MaxPlayers); err != nil {
		return err
	}
	if err := proto.WriteString(buf, p.LevelType); err != nil {
		return err
	}
	return proto.WriteUint8(buf, p.ReducedDebugInfo)
}

// ChatMessage asks the proxy to deliver a pre-rendered chat component to
// one player.
type ChatMessage struct {
	Player   uuid.UUID
	JSON     proto.Chat
	Position uint8
}

func (ChatMessage) isProxyBound() {}

func (p ChatMessage) encode(buf *bytes.Buffer) error {
	buf.WriteByte(proxyBoundChatMessage)
	if err := writeUUID(buf, p.Player); err != nil {
		return err
	}
	if err := proto.WriteChat(buf, p.JSON); err != nil {
		return err
	}
	return proto.WriteUint8(buf, p.Position)
}

// Title asks the proxy to lower a title action into one or more client
// protocol frames for the named player.
type Title struct {
	Player uuid.UUID
	Action TitleAction
}

func (Title) isProxyBound() {}

func (p Title) encode(buf *bytes.Buffer) error {
	buf.WriteByte(proxyBoundTitle)
	if err := writeUUID(buf, p.Player); err != nil {
		return err
	}
	return p.Action.encode(buf)
}

// EncodeProxyBound serializes p as a full backplane frame (length prefix
// included).
func EncodeProxyBound(p ProxyBoundPacket) ([]byte, error) {
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

// DecodeProxyBound decodes a proxy-bound payload (length prefix already
// stripped by the framing layer).
func DecodeProxyBound(payload []byte) (ProxyBoundPacket, error) {
	r := bytes.NewReader(payload)
	tag, err := proto.ReadUint8(r)
	if err != nil {
		return nil, err
	}
	switch tag {
	case proxyBoundJoinGame:
		player, err := readUUID(r)
		if err != nil {
			return nil, err
		}
		entityID, err := proto.ReadInt32(r)
		if err != nil {
			return nil, err
		}
		gamemode, err := proto.ReadUint8(r)
		if err != nil {
			return nil, err
		}
		dimension, err := proto.ReadInt8(r)
		if err != nil {
			return nil, err
		}
		difficulty, err := proto.ReadUint8(r)
		if err != nil {
			return nil, err
		}
		maxPlayers, err := proto.ReadUint8(r)
		if err != nil {
			return nil, err
		}
		levelType, err := proto.ReadString(r)
		if err != nil {
			return nil, err
		}
		reducedDebugInfo, err := proto.ReadUint8(r)
		if err != nil {
			return nil, err
		}
		return JoinGame{
			Player:           player,
			EntityID:         entityID,
			Gamemode:         proto.Gamemode(gamemode),
			Dimension:        dimension,
			Difficulty:       proto.Difficulty(difficulty),
			MaxPlayers:       maxPlayers,
			LevelType:        levelType,
			ReducedDebugInfo: reducedDebugInfo,
		}, nil
	case proxyBoundChatMessage:
		player, err := readUUID(r)
		if err != nil {
			return nil, err
		}
		chat, err := proto.ReadChat(r)
		if err != nil {
			return nil, err
		}
		position, err := proto.ReadUint8(r)
		if err != nil {
			return nil, err
		}
		return ChatMessage{Player: player, JSON: chat, Position: position}, nil
	case proxyBoundTitle:
		player, err := readUUID(r)
		if err != nil {
			return nil, err
		}
		action, err := decodeTitleAction(r)
		if err != nil {
			return nil, err
		}
		return Title{Player: player, Action: action}, nil
	default:
		return nil, fmt.Errorf("backplane: unknown proxy-bound tag %d", tag)
	}
}
