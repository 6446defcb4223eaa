// Package serverbound declares the game client -> proxy packet table,
// keyed by (state, packet id).
package serverbound

import (
	"bytes"
	"errors"
	"fmt"

	"go.makar.dev/proxy/pkg/proto"
	"go.makar.dev/proxy/pkg/proto/state"
)

// ErrUnknownPacket is returned by DecodeFrame when no row of the table
// matches the (state, id) pair carried by the frame.
var ErrUnknownPacket = errors.New("serverbound: unknown packet for state")

// ErrUnknownNextState is returned when a Handshake packet's next_state
// field is neither 1 (Status) nor 2 (Login).
var ErrUnknownNextState = errors.New("serverbound: unknown next_state")

// Packet is anything a game client can send to the proxy. It carries no
// behavior of its own; Connection type-switches on the concrete type.
type Packet interface {
	isServerBound()
}

type byteReader interface {
	ReadByte() (byte, error)
	Read(p []byte) (int, error)
}

type decodeFunc func(r byteReader) (Packet, error)

var table = map[state.State]map[int32]decodeFunc{
	state.Handshake: {
		0x00: func(r byteReader) (Packet, error) { return decodeHandshake(r) },
	},
	state.Status: {
		0x00: func(r byteReader) (Packet, error) { return StatusRequest{}, nil },
		0x01: func(r byteReader) (Packet, error) { return decodeStatusPing(r) },
	},
	state.Login: {
		0x00: func(r byteReader) (Packet, error) { return decodeLoginStart(r) },
	},
	state.Play: {
		0x00: func(r byteReader) (Packet, error) { return KeepAlive{}, nil },
		0x01: func(r byteReader) (Packet, error) { return decodeChatMessage(r) },
		0x03: func(r byteReader) (Packet, error) { return decodePlayerIsOnGround(r) },
		0x04: func(r byteReader) (Packet, error) { return decodePlayerPosition(r) },
		0x06: func(r byteReader) (Packet, error) { return decodePlayerPositionAndLook(r) },
		0x15: func(r byteReader) (Packet, error) { return decodeClientSettings(r) },
		0x17: func(r byteReader) (Packet, error) { return decodePluginMessage(r) },
	},
}

// DecodeFrame reads a VarInt packet id from payload, then decodes the rest
// of payload according to the (st, id) row of the table.
func DecodeFrame(st state.State, payload []byte) (Packet, error) {
	r := bytes.NewReader(payload)
	id, err := proto.ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	decoders, ok := table[st]
	if !ok {
		return nil, fmt.Errorf("%w: state=%s id=0x%02x", ErrUnknownPacket, st, id)
	}
	decode, ok := decoders[id]
	if !ok {
		return nil, fmt.Errorf("%w: state=%s id=0x%02x", ErrUnknownPacket, st, id)
	}
	return decode(r)
}

// Handshake begins every connection. next_state selects Status (1) or
// Login (2); any other value is fatal.
type Handshake struct {
	Protocol  int32
	Address   string
	Port      uint16
	NextState uint8
}

func (Handshake) isServerBound() {}

func decodeHandshake(r byteReader) (Packet, error) {
	protocol, err := proto.ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	address, err := proto.ReadString(r)
	if err != nil {
		return nil, err
	}
	port, err := proto.ReadUint16(r)
	if err != nil {
		return nil, err
	}
	nextState, err := proto.ReadUint8(r)
	if err != nil {
		return nil, err
	}
	if nextState != 1 && nextState != 2 {
		return nil, fmt.Errorf("%w: %d", ErrUnknownNextState, nextState)
	}
	return Handshake{Protocol: protocol, Address: address, Port: port, NextState: nextState}, nil
}

// StatusRequest asks for the server-list JSON.
type StatusRequest struct{}

func (StatusRequest) isServerBound() {}

// StatusPing is echoed back verbatim by the proxy.
type StatusPing struct {
	Payload uint64
}

func (StatusPing) isServerBound() {}

func decodeStatusPing(r byteReader) (Packet, error) {
	payload, err := proto.ReadUint64(r)
	if err != nil {
		return nil, err
	}
	return StatusPing{Payload: payload}, nil
}

// LoginStart carries the client's chosen username.
type LoginStart struct {
	Name string
}

func (LoginStart) isServerBound() {}

func decodeLoginStart(r byteReader) (Packet, error) {
	name, err := proto.ReadString(r)
	if err != nil {
		return nil, err
	}
	return LoginStart{Name: name}, nil
}

// ChatMessage is a chat line typed by the player.
type ChatMessage struct {
	Message string
}

func (ChatMessage) isServerBound() {}

func decodeChatMessage(r byteReader) (Packet, error) {
	message, err := proto.ReadString(r)
	if err != nil {
		return nil, err
	}
	return ChatMessage{Message: message}, nil
}

// KeepAlive is dropped locally; this proxy drives no keep-alive timer of
// its own.
type KeepAlive struct{}

func (KeepAlive) isServerBound() {}

// PlayerIsOnGround is dropped locally; the proxy does no physics.
type PlayerIsOnGround struct {
	OnGround uint8
}

func (PlayerIsOnGround) isServerBound() {}

func decodePlayerIsOnGround(r byteReader) (Packet, error) {
	onGround, err := proto.ReadUint8(r)
	if err != nil {
		return nil, err
	}
	return PlayerIsOnGround{OnGround: onGround}, nil
}

// PlayerPosition is dropped locally.
type PlayerPosition struct {
	X, Y, Z  float64
	OnGround uint8
}

func (PlayerPosition) isServerBound() {}

func decodePlayerPosition(r byteReader) (Packet, error) {
	x, err := proto.ReadFloat64(r)
	if err != nil {
		return nil, err
	}
	y, err := proto.ReadFloat64(r)
	if err != nil {
		return nil, err
	}
	z, err := proto.ReadFloat64(r)
	if err != nil {
		return nil, err
	}
	onGround, err := proto.ReadUint8(r)
	if err != nil {
		return nil, err
	}
	return PlayerPosition{X: x, Y: y, Z: z, OnGround: onGround}, nil
}

// PlayerPositionAndLook is echoed back as a teleport confirmation.
type PlayerPositionAndLook struct {
	X, Y, Z    float64
	Yaw, Pitch float32
	OnGround   uint8
}

func (PlayerPositionAndLook) isServerBound() {}

func decodePlayerPositionAndLook(r byteReader) (Packet, error) {
	x, err := proto.ReadFloat64(r)
	if err != nil {
		return nil, err
	}
	y, err := proto.ReadFloat64(r)
	if err != nil {
		return nil, err
	}
	z, err := proto.ReadFloat64(r)
	if err != nil {
		return nil, err
	}
	yaw, err := proto.ReadFloat32(r)
	if err != nil {
		return nil, err
	}
	pitch, err := proto.ReadFloat32(r)
	if err != nil {
		return nil, err
	}
	onGround, err := proto.ReadUint8(r)
	if err != nil {
		return nil, err
	}
	return PlayerPositionAndLook{X: x, Y: y, Z: z, Yaw: yaw, Pitch: pitch, OnGround: onGround}, nil
}

// ClientSettings is both observed locally (for locale) and forwarded to
// the backplane.
type ClientSettings struct {
	Locale              string
	ViewDistance        uint8
	ChatMode            uint8
	ChatColors          uint8
	DisplayedSkinParts  uint8
}

func (ClientSettings) isServerBound() {}

func decodeClientSettings(r byteReader) (Packet, error) {
	locale, err := proto.ReadString(r)
	if err != nil {
		return nil, err
	}
	viewDistance, err := proto.ReadUint8(r)
	if err != nil {
		return nil, err
	}
	chatMode, err := proto.ReadUint8(r)
	if err != nil {
		return nil, err
	}
	chatColors, err := proto.ReadUint8(r)
	if err != nil {
		return nil, err
	}
	skinParts, err := proto.ReadUint8(r)
	if err != nil {
		return nil, err
	}
	return ClientSettings{
		Locale:             locale,
		ViewDistance:       viewDistance,
		ChatMode:           chatMode,
		ChatColors:         chatColors,
		DisplayedSkinParts: skinParts,
	}, nil
}

// PluginMessage is dropped locally; only the channel name is observed.
type PluginMessage struct {
	Channel string
}

func (PluginMessage) isServerBound() {}

func decodePluginMessage(r byteReader) (Packet, error) {
	channel, err := proto.ReadString(r)
	if err != nil {
		return nil, err
	}
	return PluginMessage{Channel: channel}, nil
}
