// Package clientbound declares the proxy -> game client packet table,
// keyed by packet id only.
package clientbound

import (
	"bytes"

	"go.makar.dev/proxy/pkg/proto"
)

// Packet is anything the proxy can send down to a game client. Each
// implementation knows its own id and wire size, so EncodeFrame never has
// to special-case a packet by name.
type Packet interface {
	ID() int32
	payloadSize() int
	writePayload(buf *bytes.Buffer) error
}

// EncodeFrame serializes p as a full client-protocol frame:
// VarInt(payload_len + id_varint_len) ++ VarInt(id) ++ payload.
func EncodeFrame(p Packet) ([]byte, error) {
	payloadSize := p.payloadSize()
	idSize := proto.VarIntSize(p.ID())
	size := idSize + payloadSize

	buf := new(bytes.Buffer)
	buf.Grow(proto.VarIntSize(int32(size)) + size)
	if err := proto.WriteVarInt(buf, int32(size)); err != nil {
		return nil, err
	}
	if err := proto.WriteVarInt(buf, p.ID()); err != nil {
		return nil, err
	}
	if err := p.writePayload(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// StatusResponse answers a StatusRequest with the server-list JSON.
type StatusResponse struct {
	Status string
}

func (StatusResponse) ID() int32 { return 0x00 }
func (p StatusResponse) payloadSize() int {
	return proto.StringSize(p.Status)
}
func (p StatusResponse) writePayload(buf *bytes.Buffer) error {
	return proto.WriteString(buf, p.Status)
}

// EncryptionRequest is part of the vanilla login flow. This proxy never
// sends it (authentication is stubbed), but the packet exists in the
// client-bound table for completeness.
type EncryptionRequest struct {
	ServerID     string
	PublicKey    []byte
	VerifyToken  []byte
}

func (EncryptionRequest) ID() int32 { return 0x01 }
func (p EncryptionRequest) payloadSize() int {
	return proto.StringSize(p.ServerID) + proto.BytesSize(p.PublicKey) + proto.BytesSize(p.VerifyToken)
}
func (p EncryptionRequest) writePayload(buf *bytes.Buffer) error {
	if err := proto.WriteString(buf, p.ServerID); err != nil {
		return err
	}
	if err := proto.WriteBytes(buf, p.PublicKey); err != nil {
		return err
	}
	return proto.WriteBytes(buf, p.VerifyToken)
}

// LoginSuccess completes Login; the client advances to Play after this.
type LoginSuccess struct {
	UUID     string
	Username string
}

func (LoginSuccess) ID() int32 { return 0x02 }
func (p LoginSuccess) payloadSize() int {
	return proto.StringSize(p.UUID) + proto.StringSize(p.Username)
}
func (p LoginSuccess) writePayload(buf *bytes.Buffer) error {
	if err := proto.WriteString(buf, p.UUID); err != nil {
		return err
	}
	return proto.WriteString(buf, p.Username)
}

// JoinGame is sent once, immediately after Login succeeds, to bring the
// client into the Play state.
type JoinGame struct {
	EntityID          int32
	Gamemode          proto.Gamemode
	Dimension         int8
	Difficulty        proto.Difficulty
	MaxPlayers        uint8
	LevelType         string
	ReducedDebugInfo  uint8
}

func (JoinGame) ID() int32 { return 0x01 }
func (p JoinGame) payloadSize() int {
	return 4 + 1 + 1 + 1 + 1 + proto.StringSize(p.LevelType) + 1
}
func (p JoinGame) writePayload(buf *bytes.Buffer) error {
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

// ChatMessage delivers a Chat component to be displayed in the given
// position (0 = chat box, 1 = system message, 2 = action bar).
type ChatMessage struct {
	JSON     proto.Chat
	Position uint8
}

func (ChatMessage) ID() int32 { return 0x02 }
func (p ChatMessage) payloadSize() int {
	return proto.ChatSize(p.JSON) + 1
}
func (p ChatMessage) writePayload(buf *bytes.Buffer) error {
	if err := proto.WriteChat(buf, p.JSON); err != nil {
		return err
	}
	return proto.WriteUint8(buf, p.Position)
}

// PlayerPositionAndLook teleports (or confirms the position of) the client.
type PlayerPositionAndLook struct {
	X, Y, Z    float64
	Yaw, Pitch float32
	Flags      uint8
}

func (PlayerPositionAndLook) ID() int32 { return 0x08 }
func (p PlayerPositionAndLook) payloadSize() int {
	return 8 + 8 + 8 + 4 + 4 + 1
}
func (p PlayerPositionAndLook) writePayload(buf *bytes.Buffer) error {
	if err := proto.WriteFloat64(buf, p.X); err != nil {
		return err
	}
	if err := proto.WriteFloat64(buf, p.Y); err != nil {
		return err
	}
	if err := proto.WriteFloat64(buf, p.Z); err != nil {
		return err
	}
	if err := proto.WriteFloat32(buf, p.Yaw); err != nil {
		return err
	}
	if err := proto.WriteFloat32(buf, p.Pitch); err != nil {
		return err
	}
	return proto.WriteUint8(buf, p.Flags)
}

// Title drives the client's title HUD element.
type Title struct {
	Action TitleAction
}

func (Title) ID() int32 { return 0x45 }
func (p Title) payloadSize() int {
	return p.Action.size()
}
func (p Title) writePayload(buf *bytes.Buffer) error {
	return p.Action.write(buf)
}
