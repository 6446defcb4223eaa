package clientbound

import (
	"bytes"

	"go.makar.dev/proxy/pkg/proto"
)

// TitleAction is the tagged payload of the Title packet (0x45). The wire
// tag is a u8 discriminator immediately following the packet id.
type TitleAction interface {
	titleActionTag() uint8
	size() int
	write(buf *bytes.Buffer) error
}

const (
	titleActionSetTitle    uint8 = 0
	titleActionSetSubtitle uint8 = 1
	titleActionSetTimes    uint8 = 2
	titleActionHide        uint8 = 3
	titleActionReset       uint8 = 4
)

// SetTitle sets the main title text.
type SetTitle struct{ Chat proto.Chat }

func (SetTitle) titleActionTag() uint8 { return titleActionSetTitle }
func (a SetTitle) size() int           { return 1 + proto.ChatSize(a.Chat) }
func (a SetTitle) write(buf *bytes.Buffer) error {
	buf.WriteByte(titleActionSetTitle)
	return proto.WriteChat(buf, a.Chat)
}

// SetSubtitle sets the subtitle text.
type SetSubtitle struct{ Chat proto.Chat }

func (SetSubtitle) titleActionTag() uint8 { return titleActionSetSubtitle }
func (a SetSubtitle) size() int           { return 1 + proto.ChatSize(a.Chat) }
func (a SetSubtitle) write(buf *bytes.Buffer) error {
	buf.WriteByte(titleActionSetSubtitle)
	return proto.WriteChat(buf, a.Chat)
}

// SetTimes sets the fade-in/stay/fade-out timings, in ticks.
type SetTimes struct {
	FadeIn  uint32
	Stay    uint32
	FadeOut uint32
}

func (SetTimes) titleActionTag() uint8 { return titleActionSetTimes }
func (SetTimes) size() int             { return 1 + 4 + 4 + 4 }
func (a SetTimes) write(buf *bytes.Buffer) error {
	buf.WriteByte(titleActionSetTimes)
	if err := proto.WriteUint32(buf, a.FadeIn); err != nil {
		return err
	}
	if err := proto.WriteUint32(buf, a.Stay); err != nil {
		return err
	}
	return proto.WriteUint32(buf, a.FadeOut)
}

// Hide hides the currently displayed title.
type Hide struct{}

func (Hide) titleActionTag() uint8            { return titleActionHide }
func (Hide) size() int                        { return 1 }
func (Hide) write(buf *bytes.Buffer) error     { return buf.WriteByte(titleActionHide) }

// Reset resets title configuration back to default values.
type Reset struct{}

func (Reset) titleActionTag() uint8        { return titleActionReset }
func (Reset) size() int                    { return 1 }
func (Reset) write(buf *bytes.Buffer) error { return buf.WriteByte(titleActionReset) }
