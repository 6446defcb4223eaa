package backplane

import (
	"bytes"
	"fmt"

	"go.makar.dev/proxy/pkg/proto"
)

// TitleAction is the backplane-side counterpart of the client protocol's
// clientbound.TitleAction: upstream only ever asks for one of a handful of
// shapes, which the proxy then lowers into the right number of client
// frames.
type TitleAction interface {
	isTitleAction()
	encode(buf *bytes.Buffer) error
}

const (
	titleActionSet   uint8 = 0
	titleActionHide  uint8 = 1
	titleActionReset uint8 = 2
)

// Set carries an optional title and an optional subtitle, plus the timing
// fields that always accompany them. Either Title or Subtitle (or both) may
// be nil; at least one should be set by callers, though the proxy does not
// enforce that.
type Set struct {
	Title   *proto.Chat
	Subtitle *proto.Chat
	FadeIn  uint32
	Stay    uint32
	FadeOut uint32
}

func (Set) isTitleAction() {}

func (a Set) encode(buf *bytes.Buffer) error {
	buf.WriteByte(titleActionSet)
	if err := writeOptionalChat(buf, a.Title); err != nil {
		return err
	}
	if err := writeOptionalChat(buf, a.Subtitle); err != nil {
		return err
	}
	if err := proto.WriteUint32(buf, a.FadeIn); err != nil {
		return err
	}
	if err := proto.WriteUint32(buf, a.Stay); err != nil {
		return err
	}
	return proto.WriteUint32(buf, a.FadeOut)
}

// Hide asks the client to hide the currently displayed title.
type Hide struct{}

func (Hide) isTitleAction()                {}
func (Hide) encode(buf *bytes.Buffer) error { buf.WriteByte(titleActionHide); return nil }

// Reset clears title state back to defaults.
type Reset struct{}

func (Reset) isTitleAction()                {}
func (Reset) encode(buf *bytes.Buffer) error { buf.WriteByte(titleActionReset); return nil }

func writeOptionalChat(buf *bytes.Buffer, c *proto.Chat) error {
	if c == nil {
		return proto.WriteBool(buf, false)
	}
	if err := proto.WriteBool(buf, true); err != nil {
		return err
	}
	return proto.WriteChat(buf, *c)
}

func readOptionalChat(r *bytes.Reader) (*proto.Chat, error) {
	present, err := proto.ReadBool(r)
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, nil
	}
	c, err := proto.ReadChat(r)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func decodeTitleAction(r *bytes.Reader) (TitleAction, error) {
	tag, err := proto.ReadUint8(r)
	if err != nil {
		return nil, err
	}
	switch tag {
	case titleActionSet:
		title, err := readOptionalChat(r)
		if err != nil {
			return nil, err
		}
		subtitle, err := readOptionalChat(r)
		if err != nil {
			return nil, err
		}
		fadeIn, err := proto.ReadUint32(r)
		if err != nil {
			return nil, err
		}
		stay, err := proto.ReadUint32(r)
		if err != nil {
			return nil, err
		}
		fadeOut, err := proto.ReadUint32(r)
		if err != nil {
			return nil, err
		}
		return Set{Title: title, Subtitle: subtitle, FadeIn: fadeIn, Stay: stay, FadeOut: fadeOut}, nil
	case titleActionHide:
		return Hide{}, nil
	case titleActionReset:
		return Reset{}, nil
	default:
		return nil, fmt.Errorf("backplane: unknown title action tag %d", tag)
	}
}
