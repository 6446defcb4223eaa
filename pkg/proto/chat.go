package proto

import "encoding/json"

// Chat is the JSON text-component format used for chat messages and title
// components. Absent optional fields are omitted from the JSON, never
// serialized as null.
type Chat struct {
	Text          string `json:"text"`
	Color         *string `json:"color,omitempty"`
	Bold          *bool   `json:"bold,omitempty"`
	Italic        *bool   `json:"italic,omitempty"`
	Underlined    *bool   `json:"underlined,omitempty"`
	Strikethrough *bool   `json:"strikethrough,omitempty"`
	Obfuscated    *bool   `json:"obfuscated,omitempty"`
}

// PlainChat returns a Chat with only the text field set.
func PlainChat(text string) Chat {
	return Chat{Text: text}
}

// JSON marshals the Chat component to its wire JSON representation.
func (c Chat) JSON() (string, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ReadChat reads a Chat component: a length-prefixed string containing its
// JSON text.
func ReadChat(r byteReader) (Chat, error) {
	s, err := ReadString(r)
	if err != nil {
		return Chat{}, err
	}
	var c Chat
	if err := json.Unmarshal([]byte(s), &c); err != nil {
		return Chat{}, err
	}
	return c, nil
}

// WriteChat serializes c as JSON wrapped in a length-prefixed string.
func WriteChat(w byteWriter, c Chat) error {
	s, err := c.JSON()
	if err != nil {
		return err
	}
	return WriteString(w, s)
}

// ChatSize returns the encoded size of c.
func ChatSize(c Chat) int {
	s, err := c.JSON()
	if err != nil {
		return 0
	}
	return StringSize(s)
}
