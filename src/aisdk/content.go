package aisdk

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ContentType identifies the kind of a content part.
type ContentType string

const (
	ContentTypeText  ContentType = "text"
	ContentTypeImage ContentType = "image"
	ContentTypeAudio ContentType = "audio"
	ContentTypeFile  ContentType = "file"
)

// Content is a single part of a message: text, or a base64-encoded binary
// attachment with a media type.
type Content struct {
	Type ContentType `json:"type"`
	Text string      `json:"text,omitempty"`
	// Data and MediaType are set for image/audio/file parts.
	Data      string `json:"data,omitempty"`
	MediaType string `json:"media_type,omitempty"`
	Filename  string `json:"filename,omitempty"`
}

// TextContent builds a text content part.
func TextContent(text string) Content {
	return Content{Type: ContentTypeText, Text: text}
}

// UnmarshalJSON accepts both the structured part form and the bare string
// form providers use for plain text content.
func (c *Content) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		c.Type = ContentTypeText
		c.Text = s
		return nil
	}
	type plain Content
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*c = Content(p)
	return nil
}

// OneOrMany is an explicit sum type for the provider wire shape where a field
// may hold a single value or an ordered list. Internal consumers call Parts
// exactly once to normalize; nothing downstream branches on the union again.
type OneOrMany[T any] struct {
	one  *T
	many []T
}

// One wraps a single value.
func One[T any](v T) *OneOrMany[T] {
	return &OneOrMany[T]{one: &v}
}

// Many wraps an ordered list.
func Many[T any](vs []T) *OneOrMany[T] {
	return &OneOrMany[T]{many: vs}
}

// Parts normalizes the union to an ordered slice of length >= 0. A single
// value and a one-element list are equivalent at this boundary.
func (o *OneOrMany[T]) Parts() []T {
	if o == nil {
		return nil
	}
	if o.one != nil {
		return []T{*o.one}
	}
	return o.many
}

// MarshalJSON emits the single value directly and lists as arrays,
// preserving the provider wire shape.
func (o OneOrMany[T]) MarshalJSON() ([]byte, error) {
	if o.one != nil {
		return json.Marshal(*o.one)
	}
	return json.Marshal(o.many)
}

// UnmarshalJSON accepts either a single value or an array.
func (o *OneOrMany[T]) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimLeft(string(data), " \t\r\n")
	if trimmed == "null" {
		o.one = nil
		o.many = nil
		return nil
	}
	if strings.HasPrefix(trimmed, "[") {
		var many []T
		if err := json.Unmarshal(data, &many); err != nil {
			return fmt.Errorf("decoding list form: %w", err)
		}
		o.one = nil
		o.many = many
		return nil
	}
	var one T
	if err := json.Unmarshal(data, &one); err != nil {
		return fmt.Errorf("decoding single form: %w", err)
	}
	o.one = &one
	o.many = nil
	return nil
}

// ContentText concatenates the text parts of a content union, one per line.
func ContentText(o *OneOrMany[Content]) string {
	var b strings.Builder
	for _, part := range o.Parts() {
		if part.Type != ContentTypeText {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(part.Text)
	}
	return b.String()
}
