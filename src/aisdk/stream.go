package aisdk

import "errors"

// ErrStreamingUnsupported is returned by clients that only implement the
// synchronous Instruct call.
var ErrStreamingUnsupported = errors.New("streaming is not supported by this client")

// StreamChunk is one partial update from a streaming response: a text delta,
// a partial tool call, or the terminal usage summary.
type StreamChunk struct {
	TextDelta string     `json:"text_delta,omitempty"`
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
	// Usage is set only on the final chunk.
	Usage *Usage `json:"usage,omitempty"`
	Done  bool   `json:"done,omitempty"`
}

// StreamReader yields an ordered sequence of chunks terminating in a final
// usage summary. Read returns io.EOF after the terminal chunk.
type StreamReader interface {
	Read() (*StreamChunk, error)
	Close() error
}
