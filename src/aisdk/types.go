// Package aisdk defines the provider-facing data model for conversations,
// tool calls, and instruct requests/responses.
package aisdk

import (
	"bytes"
	"encoding/json"
	"fmt"

	jsonschema "github.com/swaggest/jsonschema-go"
)

// Message represents a single message in a conversation.
type Message struct {
	Role    string              `json:"role"`
	Content *OneOrMany[Content] `json:"content,omitempty"`
	// ToolCalls contains function calls requested by the assistant.
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
	// ToolCallID is set only on role=tool messages and correlates the
	// result to the originating call.
	ToolCallID string `json:"tool_call_id,omitempty"`
}

// NewTextMessage builds a message whose content is a single text part.
func NewTextMessage(role, text string) *Message {
	return &Message{
		Role:    role,
		Content: One(TextContent(text)),
	}
}

// NewToolResultMessage builds a role=tool message carrying the result of a
// tool call.
func NewToolResultMessage(toolCallID, text string) *Message {
	return &Message{
		Role:       "tool",
		Content:    One(TextContent(text)),
		ToolCallID: toolCallID,
	}
}

// Text returns the concatenated text parts of the message content.
func (m *Message) Text() string {
	if m == nil || m.Content == nil {
		return ""
	}
	return ContentText(m.Content)
}

// ToolCall represents a function call request from the model.
type ToolCall struct {
	ID       string       `json:"id"`
	Type     string       `json:"type,omitempty"`
	Function FunctionCall `json:"function"`
}

// FunctionCall contains the function name and raw JSON arguments. Arguments
// are untrusted and must be parsed at the dispatch boundary before use.
type FunctionCall struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// UnmarshalJSON accepts arguments in the chat completions wire form, a JSON
// string containing the encoded object, as well as a bare object. The inner
// object bytes are stored either way.
func (f *FunctionCall) UnmarshalJSON(data []byte) error {
	var wire struct {
		Name      string          `json:"name"`
		Arguments json.RawMessage `json:"arguments"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	f.Name = wire.Name

	args := bytes.TrimSpace(wire.Arguments)
	if len(args) > 0 && args[0] == '"' {
		var inner string
		if err := json.Unmarshal(args, &inner); err != nil {
			return fmt.Errorf("failed to decode function arguments: %w", err)
		}
		args = json.RawMessage(inner)
	}
	f.Arguments = args
	return nil
}

// MarshalJSON re-encodes arguments as a JSON string so appended assistant
// messages round-trip in the wire form providers expect.
func (f FunctionCall) MarshalJSON() ([]byte, error) {
	args := string(f.Arguments)
	if args == "" {
		args = "{}"
	}
	return json.Marshal(struct {
		Name      string `json:"name"`
		Arguments string `json:"arguments"`
	}{Name: f.Name, Arguments: args})
}

// ToolResponse is the outcome of executing a tool call.
type ToolResponse struct {
	Content []byte `json:"content"`
	IsError bool   `json:"is_error"`
}

// ChatTool declares a tool in the shape chat completion APIs expect.
type ChatTool struct {
	Type     string           `json:"type"`
	Function ChatToolFunction `json:"function"`
}

// ChatToolFunction is the function definition within a tool declaration.
type ChatToolFunction struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Parameters  *jsonschema.Schema `json:"parameters"`
}

// InstructRequest is a single request to the model collaborator.
type InstructRequest struct {
	Model    string      `json:"model"`
	Messages []*Message  `json:"messages"`
	Tools    []*ChatTool `json:"tools,omitempty"`
	// CacheKey is a stable per-session identifier some providers use to
	// route requests to a warm prompt cache.
	CacheKey string `json:"cache_key,omitempty"`
	Stream   bool   `json:"stream,omitempty"`
}

// InstructResponse is the model's reply: text content, tool calls, or both.
// ToolCalls is empty when the model produced a final answer.
type InstructResponse struct {
	Output *OneOrMany[Message] `json:"output"`
	Usage  *Usage              `json:"usage,omitempty"`
}

// Messages normalizes the response output to an ordered slice.
func (r *InstructResponse) Messages() []Message {
	if r == nil || r.Output == nil {
		return nil
	}
	return r.Output.Parts()
}

// Usage reports token accounting for a request.
type Usage struct {
	PromptTokens       int `json:"prompt_tokens"`
	CompletionTokens   int `json:"completion_tokens"`
	TotalTokens        int `json:"total_tokens"`
	PromptTokensCached int `json:"prompt_tokens_cached,omitempty"`
}
