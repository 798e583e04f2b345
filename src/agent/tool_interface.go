// Package agent provides the tool abstraction: typed tool definitions with
// reflected JSON schemas and a toolbox that dispatches model tool calls.
package agent

import (
	"context"

	jsonschema "github.com/swaggest/jsonschema-go"

	"github.com/kota-cli/kota/src/aisdk"
)

// Tool is the interface all tools implement.
type Tool interface {
	// GetName returns the tool's catalog name.
	GetName() string

	// GetDescription returns the tool's description sent to the model.
	GetDescription() string

	// GetParameters returns the JSON schema for the tool's parameters.
	GetParameters() *jsonschema.Schema

	// Execute runs the tool with the given call's arguments.
	Execute(ctx context.Context, call *aisdk.ToolCall) (*aisdk.ToolResponse, error)
}

// ToChatTool converts a tool to the declaration shape sent with every
// request.
func ToChatTool(t Tool) *aisdk.ChatTool {
	return &aisdk.ChatTool{
		Type: "function",
		Function: aisdk.ChatToolFunction{
			Name:        t.GetName(),
			Description: t.GetDescription(),
			Parameters:  t.GetParameters(),
		},
	}
}

// ToChatTools converts a tool list, preserving order.
func ToChatTools(tools []Tool) []*aisdk.ChatTool {
	out := make([]*aisdk.ChatTool, 0, len(tools))
	for _, t := range tools {
		out = append(out, ToChatTool(t))
	}
	return out
}
