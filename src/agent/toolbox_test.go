package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kota-cli/kota/src/aisdk"
)

type echoInput struct {
	Text string `json:"text" required:"true" description:"Text to echo"`
}

func newEchoTool(t *testing.T, name string) Tool {
	t.Helper()
	tool, err := NewGenericTool(name, "Echoes text back.",
		func(ctx context.Context, input echoInput) (string, error) {
			if input.Text == "fail" {
				return "", fmt.Errorf("refusing to echo")
			}
			return "echo: " + input.Text, nil
		})
	require.NoError(t, err)
	return tool
}

func call(name, args string) *aisdk.ToolCall {
	return &aisdk.ToolCall{
		ID:   "call_1",
		Type: "function",
		Function: aisdk.FunctionCall{
			Name:      name,
			Arguments: json.RawMessage(args),
		},
	}
}

func TestGenericToolExecute(t *testing.T) {
	tool := newEchoTool(t, "echo")

	t.Run("success", func(t *testing.T) {
		resp, err := tool.Execute(context.Background(), call("echo", `{"text":"hi"}`))
		require.NoError(t, err)
		assert.False(t, resp.IsError)
		assert.Equal(t, "echo: hi", string(resp.Content))
	})

	t.Run("handler failure becomes error result", func(t *testing.T) {
		resp, err := tool.Execute(context.Background(), call("echo", `{"text":"fail"}`))
		require.NoError(t, err)
		assert.True(t, resp.IsError)
		assert.Equal(t, "Error: refusing to echo", string(resp.Content))
	})

	t.Run("malformed arguments become error result", func(t *testing.T) {
		resp, err := tool.Execute(context.Background(), call("echo", `{"text": not json`))
		require.NoError(t, err)
		assert.True(t, resp.IsError)
		assert.Contains(t, string(resp.Content), "invalid arguments for echo")
	})

	t.Run("wrong argument type becomes error result", func(t *testing.T) {
		resp, err := tool.Execute(context.Background(), call("echo", `{"text": 42}`))
		require.NoError(t, err)
		assert.True(t, resp.IsError)
	})

	t.Run("empty arguments parse as empty object", func(t *testing.T) {
		resp, err := tool.Execute(context.Background(), call("echo", ""))
		require.NoError(t, err)
		assert.False(t, resp.IsError)
		assert.Equal(t, "echo: ", string(resp.Content))
	})
}

func TestGenericToolSchema(t *testing.T) {
	tool := newEchoTool(t, "echo")

	assert.Equal(t, "echo", tool.GetName())
	assert.Equal(t, "Echoes text back.", tool.GetDescription())
	require.NotNil(t, tool.GetParameters())

	chatTool := ToChatTool(tool)
	assert.Equal(t, "function", chatTool.Type)
	assert.Equal(t, "echo", chatTool.Function.Name)
}

func TestToolboxRegister(t *testing.T) {
	tb := NewToolbox()

	require.NoError(t, tb.RegisterTool(newEchoTool(t, "echo")))
	assert.True(t, tb.HasTool("echo"))

	err := tb.RegisterTool(newEchoTool(t, "echo"))
	assert.ErrorContains(t, err, "already registered")
}

func TestToolboxToolsSorted(t *testing.T) {
	tb := NewToolbox()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		require.NoError(t, tb.RegisterTool(newEchoTool(t, name)))
	}

	tools := tb.Tools()
	require.Len(t, tools, 3)
	assert.Equal(t, "alpha", tools[0].GetName())
	assert.Equal(t, "mid", tools[1].GetName())
	assert.Equal(t, "zeta", tools[2].GetName())
}

func TestToolboxExecuteUnknownTool(t *testing.T) {
	tb := NewToolbox()

	resp, err := tb.ExecuteTool(context.Background(), call("nope", `{}`))
	require.NoError(t, err)
	assert.True(t, resp.IsError)
	assert.Contains(t, string(resp.Content), "unknown tool: nope")
}

func TestToolboxMiddlewareOrder(t *testing.T) {
	tb := NewToolbox()
	require.NoError(t, tb.RegisterTool(newEchoTool(t, "echo")))

	var order []string
	mw := func(label string) ToolMiddleware {
		return func(next ToolExecutor) ToolExecutor {
			return func(ctx context.Context, c *aisdk.ToolCall) (*aisdk.ToolResponse, error) {
				order = append(order, label)
				return next(ctx, c)
			}
		}
	}
	tb.RegisterMiddleware(mw("outer"))
	tb.RegisterMiddleware(mw("inner"))

	_, err := tb.ExecuteTool(context.Background(), call("echo", `{"text":"x"}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"outer", "inner"}, order)
}

func TestExecuteToolWireEncodedArguments(t *testing.T) {
	toolbox := NewToolbox()
	require.NoError(t, toolbox.RegisterTool(newEchoTool(t, "echo")))

	// Providers deliver function.arguments as a JSON string containing
	// the encoded object; dispatch must see the inner object.
	var msg aisdk.Message
	require.NoError(t, json.Unmarshal([]byte(`{
		"role": "assistant",
		"tool_calls": [{"id":"call_1","type":"function","function":{"name":"echo","arguments":"{\"text\":\"hi\"}"}}]
	}`), &msg))

	require.Len(t, msg.ToolCalls, 1)
	resp, err := toolbox.ExecuteTool(context.Background(), &msg.ToolCalls[0])
	require.NoError(t, err)
	assert.False(t, resp.IsError)
	assert.Equal(t, "echo: hi", string(resp.Content))
}
