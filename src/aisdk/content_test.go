package aisdk

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOneOrManyMarshal(t *testing.T) {
	t.Run("single value marshals bare", func(t *testing.T) {
		data, err := json.Marshal(One(TextContent("hi")))
		require.NoError(t, err)
		assert.JSONEq(t, `{"type":"text","text":"hi"}`, string(data))
	})

	t.Run("list marshals as array", func(t *testing.T) {
		data, err := json.Marshal(Many([]Content{TextContent("a"), TextContent("b")}))
		require.NoError(t, err)
		assert.JSONEq(t, `[{"type":"text","text":"a"},{"type":"text","text":"b"}]`, string(data))
	})
}

func TestOneOrManyUnmarshal(t *testing.T) {
	t.Run("single object", func(t *testing.T) {
		var o OneOrMany[Content]
		require.NoError(t, json.Unmarshal([]byte(`{"type":"text","text":"hi"}`), &o))
		parts := o.Parts()
		require.Len(t, parts, 1)
		assert.Equal(t, "hi", parts[0].Text)
	})

	t.Run("array", func(t *testing.T) {
		var o OneOrMany[Content]
		require.NoError(t, json.Unmarshal([]byte(`[{"type":"text","text":"a"},{"type":"text","text":"b"}]`), &o))
		parts := o.Parts()
		require.Len(t, parts, 2)
		assert.Equal(t, "b", parts[1].Text)
	})

	t.Run("bare string becomes a text part", func(t *testing.T) {
		var o OneOrMany[Content]
		require.NoError(t, json.Unmarshal([]byte(`"plain reply"`), &o))
		parts := o.Parts()
		require.Len(t, parts, 1)
		assert.Equal(t, ContentTypeText, parts[0].Type)
		assert.Equal(t, "plain reply", parts[0].Text)
	})

	t.Run("null yields no parts", func(t *testing.T) {
		var o OneOrMany[Content]
		require.NoError(t, json.Unmarshal([]byte(`null`), &o))
		assert.Empty(t, o.Parts())
	})
}

func TestOneOrManyRoundTrip(t *testing.T) {
	orig := Many([]Content{TextContent("x"), {Type: ContentTypeImage, Data: "abc", MediaType: "image/png"}})

	data, err := json.Marshal(orig)
	require.NoError(t, err)

	var back OneOrMany[Content]
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, orig.Parts(), back.Parts())
}

func TestContentText(t *testing.T) {
	t.Run("nil union", func(t *testing.T) {
		assert.Equal(t, "", ContentText(nil))
	})

	t.Run("skips non-text parts", func(t *testing.T) {
		o := Many([]Content{
			TextContent("first"),
			{Type: ContentTypeImage, Data: "zzz"},
			TextContent("second"),
		})
		assert.Equal(t, "first\nsecond", ContentText(o))
	})
}

func TestMessageText(t *testing.T) {
	assert.Equal(t, "hello", NewTextMessage("user", "hello").Text())

	var nilMsg *Message
	assert.Equal(t, "", nilMsg.Text())
	assert.Equal(t, "", (&Message{Role: "assistant"}).Text())
}

func TestMessageJSONShape(t *testing.T) {
	msg := NewToolResultMessage("call_1", "done")
	data, err := json.Marshal(msg)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"role": "tool",
		"content": {"type":"text","text":"done"},
		"tool_call_id": "call_1"
	}`, string(data))
}

func TestConversation(t *testing.T) {
	conv := NewConversation("be helpful")
	require.Equal(t, 1, conv.Len())
	assert.Equal(t, "system", conv.Messages[0].Role)

	conv.Append(NewTextMessage("user", "hi"), NewTextMessage("assistant", "hello"))
	assert.Equal(t, 3, conv.Len())

	conv.Clear()
	require.Equal(t, 1, conv.Len())
	assert.Equal(t, "be helpful", conv.Messages[0].Text())
}

func TestFunctionCallWireDecoding(t *testing.T) {
	t.Run("string-encoded arguments", func(t *testing.T) {
		var msg Message
		err := json.Unmarshal([]byte(`{
			"role": "assistant",
			"content": null,
			"tool_calls": [{"id":"call_1","type":"function","function":{"name":"read_file","arguments":"{\"path\":\"a.txt\"}"}}]
		}`), &msg)
		require.NoError(t, err)

		require.Len(t, msg.ToolCalls, 1)
		assert.JSONEq(t, `{"path":"a.txt"}`, string(msg.ToolCalls[0].Function.Arguments))
	})

	t.Run("bare object arguments", func(t *testing.T) {
		var fc FunctionCall
		err := json.Unmarshal([]byte(`{"name":"read_file","arguments":{"path":"a.txt"}}`), &fc)
		require.NoError(t, err)
		assert.JSONEq(t, `{"path":"a.txt"}`, string(fc.Arguments))
	})

	t.Run("marshal re-encodes as string", func(t *testing.T) {
		fc := FunctionCall{Name: "read_file", Arguments: json.RawMessage(`{"path":"a.txt"}`)}
		data, err := json.Marshal(fc)
		require.NoError(t, err)
		assert.JSONEq(t, `{"name":"read_file","arguments":"{\"path\":\"a.txt\"}"}`, string(data))
	})

	t.Run("empty arguments marshal as empty object", func(t *testing.T) {
		data, err := json.Marshal(FunctionCall{Name: "todo_list"})
		require.NoError(t, err)
		assert.JSONEq(t, `{"name":"todo_list","arguments":"{}"}`, string(data))
	})

	t.Run("round trip keeps wire form", func(t *testing.T) {
		wire := `{"name":"echo","arguments":"{\"value\":\"hi\"}"}`
		var fc FunctionCall
		require.NoError(t, json.Unmarshal([]byte(wire), &fc))
		data, err := json.Marshal(fc)
		require.NoError(t, err)
		assert.JSONEq(t, wire, string(data))
	})
}
