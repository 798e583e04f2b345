// Package executor drives the agent conversation: it sends the windowed
// history to the model, dispatches requested tool calls in order, appends
// their results, and repeats until the model answers without tools.
package executor

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kota-cli/kota/src/agent"
	"github.com/kota-cli/kota/src/aisdk"
	"github.com/kota-cli/kota/src/history"
)

// Loop is the sequential conversation state machine. One model request is
// outstanding at a time and tools execute one by one in emission order.
type Loop struct {
	Client       aisdk.ModelClient
	Toolbox      *agent.Toolbox
	Conversation *aisdk.Conversation
	Policy       history.Policy
	Model        string
	CacheKey     string
	Logger       *slog.Logger
	Events       EventSink
}

// ProcessPrompt appends the user's prompt and runs the tool loop until the
// model produces a final answer. On a provider failure the messages added
// this turn are rolled back so the stored history is exactly what it was
// before the prompt.
func (l *Loop) ProcessPrompt(ctx context.Context, prompt string) error {
	if l.Client == nil {
		return ErrModelClientRequired
	}
	if l.Conversation == nil {
		return ErrConversationRequired
	}

	base := l.Conversation.Len()
	l.Conversation.Append(aisdk.NewTextMessage("user", prompt))

	if err := l.run(ctx); err != nil {
		l.Conversation.Messages = l.Conversation.Messages[:base]
		return err
	}
	return nil
}

func (l *Loop) run(ctx context.Context) error {
	logger := l.logger()

	for {
		window := history.Select(l.Conversation.Messages, l.Policy)
		req := &aisdk.InstructRequest{
			Model:    l.Model,
			Messages: window,
			CacheKey: l.CacheKey,
		}
		if l.Toolbox != nil {
			req.Tools = l.Toolbox.ChatTools()
		}

		logger.Debug("sending instruct request",
			"model", l.Model,
			"window", len(window),
			"stored", l.Conversation.Len())

		resp, err := l.Client.Instruct(ctx, req)
		if err != nil {
			return fmt.Errorf("provider request failed: %w", err)
		}

		sawToolCalls := false
		for _, msg := range resp.Messages() {
			m := msg
			l.Conversation.Append(&m)

			if text := m.Text(); text != "" {
				l.events().AssistantText(text)
			}

			for i := range m.ToolCalls {
				sawToolCalls = true
				call := m.ToolCalls[i]
				result := l.executeToolCall(ctx, &call)
				l.Conversation.Append(aisdk.NewToolResultMessage(call.ID, result))
			}
		}

		if !sawToolCalls {
			return nil
		}
	}
}

// executeToolCall dispatches one call and always returns result text.
// Failures inside a tool become error text fed back to the model rather
// than aborting the turn.
func (l *Loop) executeToolCall(ctx context.Context, call *aisdk.ToolCall) string {
	name := call.Function.Name
	l.events().ToolCallStarted(name, call.Function.Arguments)

	if l.Toolbox == nil {
		result := fmt.Sprintf("Error: unknown tool: %s", name)
		l.events().ToolCallFinished(name, result, true)
		return result
	}

	resp, err := l.Toolbox.ExecuteTool(ctx, call)
	if err != nil {
		result := fmt.Sprintf("Error: %v", err)
		l.events().ToolCallFinished(name, result, true)
		return result
	}

	result := string(resp.Content)
	l.events().ToolCallFinished(name, result, resp.IsError)
	return result
}

func (l *Loop) logger() *slog.Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return slog.Default()
}

func (l *Loop) events() EventSink {
	if l.Events != nil {
		return l.Events
	}
	return nopSink{}
}
