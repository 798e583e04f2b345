package executor

import "encoding/json"

// EventSink receives notifications as the loop progresses. Implementations
// render them; the loop does not write to the terminal itself.
type EventSink interface {
	AssistantText(text string)
	ToolCallStarted(name string, args json.RawMessage)
	ToolCallFinished(name string, result string, isError bool)
}

type nopSink struct{}

func (nopSink) AssistantText(string)                    {}
func (nopSink) ToolCallStarted(string, json.RawMessage) {}
func (nopSink) ToolCallFinished(string, string, bool)   {}
