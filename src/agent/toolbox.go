package agent

import (
	"context"
	"fmt"
	"sort"

	"github.com/kota-cli/kota/src/aisdk"
)

// ToolExecutor is the function shape middleware wraps.
type ToolExecutor func(ctx context.Context, call *aisdk.ToolCall) (*aisdk.ToolResponse, error)

// ToolMiddleware wraps a ToolExecutor to add cross-cutting behavior such as
// logging.
type ToolMiddleware func(next ToolExecutor) ToolExecutor

// Toolbox holds the fixed tool catalog and dispatches calls by name.
type Toolbox struct {
	tools      map[string]Tool
	middleware []ToolMiddleware
}

// NewToolbox creates an empty toolbox.
func NewToolbox() *Toolbox {
	return &Toolbox{tools: make(map[string]Tool)}
}

// RegisterTool adds a tool. Names must be unique and non-empty.
func (tb *Toolbox) RegisterTool(tool Tool) error {
	name := tool.GetName()
	if name == "" {
		return fmt.Errorf("tool name cannot be empty")
	}
	if _, exists := tb.tools[name]; exists {
		return fmt.Errorf("tool %s is already registered", name)
	}
	tb.tools[name] = tool
	return nil
}

// RegisterMiddleware appends middleware. It is applied in registration
// order, first registered outermost.
func (tb *Toolbox) RegisterMiddleware(mw ToolMiddleware) {
	tb.middleware = append(tb.middleware, mw)
}

// GetTool returns a tool by name.
func (tb *Toolbox) GetTool(name string) (Tool, bool) {
	tool, ok := tb.tools[name]
	return tool, ok
}

// HasTool reports whether a tool is registered.
func (tb *Toolbox) HasTool(name string) bool {
	_, ok := tb.tools[name]
	return ok
}

// Tools returns the catalog sorted by name so the declaration list sent to
// the provider is identical turn after turn.
func (tb *Toolbox) Tools() []Tool {
	out := make([]Tool, 0, len(tb.tools))
	for _, tool := range tb.tools {
		out = append(out, tool)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GetName() < out[j].GetName() })
	return out
}

// ChatTools returns the catalog in request declaration form.
func (tb *Toolbox) ChatTools() []*aisdk.ChatTool {
	return ToChatTools(tb.Tools())
}

// ExecuteTool dispatches one call through the middleware chain. An unknown
// tool name is an error response, not a Go error, so the model can adjust.
func (tb *Toolbox) ExecuteTool(ctx context.Context, call *aisdk.ToolCall) (*aisdk.ToolResponse, error) {
	tool, ok := tb.tools[call.Function.Name]
	if !ok {
		return &aisdk.ToolResponse{
			Content: []byte(fmt.Sprintf("Error: unknown tool: %s", call.Function.Name)),
			IsError: true,
		}, nil
	}

	executor := ToolExecutor(tool.Execute)
	for i := len(tb.middleware) - 1; i >= 0; i-- {
		executor = tb.middleware[i](executor)
	}
	return executor(ctx, call)
}

// LoggingMiddleware logs each execution with its outcome.
func LoggingMiddleware(logger interface {
	Info(msg string, args ...any)
}) ToolMiddleware {
	return func(next ToolExecutor) ToolExecutor {
		return func(ctx context.Context, call *aisdk.ToolCall) (*aisdk.ToolResponse, error) {
			logger.Info("executing tool", "tool", call.Function.Name, "args", string(call.Function.Arguments))
			resp, err := next(ctx, call)
			switch {
			case err != nil:
				logger.Info("tool execution failed", "tool", call.Function.Name, "error", err)
			case resp != nil && resp.IsError:
				logger.Info("tool returned error result", "tool", call.Function.Name)
			default:
				logger.Info("tool execution completed", "tool", call.Function.Name)
			}
			return resp, err
		}
	}
}
