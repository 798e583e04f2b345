package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"

	jsonschema "github.com/swaggest/jsonschema-go"

	"github.com/kota-cli/kota/src/aisdk"
)

// GenericToolHandler is the typed execution function of a tool.
type GenericToolHandler[TInput any] func(ctx context.Context, input TInput) (string, error)

// GenericTool adapts a typed handler to the Tool interface. The raw JSON
// arguments are parsed into TInput exactly once here, at the dispatch
// boundary; handlers never see untyped JSON.
type GenericTool[TInput any] struct {
	name        string
	description string
	schema      *jsonschema.Schema
	handler     GenericToolHandler[TInput]
}

// NewGenericTool builds a tool whose parameter schema is reflected from
// TInput's struct tags.
func NewGenericTool[TInput any](name, description string, handler GenericToolHandler[TInput]) (*GenericTool[TInput], error) {
	var input TInput
	inputType := reflect.TypeOf(input)
	if inputType.Kind() == reflect.Ptr {
		inputType = inputType.Elem()
	}
	if inputType.Kind() != reflect.Struct {
		return nil, fmt.Errorf("tool input type must be a struct, got %s", inputType.Kind())
	}

	reflector := jsonschema.Reflector{}
	schema, err := reflector.Reflect(input)
	if err != nil {
		return nil, fmt.Errorf("failed to generate schema for %s: %w", name, err)
	}

	return &GenericTool[TInput]{
		name:        name,
		description: description,
		schema:      &schema,
		handler:     handler,
	}, nil
}

// MustGenericTool panics on schema reflection failure; for use at assembly
// time with well-formed input structs.
func MustGenericTool[TInput any](name, description string, handler GenericToolHandler[TInput]) *GenericTool[TInput] {
	t, err := NewGenericTool(name, description, handler)
	if err != nil {
		panic(fmt.Sprintf("failed to create %s tool: %v", name, err))
	}
	return t
}

func (gt *GenericTool[TInput]) GetName() string                   { return gt.name }
func (gt *GenericTool[TInput]) GetDescription() string            { return gt.description }
func (gt *GenericTool[TInput]) GetParameters() *jsonschema.Schema { return gt.schema }

// Execute parses the call arguments and runs the handler. Parse and handler
// failures are converted to error responses, never Go errors: the failure
// text is fed back to the model as the tool result so it can self-correct.
// That policy is applied uniformly; malformed arguments are never treated as
// an empty argument set.
func (gt *GenericTool[TInput]) Execute(ctx context.Context, call *aisdk.ToolCall) (*aisdk.ToolResponse, error) {
	var input TInput
	args := call.Function.Arguments
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}
	if err := json.Unmarshal(args, &input); err != nil {
		return &aisdk.ToolResponse{
			Content: []byte(fmt.Sprintf("Error: invalid arguments for %s: %v", gt.name, err)),
			IsError: true,
		}, nil
	}

	output, err := gt.handler(ctx, input)
	if err != nil {
		return &aisdk.ToolResponse{
			Content: []byte(fmt.Sprintf("Error: %v", err)),
			IsError: true,
		}, nil
	}
	return &aisdk.ToolResponse{Content: []byte(output)}, nil
}

var _ Tool = (*GenericTool[struct{}])(nil)
