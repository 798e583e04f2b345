// Package tools assembles the tool catalog offered to the model.
package tools

import (
	"fmt"
	"net/http"

	"github.com/spf13/afero"

	"github.com/kota-cli/kota/src/agent"
	"github.com/kota-cli/kota/src/kotagent/tools/tool_createfile"
	"github.com/kota-cli/kota/src/kotagent/tools/tool_editfile"
	"github.com/kota-cli/kota/src/kotagent/tools/tool_readfile"
	"github.com/kota-cli/kota/src/kotagent/tools/tool_runcommand"
	"github.com/kota-cli/kota/src/kotagent/tools/tool_todo"
	"github.com/kota-cli/kota/src/kotagent/tools/tool_webfetch"
	"github.com/kota-cli/kota/src/kotagent/toolsutil"
	"github.com/kota-cli/kota/src/sandbox"
	"github.com/kota-cli/kota/src/shell"
	"github.com/kota-cli/kota/src/todo"
)

// Tool name constants re-exported from the individual packages.
const (
	ReadFileName     = tool_readfile.Name
	EditFileName     = tool_editfile.Name
	CreateFileName   = tool_createfile.Name
	RunCommandName   = tool_runcommand.Name
	WebFetchName     = tool_webfetch.Name
	TodoAddName      = tool_todo.AddName
	TodoInsertName   = tool_todo.InsertName
	TodoUpdateName   = tool_todo.UpdateName
	TodoCompleteName = tool_todo.CompleteName
	TodoListName     = tool_todo.ListName
)

// Deps carries everything the tool constructors need.
type Deps struct {
	FS         afero.Fs
	Validator  *sandbox.Validator
	Confirmer  toolsutil.Confirmer
	Runner     *shell.Runner
	Todos      *todo.Store
	HTTPClient *http.Client
}

// NewToolbox builds a toolbox holding the full tool catalog.
func NewToolbox(deps Deps) (*agent.Toolbox, error) {
	toolbox := agent.NewToolbox()

	creators := []struct {
		name   string
		create func() (agent.Tool, error)
	}{
		{ReadFileName, func() (agent.Tool, error) { return tool_readfile.Tool(deps.FS, deps.Validator) }},
		{EditFileName, func() (agent.Tool, error) { return tool_editfile.Tool(deps.FS, deps.Validator, deps.Confirmer) }},
		{CreateFileName, func() (agent.Tool, error) { return tool_createfile.Tool(deps.FS, deps.Validator, deps.Confirmer) }},
		{RunCommandName, func() (agent.Tool, error) { return tool_runcommand.Tool(deps.Runner, deps.Confirmer) }},
		{WebFetchName, func() (agent.Tool, error) { return tool_webfetch.Tool(deps.HTTPClient) }},
		{TodoAddName, func() (agent.Tool, error) { return tool_todo.AddTool(deps.Todos) }},
		{TodoInsertName, func() (agent.Tool, error) { return tool_todo.InsertTool(deps.Todos) }},
		{TodoUpdateName, func() (agent.Tool, error) { return tool_todo.UpdateTool(deps.Todos) }},
		{TodoCompleteName, func() (agent.Tool, error) { return tool_todo.CompleteTool(deps.Todos) }},
		{TodoListName, func() (agent.Tool, error) { return tool_todo.ListTool(deps.Todos) }},
	}

	for _, tc := range creators {
		tool, err := tc.create()
		if err != nil {
			return nil, fmt.Errorf("failed to create %s tool: %w", tc.name, err)
		}
		if err := toolbox.RegisterTool(tool); err != nil {
			return nil, fmt.Errorf("failed to register %s tool: %w", tc.name, err)
		}
	}

	return toolbox, nil
}
