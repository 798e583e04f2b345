package tools

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kota-cli/kota/src/kotagent/toolsutil"
	"github.com/kota-cli/kota/src/sandbox"
	"github.com/kota-cli/kota/src/shell"
	"github.com/kota-cli/kota/src/todo"
)

func TestNewToolbox(t *testing.T) {
	validator, err := sandbox.New(t.TempDir())
	require.NoError(t, err)

	toolbox, err := NewToolbox(Deps{
		FS:        afero.NewMemMapFs(),
		Validator: validator,
		Confirmer: toolsutil.AutoApprove{},
		Runner:    shell.NewRunner(t.TempDir(), time.Minute, nil),
		Todos:     todo.NewStore(),
	})
	require.NoError(t, err)

	want := []string{
		ReadFileName,
		EditFileName,
		CreateFileName,
		RunCommandName,
		WebFetchName,
		TodoAddName,
		TodoInsertName,
		TodoUpdateName,
		TodoCompleteName,
		TodoListName,
	}
	for _, name := range want {
		tool, ok := toolbox.GetTool(name)
		assert.True(t, ok, "missing tool %s", name)
		require.NotNil(t, tool)
		assert.NotEmpty(t, tool.GetDescription(), "tool %s has no description", name)
	}
	assert.Len(t, toolbox.Tools(), len(want))
}
