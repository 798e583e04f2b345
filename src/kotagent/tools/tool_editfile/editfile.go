package tool_editfile

import (
	"context"
	"fmt"

	"github.com/aymanbagabas/go-udiff"
	"github.com/spf13/afero"

	"github.com/kota-cli/kota/src/agent"
	"github.com/kota-cli/kota/src/kotagent/toolsutil"
	"github.com/kota-cli/kota/src/patch"
	"github.com/kota-cli/kota/src/sandbox"
)

// Tool name constant
const Name = "edit_file"

const editFilePrompt = `Performs a search-and-replace edit on an existing file. The old_text must match exactly (including whitespace and indentation). For multiple edits to the same file, call this tool multiple times.

Usage:
- The edit will FAIL if old_text is not found, or if it matches more than one location. Provide a larger snippet with more surrounding context to make the match unique.
- The file must already exist; use create_file for new files.`

// EditFileInput represents the parameters for edit_file.
type EditFileInput struct {
	Path    string `json:"path" required:"true" description:"Path to the file to edit"`
	OldText string `json:"old_text" required:"true" description:"The exact text to find and replace. Must match the file content exactly."`
	NewText string `json:"new_text" required:"true" description:"The replacement text."`
}

// Tool returns the edit_file tool definition.
func Tool(fs afero.Fs, validator *sandbox.Validator, confirmer toolsutil.Confirmer) (agent.Tool, error) {
	return agent.NewGenericTool(Name, editFilePrompt, makeEditFileHandler(fs, validator, confirmer))
}

func makeEditFileHandler(fs afero.Fs, validator *sandbox.Validator, confirmer toolsutil.Confirmer) func(ctx context.Context, input EditFileInput) (string, error) {
	return func(ctx context.Context, input EditFileInput) (string, error) {
		logger := toolsutil.GetLogger()

		path, err := validator.Validate(input.Path)
		if err != nil {
			logger.Error("path rejected", "path", input.Path, "error", err)
			return "", err
		}

		content, err := afero.ReadFile(fs, path)
		if err != nil {
			logger.Error("failed to read file", "path", path, "error", err)
			return "", fmt.Errorf("%w: %s", toolsutil.ErrFileNotFound, input.Path)
		}

		newContent, err := patch.Apply(string(content), input.OldText, input.NewText)
		if err != nil {
			logger.Warn("patch rejected", "path", path, "error", err)
			return "", err
		}

		// The patch is computed before the confirmation so the user sees
		// exactly what would be written.
		diff := udiff.Unified(input.Path, input.Path, string(content), newContent)
		if !confirmer.Confirm(fmt.Sprintf("Edit file %s?", input.Path), diff) {
			logger.Info("edit declined", "path", path)
			return "", fmt.Errorf("file edit %w", toolsutil.ErrDeclined)
		}

		if err := afero.WriteFile(fs, path, []byte(newContent), 0644); err != nil {
			logger.Error("failed to write file", "path", path, "error", err)
			return "", fmt.Errorf("failed to write file: %w", err)
		}

		logger.Info("file edited", "path", path, "old_size", len(content), "new_size", len(newContent))
		return "File updated successfully.", nil
	}
}
