package tool_createfile

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/kota-cli/kota/src/agent"
	"github.com/kota-cli/kota/src/kotagent/toolsutil"
	"github.com/kota-cli/kota/src/patch"
	"github.com/kota-cli/kota/src/sandbox"
)

// Tool name constant
const Name = "create_file"

const createFilePrompt = `Creates a new file with the given content. Fails if the file already exists.

Usage:
- Missing parent directories are created automatically.
- Use edit_file to modify existing files.`

// CreateFileInput represents the parameters for create_file.
type CreateFileInput struct {
	Path    string `json:"path" required:"true" description:"Path for the new file"`
	Content string `json:"content" required:"true" description:"Content of the new file"`
}

// Tool returns the create_file tool definition.
func Tool(fs afero.Fs, validator *sandbox.Validator, confirmer toolsutil.Confirmer) (agent.Tool, error) {
	return agent.NewGenericTool(Name, createFilePrompt, makeCreateFileHandler(fs, validator, confirmer))
}

func makeCreateFileHandler(fs afero.Fs, validator *sandbox.Validator, confirmer toolsutil.Confirmer) func(ctx context.Context, input CreateFileInput) (string, error) {
	return func(ctx context.Context, input CreateFileInput) (string, error) {
		logger := toolsutil.GetLogger()

		path, err := validator.Validate(input.Path)
		if err != nil {
			logger.Error("path rejected", "path", input.Path, "error", err)
			return "", err
		}

		if exists, _ := afero.Exists(fs, path); exists {
			logger.Warn("create target exists", "path", path)
			return "", fmt.Errorf("%w: %s; use edit_file to modify existing files", patch.ErrAlreadyExists, input.Path)
		}

		if !confirmer.Confirm(fmt.Sprintf("Create file %s?", input.Path), input.Content) {
			logger.Info("create declined", "path", path)
			return "", fmt.Errorf("file creation %w", toolsutil.ErrDeclined)
		}

		if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
			logger.Error("failed to create directories", "path", path, "error", err)
			return "", fmt.Errorf("failed to create directories: %w", err)
		}

		if err := afero.WriteFile(fs, path, []byte(input.Content), 0644); err != nil {
			logger.Error("failed to create file", "path", path, "error", err)
			return "", fmt.Errorf("failed to create file: %w", err)
		}

		logger.Info("file created", "path", path, "size", len(input.Content))
		return "File created successfully.", nil
	}
}
