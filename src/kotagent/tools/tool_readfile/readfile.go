package tool_readfile

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/afero"

	"github.com/kota-cli/kota/src/agent"
	"github.com/kota-cli/kota/src/kotagent/toolsutil"
	"github.com/kota-cli/kota/src/sandbox"
)

// Tool name constant
const Name = "read_file"

const readFilePrompt = `Reads a file's content with line numbers. Returns at most 2000 lines. Use offset and limit to read specific line ranges of large files.

Usage:
- The path is relative to the working directory; absolute paths are accepted only inside it.
- Output lines are prefixed with their 1-based line number.
- If the file has more lines than returned, a trailing notice states how many were omitted and which offset continues the read.
- Files larger than 10 MB cannot be read.
- Only UTF-8 text files can be read; binary content is rejected.`

// DefaultLimit is the number of lines returned when no limit is given.
const DefaultLimit = 2000

// ReadFileInput represents the parameters for read_file.
type ReadFileInput struct {
	Path   string `json:"path" required:"true" description:"Path to the file"`
	Offset int    `json:"offset,omitempty" description:"Line number to start reading from (1-based). Defaults to 1."`
	Limit  int    `json:"limit,omitempty" description:"Maximum number of lines to return. Defaults to 2000."`
}

// Tool returns the read_file tool definition.
func Tool(fs afero.Fs, validator *sandbox.Validator) (agent.Tool, error) {
	return agent.NewGenericTool(Name, readFilePrompt, makeReadFileHandler(fs, validator))
}

func makeReadFileHandler(fs afero.Fs, validator *sandbox.Validator) func(ctx context.Context, input ReadFileInput) (string, error) {
	return func(ctx context.Context, input ReadFileInput) (string, error) {
		logger := toolsutil.GetLogger()

		path, err := validator.Validate(input.Path)
		if err != nil {
			logger.Error("path rejected", "path", input.Path, "error", err)
			return "", err
		}

		info, err := fs.Stat(path)
		if err != nil {
			logger.Error("file not found", "path", path, "error", err)
			return "", fmt.Errorf("%w: %s", toolsutil.ErrFileNotFound, input.Path)
		}

		// The size gate runs before any read so oversized files never
		// reach memory.
		if err := toolsutil.ValidateFileSize(info.Size()); err != nil {
			logger.Error("file too large", "path", path, "size", info.Size())
			return "", err
		}

		content, err := afero.ReadFile(fs, path)
		if err != nil {
			logger.Error("failed to read file", "path", path, "error", err)
			return "", fmt.Errorf("failed to read file: %w", err)
		}

		if !toolsutil.IsTextFile(content) {
			logger.Error("not a text file", "path", path)
			return "", fmt.Errorf("file is not valid UTF-8 text: %s", input.Path)
		}

		logger.Info("file read", "path", path, "size", len(content))
		return Render(string(content), input.Offset, input.Limit), nil
	}
}

// Render applies 1-based line numbering and the offset/limit window, and
// appends a truncation notice when lines remain past the window.
func Render(content string, offset, limit int) string {
	lines := strings.Split(content, "\n")
	// A trailing newline produces a phantom empty final element.
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	total := len(lines)

	if offset < 1 {
		offset = 1
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	start := offset - 1
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	numbered := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		numbered = append(numbered, fmt.Sprintf("%6d\t%s", i+1, lines[i]))
	}
	result := strings.Join(numbered, "\n")

	if end < total {
		result += fmt.Sprintf(
			"\n\n... (%d more lines not shown. Use offset=%d to continue reading.)",
			total-end, end+1)
	}
	return result
}
