package tool_runcommand

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kota-cli/kota/src/agent"
	"github.com/kota-cli/kota/src/kotagent/toolsutil"
	"github.com/kota-cli/kota/src/shell"
)

// Tool name constant
const Name = "execute_command"

const runCommandPrompt = `Executes a shell command in the working directory.

Usage:
- The command runs through the platform shell (sh -c, or cmd /C on Windows).
- stdout and stderr are captured separately and both returned, along with the exit status.
- Commands cannot read from stdin; anything waiting for input will fail or time out.
- When issuing multiple commands, join them with ';' or '&&' rather than newlines.`

// RunCommandInput represents the parameters for execute_command.
type RunCommandInput struct {
	Command string `json:"command" required:"true" description:"The command to execute"`
}

// Tool returns the execute_command tool definition.
func Tool(runner *shell.Runner, confirmer toolsutil.Confirmer) (agent.Tool, error) {
	return agent.NewGenericTool(Name, runCommandPrompt, makeRunCommandHandler(runner, confirmer))
}

func makeRunCommandHandler(runner *shell.Runner, confirmer toolsutil.Confirmer) func(ctx context.Context, input RunCommandInput) (string, error) {
	return func(ctx context.Context, input RunCommandInput) (string, error) {
		logger := toolsutil.GetLogger()

		if strings.TrimSpace(input.Command) == "" {
			return "", fmt.Errorf("command must not be empty")
		}

		if !confirmer.Confirm(fmt.Sprintf("Execute command: %s?", input.Command), "") {
			logger.Info("command declined", "command", input.Command)
			return "", fmt.Errorf("command %w", toolsutil.ErrDeclined)
		}

		result, err := runner.Run(ctx, input.Command)
		if err != nil && !errors.Is(err, shell.ErrTimeout) {
			return "", err
		}

		var b strings.Builder
		fmt.Fprintf(&b, "EXIT STATUS: %d\n", result.ExitCode)
		if result.TimedOut {
			b.WriteString("(command timed out)\n")
		}
		fmt.Fprintf(&b, "STDOUT:\n%s\nSTDERR:\n%s", result.Stdout, result.Stderr)
		return b.String(), nil
	}
}
