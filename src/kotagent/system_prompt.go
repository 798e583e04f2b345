// Package kotagent holds the agent-facing assembly for the kota CLI:
// the system prompt, the tool catalog, and their shared utilities.
package kotagent

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/host"
	"github.com/spf13/afero"
)

const mainPromptTemplate = `You are kota, an autonomous CLI coding assistant.

You help users with software engineering tasks inside their project directory. Use the tools available to you to read, create, and edit files, run commands, and manage your task list.

# Tone and style
Be concise and direct. Your output is displayed on a command line interface, so keep responses short and use Github-flavored markdown for formatting. Do not add preamble or postamble unless asked.

# Doing tasks
- Break non-trivial work into steps with the todo tools and mark tasks done as you finish them.
- Read files before editing them. Edits must match existing file content exactly.
- All file paths are resolved against the working directory. You cannot read or write files outside it.
- Verify your changes when possible, for example by running the project's tests or build.

# Tool results
Tool errors are reported back to you as tool results. When a tool call fails, adjust the arguments and try again rather than giving up.
`

// BuildSystemPrompt assembles the system prompt for a session rooted at
// workingDir. Project guidance from kota.md and an optional --guide file
// is appended when present.
func BuildSystemPrompt(fs afero.Fs, workingDir, guidePath string) (string, error) {
	var b strings.Builder
	b.WriteString(mainPromptTemplate)
	b.WriteString("\n")
	b.WriteString(environmentInfo(fs, workingDir))

	if content, err := afero.ReadFile(fs, filepath.Join(workingDir, "kota.md")); err == nil {
		b.WriteString("\n\nUser Project Guidelines (from kota.md):\n")
		b.Write(content)
	}

	if guidePath != "" {
		content, err := afero.ReadFile(fs, guidePath)
		if err != nil {
			return "", fmt.Errorf("failed to read guide file %s: %w", guidePath, err)
		}
		b.WriteString(fmt.Sprintf("\n\nUser Guidelines (from %s):\n", guidePath))
		b.Write(content)
	}

	return b.String(), nil
}

func environmentInfo(fs afero.Fs, workingDir string) string {
	isGitRepo := "No"
	if ok, _ := afero.DirExists(fs, filepath.Join(workingDir, ".git")); ok {
		isGitRepo = "Yes"
	}

	return fmt.Sprintf(`Here is useful information about the environment you are running in:
<env>
Working directory: %s
Is directory a git repo: %s
Platform: %s
OS Version: %s
Today's date: %s
</env>`, workingDir, isGitRepo, runtime.GOOS, osVersion(), time.Now().Format("2006-01-02"))
}

// osVersion returns detailed OS version information, falling back to the
// bare GOOS name when the platform lookup fails.
func osVersion() string {
	info, err := host.Info()
	if err == nil {
		if info.PlatformVersion != "" {
			return fmt.Sprintf("%s %s", info.Platform, info.PlatformVersion)
		}
		return info.Platform
	}
	return runtime.GOOS
}
