package kotagent

import (
	"runtime"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSystemPrompt(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/project", 0o755))

	prompt, err := BuildSystemPrompt(fs, "/project", "")
	require.NoError(t, err)

	assert.Contains(t, prompt, "You are kota, an autonomous CLI coding assistant.")
	assert.Contains(t, prompt, "<env>")
	assert.Contains(t, prompt, "Working directory: /project")
	assert.Contains(t, prompt, "Is directory a git repo: No")
	assert.Contains(t, prompt, "Platform: "+runtime.GOOS)
	assert.NotContains(t, prompt, "User Project Guidelines")
	assert.NotContains(t, prompt, "User Guidelines")
}

func TestBuildSystemPromptGitRepo(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/project/.git", 0o755))

	prompt, err := BuildSystemPrompt(fs, "/project", "")
	require.NoError(t, err)
	assert.Contains(t, prompt, "Is directory a git repo: Yes")
}

func TestBuildSystemPromptProjectGuidelines(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/project/kota.md", []byte("Always run gofmt."), 0o644))

	prompt, err := BuildSystemPrompt(fs, "/project", "")
	require.NoError(t, err)

	assert.Contains(t, prompt, "User Project Guidelines (from kota.md):\nAlways run gofmt.")
}

func TestBuildSystemPromptGuideFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/project", 0o755))
	require.NoError(t, afero.WriteFile(fs, "/etc/house-style.md", []byte("Prefer tabs."), 0o644))

	prompt, err := BuildSystemPrompt(fs, "/project", "/etc/house-style.md")
	require.NoError(t, err)

	assert.Contains(t, prompt, "User Guidelines (from /etc/house-style.md):\nPrefer tabs.")
}

func TestBuildSystemPromptGuideFileMissing(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/project", 0o755))

	_, err := BuildSystemPrompt(fs, "/project", "/nope/guide.md")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/nope/guide.md")
}
