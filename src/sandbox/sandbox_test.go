package sandbox

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestValidator(t *testing.T) (*Validator, string) {
	t.Helper()
	root := t.TempDir()
	v, err := New(root)
	require.NoError(t, err)
	return v, v.Root()
}

func TestNew(t *testing.T) {
	t.Run("empty root", func(t *testing.T) {
		_, err := New("")
		assert.ErrorIs(t, err, ErrInvalidPath)
	})

	t.Run("nonexistent root", func(t *testing.T) {
		_, err := New(filepath.Join(t.TempDir(), "missing"))
		assert.Error(t, err)
	})

	t.Run("valid root is canonical", func(t *testing.T) {
		v, root := newTestValidator(t)
		assert.True(t, filepath.IsAbs(root))
		assert.Equal(t, root, v.Root())
	})
}

func TestValidateRelativePaths(t *testing.T) {
	v, root := newTestValidator(t)

	tests := []struct {
		name      string
		candidate string
		wantErr   error
	}{
		{"simple file", "notes.txt", nil},
		{"nested file", "notes/todo.txt", nil},
		{"dot prefixed", "./notes.txt", nil},
		{"internal dotdot that stays inside", "notes/../notes.txt", nil},
		{"escape via traversal", "../../etc/passwd", ErrPathEscape},
		{"bare parent", "..", ErrPathEscape},
		{"empty", "", ErrInvalidPath},
		{"nul byte", "a\x00b", ErrInvalidPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := v.Validate(tt.candidate)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, filepath.IsAbs(got))
			rel, err := filepath.Rel(root, got)
			require.NoError(t, err)
			assert.NotContains(t, rel, "..")
		})
	}
}

func TestValidateExistingFile(t *testing.T) {
	v, root := newTestValidator(t)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "notes"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes", "todo.txt"), []byte("x"), 0644))

	got, err := v.Validate("notes/todo.txt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "notes", "todo.txt"), got)
}

func TestValidateAbsolutePaths(t *testing.T) {
	v, root := newTestValidator(t)

	t.Run("absolute inside root", func(t *testing.T) {
		got, err := v.Validate(filepath.Join(root, "file.txt"))
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "file.txt"), got)
	})

	t.Run("absolute outside root", func(t *testing.T) {
		_, err := v.Validate(string(filepath.Separator) + filepath.Join("etc", "passwd"))
		assert.ErrorIs(t, err, ErrPathEscape)
	})
}

func TestValidateSiblingPrefix(t *testing.T) {
	// /base/work must not contain /base/work2 even though "work" is a
	// string prefix of "work2".
	base := t.TempDir()
	work := filepath.Join(base, "work")
	work2 := filepath.Join(base, "work2")
	require.NoError(t, os.Mkdir(work, 0755))
	require.NoError(t, os.Mkdir(work2, 0755))

	v, err := New(work)
	require.NoError(t, err)

	_, err = v.Validate(filepath.Join(work2, "file.txt"))
	assert.ErrorIs(t, err, ErrPathEscape)

	_, err = v.Validate("../work2/file.txt")
	assert.ErrorIs(t, err, ErrPathEscape)
}

func TestValidateNonexistentUnderRoot(t *testing.T) {
	v, root := newTestValidator(t)

	got, err := v.Validate("brand/new/file.txt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "brand", "new", "file.txt"), got)
}

func TestValidateSymlinkEscape(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink creation requires privileges on windows")
	}

	outside := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(outside, "secret"), []byte("s"), 0644))

	v, root := newTestValidator(t)
	require.NoError(t, os.Symlink(outside, filepath.Join(root, "link")))

	t.Run("symlinked directory", func(t *testing.T) {
		_, err := v.Validate("link/secret")
		assert.ErrorIs(t, err, ErrPathEscape)
	})

	t.Run("nonexistent file under symlinked directory", func(t *testing.T) {
		_, err := v.Validate("link/newfile.txt")
		assert.ErrorIs(t, err, ErrPathEscape)
	})
}

func TestValidateRootItself(t *testing.T) {
	v, root := newTestValidator(t)

	got, err := v.Validate(".")
	require.NoError(t, err)
	assert.Equal(t, root, got)
}
