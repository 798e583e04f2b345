// Package sandbox resolves and authorizes tool-supplied paths against the
// working-directory root. It is the primary security boundary for every
// filesystem tool, so failures are explicit about which rule was violated.
package sandbox

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrPathEscape means the canonical path falls outside the root.
	ErrPathEscape = errors.New("path escapes working directory")
	// ErrInvalidPath means the input was empty or malformed.
	ErrInvalidPath = errors.New("invalid path")
)

// Validator checks candidate paths against a fixed canonical root.
type Validator struct {
	root string
}

// New canonicalizes root and returns a validator bound to it. The root is
// immutable for the validator's lifetime.
func New(root string) (*Validator, error) {
	if root == "" {
		return nil, fmt.Errorf("%w: empty root", ErrInvalidPath)
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPath, err)
	}
	canonical, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("resolving root %q: %w", root, err)
	}
	return &Validator{root: canonical}, nil
}

// Root returns the canonical working-directory root.
func (v *Validator) Root() string {
	return v.root
}

// Validate resolves candidate against the root and returns its canonical
// absolute path, or fails if the result is not the root or one of its
// descendants. Relative candidates are joined onto the root; absolute
// candidates are accepted only if they still fall under the root after
// canonicalization. The check is all-or-nothing and has no side effects.
func (v *Validator) Validate(candidate string) (string, error) {
	if candidate == "" {
		return "", fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	if strings.ContainsRune(candidate, 0) {
		return "", fmt.Errorf("%w: path contains NUL byte", ErrInvalidPath)
	}

	joined := candidate
	if !filepath.IsAbs(joined) {
		joined = filepath.Join(v.root, joined)
	}

	canonical, err := canonicalize(filepath.Clean(joined))
	if err != nil {
		return "", err
	}

	if !contains(v.root, canonical) {
		return "", fmt.Errorf(
			"%w: %q resolves to %q, which is not under %q; file operations are restricted to the working directory and its subdirectories",
			ErrPathEscape, candidate, canonical, v.root)
	}
	return canonical, nil
}

// canonicalize resolves ".", "..", and symlinks. For a path that does not
// exist yet (e.g. a file about to be created) it canonicalizes the nearest
// existing ancestor and re-appends the nonexistent suffix, so a symlinked
// ancestor cannot smuggle the target outside the root.
func canonicalize(path string) (string, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err == nil {
		return resolved, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("%w: %v", ErrInvalidPath, err)
	}

	var suffix []string
	current := path
	for {
		parent := filepath.Dir(current)
		if parent == current {
			// Hit the filesystem root without finding an existing ancestor.
			return filepath.Join(append([]string{current}, suffix...)...), nil
		}
		suffix = append([]string{filepath.Base(current)}, suffix...)
		resolved, err = filepath.EvalSymlinks(parent)
		if err == nil {
			return filepath.Join(append([]string{resolved}, suffix...)...), nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %v", ErrInvalidPath, err)
		}
		current = parent
	}
}

// contains reports whether path equals root or is a descendant of it. The
// comparison is on path components, not string prefixes, so /work does not
// contain /work2.
func contains(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
