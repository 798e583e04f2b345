// Package patch implements exact-match search-and-replace for file edits.
// The operations are pure: callers read the file, apply the patch, and write
// the result back themselves.
package patch

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound means old text does not occur in the content.
	ErrNotFound = errors.New("old_text not found")
	// ErrAmbiguous means old text occurs more than once; the caller must
	// supply more surrounding context to make the match unique. Replacing
	// all occurrences silently could corrupt unrelated code.
	ErrAmbiguous = errors.New("old_text is ambiguous")
	// ErrAlreadyExists means the create target already has content.
	ErrAlreadyExists = errors.New("file already exists")
)

// Apply replaces exactly one occurrence of oldText in content with newText.
// Matching is exact on bytes, not a regex. Zero occurrences fail with
// ErrNotFound, two or more with ErrAmbiguous; in both cases nothing is
// modified. On success all surrounding content is preserved byte for byte.
func Apply(content, oldText, newText string) (string, error) {
	if oldText == "" {
		return "", fmt.Errorf("%w: old_text is empty", ErrNotFound)
	}
	switch count := strings.Count(content, oldText); {
	case count == 0:
		return "", fmt.Errorf("%w: make sure it matches exactly, including whitespace and indentation", ErrNotFound)
	case count > 1:
		return "", fmt.Errorf("%w: matches %d locations; provide more surrounding context to make the match unique", ErrAmbiguous, count)
	}
	return strings.Replace(content, oldText, newText, 1), nil
}
