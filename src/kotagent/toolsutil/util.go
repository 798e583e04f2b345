// Package toolsutil carries the shared pieces of the tool implementations:
// the package logger, the error taxonomy, and small text heuristics.
package toolsutil

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"unicode/utf8"
)

// Package-level logger for tools; discarded until SetLogger is called.
var logger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
	Level: slog.LevelError,
}))

// SetLogger installs a custom logger for the tool packages.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}

// GetLogger returns the package logger.
func GetLogger() *slog.Logger {
	return logger
}

var (
	// ErrFileNotFound is returned when a tool target does not exist.
	ErrFileNotFound = errors.New("file not found")
	// ErrFileTooLarge is returned before reading a file over the cap.
	ErrFileTooLarge = errors.New("file too large")
	// ErrDeclined is returned when the user refuses a confirmation.
	ErrDeclined = errors.New("cancelled by user")
)

// MaxFileSize is the cap on files read into memory by read_file.
const MaxFileSize = 10 * 1024 * 1024

// ValidateFileSize rejects files over MaxFileSize before they are read.
func ValidateFileSize(size int64) error {
	if size > MaxFileSize {
		return fmt.Errorf("%w: %s exceeds the maximum of %s", ErrFileTooLarge,
			FormatBytes(size), FormatBytes(MaxFileSize))
	}
	return nil
}

// IsTextFile reports whether content looks like text: no NUL bytes in the
// leading sample and valid UTF-8.
func IsTextFile(content []byte) bool {
	if len(content) == 0 {
		return true
	}
	sample := content
	if len(sample) > 8192 {
		sample = sample[:8192]
	}
	for _, b := range sample {
		if b == 0 {
			return false
		}
	}
	return utf8.Valid(content)
}

// FormatBytes formats a byte count as a human-readable string.
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
