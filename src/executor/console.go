package executor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/kota-cli/kota/src/theme"
)

// Console renders loop events to a terminal writer.
type Console struct {
	Out io.Writer

	// ShowToolResults controls whether tool result previews are printed.
	ShowToolResults  bool
	MaxResultPreview int

	textStyle  lipgloss.Style
	toolStyle  lipgloss.Style
	mutedStyle lipgloss.Style
	errorStyle lipgloss.Style
}

// NewConsole creates a console renderer with the default styles.
func NewConsole(out io.Writer) *Console {
	return &Console{
		Out:              out,
		MaxResultPreview: 200,
		textStyle:        lipgloss.NewStyle().Foreground(theme.CurrentTheme.Text),
		toolStyle:        lipgloss.NewStyle().Foreground(theme.CurrentTheme.Accent),
		mutedStyle:       lipgloss.NewStyle().Foreground(theme.CurrentTheme.TextMuted),
		errorStyle:       lipgloss.NewStyle().Foreground(theme.CurrentTheme.Error),
	}
}

// AssistantText prints the model's visible reply.
func (c *Console) AssistantText(text string) {
	fmt.Fprintln(c.Out, c.textStyle.Render(text))
}

// ToolCallStarted prints a one-line record of the call being made.
func (c *Console) ToolCallStarted(name string, args json.RawMessage) {
	summary := compactArgs(args, 120)
	fmt.Fprintf(c.Out, "%s %s\n", c.toolStyle.Render("⚙ "+name), c.mutedStyle.Render(summary))
}

// ToolCallFinished prints the outcome of a call.
func (c *Console) ToolCallFinished(name string, result string, isError bool) {
	if isError {
		fmt.Fprintf(c.Out, "%s %s\n", c.errorStyle.Render("✗ "+name), c.errorStyle.Render(firstLine(result)))
		return
	}
	if !c.ShowToolResults {
		return
	}
	fmt.Fprintln(c.Out, c.mutedStyle.Render(truncate(result, c.MaxResultPreview)))
}

// Error prints a turn-level failure, such as a provider error.
func (c *Console) Error(err error) {
	fmt.Fprintln(c.Out, c.errorStyle.Render("error: "+err.Error()))
}

func compactArgs(args json.RawMessage, max int) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, args); err != nil {
		buf.Reset()
		buf.Write(args)
	}
	return truncate(buf.String(), max)
}

// truncate caps s at max bytes without splitting a multi-byte rune.
func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}
	return s
}
