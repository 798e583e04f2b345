package executor

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kota-cli/kota/src/kotagent/toolsutil"
	"github.com/kota-cli/kota/src/theme"
)

var _ toolsutil.Confirmer = (*TerminalConfirmer)(nil)

// TerminalConfirmer asks the user to approve a mutating operation before it
// runs. It blocks the loop until a line is read. The reader must be the
// same buffered reader the REPL uses, so the two never fight over stdin.
type TerminalConfirmer struct {
	reader *bufio.Reader
	out    io.Writer
}

// NewTerminalConfirmer creates a confirmer over a shared input reader.
func NewTerminalConfirmer(reader *bufio.Reader, out io.Writer) *TerminalConfirmer {
	return &TerminalConfirmer{reader: reader, out: out}
}

// Confirm shows the operation and its detail (a diff or command text) and
// reads a yes/no answer. Anything other than y/yes declines.
func (c *TerminalConfirmer) Confirm(description, detail string) bool {
	headStyle := lipgloss.NewStyle().Foreground(theme.CurrentTheme.Warn).Bold(true)
	detailStyle := lipgloss.NewStyle().Foreground(theme.CurrentTheme.TextMuted)

	fmt.Fprintln(c.out, headStyle.Render(description))
	if detail != "" {
		fmt.Fprintln(c.out, detailStyle.Render(detail))
	}
	fmt.Fprint(c.out, "Proceed? [y/N]: ")

	line, err := c.reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
