package executor

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/kota-cli/kota/src/theme"
)

// REPL is the interactive front end around a Loop. Slash commands adjust
// session settings; anything else is sent to the model.
type REPL struct {
	Loop    *Loop
	Console *Console

	In  *bufio.Reader
	Out io.Writer

	promptStyle lipgloss.Style
	infoStyle   lipgloss.Style
	warnStyle   lipgloss.Style
	valueStyle  lipgloss.Style
}

// NewREPL creates a REPL bound to a loop and a shared input reader.
func NewREPL(loop *Loop, console *Console, in *bufio.Reader, out io.Writer) *REPL {
	return &REPL{
		Loop:        loop,
		Console:     console,
		In:          in,
		Out:         out,
		promptStyle: lipgloss.NewStyle().Foreground(theme.CurrentTheme.Primary).Bold(true),
		infoStyle:   lipgloss.NewStyle().Foreground(theme.CurrentTheme.Text),
		warnStyle:   lipgloss.NewStyle().Foreground(theme.CurrentTheme.Warn),
		valueStyle:  lipgloss.NewStyle().Foreground(theme.CurrentTheme.Accent).Bold(true),
	}
}

// Run reads input until /exit or EOF. Provider failures are printed and the
// prompt returns; they never terminate the session.
func (r *REPL) Run(ctx context.Context) error {
	fmt.Fprintln(r.Out, r.promptStyle.Render("kota - your coding assistant"))
	fmt.Fprintln(r.Out, r.infoStyle.Render("Type '/help' for a list of commands, or '/exit' to quit."))
	fmt.Fprintln(r.Out)

	for {
		fmt.Fprint(r.Out, r.promptStyle.Render("> "))
		line, err := r.In.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(r.Out)
				return nil
			}
			return err
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, "/") {
			if done := r.handleCommand(input); done {
				return nil
			}
			continue
		}

		if err := r.Loop.ProcessPrompt(ctx, input); err != nil {
			r.Console.Error(err)
		}
	}
}

// handleCommand executes a slash command. It returns true when the session
// should end.
func (r *REPL) handleCommand(input string) bool {
	cmd, arg, _ := strings.Cut(input, " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "/exit":
		fmt.Fprintln(r.Out, r.infoStyle.Render("Goodbye!"))
		return true

	case "/help":
		r.printHelp()

	case "/model":
		if arg == "" {
			fmt.Fprintf(r.Out, "Current model: %s\n", r.valueStyle.Render(r.Loop.Model))
		} else {
			r.Loop.Model = arg
			fmt.Fprintf(r.Out, "Model changed to: %s\n", r.valueStyle.Render(arg))
		}

	case "/history":
		limit := "unlimited"
		if r.Loop.Policy.MaxMessages > 0 {
			limit = strconv.Itoa(r.Loop.Policy.MaxMessages)
		}
		fmt.Fprintln(r.Out, "History settings:")
		fmt.Fprintf(r.Out, "  Max messages per request: %s\n", r.valueStyle.Render(limit))
		fmt.Fprintf(r.Out, "  Prefix keep:              %s\n", r.valueStyle.Render(strconv.Itoa(r.Loop.Policy.PrefixKeep)))
		fmt.Fprintf(r.Out, "  Total messages stored:    %s\n", r.valueStyle.Render(strconv.Itoa(r.Loop.Conversation.Len())))

	case "/max-history":
		n, err := strconv.Atoi(arg)
		if err != nil || n < 0 {
			fmt.Fprintln(r.Out, r.warnStyle.Render("Invalid number. Usage: /max-history {number}"))
			break
		}
		r.Loop.Policy.MaxMessages = n
		display := "unlimited"
		if n > 0 {
			display = strconv.Itoa(n)
		}
		fmt.Fprintf(r.Out, "Max history set to: %s\n", r.valueStyle.Render(display))

	case "/prefix-keep":
		n, err := strconv.Atoi(arg)
		if err != nil || n < 0 {
			fmt.Fprintln(r.Out, r.warnStyle.Render("Invalid number. Usage: /prefix-keep {number}"))
			break
		}
		r.Loop.Policy.PrefixKeep = n
		fmt.Fprintf(r.Out, "Prefix keep set to: %s\n", r.valueStyle.Render(strconv.Itoa(n)))

	case "/clear":
		r.Loop.Conversation.Clear()
		r.Loop.CacheKey = uuid.NewString()
		fmt.Fprintln(r.Out, r.infoStyle.Render("History cleared."))

	case "/cls", "/clear_screen":
		// ANSI clear plus home
		fmt.Fprint(r.Out, "\033[2J\033[H")

	default:
		fmt.Fprintln(r.Out, r.warnStyle.Render("Unknown command. Type /help for a list of commands."))
	}
	return false
}

func (r *REPL) printHelp() {
	cmd := func(s string) string { return r.valueStyle.Render(s) }
	fmt.Fprintln(r.Out, "\nAvailable commands:")
	fmt.Fprintf(r.Out, "  %s - Display this help message\n", cmd("/help"))
	fmt.Fprintf(r.Out, "  %s - Display the current model\n", cmd("/model"))
	fmt.Fprintf(r.Out, "  %s {model} - Switch to a different model\n", cmd("/model"))
	fmt.Fprintf(r.Out, "  %s - Show history settings and stats\n", cmd("/history"))
	fmt.Fprintf(r.Out, "  %s {n} - Set max history messages (0 = unlimited)\n", cmd("/max-history"))
	fmt.Fprintf(r.Out, "  %s {n} - Set number of prefix messages to always keep\n", cmd("/prefix-keep"))
	fmt.Fprintf(r.Out, "  %s - Reset the conversation history\n", cmd("/clear"))
	fmt.Fprintf(r.Out, "  %s - Clear the terminal screen\n", cmd("/cls"))
	fmt.Fprintf(r.Out, "  %s - Quit the interactive session\n\n", cmd("/exit"))
}
