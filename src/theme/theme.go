package theme

import "github.com/charmbracelet/lipgloss"

// CurrentTheme holds the colors used by the console renderer.
var CurrentTheme = struct {
	Primary   lipgloss.Color
	Accent    lipgloss.Color
	Error     lipgloss.Color
	Warn      lipgloss.Color
	Text      lipgloss.Color
	TextMuted lipgloss.Color
}{
	Primary:   lipgloss.Color("12"),
	Accent:    lipgloss.Color("13"),
	Error:     lipgloss.Color("9"),
	Warn:      lipgloss.Color("11"),
	Text:      lipgloss.Color("15"),
	TextMuted: lipgloss.Color("8"),
}
