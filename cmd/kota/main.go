package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
)

// CLI is the top-level flag surface. The interactive chat is the default
// command; --prompt runs a single turn and exits.
type CLI struct {
	Model      string `default:"openai::gpt-4o" env:"KOTA_MODEL" help:"Model to use, as provider::model"`
	APIKey     string `env:"OPENAI_API_KEY" help:"API key for the provider"`
	BaseURL    string `env:"OPENAI_API_URL" help:"Custom API base URL"`
	Brave      bool   `help:"Skip confirmation prompts for file edits and commands"`
	Guide      string `help:"Path to an extra guidelines file appended to the system prompt"`
	MaxHistory int    `default:"80" help:"Max messages transmitted per request (0 = unlimited)"`
	PrefixKeep int    `default:"4" help:"Earliest non-system messages always kept in the request window"`
	Timeout    string `default:"2m" help:"Shell command timeout (0 = none)"`
	LogLevel   string `default:"warn" enum:"debug,info,warn,error" help:"Log level"`
	Prompt     string `short:"p" help:"Execute a single prompt and exit"`
}

func main() {
	var cli CLI
	kong.Parse(&cli,
		kong.Name("kota"),
		kong.Description("Autonomous CLI coding assistant"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	if err := run(&cli); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
