// Package config holds the runtime configuration assembled at startup from
// CLI flags and the environment.
package config

import (
	"fmt"
	"time"
)

// Config is passed explicitly into the components that need it; there is no
// ambient global state.
type Config struct {
	// Model is the provider-qualified model identifier.
	Model string `validate:"required,model_id"`

	// APIKey authenticates against the chat completions endpoint.
	APIKey string

	// BaseURL overrides the provider endpoint.
	BaseURL string `validate:"omitempty,url"`

	// WorkingDir is the absolute canonical root all path validation is
	// relative to. Fixed at startup, immutable for the process lifetime.
	WorkingDir string `validate:"required,dir"`

	// Brave disables interactive confirmation before mutating operations.
	Brave bool

	// MaxHistory caps messages transmitted per request. 0 = unlimited.
	MaxHistory int `validate:"gte=0"`

	// PrefixKeep is the count of earliest non-system messages always sent,
	// keeping the provider prompt cache warm.
	PrefixKeep int `validate:"gte=0"`

	// CommandTimeout bounds execute_command. 0 disables the bound.
	CommandTimeout time.Duration `validate:"gte=0"`

	// GuidePath optionally points at extra guidelines appended to the
	// system prompt.
	GuidePath string

	LogLevel string `validate:"omitempty,oneof=debug info warn error"`
}

// Default returns the configuration defaults applied before flags.
func Default() Config {
	return Config{
		Model:          "openai::gpt-4o",
		MaxHistory:     80,
		PrefixKeep:     4,
		CommandTimeout: 2 * time.Minute,
		LogLevel:       "warn",
	}
}

// String renders the config for the /history style status displays, key
// material excluded.
func (c Config) String() string {
	return fmt.Sprintf("model=%s brave=%t max_history=%d prefix_keep=%d timeout=%s",
		c.Model, c.Brave, c.MaxHistory, c.PrefixKeep, c.CommandTimeout)
}
