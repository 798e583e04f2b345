package orclient

import (
	"log/slog"
	"time"
)

// Config holds configuration for the chat completion client.
type Config struct {
	APIKey  string        // Bearer token sent with every request
	BaseURL string        // Endpoint root; overrides the provider default
	Logger  *slog.Logger  // Logger for debugging
	Timeout time.Duration // HTTP timeout
}
