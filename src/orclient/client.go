// Package orclient is an OpenAI-compatible chat completion client. Model
// strings take the form "provider::model"; the provider selects the default
// endpoint and the model half goes on the wire.
package orclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/kota-cli/kota/src/aisdk"
)

const defaultTimeout = 5 * time.Minute

var _ aisdk.ModelClient = (*Client)(nil)

// Client speaks the chat completions protocol over HTTP. Requests are sent
// once; transport and API failures surface to the caller unretried.
type Client struct {
	config     Config
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a chat completion client.
func NewClient(config Config) *Client {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "orclient")

	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// SplitModel splits a "provider::model" string. A bare model name maps to
// the openai provider.
func SplitModel(model string) (provider, name string) {
	if idx := strings.Index(model, "::"); idx >= 0 {
		return model[:idx], model[idx+2:]
	}
	return "openai", model
}

// endpoint resolves the chat completions URL for a provider.
func (c *Client) endpoint(provider string) (string, error) {
	if c.config.BaseURL != "" {
		return strings.TrimRight(c.config.BaseURL, "/") + "/chat/completions", nil
	}
	switch provider {
	case "openai":
		base := os.Getenv("OPENAI_API_URL")
		if base == "" {
			base = "https://api.openai.com/v1"
		}
		return strings.TrimRight(base, "/") + "/chat/completions", nil
	case "openrouter":
		return "https://openrouter.ai/api/v1/chat/completions", nil
	case "ollama":
		base := os.Getenv("OLLAMA_URL")
		if base == "" {
			base = "http://localhost:11434/v1"
		}
		return strings.TrimRight(base, "/") + "/chat/completions", nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownProvider, provider)
	}
}

// Wire types for the chat completions protocol.
type chatCompletionRequest struct {
	Model          string            `json:"model"`
	Messages       []*aisdk.Message  `json:"messages"`
	Tools          []*aisdk.ChatTool `json:"tools,omitempty"`
	Stream         bool              `json:"stream,omitempty"`
	StreamOptions  *streamOptions    `json:"stream_options,omitempty"`
	PromptCacheKey string            `json:"prompt_cache_key,omitempty"`
}

type streamOptions struct {
	IncludeUsage bool `json:"include_usage"`
}

type chatCompletionResponse struct {
	ID      string       `json:"id"`
	Choices []chatChoice `json:"choices"`
	Usage   *aisdk.Usage `json:"usage"`
}

type chatChoice struct {
	Index        int           `json:"index"`
	Message      aisdk.Message `json:"message"`
	FinishReason string        `json:"finish_reason"`
}

// Instruct sends the conversation window and tool catalog and returns the
// model's reply.
func (c *Client) Instruct(ctx context.Context, req *aisdk.InstructRequest) (*aisdk.InstructResponse, error) {
	provider, model := SplitModel(req.Model)
	logger := c.logger.With("provider", provider, "model", model)

	wireReq := &chatCompletionRequest{
		Model:          model,
		Messages:       req.Messages,
		Tools:          req.Tools,
		PromptCacheKey: req.CacheKey,
	}

	resp, err := c.do(ctx, provider, wireReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.handleError(resp)
	}

	var result chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(result.Choices) == 0 {
		return nil, ErrEmptyResponse
	}

	messages := make([]aisdk.Message, 0, len(result.Choices))
	for _, choice := range result.Choices {
		messages = append(messages, choice.Message)
	}

	if result.Usage != nil {
		logger.Debug("chat completion ok",
			"usage_total", result.Usage.TotalTokens,
			"usage_cached", result.Usage.PromptTokensCached)
	}

	out := &aisdk.InstructResponse{Usage: result.Usage}
	if len(messages) == 1 {
		out.Output = aisdk.One(messages[0])
	} else {
		out.Output = aisdk.Many(messages)
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, provider string, wireReq *chatCompletionRequest) (*http.Response, error) {
	url, err := c.endpoint(provider)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(wireReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.config.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return resp, nil
}

// handleError decodes an error response body into an APIError.
func (c *Client) handleError(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read error response: %w", err)
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err != nil || errResp.Error.Message == "" {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(body)),
			RequestID:  resp.Header.Get("X-Request-ID"),
		}
	}

	apiErr := errResp.Error
	apiErr.StatusCode = resp.StatusCode
	apiErr.RequestID = resp.Header.Get("X-Request-ID")
	return &apiErr
}
