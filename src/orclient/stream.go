package orclient

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/kota-cli/kota/src/aisdk"
)

// sseStream reads server-sent events off a chat completions response body.
type sseStream struct {
	body    io.ReadCloser
	scanner *bufio.Scanner
	done    bool
}

type chatCompletionChunk struct {
	Choices []struct {
		Delta struct {
			Content   string           `json:"content"`
			ToolCalls []aisdk.ToolCall `json:"tool_calls"`
		} `json:"delta"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage *aisdk.Usage `json:"usage"`
}

// InstructStream sends the request with streaming enabled and returns a
// reader over the event stream.
func (c *Client) InstructStream(ctx context.Context, req *aisdk.InstructRequest) (aisdk.StreamReader, error) {
	provider, model := SplitModel(req.Model)

	wireReq := &chatCompletionRequest{
		Model:          model,
		Messages:       req.Messages,
		Tools:          req.Tools,
		Stream:         true,
		StreamOptions:  &streamOptions{IncludeUsage: true},
		PromptCacheKey: req.CacheKey,
	}

	resp, err := c.do(ctx, provider, wireReq)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return nil, c.handleError(resp)
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &sseStream{body: resp.Body, scanner: scanner}, nil
}

// Read returns the next chunk, or io.EOF after the terminal event.
func (s *sseStream) Read() (*aisdk.StreamChunk, error) {
	if s.done {
		return nil, io.EOF
	}
	for s.scanner.Scan() {
		line := strings.TrimSpace(s.scanner.Text())
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if data == "[DONE]" {
			s.done = true
			return &aisdk.StreamChunk{Done: true}, nil
		}

		var chunk chatCompletionChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			return nil, fmt.Errorf("failed to decode stream chunk: %w", err)
		}

		out := &aisdk.StreamChunk{Usage: chunk.Usage}
		if len(chunk.Choices) > 0 {
			out.TextDelta = chunk.Choices[0].Delta.Content
			out.ToolCalls = chunk.Choices[0].Delta.ToolCalls
		}
		return out, nil
	}
	if err := s.scanner.Err(); err != nil {
		return nil, err
	}
	s.done = true
	return nil, io.EOF
}

// Close releases the underlying response body.
func (s *sseStream) Close() error {
	return s.body.Close()
}
