// Package tool_webfetch retrieves web pages for the model.
package tool_webfetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	"github.com/kota-cli/kota/src/agent"
	"github.com/kota-cli/kota/src/kotagent/toolsutil"
)

// Tool name constant
const Name = "web_fetch"

// MaxResponseSize caps how much of a response body is read.
const MaxResponseSize = 5 * 1024 * 1024

const webFetchPrompt = `Fetches content from a URL and returns it in the requested format.

- format "text" strips HTML down to plain text
- format "markdown" converts HTML to Markdown
- format "html" returns the raw body

Only http and https URLs are supported. Responses are truncated at 5MB.`

// WebFetchInput represents the parameters for web_fetch.
type WebFetchInput struct {
	URL     string `json:"url" required:"true" description:"The URL to fetch content from"`
	Format  string `json:"format,omitempty" description:"Output format: text, markdown, or html (default markdown)"`
	Timeout int    `json:"timeout,omitempty" description:"Optional timeout in seconds (max 120, default 30)"`
}

// Tool returns the web_fetch tool definition.
func Tool(client *http.Client) (agent.Tool, error) {
	return agent.NewGenericTool(Name, webFetchPrompt,
		func(ctx context.Context, input WebFetchInput) (string, error) {
			return fetch(ctx, client, input)
		})
}

func fetch(ctx context.Context, client *http.Client, input WebFetchInput) (string, error) {
	if input.URL == "" {
		return "", fmt.Errorf("url is required")
	}
	if !strings.HasPrefix(input.URL, "http://") && !strings.HasPrefix(input.URL, "https://") {
		return "", fmt.Errorf("url must start with http:// or https://")
	}

	format := strings.ToLower(input.Format)
	if format == "" {
		format = "markdown"
	}
	if format != "text" && format != "markdown" && format != "html" {
		return "", fmt.Errorf("format must be one of: text, markdown, html")
	}

	timeout := input.Timeout
	if timeout <= 0 {
		timeout = 30
	} else if timeout > 120 {
		timeout = 120
	}
	ctx, cancel := context.WithTimeout(ctx, time.Duration(timeout)*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, input.URL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "kota/1.0")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch url: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("request failed with status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	content := string(body)
	contentType := resp.Header.Get("Content-Type")
	isHTML := strings.Contains(contentType, "text/html")

	var out string
	switch format {
	case "text":
		if isHTML {
			text, err := extractText(content)
			if err != nil {
				toolsutil.GetLogger().Warn("text extraction failed, returning raw body", "url", input.URL, "error", err)
				out = content
			} else {
				out = text
			}
		} else {
			out = content
		}
	case "markdown":
		if isHTML {
			markdown, err := toMarkdown(content)
			if err != nil {
				toolsutil.GetLogger().Warn("markdown conversion failed, wrapping raw body", "url", input.URL, "error", err)
				out = "```html\n" + content + "\n```"
			} else {
				out = markdown
			}
		} else if strings.Contains(contentType, "application/json") {
			out = "```json\n" + content + "\n```"
		} else {
			out = content
		}
	default:
		out = content
	}

	toolsutil.GetLogger().Info("fetched web content",
		"url", input.URL,
		"status", resp.StatusCode,
		"size", len(body),
		"format", format,
	)
	return out, nil
}

// extractText strips markup from an HTML document, dropping script and
// style bodies.
func extractText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("script, style").Each(func(i int, s *goquery.Selection) {
		s.Remove()
	})

	var lines []string
	for _, line := range strings.Split(doc.Text(), "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return strings.Join(lines, "\n"), nil
}

func toMarkdown(html string) (string, error) {
	converter := md.NewConverter("", true, nil)
	markdown, err := converter.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("failed to convert HTML to Markdown: %w", err)
	}
	markdown = strings.TrimSpace(markdown)
	for strings.Contains(markdown, "\n\n\n") {
		markdown = strings.ReplaceAll(markdown, "\n\n\n", "\n\n")
	}
	return markdown, nil
}
