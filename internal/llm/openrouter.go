package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the OpenAI-compatible OpenRouter endpoint.
	DefaultBaseURL = "https://openrouter.ai/api/v1"

	// GenerationTimeout bounds heavyweight calls (extraction, ATS rewrite).
	GenerationTimeout = 120 * time.Second
	// ScoringTimeout bounds the lighter batch job-scoring call.
	ScoringTimeout = 30 * time.Second

	// upstreamBodyLimit truncates error bodies carried in UpstreamError.
	upstreamBodyLimit = 300
)

// Completer issues one chat-completion call against a single model.
// Implementations do not retry; retry and fallback belong to the Orchestrator.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// CompletionRequest describes one chat-completion call.
type CompletionRequest struct {
	Model       string
	APIKey      string
	Prompt      string
	Temperature float32
	MaxTokens   int
}

// OpenRouterClient calls an OpenAI-compatible chat-completions endpoint.
type OpenRouterClient struct {
	baseURL    string
	httpClient *http.Client
	referer    string
	title      string
}

// NewOpenRouterClient constructs a client for the given base URL.
// An empty baseURL selects the public OpenRouter endpoint. The HTTP client
// timeout is a last-resort bound; callers set tighter per-task deadlines
// through the context.
func NewOpenRouterClient(baseURL string) *OpenRouterClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &OpenRouterClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: GenerationTimeout},
		referer:    "https://careernova.app",
		title:      "CareerNova",
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float32       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error,omitempty"`
}

// Complete performs one network call and returns the raw text content of the
// first completion choice. Failures map onto the package error taxonomy:
// 429 to *RateLimitError, other non-2xx to *UpstreamError, deadline to
// *TimeoutError, missing key to *CredentialsError.
func (c *OpenRouterClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	if strings.TrimSpace(req.APIKey) == "" {
		return "", &CredentialsError{Provider: "OpenRouter"}
	}

	payload, err := json.Marshal(chatRequest{
		Model:       req.Model,
		Messages:    []chatMessage{{Role: "user", Content: req.Prompt}},
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshal completion request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build completion request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+req.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("HTTP-Referer", c.referer)
	httpReq.Header.Set("X-Title", c.title)

	log.Printf("llm call model=%s prompt_chars=%d", req.Model, len(req.Prompt))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if isTimeout(err) {
			return "", &TimeoutError{Model: req.Model, Cause: err}
		}
		return "", fmt.Errorf("completion call for model %s: %w", req.Model, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read completion response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", &RateLimitError{Model: req.Model}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &UpstreamError{Model: req.Model, Status: resp.StatusCode, Body: truncate(string(body), upstreamBodyLimit)}
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", &UpstreamError{Model: req.Model, Status: resp.StatusCode, Body: truncate(string(body), upstreamBodyLimit)}
	}
	if parsed.Error != nil {
		return "", &UpstreamError{Model: req.Model, Status: parsed.Error.Code, Body: truncate(parsed.Error.Message, upstreamBodyLimit)}
	}
	if len(parsed.Choices) == 0 {
		return "", &UpstreamError{Model: req.Model, Status: resp.StatusCode, Body: "response missing choices"}
	}

	content := parsed.Choices[0].Message.Content
	log.Printf("llm response model=%s chars=%d", req.Model, len(content))
	return content, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	// net/http wraps its client-side timeout in a *url.Error with Timeout()=true.
	var timeoutErr interface{ Timeout() bool }
	return errors.As(err, &timeoutErr) && timeoutErr.Timeout()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
