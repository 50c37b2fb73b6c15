// Package services provides external service integrations and technical concerns like completions and tokens
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/eduardocodes/bitcoin-influencer/config"
	"github.com/go-resty/resty/v2"
)

// Completion client error constants
var (
	ErrAPIKeyMissing   = errors.New("completion api key not configured")
	ErrEmptyCompletion = errors.New("completion response contained no choices")
)

// ChatMessage is a single message in a chat-completion request
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionClient sends chat-completion requests to an external
// text-completion service and returns the raw assistant text.
type CompletionClient interface {
	Complete(ctx context.Context, messages []ChatMessage) (string, error)
}

// chatCompletionRequest is the OpenAI-compatible request payload
type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

// chatCompletionResponse is the OpenAI-compatible response envelope
type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// OpenAIClient implements CompletionClient against any OpenAI-compatible
// chat-completions endpoint
type OpenAIClient struct {
	config *config.OpenAIConfig
	client *resty.Client
}

// NewOpenAIClient creates a new completion client from configuration
func NewOpenAIClient(cfg *config.OpenAIConfig) CompletionClient {
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json")
	return &OpenAIClient{config: cfg, client: client}
}

// Complete sends one chat-completion request and returns the first
// choice's content. The configured max token count and sampling
// temperature apply to every call.
func (c *OpenAIClient) Complete(ctx context.Context, messages []ChatMessage) (string, error) {
	if c.config.APIKey == "" {
		return "", ErrAPIKeyMissing
	}

	body := chatCompletionRequest{
		Model:       c.config.Model,
		Messages:    messages,
		MaxTokens:   c.config.MaxTokens,
		Temperature: c.config.Temperature,
	}

	var out chatCompletionResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetAuthToken(c.config.APIKey).
		SetBody(body).
		SetResult(&out).
		SetError(&out).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	if resp.IsError() {
		if out.Error != nil {
			return "", fmt.Errorf("completion request rejected (%d): %s", resp.StatusCode(), out.Error.Message)
		}
		return "", fmt.Errorf("completion request rejected with status %d", resp.StatusCode())
	}
	if len(out.Choices) == 0 {
		return "", ErrEmptyCompletion
	}

	return out.Choices[0].Message.Content, nil
}

// MockCompletionClient implements CompletionClient for testing
type MockCompletionClient struct {
	mu       sync.Mutex
	Response string
	Err      error
	Requests [][]ChatMessage
}

// NewMockCompletionClient creates a mock client that returns the given
// canned response
func NewMockCompletionClient(response string) *MockCompletionClient {
	return &MockCompletionClient{Response: response}
}

// Complete records the request and returns the canned response or error
func (m *MockCompletionClient) Complete(_ context.Context, messages []ChatMessage) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests = append(m.Requests, messages)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

// CallCount returns the number of completion requests recorded
func (m *MockCompletionClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Requests)
}
