package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/eduardocodes/bitcoin-influencer/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOpenAIConfig(baseURL string) *config.OpenAIConfig {
	return &config.OpenAIConfig{
		BaseURL:     baseURL,
		APIKey:      "test-key",
		Model:       "gpt-4o-mini",
		MaxTokens:   10,
		Temperature: 0.1,
		Timeout:     5 * time.Second,
	}
}

func TestOpenAIClientComplete(t *testing.T) {
	var captured chatCompletionRequest
	var capturedAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/chat/completions", r.URL.Path)
		capturedAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"hardware"},"finish_reason":"stop"}]}`))
	}))
	defer server.Close()

	client := NewOpenAIClient(testOpenAIConfig(server.URL))

	content, err := client.Complete(context.Background(), []ChatMessage{
		{Role: "system", Content: "You are a classifier"},
		{Role: "user", Content: "Categorize this product: a signing device"},
	})
	require.NoError(t, err)

	assert.Equal(t, "hardware", content)
	assert.Equal(t, "Bearer test-key", capturedAuth)
	assert.Equal(t, "gpt-4o-mini", captured.Model)
	assert.Equal(t, 10, captured.MaxTokens)
	assert.Equal(t, 0.1, captured.Temperature)
	require.Len(t, captured.Messages, 2)
}

func TestOpenAIClientMissingAPIKey(t *testing.T) {
	cfg := testOpenAIConfig("http://localhost:0")
	cfg.APIKey = ""
	client := NewOpenAIClient(cfg)

	_, err := client.Complete(context.Background(), []ChatMessage{{Role: "user", Content: "hi"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAPIKeyMissing)
}

func TestOpenAIClientUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limit exceeded","type":"rate_limit_error"}}`))
	}))
	defer server.Close()

	client := NewOpenAIClient(testOpenAIConfig(server.URL))

	_, err := client.Complete(context.Background(), []ChatMessage{{Role: "user", Content: "hi"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
	assert.Contains(t, err.Error(), "rate limit exceeded")
}

func TestOpenAIClientEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := NewOpenAIClient(testOpenAIConfig(server.URL))

	_, err := client.Complete(context.Background(), []ChatMessage{{Role: "user", Content: "hi"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyCompletion)
}

func TestMockCompletionClientRecordsRequests(t *testing.T) {
	mock := NewMockCompletionClient("mining")

	content, err := mock.Complete(context.Background(), []ChatMessage{{Role: "user", Content: "an ASIC"}})
	require.NoError(t, err)
	assert.Equal(t, "mining", content)
	assert.Equal(t, 1, mock.CallCount())
}
