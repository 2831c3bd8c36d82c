package pushgen

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PromoPilot/entity"
	"PromoPilot/internal/config"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig(baseURL string) *config.Config {
	conf := &config.Config{}
	conf.DeepSeek.ApiKey = "test-key"
	conf.DeepSeek.BaseURL = baseURL
	conf.DeepSeek.Model = "deepseek-chat"
	conf.DeepSeek.TimeoutSec = 5
	conf.DeepSeek.Workers = 2
	return conf
}

func sampleRequest() entity.PushRequest {
	return entity.PushRequest{
		Product:   "SuperApp",
		Country:   "USA",
		Language:  "English",
		AppLink:   "https://apps.example/superapp",
		Message:   "Summer sale",
		Requester: "tester",
	}
}

type completionRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func TestGenerateReturnsCopy(t *testing.T) {
	var got completionRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "1",
			"object": "chat.completion",
			"created": 1,
			"model": "deepseek-chat",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "PUSH COPY"}, "finish_reason": "stop"}]
		}`))
	}))
	defer srv.Close()

	gen := NewGenerator(testConfig(srv.URL+"/v1"), testLogger())

	copyText, err := gen.Generate(context.Background(), sampleRequest())
	require.NoError(t, err)
	assert.Equal(t, "PUSH COPY", copyText)

	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, systemPrompt, got.Messages[0].Content)

	prompt := got.Messages[1].Content
	assert.Contains(t, prompt, "Product: SuperApp")
	assert.Contains(t, prompt, "Country: USA")
	assert.Contains(t, prompt, "Language: English")
	assert.Contains(t, prompt, "App Link: https://apps.example/superapp")
	assert.Contains(t, prompt, "Message: Summer sale")
	assert.Contains(t, prompt, "Current User's Login: tester")
}

func TestGenerateUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "overloaded"}}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	gen := NewGenerator(testConfig(srv.URL+"/v1"), testLogger())

	_, err := gen.Generate(context.Background(), sampleRequest())
	require.Error(t, err)
}

func TestGenerateEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "1", "object": "chat.completion", "created": 1, "model": "deepseek-chat", "choices": []}`))
	}))
	defer srv.Close()

	gen := NewGenerator(testConfig(srv.URL+"/v1"), testLogger())

	_, err := gen.Generate(context.Background(), sampleRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty response")
}

func TestBuildPromptTemplate(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)
	prompt := buildPrompt(sampleRequest(), now)

	assert.Contains(t, prompt, "Current Date and Time (UTC - YYYY-MM-DD HH:MM:SS formatted): 2025-06-01 12:30:00")
	assert.Contains(t, prompt, "Generate 10 push notification versions for:")
	assert.Contains(t, prompt, "- Title: max 22 characters")
	assert.Contains(t, prompt, "- Body: max 108 characters")
	assert.Contains(t, prompt, "[English] title text")
	assert.Contains(t, prompt, "[English] body text")
	assert.Contains(t, prompt, "- Include English translation")
}
