package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"acdata/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(&config.Config{
		LLMAPIKey:      "sk-test",
		LLMBaseURL:     srv.URL,
		LLMModel:       "deepseek-chat",
		LLMTemperature: 0.1,
		LLMMaxTokens:   300,
	})
}

func completion(content string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		ID:     "cmpl-1",
		Object: "chat.completion",
		Model:  "deepseek-chat",
		Choices: []openai.ChatCompletionChoice{
			{
				Index:        0,
				Message:      openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: content},
				FinishReason: openai.FinishReasonStop,
			},
		},
	}
}

func TestFetchSpecs(t *testing.T) {
	var got openai.ChatCompletionRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(completion(`{"consumption_kW": 1.1, "cooling_power_kW": 3.5, "inverter": true}`))
	})

	text, err := client.FetchSpecs(context.Background(), "Daikin FTXF35C")

	require.NoError(t, err)
	assert.Contains(t, text, `"cooling_power_kW": 3.5`)
	assert.Equal(t, "deepseek-chat", got.Model)
	assert.Equal(t, 300, got.MaxTokens)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, openai.ChatMessageRoleUser, got.Messages[0].Role)
	assert.Contains(t, got.Messages[0].Content, "Daikin FTXF35C")
}

func TestFetchSpecs_EmptyChoices(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{ID: "cmpl-2", Object: "chat.completion"})
	})

	_, err := client.FetchSpecs(context.Background(), "LG S12EQ")
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestFetchSpecs_ProviderError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"invalid api key","type":"authentication_error"}}`))
	})

	_, err := client.FetchSpecs(context.Background(), "LG S12EQ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LG S12EQ")
}

func TestFetchSpecs_ContextDeadline(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.FetchSpecs(ctx, "LG S12EQ")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestPrompt(t *testing.T) {
	p := Prompt("Midea Xtreme 12")
	assert.Contains(t, p, "Midea Xtreme 12")
	assert.Contains(t, p, "consumption_kW")
	assert.Contains(t, p, "cooling_power_kW")
	assert.Contains(t, p, "null")
}
