package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"acdata/internal/config"
	"acdata/internal/observability"
)

var ErrEmptyResponse = errors.New("llm: empty response")

// Client talks to an OpenAI-compatible chat completion API (DeepSeek by default).
type Client struct {
	api         *openai.Client
	model       string
	temperature float32
	maxTokens   int
}

func NewClient(cfg *config.Config) *Client {
	apiCfg := openai.DefaultConfig(cfg.LLMAPIKey)
	apiCfg.BaseURL = cfg.LLMBaseURL

	return &Client{
		api:         openai.NewClientWithConfig(apiCfg),
		model:       cfg.LLMModel,
		temperature: cfg.LLMTemperature,
		maxTokens:   cfg.LLMMaxTokens,
	}
}

// FetchSpecs returns the raw answer of the model for the given air
// conditioner. Timeouts are the caller's business, through ctx.
func (c *Client) FetchSpecs(ctx context.Context, modelName string) (string, error) {
	logger := config.ComponentLogger("llm")
	start := time.Now()

	resp, err := c.api.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: Prompt(modelName),
				},
			},
			Temperature: c.temperature,
			MaxTokens:   c.maxTokens,
		},
	)
	observability.LLMRequestSeconds.Observe(time.Since(start).Seconds())
	if err != nil {
		return "", fmt.Errorf("chat completion for %q: %w", modelName, err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	logger.Debug().
		Str("model_name", modelName).
		Int("prompt_tokens", resp.Usage.PromptTokens).
		Int("completion_tokens", resp.Usage.CompletionTokens).
		Dur("elapsed", time.Since(start)).
		Msg("resposta recebida")

	return resp.Choices[0].Message.Content, nil
}
