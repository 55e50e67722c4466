package config

import (
	"bytes"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"DEEPSEEK_API_KEY", "LLM_API_KEY", "LLM_BASE_URL", "LLM_MODEL", "LLM_TIMEOUT", "LLM_TEMPERATURE", "LLM_MAX_TOKENS", "SESSION_TTL", "HTTP_PORT", "WORKER_COUNT"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.False(t, cfg.LLMEnabled())
	assert.Equal(t, "https://api.deepseek.com/v1", cfg.LLMBaseURL)
	assert.Equal(t, "deepseek-chat", cfg.LLMModel)
	assert.Equal(t, 30*time.Second, cfg.LLMTimeout)
	assert.InDelta(t, 0.1, cfg.LLMTemperature, 1e-6)
	assert.Equal(t, 300, cfg.LLMMaxTokens)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, 5, cfg.WorkerCount)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DEEPSEEK_API_KEY", "")
	t.Setenv("LLM_API_KEY", "sk-test")
	t.Setenv("LLM_TIMEOUT", "5s")
	t.Setenv("WORKER_COUNT", "12")
	t.Setenv("LLM_MAX_TOKENS", "not-a-number")

	cfg := Load()

	assert.True(t, cfg.LLMEnabled())
	assert.Equal(t, "sk-test", cfg.LLMAPIKey)
	assert.Equal(t, 5*time.Second, cfg.LLMTimeout)
	assert.Equal(t, 12, cfg.WorkerCount)
	assert.Equal(t, 300, cfg.LLMMaxTokens)
}

func TestLoad_DeepSeekKeyWins(t *testing.T) {
	t.Setenv("DEEPSEEK_API_KEY", "sk-deepseek")
	t.Setenv("LLM_API_KEY", "sk-other")

	assert.Equal(t, "sk-deepseek", Load().LLMAPIKey)
}

func TestInitLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	initLogger("warn", &buf)
	t.Cleanup(func() { InitLogger("info") })

	assert.Equal(t, zerolog.WarnLevel, GetLogger().GetLevel())

	l := ComponentLogger("test")
	l.Info().Msg("hidden")
	l.Warn().Msg("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"component":"test"`)
}

func TestInitLogger_UnknownLevel(t *testing.T) {
	var buf bytes.Buffer
	initLogger("loud", &buf)
	t.Cleanup(func() { InitLogger("info") })

	assert.Equal(t, zerolog.InfoLevel, GetLogger().GetLevel())
}
