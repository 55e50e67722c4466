package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	LLMAPIKey      string
	LLMBaseURL     string
	LLMModel       string
	LLMTimeout     time.Duration
	LLMTemperature float32
	LLMMaxTokens   int
	DatabaseURL    string
	RedisURL       string
	SessionTTL     time.Duration
	HTTPPort       string
	MetricsPort    string
	WorkerCount    int
	CatalogBaseURL string
	LogLevel       string
}

func Load() *Config {
	// Carrega .env da raiz do projeto
	_ = godotenv.Load("../../.env")
	// Se não encontrar, tenta no diretório atual
	_ = godotenv.Load()

	apiKey := os.Getenv("DEEPSEEK_API_KEY")
	if apiKey == "" {
		apiKey = os.Getenv("LLM_API_KEY")
	}

	return &Config{
		LLMAPIKey:      apiKey,
		LLMBaseURL:     getEnv("LLM_BASE_URL", "https://api.deepseek.com/v1"),
		LLMModel:       getEnv("LLM_MODEL", "deepseek-chat"),
		LLMTimeout:     getEnvDuration("LLM_TIMEOUT", 30*time.Second),
		LLMTemperature: float32(getEnvFloat("LLM_TEMPERATURE", 0.1)),
		LLMMaxTokens:   getEnvInt("LLM_MAX_TOKENS", 300),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RedisURL:       os.Getenv("REDIS_URL"),
		SessionTTL:     getEnvDuration("SESSION_TTL", 30*time.Minute),
		HTTPPort:       getEnv("HTTP_PORT", "8080"),
		MetricsPort:    getEnv("METRICS_PORT", "9090"),
		WorkerCount:    getEnvInt("WORKER_COUNT", 5),
		CatalogBaseURL: getEnv("CATALOG_BASE_URL", "https://www.frigelar.com.br"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}
}

// LLMEnabled reports whether a provider key is configured.
func (c *Config) LLMEnabled() bool {
	return c.LLMAPIKey != ""
}

func getEnv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getEnvInt(k string, d int) int {
	v, err := strconv.Atoi(os.Getenv(k))
	if err != nil || v <= 0 {
		return d
	}
	return v
}

func getEnvFloat(k string, d float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(k), 64)
	if err != nil || v < 0 {
		return d
	}
	return v
}

func getEnvDuration(k string, d time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(k))
	if err != nil || v <= 0 {
		return d
	}
	return v
}
