package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port     string
	Env      string
	LogLevel string

	// Gemini model access
	GeminiAPIKey          string
	GeminiModelID         string
	GeminiExtractorModel  string
	GeminiTimeout         time.Duration
	GeminiMaxOutputTokens int
	GeminiTemperature     float64

	// Per-session conversation memory
	MaxHistory           int
	SessionTTL           time.Duration
	SessionSweepInterval time.Duration

	// Telegram lead forwarding
	TelegramBotToken string
	TelegramChatID   string
	TelegramBaseURL  string
	TelegramTimeout  time.Duration

	// Widget embedding: the chat widget is served cross-origin, so the
	// default is a wildcard allowlist.
	CORSAllowedOrigins []string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		GeminiAPIKey:          getEnv("GEMINI_API_KEY", ""),
		GeminiModelID:         getEnv("GEMINI_MODEL_ID", "gemini-2.0-flash"),
		GeminiExtractorModel:  getEnv("GEMINI_EXTRACTOR_MODEL_ID", ""),
		GeminiTimeout:         getEnvAsDuration("GEMINI_TIMEOUT", 30*time.Second),
		GeminiMaxOutputTokens: getEnvAsInt("GEMINI_MAX_OUTPUT_TOKENS", 1024),
		GeminiTemperature:     getEnvAsFloat("GEMINI_TEMPERATURE", 0.7),

		MaxHistory:           getEnvAsInt("MAX_HISTORY", 20),
		SessionTTL:           getEnvAsDuration("SESSION_TTL", 24*time.Hour),
		SessionSweepInterval: getEnvAsDuration("SESSION_SWEEP_INTERVAL", 10*time.Minute),

		TelegramBotToken: getEnv("TELEGRAM_TOKEN", ""),
		TelegramChatID:   getEnv("TELEGRAM_CHAT_ID", ""),
		TelegramBaseURL:  getEnv("TELEGRAM_API_BASE_URL", "https://api.telegram.org"),
		TelegramTimeout:  getEnvAsDuration("TELEGRAM_TIMEOUT", 10*time.Second),

		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),
	}
}

// ExtractorModelID returns the model used for the lead extraction call,
// falling back to the primary chat model.
func (c *Config) ExtractorModelID() string {
	if strings.TrimSpace(c.GeminiExtractorModel) != "" {
		return c.GeminiExtractorModel
	}
	return c.GeminiModelID
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsList splits a comma-separated environment variable, trimming blanks.
func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
