package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ProviderOpenRouter = "OPENROUTER"
	ProviderGemini     = "GEMINI"
	ProviderAnthropic  = "ANTHROPIC"
)

type Config struct {
	Server  ServerConfig
	LLM     LLMConfig
	Storage StorageConfig
	Log     LogConfig

	// EnvFileLoaded is false when no .env file was found.
	EnvFileLoaded bool
}

type ServerConfig struct {
	Port             string
	Env              string
	CORSAllowOrigins string
}

// LLMConfig is the process-wide provider configuration. It is handed to the
// completion client at construction and never read from the environment again.
type LLMConfig struct {
	Provider         string
	EnabledProviders []string
	Model            string
	Timeout          time.Duration

	OpenRouter OpenRouterConfig
	Gemini     GeminiConfig
	Anthropic  AnthropicConfig
}

type OpenRouterConfig struct {
	APIKey  string
	BaseURL string
	Referer string
	Title   string
}

type GeminiConfig struct {
	APIKey string
}

type AnthropicConfig struct {
	APIKey string
}

type StorageConfig struct {
	MaxFileSize int64
}

type LogConfig struct {
	Level string
}

// Load reads the environment, after loading .env when one is present.
func Load() *Config {
	envFileErr := godotenv.Load()

	return &Config{
		EnvFileLoaded: envFileErr == nil,
		Server: ServerConfig{
			Port:             getEnv("PORT", "3000"),
			Env:              getEnv("ENV", "development"),
			CORSAllowOrigins: getEnv("CORS_ALLOW_ORIGINS", "*"),
		},
		LLM: LLMConfig{
			Provider:         strings.ToUpper(getEnv("LLM_PROVIDER", ProviderOpenRouter)),
			EnabledProviders: getEnvAsList("LLM_ENABLED_PROVIDERS", []string{ProviderOpenRouter}),
			Model:            getEnv("LLM_MODEL", getEnv("OPENROUTER_MODEL", "")),
			Timeout:          getEnvAsDuration("LLM_TIMEOUT", "60s"),
			OpenRouter: OpenRouterConfig{
				APIKey:  getEnv("OPENROUTER_API_KEY", ""),
				BaseURL: getEnv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
				Referer: getEnv("OPENROUTER_REFERER", ""),
				Title:   getEnv("OPENROUTER_TITLE", "AI Resume Reviewer"),
			},
			Gemini: GeminiConfig{
				APIKey: getEnv("GEMINI_API_KEY", ""),
			},
			Anthropic: AnthropicConfig{
				APIKey: getEnv("ANTHROPIC_API_KEY", ""),
			},
		},
		Storage: StorageConfig{
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}
}

// Validate reports settings the server cannot start with. A missing API key is
// not one of them: it surfaces per request as a provider auth error.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.Storage.MaxFileSize <= 0 {
		return fmt.Errorf("MAX_FILE_SIZE must be positive, got %d", c.Storage.MaxFileSize)
	}
	if c.LLM.Timeout <= 0 {
		return fmt.Errorf("LLM_TIMEOUT must be positive, got %s", c.LLM.Timeout)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Env, "production")
}

// ProviderEnabled reports whether the selected provider is on the allow list.
func (l LLMConfig) ProviderEnabled() bool {
	for _, p := range l.EnabledProviders {
		if strings.EqualFold(p, l.Provider) {
			return true
		}
	}
	return false
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		part = strings.ToUpper(strings.TrimSpace(part))
		if part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
