package config

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "ENV", "LLM_PROVIDER", "LLM_ENABLED_PROVIDERS", "LLM_MODEL",
		"OPENROUTER_MODEL", "LLM_TIMEOUT", "OPENROUTER_API_KEY", "MAX_FILE_SIZE",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, ProviderOpenRouter, cfg.LLM.Provider)
	assert.Equal(t, []string{ProviderOpenRouter}, cfg.LLM.EnabledProviders)
	assert.Equal(t, "", cfg.LLM.Model)
	assert.Equal(t, 60*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, "https://openrouter.ai/api/v1", cfg.LLM.OpenRouter.BaseURL)
	assert.Equal(t, "AI Resume Reviewer", cfg.LLM.OpenRouter.Title)
	assert.Equal(t, int64(10485760), cfg.Storage.MaxFileSize)
	assert.True(t, cfg.LLM.ProviderEnabled())
	assert.False(t, cfg.EnvFileLoaded)
	require.NoError(t, cfg.Validate())
}

func TestLoad_ProviderSelectionIsCaseInsensitive(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "gemini")
	t.Setenv("LLM_ENABLED_PROVIDERS", " openrouter , Gemini ,")

	cfg := Load()

	assert.Equal(t, ProviderGemini, cfg.LLM.Provider)
	assert.Equal(t, []string{ProviderOpenRouter, ProviderGemini}, cfg.LLM.EnabledProviders)
	assert.True(t, cfg.LLM.ProviderEnabled())
}

func TestLoad_LegacyOpenRouterModel(t *testing.T) {
	t.Setenv("LLM_MODEL", "")
	t.Setenv("OPENROUTER_MODEL", "openai/gpt-4o-mini")

	cfg := Load()

	assert.Equal(t, "openai/gpt-4o-mini", cfg.LLM.Model)
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("LLM_TIMEOUT", "soon")
	t.Setenv("MAX_FILE_SIZE", "big")

	cfg := Load()

	assert.Equal(t, 60*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, int64(10485760), cfg.Storage.MaxFileSize)
}

func TestProviderEnabled_NotOnAllowList(t *testing.T) {
	llm := LLMConfig{Provider: "OPENAI", EnabledProviders: []string{ProviderOpenRouter}}
	assert.False(t, llm.ProviderEnabled())
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		Server:  ServerConfig{Port: "3000"},
		LLM:     LLMConfig{Timeout: time.Second},
		Storage: StorageConfig{MaxFileSize: 0},
	}
	assert.Error(t, cfg.Validate())

	cfg.Storage.MaxFileSize = 1
	cfg.LLM.Timeout = 0
	assert.Error(t, cfg.Validate())

	cfg.LLM.Timeout = time.Second
	assert.NoError(t, cfg.Validate())
}

func TestNewLogger(t *testing.T) {
	dev := NewLogger(&Config{Server: ServerConfig{Env: "development"}, Log: LogConfig{Level: "debug"}})
	assert.Equal(t, logrus.DebugLevel, dev.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, dev.Formatter)

	prod := NewLogger(&Config{Server: ServerConfig{Env: "production"}, Log: LogConfig{Level: "nonsense"}})
	assert.Equal(t, logrus.InfoLevel, prod.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, prod.Formatter)
}
