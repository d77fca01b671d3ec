package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-reviewer/internal/config"
	"alfredoptarigan/resume-reviewer/internal/services"
)

func TestNewCompletionClient_DefaultIsOpenRouter(t *testing.T) {
	cfg := config.LLMConfig{
		Provider:         "openrouter",
		EnabledProviders: []string{config.ProviderOpenRouter},
	}

	client, err := services.NewCompletionClient(cfg, newTestLogger())

	require.NoError(t, err)
	assert.IsType(t, &services.OpenRouterClient{}, client)
	assert.Equal(t, config.ProviderOpenRouter, client.Name())
}

func TestNewCompletionClient_ProviderNotEnabled(t *testing.T) {
	cfg := config.LLMConfig{
		Provider:         config.ProviderGemini,
		EnabledProviders: []string{config.ProviderOpenRouter},
	}

	client, err := services.NewCompletionClient(cfg, newTestLogger())
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), testPrompt, "")

	require.Error(t, err)
	assert.True(t, errors.Is(err, services.ErrProviderDisabled))
	assert.Equal(t, "Only OPENROUTER enabled.", services.PublicMessage(err))
	assert.Equal(t, 400, services.StatusCode(err))
}

func TestNewCompletionClient_UnregisteredProvider(t *testing.T) {
	cfg := config.LLMConfig{
		Provider:         "MISTRAL",
		EnabledProviders: []string{"MISTRAL"},
	}

	client, err := services.NewCompletionClient(cfg, newTestLogger())
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), testPrompt, "")
	assert.True(t, errors.Is(err, services.ErrProviderDisabled))
	assert.Equal(t, "MISTRAL", client.Name())
}

func TestRegisterProvider(t *testing.T) {
	stub := &stubCompletion{reply: "{}"}
	services.RegisterProvider("test-provider", func(cfg config.LLMConfig, logger *logrus.Logger) (services.CompletionClient, error) {
		return stub, nil
	})

	client, err := services.NewCompletionClient(config.LLMConfig{
		Provider:         "TEST-PROVIDER",
		EnabledProviders: []string{"TEST-PROVIDER"},
	}, newTestLogger())

	require.NoError(t, err)
	assert.Same(t, stub, client)
	assert.Contains(t, services.RegisteredProviders(), "TEST-PROVIDER")
}

func TestNewCompletionClient_FactoryError(t *testing.T) {
	services.RegisterProvider("broken", func(cfg config.LLMConfig, logger *logrus.Logger) (services.CompletionClient, error) {
		return nil, errors.New("cannot build")
	})

	_, err := services.NewCompletionClient(config.LLMConfig{
		Provider:         "BROKEN",
		EnabledProviders: []string{"BROKEN"},
	}, newTestLogger())

	assert.Error(t, err)
}

func TestRegisteredProviders_Builtins(t *testing.T) {
	registered := services.RegisteredProviders()

	for _, name := range []string{config.ProviderAnthropic, config.ProviderGemini, config.ProviderOpenRouter} {
		assert.Contains(t, registered, name)
	}
}

func TestResolveModel(t *testing.T) {
	assert.Equal(t, "fallback", services.ResolveModel("", "", "fallback"))
	assert.Equal(t, "fallback", services.ResolveModel("  ", " ", "fallback"))
	assert.Equal(t, "configured", services.ResolveModel("", "configured", "fallback"))
	assert.Equal(t, "override", services.ResolveModel(" override ", "configured", "fallback"))
}
