package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"alfredoptarigan/resume-reviewer/internal/config"
	"alfredoptarigan/resume-reviewer/internal/models"
)

const (
	reviewTemperature = 0.2
	emptyCompletion   = "{}"
)

// CompletionClient sends one instruction pair to a language model and returns
// the reply text untouched.
type CompletionClient interface {
	Name() string
	Complete(ctx context.Context, prompt models.PromptPair, modelOverride string) (string, error)
}

// ProviderFactory builds a CompletionClient for one backend.
type ProviderFactory func(cfg config.LLMConfig, logger *logrus.Logger) (CompletionClient, error)

// registry of completion backends, populated by init() in each backend file or
// explicitly via RegisterProvider.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers a completion backend factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[strings.ToUpper(name)] = factory
}

// RegisteredProviders returns the registered backend names in sorted order.
func RegisteredProviders() []string {
	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewCompletionClient returns the client for the configured provider. When the
// provider is not on the allow list, or no backend is registered under its
// name, the returned client fails every call with ProviderDisabled.
func NewCompletionClient(cfg config.LLMConfig, logger *logrus.Logger) (CompletionClient, error) {
	provider := strings.ToUpper(strings.TrimSpace(cfg.Provider))

	factory, registered := providers[provider]
	if !cfg.ProviderEnabled() || !registered {
		logger.WithFields(logrus.Fields{
			"provider":   provider,
			"enabled":    cfg.EnabledProviders,
			"registered": registered,
		}).Warn("LLM provider is disabled, reviews will be rejected")
		return NewDisabledClient(provider, cfg.EnabledProviders), nil
	}

	client, err := factory(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", provider, err)
	}
	return client, nil
}

// ResolveModel picks the model for one call: the request override, then the
// configured default, then the backend's fallback.
func ResolveModel(override, configured, fallback string) string {
	if m := strings.TrimSpace(override); m != "" {
		return m
	}
	if m := strings.TrimSpace(configured); m != "" {
		return m
	}
	return fallback
}

type disabledClient struct {
	provider string
	message  string
}

func NewDisabledClient(provider string, enabled []string) CompletionClient {
	allowed := strings.Join(enabled, ", ")
	if allowed == "" {
		allowed = config.ProviderOpenRouter
	}
	return &disabledClient{
		provider: provider,
		message:  fmt.Sprintf("Only %s enabled.", allowed),
	}
}

func (d *disabledClient) Name() string {
	return d.provider
}

func (d *disabledClient) Complete(ctx context.Context, prompt models.PromptPair, modelOverride string) (string, error) {
	return "", NewReviewError(KindProviderDisabled, d.message,
		fmt.Errorf("%w: %s", ErrProviderDisabled, d.provider))
}

func missingCredential(provider string) error {
	return NewReviewError(KindProviderAuthError, fmt.Sprintf("%s API key is not configured.", provider),
		fmt.Errorf("%w: empty API key", ErrProviderAuth))
}

// providerFailure classifies a failed call by the HTTP status the provider
// answered with. Zero means no response was received.
func providerFailure(provider string, status int, err error) error {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return NewReviewError(KindProviderAuthError, fmt.Sprintf("%s rejected the API key.", provider),
			fmt.Errorf("%w: %v", ErrProviderAuth, err))
	case errors.Is(err, context.DeadlineExceeded):
		return NewReviewError(KindProviderUnavailable, fmt.Sprintf("%s did not respond in time.", provider),
			fmt.Errorf("%w: %v", ErrProviderUnavailable, err))
	case status != 0:
		return NewReviewError(KindProviderUnavailable, fmt.Sprintf("%s request failed with status %d.", provider, status),
			fmt.Errorf("%w: %v", ErrProviderUnavailable, err))
	default:
		return NewReviewError(KindProviderUnavailable, fmt.Sprintf("%s is unavailable.", provider),
			fmt.Errorf("%w: %v", ErrProviderUnavailable, err))
	}
}

func callContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

func orEmptyCompletion(text string) string {
	if text == "" {
		return emptyCompletion
	}
	return text
}
