package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/sirupsen/logrus"

	"alfredoptarigan/resume-reviewer/internal/config"
	"alfredoptarigan/resume-reviewer/internal/models"
)

const (
	anthropicLabel        = "Anthropic"
	anthropicDefaultModel = "claude-sonnet-4-5"
	anthropicMaxTokens    = 4096
)

func init() {
	RegisterProvider(config.ProviderAnthropic, func(cfg config.LLMConfig, logger *logrus.Logger) (CompletionClient, error) {
		return NewAnthropicClient(cfg, "", logger), nil
	})
}

type AnthropicClient struct {
	client       anthropic.Client
	apiKey       string
	defaultModel string
	timeout      time.Duration
	logger       *logrus.Logger
}

// NewAnthropicClient creates the Anthropic backend. A non-empty baseURL
// replaces the public endpoint (for testing).
func NewAnthropicClient(cfg config.LLMConfig, baseURL string, logger *logrus.Logger) *AnthropicClient {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.Anthropic.APIKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &AnthropicClient{
		client:       anthropic.NewClient(opts...),
		apiKey:       cfg.Anthropic.APIKey,
		defaultModel: cfg.Model,
		timeout:      cfg.Timeout,
		logger:       logger,
	}
}

func (a *AnthropicClient) Name() string {
	return config.ProviderAnthropic
}

// Complete implements CompletionClient. Text blocks of the reply are
// concatenated in order.
func (a *AnthropicClient) Complete(ctx context.Context, prompt models.PromptPair, modelOverride string) (string, error) {
	if a.apiKey == "" {
		return "", missingCredential(anthropicLabel)
	}

	model := ResolveModel(modelOverride, a.defaultModel, anthropicDefaultModel)

	ctx, cancel := callContext(ctx, a.timeout)
	defer cancel()

	started := time.Now()
	message, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(model),
		MaxTokens:   anthropicMaxTokens,
		Temperature: anthropic.Float(reviewTemperature),
		System: []anthropic.TextBlockParam{
			{Text: prompt.System},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt.User)),
		},
	})
	if err != nil {
		status := 0
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			status = apiErr.StatusCode
		}
		a.logger.WithFields(logrus.Fields{
			"provider": a.Name(),
			"model":    model,
			"status":   status,
			"elapsed":  time.Since(started).String(),
		}).WithError(err).Error("Completion request failed")
		return "", providerFailure(anthropicLabel, status, err)
	}

	var text strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	a.logger.WithFields(logrus.Fields{
		"provider":    a.Name(),
		"model":       model,
		"stop_reason": message.StopReason,
		"elapsed":     time.Since(started).String(),
	}).Debug("Completion received")

	return orEmptyCompletion(text.String()), nil
}
