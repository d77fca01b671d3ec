package services

import (
	"context"
	"errors"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/sirupsen/logrus"

	"alfredoptarigan/resume-reviewer/internal/config"
	"alfredoptarigan/resume-reviewer/internal/models"
)

const (
	openRouterLabel         = "OpenRouter"
	openRouterDefaultModel  = "deepseek/deepseek-chat"
	openRouterDefaultAPIURL = "https://openrouter.ai/api/v1"
)

func init() {
	RegisterProvider(config.ProviderOpenRouter, func(cfg config.LLMConfig, logger *logrus.Logger) (CompletionClient, error) {
		return NewOpenRouterClient(cfg, logger), nil
	})
}

// OpenRouterClient talks to OpenRouter's OpenAI-compatible chat completions
// endpoint.
type OpenRouterClient struct {
	client       openai.Client
	apiKey       string
	defaultModel string
	timeout      time.Duration
	logger       *logrus.Logger
}

func NewOpenRouterClient(cfg config.LLMConfig, logger *logrus.Logger) *OpenRouterClient {
	baseURL := cfg.OpenRouter.BaseURL
	if baseURL == "" {
		baseURL = openRouterDefaultAPIURL
	}
	return NewOpenRouterClientWithEndpoint(cfg, baseURL, logger)
}

// NewOpenRouterClientWithEndpoint creates a client pointing at a custom API
// base URL (for testing).
func NewOpenRouterClientWithEndpoint(cfg config.LLMConfig, baseURL string, logger *logrus.Logger) *OpenRouterClient {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.OpenRouter.APIKey),
		option.WithBaseURL(baseURL),
		option.WithMaxRetries(0),
	}
	if cfg.OpenRouter.Referer != "" {
		opts = append(opts, option.WithHeader("HTTP-Referer", cfg.OpenRouter.Referer))
	}
	if cfg.OpenRouter.Title != "" {
		opts = append(opts, option.WithHeader("X-Title", cfg.OpenRouter.Title))
	}

	return &OpenRouterClient{
		client:       openai.NewClient(opts...),
		apiKey:       cfg.OpenRouter.APIKey,
		defaultModel: cfg.Model,
		timeout:      cfg.Timeout,
		logger:       logger,
	}
}

func (c *OpenRouterClient) Name() string {
	return config.ProviderOpenRouter
}

// Complete implements CompletionClient.
func (c *OpenRouterClient) Complete(ctx context.Context, prompt models.PromptPair, modelOverride string) (string, error) {
	if c.apiKey == "" {
		return "", missingCredential(openRouterLabel)
	}

	model := ResolveModel(modelOverride, c.defaultModel, openRouterDefaultModel)

	ctx, cancel := callContext(ctx, c.timeout)
	defer cancel()

	started := time.Now()
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(prompt.System),
			openai.UserMessage(prompt.User),
		},
		Temperature: openai.Float(reviewTemperature),
	})
	if err != nil {
		status := 0
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			status = apiErr.StatusCode
		}
		c.logger.WithFields(logrus.Fields{
			"provider": c.Name(),
			"model":    model,
			"status":   status,
			"elapsed":  time.Since(started).String(),
		}).WithError(err).Error("Completion request failed")
		return "", providerFailure(openRouterLabel, status, err)
	}

	c.logger.WithFields(logrus.Fields{
		"provider": c.Name(),
		"model":    model,
		"choices":  len(resp.Choices),
		"elapsed":  time.Since(started).String(),
	}).Debug("Completion received")

	if len(resp.Choices) == 0 {
		return emptyCompletion, nil
	}
	return orEmptyCompletion(resp.Choices[0].Message.Content), nil
}
