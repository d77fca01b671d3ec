package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"google.golang.org/genai"

	"alfredoptarigan/resume-reviewer/internal/config"
	"alfredoptarigan/resume-reviewer/internal/models"
)

const (
	geminiLabel        = "Gemini"
	geminiDefaultModel = "gemini-2.5-flash"
)

func init() {
	RegisterProvider(config.ProviderGemini, func(cfg config.LLMConfig, logger *logrus.Logger) (CompletionClient, error) {
		return NewGeminiClient(context.Background(), cfg, "", logger)
	})
}

type GeminiClient struct {
	client       *genai.Client
	defaultModel string
	timeout      time.Duration
	logger       *logrus.Logger
}

// NewGeminiClient creates the Gemini backend. A non-empty baseURL replaces the
// public endpoint (for testing). Without an API key no SDK client is built and
// every call fails with ProviderAuthError.
func NewGeminiClient(ctx context.Context, cfg config.LLMConfig, baseURL string, logger *logrus.Logger) (*GeminiClient, error) {
	g := &GeminiClient{
		defaultModel: cfg.Model,
		timeout:      cfg.Timeout,
		logger:       logger,
	}
	if cfg.Gemini.APIKey == "" {
		return g, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     cfg.Gemini.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{},
		HTTPOptions: genai.HTTPOptions{
			BaseURL: baseURL,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	g.client = client

	return g, nil
}

func (g *GeminiClient) Name() string {
	return config.ProviderGemini
}

// Complete implements CompletionClient.
func (g *GeminiClient) Complete(ctx context.Context, prompt models.PromptPair, modelOverride string) (string, error) {
	if g.client == nil {
		return "", missingCredential(geminiLabel)
	}

	model := ResolveModel(modelOverride, g.defaultModel, geminiDefaultModel)
	temperature := float32(reviewTemperature)

	genConfig := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(prompt.System, genai.RoleUser),
		Temperature:       &temperature,
	}

	ctx, cancel := callContext(ctx, g.timeout)
	defer cancel()

	started := time.Now()
	resp, err := g.client.Models.GenerateContent(ctx, model, genai.Text(prompt.User), genConfig)
	if err != nil {
		status := 0
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			status = apiErr.Code
		}
		g.logger.WithFields(logrus.Fields{
			"provider": g.Name(),
			"model":    model,
			"status":   status,
			"elapsed":  time.Since(started).String(),
		}).WithError(err).Error("Completion request failed")
		return "", providerFailure(geminiLabel, status, err)
	}

	if resp == nil {
		return emptyCompletion, nil
	}

	g.logger.WithFields(logrus.Fields{
		"provider":   g.Name(),
		"model":      model,
		"candidates": len(resp.Candidates),
		"elapsed":    time.Since(started).String(),
	}).Debug("Completion received")

	return orEmptyCompletion(resp.Text()), nil
}
