package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"alfredoptarigan/resume-reviewer/internal/models"
)

const MinResumeChars = 30

type ReviewService interface {
	// Review runs validation, prompt construction, completion and
	// normalization for text supplied by the caller.
	Review(ctx context.Context, req models.ReviewRequest) (models.ReviewResult, error)
	// ReviewDocument extracts the resume text from doc first; the extracted
	// text replaces req.ResumeText.
	ReviewDocument(ctx context.Context, doc models.SourceDocument, req models.ReviewRequest) (models.ReviewResult, error)
	// Extract returns the trimmed text of doc without contacting the provider.
	Extract(doc models.SourceDocument) (string, error)
	Provider() string
}

type reviewService struct {
	extractor     *TextExtractor
	promptBuilder *PromptBuilder
	completion    CompletionClient
	validate      *validator.Validate
	logger        *logrus.Logger
}

func NewReviewService(extractor *TextExtractor, completion CompletionClient, logger *logrus.Logger) ReviewService {
	return &reviewService{
		extractor:     extractor,
		promptBuilder: NewPromptBuilder(),
		completion:    completion,
		validate:      models.NewValidator(),
		logger:        logger,
	}
}

func (r *reviewService) Provider() string {
	return r.completion.Name()
}

// Extract implements ReviewService.
func (r *reviewService) Extract(doc models.SourceDocument) (string, error) {
	text, err := r.extractor.ExtractText(doc)
	if err != nil {
		r.logger.WithFields(logrus.Fields{
			"filename": doc.Filename,
			"kind":     doc.Kind,
			"bytes":    len(doc.Data),
		}).WithError(err).Warn("Text extraction failed")
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// ReviewDocument implements ReviewService.
func (r *reviewService) ReviewDocument(ctx context.Context, doc models.SourceDocument, req models.ReviewRequest) (models.ReviewResult, error) {
	text, err := r.Extract(doc)
	if err != nil {
		return nil, err
	}
	req.ResumeText = text
	return r.Review(ctx, req)
}

// Review implements ReviewService.
func (r *reviewService) Review(ctx context.Context, req models.ReviewRequest) (models.ReviewResult, error) {
	reviewID := uuid.New()
	log := r.logger.WithFields(logrus.Fields{
		"review_id": reviewID.String(),
		"provider":  r.completion.Name(),
	})

	if err := r.validate.Struct(req); err != nil {
		log.WithField("resume_chars", len([]rune(strings.TrimSpace(req.ResumeText)))).
			Info("Review rejected: resume text too short")
		return nil, NewReviewError(KindInputTooShort, "Resume text too short.",
			fmt.Errorf("%w: %v", ErrInputTooShort, err))
	}

	req = PrepareRequest(req)
	prompt := r.promptBuilder.BuildReviewPrompt(req)

	log.WithFields(logrus.Fields{
		"seniority":     req.Seniority,
		"target_role":   req.TargetRole,
		"model":         req.Model,
		"prompt_length": len(prompt.User),
	}).Info("Starting review")

	started := time.Now()
	raw, err := r.completion.Complete(ctx, prompt, req.Model)
	if err != nil {
		re := AsReviewError(err)
		log.WithField("kind", re.Kind).WithError(err).Error("Completion failed")
		return nil, re
	}

	result, err := Normalize(raw)
	if err != nil {
		log.WithField("response_length", len(raw)).WithError(err).Error("Failed to normalize completion")
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"keys":    len(result),
		"elapsed": time.Since(started).String(),
	}).Info("Review completed")

	return result, nil
}
