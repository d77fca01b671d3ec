package services_test

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"

	"alfredoptarigan/resume-reviewer/internal/models"
)

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

type stubCompletion struct {
	reply      string
	err        error
	calls      int
	lastPrompt models.PromptPair
	lastModel  string
}

func (s *stubCompletion) Name() string {
	return "STUB"
}

func (s *stubCompletion) Complete(ctx context.Context, prompt models.PromptPair, modelOverride string) (string, error) {
	s.calls++
	s.lastPrompt = prompt
	s.lastModel = modelOverride
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}
