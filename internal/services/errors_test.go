package services_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"alfredoptarigan/resume-reviewer/internal/services"
)

func TestReviewError_IsAndUnwrap(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := services.NewReviewError(services.KindProviderUnavailable, "OpenRouter is unavailable.", cause)

	assert.True(t, errors.Is(err, services.ErrProviderUnavailable))
	assert.True(t, errors.Is(err, cause))
	assert.False(t, errors.Is(err, services.ErrProviderAuth))
	assert.Contains(t, err.Error(), "ProviderUnavailable")

	wrapped := fmt.Errorf("review failed: %w", err)
	var re *services.ReviewError
	assert.True(t, errors.As(wrapped, &re))
	assert.Equal(t, services.KindProviderUnavailable, re.Kind)
}

func TestAsReviewError(t *testing.T) {
	assert.Nil(t, services.AsReviewError(nil))

	re := services.AsReviewError(errors.New("boom"))
	assert.Equal(t, services.KindUnknownFailure, re.Kind)
	assert.Equal(t, "boom", re.Message)
	assert.True(t, errors.Is(re, services.ErrUnknownFailure))
}

func TestStatusCode(t *testing.T) {
	tests := []struct {
		kind services.ErrorKind
		want int
	}{
		{services.KindInputTooShort, http.StatusBadRequest},
		{services.KindProviderDisabled, http.StatusBadRequest},
		{services.KindUnsupportedFormat, http.StatusBadRequest},
		{services.KindExtractionFailure, http.StatusBadRequest},
		{services.KindProviderUnavailable, http.StatusInternalServerError},
		{services.KindProviderAuthError, http.StatusInternalServerError},
		{services.KindMalformedResponse, http.StatusInternalServerError},
		{services.KindUnknownFailure, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.want, services.StatusCode(services.NewReviewError(tt.kind, "x", nil)))
		})
	}

	assert.Equal(t, http.StatusInternalServerError, services.StatusCode(errors.New("plain")))
}

func TestPublicMessage(t *testing.T) {
	assert.Equal(t, "Server error", services.PublicMessage(services.NewReviewError(services.KindUnknownFailure, "", nil)))
	assert.Equal(t, "Resume text too short.", services.PublicMessage(
		services.NewReviewError(services.KindInputTooShort, "Resume text too short.", nil)))
	assert.Equal(t, "", services.PublicMessage(nil))
}
