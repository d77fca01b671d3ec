package services

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorKind string

const (
	KindInputTooShort       ErrorKind = "InputTooShort"
	KindUnsupportedFormat   ErrorKind = "UnsupportedFormat"
	KindExtractionFailure   ErrorKind = "ExtractionFailure"
	KindProviderDisabled    ErrorKind = "ProviderDisabled"
	KindProviderUnavailable ErrorKind = "ProviderUnavailable"
	KindProviderAuthError   ErrorKind = "ProviderAuthError"
	KindMalformedResponse   ErrorKind = "MalformedResponse"
	KindUnknownFailure      ErrorKind = "UnknownFailure"
)

// Sentinels for errors.Is. A *ReviewError matches the sentinel of its kind.
var (
	ErrInputTooShort       = errors.New("resume text too short")
	ErrUnsupportedFormat   = errors.New("unsupported file")
	ErrExtractionFailure   = errors.New("text extraction failed")
	ErrProviderDisabled    = errors.New("provider disabled")
	ErrProviderUnavailable = errors.New("provider unavailable")
	ErrProviderAuth        = errors.New("provider authentication failed")
	ErrMalformedResponse   = errors.New("malformed model response")
	ErrUnknownFailure      = errors.New("server error")
)

var sentinels = map[ErrorKind]error{
	KindInputTooShort:       ErrInputTooShort,
	KindUnsupportedFormat:   ErrUnsupportedFormat,
	KindExtractionFailure:   ErrExtractionFailure,
	KindProviderDisabled:    ErrProviderDisabled,
	KindProviderUnavailable: ErrProviderUnavailable,
	KindProviderAuthError:   ErrProviderAuth,
	KindMalformedResponse:   ErrMalformedResponse,
	KindUnknownFailure:      ErrUnknownFailure,
}

// ReviewError is a stage failure. Message is the single-line text shown to the
// caller; Err keeps the underlying cause for logs.
type ReviewError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *ReviewError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *ReviewError) Unwrap() error {
	return e.Err
}

func (e *ReviewError) Is(target error) bool {
	return sentinels[e.Kind] == target
}

func NewReviewError(kind ErrorKind, message string, cause error) *ReviewError {
	return &ReviewError{
		Kind:    kind,
		Message: message,
		Err:     cause,
	}
}

// AsReviewError returns err as a *ReviewError, classifying anything unknown as
// an UnknownFailure carrying the error's own text.
func AsReviewError(err error) *ReviewError {
	if err == nil {
		return nil
	}
	var re *ReviewError
	if errors.As(err, &re) {
		return re
	}
	return NewReviewError(KindUnknownFailure, err.Error(), err)
}

// StatusCode maps an error to the HTTP status returned to callers.
func StatusCode(err error) int {
	re := AsReviewError(err)
	if re == nil {
		return http.StatusOK
	}
	switch re.Kind {
	case KindInputTooShort, KindProviderDisabled, KindUnsupportedFormat, KindExtractionFailure:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage is the text placed in the {error} response body.
func PublicMessage(err error) string {
	re := AsReviewError(err)
	if re == nil {
		return ""
	}
	if re.Message == "" {
		return "Server error"
	}
	return re.Message
}
