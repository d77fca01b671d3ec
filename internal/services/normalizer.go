package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"alfredoptarigan/resume-reviewer/internal/models"
)

var codeFence = regexp.MustCompile("```(?:[A-Za-z][A-Za-z0-9_+-]*)?")

// StripToJSON isolates the object in a model reply: everything from the first
// "{" to the last "}", with code fence markers removed. It returns "{}" when
// there is no such span.
//
// Braces inside prose around the object, or unbalanced braces inside string
// values, can make the slice wrong. Normalize then reports MalformedResponse.
func StripToJSON(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end < start {
		return "{}"
	}

	sliced := codeFence.ReplaceAllString(raw[start:end+1], "")
	return strings.TrimSpace(sliced)
}

// Normalize parses a raw completion into a ReviewResult. The object is
// returned as the model produced it: no keys are added and no values coerced.
func Normalize(raw string) (models.ReviewResult, error) {
	candidate := StripToJSON(raw)

	decoder := json.NewDecoder(bytes.NewReader([]byte(candidate)))
	decoder.UseNumber()

	var result models.ReviewResult
	if err := decoder.Decode(&result); err != nil {
		return nil, malformed(err)
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return nil, malformed(fmt.Errorf("unexpected data after JSON object"))
	}
	if result == nil {
		result = models.ReviewResult{}
	}

	return result, nil
}

func malformed(cause error) error {
	return NewReviewError(KindMalformedResponse, "Model returned invalid JSON.",
		fmt.Errorf("%w: %v", ErrMalformedResponse, cause))
}
