package models

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

const (
	SeniorityIntern = "intern"
	SeniorityJunior = "junior"
	SeniorityMid    = "mid"
	SenioritySenior = "senior"
	SeniorityLead   = "lead"
)

// Seniorities lists the hints the UI offers. The server passes any value
// through to the prompt unchanged.
var Seniorities = []string{SeniorityIntern, SeniorityJunior, SeniorityMid, SenioritySenior, SeniorityLead}

// KnownSeniority reports whether s is empty or one of Seniorities, ignoring
// case.
func KnownSeniority(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return true
	}
	for _, known := range Seniorities {
		if strings.EqualFold(s, known) {
			return true
		}
	}
	return false
}

type ReviewRequest struct {
	ResumeText     string `json:"resumeText" form:"resumeText" validate:"trimmedmin=30"`
	TargetRole     string `json:"targetRole,omitempty" form:"targetRole"`
	JobDescription string `json:"jobDescription,omitempty" form:"jobDescription"`
	Seniority      string `json:"seniority,omitempty" form:"seniority"`
	Model          string `json:"model,omitempty" form:"model"`
}

type PromptPair struct {
	System string
	User   string
}

// ReviewResult is the model's JSON object exactly as recovered. Keys the model
// omitted are absent; values are never coerced.
type ReviewResult map[string]any

// ReviewShape documents the object the model is asked to return. It is only
// used for display; results are never validated against it.
type ReviewShape struct {
	Scores           Scores              `json:"scores"`
	OptimizedSummary string              `json:"optimizedSummary"`
	BulletRewrites   []string            `json:"bulletRewrites"`
	MissingKeywords  []string            `json:"missingKeywords"`
	Strengths        []string            `json:"strengths"`
	RedFlags         []string            `json:"redFlags"`
	SectionAdvice    map[string][]string `json:"sectionAdvice"`
	ActionItems      []ActionItem        `json:"actionItems"`
}

type Scores struct {
	Overall     float64 `json:"overall"`
	ATS         float64 `json:"ats"`
	Readability float64 `json:"readability"`
	Impact      float64 `json:"impact"`
	Keywords    float64 `json:"keywords"`
}

type ActionItem struct {
	Change string `json:"change"`
	Reason string `json:"reason"`
	Impact string `json:"impact"`
}

// ShapeOf decodes result into a ReviewShape. Fields whose values do not fit
// the shape are left zero and reported in the returned error; the rest of the
// shape is still filled.
func ShapeOf(result ReviewResult) (ReviewShape, error) {
	var shape ReviewShape
	data, err := json.Marshal(result)
	if err != nil {
		return shape, fmt.Errorf("failed to encode review result: %w", err)
	}
	if err := json.Unmarshal(data, &shape); err != nil {
		return shape, fmt.Errorf("review result does not match the expected shape: %w", err)
	}
	return shape, nil
}

// WriteSummary prints the scores and action items as plain text.
func (s ReviewShape) WriteSummary(w io.Writer) error {
	var b strings.Builder

	b.WriteString("Scores\n")
	for _, row := range []struct {
		label string
		value float64
	}{
		{"Overall", s.Scores.Overall},
		{"ATS", s.Scores.ATS},
		{"Readability", s.Scores.Readability},
		{"Impact", s.Scores.Impact},
		{"Keywords", s.Scores.Keywords},
	} {
		fmt.Fprintf(&b, "  %-12s %g\n", row.label, row.value)
	}

	b.WriteString("\nAction items\n")
	if len(s.ActionItems) == 0 {
		b.WriteString("  (none)\n")
	}
	for i, item := range s.ActionItems {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, item.Change)
		if item.Reason != "" {
			fmt.Fprintf(&b, "     Reason: %s\n", item.Reason)
		}
		if item.Impact != "" {
			fmt.Fprintf(&b, "     Impact: %s\n", item.Impact)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
