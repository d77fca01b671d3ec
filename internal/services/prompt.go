package services

import (
	"fmt"
	"strings"

	"alfredoptarigan/resume-reviewer/internal/models"
)

const (
	MaxResumeChars         = 8000
	MaxJobDescriptionChars = 4000

	defaultTargetRole     = "Unknown"
	defaultSeniority      = models.SeniorityMid
	defaultJobDescription = "N/A"
)

const reviewSystemPrompt = `You are a resume reviewer. Return JSON with keys:
- scores: { overall, ats, readability, impact, keywords } (0-100)
- optimizedSummary: string
- bulletRewrites: string[]
- missingKeywords: string[]
- strengths: string[]
- redFlags: string[]
- sectionAdvice: { Summary: string[], Experience: string[], Skills: string[], Education: string[] }
- actionItems: { change: string, reason: string, impact: string }[]`

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildReviewPrompt creates the instruction pair for a resume review. It has
// no side effects and the same request always yields the same pair.
func (pb *PromptBuilder) BuildReviewPrompt(req models.ReviewRequest) models.PromptPair {
	req = PrepareRequest(req)

	user := fmt.Sprintf(`Resume (trimmed):
%s

---
Target role: %s
Seniority: %s
Job description (optional): %s

Return strictly valid JSON only, no extra text.`,
		req.ResumeText,
		orDefault(req.TargetRole, defaultTargetRole),
		orDefault(req.Seniority, defaultSeniority),
		orDefault(req.JobDescription, defaultJobDescription),
	)

	return models.PromptPair{
		System: reviewSystemPrompt,
		User:   user,
	}
}

// PrepareRequest applies the size limits to the free-text fields. Applying it
// twice gives the same request.
func PrepareRequest(req models.ReviewRequest) models.ReviewRequest {
	req.ResumeText = truncateRunes(req.ResumeText, MaxResumeChars)
	req.JobDescription = truncateRunes(req.JobDescription, MaxJobDescriptionChars)
	return req
}

func truncateRunes(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	count := 0
	for i := range s {
		if count == limit {
			return s[:i]
		}
		count++
	}
	return s
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
