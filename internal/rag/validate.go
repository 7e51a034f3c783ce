package rag

import (
	"regexp"
	"strings"

	"snow-agent/internal/models"
)

// Sentinel is the canonical answer for questions the context cannot support.
// It is the single answer exempt from the citation requirement.
const Sentinel = "I don't have enough information in the provided documents."

// citeRe matches citation markers of the form [doc_path#chunk_id].
var citeRe = regexp.MustCompile(`\[[^\]]+#\d+\]`)

// ValidateAnswer checks a generated answer for minimum length and citation
// presence.
func ValidateAnswer(answer string) models.ValidationResult {
	var issues []string

	if len(strings.TrimSpace(answer)) < 5 {
		issues = append(issues, models.IssueEmptyOrTooShort)
	}

	if strings.TrimSpace(answer) != Sentinel && !citeRe.MatchString(answer) {
		issues = append(issues, models.IssueMissingCitations)
	}

	return models.ValidationResult{Valid: len(issues) == 0, Issues: issues}
}
