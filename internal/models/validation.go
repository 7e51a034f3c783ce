package models

import "strings"

// Validation issue tags.
const (
	IssueEmptyOrTooShort  = "empty_or_too_short"
	IssueMissingCitations = "missing_citations"
)

// ValidationResult is the outcome of the answer validator. Issues keeps the
// order in which checks ran and is empty when the answer is valid.
type ValidationResult struct {
	Valid  bool
	Issues []string
}

// TriviallyValid is the marker attached to blocked responses, where no
// generation occurred and there is nothing to validate.
func TriviallyValid() ValidationResult {
	return ValidationResult{Valid: true}
}

// IssueString flattens the issue list for wire and log use.
func (v ValidationResult) IssueString() string {
	return strings.Join(v.Issues, ", ")
}

// Has reports whether the result carries the given issue tag.
func (v ValidationResult) Has(issue string) bool {
	for _, i := range v.Issues {
		if i == issue {
			return true
		}
	}
	return false
}
