// Package classify maps free-text questions onto the fixed department
// category labels via a single constrained generation call.
package classify

import (
	"context"
	"fmt"
	"strings"

	"snow-agent/internal/gemini"
)

// The fixed label set. Downstream routing depends on exact matches.
const (
	Employment         = "Employment"
	GeneralInformation = "General Information"
	EmergencyServices  = "Emergency Services"
	TaxRelated         = "Tax Related"
)

var allowedCategories = map[string]bool{
	Employment:         true,
	GeneralInformation: true,
	EmergencyServices:  true,
	TaxRelated:         true,
}

// shortenings the model commonly emits instead of the full label.
var normalizations = map[string]string{
	"Emergency": EmergencyServices,
	"Tax":       TaxRelated,
	"Taxes":     TaxRelated,
}

// UnexpectedCategoryError is returned when the model output normalizes to
// something outside the label set. It carries the raw output so callers can
// surface it; silently coercing to a default label is not an option.
type UnexpectedCategoryError struct {
	Raw string
}

func (e *UnexpectedCategoryError) Error() string {
	return fmt.Sprintf("unexpected category: %q", e.Raw)
}

// Classifier resolves questions to category labels.
type Classifier struct {
	gen *gemini.TextGenerator
}

// NewClassifier builds a classifier on top of the retrying text generator.
func NewClassifier(gen *gemini.TextGenerator) *Classifier {
	return &Classifier{gen: gen}
}

// Classify returns exactly one of the four labels or an
// *UnexpectedCategoryError.
func (c *Classifier) Classify(ctx context.Context, question string) (string, error) {
	prompt := fmt.Sprintf(`Classify the question into EXACTLY one of these labels:
Employment
General Information
Emergency Services
Tax Related

Rules:
- Output ONLY the exact label text above.
- No extra words, punctuation, or explanation.

Question: %s
Output:`, question)

	out, err := c.gen.Generate(ctx, prompt, gemini.DeterministicConfig())
	if err != nil {
		return "", fmt.Errorf("classification call failed: %w", err)
	}

	out = strings.TrimSpace(strings.ReplaceAll(out, ".", ""))
	if full, ok := normalizations[out]; ok {
		out = full
	}

	if !allowedCategories[out] {
		return "", &UnexpectedCategoryError{Raw: out}
	}
	return out, nil
}
