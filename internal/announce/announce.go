// Package announce generates short constrained social-media posts. The
// contract (max length, required phrase) is stated in the prompt and then
// enforced deterministically, so it holds even when the model ignores it.
package announce

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"snow-agent/internal/gemini"
)

const (
	// MaxPostLength is the hard output cap in characters.
	MaxPostLength = 200

	requiredPhrase = "check for updates"
	appendedPhrase = "Check for updates."
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// Generator produces announcement posts.
type Generator struct {
	gen *gemini.TextGenerator
}

// NewGenerator builds an announcement generator on top of the retrying text
// generator.
func NewGenerator(gen *gemini.TextGenerator) *Generator {
	return &Generator{gen: gen}
}

// Generate returns a post of at most MaxPostLength characters containing the
// phrase "check for updates" case-insensitively.
func (g *Generator) Generate(ctx context.Context, topic string) (string, error) {
	prompt := fmt.Sprintf(`Write ONE professional government social media post.

Rules:
- Max 200 characters
- MUST include the exact phrase: "Check for updates"
- Output ONLY the post text

Topic: %s
Post:`, topic)

	post, err := g.gen.Generate(ctx, prompt, gemini.PostConfig())
	if err != nil {
		return "", fmt.Errorf("announcement call failed: %w", err)
	}

	post = strings.TrimSpace(whitespaceRe.ReplaceAllString(post, " "))

	// Repair when the model did not comply.
	if !strings.Contains(strings.ToLower(post), requiredPhrase) {
		if post != "" && !strings.HasSuffix(post, ".") && !strings.HasSuffix(post, "!") && !strings.HasSuffix(post, "?") {
			post += "."
		}
		post = strings.TrimSpace(post + " " + appendedPhrase)
	}

	if runes := []rune(post); len(runes) > MaxPostLength {
		post = string(runes[:MaxPostLength])
	}
	return post, nil
}
