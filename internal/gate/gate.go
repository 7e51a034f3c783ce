// Package gate implements the deterministic safety pre-check that runs before
// any model call. A model-based judge can emit unparseable output and block
// legitimate queries wholesale; a substring gate is auditable and cannot.
package gate

import (
	"strings"

	"snow-agent/internal/models"
)

// blockedPhrases covers clear unsafe or illegal intents only. Everything else
// is allowed.
var blockedPhrases = []string{
	// weapons / explosives / violence
	"how to build a bomb", "make a bomb", "explosive", "molotov",
	"how to kill", "kill someone", "murder", "shoot", "stab",
	// self-harm
	"suicide", "kill myself", "self harm",
	// illegal / sabotage
	"sabotage", "disable a plow", "destroy", "poison", "ricin",
	"steal", "hack", "bypass", "jailbreak",
}

const (
	blockReason = "Unsafe or illegal request."
	allowReason = "Looks safe."
)

// Evaluate classifies a query as ALLOW or BLOCK by case-insensitive substring
// match against the block list. No model call is involved.
func Evaluate(query string) models.GateDecision {
	q := strings.ToLower(strings.TrimSpace(query))

	for _, phrase := range blockedPhrases {
		if strings.Contains(q, phrase) {
			return models.GateDecision{Decision: models.DecisionBlock, Reason: blockReason}
		}
	}

	return models.GateDecision{Decision: models.DecisionAllow, Reason: allowReason}
}
