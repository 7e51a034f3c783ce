package models

// Gate decisions. The gate never produces anything else.
const (
	DecisionAllow = "ALLOW"
	DecisionBlock = "BLOCK"
)

// GateDecision is the outcome of the deterministic safety gate.
type GateDecision struct {
	Decision string `json:"decision"`
	Reason   string `json:"reason"`
}

// Allowed reports whether the gate let the query through.
func (g GateDecision) Allowed() bool {
	return g.Decision == DecisionAllow
}
