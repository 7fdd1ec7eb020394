package model

import "strings"

// Action is the recommended trading stance.
type Action string

const (
	ActionBuy  Action = "BUY"
	ActionSell Action = "SELL"
	ActionHold Action = "HOLD"
)

// Recommendation is the suggestion engine's output for one asset.
type Recommendation struct {
	Symbol       string   `json:"symbol"`
	Name         string   `json:"name"`
	Action       Action   `json:"action"`
	Confidence   int      `json:"confidence"`
	CurrentPrice float64  `json:"current_price"`
	TargetPrice  float64  `json:"target_price"`
	Reasoning    []string `json:"reasoning"`
}

// ReasoningText joins the reasons in evaluation order for display.
func (r *Recommendation) ReasoningText() string {
	return strings.Join(r.Reasoning, " | ")
}
