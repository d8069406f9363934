package models

import (
	"fmt"
	"math"
	"strings"
)

// Action is the outcome a rule votes for when its condition holds.
type Action string

const (
	ActionAllow  Action = "allow"
	ActionReview Action = "review"
	ActionDeny   Action = "deny"
)

// ParseAction normalizes and validates an action string.
func ParseAction(s string) (Action, error) {
	switch Action(strings.ToLower(strings.TrimSpace(s))) {
	case ActionAllow:
		return ActionAllow, nil
	case ActionReview:
		return ActionReview, nil
	case ActionDeny:
		return ActionDeny, nil
	}
	return "", fmt.Errorf("invalid action %q", s)
}

// Valid reports whether the action is one of the three known values.
func (a Action) Valid() bool {
	return a == ActionAllow || a == ActionReview || a == ActionDeny
}

// Rule is a named, weighted condition mapped to an action. Rules are loaded
// from configuration or injected at runtime as temporary; they are never
// mutated in place; updates replace the entry.
type Rule struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Condition   string  `json:"condition"`
	Weight      float64 `json:"weight"`
	Action      Action  `json:"action"`
	Enabled     bool    `json:"enabled"`
	Description string  `json:"description,omitempty"`
	Temporary   bool    `json:"temporary,omitempty"`
}

// Validate checks the structural invariants of a single rule. Condition
// syntax is deliberately not checked here: a rule that fails to parse is
// reported per evaluation, not rejected at load.
func (r Rule) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("rule id must not be empty")
	}
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("rule %q: name must not be empty", r.ID)
	}
	if strings.TrimSpace(r.Condition) == "" {
		return fmt.Errorf("rule %q: condition must not be empty", r.ID)
	}
	if !r.Action.Valid() {
		return fmt.Errorf("rule %q: invalid action %q", r.ID, r.Action)
	}
	if math.IsNaN(r.Weight) || math.IsInf(r.Weight, 0) {
		return fmt.Errorf("rule %q: weight must be finite", r.ID)
	}
	return nil
}

// RuleResult is the outcome of evaluating one rule against one context.
// When Error is set the rule's condition failed to parse or evaluate; the
// result is still reported but carries no weight in aggregation.
type RuleResult struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Passed      bool    `json:"passed"`
	Weight      float64 `json:"weight"`
	Score       float64 `json:"score"`
	Action      Action  `json:"action"`
	Condition   string  `json:"condition"`
	Description string  `json:"description,omitempty"`
	Error       string  `json:"error,omitempty"`
}

// Thresholds map a final score onto a decision. The ordering invariant
// allow >= review >= deny is enforced at load time.
type Thresholds struct {
	Allow  float64 `json:"allow"`
	Review float64 `json:"review"`
	Deny   float64 `json:"deny"`
}

// Validate rejects misordered or non-finite thresholds.
func (t Thresholds) Validate() error {
	for _, v := range []float64{t.Allow, t.Review, t.Deny} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("thresholds must be finite")
		}
	}
	if t.Allow < t.Review || t.Review < t.Deny {
		return fmt.Errorf("thresholds must satisfy allow >= review >= deny (got %v >= %v >= %v)",
			t.Allow, t.Review, t.Deny)
	}
	return nil
}

// RuleStats summarizes the rule set for observability endpoints.
type RuleStats struct {
	Total      int            `json:"total"`
	Enabled    int            `json:"enabled"`
	Temporary  int            `json:"temporary"`
	ByAction   map[Action]int `json:"byAction"`
	Rewarding  int            `json:"rewarding"`  // weight > 0
	Penalizing int            `json:"penalizing"` // weight < 0
}
