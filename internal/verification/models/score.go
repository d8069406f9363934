package models

import "time"

// Decision is the three-valued outcome derived from the final score.
type Decision string

const (
	DecisionAllow  Decision = "allow"
	DecisionReview Decision = "review"
	DecisionDeny   Decision = "deny"
)

// ScoreBreakdown carries the five component sub-scores alongside the final
// weighted score. All values are in [0,100].
type ScoreBreakdown struct {
	Rule        float64 `json:"rule"`
	Behavioral  float64 `json:"behavioral"`
	Fingerprint float64 `json:"fingerprint"`
	Facial      float64 `json:"facial"`
	DataQuality float64 `json:"dataQuality"`
	FinalScore  float64 `json:"finalScore"`
}

// Evaluation is the complete outcome of one verification request. It is a
// transient value returned to the caller; the engine persists nothing.
type Evaluation struct {
	SessionID   string         `json:"sessionId"`
	Decision    Decision       `json:"decision"`
	Breakdown   ScoreBreakdown `json:"breakdown"`
	Reasons     []string       `json:"reasons"`
	RuleResults []RuleResult   `json:"ruleResults"`
	Token       string         `json:"token,omitempty"`
	EvaluatedAt time.Time      `json:"evaluatedAt"`
}
