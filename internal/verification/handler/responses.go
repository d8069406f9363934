package handler

import (
	"time"

	"vouch/internal/verification/models"
)

// VerifyResponse is the HTTP response for POST /verify.
type VerifyResponse struct {
	SessionID   string                `json:"sessionId"`
	Decision    string                `json:"decision"`
	Score       float64               `json:"score"`
	Breakdown   models.ScoreBreakdown `json:"breakdown"`
	Reasons     []string              `json:"reasons"`
	RuleResults []models.RuleResult   `json:"ruleResults"`
	Token       string                `json:"token,omitempty"`
	EvaluatedAt time.Time             `json:"evaluatedAt"`
}

// FromEvaluation converts a domain evaluation to an HTTP response.
func FromEvaluation(eval models.Evaluation) VerifyResponse {
	return VerifyResponse{
		SessionID:   eval.SessionID,
		Decision:    string(eval.Decision),
		Score:       eval.Breakdown.FinalScore,
		Breakdown:   eval.Breakdown,
		Reasons:     eval.Reasons,
		RuleResults: eval.RuleResults,
		Token:       eval.Token,
		EvaluatedAt: eval.EvaluatedAt,
	}
}

// RuleStatsResponse is the HTTP response for rule-management endpoints.
type RuleStatsResponse struct {
	Stats models.RuleStats `json:"stats"`
}
