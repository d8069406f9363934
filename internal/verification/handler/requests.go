package handler

import (
	"strings"

	"vouch/internal/verification/models"
	dErrors "vouch/pkg/domain-errors"
)

// VerifyRequest is the HTTP request body for POST /verify.
type VerifyRequest struct {
	SessionID   string         `json:"sessionId"`
	Timestamp   int64          `json:"timestamp"`
	Fingerprint map[string]any `json:"fingerprint,omitempty"`
	Behavioral  map[string]any `json:"behavioral,omitempty"`
	Facial      map[string]any `json:"facial,omitempty"`
}

// Validate checks required fields. Signal sections are optional; scoring
// handles their absence.
func (r *VerifyRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.SessionID = strings.TrimSpace(r.SessionID)
	if r.SessionID == "" {
		return dErrors.New(dErrors.CodeBadRequest, "sessionId is required")
	}
	if r.Timestamp <= 0 {
		return dErrors.New(dErrors.CodeBadRequest, "timestamp must be a positive unix millisecond value")
	}
	return nil
}

// ToContext converts the request into a verification context.
func (r *VerifyRequest) ToContext() *models.VerificationContext {
	return &models.VerificationContext{
		SessionID:   r.SessionID,
		Timestamp:   r.Timestamp,
		Fingerprint: r.Fingerprint,
		Behavioral:  r.Behavioral,
		Facial:      r.Facial,
	}
}

// LoadRulesRequest is the HTTP request body for POST /rules.
type LoadRulesRequest struct {
	Rules      []models.Rule     `json:"rules"`
	Thresholds models.Thresholds `json:"thresholds"`
}

// Validate leaves per-rule checks to the store, which validates the batch
// as a whole before swapping it in.
func (r *LoadRulesRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	return nil
}

// TemporaryRuleRequest is the HTTP request body for POST /rules/temporary.
type TemporaryRuleRequest struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Condition   string  `json:"condition"`
	Weight      float64 `json:"weight"`
	Action      string  `json:"action"`
	Description string  `json:"description,omitempty"`
}

func (r *TemporaryRuleRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if strings.TrimSpace(r.ID) == "" {
		return dErrors.New(dErrors.CodeBadRequest, "id is required")
	}
	if _, err := models.ParseAction(r.Action); err != nil {
		return dErrors.New(dErrors.CodeBadRequest, err.Error())
	}
	return nil
}

// ToRule converts the request into a rule. The store forces the temporary
// flag regardless of input.
func (r *TemporaryRuleRequest) ToRule() models.Rule {
	action, _ := models.ParseAction(r.Action)
	return models.Rule{
		ID:          r.ID,
		Name:        r.Name,
		Condition:   r.Condition,
		Weight:      r.Weight,
		Action:      action,
		Enabled:     true,
		Description: r.Description,
		Temporary:   true,
	}
}
