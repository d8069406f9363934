// Package events publishes verification decisions to downstream consumers.
package events

import (
	"context"
	"time"

	"vouch/internal/verification/models"
)

// DecisionEvent is the message emitted after every evaluation.
type DecisionEvent struct {
	SessionID  string          `json:"sessionId"`
	Decision   models.Decision `json:"decision"`
	FinalScore float64         `json:"finalScore"`
	Reasons    []string        `json:"reasons"`
	EmittedAt  time.Time       `json:"emittedAt"`
}

// Publisher delivers decision events. Delivery is best-effort from the
// caller's point of view; failures must not block verification.
type Publisher interface {
	Publish(ctx context.Context, event DecisionEvent) error
	Close()
}
