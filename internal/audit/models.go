package audit

import (
	"time"

	"vouch/internal/verification/models"
)

// Event is one immutable record of a verification outcome.
type Event struct {
	ID         string          `json:"id"`
	SessionID  string          `json:"sessionId"`
	Decision   models.Decision `json:"decision"`
	FinalScore float64         `json:"finalScore"`
	Reasons    []string        `json:"reasons"`
	RecordedAt time.Time       `json:"recordedAt"`
}
