package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"vouch/internal/verification/models"
)

// Recorder stamps evaluations into audit events and appends them to a store.
type Recorder struct {
	store Store
	now   func() time.Time
}

func NewRecorder(store Store) *Recorder {
	return &Recorder{store: store, now: time.Now}
}

// Record writes one audit event for the evaluation. The reasons slice is
// copied so later mutation by the caller cannot alter the stored record.
func (r *Recorder) Record(ctx context.Context, eval models.Evaluation) error {
	reasons := make([]string, len(eval.Reasons))
	copy(reasons, eval.Reasons)

	event := Event{
		ID:         uuid.NewString(),
		SessionID:  eval.SessionID,
		Decision:   eval.Decision,
		FinalScore: eval.Breakdown.FinalScore,
		Reasons:    reasons,
		RecordedAt: r.now().UTC(),
	}
	if err := r.store.Append(ctx, event); err != nil {
		return fmt.Errorf("record audit event: %w", err)
	}
	return nil
}
