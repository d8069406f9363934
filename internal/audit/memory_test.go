package audit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vouch/internal/verification/models"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Append(ctx, Event{ID: "e1", SessionID: "s1", Decision: models.DecisionDeny}))
	require.NoError(t, store.Append(ctx, Event{ID: "e2", SessionID: "s2", Decision: models.DecisionAllow}))
	require.NoError(t, store.Append(ctx, Event{ID: "e3", SessionID: "s1", Decision: models.DecisionReview}))

	events, err := store.ListBySession(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "e1", events[0].ID)
	assert.Equal(t, "e3", events[1].ID)

	events, err = store.ListBySession(ctx, "unknown")
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestRecorder(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	recorder := NewRecorder(store)

	stamped := time.UnixMilli(1700000000000)
	recorder.now = func() time.Time { return stamped }

	eval := models.Evaluation{
		SessionID: "s1",
		Decision:  models.DecisionDeny,
		Breakdown: models.ScoreBreakdown{FinalScore: 35},
		Reasons:   []string{"low confidence in verification signals"},
	}
	require.NoError(t, recorder.Record(ctx, eval))

	events, err := store.ListBySession(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, events, 1)

	got := events[0]
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, models.DecisionDeny, got.Decision)
	assert.Equal(t, 35.0, got.FinalScore)
	assert.Equal(t, stamped.UTC(), got.RecordedAt)

	// Stored reasons are a copy; the caller mutating theirs has no effect.
	eval.Reasons[0] = "mutated"
	events, err = store.ListBySession(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "low confidence in verification signals", events[0].Reasons[0])
}
