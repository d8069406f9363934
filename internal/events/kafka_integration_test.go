//go:build integration

package events_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"vouch/internal/events"
	"vouch/internal/verification/models"
	"vouch/pkg/testutil/containers"
)

func TestKafkaPublisherDeliversDecisionEvents(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	const topic = "vouch.decisions.test"

	kafka := containers.NewKafkaContainer(t)
	kafka.CreateTopic(t, topic)

	logger := slog.New(slog.DiscardHandler)
	publisher, err := events.NewKafkaPublisher(kafka.Brokers, topic, logger)
	require.NoError(t, err)

	event := events.DecisionEvent{
		SessionID:  "sess-1",
		Decision:   models.DecisionDeny,
		FinalScore: 35,
		Reasons:    []string{"low confidence in verification signals"},
		EmittedAt:  time.Now().UTC().Truncate(time.Millisecond),
	}
	require.NoError(t, publisher.Publish(context.Background(), event))
	publisher.Close()

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(kafka.Brokers...),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	require.NoError(t, err)
	defer consumer.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	fetches := consumer.PollFetches(ctx)
	require.NoError(t, fetches.Err())

	records := fetches.Records()
	require.Len(t, records, 1)
	require.Equal(t, "sess-1", string(records[0].Key))

	var got events.DecisionEvent
	require.NoError(t, json.Unmarshal(records[0].Value, &got))
	require.Equal(t, event, got)
}
