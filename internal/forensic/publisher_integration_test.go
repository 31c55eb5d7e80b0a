//go:build integration

package forensic

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"lexdiff/pkg/testutil/containers"
)

func TestKafkaSinkIntegration(t *testing.T) {
	const topic = "lexdiff.audit.records"

	broker := containers.NewRedpandaContainer(t)
	broker.CreateTopic(t, topic)

	sink, err := NewKafkaSink(broker.Brokers, topic)
	require.NoError(t, err)
	defer sink.Close()

	storage := testStorage(t)
	publisher := NewPublisher(storage, WithSink(sink), WithPublisherLogger(discardLogger()))

	ctx := context.Background()
	var stored []*AuditRecord
	for i := 0; i < 3; i++ {
		record := NewRecord("statute_diff_computed", SystemActor("differ"), "statute-a", uuid.New(), "", DecisionResult{Kind: ResultVoid})
		require.NoError(t, publisher.Emit(ctx, record))
		stored = append(stored, record)
	}

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(broker.Brokers...),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	require.NoError(t, err)
	defer consumer.Close()

	consumed := map[string]AuditRecord{}
	deadline := time.Now().Add(30 * time.Second)
	for len(consumed) < len(stored) && time.Now().Before(deadline) {
		fetchCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		fetches := consumer.PollFetches(fetchCtx)
		cancel()
		fetches.EachRecord(func(msg *kgo.Record) {
			var record AuditRecord
			require.NoError(t, json.Unmarshal(msg.Value, &record))
			consumed[string(msg.Key)] = record
		})
	}

	require.Len(t, consumed, len(stored))
	for _, want := range stored {
		got, ok := consumed[want.ID.String()]
		require.True(t, ok, "record %s not consumed", want.ID)
		assert.Equal(t, want.RecordHash, got.RecordHash, "published records carry the chained hash")
		assert.Equal(t, want.StatuteID, got.StatuteID)
	}
}
