package facades

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/sbilibin2017/recipe-share/internal/models"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Fake Kafka writer ---
type fakeKafkaWriter struct {
	messages []kafka.Message
	err      error
}

func (f *fakeKafkaWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, msgs...)
	return nil
}

func testEvent() models.RecipeEvent {
	return models.RecipeEvent{
		EventID:    "evt-1",
		Type:       models.RecipeCreated,
		RecipeID:   42,
		OwnerLogin: "alice",
		Title:      "Borscht",
		OccurredAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestPublish(t *testing.T) {
	writer := &fakeKafkaWriter{}
	facade := NewRecipeEventsKafkaFacade(writer)

	err := facade.Publish(context.Background(), testEvent())
	require.NoError(t, err)
	require.Len(t, writer.messages, 1)

	msg := writer.messages[0]
	assert.Equal(t, "42", string(msg.Key))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "event_type", msg.Headers[0].Key)
	assert.Equal(t, models.RecipeCreated, string(msg.Headers[0].Value))

	var decoded models.RecipeEvent
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, testEvent(), decoded)
}

func TestPublish_Error(t *testing.T) {
	facade := NewRecipeEventsKafkaFacade(&fakeKafkaWriter{err: errors.New("broker down")})

	err := facade.Publish(context.Background(), testEvent())
	assert.EqualError(t, err, "broker down")
}

func TestPublish_NoWriter(t *testing.T) {
	facade := NewRecipeEventsKafkaFacade(nil)

	assert.NoError(t, facade.Publish(context.Background(), testEvent()))
}

func TestNewKafkaWriter(t *testing.T) {
	w := NewKafkaWriter([]string{"kafka:9092"}, "recipe-events")
	defer w.Close()

	assert.Equal(t, "recipe-events", w.Topic)
	assert.Equal(t, "kafka:9092", w.Addr.String())
	assert.IsType(t, &kafka.Hash{}, w.Balancer)
	assert.Equal(t, kafka.RequireOne, w.RequiredAcks)
	assert.False(t, w.Async)

	// A lone message must not wait for a full batch or the default 1s flush.
	assert.Equal(t, 1, w.BatchSize)
	assert.Equal(t, eventFlushInterval, w.BatchTimeout)
	assert.Less(t, w.BatchTimeout, 100*time.Millisecond)
}
