package facades

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/sbilibin2017/recipe-share/internal/logger"
	"github.com/sbilibin2017/recipe-share/internal/models"
	"github.com/segmentio/kafka-go"
)

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
}

// eventFlushInterval bounds how long a synchronous write waits for its batch.
const eventFlushInterval = 10 * time.Millisecond

// NewKafkaWriter builds a writer that flushes every message on its own, so
// a publish after commit returns as soon as the broker acknowledges it.
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		BatchSize:              1,
		BatchTimeout:           eventFlushInterval,
		AllowAutoTopicCreation: true,
	}
}

// RecipeEventsKafkaFacade publishes recipe events to Kafka.
type RecipeEventsKafkaFacade struct {
	writer KafkaWriter
}

// NewRecipeEventsKafkaFacade creates a new facade. A nil writer disables publishing.
func NewRecipeEventsKafkaFacade(writer KafkaWriter) *RecipeEventsKafkaFacade {
	return &RecipeEventsKafkaFacade{writer: writer}
}

// Publish writes event to Kafka keyed by recipe id, so all events of one
// recipe land in the same partition in commit order.
func (f *RecipeEventsKafkaFacade) Publish(ctx context.Context, event models.RecipeEvent) error {
	if f.writer == nil {
		logger.Log.Warnw("Kafka writer not configured, skipping publishing", "event_id", event.EventID, "type", event.Type)
		return nil
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("failed to marshal recipe event", "event_id", event.EventID, "error", err)
		return err
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(event.RecipeID, 10)),
		Value: data,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
		},
	}

	if err := f.writer.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("failed to publish recipe event", "event_id", event.EventID, "type", event.Type, "error", err)
		return err
	}

	logger.Log.Infow("recipe event published", "event_id", event.EventID, "type", event.Type, "recipe_id", event.RecipeID)
	return nil
}
