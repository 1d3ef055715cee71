package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/nwbc/credit-decision-service/internal/domain/event"
)

// KafkaEventPublisher implements port.EventPublisher by writing decision
// events to a Kafka topic, keyed by evaluation id.
type KafkaEventPublisher struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewKafkaEventPublisher creates a publisher targeting the given brokers and
// topic.
func NewKafkaEventPublisher(brokers []string, topic string, logger *slog.Logger) *KafkaEventPublisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafkago.RequireAll,
	}
	return &KafkaEventPublisher{writer: w, logger: logger}
}

// Publish serialises and sends decision events.
func (p *KafkaEventPublisher) Publish(ctx context.Context, events ...event.DomainEvent) error {
	messages := make([]kafkago.Message, 0, len(events))
	for _, evt := range events {
		payload, err := json.Marshal(evt)
		if err != nil {
			return fmt.Errorf("marshal event %s: %w", evt.EventType(), err)
		}
		messages = append(messages, kafkago.Message{
			Key:   []byte(evt.EvaluationID()),
			Value: payload,
		})
	}

	if err := p.writer.WriteMessages(ctx, messages...); err != nil {
		return fmt.Errorf("kafka publish to %s: %w", p.writer.Topic, err)
	}

	for _, evt := range events {
		p.logger.Debug("published decision event",
			"event_type", evt.EventType(),
			"evaluation_id", evt.EvaluationID(),
			"topic", p.writer.Topic,
		)
	}
	return nil
}

// Close flushes and closes the underlying writer.
func (p *KafkaEventPublisher) Close() error {
	return p.writer.Close()
}

// LogEventPublisher implements port.EventPublisher by logging events. It is
// used when no Kafka broker is configured.
type LogEventPublisher struct {
	logger *slog.Logger
}

// NewLogEventPublisher creates the logging publisher.
func NewLogEventPublisher(logger *slog.Logger) *LogEventPublisher {
	return &LogEventPublisher{logger: logger}
}

// Publish logs each event instead of sending it anywhere.
func (p *LogEventPublisher) Publish(_ context.Context, events ...event.DomainEvent) error {
	for _, evt := range events {
		p.logger.Info("decision event",
			"event_type", evt.EventType(),
			"evaluation_id", evt.EvaluationID(),
		)
	}
	return nil
}
