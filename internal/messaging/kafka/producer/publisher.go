package producer

import (
	"context"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/messaging/kafka"
)

// publishEvent mengirim satu baris outbox ke Kafka. Key = AggregateID
// (payslip atau pay run) supaya event satu agregat selalu separtisi dan
// consumer melihatnya berurutan.
func publishEvent(ctx context.Context, writer *kafkago.Writer, event kafka.OutboxEvent) error {
	headers := []kafkago.Header{
		{Key: "event_type", Value: []byte(event.EventType)},
		{Key: "aggregate_type", Value: []byte(event.AggregateType)},
	}
	if event.RequestID != "" {
		headers = append(headers, kafkago.Header{Key: "request_id", Value: []byte(event.RequestID)})
	}

	return writer.WriteMessages(ctx, kafkago.Message{
		Topic:   event.Topic,
		Key:     []byte(event.AggregateID),
		Value:   event.Payload,
		Headers: headers,
	})
}
