package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"booking-service/internal/domain"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	log "github.com/sirupsen/logrus"
)

const deliveryTimeout = 10 * time.Second

// AuditPublisher mirrors stored history entries to a Kafka topic, keyed by
// subject id so entries for one event or booking stay ordered.
type AuditPublisher struct {
	producer *kafka.Producer
	topic    string
}

func NewAuditPublisher(bootstrapServers, topic string) (*AuditPublisher, error) {
	p, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers": bootstrapServers,
		"client.id":         "booking-service",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	log.WithField("topic", topic).Info("Audit Kafka producer created successfully for booking-service")

	return &AuditPublisher{producer: p, topic: topic}, nil
}

// message is the wire form of one history entry.
type message struct {
	Service string              `json:"service"`
	Entry   domain.EventHistory `json:"entry"`
}

func encode(entry domain.EventHistory) ([]byte, error) {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	return json.Marshal(message{Service: "booking-service", Entry: entry})
}

func (p *AuditPublisher) Publish(ctx context.Context, entry domain.EventHistory) error {
	payload, err := encode(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal history entry: %w", err)
	}

	deliveryChan := make(chan kafka.Event, 1)
	defer close(deliveryChan)

	if err := p.producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &p.topic, Partition: kafka.PartitionAny},
		Key:            []byte(entry.SubjectID),
		Value:          payload,
		Headers:        []kafka.Header{{Key: "change_type", Value: []byte(entry.ChangeType)}},
		Opaque:         deliveryChan,
	}, nil); err != nil {
		return fmt.Errorf("failed to produce message: %w", err)
	}

	select {
	case e := <-deliveryChan:
		msg, ok := e.(*kafka.Message)
		if !ok {
			return fmt.Errorf("unexpected event type: %T", e)
		}
		if msg.TopicPartition.Error != nil {
			return fmt.Errorf("delivery failed: %w", msg.TopicPartition.Error)
		}
		return nil
	case <-time.After(deliveryTimeout):
		return fmt.Errorf("delivery timeout")
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *AuditPublisher) Close() {
	log.Info("Closing audit Kafka producer for booking-service...")
	p.producer.Flush(15 * 1000)
	p.producer.Close()
}
