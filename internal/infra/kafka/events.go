package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nexapay/admin-portal/internal/core/domain"
	"github.com/nexapay/admin-portal/internal/core/port"
	"github.com/nexapay/admin-portal/internal/infra/config"
)

const schemaVersion = "1.0"

// EventPublisher implements port.EventPublisher using Kafka.
type EventPublisher struct {
	producer *Producer
	logger   *zap.Logger
	appCfg   config.AppSettings
}

var _ port.EventPublisher = (*EventPublisher)(nil)

// NewEventPublisher constructs a Kafka-backed activity event publisher.
func NewEventPublisher(producer *Producer, appCfg config.AppSettings, logger *zap.Logger) *EventPublisher {
	return &EventPublisher{producer: producer, appCfg: appCfg, logger: logger}
}

type envelopeMetadata map[string]string

type eventEnvelope struct {
	EventID   string           `json:"event_id"`
	EventType string           `json:"event_type"`
	UserID    string           `json:"user_id,omitempty"`
	Timestamp time.Time        `json:"timestamp"`
	Version   string           `json:"version"`
	Payload   any              `json:"payload"`
	Metadata  envelopeMetadata `json:"metadata,omitempty"`
}

// PublishActivity publishes a staff activity event to the audit pipeline.
// Usernames and IPs inside the payload arrive pre-masked from the caller.
func (p *EventPublisher) PublishActivity(ctx context.Context, event domain.ActivityEvent) error {
	ts := event.OccurredAt
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	id := event.EventID
	if id == "" {
		id = uuid.NewString()
	}

	payload := struct {
		Username string         `json:"username,omitempty"`
		IP       string         `json:"ip,omitempty"`
		Path     string         `json:"path,omitempty"`
		Metadata map[string]any `json:"metadata,omitempty"`
	}{
		Username: event.Username,
		IP:       event.IP,
		Path:     event.Path,
		Metadata: event.Metadata,
	}

	envelope := eventEnvelope{
		EventID:   id,
		EventType: event.EventType,
		UserID:    event.UserID,
		Timestamp: ts.UTC(),
		Version:   schemaVersion,
		Payload:   payload,
		Metadata: envelopeMetadata{
			"service":     p.appCfg.Name,
			"environment": p.appCfg.Env,
		},
	}

	bytes, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("marshal event envelope: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: p.producer.TopicName(event.EventType),
		Value: sarama.ByteEncoder(bytes),
	}

	select {
	case p.producer.Producer().Input() <- message:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
