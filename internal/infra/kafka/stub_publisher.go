package kafka

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/nexapay/admin-portal/internal/core/domain"
	"github.com/nexapay/admin-portal/internal/core/port"
)

// StubPublisher logs events instead of sending them to Kafka. Useful for
// development environments without a broker.
type StubPublisher struct {
	logger *zap.Logger
}

var _ port.EventPublisher = (*StubPublisher)(nil)

// NewStubPublisher constructs a development-friendly event publisher.
func NewStubPublisher(logger *zap.Logger) *StubPublisher {
	return &StubPublisher{logger: logger}
}

// PublishActivity logs the event at info level.
func (p *StubPublisher) PublishActivity(_ context.Context, event domain.ActivityEvent) error {
	at := event.OccurredAt
	if at.IsZero() {
		at = time.Now().UTC()
	}

	p.logger.Info("Stub event published",
		zap.String("event_type", event.EventType),
		zap.String("user_id", event.UserID),
		zap.String("username", event.Username),
		zap.String("path", event.Path),
		zap.Time("timestamp", at.UTC()),
		zap.Any("metadata", event.Metadata),
	)

	return nil
}
