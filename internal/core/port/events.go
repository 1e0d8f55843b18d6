package port

import (
	"context"

	"github.com/nexapay/admin-portal/internal/core/domain"
)

// EventPublisher publishes staff activity events to the message bus.
type EventPublisher interface {
	PublishActivity(ctx context.Context, event domain.ActivityEvent) error
}
