package domain

import "time"

// Activity event types emitted to the platform audit pipeline.
const (
	ActivityLoginSucceeded       = "portal.login.succeeded"
	ActivityLoginFailed          = "portal.login.failed"
	ActivityLogout               = "portal.logout"
	ActivityPasswordChanged      = "portal.password.changed"
	ActivityPermissionDenied     = "portal.permission.denied"
	ActivityDisbursementApproved = "portal.disbursement.approved"
)

// ActivityEvent represents a staff action worth recording in the platform's
// audit stream. Payload contents vary per event type.
type ActivityEvent struct {
	EventID    string
	EventType  string
	UserID     string
	Username   string
	IP         string
	Path       string
	OccurredAt time.Time
	Metadata   map[string]any
}
