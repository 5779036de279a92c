package domain

import (
	"context"
	"time"
)

// Domain event types
const (
	EventJobPostingCreated    = "job_posting.created"
	EventJobPostingPublished  = "job_posting.published"
	EventJobPostingClosed     = "job_posting.closed"
	EventJobDetailsUpdated    = "job_posting.details_updated"
	EventApplicationSubmitted = "job_application.submitted"
	EventApplicationAccepted  = "job_application.accepted"
	EventApplicationRejected  = "job_application.rejected"
	EventApplicationWithdrawn = "job_application.withdrawn"
)

// Event records a significant state change on an aggregate. Events are
// buffered on the aggregate and drained by the use case after the
// aggregate has been persisted.
type Event struct {
	Type       string                 `json:"type"`
	Payload    map[string]interface{} `json:"payload"`
	OccurredAt time.Time              `json:"occurred_at"`
}

func newEvent(eventType string, payload map[string]interface{}) Event {
	return Event{
		Type:       eventType,
		Payload:    payload,
		OccurredAt: time.Now(),
	}
}

// EventBus publishes drained domain events to downstream consumers.
// Publishing happens strictly after persistence; a publish failure is
// logged by the caller and never reverts persisted state.
type EventBus interface {
	Publish(ctx context.Context, event Event) error
}

// AuditEntry is a structured record of a security-relevant command
// outcome (success or refusal).
type AuditEntry struct {
	Action        string                 `json:"action"`
	UserID        string                 `json:"user_id"`
	JobID         string                 `json:"job_id,omitempty"`
	ApplicationID string                 `json:"application_id,omitempty"`
	Metadata      map[string]interface{} `json:"metadata,omitempty"`
}

// AuditLogger records audit entries out of band; implementations must
// not fail the business operation.
type AuditLogger interface {
	LogSecurityEvent(ctx context.Context, entry AuditEntry) error
}
