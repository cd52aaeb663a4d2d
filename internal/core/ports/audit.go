package ports

import (
	"context"
	"time"

	"github.com/foodmarket/platform-api/internal/core/domain"
)

// AuthEventInput is the DTO handed from the auth service to the audit
// dispatcher.
type AuthEventInput struct {
	Type       domain.AuthEventType
	Subject    string
	Email      string
	OccurredAt time.Time
}

// AuditRecorder accepts auth events without blocking the caller. Enqueue
// reports false when the event was dropped.
type AuditRecorder interface {
	Enqueue(event AuthEventInput) bool
}

// AuditRepository persists auth events.
type AuditRepository interface {
	InsertEvent(ctx context.Context, event *domain.AuthEvent) error
}

// AuditService processes a single dequeued auth event.
type AuditService interface {
	Process(ctx context.Context, event AuthEventInput) error
}
