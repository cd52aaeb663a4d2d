package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/foodmarket/platform-api/internal/core/domain"
	"github.com/foodmarket/platform-api/internal/core/ports"
	"github.com/foodmarket/platform-api/internal/pkg/metrics"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns an AuditService that persists each event.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

// Process writes one auth event to the audit trail.
func (s *auditService) Process(ctx context.Context, in ports.AuthEventInput) error {
	start := time.Now()

	occurredAt := in.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = start.UTC()
	}

	event := &domain.AuthEvent{
		Type:       in.Type,
		Subject:    in.Subject,
		Email:      in.Email,
		OccurredAt: occurredAt,
	}
	if err := s.repo.InsertEvent(ctx, event); err != nil {
		metrics.AuditProcessingDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		return fmt.Errorf("process audit event %s: %w", in.Type, err)
	}

	metrics.AuditEventsProcessedTotal.WithLabelValues(string(in.Type)).Inc()
	metrics.AuditProcessingDuration.WithLabelValues(string(in.Type)).Observe(time.Since(start).Seconds())

	s.log.Debug().
		Str("type", string(in.Type)).
		Str("subject", in.Subject).
		Msg("audit event recorded")

	return nil
}
