// Package contact accepts messages from the contact form
package contact

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/saanjh/storefront/internal/domain/contact"
	"github.com/saanjh/storefront/internal/domain/shared"
	"github.com/saanjh/storefront/internal/infrastructure/logger"
	"github.com/saanjh/storefront/internal/infrastructure/telemetry"
)

// Service stores contact messages and announces them on the event bus
type Service struct {
	repo       contact.Repository
	publisher  shared.EventPublisher
	metrics    *telemetry.StorefrontMetrics
	logger     *zap.Logger
	maxPerHour int
	now        func() time.Time
}

// NewService creates a Service. maxPerHour <= 0 disables the per-address limit.
func NewService(repo contact.Repository, publisher shared.EventPublisher, maxPerHour int, metrics *telemetry.StorefrontMetrics, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:       repo,
		publisher:  publisher,
		metrics:    metrics,
		logger:     logger,
		maxPerHour: maxPerHour,
		now:        time.Now,
	}
}

// Submit validates and stores a message. clientIP is recorded for abuse review.
func (s *Service) Submit(ctx context.Context, req SubmitRequest, clientIP string) (*SubmitResponse, error) {
	msg, err := contact.NewMessage(req.Name, req.Email, req.Subject, req.Message)
	if err != nil {
		s.metrics.RecordContactMessage(ctx, telemetry.OutcomeError)
		return nil, err
	}
	msg.ClientIP = clientIP

	if s.maxPerHour > 0 {
		since := s.now().Add(-time.Hour).Unix()
		count, err := s.repo.CountByEmailSince(ctx, msg.Email, since)
		if err != nil {
			s.metrics.RecordContactMessage(ctx, telemetry.OutcomeError)
			return nil, err
		}
		if count >= int64(s.maxPerHour) {
			s.metrics.RecordContactMessage(ctx, telemetry.OutcomeDropped)
			logger.WithLogger(ctx, s.logger).Warn("Contact message limit reached",
				zap.Int64("recent", count))
			return nil, shared.ErrTooManyRequests
		}
	}

	if err := s.repo.Save(ctx, msg); err != nil {
		s.metrics.RecordContactMessage(ctx, telemetry.OutcomeError)
		return nil, err
	}
	s.metrics.RecordContactMessage(ctx, telemetry.OutcomeOK)

	// Notification is best effort once the message is stored
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, contact.NewMessageReceived(msg)); err != nil {
			logger.WithLogger(ctx, s.logger).Error("Failed to publish contact event",
				zap.String("message_id", msg.ID.String()), zap.Error(err))
		}
	}

	return &SubmitResponse{
		ID:         msg.ID,
		Notice:     contact.ThankYouNotice,
		ReceivedAt: msg.CreatedAt,
	}, nil
}
