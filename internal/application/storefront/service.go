// Package storefront builds the page models of the storefront from the
// content backend and the commerce vertical.
package storefront

import (
	"context"

	"go.uber.org/zap"

	"github.com/saanjh/storefront/internal/domain/content"
	"github.com/saanjh/storefront/internal/domain/tasting"
	"github.com/saanjh/storefront/internal/infrastructure/telemetry"
)

// BackfillQueue accepts tasting-note write-backs without blocking
type BackfillQueue interface {
	Enqueue(ctx context.Context, assignments ...tasting.Assignment) int
}

// PageOption configures a PageService
type PageOption func(*PageService)

// WithPageMetrics records page loads
func WithPageMetrics(m *telemetry.StorefrontMetrics) PageOption {
	return func(s *PageService) {
		s.metrics = m
	}
}

// PageService builds the content-driven pages
type PageService struct {
	data     content.DataService
	backfill BackfillQueue
	metrics  *telemetry.StorefrontMetrics
	logger   *zap.Logger
}

// NewPageService creates a PageService. backfill may be nil to disable write-backs.
func NewPageService(data content.DataService, backfill BackfillQueue, logger *zap.Logger, opts ...PageOption) *PageService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &PageService{data: data, backfill: backfill, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *PageService) record(ctx context.Context, page string, err error) {
	outcome := telemetry.OutcomeOK
	if err != nil {
		outcome = telemetry.OutcomeError
	}
	s.metrics.RecordPageLoad(ctx, page, outcome)
}
