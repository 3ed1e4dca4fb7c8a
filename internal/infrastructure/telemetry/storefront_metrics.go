package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MeterName is the instrumentation scope for storefront metrics
const MeterName = "github.com/saanjh/storefront"

// Outcome values for AttrOutcome
const (
	OutcomeOK       = "ok"
	OutcomeError    = "error"
	OutcomeNotFound = "not_found"
	OutcomeDropped  = "dropped"
	OutcomeSkipped  = "skipped"
)

// StorefrontMetrics groups the instruments recorded by the storefront
type StorefrontMetrics struct {
	contentCalls    *Counter
	contentDuration *Histogram
	backfillTasks   *Counter
	pageLoads       *Counter
	contactMessages *Counter
}

// NewStorefrontMetrics creates every storefront instrument on meter
func NewStorefrontMetrics(meter metric.Meter) (*StorefrontMetrics, error) {
	m := &StorefrontMetrics{}
	var err error

	if m.contentCalls, err = NewCounter(meter, "storefront.content.calls",
		"Calls made to the content backend", "{call}"); err != nil {
		return nil, err
	}
	if m.contentDuration, err = NewHistogram(meter, "storefront.content.duration",
		"Latency of content backend calls", "s", FetchDurationBuckets); err != nil {
		return nil, err
	}
	if m.backfillTasks, err = NewCounter(meter, "storefront.backfill.tasks",
		"Tasting-note backfill tasks by outcome", "{task}"); err != nil {
		return nil, err
	}
	if m.pageLoads, err = NewCounter(meter, "storefront.page.loads",
		"Page model builds by page and outcome", "{load}"); err != nil {
		return nil, err
	}
	if m.contactMessages, err = NewCounter(meter, "storefront.contact.messages",
		"Contact form submissions by outcome", "{message}"); err != nil {
		return nil, err
	}
	return m, nil
}

// RecordContentCall records one content backend call
func (m *StorefrontMetrics) RecordContentCall(ctx context.Context, op, collection, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	attrs := []attribute.KeyValue{
		AttrOperation.String(op),
		AttrCollection.String(collection),
		AttrOutcome.String(outcome),
	}
	m.contentCalls.Inc(ctx, attrs...)
	m.contentDuration.RecordDuration(ctx, d, attrs...)
}

// RecordBackfill records the outcome of one backfill task
func (m *StorefrontMetrics) RecordBackfill(ctx context.Context, outcome string) {
	if m == nil {
		return
	}
	m.backfillTasks.Inc(ctx, AttrOutcome.String(outcome))
}

// RecordPageLoad records one page model build
func (m *StorefrontMetrics) RecordPageLoad(ctx context.Context, page, outcome string) {
	if m == nil {
		return
	}
	m.pageLoads.Inc(ctx, AttrPage.String(page), AttrOutcome.String(outcome))
}

// RecordContactMessage records one contact submission
func (m *StorefrontMetrics) RecordContactMessage(ctx context.Context, outcome string) {
	if m == nil {
		return
	}
	m.contactMessages.Inc(ctx, AttrOutcome.String(outcome))
}
