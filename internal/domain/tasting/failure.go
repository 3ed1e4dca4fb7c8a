package tasting

import (
	"context"
	"time"
)

// Failure records a tasting-note write-back that did not complete
type Failure struct {
	TaskID     string    `json:"taskId"`
	BlendID    string    `json:"blendId"`
	NoteKey    string    `json:"noteKey"`
	Reason     string    `json:"reason"`
	OccurredAt time.Time `json:"occurredAt"`
}

// FailureLog keeps the most recent backfill failures
type FailureLog interface {
	// Record appends a failure, evicting the oldest beyond capacity
	Record(ctx context.Context, f Failure) error
	// Recent returns up to limit failures, newest first
	Recent(ctx context.Context, limit int) ([]Failure, error)
	// Total returns how many failures were recorded since start
	Total(ctx context.Context) (int64, error)
}
