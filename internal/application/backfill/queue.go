// Package backfill writes generated tasting notes back to the content backend
// on a bounded background queue.
package backfill

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/saanjh/storefront/internal/domain/content"
	"github.com/saanjh/storefront/internal/domain/shared"
	"github.com/saanjh/storefront/internal/domain/tasting"
	"github.com/saanjh/storefront/internal/infrastructure/telemetry"
)

var (
	// ErrQueueFull is recorded when a task cannot be buffered
	ErrQueueFull = errors.New("backfill queue is full")

	// ErrQueueStopped is recorded when a task arrives after Stop
	ErrQueueStopped = errors.New("backfill queue is not running")
)

// Task is one tasting-note write-back
type Task struct {
	ID         uuid.UUID
	BlendID    string
	NoteKey    string
	Patch      map[string]any
	EnqueuedAt time.Time
}

// NewTask builds the write-back task for an assignment
func NewTask(a tasting.Assignment) Task {
	return Task{
		ID:         uuid.New(),
		BlendID:    a.BlendID,
		NoteKey:    a.Note.Key,
		Patch:      a.Patch(),
		EnqueuedAt: time.Now().UTC(),
	}
}

// DedupeKey identifies the write so concurrent page loads do not repeat it
func (t Task) DedupeKey() string {
	return "blend:" + t.BlendID + ":" + t.NoteKey
}

// Config holds queue configuration
type Config struct {
	Workers     int
	QueueSize   int
	TaskTimeout time.Duration
	DedupeTTL   time.Duration
}

// DefaultConfig returns default queue configuration
func DefaultConfig() Config {
	return Config{
		Workers:     2,
		QueueSize:   64,
		TaskTimeout: 15 * time.Second,
		DedupeTTL:   time.Hour,
	}
}

// Stats is a snapshot of queue counters
type Stats struct {
	Enqueued  int64 `json:"enqueued"`
	Completed int64 `json:"completed"`
	Failed    int64 `json:"failed"`
	Dropped   int64 `json:"dropped"`
	Skipped   int64 `json:"skipped"`
	Pending   int   `json:"pending"`
}

// Option configures a Queue
type Option func(*Queue)

// WithMetrics records task outcomes
func WithMetrics(m *telemetry.StorefrontMetrics) Option {
	return func(q *Queue) {
		q.metrics = m
	}
}

// Queue runs write-back tasks on a fixed pool of workers. Tasks never block
// the caller: a full queue drops the task and records the failure.
type Queue struct {
	cfg      Config
	data     content.DataService
	dedupe   shared.IdempotencyStore
	failures tasting.FailureLog
	metrics  *telemetry.StorefrontMetrics
	logger   *zap.Logger

	tasks   chan Task
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	mu      sync.RWMutex
	running bool

	enqueued  atomic.Int64
	completed atomic.Int64
	failed    atomic.Int64
	dropped   atomic.Int64
	skipped   atomic.Int64
}

// NewQueue creates a stopped queue
func NewQueue(cfg Config, data content.DataService, dedupe shared.IdempotencyStore, failures tasting.FailureLog, logger *zap.Logger, opts ...Option) *Queue {
	def := DefaultConfig()
	if cfg.Workers <= 0 {
		cfg.Workers = def.Workers
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = def.QueueSize
	}
	if cfg.TaskTimeout <= 0 {
		cfg.TaskTimeout = def.TaskTimeout
	}
	if cfg.DedupeTTL <= 0 {
		cfg.DedupeTTL = def.DedupeTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	q := &Queue{
		cfg:      cfg,
		data:     data,
		dedupe:   dedupe,
		failures: failures,
		logger:   logger.Named("backfill"),
		tasks:    make(chan Task, cfg.QueueSize),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Start launches the workers
func (q *Queue) Start(ctx context.Context) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.running {
		return nil
	}
	if q.tasks == nil {
		q.tasks = make(chan Task, q.cfg.QueueSize)
	}
	q.running = true

	// Workers outlive the caller's context; Stop cancels them
	workCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	q.cancel = cancel

	for i := 0; i < q.cfg.Workers; i++ {
		q.wg.Add(1)
		go q.worker(workCtx, q.tasks, i)
	}

	q.logger.Info("Backfill queue started",
		zap.Int("workers", q.cfg.Workers),
		zap.Int("queue_size", q.cfg.QueueSize),
		zap.Duration("task_timeout", q.cfg.TaskTimeout),
	)
	return nil
}

// Stop closes the queue and waits for buffered tasks to drain.
// When ctx expires first, in-flight tasks are cancelled.
func (q *Queue) Stop(ctx context.Context) error {
	q.mu.Lock()
	if !q.running {
		q.mu.Unlock()
		return nil
	}
	q.running = false
	close(q.tasks)
	q.tasks = nil
	q.mu.Unlock()

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		q.cancel()
		q.logger.Info("Backfill queue stopped", zap.Any("stats", q.Stats()))
		return nil
	case <-ctx.Done():
		q.cancel()
		q.logger.Warn("Backfill queue stop timed out, cancelling in-flight tasks")
		return ctx.Err()
	}
}

// Enqueue schedules a write-back for each assignment and returns how many
// were accepted. It never blocks and never fails the caller.
func (q *Queue) Enqueue(ctx context.Context, assignments ...tasting.Assignment) int {
	accepted := 0
	for _, a := range assignments {
		if q.enqueue(ctx, NewTask(a)) {
			accepted++
		}
	}
	return accepted
}

func (q *Queue) enqueue(ctx context.Context, task Task) bool {
	// Without an id there is no record to write back to
	if strings.TrimSpace(task.BlendID) == "" {
		q.skipped.Add(1)
		q.metrics.RecordBackfill(ctx, telemetry.OutcomeSkipped)
		q.logger.Warn("Blend has no id, skipping tasting note write-back",
			zap.String("note", task.NoteKey),
		)
		return false
	}

	key := task.DedupeKey()
	if q.dedupe != nil {
		isNew, err := q.dedupe.MarkProcessed(ctx, key, q.cfg.DedupeTTL)
		if err != nil {
			q.logger.Warn("Dedupe check failed, enqueueing anyway",
				zap.String("blend_id", task.BlendID),
				zap.Error(err),
			)
		} else if !isNew {
			q.skipped.Add(1)
			q.metrics.RecordBackfill(ctx, telemetry.OutcomeSkipped)
			return false
		}
	}

	q.mu.RLock()
	var err error
	if !q.running {
		err = ErrQueueStopped
	} else {
		select {
		case q.tasks <- task:
		default:
			err = ErrQueueFull
		}
	}
	q.mu.RUnlock()

	if err != nil {
		q.dropped.Add(1)
		q.metrics.RecordBackfill(ctx, telemetry.OutcomeDropped)
		q.fail(ctx, task, err)
		return false
	}

	q.enqueued.Add(1)
	q.logger.Debug("Backfill task enqueued",
		zap.String("task_id", task.ID.String()),
		zap.String("blend_id", task.BlendID),
		zap.String("note", task.NoteKey),
	)
	return true
}

func (q *Queue) worker(ctx context.Context, tasks <-chan Task, workerID int) {
	defer q.wg.Done()
	for task := range tasks {
		telemetry.WithProfilingLabels(ctx, map[string]string{
			telemetry.ProfilingLabelComponent: "backfill",
			telemetry.ProfilingLabelOperation: "write_tasting_notes",
		}, func(ctx context.Context) {
			q.process(ctx, task, workerID)
		})
	}
}

func (q *Queue) process(ctx context.Context, task Task, workerID int) {
	taskCtx, cancel := context.WithTimeout(ctx, q.cfg.TaskTimeout)
	defer cancel()

	_, err := q.data.Update(taskCtx, content.CollectionRitualTeaBlends, task.Patch)
	if err != nil {
		q.failed.Add(1)
		q.metrics.RecordBackfill(ctx, telemetry.OutcomeError)
		q.fail(ctx, task, err)
		return
	}

	q.completed.Add(1)
	q.metrics.RecordBackfill(ctx, telemetry.OutcomeOK)
	q.logger.Debug("Tasting notes written back",
		zap.Int("worker_id", workerID),
		zap.String("task_id", task.ID.String()),
		zap.String("blend_id", task.BlendID),
		zap.Duration("queued_for", time.Since(task.EnqueuedAt)),
	)
}

// fail logs the task failure, records it, and releases the dedupe key so a
// later page load may try again
func (q *Queue) fail(ctx context.Context, task Task, cause error) {
	q.logger.Warn("Tasting-note write-back failed",
		zap.String("task_id", task.ID.String()),
		zap.String("blend_id", task.BlendID),
		zap.String("note", task.NoteKey),
		zap.Error(cause),
	)

	// The request context may already be gone; the failure is still recorded
	recordCtx := context.WithoutCancel(ctx)

	if q.failures != nil {
		err := q.failures.Record(recordCtx, tasting.Failure{
			TaskID:     task.ID.String(),
			BlendID:    task.BlendID,
			NoteKey:    task.NoteKey,
			Reason:     cause.Error(),
			OccurredAt: time.Now().UTC(),
		})
		if err != nil {
			q.logger.Error("Failed to record backfill failure", zap.Error(err))
		}
	}
	if q.dedupe != nil {
		if err := q.dedupe.Forget(recordCtx, task.DedupeKey()); err != nil {
			q.logger.Warn("Failed to release dedupe key", zap.String("key", task.DedupeKey()), zap.Error(err))
		}
	}
}

// Failures returns up to limit recent failures, newest first, and the total count
func (q *Queue) Failures(ctx context.Context, limit int) ([]tasting.Failure, int64, error) {
	if q.failures == nil {
		return nil, 0, nil
	}
	recent, err := q.failures.Recent(ctx, limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := q.failures.Total(ctx)
	if err != nil {
		return nil, 0, err
	}
	return recent, total, nil
}

// Stats returns a snapshot of the queue counters
func (q *Queue) Stats() Stats {
	q.mu.RLock()
	pending := len(q.tasks)
	q.mu.RUnlock()
	return Stats{
		Enqueued:  q.enqueued.Load(),
		Completed: q.completed.Load(),
		Failed:    q.failed.Load(),
		Dropped:   q.dropped.Load(),
		Skipped:   q.skipped.Load(),
		Pending:   pending,
	}
}

// IsRunning reports whether the queue accepts tasks
func (q *Queue) IsRunning() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.running
}
