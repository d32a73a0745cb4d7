package queue

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/benchtop/labsync/internal/client/storage"
	"github.com/benchtop/labsync/internal/models"
)

// Queue layers the outbound mutation lifecycle on top of durable
// QueueStorage: per-entity FIFO batching, retry backoff and dead-letter
// transitions. Every state change is persisted before it is reported.
type Queue struct {
	storage     storage.QueueStorage
	logger      *slog.Logger
	backoff     Backoff
	now         func() time.Time
	maxAttempts int

	// serializes read-modify-write transitions
	mu sync.Mutex
}

// Option configures a Queue.
type Option func(*Queue)

// WithBackoff overrides the retry backoff policy.
func WithBackoff(b Backoff) Option {
	return func(q *Queue) { q.backoff = b }
}

// WithMaxAttempts overrides the dead-letter threshold.
func WithMaxAttempts(n int) Option {
	return func(q *Queue) { q.maxAttempts = n }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(q *Queue) { q.now = now }
}

// New creates a mutation queue over the given storage.
func New(st storage.QueueStorage, logger *slog.Logger, opts ...Option) *Queue {
	q := &Queue{
		storage:     st,
		logger:      logger,
		backoff:     ExponentialBackoff(DefaultBaseDelay, DefaultMaxDelay),
		now:         time.Now,
		maxAttempts: DefaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Enqueue persists a new mutation at the tail of the queue. A missing
// id gets a fresh uuid; the mutation is durable once Enqueue returns.
func (q *Queue) Enqueue(ctx context.Context, mutation *models.QueuedMutation) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if mutation.ID == "" {
		mutation.ID = uuid.NewString()
	}
	if mutation.CreatedAt.IsZero() {
		mutation.CreatedAt = q.now()
	}
	if mutation.MaxAttempts == 0 {
		mutation.MaxAttempts = q.maxAttempts
	}
	mutation.Status = models.StatusPending

	if err := q.storage.AppendMutation(ctx, mutation); err != nil {
		return fmt.Errorf("failed to enqueue mutation: %w", err)
	}

	q.logger.Debug("mutation enqueued",
		"id", mutation.ID,
		"entity", mutation.EntityKey(),
		"op", mutation.Operation,
	)
	return nil
}

// PeekBatch returns up to n mutations ready to push, FIFO per entity:
// only the first non-dead mutation of each entity is a candidate, and it
// must be retryable with its NotBefore in the past. Dead mutations never
// block successors.
func (q *Queue) PeekBatch(ctx context.Context, n int) ([]*models.QueuedMutation, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	all, err := q.storage.ListMutations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list mutations: %w", err)
	}

	now := q.now()
	seen := make(map[string]bool)
	var batch []*models.QueuedMutation

	for _, m := range all {
		if len(batch) >= n {
			break
		}
		if m.Status == models.StatusDead {
			continue
		}

		key := m.EntityKey()
		if seen[key] {
			continue
		}
		seen[key] = true

		if !m.Retryable() {
			continue
		}
		if m.NotBefore.After(now) {
			continue
		}
		batch = append(batch, m)
	}

	return batch, nil
}

// MarkInFlight flags a mutation as handed to the transport.
func (q *Queue) MarkInFlight(ctx context.Context, id string) error {
	return q.transition(ctx, id, func(m *models.QueuedMutation) {
		m.Status = models.StatusInFlight
	})
}

// MarkAcked removes an acknowledged mutation from the queue.
func (q *Queue) MarkAcked(ctx context.Context, id string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if err := q.storage.RemoveMutation(ctx, id); err != nil {
		return fmt.Errorf("failed to remove mutation: %w", err)
	}
	return nil
}

// MarkFailed records a failed attempt. The mutation goes back to failed
// with a backoff-derived NotBefore, or to dead once attempts are
// exhausted.
func (q *Queue) MarkFailed(ctx context.Context, id, reason string) error {
	return q.transition(ctx, id, func(m *models.QueuedMutation) {
		m.AttemptCount++
		m.FailReason = reason

		if m.AttemptCount >= m.MaxAttempts {
			m.Status = models.StatusDead
			q.logger.Warn("mutation dead-lettered",
				"id", m.ID,
				"entity", m.EntityKey(),
				"attempts", m.AttemptCount,
				"reason", reason,
			)
			return
		}

		m.Status = models.StatusFailed
		m.NotBefore = q.now().Add(q.backoff(m.AttemptCount))
	})
}

// MarkConflictManual parks a mutation until a user resolves it. It
// stays in the queue but is never retried automatically.
func (q *Queue) MarkConflictManual(ctx context.Context, id string) error {
	return q.transition(ctx, id, func(m *models.QueuedMutation) {
		m.Status = models.StatusFailed
		m.AwaitingManual = true
		m.FailReason = "conflict requires manual resolution"
	})
}

// UpdateBaseVersion rebases a mutation for prompt resubmission after a
// client-wins conflict resolution.
func (q *Queue) UpdateBaseVersion(ctx context.Context, id string, baseVersion int64) error {
	return q.transition(ctx, id, func(m *models.QueuedMutation) {
		m.BaseVersion = baseVersion
		m.Status = models.StatusPending
		m.NotBefore = time.Time{}
	})
}

// ReleaseInFlight returns every in-flight mutation to pending. Called
// at the start of a push phase so mutations stranded by an aborted or
// crashed cycle become eligible again; the server's mutation ledger
// deduplicates any that were already applied.
func (q *Queue) ReleaseInFlight(ctx context.Context) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	all, err := q.storage.ListMutations(ctx)
	if err != nil {
		return fmt.Errorf("failed to list mutations: %w", err)
	}

	for _, m := range all {
		if m.Status != models.StatusInFlight {
			continue
		}
		m.Status = models.StatusPending
		if err := q.storage.UpdateMutation(ctx, m); err != nil {
			return fmt.Errorf("failed to release mutation: %w", err)
		}
	}
	return nil
}

// Resubmit releases a manually parked mutation against a new base version.
func (q *Queue) Resubmit(ctx context.Context, id string, baseVersion int64) error {
	return q.transition(ctx, id, func(m *models.QueuedMutation) {
		m.BaseVersion = baseVersion
		m.Status = models.StatusPending
		m.AwaitingManual = false
		m.FailReason = ""
		m.NotBefore = time.Time{}
	})
}

// Discard drops a mutation, typically a dead or manually rejected one.
func (q *Queue) Discard(ctx context.Context, id string) error {
	return q.MarkAcked(ctx, id)
}

// List returns every queued mutation in enqueue order.
func (q *Queue) List(ctx context.Context) ([]*models.QueuedMutation, error) {
	return q.storage.ListMutations(ctx)
}

// Dead returns dead-lettered mutations.
func (q *Queue) Dead(ctx context.Context) ([]*models.QueuedMutation, error) {
	return q.filter(ctx, func(m *models.QueuedMutation) bool {
		return m.Status == models.StatusDead
	})
}

// AwaitingManual returns mutations parked for manual resolution.
func (q *Queue) AwaitingManual(ctx context.Context) ([]*models.QueuedMutation, error) {
	return q.filter(ctx, func(m *models.QueuedMutation) bool {
		return m.AwaitingManual
	})
}

// Len returns the number of queued mutations.
func (q *Queue) Len(ctx context.Context) (int, error) {
	all, err := q.storage.ListMutations(ctx)
	if err != nil {
		return 0, err
	}
	return len(all), nil
}

func (q *Queue) filter(ctx context.Context, keep func(*models.QueuedMutation) bool) ([]*models.QueuedMutation, error) {
	all, err := q.storage.ListMutations(ctx)
	if err != nil {
		return nil, err
	}

	var out []*models.QueuedMutation
	for _, m := range all {
		if keep(m) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (q *Queue) transition(ctx context.Context, id string, apply func(*models.QueuedMutation)) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	mutation, err := q.storage.GetMutation(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load mutation: %w", err)
	}

	apply(mutation)

	if err := q.storage.UpdateMutation(ctx, mutation); err != nil {
		return fmt.Errorf("failed to update mutation: %w", err)
	}
	return nil
}
