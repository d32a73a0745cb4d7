package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	clientapi "github.com/benchtop/labsync/internal/client/api"
	"github.com/benchtop/labsync/internal/client/queue"
	"github.com/benchtop/labsync/internal/client/storage"
	"github.com/benchtop/labsync/internal/models"
	"github.com/benchtop/labsync/pkg/api"
)

// State is the engine's current phase.
type State string

// Engine states
const (
	StateIdle     State = "idle"
	StatePulling  State = "pulling"
	StateApplying State = "applying"
	StatePushing  State = "pushing"
	StateOffline  State = "offline"
)

// Defaults for the engine configuration
const (
	DefaultInterval  = 30 * time.Second
	DefaultBatchSize = 50
)

//go:generate moq -out api_client_mock.go . APIClient

// APIClient is the transport the engine pushes and pulls through.
type APIClient interface {
	Pull(ctx context.Context, req api.PullRequest) (*api.PullResponse, error)
	Push(ctx context.Context, req api.PushRequest) (*api.PushResponse, error)
}

// RejectedNote surfaces a permanently rejected mutation.
type RejectedNote struct {
	MutationID string
	EntityKey  string
	Reason     string
}

// ConflictNote surfaces a conflict outcome for one mutation.
type ConflictNote struct {
	MutationID string
	EntityKey  string
	Resolution models.Resolution
}

// Report summarizes one sync cycle.
type Report struct {
	StartedAt  time.Time
	FinishedAt time.Time
	Pulled     int
	Accepted   int
	Rejected   []RejectedNote
	Conflicts  []ConflictNote
	Err        error
}

// Config tunes an Engine.
type Config struct {
	ClientID  string
	Interval  time.Duration
	BatchSize int
	Monitor   Monitor
	Clock     Clock
}

// Engine drives pull-then-push sync cycles against the server. One
// cycle runs at a time; interval ticks, reconnects and SyncNow calls
// are coalesced through a single-slot trigger channel.
type Engine struct {
	storage   storage.Storage
	queue     *queue.Queue
	client    APIClient
	monitor   Monitor
	clock     Clock
	logger    *slog.Logger
	clientID  string
	interval  time.Duration
	batchSize int

	trigger chan struct{}

	mu         sync.Mutex
	state      State
	lastReport *Report
}

// NewEngine creates a sync engine.
func NewEngine(st storage.Storage, q *queue.Queue, client APIClient, logger *slog.Logger, cfg Config) *Engine {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.Monitor == nil {
		cfg.Monitor = AlwaysOnline{}
	}
	if cfg.Clock == nil {
		cfg.Clock = RealClock{}
	}

	return &Engine{
		storage:   st,
		queue:     q,
		client:    client,
		monitor:   cfg.Monitor,
		clock:     cfg.Clock,
		logger:    logger,
		clientID:  cfg.ClientID,
		interval:  cfg.Interval,
		batchSize: cfg.BatchSize,
		trigger:   make(chan struct{}, 1),
		state:     StateIdle,
	}
}

// State returns the engine's current phase.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// LastReport returns the report of the most recent cycle, nil before
// the first one finishes.
func (e *Engine) LastReport() *Report {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastReport
}

// SyncNow requests a cycle as soon as the engine is free. Requests
// arriving while one is already queued collapse into it.
func (e *Engine) SyncNow() {
	select {
	case e.trigger <- struct{}{}:
	default:
	}
}

// Run drives cycles until ctx is canceled.
func (e *Engine) Run(ctx context.Context) error {
	ticker := e.clock.NewTicker(e.interval)
	defer ticker.Stop()

	if e.monitor.Online() {
		e.SyncNow()
	} else {
		e.setState(StateOffline)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case online := <-e.monitor.Changes():
			if online {
				e.logger.Info("network restored, scheduling sync")
				e.setState(StateIdle)
				e.SyncNow()
			} else {
				e.logger.Info("network lost, parking")
				e.setState(StateOffline)
			}

		case <-ticker.C():
			e.SyncNow()

		case <-e.trigger:
			if !e.monitor.Online() {
				e.setState(StateOffline)
				continue
			}
			report := e.cycle(ctx)
			e.finish(report)
		}
	}
}

// RunOnce performs a single sync cycle. Used by the one-shot CLI path.
func (e *Engine) RunOnce(ctx context.Context) (*Report, error) {
	if !e.monitor.Online() {
		e.setState(StateOffline)
		return nil, fmt.Errorf("network is offline")
	}
	report := e.cycle(ctx)
	e.finish(report)
	return report, report.Err
}

func (e *Engine) setState(s State) {
	e.mu.Lock()
	e.state = s
	e.mu.Unlock()
}

func (e *Engine) finish(report *Report) {
	report.FinishedAt = e.clock.Now()

	e.mu.Lock()
	e.lastReport = report
	e.mu.Unlock()

	if report.Err != nil {
		if errors.Is(report.Err, clientapi.ErrServerUnavailable) {
			e.setState(StateOffline)
		} else {
			e.setState(StateIdle)
		}
		e.logger.Warn("sync cycle failed", "error", report.Err)
		return
	}

	e.setState(StateIdle)
	e.logger.Info("sync cycle finished",
		"pulled", report.Pulled,
		"accepted", report.Accepted,
		"rejected", len(report.Rejected),
		"conflicts", len(report.Conflicts),
	)
}

// cycle runs pull, apply, push. Any failure aborts the cycle leaving
// cursor and queue untouched; the next cycle redoes the work and the
// server's mutation ledger absorbs resends.
func (e *Engine) cycle(ctx context.Context) *Report {
	report := &Report{StartedAt: e.clock.Now()}

	cursor, err := e.pull(ctx, report)
	if err != nil {
		report.Err = err
		return report
	}

	if err := e.push(ctx, report, cursor); err != nil {
		report.Err = err
	}
	return report
}

func (e *Engine) pull(ctx context.Context, report *Report) (*models.SyncCursor, error) {
	e.setState(StatePulling)

	cursor, err := e.storage.GetCursor(ctx)
	if err != nil {
		if !errors.Is(err, storage.ErrCorrupted) {
			return nil, fmt.Errorf("failed to load cursor: %w", err)
		}
		e.logger.Warn("sync cursor corrupted, falling back to full pull")
		cursor = models.NewSyncCursor()
	}

	since := make(map[string]string)
	for _, entityType := range models.EntityTypes {
		if token := cursor.TokenFor(entityType); token != "" {
			since[string(entityType)] = token
		}
	}

	resp, err := e.client.Pull(ctx, api.PullRequest{
		ClientID: e.clientID,
		Since:    since,
	})
	if err != nil {
		return nil, err
	}

	e.setState(StateApplying)

	var records []*models.EntityRecord
	for _, entityType := range models.EntityTypes {
		for _, wire := range resp.Changes[string(entityType)] {
			records = append(records, recordFromWire(&wire))
		}
	}

	if err := e.storage.ApplyPulled(ctx, records); err != nil {
		return nil, fmt.Errorf("failed to apply pulled records: %w", err)
	}

	// The cursor moves only after the batch is durably applied.
	for entityType, token := range resp.Versions {
		cursor.Advance(models.EntityType(entityType), token)
	}
	cursor.LastSyncAt = e.clock.Now()
	if err := e.storage.SaveCursor(ctx, cursor); err != nil {
		return nil, fmt.Errorf("failed to save cursor: %w", err)
	}

	report.Pulled = len(records)
	return cursor, nil
}

func (e *Engine) push(ctx context.Context, report *Report, cursor *models.SyncCursor) error {
	e.setState(StatePushing)

	if err := e.queue.ReleaseInFlight(ctx); err != nil {
		return fmt.Errorf("failed to release stranded mutations: %w", err)
	}

	// Attachment metadata rides on the first push of the cycle, which
	// happens even when the mutation queue is empty.
	metas, err := e.storage.PendingAttachments(ctx)
	if err != nil {
		return fmt.Errorf("failed to load pending attachments: %w", err)
	}
	var attachments []api.AttachmentMeta
	for _, meta := range metas {
		attachments = append(attachments, api.AttachmentMeta{
			EntityType: string(meta.EntityType),
			EntityID:   meta.EntityID,
			Filename:   meta.Filename,
			MimeType:   meta.MimeType,
			Size:       meta.Size,
		})
	}

	pushed := make(map[string]bool)

	for {
		candidates, err := e.queue.PeekBatch(ctx, e.batchSize)
		if err != nil {
			return fmt.Errorf("failed to peek queue: %w", err)
		}

		// A mutation rebased by a client-wins resolution is pending
		// again; it waits for the next cycle rather than looping here.
		batch := candidates[:0]
		for _, m := range candidates {
			if !pushed[m.ID] {
				batch = append(batch, m)
			}
		}
		if len(batch) == 0 && len(attachments) == 0 {
			break
		}

		req := api.PushRequest{
			ClientID:    e.clientID,
			Changes:     make(map[string][]api.Mutation),
			Attachments: attachments,
		}
		byID := make(map[string]*models.QueuedMutation, len(batch))

		for _, m := range batch {
			pushed[m.ID] = true
			if err := e.queue.MarkInFlight(ctx, m.ID); err != nil {
				return fmt.Errorf("failed to mark mutation in flight: %w", err)
			}
			byID[m.ID] = m
			key := string(m.EntityType)
			req.Changes[key] = append(req.Changes[key], mutationToWire(m))
		}

		resp, err := e.client.Push(ctx, req)
		if err != nil {
			// In-flight mutations stay queued. A resend after the ack
			// was lost is deduplicated by the server's mutation ledger.
			return err
		}

		if len(attachments) > 0 {
			if err := e.storage.ClearPendingAttachments(ctx); err != nil {
				return fmt.Errorf("failed to clear pending attachments: %w", err)
			}
			attachments = nil
		}

		if err := e.applyOutcomes(ctx, report, resp, byID); err != nil {
			return err
		}

		if len(batch) == 0 {
			break
		}
	}

	return nil
}

func (e *Engine) applyOutcomes(ctx context.Context, report *Report, resp *api.PushResponse, byID map[string]*models.QueuedMutation) error {
	for _, accepted := range resp.Accepted {
		m, ok := byID[accepted.ID]
		if !ok {
			continue
		}

		// Adopt the server-assigned version. ApplyPulled keeps the local
		// copy when a later local mutation already moved past it.
		adopted := &models.EntityRecord{
			EntityType: m.EntityType,
			EntityID:   m.EntityID,
			Version:    accepted.NewVersion,
			UpdatedAt:  m.CreatedAt,
			Deleted:    m.Operation == models.OpDelete,
			Payload:    m.Payload,
		}
		if err := e.storage.ApplyPulled(ctx, []*models.EntityRecord{adopted}); err != nil {
			return fmt.Errorf("failed to adopt accepted record: %w", err)
		}

		if err := e.queue.MarkAcked(ctx, accepted.ID); err != nil {
			return fmt.Errorf("failed to ack mutation: %w", err)
		}
		report.Accepted++
	}

	for _, rejected := range resp.Rejected {
		m, ok := byID[rejected.ID]
		if !ok {
			continue
		}

		// Structural rejections are permanent, retrying cannot help.
		e.logger.Warn("mutation rejected",
			"id", rejected.ID,
			"entity", m.EntityKey(),
			"reason", rejected.Reason,
		)
		if err := e.queue.MarkAcked(ctx, rejected.ID); err != nil {
			return fmt.Errorf("failed to drop rejected mutation: %w", err)
		}
		report.Rejected = append(report.Rejected, RejectedNote{
			MutationID: rejected.ID,
			EntityKey:  m.EntityKey(),
			Reason:     rejected.Reason,
		})
	}

	for _, conflict := range resp.Conflicts {
		m, ok := byID[conflict.ID]
		if !ok {
			continue
		}

		resolution := models.Resolution(conflict.Resolution)
		switch resolution {
		case models.ResolutionServer:
			// Server side won: take its record and drop ours. The apply
			// gate keeps the local copy when a later local edit already
			// moved strictly past the shipped record.
			if conflict.Record != nil {
				if err := e.storage.ApplyPulled(ctx, []*models.EntityRecord{recordFromWire(conflict.Record)}); err != nil {
					return fmt.Errorf("failed to adopt server record: %w", err)
				}
			}
			if err := e.queue.MarkAcked(ctx, conflict.ID); err != nil {
				return fmt.Errorf("failed to drop conflicted mutation: %w", err)
			}

		case models.ResolutionClient:
			// Our side won: rebase on the current server version and
			// resubmit next cycle.
			if err := e.queue.UpdateBaseVersion(ctx, conflict.ID, conflict.ServerVersion); err != nil {
				return fmt.Errorf("failed to rebase mutation: %w", err)
			}

		case models.ResolutionManual:
			if err := e.queue.MarkConflictManual(ctx, conflict.ID); err != nil {
				return fmt.Errorf("failed to park mutation: %w", err)
			}

		default:
			return fmt.Errorf("unknown conflict resolution %q", conflict.Resolution)
		}

		report.Conflicts = append(report.Conflicts, ConflictNote{
			MutationID: conflict.ID,
			EntityKey:  m.EntityKey(),
			Resolution: resolution,
		})
	}

	return nil
}

func recordFromWire(wire *api.EntityRecord) *models.EntityRecord {
	return &models.EntityRecord{
		EntityType: models.EntityType(wire.EntityType),
		EntityID:   wire.EntityID,
		Version:    wire.Version,
		UpdatedAt:  wire.UpdatedAt,
		Deleted:    wire.Deleted,
		Payload:    wire.Payload,
	}
}

func mutationToWire(m *models.QueuedMutation) api.Mutation {
	return api.Mutation{
		ID:          m.ID,
		EntityType:  string(m.EntityType),
		EntityID:    m.EntityID,
		Operation:   string(m.Operation),
		BaseVersion: m.BaseVersion,
		Payload:     m.Payload,
		CreatedAt:   m.CreatedAt,
	}
}
