// Package service implements the server side of the sync protocol:
// collecting changes since a client's watermark (pull) and applying
// client-submitted mutations under per-entity optimistic-concurrency
// checks (push).
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/benchtop/labsync/internal/models"
	"github.com/benchtop/labsync/internal/server/conflict"
	"github.com/benchtop/labsync/internal/server/storage"
)

// Service is the sync service. One instance serves all clients; state
// lives in storage, not here.
type Service struct {
	storage  storage.DataStorage
	resolver *conflict.Resolver
	logger   *slog.Logger
	locks    *keyedMutex
	now      func() time.Time
}

// New creates the sync service. A nil resolver gets the default
// last-write-wins policy.
func New(st storage.DataStorage, resolver *conflict.Resolver, logger *slog.Logger) *Service {
	if resolver == nil {
		resolver = conflict.New(nil)
	}
	return &Service{
		storage:  st,
		resolver: resolver,
		logger:   logger,
		locks:    newKeyedMutex(),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// PullResult is everything newer than the client's watermark, per type.
type PullResult struct {
	ServerTime time.Time
	Changes    map[models.EntityType][]*models.EntityRecord
	Versions   map[models.EntityType]string
}

// Pull collects per-type changes since the client's tokens. Unknown
// tokens are an error; unknown types in the map are ignored (the server
// only serves the known set). Read-only, no locks taken.
func (s *Service) Pull(ctx context.Context, clientID string, since map[models.EntityType]string) (*PullResult, error) {
	result := &PullResult{
		ServerTime: s.now(),
		Changes:    make(map[models.EntityType][]*models.EntityRecord, len(models.EntityTypes)),
		Versions:   make(map[models.EntityType]string, len(models.EntityTypes)),
	}

	for _, entityType := range models.EntityTypes {
		records, token, err := s.storage.ChangesSince(ctx, entityType, since[entityType])
		if err != nil {
			return nil, fmt.Errorf("failed to collect %s changes: %w", entityType, err)
		}
		if len(records) > 0 {
			result.Changes[entityType] = records
		}
		result.Versions[entityType] = token
	}

	s.logger.Info("pull served",
		"client_id", clientID,
		"types", len(result.Versions),
		"changes", countRecords(result.Changes))

	return result, nil
}

// AcceptedInfo acknowledges one applied mutation.
type AcceptedInfo struct {
	MutationID string
	EntityType models.EntityType
	EntityID   string
	NewVersion int64
}

// RejectedInfo is a permanent structural rejection with its reason.
type RejectedInfo struct {
	MutationID string
	EntityType models.EntityType
	EntityID   string
	Reason     string
}

// ConflictInfo pairs a conflict outcome with the mutation that caused it.
type ConflictInfo struct {
	MutationID string
	Outcome    models.ConflictOutcome
}

// PushResult is the per-mutation adjudication of one push request.
type PushResult struct {
	ServerTime time.Time
	Accepted   []AcceptedInfo
	Rejected   []RejectedInfo
	Conflicts  []ConflictInfo
}

// Push applies client mutations in the order given. Mutations for the
// same entity must arrive in client enqueue order; the per-entity lock
// makes each check-and-apply atomic against concurrent pushes.
func (s *Service) Push(ctx context.Context, clientID string, mutations []*models.QueuedMutation, attachments []models.AttachmentMeta) (*PushResult, error) {
	result := &PushResult{ServerTime: s.now()}

	for _, m := range mutations {
		if err := s.applyOne(ctx, m, result); err != nil {
			return nil, err
		}
	}

	if err := s.saveAttachments(ctx, attachments, result); err != nil {
		return nil, err
	}

	s.logger.Info("push processed",
		"client_id", clientID,
		"mutations", len(mutations),
		"accepted", len(result.Accepted),
		"rejected", len(result.Rejected),
		"conflicts", len(result.Conflicts))

	return result, nil
}

// applyOne adjudicates a single mutation. Storage failures abort the
// whole push (the client will retry the batch); structural problems and
// version mismatches become per-mutation outcomes instead.
func (s *Service) applyOne(ctx context.Context, m *models.QueuedMutation, result *PushResult) error {
	if reason := validateMutation(m); reason != "" {
		result.Rejected = append(result.Rejected, RejectedInfo{
			MutationID: m.ID,
			EntityType: m.EntityType,
			EntityID:   m.EntityID,
			Reason:     reason,
		})
		return nil
	}

	unlock := s.locks.Lock(m.EntityKey())
	defer unlock()

	// Idempotent replay: a resent mutation returns its original outcome
	// without touching state.
	if version, applied, err := s.storage.AppliedMutationVersion(ctx, m.ID); err != nil {
		return fmt.Errorf("failed to check mutation ledger: %w", err)
	} else if applied {
		result.Accepted = append(result.Accepted, AcceptedInfo{
			MutationID: m.ID,
			EntityType: m.EntityType,
			EntityID:   m.EntityID,
			NewVersion: version,
		})
		return nil
	}

	current, err := s.storage.GetEntity(ctx, m.EntityType, m.EntityID)
	switch {
	case errors.Is(err, storage.ErrEntityNotFound):
		return s.applyToMissing(ctx, m, result)
	case err != nil:
		return fmt.Errorf("failed to load entity: %w", err)
	}

	if m.BaseVersion == current.Version {
		return s.accept(ctx, m, current, result)
	}

	outcome := s.resolver.Resolve(m, current)
	result.Conflicts = append(result.Conflicts, ConflictInfo{MutationID: m.ID, Outcome: outcome})

	s.logger.Debug("conflict detected",
		"entity", m.EntityKey(),
		"client_version", m.BaseVersion,
		"server_version", current.Version,
		"resolution", outcome.Resolution)

	return nil
}

// applyToMissing handles a mutation against an entity the server has
// never seen.
func (s *Service) applyToMissing(ctx context.Context, m *models.QueuedMutation, result *PushResult) error {
	if m.Operation != models.OpCreate {
		result.Rejected = append(result.Rejected, RejectedInfo{
			MutationID: m.ID,
			EntityType: m.EntityType,
			EntityID:   m.EntityID,
			Reason:     "entity not found",
		})
		return nil
	}

	record := &models.EntityRecord{
		EntityType: m.EntityType,
		EntityID:   m.EntityID,
		Version:    1,
		UpdatedAt:  s.mutationTime(m),
		Payload:    m.Payload,
	}

	if err := s.storage.ApplyMutation(ctx, record, m.ID); err != nil {
		return fmt.Errorf("failed to create entity: %w", err)
	}

	result.Accepted = append(result.Accepted, AcceptedInfo{
		MutationID: m.ID,
		EntityType: m.EntityType,
		EntityID:   m.EntityID,
		NewVersion: 1,
	})
	return nil
}

// accept applies a base-version-matched mutation on top of current.
// A server-accepted write always produces a version strictly greater than
// the one the client claimed to update.
func (s *Service) accept(ctx context.Context, m *models.QueuedMutation, current *models.EntityRecord, result *PushResult) error {
	record := &models.EntityRecord{
		EntityType: m.EntityType,
		EntityID:   m.EntityID,
		Version:    current.Version + 1,
		UpdatedAt:  s.mutationTime(m),
	}

	switch m.Operation {
	case models.OpDelete:
		record.Deleted = true
		record.Payload = current.Payload
	default:
		record.Payload = m.Payload
	}

	if err := s.storage.ApplyMutation(ctx, record, m.ID); err != nil {
		return fmt.Errorf("failed to apply mutation: %w", err)
	}

	result.Accepted = append(result.Accepted, AcceptedInfo{
		MutationID: m.ID,
		EntityType: m.EntityType,
		EntityID:   m.EntityID,
		NewVersion: record.Version,
	})
	return nil
}

func (s *Service) saveAttachments(ctx context.Context, metas []models.AttachmentMeta, result *PushResult) error {
	valid := make([]models.AttachmentMeta, 0, len(metas))
	for _, meta := range metas {
		if _, err := models.ParseEntityType(string(meta.EntityType)); err != nil {
			s.logger.Warn("dropping attachment meta with unknown entity type",
				"entity_type", meta.EntityType, "filename", meta.Filename)
			continue
		}
		valid = append(valid, meta)
	}

	if err := s.storage.SaveAttachmentMeta(ctx, valid); err != nil {
		return fmt.Errorf("failed to save attachment metadata: %w", err)
	}
	return nil
}

func (s *Service) mutationTime(m *models.QueuedMutation) time.Time {
	if m.CreatedAt.IsZero() {
		return s.now()
	}
	return m.CreatedAt.UTC()
}

// validateMutation checks structural validity. A non-empty return is the
// rejection reason; version mismatches are not structural and are handled
// by the resolver instead.
func validateMutation(m *models.QueuedMutation) string {
	if m.ID == "" {
		return "missing mutation id"
	}
	if _, err := models.ParseEntityType(string(m.EntityType)); err != nil {
		return fmt.Sprintf("unknown entity_type %q", m.EntityType)
	}
	if m.EntityID == "" {
		return "missing entity_id"
	}
	if _, err := models.ParseOperation(string(m.Operation)); err != nil {
		return fmt.Sprintf("unknown operation %q", m.Operation)
	}
	if m.Operation != models.OpDelete {
		if _, err := models.DecodePayload(m.EntityType, m.Payload); err != nil {
			return fmt.Sprintf("invalid payload: %v", err)
		}
	}
	return ""
}

func countRecords(changes map[models.EntityType][]*models.EntityRecord) int {
	total := 0
	for _, records := range changes {
		total += len(records)
	}
	return total
}
