package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sort"

	"github.com/benchtop/labsync/internal/models"
	"github.com/benchtop/labsync/internal/server/service"
	"github.com/benchtop/labsync/internal/server/storage"
	"github.com/benchtop/labsync/pkg/api"
)

//go:generate moq -out sync_service_mock.go . SyncService

// SyncService is the part of the sync service the handlers need.
type SyncService interface {
	Pull(ctx context.Context, clientID string, since map[models.EntityType]string) (*service.PullResult, error)
	Push(ctx context.Context, clientID string, mutations []*models.QueuedMutation, attachments []models.AttachmentMeta) (*service.PushResult, error)
}

// SyncHandler serves POST /sync/pull and POST /sync/push.
type SyncHandler struct {
	logger  *slog.Logger
	service SyncService
}

// NewSyncHandler creates a new sync handler
func NewSyncHandler(logger *slog.Logger, svc SyncService) *SyncHandler {
	return &SyncHandler{
		logger:  logger,
		service: svc,
	}
}

// HandlePull handles POST /sync/pull
func (h *SyncHandler) HandlePull(w http.ResponseWriter, r *http.Request) {
	var req api.PullRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("failed to decode pull request", "error", err)
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.ClientID == "" {
		writeError(w, http.StatusBadRequest, "missing client_id")
		return
	}

	pullsTotal.Inc()

	result, err := h.service.Pull(r.Context(), req.ClientID, sinceFromWire(req.Since))
	if err != nil {
		if errors.Is(err, storage.ErrBadCursorToken) {
			writeError(w, http.StatusBadRequest, "invalid cursor token")
			return
		}
		h.logger.Error("pull failed", "error", err, "client_id", req.ClientID)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	resp := api.PullResponse{
		ServerTime: result.ServerTime,
		Changes:    make(map[string][]api.EntityRecord, len(result.Changes)),
		Versions:   make(map[string]string, len(result.Versions)),
	}
	for entityType, records := range result.Changes {
		wire := make([]api.EntityRecord, 0, len(records))
		for _, record := range records {
			wire = append(wire, recordToWire(record))
		}
		resp.Changes[string(entityType)] = wire
	}
	for entityType, token := range result.Versions {
		resp.Versions[string(entityType)] = token
	}

	writeJSON(w, h.logger, resp)
}

// HandlePush handles POST /sync/push
func (h *SyncHandler) HandlePush(w http.ResponseWriter, r *http.Request) {
	var req api.PushRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("failed to decode push request", "error", err)
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.ClientID == "" {
		writeError(w, http.StatusBadRequest, "missing client_id")
		return
	}

	pushesTotal.Inc()

	mutations := flattenMutations(req.Changes)
	attachments := make([]models.AttachmentMeta, 0, len(req.Attachments))
	for _, a := range req.Attachments {
		attachments = append(attachments, models.AttachmentMeta{
			EntityType: models.EntityType(a.EntityType),
			EntityID:   a.EntityID,
			Filename:   a.Filename,
			MimeType:   a.MimeType,
			Size:       a.Size,
		})
	}

	result, err := h.service.Push(r.Context(), req.ClientID, mutations, attachments)
	if err != nil {
		h.logger.Error("push failed", "error", err, "client_id", req.ClientID)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	resp := api.PushResponse{
		ServerTime: result.ServerTime,
		Accepted:   make([]api.AcceptedMutation, 0, len(result.Accepted)),
		Rejected:   make([]api.RejectedMutation, 0, len(result.Rejected)),
		Conflicts:  make([]api.Conflict, 0, len(result.Conflicts)),
	}

	for _, a := range result.Accepted {
		mutationOutcomes.WithLabelValues("accepted").Inc()
		resp.Accepted = append(resp.Accepted, api.AcceptedMutation{
			ID:         a.MutationID,
			EntityType: string(a.EntityType),
			EntityID:   a.EntityID,
			NewVersion: a.NewVersion,
		})
	}
	for _, rej := range result.Rejected {
		mutationOutcomes.WithLabelValues("rejected").Inc()
		resp.Rejected = append(resp.Rejected, api.RejectedMutation{
			ID:         rej.MutationID,
			EntityType: string(rej.EntityType),
			EntityID:   rej.EntityID,
			Reason:     rej.Reason,
		})
	}
	for _, c := range result.Conflicts {
		mutationOutcomes.WithLabelValues("conflict").Inc()
		wire := api.Conflict{
			ID:            c.MutationID,
			EntityType:    string(c.Outcome.EntityType),
			EntityID:      c.Outcome.EntityID,
			Resolution:    string(c.Outcome.Resolution),
			ClientVersion: c.Outcome.ClientVersion,
			ServerVersion: c.Outcome.ServerVersion,
		}
		// Ship the authoritative record when the server side wins so the
		// client can adopt it without waiting for the next pull.
		if c.Outcome.Resolution == models.ResolutionServer && c.Outcome.ResolvedRecord != nil {
			record := recordToWire(c.Outcome.ResolvedRecord)
			wire.Record = &record
		}
		resp.Conflicts = append(resp.Conflicts, wire)
	}

	writeJSON(w, h.logger, resp)
}

// flattenMutations turns the per-type wire map into a single ordered
// slice. Within a type the wire order (client enqueue order per entity)
// is preserved; unknown type keys flow through so the service rejects
// them with a reason instead of dropping them silently.
func flattenMutations(changes map[string][]api.Mutation) []*models.QueuedMutation {
	keys := make([]string, 0, len(changes))
	for key := range changes {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var mutations []*models.QueuedMutation
	for _, key := range keys {
		for _, m := range changes[key] {
			mutations = append(mutations, &models.QueuedMutation{
				ID:          m.ID,
				EntityType:  models.EntityType(m.EntityType),
				EntityID:    m.EntityID,
				Operation:   models.Operation(m.Operation),
				BaseVersion: m.BaseVersion,
				Payload:     m.Payload,
				CreatedAt:   m.CreatedAt,
			})
		}
	}
	return mutations
}

func sinceFromWire(since map[string]string) map[models.EntityType]string {
	result := make(map[models.EntityType]string, len(since))
	for key, token := range since {
		result[models.EntityType(key)] = token
	}
	return result
}

func recordToWire(record *models.EntityRecord) api.EntityRecord {
	return api.EntityRecord{
		EntityType: string(record.EntityType),
		EntityID:   record.EntityID,
		Version:    record.Version,
		UpdatedAt:  record.UpdatedAt,
		Deleted:    record.Deleted,
		Payload:    record.Payload,
	}
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(api.ErrorResponse{Error: message})
}
