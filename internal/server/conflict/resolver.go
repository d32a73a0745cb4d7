// Package conflict decides the outcome of a version-mismatched mutation.
// Resolution is whole-record: a side wins or the conflict is handed to a
// human, payload fields are never merged.
package conflict

import (
	"github.com/benchtop/labsync/internal/models"
)

// Policy picks a side for one conflicting mutation. It must be pure:
// same inputs, same answer.
type Policy func(m *models.QueuedMutation, rec *models.EntityRecord) models.Resolution

// LastWriteWins is the default policy: the later wall-clock write wins,
// comparing the mutation's CreatedAt against the record's UpdatedAt.
// Ties prefer the server copy (it is already durable), and a server-side
// tombstone always stands.
func LastWriteWins(m *models.QueuedMutation, rec *models.EntityRecord) models.Resolution {
	if rec.Deleted {
		return models.ResolutionServer
	}
	if m.CreatedAt.After(rec.UpdatedAt) {
		return models.ResolutionClient
	}
	return models.ResolutionServer
}

// Manual refuses to auto-resolve update/update conflicts; delete conflicts
// still follow last-write-wins since there is nothing for a human to merge.
func Manual(m *models.QueuedMutation, rec *models.EntityRecord) models.Resolution {
	if rec.Deleted || m.Operation == models.OpDelete {
		return LastWriteWins(m, rec)
	}
	return models.ResolutionManual
}

// Resolver adjudicates conflicts under a fixed policy.
type Resolver struct {
	policy Policy
}

// New creates a resolver. A nil policy means LastWriteWins.
func New(policy Policy) *Resolver {
	if policy == nil {
		policy = LastWriteWins
	}
	return &Resolver{policy: policy}
}

// Resolve classifies one mutation whose base_version does not match the
// authoritative record. The returned outcome carries the record the
// winning side produces, except for manual outcomes where no side has won
// yet.
func (r *Resolver) Resolve(m *models.QueuedMutation, rec *models.EntityRecord) models.ConflictOutcome {
	outcome := models.ConflictOutcome{
		EntityType:    m.EntityType,
		EntityID:      m.EntityID,
		ClientVersion: m.BaseVersion,
		ServerVersion: rec.Version,
		Resolution:    r.policy(m, rec),
	}

	switch outcome.Resolution {
	case models.ResolutionServer:
		outcome.ResolvedRecord = rec.Clone()
	case models.ResolutionClient:
		// The record the client's resubmission (against the current
		// server version) will produce.
		outcome.ResolvedRecord = &models.EntityRecord{
			EntityType: m.EntityType,
			EntityID:   m.EntityID,
			Version:    rec.Version + 1,
			UpdatedAt:  m.CreatedAt,
			Deleted:    m.Operation == models.OpDelete,
			Payload:    m.Payload,
		}
	case models.ResolutionManual:
		// No winner; the client keeps the mutation parked for a user
		// decision.
	}

	return outcome
}
