package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// EntityType identifies one of the synchronized collections.
type EntityType string

// Known entity types
const (
	EntityInstrument    EntityType = "instrument"
	EntityMethod        EntityType = "method"
	EntityQCRecord      EntityType = "qc_record"
	EntityInventoryItem EntityType = "inventory_item"
)

// EntityTypes lists every known entity type in a stable order.
// Used to iterate per-type sync state.
var EntityTypes = []EntityType{
	EntityInstrument,
	EntityMethod,
	EntityQCRecord,
	EntityInventoryItem,
}

// ErrUnknownEntityType indicates a type outside the known set
var ErrUnknownEntityType = errors.New("unknown entity type")

// ParseEntityType validates a wire-level type string.
// Returns ErrUnknownEntityType for anything outside the known set.
func ParseEntityType(s string) (EntityType, error) {
	switch t := EntityType(s); t {
	case EntityInstrument, EntityMethod, EntityQCRecord, EntityInventoryItem:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownEntityType, s)
	}
}

// EntityRecord is one row of a synchronized collection.
// Version is monotonically increasing and bumped on every accepted write;
// deletes are soft (tombstone) so they propagate through sync.
type EntityRecord struct {
	UpdatedAt  time.Time       `json:"updated_at"`
	EntityType EntityType      `json:"entity_type"`
	EntityID   string          `json:"entity_id"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	Version    int64           `json:"version"`
	Deleted    bool            `json:"deleted"`
}

// Key returns the storage key "type/id", unique across collections.
func (r *EntityRecord) Key() string {
	return EntityKey(r.EntityType, r.EntityID)
}

// EntityKey builds the composite key for a (type, id) pair.
func EntityKey(entityType EntityType, entityID string) string {
	return string(entityType) + "/" + entityID
}

// NewerThan reports whether r supersedes other.
// Versions are authoritative: a pulled record with a version not greater
// than the local one is stale or a duplicate.
func (r *EntityRecord) NewerThan(other *EntityRecord) bool {
	return r.Version > other.Version
}

// Clone returns a deep copy of the record.
func (r *EntityRecord) Clone() *EntityRecord {
	payload := make(json.RawMessage, len(r.Payload))
	copy(payload, r.Payload)

	return &EntityRecord{
		EntityType: r.EntityType,
		EntityID:   r.EntityID,
		Version:    r.Version,
		UpdatedAt:  r.UpdatedAt,
		Deleted:    r.Deleted,
		Payload:    payload,
	}
}
