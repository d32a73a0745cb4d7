package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Operation is the kind of local write a mutation represents.
type Operation string

// Mutation operations
const (
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// ParseOperation validates a wire-level operation string.
func ParseOperation(s string) (Operation, error) {
	switch op := Operation(s); op {
	case OpCreate, OpUpdate, OpDelete:
		return op, nil
	default:
		return "", fmt.Errorf("unknown operation %q", s)
	}
}

// MutationStatus is the queue-side lifecycle state of a mutation.
type MutationStatus string

// Mutation statuses
const (
	StatusPending  MutationStatus = "pending"
	StatusInFlight MutationStatus = "in_flight"
	StatusFailed   MutationStatus = "failed"
	StatusDead     MutationStatus = "dead"
)

// QueuedMutation is a pending local write awaiting server acknowledgment.
// ID is a client-generated idempotency key, stable across retries: the
// server treats a resent mutation with the same ID as the same operation.
type QueuedMutation struct {
	CreatedAt   time.Time       `json:"created_at"`
	NotBefore   time.Time       `json:"not_before"` // backoff eligibility time
	ID          string          `json:"id"`
	EntityType  EntityType      `json:"entity_type"`
	EntityID    string          `json:"entity_id"`
	Operation   Operation       `json:"operation"`
	FailReason  string          `json:"fail_reason,omitempty"`
	Payload     json.RawMessage `json:"payload,omitempty"`
	BaseVersion int64           `json:"base_version"` // 0 for create
	AttemptCount int            `json:"attempt_count"`
	MaxAttempts  int            `json:"max_attempts"`
	Status      MutationStatus  `json:"status"`
	// AwaitingManual marks a conflict the policy refused to auto-resolve.
	// The mutation stays queued in failed status and is never resent
	// without an explicit user decision.
	AwaitingManual bool `json:"awaiting_manual,omitempty"`
}

// EntityKey returns the composite key of the entity this mutation targets.
func (m *QueuedMutation) EntityKey() string {
	return EntityKey(m.EntityType, m.EntityID)
}

// Retryable reports whether the queue may resend this mutation once its
// backoff window has passed.
func (m *QueuedMutation) Retryable() bool {
	if m.AwaitingManual {
		return false
	}
	return m.Status == StatusPending || m.Status == StatusFailed
}
