// Package api holds the wire types for the sync protocol
// (POST /sync/pull, POST /sync/push). JSON over HTTP, shared by client
// and server.
package api

import (
	"encoding/json"
	"time"
)

// EntityRecord is one synchronized row on the wire.
type EntityRecord struct {
	UpdatedAt  time.Time       `json:"updated_at"`
	EntityType string          `json:"entity_type"`
	EntityID   string          `json:"entity_id"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	Version    int64           `json:"version"`
	Deleted    bool            `json:"deleted"`
}

// Mutation is one client-submitted change. ID is the client-generated
// idempotency key, stable across retries.
type Mutation struct {
	CreatedAt   time.Time       `json:"created_at"`
	ID          string          `json:"id"`
	EntityType  string          `json:"entity_type"`
	EntityID    string          `json:"entity_id"`
	Operation   string          `json:"operation"`
	Payload     json.RawMessage `json:"payload,omitempty"`
	BaseVersion int64           `json:"base_version"`
}

// AttachmentMeta is forwarded alongside a push; the binary body is handled
// by the external attachments service.
type AttachmentMeta struct {
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`
	Filename   string `json:"filename"`
	MimeType   string `json:"mime_type"`
	Size       int64  `json:"size"`
}

// PullRequest asks for every change newer than the client's per-type
// watermark. Since maps entity type to the opaque token the server handed
// out on the previous pull; an empty map means "everything".
type PullRequest struct {
	ClientID string            `json:"client_id"`
	Since    map[string]string `json:"since"`
}

// PullResponse carries the per-type changes, ordered so the client can
// apply them in sequence, plus the new per-type watermarks.
type PullResponse struct {
	ServerTime time.Time                 `json:"server_time"`
	Changes    map[string][]EntityRecord `json:"changes"`
	Versions   map[string]string         `json:"versions"`
}

// PushRequest submits queued mutations grouped by entity type, preserving
// per-entity order within each slice.
type PushRequest struct {
	ClientID    string                `json:"client_id"`
	Since       map[string]string     `json:"since"`
	Changes     map[string][]Mutation `json:"changes"`
	Attachments []AttachmentMeta      `json:"attachments,omitempty"`
}

// AcceptedMutation acknowledges one applied mutation. NewVersion is the
// server-assigned version the client must adopt for its local copy.
type AcceptedMutation struct {
	ID         string `json:"id"`
	EntityType string `json:"entity"`
	EntityID   string `json:"entity_id"`
	NewVersion int64  `json:"new_version"`
}

// RejectedMutation is a permanent, structural rejection. The client
// removes the mutation from its queue and surfaces Reason; there is no
// retry.
type RejectedMutation struct {
	ID         string `json:"id"`
	EntityType string `json:"entity"`
	EntityID   string `json:"entity_id"`
	Reason     string `json:"reason"`
}

// Conflict reports a version mismatch and how the server's resolver
// decided it. Record is the authoritative record when the server side
// wins, so the client can adopt it without waiting for the next pull.
type Conflict struct {
	ID            string        `json:"id"`
	EntityType    string        `json:"entity"`
	EntityID      string        `json:"entity_id"`
	Resolution    string        `json:"resolution"`
	Record        *EntityRecord `json:"record,omitempty"`
	ClientVersion int64         `json:"client_version"`
	ServerVersion int64         `json:"server_version"`
}

// PushResponse is the per-mutation adjudication of a push.
type PushResponse struct {
	ServerTime time.Time          `json:"server_time"`
	Accepted   []AcceptedMutation `json:"accepted"`
	Rejected   []RejectedMutation `json:"rejected"`
	Conflicts  []Conflict         `json:"conflicts"`
}

// ErrorResponse is the body of a non-2xx reply.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
