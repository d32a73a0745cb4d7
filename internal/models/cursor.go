package models

import "time"

// SyncCursor is the client-held watermark: how far this client has pulled,
// per entity type. Tokens are opaque to the client; only the server knows
// how to compare them.
type SyncCursor struct {
	LastSyncAt     time.Time             `json:"last_sync_at"`
	EntityVersions map[EntityType]string `json:"entity_versions"`
}

// NewSyncCursor returns an empty cursor, i.e. "pull everything".
func NewSyncCursor() *SyncCursor {
	return &SyncCursor{
		EntityVersions: make(map[EntityType]string),
	}
}

// TokenFor returns the per-type watermark, empty for a first-time pull.
func (c *SyncCursor) TokenFor(entityType EntityType) string {
	if c.EntityVersions == nil {
		return ""
	}
	return c.EntityVersions[entityType]
}

// Advance records the server-reported watermark for a type.
func (c *SyncCursor) Advance(entityType EntityType, token string) {
	if c.EntityVersions == nil {
		c.EntityVersions = make(map[EntityType]string)
	}
	c.EntityVersions[entityType] = token
}

// AttachmentMeta is the metadata linkage for a binary attachment. The
// binary body lives in the external attachments service; sync only carries
// this record alongside a push.
type AttachmentMeta struct {
	EntityType EntityType `json:"entity_type"`
	EntityID   string     `json:"entity_id"`
	Filename   string     `json:"filename"`
	MimeType   string     `json:"mime_type"`
	Size       int64      `json:"size"`
}
