package models

// Resolution says which side of a conflict wins.
type Resolution string

// Conflict resolutions
const (
	ResolutionClient Resolution = "client" // client resubmits against the current server version
	ResolutionServer Resolution = "server" // client drops its mutation and adopts server data
	ResolutionManual Resolution = "manual" // surfaced for a user decision, never auto-resolved
)

// ConflictOutcome is the result of reconciling one mutation against the
// authoritative record. ResolvedRecord is set unless Resolution is manual:
// for server wins it is the authoritative record the client must adopt,
// for client wins it is the record the client's resubmission will produce.
type ConflictOutcome struct {
	EntityType     EntityType    `json:"entity_type"`
	EntityID       string        `json:"entity_id"`
	Resolution     Resolution    `json:"resolution"`
	ResolvedRecord *EntityRecord `json:"resolved_record,omitempty"`
	ClientVersion  int64         `json:"client_version"`
	ServerVersion  int64         `json:"server_version"`
}
