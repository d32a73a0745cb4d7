package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Payload is the typed form of an EntityRecord's opaque payload blob.
// Exactly one concrete type exists per EntityType; DecodePayload is the
// only place the mapping lives.
type Payload interface {
	PayloadType() EntityType
}

// InstrumentPayload describes a lab instrument.
type InstrumentPayload struct {
	Name         string     `json:"name"`
	Model        string     `json:"model,omitempty"`
	SerialNumber string     `json:"serial_number,omitempty"`
	Location     string     `json:"location,omitempty"`
	Status       string     `json:"status,omitempty"`
	LastService  *time.Time `json:"last_service,omitempty"`
}

func (InstrumentPayload) PayloadType() EntityType { return EntityInstrument }

// MethodPayload describes an analytical method.
type MethodPayload struct {
	Name         string            `json:"name"`
	InstrumentID string            `json:"instrument_id,omitempty"`
	Parameters   map[string]string `json:"parameters,omitempty"`
	Notes        string            `json:"notes,omitempty"`
}

func (MethodPayload) PayloadType() EntityType { return EntityMethod }

// QCRecordPayload is one quality-control measurement.
type QCRecordPayload struct {
	MethodID   string    `json:"method_id"`
	Analyte    string    `json:"analyte,omitempty"`
	Value      float64   `json:"value"`
	Unit       string    `json:"unit,omitempty"`
	InControl  bool      `json:"in_control"`
	MeasuredAt time.Time `json:"measured_at"`
	Operator   string    `json:"operator,omitempty"`
}

func (QCRecordPayload) PayloadType() EntityType { return EntityQCRecord }

// InventoryItemPayload is a consumable or reagent on the shelf.
type InventoryItemPayload struct {
	Name       string     `json:"name"`
	LotNumber  string     `json:"lot_number,omitempty"`
	Quantity   float64    `json:"quantity"`
	Unit       string     `json:"unit,omitempty"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	StorageLoc string     `json:"storage_loc,omitempty"`
}

func (InventoryItemPayload) PayloadType() EntityType { return EntityInventoryItem }

// DecodePayload parses a raw payload blob as the typed payload for the
// given entity type. It is the structural-validity gate for pushed
// mutations: an unknown type or a malformed blob is an error, never a
// silent pass-through.
func DecodePayload(entityType EntityType, raw json.RawMessage) (Payload, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("empty payload for %s", entityType)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))

	switch entityType {
	case EntityInstrument:
		var p InstrumentPayload
		if err := dec.Decode(&p); err != nil {
			return nil, fmt.Errorf("malformed instrument payload: %w", err)
		}
		return p, nil
	case EntityMethod:
		var p MethodPayload
		if err := dec.Decode(&p); err != nil {
			return nil, fmt.Errorf("malformed method payload: %w", err)
		}
		return p, nil
	case EntityQCRecord:
		var p QCRecordPayload
		if err := dec.Decode(&p); err != nil {
			return nil, fmt.Errorf("malformed qc_record payload: %w", err)
		}
		return p, nil
	case EntityInventoryItem:
		var p InventoryItemPayload
		if err := dec.Decode(&p); err != nil {
			return nil, fmt.Errorf("malformed inventory_item payload: %w", err)
		}
		return p, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEntityType, entityType)
	}
}
