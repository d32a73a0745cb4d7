package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePayload(t *testing.T) {
	tests := []struct {
		name       string
		entityType EntityType
		raw        string
		wantType   EntityType
		wantErr    bool
	}{
		{
			name:       "valid instrument",
			entityType: EntityInstrument,
			raw:        `{"name":"HPLC-01","model":"Agilent 1260","status":"online"}`,
			wantType:   EntityInstrument,
		},
		{
			name:       "valid method",
			entityType: EntityMethod,
			raw:        `{"name":"Caffeine assay","instrument_id":"hplc-01","parameters":{"flow":"1.0 mL/min"}}`,
			wantType:   EntityMethod,
		},
		{
			name:       "valid qc record",
			entityType: EntityQCRecord,
			raw:        `{"method_id":"m1","analyte":"caffeine","value":99.2,"unit":"%","in_control":true,"measured_at":"2026-08-30T10:00:00Z"}`,
			wantType:   EntityQCRecord,
		},
		{
			name:       "valid inventory item",
			entityType: EntityInventoryItem,
			raw:        `{"name":"Acetonitrile","lot_number":"L-404","quantity":2.5,"unit":"L"}`,
			wantType:   EntityInventoryItem,
		},
		{
			name:       "malformed json",
			entityType: EntityInstrument,
			raw:        `{"name":`,
			wantErr:    true,
		},
		{
			name:       "wrong shape",
			entityType: EntityQCRecord,
			raw:        `{"value":"not a number"}`,
			wantErr:    true,
		},
		{
			name:       "empty payload",
			entityType: EntityMethod,
			raw:        ``,
			wantErr:    true,
		},
		{
			name:       "unknown entity type",
			entityType: EntityType("chromatogram"),
			raw:        `{}`,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := DecodePayload(tt.entityType, json.RawMessage(tt.raw))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, p.PayloadType())
		})
	}
}

func TestDecodePayload_UnknownTypeSentinel(t *testing.T) {
	_, err := DecodePayload(EntityType("bogus"), json.RawMessage(`{}`))
	assert.ErrorIs(t, err, ErrUnknownEntityType)
}
