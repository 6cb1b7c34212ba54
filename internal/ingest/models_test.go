package ingest

import (
	"testing"
)

func TestSyncEventRoundTrip(t *testing.T) {
	event := NewSyncEvent(RecordKindLead, SyncActionUpsert, map[string]interface{}{
		"id":       "lead-42",
		"source":   "Google Ads",
		"location": "Gilbert",
	})

	data, err := event.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	decoded, err := SyncEventFromJSON(data)
	if err != nil {
		t.Fatalf("SyncEventFromJSON: %v", err)
	}

	if decoded.Kind != RecordKindLead {
		t.Errorf("Kind = %q, want %q", decoded.Kind, RecordKindLead)
	}
	if decoded.Action != SyncActionUpsert {
		t.Errorf("Action = %q, want %q", decoded.Action, SyncActionUpsert)
	}
	if decoded.Payload["id"] != "lead-42" {
		t.Errorf("Payload id = %v, want lead-42", decoded.Payload["id"])
	}
}

func TestSyncEventPartitionKey(t *testing.T) {
	tests := []struct {
		name    string
		payload map[string]interface{}
		want    string
	}{
		{
			name:    "string id",
			payload: map[string]interface{}{"id": "p-1"},
			want:    "PATIENT:p-1",
		},
		{
			name:    "mongo style id",
			payload: map[string]interface{}{"_id": "abc123"},
			want:    "PATIENT:abc123",
		},
		{
			name:    "numeric id",
			payload: map[string]interface{}{"id": float64(77)},
			want:    "PATIENT:77",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := NewSyncEvent(RecordKindPatient, SyncActionUpsert, tt.payload)
			if got := event.GetPartitionKey(); got != tt.want {
				t.Errorf("GetPartitionKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSyncEventPartitionKeyWithoutID(t *testing.T) {
	event := NewSyncEvent(RecordKindPatient, SyncActionUpsert, map[string]interface{}{"name": "no id"})
	if got := event.GetPartitionKey(); got != event.ID.String() {
		t.Errorf("GetPartitionKey() = %q, want fallback to event id %q", got, event.ID)
	}
}

func TestSyncEventValidate(t *testing.T) {
	tests := []struct {
		name    string
		event   *SyncEvent
		wantErr bool
	}{
		{
			name:    "valid upsert",
			event:   NewSyncEvent(RecordKindAppointment, SyncActionUpsert, map[string]interface{}{"id": "a-1"}),
			wantErr: false,
		},
		{
			name:    "valid delete",
			event:   NewSyncEvent(RecordKindRevenue, SyncActionDelete, map[string]interface{}{"id": "r-1"}),
			wantErr: false,
		},
		{
			name:    "unknown kind",
			event:   NewSyncEvent(RecordKind("INVOICE"), SyncActionUpsert, map[string]interface{}{"id": "x"}),
			wantErr: true,
		},
		{
			name:    "unknown action",
			event:   NewSyncEvent(RecordKindLead, SyncAction("MERGE"), map[string]interface{}{"id": "x"}),
			wantErr: true,
		},
		{
			name:    "empty payload",
			event:   NewSyncEvent(RecordKindLead, SyncActionUpsert, nil),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.event.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestExternalIDFromPayload(t *testing.T) {
	if got := externalIDFromPayload(map[string]interface{}{"external_id": "e-9"}); got != "e-9" {
		t.Errorf("externalIDFromPayload = %q, want e-9", got)
	}
	if got := externalIDFromPayload(map[string]interface{}{}); got != "" {
		t.Errorf("externalIDFromPayload = %q, want empty", got)
	}
}
