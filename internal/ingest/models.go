package ingest

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RecordKind identifies which synced table a sync event targets.
type RecordKind string

const (
	RecordKindPatient     RecordKind = "PATIENT"
	RecordKindLead        RecordKind = "LEAD"
	RecordKindAppointment RecordKind = "APPOINTMENT"
	RecordKindBooking     RecordKind = "BOOKING"
	RecordKindRevenue     RecordKind = "REVENUE"
)

type SyncAction string

const (
	SyncActionUpsert SyncAction = "UPSERT"
	SyncActionDelete SyncAction = "DELETE"
)

// SyncEvent is one record change pushed by the upstream practice-management
// system. Payload is the raw upstream document; field resolution happens in
// the records adapter, not here.
type SyncEvent struct {
	ID         uuid.UUID              `json:"id"`
	Kind       RecordKind             `json:"kind"`
	Action     SyncAction             `json:"action"`
	Source     string                 `json:"source"` // upstream system identifier
	Payload    map[string]interface{} `json:"payload"`
	ReceivedAt time.Time              `json:"received_at"`
}

func NewSyncEvent(kind RecordKind, action SyncAction, payload map[string]interface{}) *SyncEvent {
	return &SyncEvent{
		ID:         uuid.New(),
		Kind:       kind,
		Action:     action,
		Payload:    payload,
		ReceivedAt: time.Now(),
	}
}

// GetPartitionKey routes all events for one upstream record to the same
// partition so upserts and deletes stay ordered.
func (e *SyncEvent) GetPartitionKey() string {
	for _, field := range []string{"id", "_id", "externalId", "external_id"} {
		if v, ok := e.Payload[field]; ok {
			return fmt.Sprintf("%s:%v", e.Kind, v)
		}
	}
	return e.ID.String()
}

func (e *SyncEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func SyncEventFromJSON(data []byte) (*SyncEvent, error) {
	var event SyncEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sync event: %w", err)
	}
	return &event, nil
}

// Validate checks the fields the consumer cannot work without.
func (e *SyncEvent) Validate() error {
	switch e.Kind {
	case RecordKindPatient, RecordKindLead, RecordKindAppointment, RecordKindBooking, RecordKindRevenue:
	default:
		return fmt.Errorf("unknown record kind %q", e.Kind)
	}

	switch e.Action {
	case SyncActionUpsert, SyncActionDelete:
	default:
		return fmt.Errorf("unknown sync action %q", e.Action)
	}

	if len(e.Payload) == 0 {
		return fmt.Errorf("sync event has no payload")
	}

	return nil
}

// ReportEvent announces a generated analytics report to downstream
// consumers.
type ReportEvent struct {
	ID          uuid.UUID `json:"id"`
	PeriodLabel string    `json:"period_label,omitempty"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	LocationIDs []string  `json:"location_ids,omitempty"`
	Leads       int       `json:"leads"`
	Patients    int       `json:"patients"`
	Production  float64   `json:"production"`
	NetRevenue  float64   `json:"net_revenue"`
	GeneratedAt time.Time `json:"generated_at"`
}

func (e *ReportEvent) GetPartitionKey() string {
	return e.StartDate + ":" + e.EndDate
}

func (e *ReportEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}
