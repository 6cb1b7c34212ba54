package ingest

import (
	"context"
	"fmt"

	"practipulse/internal/records"
	"practipulse/pkg/logger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Service applies sync events to the synced record tables.
type Service interface {
	Apply(ctx context.Context, event *SyncEvent) error
}

type service struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewService(db *gorm.DB) Service {
	return &service{db: db, log: logger.GetDefault()}
}

func (s *service) Apply(ctx context.Context, event *SyncEvent) error {
	var err error
	if event.Action == SyncActionDelete {
		err = s.applyDelete(ctx, event)
	} else {
		err = s.applyUpsert(ctx, event)
	}
	if err == nil {
		s.log.LogRecordSynced(ctx, string(event.Kind), externalIDFromPayload(event.Payload), string(event.Action))
	}
	return err
}

// applyUpsert adapts the raw payload into the typed record and upserts it
// keyed on the upstream external id. Payloads the adapter cannot resolve an
// id for are rejected.
func (s *service) applyUpsert(ctx context.Context, event *SyncEvent) error {
	db := s.db.WithContext(ctx)

	switch event.Kind {
	case RecordKindPatient:
		patient, ok := records.AdaptPatient(event.Payload)
		if !ok {
			return fmt.Errorf("patient payload missing id")
		}
		return s.upsert(db, &patient, patientUpdateColumns)

	case RecordKindLead:
		lead, ok := records.AdaptLead(event.Payload)
		if !ok {
			return fmt.Errorf("lead payload missing id")
		}
		return s.upsert(db, &lead, leadUpdateColumns)

	case RecordKindAppointment:
		appointment, ok := records.AdaptAppointment(event.Payload)
		if !ok {
			return fmt.Errorf("appointment payload missing id")
		}
		return s.upsert(db, &appointment, appointmentUpdateColumns)

	case RecordKindBooking:
		booking, ok := records.AdaptBooking(event.Payload)
		if !ok {
			return fmt.Errorf("booking payload missing id")
		}
		return s.upsert(db, &booking, bookingUpdateColumns)

	case RecordKindRevenue:
		entry, ok := records.AdaptRevenueEntry(event.Payload)
		if !ok {
			return fmt.Errorf("revenue payload missing id or amount")
		}
		return s.upsert(db, &entry, revenueUpdateColumns)
	}

	return fmt.Errorf("unknown record kind %q", event.Kind)
}

var (
	patientUpdateColumns     = []string{"location_id", "location_name", "source", "timestamp", "updated_at"}
	leadUpdateColumns        = []string{"location_id", "location_name", "source", "status", "converted", "timestamp", "updated_at"}
	appointmentUpdateColumns = []string{"location_id", "location_name", "status", "amount", "timestamp", "updated_at"}
	bookingUpdateColumns     = []string{"location_id", "location_name", "status", "timestamp", "updated_at"}
	revenueUpdateColumns     = []string{"location_id", "location_name", "amount", "timestamp", "updated_at"}
)

func (s *service) upsert(db *gorm.DB, record interface{}, updateColumns []string) error {
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "external_id"}},
		DoUpdates: clause.AssignmentColumns(updateColumns),
	}).Create(record).Error
	if err != nil {
		return fmt.Errorf("failed to upsert record: %w", err)
	}
	return nil
}

func (s *service) applyDelete(ctx context.Context, event *SyncEvent) error {
	externalID := externalIDFromPayload(event.Payload)
	if externalID == "" {
		return fmt.Errorf("delete event missing record id")
	}

	db := s.db.WithContext(ctx)

	var err error
	switch event.Kind {
	case RecordKindPatient:
		err = db.Where("external_id = ?", externalID).Delete(&records.Patient{}).Error
	case RecordKindLead:
		err = db.Where("external_id = ?", externalID).Delete(&records.Lead{}).Error
	case RecordKindAppointment:
		err = db.Where("external_id = ?", externalID).Delete(&records.Appointment{}).Error
	case RecordKindBooking:
		err = db.Where("external_id = ?", externalID).Delete(&records.Booking{}).Error
	case RecordKindRevenue:
		err = db.Where("external_id = ?", externalID).Delete(&records.RevenueEntry{}).Error
	default:
		return fmt.Errorf("unknown record kind %q", event.Kind)
	}

	if err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	return nil
}

func externalIDFromPayload(payload map[string]interface{}) string {
	for _, field := range []string{"id", "_id", "externalId", "external_id"} {
		if v, ok := payload[field]; ok {
			return fmt.Sprintf("%v", v)
		}
	}
	return ""
}
