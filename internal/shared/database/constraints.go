package database

import (
	"fmt"

	"gorm.io/gorm"
)

// syncedRecordTables are the tables populated by the Kafka record sync.
var syncedRecordTables = []string{
	"synced_patients",
	"synced_leads",
	"synced_appointments",
	"synced_bookings",
	"synced_revenue_entries",
}

// MigrateConstraints adds indexes for the analytics query paths that
// AutoMigrate does not cover. Period aggregation always filters synced
// records by timestamp and location together.
func MigrateConstraints(db *gorm.DB) error {
	for _, table := range syncedRecordTables {
		err := db.Exec(fmt.Sprintf(`
			CREATE INDEX IF NOT EXISTS idx_%s_location_timestamp
			ON %s (location_id, timestamp);
		`, table, table)).Error
		if err != nil {
			return err
		}
	}

	// Spend summaries group cost entries by location within a date range.
	err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_cost_entries_location_incurred
		ON cost_entries (location_id, incurred_at);
	`).Error
	if err != nil {
		return err
	}

	// Count summaries are matched against the requested period bounds.
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_location_count_summaries_period
		ON location_count_summaries (location_id, period_start, period_end);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
