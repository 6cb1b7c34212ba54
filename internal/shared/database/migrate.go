package database

import (
	"practipulse/internal/costs"
	"practipulse/internal/locations"
	"practipulse/internal/records"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&locations.Location{},
		&records.Patient{},
		&records.Lead{},
		&records.Appointment{},
		&records.Booking{},
		&records.RevenueEntry{},
		&records.CountSummary{},
		&costs.CostEntry{},
	)
	if err != nil {
		return err
	}

	return MigrateConstraints(db)
}
