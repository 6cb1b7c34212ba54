package analytics

import (
	"context"
	"fmt"
	"time"

	"practipulse/internal/costs"
	"practipulse/internal/records"

	"gorm.io/gorm"
)

// Repository loads the already-synced raw records backing one aggregation
// run. The database query only narrows by timestamp; the engine's filter
// applies the precise date and location rules in memory, so the fuzzy
// location-matching semantics live in exactly one place.
type Repository interface {
	FetchDataset(ctx context.Context, period PeriodDefinition) (records.Dataset, error)
}

// repository implements Repository interface
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new analytics repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FetchDataset(ctx context.Context, period PeriodDefinition) (records.Dataset, error) {
	dataset := records.Dataset{}
	if period.Start.After(period.End) {
		// Inverted ranges legitimately produce an empty dataset; skip the
		// round trips.
		return dataset, nil
	}

	if err := r.db.WithContext(ctx).
		Where("timestamp BETWEEN ? AND ?", period.Start, period.End).
		Order("timestamp ASC").
		Find(&dataset.Patients).Error; err != nil {
		return dataset, fmt.Errorf("failed to load patients: %w", err)
	}

	if err := r.db.WithContext(ctx).
		Where("timestamp BETWEEN ? AND ?", period.Start, period.End).
		Order("timestamp ASC").
		Find(&dataset.Leads).Error; err != nil {
		return dataset, fmt.Errorf("failed to load leads: %w", err)
	}

	if err := r.db.WithContext(ctx).
		Where("timestamp BETWEEN ? AND ?", period.Start, period.End).
		Order("timestamp ASC").
		Find(&dataset.Appointments).Error; err != nil {
		return dataset, fmt.Errorf("failed to load appointments: %w", err)
	}

	if err := r.db.WithContext(ctx).
		Where("timestamp BETWEEN ? AND ?", period.Start, period.End).
		Order("timestamp ASC").
		Find(&dataset.Bookings).Error; err != nil {
		return dataset, fmt.Errorf("failed to load bookings: %w", err)
	}

	if err := r.db.WithContext(ctx).
		Where("timestamp BETWEEN ? AND ?", period.Start, period.End).
		Order("timestamp ASC").
		Find(&dataset.Revenue).Error; err != nil {
		return dataset, fmt.Errorf("failed to load revenue entries: %w", err)
	}

	summaries, err := r.fetchSummaries(ctx, period)
	if err != nil {
		return dataset, err
	}
	dataset.Summaries = summaries

	costEntries, err := r.fetchCostEntries(ctx, period.Start, period.End)
	if err != nil {
		return dataset, err
	}
	dataset.CostEntries = costEntries

	return dataset, nil
}

// fetchSummaries loads upstream count summaries whose window covers the
// requested period; the aggregator decides per location whether one applies.
func (r *repository) fetchSummaries(ctx context.Context, period PeriodDefinition) ([]records.CountSummary, error) {
	var summaries []records.CountSummary
	err := r.db.WithContext(ctx).
		Where("period_start <= ? AND period_end >= ?", period.Start, period.End).
		Find(&summaries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load count summaries: %w", err)
	}
	return summaries, nil
}

// fetchCostEntries loads the manually tracked spend for the window and maps
// it into the engine's read-only shape.
func (r *repository) fetchCostEntries(ctx context.Context, start, end time.Time) ([]records.CostEntry, error) {
	var entries []costs.CostEntry
	err := r.db.WithContext(ctx).
		Where("incurred_at BETWEEN ? AND ?", start, end).
		Order("incurred_at ASC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load cost entries: %w", err)
	}

	out := make([]records.CostEntry, 0, len(entries))
	for _, entry := range entries {
		out = append(out, records.CostEntry{
			LocationID: entry.LocationID,
			Amount:     entry.Amount,
			Timestamp:  entry.IncurredAt,
		})
	}
	return out, nil
}
