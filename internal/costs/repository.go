package costs

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(entry *CostEntry) error
	GetByID(id uuid.UUID) (*CostEntry, error)
	Update(id uuid.UUID, updates map[string]interface{}) (*CostEntry, error)
	Delete(id uuid.UUID) error
	GetAll(query CostListQuery) ([]CostEntry, int64, error)
	TotalsByLocation(start, end time.Time) ([]LocationSpend, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(entry *CostEntry) error {
	return r.db.Create(entry).Error
}

func (r *repository) GetByID(id uuid.UUID) (*CostEntry, error) {
	var entry CostEntry
	err := r.db.Where("id = ?", id).First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *repository) Update(id uuid.UUID, updates map[string]interface{}) (*CostEntry, error) {
	var entry CostEntry

	if err := r.db.Where("id = ?", id).First(&entry).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&entry).Updates(updates).Error; err != nil {
		return nil, err
	}

	if err := r.db.Where("id = ?", id).First(&entry).Error; err != nil {
		return nil, err
	}

	return &entry, nil
}

func (r *repository) Delete(id uuid.UUID) error {
	return r.db.Where("id = ?", id).Delete(&CostEntry{}).Error
}

func (r *repository) GetAll(query CostListQuery) ([]CostEntry, int64, error) {
	var entries []CostEntry
	var totalCount int64

	db := r.db.Model(&CostEntry{})

	if query.LocationID != "" {
		db = db.Where("location_id = ?", query.LocationID)
	}
	if query.Category != "" {
		db = db.Where("category = ?", query.Category)
	}
	if query.StartDate != "" {
		start, err := time.Parse("2006-01-02", query.StartDate)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid start_date: %w", err)
		}
		db = db.Where("incurred_at >= ?", start)
	}
	if query.EndDate != "" {
		end, err := time.Parse("2006-01-02", query.EndDate)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid end_date: %w", err)
		}
		db = db.Where("incurred_at < ?", end.AddDate(0, 0, 1))
	}

	if err := db.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	if query.Page == 0 {
		query.Page = 1
	}
	if query.Limit == 0 {
		query.Limit = 20
	}

	offset := (query.Page - 1) * query.Limit

	err := db.Order("incurred_at DESC").
		Offset(offset).
		Limit(query.Limit).
		Find(&entries).Error

	return entries, totalCount, err
}

// TotalsByLocation sums spend per location over a window, for the spend
// summary endpoint.
func (r *repository) TotalsByLocation(start, end time.Time) ([]LocationSpend, error) {
	var totals []LocationSpend

	err := r.db.Model(&CostEntry{}).
		Select("location_id, SUM(amount) as total, COUNT(*) as entry_count").
		Where("incurred_at BETWEEN ? AND ?", start, end).
		Group("location_id").
		Order("total DESC").
		Scan(&totals).Error

	return totals, err
}
