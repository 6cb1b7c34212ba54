package locations

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(location *Location) error
	GetByID(id uuid.UUID) (*Location, error)
	GetBySlug(slug string) (*Location, error)
	GetByExternalID(externalID string) (*Location, error)
	Update(id uuid.UUID, updates map[string]interface{}) (*Location, error)
	Delete(id uuid.UUID) error
	GetAll(query LocationListQuery) ([]Location, int64, error)
	GetActive() ([]Location, error)

	// Record usage check for safe deletes
	CountSyncedRecords(location *Location) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(location *Location) error {
	return r.db.Create(location).Error
}

func (r *repository) GetByID(id uuid.UUID) (*Location, error) {
	var location Location
	err := r.db.Where("id = ?", id).First(&location).Error
	if err != nil {
		return nil, err
	}
	return &location, nil
}

func (r *repository) GetBySlug(slug string) (*Location, error) {
	var location Location
	err := r.db.Where("slug = ?", slug).First(&location).Error
	if err != nil {
		return nil, err
	}
	return &location, nil
}

func (r *repository) GetByExternalID(externalID string) (*Location, error) {
	var location Location
	err := r.db.Where("external_id = ?", externalID).First(&location).Error
	if err != nil {
		return nil, err
	}
	return &location, nil
}

func (r *repository) Update(id uuid.UUID, updates map[string]interface{}) (*Location, error) {
	var location Location

	if err := r.db.Where("id = ?", id).First(&location).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&location).Updates(updates).Error; err != nil {
		return nil, err
	}

	if err := r.db.Where("id = ?", id).First(&location).Error; err != nil {
		return nil, err
	}

	return &location, nil
}

func (r *repository) Delete(id uuid.UUID) error {
	return r.db.Where("id = ?", id).Delete(&Location{}).Error
}

func (r *repository) GetAll(query LocationListQuery) ([]Location, int64, error) {
	var locations []Location
	var totalCount int64

	db := r.db.Model(&Location{})

	if query.Search != "" {
		searchTerm := "%" + strings.ToLower(query.Search) + "%"
		db = db.Where("LOWER(name) LIKE ? OR LOWER(city) LIKE ?", searchTerm, searchTerm)
	}

	if query.IsActive != nil {
		db = db.Where("is_active = ?", *query.IsActive)
	}

	if err := db.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	sortBy := "name"
	sortOrder := "asc"
	if query.SortBy != "" {
		sortBy = query.SortBy
	}
	if query.SortOrder != "" {
		sortOrder = query.SortOrder
	}

	if query.Page == 0 {
		query.Page = 1
	}
	if query.Limit == 0 {
		query.Limit = 20
	}

	offset := (query.Page - 1) * query.Limit

	err := db.Order(fmt.Sprintf("%s %s", sortBy, sortOrder)).
		Offset(offset).
		Limit(query.Limit).
		Find(&locations).Error

	return locations, totalCount, err
}

func (r *repository) GetActive() ([]Location, error) {
	var locations []Location
	err := r.db.Where("is_active = ?", true).Order("name ASC").Find(&locations).Error
	return locations, err
}

// CountSyncedRecords totals the synced rows referencing the location by
// either its upstream id or its name, across all record tables.
func (r *repository) CountSyncedRecords(location *Location) (int64, error) {
	tables := []string{
		"synced_patients",
		"synced_leads",
		"synced_appointments",
		"synced_bookings",
		"synced_revenue_entries",
	}

	var total int64
	for _, table := range tables {
		var count int64
		err := r.db.Table(table).
			Where("location_id = ? OR LOWER(location_name) = ?", location.ExternalID, strings.ToLower(location.Name)).
			Count(&count).Error
		if err != nil {
			return 0, fmt.Errorf("failed to count %s: %w", table, err)
		}
		total += count
	}

	return total, nil
}
