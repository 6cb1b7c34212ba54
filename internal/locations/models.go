package locations

import (
	"time"

	"github.com/google/uuid"
)

// Location represents a physical practice location
type Location struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	ExternalID string    `json:"external_id" gorm:"uniqueIndex;size:100"` // id in the upstream practice system
	Name       string    `json:"name" gorm:"not null;size:255"`
	Slug       string    `json:"slug" gorm:"uniqueIndex;not null;size:255"`
	Address    string    `json:"address" gorm:"size:500"`
	City       string    `json:"city" gorm:"size:100"`
	State      string    `json:"state" gorm:"size:50"`
	Zip        string    `json:"zip" gorm:"size:20"`
	Phone      string    `json:"phone" gorm:"size:50"`
	Timezone   string    `json:"timezone" gorm:"size:50;default:'America/Phoenix'"`
	IsActive   bool      `json:"is_active" gorm:"default:true"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// Helper methods
func (l *Location) ToResponse() LocationResponse {
	return LocationResponse{
		ID:         l.ID.String(),
		ExternalID: l.ExternalID,
		Name:       l.Name,
		Slug:       l.Slug,
		Address:    l.Address,
		City:       l.City,
		State:      l.State,
		Zip:        l.Zip,
		Phone:      l.Phone,
		Timezone:   l.Timezone,
		IsActive:   l.IsActive,
		CreatedAt:  l.CreatedAt,
		UpdatedAt:  l.UpdatedAt,
	}
}

// TableName specifies the table name for GORM
func (Location) TableName() string {
	return "locations"
}
