package costs

import (
	"time"

	"github.com/google/uuid"
)

// CostEntry is a manually tracked marketing/acquisition spend entry, keyed to
// a location and the date the spend applies to. When entries exist for a
// period the analytics engine sums them instead of estimating from lead
// volume.
type CostEntry struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	LocationID string    `json:"location_id" gorm:"index;not null;size:100"`
	Category   string    `json:"category" gorm:"size:100"` // e.g. "google-ads", "mailers"
	Amount     float64   `json:"amount" gorm:"not null"`
	Notes      string    `json:"notes" gorm:"size:500"`
	IncurredAt time.Time `json:"incurred_at" gorm:"index;not null"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (CostEntry) TableName() string {
	return "cost_entries"
}

// ToResponse converts the entity to its API shape.
func (e *CostEntry) ToResponse() CostEntryResponse {
	return CostEntryResponse{
		ID:         e.ID.String(),
		LocationID: e.LocationID,
		Category:   e.Category,
		Amount:     e.Amount,
		Notes:      e.Notes,
		IncurredAt: e.IncurredAt,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}
