package costs

import "time"

type CostEntryResponse struct {
	ID         string    `json:"id"`
	LocationID string    `json:"location_id"`
	Category   string    `json:"category,omitempty"`
	Amount     float64   `json:"amount"`
	Notes      string    `json:"notes,omitempty"`
	IncurredAt time.Time `json:"incurred_at"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type PaginatedCostEntries struct {
	Entries    []CostEntryResponse `json:"entries"`
	TotalCount int64               `json:"total_count"`
	Page       int                 `json:"page"`
	Limit      int                 `json:"limit"`
	TotalPages int                 `json:"total_pages"`
}

type LocationSpend struct {
	LocationID string  `json:"location_id"`
	Total      float64 `json:"total"`
	EntryCount int     `json:"entry_count"`
}

type SpendSummaryResponse struct {
	StartDate  string          `json:"start_date"`
	EndDate    string          `json:"end_date"`
	TotalSpend float64         `json:"total_spend"`
	Locations  []LocationSpend `json:"locations"`
}
