package costs

type CreateCostEntryRequest struct {
	LocationID string  `json:"location_id" binding:"required,min=1,max=100"`
	Category   string  `json:"category" binding:"omitempty,max=100"`
	Amount     float64 `json:"amount" binding:"required,min=0"`
	Notes      string  `json:"notes" binding:"omitempty,max=500"`
	IncurredAt string  `json:"incurred_at" binding:"required,datetime=2006-01-02"`
}

type UpdateCostEntryRequest struct {
	LocationID *string  `json:"location_id" binding:"omitempty,min=1,max=100"`
	Category   *string  `json:"category" binding:"omitempty,max=100"`
	Amount     *float64 `json:"amount" binding:"omitempty,min=0"`
	Notes      *string  `json:"notes" binding:"omitempty,max=500"`
	IncurredAt *string  `json:"incurred_at" binding:"omitempty,datetime=2006-01-02"`
}

type CostListQuery struct {
	LocationID string `form:"location_id" binding:"omitempty,max=100"`
	Category   string `form:"category" binding:"omitempty,max=100"`
	StartDate  string `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate    string `form:"end_date" binding:"omitempty,datetime=2006-01-02"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	Limit      int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

type SpendSummaryQuery struct {
	StartDate string `form:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate   string `form:"end_date" binding:"required,datetime=2006-01-02"`
}
