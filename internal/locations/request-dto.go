package locations

type CreateLocationRequest struct {
	Name       string `json:"name" binding:"required,min=2,max=255"`
	ExternalID string `json:"external_id" binding:"omitempty,max=100"`
	Address    string `json:"address" binding:"omitempty,max=500"`
	City       string `json:"city" binding:"omitempty,max=100"`
	State      string `json:"state" binding:"omitempty,max=50"`
	Zip        string `json:"zip" binding:"omitempty,max=20"`
	Phone      string `json:"phone" binding:"omitempty,max=50"`
	Timezone   string `json:"timezone" binding:"omitempty,max=50"`
}

type UpdateLocationRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=2,max=255"`
	Address  *string `json:"address" binding:"omitempty,max=500"`
	City     *string `json:"city" binding:"omitempty,max=100"`
	State    *string `json:"state" binding:"omitempty,max=50"`
	Zip      *string `json:"zip" binding:"omitempty,max=20"`
	Phone    *string `json:"phone" binding:"omitempty,max=50"`
	Timezone *string `json:"timezone" binding:"omitempty,max=50"`
	IsActive *bool   `json:"is_active"`
}

type LocationListQuery struct {
	Search    string `form:"search" binding:"omitempty,max=100"`
	IsActive  *bool  `form:"is_active"`
	SortBy    string `form:"sort_by" binding:"omitempty,oneof=name city created_at"`
	SortOrder string `form:"sort_order" binding:"omitempty,oneof=asc desc"`
	Page      int    `form:"page" binding:"omitempty,min=1"`
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=100"`
}
