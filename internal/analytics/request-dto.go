package analytics

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

type PeriodRequest struct {
	Label       string   `json:"label" validate:"omitempty,max=100"`
	StartDate   string   `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate     string   `json:"end_date" validate:"required,datetime=2006-01-02"`
	LocationIDs []string `json:"location_ids" validate:"omitempty,max=50,dive,min=1,max=100"`
}

type TrendsRequest struct {
	PeriodRequest
	Granularity string `json:"granularity" validate:"omitempty,oneof=week month"`
}

type CompareRequest struct {
	Periods []PeriodRequest `json:"periods" validate:"required,min=2,max=6,dive"`
}

// ToPeriod converts the request into an engine period. The end date is
// inclusive of the whole day, so the bound is pushed to the last instant
// of that date.
func (r PeriodRequest) ToPeriod() (PeriodDefinition, error) {
	start, err := time.Parse(dateLayout, r.StartDate)
	if err != nil {
		return PeriodDefinition{}, fmt.Errorf("invalid start_date: %w", err)
	}

	end, err := time.Parse(dateLayout, r.EndDate)
	if err != nil {
		return PeriodDefinition{}, fmt.Errorf("invalid end_date: %w", err)
	}

	if end.Before(start) {
		return PeriodDefinition{}, fmt.Errorf("end_date %s is before start_date %s", r.EndDate, r.StartDate)
	}

	return PeriodDefinition{
		Label:       r.Label,
		Start:       start,
		End:         end.Add(24*time.Hour - time.Nanosecond),
		LocationIDs: r.LocationIDs,
	}, nil
}
