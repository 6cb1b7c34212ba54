package analytics

type PeriodEcho struct {
	Label       string   `json:"label,omitempty"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	LocationIDs []string `json:"location_ids,omitempty"`
}

type PeriodReportResponse struct {
	Period    PeriodEcho        `json:"period"`
	Metrics   PeriodMetrics     `json:"metrics"`
	Locations []LocationMetrics `json:"locations"`
	Insights  Insights          `json:"insights"`
}

type BreakdownResponse struct {
	Period    PeriodEcho        `json:"period"`
	Locations []LocationMetrics `json:"locations"`
}

type TrendsResponse struct {
	Period      PeriodEcho   `json:"period"`
	Granularity string       `json:"granularity"`
	Points      []TrendPoint `json:"points"`
}

type ComparisonResponse struct {
	Periods    []PeriodReportResponse `json:"periods"`
	Comparison Insights               `json:"comparison"`
}

func echoPeriod(req PeriodRequest) PeriodEcho {
	return PeriodEcho{
		Label:       req.Label,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		LocationIDs: req.LocationIDs,
	}
}

func toPeriodReportResponse(req PeriodRequest, report *PeriodReport) PeriodReportResponse {
	return PeriodReportResponse{
		Period:    echoPeriod(req),
		Metrics:   report.Metrics,
		Locations: report.Locations,
		Insights:  report.Insights,
	}
}
