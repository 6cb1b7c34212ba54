package analytics

import (
	"net/http"

	"practipulse/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type Controller struct {
	service   Service
	validator *validator.Validate
}

func NewController(service Service) *Controller {
	return &Controller{
		service:   service,
		validator: validator.New(),
	}
}

func (c *Controller) GetPeriodMetrics(ctx *gin.Context) {
	var req PeriodRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	period, err := req.ToPeriod()
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid period", nil, err.Error())
		return
	}

	report, err := c.service.GetPeriodMetrics(ctx.Request.Context(), period)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to compute period metrics", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Period metrics computed successfully", toPeriodReportResponse(req, report), nil)
}

func (c *Controller) GetLocationBreakdown(ctx *gin.Context) {
	var req PeriodRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	period, err := req.ToPeriod()
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid period", nil, err.Error())
		return
	}

	locations, err := c.service.GetLocationBreakdown(ctx.Request.Context(), period)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to compute location breakdown", nil, err.Error())
		return
	}

	result := BreakdownResponse{Period: echoPeriod(req), Locations: locations}
	response.RespondJSON(ctx, "success", http.StatusOK, "Location breakdown computed successfully", result, nil)
}

func (c *Controller) GetTrends(ctx *gin.Context) {
	var req TrendsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	period, err := req.ToPeriod()
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid period", nil, err.Error())
		return
	}

	granularity := Granularity(req.Granularity)
	if granularity == "" {
		granularity = GranularityMonth
	}

	points, err := c.service.GetTrends(ctx.Request.Context(), period, granularity)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to compute trends", nil, err.Error())
		return
	}

	result := TrendsResponse{Period: echoPeriod(req.PeriodRequest), Granularity: string(granularity), Points: points}
	response.RespondJSON(ctx, "success", http.StatusOK, "Trends computed successfully", result, nil)
}

func (c *Controller) ComparePeriods(ctx *gin.Context) {
	var req CompareRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	periods := make([]PeriodDefinition, 0, len(req.Periods))
	for _, pr := range req.Periods {
		period, err := pr.ToPeriod()
		if err != nil {
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid period", nil, err.Error())
			return
		}
		periods = append(periods, period)
	}

	report, err := c.service.ComparePeriods(ctx.Request.Context(), periods)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to compare periods", nil, err.Error())
		return
	}

	result := ComparisonResponse{Comparison: report.Comparison}
	for i, pr := range report.Periods {
		result.Periods = append(result.Periods, toPeriodReportResponse(req.Periods[i], &pr))
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Periods compared successfully", result, nil)
}
