package costs

import (
	"net/http"

	"practipulse/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

func (c *Controller) CreateEntry(ctx *gin.Context) {
	var req CreateCostEntryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	entry, err := c.service.CreateEntry(ctx.Request.Context(), req)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Failed to create cost entry", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Cost entry created successfully", entry, nil)
}

func (c *Controller) GetEntry(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid cost entry ID", nil, err.Error())
		return
	}

	entry, err := c.service.GetEntryByID(ctx.Request.Context(), id)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if err.Error() == "cost entry not found" {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(ctx, "error", statusCode, "Failed to get cost entry", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Cost entry retrieved successfully", entry, nil)
}

func (c *Controller) GetEntries(ctx *gin.Context) {
	var query CostListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	result, err := c.service.GetAllEntries(ctx.Request.Context(), query)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get cost entries", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Cost entries retrieved successfully", result, nil)
}

func (c *Controller) GetSpendSummary(ctx *gin.Context) {
	var query SpendSummaryQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	summary, err := c.service.GetSpendSummary(ctx.Request.Context(), query.StartDate, query.EndDate)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Failed to get spend summary", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Spend summary retrieved successfully", summary, nil)
}

func (c *Controller) UpdateEntry(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid cost entry ID", nil, err.Error())
		return
	}

	var req UpdateCostEntryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	entry, err := c.service.UpdateEntry(ctx.Request.Context(), id, req)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if err.Error() == "cost entry not found" {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(ctx, "error", statusCode, "Failed to update cost entry", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Cost entry updated successfully", entry, nil)
}

func (c *Controller) DeleteEntry(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid cost entry ID", nil, err.Error())
		return
	}

	if err := c.service.DeleteEntry(ctx.Request.Context(), id); err != nil {
		statusCode := http.StatusInternalServerError
		if err.Error() == "cost entry not found" {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(ctx, "error", statusCode, "Failed to delete cost entry", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Cost entry deleted successfully", nil, nil)
}
