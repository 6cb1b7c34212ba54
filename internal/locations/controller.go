package locations

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

func (c *Controller) CreateLocation(ctx *gin.Context) {
	var req CreateLocationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	location, err := c.service.CreateLocation(ctx.Request.Context(), req)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Failed to create location", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Location created successfully", location, nil)
}

func (c *Controller) GetLocation(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid location ID", nil, err.Error())
		return
	}

	location, err := c.service.GetLocationByID(ctx.Request.Context(), id)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if err.Error() == "location not found" {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(ctx, "error", statusCode, "Failed to get location", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Location retrieved successfully", location, nil)
}

func (c *Controller) GetLocations(ctx *gin.Context) {
	var query LocationListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	result, err := c.service.GetAllLocations(ctx.Request.Context(), query)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get locations", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Locations retrieved successfully", result, nil)
}

func (c *Controller) GetActiveLocations(ctx *gin.Context) {
	locations, err := c.service.GetActiveLocations(ctx.Request.Context())
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get active locations", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Active locations retrieved successfully", locations, nil)
}

func (c *Controller) UpdateLocation(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid location ID", nil, err.Error())
		return
	}

	var req UpdateLocationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	location, err := c.service.UpdateLocation(ctx.Request.Context(), id, req)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if err.Error() == "location not found" {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(ctx, "error", statusCode, "Failed to update location", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Location updated successfully", location, nil)
}

func (c *Controller) DeleteLocation(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid location ID", nil, err.Error())
		return
	}

	if err := c.service.DeleteLocation(ctx.Request.Context(), id); err != nil {
		statusCode := http.StatusInternalServerError
		if err.Error() == "location not found" {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(ctx, "error", statusCode, "Failed to delete location", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Location deleted successfully", nil, nil)
}
