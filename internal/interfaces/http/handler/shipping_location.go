package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/opsdesk/backend/internal/application/partner"
)

// ShippingLocationHandler handles shipping location API endpoints
type ShippingLocationHandler struct {
	BaseHandler
	locationService *partner.ShippingLocationService
}

// NewShippingLocationHandler creates a new ShippingLocationHandler
func NewShippingLocationHandler(locationService *partner.ShippingLocationService) *ShippingLocationHandler {
	return &ShippingLocationHandler{
		locationService: locationService,
	}
}

// Create godoc
// @ID           createShippingLocation
// @Summary      Create a new shipping location
// @Description  Create a delivery address used on purchase orders
// @Tags         partners
// @Accept       json
// @Produce      json
// @Param        request body partner.CreateShippingLocationRequest true "Location creation request"
// @Success      201 {object} APIResponse[partner.ShippingLocationResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /partners/shipping-locations [post]
func (h *ShippingLocationHandler) Create(c *gin.Context) {
	var req partner.CreateShippingLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	location, err := h.locationService.Create(c.Request.Context(), &req, actorID(c))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, location)
}

// GetByID godoc
// @ID           getShippingLocationById
// @Summary      Get shipping location by ID
// @Tags         partners
// @Produce      json
// @Param        id path string true "Location ID" format(uuid)
// @Success      200 {object} APIResponse[partner.ShippingLocationResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /partners/shipping-locations/{id} [get]
func (h *ShippingLocationHandler) GetByID(c *gin.Context) {
	locationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid location ID format")
		return
	}

	location, err := h.locationService.Get(c.Request.Context(), locationID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, location)
}

// List godoc
// @ID           listShippingLocations
// @Summary      List shipping locations
// @Description  Retrieve a paginated list of shipping locations
// @Tags         partners
// @Produce      json
// @Param        search query string false "Search term (name, city)"
// @Param        active query bool false "Only active or inactive locations"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]partner.ShippingLocationResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /partners/shipping-locations [get]
func (h *ShippingLocationHandler) List(c *gin.Context) {
	var filter partner.ShippingLocationListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	// Set defaults
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	locations, total, err := h.locationService.List(c.Request.Context(), &filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, locations, total, filter.Page, filter.PageSize)
}

// Update godoc
// @ID           updateShippingLocation
// @Summary      Update a shipping location
// @Tags         partners
// @Accept       json
// @Produce      json
// @Param        id path string true "Location ID" format(uuid)
// @Param        request body partner.UpdateShippingLocationRequest true "Location update request"
// @Success      200 {object} APIResponse[partner.ShippingLocationResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /partners/shipping-locations/{id} [put]
func (h *ShippingLocationHandler) Update(c *gin.Context) {
	locationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid location ID format")
		return
	}

	var req partner.UpdateShippingLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	location, err := h.locationService.Update(c.Request.Context(), locationID, &req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, location)
}

// SetDefault godoc
// @ID           setDefaultShippingLocation
// @Summary      Set the default shipping location
// @Description  Make this location the default ship-to for new purchase orders
// @Tags         partners
// @Produce      json
// @Param        id path string true "Location ID" format(uuid)
// @Success      200 {object} APIResponse[partner.ShippingLocationResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /partners/shipping-locations/{id}/set-default [post]
func (h *ShippingLocationHandler) SetDefault(c *gin.Context) {
	locationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid location ID format")
		return
	}

	location, err := h.locationService.SetDefault(c.Request.Context(), locationID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, location)
}

// Activate godoc
// @ID           activateShippingLocation
// @Summary      Activate a shipping location
// @Tags         partners
// @Produce      json
// @Param        id path string true "Location ID" format(uuid)
// @Success      200 {object} APIResponse[partner.ShippingLocationResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /partners/shipping-locations/{id}/activate [post]
func (h *ShippingLocationHandler) Activate(c *gin.Context) {
	locationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid location ID format")
		return
	}

	location, err := h.locationService.Activate(c.Request.Context(), locationID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, location)
}

// Deactivate godoc
// @ID           deactivateShippingLocation
// @Summary      Deactivate a shipping location
// @Tags         partners
// @Produce      json
// @Param        id path string true "Location ID" format(uuid)
// @Success      200 {object} APIResponse[partner.ShippingLocationResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /partners/shipping-locations/{id}/deactivate [post]
func (h *ShippingLocationHandler) Deactivate(c *gin.Context) {
	locationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid location ID format")
		return
	}

	location, err := h.locationService.Deactivate(c.Request.Context(), locationID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, location)
}

// Delete godoc
// @ID           deleteShippingLocation
// @Summary      Delete a shipping location
// @Description  Delete a location that is not the default and has no orders
// @Tags         partners
// @Produce      json
// @Param        id path string true "Location ID" format(uuid)
// @Success      204
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /partners/shipping-locations/{id} [delete]
func (h *ShippingLocationHandler) Delete(c *gin.Context) {
	locationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid location ID format")
		return
	}

	if err := h.locationService.Delete(c.Request.Context(), locationID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
