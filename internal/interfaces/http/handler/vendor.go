package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/opsdesk/backend/internal/application/partner"
)

// VendorHandler handles vendor API endpoints
type VendorHandler struct {
	BaseHandler
	vendorService *partner.VendorService
}

// NewVendorHandler creates a new VendorHandler
func NewVendorHandler(vendorService *partner.VendorService) *VendorHandler {
	return &VendorHandler{
		vendorService: vendorService,
	}
}

// Create godoc
// @ID           createVendor
// @Summary      Create a new vendor
// @Description  Create a vendor for purchase orders
// @Tags         partners
// @Accept       json
// @Produce      json
// @Param        request body partner.CreateVendorRequest true "Vendor creation request"
// @Success      201 {object} APIResponse[partner.VendorResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /partners/vendors [post]
func (h *VendorHandler) Create(c *gin.Context) {
	var req partner.CreateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	vendor, err := h.vendorService.Create(c.Request.Context(), &req, actorID(c))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, vendor)
}

// GetByID godoc
// @ID           getVendorById
// @Summary      Get vendor by ID
// @Tags         partners
// @Produce      json
// @Param        id path string true "Vendor ID" format(uuid)
// @Success      200 {object} APIResponse[partner.VendorResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /partners/vendors/{id} [get]
func (h *VendorHandler) GetByID(c *gin.Context) {
	vendorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid vendor ID format")
		return
	}

	vendor, err := h.vendorService.Get(c.Request.Context(), vendorID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, vendor)
}

// List godoc
// @ID           listVendors
// @Summary      List vendors
// @Description  Retrieve a paginated list of vendors with optional filtering
// @Tags         partners
// @Produce      json
// @Param        search query string false "Search term (name, email)"
// @Param        status query string false "Vendor status" Enums(ACTIVE, INACTIVE)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]partner.VendorResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /partners/vendors [get]
func (h *VendorHandler) List(c *gin.Context) {
	var filter partner.VendorListFilter
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

	vendors, total, err := h.vendorService.List(c.Request.Context(), &filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, vendors, total, filter.Page, filter.PageSize)
}

// Update godoc
// @ID           updateVendor
// @Summary      Update a vendor
// @Description  Update vendor contact and address details
// @Tags         partners
// @Accept       json
// @Produce      json
// @Param        id path string true "Vendor ID" format(uuid)
// @Param        request body partner.UpdateVendorRequest true "Vendor update request"
// @Success      200 {object} APIResponse[partner.VendorResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /partners/vendors/{id} [put]
func (h *VendorHandler) Update(c *gin.Context) {
	vendorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid vendor ID format")
		return
	}

	var req partner.UpdateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	vendor, err := h.vendorService.Update(c.Request.Context(), vendorID, &req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, vendor)
}

// Activate godoc
// @ID           activateVendor
// @Summary      Activate a vendor
// @Tags         partners
// @Produce      json
// @Param        id path string true "Vendor ID" format(uuid)
// @Success      200 {object} APIResponse[partner.VendorResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /partners/vendors/{id}/activate [post]
func (h *VendorHandler) Activate(c *gin.Context) {
	vendorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid vendor ID format")
		return
	}

	vendor, err := h.vendorService.Activate(c.Request.Context(), vendorID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, vendor)
}

// Deactivate godoc
// @ID           deactivateVendor
// @Summary      Deactivate a vendor
// @Description  Hide the vendor from new purchase orders
// @Tags         partners
// @Produce      json
// @Param        id path string true "Vendor ID" format(uuid)
// @Success      200 {object} APIResponse[partner.VendorResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /partners/vendors/{id}/deactivate [post]
func (h *VendorHandler) Deactivate(c *gin.Context) {
	vendorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid vendor ID format")
		return
	}

	vendor, err := h.vendorService.Deactivate(c.Request.Context(), vendorID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, vendor)
}

// Delete godoc
// @ID           deleteVendor
// @Summary      Delete a vendor
// @Description  Delete a vendor that has no purchase orders
// @Tags         partners
// @Produce      json
// @Param        id path string true "Vendor ID" format(uuid)
// @Success      204
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /partners/vendors/{id} [delete]
func (h *VendorHandler) Delete(c *gin.Context) {
	vendorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid vendor ID format")
		return
	}

	if err := h.vendorService.Delete(c.Request.Context(), vendorID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
