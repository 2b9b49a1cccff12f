package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	assetapp "github.com/opsdesk/backend/internal/application/asset"
)

// AssetHandler handles asset inventory API endpoints
type AssetHandler struct {
	BaseHandler
	assetService *assetapp.AssetService
}

// NewAssetHandler creates a new AssetHandler
func NewAssetHandler(assetService *assetapp.AssetService) *AssetHandler {
	return &AssetHandler{
		assetService: assetService,
	}
}

// Create godoc
// @ID           createAsset
// @Summary      Create a new asset
// @Description  Register a piece of equipment in the inventory
// @Tags         assets
// @Accept       json
// @Produce      json
// @Param        request body assetapp.CreateAssetRequest true "Asset creation request"
// @Success      201 {object} APIResponse[assetapp.AssetResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /assets [post]
func (h *AssetHandler) Create(c *gin.Context) {
	var req assetapp.CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	created, err := h.assetService.CreateAsset(c.Request.Context(), &req, actorID(c))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, created)
}

// GetByID godoc
// @ID           getAssetById
// @Summary      Get asset by ID
// @Tags         assets
// @Produce      json
// @Param        id path string true "Asset ID" format(uuid)
// @Success      200 {object} APIResponse[assetapp.AssetResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /assets/{id} [get]
func (h *AssetHandler) GetByID(c *gin.Context) {
	assetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid asset ID format")
		return
	}

	found, err := h.assetService.GetAsset(c.Request.Context(), assetID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, found)
}

// GetByTag godoc
// @ID           getAssetByTag
// @Summary      Get asset by tag
// @Description  Look up an asset by its printed asset tag
// @Tags         assets
// @Produce      json
// @Param        tag path string true "Asset tag"
// @Success      200 {object} APIResponse[assetapp.AssetResponse]
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /assets/tag/{tag} [get]
func (h *AssetHandler) GetByTag(c *gin.Context) {
	tag := c.Param("tag")
	if tag == "" {
		h.BadRequest(c, "Asset tag is required")
		return
	}

	found, err := h.assetService.GetAssetByTag(c.Request.Context(), tag)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, found)
}

// List godoc
// @ID           listAssets
// @Summary      List assets
// @Description  Retrieve a paginated list of assets with optional filtering
// @Tags         assets
// @Produce      json
// @Param        search query string false "Search term (tag, name, serial number)"
// @Param        status query string false "Asset status" Enums(in_service, retired)
// @Param        category_id query string false "Filter by category" format(uuid)
// @Param        location_id query string false "Filter by location" format(uuid)
// @Param        checked_out query bool false "Only checked out assets"
// @Param        overdue query bool false "Only assets past their due back date"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]assetapp.AssetResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /assets [get]
func (h *AssetHandler) List(c *gin.Context) {
	var filter assetapp.AssetListFilter
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

	assets, total, err := h.assetService.ListAssets(c.Request.Context(), &filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, assets, total, filter.Page, filter.PageSize)
}

// Update godoc
// @ID           updateAsset
// @Summary      Update an asset
// @Description  Update asset identity fields; omitted fields are left unchanged
// @Tags         assets
// @Accept       json
// @Produce      json
// @Param        id path string true "Asset ID" format(uuid)
// @Param        request body assetapp.UpdateAssetRequest true "Asset update request"
// @Success      200 {object} APIResponse[assetapp.AssetResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /assets/{id} [put]
func (h *AssetHandler) Update(c *gin.Context) {
	assetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid asset ID format")
		return
	}

	var req assetapp.UpdateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	updated, err := h.assetService.UpdateAsset(c.Request.Context(), assetID, &req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, updated)
}

// Classify godoc
// @ID           classifyAsset
// @Summary      Classify an asset
// @Description  Replace the asset's category, manufacturer, condition and location references
// @Tags         assets
// @Accept       json
// @Produce      json
// @Param        id path string true "Asset ID" format(uuid)
// @Param        request body assetapp.ClassifyAssetRequest true "Classification request"
// @Success      200 {object} APIResponse[assetapp.AssetResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /assets/{id}/classify [put]
func (h *AssetHandler) Classify(c *gin.Context) {
	assetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid asset ID format")
		return
	}

	var req assetapp.ClassifyAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	updated, err := h.assetService.ClassifyAsset(c.Request.Context(), assetID, &req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, updated)
}

// SetPurchaseInfo godoc
// @ID           setAssetPurchaseInfo
// @Summary      Record purchase details
// @Tags         assets
// @Accept       json
// @Produce      json
// @Param        id path string true "Asset ID" format(uuid)
// @Param        request body assetapp.SetPurchaseInfoRequest true "Purchase info request"
// @Success      200 {object} APIResponse[assetapp.AssetResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /assets/{id}/purchase-info [put]
func (h *AssetHandler) SetPurchaseInfo(c *gin.Context) {
	assetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid asset ID format")
		return
	}

	var req assetapp.SetPurchaseInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	updated, err := h.assetService.SetPurchaseInfo(c.Request.Context(), assetID, &req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, updated)
}

// Checkout godoc
// @ID           checkoutAsset
// @Summary      Check an asset out to a user
// @Description  Assign the asset to a user with an optional due back date; records an audit entry
// @Tags         assets
// @Accept       json
// @Produce      json
// @Param        id path string true "Asset ID" format(uuid)
// @Param        request body assetapp.CheckoutAssetRequest true "Checkout request"
// @Success      200 {object} APIResponse[assetapp.AssetResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /assets/{id}/checkout [post]
func (h *AssetHandler) Checkout(c *gin.Context) {
	assetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid asset ID format")
		return
	}

	var req assetapp.CheckoutAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	updated, err := h.assetService.CheckoutAsset(c.Request.Context(), assetID, &req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, updated)
}

// Checkin godoc
// @ID           checkinAsset
// @Summary      Check an asset back in
// @Description  Clear the checkout assignment; records an audit entry
// @Tags         assets
// @Accept       json
// @Produce      json
// @Param        id path string true "Asset ID" format(uuid)
// @Param        request body assetapp.CheckinAssetRequest false "Checkin request"
// @Success      200 {object} APIResponse[assetapp.AssetResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /assets/{id}/checkin [post]
func (h *AssetHandler) Checkin(c *gin.Context) {
	assetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid asset ID format")
		return
	}

	var req assetapp.CheckinAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	updated, err := h.assetService.CheckinAsset(c.Request.Context(), assetID, &req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, updated)
}

// RecordAudit godoc
// @ID           recordAssetAudit
// @Summary      Record an asset audit
// @Description  Log a physical verification; a differing location moves the asset there
// @Tags         assets
// @Accept       json
// @Produce      json
// @Param        id path string true "Asset ID" format(uuid)
// @Param        request body assetapp.RecordAuditRequest true "Audit request"
// @Success      201 {object} APIResponse[assetapp.AuditResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /assets/{id}/audits [post]
func (h *AssetHandler) RecordAudit(c *gin.Context) {
	assetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid asset ID format")
		return
	}

	var req assetapp.RecordAuditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	audit, err := h.assetService.RecordAudit(c.Request.Context(), assetID, actorID(c), &req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, audit)
}

// ListAudits godoc
// @ID           listAssetAudits
// @Summary      List asset audit history
// @Description  Retrieve the append-only audit trail for an asset, newest first
// @Tags         assets
// @Produce      json
// @Param        id path string true "Asset ID" format(uuid)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]assetapp.AuditResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /assets/{id}/audits [get]
func (h *AssetHandler) ListAudits(c *gin.Context) {
	assetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid asset ID format")
		return
	}

	var filter assetapp.AuditListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	audits, err := h.assetService.ListAudits(c.Request.Context(), assetID, &filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, audits)
}

// Retire godoc
// @ID           retireAsset
// @Summary      Retire an asset
// @Description  Take the asset out of service; retired assets cannot be checked out
// @Tags         assets
// @Produce      json
// @Param        id path string true "Asset ID" format(uuid)
// @Success      200 {object} APIResponse[assetapp.AssetResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /assets/{id}/retire [post]
func (h *AssetHandler) Retire(c *gin.Context) {
	assetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid asset ID format")
		return
	}

	updated, err := h.assetService.RetireAsset(c.Request.Context(), assetID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, updated)
}

// Restore godoc
// @ID           restoreAsset
// @Summary      Restore a retired asset
// @Tags         assets
// @Produce      json
// @Param        id path string true "Asset ID" format(uuid)
// @Success      200 {object} APIResponse[assetapp.AssetResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /assets/{id}/restore [post]
func (h *AssetHandler) Restore(c *gin.Context) {
	assetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid asset ID format")
		return
	}

	updated, err := h.assetService.RestoreAsset(c.Request.Context(), assetID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, updated)
}

// Delete godoc
// @ID           deleteAsset
// @Summary      Delete an asset
// @Description  Soft delete an asset that is not checked out
// @Tags         assets
// @Produce      json
// @Param        id path string true "Asset ID" format(uuid)
// @Success      204
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /assets/{id} [delete]
func (h *AssetHandler) Delete(c *gin.Context) {
	assetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid asset ID format")
		return
	}

	if err := h.assetService.DeleteAsset(c.Request.Context(), assetID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// GetStatusSummary godoc
// @ID           getAssetStatusSummary
// @Summary      Get asset fleet summary
// @Description  Get counts of assets by service status for dashboard
// @Tags         assets
// @Produce      json
// @Success      200 {object} APIResponse[assetapp.AssetStatusSummary]
// @Failure      500 {object} dto.ErrorResponse
// @Router       /assets/stats/summary [get]
func (h *AssetHandler) GetStatusSummary(c *gin.Context) {
	summary, err := h.assetService.StatusSummary(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, summary)
}
