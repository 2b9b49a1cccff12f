package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	assetapp "github.com/opsdesk/backend/internal/application/asset"
)

// AssetPicklistHandler serves the four asset classification picklists
// (categories, manufacturers, conditions, locations) through one handler.
// Each route binds the kind at registration time.
type AssetPicklistHandler struct {
	BaseHandler
	picklistService *assetapp.PicklistService
}

// NewAssetPicklistHandler creates a new AssetPicklistHandler
func NewAssetPicklistHandler(picklistService *assetapp.PicklistService) *AssetPicklistHandler {
	return &AssetPicklistHandler{
		picklistService: picklistService,
	}
}

// Create godoc
// @ID           createAssetPicklistEntry
// @Summary      Create a picklist entry
// @Description  Add an entry to an asset picklist (categories, manufacturers, conditions or locations)
// @Tags         assets
// @Accept       json
// @Produce      json
// @Param        request body assetapp.PicklistEntryRequest true "Picklist entry request"
// @Success      201 {object} APIResponse[assetapp.PicklistEntryResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /assets/categories [post]
func (h *AssetPicklistHandler) Create(kind assetapp.PicklistKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req assetapp.PicklistEntryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BadRequest(c, err.Error())
			return
		}

		entry, err := h.picklistService.CreateEntry(c.Request.Context(), kind, &req)
		if err != nil {
			h.HandleDomainError(c, err)
			return
		}

		h.Created(c, entry)
	}
}

// List godoc
// @ID           listAssetPicklistEntries
// @Summary      List picklist entries
// @Description  List entries of an asset picklist in sort order; inactive entries are included on request
// @Tags         assets
// @Produce      json
// @Param        include_inactive query bool false "Include deactivated entries"
// @Success      200 {object} APIResponse[[]assetapp.PicklistEntryResponse]
// @Failure      500 {object} dto.ErrorResponse
// @Router       /assets/categories [get]
func (h *AssetPicklistHandler) List(kind assetapp.PicklistKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		includeInactive := c.Query("include_inactive") == "true"

		entries, err := h.picklistService.ListEntries(c.Request.Context(), kind, includeInactive)
		if err != nil {
			h.HandleDomainError(c, err)
			return
		}

		h.Success(c, entries)
	}
}

// Update godoc
// @ID           updateAssetPicklistEntry
// @Summary      Update a picklist entry
// @Description  Rename, reorder or (de)activate a picklist entry
// @Tags         assets
// @Accept       json
// @Produce      json
// @Param        id path string true "Entry ID" format(uuid)
// @Param        request body assetapp.UpdatePicklistEntryRequest true "Picklist entry update request"
// @Success      200 {object} APIResponse[assetapp.PicklistEntryResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /assets/categories/{id} [put]
func (h *AssetPicklistHandler) Update(kind assetapp.PicklistKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		entryID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			h.BadRequest(c, "Invalid entry ID format")
			return
		}

		var req assetapp.UpdatePicklistEntryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BadRequest(c, err.Error())
			return
		}

		entry, err := h.picklistService.UpdateEntry(c.Request.Context(), kind, entryID, &req)
		if err != nil {
			h.HandleDomainError(c, err)
			return
		}

		h.Success(c, entry)
	}
}

// Delete godoc
// @ID           deleteAssetPicklistEntry
// @Summary      Delete a picklist entry
// @Description  Delete an entry no asset references
// @Tags         assets
// @Produce      json
// @Param        id path string true "Entry ID" format(uuid)
// @Success      204
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /assets/categories/{id} [delete]
func (h *AssetPicklistHandler) Delete(kind assetapp.PicklistKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		entryID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			h.BadRequest(c, "Invalid entry ID format")
			return
		}

		if err := h.picklistService.DeleteEntry(c.Request.Context(), kind, entryID); err != nil {
			h.HandleDomainError(c, err)
			return
		}

		h.NoContent(c)
	}
}
