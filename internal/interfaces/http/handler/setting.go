package handler

import (
	"github.com/gin-gonic/gin"
	settingapp "github.com/opsdesk/backend/internal/application/setting"
)

// SettingHandler handles runtime setting API endpoints
type SettingHandler struct {
	BaseHandler
	settingService *settingapp.SettingService
}

// NewSettingHandler creates a new SettingHandler
func NewSettingHandler(settingService *settingapp.SettingService) *SettingHandler {
	return &SettingHandler{
		settingService: settingService,
	}
}

// List godoc
// @ID           listSettings
// @Summary      List settings
// @Description  List all runtime settings as key/value pairs
// @Tags         settings
// @Produce      json
// @Success      200 {object} APIResponse[[]settingapp.SettingResponse]
// @Failure      500 {object} dto.ErrorResponse
// @Router       /settings [get]
func (h *SettingHandler) List(c *gin.Context) {
	settings, err := h.settingService.ListSettings(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, settings)
}

// Upsert godoc
// @ID           upsertSettings
// @Summary      Upsert settings
// @Description  Create or replace settings in bulk; the reserved poll lock keys are rejected
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        request body settingapp.UpsertSettingsRequest true "Settings upsert request"
// @Success      200 {object} APIResponse[[]settingapp.SettingResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /settings [put]
func (h *SettingHandler) Upsert(c *gin.Context) {
	var req settingapp.UpsertSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	settings, err := h.settingService.UpsertSettings(c.Request.Context(), &req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, settings)
}
