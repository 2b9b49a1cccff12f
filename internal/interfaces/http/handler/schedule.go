package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	scheduleapp "github.com/opsdesk/backend/internal/application/schedule"
)

// ScheduleHandler handles recurring ticket schedule API endpoints
type ScheduleHandler struct {
	BaseHandler
	scheduleService *scheduleapp.ScheduleService
}

// NewScheduleHandler creates a new ScheduleHandler
func NewScheduleHandler(scheduleService *scheduleapp.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleService: scheduleService,
	}
}

// Create godoc
// @ID           createScheduledTicket
// @Summary      Create a scheduled ticket
// @Description  Define a recurring ticket template with a daily, weekly or monthly cadence
// @Tags         schedule
// @Accept       json
// @Produce      json
// @Param        request body scheduleapp.CreateScheduledTicketRequest true "Schedule creation request"
// @Success      201 {object} APIResponse[scheduleapp.ScheduledTicketResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /schedule/tickets [post]
func (h *ScheduleHandler) Create(c *gin.Context) {
	var req scheduleapp.CreateScheduledTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	created, err := h.scheduleService.CreateScheduledTicket(c.Request.Context(), &req, actorID(c))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, created)
}

// GetByID godoc
// @ID           getScheduledTicketById
// @Summary      Get scheduled ticket by ID
// @Tags         schedule
// @Produce      json
// @Param        id path string true "Schedule ID" format(uuid)
// @Success      200 {object} APIResponse[scheduleapp.ScheduledTicketResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /schedule/tickets/{id} [get]
func (h *ScheduleHandler) GetByID(c *gin.Context) {
	scheduleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid schedule ID format")
		return
	}

	found, err := h.scheduleService.GetScheduledTicket(c.Request.Context(), scheduleID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, found)
}

// List godoc
// @ID           listScheduledTickets
// @Summary      List scheduled tickets
// @Tags         schedule
// @Produce      json
// @Param        search query string false "Search term (name, subject)"
// @Param        active query bool false "Only active or inactive schedules"
// @Param        cadence query string false "Cadence" Enums(DAILY, WEEKLY, MONTHLY)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]scheduleapp.ScheduledTicketResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /schedule/tickets [get]
func (h *ScheduleHandler) List(c *gin.Context) {
	var filter scheduleapp.ScheduledTicketListFilter
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

	schedules, total, err := h.scheduleService.ListScheduledTickets(c.Request.Context(), &filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, schedules, total, filter.Page, filter.PageSize)
}

// Update godoc
// @ID           updateScheduledTicket
// @Summary      Update a scheduled ticket
// @Description  Update template fields or cadence; omitted fields are left unchanged
// @Tags         schedule
// @Accept       json
// @Produce      json
// @Param        id path string true "Schedule ID" format(uuid)
// @Param        request body scheduleapp.UpdateScheduledTicketRequest true "Schedule update request"
// @Success      200 {object} APIResponse[scheduleapp.ScheduledTicketResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /schedule/tickets/{id} [put]
func (h *ScheduleHandler) Update(c *gin.Context) {
	scheduleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid schedule ID format")
		return
	}

	var req scheduleapp.UpdateScheduledTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	updated, err := h.scheduleService.UpdateScheduledTicket(c.Request.Context(), scheduleID, &req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, updated)
}

// Enable godoc
// @ID           enableScheduledTicket
// @Summary      Enable a scheduled ticket
// @Tags         schedule
// @Produce      json
// @Param        id path string true "Schedule ID" format(uuid)
// @Success      200 {object} APIResponse[scheduleapp.ScheduledTicketResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /schedule/tickets/{id}/enable [post]
func (h *ScheduleHandler) Enable(c *gin.Context) {
	scheduleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid schedule ID format")
		return
	}

	enabled, err := h.scheduleService.EnableScheduledTicket(c.Request.Context(), scheduleID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, enabled)
}

// Disable godoc
// @ID           disableScheduledTicket
// @Summary      Disable a scheduled ticket
// @Description  Disabled schedules never fire but keep their definition
// @Tags         schedule
// @Produce      json
// @Param        id path string true "Schedule ID" format(uuid)
// @Success      200 {object} APIResponse[scheduleapp.ScheduledTicketResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /schedule/tickets/{id}/disable [post]
func (h *ScheduleHandler) Disable(c *gin.Context) {
	scheduleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid schedule ID format")
		return
	}

	disabled, err := h.scheduleService.DisableScheduledTicket(c.Request.Context(), scheduleID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, disabled)
}

// Run godoc
// @ID           runScheduledTicket
// @Summary      Fire a scheduled ticket now
// @Description  Create the ticket immediately; records the run so the automatic fire in the same minute is suppressed
// @Tags         schedule
// @Produce      json
// @Param        id path string true "Schedule ID" format(uuid)
// @Success      201 {object} APIResponse[ticketapp.TicketResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /schedule/tickets/{id}/run [post]
func (h *ScheduleHandler) Run(c *gin.Context) {
	scheduleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid schedule ID format")
		return
	}

	created, err := h.scheduleService.RunNow(c.Request.Context(), scheduleID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, created)
}

// Delete godoc
// @ID           deleteScheduledTicket
// @Summary      Delete a scheduled ticket
// @Tags         schedule
// @Produce      json
// @Param        id path string true "Schedule ID" format(uuid)
// @Success      204
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /schedule/tickets/{id} [delete]
func (h *ScheduleHandler) Delete(c *gin.Context) {
	scheduleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid schedule ID format")
		return
	}

	if err := h.scheduleService.DeleteScheduledTicket(c.Request.Context(), scheduleID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
