package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	mailroomapp "github.com/opsdesk/backend/internal/application/mailroom"
)

// MailroomHandler handles mailbox ingestion API endpoints: the poll run log,
// a manual poll trigger, and the sender filter lists.
type MailroomHandler struct {
	BaseHandler
	pollerService *mailroomapp.PollerService
	filterService *mailroomapp.FilterService
}

// NewMailroomHandler creates a new MailroomHandler
func NewMailroomHandler(pollerService *mailroomapp.PollerService, filterService *mailroomapp.FilterService) *MailroomHandler {
	return &MailroomHandler{
		pollerService: pollerService,
		filterService: filterService,
	}
}

// ListRuns godoc
// @ID           listMailroomRuns
// @Summary      List poll runs
// @Description  Retrieve the mailbox poll run log, newest first
// @Tags         mailroom
// @Produce      json
// @Param        status query string false "Run status" Enums(RUNNING, OK, FAILED)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]mailroomapp.PollRunResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /mailroom/runs [get]
func (h *MailroomHandler) ListRuns(c *gin.Context) {
	var filter mailroomapp.PollRunListFilter
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

	runs, total, err := h.pollerService.ListRuns(c.Request.Context(), &filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, runs, total, filter.Page, filter.PageSize)
}

// GetRunEntries godoc
// @ID           getMailroomRunEntries
// @Summary      Get per-message entries of a poll run
// @Tags         mailroom
// @Produce      json
// @Param        id path string true "Run ID" format(uuid)
// @Success      200 {object} APIResponse[[]mailroomapp.PollEntryResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /mailroom/runs/{id}/entries [get]
func (h *MailroomHandler) GetRunEntries(c *gin.Context) {
	runID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid run ID format")
		return
	}

	entries, err := h.pollerService.GetRunEntries(c.Request.Context(), runID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, entries)
}

// TriggerPoll godoc
// @ID           triggerMailroomPoll
// @Summary      Poll the mailbox now
// @Description  Run one mailbox poll immediately; responds 409 while another run holds the poll lock
// @Tags         mailroom
// @Produce      json
// @Success      200 {object} APIResponse[mailroomapp.PollRunResponse]
// @Failure      409 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /mailroom/poll [post]
func (h *MailroomHandler) TriggerPoll(c *gin.Context) {
	run, err := h.pollerService.Poll(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, run)
}

// CreateAllowedDomain godoc
// @ID           createMailroomAllowedDomain
// @Summary      Add an allowed sender domain
// @Description  While any active domain exists, mail from other domains is filtered
// @Tags         mailroom
// @Accept       json
// @Produce      json
// @Param        request body mailroomapp.CreateAllowedDomainRequest true "Allowed domain request"
// @Success      201 {object} APIResponse[mailroomapp.AllowedDomainResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /mailroom/allowed-domains [post]
func (h *MailroomHandler) CreateAllowedDomain(c *gin.Context) {
	var req mailroomapp.CreateAllowedDomainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	created, err := h.filterService.CreateAllowedDomain(c.Request.Context(), &req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, created)
}

// ListAllowedDomains godoc
// @ID           listMailroomAllowedDomains
// @Summary      List allowed sender domains
// @Tags         mailroom
// @Produce      json
// @Success      200 {object} APIResponse[[]mailroomapp.AllowedDomainResponse]
// @Failure      500 {object} dto.ErrorResponse
// @Router       /mailroom/allowed-domains [get]
func (h *MailroomHandler) ListAllowedDomains(c *gin.Context) {
	domains, err := h.filterService.ListAllowedDomains(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, domains)
}

// UpdateAllowedDomain godoc
// @ID           updateMailroomAllowedDomain
// @Summary      Update an allowed sender domain
// @Tags         mailroom
// @Accept       json
// @Produce      json
// @Param        id path string true "Domain ID" format(uuid)
// @Param        request body mailroomapp.UpdateAllowedDomainRequest true "Allowed domain update request"
// @Success      200 {object} APIResponse[mailroomapp.AllowedDomainResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /mailroom/allowed-domains/{id} [put]
func (h *MailroomHandler) UpdateAllowedDomain(c *gin.Context) {
	domainID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid domain ID format")
		return
	}

	var req mailroomapp.UpdateAllowedDomainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	updated, err := h.filterService.UpdateAllowedDomain(c.Request.Context(), domainID, &req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, updated)
}

// DeleteAllowedDomain godoc
// @ID           deleteMailroomAllowedDomain
// @Summary      Remove an allowed sender domain
// @Tags         mailroom
// @Produce      json
// @Param        id path string true "Domain ID" format(uuid)
// @Success      204
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /mailroom/allowed-domains/{id} [delete]
func (h *MailroomHandler) DeleteAllowedDomain(c *gin.Context) {
	domainID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid domain ID format")
		return
	}

	if err := h.filterService.DeleteAllowedDomain(c.Request.Context(), domainID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// CreateDenyFilter godoc
// @ID           createMailroomDenyFilter
// @Summary      Add a deny filter
// @Description  Matching mail is filtered before any ticket is created
// @Tags         mailroom
// @Accept       json
// @Produce      json
// @Param        request body mailroomapp.CreateDenyFilterRequest true "Deny filter request"
// @Success      201 {object} APIResponse[mailroomapp.DenyFilterResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /mailroom/deny-filters [post]
func (h *MailroomHandler) CreateDenyFilter(c *gin.Context) {
	var req mailroomapp.CreateDenyFilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	created, err := h.filterService.CreateDenyFilter(c.Request.Context(), &req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, created)
}

// ListDenyFilters godoc
// @ID           listMailroomDenyFilters
// @Summary      List deny filters
// @Tags         mailroom
// @Produce      json
// @Success      200 {object} APIResponse[[]mailroomapp.DenyFilterResponse]
// @Failure      500 {object} dto.ErrorResponse
// @Router       /mailroom/deny-filters [get]
func (h *MailroomHandler) ListDenyFilters(c *gin.Context) {
	filters, err := h.filterService.ListDenyFilters(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, filters)
}

// UpdateDenyFilter godoc
// @ID           updateMailroomDenyFilter
// @Summary      Update a deny filter
// @Tags         mailroom
// @Accept       json
// @Produce      json
// @Param        id path string true "Filter ID" format(uuid)
// @Param        request body mailroomapp.UpdateDenyFilterRequest true "Deny filter update request"
// @Success      200 {object} APIResponse[mailroomapp.DenyFilterResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /mailroom/deny-filters/{id} [put]
func (h *MailroomHandler) UpdateDenyFilter(c *gin.Context) {
	filterID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid filter ID format")
		return
	}

	var req mailroomapp.UpdateDenyFilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	updated, err := h.filterService.UpdateDenyFilter(c.Request.Context(), filterID, &req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, updated)
}

// DeleteDenyFilter godoc
// @ID           deleteMailroomDenyFilter
// @Summary      Remove a deny filter
// @Tags         mailroom
// @Produce      json
// @Param        id path string true "Filter ID" format(uuid)
// @Success      204
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /mailroom/deny-filters/{id} [delete]
func (h *MailroomHandler) DeleteDenyFilter(c *gin.Context) {
	filterID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid filter ID format")
		return
	}

	if err := h.filterService.DeleteDenyFilter(c.Request.Context(), filterID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
