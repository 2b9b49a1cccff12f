package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	ticketapp "github.com/opsdesk/backend/internal/application/ticket"
)

// TicketHandler handles helpdesk ticket API endpoints
type TicketHandler struct {
	BaseHandler
	ticketService *ticketapp.TicketService
}

// NewTicketHandler creates a new TicketHandler
func NewTicketHandler(ticketService *ticketapp.TicketService) *TicketHandler {
	return &TicketHandler{
		ticketService: ticketService,
	}
}

// Create godoc
// @ID           createTicket
// @Summary      Create a new ticket
// @Description  Create a new helpdesk ticket
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Param        request body ticketapp.CreateTicketRequest true "Ticket creation request"
// @Success      201 {object} APIResponse[ticketapp.TicketResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /tickets [post]
func (h *TicketHandler) Create(c *gin.Context) {
	var req ticketapp.CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	created, err := h.ticketService.Create(c.Request.Context(), req, actorID(c))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, created)
}

// GetByID godoc
// @ID           getTicketById
// @Summary      Get ticket by ID
// @Description  Retrieve a ticket with its notes, tasks and attachments
// @Tags         tickets
// @Produce      json
// @Param        id path string true "Ticket ID" format(uuid)
// @Success      200 {object} APIResponse[ticketapp.TicketResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /tickets/{id} [get]
func (h *TicketHandler) GetByID(c *gin.Context) {
	ticketID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid ticket ID format")
		return
	}

	ticket, err := h.ticketService.Get(c.Request.Context(), ticketID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, ticket)
}

// GetByNumber godoc
// @ID           getTicketByNumber
// @Summary      Get ticket by number
// @Description  Retrieve a ticket by its sequential ticket number
// @Tags         tickets
// @Produce      json
// @Param        number path int true "Ticket number"
// @Success      200 {object} APIResponse[ticketapp.TicketResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /tickets/number/{number} [get]
func (h *TicketHandler) GetByNumber(c *gin.Context) {
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil || number <= 0 {
		h.BadRequest(c, "Invalid ticket number")
		return
	}

	ticket, err := h.ticketService.GetByNumber(c.Request.Context(), number)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, ticket)
}

// List godoc
// @ID           listTickets
// @Summary      List tickets
// @Description  Retrieve a paginated list of tickets with optional filtering
// @Tags         tickets
// @Produce      json
// @Param        search query string false "Search term (subject, body)"
// @Param        status query string false "Ticket status" Enums(OPEN, IN_PROGRESS, ON_HOLD, CLOSED)
// @Param        statuses query []string false "Multiple ticket statuses"
// @Param        priority query string false "Priority" Enums(LOW, NORMAL, HIGH, URGENT)
// @Param        source query string false "Ticket source" Enums(MANUAL, EMAIL, RECURRING, INTAKE)
// @Param        assignee_id query string false "Assignee user ID" format(uuid)
// @Param        unassigned query bool false "Only unassigned tickets"
// @Param        project_id query string false "Project ID" format(uuid)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Param        order_by query string false "Order by field" default(created_at)
// @Param        order_dir query string false "Order direction" Enums(asc, desc) default(desc)
// @Success      200 {object} APIResponse[[]ticketapp.TicketListItemResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /tickets [get]
func (h *TicketHandler) List(c *gin.Context) {
	var filter ticketapp.TicketListFilter
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

	tickets, total, err := h.ticketService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, tickets, total, filter.Page, filter.PageSize)
}

// Update godoc
// @ID           updateTicket
// @Summary      Update a ticket
// @Description  Update subject, body or priority of a ticket
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Param        id path string true "Ticket ID" format(uuid)
// @Param        request body ticketapp.UpdateTicketRequest true "Ticket update request"
// @Success      200 {object} APIResponse[ticketapp.TicketResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /tickets/{id} [put]
func (h *TicketHandler) Update(c *gin.Context) {
	ticketID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid ticket ID format")
		return
	}

	var req ticketapp.UpdateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	ticket, err := h.ticketService.Update(c.Request.Context(), ticketID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, ticket)
}

// Delete godoc
// @ID           deleteTicket
// @Summary      Delete a ticket
// @Description  Soft-delete a ticket
// @Tags         tickets
// @Produce      json
// @Param        id path string true "Ticket ID" format(uuid)
// @Success      204
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /tickets/{id} [delete]
func (h *TicketHandler) Delete(c *gin.Context) {
	ticketID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid ticket ID format")
		return
	}

	if err := h.ticketService.Delete(c.Request.Context(), ticketID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// Assign godoc
// @ID           assignTicket
// @Summary      Assign a ticket
// @Description  Assign the ticket to a user, or unassign with a null assignee
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Param        id path string true "Ticket ID" format(uuid)
// @Param        request body ticketapp.AssignTicketRequest true "Assignment request"
// @Success      200 {object} APIResponse[ticketapp.TicketResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /tickets/{id}/assign [post]
func (h *TicketHandler) Assign(c *gin.Context) {
	ticketID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid ticket ID format")
		return
	}

	var req ticketapp.AssignTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	ticket, err := h.ticketService.Assign(c.Request.Context(), ticketID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, ticket)
}

// SetRequester godoc
// @ID           setTicketRequester
// @Summary      Set the ticket requester
// @Description  Link the ticket to an external contact, or clear the link with a null contact
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Param        id path string true "Ticket ID" format(uuid)
// @Param        request body ticketapp.SetRequesterRequest true "Requester request"
// @Success      200 {object} APIResponse[ticketapp.TicketResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /tickets/{id}/requester [post]
func (h *TicketHandler) SetRequester(c *gin.Context) {
	ticketID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid ticket ID format")
		return
	}

	var req ticketapp.SetRequesterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	ticket, err := h.ticketService.SetRequester(c.Request.Context(), ticketID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, ticket)
}

// ChangeStatus godoc
// @ID           changeTicketStatus
// @Summary      Change ticket status
// @Description  Move the ticket between OPEN, IN_PROGRESS, ON_HOLD and CLOSED
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Param        id path string true "Ticket ID" format(uuid)
// @Param        request body ticketapp.ChangeTicketStatusRequest true "Status change request"
// @Success      200 {object} APIResponse[ticketapp.TicketResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /tickets/{id}/status [post]
func (h *TicketHandler) ChangeStatus(c *gin.Context) {
	ticketID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid ticket ID format")
		return
	}

	var req ticketapp.ChangeTicketStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	ticket, err := h.ticketService.ChangeStatus(c.Request.Context(), ticketID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, ticket)
}

// Close godoc
// @ID           closeTicket
// @Summary      Close a ticket
// @Description  Close the ticket and stamp the closing time
// @Tags         tickets
// @Produce      json
// @Param        id path string true "Ticket ID" format(uuid)
// @Success      200 {object} APIResponse[ticketapp.TicketResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /tickets/{id}/close [post]
func (h *TicketHandler) Close(c *gin.Context) {
	ticketID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid ticket ID format")
		return
	}

	ticket, err := h.ticketService.Close(c.Request.Context(), ticketID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, ticket)
}

// Reopen godoc
// @ID           reopenTicket
// @Summary      Reopen a closed ticket
// @Description  Reopen a closed ticket and clear the closing time
// @Tags         tickets
// @Produce      json
// @Param        id path string true "Ticket ID" format(uuid)
// @Success      200 {object} APIResponse[ticketapp.TicketResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /tickets/{id}/reopen [post]
func (h *TicketHandler) Reopen(c *gin.Context) {
	ticketID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid ticket ID format")
		return
	}

	ticket, err := h.ticketService.Reopen(c.Request.Context(), ticketID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, ticket)
}

// Snooze godoc
// @ID           snoozeTicket
// @Summary      Snooze a ticket
// @Description  Put the ticket on hold until the given time
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Param        id path string true "Ticket ID" format(uuid)
// @Param        request body ticketapp.SnoozeTicketRequest true "Snooze request"
// @Success      200 {object} APIResponse[ticketapp.TicketResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /tickets/{id}/snooze [post]
func (h *TicketHandler) Snooze(c *gin.Context) {
	ticketID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid ticket ID format")
		return
	}

	var req ticketapp.SnoozeTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	ticket, err := h.ticketService.Snooze(c.Request.Context(), ticketID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, ticket)
}

// Wake godoc
// @ID           wakeTicket
// @Summary      Wake a snoozed ticket
// @Description  Clear the snooze and reopen the ticket immediately
// @Tags         tickets
// @Produce      json
// @Param        id path string true "Ticket ID" format(uuid)
// @Success      200 {object} APIResponse[ticketapp.TicketResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /tickets/{id}/wake [post]
func (h *TicketHandler) Wake(c *gin.Context) {
	ticketID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid ticket ID format")
		return
	}

	ticket, err := h.ticketService.Wake(c.Request.Context(), ticketID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, ticket)
}

// MoveToProject godoc
// @ID           moveTicketToProject
// @Summary      File the ticket under a project
// @Description  Move the ticket to a project board, or remove it with a null project
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Param        id path string true "Ticket ID" format(uuid)
// @Param        request body ticketapp.MoveTicketToProjectRequest true "Project move request"
// @Success      200 {object} APIResponse[ticketapp.TicketResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /tickets/{id}/merge-project [post]
func (h *TicketHandler) MoveToProject(c *gin.Context) {
	ticketID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid ticket ID format")
		return
	}

	var req ticketapp.MoveTicketToProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	ticket, err := h.ticketService.MoveToProject(c.Request.Context(), ticketID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, ticket)
}

// AddNote godoc
// @ID           addTicketNote
// @Summary      Add a note to a ticket
// @Description  Append a public or private note to the ticket timeline
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Param        id path string true "Ticket ID" format(uuid)
// @Param        request body ticketapp.AddNoteRequest true "Note request"
// @Success      201 {object} APIResponse[ticketapp.NoteResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /tickets/{id}/notes [post]
func (h *TicketHandler) AddNote(c *gin.Context) {
	ticketID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid ticket ID format")
		return
	}

	var req ticketapp.AddNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	note, err := h.ticketService.AddNote(c.Request.Context(), ticketID, actorID(c), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, note)
}

// ListNotes godoc
// @ID           listTicketNotes
// @Summary      List ticket notes
// @Description  List the ticket's notes; private notes only with include_private
// @Tags         tickets
// @Produce      json
// @Param        id path string true "Ticket ID" format(uuid)
// @Param        include_private query bool false "Include private notes" default(false)
// @Success      200 {object} APIResponse[[]ticketapp.NoteResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /tickets/{id}/notes [get]
func (h *TicketHandler) ListNotes(c *gin.Context) {
	ticketID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid ticket ID format")
		return
	}

	includePrivate, _ := strconv.ParseBool(c.DefaultQuery("include_private", "false"))

	notes, err := h.ticketService.ListNotes(c.Request.Context(), ticketID, includePrivate)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, notes)
}

// AddTask godoc
// @ID           addTicketTask
// @Summary      Add a checklist task
// @Description  Append a checklist task to the ticket
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Param        id path string true "Ticket ID" format(uuid)
// @Param        request body ticketapp.AddTaskRequest true "Task request"
// @Success      201 {object} APIResponse[ticketapp.TaskResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /tickets/{id}/tasks [post]
func (h *TicketHandler) AddTask(c *gin.Context) {
	ticketID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid ticket ID format")
		return
	}

	var req ticketapp.AddTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	task, err := h.ticketService.AddTask(c.Request.Context(), ticketID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, task)
}

// UpdateTask godoc
// @ID           updateTicketTask
// @Summary      Update a checklist task
// @Description  Rename a checklist task or toggle its done flag
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Param        id path string true "Ticket ID" format(uuid)
// @Param        task_id path string true "Task ID" format(uuid)
// @Param        request body ticketapp.UpdateTaskRequest true "Task update request"
// @Success      200 {object} APIResponse[ticketapp.TaskResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /tickets/{id}/tasks/{task_id} [put]
func (h *TicketHandler) UpdateTask(c *gin.Context) {
	ticketID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid ticket ID format")
		return
	}

	taskID, err := uuid.Parse(c.Param("task_id"))
	if err != nil {
		h.BadRequest(c, "Invalid task ID format")
		return
	}

	var req ticketapp.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	task, err := h.ticketService.UpdateTask(c.Request.Context(), ticketID, taskID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, task)
}

// RemoveTask godoc
// @ID           removeTicketTask
// @Summary      Remove a checklist task
// @Description  Remove a checklist task from the ticket
// @Tags         tickets
// @Produce      json
// @Param        id path string true "Ticket ID" format(uuid)
// @Param        task_id path string true "Task ID" format(uuid)
// @Success      204
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /tickets/{id}/tasks/{task_id} [delete]
func (h *TicketHandler) RemoveTask(c *gin.Context) {
	ticketID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid ticket ID format")
		return
	}

	taskID, err := uuid.Parse(c.Param("task_id"))
	if err != nil {
		h.BadRequest(c, "Invalid task ID format")
		return
	}

	if err := h.ticketService.RemoveTask(c.Request.Context(), ticketID, taskID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// UploadAttachment godoc
// @ID           uploadTicketAttachment
// @Summary      Upload a ticket attachment
// @Description  Attach a file to the ticket; content is stored in object storage
// @Tags         tickets
// @Accept       multipart/form-data
// @Produce      json
// @Param        id path string true "Ticket ID" format(uuid)
// @Param        file formData file true "File to attach"
// @Success      201 {object} APIResponse[ticketapp.AttachmentResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /tickets/{id}/attachments [post]
func (h *TicketHandler) UploadAttachment(c *gin.Context) {
	ticketID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid ticket ID format")
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		h.BadRequest(c, "file is required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")

	attachment, err := h.ticketService.AddAttachment(
		c.Request.Context(), ticketID, header.Filename, contentType, header.Size, file,
	)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, attachment)
}

// DownloadAttachment godoc
// @ID           downloadTicketAttachment
// @Summary      Download a ticket attachment
// @Description  Stream the attachment content from object storage
// @Tags         tickets
// @Produce      application/octet-stream
// @Param        id path string true "Ticket ID" format(uuid)
// @Param        attachment_id path string true "Attachment ID" format(uuid)
// @Success      200 {file} binary
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /tickets/{id}/attachments/{attachment_id} [get]
func (h *TicketHandler) DownloadAttachment(c *gin.Context) {
	ticketID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid ticket ID format")
		return
	}

	attachmentID, err := uuid.Parse(c.Param("attachment_id"))
	if err != nil {
		h.BadRequest(c, "Invalid attachment ID format")
		return
	}

	download, err := h.ticketService.DownloadAttachment(c.Request.Context(), ticketID, attachmentID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	defer download.Body.Close()

	extraHeaders := map[string]string{
		"Content-Disposition": `attachment; filename="` + download.Attachment.FileName + `"`,
	}
	c.DataFromReader(http.StatusOK, download.Attachment.SizeBytes, download.Attachment.ContentType, download.Body, extraHeaders)
}

// GetStatusSummary godoc
// @ID           getTicketStatusSummary
// @Summary      Get ticket status summary
// @Description  Get count of tickets by status for dashboard
// @Tags         tickets
// @Produce      json
// @Success      200 {object} APIResponse[ticketapp.TicketStatusSummary]
// @Failure      500 {object} dto.ErrorResponse
// @Router       /tickets/stats/summary [get]
func (h *TicketHandler) GetStatusSummary(c *gin.Context) {
	summary, err := h.ticketService.StatusSummary(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, summary)
}
