package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/opsdesk/backend/internal/application/partner"
)

// ContactHandler handles external contact API endpoints
type ContactHandler struct {
	BaseHandler
	contactService *partner.ContactService
}

// NewContactHandler creates a new ContactHandler
func NewContactHandler(contactService *partner.ContactService) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
	}
}

// Create godoc
// @ID           createContact
// @Summary      Create a new contact
// @Description  Create an external contact who can request tickets
// @Tags         partners
// @Accept       json
// @Produce      json
// @Param        request body partner.CreateContactRequest true "Contact creation request"
// @Success      201 {object} APIResponse[partner.ContactResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /partners/contacts [post]
func (h *ContactHandler) Create(c *gin.Context) {
	var req partner.CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	contact, err := h.contactService.Create(c.Request.Context(), &req, actorID(c))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, contact)
}

// GetByID godoc
// @ID           getContactById
// @Summary      Get contact by ID
// @Tags         partners
// @Produce      json
// @Param        id path string true "Contact ID" format(uuid)
// @Success      200 {object} APIResponse[partner.ContactResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /partners/contacts/{id} [get]
func (h *ContactHandler) GetByID(c *gin.Context) {
	contactID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid contact ID format")
		return
	}

	contact, err := h.contactService.Get(c.Request.Context(), contactID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, contact)
}

// List godoc
// @ID           listContacts
// @Summary      List contacts
// @Description  Retrieve a paginated list of contacts with optional filtering
// @Tags         partners
// @Produce      json
// @Param        search query string false "Search term (name, email)"
// @Param        organization query string false "Organization name"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]partner.ContactResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /partners/contacts [get]
func (h *ContactHandler) List(c *gin.Context) {
	var filter partner.ContactListFilter
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

	contacts, total, err := h.contactService.List(c.Request.Context(), &filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, contacts, total, filter.Page, filter.PageSize)
}

// Update godoc
// @ID           updateContact
// @Summary      Update a contact
// @Tags         partners
// @Accept       json
// @Produce      json
// @Param        id path string true "Contact ID" format(uuid)
// @Param        request body partner.UpdateContactRequest true "Contact update request"
// @Success      200 {object} APIResponse[partner.ContactResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /partners/contacts/{id} [put]
func (h *ContactHandler) Update(c *gin.Context) {
	contactID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid contact ID format")
		return
	}

	var req partner.UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	contact, err := h.contactService.Update(c.Request.Context(), contactID, &req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, contact)
}

// Delete godoc
// @ID           deleteContact
// @Summary      Delete a contact
// @Tags         partners
// @Produce      json
// @Param        id path string true "Contact ID" format(uuid)
// @Success      204
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /partners/contacts/{id} [delete]
func (h *ContactHandler) Delete(c *gin.Context) {
	contactID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid contact ID format")
		return
	}

	if err := h.contactService.Delete(c.Request.Context(), contactID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
