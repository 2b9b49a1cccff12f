package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	documentapp "github.com/opsdesk/backend/internal/application/document"
)

// DocumentHandler handles document cabinet API endpoints
type DocumentHandler struct {
	BaseHandler
	documentService *documentapp.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler
func NewDocumentHandler(documentService *documentapp.DocumentService) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
	}
}

// Upload godoc
// @ID           uploadDocument
// @Summary      Upload a document
// @Description  Store a file in the document cabinet; content goes to object storage
// @Tags         documents
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "File to store"
// @Param        title formData string false "Document title (defaults to the file name)"
// @Param        description formData string false "Description"
// @Param        category_id formData string false "Filing category" format(uuid)
// @Success      201 {object} APIResponse[documentapp.DocumentResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /documents [post]
func (h *DocumentHandler) Upload(c *gin.Context) {
	var req documentapp.UploadDocumentRequest
	if err := c.ShouldBind(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		h.BadRequest(c, "file is required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")

	created, err := h.documentService.UploadDocument(
		c.Request.Context(), &req, header.Filename, contentType, header.Size, file, actorID(c),
	)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, created)
}

// GetByID godoc
// @ID           getDocumentById
// @Summary      Get document by ID
// @Tags         documents
// @Produce      json
// @Param        id path string true "Document ID" format(uuid)
// @Success      200 {object} APIResponse[documentapp.DocumentResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /documents/{id} [get]
func (h *DocumentHandler) GetByID(c *gin.Context) {
	documentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid document ID format")
		return
	}

	doc, err := h.documentService.GetDocument(c.Request.Context(), documentID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, doc)
}

// List godoc
// @ID           listDocuments
// @Summary      List documents
// @Description  Retrieve a paginated list of documents with optional filtering
// @Tags         documents
// @Produce      json
// @Param        search query string false "Search term (title, file name)"
// @Param        category_id query string false "Filter by category" format(uuid)
// @Param        unfiled query bool false "Only documents without a category"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]documentapp.DocumentResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /documents [get]
func (h *DocumentHandler) List(c *gin.Context) {
	var filter documentapp.DocumentListFilter
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

	documents, total, err := h.documentService.ListDocuments(c.Request.Context(), &filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, documents, total, filter.Page, filter.PageSize)
}

// Update godoc
// @ID           updateDocument
// @Summary      Update document metadata
// @Description  Update title, description or filing; the stored file is immutable
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        id path string true "Document ID" format(uuid)
// @Param        request body documentapp.UpdateDocumentRequest true "Document update request"
// @Success      200 {object} APIResponse[documentapp.DocumentResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /documents/{id} [put]
func (h *DocumentHandler) Update(c *gin.Context) {
	documentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid document ID format")
		return
	}

	var req documentapp.UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	updated, err := h.documentService.UpdateDocument(c.Request.Context(), documentID, &req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, updated)
}

// Download godoc
// @ID           downloadDocument
// @Summary      Download a document
// @Description  Stream the document content from object storage
// @Tags         documents
// @Produce      application/octet-stream
// @Param        id path string true "Document ID" format(uuid)
// @Success      200 {file} binary
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /documents/{id}/download [get]
func (h *DocumentHandler) Download(c *gin.Context) {
	documentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid document ID format")
		return
	}

	download, err := h.documentService.DownloadDocument(c.Request.Context(), documentID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	defer download.Body.Close()

	extraHeaders := map[string]string{
		"Content-Disposition": `attachment; filename="` + download.FileName + `"`,
	}
	c.DataFromReader(http.StatusOK, download.SizeBytes, download.ContentType, download.Body, extraHeaders)
}

// Delete godoc
// @ID           deleteDocument
// @Summary      Delete a document
// @Description  Soft delete; the stored bytes are retained
// @Tags         documents
// @Produce      json
// @Param        id path string true "Document ID" format(uuid)
// @Success      204
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /documents/{id} [delete]
func (h *DocumentHandler) Delete(c *gin.Context) {
	documentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid document ID format")
		return
	}

	if err := h.documentService.DeleteDocument(c.Request.Context(), documentID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
