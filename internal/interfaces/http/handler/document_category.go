package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	documentapp "github.com/opsdesk/backend/internal/application/document"
)

// DocumentCategoryHandler handles document filing category API endpoints
type DocumentCategoryHandler struct {
	BaseHandler
	categoryService *documentapp.CategoryService
}

// NewDocumentCategoryHandler creates a new DocumentCategoryHandler
func NewDocumentCategoryHandler(categoryService *documentapp.CategoryService) *DocumentCategoryHandler {
	return &DocumentCategoryHandler{
		categoryService: categoryService,
	}
}

// Create godoc
// @ID           createDocumentCategory
// @Summary      Create a document category
// @Description  Add a filing category for documents
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        request body documentapp.CreateCategoryRequest true "Category request"
// @Success      201 {object} APIResponse[documentapp.CategoryResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /documents/categories [post]
func (h *DocumentCategoryHandler) Create(c *gin.Context) {
	var req documentapp.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), &req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, category)
}

// List godoc
// @ID           listDocumentCategories
// @Summary      List document categories
// @Description  List all document filing categories in display order
// @Tags         documents
// @Produce      json
// @Success      200 {object} APIResponse[[]documentapp.CategoryResponse]
// @Failure      500 {object} dto.ErrorResponse
// @Router       /documents/categories [get]
func (h *DocumentCategoryHandler) List(c *gin.Context) {
	categories, err := h.categoryService.ListCategories(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, categories)
}

// GetByID godoc
// @ID           getDocumentCategoryById
// @Summary      Get document category by ID
// @Tags         documents
// @Produce      json
// @Param        id path string true "Category ID" format(uuid)
// @Success      200 {object} APIResponse[documentapp.CategoryResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /documents/categories/{id} [get]
func (h *DocumentCategoryHandler) GetByID(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid category ID format")
		return
	}

	category, err := h.categoryService.GetCategory(c.Request.Context(), categoryID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, category)
}

// Update godoc
// @ID           updateDocumentCategory
// @Summary      Update a document category
// @Description  Rename, redescribe or reorder a document filing category
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        id path string true "Category ID" format(uuid)
// @Param        request body documentapp.UpdateCategoryRequest true "Category update request"
// @Success      200 {object} APIResponse[documentapp.CategoryResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /documents/categories/{id} [put]
func (h *DocumentCategoryHandler) Update(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid category ID format")
		return
	}

	var req documentapp.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	category, err := h.categoryService.UpdateCategory(c.Request.Context(), categoryID, &req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, category)
}

// Delete godoc
// @ID           deleteDocumentCategory
// @Summary      Delete a document category
// @Description  Delete a filing category; documents filed under it become unfiled
// @Tags         documents
// @Produce      json
// @Param        id path string true "Category ID" format(uuid)
// @Success      204
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /documents/categories/{id} [delete]
func (h *DocumentCategoryHandler) Delete(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid category ID format")
		return
	}

	if err := h.categoryService.DeleteCategory(c.Request.Context(), categoryID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
