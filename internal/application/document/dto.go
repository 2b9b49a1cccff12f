package document

import (
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/opsdesk/backend/internal/domain/document"
)

// UploadDocumentRequest carries the form fields of a multipart upload.
// The file part is passed to the service alongside this request.
type UploadDocumentRequest struct {
	Title       string     `form:"title" binding:"omitempty,max=200"`
	Description string     `form:"description" binding:"omitempty,max=5000"`
	CategoryID  *uuid.UUID `form:"category_id"`
}

// UpdateDocumentRequest updates a document's metadata, nil fields are left
// unchanged. Unfile clears the category, CategoryID moves the document.
type UpdateDocumentRequest struct {
	Title       *string    `json:"title" binding:"omitempty,min=1,max=200"`
	Description *string    `json:"description" binding:"omitempty,max=5000"`
	CategoryID  *uuid.UUID `json:"category_id"`
	Unfile      bool       `json:"unfile"`
}

// DocumentListFilter filters the document list
type DocumentListFilter struct {
	Search      string     `form:"search"`
	CategoryID  *uuid.UUID `form:"category_id"`
	Unfiled     *bool      `form:"unfiled"`
	ContentType string     `form:"content_type"`
	Page        int        `form:"page"`
	PageSize    int        `form:"page_size"`
	OrderBy     string     `form:"order_by"`
	OrderDir    string     `form:"order_dir"`
}

// DocumentResponse is the document representation returned to clients
type DocumentResponse struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
	FileName    string     `json:"file_name"`
	ContentType string     `json:"content_type"`
	SizeBytes   int64      `json:"size_bytes"`
	UploadedBy  *uuid.UUID `json:"uploaded_by,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Version     int        `json:"version"`
}

// DocumentDownload is an opened document content stream.
// The caller owns closing Body.
type DocumentDownload struct {
	FileName    string
	ContentType string
	SizeBytes   int64
	Body        io.ReadCloser
}

// CreateCategoryRequest creates a document category
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"omitempty,max=2000"`
	SortOrder   int    `json:"sort_order"`
}

// UpdateCategoryRequest updates a category, nil fields are left unchanged
type UpdateCategoryRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	SortOrder   *int    `json:"sort_order"`
}

// CategoryResponse is the category representation returned to clients
type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	SortOrder   int       `json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToDocumentResponse converts a domain document to a response DTO
func ToDocumentResponse(doc *document.Document) *DocumentResponse {
	return &DocumentResponse{
		ID:          doc.ID,
		Title:       doc.Title,
		Description: doc.Description,
		CategoryID:  doc.CategoryID,
		FileName:    doc.FileName,
		ContentType: doc.ContentType,
		SizeBytes:   doc.SizeBytes,
		UploadedBy:  doc.CreatedBy,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
		Version:     doc.Version,
	}
}

// ToDocumentResponses converts a list of domain documents to response DTOs
func ToDocumentResponses(docs []document.Document) []*DocumentResponse {
	responses := make([]*DocumentResponse, len(docs))
	for i := range docs {
		responses[i] = ToDocumentResponse(&docs[i])
	}
	return responses
}

// ToCategoryResponse converts a domain category to a response DTO
func ToCategoryResponse(category *document.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
		SortOrder:   category.SortOrder,
		CreatedAt:   category.CreatedAt,
		UpdatedAt:   category.UpdatedAt,
	}
}

// ToCategoryResponses converts a list of domain categories to response DTOs
func ToCategoryResponses(categories []document.Category) []*CategoryResponse {
	responses := make([]*CategoryResponse, len(categories))
	for i := range categories {
		responses[i] = ToCategoryResponse(&categories[i])
	}
	return responses
}
