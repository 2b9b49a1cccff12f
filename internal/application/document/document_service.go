package document

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/opsdesk/backend/internal/domain/document"
	"github.com/opsdesk/backend/internal/domain/shared"
)

// allowedDocumentTypes is the whitelist of upload content types
var allowedDocumentTypes = map[string]bool{
	// Images
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
	// Documents
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":         true,
	"application/vnd.ms-powerpoint":                                             true,
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": true,
	// Text
	"text/plain": true,
	"text/csv":   true,
}

// ObjectStorage stores document bytes outside the database
type ObjectStorage interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// DocumentService manages the document cabinet
type DocumentService struct {
	documentRepo   document.DocumentRepository
	categoryRepo   document.CategoryRepository
	storage        ObjectStorage
	eventPublisher shared.EventPublisher
}

// NewDocumentService creates a new document service
func NewDocumentService(documentRepo document.DocumentRepository, categoryRepo document.CategoryRepository, storage ObjectStorage) *DocumentService {
	return &DocumentService{
		documentRepo: documentRepo,
		categoryRepo: categoryRepo,
		storage:      storage,
	}
}

// SetEventPublisher sets the event publisher for domain events
func (s *DocumentService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// UploadDocument stores an uploaded file and creates its record.
// An empty title falls back to the file name.
func (s *DocumentService) UploadDocument(ctx context.Context, req *UploadDocumentRequest, fileName, contentType string, sizeBytes int64, body io.Reader, uploadedBy *uuid.UUID) (*DocumentResponse, error) {
	if !allowedDocumentTypes[contentType] {
		return nil, shared.NewDomainError("UNSUPPORTED_FILE_TYPE", fmt.Sprintf("Content type %s is not allowed", contentType))
	}

	fileName = path.Base(strings.TrimSpace(fileName))

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = fileName
	}

	if req.CategoryID != nil {
		if err := s.checkCategory(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
	}

	key := documentStorageKey(fileName)

	doc, err := document.NewDocument(title, fileName, contentType, sizeBytes, key)
	if err != nil {
		return nil, err
	}

	if req.Description != "" {
		if err := doc.Update(title, req.Description); err != nil {
			return nil, err
		}
	}
	if req.CategoryID != nil {
		doc.SetCategory(req.CategoryID)
	}
	if uploadedBy != nil {
		doc.SetCreatedBy(*uploadedBy)
	}

	if err := s.storage.Put(ctx, key, contentType, body, sizeBytes); err != nil {
		return nil, fmt.Errorf("failed to store document: %w", err)
	}

	if err := s.documentRepo.Save(ctx, doc); err != nil {
		// The record was not saved, drop the stored bytes
		_ = s.storage.Delete(ctx, key)
		return nil, err
	}

	doc.ClearDomainEvents()

	return ToDocumentResponse(doc), nil
}

// GetDocument retrieves a document by ID
func (s *DocumentService) GetDocument(ctx context.Context, documentID uuid.UUID) (*DocumentResponse, error) {
	doc, err := s.documentRepo.FindByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	return ToDocumentResponse(doc), nil
}

// ListDocuments lists documents with filters and pagination
func (s *DocumentService) ListDocuments(ctx context.Context, filter *DocumentListFilter) ([]*DocumentResponse, int64, error) {
	domainFilter := buildDocumentFilter(filter)

	var docs []document.Document
	var err error
	if filter.Unfiled != nil && *filter.Unfiled {
		docs, err = s.documentRepo.FindUnfiled(ctx, domainFilter)
	} else {
		docs, err = s.documentRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.documentRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToDocumentResponses(docs), total, nil
}

// UpdateDocument updates a document's metadata
func (s *DocumentService) UpdateDocument(ctx context.Context, documentID uuid.UUID, req *UpdateDocumentRequest) (*DocumentResponse, error) {
	doc, err := s.documentRepo.FindByID(ctx, documentID)
	if err != nil {
		return nil, err
	}

	title := doc.Title
	if req.Title != nil {
		title = *req.Title
	}
	description := doc.Description
	if req.Description != nil {
		description = *req.Description
	}

	if req.Title != nil || req.Description != nil {
		if err := doc.Update(title, description); err != nil {
			return nil, err
		}
	}

	if req.Unfile {
		doc.SetCategory(nil)
	} else if req.CategoryID != nil {
		if err := s.checkCategory(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
		doc.SetCategory(req.CategoryID)
	}

	if err := s.documentRepo.Save(ctx, doc); err != nil {
		return nil, err
	}

	doc.ClearDomainEvents()

	return ToDocumentResponse(doc), nil
}

// DownloadDocument opens a document's content stream
func (s *DocumentService) DownloadDocument(ctx context.Context, documentID uuid.UUID) (*DocumentDownload, error) {
	doc, err := s.documentRepo.FindByID(ctx, documentID)
	if err != nil {
		return nil, err
	}

	body, err := s.storage.Get(ctx, doc.StorageKey)
	if err != nil {
		return nil, fmt.Errorf("failed to open document: %w", err)
	}

	return &DocumentDownload{
		FileName:    doc.FileName,
		ContentType: doc.ContentType,
		SizeBytes:   doc.SizeBytes,
		Body:        body,
	}, nil
}

// DeleteDocument soft deletes a document record.
// The stored bytes are kept so the record can be restored.
func (s *DocumentService) DeleteDocument(ctx context.Context, documentID uuid.UUID) error {
	doc, err := s.documentRepo.FindByID(ctx, documentID)
	if err != nil {
		return err
	}

	if err := s.documentRepo.Delete(ctx, documentID); err != nil {
		return err
	}

	if s.eventPublisher != nil {
		event := document.NewDocumentDeletedEvent(doc)
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			// Log error but don't fail the operation
		}
	}

	return nil
}

func (s *DocumentService) checkCategory(ctx context.Context, categoryID uuid.UUID) error {
	if _, err := s.categoryRepo.FindByID(ctx, categoryID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("INVALID_CATEGORY", "Category not found")
		}
		return err
	}
	return nil
}

// documentStorageKey namespaces each upload so file names never collide
func documentStorageKey(fileName string) string {
	return fmt.Sprintf("documents/%s/%s", uuid.New(), fileName)
}

func buildDocumentFilter(filter *DocumentListFilter) shared.Filter {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	orderBy := filter.OrderBy
	if orderBy == "" {
		orderBy = "created_at"
	}
	orderDir := filter.OrderDir
	if orderDir == "" {
		orderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     page,
		PageSize: pageSize,
		OrderBy:  orderBy,
		OrderDir: orderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}

	if filter.CategoryID != nil {
		domainFilter.Filters["category_id"] = *filter.CategoryID
	}
	if filter.ContentType != "" {
		domainFilter.Filters["content_type"] = filter.ContentType
	}
	if filter.Unfiled != nil && *filter.Unfiled {
		domainFilter.Filters["unfiled"] = true
	}

	return domainFilter
}
