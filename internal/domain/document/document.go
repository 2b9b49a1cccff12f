package document

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/opsdesk/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// maxDocumentSize caps uploads at 100 MB
const maxDocumentSize = 100 << 20

// Document represents a stored file with organizing metadata
// The file content itself lives in object storage under StorageKey
type Document struct {
	shared.AuditedAggregateRoot
	Title       string     `gorm:"type:varchar(200);not null"`
	Description string     `gorm:"type:text"`
	CategoryID  *uuid.UUID `gorm:"type:uuid;index"`
	FileName    string     `gorm:"type:varchar(255);not null"`
	ContentType string     `gorm:"type:varchar(100)"`
	SizeBytes   int64          `gorm:"not null;default:0"`
	StorageKey  string         `gorm:"type:varchar(500);not null;uniqueIndex:idx_document_storage_key"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for GORM
func (Document) TableName() string {
	return "documents"
}

// NewDocument creates a new document record for an uploaded file
func NewDocument(title, fileName, contentType string, sizeBytes int64, storageKey string) (*Document, error) {
	if err := validateDocumentTitle(title); err != nil {
		return nil, err
	}
	if err := validateFileName(fileName); err != nil {
		return nil, err
	}
	if sizeBytes < 0 {
		return nil, shared.NewDomainError("INVALID_SIZE", "Document size cannot be negative")
	}
	if sizeBytes > maxDocumentSize {
		return nil, shared.NewDomainError("INVALID_SIZE", "Document exceeds the maximum allowed size")
	}
	if strings.TrimSpace(storageKey) == "" {
		return nil, shared.NewDomainError("INVALID_STORAGE_KEY", "Storage key cannot be empty")
	}

	doc := &Document{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(),
		Title:                strings.TrimSpace(title),
		FileName:             fileName,
		ContentType:          contentType,
		SizeBytes:            sizeBytes,
		StorageKey:           storageKey,
	}

	doc.AddDomainEvent(NewDocumentCreatedEvent(doc))

	return doc, nil
}

// Update updates the document's title and description
func (d *Document) Update(title, description string) error {
	if err := validateDocumentTitle(title); err != nil {
		return err
	}

	d.Title = strings.TrimSpace(title)
	d.Description = description
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	d.AddDomainEvent(NewDocumentUpdatedEvent(d))

	return nil
}

// SetCategory files the document under a category, or nil to unfile it
func (d *Document) SetCategory(categoryID *uuid.UUID) {
	d.CategoryID = categoryID
	d.UpdatedAt = time.Now()
	d.IncrementVersion()
}

func validateDocumentTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return shared.NewDomainError("INVALID_TITLE", "Document title cannot be empty")
	}
	if len(title) > 200 {
		return shared.NewDomainError("INVALID_TITLE", "Document title cannot exceed 200 characters")
	}
	return nil
}

func validateFileName(fileName string) error {
	if strings.TrimSpace(fileName) == "" {
		return shared.NewDomainError("INVALID_FILE_NAME", "File name cannot be empty")
	}
	if len(fileName) > 255 {
		return shared.NewDomainError("INVALID_FILE_NAME", "File name cannot exceed 255 characters")
	}
	if strings.ContainsAny(fileName, `/\`) {
		return shared.NewDomainError("INVALID_FILE_NAME", "File name cannot contain path separators")
	}
	return nil
}
