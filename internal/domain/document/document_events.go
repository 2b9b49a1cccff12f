package document

import (
	"github.com/google/uuid"
	"github.com/opsdesk/backend/internal/domain/shared"
)

// Aggregate type constant for Document
const AggregateTypeDocument = "Document"

// Event type constants for Document
const (
	EventTypeDocumentCreated = "DocumentCreated"
	EventTypeDocumentUpdated = "DocumentUpdated"
	EventTypeDocumentDeleted = "DocumentDeleted"
)

// DocumentCreatedEvent is published when a document is uploaded
type DocumentCreatedEvent struct {
	shared.BaseDomainEvent
	DocumentID uuid.UUID `json:"document_id"`
	Title      string    `json:"title"`
	FileName   string    `json:"file_name"`
	SizeBytes  int64     `json:"size_bytes"`
}

// NewDocumentCreatedEvent creates a new DocumentCreatedEvent
func NewDocumentCreatedEvent(doc *Document) *DocumentCreatedEvent {
	return &DocumentCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDocumentCreated, AggregateTypeDocument, doc.ID),
		DocumentID:      doc.ID,
		Title:           doc.Title,
		FileName:        doc.FileName,
		SizeBytes:       doc.SizeBytes,
	}
}

// DocumentUpdatedEvent is published when a document's metadata changes
type DocumentUpdatedEvent struct {
	shared.BaseDomainEvent
	DocumentID uuid.UUID `json:"document_id"`
	Title      string    `json:"title"`
}

// NewDocumentUpdatedEvent creates a new DocumentUpdatedEvent
func NewDocumentUpdatedEvent(doc *Document) *DocumentUpdatedEvent {
	return &DocumentUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDocumentUpdated, AggregateTypeDocument, doc.ID),
		DocumentID:      doc.ID,
		Title:           doc.Title,
	}
}

// DocumentDeletedEvent is published when a document is deleted
// Handlers use it to remove the stored file
type DocumentDeletedEvent struct {
	shared.BaseDomainEvent
	DocumentID uuid.UUID `json:"document_id"`
	StorageKey string    `json:"storage_key"`
}

// NewDocumentDeletedEvent creates a new DocumentDeletedEvent
func NewDocumentDeletedEvent(doc *Document) *DocumentDeletedEvent {
	return &DocumentDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDocumentDeleted, AggregateTypeDocument, doc.ID),
		DocumentID:      doc.ID,
		StorageKey:      doc.StorageKey,
	}
}
