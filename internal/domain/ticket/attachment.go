package ticket

import (
	"strings"

	"github.com/google/uuid"
	"github.com/opsdesk/backend/internal/domain/shared"
)

// maxAttachmentSize caps uploads and ingested mail attachments (25 MB)
const maxAttachmentSize = 25 << 20

// TicketAttachment records a file stored against a ticket
// The bytes live in object storage under StorageKey
type TicketAttachment struct {
	shared.BaseEntity
	TicketID    uuid.UUID
	FileName    string
	ContentType string
	SizeBytes   int64
	StorageKey  string
}

// NewAttachment creates an attachment record for an already stored file
func NewAttachment(ticketID uuid.UUID, fileName, contentType string, sizeBytes int64, storageKey string) (*TicketAttachment, error) {
	if ticketID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TICKET", "Ticket ID cannot be empty")
	}
	if err := validateAttachmentFileName(fileName); err != nil {
		return nil, err
	}
	if sizeBytes <= 0 {
		return nil, shared.NewDomainError("INVALID_SIZE", "Attachment size must be positive")
	}
	if sizeBytes > maxAttachmentSize {
		return nil, shared.NewDomainError("FILE_TOO_LARGE", "Attachment cannot exceed 25 MB")
	}
	if strings.TrimSpace(storageKey) == "" {
		return nil, shared.NewDomainError("INVALID_STORAGE_KEY", "Storage key cannot be empty")
	}

	return &TicketAttachment{
		BaseEntity:  shared.NewBaseEntity(),
		TicketID:    ticketID,
		FileName:    fileName,
		ContentType: contentType,
		SizeBytes:   sizeBytes,
		StorageKey:  storageKey,
	}, nil
}

func validateAttachmentFileName(fileName string) error {
	fileName = strings.TrimSpace(fileName)
	if fileName == "" {
		return shared.NewDomainError("INVALID_FILENAME", "File name cannot be empty")
	}
	if len(fileName) > 255 {
		return shared.NewDomainError("INVALID_FILENAME", "File name cannot exceed 255 characters")
	}
	if strings.ContainsAny(fileName, `/\`) {
		return shared.NewDomainError("INVALID_FILENAME", "File name cannot contain path separators")
	}
	return nil
}
