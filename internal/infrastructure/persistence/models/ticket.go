package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/opsdesk/backend/internal/domain/shared"
	"github.com/opsdesk/backend/internal/domain/ticket"
	"gorm.io/gorm"
)

// TicketModel is the persistence model for the Ticket aggregate root.
type TicketModel struct {
	AuditedAggregateModel
	Number             int                   `gorm:"not null;uniqueIndex:idx_ticket_number"`
	Subject            string                `gorm:"type:varchar(500);not null"`
	Body               string                `gorm:"type:text"`
	Status             ticket.TicketStatus   `gorm:"type:varchar(20);not null;default:'OPEN';index"`
	Priority           ticket.TicketPriority `gorm:"type:varchar(20);not null;default:'NORMAL'"`
	Source             ticket.TicketSource   `gorm:"type:varchar(20);not null"`
	RequesterContactID *uuid.UUID            `gorm:"type:uuid;index"`
	AssigneeID         *uuid.UUID            `gorm:"type:uuid;index"`
	ProjectID          *uuid.UUID            `gorm:"type:uuid;index"`
	ProjectPosition    int                   `gorm:"not null;default:0"`
	ExternalMessageID  *string               `gorm:"type:varchar(512);uniqueIndex:idx_ticket_external_message_id"`
	SnoozedUntil       *time.Time            `gorm:"index"`
	ClosedAt           *time.Time
	DeletedAt          gorm.DeletedAt          `gorm:"index"`
	Notes              []TicketNoteModel       `gorm:"foreignKey:TicketID;references:ID"`
	Tasks              []TicketTaskModel       `gorm:"foreignKey:TicketID;references:ID"`
	Attachments        []TicketAttachmentModel `gorm:"foreignKey:TicketID;references:ID"`
}

// TableName returns the table name for GORM
func (TicketModel) TableName() string {
	return "tickets"
}

// ToDomain converts the persistence model to a domain Ticket entity.
func (m *TicketModel) ToDomain() *ticket.Ticket {
	t := &ticket.Ticket{
		Number:             m.Number,
		Subject:            m.Subject,
		Body:               m.Body,
		Status:             m.Status,
		Priority:           m.Priority,
		Source:             m.Source,
		RequesterContactID: m.RequesterContactID,
		AssigneeID:         m.AssigneeID,
		ProjectID:          m.ProjectID,
		ProjectPosition:    m.ProjectPosition,
		SnoozedUntil:       m.SnoozedUntil,
		ClosedAt:           m.ClosedAt,
		Notes:              make([]ticket.TicketNote, len(m.Notes)),
		Tasks:              make([]ticket.TicketTask, len(m.Tasks)),
		Attachments:        make([]ticket.TicketAttachment, len(m.Attachments)),
	}
	m.PopulateAuditedAggregateRoot(&t.AuditedAggregateRoot)
	if m.ExternalMessageID != nil {
		t.ExternalMessageID = *m.ExternalMessageID
	}
	for i, note := range m.Notes {
		t.Notes[i] = *note.ToDomain()
	}
	for i, task := range m.Tasks {
		t.Tasks[i] = *task.ToDomain()
	}
	for i, att := range m.Attachments {
		t.Attachments[i] = *att.ToDomain()
	}
	return t
}

// FromDomain populates the persistence model from a domain Ticket entity.
func (m *TicketModel) FromDomain(t *ticket.Ticket) {
	m.FromDomainAuditedAggregateRoot(t.AuditedAggregateRoot)
	m.Number = t.Number
	m.Subject = t.Subject
	m.Body = t.Body
	m.Status = t.Status
	m.Priority = t.Priority
	m.Source = t.Source
	m.RequesterContactID = t.RequesterContactID
	m.AssigneeID = t.AssigneeID
	m.ProjectID = t.ProjectID
	m.ProjectPosition = t.ProjectPosition
	// Empty means unset; stored as NULL so the unique index only applies to
	// tickets that actually came from the mailbox
	if t.ExternalMessageID != "" {
		externalID := t.ExternalMessageID
		m.ExternalMessageID = &externalID
	} else {
		m.ExternalMessageID = nil
	}
	m.SnoozedUntil = t.SnoozedUntil
	m.ClosedAt = t.ClosedAt
	m.Notes = make([]TicketNoteModel, len(t.Notes))
	for i, note := range t.Notes {
		m.Notes[i] = *TicketNoteModelFromDomain(&note)
	}
	m.Tasks = make([]TicketTaskModel, len(t.Tasks))
	for i, task := range t.Tasks {
		m.Tasks[i] = *TicketTaskModelFromDomain(&task)
	}
	m.Attachments = make([]TicketAttachmentModel, len(t.Attachments))
	for i, att := range t.Attachments {
		m.Attachments[i] = *TicketAttachmentModelFromDomain(&att)
	}
}

// TicketModelFromDomain creates a new persistence model from a domain Ticket entity.
func TicketModelFromDomain(t *ticket.Ticket) *TicketModel {
	m := &TicketModel{}
	m.FromDomain(t)
	return m
}

// TicketNoteModel is the persistence model for the TicketNote entity.
type TicketNoteModel struct {
	BaseModel
	TicketID uuid.UUID  `gorm:"type:uuid;not null;index"`
	AuthorID *uuid.UUID `gorm:"type:uuid;index"`
	Body     string     `gorm:"type:text;not null"`
	Private  bool       `gorm:"not null;default:false"`
	System   bool       `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (TicketNoteModel) TableName() string {
	return "ticket_notes"
}

// ToDomain converts the persistence model to a domain TicketNote entity.
func (m *TicketNoteModel) ToDomain() *ticket.TicketNote {
	return &ticket.TicketNote{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		TicketID: m.TicketID,
		AuthorID: m.AuthorID,
		Body:     m.Body,
		Private:  m.Private,
		System:   m.System,
	}
}

// TicketNoteModelFromDomain creates a new persistence model from a domain TicketNote entity.
func TicketNoteModelFromDomain(n *ticket.TicketNote) *TicketNoteModel {
	m := &TicketNoteModel{}
	m.FromDomainBaseEntity(n.BaseEntity)
	m.TicketID = n.TicketID
	m.AuthorID = n.AuthorID
	m.Body = n.Body
	m.Private = n.Private
	m.System = n.System
	return m
}

// TicketTaskModel is the persistence model for the TicketTask entity.
type TicketTaskModel struct {
	BaseModel
	TicketID uuid.UUID `gorm:"type:uuid;not null;index"`
	Label    string    `gorm:"type:varchar(500);not null"`
	Done     bool      `gorm:"not null;default:false"`
	Position int       `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (TicketTaskModel) TableName() string {
	return "ticket_tasks"
}

// ToDomain converts the persistence model to a domain TicketTask entity.
func (m *TicketTaskModel) ToDomain() *ticket.TicketTask {
	return &ticket.TicketTask{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		TicketID: m.TicketID,
		Label:    m.Label,
		Done:     m.Done,
		Position: m.Position,
	}
}

// TicketTaskModelFromDomain creates a new persistence model from a domain TicketTask entity.
func TicketTaskModelFromDomain(task *ticket.TicketTask) *TicketTaskModel {
	m := &TicketTaskModel{}
	m.FromDomainBaseEntity(task.BaseEntity)
	m.TicketID = task.TicketID
	m.Label = task.Label
	m.Done = task.Done
	m.Position = task.Position
	return m
}

// TicketAttachmentModel is the persistence model for the TicketAttachment entity.
type TicketAttachmentModel struct {
	BaseModel
	TicketID    uuid.UUID `gorm:"type:uuid;not null;index"`
	FileName    string    `gorm:"type:varchar(255);not null"`
	ContentType string    `gorm:"type:varchar(100)"`
	SizeBytes   int64     `gorm:"not null;default:0"`
	StorageKey  string    `gorm:"type:varchar(500);not null"`
}

// TableName returns the table name for GORM
func (TicketAttachmentModel) TableName() string {
	return "ticket_attachments"
}

// ToDomain converts the persistence model to a domain TicketAttachment entity.
func (m *TicketAttachmentModel) ToDomain() *ticket.TicketAttachment {
	return &ticket.TicketAttachment{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		TicketID:    m.TicketID,
		FileName:    m.FileName,
		ContentType: m.ContentType,
		SizeBytes:   m.SizeBytes,
		StorageKey:  m.StorageKey,
	}
}

// TicketAttachmentModelFromDomain creates a new persistence model from a domain TicketAttachment entity.
func TicketAttachmentModelFromDomain(a *ticket.TicketAttachment) *TicketAttachmentModel {
	m := &TicketAttachmentModel{}
	m.FromDomainBaseEntity(a.BaseEntity)
	m.TicketID = a.TicketID
	m.FileName = a.FileName
	m.ContentType = a.ContentType
	m.SizeBytes = a.SizeBytes
	m.StorageKey = a.StorageKey
	return m
}
