package partner

import (
	"strings"
	"time"

	"github.com/opsdesk/backend/internal/domain/shared"
)

// Contact represents an external person we correspond with
// Contacts are created from tickets and from inbound mail senders
type Contact struct {
	shared.AuditedAggregateRoot
	Name         string `gorm:"type:varchar(200)"`
	Email        string `gorm:"type:varchar(200);not null;uniqueIndex:idx_contact_email"` // Stored lowercase
	Phone        string `gorm:"type:varchar(50)"`
	Organization string `gorm:"type:varchar(200)"`
	Notes        string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Contact) TableName() string {
	return "contacts"
}

// NewContact creates a new contact
// The email address is folded to lowercase so lookups are case-insensitive
func NewContact(name, email string) (*Contact, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Contact email cannot be empty")
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Contact name cannot exceed 200 characters")
	}

	contact := &Contact{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(),
		Name:                 strings.TrimSpace(name),
		Email:                email,
	}

	contact.AddDomainEvent(NewContactCreatedEvent(contact))

	return contact, nil
}

// Update updates the contact's information
func (c *Contact) Update(name, phone, organization string) error {
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Contact name cannot exceed 200 characters")
	}
	if phone != "" {
		if err := validatePhone(phone); err != nil {
			return err
		}
	}
	if organization != "" && len(organization) > 200 {
		return shared.NewDomainError("INVALID_ORGANIZATION", "Organization cannot exceed 200 characters")
	}

	c.Name = strings.TrimSpace(name)
	c.Phone = phone
	c.Organization = organization
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// FillName sets the display name if none is recorded yet
// Used when a mail sender supplies a display name for a known address
func (c *Contact) FillName(name string) bool {
	name = strings.TrimSpace(name)
	if c.Name != "" || name == "" || len(name) > 200 {
		return false
	}

	c.Name = name
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return true
}

// SetNotes sets the contact's notes
func (c *Contact) SetNotes(notes string) {
	c.Notes = notes
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// DisplayName returns the contact's name, falling back to the email address
func (c *Contact) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	return c.Email
}
