package partner

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/opsdesk/backend/internal/domain/shared"
	"github.com/opsdesk/backend/internal/domain/shared/valueobject"
)

// VendorStatus represents the status of a vendor
type VendorStatus string

const (
	VendorStatusActive   VendorStatus = "active"
	VendorStatusInactive VendorStatus = "inactive"
)

// Vendor represents a supplier we order goods and services from
// It is the aggregate root for vendor-related operations
type Vendor struct {
	shared.AuditedAggregateRoot
	Name          string              `gorm:"type:varchar(200);not null;uniqueIndex:idx_vendor_name"`
	AccountNumber string              `gorm:"type:varchar(100)"` // Our account number with this vendor
	Website       string              `gorm:"type:varchar(500)"`
	ContactName   string              `gorm:"type:varchar(100)"` // Primary contact person
	Phone         string              `gorm:"type:varchar(50);index"`
	Fax           string              `gorm:"type:varchar(50)"`
	Email         string              `gorm:"type:varchar(200);index"`
	OrderEmail    string              `gorm:"type:varchar(200)"` // Where purchase orders are sent
	Address       valueobject.Address `gorm:"type:jsonb"`
	Notes         string              `gorm:"type:text"`
	Status        VendorStatus        `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Vendor) TableName() string {
	return "vendors"
}

// NewVendor creates a new vendor with required fields
func NewVendor(name string) (*Vendor, error) {
	if err := validateVendorName(name); err != nil {
		return nil, err
	}

	vendor := &Vendor{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(),
		Name:                 strings.TrimSpace(name),
		Status:               VendorStatusActive,
	}

	vendor.AddDomainEvent(NewVendorCreatedEvent(vendor))

	return vendor, nil
}

// NewVendorWithCreator creates a new vendor recording who created it
func NewVendorWithCreator(name string, createdBy uuid.UUID) (*Vendor, error) {
	vendor, err := NewVendor(name)
	if err != nil {
		return nil, err
	}
	vendor.SetCreatedBy(createdBy)
	return vendor, nil
}

// Update updates the vendor's basic information
func (v *Vendor) Update(name, accountNumber, website string) error {
	if err := validateVendorName(name); err != nil {
		return err
	}
	if accountNumber != "" && len(accountNumber) > 100 {
		return shared.NewDomainError("INVALID_ACCOUNT_NUMBER", "Account number cannot exceed 100 characters")
	}
	if website != "" && len(website) > 500 {
		return shared.NewDomainError("INVALID_WEBSITE", "Website cannot exceed 500 characters")
	}

	v.Name = strings.TrimSpace(name)
	v.AccountNumber = accountNumber
	v.Website = website
	v.UpdatedAt = time.Now()
	v.IncrementVersion()

	v.AddDomainEvent(NewVendorUpdatedEvent(v))

	return nil
}

// SetContact sets the vendor's contact information
func (v *Vendor) SetContact(contactName, phone, fax, email string) error {
	if contactName != "" && len(contactName) > 100 {
		return shared.NewDomainError("INVALID_CONTACT_NAME", "Contact name cannot exceed 100 characters")
	}
	if phone != "" {
		if err := validatePhone(phone); err != nil {
			return err
		}
	}
	if fax != "" {
		if err := validatePhone(fax); err != nil {
			return err
		}
	}
	if email != "" {
		if err := validateEmail(email); err != nil {
			return err
		}
	}

	v.ContactName = contactName
	v.Phone = phone
	v.Fax = fax
	v.Email = email
	v.UpdatedAt = time.Now()
	v.IncrementVersion()

	return nil
}

// SetOrderEmail sets the address purchase orders are emailed to
func (v *Vendor) SetOrderEmail(email string) error {
	if email != "" {
		if err := validateEmail(email); err != nil {
			return err
		}
	}

	v.OrderEmail = email
	v.UpdatedAt = time.Now()
	v.IncrementVersion()

	return nil
}

// SetAddress sets the vendor's address
func (v *Vendor) SetAddress(address valueobject.Address) {
	v.Address = address
	v.UpdatedAt = time.Now()
	v.IncrementVersion()
}

// SetNotes sets the vendor's notes
func (v *Vendor) SetNotes(notes string) {
	v.Notes = notes
	v.UpdatedAt = time.Now()
	v.IncrementVersion()
}

// Activate activates the vendor
func (v *Vendor) Activate() error {
	if v.Status == VendorStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Vendor is already active")
	}

	oldStatus := v.Status
	v.Status = VendorStatusActive
	v.UpdatedAt = time.Now()
	v.IncrementVersion()

	v.AddDomainEvent(NewVendorStatusChangedEvent(v, oldStatus, VendorStatusActive))

	return nil
}

// Deactivate deactivates the vendor so it no longer appears for new orders
func (v *Vendor) Deactivate() error {
	if v.Status == VendorStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Vendor is already inactive")
	}

	oldStatus := v.Status
	v.Status = VendorStatusInactive
	v.UpdatedAt = time.Now()
	v.IncrementVersion()

	v.AddDomainEvent(NewVendorStatusChangedEvent(v, oldStatus, VendorStatusInactive))

	return nil
}

// IsActive returns true if the vendor is active
func (v *Vendor) IsActive() bool {
	return v.Status == VendorStatusActive
}

// OrderingEmail returns the address purchase orders should be sent to,
// falling back to the general email when no order email is set
func (v *Vendor) OrderingEmail() string {
	if v.OrderEmail != "" {
		return v.OrderEmail
	}
	return v.Email
}

// Validation functions

func validateVendorName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Vendor name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Vendor name cannot exceed 200 characters")
	}
	return nil
}

func validatePhone(phone string) error {
	if len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone number cannot exceed 50 characters")
	}
	// Basic phone validation - allow digits, spaces, hyphens, parentheses, and plus sign
	validPhone := regexp.MustCompile(`^[\d\s\-\(\)\+]+$`)
	if !validPhone.MatchString(phone) {
		return shared.NewDomainError("INVALID_PHONE", "Invalid phone number format")
	}
	return nil
}

func validateEmail(email string) error {
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	// Basic email validation
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}
