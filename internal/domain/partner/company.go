package partner

import (
	"strings"
	"time"

	"github.com/opsdesk/backend/internal/domain/shared"
	"github.com/opsdesk/backend/internal/domain/shared/valueobject"
)

// Company represents our own organization
// Its name and billing address are printed on purchase orders
type Company struct {
	shared.AuditedAggregateRoot
	Name           string              `gorm:"type:varchar(200);not null"`
	Phone          string              `gorm:"type:varchar(50)"`
	Fax            string              `gorm:"type:varchar(50)"`
	Email          string              `gorm:"type:varchar(200)"`
	Website        string              `gorm:"type:varchar(500)"`
	Address        valueobject.Address `gorm:"type:jsonb"`       // Billing address
	LogoStorageKey string              `gorm:"type:varchar(500)"` // Object storage key for the PO header logo
}

// TableName returns the table name for GORM
func (Company) TableName() string {
	return "companies"
}

// NewCompany creates a new company record
func NewCompany(name string) (*Company, error) {
	if err := validateCompanyName(name); err != nil {
		return nil, err
	}

	company := &Company{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(),
		Name:                 strings.TrimSpace(name),
	}

	company.AddDomainEvent(NewCompanyCreatedEvent(company))

	return company, nil
}

// Update updates the company's information
func (c *Company) Update(name, phone, fax, email, website string) error {
	if err := validateCompanyName(name); err != nil {
		return err
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
	if website != "" && len(website) > 500 {
		return shared.NewDomainError("INVALID_WEBSITE", "Website cannot exceed 500 characters")
	}

	c.Name = strings.TrimSpace(name)
	c.Phone = phone
	c.Fax = fax
	c.Email = email
	c.Website = website
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCompanyUpdatedEvent(c))

	return nil
}

// SetAddress sets the company's billing address
func (c *Company) SetAddress(address valueobject.Address) {
	c.Address = address
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// SetLogo points the company at an uploaded logo, or clears it when empty
func (c *Company) SetLogo(storageKey string) {
	c.LogoStorageKey = storageKey
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

func validateCompanyName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Company name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Company name cannot exceed 200 characters")
	}
	return nil
}
