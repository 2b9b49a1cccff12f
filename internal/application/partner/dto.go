package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/opsdesk/backend/internal/domain/partner"
	"github.com/opsdesk/backend/internal/domain/shared/valueobject"
)

// AddressInput carries address fields on create and update requests
type AddressInput struct {
	Street1 string `json:"street1" binding:"max=200"`
	Street2 string `json:"street2" binding:"max=200"`
	City    string `json:"city" binding:"max=100"`
	State   string `json:"state" binding:"max=50"`
	Zip     string `json:"zip" binding:"max=20"`
	Country string `json:"country" binding:"max=100"`
}

// toDomain converts the input to an Address value object
// An input with every field blank maps to the empty address
func (a *AddressInput) toDomain() (valueobject.Address, error) {
	if a == nil {
		return valueobject.EmptyAddress(), nil
	}
	if a.Street1 == "" && a.Street2 == "" && a.City == "" && a.State == "" && a.Zip == "" {
		return valueobject.EmptyAddress(), nil
	}
	return valueobject.NewAddressFull(a.Street1, a.Street2, a.City, a.State, a.Zip, a.Country)
}

// AddressResponse represents an address in API responses
type AddressResponse struct {
	Street1 string `json:"street1"`
	Street2 string `json:"street2,omitempty"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Country string `json:"country,omitempty"`
	Full    string `json:"full"`
}

// toAddressResponse converts an Address value object to a response DTO
// Empty addresses map to nil so they are omitted from the JSON
func toAddressResponse(addr valueobject.Address) *AddressResponse {
	if addr.IsEmpty() {
		return nil
	}
	return &AddressResponse{
		Street1: addr.Street1(),
		Street2: addr.Street2(),
		City:    addr.City(),
		State:   addr.State(),
		Zip:     addr.Zip(),
		Country: addr.Country(),
		Full:    addr.FullAddress(),
	}
}

// CreateVendorRequest represents a request to create a vendor
type CreateVendorRequest struct {
	Name          string        `json:"name" binding:"required,min=1,max=200"`
	AccountNumber string        `json:"account_number" binding:"max=100"`
	Website       string        `json:"website" binding:"max=500"`
	ContactName   string        `json:"contact_name" binding:"max=100"`
	Phone         string        `json:"phone" binding:"max=50"`
	Fax           string        `json:"fax" binding:"max=50"`
	Email         string        `json:"email" binding:"omitempty,email,max=200"`
	OrderEmail    string        `json:"order_email" binding:"omitempty,email,max=200"`
	Address       *AddressInput `json:"address"`
	Notes         string        `json:"notes"`
}

// UpdateVendorRequest represents a request to update a vendor
type UpdateVendorRequest struct {
	Name          *string       `json:"name" binding:"omitempty,min=1,max=200"`
	AccountNumber *string       `json:"account_number" binding:"omitempty,max=100"`
	Website       *string       `json:"website" binding:"omitempty,max=500"`
	ContactName   *string       `json:"contact_name" binding:"omitempty,max=100"`
	Phone         *string       `json:"phone" binding:"omitempty,max=50"`
	Fax           *string       `json:"fax" binding:"omitempty,max=50"`
	Email         *string       `json:"email" binding:"omitempty,max=200"`
	OrderEmail    *string       `json:"order_email" binding:"omitempty,max=200"`
	Address       *AddressInput `json:"address"`
	Notes         *string       `json:"notes"`
}

// VendorListFilter represents filter parameters for vendor listing
type VendorListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
}

// VendorResponse represents a vendor in API responses
type VendorResponse struct {
	ID            uuid.UUID        `json:"id"`
	Name          string           `json:"name"`
	AccountNumber string           `json:"account_number,omitempty"`
	Website       string           `json:"website,omitempty"`
	ContactName   string           `json:"contact_name,omitempty"`
	Phone         string           `json:"phone,omitempty"`
	Fax           string           `json:"fax,omitempty"`
	Email         string           `json:"email,omitempty"`
	OrderEmail    string           `json:"order_email,omitempty"`
	Address       *AddressResponse `json:"address,omitempty"`
	Notes         string           `json:"notes,omitempty"`
	Status        string           `json:"status"`
	CreatedBy     *uuid.UUID       `json:"created_by,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
	Version       int              `json:"version"`
}

// ToVendorResponse converts a domain vendor to a response DTO
func ToVendorResponse(vendor *partner.Vendor) VendorResponse {
	return VendorResponse{
		ID:            vendor.ID,
		Name:          vendor.Name,
		AccountNumber: vendor.AccountNumber,
		Website:       vendor.Website,
		ContactName:   vendor.ContactName,
		Phone:         vendor.Phone,
		Fax:           vendor.Fax,
		Email:         vendor.Email,
		OrderEmail:    vendor.OrderEmail,
		Address:       toAddressResponse(vendor.Address),
		Notes:         vendor.Notes,
		Status:        string(vendor.Status),
		CreatedBy:     vendor.CreatedBy,
		CreatedAt:     vendor.CreatedAt,
		UpdatedAt:     vendor.UpdatedAt,
		Version:       vendor.Version,
	}
}

// ToVendorResponses converts a slice of domain vendors to response DTOs
func ToVendorResponses(vendors []partner.Vendor) []VendorResponse {
	responses := make([]VendorResponse, len(vendors))
	for i := range vendors {
		responses[i] = ToVendorResponse(&vendors[i])
	}
	return responses
}

// UpdateCompanyRequest represents a request to update the company record
// The record is created on first write
type UpdateCompanyRequest struct {
	Name    string        `json:"name" binding:"required,min=1,max=200"`
	Phone   string        `json:"phone" binding:"max=50"`
	Fax     string        `json:"fax" binding:"max=50"`
	Email   string        `json:"email" binding:"omitempty,email,max=200"`
	Website string        `json:"website" binding:"max=500"`
	Address *AddressInput `json:"address"`
}

// CompanyResponse represents the company record in API responses
type CompanyResponse struct {
	ID             uuid.UUID        `json:"id"`
	Name           string           `json:"name"`
	Phone          string           `json:"phone,omitempty"`
	Fax            string           `json:"fax,omitempty"`
	Email          string           `json:"email,omitempty"`
	Website        string           `json:"website,omitempty"`
	Address        *AddressResponse `json:"address,omitempty"`
	LogoStorageKey string           `json:"logo_storage_key,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// ToCompanyResponse converts a domain company to a response DTO
func ToCompanyResponse(company *partner.Company) CompanyResponse {
	return CompanyResponse{
		ID:             company.ID,
		Name:           company.Name,
		Phone:          company.Phone,
		Fax:            company.Fax,
		Email:          company.Email,
		Website:        company.Website,
		Address:        toAddressResponse(company.Address),
		LogoStorageKey: company.LogoStorageKey,
		CreatedAt:      company.CreatedAt,
		UpdatedAt:      company.UpdatedAt,
	}
}

// CreateShippingLocationRequest represents a request to create a shipping location
type CreateShippingLocationRequest struct {
	Name      string          `json:"name" binding:"required,min=1,max=200"`
	TaxRate   decimal.Decimal `json:"tax_rate"`
	Address   *AddressInput   `json:"address"`
	Notes     string          `json:"notes"`
	IsDefault bool            `json:"is_default"`
}

// UpdateShippingLocationRequest represents a request to update a shipping location
type UpdateShippingLocationRequest struct {
	Name    *string          `json:"name" binding:"omitempty,min=1,max=200"`
	TaxRate *decimal.Decimal `json:"tax_rate"`
	Address *AddressInput    `json:"address"`
	Notes   *string          `json:"notes"`
}

// ShippingLocationListFilter represents filter parameters for location listing
type ShippingLocationListFilter struct {
	Search   string `form:"search"`
	Active   *bool  `form:"active"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
}

// ShippingLocationResponse represents a shipping location in API responses
type ShippingLocationResponse struct {
	ID             uuid.UUID        `json:"id"`
	Name           string           `json:"name"`
	TaxRate        decimal.Decimal  `json:"tax_rate"`
	TaxRatePercent decimal.Decimal  `json:"tax_rate_percent"`
	Address        *AddressResponse `json:"address,omitempty"`
	Notes          string           `json:"notes,omitempty"`
	IsDefault      bool             `json:"is_default"`
	Active         bool             `json:"active"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
	Version        int              `json:"version"`
}

// ToShippingLocationResponse converts a domain location to a response DTO
func ToShippingLocationResponse(location *partner.ShippingLocation) ShippingLocationResponse {
	return ShippingLocationResponse{
		ID:             location.ID,
		Name:           location.Name,
		TaxRate:        location.TaxRate,
		TaxRatePercent: location.TaxRatePercent(),
		Address:        toAddressResponse(location.Address),
		Notes:          location.Notes,
		IsDefault:      location.IsDefault,
		Active:         location.Active,
		CreatedAt:      location.CreatedAt,
		UpdatedAt:      location.UpdatedAt,
		Version:        location.Version,
	}
}

// ToShippingLocationResponses converts a slice of domain locations to response DTOs
func ToShippingLocationResponses(locations []partner.ShippingLocation) []ShippingLocationResponse {
	responses := make([]ShippingLocationResponse, len(locations))
	for i := range locations {
		responses[i] = ToShippingLocationResponse(&locations[i])
	}
	return responses
}

// CreateContactRequest represents a request to create a contact
type CreateContactRequest struct {
	Name         string `json:"name" binding:"max=200"`
	Email        string `json:"email" binding:"required,email,max=200"`
	Phone        string `json:"phone" binding:"max=50"`
	Organization string `json:"organization" binding:"max=200"`
	Notes        string `json:"notes"`
}

// UpdateContactRequest represents a request to update a contact
type UpdateContactRequest struct {
	Name         *string `json:"name" binding:"omitempty,max=200"`
	Phone        *string `json:"phone" binding:"omitempty,max=50"`
	Organization *string `json:"organization" binding:"omitempty,max=200"`
	Notes        *string `json:"notes"`
}

// ContactListFilter represents filter parameters for contact listing
type ContactListFilter struct {
	Search       string `form:"search"`
	Organization string `form:"organization"`
	Page         int    `form:"page"`
	PageSize     int    `form:"page_size"`
	OrderBy      string `form:"order_by"`
	OrderDir     string `form:"order_dir"`
}

// ContactResponse represents a contact in API responses
type ContactResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name,omitempty"`
	DisplayName  string    `json:"display_name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	Organization string    `json:"organization,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Version      int       `json:"version"`
}

// ToContactResponse converts a domain contact to a response DTO
func ToContactResponse(contact *partner.Contact) ContactResponse {
	return ContactResponse{
		ID:           contact.ID,
		Name:         contact.Name,
		DisplayName:  contact.DisplayName(),
		Email:        contact.Email,
		Phone:        contact.Phone,
		Organization: contact.Organization,
		Notes:        contact.Notes,
		CreatedAt:    contact.CreatedAt,
		UpdatedAt:    contact.UpdatedAt,
		Version:      contact.Version,
	}
}

// ToContactResponses converts a slice of domain contacts to response DTOs
func ToContactResponses(contacts []partner.Contact) []ContactResponse {
	responses := make([]ContactResponse, len(contacts))
	for i := range contacts {
		responses[i] = ToContactResponse(&contacts[i])
	}
	return responses
}
