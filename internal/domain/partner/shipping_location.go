package partner

import (
	"strings"
	"time"

	"github.com/opsdesk/backend/internal/domain/shared"
	"github.com/opsdesk/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// maxTaxRate is an upper bound on plausible sales tax rates (25%)
var maxTaxRate = decimal.NewFromFloat(0.25)

// ShippingLocation represents a destination goods can be shipped to
// Each location carries the sales tax rate applied to orders shipped there
type ShippingLocation struct {
	shared.AuditedAggregateRoot
	Name      string              `gorm:"type:varchar(200);not null;uniqueIndex:idx_shipping_location_name"`
	Address   valueobject.Address `gorm:"type:jsonb"`
	TaxRate   decimal.Decimal     `gorm:"type:decimal(6,5);not null;default:0"` // Fraction, e.g. 0.0825 for 8.25%
	IsDefault bool                `gorm:"not null;default:false"`
	Active    bool                `gorm:"not null;default:true"`
	Notes     string              `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ShippingLocation) TableName() string {
	return "shipping_locations"
}

// NewShippingLocation creates a new shipping location
func NewShippingLocation(name string, taxRate decimal.Decimal) (*ShippingLocation, error) {
	if err := validateLocationName(name); err != nil {
		return nil, err
	}
	if err := validateTaxRate(taxRate); err != nil {
		return nil, err
	}

	location := &ShippingLocation{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(),
		Name:                 strings.TrimSpace(name),
		TaxRate:              taxRate,
		Active:               true,
	}

	location.AddDomainEvent(NewShippingLocationCreatedEvent(location))

	return location, nil
}

// Update updates the location's basic information
func (l *ShippingLocation) Update(name, notes string) error {
	if err := validateLocationName(name); err != nil {
		return err
	}

	l.Name = strings.TrimSpace(name)
	l.Notes = notes
	l.UpdatedAt = time.Now()
	l.IncrementVersion()

	l.AddDomainEvent(NewShippingLocationUpdatedEvent(l))

	return nil
}

// SetAddress sets the location's address
func (l *ShippingLocation) SetAddress(address valueobject.Address) {
	l.Address = address
	l.UpdatedAt = time.Now()
	l.IncrementVersion()
}

// SetTaxRate changes the sales tax rate for orders shipped to this location
// Finalized orders keep the rate that was in effect when they were locked
func (l *ShippingLocation) SetTaxRate(rate decimal.Decimal) error {
	if err := validateTaxRate(rate); err != nil {
		return err
	}

	oldRate := l.TaxRate
	l.TaxRate = rate
	l.UpdatedAt = time.Now()
	l.IncrementVersion()

	l.AddDomainEvent(NewShippingLocationTaxRateChangedEvent(l, oldRate, rate))

	return nil
}

// MarkDefault marks this location as the default ship-to
func (l *ShippingLocation) MarkDefault() {
	l.IsDefault = true
	l.UpdatedAt = time.Now()
	l.IncrementVersion()
}

// ClearDefault clears the default flag
func (l *ShippingLocation) ClearDefault() {
	l.IsDefault = false
	l.UpdatedAt = time.Now()
	l.IncrementVersion()
}

// Activate makes the location selectable for new orders
func (l *ShippingLocation) Activate() {
	l.Active = true
	l.UpdatedAt = time.Now()
	l.IncrementVersion()
}

// Deactivate hides the location from new orders without deleting it
func (l *ShippingLocation) Deactivate() {
	l.Active = false
	l.IsDefault = false
	l.UpdatedAt = time.Now()
	l.IncrementVersion()
}

// IsActive returns true if the location can be selected for new orders
func (l *ShippingLocation) IsActive() bool {
	return l.Active
}

// TaxRatePercent returns the tax rate as a percentage, e.g. 8.25 for 0.0825
func (l *ShippingLocation) TaxRatePercent() decimal.Decimal {
	return l.TaxRate.Mul(decimal.NewFromInt(100))
}

func validateLocationName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Location name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Location name cannot exceed 200 characters")
	}
	return nil
}

func validateTaxRate(rate decimal.Decimal) error {
	if rate.IsNegative() {
		return shared.NewDomainError("INVALID_TAX_RATE", "Tax rate cannot be negative")
	}
	if rate.GreaterThan(maxTaxRate) {
		return shared.NewDomainError("INVALID_TAX_RATE", "Tax rate must be a fraction no greater than 0.25")
	}
	return nil
}
