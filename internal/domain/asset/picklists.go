package asset

import (
	"strings"
	"time"

	"github.com/opsdesk/backend/internal/domain/shared"
)

// Picklist values classify assets. Each list is managed independently
// and assets reference entries by ID. Deactivated entries stay attached
// to existing assets but are hidden from new selections.

// Category is an asset category, such as "Laptop" or "Vehicle"
type Category struct {
	shared.BaseAggregateRoot
	Name      string `gorm:"type:varchar(100);not null;uniqueIndex:idx_asset_category_name"`
	SortOrder int    `gorm:"not null;default:0"`
	Active    bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "asset_categories"
}

// NewCategory creates a new asset category
func NewCategory(name string) (*Category, error) {
	if err := validatePicklistName(name); err != nil {
		return nil, err
	}
	return &Category{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Active:            true,
	}, nil
}

// Rename renames the category
func (c *Category) Rename(name string) error {
	if err := validatePicklistName(name); err != nil {
		return err
	}
	c.Name = strings.TrimSpace(name)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// SetActive shows or hides the category for new assets
func (c *Category) SetActive(active bool) {
	c.Active = active
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// SetSortOrder sets the category's position in pickers
func (c *Category) SetSortOrder(order int) {
	c.SortOrder = order
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// Manufacturer is an asset manufacturer, such as "Dell"
type Manufacturer struct {
	shared.BaseAggregateRoot
	Name      string `gorm:"type:varchar(100);not null;uniqueIndex:idx_asset_manufacturer_name"`
	SortOrder int    `gorm:"not null;default:0"`
	Active    bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Manufacturer) TableName() string {
	return "asset_manufacturers"
}

// NewManufacturer creates a new manufacturer
func NewManufacturer(name string) (*Manufacturer, error) {
	if err := validatePicklistName(name); err != nil {
		return nil, err
	}
	return &Manufacturer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Active:            true,
	}, nil
}

// Rename renames the manufacturer
func (m *Manufacturer) Rename(name string) error {
	if err := validatePicklistName(name); err != nil {
		return err
	}
	m.Name = strings.TrimSpace(name)
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
	return nil
}

// SetActive shows or hides the manufacturer for new assets
func (m *Manufacturer) SetActive(active bool) {
	m.Active = active
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
}

// SetSortOrder sets the manufacturer's position in pickers
func (m *Manufacturer) SetSortOrder(order int) {
	m.SortOrder = order
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
}

// Condition describes an asset's physical state, such as "Good" or "Needs Repair"
type Condition struct {
	shared.BaseAggregateRoot
	Name      string `gorm:"type:varchar(100);not null;uniqueIndex:idx_asset_condition_name"`
	SortOrder int    `gorm:"not null;default:0"`
	Active    bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Condition) TableName() string {
	return "asset_conditions"
}

// NewCondition creates a new condition
func NewCondition(name string) (*Condition, error) {
	if err := validatePicklistName(name); err != nil {
		return nil, err
	}
	return &Condition{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Active:            true,
	}, nil
}

// Rename renames the condition
func (c *Condition) Rename(name string) error {
	if err := validatePicklistName(name); err != nil {
		return err
	}
	c.Name = strings.TrimSpace(name)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// SetActive shows or hides the condition for new assets
func (c *Condition) SetActive(active bool) {
	c.Active = active
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// SetSortOrder sets the condition's position in pickers
func (c *Condition) SetSortOrder(order int) {
	c.SortOrder = order
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// Location is a physical place assets live, such as "Server Room"
type Location struct {
	shared.BaseAggregateRoot
	Name      string `gorm:"type:varchar(100);not null;uniqueIndex:idx_asset_location_name"`
	SortOrder int    `gorm:"not null;default:0"`
	Active    bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Location) TableName() string {
	return "asset_locations"
}

// NewLocation creates a new location
func NewLocation(name string) (*Location, error) {
	if err := validatePicklistName(name); err != nil {
		return nil, err
	}
	return &Location{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Active:            true,
	}, nil
}

// Rename renames the location
func (l *Location) Rename(name string) error {
	if err := validatePicklistName(name); err != nil {
		return err
	}
	l.Name = strings.TrimSpace(name)
	l.UpdatedAt = time.Now()
	l.IncrementVersion()
	return nil
}

// SetActive shows or hides the location for new assets
func (l *Location) SetActive(active bool) {
	l.Active = active
	l.UpdatedAt = time.Now()
	l.IncrementVersion()
}

// SetSortOrder sets the location's position in pickers
func (l *Location) SetSortOrder(order int) {
	l.SortOrder = order
	l.UpdatedAt = time.Now()
	l.IncrementVersion()
}

func validatePicklistName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Name cannot exceed 100 characters")
	}
	return nil
}
