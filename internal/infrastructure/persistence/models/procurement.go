package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/opsdesk/backend/internal/domain/procurement"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PurchaseOrderModel is the persistence model for the PurchaseOrder aggregate root.
type PurchaseOrderModel struct {
	AuditedAggregateModel
	PONumber           *string                         `gorm:"type:varchar(20);uniqueIndex:idx_purchase_order_number"`
	VendorID           *uuid.UUID                      `gorm:"type:uuid;index"`
	VendorName         string                          `gorm:"type:varchar(200)"`
	VendorAddress      string                          `gorm:"type:text"`
	CompanyID          *uuid.UUID                      `gorm:"type:uuid"`
	CompanyName        string                          `gorm:"type:varchar(200)"`
	CompanyAddress     string                          `gorm:"type:text"`
	ShippingLocationID *uuid.UUID                      `gorm:"type:uuid"`
	ShipToName         string                          `gorm:"type:varchar(200)"`
	ShipToAddress      string                          `gorm:"type:text"`
	TaxRate            decimal.Decimal                 `gorm:"type:decimal(8,6);not null;default:0"`
	QuoteNumber        string                          `gorm:"type:varchar(100)"`
	Notes              string                          `gorm:"type:text"`
	ShippingCost       decimal.Decimal                 `gorm:"type:decimal(18,4);not null;default:0"`
	Subtotal           decimal.Decimal                 `gorm:"type:decimal(18,4);not null;default:0"`
	TaxAmount          decimal.Decimal                 `gorm:"type:decimal(18,4);not null;default:0"`
	GrandTotal         decimal.Decimal                 `gorm:"type:decimal(18,4);not null;default:0"`
	Status             procurement.PurchaseOrderStatus `gorm:"type:varchar(20);not null;default:'DRAFT';index"`
	FinalizedAt        *time.Time                      `gorm:"index"`
	CompletedAt        *time.Time
	CancelledAt        *time.Time
	CancelReason       string             `gorm:"type:varchar(500)"`
	DocumentStorageKey string             `gorm:"type:varchar(500)"`
	DeletedAt          gorm.DeletedAt     `gorm:"index"`
	Items              []PlannedItemModel `gorm:"foreignKey:PurchaseOrderID;references:ID"`
}

// TableName returns the table name for GORM
func (PurchaseOrderModel) TableName() string {
	return "purchase_orders"
}

// ToDomain converts the persistence model to a domain PurchaseOrder entity.
func (m *PurchaseOrderModel) ToDomain() *procurement.PurchaseOrder {
	order := &procurement.PurchaseOrder{
		VendorID:           m.VendorID,
		VendorName:         m.VendorName,
		VendorAddress:      m.VendorAddress,
		CompanyID:          m.CompanyID,
		CompanyName:        m.CompanyName,
		CompanyAddress:     m.CompanyAddress,
		ShippingLocationID: m.ShippingLocationID,
		ShipToName:         m.ShipToName,
		ShipToAddress:      m.ShipToAddress,
		TaxRate:            m.TaxRate,
		QuoteNumber:        m.QuoteNumber,
		Notes:              m.Notes,
		ShippingCost:       m.ShippingCost,
		Subtotal:           m.Subtotal,
		TaxAmount:          m.TaxAmount,
		GrandTotal:         m.GrandTotal,
		Status:             m.Status,
		FinalizedAt:        m.FinalizedAt,
		CompletedAt:        m.CompletedAt,
		CancelledAt:        m.CancelledAt,
		CancelReason:       m.CancelReason,
		DocumentStorageKey: m.DocumentStorageKey,
		Items:              make([]procurement.PlannedItem, len(m.Items)),
	}
	m.PopulateAuditedAggregateRoot(&order.AuditedAggregateRoot)
	if m.PONumber != nil {
		order.PONumber = *m.PONumber
	}
	for i, item := range m.Items {
		order.Items[i] = *item.ToDomain()
	}
	return order
}

// FromDomain populates the persistence model from a domain PurchaseOrder entity.
func (m *PurchaseOrderModel) FromDomain(o *procurement.PurchaseOrder) {
	m.FromDomainAuditedAggregateRoot(o.AuditedAggregateRoot)
	// Unassigned numbers stay NULL so the unique index only covers finalized
	// orders
	if o.PONumber != "" {
		poNumber := o.PONumber
		m.PONumber = &poNumber
	} else {
		m.PONumber = nil
	}
	m.VendorID = o.VendorID
	m.VendorName = o.VendorName
	m.VendorAddress = o.VendorAddress
	m.CompanyID = o.CompanyID
	m.CompanyName = o.CompanyName
	m.CompanyAddress = o.CompanyAddress
	m.ShippingLocationID = o.ShippingLocationID
	m.ShipToName = o.ShipToName
	m.ShipToAddress = o.ShipToAddress
	m.TaxRate = o.TaxRate
	m.QuoteNumber = o.QuoteNumber
	m.Notes = o.Notes
	m.ShippingCost = o.ShippingCost
	m.Subtotal = o.Subtotal
	m.TaxAmount = o.TaxAmount
	m.GrandTotal = o.GrandTotal
	m.Status = o.Status
	m.FinalizedAt = o.FinalizedAt
	m.CompletedAt = o.CompletedAt
	m.CancelledAt = o.CancelledAt
	m.CancelReason = o.CancelReason
	m.DocumentStorageKey = o.DocumentStorageKey
	m.Items = make([]PlannedItemModel, len(o.Items))
	for i, item := range o.Items {
		m.Items[i] = *PlannedItemModelFromDomain(&item)
	}
}

// PurchaseOrderModelFromDomain creates a new persistence model from a domain PurchaseOrder entity.
func PurchaseOrderModelFromDomain(o *procurement.PurchaseOrder) *PurchaseOrderModel {
	m := &PurchaseOrderModel{}
	m.FromDomain(o)
	return m
}

// PlannedItemModel is the persistence model for the PlannedItem entity.
type PlannedItemModel struct {
	ID              uuid.UUID                     `gorm:"type:uuid;primary_key"`
	PurchaseOrderID uuid.UUID                     `gorm:"type:uuid;not null;index"`
	Description     string                        `gorm:"type:varchar(500);not null"`
	SKU             string                        `gorm:"type:varchar(100)"`
	Department      string                        `gorm:"type:varchar(100)"`
	Quantity        decimal.Decimal               `gorm:"type:decimal(18,4);not null"`
	UnitPrice       decimal.Decimal               `gorm:"type:decimal(18,4);not null"`
	Amount          decimal.Decimal               `gorm:"type:decimal(18,4);not null"`
	Status          procurement.PlannedItemStatus `gorm:"type:varchar(20);not null;default:'PLANNED'"`
	ReceivedAt      *time.Time
	CreatedAt       time.Time `gorm:"not null"`
	UpdatedAt       time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PlannedItemModel) TableName() string {
	return "purchase_order_items"
}

// ToDomain converts the persistence model to a domain PlannedItem entity.
func (m *PlannedItemModel) ToDomain() *procurement.PlannedItem {
	return &procurement.PlannedItem{
		ID:              m.ID,
		PurchaseOrderID: m.PurchaseOrderID,
		Description:     m.Description,
		SKU:             m.SKU,
		Department:      m.Department,
		Quantity:        m.Quantity,
		UnitPrice:       m.UnitPrice,
		Amount:          m.Amount,
		Status:          m.Status,
		ReceivedAt:      m.ReceivedAt,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// PlannedItemModelFromDomain creates a new persistence model from a domain PlannedItem entity.
func PlannedItemModelFromDomain(i *procurement.PlannedItem) *PlannedItemModel {
	return &PlannedItemModel{
		ID:              i.ID,
		PurchaseOrderID: i.PurchaseOrderID,
		Description:     i.Description,
		SKU:             i.SKU,
		Department:      i.Department,
		Quantity:        i.Quantity,
		UnitPrice:       i.UnitPrice,
		Amount:          i.Amount,
		Status:          i.Status,
		ReceivedAt:      i.ReceivedAt,
		CreatedAt:       i.CreatedAt,
		UpdatedAt:       i.UpdatedAt,
	}
}
