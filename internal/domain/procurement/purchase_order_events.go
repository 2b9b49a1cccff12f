package procurement

import (
	"github.com/google/uuid"
	"github.com/opsdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypePurchaseOrder = "PurchaseOrder"

// Event type constants
const (
	EventTypePurchaseOrderCreated      = "PurchaseOrderCreated"
	EventTypePurchaseOrderFinalized    = "PurchaseOrderFinalized"
	EventTypePurchaseOrderItemReceived = "PurchaseOrderItemReceived"
	EventTypePurchaseOrderCompleted    = "PurchaseOrderCompleted"
	EventTypePurchaseOrderCancelled    = "PurchaseOrderCancelled"
	EventTypePurchaseOrderDeleted      = "PurchaseOrderDeleted"
)

// PurchaseOrderCreatedEvent is raised when a new draft order is created
type PurchaseOrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderID   uuid.UUID  `json:"order_id"`
	CreatedBy *uuid.UUID `json:"created_by,omitempty"`
}

// NewPurchaseOrderCreatedEvent creates a new PurchaseOrderCreatedEvent
func NewPurchaseOrderCreatedEvent(order *PurchaseOrder) *PurchaseOrderCreatedEvent {
	return &PurchaseOrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseOrderCreated, AggregateTypePurchaseOrder, order.ID),
		OrderID:         order.ID,
		CreatedBy:       order.CreatedBy,
	}
}

// EventType returns the event type name
func (e *PurchaseOrderCreatedEvent) EventType() string {
	return EventTypePurchaseOrderCreated
}

// PlannedItemInfo represents line item information for events
type PlannedItemInfo struct {
	ItemID      uuid.UUID       `json:"item_id"`
	Description string          `json:"description"`
	SKU         string          `json:"sku,omitempty"`
	Department  string          `json:"department,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

// PurchaseOrderFinalizedEvent is raised when an order is finalized
// This event triggers the PDF render and the vendor notification email
type PurchaseOrderFinalizedEvent struct {
	shared.BaseDomainEvent
	OrderID      uuid.UUID         `json:"order_id"`
	PONumber     string            `json:"po_number"`
	VendorID     uuid.UUID         `json:"vendor_id"`
	VendorName   string            `json:"vendor_name"`
	ShipToName   string            `json:"ship_to_name"`
	Items        []PlannedItemInfo `json:"items"`
	Subtotal     decimal.Decimal   `json:"subtotal"`
	TaxAmount    decimal.Decimal   `json:"tax_amount"`
	ShippingCost decimal.Decimal   `json:"shipping_cost"`
	GrandTotal   decimal.Decimal   `json:"grand_total"`
}

// NewPurchaseOrderFinalizedEvent creates a new PurchaseOrderFinalizedEvent
func NewPurchaseOrderFinalizedEvent(order *PurchaseOrder) *PurchaseOrderFinalizedEvent {
	items := make([]PlannedItemInfo, len(order.Items))
	for i, item := range order.Items {
		items[i] = PlannedItemInfo{
			ItemID:      item.ID,
			Description: item.Description,
			SKU:         item.SKU,
			Department:  item.Department,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      item.Amount,
		}
	}

	vendorID := uuid.Nil
	if order.VendorID != nil {
		vendorID = *order.VendorID
	}

	return &PurchaseOrderFinalizedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseOrderFinalized, AggregateTypePurchaseOrder, order.ID),
		OrderID:         order.ID,
		PONumber:        order.PONumber,
		VendorID:        vendorID,
		VendorName:      order.VendorName,
		ShipToName:      order.ShipToName,
		Items:           items,
		Subtotal:        order.Subtotal,
		TaxAmount:       order.TaxAmount,
		ShippingCost:    order.ShippingCost,
		GrandTotal:      order.GrandTotal,
	}
}

// EventType returns the event type name
func (e *PurchaseOrderFinalizedEvent) EventType() string {
	return EventTypePurchaseOrderFinalized
}

// PurchaseOrderItemReceivedEvent is raised when a single item is received
type PurchaseOrderItemReceivedEvent struct {
	shared.BaseDomainEvent
	OrderID         uuid.UUID `json:"order_id"`
	PONumber        string    `json:"po_number"`
	ItemID          uuid.UUID `json:"item_id"`
	Description     string    `json:"description"`
	IsFullyReceived bool      `json:"is_fully_received"` // True if this receipt completes the order
}

// NewPurchaseOrderItemReceivedEvent creates a new PurchaseOrderItemReceivedEvent
func NewPurchaseOrderItemReceivedEvent(order *PurchaseOrder, item *PlannedItem) *PurchaseOrderItemReceivedEvent {
	return &PurchaseOrderItemReceivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseOrderItemReceived, AggregateTypePurchaseOrder, order.ID),
		OrderID:         order.ID,
		PONumber:        order.PONumber,
		ItemID:          item.ID,
		Description:     item.Description,
		IsFullyReceived: order.isFullyReceived(),
	}
}

// EventType returns the event type name
func (e *PurchaseOrderItemReceivedEvent) EventType() string {
	return EventTypePurchaseOrderItemReceived
}

// PurchaseOrderCompletedEvent is raised when every non-cancelled item has
// been received
type PurchaseOrderCompletedEvent struct {
	shared.BaseDomainEvent
	OrderID    uuid.UUID       `json:"order_id"`
	PONumber   string          `json:"po_number"`
	VendorName string          `json:"vendor_name"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

// NewPurchaseOrderCompletedEvent creates a new PurchaseOrderCompletedEvent
func NewPurchaseOrderCompletedEvent(order *PurchaseOrder) *PurchaseOrderCompletedEvent {
	return &PurchaseOrderCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseOrderCompleted, AggregateTypePurchaseOrder, order.ID),
		OrderID:         order.ID,
		PONumber:        order.PONumber,
		VendorName:      order.VendorName,
		GrandTotal:      order.GrandTotal,
	}
}

// EventType returns the event type name
func (e *PurchaseOrderCompletedEvent) EventType() string {
	return EventTypePurchaseOrderCompleted
}

// PurchaseOrderCancelledEvent is raised when an order is cancelled
type PurchaseOrderCancelledEvent struct {
	shared.BaseDomainEvent
	OrderID      uuid.UUID  `json:"order_id"`
	PONumber     string     `json:"po_number,omitempty"`
	VendorID     *uuid.UUID `json:"vendor_id,omitempty"`
	CancelReason string     `json:"cancel_reason"`
	WasFinalized bool       `json:"was_finalized"` // If true, the vendor may need to be notified
}

// NewPurchaseOrderCancelledEvent creates a new PurchaseOrderCancelledEvent
func NewPurchaseOrderCancelledEvent(order *PurchaseOrder, wasFinalized bool) *PurchaseOrderCancelledEvent {
	return &PurchaseOrderCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseOrderCancelled, AggregateTypePurchaseOrder, order.ID),
		OrderID:         order.ID,
		PONumber:        order.PONumber,
		VendorID:        order.VendorID,
		CancelReason:    order.CancelReason,
		WasFinalized:    wasFinalized,
	}
}

// EventType returns the event type name
func (e *PurchaseOrderCancelledEvent) EventType() string {
	return EventTypePurchaseOrderCancelled
}

// PurchaseOrderDeletedEvent is raised when a draft order is deleted
type PurchaseOrderDeletedEvent struct {
	shared.BaseDomainEvent
	OrderID uuid.UUID `json:"order_id"`
}

// NewPurchaseOrderDeletedEvent creates a new PurchaseOrderDeletedEvent
func NewPurchaseOrderDeletedEvent(order *PurchaseOrder) *PurchaseOrderDeletedEvent {
	return &PurchaseOrderDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseOrderDeleted, AggregateTypePurchaseOrder, order.ID),
		OrderID:         order.ID,
	}
}

// EventType returns the event type name
func (e *PurchaseOrderDeletedEvent) EventType() string {
	return EventTypePurchaseOrderDeleted
}
