package procurement

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/opsdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PurchaseOrderStatus represents the status of a purchase order
type PurchaseOrderStatus string

const (
	PurchaseOrderStatusDraft             PurchaseOrderStatus = "DRAFT"
	PurchaseOrderStatusFinalized         PurchaseOrderStatus = "FINALIZED"
	PurchaseOrderStatusPartiallyReceived PurchaseOrderStatus = "PARTIALLY_RECEIVED"
	PurchaseOrderStatusComplete          PurchaseOrderStatus = "COMPLETE"
	PurchaseOrderStatusCancelled         PurchaseOrderStatus = "CANCELLED"
)

// IsValid checks if the status is a valid PurchaseOrderStatus
func (s PurchaseOrderStatus) IsValid() bool {
	switch s {
	case PurchaseOrderStatusDraft, PurchaseOrderStatusFinalized, PurchaseOrderStatusPartiallyReceived,
		PurchaseOrderStatusComplete, PurchaseOrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of PurchaseOrderStatus
func (s PurchaseOrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s PurchaseOrderStatus) CanTransitionTo(target PurchaseOrderStatus) bool {
	switch s {
	case PurchaseOrderStatusDraft:
		return target == PurchaseOrderStatusFinalized || target == PurchaseOrderStatusCancelled
	case PurchaseOrderStatusFinalized:
		return target == PurchaseOrderStatusPartiallyReceived || target == PurchaseOrderStatusComplete || target == PurchaseOrderStatusCancelled
	case PurchaseOrderStatusPartiallyReceived:
		return target == PurchaseOrderStatusPartiallyReceived || target == PurchaseOrderStatusComplete
	case PurchaseOrderStatusComplete, PurchaseOrderStatusCancelled:
		return false // Terminal states
	}
	return false
}

// CanReceive returns true if receiving items is allowed in this status
func (s PurchaseOrderStatus) CanReceive() bool {
	return s == PurchaseOrderStatusFinalized || s == PurchaseOrderStatusPartiallyReceived
}

// PlannedItemStatus represents the status of a single line item
type PlannedItemStatus string

const (
	PlannedItemStatusPlanned     PlannedItemStatus = "PLANNED"
	PlannedItemStatusOrdered     PlannedItemStatus = "ORDERED"
	PlannedItemStatusBackordered PlannedItemStatus = "BACKORDERED"
	PlannedItemStatusReceived    PlannedItemStatus = "RECEIVED"
	PlannedItemStatusCancelled   PlannedItemStatus = "CANCELLED"
)

// IsValid checks if the status is a valid PlannedItemStatus
func (s PlannedItemStatus) IsValid() bool {
	switch s {
	case PlannedItemStatusPlanned, PlannedItemStatusOrdered, PlannedItemStatusBackordered,
		PlannedItemStatusReceived, PlannedItemStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of PlannedItemStatus
func (s PlannedItemStatus) String() string {
	return string(s)
}

// PlannedItem represents a line item in a purchase order
type PlannedItem struct {
	ID              uuid.UUID
	PurchaseOrderID uuid.UUID
	Description     string
	SKU             string
	Department      string
	Quantity        decimal.Decimal
	UnitPrice       decimal.Decimal
	Amount          decimal.Decimal // Quantity * UnitPrice
	Status          PlannedItemStatus
	ReceivedAt      *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewPlannedItem creates a new planned line item
func NewPlannedItem(orderID uuid.UUID, description, sku, department string, quantity, unitPrice decimal.Decimal) (*PlannedItem, error) {
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Item description cannot be empty")
	}
	if len(description) > 500 {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Item description cannot exceed 500 characters")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	now := time.Now()

	return &PlannedItem{
		ID:              uuid.New(),
		PurchaseOrderID: orderID,
		Description:     description,
		SKU:             sku,
		Department:      department,
		Quantity:        quantity,
		UnitPrice:       unitPrice,
		Amount:          quantity.Mul(unitPrice),
		Status:          PlannedItemStatusPlanned,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// Update updates the item details and recalculates the amount
func (i *PlannedItem) Update(description, sku, department string, quantity, unitPrice decimal.Decimal) error {
	if description == "" {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Item description cannot be empty")
	}
	if len(description) > 500 {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Item description cannot exceed 500 characters")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	i.Description = description
	i.SKU = sku
	i.Department = department
	i.Quantity = quantity
	i.UnitPrice = unitPrice
	i.Amount = quantity.Mul(unitPrice)
	i.UpdatedAt = time.Now()

	return nil
}

// CountsTowardTotal returns true if the item contributes to order totals
func (i *PlannedItem) CountsTowardTotal() bool {
	return i.Status != PlannedItemStatusCancelled
}

// IsReceived returns true if the item has been received
func (i *PlannedItem) IsReceived() bool {
	return i.Status == PlannedItemStatusReceived
}

// IsCancelled returns true if the item has been cancelled
func (i *PlannedItem) IsCancelled() bool {
	return i.Status == PlannedItemStatusCancelled
}

// IsOutstanding returns true if the item is ordered but not yet received
func (i *PlannedItem) IsOutstanding() bool {
	return i.Status == PlannedItemStatusOrdered || i.Status == PlannedItemStatusBackordered
}

// OrderSnapshot carries the vendor, bill-to, and ship-to details frozen onto
// the order at finalization, so later edits to those records do not change
// what was sent to the vendor
type OrderSnapshot struct {
	VendorName     string
	VendorAddress  string
	CompanyName    string
	CompanyAddress string
	ShipToName     string
	ShipToAddress  string
	TaxRate        decimal.Decimal
}

// PurchaseOrder represents a purchase order aggregate root
// It manages the order lifecycle from draft through finalization to receipt
type PurchaseOrder struct {
	shared.AuditedAggregateRoot
	PONumber           string // Assigned at finalization, numeric string
	VendorID           *uuid.UUID
	VendorName         string
	VendorAddress      string
	CompanyID          *uuid.UUID
	CompanyName        string
	CompanyAddress     string
	ShippingLocationID *uuid.UUID
	ShipToName         string
	ShipToAddress      string
	TaxRate            decimal.Decimal // Rate of the selected ship-to location
	QuoteNumber        string
	Notes              string
	ShippingCost       decimal.Decimal
	Subtotal           decimal.Decimal // Sum of non-cancelled item amounts
	TaxAmount          decimal.Decimal // Subtotal * TaxRate, rounded to cents
	GrandTotal         decimal.Decimal // Subtotal + TaxAmount + ShippingCost
	Status             PurchaseOrderStatus
	FinalizedAt        *time.Time
	CompletedAt        *time.Time
	CancelledAt        *time.Time
	CancelReason       string
	DocumentStorageKey string // Rendered PDF in object storage
	Items              []PlannedItem
}

// NewPurchaseOrder creates a new draft purchase order
func NewPurchaseOrder() *PurchaseOrder {
	order := &PurchaseOrder{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(),
		TaxRate:              decimal.Zero,
		ShippingCost:         decimal.Zero,
		Subtotal:             decimal.Zero,
		TaxAmount:            decimal.Zero,
		GrandTotal:           decimal.Zero,
		Status:               PurchaseOrderStatusDraft,
		Items:                make([]PlannedItem, 0),
	}

	order.AddDomainEvent(NewPurchaseOrderCreatedEvent(order))

	return order
}

// SetVendor sets the vendor and snapshots its current details
// Only allowed in DRAFT status
func (o *PurchaseOrder) SetVendor(vendorID uuid.UUID, name, address string) error {
	if o.Status != PurchaseOrderStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot change vendor on a non-draft order")
	}
	if vendorID == uuid.Nil {
		return shared.NewDomainError("INVALID_VENDOR", "Vendor ID cannot be empty")
	}
	if name == "" {
		return shared.NewDomainError("INVALID_VENDOR_NAME", "Vendor name cannot be empty")
	}

	o.VendorID = &vendorID
	o.VendorName = name
	o.VendorAddress = address
	o.UpdatedAt = time.Now()

	return nil
}

// SetCompany sets the bill-to company and snapshots its current details
// Only allowed in DRAFT status
func (o *PurchaseOrder) SetCompany(companyID uuid.UUID, name, address string) error {
	if o.Status != PurchaseOrderStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot change company on a non-draft order")
	}
	if companyID == uuid.Nil {
		return shared.NewDomainError("INVALID_COMPANY", "Company ID cannot be empty")
	}

	o.CompanyID = &companyID
	o.CompanyName = name
	o.CompanyAddress = address
	o.UpdatedAt = time.Now()

	return nil
}

// SetShipTo sets the shipping location and captures its tax rate
// The order tax is recomputed from the captured rate
// Only allowed in DRAFT status
func (o *PurchaseOrder) SetShipTo(locationID uuid.UUID, name, address string, taxRate decimal.Decimal) error {
	if o.Status != PurchaseOrderStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot change ship-to on a non-draft order")
	}
	if locationID == uuid.Nil {
		return shared.NewDomainError("INVALID_SHIP_TO", "Shipping location ID cannot be empty")
	}
	if taxRate.IsNegative() {
		return shared.NewDomainError("INVALID_TAX_RATE", "Tax rate cannot be negative")
	}

	o.ShippingLocationID = &locationID
	o.ShipToName = name
	o.ShipToAddress = address
	o.TaxRate = taxRate
	o.recalculateTotals()
	o.UpdatedAt = time.Now()

	return nil
}

// Update updates the order header fields
// Only allowed in DRAFT status
func (o *PurchaseOrder) Update(quoteNumber, notes string) error {
	if o.Status != PurchaseOrderStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot update a non-draft order")
	}
	if len(quoteNumber) > 100 {
		return shared.NewDomainError("INVALID_QUOTE_NUMBER", "Quote number cannot exceed 100 characters")
	}

	o.QuoteNumber = quoteNumber
	o.Notes = notes
	o.UpdatedAt = time.Now()

	return nil
}

// SetShippingCost sets the shipping cost and recalculates the totals
// Only allowed in DRAFT status
func (o *PurchaseOrder) SetShippingCost(cost decimal.Decimal) error {
	if o.Status != PurchaseOrderStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot change shipping cost on a non-draft order")
	}
	if cost.IsNegative() {
		return shared.NewDomainError("INVALID_SHIPPING_COST", "Shipping cost cannot be negative")
	}

	o.ShippingCost = cost
	o.recalculateTotals()
	o.UpdatedAt = time.Now()

	return nil
}

// AddItem adds a new planned item to the order
// Only allowed in DRAFT status
func (o *PurchaseOrder) AddItem(description, sku, department string, quantity, unitPrice decimal.Decimal) (*PlannedItem, error) {
	if o.Status != PurchaseOrderStatusDraft {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add items to a non-draft order")
	}

	item, err := NewPlannedItem(o.ID, description, sku, department, quantity, unitPrice)
	if err != nil {
		return nil, err
	}

	o.Items = append(o.Items, *item)
	o.recalculateTotals()
	o.UpdatedAt = time.Now()

	return item, nil
}

// UpdateItem updates an existing item and recalculates the totals
// Only allowed in DRAFT status
func (o *PurchaseOrder) UpdateItem(itemID uuid.UUID, description, sku, department string, quantity, unitPrice decimal.Decimal) error {
	if o.Status != PurchaseOrderStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot update items on a non-draft order")
	}

	for idx := range o.Items {
		if o.Items[idx].ID == itemID {
			if err := o.Items[idx].Update(description, sku, department, quantity, unitPrice); err != nil {
				return err
			}
			o.recalculateTotals()
			o.UpdatedAt = time.Now()
			return nil
		}
	}

	return shared.NewDomainError("ITEM_NOT_FOUND", "Order item not found")
}

// RemoveItem removes an item from the order
// Only allowed in DRAFT status
func (o *PurchaseOrder) RemoveItem(itemID uuid.UUID) error {
	if o.Status != PurchaseOrderStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot remove items from a non-draft order")
	}

	for idx, item := range o.Items {
		if item.ID == itemID {
			o.Items = append(o.Items[:idx], o.Items[idx+1:]...)
			o.recalculateTotals()
			o.UpdatedAt = time.Now()
			return nil
		}
	}

	return shared.NewDomainError("ITEM_NOT_FOUND", "Order item not found")
}

// Finalize locks the order, transitioning from DRAFT to FINALIZED
// Requires at least one item, a vendor, and a ship-to location
// The snapshot refreshes the frozen vendor, bill-to, and ship-to details and
// all planned items become ordered
func (o *PurchaseOrder) Finalize(poNumber string, snapshot OrderSnapshot) error {
	if !o.Status.CanTransitionTo(PurchaseOrderStatusFinalized) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot finalize order in %s status", o.Status))
	}
	if len(o.Items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Cannot finalize order without items")
	}
	if o.VendorID == nil {
		return shared.NewDomainError("NO_VENDOR", "Cannot finalize order without a vendor")
	}
	if o.ShippingLocationID == nil {
		return shared.NewDomainError("NO_SHIP_TO", "Cannot finalize order without a shipping location")
	}
	if err := validatePONumber(poNumber); err != nil {
		return err
	}
	if snapshot.TaxRate.IsNegative() {
		return shared.NewDomainError("INVALID_TAX_RATE", "Tax rate cannot be negative")
	}

	now := time.Now()
	o.PONumber = poNumber
	o.VendorName = snapshot.VendorName
	o.VendorAddress = snapshot.VendorAddress
	o.CompanyName = snapshot.CompanyName
	o.CompanyAddress = snapshot.CompanyAddress
	o.ShipToName = snapshot.ShipToName
	o.ShipToAddress = snapshot.ShipToAddress
	o.TaxRate = snapshot.TaxRate

	for idx := range o.Items {
		o.Items[idx].Status = PlannedItemStatusOrdered
		o.Items[idx].UpdatedAt = now
	}

	o.recalculateTotals()
	o.Status = PurchaseOrderStatusFinalized
	o.FinalizedAt = &now
	o.UpdatedAt = now

	o.AddDomainEvent(NewPurchaseOrderFinalizedEvent(o))

	return nil
}

// ReceiveItem marks a single item as received
// Only allowed in FINALIZED or PARTIALLY_RECEIVED status
// The order completes automatically once every non-cancelled item is received
func (o *PurchaseOrder) ReceiveItem(itemID uuid.UUID) error {
	if !o.Status.CanReceive() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot receive items for order in %s status", o.Status))
	}

	item := o.GetItem(itemID)
	if item == nil {
		return shared.NewDomainError("ITEM_NOT_FOUND", "Order item not found")
	}
	if !item.IsOutstanding() {
		return shared.NewDomainError("INVALID_ITEM_STATE", fmt.Sprintf("Cannot receive item in %s status", item.Status))
	}

	now := time.Now()
	item.Status = PlannedItemStatusReceived
	item.ReceivedAt = &now
	item.UpdatedAt = now

	o.AddDomainEvent(NewPurchaseOrderItemReceivedEvent(o, item))
	o.settleReceiptStatus(now)
	o.UpdatedAt = now

	return nil
}

// MarkItemBackordered flags an ordered item as backordered by the vendor
// Only allowed after finalization
func (o *PurchaseOrder) MarkItemBackordered(itemID uuid.UUID) error {
	if !o.Status.CanReceive() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot flag items for order in %s status", o.Status))
	}

	item := o.GetItem(itemID)
	if item == nil {
		return shared.NewDomainError("ITEM_NOT_FOUND", "Order item not found")
	}
	if item.Status != PlannedItemStatusOrdered {
		return shared.NewDomainError("INVALID_ITEM_STATE", fmt.Sprintf("Cannot backorder item in %s status", item.Status))
	}

	item.Status = PlannedItemStatusBackordered
	item.UpdatedAt = time.Now()
	o.UpdatedAt = item.UpdatedAt

	return nil
}

// MarkItemOrdered returns a backordered item to ordered
func (o *PurchaseOrder) MarkItemOrdered(itemID uuid.UUID) error {
	if !o.Status.CanReceive() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot flag items for order in %s status", o.Status))
	}

	item := o.GetItem(itemID)
	if item == nil {
		return shared.NewDomainError("ITEM_NOT_FOUND", "Order item not found")
	}
	if item.Status != PlannedItemStatusBackordered {
		return shared.NewDomainError("INVALID_ITEM_STATE", fmt.Sprintf("Cannot reorder item in %s status", item.Status))
	}

	item.Status = PlannedItemStatusOrdered
	item.UpdatedAt = time.Now()
	o.UpdatedAt = item.UpdatedAt

	return nil
}

// CancelItem cancels a single outstanding item after finalization
// The item drops out of the totals and the order completes automatically if
// every remaining non-cancelled item has been received
func (o *PurchaseOrder) CancelItem(itemID uuid.UUID) error {
	if !o.Status.CanReceive() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel items for order in %s status", o.Status))
	}

	item := o.GetItem(itemID)
	if item == nil {
		return shared.NewDomainError("ITEM_NOT_FOUND", "Order item not found")
	}
	if !item.IsOutstanding() {
		return shared.NewDomainError("INVALID_ITEM_STATE", fmt.Sprintf("Cannot cancel item in %s status", item.Status))
	}

	now := time.Now()
	item.Status = PlannedItemStatusCancelled
	item.UpdatedAt = now

	o.recalculateTotals()
	o.settleReceiptStatus(now)
	o.UpdatedAt = now

	return nil
}

// Cancel cancels the whole order
// Allowed only in DRAFT or FINALIZED status before any item has been received
func (o *PurchaseOrder) Cancel(reason string) error {
	if !o.Status.CanTransitionTo(PurchaseOrderStatusCancelled) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel order in %s status", o.Status))
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Cancel reason is required")
	}
	if o.hasReceivedAnyItems() {
		return shared.NewDomainError("ALREADY_RECEIVED", "Cannot cancel order after items have been received")
	}

	wasFinalized := o.Status == PurchaseOrderStatusFinalized
	now := time.Now()
	o.Status = PurchaseOrderStatusCancelled
	o.CancelledAt = &now
	o.CancelReason = reason
	o.UpdatedAt = now

	o.AddDomainEvent(NewPurchaseOrderCancelledEvent(o, wasFinalized))

	return nil
}

// SetDocumentStorageKey records where the rendered PDF lives in object storage
func (o *PurchaseOrder) SetDocumentStorageKey(key string) error {
	if o.Status == PurchaseOrderStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Draft orders have no rendered document")
	}
	if key == "" {
		return shared.NewDomainError("INVALID_STORAGE_KEY", "Storage key cannot be empty")
	}

	o.DocumentStorageKey = key
	o.UpdatedAt = time.Now()

	return nil
}

// recalculateTotals recalculates the order totals
// Cancelled items do not count; the tax amount is rounded to whole cents
func (o *PurchaseOrder) recalculateTotals() {
	subtotal := decimal.Zero
	for _, item := range o.Items {
		if item.CountsTowardTotal() {
			subtotal = subtotal.Add(item.Amount)
		}
	}
	o.Subtotal = subtotal
	o.TaxAmount = subtotal.Mul(o.TaxRate).Round(2)
	o.GrandTotal = o.Subtotal.Add(o.TaxAmount).Add(o.ShippingCost)
}

// settleReceiptStatus moves the order to COMPLETE or PARTIALLY_RECEIVED based
// on how many non-cancelled items have been received
func (o *PurchaseOrder) settleReceiptStatus(now time.Time) {
	if o.isFullyReceived() {
		o.Status = PurchaseOrderStatusComplete
		o.CompletedAt = &now
		o.AddDomainEvent(NewPurchaseOrderCompletedEvent(o))
		return
	}
	if o.hasReceivedAnyItems() {
		o.Status = PurchaseOrderStatusPartiallyReceived
	}
}

// isFullyReceived checks if every non-cancelled item has been received
func (o *PurchaseOrder) isFullyReceived() bool {
	active := 0
	for _, item := range o.Items {
		if item.IsCancelled() {
			continue
		}
		active++
		if !item.IsReceived() {
			return false
		}
	}
	return active > 0
}

// hasReceivedAnyItems checks if any item has been received
func (o *PurchaseOrder) hasReceivedAnyItems() bool {
	for _, item := range o.Items {
		if item.IsReceived() {
			return true
		}
	}
	return false
}

// ItemCount returns the number of items in the order
func (o *PurchaseOrder) ItemCount() int {
	return len(o.Items)
}

// OutstandingItems returns items that are ordered but not yet received
func (o *PurchaseOrder) OutstandingItems() []PlannedItem {
	items := make([]PlannedItem, 0)
	for _, item := range o.Items {
		if item.IsOutstanding() {
			items = append(items, item)
		}
	}
	return items
}

// GetItem returns an item by its ID
func (o *PurchaseOrder) GetItem(itemID uuid.UUID) *PlannedItem {
	for idx := range o.Items {
		if o.Items[idx].ID == itemID {
			return &o.Items[idx]
		}
	}
	return nil
}

// HasPONumber returns true if a PO number has been assigned
func (o *PurchaseOrder) HasPONumber() bool {
	return o.PONumber != ""
}

// Reference returns the human-facing order reference
func (o *PurchaseOrder) Reference() string {
	if o.PONumber == "" {
		return "Draft PO"
	}
	return "PO #" + o.PONumber
}

// IsDraft returns true if the order is in draft status
func (o *PurchaseOrder) IsDraft() bool {
	return o.Status == PurchaseOrderStatusDraft
}

// IsFinalized returns true if the order has been finalized
func (o *PurchaseOrder) IsFinalized() bool {
	return o.Status == PurchaseOrderStatusFinalized
}

// IsPartiallyReceived returns true if some items have been received
func (o *PurchaseOrder) IsPartiallyReceived() bool {
	return o.Status == PurchaseOrderStatusPartiallyReceived
}

// IsComplete returns true if the order is complete
func (o *PurchaseOrder) IsComplete() bool {
	return o.Status == PurchaseOrderStatusComplete
}

// IsCancelled returns true if the order is cancelled
func (o *PurchaseOrder) IsCancelled() bool {
	return o.Status == PurchaseOrderStatusCancelled
}

// IsTerminal returns true if the order is complete or cancelled
func (o *PurchaseOrder) IsTerminal() bool {
	return o.IsComplete() || o.IsCancelled()
}

// CanModify returns true if the order header and items can be edited
func (o *PurchaseOrder) CanModify() bool {
	return o.IsDraft()
}

// validatePONumber validates an assigned PO number
func validatePONumber(poNumber string) error {
	if poNumber == "" {
		return shared.NewDomainError("INVALID_PO_NUMBER", "PO number cannot be empty")
	}
	if len(poNumber) > 20 {
		return shared.NewDomainError("INVALID_PO_NUMBER", "PO number cannot exceed 20 characters")
	}
	for _, r := range poNumber {
		if r < '0' || r > '9' {
			return shared.NewDomainError("INVALID_PO_NUMBER", "PO number must be numeric")
		}
	}
	return nil
}
