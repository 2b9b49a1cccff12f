package procurement

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/opsdesk/backend/internal/domain/procurement"
)

// OrderItemInput describes one line item supplied at order creation
type OrderItemInput struct {
	Description string          `json:"description" binding:"required,min=1,max=500"`
	SKU         string          `json:"sku" binding:"max=100"`
	Department  string          `json:"department" binding:"max=100"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// CreatePurchaseOrderRequest represents a request to create a draft order
type CreatePurchaseOrderRequest struct {
	VendorID           *uuid.UUID       `json:"vendor_id"`
	CompanyID          *uuid.UUID       `json:"company_id"`
	ShippingLocationID *uuid.UUID       `json:"shipping_location_id"`
	QuoteNumber        string           `json:"quote_number" binding:"max=100"`
	Notes              string           `json:"notes" binding:"max=5000"`
	ShippingCost       *decimal.Decimal `json:"shipping_cost"`
	Items              []OrderItemInput `json:"items" binding:"dive"`
}

// UpdatePurchaseOrderRequest represents a request to update a draft order
type UpdatePurchaseOrderRequest struct {
	QuoteNumber  *string          `json:"quote_number" binding:"omitempty,max=100"`
	Notes        *string          `json:"notes" binding:"omitempty,max=5000"`
	ShippingCost *decimal.Decimal `json:"shipping_cost"`
}

// SetOrderVendorRequest selects the vendor for a draft order
type SetOrderVendorRequest struct {
	VendorID uuid.UUID `json:"vendor_id" binding:"required"`
}

// SetOrderCompanyRequest selects the billing company for a draft order
type SetOrderCompanyRequest struct {
	CompanyID uuid.UUID `json:"company_id" binding:"required"`
}

// SetOrderShipToRequest selects the shipping location for a draft order
type SetOrderShipToRequest struct {
	ShippingLocationID uuid.UUID `json:"shipping_location_id" binding:"required"`
}

// AddOrderItemRequest represents a request to add a line item
type AddOrderItemRequest struct {
	Description string          `json:"description" binding:"required,min=1,max=500"`
	SKU         string          `json:"sku" binding:"max=100"`
	Department  string          `json:"department" binding:"max=100"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// UpdateOrderItemRequest represents a request to update a line item
type UpdateOrderItemRequest struct {
	Description *string          `json:"description" binding:"omitempty,min=1,max=500"`
	SKU         *string          `json:"sku" binding:"omitempty,max=100"`
	Department  *string          `json:"department" binding:"omitempty,max=100"`
	Quantity    *decimal.Decimal `json:"quantity"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
}

// CancelPurchaseOrderRequest represents a request to cancel an order
type CancelPurchaseOrderRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// PurchaseOrderListFilter represents filter parameters for order listing
type PurchaseOrderListFilter struct {
	Search    string           `form:"search"`
	Status    string           `form:"status"`
	Statuses  []string         `form:"statuses"`
	VendorID  *uuid.UUID       `form:"vendor_id"`
	MinTotal  *decimal.Decimal `form:"min_total"`
	MaxTotal  *decimal.Decimal `form:"max_total"`
	StartDate *time.Time       `form:"start_date" time_format:"2006-01-02"`
	EndDate   *time.Time       `form:"end_date" time_format:"2006-01-02"`
	Page      int              `form:"page"`
	PageSize  int              `form:"page_size"`
	OrderBy   string           `form:"order_by"`
	OrderDir  string           `form:"order_dir"`
}

// PlannedItemResponse represents a line item in API responses
type PlannedItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description"`
	SKU         string          `json:"sku,omitempty"`
	Department  string          `json:"department,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
	Status      string          `json:"status"`
	ReceivedAt  *time.Time      `json:"received_at,omitempty"`
}

// PurchaseOrderResponse represents a purchase order in API responses
type PurchaseOrderResponse struct {
	ID                 uuid.UUID             `json:"id"`
	PONumber           string                `json:"po_number,omitempty"`
	Status             string                `json:"status"`
	VendorID           *uuid.UUID            `json:"vendor_id,omitempty"`
	VendorName         string                `json:"vendor_name,omitempty"`
	VendorAddress      string                `json:"vendor_address,omitempty"`
	CompanyID          *uuid.UUID            `json:"company_id,omitempty"`
	CompanyName        string                `json:"company_name,omitempty"`
	CompanyAddress     string                `json:"company_address,omitempty"`
	ShippingLocationID *uuid.UUID            `json:"shipping_location_id,omitempty"`
	ShipToName         string                `json:"ship_to_name,omitempty"`
	ShipToAddress      string                `json:"ship_to_address,omitempty"`
	TaxRate            decimal.Decimal       `json:"tax_rate"`
	QuoteNumber        string                `json:"quote_number,omitempty"`
	Notes              string                `json:"notes,omitempty"`
	Subtotal           decimal.Decimal       `json:"subtotal"`
	TaxAmount          decimal.Decimal       `json:"tax_amount"`
	ShippingCost       decimal.Decimal       `json:"shipping_cost"`
	GrandTotal         decimal.Decimal       `json:"grand_total"`
	CancelReason       string                `json:"cancel_reason,omitempty"`
	HasDocument        bool                  `json:"has_document"`
	Items              []PlannedItemResponse `json:"items"`
	CreatedBy          *uuid.UUID            `json:"created_by,omitempty"`
	FinalizedAt        *time.Time            `json:"finalized_at,omitempty"`
	CompletedAt        *time.Time            `json:"completed_at,omitempty"`
	CancelledAt        *time.Time            `json:"cancelled_at,omitempty"`
	CreatedAt          time.Time             `json:"created_at"`
	UpdatedAt          time.Time             `json:"updated_at"`
	Version            int                   `json:"version"`
}

// PurchaseOrderListItemResponse represents an order in list responses
type PurchaseOrderListItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	PONumber    string          `json:"po_number,omitempty"`
	Status      string          `json:"status"`
	VendorID    *uuid.UUID      `json:"vendor_id,omitempty"`
	VendorName  string          `json:"vendor_name,omitempty"`
	ShipToName  string          `json:"ship_to_name,omitempty"`
	QuoteNumber string          `json:"quote_number,omitempty"`
	GrandTotal  decimal.Decimal `json:"grand_total"`
	ItemCount   int             `json:"item_count"`
	FinalizedAt *time.Time      `json:"finalized_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// PurchaseOrderStatusSummary reports order counts grouped by status
type PurchaseOrderStatusSummary struct {
	Draft             int64 `json:"draft"`
	Finalized         int64 `json:"finalized"`
	PartiallyReceived int64 `json:"partially_received"`
	Complete          int64 `json:"complete"`
	Cancelled         int64 `json:"cancelled"`
	Outstanding       int64 `json:"outstanding"`
	Total             int64 `json:"total"`
}

// ToPlannedItemResponse converts a domain line item to a response DTO
func ToPlannedItemResponse(item *procurement.PlannedItem) PlannedItemResponse {
	return PlannedItemResponse{
		ID:          item.ID,
		Description: item.Description,
		SKU:         item.SKU,
		Department:  item.Department,
		Quantity:    item.Quantity,
		UnitPrice:   item.UnitPrice,
		Amount:      item.Amount,
		Status:      string(item.Status),
		ReceivedAt:  item.ReceivedAt,
	}
}

// ToPlannedItemResponses converts a slice of domain line items to response DTOs
func ToPlannedItemResponses(items []procurement.PlannedItem) []PlannedItemResponse {
	responses := make([]PlannedItemResponse, len(items))
	for i := range items {
		responses[i] = ToPlannedItemResponse(&items[i])
	}
	return responses
}

// ToPurchaseOrderResponse converts a domain purchase order to a response DTO
func ToPurchaseOrderResponse(order *procurement.PurchaseOrder) PurchaseOrderResponse {
	return PurchaseOrderResponse{
		ID:                 order.ID,
		PONumber:           order.PONumber,
		Status:             string(order.Status),
		VendorID:           order.VendorID,
		VendorName:         order.VendorName,
		VendorAddress:      order.VendorAddress,
		CompanyID:          order.CompanyID,
		CompanyName:        order.CompanyName,
		CompanyAddress:     order.CompanyAddress,
		ShippingLocationID: order.ShippingLocationID,
		ShipToName:         order.ShipToName,
		ShipToAddress:      order.ShipToAddress,
		TaxRate:            order.TaxRate,
		QuoteNumber:        order.QuoteNumber,
		Notes:              order.Notes,
		Subtotal:           order.Subtotal,
		TaxAmount:          order.TaxAmount,
		ShippingCost:       order.ShippingCost,
		GrandTotal:         order.GrandTotal,
		CancelReason:       order.CancelReason,
		HasDocument:        order.DocumentStorageKey != "",
		Items:              ToPlannedItemResponses(order.Items),
		CreatedBy:          order.CreatedBy,
		FinalizedAt:        order.FinalizedAt,
		CompletedAt:        order.CompletedAt,
		CancelledAt:        order.CancelledAt,
		CreatedAt:          order.CreatedAt,
		UpdatedAt:          order.UpdatedAt,
		Version:            order.Version,
	}
}

// ToPurchaseOrderListItemResponse converts a domain order to a list DTO
func ToPurchaseOrderListItemResponse(order *procurement.PurchaseOrder) PurchaseOrderListItemResponse {
	return PurchaseOrderListItemResponse{
		ID:          order.ID,
		PONumber:    order.PONumber,
		Status:      string(order.Status),
		VendorID:    order.VendorID,
		VendorName:  order.VendorName,
		ShipToName:  order.ShipToName,
		QuoteNumber: order.QuoteNumber,
		GrandTotal:  order.GrandTotal,
		ItemCount:   order.ItemCount(),
		FinalizedAt: order.FinalizedAt,
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
	}
}

// ToPurchaseOrderListItemResponses converts a slice of domain orders to list DTOs
func ToPurchaseOrderListItemResponses(orders []procurement.PurchaseOrder) []PurchaseOrderListItemResponse {
	responses := make([]PurchaseOrderListItemResponse, len(orders))
	for i := range orders {
		responses[i] = ToPurchaseOrderListItemResponse(&orders[i])
	}
	return responses
}
