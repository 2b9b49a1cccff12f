package procurement

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/google/uuid"

	"github.com/opsdesk/backend/internal/domain/partner"
	"github.com/opsdesk/backend/internal/domain/procurement"
	"github.com/opsdesk/backend/internal/domain/shared"
)

// poNumberAttempts bounds the finalize retry loop when two orders race
// for the same PO number
const poNumberAttempts = 10

// firstPONumber is the number assigned to the first order ever finalized
const firstPONumber = 1000

// ObjectStorage is the slice of blob storage the order service needs to
// serve rendered order documents
type ObjectStorage interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
}

// DocumentDownload carries a rendered order document and its content stream
type DocumentDownload struct {
	FileName    string
	ContentType string
	Body        io.ReadCloser
}

// PurchaseOrderService handles purchase order workflow operations
type PurchaseOrderService struct {
	orderRepo      procurement.Repository
	vendorRepo     partner.VendorRepository
	companyRepo    partner.CompanyRepository
	locationRepo   partner.ShippingLocationRepository
	storage        ObjectStorage
	eventPublisher shared.EventPublisher
}

// NewPurchaseOrderService creates a new purchase order service
func NewPurchaseOrderService(
	orderRepo procurement.Repository,
	vendorRepo partner.VendorRepository,
	companyRepo partner.CompanyRepository,
	locationRepo partner.ShippingLocationRepository,
	storage ObjectStorage,
) *PurchaseOrderService {
	return &PurchaseOrderService{
		orderRepo:    orderRepo,
		vendorRepo:   vendorRepo,
		companyRepo:  companyRepo,
		locationRepo: locationRepo,
		storage:      storage,
	}
}

// SetEventPublisher sets the event publisher for the service
func (s *PurchaseOrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new draft purchase order
func (s *PurchaseOrderService) Create(ctx context.Context, req *CreatePurchaseOrderRequest, createdBy *uuid.UUID) (*PurchaseOrderResponse, error) {
	order := procurement.NewPurchaseOrder()

	if req.VendorID != nil {
		if err := s.applyVendor(ctx, order, *req.VendorID); err != nil {
			return nil, err
		}
	}
	if req.CompanyID != nil {
		if err := s.applyCompany(ctx, order, *req.CompanyID); err != nil {
			return nil, err
		}
	}
	if req.ShippingLocationID != nil {
		if err := s.applyShipTo(ctx, order, *req.ShippingLocationID); err != nil {
			return nil, err
		}
	} else {
		// New orders pick up the default shipping location when one is marked
		location, err := s.locationRepo.FindDefault(ctx)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		if location != nil {
			if err := order.SetShipTo(location.ID, location.Name, location.Address.FullAddress(), location.TaxRate); err != nil {
				return nil, err
			}
		}
	}

	if req.QuoteNumber != "" || req.Notes != "" {
		if err := order.Update(req.QuoteNumber, req.Notes); err != nil {
			return nil, err
		}
	}
	if req.ShippingCost != nil {
		if err := order.SetShippingCost(*req.ShippingCost); err != nil {
			return nil, err
		}
	}
	for _, item := range req.Items {
		if _, err := order.AddItem(item.Description, item.SKU, item.Department, item.Quantity, item.UnitPrice); err != nil {
			return nil, err
		}
	}

	if createdBy != nil {
		order.SetCreatedBy(*createdBy)
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	order.ClearDomainEvents()

	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// Get retrieves a purchase order by ID
func (s *PurchaseOrderService) Get(ctx context.Context, orderID uuid.UUID) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// GetByPONumber retrieves a purchase order by its assigned number
func (s *PurchaseOrderService) GetByPONumber(ctx context.Context, poNumber string) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByPONumber(ctx, poNumber)
	if err != nil {
		return nil, err
	}

	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// List retrieves purchase orders with filtering and pagination
func (s *PurchaseOrderService) List(ctx context.Context, filter *PurchaseOrderListFilter) ([]PurchaseOrderListItemResponse, int64, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	orderBy := filter.OrderBy
	if orderBy == "" {
		orderBy = "created_at"
	}
	orderDir := filter.OrderDir
	if orderDir == "" {
		orderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     page,
		PageSize: pageSize,
		OrderBy:  orderBy,
		OrderDir: orderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if len(filter.Statuses) > 0 {
		domainFilter.Filters["statuses"] = filter.Statuses
	}
	if filter.VendorID != nil {
		domainFilter.Filters["vendor_id"] = *filter.VendorID
	}
	if filter.MinTotal != nil {
		domainFilter.Filters["min_total"] = *filter.MinTotal
	}
	if filter.MaxTotal != nil {
		domainFilter.Filters["max_total"] = *filter.MaxTotal
	}
	if filter.StartDate != nil {
		domainFilter.Filters["start_date"] = *filter.StartDate
	}
	if filter.EndDate != nil {
		domainFilter.Filters["end_date"] = *filter.EndDate
	}

	orders, err := s.orderRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orderRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToPurchaseOrderListItemResponses(orders), total, nil
}

// Update updates the editable fields of a draft order
func (s *PurchaseOrderService) Update(ctx context.Context, orderID uuid.UUID, req *UpdatePurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	quoteNumber := order.QuoteNumber
	if req.QuoteNumber != nil {
		quoteNumber = *req.QuoteNumber
	}
	notes := order.Notes
	if req.Notes != nil {
		notes = *req.Notes
	}
	if err := order.Update(quoteNumber, notes); err != nil {
		return nil, err
	}
	if req.ShippingCost != nil {
		if err := order.SetShippingCost(*req.ShippingCost); err != nil {
			return nil, err
		}
	}

	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}

	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// Delete removes a purchase order
// Only draft and cancelled orders can be deleted, finalized orders are
// part of the purchasing record
func (s *PurchaseOrderService) Delete(ctx context.Context, orderID uuid.UUID) error {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return err
	}
	if !order.IsDraft() && !order.IsCancelled() {
		return shared.NewDomainError("ORDER_ACTIVE", "Only draft or cancelled orders can be deleted")
	}

	if err := s.orderRepo.Delete(ctx, orderID); err != nil {
		return err
	}

	if s.eventPublisher != nil {
		event := procurement.NewPurchaseOrderDeletedEvent(order)
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			// Log error but don't fail the operation
		}
	}

	return nil
}

// SetVendor selects the vendor for a draft order
func (s *PurchaseOrderService) SetVendor(ctx context.Context, orderID, vendorID uuid.UUID) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := s.applyVendor(ctx, order, vendorID); err != nil {
		return nil, err
	}
	return s.saveWithLock(ctx, order)
}

// SetCompany selects the billing company for a draft order
func (s *PurchaseOrderService) SetCompany(ctx context.Context, orderID, companyID uuid.UUID) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := s.applyCompany(ctx, order, companyID); err != nil {
		return nil, err
	}
	return s.saveWithLock(ctx, order)
}

// SetShipTo selects the shipping location for a draft order
// The location's tax rate drives the order's tax amount
func (s *PurchaseOrderService) SetShipTo(ctx context.Context, orderID, locationID uuid.UUID) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := s.applyShipTo(ctx, order, locationID); err != nil {
		return nil, err
	}
	return s.saveWithLock(ctx, order)
}

// AddItem adds a line item to a draft order
func (s *PurchaseOrderService) AddItem(ctx context.Context, orderID uuid.UUID, req *AddOrderItemRequest) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if _, err := order.AddItem(req.Description, req.SKU, req.Department, req.Quantity, req.UnitPrice); err != nil {
		return nil, err
	}
	return s.saveWithLock(ctx, order)
}

// UpdateItem updates a line item on a draft order
func (s *PurchaseOrderService) UpdateItem(ctx context.Context, orderID, itemID uuid.UUID, req *UpdateOrderItemRequest) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	item := order.GetItem(itemID)
	if item == nil {
		return nil, shared.NewDomainError("ITEM_NOT_FOUND", "Order item not found")
	}

	description := item.Description
	if req.Description != nil {
		description = *req.Description
	}
	sku := item.SKU
	if req.SKU != nil {
		sku = *req.SKU
	}
	department := item.Department
	if req.Department != nil {
		department = *req.Department
	}
	quantity := item.Quantity
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	unitPrice := item.UnitPrice
	if req.UnitPrice != nil {
		unitPrice = *req.UnitPrice
	}

	if err := order.UpdateItem(itemID, description, sku, department, quantity, unitPrice); err != nil {
		return nil, err
	}
	return s.saveWithLock(ctx, order)
}

// RemoveItem removes a line item from a draft order
func (s *PurchaseOrderService) RemoveItem(ctx context.Context, orderID, itemID uuid.UUID) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := order.RemoveItem(itemID); err != nil {
		return nil, err
	}
	return s.saveWithLock(ctx, order)
}

// Finalize assigns the next PO number, locks in the pricing snapshot and
// moves the order out of draft
// The number is max assigned plus one, so a concurrent finalize can take
// the number between the read and the write, in which case the order is
// reloaded and the next number tried
func (s *PurchaseOrderService) Finalize(ctx context.Context, orderID uuid.UUID) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.buildSnapshot(ctx, order)
	if err != nil {
		return nil, err
	}

	for attempt := 0; attempt < poNumberAttempts; attempt++ {
		maxNumber, err := s.orderRepo.MaxNumericPONumber(ctx)
		if err != nil {
			return nil, err
		}
		next := maxNumber + 1
		if next < firstPONumber {
			next = firstPONumber
		}

		if err := order.Finalize(strconv.Itoa(next), snapshot); err != nil {
			return nil, err
		}

		err = s.orderRepo.SaveWithLockAndEvents(ctx, order, order.GetDomainEvents())
		if err == nil {
			order.ClearDomainEvents()
			response := ToPurchaseOrderResponse(order)
			return &response, nil
		}
		if !isPONumberConflict(err) {
			return nil, err
		}

		// Finalize mutated the in-memory order, reload the draft before
		// trying the next number
		order, err = s.orderRepo.FindByID(ctx, orderID)
		if err != nil {
			return nil, err
		}
	}

	return nil, shared.NewDomainError("NUMBER_CONTENTION",
		fmt.Sprintf("Failed to assign a PO number after %d attempts", poNumberAttempts))
}

// ReceiveItem marks a line item as received
// Receiving the last outstanding item completes the order
func (s *PurchaseOrderService) ReceiveItem(ctx context.Context, orderID, itemID uuid.UUID) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := order.ReceiveItem(itemID); err != nil {
		return nil, err
	}
	return s.saveWithEvents(ctx, order)
}

// MarkItemBackordered flags a line item the vendor cannot ship yet
func (s *PurchaseOrderService) MarkItemBackordered(ctx context.Context, orderID, itemID uuid.UUID) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := order.MarkItemBackordered(itemID); err != nil {
		return nil, err
	}
	return s.saveWithLock(ctx, order)
}

// MarkItemOrdered returns a backordered line item to the ordered state
func (s *PurchaseOrderService) MarkItemOrdered(ctx context.Context, orderID, itemID uuid.UUID) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := order.MarkItemOrdered(itemID); err != nil {
		return nil, err
	}
	return s.saveWithLock(ctx, order)
}

// CancelItem cancels a single line item
// Cancelling the last outstanding item completes the order when other
// items were already received
func (s *PurchaseOrderService) CancelItem(ctx context.Context, orderID, itemID uuid.UUID) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := order.CancelItem(itemID); err != nil {
		return nil, err
	}
	return s.saveWithEvents(ctx, order)
}

// Cancel cancels the whole order
func (s *PurchaseOrderService) Cancel(ctx context.Context, orderID uuid.UUID, req *CancelPurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := order.Cancel(req.Reason); err != nil {
		return nil, err
	}
	return s.saveWithEvents(ctx, order)
}

// SetDocumentStorageKey records where the rendered order document lives
func (s *PurchaseOrderService) SetDocumentStorageKey(ctx context.Context, orderID uuid.UUID, key string) error {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return err
	}
	if err := order.SetDocumentStorageKey(key); err != nil {
		return err
	}
	return s.orderRepo.SaveWithLock(ctx, order)
}

// DownloadDocument streams the rendered order document from storage
func (s *PurchaseOrderService) DownloadDocument(ctx context.Context, orderID uuid.UUID) (*DocumentDownload, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.DocumentStorageKey == "" {
		return nil, shared.NewDomainError("NO_DOCUMENT", "Order has no rendered document")
	}

	body, err := s.storage.Get(ctx, order.DocumentStorageKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read order document: %w", err)
	}

	return &DocumentDownload{
		FileName:    fmt.Sprintf("PO-%s.pdf", order.PONumber),
		ContentType: "application/pdf",
		Body:        body,
	}, nil
}

// StatusSummary returns purchase order counts grouped by status
func (s *PurchaseOrderService) StatusSummary(ctx context.Context) (*PurchaseOrderStatusSummary, error) {
	counts, err := s.orderRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	summary := &PurchaseOrderStatusSummary{
		Draft:             counts[procurement.PurchaseOrderStatusDraft],
		Finalized:         counts[procurement.PurchaseOrderStatusFinalized],
		PartiallyReceived: counts[procurement.PurchaseOrderStatusPartiallyReceived],
		Complete:          counts[procurement.PurchaseOrderStatusComplete],
		Cancelled:         counts[procurement.PurchaseOrderStatusCancelled],
	}
	summary.Outstanding = summary.Finalized + summary.PartiallyReceived
	summary.Total = summary.Draft + summary.Finalized + summary.PartiallyReceived + summary.Complete + summary.Cancelled
	return summary, nil
}

// applyVendor loads the vendor and snapshots its name and address onto
// the order
func (s *PurchaseOrderService) applyVendor(ctx context.Context, order *procurement.PurchaseOrder, vendorID uuid.UUID) error {
	vendor, err := s.vendorRepo.FindByID(ctx, vendorID)
	if err != nil {
		return err
	}
	if !vendor.IsActive() {
		return shared.NewDomainError("VENDOR_INACTIVE", "Cannot order from an inactive vendor")
	}
	return order.SetVendor(vendor.ID, vendor.Name, vendor.Address.FullAddress())
}

// applyCompany loads the company and snapshots its name and address onto
// the order
func (s *PurchaseOrderService) applyCompany(ctx context.Context, order *procurement.PurchaseOrder, companyID uuid.UUID) error {
	company, err := s.companyRepo.FindByID(ctx, companyID)
	if err != nil {
		return err
	}
	return order.SetCompany(company.ID, company.Name, company.Address.FullAddress())
}

// applyShipTo loads the shipping location and snapshots its name, address
// and tax rate onto the order
func (s *PurchaseOrderService) applyShipTo(ctx context.Context, order *procurement.PurchaseOrder, locationID uuid.UUID) error {
	location, err := s.locationRepo.FindByID(ctx, locationID)
	if err != nil {
		return err
	}
	return order.SetShipTo(location.ID, location.Name, location.Address.FullAddress(), location.TaxRate)
}

// buildSnapshot refreshes the vendor, company and ship-to details from
// their current records so the finalized order captures what was true at
// finalization time
// Fields whose source record is gone keep the values already on the order
func (s *PurchaseOrderService) buildSnapshot(ctx context.Context, order *procurement.PurchaseOrder) (procurement.OrderSnapshot, error) {
	snapshot := procurement.OrderSnapshot{
		VendorName:     order.VendorName,
		VendorAddress:  order.VendorAddress,
		CompanyName:    order.CompanyName,
		CompanyAddress: order.CompanyAddress,
		ShipToName:     order.ShipToName,
		ShipToAddress:  order.ShipToAddress,
		TaxRate:        order.TaxRate,
	}

	if order.VendorID != nil {
		vendor, err := s.vendorRepo.FindByID(ctx, *order.VendorID)
		if err != nil {
			return snapshot, err
		}
		snapshot.VendorName = vendor.Name
		snapshot.VendorAddress = vendor.Address.FullAddress()
	}

	if order.CompanyID != nil {
		company, err := s.companyRepo.FindByID(ctx, *order.CompanyID)
		if err != nil {
			return snapshot, err
		}
		snapshot.CompanyName = company.Name
		snapshot.CompanyAddress = company.Address.FullAddress()
	} else {
		// Orders without an explicit company bill to the company record
		company, err := s.companyRepo.FindFirst(ctx)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return snapshot, err
		}
		if company != nil {
			snapshot.CompanyName = company.Name
			snapshot.CompanyAddress = company.Address.FullAddress()
		}
	}

	if order.ShippingLocationID != nil {
		location, err := s.locationRepo.FindByID(ctx, *order.ShippingLocationID)
		if err != nil {
			return snapshot, err
		}
		snapshot.ShipToName = location.Name
		snapshot.ShipToAddress = location.Address.FullAddress()
		snapshot.TaxRate = location.TaxRate
	}

	return snapshot, nil
}

// saveWithLock saves the order with optimistic locking and converts it to
// a response
func (s *PurchaseOrderService) saveWithLock(ctx context.Context, order *procurement.PurchaseOrder) (*PurchaseOrderResponse, error) {
	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}
	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// saveWithEvents saves the order with optimistic locking, writes its
// pending events to the outbox in the same transaction and converts it to
// a response
func (s *PurchaseOrderService) saveWithEvents(ctx context.Context, order *procurement.PurchaseOrder) (*PurchaseOrderResponse, error) {
	events := order.GetDomainEvents()
	if err := s.orderRepo.SaveWithLockAndEvents(ctx, order, events); err != nil {
		return nil, err
	}
	order.ClearDomainEvents()

	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// isPONumberConflict reports whether the error is the unique violation
// raised when a concurrent finalize already took the PO number
func isPONumberConflict(err error) bool {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == "PO_NUMBER_TAKEN"
	}
	return false
}
