package procurement

import (
	"bytes"
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/opsdesk/backend/internal/domain/partner"
	"github.com/opsdesk/backend/internal/domain/procurement"
	"github.com/opsdesk/backend/internal/domain/shared"
)

// OrderDocumentRenderer renders a finalized purchase order into a PDF
type OrderDocumentRenderer interface {
	RenderPurchaseOrder(ctx context.Context, order *procurement.PurchaseOrder) ([]byte, error)
}

// VendorMailer emails a finalized order document to the vendor
type VendorMailer interface {
	SendPurchaseOrder(ctx context.Context, to, vendorName, poNumber string, document []byte) error
}

// PurchaseOrderFinalizedHandler handles PurchaseOrderFinalizedEvent
// It renders the order PDF, stores it and emails it to the vendor
type PurchaseOrderFinalizedHandler struct {
	orderRepo  procurement.Repository
	vendorRepo partner.VendorRepository
	renderer   OrderDocumentRenderer
	storage    ObjectStorage
	mailer     VendorMailer
	logger     *zap.Logger
}

// NewPurchaseOrderFinalizedHandler creates a new handler for finalized order events
func NewPurchaseOrderFinalizedHandler(
	orderRepo procurement.Repository,
	vendorRepo partner.VendorRepository,
	renderer OrderDocumentRenderer,
	storage ObjectStorage,
	mailer VendorMailer,
	logger *zap.Logger,
) *PurchaseOrderFinalizedHandler {
	return &PurchaseOrderFinalizedHandler{
		orderRepo:  orderRepo,
		vendorRepo: vendorRepo,
		renderer:   renderer,
		storage:    storage,
		mailer:     mailer,
		logger:     logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *PurchaseOrderFinalizedHandler) EventTypes() []string {
	return []string{procurement.EventTypePurchaseOrderFinalized}
}

// Handle processes a PurchaseOrderFinalizedEvent
// Rendering and storage failures are returned so the outbox retries them,
// a failed vendor email is only logged because the document is already on
// record and the order must stay finalized either way
func (h *PurchaseOrderFinalizedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	finalizedEvent, ok := event.(*procurement.PurchaseOrderFinalizedEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", procurement.EventTypePurchaseOrderFinalized),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			procurement.EventTypePurchaseOrderFinalized, event.EventType())
	}

	h.logger.Info("processing finalized purchase order",
		zap.String("order_id", finalizedEvent.OrderID.String()),
		zap.String("po_number", finalizedEvent.PONumber),
		zap.String("vendor_name", finalizedEvent.VendorName),
	)

	order, err := h.orderRepo.FindByID(ctx, finalizedEvent.OrderID)
	if err != nil {
		h.logger.Error("failed to load finalized order",
			zap.String("order_id", finalizedEvent.OrderID.String()),
			zap.Error(err),
		)
		return fmt.Errorf("failed to load finalized order: %w", err)
	}

	document, err := h.renderer.RenderPurchaseOrder(ctx, order)
	if err != nil {
		h.logger.Error("failed to render order document",
			zap.String("order_id", order.ID.String()),
			zap.String("po_number", order.PONumber),
			zap.Error(err),
		)
		return fmt.Errorf("failed to render order document: %w", err)
	}

	key := orderDocumentKey(order)
	if err := h.storage.Put(ctx, key, "application/pdf", bytes.NewReader(document), int64(len(document))); err != nil {
		h.logger.Error("failed to store order document",
			zap.String("order_id", order.ID.String()),
			zap.String("storage_key", key),
			zap.Error(err),
		)
		return fmt.Errorf("failed to store order document: %w", err)
	}

	if err := order.SetDocumentStorageKey(key); err != nil {
		return err
	}
	if err := h.orderRepo.SaveWithLock(ctx, order); err != nil {
		h.logger.Error("failed to record order document key",
			zap.String("order_id", order.ID.String()),
			zap.String("storage_key", key),
			zap.Error(err),
		)
		return fmt.Errorf("failed to record order document key: %w", err)
	}

	h.logger.Info("order document stored",
		zap.String("order_id", order.ID.String()),
		zap.String("po_number", order.PONumber),
		zap.String("storage_key", key),
	)

	h.emailVendor(ctx, order, document)

	return nil
}

// emailVendor sends the order document to the vendor's ordering address
// when the vendor has one
func (h *PurchaseOrderFinalizedHandler) emailVendor(ctx context.Context, order *procurement.PurchaseOrder, document []byte) {
	if h.mailer == nil {
		h.logger.Info("outbound mail not configured, skipping vendor email",
			zap.String("order_id", order.ID.String()),
			zap.String("po_number", order.PONumber),
		)
		return
	}
	if order.VendorID == nil {
		h.logger.Info("order has no vendor, skipping vendor email",
			zap.String("order_id", order.ID.String()),
			zap.String("po_number", order.PONumber),
		)
		return
	}

	vendor, err := h.vendorRepo.FindByID(ctx, *order.VendorID)
	if err != nil {
		h.logger.Warn("failed to load vendor for order email",
			zap.String("order_id", order.ID.String()),
			zap.String("vendor_id", order.VendorID.String()),
			zap.Error(err),
		)
		return
	}

	to := vendor.OrderingEmail()
	if to == "" {
		h.logger.Info("vendor has no email address, skipping vendor email",
			zap.String("order_id", order.ID.String()),
			zap.String("vendor_name", vendor.Name),
		)
		return
	}

	if err := h.mailer.SendPurchaseOrder(ctx, to, vendor.Name, order.PONumber, document); err != nil {
		h.logger.Warn("failed to email order to vendor",
			zap.String("order_id", order.ID.String()),
			zap.String("po_number", order.PONumber),
			zap.String("to", to),
			zap.Error(err),
		)
		return
	}

	h.logger.Info("order emailed to vendor",
		zap.String("order_id", order.ID.String()),
		zap.String("po_number", order.PONumber),
		zap.String("to", to),
	)
}

// orderDocumentKey builds the storage key for a rendered order document
func orderDocumentKey(order *procurement.PurchaseOrder) string {
	return fmt.Sprintf("purchase-orders/%s/PO-%s.pdf", order.ID, order.PONumber)
}

// Ensure PurchaseOrderFinalizedHandler implements shared.EventHandler
var _ shared.EventHandler = (*PurchaseOrderFinalizedHandler)(nil)
