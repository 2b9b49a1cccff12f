package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/opsdesk/backend/internal/application/procurement"
)

// PurchaseOrderHandler handles purchase order API endpoints
type PurchaseOrderHandler struct {
	BaseHandler
	orderService *procurement.PurchaseOrderService
}

// NewPurchaseOrderHandler creates a new PurchaseOrderHandler
func NewPurchaseOrderHandler(orderService *procurement.PurchaseOrderService) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{
		orderService: orderService,
	}
}

// Create godoc
// @ID           createPurchaseOrder
// @Summary      Create a new purchase order
// @Description  Create a draft purchase order with optional initial items
// @Tags         purchase-orders
// @Accept       json
// @Produce      json
// @Param        request body procurement.CreatePurchaseOrderRequest true "Purchase order creation request"
// @Success      201 {object} APIResponse[procurement.PurchaseOrderResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /procurement/purchase-orders [post]
func (h *PurchaseOrderHandler) Create(c *gin.Context) {
	var req procurement.CreatePurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orderService.Create(c.Request.Context(), &req, actorID(c))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, order)
}

// GetByID godoc
// @ID           getPurchaseOrderById
// @Summary      Get purchase order by ID
// @Description  Retrieve a purchase order with its line items
// @Tags         purchase-orders
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} APIResponse[procurement.PurchaseOrderResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /procurement/purchase-orders/{id} [get]
func (h *PurchaseOrderHandler) GetByID(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	order, err := h.orderService.Get(c.Request.Context(), orderID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, order)
}

// GetByPONumber godoc
// @ID           getPurchaseOrderByNumber
// @Summary      Get purchase order by PO number
// @Description  Retrieve a purchase order by its assigned PO number
// @Tags         purchase-orders
// @Produce      json
// @Param        po_number path string true "PO number"
// @Success      200 {object} APIResponse[procurement.PurchaseOrderResponse]
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /procurement/purchase-orders/number/{po_number} [get]
func (h *PurchaseOrderHandler) GetByPONumber(c *gin.Context) {
	poNumber := c.Param("po_number")
	if poNumber == "" {
		h.BadRequest(c, "PO number is required")
		return
	}

	order, err := h.orderService.GetByPONumber(c.Request.Context(), poNumber)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, order)
}

// List godoc
// @ID           listPurchaseOrders
// @Summary      List purchase orders
// @Description  Retrieve a paginated list of purchase orders with optional filtering
// @Tags         purchase-orders
// @Produce      json
// @Param        search query string false "Search term (PO number, description, vendor)"
// @Param        status query string false "Order status" Enums(DRAFT, FINALIZED, CANCELLED)
// @Param        vendor_id query string false "Vendor ID" format(uuid)
// @Param        min_total query number false "Minimum order total"
// @Param        max_total query number false "Maximum order total"
// @Param        start_date query string false "Start date (YYYY-MM-DD)"
// @Param        end_date query string false "End date (YYYY-MM-DD)"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]procurement.PurchaseOrderListItemResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /procurement/purchase-orders [get]
func (h *PurchaseOrderHandler) List(c *gin.Context) {
	var filter procurement.PurchaseOrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	// Set defaults
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	orders, total, err := h.orderService.List(c.Request.Context(), &filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, orders, total, filter.Page, filter.PageSize)
}

// Update godoc
// @ID           updatePurchaseOrder
// @Summary      Update a draft purchase order
// @Description  Update description, notes or shipping fields while the order is still a draft
// @Tags         purchase-orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Param        request body procurement.UpdatePurchaseOrderRequest true "Order update request"
// @Success      200 {object} APIResponse[procurement.PurchaseOrderResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /procurement/purchase-orders/{id} [put]
func (h *PurchaseOrderHandler) Update(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req procurement.UpdatePurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orderService.Update(c.Request.Context(), orderID, &req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, order)
}

// Delete godoc
// @ID           deletePurchaseOrder
// @Summary      Delete a draft purchase order
// @Description  Delete a purchase order that has not been finalized
// @Tags         purchase-orders
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      204
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /procurement/purchase-orders/{id} [delete]
func (h *PurchaseOrderHandler) Delete(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	if err := h.orderService.Delete(c.Request.Context(), orderID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// SetVendor godoc
// @ID           setPurchaseOrderVendor
// @Summary      Set the order vendor
// @Description  Snapshot the vendor onto a draft order
// @Tags         purchase-orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Param        request body procurement.SetOrderVendorRequest true "Vendor request"
// @Success      200 {object} APIResponse[procurement.PurchaseOrderResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /procurement/purchase-orders/{id}/vendor [post]
func (h *PurchaseOrderHandler) SetVendor(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req procurement.SetOrderVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orderService.SetVendor(c.Request.Context(), orderID, req.VendorID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, order)
}

// SetCompany godoc
// @ID           setPurchaseOrderCompany
// @Summary      Set the ordering company
// @Description  Snapshot the company letterhead onto a draft order
// @Tags         purchase-orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Param        request body procurement.SetOrderCompanyRequest true "Company request"
// @Success      200 {object} APIResponse[procurement.PurchaseOrderResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /procurement/purchase-orders/{id}/company [post]
func (h *PurchaseOrderHandler) SetCompany(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req procurement.SetOrderCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orderService.SetCompany(c.Request.Context(), orderID, req.CompanyID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, order)
}

// SetShipTo godoc
// @ID           setPurchaseOrderShipTo
// @Summary      Set the ship-to location
// @Description  Snapshot the delivery address onto a draft order
// @Tags         purchase-orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Param        request body procurement.SetOrderShipToRequest true "Ship-to request"
// @Success      200 {object} APIResponse[procurement.PurchaseOrderResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /procurement/purchase-orders/{id}/ship-to [post]
func (h *PurchaseOrderHandler) SetShipTo(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req procurement.SetOrderShipToRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orderService.SetShipTo(c.Request.Context(), orderID, req.ShippingLocationID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, order)
}

// AddItem godoc
// @ID           addPurchaseOrderItem
// @Summary      Add a line item
// @Description  Add a line item to a draft order
// @Tags         purchase-orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Param        request body procurement.AddOrderItemRequest true "Line item request"
// @Success      200 {object} APIResponse[procurement.PurchaseOrderResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /procurement/purchase-orders/{id}/items [post]
func (h *PurchaseOrderHandler) AddItem(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req procurement.AddOrderItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orderService.AddItem(c.Request.Context(), orderID, &req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, order)
}

// UpdateItem godoc
// @ID           updatePurchaseOrderItem
// @Summary      Update a line item
// @Description  Update quantity, price or description of a draft order line item
// @Tags         purchase-orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Param        item_id path string true "Item ID" format(uuid)
// @Param        request body procurement.UpdateOrderItemRequest true "Line item update request"
// @Success      200 {object} APIResponse[procurement.PurchaseOrderResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /procurement/purchase-orders/{id}/items/{item_id} [put]
func (h *PurchaseOrderHandler) UpdateItem(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	itemID, err := uuid.Parse(c.Param("item_id"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	var req procurement.UpdateOrderItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orderService.UpdateItem(c.Request.Context(), orderID, itemID, &req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, order)
}

// RemoveItem godoc
// @ID           removePurchaseOrderItem
// @Summary      Remove a line item
// @Description  Remove a line item from a draft order
// @Tags         purchase-orders
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Param        item_id path string true "Item ID" format(uuid)
// @Success      200 {object} APIResponse[procurement.PurchaseOrderResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /procurement/purchase-orders/{id}/items/{item_id} [delete]
func (h *PurchaseOrderHandler) RemoveItem(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	itemID, err := uuid.Parse(c.Param("item_id"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	order, err := h.orderService.RemoveItem(c.Request.Context(), orderID, itemID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, order)
}

// Finalize godoc
// @ID           finalizePurchaseOrder
// @Summary      Finalize a purchase order
// @Description  Assign the PO number, snapshot vendor and addresses, mark items ordered and render the document
// @Tags         purchase-orders
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} APIResponse[procurement.PurchaseOrderResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /procurement/purchase-orders/{id}/finalize [post]
func (h *PurchaseOrderHandler) Finalize(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	order, err := h.orderService.Finalize(c.Request.Context(), orderID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, order)
}

// ReceiveItem godoc
// @ID           receivePurchaseOrderItem
// @Summary      Receive a line item
// @Description  Mark a finalized order line item as received
// @Tags         purchase-orders
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Param        item_id path string true "Item ID" format(uuid)
// @Success      200 {object} APIResponse[procurement.PurchaseOrderResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /procurement/purchase-orders/{id}/items/{item_id}/receive [post]
func (h *PurchaseOrderHandler) ReceiveItem(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	itemID, err := uuid.Parse(c.Param("item_id"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	order, err := h.orderService.ReceiveItem(c.Request.Context(), orderID, itemID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, order)
}

// MarkItemBackordered godoc
// @ID           backorderPurchaseOrderItem
// @Summary      Mark a line item backordered
// @Description  Flag an ordered line item as backordered by the vendor
// @Tags         purchase-orders
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Param        item_id path string true "Item ID" format(uuid)
// @Success      200 {object} APIResponse[procurement.PurchaseOrderResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /procurement/purchase-orders/{id}/items/{item_id}/backorder [post]
func (h *PurchaseOrderHandler) MarkItemBackordered(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	itemID, err := uuid.Parse(c.Param("item_id"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	order, err := h.orderService.MarkItemBackordered(c.Request.Context(), orderID, itemID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, order)
}

// MarkItemOrdered godoc
// @ID           markPurchaseOrderItemOrdered
// @Summary      Mark a line item ordered
// @Description  Return a backordered line item to the ordered state
// @Tags         purchase-orders
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Param        item_id path string true "Item ID" format(uuid)
// @Success      200 {object} APIResponse[procurement.PurchaseOrderResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /procurement/purchase-orders/{id}/items/{item_id}/mark-ordered [post]
func (h *PurchaseOrderHandler) MarkItemOrdered(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	itemID, err := uuid.Parse(c.Param("item_id"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	order, err := h.orderService.MarkItemOrdered(c.Request.Context(), orderID, itemID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, order)
}

// CancelItem godoc
// @ID           cancelPurchaseOrderItem
// @Summary      Cancel a line item
// @Description  Cancel a single line item on a finalized order
// @Tags         purchase-orders
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Param        item_id path string true "Item ID" format(uuid)
// @Success      200 {object} APIResponse[procurement.PurchaseOrderResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /procurement/purchase-orders/{id}/items/{item_id}/cancel [post]
func (h *PurchaseOrderHandler) CancelItem(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	itemID, err := uuid.Parse(c.Param("item_id"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	order, err := h.orderService.CancelItem(c.Request.Context(), orderID, itemID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, order)
}

// Cancel godoc
// @ID           cancelPurchaseOrder
// @Summary      Cancel a purchase order
// @Description  Cancel the whole order with an optional reason
// @Tags         purchase-orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Param        request body procurement.CancelPurchaseOrderRequest false "Cancellation request"
// @Success      200 {object} APIResponse[procurement.PurchaseOrderResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /procurement/purchase-orders/{id}/cancel [post]
func (h *PurchaseOrderHandler) Cancel(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req procurement.CancelPurchaseOrderRequest
	_ = c.ShouldBindJSON(&req) // Allow empty body

	order, err := h.orderService.Cancel(c.Request.Context(), orderID, &req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, order)
}

// GetDocument godoc
// @ID           getPurchaseOrderDocument
// @Summary      Download the order document
// @Description  Stream the rendered purchase order PDF from storage
// @Tags         purchase-orders
// @Produce      application/pdf
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {file} binary
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /procurement/purchase-orders/{id}/document [get]
func (h *PurchaseOrderHandler) GetDocument(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	download, err := h.orderService.DownloadDocument(c.Request.Context(), orderID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	defer download.Body.Close()

	extraHeaders := map[string]string{
		"Content-Disposition": `attachment; filename="` + download.FileName + `"`,
	}
	// Content length is unknown for streamed storage objects
	c.DataFromReader(http.StatusOK, -1, download.ContentType, download.Body, extraHeaders)
}

// GetStatusSummary godoc
// @ID           getPurchaseOrderStatusSummary
// @Summary      Get purchase order status summary
// @Description  Get count of purchase orders by status for dashboard
// @Tags         purchase-orders
// @Produce      json
// @Success      200 {object} APIResponse[procurement.PurchaseOrderStatusSummary]
// @Failure      500 {object} dto.ErrorResponse
// @Router       /procurement/purchase-orders/stats/summary [get]
func (h *PurchaseOrderHandler) GetStatusSummary(c *gin.Context) {
	summary, err := h.orderService.StatusSummary(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, summary)
}
