package procurement

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helpers for PurchaseOrder
func createTestOrder(t *testing.T) *PurchaseOrder {
	t.Helper()
	order := NewPurchaseOrder()
	order.ClearDomainEvents()
	return order
}

func addTestItem(t *testing.T, order *PurchaseOrder, description string, quantity, unitPrice float64) *PlannedItem {
	t.Helper()
	item, err := order.AddItem(description, "", "IT", decimal.NewFromFloat(quantity), decimal.NewFromFloat(unitPrice))
	require.NoError(t, err)
	return item
}

func testSnapshot() OrderSnapshot {
	return OrderSnapshot{
		VendorName:     "Acme Supply Co",
		VendorAddress:  "12 Industrial Way, Springfield",
		CompanyName:    "OpsDesk Inc",
		CompanyAddress: "400 Main St, Springfield",
		ShipToName:     "Main Office",
		ShipToAddress:  "400 Main St, Springfield",
		TaxRate:        decimal.RequireFromString("0.0825"),
	}
}

// readyTestOrder returns a draft order with a vendor, ship-to, and one item,
// ready to finalize
func readyTestOrder(t *testing.T) *PurchaseOrder {
	t.Helper()
	order := createTestOrder(t)
	require.NoError(t, order.SetVendor(uuid.New(), "Acme Supply Co", "12 Industrial Way"))
	require.NoError(t, order.SetShipTo(uuid.New(), "Main Office", "400 Main St", decimal.RequireFromString("0.0825")))
	addTestItem(t, order, "Standing desk", 1, 499.00)
	return order
}

func finalizedTestOrder(t *testing.T) *PurchaseOrder {
	t.Helper()
	order := readyTestOrder(t)
	require.NoError(t, order.Finalize("1000", testSnapshot()))
	order.ClearDomainEvents()
	return order
}

// ============================================
// PurchaseOrderStatus Tests
// ============================================

func TestPurchaseOrderStatus_IsValid(t *testing.T) {
	tests := []struct {
		status  PurchaseOrderStatus
		isValid bool
	}{
		{PurchaseOrderStatusDraft, true},
		{PurchaseOrderStatusFinalized, true},
		{PurchaseOrderStatusPartiallyReceived, true},
		{PurchaseOrderStatusComplete, true},
		{PurchaseOrderStatusCancelled, true},
		{PurchaseOrderStatus("INVALID"), false},
		{PurchaseOrderStatus(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.status.IsValid())
		})
	}
}

func TestPurchaseOrderStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from     PurchaseOrderStatus
		to       PurchaseOrderStatus
		canTrans bool
	}{
		// From DRAFT
		{PurchaseOrderStatusDraft, PurchaseOrderStatusFinalized, true},
		{PurchaseOrderStatusDraft, PurchaseOrderStatusCancelled, true},
		{PurchaseOrderStatusDraft, PurchaseOrderStatusPartiallyReceived, false},
		{PurchaseOrderStatusDraft, PurchaseOrderStatusComplete, false},
		// From FINALIZED
		{PurchaseOrderStatusFinalized, PurchaseOrderStatusPartiallyReceived, true},
		{PurchaseOrderStatusFinalized, PurchaseOrderStatusComplete, true},
		{PurchaseOrderStatusFinalized, PurchaseOrderStatusCancelled, true},
		{PurchaseOrderStatusFinalized, PurchaseOrderStatusDraft, false},
		// From PARTIALLY_RECEIVED
		{PurchaseOrderStatusPartiallyReceived, PurchaseOrderStatusPartiallyReceived, true},
		{PurchaseOrderStatusPartiallyReceived, PurchaseOrderStatusComplete, true},
		{PurchaseOrderStatusPartiallyReceived, PurchaseOrderStatusCancelled, false}, // Cannot cancel after receiving
		{PurchaseOrderStatusPartiallyReceived, PurchaseOrderStatusDraft, false},
		// From COMPLETE (terminal)
		{PurchaseOrderStatusComplete, PurchaseOrderStatusDraft, false},
		{PurchaseOrderStatusComplete, PurchaseOrderStatusCancelled, false},
		// From CANCELLED (terminal)
		{PurchaseOrderStatusCancelled, PurchaseOrderStatusDraft, false},
		{PurchaseOrderStatusCancelled, PurchaseOrderStatusFinalized, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.canTrans, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestPurchaseOrderStatus_CanReceive(t *testing.T) {
	tests := []struct {
		status     PurchaseOrderStatus
		canReceive bool
	}{
		{PurchaseOrderStatusDraft, false},
		{PurchaseOrderStatusFinalized, true},
		{PurchaseOrderStatusPartiallyReceived, true},
		{PurchaseOrderStatusComplete, false},
		{PurchaseOrderStatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.canReceive, tt.status.CanReceive())
		})
	}
}

// ============================================
// NewPurchaseOrder Tests
// ============================================

func TestNewPurchaseOrder(t *testing.T) {
	t.Run("creates empty draft order", func(t *testing.T) {
		order := NewPurchaseOrder()

		assert.Equal(t, PurchaseOrderStatusDraft, order.Status)
		assert.Empty(t, order.PONumber)
		assert.Nil(t, order.VendorID)
		assert.Nil(t, order.ShippingLocationID)
		assert.Empty(t, order.Items)
		assert.True(t, order.Subtotal.IsZero())
		assert.True(t, order.TaxAmount.IsZero())
		assert.True(t, order.GrandTotal.IsZero())
		assert.NotEmpty(t, order.ID)
	})

	t.Run("publishes PurchaseOrderCreated event", func(t *testing.T) {
		order := NewPurchaseOrder()

		events := order.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypePurchaseOrderCreated, events[0].EventType())
	})
}

// ============================================
// Item Management Tests
// ============================================

func TestPurchaseOrder_AddItem(t *testing.T) {
	t.Run("adds item and recalculates totals", func(t *testing.T) {
		order := createTestOrder(t)

		item, err := order.AddItem("Laser toner", "TN-660", "IT", decimal.NewFromInt(3), decimal.NewFromFloat(19.99))
		require.NoError(t, err)

		assert.Equal(t, PlannedItemStatusPlanned, item.Status)
		assert.True(t, item.Amount.Equal(decimal.RequireFromString("59.97")))
		assert.True(t, order.Subtotal.Equal(decimal.RequireFromString("59.97")))
		assert.Equal(t, 1, order.ItemCount())
	})

	t.Run("rejects invalid items", func(t *testing.T) {
		order := createTestOrder(t)

		_, err := order.AddItem("", "", "", decimal.NewFromInt(1), decimal.NewFromInt(10))
		assert.Error(t, err)

		_, err = order.AddItem("Toner", "", "", decimal.Zero, decimal.NewFromInt(10))
		assert.Error(t, err)

		_, err = order.AddItem("Toner", "", "", decimal.NewFromInt(1), decimal.NewFromInt(-10))
		assert.Error(t, err)
	})

	t.Run("rejects items on finalized order", func(t *testing.T) {
		order := finalizedTestOrder(t)

		_, err := order.AddItem("Late addition", "", "", decimal.NewFromInt(1), decimal.NewFromInt(10))
		assert.Error(t, err)
	})
}

func TestPurchaseOrder_UpdateItem(t *testing.T) {
	order := createTestOrder(t)
	item := addTestItem(t, order, "Laser toner", 3, 19.99)

	err := order.UpdateItem(item.ID, "Laser toner XL", "TN-660XL", "IT", decimal.NewFromInt(2), decimal.NewFromFloat(29.99))
	require.NoError(t, err)

	updated := order.GetItem(item.ID)
	require.NotNil(t, updated)
	assert.Equal(t, "Laser toner XL", updated.Description)
	assert.True(t, updated.Amount.Equal(decimal.RequireFromString("59.98")))
	assert.True(t, order.Subtotal.Equal(decimal.RequireFromString("59.98")))
}

func TestPurchaseOrder_UpdateItem_NotFound(t *testing.T) {
	order := createTestOrder(t)

	err := order.UpdateItem(uuid.New(), "Missing", "", "", decimal.NewFromInt(1), decimal.NewFromInt(10))
	assert.Error(t, err)
}

func TestPurchaseOrder_RemoveItem(t *testing.T) {
	order := createTestOrder(t)
	item := addTestItem(t, order, "Laser toner", 3, 19.99)
	addTestItem(t, order, "Paper", 10, 4.50)

	err := order.RemoveItem(item.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, order.ItemCount())
	assert.True(t, order.Subtotal.Equal(decimal.RequireFromString("45")))
}

// ============================================
// Header Tests
// ============================================

func TestPurchaseOrder_SetVendor(t *testing.T) {
	order := createTestOrder(t)
	vendorID := uuid.New()

	err := order.SetVendor(vendorID, "Acme Supply Co", "12 Industrial Way")
	require.NoError(t, err)
	assert.Equal(t, &vendorID, order.VendorID)
	assert.Equal(t, "Acme Supply Co", order.VendorName)

	err = order.SetVendor(uuid.Nil, "Acme", "")
	assert.Error(t, err)

	err = order.SetVendor(uuid.New(), "", "")
	assert.Error(t, err)
}

func TestPurchaseOrder_SetShipTo(t *testing.T) {
	order := createTestOrder(t)
	addTestItem(t, order, "Standing desk", 1, 100.00)

	err := order.SetShipTo(uuid.New(), "Warehouse", "9 Dock Rd", decimal.RequireFromString("0.10"))
	require.NoError(t, err)

	assert.True(t, order.TaxRate.Equal(decimal.RequireFromString("0.10")))
	assert.True(t, order.TaxAmount.Equal(decimal.RequireFromString("10")))
	assert.True(t, order.GrandTotal.Equal(decimal.RequireFromString("110")))
}

func TestPurchaseOrder_SetShipTo_NegativeRate(t *testing.T) {
	order := createTestOrder(t)

	err := order.SetShipTo(uuid.New(), "Warehouse", "9 Dock Rd", decimal.RequireFromString("-0.05"))
	assert.Error(t, err)
}

func TestPurchaseOrder_SetShippingCost(t *testing.T) {
	order := createTestOrder(t)
	addTestItem(t, order, "Paper", 10, 4.50)

	err := order.SetShippingCost(decimal.RequireFromString("12.50"))
	require.NoError(t, err)
	assert.True(t, order.GrandTotal.Equal(decimal.RequireFromString("57.50")))

	err = order.SetShippingCost(decimal.RequireFromString("-1"))
	assert.Error(t, err)
}

func TestPurchaseOrder_Totals(t *testing.T) {
	order := createTestOrder(t)
	addTestItem(t, order, "Laser toner", 3, 19.99)
	addTestItem(t, order, "Standing desk", 1, 100.00)
	require.NoError(t, order.SetShipTo(uuid.New(), "Main Office", "400 Main St", decimal.RequireFromString("0.0825")))
	require.NoError(t, order.SetShippingCost(decimal.RequireFromString("12.50")))

	// 159.97 * 0.0825 = 13.197525, rounded to 13.20
	assert.True(t, order.Subtotal.Equal(decimal.RequireFromString("159.97")), "subtotal was %s", order.Subtotal)
	assert.True(t, order.TaxAmount.Equal(decimal.RequireFromString("13.20")), "tax was %s", order.TaxAmount)
	assert.True(t, order.GrandTotal.Equal(decimal.RequireFromString("185.67")), "grand total was %s", order.GrandTotal)
}

// ============================================
// Finalize Tests
// ============================================

func TestPurchaseOrder_Finalize(t *testing.T) {
	t.Run("finalizes a ready order", func(t *testing.T) {
		order := readyTestOrder(t)

		err := order.Finalize("1000", testSnapshot())
		require.NoError(t, err)

		assert.Equal(t, PurchaseOrderStatusFinalized, order.Status)
		assert.Equal(t, "1000", order.PONumber)
		assert.NotNil(t, order.FinalizedAt)
		for _, item := range order.Items {
			assert.Equal(t, PlannedItemStatusOrdered, item.Status)
		}

		events := order.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypePurchaseOrderFinalized, events[0].EventType())
	})

	t.Run("refreshes snapshots from current records", func(t *testing.T) {
		order := readyTestOrder(t)

		snapshot := testSnapshot()
		snapshot.VendorName = "Acme Supply Company LLC"
		snapshot.TaxRate = decimal.RequireFromString("0.09")

		require.NoError(t, order.Finalize("1001", snapshot))

		assert.Equal(t, "Acme Supply Company LLC", order.VendorName)
		assert.True(t, order.TaxRate.Equal(decimal.RequireFromString("0.09")))
		// 499.00 * 0.09 = 44.91
		assert.True(t, order.TaxAmount.Equal(decimal.RequireFromString("44.91")))
	})

	t.Run("requires at least one item", func(t *testing.T) {
		order := createTestOrder(t)
		require.NoError(t, order.SetVendor(uuid.New(), "Acme", ""))
		require.NoError(t, order.SetShipTo(uuid.New(), "Office", "", decimal.Zero))

		err := order.Finalize("1000", testSnapshot())
		assert.Error(t, err)
	})

	t.Run("requires a vendor", func(t *testing.T) {
		order := createTestOrder(t)
		require.NoError(t, order.SetShipTo(uuid.New(), "Office", "", decimal.Zero))
		addTestItem(t, order, "Paper", 1, 4.50)

		err := order.Finalize("1000", testSnapshot())
		assert.Error(t, err)
	})

	t.Run("requires a ship-to location", func(t *testing.T) {
		order := createTestOrder(t)
		require.NoError(t, order.SetVendor(uuid.New(), "Acme", ""))
		addTestItem(t, order, "Paper", 1, 4.50)

		err := order.Finalize("1000", testSnapshot())
		assert.Error(t, err)
	})

	t.Run("rejects non-numeric PO numbers", func(t *testing.T) {
		order := readyTestOrder(t)

		err := order.Finalize("PO-1000", testSnapshot())
		assert.Error(t, err)
	})

	t.Run("cannot finalize twice", func(t *testing.T) {
		order := finalizedTestOrder(t)

		err := order.Finalize("1001", testSnapshot())
		assert.Error(t, err)
	})
}

// ============================================
// Receiving Tests
// ============================================

func TestPurchaseOrder_ReceiveItem(t *testing.T) {
	t.Run("partial receipt moves order to PARTIALLY_RECEIVED", func(t *testing.T) {
		order := readyTestOrder(t)
		addTestItem(t, order, "Monitor arm", 2, 85.00)
		require.NoError(t, order.Finalize("1000", testSnapshot()))
		order.ClearDomainEvents()

		err := order.ReceiveItem(order.Items[0].ID)
		require.NoError(t, err)

		assert.Equal(t, PurchaseOrderStatusPartiallyReceived, order.Status)
		assert.True(t, order.Items[0].IsReceived())
		assert.NotNil(t, order.Items[0].ReceivedAt)

		events := order.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypePurchaseOrderItemReceived, events[0].EventType())
	})

	t.Run("receiving the last item completes the order", func(t *testing.T) {
		order := readyTestOrder(t)
		addTestItem(t, order, "Monitor arm", 2, 85.00)
		require.NoError(t, order.Finalize("1000", testSnapshot()))
		order.ClearDomainEvents()

		require.NoError(t, order.ReceiveItem(order.Items[0].ID))
		require.NoError(t, order.ReceiveItem(order.Items[1].ID))

		assert.Equal(t, PurchaseOrderStatusComplete, order.Status)
		assert.NotNil(t, order.CompletedAt)

		events := order.GetDomainEvents()
		require.Len(t, events, 3)
		assert.Equal(t, EventTypePurchaseOrderCompleted, events[2].EventType())
	})

	t.Run("cannot receive on a draft order", func(t *testing.T) {
		order := createTestOrder(t)
		item := addTestItem(t, order, "Paper", 1, 4.50)

		err := order.ReceiveItem(item.ID)
		assert.Error(t, err)
	})

	t.Run("cannot receive the same item twice", func(t *testing.T) {
		order := finalizedTestOrder(t)
		require.NoError(t, order.ReceiveItem(order.Items[0].ID))

		err := order.ReceiveItem(order.Items[0].ID)
		assert.Error(t, err)
	})
}

func TestPurchaseOrder_Backorder(t *testing.T) {
	order := readyTestOrder(t)
	require.NoError(t, order.Finalize("1000", testSnapshot()))
	itemID := order.Items[0].ID

	require.NoError(t, order.MarkItemBackordered(itemID))
	assert.Equal(t, PlannedItemStatusBackordered, order.Items[0].Status)

	// Backordered items can still be received when they arrive
	require.NoError(t, order.ReceiveItem(itemID))
	assert.True(t, order.Items[0].IsReceived())
}

func TestPurchaseOrder_MarkItemOrdered(t *testing.T) {
	order := finalizedTestOrder(t)
	itemID := order.Items[0].ID

	require.NoError(t, order.MarkItemBackordered(itemID))
	require.NoError(t, order.MarkItemOrdered(itemID))
	assert.Equal(t, PlannedItemStatusOrdered, order.Items[0].Status)

	err := order.MarkItemOrdered(itemID)
	assert.Error(t, err)
}

func TestPurchaseOrder_CancelItem(t *testing.T) {
	t.Run("cancelled item drops out of totals", func(t *testing.T) {
		order := readyTestOrder(t)
		extra := addTestItem(t, order, "Monitor arm", 2, 85.00)
		require.NoError(t, order.Finalize("1000", testSnapshot()))

		grandBefore := order.GrandTotal
		require.NoError(t, order.CancelItem(extra.ID))

		assert.True(t, order.GrandTotal.LessThan(grandBefore))
		assert.True(t, order.Subtotal.Equal(decimal.RequireFromString("499")))
	})

	t.Run("cancelling the last outstanding item completes the order", func(t *testing.T) {
		order := readyTestOrder(t)
		extra := addTestItem(t, order, "Monitor arm", 2, 85.00)
		require.NoError(t, order.Finalize("1000", testSnapshot()))

		require.NoError(t, order.ReceiveItem(order.Items[0].ID))
		require.NoError(t, order.CancelItem(extra.ID))

		assert.Equal(t, PurchaseOrderStatusComplete, order.Status)
	})

	t.Run("cannot cancel a received item", func(t *testing.T) {
		order := finalizedTestOrder(t)
		require.NoError(t, order.ReceiveItem(order.Items[0].ID))

		err := order.CancelItem(order.Items[0].ID)
		assert.Error(t, err)
	})
}

// ============================================
// Cancel Tests
// ============================================

func TestPurchaseOrder_Cancel(t *testing.T) {
	t.Run("cancels a draft order", func(t *testing.T) {
		order := createTestOrder(t)

		err := order.Cancel("Duplicate request")
		require.NoError(t, err)

		assert.Equal(t, PurchaseOrderStatusCancelled, order.Status)
		assert.NotNil(t, order.CancelledAt)
		assert.Equal(t, "Duplicate request", order.CancelReason)
	})

	t.Run("cancels a finalized order and flags vendor notification", func(t *testing.T) {
		order := finalizedTestOrder(t)

		err := order.Cancel("Vendor out of stock")
		require.NoError(t, err)

		events := order.GetDomainEvents()
		require.Len(t, events, 1)
		cancelled, ok := events[0].(*PurchaseOrderCancelledEvent)
		require.True(t, ok)
		assert.True(t, cancelled.WasFinalized)
	})

	t.Run("requires a reason", func(t *testing.T) {
		order := createTestOrder(t)

		err := order.Cancel("")
		assert.Error(t, err)
	})

	t.Run("cannot cancel after receiving items", func(t *testing.T) {
		order := readyTestOrder(t)
		addTestItem(t, order, "Monitor arm", 2, 85.00)
		require.NoError(t, order.Finalize("1000", testSnapshot()))
		require.NoError(t, order.ReceiveItem(order.Items[0].ID))

		err := order.Cancel("Changed our minds")
		assert.Error(t, err)
	})
}

// ============================================
// Misc Tests
// ============================================

func TestPurchaseOrder_SetDocumentStorageKey(t *testing.T) {
	order := finalizedTestOrder(t)

	err := order.SetDocumentStorageKey("purchase-orders/1000.pdf")
	require.NoError(t, err)
	assert.Equal(t, "purchase-orders/1000.pdf", order.DocumentStorageKey)

	draft := createTestOrder(t)
	err = draft.SetDocumentStorageKey("purchase-orders/draft.pdf")
	assert.Error(t, err)
}

func TestPurchaseOrder_Reference(t *testing.T) {
	order := createTestOrder(t)
	assert.Equal(t, "Draft PO", order.Reference())

	order = finalizedTestOrder(t)
	assert.Equal(t, "PO #1000", order.Reference())
}

func TestPurchaseOrder_OutstandingItems(t *testing.T) {
	order := readyTestOrder(t)
	addTestItem(t, order, "Monitor arm", 2, 85.00)
	require.NoError(t, order.Finalize("1000", testSnapshot()))

	assert.Len(t, order.OutstandingItems(), 2)

	require.NoError(t, order.ReceiveItem(order.Items[0].ID))
	assert.Len(t, order.OutstandingItems(), 1)
}
