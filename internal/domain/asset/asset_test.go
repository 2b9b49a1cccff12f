package asset

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestAsset(t *testing.T) *Asset {
	t.Helper()
	asset, err := NewAsset("LT-0042", "Engineering Laptop")
	require.NoError(t, err)
	asset.ClearDomainEvents()
	return asset
}

func TestNewAsset(t *testing.T) {
	t.Run("creates asset with valid input", func(t *testing.T) {
		asset, err := NewAsset("lt-0042", "Engineering Laptop")
		require.NoError(t, err)

		assert.Equal(t, "LT-0042", asset.Tag)
		assert.Equal(t, "Engineering Laptop", asset.Name)
		assert.Equal(t, AssetStatusInService, asset.Status)
		assert.Nil(t, asset.AssignedToID)

		events := asset.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeAssetCreated, events[0].EventType())
	})

	t.Run("fails with empty tag", func(t *testing.T) {
		_, err := NewAsset("", "Laptop")
		assert.Error(t, err)
	})

	t.Run("fails with invalid characters in tag", func(t *testing.T) {
		_, err := NewAsset("LT 0042!", "Laptop")
		assert.Error(t, err)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewAsset("LT-0042", "  ")
		assert.Error(t, err)
	})
}

func TestAsset_Update(t *testing.T) {
	asset := createTestAsset(t)

	require.NoError(t, asset.Update("Dev Laptop", "16GB model", "SN12345", "XPS-15"))
	assert.Equal(t, "Dev Laptop", asset.Name)
	assert.Equal(t, "SN12345", asset.SerialNumber)
	assert.Equal(t, "XPS-15", asset.ModelName)

	events := asset.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventTypeAssetUpdated, events[0].EventType())

	assert.Error(t, asset.Update("", "", "", ""))
}

func TestAsset_Classify(t *testing.T) {
	asset := createTestAsset(t)
	categoryID := uuid.New()
	locationID := uuid.New()

	asset.Classify(&categoryID, nil, nil, &locationID)
	require.NotNil(t, asset.CategoryID)
	assert.Equal(t, categoryID, *asset.CategoryID)
	assert.Nil(t, asset.ManufacturerID)
	assert.Equal(t, locationID, *asset.LocationID)
}

func TestAsset_SetPurchaseInfo(t *testing.T) {
	asset := createTestAsset(t)
	date := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	warranty := date.AddDate(3, 0, 0)

	require.NoError(t, asset.SetPurchaseInfo(&date, decimal.NewFromFloat(1499.99), &warranty))
	require.NotNil(t, asset.PurchaseDate)
	assert.True(t, asset.PurchasePrice.Equal(decimal.NewFromFloat(1499.99)))
	require.NotNil(t, asset.WarrantyExpires)
	assert.Equal(t, warranty, *asset.WarrantyExpires)

	assert.Error(t, asset.SetPurchaseInfo(nil, decimal.NewFromInt(-1), nil))
}

func TestAsset_CheckoutCheckin(t *testing.T) {
	asset := createTestAsset(t)
	userID := uuid.New()
	dueBack := time.Now().AddDate(0, 0, 14)

	t.Run("checks out to user", func(t *testing.T) {
		err := asset.Checkout(userID, &dueBack)
		require.NoError(t, err)
		assert.True(t, asset.IsCheckedOut())
		require.NotNil(t, asset.AssignedToID)
		assert.Equal(t, userID, *asset.AssignedToID)
		assert.NotNil(t, asset.CheckedOutAt)
		require.NotNil(t, asset.DueBack)
		assert.Equal(t, dueBack, *asset.DueBack)

		events := asset.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeAssetCheckedOut, events[0].EventType())
	})

	t.Run("fails when already checked out", func(t *testing.T) {
		err := asset.Checkout(uuid.New(), nil)
		assert.Error(t, err)
	})

	t.Run("checks in", func(t *testing.T) {
		asset.ClearDomainEvents()
		err := asset.Checkin()
		require.NoError(t, err)
		assert.False(t, asset.IsCheckedOut())
		assert.Nil(t, asset.CheckedOutAt)
		assert.Nil(t, asset.DueBack)

		events := asset.GetDomainEvents()
		require.Len(t, events, 1)
		checkedIn, ok := events[0].(*AssetCheckedInEvent)
		require.True(t, ok)
		assert.Equal(t, userID, checkedIn.UserID)
	})

	t.Run("fails when not checked out", func(t *testing.T) {
		assert.Error(t, asset.Checkin())
	})

	t.Run("rejects nil user", func(t *testing.T) {
		assert.Error(t, asset.Checkout(uuid.Nil, nil))
	})
}

func TestAsset_RetireRestore(t *testing.T) {
	asset := createTestAsset(t)

	t.Run("cannot retire while checked out", func(t *testing.T) {
		require.NoError(t, asset.Checkout(uuid.New(), nil))
		assert.Error(t, asset.Retire())
		require.NoError(t, asset.Checkin())
	})

	t.Run("retires", func(t *testing.T) {
		asset.ClearDomainEvents()
		require.NoError(t, asset.Retire())
		assert.True(t, asset.IsRetired())

		events := asset.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeAssetRetired, events[0].EventType())
	})

	t.Run("cannot check out retired asset", func(t *testing.T) {
		assert.Error(t, asset.Checkout(uuid.New(), nil))
	})

	t.Run("restores", func(t *testing.T) {
		require.NoError(t, asset.Restore())
		assert.False(t, asset.IsRetired())
	})
}

func TestNewAudit(t *testing.T) {
	assetID := uuid.New()
	userID := uuid.New()

	t.Run("records audit", func(t *testing.T) {
		audit, err := NewAudit(assetID, &userID, AuditActionAudit, "verified in server room")
		require.NoError(t, err)
		assert.Equal(t, assetID, audit.AssetID)
		assert.Equal(t, userID, *audit.UserID)
		assert.Equal(t, AuditActionAudit, audit.Action)
		assert.False(t, audit.AuditedAt.IsZero())
	})

	t.Run("records location", func(t *testing.T) {
		audit, err := NewAudit(assetID, &userID, AuditActionAudit, "")
		require.NoError(t, err)

		locationID := uuid.New()
		audit.SetLocation(&locationID)
		require.NotNil(t, audit.LocationID)
		assert.Equal(t, locationID, *audit.LocationID)
	})

	t.Run("fails with nil asset", func(t *testing.T) {
		_, err := NewAudit(uuid.Nil, &userID, AuditActionAudit, "")
		assert.Error(t, err)
	})

	t.Run("fails with unknown action", func(t *testing.T) {
		_, err := NewAudit(assetID, &userID, "MISPLACED", "")
		assert.Error(t, err)
	})
}

func TestPicklists(t *testing.T) {
	t.Run("category", func(t *testing.T) {
		c, err := NewCategory("Laptop")
		require.NoError(t, err)
		assert.Equal(t, "Laptop", c.Name)
		assert.True(t, c.Active)
		require.NoError(t, c.Rename("Notebook"))
		assert.Equal(t, "Notebook", c.Name)

		c.SetActive(false)
		assert.False(t, c.Active)
	})

	t.Run("manufacturer", func(t *testing.T) {
		m, err := NewManufacturer("Dell")
		require.NoError(t, err)
		assert.Equal(t, "Dell", m.Name)
	})

	t.Run("condition", func(t *testing.T) {
		c, err := NewCondition("Needs Repair")
		require.NoError(t, err)
		assert.Equal(t, "Needs Repair", c.Name)
	})

	t.Run("location", func(t *testing.T) {
		l, err := NewLocation("Server Room")
		require.NoError(t, err)
		assert.Equal(t, "Server Room", l.Name)
	})

	t.Run("rejects empty names", func(t *testing.T) {
		_, err := NewCategory(" ")
		assert.Error(t, err)
		_, err = NewManufacturer("")
		assert.Error(t, err)
	})
}
