package procurement

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/opsdesk/backend/internal/domain/partner"
	"github.com/opsdesk/backend/internal/domain/procurement"
	"github.com/opsdesk/backend/internal/domain/shared"
	"github.com/opsdesk/backend/internal/domain/shared/valueobject"
)

// MockPurchaseOrderRepository is a mock implementation of procurement.Repository
type MockPurchaseOrderRepository struct {
	mock.Mock
}

func (m *MockPurchaseOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*procurement.PurchaseOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*procurement.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) FindByPONumber(ctx context.Context, poNumber string) (*procurement.PurchaseOrder, error) {
	args := m.Called(ctx, poNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*procurement.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]procurement.PurchaseOrder, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]procurement.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) FindByStatus(ctx context.Context, status procurement.PurchaseOrderStatus, filter shared.Filter) ([]procurement.PurchaseOrder, error) {
	args := m.Called(ctx, status, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]procurement.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) FindByVendor(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) ([]procurement.PurchaseOrder, error) {
	args := m.Called(ctx, vendorID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]procurement.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) MaxNumericPONumber(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockPurchaseOrderRepository) ExistsPONumber(ctx context.Context, poNumber string) (bool, error) {
	args := m.Called(ctx, poNumber)
	return args.Bool(0), args.Error(1)
}

func (m *MockPurchaseOrderRepository) Save(ctx context.Context, order *procurement.PurchaseOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockPurchaseOrderRepository) SaveWithLock(ctx context.Context, order *procurement.PurchaseOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockPurchaseOrderRepository) SaveWithLockAndEvents(ctx context.Context, order *procurement.PurchaseOrder, events []shared.DomainEvent) error {
	args := m.Called(ctx, order, events)
	return args.Error(0)
}

func (m *MockPurchaseOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPurchaseOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPurchaseOrderRepository) CountByStatus(ctx context.Context) (map[procurement.PurchaseOrderStatus]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[procurement.PurchaseOrderStatus]int64), args.Error(1)
}

// MockVendorRepository is a mock implementation of partner.VendorRepository
type MockVendorRepository struct {
	mock.Mock
}

func (m *MockVendorRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Vendor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Vendor), args.Error(1)
}

func (m *MockVendorRepository) FindByName(ctx context.Context, name string) (*partner.Vendor, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Vendor), args.Error(1)
}

func (m *MockVendorRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Vendor, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Vendor), args.Error(1)
}

func (m *MockVendorRepository) FindActive(ctx context.Context, filter shared.Filter) ([]partner.Vendor, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Vendor), args.Error(1)
}

func (m *MockVendorRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]partner.Vendor, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Vendor), args.Error(1)
}

func (m *MockVendorRepository) Save(ctx context.Context, vendor *partner.Vendor) error {
	args := m.Called(ctx, vendor)
	return args.Error(0)
}

func (m *MockVendorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockVendorRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVendorRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

// MockCompanyRepository is a mock implementation of partner.CompanyRepository
type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Company, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Company), args.Error(1)
}

func (m *MockCompanyRepository) FindFirst(ctx context.Context) (*partner.Company, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Company), args.Error(1)
}

func (m *MockCompanyRepository) Save(ctx context.Context, company *partner.Company) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

// MockShippingLocationRepository is a mock implementation of partner.ShippingLocationRepository
type MockShippingLocationRepository struct {
	mock.Mock
}

func (m *MockShippingLocationRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.ShippingLocation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.ShippingLocation), args.Error(1)
}

func (m *MockShippingLocationRepository) FindByName(ctx context.Context, name string) (*partner.ShippingLocation, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.ShippingLocation), args.Error(1)
}

func (m *MockShippingLocationRepository) FindDefault(ctx context.Context) (*partner.ShippingLocation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.ShippingLocation), args.Error(1)
}

func (m *MockShippingLocationRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.ShippingLocation, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.ShippingLocation), args.Error(1)
}

func (m *MockShippingLocationRepository) Save(ctx context.Context, location *partner.ShippingLocation) error {
	args := m.Called(ctx, location)
	return args.Error(0)
}

func (m *MockShippingLocationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockShippingLocationRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockShippingLocationRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

// MockOrderStorage is a mock implementation of ObjectStorage
type MockOrderStorage struct {
	mock.Mock
}

func (m *MockOrderStorage) Put(ctx context.Context, key, contentType string, body io.Reader, size int64) error {
	args := m.Called(ctx, key, contentType, body, size)
	return args.Error(0)
}

func (m *MockOrderStorage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

// MockOrderRenderer is a mock implementation of OrderDocumentRenderer
type MockOrderRenderer struct {
	mock.Mock
}

func (m *MockOrderRenderer) RenderPurchaseOrder(ctx context.Context, order *procurement.PurchaseOrder) ([]byte, error) {
	args := m.Called(ctx, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockVendorMailer is a mock implementation of VendorMailer
type MockVendorMailer struct {
	mock.Mock
}

func (m *MockVendorMailer) SendPurchaseOrder(ctx context.Context, to, vendorName, poNumber string, document []byte) error {
	args := m.Called(ctx, to, vendorName, poNumber, document)
	return args.Error(0)
}

type orderTestMocks struct {
	orderRepo    *MockPurchaseOrderRepository
	vendorRepo   *MockVendorRepository
	companyRepo  *MockCompanyRepository
	locationRepo *MockShippingLocationRepository
	storage      *MockOrderStorage
}

func newOrderTestService() (*PurchaseOrderService, *orderTestMocks) {
	mocks := &orderTestMocks{
		orderRepo:    new(MockPurchaseOrderRepository),
		vendorRepo:   new(MockVendorRepository),
		companyRepo:  new(MockCompanyRepository),
		locationRepo: new(MockShippingLocationRepository),
		storage:      new(MockOrderStorage),
	}
	service := NewPurchaseOrderService(mocks.orderRepo, mocks.vendorRepo, mocks.companyRepo, mocks.locationRepo, mocks.storage)
	return service, mocks
}

func createTestVendor(t *testing.T) *partner.Vendor {
	t.Helper()
	vendor, err := partner.NewVendor("Acme Supply Co")
	assert.NoError(t, err)
	addr, err := valueobject.NewAddress("12 Dock St", "Portland", "OR", "97201")
	assert.NoError(t, err)
	vendor.SetAddress(addr)
	assert.NoError(t, vendor.SetOrderEmail("orders@acmesupply.test"))
	vendor.ClearDomainEvents()
	return vendor
}

func createTestLocation(t *testing.T) *partner.ShippingLocation {
	t.Helper()
	location, err := partner.NewShippingLocation("Main Warehouse", decimal.NewFromFloat(0.0825))
	assert.NoError(t, err)
	addr, err := valueobject.NewAddress("40 Bay Rd", "Portland", "OR", "97210")
	assert.NoError(t, err)
	location.SetAddress(addr)
	location.ClearDomainEvents()
	return location
}

func createDraftOrder(t *testing.T, vendor *partner.Vendor, location *partner.ShippingLocation) *procurement.PurchaseOrder {
	t.Helper()
	order := procurement.NewPurchaseOrder()
	assert.NoError(t, order.SetVendor(vendor.ID, vendor.Name, vendor.Address.FullAddress()))
	assert.NoError(t, order.SetShipTo(location.ID, location.Name, location.Address.FullAddress(), location.TaxRate))
	_, err := order.AddItem("Laser toner, black", "TN-450", "IT", decimal.NewFromInt(2), decimal.RequireFromString("10.00"))
	assert.NoError(t, err)
	order.ClearDomainEvents()
	return order
}

func createFinalizedOrder(t *testing.T, vendor *partner.Vendor, location *partner.ShippingLocation) *procurement.PurchaseOrder {
	t.Helper()
	order := createDraftOrder(t, vendor, location)
	snapshot := procurement.OrderSnapshot{
		VendorName:    vendor.Name,
		VendorAddress: vendor.Address.FullAddress(),
		ShipToName:    location.Name,
		ShipToAddress: location.Address.FullAddress(),
		TaxRate:       location.TaxRate,
	}
	assert.NoError(t, order.Finalize("1000", snapshot))
	order.ClearDomainEvents()
	return order
}

func TestPurchaseOrderService_Create_Success(t *testing.T) {
	service, mocks := newOrderTestService()

	vendor := createTestVendor(t)
	location := createTestLocation(t)
	mocks.vendorRepo.On("FindByID", mock.Anything, vendor.ID).Return(vendor, nil)
	mocks.locationRepo.On("FindByID", mock.Anything, location.ID).Return(location, nil)

	var saved *procurement.PurchaseOrder
	mocks.orderRepo.On("Save", mock.Anything, mock.AnythingOfType("*procurement.PurchaseOrder")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(*procurement.PurchaseOrder)
		}).
		Return(nil)

	shipping := decimal.RequireFromString("5.00")
	resp, err := service.Create(context.Background(), &CreatePurchaseOrderRequest{
		VendorID:           &vendor.ID,
		ShippingLocationID: &location.ID,
		QuoteNumber:        "Q-2231",
		ShippingCost:       &shipping,
		Items: []OrderItemInput{
			{Description: "Laser toner, black", SKU: "TN-450", Department: "IT", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.RequireFromString("10.00")},
		},
	}, nil)

	assert.NoError(t, err)
	assert.NotNil(t, saved)
	assert.Equal(t, "DRAFT", resp.Status)
	assert.Equal(t, "Acme Supply Co", resp.VendorName)
	assert.Equal(t, "12 Dock St, Portland, OR 97201", resp.VendorAddress)
	assert.Equal(t, "Main Warehouse", resp.ShipToName)
	assert.True(t, resp.Subtotal.Equal(decimal.RequireFromString("20.00")))
	assert.True(t, resp.TaxAmount.Equal(decimal.RequireFromString("1.65")))
	assert.True(t, resp.GrandTotal.Equal(decimal.RequireFromString("26.65")))
	mocks.orderRepo.AssertExpectations(t)
}

func TestPurchaseOrderService_Create_UsesDefaultShipTo(t *testing.T) {
	service, mocks := newOrderTestService()

	location := createTestLocation(t)
	location.MarkDefault()
	mocks.locationRepo.On("FindDefault", mock.Anything).Return(location, nil)
	mocks.orderRepo.On("Save", mock.Anything, mock.AnythingOfType("*procurement.PurchaseOrder")).Return(nil)

	resp, err := service.Create(context.Background(), &CreatePurchaseOrderRequest{}, nil)

	assert.NoError(t, err)
	assert.NotNil(t, resp.ShippingLocationID)
	assert.Equal(t, location.ID, *resp.ShippingLocationID)
	assert.Equal(t, "Main Warehouse", resp.ShipToName)
	assert.True(t, resp.TaxRate.Equal(decimal.NewFromFloat(0.0825)))
	mocks.locationRepo.AssertExpectations(t)
}

func TestPurchaseOrderService_Create_NoDefaultShipTo(t *testing.T) {
	service, mocks := newOrderTestService()

	mocks.locationRepo.On("FindDefault", mock.Anything).Return(nil, shared.ErrNotFound)
	mocks.orderRepo.On("Save", mock.Anything, mock.AnythingOfType("*procurement.PurchaseOrder")).Return(nil)

	resp, err := service.Create(context.Background(), &CreatePurchaseOrderRequest{}, nil)

	assert.NoError(t, err)
	assert.Nil(t, resp.ShippingLocationID)
	assert.Equal(t, "DRAFT", resp.Status)
}

func TestPurchaseOrderService_Create_InactiveVendor(t *testing.T) {
	service, mocks := newOrderTestService()

	vendor := createTestVendor(t)
	assert.NoError(t, vendor.Deactivate())
	mocks.vendorRepo.On("FindByID", mock.Anything, vendor.ID).Return(vendor, nil)

	_, err := service.Create(context.Background(), &CreatePurchaseOrderRequest{VendorID: &vendor.ID}, nil)

	assert.Error(t, err)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VENDOR_INACTIVE", domainErr.Code)
	mocks.orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestPurchaseOrderService_Finalize_AssignsFirstNumber(t *testing.T) {
	service, mocks := newOrderTestService()

	vendor := createTestVendor(t)
	location := createTestLocation(t)
	order := createDraftOrder(t, vendor, location)

	mocks.orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	mocks.vendorRepo.On("FindByID", mock.Anything, vendor.ID).Return(vendor, nil)
	mocks.companyRepo.On("FindFirst", mock.Anything).Return(nil, shared.ErrNotFound)
	mocks.locationRepo.On("FindByID", mock.Anything, location.ID).Return(location, nil)
	mocks.orderRepo.On("MaxNumericPONumber", mock.Anything).Return(0, nil)

	var savedEvents []shared.DomainEvent
	mocks.orderRepo.On("SaveWithLockAndEvents", mock.Anything, order, mock.Anything).
		Run(func(args mock.Arguments) {
			savedEvents = args.Get(2).([]shared.DomainEvent)
		}).
		Return(nil)

	resp, err := service.Finalize(context.Background(), order.ID)

	assert.NoError(t, err)
	assert.Equal(t, "1000", resp.PONumber)
	assert.Equal(t, "FINALIZED", resp.Status)
	assert.NotNil(t, resp.FinalizedAt)
	assert.True(t, resp.TaxAmount.Equal(decimal.RequireFromString("1.65")))
	assert.Len(t, savedEvents, 1)
	assert.Equal(t, procurement.EventTypePurchaseOrderFinalized, savedEvents[0].EventType())
	mocks.orderRepo.AssertExpectations(t)
}

func TestPurchaseOrderService_Finalize_RefreshesSnapshot(t *testing.T) {
	service, mocks := newOrderTestService()

	vendor := createTestVendor(t)
	location := createTestLocation(t)
	order := createDraftOrder(t, vendor, location)

	// The vendor was renamed after the draft captured its details
	assert.NoError(t, vendor.Update("Acme Industrial Supply", "", ""))

	mocks.orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	mocks.vendorRepo.On("FindByID", mock.Anything, vendor.ID).Return(vendor, nil)
	mocks.companyRepo.On("FindFirst", mock.Anything).Return(nil, shared.ErrNotFound)
	mocks.locationRepo.On("FindByID", mock.Anything, location.ID).Return(location, nil)
	mocks.orderRepo.On("MaxNumericPONumber", mock.Anything).Return(1205, nil)
	mocks.orderRepo.On("SaveWithLockAndEvents", mock.Anything, order, mock.Anything).Return(nil)

	resp, err := service.Finalize(context.Background(), order.ID)

	assert.NoError(t, err)
	assert.Equal(t, "1206", resp.PONumber)
	assert.Equal(t, "Acme Industrial Supply", resp.VendorName)
}

func TestPurchaseOrderService_Finalize_RetriesOnNumberConflict(t *testing.T) {
	service, mocks := newOrderTestService()

	vendor := createTestVendor(t)
	location := createTestLocation(t)
	order := createDraftOrder(t, vendor, location)
	reloaded := createDraftOrder(t, vendor, location)
	reloaded.ID = order.ID

	mocks.vendorRepo.On("FindByID", mock.Anything, vendor.ID).Return(vendor, nil)
	mocks.companyRepo.On("FindFirst", mock.Anything).Return(nil, shared.ErrNotFound)
	mocks.locationRepo.On("FindByID", mock.Anything, location.ID).Return(location, nil)

	mocks.orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil).Once()
	mocks.orderRepo.On("MaxNumericPONumber", mock.Anything).Return(1041, nil).Once()
	mocks.orderRepo.On("SaveWithLockAndEvents", mock.Anything, order, mock.Anything).
		Return(shared.NewDomainError("PO_NUMBER_TAKEN", "PO number is already assigned")).Once()
	mocks.orderRepo.On("FindByID", mock.Anything, order.ID).Return(reloaded, nil).Once()
	mocks.orderRepo.On("MaxNumericPONumber", mock.Anything).Return(1042, nil).Once()
	mocks.orderRepo.On("SaveWithLockAndEvents", mock.Anything, reloaded, mock.Anything).Return(nil).Once()

	resp, err := service.Finalize(context.Background(), order.ID)

	assert.NoError(t, err)
	assert.Equal(t, "1043", resp.PONumber)
	assert.Equal(t, "FINALIZED", resp.Status)
	mocks.orderRepo.AssertExpectations(t)
}

func TestPurchaseOrderService_Finalize_NoItems(t *testing.T) {
	service, mocks := newOrderTestService()

	vendor := createTestVendor(t)
	location := createTestLocation(t)
	order := procurement.NewPurchaseOrder()
	assert.NoError(t, order.SetVendor(vendor.ID, vendor.Name, vendor.Address.FullAddress()))
	assert.NoError(t, order.SetShipTo(location.ID, location.Name, location.Address.FullAddress(), location.TaxRate))
	order.ClearDomainEvents()

	mocks.orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	mocks.vendorRepo.On("FindByID", mock.Anything, vendor.ID).Return(vendor, nil)
	mocks.companyRepo.On("FindFirst", mock.Anything).Return(nil, shared.ErrNotFound)
	mocks.locationRepo.On("FindByID", mock.Anything, location.ID).Return(location, nil)
	mocks.orderRepo.On("MaxNumericPONumber", mock.Anything).Return(0, nil)

	_, err := service.Finalize(context.Background(), order.ID)

	assert.Error(t, err)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NO_ITEMS", domainErr.Code)
	mocks.orderRepo.AssertNotCalled(t, "SaveWithLockAndEvents", mock.Anything, mock.Anything, mock.Anything)
}

func TestPurchaseOrderService_ReceiveItem_CompletesOrder(t *testing.T) {
	service, mocks := newOrderTestService()

	vendor := createTestVendor(t)
	location := createTestLocation(t)
	order := createFinalizedOrder(t, vendor, location)
	itemID := order.Items[0].ID

	mocks.orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)

	var savedEvents []shared.DomainEvent
	mocks.orderRepo.On("SaveWithLockAndEvents", mock.Anything, order, mock.Anything).
		Run(func(args mock.Arguments) {
			savedEvents = args.Get(2).([]shared.DomainEvent)
		}).
		Return(nil)

	resp, err := service.ReceiveItem(context.Background(), order.ID, itemID)

	assert.NoError(t, err)
	assert.Equal(t, "COMPLETE", resp.Status)
	assert.NotNil(t, resp.CompletedAt)
	assert.Equal(t, "RECEIVED", resp.Items[0].Status)
	assert.Len(t, savedEvents, 2)
	assert.Equal(t, procurement.EventTypePurchaseOrderItemReceived, savedEvents[0].EventType())
	assert.Equal(t, procurement.EventTypePurchaseOrderCompleted, savedEvents[1].EventType())
}

func TestPurchaseOrderService_Cancel_Finalized(t *testing.T) {
	service, mocks := newOrderTestService()

	vendor := createTestVendor(t)
	location := createTestLocation(t)
	order := createFinalizedOrder(t, vendor, location)

	mocks.orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)

	var savedEvents []shared.DomainEvent
	mocks.orderRepo.On("SaveWithLockAndEvents", mock.Anything, order, mock.Anything).
		Run(func(args mock.Arguments) {
			savedEvents = args.Get(2).([]shared.DomainEvent)
		}).
		Return(nil)

	resp, err := service.Cancel(context.Background(), order.ID, &CancelPurchaseOrderRequest{Reason: "Vendor discontinued the line"})

	assert.NoError(t, err)
	assert.Equal(t, "CANCELLED", resp.Status)
	assert.Equal(t, "Vendor discontinued the line", resp.CancelReason)
	assert.Len(t, savedEvents, 1)
	assert.Equal(t, procurement.EventTypePurchaseOrderCancelled, savedEvents[0].EventType())
}

func TestPurchaseOrderService_Update_NonDraft(t *testing.T) {
	service, mocks := newOrderTestService()

	vendor := createTestVendor(t)
	location := createTestLocation(t)
	order := createFinalizedOrder(t, vendor, location)

	mocks.orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)

	quote := "Q-9999"
	_, err := service.Update(context.Background(), order.ID, &UpdatePurchaseOrderRequest{QuoteNumber: &quote})

	assert.Error(t, err)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
	mocks.orderRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
}

func TestPurchaseOrderService_UpdateItem_MergesFields(t *testing.T) {
	service, mocks := newOrderTestService()

	vendor := createTestVendor(t)
	location := createTestLocation(t)
	order := createDraftOrder(t, vendor, location)
	itemID := order.Items[0].ID

	mocks.orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	mocks.orderRepo.On("SaveWithLock", mock.Anything, order).Return(nil)

	quantity := decimal.NewFromInt(5)
	resp, err := service.UpdateItem(context.Background(), order.ID, itemID, &UpdateOrderItemRequest{Quantity: &quantity})

	assert.NoError(t, err)
	assert.Equal(t, "Laser toner, black", resp.Items[0].Description)
	assert.True(t, resp.Items[0].Quantity.Equal(decimal.NewFromInt(5)))
	assert.True(t, resp.Subtotal.Equal(decimal.RequireFromString("50.00")))
}

func TestPurchaseOrderService_SetShipTo_RecalculatesTax(t *testing.T) {
	service, mocks := newOrderTestService()

	vendor := createTestVendor(t)
	location := createTestLocation(t)
	order := createDraftOrder(t, vendor, location)

	other, err := partner.NewShippingLocation("Eastside Annex", decimal.Zero)
	assert.NoError(t, err)
	otherAddr, err := valueobject.NewAddress("9 Alder Ct", "Gresham", "OR", "97030")
	assert.NoError(t, err)
	other.SetAddress(otherAddr)

	mocks.orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	mocks.locationRepo.On("FindByID", mock.Anything, other.ID).Return(other, nil)
	mocks.orderRepo.On("SaveWithLock", mock.Anything, order).Return(nil)

	resp, err := service.SetShipTo(context.Background(), order.ID, other.ID)

	assert.NoError(t, err)
	assert.Equal(t, "Eastside Annex", resp.ShipToName)
	assert.True(t, resp.TaxAmount.IsZero())
	assert.True(t, resp.GrandTotal.Equal(resp.Subtotal))
}

func TestPurchaseOrderService_Delete_FinalizedRejected(t *testing.T) {
	service, mocks := newOrderTestService()

	vendor := createTestVendor(t)
	location := createTestLocation(t)
	order := createFinalizedOrder(t, vendor, location)

	mocks.orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)

	err := service.Delete(context.Background(), order.ID)

	assert.Error(t, err)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ORDER_ACTIVE", domainErr.Code)
	mocks.orderRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestPurchaseOrderService_Delete_Draft(t *testing.T) {
	service, mocks := newOrderTestService()

	vendor := createTestVendor(t)
	location := createTestLocation(t)
	order := createDraftOrder(t, vendor, location)

	mocks.orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	mocks.orderRepo.On("Delete", mock.Anything, order.ID).Return(nil)

	err := service.Delete(context.Background(), order.ID)

	assert.NoError(t, err)
	mocks.orderRepo.AssertExpectations(t)
}

func TestPurchaseOrderService_List_AppliesDefaults(t *testing.T) {
	service, mocks := newOrderTestService()

	mocks.orderRepo.On("FindAll", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Page == 1 && f.PageSize == 20 && f.OrderBy == "created_at" && f.OrderDir == "desc"
	})).Return([]procurement.PurchaseOrder{}, nil)
	mocks.orderRepo.On("Count", mock.Anything, mock.Anything).Return(int64(0), nil)

	items, total, err := service.List(context.Background(), &PurchaseOrderListFilter{})

	assert.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, int64(0), total)
	mocks.orderRepo.AssertExpectations(t)
}

func TestPurchaseOrderService_DownloadDocument(t *testing.T) {
	service, mocks := newOrderTestService()

	vendor := createTestVendor(t)
	location := createTestLocation(t)
	order := createFinalizedOrder(t, vendor, location)
	assert.NoError(t, order.SetDocumentStorageKey("purchase-orders/abc/PO-1000.pdf"))

	mocks.orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	mocks.storage.On("Get", mock.Anything, "purchase-orders/abc/PO-1000.pdf").
		Return(io.NopCloser(strings.NewReader("pdf bytes")), nil)

	download, err := service.DownloadDocument(context.Background(), order.ID)

	assert.NoError(t, err)
	assert.Equal(t, "PO-1000.pdf", download.FileName)
	assert.Equal(t, "application/pdf", download.ContentType)
	data, err := io.ReadAll(download.Body)
	assert.NoError(t, err)
	assert.Equal(t, "pdf bytes", string(data))
}

func TestPurchaseOrderService_DownloadDocument_NoneRendered(t *testing.T) {
	service, mocks := newOrderTestService()

	vendor := createTestVendor(t)
	location := createTestLocation(t)
	order := createDraftOrder(t, vendor, location)

	mocks.orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)

	_, err := service.DownloadDocument(context.Background(), order.ID)

	assert.Error(t, err)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NO_DOCUMENT", domainErr.Code)
}

func TestPurchaseOrderService_StatusSummary(t *testing.T) {
	service, mocks := newOrderTestService()

	mocks.orderRepo.On("CountByStatus", mock.Anything).Return(map[procurement.PurchaseOrderStatus]int64{
		procurement.PurchaseOrderStatusDraft:             3,
		procurement.PurchaseOrderStatusFinalized:         4,
		procurement.PurchaseOrderStatusPartiallyReceived: 2,
		procurement.PurchaseOrderStatusComplete:          10,
		procurement.PurchaseOrderStatusCancelled:         1,
	}, nil)

	summary, err := service.StatusSummary(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, int64(3), summary.Draft)
	assert.Equal(t, int64(6), summary.Outstanding)
	assert.Equal(t, int64(20), summary.Total)
}

func TestPurchaseOrderFinalizedHandler_RendersStoresAndEmails(t *testing.T) {
	orderRepo := new(MockPurchaseOrderRepository)
	vendorRepo := new(MockVendorRepository)
	renderer := new(MockOrderRenderer)
	storage := new(MockOrderStorage)
	mailer := new(MockVendorMailer)
	handler := NewPurchaseOrderFinalizedHandler(orderRepo, vendorRepo, renderer, storage, mailer, zap.NewNop())

	vendor := createTestVendor(t)
	location := createTestLocation(t)
	order := createFinalizedOrder(t, vendor, location)
	event := procurement.NewPurchaseOrderFinalizedEvent(order)

	document := []byte("%PDF-1.4 rendered order")
	expectedKey := orderDocumentKey(order)

	orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	renderer.On("RenderPurchaseOrder", mock.Anything, order).Return(document, nil)
	storage.On("Put", mock.Anything, expectedKey, "application/pdf", mock.Anything, int64(len(document))).Return(nil)
	orderRepo.On("SaveWithLock", mock.Anything, order).Return(nil)
	vendorRepo.On("FindByID", mock.Anything, vendor.ID).Return(vendor, nil)
	mailer.On("SendPurchaseOrder", mock.Anything, "orders@acmesupply.test", "Acme Supply Co", "1000", document).Return(nil)

	err := handler.Handle(context.Background(), event)

	assert.NoError(t, err)
	assert.Equal(t, expectedKey, order.DocumentStorageKey)
	storage.AssertExpectations(t)
	mailer.AssertExpectations(t)
}

func TestPurchaseOrderFinalizedHandler_EmailFailureDoesNotFail(t *testing.T) {
	orderRepo := new(MockPurchaseOrderRepository)
	vendorRepo := new(MockVendorRepository)
	renderer := new(MockOrderRenderer)
	storage := new(MockOrderStorage)
	mailer := new(MockVendorMailer)
	handler := NewPurchaseOrderFinalizedHandler(orderRepo, vendorRepo, renderer, storage, mailer, zap.NewNop())

	vendor := createTestVendor(t)
	location := createTestLocation(t)
	order := createFinalizedOrder(t, vendor, location)
	event := procurement.NewPurchaseOrderFinalizedEvent(order)

	orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	renderer.On("RenderPurchaseOrder", mock.Anything, order).Return([]byte("pdf"), nil)
	storage.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	orderRepo.On("SaveWithLock", mock.Anything, order).Return(nil)
	vendorRepo.On("FindByID", mock.Anything, vendor.ID).Return(vendor, nil)
	mailer.On("SendPurchaseOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(assert.AnError)

	err := handler.Handle(context.Background(), event)

	assert.NoError(t, err)
}

func TestPurchaseOrderFinalizedHandler_RenderFailureReturnsError(t *testing.T) {
	orderRepo := new(MockPurchaseOrderRepository)
	vendorRepo := new(MockVendorRepository)
	renderer := new(MockOrderRenderer)
	storage := new(MockOrderStorage)
	mailer := new(MockVendorMailer)
	handler := NewPurchaseOrderFinalizedHandler(orderRepo, vendorRepo, renderer, storage, mailer, zap.NewNop())

	vendor := createTestVendor(t)
	location := createTestLocation(t)
	order := createFinalizedOrder(t, vendor, location)
	event := procurement.NewPurchaseOrderFinalizedEvent(order)

	orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	renderer.On("RenderPurchaseOrder", mock.Anything, order).Return(nil, assert.AnError)

	err := handler.Handle(context.Background(), event)

	assert.Error(t, err)
	storage.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mailer.AssertNotCalled(t, "SendPurchaseOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPurchaseOrderFinalizedHandler_NoVendorEmailSkipsMailer(t *testing.T) {
	orderRepo := new(MockPurchaseOrderRepository)
	vendorRepo := new(MockVendorRepository)
	renderer := new(MockOrderRenderer)
	storage := new(MockOrderStorage)
	mailer := new(MockVendorMailer)
	handler := NewPurchaseOrderFinalizedHandler(orderRepo, vendorRepo, renderer, storage, mailer, zap.NewNop())

	vendor, err := partner.NewVendor("No Email Vendor")
	assert.NoError(t, err)
	location := createTestLocation(t)
	order := createFinalizedOrder(t, vendor, location)
	event := procurement.NewPurchaseOrderFinalizedEvent(order)

	orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	renderer.On("RenderPurchaseOrder", mock.Anything, order).Return([]byte("pdf"), nil)
	storage.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	orderRepo.On("SaveWithLock", mock.Anything, order).Return(nil)
	vendorRepo.On("FindByID", mock.Anything, vendor.ID).Return(vendor, nil)

	err = handler.Handle(context.Background(), event)

	assert.NoError(t, err)
	mailer.AssertNotCalled(t, "SendPurchaseOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
