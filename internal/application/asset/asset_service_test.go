package asset

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/opsdesk/backend/internal/domain/asset"
	"github.com/opsdesk/backend/internal/domain/identity"
	"github.com/opsdesk/backend/internal/domain/shared"
)

// MockAssetRepository is a mock implementation of asset.AssetRepository
type MockAssetRepository struct {
	mock.Mock
}

func (m *MockAssetRepository) FindByID(ctx context.Context, id uuid.UUID) (*asset.Asset, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*asset.Asset), args.Error(1)
}

func (m *MockAssetRepository) FindByTag(ctx context.Context, tag string) (*asset.Asset, error) {
	args := m.Called(ctx, tag)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*asset.Asset), args.Error(1)
}

func (m *MockAssetRepository) FindBySerial(ctx context.Context, serial string) (*asset.Asset, error) {
	args := m.Called(ctx, serial)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*asset.Asset), args.Error(1)
}

func (m *MockAssetRepository) FindAll(ctx context.Context, filter shared.Filter) ([]asset.Asset, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]asset.Asset), args.Error(1)
}

func (m *MockAssetRepository) FindByAssignee(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]asset.Asset, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]asset.Asset), args.Error(1)
}

func (m *MockAssetRepository) FindByLocation(ctx context.Context, locationID uuid.UUID, filter shared.Filter) ([]asset.Asset, error) {
	args := m.Called(ctx, locationID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]asset.Asset), args.Error(1)
}

func (m *MockAssetRepository) Save(ctx context.Context, a *asset.Asset) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAssetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAssetRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAssetRepository) ExistsByTag(ctx context.Context, tag string) (bool, error) {
	args := m.Called(ctx, tag)
	return args.Bool(0), args.Error(1)
}

// MockAuditRepository is a mock implementation of asset.AuditRepository
type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) FindByAsset(ctx context.Context, assetID uuid.UUID, filter shared.Filter) ([]asset.Audit, error) {
	args := m.Called(ctx, assetID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]asset.Audit), args.Error(1)
}

func (m *MockAuditRepository) Save(ctx context.Context, audit *asset.Audit) error {
	args := m.Called(ctx, audit)
	return args.Error(0)
}

// MockPicklistRepository is a mock implementation of asset.PicklistRepository
type MockPicklistRepository struct {
	mock.Mock
}

func (m *MockPicklistRepository) FindCategoryByID(ctx context.Context, id uuid.UUID) (*asset.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*asset.Category), args.Error(1)
}

func (m *MockPicklistRepository) FindAllCategories(ctx context.Context) ([]asset.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]asset.Category), args.Error(1)
}

func (m *MockPicklistRepository) SaveCategory(ctx context.Context, c *asset.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockPicklistRepository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPicklistRepository) FindManufacturerByID(ctx context.Context, id uuid.UUID) (*asset.Manufacturer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*asset.Manufacturer), args.Error(1)
}

func (m *MockPicklistRepository) FindAllManufacturers(ctx context.Context) ([]asset.Manufacturer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]asset.Manufacturer), args.Error(1)
}

func (m *MockPicklistRepository) SaveManufacturer(ctx context.Context, mf *asset.Manufacturer) error {
	args := m.Called(ctx, mf)
	return args.Error(0)
}

func (m *MockPicklistRepository) DeleteManufacturer(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPicklistRepository) FindConditionByID(ctx context.Context, id uuid.UUID) (*asset.Condition, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*asset.Condition), args.Error(1)
}

func (m *MockPicklistRepository) FindAllConditions(ctx context.Context) ([]asset.Condition, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]asset.Condition), args.Error(1)
}

func (m *MockPicklistRepository) SaveCondition(ctx context.Context, c *asset.Condition) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockPicklistRepository) DeleteCondition(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPicklistRepository) FindLocationByID(ctx context.Context, id uuid.UUID) (*asset.Location, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*asset.Location), args.Error(1)
}

func (m *MockPicklistRepository) FindAllLocations(ctx context.Context) ([]asset.Location, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]asset.Location), args.Error(1)
}

func (m *MockPicklistRepository) SaveLocation(ctx context.Context, l *asset.Location) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockPicklistRepository) DeleteLocation(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.User, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) FindActive(ctx context.Context) ([]identity.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) FindIntakeRecipients(ctx context.Context) ([]identity.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

type assetTestMocks struct {
	assets    *MockAssetRepository
	audits    *MockAuditRepository
	picklists *MockPicklistRepository
	users     *MockUserRepository
}

func newAssetTestService() (*AssetService, *assetTestMocks) {
	mocks := &assetTestMocks{
		assets:    new(MockAssetRepository),
		audits:    new(MockAuditRepository),
		picklists: new(MockPicklistRepository),
		users:     new(MockUserRepository),
	}
	service := NewAssetService(mocks.assets, mocks.audits, mocks.picklists, mocks.users)
	return service, mocks
}

func createTestAsset(t *testing.T, tag, name string) *asset.Asset {
	t.Helper()
	a, err := asset.NewAsset(tag, name)
	assert.NoError(t, err)
	a.ClearDomainEvents()
	return a
}

func createActiveUser(t *testing.T) *identity.User {
	t.Helper()
	user, err := identity.NewUser("sam@opsdesk.test", "Sam Ortiz", "first-password")
	assert.NoError(t, err)
	user.ClearDomainEvents()
	return user
}

func TestAssetService_CreateAsset_Success(t *testing.T) {
	service, mocks := newAssetTestService()

	categoryID := uuid.New()
	category, err := asset.NewCategory("Laptop")
	assert.NoError(t, err)

	mocks.assets.On("ExistsByTag", mock.Anything, "it-0042").Return(false, nil)
	mocks.picklists.On("FindCategoryByID", mock.Anything, categoryID).Return(category, nil)

	var saved *asset.Asset
	mocks.assets.On("Save", mock.Anything, mock.AnythingOfType("*asset.Asset")).Run(func(args mock.Arguments) {
		saved = args.Get(1).(*asset.Asset)
	}).Return(nil)

	purchaseDate := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	price := decimal.NewFromFloat(1499.99)
	createdBy := uuid.New()

	resp, err := service.CreateAsset(context.Background(), &CreateAssetRequest{
		Tag:           "it-0042",
		Name:          "Engineering laptop",
		SerialNumber:  "5CG123XYZ",
		ModelName:     "Latitude 7440",
		CategoryID:    &categoryID,
		PurchaseDate:  &purchaseDate,
		PurchasePrice: &price,
	}, &createdBy)

	assert.NoError(t, err)
	assert.Equal(t, "IT-0042", resp.Tag)
	assert.Equal(t, "Engineering laptop", resp.Name)
	assert.Equal(t, "in_service", resp.Status)
	assert.True(t, resp.PurchasePrice.Equal(decimal.NewFromFloat(1499.99)))
	assert.Equal(t, &createdBy, resp.CreatedBy)
	assert.Empty(t, saved.GetDomainEvents())
}

func TestAssetService_CreateAsset_DuplicateTag(t *testing.T) {
	service, mocks := newAssetTestService()

	mocks.assets.On("ExistsByTag", mock.Anything, "IT-0042").Return(true, nil)

	_, err := service.CreateAsset(context.Background(), &CreateAssetRequest{
		Tag:  "IT-0042",
		Name: "Engineering laptop",
	}, nil)

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	mocks.assets.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAssetService_CreateAsset_UnknownCategory(t *testing.T) {
	service, mocks := newAssetTestService()

	categoryID := uuid.New()
	mocks.assets.On("ExistsByTag", mock.Anything, mock.Anything).Return(false, nil)
	mocks.picklists.On("FindCategoryByID", mock.Anything, categoryID).Return(nil, shared.ErrNotFound)

	_, err := service.CreateAsset(context.Background(), &CreateAssetRequest{
		Tag:        "IT-0042",
		Name:       "Engineering laptop",
		CategoryID: &categoryID,
	}, nil)

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CATEGORY", domainErr.Code)
}

func TestAssetService_CheckoutAsset_Success(t *testing.T) {
	service, mocks := newAssetTestService()

	a := createTestAsset(t, "IT-0042", "Engineering laptop")
	user := createActiveUser(t)

	mocks.assets.On("FindByID", mock.Anything, a.ID).Return(a, nil)
	mocks.users.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	mocks.assets.On("Save", mock.Anything, a).Return(nil)

	var audit *asset.Audit
	mocks.audits.On("Save", mock.Anything, mock.AnythingOfType("*asset.Audit")).Run(func(args mock.Arguments) {
		audit = args.Get(1).(*asset.Audit)
	}).Return(nil)

	dueBack := time.Now().AddDate(0, 0, 14)
	resp, err := service.CheckoutAsset(context.Background(), a.ID, &CheckoutAssetRequest{
		UserID:  user.ID,
		DueBack: &dueBack,
		Note:    "Loaner for the conference",
	})

	assert.NoError(t, err)
	assert.Equal(t, &user.ID, resp.AssignedToID)
	assert.NotNil(t, resp.CheckedOutAt)
	assert.Equal(t, asset.AuditActionCheckout, audit.Action)
	assert.Equal(t, &user.ID, audit.UserID)
	assert.Equal(t, "Loaner for the conference", audit.Note)
}

func TestAssetService_CheckoutAsset_AlreadyCheckedOut(t *testing.T) {
	service, mocks := newAssetTestService()

	a := createTestAsset(t, "IT-0042", "Engineering laptop")
	user := createActiveUser(t)
	otherUser := uuid.New()
	err := a.Checkout(otherUser, nil)
	assert.NoError(t, err)
	a.ClearDomainEvents()

	mocks.assets.On("FindByID", mock.Anything, a.ID).Return(a, nil)
	mocks.users.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	_, err = service.CheckoutAsset(context.Background(), a.ID, &CheckoutAssetRequest{UserID: user.ID})

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_CHECKED_OUT", domainErr.Code)
	mocks.audits.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAssetService_CheckoutAsset_DeactivatedUser(t *testing.T) {
	service, mocks := newAssetTestService()

	a := createTestAsset(t, "IT-0042", "Engineering laptop")
	user := createActiveUser(t)
	err := user.Deactivate()
	assert.NoError(t, err)

	mocks.assets.On("FindByID", mock.Anything, a.ID).Return(a, nil)
	mocks.users.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	_, err = service.CheckoutAsset(context.Background(), a.ID, &CheckoutAssetRequest{UserID: user.ID})

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "USER_DEACTIVATED", domainErr.Code)
	assert.False(t, a.IsCheckedOut())
}

func TestAssetService_CheckinAsset_RecordsPreviousHolder(t *testing.T) {
	service, mocks := newAssetTestService()

	a := createTestAsset(t, "IT-0042", "Engineering laptop")
	holder := uuid.New()
	err := a.Checkout(holder, nil)
	assert.NoError(t, err)
	a.ClearDomainEvents()

	mocks.assets.On("FindByID", mock.Anything, a.ID).Return(a, nil)
	mocks.assets.On("Save", mock.Anything, a).Return(nil)

	var audit *asset.Audit
	mocks.audits.On("Save", mock.Anything, mock.AnythingOfType("*asset.Audit")).Run(func(args mock.Arguments) {
		audit = args.Get(1).(*asset.Audit)
	}).Return(nil)

	resp, err := service.CheckinAsset(context.Background(), a.ID, &CheckinAssetRequest{Note: "Returned at front desk"})

	assert.NoError(t, err)
	assert.Nil(t, resp.AssignedToID)
	assert.Nil(t, resp.DueBack)
	assert.Equal(t, asset.AuditActionCheckin, audit.Action)
	assert.Equal(t, &holder, audit.UserID)
}

func TestAssetService_CheckinAsset_NotCheckedOut(t *testing.T) {
	service, mocks := newAssetTestService()

	a := createTestAsset(t, "IT-0042", "Engineering laptop")

	mocks.assets.On("FindByID", mock.Anything, a.ID).Return(a, nil)

	_, err := service.CheckinAsset(context.Background(), a.ID, &CheckinAssetRequest{})

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_CHECKED_OUT", domainErr.Code)
}

func TestAssetService_RecordAudit_MovesAsset(t *testing.T) {
	service, mocks := newAssetTestService()

	a := createTestAsset(t, "IT-0042", "Engineering laptop")
	newLocationID := uuid.New()
	location, err := asset.NewLocation("Server Room")
	assert.NoError(t, err)

	mocks.assets.On("FindByID", mock.Anything, a.ID).Return(a, nil)
	mocks.picklists.On("FindLocationByID", mock.Anything, newLocationID).Return(location, nil)
	mocks.audits.On("Save", mock.Anything, mock.AnythingOfType("*asset.Audit")).Return(nil)
	mocks.assets.On("Save", mock.Anything, a).Return(nil)

	auditor := uuid.New()
	resp, err := service.RecordAudit(context.Background(), a.ID, &auditor, &RecordAuditRequest{
		LocationID: &newLocationID,
		Note:       "Annual inventory pass",
	})

	assert.NoError(t, err)
	assert.Equal(t, "AUDIT", resp.Action)
	assert.Equal(t, &newLocationID, resp.LocationID)
	assert.Equal(t, &newLocationID, a.LocationID)
	mocks.assets.AssertCalled(t, "Save", mock.Anything, a)
}

func TestAssetService_RecordAudit_SameLocationNoMove(t *testing.T) {
	service, mocks := newAssetTestService()

	a := createTestAsset(t, "IT-0042", "Engineering laptop")
	locationID := uuid.New()
	location, err := asset.NewLocation("Server Room")
	assert.NoError(t, err)
	a.Classify(nil, nil, nil, &locationID)

	mocks.assets.On("FindByID", mock.Anything, a.ID).Return(a, nil)
	mocks.picklists.On("FindLocationByID", mock.Anything, locationID).Return(location, nil)
	mocks.audits.On("Save", mock.Anything, mock.AnythingOfType("*asset.Audit")).Return(nil)

	_, err = service.RecordAudit(context.Background(), a.ID, nil, &RecordAuditRequest{LocationID: &locationID})

	assert.NoError(t, err)
	mocks.assets.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAssetService_RetireAsset_CheckedOut(t *testing.T) {
	service, mocks := newAssetTestService()

	a := createTestAsset(t, "IT-0042", "Engineering laptop")
	err := a.Checkout(uuid.New(), nil)
	assert.NoError(t, err)
	a.ClearDomainEvents()

	mocks.assets.On("FindByID", mock.Anything, a.ID).Return(a, nil)

	_, err = service.RetireAsset(context.Background(), a.ID)

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ASSET_CHECKED_OUT", domainErr.Code)
}

func TestAssetService_UpdateAsset_TagChangeChecksUniqueness(t *testing.T) {
	service, mocks := newAssetTestService()

	a := createTestAsset(t, "IT-0042", "Engineering laptop")

	mocks.assets.On("FindByID", mock.Anything, a.ID).Return(a, nil)
	mocks.assets.On("ExistsByTag", mock.Anything, "IT-0099").Return(true, nil)

	newTag := "IT-0099"
	_, err := service.UpdateAsset(context.Background(), a.ID, &UpdateAssetRequest{Tag: &newTag})

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	assert.Equal(t, "IT-0042", a.Tag)
}

func TestAssetService_UpdateAsset_SameTagSkipsCheck(t *testing.T) {
	service, mocks := newAssetTestService()

	a := createTestAsset(t, "IT-0042", "Engineering laptop")

	mocks.assets.On("FindByID", mock.Anything, a.ID).Return(a, nil)
	mocks.assets.On("Save", mock.Anything, a).Return(nil)

	sameTag := "it-0042"
	newName := "Engineering laptop (rebuilt)"
	resp, err := service.UpdateAsset(context.Background(), a.ID, &UpdateAssetRequest{Tag: &sameTag, Name: &newName})

	assert.NoError(t, err)
	assert.Equal(t, "Engineering laptop (rebuilt)", resp.Name)
	mocks.assets.AssertNotCalled(t, "ExistsByTag", mock.Anything, mock.Anything)
}

func TestAssetService_DeleteAsset_CheckedOut(t *testing.T) {
	service, mocks := newAssetTestService()

	a := createTestAsset(t, "IT-0042", "Engineering laptop")
	err := a.Checkout(uuid.New(), nil)
	assert.NoError(t, err)
	a.ClearDomainEvents()

	mocks.assets.On("FindByID", mock.Anything, a.ID).Return(a, nil)

	err = service.DeleteAsset(context.Background(), a.ID)

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ASSET_CHECKED_OUT", domainErr.Code)
	mocks.assets.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestAssetService_ListAssets_AppliesDefaults(t *testing.T) {
	service, mocks := newAssetTestService()

	a := createTestAsset(t, "IT-0042", "Engineering laptop")
	checkedOut := true

	expectedFilter := mock.MatchedBy(func(f shared.Filter) bool {
		return f.Page == 1 && f.PageSize == 20 && f.OrderBy == "tag" && f.OrderDir == "asc" &&
			f.Filters["checked_out"] == true
	})
	mocks.assets.On("FindAll", mock.Anything, expectedFilter).Return([]asset.Asset{*a}, nil)
	mocks.assets.On("Count", mock.Anything, expectedFilter).Return(int64(1), nil)

	assets, total, err := service.ListAssets(context.Background(), &AssetListFilter{CheckedOut: &checkedOut})

	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, assets, 1)
	assert.Equal(t, "IT-0042", assets[0].Tag)
}

func TestAssetService_StatusSummary(t *testing.T) {
	service, mocks := newAssetTestService()

	countFor := func(key string, value interface{}) interface{} {
		return mock.MatchedBy(func(f shared.Filter) bool {
			v, ok := f.Filters[key]
			return ok && v == value
		})
	}
	mocks.assets.On("Count", mock.Anything, countFor("status", "in_service")).Return(int64(42), nil)
	mocks.assets.On("Count", mock.Anything, countFor("status", "retired")).Return(int64(7), nil)
	mocks.assets.On("Count", mock.Anything, countFor("checked_out", true)).Return(int64(11), nil)
	mocks.assets.On("Count", mock.Anything, countFor("overdue", true)).Return(int64(3), nil)

	summary, err := service.StatusSummary(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, int64(42), summary.InService)
	assert.Equal(t, int64(7), summary.Retired)
	assert.Equal(t, int64(11), summary.CheckedOut)
	assert.Equal(t, int64(3), summary.Overdue)
	assert.Equal(t, int64(49), summary.Total)
}
