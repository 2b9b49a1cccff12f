package asset

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/opsdesk/backend/internal/domain/asset"
	"github.com/opsdesk/backend/internal/domain/identity"
	"github.com/opsdesk/backend/internal/domain/shared"
)

// AssetService manages the asset inventory
type AssetService struct {
	assetRepo      asset.AssetRepository
	auditRepo      asset.AuditRepository
	picklistRepo   asset.PicklistRepository
	userRepo       identity.UserRepository
	eventPublisher shared.EventPublisher
}

// NewAssetService creates a new asset service
func NewAssetService(
	assetRepo asset.AssetRepository,
	auditRepo asset.AuditRepository,
	picklistRepo asset.PicklistRepository,
	userRepo identity.UserRepository,
) *AssetService {
	return &AssetService{
		assetRepo:    assetRepo,
		auditRepo:    auditRepo,
		picklistRepo: picklistRepo,
		userRepo:     userRepo,
	}
}

// SetEventPublisher sets the event publisher for domain events
func (s *AssetService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// CreateAsset creates a new asset
func (s *AssetService) CreateAsset(ctx context.Context, req *CreateAssetRequest, createdBy *uuid.UUID) (*AssetResponse, error) {
	exists, err := s.assetRepo.ExistsByTag(ctx, req.Tag)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "An asset with this tag already exists")
	}

	newAsset, err := asset.NewAsset(req.Tag, req.Name)
	if err != nil {
		return nil, err
	}

	if req.Description != "" || req.SerialNumber != "" || req.ModelName != "" {
		if err := newAsset.Update(req.Name, req.Description, req.SerialNumber, req.ModelName); err != nil {
			return nil, err
		}
	}

	if req.CategoryID != nil || req.ManufacturerID != nil || req.ConditionID != nil || req.LocationID != nil {
		if err := s.checkClassification(ctx, req.CategoryID, req.ManufacturerID, req.ConditionID, req.LocationID); err != nil {
			return nil, err
		}
		newAsset.Classify(req.CategoryID, req.ManufacturerID, req.ConditionID, req.LocationID)
	}

	if req.PurchaseDate != nil || req.PurchasePrice != nil || req.WarrantyExpires != nil {
		price := decimalOrZero(req.PurchasePrice)
		if err := newAsset.SetPurchaseInfo(req.PurchaseDate, price, req.WarrantyExpires); err != nil {
			return nil, err
		}
	}

	if req.Notes != "" {
		newAsset.SetNotes(req.Notes)
	}

	if createdBy != nil {
		newAsset.SetCreatedBy(*createdBy)
	}

	if err := s.assetRepo.Save(ctx, newAsset); err != nil {
		return nil, err
	}

	newAsset.ClearDomainEvents()

	return ToAssetResponse(newAsset), nil
}

// GetAsset retrieves an asset by ID
func (s *AssetService) GetAsset(ctx context.Context, assetID uuid.UUID) (*AssetResponse, error) {
	found, err := s.assetRepo.FindByID(ctx, assetID)
	if err != nil {
		return nil, err
	}
	return ToAssetResponse(found), nil
}

// GetAssetByTag retrieves an asset by its tag
func (s *AssetService) GetAssetByTag(ctx context.Context, tag string) (*AssetResponse, error) {
	found, err := s.assetRepo.FindByTag(ctx, tag)
	if err != nil {
		return nil, err
	}
	return ToAssetResponse(found), nil
}

// ListAssets lists assets with filters and pagination
func (s *AssetService) ListAssets(ctx context.Context, filter *AssetListFilter) ([]*AssetResponse, int64, error) {
	domainFilter := buildAssetFilter(filter)

	assets, err := s.assetRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.assetRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToAssetResponses(assets), total, nil
}

// ListAssetsByAssignee lists assets checked out to a user
func (s *AssetService) ListAssetsByAssignee(ctx context.Context, userID uuid.UUID) ([]*AssetResponse, error) {
	filter := shared.Filter{Page: 1, PageSize: 500, OrderBy: "due_back", OrderDir: "asc"}

	assets, err := s.assetRepo.FindByAssignee(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	return ToAssetResponses(assets), nil
}

// UpdateAsset updates an asset's descriptive fields
func (s *AssetService) UpdateAsset(ctx context.Context, assetID uuid.UUID, req *UpdateAssetRequest) (*AssetResponse, error) {
	found, err := s.assetRepo.FindByID(ctx, assetID)
	if err != nil {
		return nil, err
	}

	if req.Tag != nil && !tagEqual(*req.Tag, found.Tag) {
		exists, err := s.assetRepo.ExistsByTag(ctx, *req.Tag)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "An asset with this tag already exists")
		}
		if err := found.UpdateTag(*req.Tag); err != nil {
			return nil, err
		}
	}

	name := found.Name
	if req.Name != nil {
		name = *req.Name
	}
	description := found.Description
	if req.Description != nil {
		description = *req.Description
	}
	serialNumber := found.SerialNumber
	if req.SerialNumber != nil {
		serialNumber = *req.SerialNumber
	}
	modelName := found.ModelName
	if req.ModelName != nil {
		modelName = *req.ModelName
	}

	if req.Name != nil || req.Description != nil || req.SerialNumber != nil || req.ModelName != nil {
		if err := found.Update(name, description, serialNumber, modelName); err != nil {
			return nil, err
		}
	}

	if req.Notes != nil {
		found.SetNotes(*req.Notes)
	}

	if err := s.assetRepo.Save(ctx, found); err != nil {
		return nil, err
	}

	found.ClearDomainEvents()

	return ToAssetResponse(found), nil
}

// ClassifyAsset replaces the asset's picklist references
func (s *AssetService) ClassifyAsset(ctx context.Context, assetID uuid.UUID, req *ClassifyAssetRequest) (*AssetResponse, error) {
	found, err := s.assetRepo.FindByID(ctx, assetID)
	if err != nil {
		return nil, err
	}

	if err := s.checkClassification(ctx, req.CategoryID, req.ManufacturerID, req.ConditionID, req.LocationID); err != nil {
		return nil, err
	}

	found.Classify(req.CategoryID, req.ManufacturerID, req.ConditionID, req.LocationID)

	if err := s.assetRepo.Save(ctx, found); err != nil {
		return nil, err
	}

	return ToAssetResponse(found), nil
}

// SetPurchaseInfo records purchase details for an asset
func (s *AssetService) SetPurchaseInfo(ctx context.Context, assetID uuid.UUID, req *SetPurchaseInfoRequest) (*AssetResponse, error) {
	found, err := s.assetRepo.FindByID(ctx, assetID)
	if err != nil {
		return nil, err
	}

	if err := found.SetPurchaseInfo(req.PurchaseDate, req.PurchasePrice, req.WarrantyExpires); err != nil {
		return nil, err
	}

	if err := s.assetRepo.Save(ctx, found); err != nil {
		return nil, err
	}

	return ToAssetResponse(found), nil
}

// CheckoutAsset assigns an asset to a user and records the handout
func (s *AssetService) CheckoutAsset(ctx context.Context, assetID uuid.UUID, req *CheckoutAssetRequest) (*AssetResponse, error) {
	found, err := s.assetRepo.FindByID(ctx, assetID)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_USER", "User not found")
		}
		return nil, err
	}
	if !user.IsActive() {
		return nil, shared.NewDomainError("USER_DEACTIVATED", "Assets cannot be checked out to a deactivated user")
	}

	if err := found.Checkout(req.UserID, req.DueBack); err != nil {
		return nil, err
	}

	if err := s.assetRepo.Save(ctx, found); err != nil {
		return nil, err
	}

	found.ClearDomainEvents()

	if err := s.recordHistory(ctx, found.ID, &req.UserID, asset.AuditActionCheckout, req.Note, nil); err != nil {
		return nil, err
	}

	return ToAssetResponse(found), nil
}

// CheckinAsset returns a checked out asset and records the return
func (s *AssetService) CheckinAsset(ctx context.Context, assetID uuid.UUID, req *CheckinAssetRequest) (*AssetResponse, error) {
	found, err := s.assetRepo.FindByID(ctx, assetID)
	if err != nil {
		return nil, err
	}

	// Capture the holder before checkin clears it
	holder := found.AssignedToID

	if err := found.Checkin(); err != nil {
		return nil, err
	}

	if err := s.assetRepo.Save(ctx, found); err != nil {
		return nil, err
	}

	found.ClearDomainEvents()

	if err := s.recordHistory(ctx, found.ID, holder, asset.AuditActionCheckin, req.Note, nil); err != nil {
		return nil, err
	}

	return ToAssetResponse(found), nil
}

// RecordAudit records a physical verification of an asset.
// When the audit location differs from the asset's, the asset is moved there.
func (s *AssetService) RecordAudit(ctx context.Context, assetID uuid.UUID, performedBy *uuid.UUID, req *RecordAuditRequest) (*AuditResponse, error) {
	found, err := s.assetRepo.FindByID(ctx, assetID)
	if err != nil {
		return nil, err
	}

	if req.LocationID != nil {
		if _, err := s.picklistRepo.FindLocationByID(ctx, *req.LocationID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_LOCATION", "Location not found")
			}
			return nil, err
		}
	}

	audit, err := asset.NewAudit(assetID, performedBy, asset.AuditActionAudit, req.Note)
	if err != nil {
		return nil, err
	}
	audit.SetLocation(req.LocationID)

	if err := s.auditRepo.Save(ctx, audit); err != nil {
		return nil, err
	}

	if req.LocationID != nil && !uuidEqual(found.LocationID, req.LocationID) {
		found.Classify(found.CategoryID, found.ManufacturerID, found.ConditionID, req.LocationID)
		if err := s.assetRepo.Save(ctx, found); err != nil {
			return nil, err
		}
	}

	return ToAuditResponse(audit), nil
}

// ListAudits lists an asset's history, newest first
func (s *AssetService) ListAudits(ctx context.Context, assetID uuid.UUID, filter *AuditListFilter) ([]*AuditResponse, error) {
	if _, err := s.assetRepo.FindByID(ctx, assetID); err != nil {
		return nil, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 50
	}

	audits, err := s.auditRepo.FindByAsset(ctx, assetID, shared.Filter{Page: page, PageSize: pageSize})
	if err != nil {
		return nil, err
	}

	return ToAuditResponses(audits), nil
}

// RetireAsset removes an asset from service
func (s *AssetService) RetireAsset(ctx context.Context, assetID uuid.UUID) (*AssetResponse, error) {
	found, err := s.assetRepo.FindByID(ctx, assetID)
	if err != nil {
		return nil, err
	}

	if err := found.Retire(); err != nil {
		return nil, err
	}

	if err := s.assetRepo.Save(ctx, found); err != nil {
		return nil, err
	}

	found.ClearDomainEvents()

	return ToAssetResponse(found), nil
}

// RestoreAsset returns a retired asset to service
func (s *AssetService) RestoreAsset(ctx context.Context, assetID uuid.UUID) (*AssetResponse, error) {
	found, err := s.assetRepo.FindByID(ctx, assetID)
	if err != nil {
		return nil, err
	}

	if err := found.Restore(); err != nil {
		return nil, err
	}

	if err := s.assetRepo.Save(ctx, found); err != nil {
		return nil, err
	}

	return ToAssetResponse(found), nil
}

// DeleteAsset soft deletes an asset
func (s *AssetService) DeleteAsset(ctx context.Context, assetID uuid.UUID) error {
	found, err := s.assetRepo.FindByID(ctx, assetID)
	if err != nil {
		return err
	}

	if found.IsCheckedOut() {
		return shared.NewDomainError("ASSET_CHECKED_OUT", "Check the asset in before deleting it")
	}

	if err := s.assetRepo.Delete(ctx, assetID); err != nil {
		return err
	}

	if s.eventPublisher != nil {
		event := asset.NewAssetDeletedEvent(found)
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			// Log error but don't fail the operation
		}
	}

	return nil
}

// StatusSummary counts assets by lifecycle state
func (s *AssetService) StatusSummary(ctx context.Context) (*AssetStatusSummary, error) {
	summary := &AssetStatusSummary{}

	counts := []struct {
		key   string
		value interface{}
		dest  *int64
	}{
		{"status", string(asset.AssetStatusInService), &summary.InService},
		{"status", string(asset.AssetStatusRetired), &summary.Retired},
		{"checked_out", true, &summary.CheckedOut},
		{"overdue", true, &summary.Overdue},
	}

	for _, c := range counts {
		n, err := s.assetRepo.Count(ctx, shared.Filter{Filters: map[string]interface{}{c.key: c.value}})
		if err != nil {
			return nil, err
		}
		*c.dest = n
	}

	summary.Total = summary.InService + summary.Retired

	return summary, nil
}

// checkClassification verifies that every provided picklist ID exists
func (s *AssetService) checkClassification(ctx context.Context, categoryID, manufacturerID, conditionID, locationID *uuid.UUID) error {
	if categoryID != nil {
		if _, err := s.picklistRepo.FindCategoryByID(ctx, *categoryID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError("INVALID_CATEGORY", "Category not found")
			}
			return err
		}
	}
	if manufacturerID != nil {
		if _, err := s.picklistRepo.FindManufacturerByID(ctx, *manufacturerID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError("INVALID_MANUFACTURER", "Manufacturer not found")
			}
			return err
		}
	}
	if conditionID != nil {
		if _, err := s.picklistRepo.FindConditionByID(ctx, *conditionID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError("INVALID_CONDITION", "Condition not found")
			}
			return err
		}
	}
	if locationID != nil {
		if _, err := s.picklistRepo.FindLocationByID(ctx, *locationID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError("INVALID_LOCATION", "Location not found")
			}
			return err
		}
	}
	return nil
}

func (s *AssetService) recordHistory(ctx context.Context, assetID uuid.UUID, userID *uuid.UUID, action asset.AuditAction, note string, locationID *uuid.UUID) error {
	audit, err := asset.NewAudit(assetID, userID, action, note)
	if err != nil {
		return err
	}
	audit.SetLocation(locationID)
	return s.auditRepo.Save(ctx, audit)
}

func decimalOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

// tagEqual compares tags the way the domain stores them
func tagEqual(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func uuidEqual(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func buildAssetFilter(filter *AssetListFilter) shared.Filter {
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
		orderBy = "tag"
	}
	orderDir := filter.OrderDir
	if orderDir == "" {
		orderDir = "asc"
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
	if filter.CategoryID != nil {
		domainFilter.Filters["category_id"] = *filter.CategoryID
	}
	if filter.ManufacturerID != nil {
		domainFilter.Filters["manufacturer_id"] = *filter.ManufacturerID
	}
	if filter.ConditionID != nil {
		domainFilter.Filters["condition_id"] = *filter.ConditionID
	}
	if filter.LocationID != nil {
		domainFilter.Filters["location_id"] = *filter.LocationID
	}
	if filter.AssignedToID != nil {
		domainFilter.Filters["assigned_to_id"] = *filter.AssignedToID
	}
	if filter.CheckedOut != nil {
		domainFilter.Filters["checked_out"] = *filter.CheckedOut
	}
	if filter.Overdue != nil {
		domainFilter.Filters["overdue"] = *filter.Overdue
	}

	return domainFilter
}
