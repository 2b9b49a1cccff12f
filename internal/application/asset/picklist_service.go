package asset

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/opsdesk/backend/internal/domain/asset"
	"github.com/opsdesk/backend/internal/domain/shared"
)

// PicklistKind names one of the four asset picklists
type PicklistKind string

const (
	PicklistCategories    PicklistKind = "categories"
	PicklistManufacturers PicklistKind = "manufacturers"
	PicklistConditions    PicklistKind = "conditions"
	PicklistLocations     PicklistKind = "locations"
)

// ParsePicklistKind maps a URL segment to a picklist kind
func ParsePicklistKind(s string) (PicklistKind, error) {
	switch PicklistKind(s) {
	case PicklistCategories, PicklistManufacturers, PicklistConditions, PicklistLocations:
		return PicklistKind(s), nil
	}
	return "", shared.NewDomainError("INVALID_PICKLIST", "Unknown picklist")
}

// PicklistService manages the four asset classification picklists.
// All lists share one shape, so operations dispatch on the kind.
type PicklistService struct {
	picklistRepo asset.PicklistRepository
	assetRepo    asset.AssetRepository
}

// NewPicklistService creates a new picklist service
func NewPicklistService(picklistRepo asset.PicklistRepository, assetRepo asset.AssetRepository) *PicklistService {
	return &PicklistService{
		picklistRepo: picklistRepo,
		assetRepo:    assetRepo,
	}
}

// CreateEntry creates a picklist entry
func (s *PicklistService) CreateEntry(ctx context.Context, kind PicklistKind, req *PicklistEntryRequest) (*PicklistEntryResponse, error) {
	if err := s.checkNameFree(ctx, kind, req.Name, uuid.Nil); err != nil {
		return nil, err
	}

	switch kind {
	case PicklistCategories:
		entry, err := asset.NewCategory(req.Name)
		if err != nil {
			return nil, err
		}
		if req.SortOrder != 0 {
			entry.SetSortOrder(req.SortOrder)
		}
		if err := s.picklistRepo.SaveCategory(ctx, entry); err != nil {
			return nil, err
		}
		return categoryResponse(entry), nil
	case PicklistManufacturers:
		entry, err := asset.NewManufacturer(req.Name)
		if err != nil {
			return nil, err
		}
		if req.SortOrder != 0 {
			entry.SetSortOrder(req.SortOrder)
		}
		if err := s.picklistRepo.SaveManufacturer(ctx, entry); err != nil {
			return nil, err
		}
		return manufacturerResponse(entry), nil
	case PicklistConditions:
		entry, err := asset.NewCondition(req.Name)
		if err != nil {
			return nil, err
		}
		if req.SortOrder != 0 {
			entry.SetSortOrder(req.SortOrder)
		}
		if err := s.picklistRepo.SaveCondition(ctx, entry); err != nil {
			return nil, err
		}
		return conditionResponse(entry), nil
	case PicklistLocations:
		entry, err := asset.NewLocation(req.Name)
		if err != nil {
			return nil, err
		}
		if req.SortOrder != 0 {
			entry.SetSortOrder(req.SortOrder)
		}
		if err := s.picklistRepo.SaveLocation(ctx, entry); err != nil {
			return nil, err
		}
		return locationResponse(entry), nil
	}

	return nil, shared.NewDomainError("INVALID_PICKLIST", "Unknown picklist")
}

// ListEntries lists a picklist, inactive entries included only on request
func (s *PicklistService) ListEntries(ctx context.Context, kind PicklistKind, includeInactive bool) ([]*PicklistEntryResponse, error) {
	entries, err := s.allEntries(ctx, kind)
	if err != nil {
		return nil, err
	}

	if includeInactive {
		return entries, nil
	}

	active := make([]*PicklistEntryResponse, 0, len(entries))
	for _, entry := range entries {
		if entry.Active {
			active = append(active, entry)
		}
	}
	return active, nil
}

// UpdateEntry updates a picklist entry
func (s *PicklistService) UpdateEntry(ctx context.Context, kind PicklistKind, id uuid.UUID, req *UpdatePicklistEntryRequest) (*PicklistEntryResponse, error) {
	if req.Name != nil {
		if err := s.checkNameFree(ctx, kind, *req.Name, id); err != nil {
			return nil, err
		}
	}

	switch kind {
	case PicklistCategories:
		entry, err := s.picklistRepo.FindCategoryByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if req.Name != nil {
			if err := entry.Rename(*req.Name); err != nil {
				return nil, err
			}
		}
		if req.SortOrder != nil {
			entry.SetSortOrder(*req.SortOrder)
		}
		if req.Active != nil {
			entry.SetActive(*req.Active)
		}
		if err := s.picklistRepo.SaveCategory(ctx, entry); err != nil {
			return nil, err
		}
		return categoryResponse(entry), nil
	case PicklistManufacturers:
		entry, err := s.picklistRepo.FindManufacturerByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if req.Name != nil {
			if err := entry.Rename(*req.Name); err != nil {
				return nil, err
			}
		}
		if req.SortOrder != nil {
			entry.SetSortOrder(*req.SortOrder)
		}
		if req.Active != nil {
			entry.SetActive(*req.Active)
		}
		if err := s.picklistRepo.SaveManufacturer(ctx, entry); err != nil {
			return nil, err
		}
		return manufacturerResponse(entry), nil
	case PicklistConditions:
		entry, err := s.picklistRepo.FindConditionByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if req.Name != nil {
			if err := entry.Rename(*req.Name); err != nil {
				return nil, err
			}
		}
		if req.SortOrder != nil {
			entry.SetSortOrder(*req.SortOrder)
		}
		if req.Active != nil {
			entry.SetActive(*req.Active)
		}
		if err := s.picklistRepo.SaveCondition(ctx, entry); err != nil {
			return nil, err
		}
		return conditionResponse(entry), nil
	case PicklistLocations:
		entry, err := s.picklistRepo.FindLocationByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if req.Name != nil {
			if err := entry.Rename(*req.Name); err != nil {
				return nil, err
			}
		}
		if req.SortOrder != nil {
			entry.SetSortOrder(*req.SortOrder)
		}
		if req.Active != nil {
			entry.SetActive(*req.Active)
		}
		if err := s.picklistRepo.SaveLocation(ctx, entry); err != nil {
			return nil, err
		}
		return locationResponse(entry), nil
	}

	return nil, shared.NewDomainError("INVALID_PICKLIST", "Unknown picklist")
}

// DeleteEntry deletes a picklist entry that no asset references
func (s *PicklistService) DeleteEntry(ctx context.Context, kind PicklistKind, id uuid.UUID) error {
	inUse, err := s.assetRepo.Count(ctx, shared.Filter{
		Filters: map[string]interface{}{assetFilterKey(kind): id},
	})
	if err != nil {
		return err
	}
	if inUse > 0 {
		return shared.NewDomainError("IN_USE", "Entry is referenced by existing assets")
	}

	switch kind {
	case PicklistCategories:
		return s.picklistRepo.DeleteCategory(ctx, id)
	case PicklistManufacturers:
		return s.picklistRepo.DeleteManufacturer(ctx, id)
	case PicklistConditions:
		return s.picklistRepo.DeleteCondition(ctx, id)
	case PicklistLocations:
		return s.picklistRepo.DeleteLocation(ctx, id)
	}

	return shared.NewDomainError("INVALID_PICKLIST", "Unknown picklist")
}

func (s *PicklistService) allEntries(ctx context.Context, kind PicklistKind) ([]*PicklistEntryResponse, error) {
	switch kind {
	case PicklistCategories:
		found, err := s.picklistRepo.FindAllCategories(ctx)
		if err != nil {
			return nil, err
		}
		entries := make([]*PicklistEntryResponse, len(found))
		for i := range found {
			entries[i] = categoryResponse(&found[i])
		}
		return entries, nil
	case PicklistManufacturers:
		found, err := s.picklistRepo.FindAllManufacturers(ctx)
		if err != nil {
			return nil, err
		}
		entries := make([]*PicklistEntryResponse, len(found))
		for i := range found {
			entries[i] = manufacturerResponse(&found[i])
		}
		return entries, nil
	case PicklistConditions:
		found, err := s.picklistRepo.FindAllConditions(ctx)
		if err != nil {
			return nil, err
		}
		entries := make([]*PicklistEntryResponse, len(found))
		for i := range found {
			entries[i] = conditionResponse(&found[i])
		}
		return entries, nil
	case PicklistLocations:
		found, err := s.picklistRepo.FindAllLocations(ctx)
		if err != nil {
			return nil, err
		}
		entries := make([]*PicklistEntryResponse, len(found))
		for i := range found {
			entries[i] = locationResponse(&found[i])
		}
		return entries, nil
	}

	return nil, shared.NewDomainError("INVALID_PICKLIST", "Unknown picklist")
}

// checkNameFree enforces name uniqueness within one picklist.
// Lists are small, so the check scans rather than adding repo methods.
func (s *PicklistService) checkNameFree(ctx context.Context, kind PicklistKind, name string, excludeID uuid.UUID) error {
	entries, err := s.allEntries(ctx, kind)
	if err != nil {
		return err
	}

	name = strings.TrimSpace(name)
	for _, entry := range entries {
		if entry.ID != excludeID && strings.EqualFold(entry.Name, name) {
			return shared.NewDomainError("ALREADY_EXISTS", "An entry with this name already exists")
		}
	}
	return nil
}

func assetFilterKey(kind PicklistKind) string {
	switch kind {
	case PicklistCategories:
		return "category_id"
	case PicklistManufacturers:
		return "manufacturer_id"
	case PicklistConditions:
		return "condition_id"
	case PicklistLocations:
		return "location_id"
	}
	return ""
}

func categoryResponse(c *asset.Category) *PicklistEntryResponse {
	return &PicklistEntryResponse{
		ID:        c.ID,
		Name:      c.Name,
		SortOrder: c.SortOrder,
		Active:    c.Active,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func manufacturerResponse(m *asset.Manufacturer) *PicklistEntryResponse {
	return &PicklistEntryResponse{
		ID:        m.ID,
		Name:      m.Name,
		SortOrder: m.SortOrder,
		Active:    m.Active,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func conditionResponse(c *asset.Condition) *PicklistEntryResponse {
	return &PicklistEntryResponse{
		ID:        c.ID,
		Name:      c.Name,
		SortOrder: c.SortOrder,
		Active:    c.Active,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func locationResponse(l *asset.Location) *PicklistEntryResponse {
	return &PicklistEntryResponse{
		ID:        l.ID,
		Name:      l.Name,
		SortOrder: l.SortOrder,
		Active:    l.Active,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}
