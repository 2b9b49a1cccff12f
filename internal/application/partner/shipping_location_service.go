package partner

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/opsdesk/backend/internal/domain/partner"
	"github.com/opsdesk/backend/internal/domain/shared"
)

// ShippingLocationService handles shipping location operations
type ShippingLocationService struct {
	locationRepo   partner.ShippingLocationRepository
	eventPublisher shared.EventPublisher
}

// NewShippingLocationService creates a new ShippingLocationService
func NewShippingLocationService(locationRepo partner.ShippingLocationRepository) *ShippingLocationService {
	return &ShippingLocationService{
		locationRepo: locationRepo,
	}
}

// SetEventPublisher sets the event publisher for the service
func (s *ShippingLocationService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new shipping location
func (s *ShippingLocationService) Create(ctx context.Context, req *CreateShippingLocationRequest, createdBy *uuid.UUID) (*ShippingLocationResponse, error) {
	exists, err := s.locationRepo.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Shipping location with this name already exists")
	}

	location, err := partner.NewShippingLocation(req.Name, req.TaxRate)
	if err != nil {
		return nil, err
	}

	if req.Address != nil {
		addr, err := req.Address.toDomain()
		if err != nil {
			return nil, shared.NewDomainError("INVALID_ADDRESS", err.Error())
		}
		location.SetAddress(addr)
	}
	if req.Notes != "" {
		if err := location.Update(req.Name, req.Notes); err != nil {
			return nil, err
		}
	}
	if createdBy != nil {
		location.SetCreatedBy(*createdBy)
	}

	if req.IsDefault {
		if err := s.clearCurrentDefault(ctx, uuid.Nil); err != nil {
			return nil, err
		}
		location.MarkDefault()
	}

	if err := s.locationRepo.Save(ctx, location); err != nil {
		return nil, err
	}
	location.ClearDomainEvents()

	response := ToShippingLocationResponse(location)
	return &response, nil
}

// Get retrieves a shipping location by ID
func (s *ShippingLocationService) Get(ctx context.Context, locationID uuid.UUID) (*ShippingLocationResponse, error) {
	location, err := s.locationRepo.FindByID(ctx, locationID)
	if err != nil {
		return nil, err
	}

	response := ToShippingLocationResponse(location)
	return &response, nil
}

// List retrieves shipping locations with filtering and pagination
func (s *ShippingLocationService) List(ctx context.Context, filter *ShippingLocationListFilter) ([]ShippingLocationResponse, int64, error) {
	domainFilter := buildListFilter(filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir, filter.Search, "name", "asc")
	if filter.Active != nil {
		domainFilter.Filters["active"] = *filter.Active
	}

	locations, err := s.locationRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.locationRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToShippingLocationResponses(locations), total, nil
}

// Update updates a shipping location
func (s *ShippingLocationService) Update(ctx context.Context, locationID uuid.UUID, req *UpdateShippingLocationRequest) (*ShippingLocationResponse, error) {
	location, err := s.locationRepo.FindByID(ctx, locationID)
	if err != nil {
		return nil, err
	}

	name := location.Name
	if req.Name != nil {
		name = *req.Name
	}
	if name != location.Name {
		exists, err := s.locationRepo.ExistsByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Shipping location with this name already exists")
		}
	}

	notes := location.Notes
	if req.Notes != nil {
		notes = *req.Notes
	}
	if err := location.Update(name, notes); err != nil {
		return nil, err
	}

	if req.TaxRate != nil {
		if err := location.SetTaxRate(*req.TaxRate); err != nil {
			return nil, err
		}
	}
	if req.Address != nil {
		addr, err := req.Address.toDomain()
		if err != nil {
			return nil, shared.NewDomainError("INVALID_ADDRESS", err.Error())
		}
		location.SetAddress(addr)
	}

	if err := s.locationRepo.Save(ctx, location); err != nil {
		return nil, err
	}
	location.ClearDomainEvents()

	response := ToShippingLocationResponse(location)
	return &response, nil
}

// SetDefault marks a location as the default ship-to for new orders
// Any previously marked default is cleared first
func (s *ShippingLocationService) SetDefault(ctx context.Context, locationID uuid.UUID) (*ShippingLocationResponse, error) {
	location, err := s.locationRepo.FindByID(ctx, locationID)
	if err != nil {
		return nil, err
	}

	if err := s.clearCurrentDefault(ctx, locationID); err != nil {
		return nil, err
	}

	location.MarkDefault()
	if err := s.locationRepo.Save(ctx, location); err != nil {
		return nil, err
	}
	location.ClearDomainEvents()

	response := ToShippingLocationResponse(location)
	return &response, nil
}

// Activate reactivates a shipping location
func (s *ShippingLocationService) Activate(ctx context.Context, locationID uuid.UUID) (*ShippingLocationResponse, error) {
	location, err := s.locationRepo.FindByID(ctx, locationID)
	if err != nil {
		return nil, err
	}

	location.Activate()
	if err := s.locationRepo.Save(ctx, location); err != nil {
		return nil, err
	}
	location.ClearDomainEvents()

	response := ToShippingLocationResponse(location)
	return &response, nil
}

// Deactivate deactivates a shipping location
func (s *ShippingLocationService) Deactivate(ctx context.Context, locationID uuid.UUID) (*ShippingLocationResponse, error) {
	location, err := s.locationRepo.FindByID(ctx, locationID)
	if err != nil {
		return nil, err
	}

	location.Deactivate()
	if err := s.locationRepo.Save(ctx, location); err != nil {
		return nil, err
	}
	location.ClearDomainEvents()

	response := ToShippingLocationResponse(location)
	return &response, nil
}

// Delete deletes a shipping location
func (s *ShippingLocationService) Delete(ctx context.Context, locationID uuid.UUID) error {
	location, err := s.locationRepo.FindByID(ctx, locationID)
	if err != nil {
		return err
	}

	if err := s.locationRepo.Delete(ctx, locationID); err != nil {
		return err
	}

	if s.eventPublisher != nil {
		event := partner.NewShippingLocationDeletedEvent(location)
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			// Log error but don't fail the operation
		}
	}

	return nil
}

// clearCurrentDefault clears the default flag from whichever location holds
// it, skipping the given ID
func (s *ShippingLocationService) clearCurrentDefault(ctx context.Context, keepID uuid.UUID) error {
	current, err := s.locationRepo.FindDefault(ctx)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil
		}
		return err
	}
	if current.ID == keepID {
		return nil
	}

	current.ClearDefault()
	return s.locationRepo.Save(ctx, current)
}
