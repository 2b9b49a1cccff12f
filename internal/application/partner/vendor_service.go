package partner

import (
	"context"

	"github.com/google/uuid"

	"github.com/opsdesk/backend/internal/domain/partner"
	"github.com/opsdesk/backend/internal/domain/shared"
)

// VendorService handles vendor-related business operations
type VendorService struct {
	vendorRepo     partner.VendorRepository
	eventPublisher shared.EventPublisher
}

// NewVendorService creates a new VendorService
func NewVendorService(vendorRepo partner.VendorRepository) *VendorService {
	return &VendorService{
		vendorRepo: vendorRepo,
	}
}

// SetEventPublisher sets the event publisher for the service
func (s *VendorService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new vendor
func (s *VendorService) Create(ctx context.Context, req *CreateVendorRequest, createdBy *uuid.UUID) (*VendorResponse, error) {
	exists, err := s.vendorRepo.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Vendor with this name already exists")
	}

	vendor, err := partner.NewVendor(req.Name)
	if err != nil {
		return nil, err
	}

	if req.AccountNumber != "" || req.Website != "" {
		if err := vendor.Update(req.Name, req.AccountNumber, req.Website); err != nil {
			return nil, err
		}
	}
	if req.ContactName != "" || req.Phone != "" || req.Fax != "" || req.Email != "" {
		if err := vendor.SetContact(req.ContactName, req.Phone, req.Fax, req.Email); err != nil {
			return nil, err
		}
	}
	if req.OrderEmail != "" {
		if err := vendor.SetOrderEmail(req.OrderEmail); err != nil {
			return nil, err
		}
	}
	if req.Address != nil {
		addr, err := req.Address.toDomain()
		if err != nil {
			return nil, shared.NewDomainError("INVALID_ADDRESS", err.Error())
		}
		vendor.SetAddress(addr)
	}
	if req.Notes != "" {
		vendor.SetNotes(req.Notes)
	}
	if createdBy != nil {
		vendor.SetCreatedBy(*createdBy)
	}

	if err := s.vendorRepo.Save(ctx, vendor); err != nil {
		return nil, err
	}
	vendor.ClearDomainEvents()

	response := ToVendorResponse(vendor)
	return &response, nil
}

// Get retrieves a vendor by ID
func (s *VendorService) Get(ctx context.Context, vendorID uuid.UUID) (*VendorResponse, error) {
	vendor, err := s.vendorRepo.FindByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	response := ToVendorResponse(vendor)
	return &response, nil
}

// List retrieves vendors with filtering and pagination
func (s *VendorService) List(ctx context.Context, filter *VendorListFilter) ([]VendorResponse, int64, error) {
	domainFilter := buildListFilter(filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir, filter.Search, "name", "asc")
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	vendors, err := s.vendorRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.vendorRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToVendorResponses(vendors), total, nil
}

// ListActive retrieves all active vendors, for order entry pickers
func (s *VendorService) ListActive(ctx context.Context) ([]VendorResponse, error) {
	filter := shared.Filter{Page: 1, PageSize: 500, OrderBy: "name", OrderDir: "asc", Filters: map[string]interface{}{}}
	vendors, err := s.vendorRepo.FindActive(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ToVendorResponses(vendors), nil
}

// Update updates a vendor's details
func (s *VendorService) Update(ctx context.Context, vendorID uuid.UUID, req *UpdateVendorRequest) (*VendorResponse, error) {
	vendor, err := s.vendorRepo.FindByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	name := vendor.Name
	if req.Name != nil {
		name = *req.Name
	}
	if name != vendor.Name {
		exists, err := s.vendorRepo.ExistsByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Vendor with this name already exists")
		}
	}

	accountNumber := vendor.AccountNumber
	if req.AccountNumber != nil {
		accountNumber = *req.AccountNumber
	}
	website := vendor.Website
	if req.Website != nil {
		website = *req.Website
	}
	if err := vendor.Update(name, accountNumber, website); err != nil {
		return nil, err
	}

	if req.ContactName != nil || req.Phone != nil || req.Fax != nil || req.Email != nil {
		contactName := vendor.ContactName
		if req.ContactName != nil {
			contactName = *req.ContactName
		}
		phone := vendor.Phone
		if req.Phone != nil {
			phone = *req.Phone
		}
		fax := vendor.Fax
		if req.Fax != nil {
			fax = *req.Fax
		}
		email := vendor.Email
		if req.Email != nil {
			email = *req.Email
		}
		if err := vendor.SetContact(contactName, phone, fax, email); err != nil {
			return nil, err
		}
	}
	if req.OrderEmail != nil {
		if err := vendor.SetOrderEmail(*req.OrderEmail); err != nil {
			return nil, err
		}
	}
	if req.Address != nil {
		addr, err := req.Address.toDomain()
		if err != nil {
			return nil, shared.NewDomainError("INVALID_ADDRESS", err.Error())
		}
		vendor.SetAddress(addr)
	}
	if req.Notes != nil {
		vendor.SetNotes(*req.Notes)
	}

	if err := s.vendorRepo.Save(ctx, vendor); err != nil {
		return nil, err
	}
	vendor.ClearDomainEvents()

	response := ToVendorResponse(vendor)
	return &response, nil
}

// Activate activates a vendor
func (s *VendorService) Activate(ctx context.Context, vendorID uuid.UUID) (*VendorResponse, error) {
	vendor, err := s.vendorRepo.FindByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	if err := vendor.Activate(); err != nil {
		return nil, err
	}

	if err := s.vendorRepo.Save(ctx, vendor); err != nil {
		return nil, err
	}
	vendor.ClearDomainEvents()

	response := ToVendorResponse(vendor)
	return &response, nil
}

// Deactivate deactivates a vendor so it no longer appears for new orders
func (s *VendorService) Deactivate(ctx context.Context, vendorID uuid.UUID) (*VendorResponse, error) {
	vendor, err := s.vendorRepo.FindByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	if err := vendor.Deactivate(); err != nil {
		return nil, err
	}

	if err := s.vendorRepo.Save(ctx, vendor); err != nil {
		return nil, err
	}
	vendor.ClearDomainEvents()

	response := ToVendorResponse(vendor)
	return &response, nil
}

// Delete deletes a vendor
func (s *VendorService) Delete(ctx context.Context, vendorID uuid.UUID) error {
	vendor, err := s.vendorRepo.FindByID(ctx, vendorID)
	if err != nil {
		return err
	}

	if err := s.vendorRepo.Delete(ctx, vendorID); err != nil {
		return err
	}

	if s.eventPublisher != nil {
		event := partner.NewVendorDeletedEvent(vendor)
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			// Log error but don't fail the operation
		}
	}

	return nil
}

// buildListFilter assembles a domain filter with paging defaults applied
func buildListFilter(page, pageSize int, orderBy, orderDir, search, defaultOrderBy, defaultOrderDir string) shared.Filter {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	if orderBy == "" {
		orderBy = defaultOrderBy
	}
	if orderDir == "" {
		orderDir = defaultOrderDir
	}
	return shared.Filter{
		Page:     page,
		PageSize: pageSize,
		OrderBy:  orderBy,
		OrderDir: orderDir,
		Search:   search,
		Filters:  make(map[string]interface{}),
	}
}
