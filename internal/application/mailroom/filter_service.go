package mailroom

import (
	"context"

	"github.com/google/uuid"

	"github.com/opsdesk/backend/internal/domain/mailroom"
	"github.com/opsdesk/backend/internal/domain/shared"
)

// FilterService manages the sender allow list and the deny filters
type FilterService struct {
	filterRepo mailroom.FilterRepository
}

// NewFilterService creates a new filter service
func NewFilterService(filterRepo mailroom.FilterRepository) *FilterService {
	return &FilterService{filterRepo: filterRepo}
}

// CreateAllowedDomain adds a sender domain to the allow list
func (s *FilterService) CreateAllowedDomain(ctx context.Context, req *CreateAllowedDomainRequest) (*AllowedDomainResponse, error) {
	d, err := mailroom.NewAllowedDomain(req.Domain)
	if err != nil {
		return nil, err
	}

	exists, err := s.filterRepo.ExistsAllowedDomain(ctx, d.Domain)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Domain is already on the allow list")
	}

	if err := s.filterRepo.SaveAllowedDomain(ctx, d); err != nil {
		return nil, err
	}

	return ToAllowedDomainResponse(d), nil
}

// ListAllowedDomains returns the full allow list
func (s *FilterService) ListAllowedDomains(ctx context.Context) ([]*AllowedDomainResponse, error) {
	domains, err := s.filterRepo.FindAllowedDomains(ctx)
	if err != nil {
		return nil, err
	}
	return ToAllowedDomainResponses(domains), nil
}

// UpdateAllowedDomain toggles an allow list entry
func (s *FilterService) UpdateAllowedDomain(ctx context.Context, domainID uuid.UUID, req *UpdateAllowedDomainRequest) (*AllowedDomainResponse, error) {
	d, err := s.filterRepo.FindAllowedDomainByID(ctx, domainID)
	if err != nil {
		return nil, err
	}

	if req.Active != nil {
		if *req.Active {
			d.Activate()
		} else {
			d.Deactivate()
		}
		if err := s.filterRepo.SaveAllowedDomain(ctx, d); err != nil {
			return nil, err
		}
	}

	return ToAllowedDomainResponse(d), nil
}

// DeleteAllowedDomain removes a domain from the allow list
func (s *FilterService) DeleteAllowedDomain(ctx context.Context, domainID uuid.UUID) error {
	if _, err := s.filterRepo.FindAllowedDomainByID(ctx, domainID); err != nil {
		return err
	}
	return s.filterRepo.DeleteAllowedDomain(ctx, domainID)
}

// CreateDenyFilter adds a deny filter
func (s *FilterService) CreateDenyFilter(ctx context.Context, req *CreateDenyFilterRequest) (*DenyFilterResponse, error) {
	f, err := mailroom.NewDenyFilter(req.Pattern, req.Note)
	if err != nil {
		return nil, err
	}

	if err := s.filterRepo.SaveDenyFilter(ctx, f); err != nil {
		return nil, err
	}

	return ToDenyFilterResponse(f), nil
}

// ListDenyFilters returns every deny filter
func (s *FilterService) ListDenyFilters(ctx context.Context) ([]*DenyFilterResponse, error) {
	filters, err := s.filterRepo.FindDenyFilters(ctx)
	if err != nil {
		return nil, err
	}
	return ToDenyFilterResponses(filters), nil
}

// UpdateDenyFilter updates a deny filter's pattern, note, or active flag
func (s *FilterService) UpdateDenyFilter(ctx context.Context, filterID uuid.UUID, req *UpdateDenyFilterRequest) (*DenyFilterResponse, error) {
	f, err := s.filterRepo.FindDenyFilterByID(ctx, filterID)
	if err != nil {
		return nil, err
	}

	if req.Pattern != nil || req.Note != nil {
		pattern := f.Pattern
		note := f.Note
		if req.Pattern != nil {
			pattern = *req.Pattern
		}
		if req.Note != nil {
			note = *req.Note
		}
		if err := f.Update(pattern, note); err != nil {
			return nil, err
		}
	}

	if req.Active != nil {
		if *req.Active {
			f.Activate()
		} else {
			f.Deactivate()
		}
	}

	if err := s.filterRepo.SaveDenyFilter(ctx, f); err != nil {
		return nil, err
	}

	return ToDenyFilterResponse(f), nil
}

// DeleteDenyFilter removes a deny filter
func (s *FilterService) DeleteDenyFilter(ctx context.Context, filterID uuid.UUID) error {
	if _, err := s.filterRepo.FindDenyFilterByID(ctx, filterID); err != nil {
		return err
	}
	return s.filterRepo.DeleteDenyFilter(ctx, filterID)
}
