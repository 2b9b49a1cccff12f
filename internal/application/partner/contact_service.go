package partner

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/opsdesk/backend/internal/domain/partner"
	"github.com/opsdesk/backend/internal/domain/shared"
)

// ContactService handles contact operations
// Contacts are the external people tickets are filed for, most of them
// created automatically from inbound mail senders
type ContactService struct {
	contactRepo partner.ContactRepository
}

// NewContactService creates a new ContactService
func NewContactService(contactRepo partner.ContactRepository) *ContactService {
	return &ContactService{
		contactRepo: contactRepo,
	}
}

// Create creates a new contact
func (s *ContactService) Create(ctx context.Context, req *CreateContactRequest, createdBy *uuid.UUID) (*ContactResponse, error) {
	existing, err := s.contactRepo.FindByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Contact with this email already exists")
	}

	contact, err := partner.NewContact(req.Name, req.Email)
	if err != nil {
		return nil, err
	}

	if req.Phone != "" || req.Organization != "" {
		if err := contact.Update(req.Name, req.Phone, req.Organization); err != nil {
			return nil, err
		}
	}
	if req.Notes != "" {
		contact.SetNotes(req.Notes)
	}
	if createdBy != nil {
		contact.SetCreatedBy(*createdBy)
	}

	if err := s.contactRepo.Save(ctx, contact); err != nil {
		return nil, err
	}
	contact.ClearDomainEvents()

	response := ToContactResponse(contact)
	return &response, nil
}

// Get retrieves a contact by ID
func (s *ContactService) Get(ctx context.Context, contactID uuid.UUID) (*ContactResponse, error) {
	contact, err := s.contactRepo.FindByID(ctx, contactID)
	if err != nil {
		return nil, err
	}

	response := ToContactResponse(contact)
	return &response, nil
}

// List retrieves contacts with filtering and pagination
func (s *ContactService) List(ctx context.Context, filter *ContactListFilter) ([]ContactResponse, int64, error) {
	domainFilter := buildListFilter(filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir, filter.Search, "email", "asc")
	if filter.Organization != "" {
		domainFilter.Filters["organization"] = filter.Organization
	}

	contacts, err := s.contactRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.contactRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToContactResponses(contacts), total, nil
}

// Update updates a contact's details
func (s *ContactService) Update(ctx context.Context, contactID uuid.UUID, req *UpdateContactRequest) (*ContactResponse, error) {
	contact, err := s.contactRepo.FindByID(ctx, contactID)
	if err != nil {
		return nil, err
	}

	name := contact.Name
	if req.Name != nil {
		name = *req.Name
	}
	phone := contact.Phone
	if req.Phone != nil {
		phone = *req.Phone
	}
	organization := contact.Organization
	if req.Organization != nil {
		organization = *req.Organization
	}
	if err := contact.Update(name, phone, organization); err != nil {
		return nil, err
	}
	if req.Notes != nil {
		contact.SetNotes(*req.Notes)
	}

	if err := s.contactRepo.Save(ctx, contact); err != nil {
		return nil, err
	}
	contact.ClearDomainEvents()

	response := ToContactResponse(contact)
	return &response, nil
}

// Delete deletes a contact
func (s *ContactService) Delete(ctx context.Context, contactID uuid.UUID) error {
	if _, err := s.contactRepo.FindByID(ctx, contactID); err != nil {
		return err
	}
	return s.contactRepo.Delete(ctx, contactID)
}

// UpsertByEmail finds the contact for an inbound mail sender, creating it
// when unknown and backfilling the display name when a later message
// carries one
func (s *ContactService) UpsertByEmail(ctx context.Context, email, name string) (*partner.Contact, error) {
	contact, err := s.contactRepo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	if contact == nil {
		contact, err = partner.NewContact(name, email)
		if err != nil {
			return nil, err
		}
		if err := s.contactRepo.Save(ctx, contact); err != nil {
			return nil, err
		}
		contact.ClearDomainEvents()
		return contact, nil
	}

	if contact.FillName(name) {
		if err := s.contactRepo.Save(ctx, contact); err != nil {
			return nil, err
		}
	}
	return contact, nil
}
