package partner

import (
	"github.com/google/uuid"
	"github.com/opsdesk/backend/internal/domain/shared"
)

// Aggregate type constant for Company
const AggregateTypeCompany = "Company"

// Event type constants for Company
const (
	EventTypeCompanyCreated = "CompanyCreated"
	EventTypeCompanyUpdated = "CompanyUpdated"
)

// CompanyCreatedEvent is published when the company record is created
type CompanyCreatedEvent struct {
	shared.BaseDomainEvent
	CompanyID uuid.UUID `json:"company_id"`
	Name      string    `json:"name"`
}

// NewCompanyCreatedEvent creates a new CompanyCreatedEvent
func NewCompanyCreatedEvent(company *Company) *CompanyCreatedEvent {
	return &CompanyCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCompanyCreated, AggregateTypeCompany, company.ID),
		CompanyID:       company.ID,
		Name:            company.Name,
	}
}

// CompanyUpdatedEvent is published when the company record is updated
type CompanyUpdatedEvent struct {
	shared.BaseDomainEvent
	CompanyID uuid.UUID `json:"company_id"`
	Name      string    `json:"name"`
}

// NewCompanyUpdatedEvent creates a new CompanyUpdatedEvent
func NewCompanyUpdatedEvent(company *Company) *CompanyUpdatedEvent {
	return &CompanyUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCompanyUpdated, AggregateTypeCompany, company.ID),
		CompanyID:       company.ID,
		Name:            company.Name,
	}
}
