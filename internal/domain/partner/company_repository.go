package partner

import (
	"context"

	"github.com/google/uuid"
)

// CompanyRepository defines the interface for company persistence
type CompanyRepository interface {
	// FindByID finds a company by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Company, error)

	// FindFirst returns the company record, if one exists
	FindFirst(ctx context.Context) (*Company, error)

	// Save creates or updates a company
	Save(ctx context.Context, company *Company) error
}
