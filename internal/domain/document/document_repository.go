package document

import (
	"context"

	"github.com/google/uuid"
	"github.com/opsdesk/backend/internal/domain/shared"
)

// DocumentRepository defines the interface for document persistence
type DocumentRepository interface {
	// FindByID finds a document by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Document, error)

	// FindAll finds all documents matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Document, error)

	// FindByCategory finds documents filed under a category
	FindByCategory(ctx context.Context, categoryID uuid.UUID, filter shared.Filter) ([]Document, error)

	// FindUnfiled finds documents without a category
	FindUnfiled(ctx context.Context, filter shared.Filter) ([]Document, error)

	// Save creates or updates a document
	Save(ctx context.Context, doc *Document) error

	// Delete deletes a document record
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts documents matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// CategoryRepository defines the interface for document category persistence
type CategoryRepository interface {
	// FindByID finds a category by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)

	// FindByName finds a category by its exact name
	FindByName(ctx context.Context, name string) (*Category, error)

	// FindAll returns all categories ordered by sort order, then name
	FindAll(ctx context.Context) ([]Category, error)

	// Save creates or updates a category
	Save(ctx context.Context, category *Category) error

	// Delete deletes a category
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsByName checks if a category with the given name exists
	ExistsByName(ctx context.Context, name string) (bool, error)
}
