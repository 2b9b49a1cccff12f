package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/opsdesk/backend/internal/domain/document"
	"github.com/opsdesk/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormDocumentRepository implements DocumentRepository using GORM
type GormDocumentRepository struct {
	db *gorm.DB
}

// NewGormDocumentRepository creates a new GormDocumentRepository
func NewGormDocumentRepository(db *gorm.DB) *GormDocumentRepository {
	return &GormDocumentRepository{db: db}
}

// FindByID finds a document by its ID
func (r *GormDocumentRepository) FindByID(ctx context.Context, id uuid.UUID) (*document.Document, error) {
	var doc document.Document
	if err := r.db.WithContext(ctx).First(&doc, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}

// FindAll finds all documents matching the filter
func (r *GormDocumentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]document.Document, error) {
	var docs []document.Document
	query := r.applyFilter(r.db.WithContext(ctx).Model(&document.Document{}), filter)

	if err := query.Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

// FindByCategory finds documents filed under a category
func (r *GormDocumentRepository) FindByCategory(ctx context.Context, categoryID uuid.UUID, filter shared.Filter) ([]document.Document, error) {
	var docs []document.Document
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&document.Document{}).
			Where("category_id = ?", categoryID),
		filter,
	)

	if err := query.Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

// FindUnfiled finds documents without a category
func (r *GormDocumentRepository) FindUnfiled(ctx context.Context, filter shared.Filter) ([]document.Document, error) {
	var docs []document.Document
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&document.Document{}).
			Where("category_id IS NULL"),
		filter,
	)

	if err := query.Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

// Save creates or updates a document
func (r *GormDocumentRepository) Save(ctx context.Context, doc *document.Document) error {
	return r.db.WithContext(ctx).Save(doc).Error
}

// Delete deletes a document record (soft delete, the stored file is removed separately)
func (r *GormDocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&document.Document{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts documents matching the filter
func (r *GormDocumentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&document.Document{})
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormDocumentRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	// Apply pagination
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	// Apply ordering with whitelist validation to prevent SQL injection
	if filter.OrderBy != "" {
		sortField := ValidateSortField(filter.OrderBy, DocumentSortFields, "")
		if sortField != "" {
			sortOrder := ValidateSortOrder(filter.OrderDir)
			query = query.Order(sortField + " " + sortOrder)
		} else {
			query = query.Order("created_at DESC")
		}
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormDocumentRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	// Apply search
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ? OR file_name ILIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	// Apply additional filters
	for key, value := range filter.Filters {
		switch key {
		case "category_id":
			query = query.Where("category_id = ?", value)
		case "content_type":
			query = query.Where("content_type = ?", value)
		case "unfiled":
			if unfiled, ok := value.(bool); ok && unfiled {
				query = query.Where("category_id IS NULL")
			}
		}
	}

	return query
}

// Ensure GormDocumentRepository implements DocumentRepository
var _ document.DocumentRepository = (*GormDocumentRepository)(nil)

// GormDocumentCategoryRepository implements document.CategoryRepository using GORM
type GormDocumentCategoryRepository struct {
	db *gorm.DB
}

// NewGormDocumentCategoryRepository creates a new GormDocumentCategoryRepository
func NewGormDocumentCategoryRepository(db *gorm.DB) *GormDocumentCategoryRepository {
	return &GormDocumentCategoryRepository{db: db}
}

// FindByID finds a category by its ID
func (r *GormDocumentCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*document.Category, error) {
	var category document.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

// FindByName finds a category by its exact name
func (r *GormDocumentCategoryRepository) FindByName(ctx context.Context, name string) (*document.Category, error) {
	var category document.Category
	if err := r.db.WithContext(ctx).
		First(&category, "name = ?", strings.TrimSpace(name)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

// FindAll returns all categories ordered by sort order, then name
func (r *GormDocumentCategoryRepository) FindAll(ctx context.Context) ([]document.Category, error) {
	var categories []document.Category
	if err := r.db.WithContext(ctx).
		Order("sort_order ASC, name ASC").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Save creates or updates a category
func (r *GormDocumentCategoryRepository) Save(ctx context.Context, category *document.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

// Delete deletes a category. Documents filed under it keep their record
// and become unfiled.
func (r *GormDocumentCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Unfile documents before removing the category
		if err := tx.Model(&document.Document{}).
			Where("category_id = ?", id).
			Update("category_id", nil).Error; err != nil {
			return err
		}

		result := tx.Delete(&document.Category{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// ExistsByName checks if a category with the given name exists
func (r *GormDocumentCategoryRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&document.Category{}).
		Where("name = ?", strings.TrimSpace(name)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Ensure GormDocumentCategoryRepository implements CategoryRepository
var _ document.CategoryRepository = (*GormDocumentCategoryRepository)(nil)
