package setting

import "context"

// Repository defines the interface for setting persistence
type Repository interface {
	// FindByKey finds a setting by its key
	// Returns shared.ErrNotFound if the key does not exist
	FindByKey(ctx context.Context, key string) (*Setting, error)

	// GetValue returns the value for a key, or the fallback if the key does not exist
	GetValue(ctx context.Context, key, fallback string) (string, error)

	// FindAll returns all settings ordered by key
	FindAll(ctx context.Context) ([]Setting, error)

	// Save creates or updates a setting
	Save(ctx context.Context, s *Setting) error

	// Upsert writes key to value, creating the setting if needed
	Upsert(ctx context.Context, key, value string) error

	// Delete removes a setting by key
	Delete(ctx context.Context, key string) error
}
