package mailroom

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/opsdesk/backend/internal/domain/shared"
)

// PollRunRepository defines the poll run repository interface
type PollRunRepository interface {
	// FindByID finds a poll run by ID with its entries
	FindByID(ctx context.Context, id uuid.UUID) (*PollRun, error)

	// FindRecent finds recent runs, newest first, without entries
	FindRecent(ctx context.Context, filter shared.Filter) ([]PollRun, error)

	// FindLatest returns the most recently started run, or nil when none exist
	FindLatest(ctx context.Context) (*PollRun, error)

	// Save saves a poll run
	Save(ctx context.Context, run *PollRun) error

	// SaveEntry saves a single poll entry
	SaveEntry(ctx context.Context, entry *PollEntry) error

	// DeleteOlderThan purges runs started before the cutoff, entries included
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)

	// Count returns the total number of poll runs
	Count(ctx context.Context) (int64, error)
}

// FilterRepository defines the repository for mail filtering rules
type FilterRepository interface {
	// FindAllowedDomains returns every allowed domain
	FindAllowedDomains(ctx context.Context) ([]AllowedDomain, error)

	// FindActiveAllowedDomains returns the active allow list
	FindActiveAllowedDomains(ctx context.Context) ([]AllowedDomain, error)

	// FindAllowedDomainByID finds one allowed domain
	FindAllowedDomainByID(ctx context.Context, id uuid.UUID) (*AllowedDomain, error)

	// SaveAllowedDomain saves an allowed domain
	SaveAllowedDomain(ctx context.Context, domain *AllowedDomain) error

	// DeleteAllowedDomain deletes an allowed domain
	DeleteAllowedDomain(ctx context.Context, id uuid.UUID) error

	// ExistsAllowedDomain checks whether a domain is already listed
	ExistsAllowedDomain(ctx context.Context, domain string) (bool, error)

	// FindDenyFilters returns every deny filter
	FindDenyFilters(ctx context.Context) ([]DenyFilter, error)

	// FindActiveDenyFilters returns the active deny filters
	FindActiveDenyFilters(ctx context.Context) ([]DenyFilter, error)

	// FindDenyFilterByID finds one deny filter
	FindDenyFilterByID(ctx context.Context, id uuid.UUID) (*DenyFilter, error)

	// SaveDenyFilter saves a deny filter
	SaveDenyFilter(ctx context.Context, filter *DenyFilter) error

	// DeleteDenyFilter deletes a deny filter
	DeleteDenyFilter(ctx context.Context, id uuid.UUID) error
}
