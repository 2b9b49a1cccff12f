package mailroom

import (
	"strings"
	"time"

	"github.com/opsdesk/backend/internal/domain/shared"
)

// AllowedDomain whitelists a sender domain for ticket creation
// When any active allowed domains exist, mail from other domains is
// filtered out instead of opening tickets; an empty active set allows
// everyone
type AllowedDomain struct {
	shared.BaseAggregateRoot
	Domain string `gorm:"type:varchar(255);not null;uniqueIndex"`
	Active bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (AllowedDomain) TableName() string {
	return "mail_allowed_domains"
}

// NewAllowedDomain creates an active allowed domain entry
func NewAllowedDomain(domain string) (*AllowedDomain, error) {
	domain = normalizeDomain(domain)
	if err := validateDomain(domain); err != nil {
		return nil, err
	}

	return &AllowedDomain{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Domain:            domain,
		Active:            true,
	}, nil
}

// Matches reports whether the sender address belongs to this domain
func (d *AllowedDomain) Matches(sender string) bool {
	return senderDomain(sender) == d.Domain
}

// Activate turns the entry back on
func (d *AllowedDomain) Activate() {
	d.Active = true
	d.UpdatedAt = time.Now()
	d.IncrementVersion()
}

// Deactivate turns the entry off without deleting it
func (d *AllowedDomain) Deactivate() {
	d.Active = false
	d.UpdatedAt = time.Now()
	d.IncrementVersion()
}

// DenyFilter blocks matching mail from opening tickets
// The pattern is matched case-insensitively as a substring of the sender
// address and of the subject line, so "spam" blocks spam@example.com and
// any message titled "hot spam deals" alike
type DenyFilter struct {
	shared.BaseAggregateRoot
	Pattern string `gorm:"type:varchar(255);not null"`
	Note    string `gorm:"type:varchar(500)"`
	Active  bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (DenyFilter) TableName() string {
	return "mail_deny_filters"
}

// NewDenyFilter creates an active deny filter
func NewDenyFilter(pattern, note string) (*DenyFilter, error) {
	pattern = strings.ToLower(strings.TrimSpace(pattern))
	if pattern == "" {
		return nil, shared.NewDomainError("INVALID_PATTERN", "Filter pattern cannot be empty")
	}
	if len(pattern) > 255 {
		return nil, shared.NewDomainError("INVALID_PATTERN", "Filter pattern cannot exceed 255 characters")
	}

	return &DenyFilter{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Pattern:           pattern,
		Note:              note,
		Active:            true,
	}, nil
}

// Update replaces the filter's pattern and note
func (f *DenyFilter) Update(pattern, note string) error {
	pattern = strings.ToLower(strings.TrimSpace(pattern))
	if pattern == "" {
		return shared.NewDomainError("INVALID_PATTERN", "Filter pattern cannot be empty")
	}
	if len(pattern) > 255 {
		return shared.NewDomainError("INVALID_PATTERN", "Filter pattern cannot exceed 255 characters")
	}

	f.Pattern = pattern
	f.Note = note
	f.UpdatedAt = time.Now()
	f.IncrementVersion()

	return nil
}

// Matches reports whether the sender address or subject contains the pattern
func (f *DenyFilter) Matches(sender, subject string) bool {
	if strings.Contains(strings.ToLower(strings.TrimSpace(sender)), f.Pattern) {
		return true
	}
	return strings.Contains(strings.ToLower(subject), f.Pattern)
}

// Activate turns the filter back on
func (f *DenyFilter) Activate() {
	f.Active = true
	f.UpdatedAt = time.Now()
	f.IncrementVersion()
}

// Deactivate turns the filter off without deleting it
func (f *DenyFilter) Deactivate() {
	f.Active = false
	f.UpdatedAt = time.Now()
	f.IncrementVersion()
}

// senderDomain extracts the lowercased domain part of an address
func senderDomain(sender string) string {
	sender = strings.ToLower(strings.TrimSpace(sender))
	at := strings.LastIndex(sender, "@")
	if at < 0 || at == len(sender)-1 {
		return ""
	}
	return sender[at+1:]
}

func normalizeDomain(domain string) string {
	domain = strings.ToLower(strings.TrimSpace(domain))
	domain = strings.TrimPrefix(domain, "@")
	return domain
}

func validateDomain(domain string) error {
	if domain == "" {
		return shared.NewDomainError("INVALID_DOMAIN", "Domain cannot be empty")
	}
	if len(domain) > 255 {
		return shared.NewDomainError("INVALID_DOMAIN", "Domain cannot exceed 255 characters")
	}
	if strings.ContainsAny(domain, " @") || !strings.Contains(domain, ".") {
		return shared.NewDomainError("INVALID_DOMAIN", "Domain must look like example.com")
	}
	return nil
}
