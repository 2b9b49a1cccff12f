package setting

import (
	"regexp"
	"time"

	"github.com/opsdesk/backend/internal/domain/shared"
)

// keyRegex validates setting keys: must start with a lowercase letter,
// followed by lowercase letters, numbers, underscores, or dots
var keyRegex = regexp.MustCompile(`^[a-z][a-z0-9_.]*$`)

// Reserved keys used by the mailbox poller to coordinate runs
const (
	KeyMailPollRunning   = "mail_poll_running"
	KeyMailPollStartedAt = "mail_poll_started_at"
	KeyMailPollLastRunAt = "mail_poll_last_run_at"
)

// Well-known keys read by the poller and the notifier
const (
	KeyMailPollEnabled     = "mail_poll_enabled"
	KeyMailPollInterval    = "mail_poll_interval_seconds"
	KeyMailboxAddress      = "mail_poll_mailbox"
	KeyMailAttachmentTypes = "mail_attachment_types"
	KeyNotifyFromAddress   = "notify_from_address"
)

// Setting is a named configuration value stored in the database
// Values are plain strings; callers interpret them as needed
type Setting struct {
	shared.BaseAggregateRoot
	Key   string `gorm:"type:varchar(100);not null;uniqueIndex:idx_setting_key"`
	Value string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Setting) TableName() string {
	return "settings"
}

// NewSetting creates a new setting
func NewSetting(key, value string) (*Setting, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}

	return &Setting{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Key:               key,
		Value:             value,
	}, nil
}

// UpdateValue replaces the setting's value
func (s *Setting) UpdateValue(value string) {
	s.Value = value
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

// ValidateKey validates a setting key
func ValidateKey(key string) error {
	if key == "" {
		return shared.NewDomainError("INVALID_KEY", "Setting key cannot be empty")
	}
	if len(key) > 100 {
		return shared.NewDomainError("INVALID_KEY", "Setting key cannot exceed 100 characters")
	}
	if !keyRegex.MatchString(key) {
		return shared.NewDomainError("INVALID_KEY", "Setting key must start with a lowercase letter and contain only lowercase letters, numbers, underscores, and dots")
	}
	return nil
}
