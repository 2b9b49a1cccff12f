package setting

import (
	"context"
	"fmt"
	"sort"

	"github.com/opsdesk/backend/internal/domain/setting"
	"github.com/opsdesk/backend/internal/domain/shared"
)

// reservedKeys are owned by the mailbox poller and cannot be written
// through the API. The watchdog job clears stuck locks.
var reservedKeys = map[string]bool{
	setting.KeyMailPollRunning:   true,
	setting.KeyMailPollStartedAt: true,
	setting.KeyMailPollLastRunAt: true,
}

// SettingService manages runtime-tunable settings
type SettingService struct {
	settingRepo setting.Repository
}

// NewSettingService creates a new setting service
func NewSettingService(settingRepo setting.Repository) *SettingService {
	return &SettingService{settingRepo: settingRepo}
}

// ListSettings returns all settings ordered by key
func (s *SettingService) ListSettings(ctx context.Context) ([]*SettingResponse, error) {
	settings, err := s.settingRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return ToSettingResponses(settings), nil
}

// GetValue returns the value for a key, or the fallback if the key is unset
func (s *SettingService) GetValue(ctx context.Context, key, fallback string) (string, error) {
	return s.settingRepo.GetValue(ctx, key, fallback)
}

// UpsertSettings writes every entry in the request and returns the full
// settings list. All keys are validated before anything is written.
func (s *SettingService) UpsertSettings(ctx context.Context, req *UpsertSettingsRequest) ([]*SettingResponse, error) {
	keys := make([]string, 0, len(req.Settings))
	for key := range req.Settings {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if err := setting.ValidateKey(key); err != nil {
			return nil, err
		}
		if reservedKeys[key] {
			return nil, shared.NewDomainError("RESERVED_KEY", fmt.Sprintf("Setting %s is managed by the mail poller", key))
		}
	}

	for _, key := range keys {
		if err := s.settingRepo.Upsert(ctx, key, req.Settings[key]); err != nil {
			return nil, err
		}
	}

	return s.ListSettings(ctx)
}
