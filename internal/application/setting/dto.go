package setting

import (
	"time"

	"github.com/opsdesk/backend/internal/domain/setting"
)

// UpsertSettingsRequest represents a bulk settings write.
// Each entry creates the key or replaces its value.
type UpsertSettingsRequest struct {
	Settings map[string]string `json:"settings" binding:"required"`
}

// SettingResponse represents a setting in API responses
type SettingResponse struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToSettingResponse converts a domain setting to a response DTO
func ToSettingResponse(s *setting.Setting) *SettingResponse {
	return &SettingResponse{
		Key:       s.Key,
		Value:     s.Value,
		UpdatedAt: s.UpdatedAt,
	}
}

// ToSettingResponses converts a slice of domain settings to response DTOs
func ToSettingResponses(settings []setting.Setting) []*SettingResponse {
	responses := make([]*SettingResponse, len(settings))
	for i := range settings {
		responses[i] = ToSettingResponse(&settings[i])
	}
	return responses
}
