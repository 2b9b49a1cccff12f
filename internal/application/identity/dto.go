package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/opsdesk/backend/internal/domain/identity"
)

// CreateUserRequest creates a staff account
type CreateUserRequest struct {
	Email          string `json:"email" binding:"required,email,max=200"`
	Name           string `json:"name" binding:"required,min=1,max=200"`
	Password       string `json:"password" binding:"required,min=8,max=72"`
	Role           string `json:"role" binding:"omitempty,oneof=AGENT ADMIN"`
	NotifyOnIntake bool   `json:"notify_on_intake"`
}

// UpdateUserRequest updates account details, nil fields are left unchanged
type UpdateUserRequest struct {
	Email          *string `json:"email" binding:"omitempty,email,max=200"`
	Name           *string `json:"name" binding:"omitempty,min=1,max=200"`
	Role           *string `json:"role" binding:"omitempty,oneof=AGENT ADMIN"`
	NotifyOnIntake *bool   `json:"notify_on_intake"`
}

// ChangePasswordRequest changes the caller's own password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8,max=72"`
}

// ResetPasswordRequest sets a new password without the current one
type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required,min=8,max=72"`
}

// UserListFilter filters the user list
type UserListFilter struct {
	Search         string `form:"search"`
	Status         string `form:"status" binding:"omitempty,oneof=active deactivated"`
	Role           string `form:"role" binding:"omitempty,oneof=AGENT ADMIN"`
	NotifyOnIntake *bool  `form:"notify_on_intake"`
	Page           int    `form:"page"`
	PageSize       int    `form:"page_size"`
	OrderBy        string `form:"order_by"`
	OrderDir       string `form:"order_dir"`
}

// UserResponse is the user representation returned to clients.
// The password hash never leaves the domain layer.
type UserResponse struct {
	ID             uuid.UUID  `json:"id"`
	Email          string     `json:"email"`
	Name           string     `json:"name"`
	Status         string     `json:"status"`
	Role           string     `json:"role"`
	NotifyOnIntake bool       `json:"notify_on_intake"`
	LastSeenAt     *time.Time `json:"last_seen_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	Version        int        `json:"version"`
}

// ToUserResponse converts a domain user to a response DTO
func ToUserResponse(user *identity.User) *UserResponse {
	return &UserResponse{
		ID:             user.ID,
		Email:          user.Email,
		Name:           user.Name,
		Status:         string(user.Status),
		Role:           string(user.Role),
		NotifyOnIntake: user.NotifyOnIntake,
		LastSeenAt:     user.LastSeenAt,
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
		Version:        user.Version,
	}
}

// ToUserResponses converts a list of domain users to response DTOs
func ToUserResponses(users []identity.User) []*UserResponse {
	responses := make([]*UserResponse, len(users))
	for i := range users {
		responses[i] = ToUserResponse(&users[i])
	}
	return responses
}
