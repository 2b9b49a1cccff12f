package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/opsdesk/backend/internal/domain/identity"
	"github.com/opsdesk/backend/internal/domain/shared"
)

// UserService manages staff accounts
type UserService struct {
	userRepo       identity.UserRepository
	eventPublisher shared.EventPublisher
}

// NewUserService creates a new user service
func NewUserService(userRepo identity.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// SetEventPublisher sets the event publisher for domain events
func (s *UserService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// CreateUser creates a new staff account
func (s *UserService) CreateUser(ctx context.Context, req *CreateUserRequest) (*UserResponse, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A user with this email already exists")
	}

	user, err := identity.NewUser(req.Email, req.Name, req.Password)
	if err != nil {
		return nil, err
	}

	if req.Role != "" {
		if err := user.SetRole(identity.UserRole(req.Role)); err != nil {
			return nil, err
		}
	}
	user.SetNotifyOnIntake(req.NotifyOnIntake)

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	user.ClearDomainEvents()

	return ToUserResponse(user), nil
}

// GetUser retrieves a user by ID
func (s *UserService) GetUser(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// GetUserByEmail retrieves a user by login email
func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*UserResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// ListUsers lists users with filters and pagination
func (s *UserService) ListUsers(ctx context.Context, filter *UserListFilter) ([]*UserResponse, int64, error) {
	domainFilter := buildUserFilter(filter)

	users, err := s.userRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.userRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToUserResponses(users), total, nil
}

// ListActiveUsers lists users who can be assigned work, for assignee pickers
func (s *UserService) ListActiveUsers(ctx context.Context) ([]*UserResponse, error) {
	users, err := s.userRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	return ToUserResponses(users), nil
}

// UpdateUser updates account details
func (s *UserService) UpdateUser(ctx context.Context, userID uuid.UUID, req *UpdateUserRequest) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Email != nil && *req.Email != user.Email {
		exists, err := s.userRepo.ExistsByEmail(ctx, *req.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "A user with this email already exists")
		}
		if err := user.SetEmail(*req.Email); err != nil {
			return nil, err
		}
	}

	if req.Name != nil {
		if err := user.SetName(*req.Name); err != nil {
			return nil, err
		}
	}

	if req.Role != nil {
		if err := user.SetRole(identity.UserRole(*req.Role)); err != nil {
			return nil, err
		}
	}

	if req.NotifyOnIntake != nil {
		user.SetNotifyOnIntake(*req.NotifyOnIntake)
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	user.ClearDomainEvents()

	return ToUserResponse(user), nil
}

// ChangePassword changes a user's password after verifying the current one
func (s *UserService) ChangePassword(ctx context.Context, userID uuid.UUID, req *ChangePasswordRequest) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := user.ChangePassword(req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return err
	}

	user.ClearDomainEvents()

	return nil
}

// ResetPassword sets a new password without checking the current one
func (s *UserService) ResetPassword(ctx context.Context, userID uuid.UUID, req *ResetPasswordRequest) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := user.SetPassword(req.NewPassword); err != nil {
		return err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return err
	}

	user.ClearDomainEvents()

	return nil
}

// VerifyCredentials checks a login email and password pair.
// It returns the user on success so callers can record activity.
func (s *UserService) VerifyCredentials(ctx context.Context, email, password string) (*UserResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
		}
		return nil, err
	}

	if !user.IsActive() {
		return nil, shared.NewDomainError("USER_DEACTIVATED", "This account has been deactivated")
	}

	if !user.VerifyPassword(password) {
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	return ToUserResponse(user), nil
}

// RecordSeen stamps the user's last activity time
func (s *UserService) RecordSeen(ctx context.Context, userID uuid.UUID) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	user.RecordSeen(time.Now())

	return s.userRepo.Save(ctx, user)
}

// ActivateUser reactivates a deactivated account
func (s *UserService) ActivateUser(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := user.Activate(); err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	user.ClearDomainEvents()

	return ToUserResponse(user), nil
}

// DeactivateUser deactivates an account so it can no longer sign in
func (s *UserService) DeactivateUser(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := user.Deactivate(); err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	user.ClearDomainEvents()

	return ToUserResponse(user), nil
}

// DeleteUser deletes a user account
func (s *UserService) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return err
	}

	if s.eventPublisher != nil {
		event := identity.NewUserDeletedEvent(user)
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			// Log error but don't fail the operation
		}
	}

	return nil
}

func buildUserFilter(filter *UserListFilter) shared.Filter {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	orderBy := filter.OrderBy
	if orderBy == "" {
		orderBy = "name"
	}
	orderDir := filter.OrderDir
	if orderDir == "" {
		orderDir = "asc"
	}

	domainFilter := shared.Filter{
		Page:     page,
		PageSize: pageSize,
		OrderBy:  orderBy,
		OrderDir: orderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}

	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.Role != "" {
		domainFilter.Filters["role"] = filter.Role
	}
	if filter.NotifyOnIntake != nil {
		domainFilter.Filters["notify_on_intake"] = *filter.NotifyOnIntake
	}

	return domainFilter
}
