package service

import (
	"context"
	"fmt"

	"github.com/linktrove/linktrove/internal/app/model"
	"github.com/linktrove/linktrove/internal/app/repository"
	"github.com/linktrove/linktrove/internal/http/util"
)

// UpdateProfileInput captures the fields a user may change on their own account.
type UpdateProfileInput struct {
	Email       *string
	DisplayName *string
	Password    *string
}

// CreateUserInput captures the superadmin user-creation payload.
type CreateUserInput struct {
	Username    string
	Email       string
	Password    string
	DisplayName string
	Role        string
}

// UserService covers profile self-service plus admin user management.
type UserService interface {
	GetByID(ctx context.Context, id uint) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	UpdateProfile(ctx context.Context, userID uint, input UpdateProfileInput) (*model.User, error)
	List(ctx context.Context, callerRole string, limit, offset int) ([]model.User, int64, error)
	Create(ctx context.Context, callerRole string, input CreateUserInput) (*model.User, error)
	UpdateRole(ctx context.Context, callerRole string, targetID uint, role string) (*model.User, error)
}

type userService struct {
	users repository.UserRepository
}

// NewUserService returns a UserService backed by the user repository.
func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) GetByID(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID uint, input UpdateProfileInput) (*model.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}

	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.DisplayName != nil {
		user.DisplayName = *input.DisplayName
	}
	if input.Password != nil {
		hash, err := util.HashPassword(*input.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// List returns user accounts. Admins only ever see USER-role accounts;
// superadmins see everyone.
func (s *userService) List(ctx context.Context, callerRole string, limit, offset int) ([]model.User, int64, error) {
	roleFilter := model.RoleUser
	if callerRole == model.RoleSuperadmin {
		roleFilter = ""
	}

	users, total, err := s.users.List(ctx, roleFilter, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	return users, total, nil
}

// Create provisions an account with an arbitrary role. Superadmin only.
func (s *userService) Create(ctx context.Context, callerRole string, input CreateUserInput) (*model.User, error) {
	if callerRole != model.RoleSuperadmin {
		return nil, ErrForbidden
	}

	hash, err := util.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role := input.Role
	if role == "" {
		role = model.RoleUser
	}

	user := &model.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		DisplayName:  input.DisplayName,
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// UpdateRole changes a target account's role. Only superadmins may hand out
// elevated roles or touch accounts above USER; an admin's reach is limited
// to USER on both ends of the change.
func (s *userService) UpdateRole(ctx context.Context, callerRole string, targetID uint, role string) (*model.User, error) {
	if callerRole != model.RoleSuperadmin && role != model.RoleUser {
		return nil, ErrForbidden
	}

	target, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}

	if callerRole != model.RoleSuperadmin && target.Role != model.RoleUser {
		return nil, ErrForbidden
	}

	target.Role = role
	if err := s.users.Update(ctx, target); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return target, nil
}
