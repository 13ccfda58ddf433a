package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/linktrove/linktrove/internal/app/model"
	"github.com/linktrove/linktrove/internal/app/repository"
	"github.com/linktrove/linktrove/internal/http/util"
)

// TokenPair bundles the two tokens returned on login.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// RegisterInput captures data required to create a self-service account.
type RegisterInput struct {
	Username    string
	Email       string
	Password    string
	DisplayName string
}

// AuthService handles registration, login and token refresh.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*model.User, error)
	Login(ctx context.Context, username, password string) (*model.User, *TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
}

type authService struct {
	users  repository.UserRepository
	tokens *util.TokenManager
}

// NewAuthService returns an AuthService backed by the user repository.
func NewAuthService(users repository.UserRepository, tokens *util.TokenManager) AuthService {
	return &authService{users: users, tokens: tokens}
}

// Register creates a USER-role account. Role escalation goes through the
// superadmin user-management endpoint, never through self-service signup.
func (s *authService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	hash, err := util.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		DisplayName:  input.DisplayName,
		Role:         model.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (*model.User, *TokenPair, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("load user: %w", err)
	}

	if !util.CheckPassword(user.PasswordHash, password) {
		return nil, nil, ErrInvalidCredentials
	}

	access, err := s.tokens.IssueAccess(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, nil, fmt.Errorf("issue access token: %w", err)
	}
	refresh, err := s.tokens.IssueRefresh(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, nil, fmt.Errorf("issue refresh token: %w", err)
	}

	return user, &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh exchanges a valid refresh token for a fresh access token. The user
// is reloaded so a deleted account or changed role takes effect immediately.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokens.Verify(refreshToken)
	if err != nil {
		return "", ErrInvalidCredentials
	}
	if claims.TokenType != util.TokenTypeRefresh {
		// An access token must not extend a session past the refresh TTL.
		return "", ErrInvalidCredentials
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("load user: %w", err)
	}

	access, err := s.tokens.IssueAccess(user.ID, user.Username, user.Role)
	if err != nil {
		return "", fmt.Errorf("issue access token: %w", err)
	}
	return access, nil
}
