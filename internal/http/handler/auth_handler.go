package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/linktrove/linktrove/internal/app/service"
	"go.uber.org/zap"
)

// AuthDeps groups dependencies required by the auth handlers.
type AuthDeps struct {
	Logger   *zap.Logger
	Auth     service.AuthService
	Settings service.SettingsService
}

// AuthHandler implements registration, login and token refresh.
type AuthHandler struct {
	logger   *zap.Logger
	auth     service.AuthService
	settings service.SettingsService
}

// NewAuthHandler creates an auth handler with the provided dependencies.
func NewAuthHandler(deps AuthDeps) *AuthHandler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{
		logger:   logger,
		auth:     deps.Auth,
		settings: deps.Settings,
	}
}

// Register wires auth routes onto the provided router.
func (h *AuthHandler) Register(router fiber.Router) {
	auth := router.Group("/api/auth")
	{
		auth.Post("/register", h.RegisterAccount)
		auth.Post("/login", h.Login)
		auth.Post("/refresh", h.Refresh)
	}
}

// RegisterRequest represents the self-service signup payload.
type RegisterRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name,omitempty"`
}

// RegisterAccount handles POST /api/auth/register
func (h *AuthHandler) RegisterAccount(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.Username == "" || req.Email == "" {
		return badRequest(c, "username and email are required")
	}
	if len(req.Password) < 8 {
		return badRequest(c, "password must be at least 8 characters")
	}

	ctx := c.UserContext()

	// Signup can be switched off site-wide.
	if setting, err := h.settings.Get(ctx, "registration_open"); err == nil {
		if open, err := strconv.ParseBool(setting.Value); err == nil && !open {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "registration is closed",
			})
		}
	}

	user, err := h.auth.Register(ctx, service.RegisterInput{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		return fail(c, h.logger, err)
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

// LoginRequest represents the login payload.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.Username == "" || req.Password == "" {
		return badRequest(c, "username and password are required")
	}

	user, tokens, err := h.auth.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return fail(c, h.logger, err)
	}

	return c.JSON(fiber.Map{
		"user":          user,
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
	})
}

// RefreshRequest represents the token refresh payload.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Refresh handles POST /api/auth/refresh
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.RefreshToken == "" {
		return badRequest(c, "refresh_token is required")
	}

	access, err := h.auth.Refresh(c.UserContext(), req.RefreshToken)
	if err != nil {
		return fail(c, h.logger, err)
	}

	return c.JSON(fiber.Map{"access_token": access})
}
