package server

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/linktrove/linktrove/config"
	"github.com/linktrove/linktrove/internal/app/repository"
	"github.com/linktrove/linktrove/internal/app/service"
	inthttp "github.com/linktrove/linktrove/internal/http/handler"
	"github.com/linktrove/linktrove/internal/http/middleware"
	"github.com/linktrove/linktrove/internal/http/util"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Dependencies bundles everything the HTTP server needs wired in.
type Dependencies struct {
	Logger *zap.Logger
	Redis  *redis.Client
	Tokens *util.TokenManager
	Upload config.UploadConfig

	Users repository.UserRepository

	Auth              service.AuthService
	UserService       service.UserService
	Linktrees         service.LinktreeService
	Links             service.LinkService
	Categories        service.CategoryService
	ArticleCategories service.ArticleCategoryService
	Articles          service.ArticleService
	Settings          service.SettingsService
	Analytics         service.AnalyticsService
	Uploads           service.UploadService
	Engagement        *service.EngagementPublisher
}

// Server wraps the Fiber application and its dependencies.
type Server struct {
	app  *fiber.App
	deps Dependencies
}

// New creates a new HTTP server instance with default routes.
func New(deps Dependencies) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit: int(deps.Upload.MaxSizeBytes) + 1024*1024,
	})

	s := &Server{
		app:  app,
		deps: deps,
	}

	s.registerMiddleware()
	s.registerRoutes()
	return s
}

// Listen starts the Fiber server on the given address.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown gracefully stops the Fiber server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) registerMiddleware() {
	s.app.Use(middleware.Recovery(s.deps.Logger))
	s.app.Use(middleware.RequestID())
	s.app.Use(middleware.CORS())
	s.app.Use(middleware.Logger(s.deps.Logger))
	s.app.Use(middleware.RateLimit(s.deps.Redis, middleware.DefaultRateLimitConfig(), s.deps.Logger))
}

func (s *Server) registerRoutes() {
	auth := middleware.Authenticate(s.deps.Tokens, s.deps.Users)

	// Uploaded images are served straight off disk.
	s.app.Static(s.deps.Upload.PublicPath, s.deps.Upload.Dir)

	authHandler := inthttp.NewAuthHandler(inthttp.AuthDeps{
		Logger:   s.deps.Logger,
		Auth:     s.deps.Auth,
		Settings: s.deps.Settings,
	})
	authHandler.Register(s.app)

	publicHandler := inthttp.NewPublicHandler(inthttp.PublicDeps{
		Logger:            s.deps.Logger,
		Linktrees:         s.deps.Linktrees,
		Links:             s.deps.Links,
		Articles:          s.deps.Articles,
		ArticleCategories: s.deps.ArticleCategories,
		Engagement:        s.deps.Engagement,
	})
	publicHandler.Register(s.app)

	profileHandler := inthttp.NewProfileHandler(inthttp.ProfileDeps{
		Logger:    s.deps.Logger,
		Users:     s.deps.UserService,
		Linktrees: s.deps.Linktrees,
		Links:     s.deps.Links,
		Auth:      auth,
	})
	profileHandler.Register(s.app)

	adminHandler := inthttp.NewAdminHandler(inthttp.AdminDeps{
		Logger:            s.deps.Logger,
		Categories:        s.deps.Categories,
		ArticleCategories: s.deps.ArticleCategories,
		Articles:          s.deps.Articles,
		Users:             s.deps.UserService,
		Settings:          s.deps.Settings,
		Analytics:         s.deps.Analytics,
		Uploads:           s.deps.Uploads,
		Auth:              auth,
	})
	adminHandler.Register(s.app)

	uploadHandler := inthttp.NewUploadHandler(inthttp.UploadDeps{
		Logger:  s.deps.Logger,
		Uploads: s.deps.Uploads,
		Auth:    auth,
	})
	uploadHandler.Register(s.app)
}
