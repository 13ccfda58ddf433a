package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/linktrove/linktrove/config"
	appmodel "github.com/linktrove/linktrove/internal/app/model"
	apprepository "github.com/linktrove/linktrove/internal/app/repository"
	appserver "github.com/linktrove/linktrove/internal/app/server"
	appservice "github.com/linktrove/linktrove/internal/app/service"
	"github.com/linktrove/linktrove/internal/http/util"
	"github.com/linktrove/linktrove/internal/infra/logger"
	infraNATS "github.com/linktrove/linktrove/internal/infra/nats"
	infraPostgres "github.com/linktrove/linktrove/internal/infra/postgres"
	infraPrometheus "github.com/linktrove/linktrove/internal/infra/prometheus"
	infraRedis "github.com/linktrove/linktrove/internal/infra/redis"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	isDev := os.Getenv("APP_ENV") != "production"
	log := logger.MustInit(logger.Config{
		Development: isDev,
		Level:       os.Getenv("LOG_LEVEL"),
	})
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config", zap.Error(err))
	}

	log.Info("Configuration loaded successfully",
		zap.String("postgres_user", cfg.Postgres.User),
		zap.String("postgres_host", cfg.Postgres.Host),
		zap.Int("postgres_port", cfg.Postgres.Port),
		zap.String("postgres_db", cfg.Postgres.Database),
		zap.String("redis_host", cfg.Redis.Host),
		zap.Int("redis_port", cfg.Redis.Port),
		zap.String("nats_host", cfg.NATS.Host),
		zap.Int("nats_port", cfg.NATS.Port),
		zap.String("upload_dir", cfg.Upload.Dir),
	)

	if cfg.Auth.Secret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	gormDB, err := infraPostgres.NewGorm(cfg.Postgres)
	if err != nil {
		log.Fatal("Failed to open GORM connection", zap.Error(err))
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatal("Failed to access underlying SQL DB", zap.Error(err))
	}
	defer sqlDB.Close()

	if err := infraPostgres.AutoMigrate(ctx, gormDB,
		&appmodel.User{},
		&appmodel.Linktree{},
		&appmodel.DetailLink{},
		&appmodel.Category{},
		&appmodel.ArticleCategory{},
		&appmodel.Article{},
		&appmodel.LinktreeView{},
		&appmodel.LinkClick{},
		&appmodel.ArticleView{},
		&appmodel.Setting{},
	); err != nil {
		log.Fatal("Failed to run database migrations", zap.Error(err))
	}

	pool, err := infraPostgres.NewPool(ctx, cfg.Postgres)
	if err != nil {
		log.Fatal("Failed to connect to Postgres", zap.Error(err))
	}
	defer pool.Close()
	log.Info("Connected to Postgres successfully")

	redisClient, err := infraRedis.NewClient(ctx, cfg.Redis)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	log.Info("Connected to Redis successfully")

	natsConn, js, err := infraNATS.Connect(cfg.NATS)
	if err != nil {
		log.Fatal("Failed to connect to NATS", zap.Error(err))
	}
	defer natsConn.Drain()
	log.Info("Connected to NATS successfully", zap.Bool("jetstream_ready", js != nil))

	if !isDev {
		promServer := infraPrometheus.NewServer(cfg.Prometheus)
		go func() {
			log.Info("Starting Prometheus metrics server",
				zap.Int("port", cfg.Prometheus.Port))
			if err := promServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("Prometheus metrics server stopped unexpectedly", zap.Error(err))
			}
		}()
		defer func() {
			if err := promServer.Close(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Warn("Failed to close Prometheus server", zap.Error(err))
			}
		}()
	} else {
		log.Info("Skipping Prometheus metrics server in development mode")
	}

	// Repositories
	userRepo := apprepository.NewUserRepository(gormDB)
	linktreeRepo := apprepository.NewLinktreeRepository(gormDB)
	linkRepo := apprepository.NewLinkRepository(gormDB)
	categoryRepo := apprepository.NewCategoryRepository(gormDB)
	articleCategoryRepo := apprepository.NewArticleCategoryRepository(gormDB)
	articleRepo := apprepository.NewArticleRepository(gormDB)
	eventRepo := apprepository.NewEventRepository(gormDB)
	settingRepo := apprepository.NewSettingRepository(gormDB)
	analyticsRepo := apprepository.NewAnalyticsRepository(pool)

	// Slug allocators, one per namespace, seeded from existing rows.
	treeSlugs, err := linktreeRepo.AllSlugs(ctx)
	if err != nil {
		log.Fatal("Failed to load linktree slugs", zap.Error(err))
	}
	articleSlugs, err := articleRepo.AllSlugs(ctx)
	if err != nil {
		log.Fatal("Failed to load article slugs", zap.Error(err))
	}
	articleCategorySlugs, err := articleCategoryRepo.AllSlugs(ctx)
	if err != nil {
		log.Fatal("Failed to load article category slugs", zap.Error(err))
	}

	pageCache := appservice.NewPageCache(redisClient)
	tokens := util.NewTokenManager(cfg.Auth.Secret, cfg.Auth.AccessTokenExpireHours, cfg.Auth.RefreshTokenExpireDays)
	publisher := appservice.NewEngagementPublisher(js)

	// Services
	authService := appservice.NewAuthService(userRepo, tokens)
	userService := appservice.NewUserService(userRepo)
	linktreeService := appservice.NewLinktreeService(linktreeRepo, linkRepo, appservice.NewSlugAllocator(treeSlugs), pageCache)
	linkService := appservice.NewLinkService(linkRepo, linktreeRepo, categoryRepo, pageCache)
	categoryService := appservice.NewCategoryService(categoryRepo, linkRepo)
	articleCategoryService := appservice.NewArticleCategoryService(articleCategoryRepo, appservice.NewSlugAllocator(articleCategorySlugs))
	articleService := appservice.NewArticleService(articleRepo, articleCategoryRepo, appservice.NewSlugAllocator(articleSlugs))
	settingsService := appservice.NewSettingsService(settingRepo)
	analyticsService := appservice.NewAnalyticsService(analyticsRepo)
	uploadService := appservice.NewUploadService(cfg.Upload, linktreeRepo, articleRepo)

	// Background workers
	consumer := appservice.NewEngagementConsumer(js, log, eventRepo)
	if err := consumer.Start(); err != nil {
		log.Fatal("Failed to start engagement consumer", zap.Error(err))
	}
	log.Info("Engagement consumer started")

	if days := cfg.Retention.EventRetentionDays; days > 0 {
		pruner := appservice.NewEventRetentionPruner(log, eventRepo, time.Duration(days)*24*time.Hour)
		pruner.Start()
		defer pruner.Stop()
		log.Info("Event retention pruner started", zap.Int("retention_days", days))
	}

	server := appserver.New(appserver.Dependencies{
		Logger:            log,
		Redis:             redisClient,
		Tokens:            tokens,
		Upload:            cfg.Upload,
		Users:             userRepo,
		Auth:              authService,
		UserService:       userService,
		Linktrees:         linktreeService,
		Links:             linkService,
		Categories:        categoryService,
		ArticleCategories: articleCategoryService,
		Articles:          articleService,
		Settings:          settingsService,
		Analytics:         analyticsService,
		Uploads:           uploadService,
		Engagement:        publisher,
	})

	if err := server.Listen(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil {
		log.Fatal("Fiber server exited", zap.Error(err))
	}
}
