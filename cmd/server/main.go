package main

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"votehub/docs"
	"votehub/internal/auth"
	"votehub/internal/cache"
	"votehub/internal/config"
	"votehub/internal/db"
	"votehub/internal/handler"
	"votehub/internal/model"
	"votehub/internal/repository"
	"votehub/internal/router"
	"votehub/internal/service"
	"votehub/internal/storage"
)

// @title VoteHub API
// @version 1.0
// @description Internal voting service with scheduled polls, one vote per user per poll, and media attachments.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		logrus.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Poll{},
		&model.PollOption{},
		&model.PollMedia{},
		&model.OptionMedia{},
		&model.Vote{},
		&model.NotificationPreference{},
		&model.AuditLog{},
	); err != nil {
		logrus.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	pollRepo := repository.NewPollRepository(gormDB)
	voteRepo := repository.NewVoteRepository(gormDB)
	mediaRepo := repository.NewMediaRepository(gormDB)
	notificationRepo := repository.NewNotificationRepository(gormDB)
	auditRepo := repository.NewAuditRepository(gormDB)

	// Elevated credential used as a one-shot retry path for rejected writes.
	var privilegedVoteRepo repository.VoteRepository
	if cfg.MySQLPrivilegedDSN != "" {
		privilegedDB, err := db.NewMySQL(cfg.MySQLPrivilegedDSN)
		if err != nil {
			logrus.Fatalf("privileged database init: %v", err)
		}
		privilegedVoteRepo = repository.NewVoteRepository(privilegedDB)
	}

	// Object storage for option images and poll attachments.
	var objectStore storage.ObjectStore
	if cfg.GoogleCredentialsB64 != "" {
		credentials, err := cfg.DecodeGoogleCredentials()
		if err != nil {
			logrus.Fatalf("decode storage credentials: %v", err)
		}
		gcsStore, err := storage.NewGCSStore(context.Background(), cfg.MediaBucket, credentials)
		if err != nil {
			logrus.Fatalf("storage init: %v", err)
		}
		objectStore = gcsStore
	} else {
		logrus.Warn("GOOGLE_CREDENTIALS_B64 not set, media uploads disabled")
	}

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	auditService := service.NewAuditService(auditRepo)
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	userService := service.NewUserService(userRepo, auditService)
	pollService := service.NewPollService(pollRepo, voteRepo, mediaRepo, cacheClient, auditService)
	voteService := service.NewVoteService(pollRepo, voteRepo, privilegedVoteRepo, cacheClient, auditService)
	mediaService := service.NewMediaService(pollRepo, mediaRepo, objectStore, cacheClient)
	notificationService := service.NewNotificationService(notificationRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	pollHandler := handler.NewPollHandler(pollService)
	voteHandler := handler.NewVoteHandler(voteService)
	mediaHandler := handler.NewMediaHandler(mediaService)
	userHandler := handler.NewUserHandler(userService)
	notificationHandler := handler.NewNotificationHandler(notificationService)

	// Register routes
	router.Register(
		e,
		cfg,
		authHandler,
		pollHandler,
		voteHandler,
		mediaHandler,
		userHandler,
		notificationHandler,
	)

	// Centralized lifecycle sweep; read paths still run the lazy per-poll check.
	sweeper := service.NewStatusSweeper(pollRepo, cacheClient, cfg.SweepInterval)
	go sweeper.Run(context.Background())

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		logrus.Fatalf("server start: %v", err)
	}
}
