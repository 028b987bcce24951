package main

import (
	"net/http"

	"leavedesk/docs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"leavedesk/internal/auth"
	"leavedesk/internal/cache"
	"leavedesk/internal/config"
	"leavedesk/internal/db"
	"leavedesk/internal/handler"
	applog "leavedesk/internal/log"
	"leavedesk/internal/model"
	"leavedesk/internal/repository"
	"leavedesk/internal/router"
	"leavedesk/internal/service"
)

// @title Leave Management API
// @version 1.0
// @description Internal leave management service: employees submit leave requests, admins review them and export reports.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	logger := applog.New(cfg.Environment)

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		logger.Fatal().Err(err).Msg("database init")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Session{},
		&model.Leave{},
	); err != nil {
		logger.Fatal().Err(err).Msg("auto-migrate")
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	sessionRepo := repository.NewSessionRepository(gormDB)
	leaveRepo := repository.NewLeaveRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	notifier := service.NewNotifier(cacheClient, logger)
	authService := service.NewAuthService(userRepo, sessionRepo, jwtService, tokenStore)
	leaveService := service.NewLeaveService(leaveRepo, userRepo, cacheClient, notifier, logger)
	availabilityService := service.NewAvailabilityService(userRepo, leaveRepo, logger)
	reportService := service.NewReportService(leaveRepo, logger)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	leaveHandler := handler.NewLeaveHandler(leaveService)
	adminHandler := handler.NewAdminHandler(leaveService, authService)
	availabilityHandler := handler.NewAvailabilityHandler(availabilityService)
	reportHandler := handler.NewReportHandler(reportService)
	notificationHandler := handler.NewNotificationHandler(notifier, leaveService)

	// Register routes
	router.Register(
		e,
		cfg,
		jwtService,
		authHandler,
		leaveHandler,
		adminHandler,
		availabilityHandler,
		reportHandler,
		notificationHandler,
	)

	logger.Info().Str("port", cfg.ServerPort).Msg("starting server")

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		logger.Fatal().Err(err).Msg("server start")
	}
}
