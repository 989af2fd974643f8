package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/Remy-Arinze/agora-backend-sub002/api/swagger"
	"github.com/Remy-Arinze/agora-backend-sub002/internal/handler"
	"github.com/Remy-Arinze/agora-backend-sub002/internal/middleware"
	"github.com/Remy-Arinze/agora-backend-sub002/internal/repository"
	"github.com/Remy-Arinze/agora-backend-sub002/internal/service"
	"github.com/Remy-Arinze/agora-backend-sub002/pkg/cache"
	"github.com/Remy-Arinze/agora-backend-sub002/pkg/clock"
	"github.com/Remy-Arinze/agora-backend-sub002/pkg/config"
	"github.com/Remy-Arinze/agora-backend-sub002/pkg/database"
	"github.com/Remy-Arinze/agora-backend-sub002/pkg/logger"
	"github.com/Remy-Arinze/agora-backend-sub002/pkg/mailer"
	corsmiddleware "github.com/Remy-Arinze/agora-backend-sub002/pkg/middleware/cors"
	reqidmiddleware "github.com/Remy-Arinze/agora-backend-sub002/pkg/middleware/requestid"
)

// @title Agora Academic Calendar API
// @version 1.0.0
// @description Session and term lifecycle, student migration and timetable administration
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, calendar cache disabled", "error", err)
		redisClient = nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	validate := validator.New()

	schoolRepo := repository.NewSchoolRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	termRepo := repository.NewTermRepository(db)
	levelRepo := repository.NewClassLevelRepository(db)
	armRepo := repository.NewClassArmRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	timetableRepo := repository.NewTimetableRepository(db)
	userRepo := repository.NewUserRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	var mail mailer.Mailer
	if cfg.Notifications.Enabled && cfg.Notifications.SendgridAPIKey != "" {
		mail = mailer.NewSendgrid(cfg.Notifications.SendgridAPIKey, cfg.Notifications.FromName, cfg.Notifications.FromEmail)
	} else {
		mail = mailer.NewConsole(logr)
	}

	metricsSvc := service.NewMetricsService()
	progressionSvc := service.NewProgressionService(levelRepo, logr)
	migrationSvc := service.NewMigrationService(enrollmentRepo, termRepo, armRepo, progressionSvc, metricsSvc, logr)
	timetableSvc := service.NewTimetableService(timetableRepo, logr)
	notificationSvc := service.NewNotificationService(memberRepo, mail, cfg.Notifications, logr)
	notificationSvc.Start(ctx)
	defer notificationSvc.Stop()

	calendarSvc := service.NewCalendarService(
		sessionRepo, termRepo,
		migrationSvc, timetableSvc, notificationSvc,
		cacheRepo, metricsSvc,
		clock.System{}, validate, logr,
		cfg.Calendar.CacheTTL,
	)
	authSvc := service.NewAuthService(userRepo, cfg.JWT, validate, logr)

	authHandler := handler.NewAuthHandler(authSvc)
	calendarHandler := handler.NewCalendarHandler(calendarSvc)
	migrationHandler := handler.NewMigrationHandler(calendarSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(middleware.JWT(authSvc))
	protected.GET("/auth/me", authHandler.Me)

	schools := protected.Group("/schools/:school")
	schools.Use(middleware.School(schoolRepo))
	{
		schools.POST("/sessions", calendarHandler.InitializeSession)
		schools.GET("/sessions", calendarHandler.ListSessions)
		schools.GET("/sessions/active", calendarHandler.GetActiveSession)
		schools.POST("/sessions/end", calendarHandler.EndSession)
		schools.POST("/sessions/:sessionId/terms", calendarHandler.CreateTerm)

		schools.GET("/terms/active", calendarHandler.GetActiveTerm)
		schools.POST("/terms/start", calendarHandler.StartTerm)
		schools.POST("/terms/end", calendarHandler.EndTerm)
		schools.POST("/terms/:termId/reactivate", calendarHandler.ReactivateTerm)

		schools.POST("/migrations", migrationHandler.MigrateStudents)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}
