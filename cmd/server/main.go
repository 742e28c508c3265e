package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/institute-admin/internal/config"
	"github.com/stemsi/institute-admin/internal/database"
	"github.com/stemsi/institute-admin/internal/export"
	"github.com/stemsi/institute-admin/internal/handler"
	"github.com/stemsi/institute-admin/internal/logger"
	"github.com/stemsi/institute-admin/internal/middleware"
	"github.com/stemsi/institute-admin/internal/repository"
	"github.com/stemsi/institute-admin/internal/router"
	"github.com/stemsi/institute-admin/internal/service"
	"github.com/stemsi/institute-admin/internal/validator"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Int32("max_db_conns", cfg.MaxDBConns).
		Msg("Starting institute admin server")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	provider := database.NewProvider(cfg, log)
	pool, err := provider.Pool(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer provider.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	studentRepo := repository.NewStudentRepository(pool, log)
	teacherRepo := repository.NewTeacherRepository(pool, log)
	courseRepo := repository.NewCourseRepository(pool, log)
	examRepo := repository.NewExamRepository(pool, log)
	paymentRepo := repository.NewPaymentRepository(pool, log)
	userRepo := repository.NewUserRepository(pool, log)
	dashboardRepo := repository.NewDashboardRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	authService, err := service.NewAuthService(cfg, userRepo, service.NewRedisSessionStore(rdb), log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize auth service")
	}
	userService := service.NewUserService(userRepo, authService, log)
	dashboardService := service.NewDashboardService(dashboardRepo, log)

	catalog := export.NewCatalog(export.Sources{
		Students: studentRepo,
		Teachers: teacherRepo,
		Courses:  courseRepo,
		Exams:    examRepo,
		Payments: paymentRepo,
		Users:    userRepo,
	})

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:      handler.NewAuthHandler(authService, userRepo),
		Students:  handler.NewStudentHandler(studentRepo, log),
		Teachers:  handler.NewTeacherHandler(teacherRepo, log),
		Courses:   handler.NewCourseHandler(courseRepo, log),
		Exams:     handler.NewExamHandler(examRepo, log),
		Payments:  handler.NewPaymentHandler(paymentRepo, log),
		Users:     handler.NewAdminUserHandler(userRepo, userService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		Report:    handler.NewReportHandler(catalog, log),
	}

	loginLimiter := middleware.NewRateLimiter(
		middleware.NewRedisCounter(rdb), cfg.LoginRateLimit, cfg.LoginRateWindow,
		logger.Component(log, "rate_limiter"),
	)

	health := func(c *gin.Context) error {
		p, err := provider.Pool(c.Request.Context())
		if err != nil {
			return err
		}
		return p.Ping(c.Request.Context())
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, loginLimiter, health, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
