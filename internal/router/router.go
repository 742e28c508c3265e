package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/stemsi/institute-admin/internal/config"
	"github.com/stemsi/institute-admin/internal/handler"
	"github.com/stemsi/institute-admin/internal/middleware"
	"github.com/stemsi/institute-admin/internal/model"
	"github.com/stemsi/institute-admin/internal/response"
)

// Registrar mounts one resource's routes on a group.
type Registrar interface {
	Register(rg *gin.RouterGroup)
}

// AuthGuard validates tokens and their sessions.
type AuthGuard interface {
	middleware.TokenValidator
	middleware.SessionValidator
}

// HealthCheck reports whether the database answers.
type HealthCheck func(c *gin.Context) error

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth      *handler.AuthHandler
	Students  Registrar
	Teachers  Registrar
	Courses   Registrar
	Exams     Registrar
	Payments  Registrar
	Users     Registrar
	Dashboard *handler.DashboardHandler
	Report    *handler.ReportHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	guard AuthGuard,
	handlers *Handlers,
	loginLimiter *middleware.RateLimiter,
	health HealthCheck,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "Content-Disposition"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestID())

	router.Use(middleware.Brotli(cfg.CompressMinBytes))

	router.GET("/health", func(c *gin.Context) {
		if health != nil {
			if err := health(c); err != nil {
				response.FailFromError(c, err)
				return
			}
		}
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	requireJWT := middleware.RequireJWT(guard)
	activeSession := middleware.CheckActiveSession(guard)

	// ─── 1. Auth Group ─────────────────────────────────────────────────
	auth := router.Group("/api/v1/auth")
	{
		if loginLimiter != nil {
			auth.POST("/login", loginLimiter.Middleware(), handlers.Auth.Login)
		} else {
			auth.POST("/login", handlers.Auth.Login)
		}
		auth.POST("/logout", requireJWT, activeSession, handlers.Auth.Logout)
		auth.GET("/me", requireJWT, activeSession, handlers.Auth.Me)
	}

	// ─── 2. Admin Group (JWT + active session) ─────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(requireJWT, activeSession, middleware.NoStore())
	{
		anyRole := middleware.RequireRole(model.RoleAdmin, model.RoleTeacher, model.RoleAccountant)
		academic := middleware.RequireRole(model.RoleAdmin, model.RoleTeacher)
		finance := middleware.RequireRole(model.RoleAdmin, model.RoleAccountant)
		adminOnly := middleware.RequireRole(model.RoleAdmin)

		adminAPI.GET("/dashboard", anyRole, handlers.Dashboard.GetDashboardData)
		adminAPI.GET("/reports/:entity", finance, handlers.Report.Export)

		handlers.Students.Register(adminAPI.Group("/students", academic))
		handlers.Teachers.Register(adminAPI.Group("/teachers", academic))
		handlers.Courses.Register(adminAPI.Group("/courses", academic))
		handlers.Exams.Register(adminAPI.Group("/exams", academic))
		handlers.Payments.Register(adminAPI.Group("/payments", finance))
		handlers.Users.Register(adminAPI.Group("/users", adminOnly))
	}

	return router
}
