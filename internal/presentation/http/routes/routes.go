package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/trimtally-api/internal/config"
	domainRepo "github.com/sangkips/trimtally-api/internal/domain/repository"
	"github.com/sangkips/trimtally-api/internal/presentation/http/handler"
	"github.com/sangkips/trimtally-api/internal/presentation/http/middleware"
	"github.com/sangkips/trimtally-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth     *handler.AuthHandler
	Tenant   *handler.TenantHandler
	Income   *handler.IncomeHandler
	Settings *handler.SettingsHandler
	Report   *handler.ReportHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager *utils.JWTManager
	Cfg        *config.Config
	TenantRepo domainRepo.TenantRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication + shop context required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		protected.Use(middleware.TenantMiddleware(deps.TenantRepo))

		// Per-shop rate limiter
		rateLimiter := middleware.NewTenantRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.RefreshToken)
		auth.POST("/forgot-password", h.Auth.ForgotPassword)
		auth.POST("/reset-password", h.Auth.ResetPassword)
		// Google OAuth routes
		auth.GET("/google", h.Auth.GoogleAuth)
		auth.GET("/google/callback", h.Auth.GoogleCallback)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers) {
	// Auth/Profile routes
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/profile", h.Auth.GetProfile)
	protected.PUT("/profile", h.Auth.UpdateProfile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	// Dashboard
	protected.GET("/dashboard",
		middleware.RequirePermission("view-dashboard"),
		middleware.RequireTenant(),
		h.Report.Dashboard)

	// Shop management
	registerShopRoutes(protected, h)

	// Income settings
	registerSettingsRoutes(protected, h)

	// Income ledger
	registerIncomeRoutes(protected, h)

	// Reports
	registerReportRoutes(protected, h)
}

func registerShopRoutes(protected *gin.RouterGroup, h *Handlers) {
	shop := protected.Group("/shop")
	shop.Use(middleware.RequireTenant())
	{
		shop.GET("", h.Tenant.GetCurrent)
		shop.PUT("", middleware.RequireRole("owner", "super-admin"), h.Tenant.Update)

		members := shop.Group("/members")
		members.Use(middleware.RequirePermission("manage-members"))
		{
			members.GET("", h.Tenant.ListMembers)
			members.POST("", h.Tenant.InviteMember)
			members.DELETE("/:user_id", h.Tenant.RemoveMember)
		}
	}
}

func registerSettingsRoutes(protected *gin.RouterGroup, h *Handlers) {
	settings := protected.Group("/settings/income")
	settings.Use(middleware.RequireTenant())
	{
		settings.GET("", h.Settings.Get)
		settings.PUT("", middleware.RequirePermission("manage-settings"), h.Settings.Set)
	}
}

func registerIncomeRoutes(protected *gin.RouterGroup, h *Handlers) {
	income := protected.Group("/income")
	income.Use(middleware.RequireTenant())
	income.Use(middleware.RequirePermission("manage-income"))
	{
		income.GET("", h.Income.List)
		income.POST("", h.Income.Create)
		income.GET("/:id", h.Income.Get)
		income.PUT("/:id", h.Income.Update)
		income.DELETE("/:id", h.Income.Delete)
	}
}

func registerReportRoutes(protected *gin.RouterGroup, h *Handlers) {
	reports := protected.Group("/reports")
	reports.Use(middleware.RequireTenant())
	reports.Use(middleware.RequirePermission("view-reports"))
	{
		reports.GET("/income-by-source", h.Report.BySource)
		reports.GET("/income-by-date", h.Report.ByDate)
		reports.GET("/income-total", h.Report.Total)
		reports.GET("/income-trends", h.Report.TrendsBySource)
	}
}
