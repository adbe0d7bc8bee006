package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/trimtally-api/internal/application/service"
	"github.com/sangkips/trimtally-api/internal/config"
	"github.com/sangkips/trimtally-api/internal/infrastructure/database"
	"github.com/sangkips/trimtally-api/internal/infrastructure/repository"
	"github.com/sangkips/trimtally-api/internal/presentation/http/handler"
	"github.com/sangkips/trimtally-api/internal/presentation/http/routes"
	"github.com/sangkips/trimtally-api/pkg/email"
	"github.com/sangkips/trimtally-api/pkg/oauth"
	"github.com/sangkips/trimtally-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	tenantRepo := repository.NewTenantRepository(db)
	passwordResetRepo := repository.NewPasswordResetTokenRepository(db)
	settingsRepo := repository.NewIncomeSettingsRepository(db)
	incomeRepo := repository.NewIncomeRepository(db)

	// Initialize email service
	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.FromEmail,
		FrontendURL:  cfg.App.FrontendURL,
	})

	// Initialize Google OAuth service
	googleOAuthService := oauth.NewGoogleOAuthService(oauth.GoogleOAuthConfig{
		ClientID:     cfg.OAuth.GoogleClientID,
		ClientSecret: cfg.OAuth.GoogleClientSecret,
		RedirectURL:  cfg.OAuth.GoogleRedirectURL,
	})

	// Initialize services
	authService := service.NewAuthService(userRepo, roleRepo, tenantRepo, passwordResetRepo, jwtManager, emailService, googleOAuthService)
	tenantService := service.NewTenantService(tenantRepo, userRepo, roleRepo, emailService)
	settingsService := service.NewSettingsService(settingsRepo)
	incomeService := service.NewIncomeService(incomeRepo, settingsRepo)
	reportService := service.NewReportService(incomeRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:     handler.NewAuthHandler(authService, cfg.App.FrontendURL),
		Tenant:   handler.NewTenantHandler(tenantService),
		Income:   handler.NewIncomeHandler(incomeService),
		Settings: handler.NewSettingsHandler(settingsService),
		Report:   handler.NewReportHandler(reportService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager: jwtManager,
		Cfg:        cfg,
		TenantRepo: tenantRepo,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
