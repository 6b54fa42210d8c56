package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/storefront/identity-system/internal/api/handler"
	"github.com/storefront/identity-system/internal/api/middleware"
	"github.com/storefront/identity-system/internal/core/domain"
	"github.com/storefront/identity-system/internal/core/ports"
	"github.com/storefront/identity-system/internal/core/service"
	"github.com/storefront/identity-system/internal/infrastructure/config"
	mongodb "github.com/storefront/identity-system/internal/infrastructure/db/mongo"
	redisdb "github.com/storefront/identity-system/internal/infrastructure/db/redis"
	"github.com/storefront/identity-system/internal/infrastructure/imagestore"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The mail dispatcher is created by the caller because it owns a worker
// lifecycle tied to the process context.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, mailQueue ports.MailDispatcher, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("identity"))

	// --- Dependencies ---
	credentials := service.NewCredentialService(cfg.JWT.Secret, cfg.JWT.TokenTTL)
	guard := service.NewGuard()

	accountRepo := mongodb.NewAccountRepository(db)
	profileRepo := mongodb.NewProfileRepository(db)
	verifications := redisdb.NewVerificationStore(rdb)
	images := imagestore.NewClient(cfg.Images.BaseURL, cfg.Images.Timeout)

	accountService := service.NewAccountService(accountRepo, credentials)
	profileService := service.NewProfileService(guard, profileRepo, images, mailQueue, verifications, cfg.BaseURL, log)

	authHandler := handler.NewAuthHandler(accountService)
	profileHandler := handler.NewProfileHandler(profileService)

	requireAuth := middleware.Auth(credentials)
	requireAdmin := middleware.Require(guard, domain.CapabilityAdmin)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Profile routes ---
	e.GET("/profile", profileHandler.Get, requireAuth)
	e.POST("/profile", profileHandler.Update, requireAuth)
	e.GET("/profile/list", profileHandler.List, requireAuth, requireAdmin)
	e.POST("/profile/verification-email", profileHandler.SendVerificationEmail, requireAuth)
	e.GET("/profile/confirm-email", profileHandler.ConfirmEmail)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
