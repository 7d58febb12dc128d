package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/safereport/safereport-backend/internal/config"
	"github.com/safereport/safereport-backend/internal/handlers"
	"github.com/safereport/safereport-backend/internal/middleware"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	reportHandler *handlers.ReportHandler,
	geocodeHandler *handlers.GeocodeHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Location autocomplete (public)
	api.Get("/geocode", geocodeHandler.Search)

	// Auth — public, with a stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)
	api.Get("/auth/me", middleware.JWTProtected(cfg), authHandler.Session)

	// Reports. Submission and tracking are open to the public; fixed
	// routes are registered before the :reportId wildcard.
	api.Post("/reports", middleware.OptionalJWT(cfg), reportHandler.CreateReport)
	api.Get("/reports", middleware.JWTProtected(cfg), middleware.StaffRequired(db), reportHandler.ListReports)
	api.Get("/reports/mine", middleware.JWTProtected(cfg), reportHandler.MyReports)
	api.Get("/reports/:reportId", reportHandler.GetReport)
	api.Patch("/reports/:reportId", middleware.JWTProtected(cfg), middleware.StaffRequired(db), reportHandler.UpdateStatus)
}
