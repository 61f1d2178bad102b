package routes

import (
	"app/handlers"
	"app/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes defines all the routes for the application.
func SetupRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/health", handlers.HandleHealth)

	// --- Authentication Routes ---
	auth := api.Group("/auth")
	auth.Post("/login", handlers.HandleLogin)
	auth.Post("/init", handlers.HandleInitializeManager)
	auth.Post("/users", middleware.Authenticate, middleware.CheckRole("manager"), handlers.HandleCreateUser)

	// --- Snapshot Routes ---
	snapshots := api.Group("/snapshots")
	snapshots.Get("/", handlers.HandleListSnapshots)
	snapshots.Post("/", middleware.Authenticate, handlers.HandleCreateSnapshot)
	snapshots.Post("/analyze", middleware.Authenticate, handlers.HandleAnalyzeSnapshot)

	// --- Forecast Routes ---
	forecast := api.Group("/forecast")
	forecast.Get("/", handlers.HandleGetForecast)
	forecast.Get("/products", handlers.HandleGetForecastableProducts)
}
