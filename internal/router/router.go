package router

import (
	"database/sql"

	"pharmacy_pos_backend/internal/handlers"
	"pharmacy_pos_backend/internal/repositories"
	"pharmacy_pos_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// Setup initializes the routing for the application: repositories, then
// services, then handlers, then the route groups.
func Setup(engine *gin.Engine, db *sql.DB) {
	// Initialize Repositories
	shopRepo := repositories.NewShopRepository(db)
	inventoryRepo := repositories.NewInventoryRepository(db)

	// Initialize Services
	authService := services.NewAuthService(shopRepo, inventoryRepo, db)
	inventoryService := services.NewInventoryService(inventoryRepo, db)
	billingService := services.NewBillingService(inventoryRepo, db)
	catalogService := services.NewCatalogService(inventoryRepo)

	// Initialize Handlers
	authHandler := handlers.NewAuthHandler(authService)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService, authService)
	billingHandler := handlers.NewBillingHandler(billingService, authService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)

	SetupPublicRoutes(engine, catalogHandler, authHandler)
	SetupOwnerRoutes(engine, inventoryHandler, billingHandler, authHandler)
}
