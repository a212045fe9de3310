package router

import (
	"pharmacy_pos_backend/internal/handlers"
	"pharmacy_pos_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupPublicRoutes sets up the unauthenticated routes: the cross-shop
// search view and the login/registration flows.
func SetupPublicRoutes(engine *gin.Engine, catalogHandler *handlers.CatalogHandler, authHandler *handlers.AuthHandler) {
	engine.GET("/", catalogHandler.Index)

	engine.GET("/login", authHandler.ShowLogin)
	engine.POST("/login", authHandler.Login)
	engine.GET("/register", authHandler.ShowRegister)
	engine.POST("/register", authHandler.Register)
}

// SetupOwnerRoutes sets up the session-gated owner routes. The dashboard
// family redirects to /login without a session; shop deletion keeps its
// bare-401 behavior and gets the strict middleware variant.
func SetupOwnerRoutes(engine *gin.Engine, inventoryHandler *handlers.InventoryHandler, billingHandler *handlers.BillingHandler, authHandler *handlers.AuthHandler) {
	owner := engine.Group("")
	owner.Use(middleware.RequireSession())
	{
		owner.GET("/dashboard", inventoryHandler.Dashboard)
		owner.POST("/dashboard", inventoryHandler.DashboardForm)
		owner.GET("/inventory_list", inventoryHandler.InventoryList)

		owner.GET("/billing", billingHandler.ShowBilling)
		owner.POST("/billing", billingHandler.ApplyBilling)

		owner.GET("/increase_stock_one/:med_name", inventoryHandler.IncreaseStockOne)
		owner.GET("/decrease_stock_one/:med_name", inventoryHandler.DecreaseStockOne)
		owner.GET("/delete_medicine/:med_name", inventoryHandler.DeleteMedicine)

		owner.POST("/logout", authHandler.Logout)
	}

	strict := engine.Group("")
	strict.Use(middleware.RequireSessionStrict())
	{
		strict.GET("/delete_shop_record", authHandler.DeleteShopRecord)
	}
}
