// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/baskitup/storefront/internal/config"
	"github.com/baskitup/storefront/internal/domain/cart"
	"github.com/baskitup/storefront/internal/domain/order"
	"github.com/baskitup/storefront/internal/domain/user"
	"github.com/baskitup/storefront/internal/interfaces/http/handlers"
	"github.com/baskitup/storefront/internal/interfaces/http/middleware"
	"github.com/baskitup/storefront/internal/pkg/email"
)

// Dependencies carries the composed services the routes need.
type Dependencies struct {
	DB       *gorm.DB
	Config   *config.Config
	Carts    *cart.Service
	Tracker  *order.Tracker
	Recorder *email.Recorder
}

// SetupRoutes wires every endpoint group onto the router
func SetupRoutes(rg *gin.RouterGroup, deps Dependencies) {
	setupAuthRoutes(rg, deps)
	setupBasketRoutes(rg, deps)
	setupCartRoutes(rg, deps)
	setupOrderRoutes(rg, deps)
	setupAdminRoutes(rg, deps)
}

func setupAuthRoutes(rg *gin.RouterGroup, deps Dependencies) {
	authHandler := handlers.NewAuthHandler(deps.DB, deps.Config)

	auth := rg.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)

		protected := auth.Group("")
		protected.Use(middleware.AuthMiddleware(deps.Config))
		{
			protected.GET("/me", authHandler.Me)
			protected.POST("/logout", authHandler.Logout)
		}
	}
}

func setupBasketRoutes(rg *gin.RouterGroup, deps Dependencies) {
	basketHandler := handlers.NewBasketHandler(deps.DB, deps.Config)

	baskets := rg.Group("/baskets")
	{
		baskets.GET("", basketHandler.List)
		baskets.GET("/featured", basketHandler.GetFeatured)
		baskets.GET("/:slug", basketHandler.GetBySlug)
	}
}

func setupCartRoutes(rg *gin.RouterGroup, deps Dependencies) {
	cartHandler := handlers.NewCartHandler(deps.Carts, deps.DB, deps.Config)

	// Cart works for guests and authenticated users alike.
	cartGroup := rg.Group("/cart")
	cartGroup.Use(middleware.OptionalAuthMiddleware(deps.Config))
	{
		cartGroup.GET("", cartHandler.GetCart)
		cartGroup.GET("/totals", cartHandler.GetTotals)
		cartGroup.POST("/items", cartHandler.AddItem)
		cartGroup.PUT("/items/:id", cartHandler.UpdateItem)
		cartGroup.DELETE("/items/:id", cartHandler.RemoveItem)
		cartGroup.DELETE("", cartHandler.Clear)
	}
}

func setupOrderRoutes(rg *gin.RouterGroup, deps Dependencies) {
	orderHandler := handlers.NewOrderHandler(deps.Tracker, deps.Recorder, deps.Config)

	orders := rg.Group("/orders")
	orders.Use(middleware.OptionalAuthMiddleware(deps.Config))
	{
		orders.POST("", orderHandler.PlaceOrder)
		orders.GET("", orderHandler.ListOrders)
		orders.GET("/mine", orderHandler.MyOrders)
	}

	// Lifecycle management stays admin-only.
	managed := rg.Group("/orders")
	managed.Use(middleware.AuthMiddleware(deps.Config), middleware.AdminMiddleware())
	{
		managed.POST("/:id/status", orderHandler.UpdateStatus)
		managed.POST("/:id/email", orderHandler.RecordEmail)
	}
}

func setupAdminRoutes(rg *gin.RouterGroup, deps Dependencies) {
	basketHandler := handlers.NewBasketHandler(deps.DB, deps.Config)
	orderHandler := handlers.NewOrderHandler(deps.Tracker, deps.Recorder, deps.Config)

	admin := rg.Group("/admin")
	admin.Use(middleware.AuthMiddleware(deps.Config))
	{
		// Catalog management is open to content managers too.
		baskets := admin.Group("/baskets")
		baskets.Use(middleware.RequireRoles(user.RoleAdmin, user.RoleContentManager))
		{
			baskets.POST("", basketHandler.Create)
			baskets.PUT("/:id", basketHandler.Update)
			baskets.DELETE("/:id", basketHandler.Delete)
		}

		orders := admin.Group("/orders")
		orders.Use(middleware.AdminMiddleware())
		{
			orders.GET("", orderHandler.AllOrders)
			orders.POST("/seed", orderHandler.SeedDemo)
		}
	}
}
