package router

import (
	"github.com/gin-gonic/gin"
	"github.com/tiendamx/tienda-engine/config"
	"github.com/tiendamx/tienda-engine/internal/app/controller"
	"github.com/tiendamx/tienda-engine/internal/events"
	"github.com/tiendamx/tienda-engine/internal/middleware"
)

type Router struct {
	authController    *controller.AuthController
	catalogController *controller.CatalogController
	cartController    *controller.CartController
	hub               *events.Hub
	config            *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	catalogController *controller.CatalogController,
	cartController *controller.CartController,
	hub *events.Hub,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:    authController,
		catalogController: catalogController,
		cartController:    cartController,
		hub:               hub,
		config:            cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "Tienda engine is running",
		})
	})

	// Event stream for the rendering layer.
	router.GET("/ws", func(c *gin.Context) {
		r.hub.ServeWS(c.Writer, c.Request)
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/login", r.authController.Login)
		}

		catalog := v1.Group("/catalog")
		{
			catalog.GET("", r.catalogController.List)
			catalog.GET("/categories", r.catalogController.Categories)
			catalog.GET("/category/:name", r.catalogController.ByCategory)
			catalog.GET("/search", r.catalogController.Search)
			catalog.GET("/products/:id", r.catalogController.ProductByID)
			catalog.POST("/refresh", r.catalogController.Refresh)
		}

		cart := v1.Group("/cart")
		{
			cart.GET("", r.cartController.GetCart)
			cart.POST("", r.cartController.AddItem)
			cart.POST("/quote", r.cartController.Quote)
			cart.DELETE("/:sku", r.cartController.RemoveItem)
			cart.DELETE("", r.cartController.ClearCart)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
