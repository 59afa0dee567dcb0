// Package gateway is the HTTP edge of the storefront. It owns the session
// cookie and turns each request into a storefront event.
package gateway

import (
	"log/slog"

	"github.com/gin-gonic/gin"
)

// RouterConfig holds the edge settings that are not handlers.
type RouterConfig struct {
	AllowedOrigins []string
	SessionMaxAge  int // seconds
	SecureCookies  bool
}

// SetupRouter configures and returns the storefront router.
func SetupRouter(h *Handler, sessions SessionIDs, cfg RouterConfig, logger *slog.Logger) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggingMiddleware(logger))
	r.Use(CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", h.Health)

	withSession := SessionMiddleware(sessions, cfg.SessionMaxAge, cfg.SecureCookies)

	auth := r.Group("/auth", withSession)
	{
		auth.POST("/signup", h.SignUp)
		auth.POST("/signin", h.SignIn)
		auth.POST("/signout", h.SignOut)
		auth.POST("/validate", h.ValidateField)
	}

	api := r.Group("/api", withSession)
	{
		api.GET("/auth/state", h.AuthState)

		products := api.Group("/products")
		{
			products.GET("", h.SearchProducts)
			products.GET("/more/:section", h.LoadMore)
			products.POST("/detail", h.OpenProduct)
		}

		cart := api.Group("/cart")
		{
			cart.GET("", h.LoadCart)
			cart.POST("/items", h.AddToCart)
			cart.PUT("/items/:id", h.UpdateQuantity)
			cart.DELETE("/items/:id", h.RemoveItem)
		}

		api.GET("/checkout", h.LoadCheckout)
		api.POST("/checkout", h.PlaceOrder)
	}

	return r
}
