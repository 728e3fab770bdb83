package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/xronetech/leads/config"
	"github.com/xronetech/leads/geolocation"
	"github.com/xronetech/leads/logger"
	"github.com/xronetech/leads/middlewares/cors"
	"github.com/xronetech/leads/middlewares/request_logger"
	"github.com/xronetech/leads/sessions"
)

// Options are the dependencies the HTTP surface is built from.
type Options struct {
	Config   config.Config
	Sessions *sessions.Manager
	Area     *geolocation.ServiceArea
	// Redis backs the rate limiters when set; otherwise they count in memory.
	Redis    *redis.Client
}

// NewRouter builds the gin engine with the shared middleware chain and every route.
func NewRouter(opts Options) *gin.Engine {
	r := gin.New()
	r.Use(request_logger.RequestID(), request_logger.Logger(), gin.Recovery(), cors.CorsMiddleware(opts.Config.AllowedOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.WarnLogger.Warnf("Failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	RegisterRoutes(r, opts)
	return r
}

// RegisterRoutes mounts the API. Only the booking flow of the configured
// variant is mounted.
func RegisterRoutes(r *gin.Engine, opts Options) {
	health := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok from leads service", "variant": opts.Config.Variant})
	}
	r.GET("/health", health)
	r.HEAD("/health", health)

	api := r.Group("/api")

	switch opts.Config.Variant {
	case config.VariantWizard:
		RegisterWizardRoutes(api, opts)
	default:
		RegisterBookingRoutes(api, opts)
	}
	RegisterContactRoutes(api, opts)
	RegisterLocationRoutes(api, opts)
	RegisterContentRoutes(api)
}
