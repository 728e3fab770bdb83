package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/xronetech/leads/controllers/contact_controller"
	middleware "github.com/xronetech/leads/middlewares"
)

func RegisterContactRoutes(api *gin.RouterGroup, opts Options) {
	contactController := contact_controller.NewContactController(opts.Sessions)
	rdb := opts.Redis

	contact := api.Group("/contact")
	contact.POST("/check-text", middleware.NewRateLimiter(rdb, "30-1m", "contact-check-text"), contactController.CheckText)

	s := contact.Group("/sessions")
	s.POST("", middleware.NewRateLimiter(rdb, opts.Config.CreateRate, "contact-create"), contactController.CreateSession)
	s.GET("/:id", contactController.GetSession)
	s.PATCH("/:id", middleware.NewRateLimiter(rdb, "120-1m", "contact-update"), contactController.UpdateSession)
	s.POST("/:id/submit", middleware.CombinedRateLimiter(rdb, "contact-submit", opts.Config.SubmitRate, "20-1h"), contactController.Submit)
}
