package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/xronetech/leads/controllers/booking_controller"
	middleware "github.com/xronetech/leads/middlewares"
)

// RegisterBookingRoutes mounts the single-step booking form.
func RegisterBookingRoutes(api *gin.RouterGroup, opts Options) {
	bookingController := booking_controller.NewBookingController(opts.Sessions)
	rdb := opts.Redis

	booking := api.Group("/booking/sessions")
	booking.POST("", middleware.NewRateLimiter(rdb, opts.Config.CreateRate, "booking-create"), bookingController.CreateSession)
	booking.GET("/:id", bookingController.GetSession)
	booking.PATCH("/:id", middleware.NewRateLimiter(rdb, "120-1m", "booking-update"), bookingController.UpdateSession)
	booking.POST("/:id/location", middleware.NewRateLimiter(rdb, "20-1m", "booking-location"), bookingController.ReportLocation)
	booking.POST("/:id/submit", middleware.CombinedRateLimiter(rdb, "booking-submit", opts.Config.SubmitRate, "20-1h"), bookingController.Submit)
}
