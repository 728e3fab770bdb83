package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/xronetech/leads/controllers/location_controller"
	"github.com/xronetech/leads/geolocation"
	middleware "github.com/xronetech/leads/middlewares"
)

func RegisterLocationRoutes(api *gin.RouterGroup, opts Options) {
	area := opts.Area
	if area == nil {
		area = geolocation.NewServiceArea(geolocation.DefaultBases)
	}
	locationController := location_controller.NewLocationController(opts.Config.Variant, area)

	api.GET("/config/geolocation", locationController.GeolocationConfig)
	api.GET("/service-area", middleware.NewRateLimiter(opts.Redis, "60-1m", "service-area"), locationController.ServiceArea)
}
