package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/xronetech/leads/controllers/wizard_controller"
	middleware "github.com/xronetech/leads/middlewares"
)

// RegisterWizardRoutes mounts the three-step booking form.
func RegisterWizardRoutes(api *gin.RouterGroup, opts Options) {
	wizardController := wizard_controller.NewWizardController(opts.Sessions)
	rdb := opts.Redis

	wizard := api.Group("/wizard/sessions")
	wizard.POST("", middleware.NewRateLimiter(rdb, opts.Config.CreateRate, "wizard-create"), wizardController.CreateSession)
	wizard.GET("/:id", wizardController.GetSession)
	wizard.PATCH("/:id", middleware.NewRateLimiter(rdb, "120-1m", "wizard-update"), wizardController.UpdateSession)
	wizard.POST("/:id/next", wizardController.Next)
	wizard.POST("/:id/back", wizardController.Back)
	wizard.POST("/:id/map-click", middleware.NewRateLimiter(rdb, "60-1m", "wizard-map-click"), wizardController.MapClick)
	wizard.POST("/:id/submit", middleware.CombinedRateLimiter(rdb, "wizard-submit", opts.Config.SubmitRate, "20-1h"), wizardController.Submit)
}
