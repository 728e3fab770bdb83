package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/xronetech/leads/controllers/content_controller"
)

func RegisterContentRoutes(api *gin.RouterGroup) {
	contentController := content_controller.NewContentController()

	content := api.Group("/content")
	content.GET("/services", contentController.Services)
	content.GET("/testimonials", contentController.Testimonials)
	content.GET("/stats", contentController.Stats)
	content.GET("/process", contentController.Process)
}
