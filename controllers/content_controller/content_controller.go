package content_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xronetech/leads/models/content_models"
)

// ContentController serves the landing page sections as data.
type ContentController struct{}

func NewContentController() *ContentController {
	return &ContentController{}
}

func (cc *ContentController) Services(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"services": content_models.Services})
}

func (cc *ContentController) Testimonials(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"testimonials": content_models.Testimonials})
}

func (cc *ContentController) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"stats": content_models.Stats})
}

func (cc *ContentController) Process(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"steps": content_models.ProcessSteps})
}
