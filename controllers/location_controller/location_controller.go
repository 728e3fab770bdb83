package location_controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xronetech/leads/config"
	"github.com/xronetech/leads/geolocation"
	"github.com/xronetech/leads/logger"
	"github.com/xronetech/leads/models/booking_models"
	"github.com/xronetech/leads/utils"
)

// LocationController exposes how this deployment captures locations and
// which operator base serves a point.
type LocationController struct {
	Variant config.BookingVariant
	Area    *geolocation.ServiceArea
}

func NewLocationController(variant config.BookingVariant, area *geolocation.ServiceArea) *LocationController {
	return &LocationController{Variant: variant, Area: area}
}

// Strategy names the acquirer a variant uses.
func Strategy(variant config.BookingVariant) string {
	if variant == config.VariantWizard {
		return "interactive"
	}
	return "automatic"
}

// GeolocationConfig tells the client which acquirer to run and, for the
// automatic one, the options to pass to getCurrentPosition.
func (lc *LocationController) GeolocationConfig(c *gin.Context) {
	resp := gin.H{
		"variant":  lc.Variant,
		"strategy": Strategy(lc.Variant),
	}
	if lc.Variant == config.VariantWizard {
		resp["mapDefaultCenter"] = gin.H{"lat": 20.5937, "lng": 78.9629, "zoom": 5}
	} else {
		resp["options"] = geolocation.RequestOptions
	}
	c.JSON(http.StatusOK, resp)
}

// ServiceArea returns the nearest base for ?lat=&lng=.
func (lc *LocationController) ServiceArea(c *gin.Context) {
	lat, err := utils.QueryFloat(c, "lat")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	lng, err := utils.QueryFloat(c, "lng")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	coord, err := booking_models.NewGeoCoordinate(lat, lng, "")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cov, err := lc.Area.Nearest(coord)
	if errors.Is(err, geolocation.ErrNoBases) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Service area is not configured"})
		return
	}
	if err != nil {
		logger.ErrorLogger.Errorf("Service area lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, cov)
}
