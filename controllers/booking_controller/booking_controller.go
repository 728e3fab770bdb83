package booking_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xronetech/leads/geolocation"
	"github.com/xronetech/leads/logger"
	"github.com/xronetech/leads/models/booking_models"
	"github.com/xronetech/leads/models/session_models"
	"github.com/xronetech/leads/sessions"
	"github.com/xronetech/leads/utils"
	"github.com/xronetech/leads/utils/shared_utils"
)

// BookingController serves the single-step booking form, whose location is
// captured automatically from the browser.
type BookingController struct {
	Sessions *sessions.Manager
}

// NewBookingController creates a new instance of BookingController.
func NewBookingController(m *sessions.Manager) *BookingController {
	return &BookingController{
		Sessions: m,
	}
}

// CreateSession starts an empty booking draft. The client should request the
// browser position right away and report it to ReportLocation.
func (bc *BookingController) CreateSession(c *gin.Context) {
	logger.InfoLogger.Info("CreateSession (booking) called")

	s, err := bc.Sessions.Create(c.Request.Context(), session_models.KindBooking)
	if err != nil {
		shared_utils.RespondSessionError(c, nil, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"session":            s,
		"geolocationOptions": geolocation.RequestOptions,
		"acreageOptions":     booking_models.AcreageOptions,
	})
}

func (bc *BookingController) GetSession(c *gin.Context) {
	id, err := utils.GetSessionIDFromParam(c)
	if err != nil {
		shared_utils.RespondSessionError(c, nil, err)
		return
	}

	s, err := bc.Sessions.Get(c.Request.Context(), id, session_models.KindBooking)
	if err != nil {
		shared_utils.RespondSessionError(c, nil, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": s})
}

// UpdateSession applies the fields present in the body.
func (bc *BookingController) UpdateSession(c *gin.Context) {
	id, err := utils.GetSessionIDFromParam(c)
	if err != nil {
		shared_utils.RespondSessionError(c, nil, err)
		return
	}

	var patch booking_models.BookingPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		shared_utils.RespondBindError(c, err)
		return
	}

	s, err := bc.Sessions.UpdateBooking(c.Request.Context(), id, patch)
	if err != nil {
		shared_utils.RespondSessionError(c, s, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": s})
}

// ReportLocation takes the browser's getCurrentPosition outcome. Failures are
// answered with 200 and recorded on the session so the form can show its
// banner and retry action.
func (bc *BookingController) ReportLocation(c *gin.Context) {
	id, err := utils.GetSessionIDFromParam(c)
	if err != nil {
		shared_utils.RespondSessionError(c, nil, err)
		return
	}

	var report geolocation.PositionReport
	if err := c.ShouldBindJSON(&report); err != nil {
		shared_utils.RespondBindError(c, err)
		return
	}

	s, err := bc.Sessions.ReportPosition(c.Request.Context(), id, report)
	if err != nil {
		shared_utils.RespondSessionError(c, s, err)
		return
	}

	resp := gin.H{"session": s}
	if s.Location != nil && s.Location.Failure != nil && s.Location.Failure.ShowSettingsDialog {
		resp["settingsHint"] = geolocation.SettingsHint
	}
	c.JSON(http.StatusOK, resp)
}

// Submit validates the whole draft and sends it to the booking endpoint.
func (bc *BookingController) Submit(c *gin.Context) {
	id, err := utils.GetSessionIDFromParam(c)
	if err != nil {
		shared_utils.RespondSessionError(c, nil, err)
		return
	}

	s, err := bc.Sessions.Submit(c.Request.Context(), id, session_models.KindBooking)
	if err != nil {
		shared_utils.RespondSessionError(c, s, err)
		return
	}

	logger.InfoLogger.Infof("Booking session %s submitted", id)
	c.JSON(http.StatusOK, gin.H{
		"message": shared_utils.SubmitSuccessMessage,
		"session": s,
	})
}
