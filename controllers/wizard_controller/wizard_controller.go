package wizard_controller

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

// WizardController serves the three-step booking form. Its location is
// picked by clicking on a map in the last step.
type WizardController struct {
	Sessions *sessions.Manager
}

func NewWizardController(m *sessions.Manager) *WizardController {
	return &WizardController{Sessions: m}
}

func (wc *WizardController) CreateSession(c *gin.Context) {
	logger.InfoLogger.Info("CreateSession (wizard) called")

	s, err := wc.Sessions.Create(c.Request.Context(), session_models.KindWizard)
	if err != nil {
		shared_utils.RespondSessionError(c, nil, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"session":     s,
		"cropOptions": booking_models.CropOptions,
	})
}

func (wc *WizardController) GetSession(c *gin.Context) {
	wc.withSession(c, func(s *session_models.FormSession) {
		c.JSON(http.StatusOK, gin.H{"session": s})
	})
}

func (wc *WizardController) UpdateSession(c *gin.Context) {
	id, err := utils.GetSessionIDFromParam(c)
	if err != nil {
		shared_utils.RespondSessionError(c, nil, err)
		return
	}

	var patch booking_models.WizardPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		shared_utils.RespondBindError(c, err)
		return
	}

	s, err := wc.Sessions.UpdateWizard(c.Request.Context(), id, patch)
	if err != nil {
		shared_utils.RespondSessionError(c, s, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": s})
}

// Next validates the current step and moves forward.
func (wc *WizardController) Next(c *gin.Context) {
	id, err := utils.GetSessionIDFromParam(c)
	if err != nil {
		shared_utils.RespondSessionError(c, nil, err)
		return
	}

	s, err := wc.Sessions.Next(c.Request.Context(), id)
	if err != nil {
		shared_utils.RespondSessionError(c, s, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": s})
}

// Back moves to the previous step without validating.
func (wc *WizardController) Back(c *gin.Context) {
	id, err := utils.GetSessionIDFromParam(c)
	if err != nil {
		shared_utils.RespondSessionError(c, nil, err)
		return
	}

	s, err := wc.Sessions.Back(c.Request.Context(), id)
	if err != nil {
		shared_utils.RespondSessionError(c, s, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": s})
}

// MapClick stores the coordinate the map resolved for a click.
func (wc *WizardController) MapClick(c *gin.Context) {
	id, err := utils.GetSessionIDFromParam(c)
	if err != nil {
		shared_utils.RespondSessionError(c, nil, err)
		return
	}

	var click geolocation.MapClick
	if err := c.ShouldBindJSON(&click); err != nil {
		shared_utils.RespondBindError(c, err)
		return
	}

	s, err := wc.Sessions.PickLocation(c.Request.Context(), id, click)
	if err != nil {
		shared_utils.RespondSessionError(c, s, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": s})
}

func (wc *WizardController) Submit(c *gin.Context) {
	id, err := utils.GetSessionIDFromParam(c)
	if err != nil {
		shared_utils.RespondSessionError(c, nil, err)
		return
	}

	s, err := wc.Sessions.Submit(c.Request.Context(), id, session_models.KindWizard)
	if err != nil {
		shared_utils.RespondSessionError(c, s, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": shared_utils.SubmitSuccessMessage,
		"session": s,
	})
}

func (wc *WizardController) withSession(c *gin.Context, fn func(*session_models.FormSession)) {
	id, err := utils.GetSessionIDFromParam(c)
	if err != nil {
		shared_utils.RespondSessionError(c, nil, err)
		return
	}
	s, err := wc.Sessions.Get(c.Request.Context(), id, session_models.KindWizard)
	if err != nil {
		shared_utils.RespondSessionError(c, nil, err)
		return
	}
	fn(s)
}
