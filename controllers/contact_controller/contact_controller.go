package contact_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xronetech/leads/badwords"
	"github.com/xronetech/leads/logger"
	"github.com/xronetech/leads/models/contact_models"
	"github.com/xronetech/leads/models/session_models"
	"github.com/xronetech/leads/sessions"
	"github.com/xronetech/leads/utils"
	"github.com/xronetech/leads/utils/shared_utils"
)

// ContactController serves the "Send Us a Message" form.
type ContactController struct {
	Sessions *sessions.Manager
}

func NewContactController(m *sessions.Manager) *ContactController {
	return &ContactController{Sessions: m}
}

func (cc *ContactController) CreateSession(c *gin.Context) {
	s, err := cc.Sessions.Create(c.Request.Context(), session_models.KindContact)
	if err != nil {
		shared_utils.RespondSessionError(c, nil, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"session": s})
}

func (cc *ContactController) GetSession(c *gin.Context) {
	id, err := utils.GetSessionIDFromParam(c)
	if err != nil {
		shared_utils.RespondSessionError(c, nil, err)
		return
	}
	s, err := cc.Sessions.Get(c.Request.Context(), id, session_models.KindContact)
	if err != nil {
		shared_utils.RespondSessionError(c, nil, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": s})
}

func (cc *ContactController) UpdateSession(c *gin.Context) {
	id, err := utils.GetSessionIDFromParam(c)
	if err != nil {
		shared_utils.RespondSessionError(c, nil, err)
		return
	}

	var patch contact_models.ContactPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		shared_utils.RespondBindError(c, err)
		return
	}

	s, err := cc.Sessions.UpdateContact(c.Request.Context(), id, patch)
	if err != nil {
		shared_utils.RespondSessionError(c, s, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": s})
}

func (cc *ContactController) Submit(c *gin.Context) {
	id, err := utils.GetSessionIDFromParam(c)
	if err != nil {
		shared_utils.RespondSessionError(c, nil, err)
		return
	}

	s, err := cc.Sessions.Submit(c.Request.Context(), id, session_models.KindContact)
	if err != nil {
		shared_utils.RespondSessionError(c, s, err)
		return
	}

	logger.InfoLogger.Infof("Contact session %s submitted", id)
	c.JSON(http.StatusOK, gin.H{
		"message": "Message sent successfully! We'll get back to you soon.",
		"session": s,
	})
}

// CheckTextRequest is the body of the live message check.
type CheckTextRequest struct {
	Text string `json:"text" binding:"required"`
}

// CheckText lets the form warn about a message before submitting it.
func (cc *ContactController) CheckText(c *gin.Context) {
	var req CheckTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared_utils.RespondBindError(c, err)
		return
	}
	c.JSON(http.StatusOK, badwords.CheckText(req.Text))
}
