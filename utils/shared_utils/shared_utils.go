package shared_utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xronetech/leads/logger"
	"github.com/xronetech/leads/models/booking_models"
	"github.com/xronetech/leads/models/session_models"
	"github.com/xronetech/leads/sessions"
	"github.com/xronetech/leads/utils"
)

// Messages shown by the form on the two submit outcomes.
const (
	SubmitSuccessMessage = "Request submitted successfully! We'll contact you soon."
	SubmitFailureMessage = "Failed to submit. Please try again."
	ValidationMessage    = "Please fix the highlighted fields."
)

// SessionStatus maps form session errors to HTTP status codes.
func SessionStatus(err error) int {
	switch {
	case errors.Is(err, utils.ErrInvalidSessionID),
		errors.Is(err, booking_models.ErrInvalidDate):
		return http.StatusBadRequest
	case errors.Is(err, sessions.ErrSessionNotFound),
		errors.Is(err, session_models.ErrWrongKind):
		return http.StatusNotFound
	case errors.Is(err, session_models.ErrSessionLocked),
		errors.Is(err, session_models.ErrStepOrder),
		errors.Is(err, session_models.ErrLastStep):
		return http.StatusConflict
	case errors.Is(err, session_models.ErrValidationFailed),
		errors.Is(err, booking_models.ErrCoordinateOutOfRange):
		return http.StatusUnprocessableEntity
	case errors.Is(err, sessions.ErrDispatchFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// RespondSessionError writes err as JSON. The session, when known, is
// included so the form can re-render its current state and field errors.
func RespondSessionError(c *gin.Context, s *session_models.FormSession, err error) {
	status := SessionStatus(err)
	body := gin.H{"error": errorMessage(status, err)}

	if s != nil {
		body["session"] = s
		if status == http.StatusUnprocessableEntity {
			body["errors"] = s.Errors
		}
	}

	if status >= http.StatusInternalServerError {
		logger.ErrorLogger.Errorf("Form session request failed: %v", err)
	} else {
		logger.WarnLogger.Warnf("Form session request rejected (%d): %v", status, err)
	}
	c.JSON(status, body)
}

func errorMessage(status int, err error) string {
	switch status {
	case http.StatusNotFound:
		return "Form session not found or expired"
	case http.StatusUnprocessableEntity:
		if errors.Is(err, booking_models.ErrCoordinateOutOfRange) {
			return err.Error()
		}
		return ValidationMessage
	case http.StatusBadGateway:
		return SubmitFailureMessage
	case http.StatusInternalServerError:
		return "Internal server error"
	default:
		return err.Error()
	}
}

// RespondBindError answers a malformed JSON body.
func RespondBindError(c *gin.Context, err error) {
	logger.WarnLogger.Warnf("Invalid request body: %v", err)
	if errors.Is(err, booking_models.ErrInvalidDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid preferred date", "errors": gin.H{"preferredDate": "Please select a valid date"}})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
}
