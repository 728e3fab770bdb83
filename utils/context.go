package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/xronetech/leads/logger"
)

// GetSessionIDFromParam parses the :id path parameter of a form session route.
func GetSessionIDFromParam(c *gin.Context) (uuid.UUID, error) {
	raw := c.Param("id")
	id, err := uuid.Parse(raw)
	if err != nil {
		logger.WarnLogger.Warnf("Failed to parse session id '%s': %v", raw, err)
		return uuid.Nil, fmt.Errorf("%w: %q", ErrInvalidSessionID, raw)
	}
	return id, nil
}
