package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/brandbridge/bridgeboard/internal/bridge"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// Client facing error messages.
const (
	msgNotFound    = "Entry not found"
	msgServerError = "Server error"
	msgInvalidJSON = "invalid json"
)

// getUserID extracts the user ID from gin context.
func getUserID(c *gin.Context) uint64 {
	val, exists := c.Get("userID")
	if !exists {
		return 0
	}
	switch v := val.(type) {
	case uint64:
		return v
	case int64:
		return uint64(v)
	case uint:
		return uint64(v)
	case int:
		return uint64(v)
	default:
		return 0
	}
}

// parseIDParam reads a positive numeric path parameter. Malformed ids are reported as not found.
func parseIDParam(c *gin.Context, name string) (uint64, bool) {
	id, errParse := strconv.ParseUint(c.Param(name), 10, 64)
	if errParse != nil || id == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": msgNotFound})
		return 0, false
	}
	return id, true
}

// writeBridgeError maps a bridge service error to its JSON envelope.
func writeBridgeError(c *gin.Context, err error) {
	var verr *bridge.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": verr.Message})
	case errors.Is(err, bridge.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": msgNotFound})
	default:
		log.WithError(err).WithFields(log.Fields{
			"method": c.Request.Method,
			"path":   c.FullPath(),
		}).Error("bridge request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgServerError})
	}
}
