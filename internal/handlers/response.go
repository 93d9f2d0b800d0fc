package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK      = "ok"
	statusBoosted = "boosted"
	statusCleared = "cleared"
	statusPending = "pending"

	errInvalidBodyPref = "invalid body: "
	errAddEntry        = "failed to add schedule entry"
	errDeleteEntry     = "failed to delete schedule entry"
	errEntryNotFound   = "schedule entry not found"
	errPersist         = "schedule updated in memory but could not be saved"
	errBoost           = "failed to boost heating"
	errClearBoost      = "failed to clear boost"
	errListEntities    = "failed to load climate entities"
	errEntityNotFound  = "climate entity not found"
	errSetTemperature  = "failed to set temperature"
	errDevice          = "device did not accept the command"
	errListLogs        = "failed to load logs"
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}
