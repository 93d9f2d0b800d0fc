package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary      Last reconcile report
// @Description  Outcome of the most recent reconcile tick. Before the first tick completes the status is "pending".
// @Tags         monitoring
// @Produce      json
// @Success      200  {object}  service.ReconcileReport
// @Success      202  {object}  map[string]string
// @Router       /status [get]
func (h *Handler) getStatus(c *gin.Context) {
	rep, ok := h.services.Monitoring.LastReport()
	if !ok {
		c.JSON(http.StatusAccepted, gin.H{"status": statusPending})
		return
	}
	c.JSON(http.StatusOK, rep)
}
