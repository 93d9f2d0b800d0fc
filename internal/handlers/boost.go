package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary      Boost all entities
// @Description  Arms a fixed-duration boost on every tracked entity. Heating is forced on until it expires.
// @Tags         boost
// @Produce      json
// @Success      200  {object}  service.BoostResult
// @Failure      500  {object}  map[string]string
// @Router       /boost_all [post]
func (h *Handler) boostAll(c *gin.Context) {
	res, err := h.services.Boost.BoostAll(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errBoost, "boost_all_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   statusBoosted,
		"boost":    res.Boost,
		"entities": res.Entities,
	})
}

// @Summary      Clear boost
// @Tags         boost
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "status, entities"
// @Failure      500  {object}  map[string]string
// @Router       /boost_all [delete]
func (h *Handler) clearBoost(c *gin.Context) {
	n, err := h.services.Boost.ClearBoost(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errClearBoost, "boost_clear_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   statusCleared,
		"entities": n,
	})
}
