package handlers

import (
	"errors"
	"net/http"

	"heating_scheduler/internal/climate"
	"heating_scheduler/internal/service"

	"github.com/gin-gonic/gin"
)

// Request DTO for setting a target temperature.
type temperatureRequest struct {
	Temperature *float64 `json:"temperature" binding:"required"`
}

// SetTemperatureRequest is an exported model for Swagger docs of the setTemperature payload.
type SetTemperatureRequest struct {
	// Target temperature in Celsius, 5..30
	Temperature float64 `json:"temperature" example:"21.5"`
}

// @Summary      List climate entities
// @Description  Cached device state per entity; entities not yet fetched by this process fall back to the last stored reading, marked stale.
// @Tags         climate
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, entities"
// @Failure      500  {object}  map[string]string
// @Router       /climate [get]
func (h *Handler) listClimate(c *gin.Context) {
	entities, err := h.services.Monitoring.ListEntities(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errListEntities, "climate_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":    len(entities),
		"entities": entities,
	})
}

// @Summary      Set target temperature
// @Tags         climate
// @Accept       json
// @Produce      json
// @Param        entity_id  path      string                 true  "Entity id"  example(climate.living_room)
// @Param        payload    body      SetTemperatureRequest  true  "Target"
// @Success      200        {object}  map[string]interface{}  "status, entity_id, temperature"
// @Failure      400        {object}  map[string]string
// @Failure      404        {object}  map[string]string
// @Failure      502        {object}  map[string]string
// @Router       /climate/{entity_id}/temperature [post]
func (h *Handler) setTemperature(c *gin.Context) {
	entityID := c.Param("entity_id")
	var req temperatureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}

	err := h.services.Climate.SetTemperature(c.Request.Context(), entityID, *req.Temperature)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{
			"status":      statusOK,
			"entity_id":   entityID,
			"temperature": *req.Temperature,
		})
	case errors.Is(err, climate.ErrEntityNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": errEntityNotFound})
	case errors.Is(err, service.ErrInvalidTemperature), errors.Is(err, climate.ErrUnsupported):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrDevice):
		h.logAndJSONError(c, http.StatusBadGateway, errDevice, "set_temperature_device_failed", err, "entity_id", entityID)
	default:
		h.logAndJSONError(c, http.StatusInternalServerError, errSetTemperature, "set_temperature_failed", err, "entity_id", entityID)
	}
}
