package handlers

import (
	"errors"
	"net/http"

	"heating_scheduler/internal/models"
	"heating_scheduler/internal/schedule"
	"heating_scheduler/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Request DTO for adding a schedule entry.
type entryRequest struct {
	Name       string `json:"name" binding:"required"`
	TimePeriod struct {
		Start string `json:"start" binding:"required,hms"`
		End   string `json:"end" binding:"required,hms"`
	} `json:"time_period" binding:"required"`
	HeatingState string `json:"heating_state" binding:"required,oneof=ON OFF"`
}

// AddEntryRequest is an exported model for Swagger docs of the addScheduleEntry payload.
type AddEntryRequest struct {
	Name       string `json:"name" example:"morning"`
	TimePeriod struct {
		// Wall-clock start, HH:MM:SS
		Start string `json:"start" example:"06:00:00"`
		// Wall-clock end (exclusive), HH:MM:SS. 00:00:00-00:00:00 is the whole day.
		End string `json:"end" example:"08:00:00"`
	} `json:"time_period"`
	// Allowed: ON, OFF
	HeatingState string `json:"heating_state" example:"ON"`
}

func validateTimeOfDay(fl validator.FieldLevel) bool {
	_, err := schedule.ParseTimeOfDay(fl.Field().String())
	return err == nil
}

// toParams converts an already bound request. Times were checked by the hms tag.
func (r entryRequest) toParams() (service.EntryParams, error) {
	start, err := schedule.ParseTimeOfDay(r.TimePeriod.Start)
	if err != nil {
		return service.EntryParams{}, err
	}
	end, err := schedule.ParseTimeOfDay(r.TimePeriod.End)
	if err != nil {
		return service.EntryParams{}, err
	}
	return service.EntryParams{
		Name:         r.Name,
		Start:        start,
		End:          end,
		HeatingState: models.HeatingState(r.HeatingState),
	}, nil
}

// isScheduleInputError reports whether err was caused by the request rather
// than by the server.
func isScheduleInputError(err error) bool {
	return errors.Is(err, schedule.ErrInvalidPeriod) ||
		errors.Is(err, schedule.ErrInvalidTimeOfDay) ||
		errors.Is(err, schedule.ErrInvalidState)
}

// @Summary      Get schedule
// @Tags         schedule
// @Produce      json
// @Success      200  {object}  schedule.Schedule
// @Router       /schedule [get]
func (h *Handler) getSchedule(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Scheduler.GetSchedule())
}

// @Summary      Add schedule entry
// @Description  The new entry owns its period; overlapped entries are clipped around it.
// @Tags         schedule
// @Accept       json
// @Produce      json
// @Param        payload  body      AddEntryRequest  true  "Entry"
// @Success      200      {object}  schedule.Schedule
// @Failure      400      {object}  map[string]string
// @Failure      500      {object}  map[string]interface{}  "error, schedule"
// @Router       /schedule [post]
func (h *Handler) addScheduleEntry(c *gin.Context) {
	var req entryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	params, err := req.toParams()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}

	sched, err := h.services.Scheduler.AddEntry(c.Request.Context(), params)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, sched)
	case errors.Is(err, service.ErrPersist):
		h.respondPersistError(c, "schedule_add_persist_failed", err, sched)
	case isScheduleInputError(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logAndJSONError(c, http.StatusInternalServerError, errAddEntry, "schedule_add_failed", err,
			"name", params.Name, "start", params.Start, "end", params.End)
	}
}

// @Summary      Delete schedule entry
// @Description  The entry ending where the deleted one starts absorbs the freed time.
// @Tags         schedule
// @Produce      json
// @Param        id   path      string  true  "Entry id"
// @Success      200  {object}  schedule.Schedule
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]interface{}  "error, schedule"
// @Router       /schedule/{id} [delete]
func (h *Handler) deleteScheduleEntry(c *gin.Context) {
	id := c.Param("id")
	sched, err := h.services.Scheduler.DeleteEntry(c.Request.Context(), id)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, sched)
	case errors.Is(err, schedule.ErrEntryNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": errEntryNotFound})
	case errors.Is(err, service.ErrPersist):
		h.respondPersistError(c, "schedule_delete_persist_failed", err, sched)
	default:
		h.logAndJSONError(c, http.StatusInternalServerError, errDeleteEntry, "schedule_delete_failed", err, "id", id)
	}
}

// respondPersistError reports a failed save. The mutation stays in memory, so
// the current schedule is returned alongside the error.
func (h *Handler) respondPersistError(c *gin.Context, logKey string, err error, sched *schedule.Schedule) {
	if h.log != nil {
		h.log.Errorw(logKey, "err", err)
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":    errPersist,
		"schedule": sched,
	})
}
