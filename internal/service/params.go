package service

import (
	"time"

	"heating_scheduler/internal/models"
	"heating_scheduler/internal/schedule"
)

// EntryParams describes a schedule entry to add.
type EntryParams struct {
	Name         string
	Start        schedule.TimeOfDay
	End          schedule.TimeOfDay
	HeatingState models.HeatingState
}

// LogFilter supports history filtering by time range, type and entity.
type LogFilter struct {
	From     time.Time // inclusive; zero means no lower bound
	To       time.Time // inclusive; zero means no upper bound
	Type     string    // "", "TURN_ON", "TURN_OFF", "DEVICE_ERROR", "SCHEDULE_ADD", ...
	EntityID string
	Limit    int // newest N; 0 means all
}
