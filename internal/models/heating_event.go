package models

import "time"

// Event types written to the heating event log.
const (
	EventTurnOn         = "TURN_ON"
	EventTurnOff        = "TURN_OFF"
	EventDeviceError    = "DEVICE_ERROR"
	EventScheduleAdd    = "SCHEDULE_ADD"
	EventScheduleDelete = "SCHEDULE_DELETE"
	EventBoost          = "BOOST"
	EventBoostClear     = "BOOST_CLEAR"
	EventTemperature    = "SET_TEMPERATURE"
)

// HeatingEvent is a single log entry.
type HeatingEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`
	EntityID    string    `json:"entity_id,omitempty"`
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
