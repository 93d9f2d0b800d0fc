package models

import "time"

// ClimateReading is the last successfully fetched state of an entity as
// persisted across restarts.
type ClimateReading struct {
	EntityID     string       `json:"entity_id"`
	CurrentTempC float64      `json:"current_temp_c"`
	State        HeatingState `json:"state"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// EntityStatus is the externally visible view of a tracked entity.
type EntityStatus struct {
	EntityID string       `json:"entity_id"`
	Climate  *ClimateInfo `json:"climate,omitempty"`
	// Stale is set when Climate comes from a persisted reading rather than a
	// fetch made by this process.
	Stale     bool       `json:"stale,omitempty"`
	ReadingAt *time.Time `json:"reading_at,omitempty"`
	Boost     BoostInfo  `json:"boost"`
}
