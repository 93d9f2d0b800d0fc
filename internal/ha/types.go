package ha

import "time"

// HVAC modes understood by climate.set_hvac_mode.
const (
	HVACModeHeat = "heat"
	HVACModeOff  = "off"
)

// State is the body of GET /api/states/{entity_id} for a climate entity.
type State struct {
	EntityID    string     `json:"entity_id"`
	State       string     `json:"state"`
	Attributes  Attributes `json:"attributes"`
	LastChanged time.Time  `json:"last_changed"`
	LastUpdated time.Time  `json:"last_updated"`
}

// Attributes holds the climate attributes this service reads.
type Attributes struct {
	HVACModes          []string `json:"hvac_modes,omitempty"`
	MinTemp            float64  `json:"min_temp,omitempty"`
	MaxTemp            float64  `json:"max_temp,omitempty"`
	CurrentTemperature float64  `json:"current_temperature"`
	Temperature        *float64 `json:"temperature,omitempty"`
	FriendlyName       string   `json:"friendly_name,omitempty"`
}

type setHVACModeRequest struct {
	EntityID string `json:"entity_id"`
	HVACMode string `json:"hvac_mode"`
}

type setTemperatureRequest struct {
	EntityID    string  `json:"entity_id"`
	Temperature float64 `json:"temperature"`
}
