package models

import "time"

// HeatingState is the on/off state of a heating device, desired or observed.
type HeatingState string

const (
	HeatingOff HeatingState = "OFF"
	HeatingOn  HeatingState = "ON"
)

// Valid reports whether s is one of the known states.
func (s HeatingState) Valid() bool {
	return s == HeatingOff || s == HeatingOn
}

// ClimateInfo is the last observed state of a climate device.
type ClimateInfo struct {
	CurrentTemperature float64      `json:"current_temperature"`
	State              HeatingState `json:"state"`
}

// BoostInfo is a per-entity manual override window. Bounds are absolute
// instants and both are inclusive.
type BoostInfo struct {
	Boosted    bool       `json:"boosted"`
	BoostStart *time.Time `json:"boost_start,omitempty"`
	BoostEnd   *time.Time `json:"boost_end,omitempty"`
}
