// Package climate defines the capability the reconciler drives for each
// heating device, the entity collection shared with the API, and the device
// implementations selected at startup.
package climate

import (
	"context"
	"errors"

	"heating_scheduler/internal/models"
)

var (
	ErrEntityNotFound = errors.New("climate entity not found")
	ErrUnsupported    = errors.New("operation not supported by climate entity")
)

// Entity is a tracked heating device. The record part (cached observed state
// and boost) is plain data; the device operations may block on I/O.
// Implementations are not safe for concurrent use; the Registry serialises
// access to live entities and hands out clones for I/O.
type Entity interface {
	EntityID() string
	CachedState() *models.ClimateInfo
	UpdateCachedState(info *models.ClimateInfo)
	Boost() models.BoostInfo
	SetBoost(b models.BoostInfo)

	// FetchAndUpdateState refreshes the cached state from the device.
	FetchAndUpdateState(ctx context.Context) error
	TurnOn(ctx context.Context) error
	TurnOff(ctx context.Context) error

	// Clone copies the record. The clone talks to the same device.
	Clone() Entity
}

// TemperatureSetter is implemented by entities whose target temperature can be
// changed.
type TemperatureSetter interface {
	SetTemperature(ctx context.Context, celsius float64) error
}

// record carries the per-entity data shared by all implementations.
type record struct {
	id     string
	cached *models.ClimateInfo
	boost  models.BoostInfo
}

func (r *record) EntityID() string { return r.id }

func (r *record) CachedState() *models.ClimateInfo {
	if r.cached == nil {
		return nil
	}
	info := *r.cached
	return &info
}

func (r *record) UpdateCachedState(info *models.ClimateInfo) {
	if info == nil {
		r.cached = nil
		return
	}
	c := *info
	r.cached = &c
}

func (r *record) Boost() models.BoostInfo { return r.boost }

func (r *record) SetBoost(b models.BoostInfo) { r.boost = b }

func (r record) clone() record {
	c := r
	c.cached = r.CachedState()
	return c
}
