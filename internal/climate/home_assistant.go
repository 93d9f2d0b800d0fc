package climate

import (
	"context"

	"heating_scheduler/internal/ha"
	"heating_scheduler/internal/models"
)

// haAPI is the part of the Home Assistant client an entity needs.
type haAPI interface {
	GetState(ctx context.Context, entityID string) (*ha.State, error)
	SetHVACMode(ctx context.Context, entityID, mode string) error
	SetTemperature(ctx context.Context, entityID string, temperature float64) error
}

// HomeAssistantEntity is a climate entity (typically a TRV) managed by Home
// Assistant. Request timeouts belong to the client's transport.
type HomeAssistantEntity struct {
	record
	client haAPI
}

var (
	_ Entity            = (*HomeAssistantEntity)(nil)
	_ TemperatureSetter = (*HomeAssistantEntity)(nil)
)

func NewHomeAssistantEntity(entityID string, client haAPI) *HomeAssistantEntity {
	return &HomeAssistantEntity{record: record{id: entityID}, client: client}
}

func (e *HomeAssistantEntity) FetchAndUpdateState(ctx context.Context) error {
	st, err := e.client.GetState(ctx, e.id)
	if err != nil {
		return err
	}
	state := models.HeatingOff
	if st.State == ha.HVACModeHeat {
		state = models.HeatingOn
	}
	e.cached = &models.ClimateInfo{
		CurrentTemperature: st.Attributes.CurrentTemperature,
		State:              state,
	}
	return nil
}

func (e *HomeAssistantEntity) TurnOn(ctx context.Context) error {
	return e.client.SetHVACMode(ctx, e.id, ha.HVACModeHeat)
}

func (e *HomeAssistantEntity) TurnOff(ctx context.Context) error {
	return e.client.SetHVACMode(ctx, e.id, ha.HVACModeOff)
}

func (e *HomeAssistantEntity) SetTemperature(ctx context.Context, celsius float64) error {
	return e.client.SetTemperature(ctx, e.id, celsius)
}

func (e *HomeAssistantEntity) Clone() Entity {
	return &HomeAssistantEntity{record: e.record.clone(), client: e.client}
}
