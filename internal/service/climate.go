package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"heating_scheduler/internal/climate"
	"heating_scheduler/internal/logger"
	"heating_scheduler/internal/models"
	"heating_scheduler/internal/repository"
)

const (
	MinTemperatureC = 5.0
	MaxTemperatureC = 30.0
)

var (
	ErrInvalidTemperature = fmt.Errorf("invalid temperature: must be between %.0f and %.0f °C", MinTemperatureC, MaxTemperatureC)
	// ErrDevice wraps failures reported by the device or its transport.
	ErrDevice = errors.New("device error")
)

type ClimateService struct {
	registry *climate.Registry
	events   repository.EventRepo
	log      *logger.Logger
}

func NewClimateService(registry *climate.Registry, events repository.EventRepo, log *logger.Logger) *ClimateService {
	if log == nil {
		log = logger.Nop()
	}
	return &ClimateService{registry: registry, events: events, log: log}
}

// SetTemperature changes the set point of one entity. It returns
// climate.ErrEntityNotFound, climate.ErrUnsupported, ErrInvalidTemperature or
// an error wrapping ErrDevice.
func (s *ClimateService) SetTemperature(ctx context.Context, entityID string, celsius float64) error {
	if math.IsNaN(celsius) || celsius < MinTemperatureC || celsius > MaxTemperatureC {
		return ErrInvalidTemperature
	}
	e, err := s.registry.Get(entityID)
	if err != nil {
		return err
	}
	setter, ok := e.(climate.TemperatureSetter)
	if !ok {
		return climate.ErrUnsupported
	}
	if err := setter.SetTemperature(ctx, celsius); err != nil {
		s.log.Warnw("set_temperature_failed", "entity_id", entityID, "err", err)
		return fmt.Errorf("%w: %v", ErrDevice, err)
	}

	if s.events != nil {
		if err := s.events.Append(ctx, models.HeatingEvent{
			Type:        models.EventTemperature,
			EntityID:    entityID,
			Description: fmt.Sprintf("Target temperature set to %.1f °C", celsius),
			Metadata:    map[string]any{"temperature": celsius},
		}); err != nil {
			s.log.Warnw("event_append_failed", "type", models.EventTemperature, "err", err)
		}
	}
	return nil
}
