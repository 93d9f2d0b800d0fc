package service

import (
	"context"
	"time"

	"heating_scheduler/internal/climate"
	"heating_scheduler/internal/clock"
	"heating_scheduler/internal/logger"
	"heating_scheduler/internal/models"
	"heating_scheduler/internal/repository"
)

const DefaultBoostDuration = 30 * time.Minute

// BoostResult describes an armed boost.
type BoostResult struct {
	Boost    models.BoostInfo `json:"boost"`
	Entities int              `json:"entities"`
}

type BoostService struct {
	registry *climate.Registry
	events   repository.EventRepo
	clock    clock.Clock
	duration time.Duration
	log      *logger.Logger
}

func NewBoostService(registry *climate.Registry, events repository.EventRepo, c clock.Clock, d time.Duration, log *logger.Logger) *BoostService {
	if d <= 0 {
		d = DefaultBoostDuration
	}
	if log == nil {
		log = logger.Nop()
	}
	return &BoostService{registry: registry, events: events, clock: c, duration: d, log: log}
}

// BoostAll arms [now, now+duration] on every entity. The reconciler picks it
// up on its next tick.
func (s *BoostService) BoostAll(ctx context.Context) (BoostResult, error) {
	if err := ctx.Err(); err != nil {
		return BoostResult{}, err
	}
	b := climate.NewBoost(s.clock.Now(), s.duration)
	n := s.registry.SetBoostAll(b)

	s.appendEvent(ctx, models.HeatingEvent{
		OccurredAt:  *b.BoostStart,
		Type:        models.EventBoost,
		Description: "Boost armed on all entities",
		Metadata: map[string]any{
			"until":    b.BoostEnd.UTC().Format(time.RFC3339),
			"entities": n,
		},
	})
	return BoostResult{Boost: b, Entities: n}, nil
}

// ClearBoost disarms the boost on every entity.
func (s *BoostService) ClearBoost(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	n := s.registry.SetBoostAll(models.BoostInfo{})
	s.appendEvent(ctx, models.HeatingEvent{
		OccurredAt:  s.clock.Now(),
		Type:        models.EventBoostClear,
		Description: "Boost cleared on all entities",
		Metadata:    map[string]any{"entities": n},
	})
	return n, nil
}

func (s *BoostService) appendEvent(ctx context.Context, e models.HeatingEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.Append(ctx, e); err != nil {
		s.log.Warnw("event_append_failed", "type", e.Type, "err", err)
	}
}
