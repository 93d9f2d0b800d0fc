package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"heating_scheduler/internal/climate"
	"heating_scheduler/internal/clock"
	"heating_scheduler/internal/logger"
	"heating_scheduler/internal/models"
	"heating_scheduler/internal/mqtt"
	"heating_scheduler/internal/repository"
	"heating_scheduler/internal/schedule"
)

// Action is the command the reconciler issues to an entity.
type Action string

const (
	NoChange Action = "NO_CHANGE"
	TurnOn   Action = "TURN_ON"
	TurnOff  Action = "TURN_OFF"
)

// CalculateAction compares the observed state with the desired one. An
// unknown observed state always yields a command.
func CalculateAction(observed *models.ClimateInfo, desired models.HeatingState) Action {
	if observed != nil && observed.State == desired {
		return NoChange
	}
	if desired == models.HeatingOn {
		return TurnOn
	}
	return TurnOff
}

// FinalDesired ORs the scheduled and boost states: boost can force heating
// on but never off.
func FinalDesired(scheduled, boost models.HeatingState) models.HeatingState {
	if scheduled == models.HeatingOn || boost == models.HeatingOn {
		return models.HeatingOn
	}
	return models.HeatingOff
}

// ReconcileReport is the outcome of one tick.
type ReconcileReport struct {
	At             time.Time           `json:"at"`
	ScheduledState models.HeatingState `json:"scheduled_state"`
	ActiveEntry    string              `json:"active_entry,omitempty"`
	Entities       []EntityReport      `json:"entities"`
}

type EntityReport struct {
	EntityID   string              `json:"entity_id"`
	Observed   *models.ClimateInfo `json:"observed,omitempty"`
	BoostState models.HeatingState `json:"boost_state,omitempty"`
	Desired    models.HeatingState `json:"desired,omitempty"`
	Action     Action              `json:"action,omitempty"`
	Error      string              `json:"error,omitempty"`
}

// scheduleSource is the read side of the schedule used by the loop.
type scheduleSource interface {
	CurrentState(now time.Time) models.HeatingState
	ActiveEntry(now time.Time) (schedule.Entry, bool)
}

type ReconcilerDeps struct {
	Schedule  scheduleSource
	Registry  *climate.Registry
	Readings  repository.ReadingRepo
	Events    repository.EventRepo
	Publisher mqtt.Publisher
	Clock     clock.Clock
	Log       *logger.Logger
	Reports   *reportStore
}

type ReconcilerService struct {
	schedule  scheduleSource
	registry  *climate.Registry
	readings  repository.ReadingRepo
	events    repository.EventRepo
	publisher mqtt.Publisher
	clock     clock.Clock
	log       *logger.Logger
	reports   *reportStore

	// failing tracks entities whose last tick failed, so a dead device logs
	// one DEVICE_ERROR event per outage rather than one per tick.
	failMu  sync.Mutex
	failing map[string]bool
}

func NewReconcilerService(d ReconcilerDeps) *ReconcilerService {
	if d.Clock == nil {
		d.Clock = clock.NewRealClock()
	}
	if d.Publisher == nil {
		d.Publisher = mqtt.NoopPublisher{}
	}
	if d.Log == nil {
		d.Log = logger.Nop()
	}
	if d.Reports == nil {
		d.Reports = &reportStore{}
	}
	return &ReconcilerService{
		schedule:  d.Schedule,
		registry:  d.Registry,
		readings:  d.Readings,
		events:    d.Events,
		publisher: d.Publisher,
		clock:     d.Clock,
		log:       d.Log,
		reports:   d.Reports,
		failing:   make(map[string]bool),
	}
}

// Run reconciles once immediately, then every tick until ctx is canceled.
func (s *ReconcilerService) Run(ctx context.Context, tick time.Duration) {
	s.Tick(ctx)

	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.Tick(ctx)
		}
	}
}

// Tick runs one reconcile pass over every entity. Entities are handled
// concurrently on clones; only their observed state is written back.
func (s *ReconcilerService) Tick(ctx context.Context) ReconcileReport {
	now := s.clock.Now()
	scheduled := s.schedule.CurrentState(now)
	report := ReconcileReport{At: now.UTC(), ScheduledState: scheduled}
	if e, ok := s.schedule.ActiveEntry(now); ok {
		report.ActiveEntry = e.Name
	}

	entities := s.registry.Snapshot()
	report.Entities = make([]EntityReport, len(entities))
	fetched := make([]bool, len(entities))

	var wg sync.WaitGroup
	for i, e := range entities {
		wg.Add(1)
		go func(i int, e climate.Entity) {
			defer wg.Done()
			report.Entities[i], fetched[i] = s.reconcileEntity(ctx, e, scheduled, now)
		}(i, e)
	}
	wg.Wait()

	var observed []climate.Entity
	for i, e := range entities {
		if fetched[i] {
			observed = append(observed, e)
		}
	}
	s.registry.WriteBack(observed...)
	s.saveReadings(ctx, observed, now)

	s.reports.set(report)
	s.log.Debugw("reconcile_tick",
		"scheduled", scheduled,
		"active_entry", report.ActiveEntry,
		"entities", len(entities),
		"observed", len(observed),
	)
	return report
}

// reconcileEntity drives one entity clone. The bool reports whether the fetch
// succeeded and the clone carries fresh observed state.
func (s *ReconcilerService) reconcileEntity(ctx context.Context, e climate.Entity, scheduled models.HeatingState, now time.Time) (EntityReport, bool) {
	id := e.EntityID()
	rep := EntityReport{EntityID: id}

	if err := e.FetchAndUpdateState(ctx); err != nil {
		s.log.Warnw("entity_fetch_failed", "entity_id", id, "err", err)
		s.deviceFailed(ctx, id, now, "fetch", err)
		rep.Error = fmt.Sprintf("fetch: %v", err)
		return rep, false
	}

	observed := e.CachedState()
	rep.Observed = observed
	rep.BoostState = climate.DesiredStateForBoost(e.Boost(), now)
	rep.Desired = FinalDesired(scheduled, rep.BoostState)
	rep.Action = CalculateAction(observed, rep.Desired)

	var err error
	switch rep.Action {
	case TurnOn:
		err = e.TurnOn(ctx)
	case TurnOff:
		err = e.TurnOff(ctx)
	default:
		s.deviceRecovered(id)
		return rep, true
	}
	if err != nil {
		s.log.Warnw("entity_command_failed", "entity_id", id, "action", rep.Action, "err", err)
		s.deviceFailed(ctx, id, now, string(rep.Action), err)
		rep.Error = fmt.Sprintf("%s: %v", rep.Action, err)
		return rep, true
	}
	s.deviceRecovered(id)

	s.log.Infow("entity_action_applied",
		"entity_id", id,
		"action", rep.Action,
		"scheduled", scheduled,
		"boost", rep.BoostState,
	)
	s.appendEvent(ctx, models.HeatingEvent{
		OccurredAt:  now,
		Type:        string(rep.Action),
		EntityID:    id,
		Description: fmt.Sprintf("Heating turned %s", rep.Desired),
		Metadata: map[string]any{
			"scheduled": scheduled,
			"boost":     rep.BoostState,
		},
	})
	if err := s.publisher.Publish(mqtt.Action{
		Timestamp: now,
		EntityID:  id,
		Action:    string(rep.Action),
		Desired:   string(rep.Desired),
	}); err != nil {
		s.log.Warnw("mqtt_publish_failed", "entity_id", id, "err", err)
	}
	return rep, true
}

func (s *ReconcilerService) deviceFailed(ctx context.Context, id string, now time.Time, op string, err error) {
	s.failMu.Lock()
	already := s.failing[id]
	s.failing[id] = true
	s.failMu.Unlock()
	if already {
		return
	}
	s.appendEvent(ctx, models.HeatingEvent{
		OccurredAt:  now,
		Type:        models.EventDeviceError,
		EntityID:    id,
		Description: fmt.Sprintf("%s failed: %v", op, err),
		Metadata:    map[string]any{"operation": op},
	})
}

func (s *ReconcilerService) deviceRecovered(id string) {
	s.failMu.Lock()
	delete(s.failing, id)
	s.failMu.Unlock()
}

func (s *ReconcilerService) saveReadings(ctx context.Context, entities []climate.Entity, now time.Time) {
	if s.readings == nil {
		return
	}
	for _, e := range entities {
		info := e.CachedState()
		if info == nil {
			continue
		}
		if err := s.readings.Save(ctx, models.ClimateReading{
			EntityID:     e.EntityID(),
			CurrentTempC: info.CurrentTemperature,
			State:        info.State,
			UpdatedAt:    now,
		}); err != nil {
			s.log.Warnw("reading_save_failed", "entity_id", e.EntityID(), "err", err)
		}
	}
}

func (s *ReconcilerService) appendEvent(ctx context.Context, e models.HeatingEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.Append(ctx, e); err != nil {
		s.log.Warnw("event_append_failed", "type", e.Type, "err", err)
	}
}
