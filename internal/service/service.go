package service

import (
	"context"
	"time"

	"heating_scheduler/internal/climate"
	"heating_scheduler/internal/clock"
	"heating_scheduler/internal/logger"
	"heating_scheduler/internal/models"
	"heating_scheduler/internal/mqtt"
	"heating_scheduler/internal/repository"
	"heating_scheduler/internal/schedule"
)

// Scheduler guards the process-wide schedule.
type Scheduler interface {
	GetSchedule() *schedule.Schedule
	AddEntry(ctx context.Context, p EntryParams) (*schedule.Schedule, error)
	DeleteEntry(ctx context.Context, id string) (*schedule.Schedule, error)
	CurrentState(now time.Time) models.HeatingState
	ActiveEntry(now time.Time) (schedule.Entry, bool)
}

// Boost arms or clears the manual override on every tracked entity.
type Boost interface {
	BoostAll(ctx context.Context) (BoostResult, error)
	ClearBoost(ctx context.Context) (int, error)
}

// Monitoring exposes read-only entity status and the last reconcile outcome.
type Monitoring interface {
	ListEntities(ctx context.Context) ([]models.EntityStatus, error)
	LastReport() (ReconcileReport, bool)
}

// Climate exposes direct device operations outside the reconcile loop.
type Climate interface {
	SetTemperature(ctx context.Context, entityID string, celsius float64) error
}

// EventLog exposes append-only logs with filtering access.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.HeatingEvent, error)
}

// Reconciler runs the background loop that drives devices toward the
// schedule. Stop via context cancellation in main() for graceful shutdown.
type Reconciler interface {
	Run(ctx context.Context, tick time.Duration)
	Tick(ctx context.Context) ReconcileReport
}

type Service struct {
	Scheduler
	Boost
	Monitoring
	Climate
	EventLog
	Reconciler
}

// Deps are the shared handles built once in main and threaded into every
// service.
type Deps struct {
	Schedule      *schedule.Schedule
	Registry      *climate.Registry
	Clock         clock.Clock
	Location      *time.Location
	BoostDuration time.Duration
	Publisher     mqtt.Publisher
	Log           *logger.Logger
}

func (d *Deps) withDefaults() {
	if d.Clock == nil {
		d.Clock = clock.NewRealClock()
	}
	if d.Location == nil {
		d.Location = time.Local
	}
	if d.BoostDuration <= 0 {
		d.BoostDuration = DefaultBoostDuration
	}
	if d.Publisher == nil {
		d.Publisher = mqtt.NoopPublisher{}
	}
	if d.Log == nil {
		d.Log = logger.Nop()
	}
}

// NewService wires the repository layer and shared handles into concrete
// services.
func NewService(repos *repository.Repository, d Deps) *Service {
	d.withDefaults()
	reports := &reportStore{}
	sched := NewScheduleService(d.Schedule, repos.Schedules, repos.EventRepo, d.Location, d.Log)
	return &Service{
		Scheduler:  sched,
		Boost:      NewBoostService(d.Registry, repos.EventRepo, d.Clock, d.BoostDuration, d.Log),
		Monitoring: NewMonitoringService(d.Registry, repos.ReadingRepo, reports),
		Climate:    NewClimateService(d.Registry, repos.EventRepo, d.Log),
		EventLog:   NewEventLogService(repos.EventRepo),
		Reconciler: NewReconcilerService(ReconcilerDeps{
			Schedule:  sched,
			Registry:  d.Registry,
			Readings:  repos.ReadingRepo,
			Events:    repos.EventRepo,
			Publisher: d.Publisher,
			Clock:     d.Clock,
			Log:       d.Log,
			Reports:   reports,
		}),
	}
}
