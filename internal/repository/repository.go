package repository

import (
	"context"
	"database/sql"
	"time"

	"heating_scheduler/internal/models"
	"heating_scheduler/internal/schedule"
)

// EventFilter narrows a List call. Zero values mean "no constraint".
type EventFilter struct {
	From     time.Time
	To       time.Time
	Type     string
	EntityID string
	Limit    int
}

type EventRepo interface {
	Append(ctx context.Context, e models.HeatingEvent) error
	List(ctx context.Context, f EventFilter) ([]models.HeatingEvent, error)
}

type ReadingRepo interface {
	Save(ctx context.Context, r models.ClimateReading) error
	List(ctx context.Context) ([]models.ClimateReading, error)
}

type ScheduleStore interface {
	Load() (*schedule.Schedule, error)
	Save(s *schedule.Schedule) error
}

type Repository struct {
	EventRepo   EventRepo
	ReadingRepo ReadingRepo
	Schedules   ScheduleStore
}

func NewRepository(db *sql.DB, schedulePath string) *Repository {
	return &Repository{
		EventRepo:   NewEventSQLite(db),
		ReadingRepo: NewReadingSQLite(db),
		Schedules:   NewScheduleFile(schedulePath),
	}
}
