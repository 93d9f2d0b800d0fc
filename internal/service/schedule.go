package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"heating_scheduler/internal/logger"
	"heating_scheduler/internal/models"
	"heating_scheduler/internal/repository"
	"heating_scheduler/internal/schedule"
)

// DefaultScheduleName names the schedule created when none is stored.
const DefaultScheduleName = "Default Heating Schedule"

// ErrPersist means the in-memory schedule changed but saving it failed. The
// change is not rolled back.
var ErrPersist = errors.New("schedule updated but not saved")

type ScheduleService struct {
	mu      sync.RWMutex
	sched   *schedule.Schedule
	version uint64

	saveMu sync.Mutex
	saved  uint64

	store  repository.ScheduleStore
	events repository.EventRepo
	loc    *time.Location
	log    *logger.Logger
}

func NewScheduleService(s *schedule.Schedule, store repository.ScheduleStore, events repository.EventRepo, loc *time.Location, log *logger.Logger) *ScheduleService {
	if loc == nil {
		loc = time.Local
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ScheduleService{sched: s, store: store, events: events, loc: loc, log: log}
}

// LoadOrCreateSchedule loads the stored schedule or, if there is none, saves
// and returns a fresh one named name. created reports the latter.
func LoadOrCreateSchedule(store repository.ScheduleStore, name string) (s *schedule.Schedule, created bool, err error) {
	s, err = store.Load()
	if err == nil {
		return s, false, nil
	}
	if !errors.Is(err, repository.ErrScheduleNotFound) {
		return nil, false, err
	}
	s = schedule.New(name)
	if err := store.Save(s); err != nil {
		return nil, false, fmt.Errorf("save default schedule: %w", err)
	}
	return s, true, nil
}

// GetSchedule returns a copy of the current schedule.
func (s *ScheduleService) GetSchedule() *schedule.Schedule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sched.Clone()
}

// AddEntry inserts a new entry and saves. Validation errors leave the
// schedule untouched; on ErrPersist the returned schedule is the mutated one.
func (s *ScheduleService) AddEntry(ctx context.Context, p EntryParams) (*schedule.Schedule, error) {
	entry := schedule.NewEntry(p.Name, schedule.NewTimePeriod(p.Start, p.End), p.HeatingState)

	s.mu.Lock()
	if err := s.sched.AddEntry(entry); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	snap, v := s.snapshotLocked()
	s.mu.Unlock()

	s.appendEvent(ctx, models.HeatingEvent{
		Type:        models.EventScheduleAdd,
		Description: fmt.Sprintf("Entry %q %s -> %s", entry.Name, entry.TimePeriod, entry.HeatingState),
		Metadata: map[string]any{
			"entry_id": entry.ID,
			"start":    entry.TimePeriod.Start.String(),
			"end":      entry.TimePeriod.End.String(),
			"state":    entry.HeatingState,
		},
	})
	return snap, s.persist(v, snap)
}

// DeleteEntry removes an entry, letting its neighbour absorb the freed time.
func (s *ScheduleService) DeleteEntry(ctx context.Context, id string) (*schedule.Schedule, error) {
	s.mu.Lock()
	removed, _ := s.sched.Entry(id)
	if err := s.sched.DeleteEntry(id); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	snap, v := s.snapshotLocked()
	s.mu.Unlock()

	s.appendEvent(ctx, models.HeatingEvent{
		Type:        models.EventScheduleDelete,
		Description: fmt.Sprintf("Entry %q %s removed", removed.Name, removed.TimePeriod),
		Metadata:    map[string]any{"entry_id": id},
	})
	return snap, s.persist(v, snap)
}

// CurrentState is the scheduled state at now, read in the schedule's zone.
func (s *ScheduleService) CurrentState(now time.Time) models.HeatingState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sched.CurrentState(now.In(s.loc))
}

func (s *ScheduleService) ActiveEntry(now time.Time) (schedule.Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sched.ActiveEntry(now.In(s.loc))
}

// snapshotLocked bumps the version. Caller holds mu for writing.
func (s *ScheduleService) snapshotLocked() (*schedule.Schedule, uint64) {
	s.version++
	return s.sched.Clone(), s.version
}

// persist saves snap unless a newer version has already been written.
func (s *ScheduleService) persist(v uint64, snap *schedule.Schedule) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	if v <= s.saved {
		return nil
	}
	if err := s.store.Save(snap); err != nil {
		s.log.Errorw("schedule_save_failed", "err", err, "version", v)
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	s.saved = v
	return nil
}

func (s *ScheduleService) appendEvent(ctx context.Context, e models.HeatingEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.Append(ctx, e); err != nil {
		s.log.Warnw("event_append_failed", "type", e.Type, "err", err)
	}
}
