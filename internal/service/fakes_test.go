package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"heating_scheduler/internal/climate"
	"heating_scheduler/internal/models"
	"heating_scheduler/internal/repository"
	"heating_scheduler/internal/schedule"
)

// fakeEventRepo records appended events and the last List filter.
type fakeEventRepo struct {
	mu        sync.Mutex
	appended  []models.HeatingEvent
	appendErr error

	gotFilter repository.EventFilter
	events    []models.HeatingEvent
	err       error
	calls     int
}

func (f *fakeEventRepo) Append(_ context.Context, e models.HeatingEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.appendErr != nil {
		return f.appendErr
	}
	f.appended = append(f.appended, e)
	return nil
}

func (f *fakeEventRepo) List(_ context.Context, rf repository.EventFilter) ([]models.HeatingEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.gotFilter = rf
	return f.events, f.err
}

func (f *fakeEventRepo) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.appended))
	for i, e := range f.appended {
		out[i] = e.Type
	}
	return out
}

type fakeReadingRepo struct {
	mu      sync.Mutex
	saved   []models.ClimateReading
	list    []models.ClimateReading
	saveErr error
	listErr error
}

func (f *fakeReadingRepo) Save(_ context.Context, r models.ClimateReading) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, r)
	return nil
}

func (f *fakeReadingRepo) List(context.Context) ([]models.ClimateReading, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.list, f.listErr
}

// fakeScheduleStore keeps the last saved schedule in memory.
type fakeScheduleStore struct {
	mu      sync.Mutex
	stored  *schedule.Schedule
	saves   int
	loadErr error
	saveErr error
}

func (f *fakeScheduleStore) Load() (*schedule.Schedule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	if f.stored == nil {
		return nil, repository.ErrScheduleNotFound
	}
	return f.stored.Clone(), nil
}

func (f *fakeScheduleStore) Save(s *schedule.Schedule) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves++
	f.stored = s.Clone()
	return nil
}

// fakeDevice is the shared backend behind fakeEntity clones.
type fakeDevice struct {
	mu       sync.Mutex
	state    models.HeatingState
	temp     float64
	fetchErr error
	cmdErr   error
	commands []string
	onFetch  func()
}

func (d *fakeDevice) Commands() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.commands...)
}

func (d *fakeDevice) set(fn func(d *fakeDevice)) {
	d.mu.Lock()
	fn(d)
	d.mu.Unlock()
}

type fakeEntity struct {
	id     string
	cached *models.ClimateInfo
	boost  models.BoostInfo
	dev    *fakeDevice
}

var _ climate.Entity = (*fakeEntity)(nil)

func newFakeEntity(id string, state models.HeatingState) (*fakeEntity, *fakeDevice) {
	dev := &fakeDevice{state: state, temp: 18}
	return &fakeEntity{id: id, dev: dev}, dev
}

func (e *fakeEntity) EntityID() string { return e.id }

func (e *fakeEntity) CachedState() *models.ClimateInfo {
	if e.cached == nil {
		return nil
	}
	c := *e.cached
	return &c
}

func (e *fakeEntity) UpdateCachedState(info *models.ClimateInfo) {
	if info == nil {
		e.cached = nil
		return
	}
	c := *info
	e.cached = &c
}

func (e *fakeEntity) Boost() models.BoostInfo     { return e.boost }
func (e *fakeEntity) SetBoost(b models.BoostInfo) { e.boost = b }

func (e *fakeEntity) FetchAndUpdateState(context.Context) error {
	e.dev.mu.Lock()
	hook := e.dev.onFetch
	err := e.dev.fetchErr
	info := models.ClimateInfo{CurrentTemperature: e.dev.temp, State: e.dev.state}
	e.dev.mu.Unlock()
	if hook != nil {
		hook()
	}
	if err != nil {
		return err
	}
	e.cached = &info
	return nil
}

func (e *fakeEntity) command(name string, state models.HeatingState) error {
	e.dev.mu.Lock()
	defer e.dev.mu.Unlock()
	e.dev.commands = append(e.dev.commands, name)
	if e.dev.cmdErr != nil {
		return e.dev.cmdErr
	}
	e.dev.state = state
	return nil
}

func (e *fakeEntity) TurnOn(context.Context) error  { return e.command("on", models.HeatingOn) }
func (e *fakeEntity) TurnOff(context.Context) error { return e.command("off", models.HeatingOff) }

func (e *fakeEntity) Clone() climate.Entity {
	c := *e
	c.cached = e.CachedState()
	return &c
}

// setpointEntity adds temperature control to fakeEntity.
type setpointEntity struct {
	*fakeEntity
	setpoint *float64
	err      error
}

func (e *setpointEntity) SetTemperature(_ context.Context, celsius float64) error {
	if e.err != nil {
		return e.err
	}
	*e.setpoint = celsius
	return nil
}

func (e *setpointEntity) Clone() climate.Entity {
	return &setpointEntity{fakeEntity: e.fakeEntity.Clone().(*fakeEntity), setpoint: e.setpoint, err: e.err}
}

var errBoom = errors.New("boom")

func at(h, m int) time.Time {
	return time.Date(2024, 1, 15, h, m, 0, 0, time.UTC)
}

func newFakeRepos() *repository.Repository {
	return &repository.Repository{
		EventRepo:   &fakeEventRepo{},
		ReadingRepo: &fakeReadingRepo{},
		Schedules:   &fakeScheduleStore{},
	}
}
