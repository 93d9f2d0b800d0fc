package handlers

import (
	"context"
	"sync"
	"time"

	"heating_scheduler/internal/models"
	"heating_scheduler/internal/schedule"
	"heating_scheduler/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockScheduler struct {
	sched     *schedule.Schedule
	addResp   *schedule.Schedule
	addErr    error
	delResp   *schedule.Schedule
	delErr    error
	state     models.HeatingState
	lastAdd   service.EntryParams
	lastDelID string
	addCalls  int
}

func (m *mockScheduler) GetSchedule() *schedule.Schedule { return m.sched }
func (m *mockScheduler) AddEntry(ctx context.Context, p service.EntryParams) (*schedule.Schedule, error) {
	m.addCalls++
	m.lastAdd = p
	return m.addResp, m.addErr
}
func (m *mockScheduler) DeleteEntry(ctx context.Context, id string) (*schedule.Schedule, error) {
	m.lastDelID = id
	return m.delResp, m.delErr
}
func (m *mockScheduler) CurrentState(now time.Time) models.HeatingState { return m.state }
func (m *mockScheduler) ActiveEntry(now time.Time) (schedule.Entry, bool) {
	return schedule.Entry{}, false
}

type mockBoost struct {
	result     service.BoostResult
	boostErr   error
	cleared    int
	clearErr   error
	boostCalls int
	clearCalls int
}

func (m *mockBoost) BoostAll(ctx context.Context) (service.BoostResult, error) {
	m.boostCalls++
	return m.result, m.boostErr
}
func (m *mockBoost) ClearBoost(ctx context.Context) (int, error) {
	m.clearCalls++
	return m.cleared, m.clearErr
}

type mockMonitoring struct {
	mu       sync.Mutex
	entities []models.EntityStatus
	err      error
	report   service.ReconcileReport
	hasRep   bool
}

func (m *mockMonitoring) ListEntities(ctx context.Context) ([]models.EntityStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entities, m.err
}
func (m *mockMonitoring) LastReport() (service.ReconcileReport, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.report, m.hasRep
}

type mockClimate struct {
	err          error
	lastEntityID string
	lastTemp     float64
	calls        int
}

func (m *mockClimate) SetTemperature(ctx context.Context, entityID string, celsius float64) error {
	m.calls++
	m.lastEntityID = entityID
	m.lastTemp = celsius
	return m.err
}

type mockEventLog struct {
	resp       []models.HeatingEvent
	err        error
	lastFilter service.LogFilter
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.HeatingEvent, error) {
	m.lastFilter = f
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}
