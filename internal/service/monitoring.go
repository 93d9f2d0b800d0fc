package service

import (
	"context"
	"sync"

	"heating_scheduler/internal/climate"
	"heating_scheduler/internal/models"
	"heating_scheduler/internal/repository"
)

// reportStore holds the outcome of the most recent reconcile tick.
type reportStore struct {
	mu     sync.RWMutex
	report ReconcileReport
	ok     bool
}

func (r *reportStore) set(rep ReconcileReport) {
	r.mu.Lock()
	r.report = rep
	r.ok = true
	r.mu.Unlock()
}

func (r *reportStore) get() (ReconcileReport, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.report, r.ok
}

type MonitoringService struct {
	registry *climate.Registry
	readings repository.ReadingRepo
	reports  *reportStore
}

func NewMonitoringService(registry *climate.Registry, readings repository.ReadingRepo, reports *reportStore) *MonitoringService {
	if reports == nil {
		reports = &reportStore{}
	}
	return &MonitoringService{registry: registry, readings: readings, reports: reports}
}

// ListEntities returns every tracked entity. Entities not yet observed by
// this process fall back to their last persisted reading, marked stale.
func (s *MonitoringService) ListEntities(ctx context.Context) ([]models.EntityStatus, error) {
	statuses := s.registry.Statuses()

	missing := false
	for _, st := range statuses {
		if st.Climate == nil {
			missing = true
			break
		}
	}
	if !missing || s.readings == nil {
		return statuses, nil
	}

	readings, err := s.readings.List(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.ClimateReading, len(readings))
	for _, r := range readings {
		byID[r.EntityID] = r
	}
	for i := range statuses {
		if statuses[i].Climate != nil {
			continue
		}
		r, ok := byID[statuses[i].EntityID]
		if !ok {
			continue
		}
		at := r.UpdatedAt
		statuses[i].Climate = &models.ClimateInfo{CurrentTemperature: r.CurrentTempC, State: r.State}
		statuses[i].Stale = true
		statuses[i].ReadingAt = &at
	}
	return statuses, nil
}

// LastReport returns the most recent reconcile report; false before the
// first tick.
func (s *MonitoringService) LastReport() (ReconcileReport, bool) {
	return s.reports.get()
}
