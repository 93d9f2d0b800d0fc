package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"heating_scheduler/internal/models"
	"heating_scheduler/internal/repository"
)

type EventLogService struct {
	eventRepo repository.EventRepo
}

func NewEventLogService(eventRepo repository.EventRepo) *EventLogService {
	return &EventLogService{eventRepo: eventRepo}
}

var (
	errInvalidTimeRange = errors.New("invalid time range: From must be <= To")
	errInvalidLimit     = errors.New("invalid limit: must be >= 0")
)

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

// normalizeEventType trims spaces and uppercases the event type filter.
func normalizeEventType(s string) string {
	return strings.TrimSpace(strings.ToUpper(s))
}

// normalizeAndValidateFilter prepares query parameters and validates them.
func normalizeAndValidateFilter(f LogFilter) (repository.EventFilter, error) {
	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)

	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return repository.EventFilter{}, errInvalidTimeRange
	}
	if f.Limit < 0 {
		return repository.EventFilter{}, errInvalidLimit
	}

	return repository.EventFilter{
		From:     from,
		To:       to,
		Type:     normalizeEventType(f.Type),
		EntityID: strings.TrimSpace(f.EntityID),
		Limit:    f.Limit,
	}, nil
}

func (s *EventLogService) List(ctx context.Context, f LogFilter) ([]models.HeatingEvent, error) {
	rf, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	return s.eventRepo.List(ctx, rf)
}
