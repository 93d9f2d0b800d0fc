package climate

import (
	"time"

	"heating_scheduler/internal/models"
)

// DesiredStateForBoost is ON only while b is armed and now lies within
// [BoostStart, BoostEnd], both bounds inclusive. An expired boost is not
// cleared here; it simply evaluates to OFF.
func DesiredStateForBoost(b models.BoostInfo, now time.Time) models.HeatingState {
	if !b.Boosted || b.BoostStart == nil || b.BoostEnd == nil {
		return models.HeatingOff
	}
	if now.Before(*b.BoostStart) || now.After(*b.BoostEnd) {
		return models.HeatingOff
	}
	return models.HeatingOn
}

// NewBoost arms a boost window of length d starting at now.
func NewBoost(now time.Time, d time.Duration) models.BoostInfo {
	start := now
	end := now.Add(d)
	return models.BoostInfo{Boosted: true, BoostStart: &start, BoostEnd: &end}
}
