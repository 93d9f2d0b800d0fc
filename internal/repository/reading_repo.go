package repository

import (
	"context"
	"database/sql"
	"time"

	"heating_scheduler/internal/models"
)

// ReadingSQLite keeps the last successful observation per entity so the API
// has something to show before the first reconcile after a restart.
type ReadingSQLite struct {
	db *sql.DB
}

func NewReadingSQLite(db *sql.DB) *ReadingSQLite {
	return &ReadingSQLite{db: db}
}

const (
	upsertReadingSQL = `
		INSERT INTO climate_readings (entity_id, temp_c, state, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(entity_id) DO UPDATE SET
			temp_c=excluded.temp_c,
			state=excluded.state,
			updated_at=excluded.updated_at
	`

	selectReadingsSQL = `
		SELECT entity_id, temp_c, state, updated_at
		FROM climate_readings ORDER BY entity_id
	`
)

// Save upserts the reading for r.EntityID.
func (r *ReadingSQLite) Save(ctx context.Context, reading models.ClimateReading) error {
	ts := reading.UpdatedAt
	if ts.IsZero() {
		ts = time.Now().UTC()
	} else {
		ts = ts.UTC()
	}
	_, err := r.db.ExecContext(ctx, upsertReadingSQL,
		reading.EntityID,
		reading.CurrentTempC,
		string(reading.State),
		ts,
	)
	return err
}

// List returns every stored reading ordered by entity id.
func (r *ReadingSQLite) List(ctx context.Context) ([]models.ClimateReading, error) {
	rows, err := r.db.QueryContext(ctx, selectReadingsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.ClimateReading
	for rows.Next() {
		var rd models.ClimateReading
		var state string
		if err := rows.Scan(&rd.EntityID, &rd.CurrentTempC, &state, &rd.UpdatedAt); err != nil {
			return nil, err
		}
		rd.State = models.HeatingState(state)
		rd.UpdatedAt = rd.UpdatedAt.UTC()
		out = append(out, rd)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
