package repository

import (
	"context"
	"database/sql"
	"slices"
	"strings"
	"time"

	"heating_scheduler/internal/models"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
)

const insertEventSQL = `
		INSERT INTO heating_events (id, occurred_at, type, entity_id, message, meta)
		VALUES (?, ?, ?, ?, ?, ?)
	`

type EventSQLite struct {
	db *sql.DB
}

func NewEventSQLite(db *sql.DB) *EventSQLite { return &EventSQLite{db: db} }

// Append inserts a new event. If EventID or OccurredAt are empty, they're set.
func (r *EventSQLite) Append(ctx context.Context, e models.HeatingEvent) error {
	if e.EventID == "" {
		e.EventID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	} else {
		e.OccurredAt = e.OccurredAt.UTC()
	}

	var metaPtr *string
	if e.Metadata != nil {
		if b, err := json.Marshal(e.Metadata); err == nil {
			s := string(b)
			metaPtr = &s
		}
	}

	var entityPtr *string
	if e.EntityID != "" {
		entityPtr = &e.EntityID
	}

	_, err := r.db.ExecContext(ctx, insertEventSQL,
		e.EventID,
		e.OccurredAt,
		strings.ToUpper(strings.TrimSpace(e.Type)),
		entityPtr,
		e.Description,
		metaPtr,
	)
	return err
}

// List returns events filtered by [From, To] (inclusive), type and entity,
// ordered oldest first. With a Limit only the newest Limit events are kept.
func (r *EventSQLite) List(ctx context.Context, f EventFilter) ([]models.HeatingEvent, error) {
	var (
		conds []string
		args  []any
	)

	if !f.From.IsZero() {
		conds = append(conds, "occurred_at >= ?")
		args = append(args, f.From.UTC())
	}
	if !f.To.IsZero() {
		conds = append(conds, "occurred_at <= ?")
		args = append(args, f.To.UTC())
	}
	if typ := strings.ToUpper(strings.TrimSpace(f.Type)); typ != "" {
		conds = append(conds, "type = ?")
		args = append(args, typ)
	}
	if id := strings.TrimSpace(f.EntityID); id != "" {
		conds = append(conds, "entity_id = ?")
		args = append(args, id)
	}

	q := `SELECT id, occurred_at, type, entity_id, message, meta FROM heating_events`
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	if f.Limit > 0 {
		q += " ORDER BY occurred_at DESC LIMIT ?"
		args = append(args, f.Limit)
	} else {
		q += " ORDER BY occurred_at ASC"
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.HeatingEvent, 0, 64)
	for rows.Next() {
		var ev models.HeatingEvent
		var entity, metaStr sql.NullString
		if err := rows.Scan(&ev.EventID, &ev.OccurredAt, &ev.Type, &entity, &ev.Description, &metaStr); err != nil {
			return nil, err
		}
		ev.OccurredAt = ev.OccurredAt.UTC()
		ev.EntityID = entity.String

		if metaStr.Valid && metaStr.String != "" {
			var v any
			if err := json.Unmarshal([]byte(metaStr.String), &v); err == nil {
				ev.Metadata = v
			} else {
				ev.Metadata = metaStr.String // keep raw if malformed
			}
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if f.Limit > 0 {
		slices.Reverse(out)
	}
	return out, nil
}
