package events

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// Record is one row of event_log. Data is the encoded Event.
type Record struct {
	Seq       int64           `json:"seq"`
	Type      string          `json:"type"`
	Key       string          `json:"key"`
	Data      json.RawMessage `json:"data"`
	CreatedAt int64           `json:"createdAt"`
}

// LogRepo appends events to the event_log table.
type LogRepo struct{ db *sql.DB }

func NewLogRepo(db *sql.DB) *LogRepo { return &LogRepo{db: db} }

func (r *LogRepo) Publish(ctx context.Context, e Event) error {
	e = stamp(e)
	data, err := encode(e)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO event_log (typ, key, data, created_at) VALUES ($1,$2,$3,$4)`,
		e.Type, e.Key, string(data), e.CreatedAt)
	if err != nil {
		return fmt.Errorf("event log append: %w", err)
	}
	return nil
}

// Since returns up to limit records with seq > after, oldest first.
func (r *LogRepo) Since(ctx context.Context, after int64, limit int) ([]Record, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT seq, typ, key, data, created_at FROM event_log WHERE seq > $1 ORDER BY seq LIMIT $2`,
		after, limit)
	if err != nil {
		return nil, fmt.Errorf("event log read: %w", err)
	}
	defer rows.Close()
	out := []Record{}
	for rows.Next() {
		var (
			rec  Record
			data string
		)
		if err := rows.Scan(&rec.Seq, &rec.Type, &rec.Key, &data, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("event log read: %w", err)
		}
		rec.Data = json.RawMessage(data)
		out = append(out, rec)
	}
	return out, rows.Err()
}
