package trace

import (
	"context"
	"fmt"
)

// Events returns a session's recorded accesses in sequence order.
func (s *Store) Events(ctx context.Context, sessionID string) ([]Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT session_id, seq, register, op, value
		FROM access_events
		WHERE session_id = ?
		ORDER BY seq
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("read events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		var op string
		var value int64
		if err := rows.Scan(&e.Session, &e.Seq, &e.Register, &op, &value); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		e.Op = Op(op)
		e.Value = uint64(value)
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read events: %w", err)
	}
	return events, nil
}

// RegisterEvents returns a session's accesses for one register, in
// sequence order.
func (s *Store) RegisterEvents(ctx context.Context, sessionID, registerName string) ([]Event, error) {
	events, err := s.Events(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	filtered := events[:0]
	for _, e := range events {
		if e.Register == registerName {
			filtered = append(filtered, e)
		}
	}
	return filtered, nil
}

// Sessions returns the distinct session IDs present in the log,
// most recently started last (by rowid order of first event).
func (s *Store) Sessions(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT session_id
		FROM access_events
		GROUP BY session_id
		ORDER BY MIN(rowid)
	`)
	if err != nil {
		return nil, fmt.Errorf("read sessions: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read sessions: %w", err)
	}
	return ids, nil
}
