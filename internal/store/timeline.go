package store

import (
	"context"
	"time"
)

// TimelineEvent tracks one dated milestone for a user (exam, admission
// deadline, scholarship window, counselling round).
type TimelineEvent struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	Title     string    `json:"title"`
	Kind      string    `json:"kind"`
	DueAt     time.Time `json:"due_at"`
	Done      bool      `json:"done"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *Store) ListTimeline(ctx context.Context, userID string) ([]TimelineEvent, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, user_id, title, kind, due_at, done, notes, created_at FROM timeline_events WHERE user_id=$1 ORDER BY due_at`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []TimelineEvent
	for rows.Next() {
		var e TimelineEvent
		if err := rows.Scan(&e.ID, &e.UserID, &e.Title, &e.Kind, &e.DueAt, &e.Done, &e.Notes, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) CreateTimelineEvent(ctx context.Context, userID, title, kind string, dueAt time.Time, notes string) (string, error) {
	var id string
	err := s.DB.QueryRowContext(ctx,
		`INSERT INTO timeline_events (user_id, title, kind, due_at, notes) VALUES ($1,$2,$3,$4,$5) RETURNING id`,
		userID, title, kind, dueAt, notes).Scan(&id)
	return id, err
}

// UpdateTimelineEvent overwrites the mutable fields. Last write wins.
func (s *Store) UpdateTimelineEvent(ctx context.Context, id, userID, title, kind string, dueAt time.Time, done bool, notes string) error {
	_, err := s.DB.ExecContext(ctx,
		`UPDATE timeline_events SET title=$3, kind=$4, due_at=$5, done=$6, notes=$7 WHERE id=$1 AND user_id=$2`,
		id, userID, title, kind, dueAt, done, notes)
	return err
}

func (s *Store) DeleteTimelineEvent(ctx context.Context, id, userID string) error {
	_, err := s.DB.ExecContext(ctx, `DELETE FROM timeline_events WHERE id=$1 AND user_id=$2`, id, userID)
	return err
}

// ListDueEvents returns events due within the window that are neither done nor
// already reminded. Used by the reminder scheduler.
func (s *Store) ListDueEvents(ctx context.Context, within time.Duration) ([]TimelineEvent, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, user_id, title, kind, due_at, done, notes, created_at FROM timeline_events
		 WHERE done=false AND reminded_at IS NULL AND due_at BETWEEN NOW() AND NOW() + make_interval(secs => $1) ORDER BY due_at`,
		within.Seconds())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []TimelineEvent
	for rows.Next() {
		var e TimelineEvent
		if err := rows.Scan(&e.ID, &e.UserID, &e.Title, &e.Kind, &e.DueAt, &e.Done, &e.Notes, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) MarkReminded(ctx context.Context, id string) error {
	_, err := s.DB.ExecContext(ctx, `UPDATE timeline_events SET reminded_at=NOW() WHERE id=$1`, id)
	return err
}
