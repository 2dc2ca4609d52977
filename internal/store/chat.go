package store

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Message senders.
const (
	SenderUser = "user"
	SenderBot  = "bot"
)

// ChatMessage is one turn in a user's counseling session.
type ChatMessage struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"session_id"`
	Sender    string    `json:"sender"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// GetOrCreateSession returns the user's chat session id, creating the session
// on the first message.
func (s *Store) GetOrCreateSession(ctx context.Context, userID string) (string, error) {
	var id string
	err := s.DB.QueryRowContext(ctx, `SELECT id FROM chat_sessions WHERE user_id=$1`, userID).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", err
	}
	err = s.DB.QueryRowContext(ctx, `INSERT INTO chat_sessions (user_id) VALUES ($1) RETURNING id`, userID).Scan(&id)
	return id, err
}

// AppendMessage adds one message to a session and bumps its updated_at.
// Messages are immutable once appended.
func (s *Store) AppendMessage(ctx context.Context, sessionID, sender, content string) error {
	if _, err := s.DB.ExecContext(ctx,
		`INSERT INTO chat_messages (session_id, sender, content) VALUES ($1,$2,$3)`,
		sessionID, sender, content); err != nil {
		return err
	}
	_, err := s.DB.ExecContext(ctx, `UPDATE chat_sessions SET updated_at=NOW() WHERE id=$1`, sessionID)
	return err
}

// ListMessages returns session messages in insertion order.
func (s *Store) ListMessages(ctx context.Context, sessionID string) ([]ChatMessage, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, session_id, sender, content, created_at FROM chat_messages WHERE session_id=$1 ORDER BY id`,
		sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []ChatMessage
	for rows.Next() {
		var m ChatMessage
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Sender, &m.Content, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// ClearSession removes all messages from a session but keeps the session row.
func (s *Store) ClearSession(ctx context.Context, sessionID string) error {
	_, err := s.DB.ExecContext(ctx, `DELETE FROM chat_messages WHERE session_id=$1`, sessionID)
	return err
}
