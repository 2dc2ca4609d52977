package store

import (
	"context"
	"time"
)

// QuizAttempt is a generated question set handed to a user.
type QuizAttempt struct {
	ID        string
	UserID    string
	Questions []byte
	CreatedAt time.Time
}

// QuizResult is a scored attempt.
type QuizResult struct {
	ID                string    `json:"id"`
	Answers           []byte    `json:"answers"`
	Scores            []byte    `json:"scores"`
	RecommendedStream string    `json:"recommended_stream"`
	CompletedAt       time.Time `json:"completed_at"`
}

func (s *Store) CreateQuizAttempt(ctx context.Context, id, userID string, questions []byte) error {
	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO quiz_attempts (id, user_id, questions) VALUES ($1,$2,$3)`,
		id, userID, questions)
	return err
}

func (s *Store) GetQuizAttempt(ctx context.Context, id, userID string) ([]byte, error) {
	var questions []byte
	err := s.DB.QueryRowContext(ctx,
		`SELECT questions FROM quiz_attempts WHERE id=$1 AND user_id=$2`, id, userID).Scan(&questions)
	return questions, err
}

func (s *Store) SaveQuizResult(ctx context.Context, id, userID string, answers, scores []byte, stream string) error {
	_, err := s.DB.ExecContext(ctx,
		`UPDATE quiz_attempts SET answers=$3, scores=$4, recommended_stream=$5, completed_at=NOW() WHERE id=$1 AND user_id=$2`,
		id, userID, answers, scores, stream)
	return err
}

// ListQuizResults returns completed attempts, newest first.
func (s *Store) ListQuizResults(ctx context.Context, userID string) ([]QuizResult, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, answers, scores, recommended_stream, completed_at FROM quiz_attempts WHERE user_id=$1 AND completed_at IS NOT NULL ORDER BY completed_at DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []QuizResult
	for rows.Next() {
		var r QuizResult
		if err := rows.Scan(&r.ID, &r.Answers, &r.Scores, &r.RecommendedStream, &r.CompletedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
