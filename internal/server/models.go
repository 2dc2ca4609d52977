package server

import "github.com/ultroi/sixbits/internal/store"

// HTTPError is a generic error envelope returned by the server.
type HTTPError struct {
	Error string `json:"error"`
}

// AuthSignupRequest represents the signup payload.
type AuthSignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthLoginRequest represents the login payload.
type AuthLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse carries a bearer token.
type TokenResponse struct {
	Token string `json:"token"`
}

// MeResponse returns the current authenticated user.
type MeResponse struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// ChatRequest is one user message to the counselor assistant.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse carries the formatted assistant reply.
type ChatResponse struct {
	Reply     string `json:"reply"`
	SessionID string `json:"session_id"`
}

// ChatHistoryResponse lists the session transcript in display order.
type ChatHistoryResponse struct {
	SessionID string              `json:"session_id"`
	Messages  []store.ChatMessage `json:"messages"`
}

// QuizOption is one selectable answer, tagged with the stream it favours.
type QuizOption struct {
	Text   string `json:"text"`
	Stream string `json:"stream"`
}

// QuizQuestion is one generated aptitude question.
type QuizQuestion struct {
	Text     string       `json:"text"`
	Category string       `json:"category"`
	Options  []QuizOption `json:"options"`
}

// QuizGenerateResponse hands a question set to the client.
type QuizGenerateResponse struct {
	AttemptID string         `json:"attempt_id"`
	Questions []QuizQuestion `json:"questions"`
}

// QuizSubmitRequest carries the selected option index per question.
type QuizSubmitRequest struct {
	AttemptID string `json:"attempt_id"`
	Answers   []int  `json:"answers"`
}

// QuizSubmitResponse reports the scored attempt.
type QuizSubmitResponse struct {
	AttemptID         string                    `json:"attempt_id"`
	Scores            map[string]map[string]int `json:"scores"`
	RecommendedStream string                    `json:"recommended_stream"`
}

// TimelineEventRequest creates or updates a timeline event.
type TimelineEventRequest struct {
	Title string `json:"title"`
	Kind  string `json:"kind"`
	DueAt string `json:"due_at"` // RFC 3339
	Done  bool   `json:"done"`
	Notes string `json:"notes"`
}

// IDResponse is a generic id response wrapper.
type IDResponse struct {
	ID string `json:"id"`
}
