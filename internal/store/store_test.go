package store

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
)

func setupStore(t *testing.T) (*Store, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	cleanup := func() { db.Close() }
	return &Store{DB: db}, mock, cleanup
}

func TestCreateUser(t *testing.T) {
	st, mock, cleanup := setupStore(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users (name, email, password_hash) VALUES ($1,$2,$3) RETURNING id`)).
		WithArgs("Asha", "asha@example.com", "hash").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("u-1"))

	id, err := st.CreateUser(context.Background(), "Asha", "asha@example.com", "hash")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if id != "u-1" {
		t.Fatalf("got id %q, want u-1", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestGetUserByEmail(t *testing.T) {
	st, mock, cleanup := setupStore(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, password_hash FROM users WHERE email=$1`)).
		WithArgs("asha@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "password_hash"}).AddRow("u-1", "hash"))

	id, hash, err := st.GetUserByEmail(context.Background(), "asha@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if id != "u-1" || hash != "hash" {
		t.Fatalf("got (%q,%q)", id, hash)
	}
}

func TestGetOrCreateSessionExisting(t *testing.T) {
	st, mock, cleanup := setupStore(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM chat_sessions WHERE user_id=$1`)).
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("s-1"))

	id, err := st.GetOrCreateSession(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("GetOrCreateSession: %v", err)
	}
	if id != "s-1" {
		t.Fatalf("got %q, want s-1", id)
	}
}

func TestGetOrCreateSessionCreates(t *testing.T) {
	st, mock, cleanup := setupStore(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM chat_sessions WHERE user_id=$1`)).
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO chat_sessions (user_id) VALUES ($1) RETURNING id`)).
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("s-2"))

	id, err := st.GetOrCreateSession(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("GetOrCreateSession: %v", err)
	}
	if id != "s-2" {
		t.Fatalf("got %q, want s-2", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestAppendMessage(t *testing.T) {
	st, mock, cleanup := setupStore(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO chat_messages (session_id, sender, content) VALUES ($1,$2,$3)`)).
		WithArgs("s-1", SenderUser, "hello").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE chat_sessions SET updated_at=NOW() WHERE id=$1`)).
		WithArgs("s-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := st.AppendMessage(context.Background(), "s-1", SenderUser, "hello"); err != nil {
		t.Fatalf("AppendMessage: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestListMessagesOrder(t *testing.T) {
	st, mock, cleanup := setupStore(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, session_id, sender, content, created_at FROM chat_messages WHERE session_id=$1 ORDER BY id`)).
		WithArgs("s-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "session_id", "sender", "content", "created_at"}).
			AddRow(1, "s-1", SenderUser, "q", now).
			AddRow(2, "s-1", SenderBot, "a", now))

	msgs, err := st.ListMessages(context.Background(), "s-1")
	if err != nil {
		t.Fatalf("ListMessages: %v", err)
	}
	if len(msgs) != 2 || msgs[0].Sender != SenderUser || msgs[1].Sender != SenderBot {
		t.Fatalf("unexpected messages: %+v", msgs)
	}
}

func TestSaveQuizResult(t *testing.T) {
	st, mock, cleanup := setupStore(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE quiz_attempts SET answers=$3, scores=$4, recommended_stream=$5, completed_at=NOW() WHERE id=$1 AND user_id=$2`)).
		WithArgs("a-1", "u-1", []byte(`[0]`), []byte(`{}`), "science").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := st.SaveQuizResult(context.Background(), "a-1", "u-1", []byte(`[0]`), []byte(`{}`), "science"); err != nil {
		t.Fatalf("SaveQuizResult: %v", err)
	}
}

func TestListCoursesWithStreamFilter(t *testing.T) {
	st, mock, cleanup := setupStore(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, stream, level, duration, description, careers FROM courses WHERE stream=$1 ORDER BY name`)).
		WithArgs("science").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "stream", "level", "duration", "description", "careers"}).
			AddRow("c-1", "B.Sc.", "science", "undergraduate", "3 years", "desc", `{Research,Teaching}`))

	courses, err := st.ListCourses(context.Background(), "science")
	if err != nil {
		t.Fatalf("ListCourses: %v", err)
	}
	if len(courses) != 1 || courses[0].Name != "B.Sc." {
		t.Fatalf("unexpected courses: %+v", courses)
	}
	if len(courses[0].Careers) != 2 || courses[0].Careers[0] != "Research" {
		t.Fatalf("careers array not decoded: %+v", courses[0].Careers)
	}
}

func TestListDueEvents(t *testing.T) {
	st, mock, cleanup := setupStore(t)
	defer cleanup()

	now := time.Now()
	window := 168 * time.Hour
	mock.ExpectQuery(`SELECT id, user_id, title, kind, due_at, done, notes, created_at FROM timeline_events`).
		WithArgs(window.Seconds()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "title", "kind", "due_at", "done", "notes", "created_at"}).
			AddRow("e-1", "u-1", "JEE Mains", "exam", now.Add(24*time.Hour), false, "", now))

	events, err := st.ListDueEvents(context.Background(), window)
	if err != nil {
		t.Fatalf("ListDueEvents: %v", err)
	}
	if len(events) != 1 || events[0].Title != "JEE Mains" {
		t.Fatalf("unexpected events: %+v", events)
	}
}

func TestMarkReminded(t *testing.T) {
	st, mock, cleanup := setupStore(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE timeline_events SET reminded_at=NOW() WHERE id=$1`)).
		WithArgs("e-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := st.MarkReminded(context.Background(), "e-1"); err != nil {
		t.Fatalf("MarkReminded: %v", err)
	}
}
