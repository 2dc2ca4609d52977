package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"github.com/ultroi/sixbits/internal/store"
)

func setupAuthStore(t *testing.T) (*store.Store, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	cleanup := func() { db.Close() }
	return &store.Store{DB: db}, mock, cleanup
}

func jsonRequest(method, target string, body interface{}) *http.Request {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(method, target, bytes.NewReader(b))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func TestSignupSuccess(t *testing.T) {
	st, mock, cleanup := setupAuthStore(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users (name, email, password_hash) VALUES ($1,$2,$3) RETURNING id`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("u-1"))

	h := &AuthHandler{Store: st, Secret: []byte("secret")}
	e := echo.New()
	req := jsonRequest(http.MethodPost, "/auth/signup", AuthSignupRequest{Name: "Asha", Email: "asha@example.com", Password: "longenough"})
	rec := httptest.NewRecorder()

	if err := h.signup(e.NewContext(req, rec)); err != nil {
		t.Fatalf("signup: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestSignupShortPassword(t *testing.T) {
	st, _, cleanup := setupAuthStore(t)
	defer cleanup()

	h := &AuthHandler{Store: st, Secret: []byte("secret")}
	e := echo.New()
	req := jsonRequest(http.MethodPost, "/auth/signup", AuthSignupRequest{Email: "a@b.c", Password: "short"})
	rec := httptest.NewRecorder()

	err := h.signup(e.NewContext(req, rec))
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	st, mock, cleanup := setupAuthStore(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users (name, email, password_hash) VALUES ($1,$2,$3) RETURNING id`)).
		WillReturnError(&pq.Error{Code: "23505"})

	h := &AuthHandler{Store: st, Secret: []byte("secret")}
	e := echo.New()
	req := jsonRequest(http.MethodPost, "/auth/signup", AuthSignupRequest{Email: "dup@example.com", Password: "longenough"})
	rec := httptest.NewRecorder()

	err := h.signup(e.NewContext(req, rec))
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %v", err)
	}
}

func TestLoginSuccessSetsCookie(t *testing.T) {
	st, mock, cleanup := setupAuthStore(t)
	defer cleanup()

	hash, _ := bcrypt.GenerateFromPassword([]byte("longenough"), bcrypt.MinCost)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, password_hash FROM users WHERE email=$1`)).
		WithArgs("asha@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "password_hash"}).AddRow("u-1", string(hash)))

	h := &AuthHandler{Store: st, Secret: []byte("secret")}
	e := echo.New()
	req := jsonRequest(http.MethodPost, "/auth/login", AuthLoginRequest{Email: "asha@example.com", Password: "longenough"})
	rec := httptest.NewRecorder()

	if err := h.login(e.NewContext(req, rec)); err != nil {
		t.Fatalf("login: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp TokenResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil || resp.Token == "" {
		t.Fatalf("expected token in body, got %q (%v)", rec.Body.String(), err)
	}
	found := false
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "auth" && ck.Value == resp.Token && ck.HttpOnly {
			found = true
		}
	}
	if !found {
		t.Fatal("auth cookie not set")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	st, mock, cleanup := setupAuthStore(t)
	defer cleanup()

	hash, _ := bcrypt.GenerateFromPassword([]byte("rightpassword"), bcrypt.MinCost)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, password_hash FROM users WHERE email=$1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "password_hash"}).AddRow("u-1", string(hash)))

	h := &AuthHandler{Store: st, Secret: []byte("secret")}
	e := echo.New()
	req := jsonRequest(http.MethodPost, "/auth/login", AuthLoginRequest{Email: "asha@example.com", Password: "wrongpassword"})
	rec := httptest.NewRecorder()

	err := h.login(e.NewContext(req, rec))
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}
