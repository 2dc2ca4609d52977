package runtime

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func TestSignJWTAndMiddleware(t *testing.T) {
	secret := []byte("test-secret")
	tok, err := SignJWT("u-1", secret, time.Hour)
	if err != nil {
		t.Fatalf("SignJWT: %v", err)
	}

	e := echo.New()
	mw := EchoAuthMiddleware(secret)
	next := func(c echo.Context) error {
		if c.Get("user_id") != "u-1" {
			t.Fatalf("user_id not set, got %v", c.Get("user_id"))
		}
		sub, ok := SubjectFromContext(c.Request().Context())
		if !ok || sub != "u-1" {
			t.Fatalf("subject not in context: %q %v", sub, ok)
		}
		return c.NoContent(http.StatusOK)
	}

	// Bearer header
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	if err := mw(next)(e.NewContext(req, rec)); err != nil {
		t.Fatalf("middleware with bearer token: %v", err)
	}

	// Cookie
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "auth", Value: tok})
	rec = httptest.NewRecorder()
	if err := mw(next)(e.NewContext(req, rec)); err != nil {
		t.Fatalf("middleware with cookie: %v", err)
	}
}

func TestMiddlewareRejectsMissingToken(t *testing.T) {
	e := echo.New()
	mw := EchoAuthMiddleware([]byte("test-secret"))
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	err := mw(next)(e.NewContext(req, httptest.NewRecorder()))
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestMiddlewareRejectsBadToken(t *testing.T) {
	e := echo.New()
	mw := EchoAuthMiddleware([]byte("test-secret"))
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	otherTok, err := SignJWT("u-1", []byte("other-secret"), time.Hour)
	if err != nil {
		t.Fatalf("SignJWT: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+otherTok)
	errOut := mw(next)(e.NewContext(req, httptest.NewRecorder()))
	he, ok := errOut.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong secret, got %v", errOut)
	}
}

func TestMiddlewareRejectsExpiredToken(t *testing.T) {
	secret := []byte("test-secret")
	tok, err := SignJWT("u-1", secret, -time.Minute)
	if err != nil {
		t.Fatalf("SignJWT: %v", err)
	}

	e := echo.New()
	mw := EchoAuthMiddleware(secret)
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	errOut := mw(next)(e.NewContext(req, httptest.NewRecorder()))
	he, ok := errOut.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for expired token, got %v", errOut)
	}
}
