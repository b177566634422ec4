package auth_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"blogsmith/internal/handler/http/auth"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func issueCookie(t *testing.T, m *auth.SessionManager, userID int64, username string) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	if err := m.Issue(rec, userID, username); err != nil {
		t.Fatalf("Issue err=%v", err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("want 1 cookie, got %d", len(cookies))
	}
	return cookies[0]
}

/* ─────────── 1. Issue / Validate ─────────── */

func TestSessionManager_RoundTrip(t *testing.T) {
	m := auth.NewSessionManager(testSecret, time.Hour, false)

	cookie := issueCookie(t, m, 42, "alice")
	if cookie.Name != auth.CookieName {
		t.Errorf("want cookie name %q, got %q", auth.CookieName, cookie.Name)
	}
	if !cookie.HttpOnly {
		t.Error("session cookie must be HttpOnly")
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)

	session, err := m.Validate(req)
	if err != nil {
		t.Fatalf("Validate err=%v", err)
	}
	if session.UserID != 42 {
		t.Errorf("want user ID 42, got %d", session.UserID)
	}
	if session.Username != "alice" {
		t.Errorf("want username alice, got %q", session.Username)
	}
}

func TestSessionManager_MissingCookie(t *testing.T) {
	m := auth.NewSessionManager(testSecret, time.Hour, false)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, err := m.Validate(req); !errors.Is(err, auth.ErrNoSession) {
		t.Fatalf("want ErrNoSession, got %v", err)
	}
}

func TestSessionManager_Expired(t *testing.T) {
	m := auth.NewSessionManager(testSecret, -time.Minute, false)

	cookie := issueCookie(t, m, 42, "alice")
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)

	if _, err := m.Validate(req); !errors.Is(err, auth.ErrNoSession) {
		t.Fatalf("want ErrNoSession for expired session, got %v", err)
	}
}

func TestSessionManager_WrongSecret(t *testing.T) {
	issuer := auth.NewSessionManager(testSecret, time.Hour, false)
	validator := auth.NewSessionManager([]byte("another-secret-another-secret-00"), time.Hour, false)

	cookie := issueCookie(t, issuer, 42, "alice")
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)

	if _, err := validator.Validate(req); !errors.Is(err, auth.ErrNoSession) {
		t.Fatalf("want ErrNoSession for forged session, got %v", err)
	}
}

func TestSessionManager_Tampered(t *testing.T) {
	m := auth.NewSessionManager(testSecret, time.Hour, false)

	cookie := issueCookie(t, m, 42, "alice")
	cookie.Value += "x"

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)

	if _, err := m.Validate(req); !errors.Is(err, auth.ErrNoSession) {
		t.Fatalf("want ErrNoSession for tampered session, got %v", err)
	}
}

/* ─────────── 2. Clear ─────────── */

func TestSessionManager_Clear(t *testing.T) {
	m := auth.NewSessionManager(testSecret, time.Hour, false)

	rec := httptest.NewRecorder()
	m.Clear(rec)

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("want 1 cookie, got %d", len(cookies))
	}
	if cookies[0].MaxAge != -1 {
		t.Errorf("want MaxAge -1, got %d", cookies[0].MaxAge)
	}
	if cookies[0].Value != "" {
		t.Errorf("want empty value, got %q", cookies[0].Value)
	}
}

/* ─────────── 3. Middleware ─────────── */

func TestRequirePage_RedirectsWithoutSession(t *testing.T) {
	m := auth.NewSessionManager(testSecret, time.Hour, false)

	handler := m.RequirePage(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/blogs", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("want 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Errorf("want redirect to /login, got %q", loc)
	}
}

func TestRequireAPI_UnauthorizedWithoutSession(t *testing.T) {
	m := auth.NewSessionManager(testSecret, time.Hour, false)

	handler := m.RequireAPI(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodPost, "/generate", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("want 401, got %d", rec.Code)
	}
}

func TestRequireAPI_PassesSessionToContext(t *testing.T) {
	m := auth.NewSessionManager(testSecret, time.Hour, false)

	var got *auth.Session
	handler := m.RequireAPI(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = auth.SessionFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	cookie := issueCookie(t, m, 7, "bob")
	req := httptest.NewRequest(http.MethodPost, "/generate", nil)
	req.AddCookie(cookie)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}
	if got == nil || got.UserID != 7 || got.Username != "bob" {
		t.Fatalf("session not propagated, got %+v", got)
	}
}

func TestOptional_NeverBlocks(t *testing.T) {
	m := auth.NewSessionManager(testSecret, time.Hour, false)

	var got *auth.Session
	handler := m.Optional(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = auth.SessionFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	// セッションなしでも通す
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}
	if got != nil {
		t.Fatalf("want nil session, got %+v", got)
	}

	// セッション付きなら context に載る
	cookie := issueCookie(t, m, 7, "bob")
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got == nil || got.Username != "bob" {
		t.Fatalf("session not propagated, got %+v", got)
	}
}
