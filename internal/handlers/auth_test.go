package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veloura/atelier/internal/auth"
	"github.com/veloura/atelier/internal/services"
	pkglogger "github.com/veloura/atelier/pkg/logger"
)

const testAdminPassword = "velvet-orchid-22"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// newGateHandler wires a real auth service with in-memory stores, the same
// shape main() assembles.
func newGateHandler(t *testing.T) *AuthHandler {
	t.Helper()
	logger := discardLogger()
	limiter := auth.NewMemoryLimiter(auth.LimiterConfig{MaxAttempts: 5, Window: 15 * time.Minute})
	sessions := auth.NewMemorySessionStore(24 * time.Hour)
	svc := services.NewAuthService(testAdminPassword, limiter, sessions, logger, pkglogger.NewAuditLogger(logger))
	return NewAuthHandler(svc, auth.CookieConfig{Secure: false, MaxAge: 86400}, logger)
}

func loginRequest(t *testing.T, password, clientIP string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(LoginRequest{Password: password}); err != nil {
		t.Fatalf("failed to encode request body: %v", err)
	}
	req := httptest.NewRequest("POST", "/api/auth/login", &buf)
	req.Header.Set("Content-Type", "application/json")
	if clientIP != "" {
		req.Header.Set("X-Forwarded-For", clientIP)
	}
	return req
}

func TestLogin_Success(t *testing.T) {
	handler := newGateHandler(t)

	w := httptest.NewRecorder()
	handler.Login(w, loginRequest(t, testAdminPassword, "1.2.3.4"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, "admin_session", c.Name)
	assert.GreaterOrEqual(t, len(c.Value), 10, "cookie value must pass the guard's shape check")
	assert.True(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	assert.Equal(t, 86400, c.MaxAge)
	assert.Equal(t, "/", c.Path)
}

func TestLogin_InvalidPassword(t *testing.T) {
	handler := newGateHandler(t)

	w := httptest.NewRecorder()
	handler.Login(w, loginRequest(t, "wrong", "1.2.3.4"))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Invalid password"}`, w.Body.String())
	assert.Empty(t, w.Result().Cookies(), "no cookie on failure")
}

func TestLogin_MalformedBody(t *testing.T) {
	handler := newGateHandler(t)

	req := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	handler.Login(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Authentication failed"}`, w.Body.String())
}

// TestLogin_LockoutScenario walks the full sequence: five wrong passwords in
// quick succession all return 401, the sixth attempt returns 429 even with
// the correct password.
func TestLogin_LockoutScenario(t *testing.T) {
	handler := newGateHandler(t)

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		handler.Login(w, loginRequest(t, "wrong", "1.2.3.4"))
		assert.Equal(t, http.StatusUnauthorized, w.Code, "attempt %d", i+1)
	}

	w := httptest.NewRecorder()
	handler.Login(w, loginRequest(t, testAdminPassword, "1.2.3.4"))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"error":"Too many login attempts. Please try again in 15 minutes."}`, w.Body.String())

	// Another client with the correct password is unaffected
	w = httptest.NewRecorder()
	handler.Login(w, loginRequest(t, testAdminPassword, "5.6.7.8"))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLogin_UnknownClientsShareABucket(t *testing.T) {
	handler := newGateHandler(t)

	// No forwarding headers: all failures land in the shared bucket
	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		handler.Login(w, loginRequest(t, "wrong", ""))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	}

	w := httptest.NewRecorder()
	handler.Login(w, loginRequest(t, testAdminPassword, ""))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestLogout_Idempotent(t *testing.T) {
	handler := newGateHandler(t)

	// Twice in a row, no cookie either time: both succeed
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("DELETE", "/api/auth/login", nil)
		w := httptest.NewRecorder()
		handler.Logout(w, req)

		assert.Equal(t, http.StatusOK, w.Code, "call %d", i+1)
		assert.JSONEq(t, `{"success":true}`, w.Body.String())

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Negative(t, cookies[0].MaxAge, "session cookie must be deleted")
	}
}

func TestLogout_InvalidatesSession(t *testing.T) {
	logger := discardLogger()
	limiter := auth.NewMemoryLimiter(auth.LimiterConfig{MaxAttempts: 5, Window: 15 * time.Minute})
	sessions := auth.NewMemorySessionStore(24 * time.Hour)
	svc := services.NewAuthService(testAdminPassword, limiter, sessions, logger, pkglogger.NewAuditLogger(logger))
	handler := NewAuthHandler(svc, auth.CookieConfig{MaxAge: 86400}, logger)

	w := httptest.NewRecorder()
	handler.Login(w, loginRequest(t, testAdminPassword, "1.2.3.4"))
	require.Equal(t, http.StatusOK, w.Code)
	token := w.Result().Cookies()[0].Value

	req := httptest.NewRequest("DELETE", "/api/auth/login", nil)
	req.AddCookie(&http.Cookie{Name: "admin_session", Value: token})
	w = httptest.NewRecorder()
	handler.Logout(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	valid, err := sessions.Validate(context.Background(), token)
	require.NoError(t, err)
	assert.False(t, valid, "logged-out token must not validate")
}

type failingAuthService struct{}

func (failingAuthService) Login(context.Context, string, string, string) (string, error) {
	return "", errors.New("session store unavailable")
}

func (failingAuthService) Logout(context.Context, string) error {
	return errors.New("session store unavailable")
}

func TestLogin_InternalErrorIsGeneric(t *testing.T) {
	handler := NewAuthHandler(failingAuthService{}, auth.CookieConfig{MaxAge: 86400}, discardLogger())

	w := httptest.NewRecorder()
	handler.Login(w, loginRequest(t, testAdminPassword, "1.2.3.4"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Authentication failed"}`, w.Body.String())
}

func TestLogout_InternalErrorIsGeneric(t *testing.T) {
	handler := NewAuthHandler(failingAuthService{}, auth.CookieConfig{MaxAge: 86400}, discardLogger())

	req := httptest.NewRequest("DELETE", "/api/auth/login", nil)
	req.AddCookie(&http.Cookie{Name: "admin_session", Value: "some-token"})
	w := httptest.NewRecorder()
	handler.Logout(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Logout failed"}`, w.Body.String())
}
