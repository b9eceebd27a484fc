package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetSessionCookie(t *testing.T) {
	w := httptest.NewRecorder()

	SetSessionCookie(w, "a-session-token-value", CookieConfig{Secure: false, MaxAge: 86400})

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)

	c := cookies[0]
	assert.Equal(t, "admin_session", c.Name)
	assert.Equal(t, "a-session-token-value", c.Value)
	assert.Equal(t, "/", c.Path)
	assert.Equal(t, 86400, c.MaxAge)
	assert.True(t, c.HttpOnly)
	assert.False(t, c.Secure)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
}

func TestSetSessionCookie_SecureInProduction(t *testing.T) {
	w := httptest.NewRecorder()

	SetSessionCookie(w, "a-session-token-value", CookieConfig{Secure: true, MaxAge: 86400})

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].Secure)
}

func TestClearSessionCookie(t *testing.T) {
	w := httptest.NewRecorder()

	ClearSessionCookie(w, CookieConfig{Secure: false})

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)

	c := cookies[0]
	assert.Equal(t, "admin_session", c.Name)
	assert.Empty(t, c.Value)
	assert.Negative(t, c.MaxAge)
}

func TestGetSessionCookie(t *testing.T) {
	req := httptest.NewRequest("GET", "/admin/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "admin_session", Value: "the-token"})

	token, err := GetSessionCookie(req)
	require.NoError(t, err)
	assert.Equal(t, "the-token", token)
}

func TestGetSessionCookie_Missing(t *testing.T) {
	req := httptest.NewRequest("GET", "/admin/dashboard", nil)

	_, err := GetSessionCookie(req)
	assert.Error(t, err)
}
