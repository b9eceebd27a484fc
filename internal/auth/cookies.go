package auth

import (
	"net/http"
)

// SessionCookieName is the fixed cookie carrying the admin session token.
// Its value is opaque; nothing may parse it beyond the guard's shape check.
const SessionCookieName = "admin_session"

// CookieConfig holds session cookie settings
type CookieConfig struct {
	Secure bool // HTTPS only; set in production
	MaxAge int  // Seconds
}

// SetSessionCookie sets the session token in an httpOnly, same-site-lax cookie
func SetSessionCookie(w http.ResponseWriter, token string, config CookieConfig) {
	cookie := &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   config.MaxAge,
		HttpOnly: true,
		Secure:   config.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	http.SetCookie(w, cookie)
}

// ClearSessionCookie deletes the session cookie
func ClearSessionCookie(w http.ResponseWriter, config CookieConfig) {
	cookie := &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1, // Negative MaxAge deletes the cookie
		HttpOnly: true,
		Secure:   config.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	http.SetCookie(w, cookie)
}

// GetSessionCookie retrieves the session token from the request cookies
func GetSessionCookie(r *http.Request) (string, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return "", err
	}
	return cookie.Value, nil
}
