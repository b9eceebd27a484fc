package auth

import (
	"net/http"

	pkghttp "github.com/veloura/atelier/pkg/http"
)

// GuardConfig holds page guard configuration
type GuardConfig struct {
	LoginPath string // Where unauthenticated requests are sent
}

// PageGuard protects the admin dashboard pages. It checks only the cookie's
// shape: absent, empty, or shorter than MinTokenLength redirects to the login
// page. Any longer value passes; it is a cheap pre-filter against direct
// navigation, not session validation. The admin API behind these pages runs
// RequireSession, which does the real store lookup.
func PageGuard(config GuardConfig) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := GetSessionCookie(r)
			if err != nil || len(token) < MinTokenLength {
				http.Redirect(w, r, config.LoginPath, http.StatusFound)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireSession verifies the session cookie against the server-side store
// and rejects requests whose token was never issued or has expired.
func RequireSession(store SessionStore) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := GetSessionCookie(r)
			if err != nil || token == "" {
				pkghttp.WriteUnauthorized(w, "Unauthorized")
				return
			}

			valid, err := store.Validate(r.Context(), token)
			if err != nil {
				// Store failures deny access; a session we cannot verify
				// is a session we do not honor.
				pkghttp.WriteUnauthorized(w, "Unauthorized")
				return
			}
			if !valid {
				pkghttp.WriteUnauthorized(w, "Unauthorized")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
