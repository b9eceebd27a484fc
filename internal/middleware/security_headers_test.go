package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func securityHandler(env string) http.Handler {
	mw := SecurityHeaders(SecurityHeadersConfig{Env: env})
	return mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func TestSecurityHeaders_CommonHeaders(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	securityHandler("development").ServeHTTP(w, req)

	if got := w.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("X-Frame-Options = %q, want DENY", got)
	}
	if got := w.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q, want nosniff", got)
	}
	if w.Header().Get("Content-Security-Policy") == "" {
		t.Error("Content-Security-Policy missing")
	}
}

func TestSecurityHeaders_ProductionCSPIsStrict(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	securityHandler("production").ServeHTTP(w, req)

	csp := w.Header().Get("Content-Security-Policy")
	if strings.Contains(csp, "unsafe-eval") {
		t.Errorf("production CSP allows unsafe-eval: %s", csp)
	}
	if !strings.Contains(csp, "frame-ancestors 'none'") {
		t.Errorf("production CSP missing frame-ancestors 'none': %s", csp)
	}
}

func TestSecurityHeaders_HSTSOnlyForHTTPSInProduction(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	w := httptest.NewRecorder()

	securityHandler("production").ServeHTTP(w, req)

	if w.Header().Get("Strict-Transport-Security") == "" {
		t.Error("HSTS missing for proxied HTTPS in production")
	}

	// Plain HTTP in development gets no HSTS
	req = httptest.NewRequest("GET", "/", nil)
	w = httptest.NewRecorder()
	securityHandler("development").ServeHTTP(w, req)

	if w.Header().Get("Strict-Transport-Security") != "" {
		t.Error("HSTS set in development")
	}
}
