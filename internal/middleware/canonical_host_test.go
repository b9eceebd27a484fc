package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func canonicalHandler(host string) http.Handler {
	mw := CanonicalHost(host)
	return mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func TestCanonicalHost_RedirectsBareDomain(t *testing.T) {
	req := httptest.NewRequest("GET", "http://veloura.example/pricing?ref=ig", nil)
	req.Host = "veloura.example"
	w := httptest.NewRecorder()

	canonicalHandler("www.veloura.example").ServeHTTP(w, req)

	if w.Code != http.StatusPermanentRedirect {
		t.Fatalf("status = %d, want 308", w.Code)
	}
	want := "https://www.veloura.example/pricing?ref=ig"
	if loc := w.Header().Get("Location"); loc != want {
		t.Errorf("Location = %q, want %q", loc, want)
	}
}

func TestCanonicalHost_CanonicalPassesThrough(t *testing.T) {
	req := httptest.NewRequest("GET", "http://www.veloura.example/about", nil)
	req.Host = "www.veloura.example"
	w := httptest.NewRecorder()

	canonicalHandler("www.veloura.example").ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestCanonicalHost_SkipsStaticAssets(t *testing.T) {
	paths := []string{
		"/static/site.css",
		"/assets/fonts/serif.woff2",
		"/favicon.ico",
		"/gallery/evening.jpg",
		"/gallery/noir.WEBP",
	}

	for _, p := range paths {
		req := httptest.NewRequest("GET", "http://veloura.example"+p, nil)
		req.Host = "veloura.example"
		w := httptest.NewRecorder()

		canonicalHandler("www.veloura.example").ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("%s: status = %d, want 200 (no redirect for static paths)", p, w.Code)
		}
	}
}

func TestCanonicalHost_DisabledWhenUnconfigured(t *testing.T) {
	req := httptest.NewRequest("GET", "http://anything.example/", nil)
	req.Host = "anything.example"
	w := httptest.NewRecorder()

	canonicalHandler("").ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 when canonical host unset", w.Code)
	}
}
