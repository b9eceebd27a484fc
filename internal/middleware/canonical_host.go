package middleware

import (
	"net/http"
	"path"
	"strings"
)

// imageExtensions are never redirected; browsers and caches may request them
// against either host.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".svg":  true,
	".ico":  true,
}

// staticPrefixes are asset paths excluded from host canonicalization
var staticPrefixes = []string{
	"/static/",
	"/assets/",
}

// CanonicalHost redirects requests whose Host differs from the configured
// canonical host (typically the www. form). Static assets and image paths
// are left alone. Independent of the auth gate.
func CanonicalHost(canonicalHost string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if canonicalHost == "" {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Host == canonicalHost || isStaticPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			target := "https://" + canonicalHost + r.URL.RequestURI()
			http.Redirect(w, r, target, http.StatusPermanentRedirect)
		})
	}
}

func isStaticPath(p string) bool {
	for _, prefix := range staticPrefixes {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	if p == "/favicon.ico" {
		return true
	}
	return imageExtensions[strings.ToLower(path.Ext(p))]
}
