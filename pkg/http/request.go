package http

import (
	"net/http"
	"strings"
)

// UnknownClient is the shared bucket for requests carrying no forwarding headers.
// All such clients share one rate-limit record; that trade-off is deliberate
// (the service always sits behind a proxy that sets these headers).
const UnknownClient = "unknown"

// ClientKey derives the rate-limit key for a request.
//
// Order: first hop of X-Forwarded-For, then X-Real-IP, then UnknownClient.
// RemoteAddr is intentionally not consulted.
func ClientKey(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first := xff
		if idx := strings.Index(xff, ","); idx >= 0 {
			first = xff[:idx]
		}
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}

	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}

	return UnknownClient
}
