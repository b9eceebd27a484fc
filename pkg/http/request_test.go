package http_test

import (
	"net/http/httptest"
	"testing"

	pkghttp "github.com/veloura/atelier/pkg/http"
	"github.com/stretchr/testify/assert"
)

func TestClientKey_ForwardedForFirstHop(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/auth/login", nil)
	req.Header.Set("X-Forwarded-For", "1.2.3.4, 10.0.0.1, 10.0.0.2")

	assert.Equal(t, "1.2.3.4", pkghttp.ClientKey(req))
}

func TestClientKey_ForwardedForSingleHop(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/auth/login", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.9")

	assert.Equal(t, "203.0.113.9", pkghttp.ClientKey(req))
}

func TestClientKey_RealIPFallback(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/auth/login", nil)
	req.Header.Set("X-Real-IP", "198.51.100.7")

	assert.Equal(t, "198.51.100.7", pkghttp.ClientKey(req))
}

func TestClientKey_ForwardedForWins(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/auth/login", nil)
	req.Header.Set("X-Forwarded-For", "1.2.3.4")
	req.Header.Set("X-Real-IP", "198.51.100.7")

	assert.Equal(t, "1.2.3.4", pkghttp.ClientKey(req))
}

func TestClientKey_UnknownBucket(t *testing.T) {
	// No forwarding headers: everyone shares one bucket, RemoteAddr is ignored.
	req := httptest.NewRequest("POST", "/api/auth/login", nil)
	req.RemoteAddr = "192.168.1.50:4312"

	assert.Equal(t, pkghttp.UnknownClient, pkghttp.ClientKey(req))
}

func TestClientKey_WhitespaceHeaders(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/auth/login", nil)
	req.Header.Set("X-Forwarded-For", "  1.2.3.4  ,10.0.0.1")

	assert.Equal(t, "1.2.3.4", pkghttp.ClientKey(req))
}
