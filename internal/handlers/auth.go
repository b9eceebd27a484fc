package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/veloura/atelier/internal/auth"
	"github.com/veloura/atelier/internal/models"
	pkghttp "github.com/veloura/atelier/pkg/http"
)

// AuthServiceInterface defines the interface for the login gate logic
type AuthServiceInterface interface {
	Login(ctx context.Context, password, clientKey, userAgent string) (string, error)
	Logout(ctx context.Context, token string) error
}

// AuthHandler handles the admin login and logout endpoint
type AuthHandler struct {
	service      AuthServiceInterface
	cookieConfig auth.CookieConfig
	logger       *slog.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(service AuthServiceInterface, cookieConfig auth.CookieConfig, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		service:      service,
		cookieConfig: cookieConfig,
		logger:       logger,
	}
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Password string `json:"password"`
}

// Login handles POST /api/auth/login.
//
// Outcomes: 200 with the session cookie, 401 on a bad credential, 429 while
// locked out, 500 for anything unexpected (malformed body included). Internal
// detail never crosses the boundary.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode login request", slog.Any("error", err))
		pkghttp.WriteInternalError(w, "Authentication failed")
		return
	}

	clientKey := pkghttp.ClientKey(r)
	userAgent := r.Header.Get("User-Agent")

	token, err := h.service.Login(r.Context(), req.Password, clientKey, userAgent)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrRateLimited):
			pkghttp.WriteTooManyRequests(w, "Too many login attempts. Please try again in 15 minutes.")
		case errors.Is(err, models.ErrInvalidCredential):
			pkghttp.WriteUnauthorized(w, "Invalid password")
		default:
			h.logger.Error("login failed", slog.Any("error", err))
			pkghttp.WriteInternalError(w, "Authentication failed")
		}
		return
	}

	auth.SetSessionCookie(w, token, h.cookieConfig)
	pkghttp.WriteSuccess(w)
}

// Logout handles DELETE /api/auth/login. Idempotent: succeeds whether or not
// a session cookie was present.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, err := auth.GetSessionCookie(r)
	if err != nil {
		token = ""
	}

	if err := h.service.Logout(r.Context(), token); err != nil {
		h.logger.Error("logout failed", slog.Any("error", err))
		pkghttp.WriteInternalError(w, "Logout failed")
		return
	}

	auth.ClearSessionCookie(w, h.cookieConfig)
	pkghttp.WriteSuccess(w)
}
