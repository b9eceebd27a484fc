package services

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/veloura/atelier/internal/auth"
	"github.com/veloura/atelier/internal/models"
	pkglogger "github.com/veloura/atelier/pkg/logger"
)

// AuthService implements the admin login gate: lockout check, credential
// comparison, session issuance.
type AuthService struct {
	adminSecret string
	limiter     auth.AttemptLimiter
	sessions    auth.SessionStore
	logger      *slog.Logger
	audit       *pkglogger.AuditLogger
}

// NewAuthService creates a new AuthService
func NewAuthService(adminSecret string, limiter auth.AttemptLimiter, sessions auth.SessionStore, logger *slog.Logger, audit *pkglogger.AuditLogger) *AuthService {
	return &AuthService{
		adminSecret: adminSecret,
		limiter:     limiter,
		sessions:    sessions,
		logger:      logger,
		audit:       audit,
	}
}

// Login validates the submitted credential for the given client key and
// returns a freshly issued session token.
//
// The rate limit is evaluated before the credential so a locked-out client
// learns nothing about whether its password was even checked.
func (s *AuthService) Login(ctx context.Context, password, clientKey, userAgent string) (string, error) {
	limited, err := s.limiter.IsLimited(ctx, clientKey)
	if err != nil {
		// Fail open for availability - limiter backend errors shouldn't
		// lock legitimate admins out. A confirmed lockout still fails closed.
		s.logger.Error("failed to check rate limit", slog.Any("error", err))
		limited = false
	}
	if limited {
		s.audit.LogAuthAttempt(pkglogger.AuditEvent{
			EventType:     "login",
			ClientKey:     clientKey,
			UserAgent:     userAgent,
			Success:       false,
			FailureReason: "rate_limited",
		})
		return "", models.ErrRateLimited
	}

	if !s.credentialMatches(password) {
		if err := s.limiter.RecordFailure(ctx, clientKey); err != nil {
			s.logger.Error("failed to record login failure", slog.Any("error", err))
		}
		s.audit.LogAuthAttempt(pkglogger.AuditEvent{
			EventType:     "login",
			ClientKey:     clientKey,
			UserAgent:     userAgent,
			Success:       false,
			FailureReason: "invalid_credential",
		})
		return "", models.ErrInvalidCredential
	}

	// Fresh start for this client
	if err := s.limiter.Reset(ctx, clientKey); err != nil {
		s.logger.Error("failed to reset rate limit", slog.Any("error", err))
	}

	token, err := auth.GenerateSessionToken()
	if err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}

	if err := s.sessions.Save(ctx, token); err != nil {
		return "", fmt.Errorf("failed to save session: %w", err)
	}

	s.audit.LogAuthAttempt(pkglogger.AuditEvent{
		EventType: "login",
		ClientKey: clientKey,
		UserAgent: userAgent,
		Success:   true,
	})

	return token, nil
}

// Logout removes the session from the store. Idempotent: an absent or
// unknown token is not an error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, token); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// credentialMatches compares the submitted password against the configured
// secret. A bcrypt-hashed secret uses bcrypt's own constant-time comparison;
// a plaintext secret uses subtle.ConstantTimeCompare.
func (s *AuthService) credentialMatches(password string) bool {
	if strings.HasPrefix(s.adminSecret, "$2a$") || strings.HasPrefix(s.adminSecret, "$2b$") || strings.HasPrefix(s.adminSecret, "$2y$") {
		return bcrypt.CompareHashAndPassword([]byte(s.adminSecret), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(s.adminSecret), []byte(password)) == 1
}
