package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/fieldtrace/maintenance-api/internal/api/metrics"
	"github.com/fieldtrace/maintenance-api/internal/core/auth"
	"github.com/fieldtrace/maintenance-api/internal/core/domain"
	"github.com/fieldtrace/maintenance-api/internal/core/ports"
)

// LoginThrottle abstracts the failed-attempt counter (Redis).
type LoginThrottle interface {
	TooManyAttempts(ctx context.Context, username, ip string) (bool, error)
	RecordFailure(ctx context.Context, username, ip string) error
	Reset(ctx context.Context, username, ip string) error
}

// SecurityNotifier receives access-decision events for asynchronous recording.
type SecurityNotifier interface {
	Notify(event domain.SecurityEvent)
}

// AuthService implements the login flow: lowercased username lookup, status
// check, password verification, token issuance. Every rejection path
// converges on domain.ErrInvalidCredentials so the response never reveals
// which check failed; only the internal log and security event differ.
type AuthService struct {
	users    ports.UserRepository
	issuer   *auth.Issuer
	hasher   auth.Hasher
	throttle LoginThrottle
	notifier SecurityNotifier
	log      zerolog.Logger
}

// NewAuthService wires the login flow. throttle and notifier may be nil in
// tests.
func NewAuthService(users ports.UserRepository, issuer *auth.Issuer, hasher auth.Hasher, throttle LoginThrottle, notifier SecurityNotifier, log zerolog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		issuer:   issuer,
		hasher:   hasher,
		throttle: throttle,
		notifier: notifier,
		log:      log,
	}
}

// Login authenticates username+password and returns the token bundle plus
// the stripped public profile.
func (s *AuthService) Login(ctx context.Context, username, password string, meta domain.RequestMeta) (*ports.LoginResult, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" || password == "" {
		return nil, s.reject(ctx, username, meta, "empty credentials")
	}

	if s.throttle != nil {
		blocked, err := s.throttle.TooManyAttempts(ctx, username, meta.IPAddress)
		if err != nil {
			s.log.Warn().Err(err).Str("username", username).Msg("login throttle check failed, continuing")
		} else if blocked {
			metrics.LoginAttemptsTotal.WithLabelValues("throttled").Inc()
			s.notify(username, "", false, meta, "throttled")
			return nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, s.reject(ctx, username, meta, "unknown username")
		}
		// Store failures are a server-error class, never a credential rejection.
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	if user.Status != domain.StatusActive {
		return nil, s.reject(ctx, username, meta, "account "+string(user.Status))
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, s.reject(ctx, username, meta, "password mismatch")
	}

	accessToken, exp, err := s.issuer.IssueAccess(user.ID, user.Role)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	refreshToken, err := s.issuer.IssueRefresh(user.ID)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	decoy, err := s.issuer.IssueDecoy()
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, username, meta.IPAddress); err != nil {
			s.log.Warn().Err(err).Str("username", username).Msg("login throttle reset failed")
		}
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	s.notify(username, user.ID, true, meta, "")
	s.log.Info().
		Str("user_id", user.ID).
		Str("username", username).
		Str("ip", meta.IPAddress).
		Msg("login succeeded")

	return &ports.LoginResult{
		AccessToken:  accessToken,
		ExpiresAt:    exp,
		RefreshToken: refreshToken,
		Decoy:        decoy,
		Profile:      user.PublicProfile(),
	}, nil
}

// reject records the internal failure cause and returns the uniform
// credential rejection.
func (s *AuthService) reject(ctx context.Context, username string, meta domain.RequestMeta, cause string) error {
	if s.throttle != nil && username != "" {
		if err := s.throttle.RecordFailure(ctx, username, meta.IPAddress); err != nil {
			s.log.Warn().Err(err).Str("username", username).Msg("login throttle record failed")
		}
	}
	metrics.LoginAttemptsTotal.WithLabelValues("rejected").Inc()
	s.notify(username, "", false, meta, cause)
	s.log.Warn().
		Str("username", username).
		Str("ip", meta.IPAddress).
		Str("cause", cause).
		Msg("login rejected")
	return domain.ErrInvalidCredentials
}

func (s *AuthService) notify(username, principalID string, allowed bool, meta domain.RequestMeta, detail string) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(domain.SecurityEvent{
		Kind:        domain.SecurityLogin,
		Allowed:     allowed,
		PrincipalID: principalID,
		Username:    username,
		IPAddress:   meta.IPAddress,
		UserAgent:   meta.UserAgent,
		Path:        "/v1/authn/login",
		Detail:      detail,
		CreatedAt:   time.Now().UTC(),
	})
}
