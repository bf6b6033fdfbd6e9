package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/fieldtrace/maintenance-api/internal/core/auth"
	"github.com/fieldtrace/maintenance-api/internal/core/domain"
)

func testAuthDeps(t *testing.T) (*stubUserRepo, *AuthService, *stubThrottle, *captureNotifier) {
	t.Helper()
	repo := newStubUserRepo()
	hasher := auth.NewHasher(bcrypt.MinCost)
	issuer := auth.NewIssuer(auth.SigningConfig{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		DecoySecret:   "decoy-secret",
		AccessTTL:     time.Hour,
		RefreshTTL:    2 * time.Hour,
	}, hasher)
	throttle := newStubThrottle()
	notifier := &captureNotifier{}
	svc := NewAuthService(repo, issuer, hasher, throttle, notifier, zerolog.Nop())
	return repo, svc, throttle, notifier
}

func seedUser(t *testing.T, repo *stubUserRepo, username, password string, role domain.Role, status domain.UserStatus) *domain.User {
	t.Helper()
	hash, err := auth.NewHasher(bcrypt.MinCost).Hash(password)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	user, err := repo.Create(context.Background(), &domain.User{
		Username:     username,
		DisplayName:  username,
		PasswordHash: hash,
		Role:         role,
		Status:       status,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func TestAuthService_Login_Success(t *testing.T) {
	repo, svc, _, notifier := testAuthDeps(t)
	seedUser(t, repo, "carol", "s3cret99", domain.RoleAdmin, domain.StatusActive)

	result, err := svc.Login(context.Background(), "Carol", "s3cret99", domain.RequestMeta{IPAddress: "10.0.0.1"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.AccessToken == "" || result.RefreshToken == "" || result.Decoy == "" {
		t.Fatalf("expected full token bundle, got %+v", result)
	}
	if result.AccessToken == result.RefreshToken {
		t.Fatalf("access and refresh tokens must differ")
	}
	if result.ExpiresAt <= time.Now().Unix() {
		t.Fatalf("expiry %d is not in the future", result.ExpiresAt)
	}
	if result.Profile.Username != "carol" {
		t.Fatalf("unexpected profile: %+v", result.Profile)
	}

	event := notifier.last()
	if event.Kind != domain.SecurityLogin || !event.Allowed {
		t.Fatalf("unexpected security event: %+v", event)
	}
}

// Every credential rejection must be indistinguishable: same error value
// whether the username is unknown, the account disabled, or the password
// wrong.
func TestAuthService_Login_UniformRejection(t *testing.T) {
	repo, svc, _, _ := testAuthDeps(t)
	seedUser(t, repo, "carol", "s3cret99", domain.RoleAdmin, domain.StatusActive)
	seedUser(t, repo, "dave", "s3cret99", domain.RoleViewer, domain.StatusInactive)
	seedUser(t, repo, "erin", "s3cret99", domain.RoleViewer, domain.StatusDeleted)

	cases := []struct {
		name     string
		username string
		password string
	}{
		{"unknown username", "nobody", "s3cret99"},
		{"wrong password", "carol", "wrong999"},
		{"inactive account", "dave", "s3cret99"},
		{"deleted account", "erin", "s3cret99"},
		{"empty password", "carol", ""},
		{"empty username", "", "s3cret99"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := svc.Login(context.Background(), tc.username, tc.password, domain.RequestMeta{})
			if result != nil {
				t.Fatalf("expected nil result, got %+v", result)
			}
			if !errors.Is(err, domain.ErrInvalidCredentials) {
				t.Fatalf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}

// A store outage is a server-error class, not a credential rejection.
func TestAuthService_Login_StoreFailure(t *testing.T) {
	repo, svc, _, _ := testAuthDeps(t)
	repo.findErr = errors.New("connection refused")

	_, err := svc.Login(context.Background(), "carol", "s3cret99", domain.RequestMeta{})
	if err == nil {
		t.Fatalf("expected error")
	}
	if errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("store failure must not masquerade as a credential rejection")
	}
}

func TestAuthService_Login_Throttled(t *testing.T) {
	repo, svc, throttle, _ := testAuthDeps(t)
	seedUser(t, repo, "carol", "s3cret99", domain.RoleAdmin, domain.StatusActive)
	throttle.blocked = true

	_, err := svc.Login(context.Background(), "carol", "s3cret99", domain.RequestMeta{IPAddress: "10.0.0.1"})
	if !errors.Is(err, domain.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestAuthService_Login_FailureCountsAgainstThrottle(t *testing.T) {
	repo, svc, throttle, _ := testAuthDeps(t)
	seedUser(t, repo, "carol", "s3cret99", domain.RoleAdmin, domain.StatusActive)

	meta := domain.RequestMeta{IPAddress: "10.0.0.1"}
	_, _ = svc.Login(context.Background(), "carol", "wrong999", meta)
	if throttle.failures["carol:10.0.0.1"] != 1 {
		t.Fatalf("expected one recorded failure, got %d", throttle.failures["carol:10.0.0.1"])
	}

	// Success clears the counter.
	if _, err := svc.Login(context.Background(), "carol", "s3cret99", meta); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if _, ok := throttle.failures["carol:10.0.0.1"]; ok {
		t.Fatalf("expected counter to be reset after success")
	}
}

func TestAuthService_Login_ProfileCarriesNoSecret(t *testing.T) {
	repo, svc, _, _ := testAuthDeps(t)
	seedUser(t, repo, "carol", "s3cret99", domain.RoleAdmin, domain.StatusActive)

	result, err := svc.Login(context.Background(), "carol", "s3cret99", domain.RequestMeta{})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.Profile.ID == "" || result.Profile.Role != domain.RoleAdmin {
		t.Fatalf("profile incomplete: %+v", result.Profile)
	}
}
