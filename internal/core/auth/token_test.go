package auth

import (
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/fieldtrace/maintenance-api/internal/core/domain"
)

func testIssuer(accessTTL time.Duration) *Issuer {
	return NewIssuer(SigningConfig{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		DecoySecret:   "decoy-secret",
		AccessTTL:     accessTTL,
		RefreshTTL:    time.Hour,
	}, NewHasher(bcrypt.MinCost))
}

func TestIssuer_AccessRoundTrip(t *testing.T) {
	issuer := testIssuer(time.Hour)

	token, exp, err := issuer.IssueAccess("user_1", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if exp <= time.Now().Unix() {
		t.Fatalf("expiry %d is not in the future", exp)
	}

	claims, err := issuer.ValidateAccess(token)
	if err != nil {
		t.Fatalf("ValidateAccess: %v", err)
	}
	if claims.Subject != "user_1" {
		t.Fatalf("unexpected subject: %s", claims.Subject)
	}
	if claims.Role != domain.RoleAdmin {
		t.Fatalf("unexpected role: %s", claims.Role)
	}
	if claims.ExpiresAt != exp {
		t.Fatalf("claims expiry %d != issued expiry %d", claims.ExpiresAt, exp)
	}
}

func TestIssuer_CrossSecretRejection(t *testing.T) {
	issuer := testIssuer(time.Hour)

	refresh, err := issuer.IssueRefresh("user_1")
	if err != nil {
		t.Fatalf("IssueRefresh: %v", err)
	}

	// A refresh token must never validate as an access token.
	if _, err := issuer.ValidateAccess(refresh); err != domain.ErrTokenSignature {
		t.Fatalf("expected ErrTokenSignature, got %v", err)
	}

	access, _, err := issuer.IssueAccess("user_1", domain.RoleViewer)
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}
	if _, err := issuer.ValidateRefresh(access); err != domain.ErrTokenSignature {
		t.Fatalf("expected ErrTokenSignature, got %v", err)
	}
}

func TestIssuer_ExpiredToken(t *testing.T) {
	issuer := testIssuer(-time.Minute)

	token, _, err := issuer.IssueAccess("user_1", domain.RoleViewer)
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}
	if _, err := issuer.ValidateAccess(token); err != domain.ErrTokenExpired {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestIssuer_MalformedToken(t *testing.T) {
	issuer := testIssuer(time.Hour)

	if _, err := issuer.ValidateAccess("not.a.token"); err != domain.ErrTokenMalformed {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
	if _, err := issuer.ValidateAccess(""); err != domain.ErrTokenMissing {
		t.Fatalf("expected ErrTokenMissing, got %v", err)
	}
}

func TestIssuer_TamperedToken(t *testing.T) {
	issuer := testIssuer(time.Hour)

	token, _, err := issuer.IssueAccess("user_1", domain.RoleViewer)
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape")
	}
	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))
	if _, err := issuer.ValidateAccess(tampered); err != domain.ErrTokenSignature {
		t.Fatalf("expected ErrTokenSignature, got %v", err)
	}
}

func TestIssuer_DecoyIsOpaque(t *testing.T) {
	issuer := testIssuer(time.Hour)

	decoy, err := issuer.IssueDecoy()
	if err != nil {
		t.Fatalf("IssueDecoy: %v", err)
	}
	if decoy == "" {
		t.Fatalf("expected decoy, got empty")
	}
	// Decoy output is a bcrypt digest, not a parseable token.
	if strings.Count(decoy, ".") == 2 {
		t.Fatalf("decoy looks like a JWT: %s", decoy)
	}
	if _, err := issuer.ValidateAccess(decoy); err == nil {
		t.Fatalf("decoy must never validate as an access token")
	}

	second, err := issuer.IssueDecoy()
	if err != nil {
		t.Fatalf("second IssueDecoy: %v", err)
	}
	if decoy == second {
		t.Fatalf("two decoys must differ")
	}
}
