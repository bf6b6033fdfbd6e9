package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fieldtrace/maintenance-api/internal/core/domain"
)

const (
	defaultAccessTTL  = 10 * time.Hour
	defaultRefreshTTL = 24 * time.Hour
)

// SigningConfig holds the three independent token secrets and their TTLs.
// It is built once at startup and passed by construction; the secrets must
// never be interchangeable — a token signed with one never validates against
// another.
type SigningConfig struct {
	AccessSecret  string
	RefreshSecret string
	DecoySecret   string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

// Claims is the decoded content of a validated token. ExpiresAt is absolute
// epoch seconds so consumers compare directly against "now".
type Claims struct {
	Subject   string
	Role      domain.Role
	ExpiresAt int64
}

// Issuer creates and validates signed, time-bounded tokens.
type Issuer struct {
	cfg    SigningConfig
	hasher Hasher
}

// NewIssuer returns an Issuer for cfg. Zero TTLs fall back to defaults.
func NewIssuer(cfg SigningConfig, hasher Hasher) *Issuer {
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = defaultAccessTTL
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = defaultRefreshTTL
	}
	return &Issuer{cfg: cfg, hasher: hasher}
}

// IssueAccess signs a short-lived token carrying the principal id and role.
// The absolute expiry is returned alongside so callers can persist it without
// re-parsing the token.
func (i *Issuer) IssueAccess(principalID string, role domain.Role) (string, int64, error) {
	exp := time.Now().Add(i.cfg.AccessTTL).Unix()
	claims := jwt.MapClaims{
		"sub":  principalID,
		"role": string(role),
		"exp":  exp,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(i.cfg.AccessSecret))
	if err != nil {
		return "", 0, err
	}
	return token, exp, nil
}

// IssueRefresh signs a longer-lived token carrying the subject only. There is
// no exchange endpoint yet; issuance is forward-compatible plumbing.
func (i *Issuer) IssueRefresh(principalID string) (string, error) {
	claims := jwt.MapClaims{
		"sub": principalID,
		"exp": time.Now().Add(i.cfg.RefreshTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(i.cfg.RefreshSecret))
}

// IssueDecoy signs a content-free throwaway value and runs it through the
// password hasher, making the login response uniform in shape and cost
// regardless of outcome. The result carries no claims and grants nothing.
func (i *Issuer) IssueDecoy() (string, error) {
	claims := jwt.MapClaims{
		"exp": time.Now().Add(5 * time.Minute).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(i.cfg.DecoySecret))
	if err != nil {
		return "", err
	}
	// bcrypt caps its input at 72 bytes.
	if len(token) > 72 {
		token = token[:72]
	}
	return i.hasher.Hash(token)
}

// ValidateAccess verifies signature and expiry against the access secret.
func (i *Issuer) ValidateAccess(token string) (*Claims, error) {
	return validate(token, i.cfg.AccessSecret)
}

// ValidateRefresh verifies signature and expiry against the refresh secret.
func (i *Issuer) ValidateRefresh(token string) (*Claims, error) {
	return validate(token, i.cfg.RefreshSecret)
}

// validate parses and verifies a token, mapping each failure to a distinct
// cause from the closed token-error set.
func validate(token, secret string) (*Claims, error) {
	if token == "" {
		return nil, domain.ErrTokenMissing
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, domain.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, domain.ErrTokenSignature
		default:
			return nil, domain.ErrTokenMalformed
		}
	}
	if !parsed.Valid {
		return nil, domain.ErrTokenSignature
	}

	sub, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, domain.ErrTokenMalformed
	}

	return &Claims{
		Subject:   sub,
		Role:      domain.Role(role),
		ExpiresAt: exp.Unix(),
	}, nil
}
