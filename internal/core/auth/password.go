package auth

import (
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"github.com/fieldtrace/maintenance-api/internal/core/domain"
)

// Hasher wraps bcrypt behind a narrow boundary: nothing outside this package
// sees plaintext or digest internals, and verification failures are never
// distinguished by cause.
type Hasher struct {
	cost int
}

// NewHasher returns a Hasher with the given bcrypt cost. Non-positive cost
// falls back to bcrypt.DefaultCost. Tests may pass bcrypt.MinCost.
func NewHasher(cost int) Hasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return Hasher{cost: cost}
}

// Hash derives a salted one-way digest of plaintext. Two calls with the same
// plaintext produce different digests.
func (h Hasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", domain.ErrInvalidCredentials
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches digest. A malformed digest and a
// mismatch are indistinguishable to the caller.
func (h Hasher) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}

// ValidatePassword enforces the minimum-strength policy: at least 8
// characters, at least one letter and one digit. Applied at account creation
// and at every password change.
func ValidatePassword(plaintext string) error {
	if len(plaintext) < 8 {
		return domain.ErrWeakPassword
	}
	var hasLetter, hasDigit bool
	for _, r := range plaintext {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return domain.ErrWeakPassword
	}
	return nil
}
