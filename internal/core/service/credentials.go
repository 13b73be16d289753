package service

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/bytebank/ledger-api/internal/core/domain"
)

const (
	// DefaultBcryptCost is the work factor used for stored password hashes.
	DefaultBcryptCost = 10
	minPasswordLength = 6
	maxPasswordBytes  = 72
)

// Credentials hashes and verifies account passwords.
type Credentials struct {
	cost int
}

// NewCredentials returns a Credentials using cost, or DefaultBcryptCost
// when cost is outside bcrypt's accepted range.
func NewCredentials(cost int) *Credentials {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &Credentials{cost: cost}
}

// Hash validates password and returns a salted bcrypt hash of it.
func (c *Credentials) Hash(password string) (string, error) {
	if password == "" {
		return "", domain.Validationf("Password is required")
	}
	if len(password) < minPasswordLength {
		return "", domain.Validationf("Password must be at least %d characters long", minPasswordLength)
	}
	if len(password) > maxPasswordBytes {
		return "", domain.Validationf("Password must be at most %d bytes long", maxPasswordBytes)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), c.cost)
	if err != nil {
		return "", domain.Internal("Error hashing password", err)
	}
	return string(hash), nil
}

// Verify reports whether plaintext matches hash. A malformed hash is an
// internal error; the caller never learns why the comparison failed.
func (c *Credentials) Verify(plaintext, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, domain.Internal("Error comparing passwords", err)
	}
}

// IsModified reports whether candidate carries a new password, i.e. is
// non-empty after trimming whitespace.
func (c *Credentials) IsModified(candidate string) bool {
	return strings.TrimSpace(candidate) != ""
}
