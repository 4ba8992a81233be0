// Package auth implements caregiver authentication: a 4-digit PIN credential
// stored as a one-way bcrypt hash, and session tokens issued on successful
// verification.
package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidPin signals a PIN candidate that is not exactly 4 digits.
	ErrInvalidPin = errors.New("pin must be exactly 4 digits")

	ErrInvalidToken = errors.New("invalid or expired token")
	ErrMissingToken = errors.New("authorization token required")
)

// pinLength is fixed by product: caregiver PINs are always 4 digits.
const pinLength = 4

// PIN wraps the one-way hash of a caregiver's 4-digit credential.
// The plaintext is never stored and the hash is never compared outside
// Verify; bcrypt's comparison is constant-time.
type PIN struct {
	hash string
}

// NewPIN validates and hashes a plaintext PIN candidate.
// Fails with ErrInvalidPin unless the candidate is exactly 4 digits.
func NewPIN(candidate string) (PIN, error) {
	if !validPin(candidate) {
		return PIN{}, ErrInvalidPin
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(candidate), bcrypt.DefaultCost)
	if err != nil {
		return PIN{}, fmt.Errorf("failed to hash pin: %w", err)
	}
	return PIN{hash: string(hash)}, nil
}

// PINFromHash rehydrates a PIN from a stored hash.
func PINFromHash(hash string) PIN {
	return PIN{hash: hash}
}

// Verify reports whether the candidate matches the stored hash.
func (p PIN) Verify(candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(p.hash), []byte(candidate)) == nil
}

// Hash returns the stored hash for persistence. Not for comparison; use
// Verify.
func (p PIN) Hash() string {
	return p.hash
}

func validPin(candidate string) bool {
	if len(candidate) != pinLength {
		return false
	}
	for _, c := range candidate {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
